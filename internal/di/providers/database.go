package providers

import (
	"path/filepath"

	"github.com/samber/do/v2"

	"github.com/editdropapp/editdrop-server/internal/config"
	"github.com/editdropapp/editdrop-server/internal/logger"
	"github.com/editdropapp/editdrop-server/internal/store"
	"github.com/editdropapp/editdrop-server/internal/store/sqlite"
)

// StoreHandle wraps the badger store with shutdown capability.
type StoreHandle struct {
	*store.Store
}

// Shutdown implements do.Shutdownable.
func (h *StoreHandle) Shutdown() error {
	return h.Close()
}

// ProvideStore provides the primary key-value store.
func ProvideStore(i do.Injector) (*StoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	dbPath := filepath.Join(cfg.Storage.BasePath, "db")
	db, err := store.New(dbPath, log.Logger)
	if err != nil {
		return nil, err
	}

	log.Info("Database initialized", "path", dbPath)

	return &StoreHandle{Store: db}, nil
}

// CommentStoreHandle wraps the SQLite comment store with shutdown capability.
type CommentStoreHandle struct {
	*sqlite.Store
}

// Shutdown implements do.Shutdownable.
func (h *CommentStoreHandle) Shutdown() error {
	return h.Close()
}

// ProvideCommentStore provides the relational comment store.
func ProvideCommentStore(i do.Injector) (*CommentStoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	dbPath := filepath.Join(cfg.Storage.BasePath, "comments.db")
	db, err := sqlite.Open(dbPath, log.Logger)
	if err != nil {
		return nil, err
	}

	log.Info("Comment database initialized", "path", dbPath)

	return &CommentStoreHandle{Store: db}, nil
}
