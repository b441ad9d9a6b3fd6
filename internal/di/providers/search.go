package providers

import (
	"context"

	"github.com/samber/do/v2"

	"github.com/editdropapp/editdrop-server/internal/config"
	"github.com/editdropapp/editdrop-server/internal/logger"
	"github.com/editdropapp/editdrop-server/internal/search"
	"github.com/editdropapp/editdrop-server/internal/service"
)

// SearchIndexHandle wraps the search index with shutdown capability.
type SearchIndexHandle struct {
	*search.Index
}

// Shutdown implements do.Shutdownable.
func (h *SearchIndexHandle) Shutdown() error {
	return h.Close()
}

// ProvideSearchIndex provides the Bleve search index.
func ProvideSearchIndex(i do.Injector) (*SearchIndexHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	index, err := search.NewIndex(search.Options{
		DataPath: cfg.Storage.BasePath,
		Logger:   log.Logger,
	})
	if err != nil {
		return nil, err
	}

	docCount, _ := index.DocumentCount()
	log.Info("Search index initialized", "documents", docCount)

	return &SearchIndexHandle{Index: index}, nil
}

// RebuildSearchIndex rebuilds the index from the store so searches always
// reflect current catalog contents, including writes from previous runs
// with a different index version. Should be called after all services are
// wired, before the server starts accepting traffic.
func RebuildSearchIndex(i do.Injector) error {
	catalog := do.MustInvoke[*service.CatalogService](i)
	return catalog.ReindexAll(context.Background())
}
