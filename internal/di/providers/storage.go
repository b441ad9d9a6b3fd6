package providers

import (
	"github.com/samber/do/v2"

	"github.com/editdropapp/editdrop-server/internal/config"
	"github.com/editdropapp/editdrop-server/internal/logger"
	"github.com/editdropapp/editdrop-server/internal/media/videos"
)

// ProvideVideoStorage provides the video blob storage.
func ProvideVideoStorage(i do.Injector) (*videos.Storage, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	storage, err := videos.NewStorage(cfg.Storage.UploadPath)
	if err != nil {
		return nil, err
	}

	log.Info("Video storage initialized", "path", cfg.Storage.UploadPath)

	return storage, nil
}
