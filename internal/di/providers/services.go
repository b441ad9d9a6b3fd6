package providers

import (
	"github.com/samber/do/v2"

	"github.com/editdropapp/editdrop-server/internal/auth"
	"github.com/editdropapp/editdrop-server/internal/config"
	"github.com/editdropapp/editdrop-server/internal/logger"
	"github.com/editdropapp/editdrop-server/internal/media/videos"
	"github.com/editdropapp/editdrop-server/internal/service"
	"github.com/editdropapp/editdrop-server/internal/validation"
)

// ProvideValidator provides the request validator.
func ProvideValidator(i do.Injector) (*validation.Validator, error) {
	return validation.New(), nil
}

// ProvideCatalogService provides the edit catalog service.
func ProvideCatalogService(i do.Injector) (*service.CatalogService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	commentHandle := do.MustInvoke[*CommentStoreHandle](i)
	indexHandle := do.MustInvoke[*SearchIndexHandle](i)
	vids := do.MustInvoke[*videos.Storage](i)
	validator := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewCatalogService(
		storeHandle.Store,
		commentHandle.Store,
		indexHandle.Index,
		vids,
		validator,
		cfg.Catalog.RandomSampleSize,
		log.Logger,
	), nil
}

// ProvideRotationService provides the edit-of-the-day rotation service.
func ProvideRotationService(i do.Injector) (*service.RotationService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewRotationService(storeHandle.Store, cfg.RotationLocation(), log.Logger), nil
}

// ProvideAuthService provides the authentication service.
func ProvideAuthService(i do.Injector) (*service.AuthService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	tokenService := do.MustInvoke[*auth.TokenService](i)
	validator := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewAuthService(storeHandle.Store, tokenService, validator, cfg.Auth.AdminSecret, log.Logger), nil
}

// ProvideFavoritesService provides the favorites service.
func ProvideFavoritesService(i do.Injector) (*service.FavoritesService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewFavoritesService(storeHandle.Store, log.Logger), nil
}

// ProvideCommentsService provides the comments service.
func ProvideCommentsService(i do.Injector) (*service.CommentsService, error) {
	commentHandle := do.MustInvoke[*CommentStoreHandle](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewCommentsService(commentHandle.Store, storeHandle.Store, log.Logger), nil
}
