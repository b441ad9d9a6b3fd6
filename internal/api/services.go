package api

import (
	"github.com/editdropapp/editdrop-server/internal/service"
)

// Services groups the business logic services used by the API server.
// This reduces the parameter count for NewServer and improves testability.
type Services struct {
	Catalog   *service.CatalogService
	Rotation  *service.RotationService
	Auth      *service.AuthService
	Favorites *service.FavoritesService
	Comments  *service.CommentsService
}
