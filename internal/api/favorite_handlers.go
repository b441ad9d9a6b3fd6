package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (s *Server) registerFavoriteRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listFavorites",
		Method:      http.MethodGet,
		Path:        "/api/v1/favorites",
		Summary:     "List favorites",
		Description: "Returns a page of the current user's favorited edits",
		Tags:        []string{"Favorites"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListFavorites)

	huma.Register(s.api, huma.Operation{
		OperationID: "addFavorite",
		Method:      http.MethodPut,
		Path:        "/api/v1/favorites/{editID}",
		Summary:     "Add favorite",
		Description: "Adds an edit to the current user's favorites. Idempotent",
		Tags:        []string{"Favorites"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleAddFavorite)

	huma.Register(s.api, huma.Operation{
		OperationID: "removeFavorite",
		Method:      http.MethodDelete,
		Path:        "/api/v1/favorites/{editID}",
		Summary:     "Remove favorite",
		Description: "Removes an edit from the current user's favorites. Idempotent",
		Tags:        []string{"Favorites"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleRemoveFavorite)

	huma.Register(s.api, huma.Operation{
		OperationID: "checkFavorite",
		Method:      http.MethodGet,
		Path:        "/api/v1/favorites/{editID}/check",
		Summary:     "Check favorite",
		Description: "Reports whether the current user has favorited the edit",
		Tags:        []string{"Favorites"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleCheckFavorite)
}

// === DTOs ===

// ListFavoritesInput contains favorite paging parameters.
type ListFavoritesInput struct {
	Authorization string `header:"Authorization"`
	Page          int    `query:"page" doc:"1-based page number, defaults to 1"`
	Limit         int    `query:"limit" doc:"Page size, defaults to 20"`
}

// FavoriteInput identifies one edit in the current user's favorites.
type FavoriteInput struct {
	Authorization string `header:"Authorization"`
	EditID        string `path:"editID" doc:"Edit ID"`
}

// CheckFavoriteResponse reports favorite membership for one edit.
type CheckFavoriteResponse struct {
	Favorited bool `json:"favorited" doc:"Whether the edit is favorited"`
}

// CheckFavoriteOutput wraps the check response for Huma.
type CheckFavoriteOutput struct {
	Body CheckFavoriteResponse
}

// === Handlers ===

func (s *Server) handleListFavorites(ctx context.Context, input *ListFavoritesInput) (*EditListOutput, error) {
	claims, err := s.authenticateRequest(input.Authorization)
	if err != nil {
		return nil, err
	}

	result, err := s.services.Favorites.List(ctx, claims.UserID, input.Page, input.Limit)
	if err != nil {
		return nil, err
	}

	return &EditListOutput{
		Body: EditListResponse{
			Edits: toEditResponses(result.Edits),
			Total: result.Total,
		},
	}, nil
}

func (s *Server) handleAddFavorite(ctx context.Context, input *FavoriteInput) (*struct{}, error) {
	claims, err := s.authenticateRequest(input.Authorization)
	if err != nil {
		return nil, err
	}

	if err := s.services.Favorites.Add(ctx, claims.UserID, input.EditID); err != nil {
		return nil, err
	}

	return &struct{}{}, nil
}

func (s *Server) handleRemoveFavorite(ctx context.Context, input *FavoriteInput) (*struct{}, error) {
	claims, err := s.authenticateRequest(input.Authorization)
	if err != nil {
		return nil, err
	}

	if err := s.services.Favorites.Remove(ctx, claims.UserID, input.EditID); err != nil {
		return nil, err
	}

	return &struct{}{}, nil
}

func (s *Server) handleCheckFavorite(ctx context.Context, input *FavoriteInput) (*CheckFavoriteOutput, error) {
	claims, err := s.authenticateRequest(input.Authorization)
	if err != nil {
		return nil, err
	}

	favorited, err := s.services.Favorites.Check(ctx, claims.UserID, input.EditID)
	if err != nil {
		return nil, err
	}

	return &CheckFavoriteOutput{
		Body: CheckFavoriteResponse{Favorited: favorited},
	}, nil
}
