package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (s *Server) registerRotationRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getEditOfTheDay",
		Method:      http.MethodGet,
		Path:        "/api/v1/edit-of-the-day",
		Summary:     "Edit of the day",
		Description: "Returns today's featured edit. The pick is made once per calendar day and stays stable until midnight",
		Tags:        []string{"Edits"},
	}, s.handleGetEditOfTheDay)
}

func (s *Server) handleGetEditOfTheDay(ctx context.Context, _ *struct{}) (*EditOutput, error) {
	edit, err := s.services.Rotation.EditOfTheDay(ctx)
	if err != nil {
		return nil, err
	}

	return &EditOutput{Body: toEditResponse(edit)}, nil
}
