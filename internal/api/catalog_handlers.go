package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/danielgtaylor/huma/v2"

	domainerrors "github.com/editdropapp/editdrop-server/internal/errors"
	"github.com/editdropapp/editdrop-server/internal/service"
)

func (s *Server) registerCatalogRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "searchEdits",
		Method:      http.MethodGet,
		Path:        "/api/v1/edits/search",
		Summary:     "Search edits",
		Description: "Filters the catalog by search term, tag, and rating, newest first",
		Tags:        []string{"Edits"},
	}, s.handleSearchEdits)

	huma.Register(s.api, huma.Operation{
		OperationID: "listEditsPaginated",
		Method:      http.MethodGet,
		Path:        "/api/v1/edits/paginated",
		Summary:     "List edits",
		Description: "Returns a page of the catalog, newest first",
		Tags:        []string{"Edits"},
	}, s.handleListEditsPaginated)

	huma.Register(s.api, huma.Operation{
		OperationID: "listEditsRandom",
		Method:      http.MethodGet,
		Path:        "/api/v1/edits/random-many",
		Summary:     "Random edits",
		Description: "Returns a random sample of edits, drawn with replacement",
		Tags:        []string{"Edits"},
	}, s.handleListEditsRandom)

	huma.Register(s.api, huma.Operation{
		OperationID: "listTags",
		Method:      http.MethodGet,
		Path:        "/api/v1/tags",
		Summary:     "Tag statistics",
		Description: "Returns every tag in use with its occurrence count",
		Tags:        []string{"Tags"},
	}, s.handleListTags)

	huma.Register(s.api, huma.Operation{
		OperationID:   "createEdit",
		Method:        http.MethodPost,
		Path:          "/api/v1/edits",
		DefaultStatus: http.StatusCreated,
		Summary:       "Create edit",
		Description:   "Submits a new edit to the catalog",
		Tags:          []string{"Edits"},
		Security:      []map[string][]string{{"bearer": {}}},
	}, s.handleCreateEdit)

	huma.Register(s.api, huma.Operation{
		OperationID: "getEdit",
		Method:      http.MethodGet,
		Path:        "/api/v1/edits/{id}",
		Summary:     "Get edit",
		Description: "Returns an edit by ID",
		Tags:        []string{"Edits"},
	}, s.handleGetEdit)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateEdit",
		Method:      http.MethodPatch,
		Path:        "/api/v1/edits/{id}",
		Summary:     "Update edit",
		Description: "Updates an edit. Only the owner or an admin may modify it",
		Tags:        []string{"Edits"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUpdateEdit)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteEdit",
		Method:      http.MethodDelete,
		Path:        "/api/v1/edits/{id}",
		Summary:     "Delete edit",
		Description: "Deletes an edit and its comments. Only the owner or an admin may delete it",
		Tags:        []string{"Edits"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleDeleteEdit)
}

// === DTOs ===

// SearchEditsInput contains catalog search parameters. Tag and rating
// accept the literal string "null" as "no filter" for client convenience;
// the search term is always taken literally.
type SearchEditsInput struct {
	Search string `query:"search" doc:"Substring match on title, author, and tags, case-insensitive"`
	Tag    string `query:"tag" doc:"Exact tag match, case-sensitive"`
	Rating string `query:"rating" doc:"Exact rating match, 0 to 11"`
	Skip   int    `query:"skip" doc:"Results to skip"`
	Limit  int    `query:"limit" doc:"Page size, defaults to 8"`
}

// EditListOutput wraps a page of edits for Huma.
type EditListOutput struct {
	Body EditListResponse
}

// ListEditsPaginatedInput contains catalog paging parameters.
type ListEditsPaginatedInput struct {
	Skip  int `query:"skip" doc:"Results to skip"`
	Limit int `query:"limit" doc:"Page size, defaults to 8"`
}

// RandomEditsResponse contains a random sample of edits.
type RandomEditsResponse struct {
	Edits []EditResponse `json:"edits" doc:"Random sample, drawn with replacement"`
}

// RandomEditsOutput wraps the random sample response for Huma.
type RandomEditsOutput struct {
	Body RandomEditsResponse
}

// TagStatsResponse contains tag usage statistics.
type TagStatsResponse struct {
	Tags  []TagCountResponse `json:"tags" doc:"Tags by descending count"`
	Total int                `json:"total" doc:"Number of edits in the catalog, tagged or not"`
}

// TagCountResponse is one aggregated tag row.
type TagCountResponse struct {
	Tag   string `json:"tag" doc:"Tag, exact case"`
	Count int    `json:"count" doc:"Occurrences across all edits"`
}

// TagStatsOutput wraps the tag statistics response for Huma.
type TagStatsOutput struct {
	Body TagStatsResponse
}

// CreateEditInput wraps the create edit request for Huma.
type CreateEditInput struct {
	Authorization string `header:"Authorization"`
	Body          service.CreateEditRequest
}

// EditOutput wraps a single edit response for Huma.
type EditOutput struct {
	Body EditResponse
}

// GetEditInput contains parameters for getting an edit.
type GetEditInput struct {
	ID string `path:"id" doc:"Edit ID"`
}

// UpdateEditInput wraps the update edit request for Huma.
type UpdateEditInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Edit ID"`
	Body          service.UpdateEditRequest
}

// DeleteEditInput contains parameters for deleting an edit.
type DeleteEditInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Edit ID"`
}

// === Handlers ===

func (s *Server) handleSearchEdits(ctx context.Context, input *SearchEditsInput) (*EditListOutput, error) {
	params := service.SearchParams{
		Skip:  input.Skip,
		Limit: input.Limit,
	}
	params.Term = input.Search
	if input.Tag != "null" {
		params.Tag = input.Tag
	}
	if input.Rating != "" && input.Rating != "null" {
		rating, err := strconv.Atoi(input.Rating)
		if err != nil {
			return nil, domainerrors.Validation("rating must be an integer")
		}
		params.Rating = &rating
	}

	result, err := s.services.Catalog.Search(ctx, params)
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

func (s *Server) handleListEditsPaginated(ctx context.Context, input *ListEditsPaginatedInput) (*EditListOutput, error) {
	result, err := s.services.Catalog.Paginated(ctx, input.Skip, input.Limit)
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

func (s *Server) handleListEditsRandom(ctx context.Context, _ *struct{}) (*RandomEditsOutput, error) {
	edits, err := s.services.Catalog.RandomMany(ctx)
	if err != nil {
		return nil, err
	}

	return &RandomEditsOutput{
		Body: RandomEditsResponse{Edits: toEditResponses(edits)},
	}, nil
}

func (s *Server) handleListTags(ctx context.Context, _ *struct{}) (*TagStatsOutput, error) {
	stats, err := s.services.Catalog.TagStats(ctx)
	if err != nil {
		return nil, err
	}

	tags := make([]TagCountResponse, len(stats.Tags))
	for i, t := range stats.Tags {
		tags[i] = TagCountResponse{Tag: t.Tag, Count: t.Count}
	}

	return &TagStatsOutput{
		Body: TagStatsResponse{Tags: tags, Total: stats.Total},
	}, nil
}

func (s *Server) handleCreateEdit(ctx context.Context, input *CreateEditInput) (*EditOutput, error) {
	claims, err := s.authenticateRequest(input.Authorization)
	if err != nil {
		return nil, err
	}

	edit, err := s.services.Catalog.CreateEdit(ctx, claims.UserID, input.Body)
	if err != nil {
		return nil, err
	}

	return &EditOutput{Body: toEditResponse(edit)}, nil
}

func (s *Server) handleGetEdit(ctx context.Context, input *GetEditInput) (*EditOutput, error) {
	edit, err := s.services.Catalog.GetEdit(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	return &EditOutput{Body: toEditResponse(edit)}, nil
}

func (s *Server) handleUpdateEdit(ctx context.Context, input *UpdateEditInput) (*EditOutput, error) {
	claims, err := s.authenticateRequest(input.Authorization)
	if err != nil {
		return nil, err
	}

	edit, err := s.services.Catalog.UpdateEdit(ctx, claims.UserID, claims.IsAdmin(), input.ID, input.Body)
	if err != nil {
		return nil, err
	}

	return &EditOutput{Body: toEditResponse(edit)}, nil
}

func (s *Server) handleDeleteEdit(ctx context.Context, input *DeleteEditInput) (*struct{}, error) {
	claims, err := s.authenticateRequest(input.Authorization)
	if err != nil {
		return nil, err
	}

	if err := s.services.Catalog.DeleteEdit(ctx, claims.UserID, claims.IsAdmin(), input.ID); err != nil {
		return nil, err
	}

	return &struct{}{}, nil
}
