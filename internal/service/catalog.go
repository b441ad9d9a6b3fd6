// Package service provides the business logic layer for the catalog,
// rotation, and account operations.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/editdropapp/editdrop-server/internal/domain"
	domainerrors "github.com/editdropapp/editdrop-server/internal/errors"
	"github.com/editdropapp/editdrop-server/internal/id"
	"github.com/editdropapp/editdrop-server/internal/media/videos"
	"github.com/editdropapp/editdrop-server/internal/search"
	"github.com/editdropapp/editdrop-server/internal/store"
	"github.com/editdropapp/editdrop-server/internal/store/sqlite"
	"github.com/editdropapp/editdrop-server/internal/validation"
)

const (
	// DefaultPageLimit is the page size applied when the client doesn't
	// ask for one.
	DefaultPageLimit = 8

	// MaxPageLimit caps requested page sizes.
	MaxPageLimit = 100
)

// CatalogService orchestrates edit CRUD, search, and listing. Writes go to
// the store first and are mirrored into the search index synchronously, so
// a caller that creates an edit finds it in the next search.
type CatalogService struct {
	store     *store.Store
	comments  *sqlite.Store
	index     *search.Index
	videos    *videos.Storage
	validator *validation.Validator
	logger    *slog.Logger

	sampleSize int
}

// NewCatalogService creates a new catalog service. sampleSize is the number
// of entries returned by RandomMany.
func NewCatalogService(
	st *store.Store,
	comments *sqlite.Store,
	index *search.Index,
	vids *videos.Storage,
	validator *validation.Validator,
	sampleSize int,
	logger *slog.Logger,
) *CatalogService {
	return &CatalogService{
		store:      st,
		comments:   comments,
		index:      index,
		videos:     vids,
		validator:  validator,
		sampleSize: sampleSize,
		logger:     logger,
	}
}

// CreateEditRequest contains the fields for a new edit.
type CreateEditRequest struct {
	Title  string   `json:"title" validate:"required,max=200"`
	Author string   `json:"author" validate:"required,max=200"`
	Video  string   `json:"video" validate:"required"`
	Source string   `json:"source" validate:"required,oneof=external-platform internal-storage"`
	Tags   []string `json:"tags,omitempty" validate:"max=32,dive,required,max=64"`
	Rating int      `json:"rating,omitempty" validate:"gte=0,lte=11"`
}

// UpdateEditRequest contains the mutable fields of an edit. Nil pointers
// leave the current value untouched.
type UpdateEditRequest struct {
	Title  *string   `json:"title,omitempty" validate:"omitempty,max=200"`
	Author *string   `json:"author,omitempty" validate:"omitempty,max=200"`
	Video  *string   `json:"video,omitempty"`
	Source *string   `json:"source,omitempty" validate:"omitempty,oneof=external-platform internal-storage"`
	Tags   *[]string `json:"tags,omitempty" validate:"omitempty,max=32,dive,required,max=64"`
	Rating *int      `json:"rating,omitempty" validate:"omitempty,gte=0,lte=11"`
}

// normalizeTags trims whitespace and drops empty values while preserving
// order. Case and duplicates are preserved; a repeated tag counts once per
// occurrence in aggregation.
func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		out = append(out, tag)
	}
	return out
}

// CreateEdit creates a new catalog entry owned by userID.
func (s *CatalogService) CreateEdit(ctx context.Context, userID string, req CreateEditRequest) (*domain.Edit, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	editID, err := id.Generate("edt")
	if err != nil {
		return nil, fmt.Errorf("generate edit ID: %w", err)
	}

	edit := &domain.Edit{
		Title:  strings.TrimSpace(req.Title),
		Author: strings.TrimSpace(req.Author),
		UserID: userID,
		Video:  req.Video,
		Source: domain.Source(req.Source),
		Tags:   normalizeTags(req.Tags),
		Rating: req.Rating,
	}
	edit.ID = editID
	edit.InitTimestamps()

	if err := edit.Validate(); err != nil {
		return nil, err
	}

	if err := s.store.CreateEdit(ctx, edit); err != nil {
		return nil, fmt.Errorf("create edit: %w", err)
	}

	if err := s.index.IndexEdit(search.EditToDocument(edit)); err != nil {
		return nil, fmt.Errorf("index edit: %w", err)
	}

	s.logger.Info("edit created",
		"edit_id", editID,
		"user_id", userID,
		"source", edit.Source,
	)

	return edit, nil
}

// GetEdit retrieves a single edit.
func (s *CatalogService) GetEdit(ctx context.Context, editID string) (*domain.Edit, error) {
	edit, err := s.store.GetEdit(ctx, editID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("edit not found")
		}
		return nil, fmt.Errorf("get edit: %w", err)
	}
	return edit, nil
}

// UpdateEdit applies a partial update to an edit. Only the owner or an
// admin may modify it.
func (s *CatalogService) UpdateEdit(ctx context.Context, userID string, isAdmin bool, editID string, req UpdateEditRequest) (*domain.Edit, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	edit, err := s.GetEdit(ctx, editID)
	if err != nil {
		return nil, err
	}

	if edit.UserID != userID && !isAdmin {
		return nil, domainerrors.Forbidden("you do not own this edit")
	}

	if req.Title != nil {
		edit.Title = strings.TrimSpace(*req.Title)
	}
	if req.Author != nil {
		edit.Author = strings.TrimSpace(*req.Author)
	}
	if req.Video != nil {
		edit.Video = *req.Video
	}
	if req.Source != nil {
		edit.Source = domain.Source(*req.Source)
	}
	if req.Tags != nil {
		edit.Tags = normalizeTags(*req.Tags)
	}
	if req.Rating != nil {
		edit.Rating = *req.Rating
	}
	edit.Touch()

	if err := edit.Validate(); err != nil {
		return nil, err
	}

	if err := s.store.UpdateEdit(ctx, edit); err != nil {
		return nil, fmt.Errorf("update edit: %w", err)
	}

	if err := s.index.IndexEdit(search.EditToDocument(edit)); err != nil {
		return nil, fmt.Errorf("index edit: %w", err)
	}

	return edit, nil
}

// DeleteEdit removes an edit, its comments, its index document, and its
// stored video file when we host it. Only the owner or an admin may delete.
func (s *CatalogService) DeleteEdit(ctx context.Context, userID string, isAdmin bool, editID string) error {
	edit, err := s.GetEdit(ctx, editID)
	if err != nil {
		return err
	}

	if edit.UserID != userID && !isAdmin {
		return domainerrors.Forbidden("you do not own this edit")
	}

	if err := s.store.DeleteEdit(ctx, editID); err != nil {
		return fmt.Errorf("delete edit: %w", err)
	}

	if err := s.index.DeleteEdit(editID); err != nil {
		s.logger.Warn("failed to remove edit from search index",
			"edit_id", editID,
			"error", err,
		)
	}

	if removed, err := s.comments.DeleteCommentsByEdit(ctx, editID); err != nil {
		s.logger.Warn("failed to delete comments for edit",
			"edit_id", editID,
			"error", err,
		)
	} else if removed > 0 {
		s.logger.Info("deleted comments with edit", "edit_id", editID, "count", removed)
	}

	if edit.Source == domain.SourceInternal {
		if err := s.videos.Delete(edit.Video); err != nil {
			s.logger.Warn("failed to delete video file",
				"edit_id", editID,
				"video", edit.Video,
				"error", err,
			)
		}
	}

	s.logger.Info("edit deleted", "edit_id", editID, "user_id", userID)
	return nil
}

// SearchParams configures a catalog search.
type SearchParams struct {
	Term   string
	Tag    string
	Rating *int
	Skip   int
	Limit  int
}

// SearchResult holds one page of edits and the total match count.
type SearchResult struct {
	Edits []*domain.Edit
	Total int
}

// normalizePage validates and defaults skip/limit.
func normalizePage(skip, limit, defaultLimit int) (int, int, error) {
	if skip < 0 {
		return 0, 0, domainerrors.Validation("skip must not be negative")
	}
	if limit < 0 {
		return 0, 0, domainerrors.Validation("limit must not be negative")
	}
	if limit == 0 {
		limit = defaultLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	return skip, limit, nil
}

// Search runs a filtered catalog query. All filters are optional and
// combine with AND; results come back newest first.
func (s *CatalogService) Search(ctx context.Context, params SearchParams) (*SearchResult, error) {
	skip, limit, err := normalizePage(params.Skip, params.Limit, DefaultPageLimit)
	if err != nil {
		return nil, err
	}
	if params.Rating != nil {
		if r := *params.Rating; r < domain.MinRating || r > domain.MaxRating {
			return nil, domainerrors.Validation(fmt.Sprintf("rating must be between %d and %d", domain.MinRating, domain.MaxRating))
		}
	}

	result, err := s.index.Search(ctx, search.Params{
		Term:   params.Term,
		Tag:    params.Tag,
		Rating: params.Rating,
		Skip:   skip,
		Limit:  limit,
	})
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	edits := make([]*domain.Edit, 0, len(result.IDs))
	for _, editID := range result.IDs {
		edit, err := s.store.GetEdit(ctx, editID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				// Index briefly ahead of the store; skip the orphan.
				s.logger.Warn("indexed edit missing from store", "edit_id", editID)
				continue
			}
			return nil, fmt.Errorf("get edit: %w", err)
		}
		edits = append(edits, edit)
	}

	return &SearchResult{Edits: edits, Total: result.Total}, nil
}

// Paginated returns a page of the catalog ordered newest first.
func (s *CatalogService) Paginated(ctx context.Context, skip, limit int) (*SearchResult, error) {
	skip, limit, err := normalizePage(skip, limit, DefaultPageLimit)
	if err != nil {
		return nil, err
	}

	edits, total, err := s.store.PageEdits(ctx, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("page edits: %w", err)
	}
	return &SearchResult{Edits: edits, Total: total}, nil
}

// RandomMany draws the configured number of edits uniformly at random with
// replacement. An empty catalog yields an empty slice.
func (s *CatalogService) RandomMany(ctx context.Context) ([]*domain.Edit, error) {
	edits, err := s.store.SampleEdits(ctx, s.sampleSize)
	if err != nil {
		return nil, fmt.Errorf("sample edits: %w", err)
	}
	return edits, nil
}

// ReindexAll rebuilds the search index from the store. Called at startup
// so the index always reflects current catalog contents.
func (s *CatalogService) ReindexAll(ctx context.Context) error {
	if err := s.index.Clear(); err != nil {
		return fmt.Errorf("clear index: %w", err)
	}

	edits, err := s.store.ListEdits(ctx)
	if err != nil {
		return fmt.Errorf("list edits: %w", err)
	}

	docs := make([]*search.EditDocument, 0, len(edits))
	for _, edit := range edits {
		docs = append(docs, search.EditToDocument(edit))
	}

	if err := s.index.IndexEdits(docs); err != nil {
		return fmt.Errorf("index edits: %w", err)
	}

	s.logger.Info("search index rebuilt", "documents", len(docs))
	return nil
}

// IndexDocumentCount reports how many documents the search index holds.
// Used by health checks.
func (s *CatalogService) IndexDocumentCount() (uint64, error) {
	return s.index.DocumentCount()
}
