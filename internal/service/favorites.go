package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/editdropapp/editdrop-server/internal/domain"
	domainerrors "github.com/editdropapp/editdrop-server/internal/errors"
	"github.com/editdropapp/editdrop-server/internal/store"
)

// DefaultFavoritesLimit is the page size for favorites listings.
const DefaultFavoritesLimit = 20

// FavoritesService manages per-user favorite edits.
type FavoritesService struct {
	store  *store.Store
	logger *slog.Logger
}

// NewFavoritesService creates a new favorites service.
func NewFavoritesService(st *store.Store, logger *slog.Logger) *FavoritesService {
	return &FavoritesService{store: st, logger: logger}
}

// Add marks an edit as a favorite. Adding an existing favorite is a no-op.
func (s *FavoritesService) Add(ctx context.Context, userID, editID string) error {
	if _, err := s.store.GetEdit(ctx, editID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domainerrors.NotFound("edit not found")
		}
		return fmt.Errorf("get edit: %w", err)
	}

	user, err := s.store.Users.Get(ctx, userID)
	if err != nil {
		return fmt.Errorf("get user: %w", err)
	}

	if !user.AddFavorite(editID) {
		return nil
	}
	user.Touch()

	if err := s.store.Users.Update(ctx, userID, user); err != nil {
		return fmt.Errorf("update user: %w", err)
	}

	s.logger.Info("favorite added", "user_id", userID, "edit_id", editID)
	return nil
}

// Remove unmarks a favorite. Removing an absent favorite is a no-op.
func (s *FavoritesService) Remove(ctx context.Context, userID, editID string) error {
	user, err := s.store.Users.Get(ctx, userID)
	if err != nil {
		return fmt.Errorf("get user: %w", err)
	}

	if !user.RemoveFavorite(editID) {
		return nil
	}
	user.Touch()

	if err := s.store.Users.Update(ctx, userID, user); err != nil {
		return fmt.Errorf("update user: %w", err)
	}

	s.logger.Info("favorite removed", "user_id", userID, "edit_id", editID)
	return nil
}

// Check reports whether an edit is in the user's favorites.
func (s *FavoritesService) Check(ctx context.Context, userID, editID string) (bool, error) {
	user, err := s.store.Users.Get(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("get user: %w", err)
	}
	return user.HasFavorite(editID), nil
}

// List returns a page of the user's favorite edits, in the order they were
// favorited. Favorites whose edit has since been deleted are skipped.
// page is 1-based.
func (s *FavoritesService) List(ctx context.Context, userID string, page, limit int) (*SearchResult, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = DefaultFavoritesLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}

	user, err := s.store.Users.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	live := make([]*domain.Edit, 0, len(user.Favorites))
	for _, editID := range user.Favorites {
		edit, err := s.store.GetEdit(ctx, editID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				continue
			}
			return nil, fmt.Errorf("get edit: %w", err)
		}
		live = append(live, edit)
	}

	total := len(live)
	start := (page - 1) * limit
	if start >= total {
		return &SearchResult{Edits: []*domain.Edit{}, Total: total}, nil
	}
	end := start + limit
	if end > total {
		end = total
	}
	return &SearchResult{Edits: live[start:end], Total: total}, nil
}
