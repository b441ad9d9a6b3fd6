package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/editdropapp/editdrop-server/internal/domain"
	domainerrors "github.com/editdropapp/editdrop-server/internal/errors"
	"github.com/editdropapp/editdrop-server/internal/store"
)

// RotationService picks and serves the edit of the day. Each calendar day
// in the configured timezone gets exactly one winner, chosen uniformly at
// random on the first request of the day and pinned for the rest of it.
type RotationService struct {
	store    *store.Store
	location *time.Location
	logger   *slog.Logger

	// now is swappable for tests.
	now func() time.Time
}

// NewRotationService creates a new rotation service. location determines
// when "today" rolls over.
func NewRotationService(st *store.Store, location *time.Location, logger *slog.Logger) *RotationService {
	return &RotationService{
		store:    st,
		location: location,
		logger:   logger,
		now:      time.Now,
	}
}

// EditOfTheDay returns today's pinned edit, drawing one first if today has
// no selection yet. Concurrent first requests race on the selection write;
// exactly one draw wins and everyone gets the winner's pick.
func (s *RotationService) EditOfTheDay(ctx context.Context) (*domain.Edit, error) {
	today := domain.DateKey(s.now(), s.location)

	s.pruneStale(ctx, today)

	sel, err := s.store.GetDailySelection(ctx, today)
	if err == nil {
		return s.resolve(ctx, sel)
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("get daily selection: %w", err)
	}

	return s.draw(ctx, today)
}

// draw picks a uniform random edit and tries to pin it for the date.
// Losing the write race means another request already pinned one, so we
// serve theirs.
func (s *RotationService) draw(ctx context.Context, date string) (*domain.Edit, error) {
	count, err := s.store.CountEdits(ctx)
	if err != nil {
		return nil, fmt.Errorf("count edits: %w", err)
	}
	if count == 0 {
		return nil, domainerrors.Internal("cannot select edit of the day from an empty catalog")
	}

	edit, err := s.store.EditAt(ctx, rand.IntN(count))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// An edit was deleted between the count and the fetch.
			return nil, domainerrors.Internal("catalog changed during selection").WithCause(err)
		}
		return nil, fmt.Errorf("fetch drawn edit: %w", err)
	}

	sel := &domain.DailySelection{
		Date:      date,
		EditID:    edit.ID,
		CreatedAt: s.now().UTC(),
	}

	err = s.store.CreateDailySelection(ctx, sel)
	if err == nil {
		s.logger.Info("edit of the day selected", "date", date, "edit_id", edit.ID)
		return edit, nil
	}
	if !errors.Is(err, store.ErrAlreadyExists) {
		return nil, fmt.Errorf("create daily selection: %w", err)
	}

	// Lost the race; read back the winner.
	winner, err := s.store.GetDailySelection(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("reread daily selection: %w", err)
	}
	return s.resolve(ctx, winner)
}

// resolve loads the edit a selection points at. A deleted edit leaves the
// date spent: we report the failure rather than redrawing, so the
// one-selection-per-day guarantee holds.
func (s *RotationService) resolve(ctx context.Context, sel *domain.DailySelection) (*domain.Edit, error) {
	edit, err := s.store.GetEdit(ctx, sel.EditID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.logger.Error("daily selection references deleted edit",
				"date", sel.Date,
				"edit_id", sel.EditID,
			)
			return nil, domainerrors.Internal("edit of the day is no longer available")
		}
		return nil, fmt.Errorf("get selected edit: %w", err)
	}
	return edit, nil
}

// pruneStale clears selections for past dates. Failures are logged and
// never block serving today's edit.
func (s *RotationService) pruneStale(ctx context.Context, today string) {
	removed, err := s.store.PruneDailySelectionsBefore(ctx, today)
	if err != nil {
		s.logger.Warn("failed to prune stale daily selections", "error", err)
		return
	}
	if removed > 0 {
		s.logger.Info("pruned stale daily selections", "count", removed)
	}
}
