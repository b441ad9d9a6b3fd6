package store

import (
	"context"
	"encoding/json/v2"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"github.com/editdropapp/editdrop-server/internal/domain"
)

const rotationPrefix = "rotation:"

var (
	ErrSelectionNotFound = ErrNotFound.WithMessage("Daily selection not found")
	ErrSelectionExists   = ErrAlreadyExists.WithMessage("Daily selection already exists")
)

func rotationKey(date string) []byte {
	return []byte(rotationPrefix + date)
}

// GetDailySelection retrieves the selection recorded for a date key.
// Returns ErrSelectionNotFound when no selection exists for that date.
func (s *Store) GetDailySelection(ctx context.Context, date string) (*domain.DailySelection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var sel domain.DailySelection
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(rotationKey(date))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrSelectionNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to get selection: %w", err)
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &sel)
		})
	})
	if err != nil {
		return nil, err
	}
	return &sel, nil
}

// CreateDailySelection records a selection for its date key. The existence
// check and the write run in one transaction, so of any number of
// concurrent callers for the same date exactly one succeeds. The losers
// get ErrSelectionExists, including when the race surfaces as a commit
// conflict.
func (s *Store) CreateDailySelection(ctx context.Context, sel *domain.DailySelection) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(sel)
	if err != nil {
		return fmt.Errorf("failed to marshal selection: %w", err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(rotationKey(sel.Date)); err == nil {
			return ErrSelectionExists
		} else if !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("failed to check existing selection: %w", err)
		}
		return txn.Set(rotationKey(sel.Date), data)
	})
	if errors.Is(err, badger.ErrConflict) {
		return ErrSelectionExists
	}
	return err
}

// PruneDailySelectionsBefore deletes every selection whose date key sorts
// before the given date. Date keys compare lexicographically, so this is a
// plain string comparison. Returns the number of selections removed.
func (s *Store) PruneDailySelectionsBefore(ctx context.Context, date string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	var stale [][]byte
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(rotationPrefix)
		opts.PrefetchValues = false

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek([]byte(rotationPrefix)); it.ValidForPrefix([]byte(rotationPrefix)); it.Next() {
			key := it.Item().KeyCopy(nil)
			if string(key[len(rotationPrefix):]) < date {
				stale = append(stale, key)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	for _, key := range stale {
		err := s.db.Update(func(txn *badger.Txn) error {
			return txn.Delete(key)
		})
		if err != nil {
			return 0, fmt.Errorf("failed to delete stale selection: %w", err)
		}
	}
	return len(stale), nil
}
