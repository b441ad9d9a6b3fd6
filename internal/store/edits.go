package store

import (
	"context"
	"encoding/json/v2"
	"errors"
	"fmt"
	"math/rand/v2"
	"sort"

	"github.com/dgraph-io/badger/v4"

	"github.com/editdropapp/editdrop-server/internal/domain"
)

const editPrefix = "edit:"

var (
	ErrEditNotFound = ErrNotFound.WithMessage("Edit not found")
	ErrEditExists   = ErrAlreadyExists.WithMessage("Edit already exists")
)

func editKey(id string) []byte {
	return []byte(editPrefix + id)
}

// CreateEdit stores a new edit. Returns ErrEditExists if the ID is taken.
func (s *Store) CreateEdit(ctx context.Context, edit *domain.Edit) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(edit)
	if err != nil {
		return fmt.Errorf("failed to marshal edit: %w", err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(editKey(edit.ID)); err == nil {
			return ErrEditExists
		} else if !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("failed to check existing edit: %w", err)
		}
		return txn.Set(editKey(edit.ID), data)
	})
	if errors.Is(err, badger.ErrConflict) {
		return ErrEditExists
	}
	return err
}

// GetEdit retrieves an edit by ID. Returns ErrEditNotFound when absent.
func (s *Store) GetEdit(ctx context.Context, id string) (*domain.Edit, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var edit domain.Edit
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(editKey(id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrEditNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to get edit: %w", err)
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &edit)
		})
	})
	if err != nil {
		return nil, err
	}
	return &edit, nil
}

// UpdateEdit replaces an existing edit. Returns ErrEditNotFound when absent.
func (s *Store) UpdateEdit(ctx context.Context, edit *domain.Edit) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(edit)
	if err != nil {
		return fmt.Errorf("failed to marshal edit: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(editKey(edit.ID)); errors.Is(err, badger.ErrKeyNotFound) {
			return ErrEditNotFound
		} else if err != nil {
			return fmt.Errorf("failed to check existing edit: %w", err)
		}
		return txn.Set(editKey(edit.ID), data)
	})
}

// DeleteEdit removes an edit. Returns ErrEditNotFound when absent.
func (s *Store) DeleteEdit(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(editKey(id)); errors.Is(err, badger.ErrKeyNotFound) {
			return ErrEditNotFound
		} else if err != nil {
			return fmt.Errorf("failed to check existing edit: %w", err)
		}
		return txn.Delete(editKey(id))
	})
}

// ListEdits returns every stored edit in key order.
func (s *Store) ListEdits(ctx context.Context) ([]*domain.Edit, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var edits []*domain.Edit
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(editPrefix)

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek([]byte(editPrefix)); it.ValidForPrefix([]byte(editPrefix)); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			var edit domain.Edit
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &edit)
			})
			if err != nil {
				return fmt.Errorf("failed to unmarshal edit: %w", err)
			}
			edits = append(edits, &edit)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return edits, nil
}

// ListEditIDs returns the IDs of every stored edit in key order.
func (s *Store) ListEditIDs(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var ids []string
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(editPrefix)
		opts.PrefetchValues = false

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek([]byte(editPrefix)); it.ValidForPrefix([]byte(editPrefix)); it.Next() {
			ids = append(ids, string(it.Item().Key())[len(editPrefix):])
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// CountEdits returns the number of stored edits using a keys-only scan.
func (s *Store) CountEdits(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	count := 0
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(editPrefix)
		opts.PrefetchValues = false

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek([]byte(editPrefix)); it.ValidForPrefix([]byte(editPrefix)); it.Next() {
			count++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

// EditAt returns the edit at the given ordinal position in key order.
// Returns ErrEditNotFound when the ordinal is out of range.
func (s *Store) EditAt(ctx context.Context, ordinal int) (*domain.Edit, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if ordinal < 0 {
		return nil, ErrEditNotFound
	}

	var edit *domain.Edit
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(editPrefix)

		it := txn.NewIterator(opts)
		defer it.Close()

		pos := 0
		for it.Seek([]byte(editPrefix)); it.ValidForPrefix([]byte(editPrefix)); it.Next() {
			if pos == ordinal {
				var e domain.Edit
				err := it.Item().Value(func(val []byte) error {
					return json.Unmarshal(val, &e)
				})
				if err != nil {
					return fmt.Errorf("failed to unmarshal edit: %w", err)
				}
				edit = &e
				return nil
			}
			pos++
		}
		return ErrEditNotFound
	})
	if err != nil {
		return nil, err
	}
	return edit, nil
}

// PageEdits returns a page of edits ordered newest first with ID as the
// tiebreak, plus the total count before paging. skip and limit must be
// non-negative.
func (s *Store) PageEdits(ctx context.Context, skip, limit int) ([]*domain.Edit, int, error) {
	edits, err := s.ListEdits(ctx)
	if err != nil {
		return nil, 0, err
	}

	sort.Slice(edits, func(i, j int) bool {
		if !edits[i].CreatedAt.Equal(edits[j].CreatedAt) {
			return edits[i].CreatedAt.After(edits[j].CreatedAt)
		}
		return edits[i].ID < edits[j].ID
	})

	total := len(edits)
	if skip >= total {
		return []*domain.Edit{}, total, nil
	}
	end := skip + limit
	if end > total {
		end = total
	}
	return edits[skip:end], total, nil
}

// SampleEdits draws n edits uniformly at random with replacement. Fewer
// than n are returned only when the catalog is empty.
func (s *Store) SampleEdits(ctx context.Context, n int) ([]*domain.Edit, error) {
	edits, err := s.ListEdits(ctx)
	if err != nil {
		return nil, err
	}
	if len(edits) == 0 || n <= 0 {
		return []*domain.Edit{}, nil
	}

	sample := make([]*domain.Edit, 0, n)
	for range n {
		sample = append(sample, edits[rand.IntN(len(edits))])
	}
	return sample, nil
}
