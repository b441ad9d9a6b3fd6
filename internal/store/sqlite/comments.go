package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/editdropapp/editdrop-server/internal/domain"
	"github.com/editdropapp/editdrop-server/internal/store"
)

// commentColumns is the ordered list of columns selected in comment queries.
// Must match the scan order in scanComment.
const commentColumns = `id, edit_id, author_id, text, created_at, updated_at`

// scanComment scans a sql.Row (or sql.Rows via its Scan method) into a
// domain.Comment. AuthorNickname is left empty; the service layer fills it
// in from the user store.
func scanComment(scanner interface{ Scan(dest ...any) error }) (*domain.Comment, error) {
	var c domain.Comment

	var (
		createdAt string
		updatedAt string
	)

	err := scanner.Scan(
		&c.ID,
		&c.EditID,
		&c.AuthorID,
		&c.Text,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	c.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	c.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	return &c, nil
}

// CreateComment inserts a new comment.
// Returns store.ErrAlreadyExists on duplicate ID.
func (s *Store) CreateComment(ctx context.Context, c *domain.Comment) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO comments (id, edit_id, author_id, text, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		c.ID,
		c.EditID,
		c.AuthorID,
		c.Text,
		formatTime(c.CreatedAt),
		formatTime(c.UpdatedAt),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return store.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// GetComment retrieves a comment by ID.
// Returns store.ErrNotFound if the comment does not exist.
func (s *Store) GetComment(ctx context.Context, commentID string) (*domain.Comment, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+commentColumns+` FROM comments WHERE id = ?`, commentID)

	c, err := scanComment(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// ListCommentsByEdit returns all comments on an edit, newest first.
func (s *Store) ListCommentsByEdit(ctx context.Context, editID string) ([]*domain.Comment, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+commentColumns+` FROM comments
		 WHERE edit_id = ?
		 ORDER BY created_at DESC, id ASC`, editID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := []*domain.Comment{}
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return comments, nil
}

// UpdateCommentText updates the text and updated_at of a comment.
// Returns store.ErrNotFound if the comment does not exist.
func (s *Store) UpdateCommentText(ctx context.Context, c *domain.Comment) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE comments SET text = ?, updated_at = ? WHERE id = ?`,
		c.Text,
		formatTime(c.UpdatedAt),
		c.ID,
	)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return store.ErrNotFound
	}
	return nil
}

// DeleteComment removes a comment by ID.
// Returns store.ErrNotFound if the comment does not exist.
func (s *Store) DeleteComment(ctx context.Context, commentID string) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM comments WHERE id = ?`, commentID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return store.ErrNotFound
	}
	return nil
}

// DeleteCommentsByEdit removes every comment on an edit. Used when the
// edit itself is deleted. Returns the number of comments removed.
func (s *Store) DeleteCommentsByEdit(ctx context.Context, editID string) (int, error) {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM comments WHERE edit_id = ?`, editID)
	if err != nil {
		return 0, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(rows), nil
}
