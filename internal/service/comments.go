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
	"github.com/editdropapp/editdrop-server/internal/store"
	"github.com/editdropapp/editdrop-server/internal/store/sqlite"
)

// CommentsService manages comments on edits. Comments live in SQLite;
// author nicknames are resolved from the user store at read time so a
// nickname change shows up everywhere.
type CommentsService struct {
	comments *sqlite.Store
	store    *store.Store
	logger   *slog.Logger
}

// NewCommentsService creates a new comments service.
func NewCommentsService(comments *sqlite.Store, st *store.Store, logger *slog.Logger) *CommentsService {
	return &CommentsService{comments: comments, store: st, logger: logger}
}

const maxCommentLength = 2000

func validateCommentText(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", domainerrors.Validation("comment text is required")
	}
	if len(text) > maxCommentLength {
		return "", domainerrors.Validation("comment text is too long")
	}
	return text, nil
}

// Create posts a comment on an edit.
func (s *CommentsService) Create(ctx context.Context, userID, editID, text string) (*domain.Comment, error) {
	text, err := validateCommentText(text)
	if err != nil {
		return nil, err
	}

	if _, err := s.store.GetEdit(ctx, editID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("edit not found")
		}
		return nil, fmt.Errorf("get edit: %w", err)
	}

	commentID, err := id.Generate("cmt")
	if err != nil {
		return nil, fmt.Errorf("generate comment ID: %w", err)
	}

	comment := &domain.Comment{
		EditID:   editID,
		AuthorID: userID,
		Text:     text,
	}
	comment.ID = commentID
	comment.InitTimestamps()

	if err := s.comments.CreateComment(ctx, comment); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}

	s.fillNicknames(ctx, comment)
	s.logger.Info("comment created", "comment_id", commentID, "edit_id", editID, "user_id", userID)
	return comment, nil
}

// List returns all comments on an edit, newest first, with author
// nicknames resolved.
func (s *CommentsService) List(ctx context.Context, editID string) ([]*domain.Comment, error) {
	if _, err := s.store.GetEdit(ctx, editID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("edit not found")
		}
		return nil, fmt.Errorf("get edit: %w", err)
	}

	comments, err := s.comments.ListCommentsByEdit(ctx, editID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}

	s.fillNicknames(ctx, comments...)
	return comments, nil
}

// Update changes a comment's text. Only the author may edit it.
func (s *CommentsService) Update(ctx context.Context, userID, commentID, text string) (*domain.Comment, error) {
	text, err := validateCommentText(text)
	if err != nil {
		return nil, err
	}

	comment, err := s.comments.GetComment(ctx, commentID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("comment not found")
		}
		return nil, fmt.Errorf("get comment: %w", err)
	}

	if comment.AuthorID != userID {
		return nil, domainerrors.Forbidden("you do not own this comment")
	}

	comment.Text = text
	comment.Touch()

	if err := s.comments.UpdateCommentText(ctx, comment); err != nil {
		return nil, fmt.Errorf("update comment: %w", err)
	}

	s.fillNicknames(ctx, comment)
	return comment, nil
}

// Delete removes a comment. The author or an admin may delete it.
func (s *CommentsService) Delete(ctx context.Context, userID string, isAdmin bool, commentID string) error {
	comment, err := s.comments.GetComment(ctx, commentID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domainerrors.NotFound("comment not found")
		}
		return fmt.Errorf("get comment: %w", err)
	}

	if comment.AuthorID != userID && !isAdmin {
		return domainerrors.Forbidden("you do not own this comment")
	}

	if err := s.comments.DeleteComment(ctx, commentID); err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}

	s.logger.Info("comment deleted", "comment_id", commentID, "user_id", userID)
	return nil
}

// fillNicknames resolves author nicknames from the user store. A deleted
// author leaves the nickname blank rather than failing the read.
func (s *CommentsService) fillNicknames(ctx context.Context, comments ...*domain.Comment) {
	cache := make(map[string]string)
	for _, comment := range comments {
		nickname, ok := cache[comment.AuthorID]
		if !ok {
			user, err := s.store.Users.Get(ctx, comment.AuthorID)
			if err == nil {
				nickname = user.Nickname
			}
			cache[comment.AuthorID] = nickname
		}
		comment.AuthorNickname = nickname
	}
}
