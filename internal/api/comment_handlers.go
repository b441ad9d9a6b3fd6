package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (s *Server) registerCommentRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listComments",
		Method:      http.MethodGet,
		Path:        "/api/v1/edits/{id}/comments",
		Summary:     "List comments",
		Description: "Returns an edit's comments, newest first",
		Tags:        []string{"Comments"},
	}, s.handleListComments)

	huma.Register(s.api, huma.Operation{
		OperationID: "createComment",
		Method:      http.MethodPost,
		Path:        "/api/v1/edits/{id}/comments",
		Summary:     "Create comment",
		Description: "Adds a comment to an edit",
		Tags:        []string{"Comments"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleCreateComment)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateComment",
		Method:      http.MethodPatch,
		Path:        "/api/v1/comments/{id}",
		Summary:     "Update comment",
		Description: "Edits a comment's text. Only the author may modify it",
		Tags:        []string{"Comments"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUpdateComment)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteComment",
		Method:      http.MethodDelete,
		Path:        "/api/v1/comments/{id}",
		Summary:     "Delete comment",
		Description: "Deletes a comment. The author or an admin may delete it",
		Tags:        []string{"Comments"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleDeleteComment)
}

// === DTOs ===

// ListCommentsInput identifies the edit whose comments to list.
type ListCommentsInput struct {
	ID string `path:"id" doc:"Edit ID"`
}

// CommentListResponse contains an edit's comments.
type CommentListResponse struct {
	Comments []CommentResponse `json:"comments" doc:"Comments, newest first"`
}

// CommentListOutput wraps the comment list response for Huma.
type CommentListOutput struct {
	Body CommentListResponse
}

// CommentTextRequest is the request body for creating or editing a comment.
type CommentTextRequest struct {
	Text string `json:"text" doc:"Comment text, up to 2000 characters"`
}

// CreateCommentInput wraps the create comment request for Huma.
type CreateCommentInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Edit ID"`
	Body          CommentTextRequest
}

// CommentOutput wraps a single comment response for Huma.
type CommentOutput struct {
	Body CommentResponse
}

// UpdateCommentInput wraps the update comment request for Huma.
type UpdateCommentInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Comment ID"`
	Body          CommentTextRequest
}

// DeleteCommentInput contains parameters for deleting a comment.
type DeleteCommentInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Comment ID"`
}

// === Handlers ===

func (s *Server) handleListComments(ctx context.Context, input *ListCommentsInput) (*CommentListOutput, error) {
	comments, err := s.services.Comments.List(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	resp := make([]CommentResponse, len(comments))
	for i, c := range comments {
		resp[i] = toCommentResponse(c)
	}

	return &CommentListOutput{
		Body: CommentListResponse{Comments: resp},
	}, nil
}

func (s *Server) handleCreateComment(ctx context.Context, input *CreateCommentInput) (*CommentOutput, error) {
	claims, err := s.authenticateRequest(input.Authorization)
	if err != nil {
		return nil, err
	}

	comment, err := s.services.Comments.Create(ctx, claims.UserID, input.ID, input.Body.Text)
	if err != nil {
		return nil, err
	}

	return &CommentOutput{Body: toCommentResponse(comment)}, nil
}

func (s *Server) handleUpdateComment(ctx context.Context, input *UpdateCommentInput) (*CommentOutput, error) {
	claims, err := s.authenticateRequest(input.Authorization)
	if err != nil {
		return nil, err
	}

	comment, err := s.services.Comments.Update(ctx, claims.UserID, input.ID, input.Body.Text)
	if err != nil {
		return nil, err
	}

	return &CommentOutput{Body: toCommentResponse(comment)}, nil
}

func (s *Server) handleDeleteComment(ctx context.Context, input *DeleteCommentInput) (*struct{}, error) {
	claims, err := s.authenticateRequest(input.Authorization)
	if err != nil {
		return nil, err
	}

	if err := s.services.Comments.Delete(ctx, claims.UserID, claims.IsAdmin(), input.ID); err != nil {
		return nil, err
	}

	return &struct{}{}, nil
}
