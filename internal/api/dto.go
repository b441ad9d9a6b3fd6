package api

import (
	"time"

	"github.com/editdropapp/editdrop-server/internal/domain"
)

// EditResponse contains edit data in API responses.
type EditResponse struct {
	ID        string    `json:"id" doc:"Edit ID"`
	Title     string    `json:"title" doc:"Edit title"`
	Author    string    `json:"author,omitempty" doc:"Credited author"`
	UserID    string    `json:"user_id" doc:"Owner user ID"`
	Video     string    `json:"video" doc:"Video URL or storage locator"`
	Source    string    `json:"source" doc:"Video source kind"`
	Tags      []string  `json:"tags" doc:"Tags, exact case preserved"`
	Rating    int       `json:"rating" doc:"Rating from 0 to 11"`
	CreatedAt time.Time `json:"created_at" doc:"Creation time"`
	UpdatedAt time.Time `json:"updated_at" doc:"Last update time"`
}

func toEditResponse(e *domain.Edit) EditResponse {
	tags := e.Tags
	if tags == nil {
		tags = []string{}
	}
	return EditResponse{
		ID:        e.ID,
		Title:     e.Title,
		Author:    e.Author,
		UserID:    e.UserID,
		Video:     e.Video,
		Source:    string(e.Source),
		Tags:      tags,
		Rating:    e.Rating,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func toEditResponses(edits []*domain.Edit) []EditResponse {
	out := make([]EditResponse, len(edits))
	for i, e := range edits {
		out[i] = toEditResponse(e)
	}
	return out
}

// EditListResponse contains a page of edits and the total match count.
type EditListResponse struct {
	Edits []EditResponse `json:"edits" doc:"Page of edits, newest first"`
	Total int            `json:"total" doc:"Total matches before paging"`
}

// UserResponse contains user data in API responses. The password hash
// never leaves the server.
type UserResponse struct {
	ID        string    `json:"id" doc:"User ID"`
	Email     string    `json:"email" doc:"Email address"`
	Nickname  string    `json:"nickname" doc:"Display name"`
	Role      string    `json:"role" doc:"User role"`
	Favorites []string  `json:"favorites" doc:"Favorited edit IDs"`
	CreatedAt time.Time `json:"created_at" doc:"Registration time"`
}

func toUserResponse(u *domain.User) UserResponse {
	favorites := u.Favorites
	if favorites == nil {
		favorites = []string{}
	}
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Nickname:  u.Nickname,
		Role:      string(u.Role),
		Favorites: favorites,
		CreatedAt: u.CreatedAt,
	}
}

// CommentResponse contains comment data in API responses.
type CommentResponse struct {
	ID             string    `json:"id" doc:"Comment ID"`
	EditID         string    `json:"edit_id" doc:"Commented edit ID"`
	AuthorID       string    `json:"author_id" doc:"Author user ID"`
	AuthorNickname string    `json:"author_nickname,omitempty" doc:"Author display name"`
	Text           string    `json:"text" doc:"Comment text"`
	CreatedAt      time.Time `json:"created_at" doc:"Creation time"`
	UpdatedAt      time.Time `json:"updated_at" doc:"Last edit time"`
}

func toCommentResponse(c *domain.Comment) CommentResponse {
	return CommentResponse{
		ID:             c.ID,
		EditID:         c.EditID,
		AuthorID:       c.AuthorID,
		AuthorNickname: c.AuthorNickname,
		Text:           c.Text,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}
