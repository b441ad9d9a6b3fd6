package domain

// Comment is a user comment on an edit.
//
// AuthorNickname is denormalized at read time from the author's account so
// clients can render comments without a second lookup.
type Comment struct {
	Record
	EditID         string `json:"edit_id"`
	AuthorID       string `json:"author_id"`
	AuthorNickname string `json:"author_nickname,omitempty"`
	Text           string `json:"text"`
}
