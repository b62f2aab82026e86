package models

import "time"

// Photo is a photo record. NumLikes and NumComments are computed when the
// photo is read and are never stored on the row.
type Photo struct {
	ID          string    `json:"id"`
	AccountID   string    `json:"account_id"`
	URL         string    `json:"url"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	NumLikes    int64     `json:"num_likes"`
	NumComments int64     `json:"num_comments"`
}

// Comment is a comment on a photo together with its author's public fields.
type Comment struct {
	ID         string    `json:"id"`
	PhotoID    string    `json:"photo_id"`
	AccountID  string    `json:"account_id"`
	Text       string    `json:"text"`
	CreatedAt  time.Time `json:"created_at"`
	AuthorName string    `json:"name"`
	Avatar     string    `json:"avatar"`
}

// Liker is the public part of an account that liked a photo.
type Liker struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

// PhotoDetail is everything shown on a single photo page. Comments and
// Likers are ordered most recent first.
type PhotoDetail struct {
	Photo       Photo     `json:"photo"`
	OwnerName   string    `json:"owner_name"`
	OwnerAvatar string    `json:"owner_avatar"`
	Comments    []Comment `json:"comments"`
	Likers      []Liker   `json:"likers"`
}

// UploadTarget describes where a client should PUT an image before calling
// CreatePhoto with PublicURL.
type UploadTarget struct {
	Key       string `json:"key"`
	UploadURL string `json:"upload_url"`
	PublicURL string `json:"public_url"`
}
