package model

import "time"

// Snippet is a stored code fragment with its metadata.
//
// Tags holds the lowercased tag names attached to this snippet. The
// repository fills it on every read; the snippet_tags association rows are
// the source of truth.
//
// FolderID is a pointer because "no folder" must serialize as JSON null,
// matching the wire format the frontend expects. UserID is nullable at the
// storage level but every authenticated endpoint requires it to be set.
type Snippet struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Code        string    `json:"code"`
	Language    string    `json:"language"`
	Tags        []string  `json:"tags"`
	UserID      string    `json:"userId"`
	FolderID    *string   `json:"folderId"`
	IsFavorite  bool      `json:"isFavorite"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
