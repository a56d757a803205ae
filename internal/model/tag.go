package model

import "time"

// Tag is a globally unique, lowercased label. Tag rows are shared across all
// users; only the snippet_tags associations are owner-scoped through the
// snippets they point at.
//
// SnippetCount is filled by the tag listing, which counts only the calling
// user's snippets even though the row itself is global.
type Tag struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	SnippetCount int       `json:"snippetCount"`
	CreatedAt    time.Time `json:"-"`
}
