package model

import "time"

// Folder is a user-owned grouping container for snippets.
//
// Deleting a folder never deletes its snippets — their folder reference is
// nulled instead. SnippetCount is computed at read time and not persisted.
type Folder struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Color        string    `json:"color"`
	SnippetCount int       `json:"snippetCount"`
	UserID       string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}
