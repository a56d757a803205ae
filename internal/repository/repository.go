// Package repository declares the data-access interfaces the service layer
// depends on. The sqlite subpackage is the only implementation; tests may
// substitute in-memory fakes.
package repository

import (
	"context"

	"github.com/gupta-8/code-snippet/internal/model"
)

// ListOptions paginates snippet listings. A Limit of 0 means "repository
// default"; the service clamps caller-supplied values before they get here.
type ListOptions struct {
	Limit  int
	Offset int
}

// SnippetFilter narrows a snippet search. UserID is mandatory; Query and
// Language are optional. Query matches title, code, or description
// case-insensitively as a substring. Tag filtering is NOT part of the
// repository contract — the service applies it in memory after the query.
type SnippetFilter struct {
	UserID   string
	Query    string
	Language string
}

type UserRepository interface {
	// CreateUser inserts a new user. Returns apperror.ErrConflict if the
	// (lowercased) username is already taken.
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	// UpsertUserByGitHubID inserts a user on first GitHub sign-in and
	// returns the existing account on subsequent ones, keyed by GitHub ID.
	UpsertUserByGitHubID(ctx context.Context, user *model.User) error
}

type SnippetRepository interface {
	// Create inserts the snippet and attaches its tags, lazily creating
	// missing tag rows, all in one transaction.
	Create(ctx context.Context, snippet *model.Snippet) error
	// CreateBatch inserts many snippets (with their tags) in a single
	// transaction. Used by import, which validates items beforehand.
	CreateBatch(ctx context.Context, snippets []*model.Snippet) error
	// GetByID is unscoped — it backs the public share endpoint.
	GetByID(ctx context.Context, id string) (*model.Snippet, error)
	// GetOwned returns NotFound for both absent and foreign-owned IDs.
	GetOwned(ctx context.Context, id, userID string) (*model.Snippet, error)
	// ListByUser returns the user's snippets newest-updated first.
	ListByUser(ctx context.Context, userID string, opts ListOptions) ([]model.Snippet, error)
	// Search returns all matching snippets newest-updated first, no limit.
	Search(ctx context.Context, filter SnippetFilter) ([]model.Snippet, error)
	// Update rewrites the snippet's fields, re-stamps updated_at, and
	// replaces its tag set with snippet.Tags.
	Update(ctx context.Context, snippet *model.Snippet) error
	Delete(ctx context.Context, id, userID string) error
	CountByUser(ctx context.Context, userID string) (int, error)
	// LanguageCounts groups the user's snippets by language.
	LanguageCounts(ctx context.Context, userID string) (map[string]int, error)
}

type FolderRepository interface {
	CreateFolder(ctx context.Context, folder *model.Folder) error
	GetOwnedFolder(ctx context.Context, id, userID string) (*model.Folder, error)
	ListFoldersByUser(ctx context.Context, userID string) ([]model.Folder, error)
	UpdateFolder(ctx context.Context, folder *model.Folder) error
	// DeleteFolder nulls folder_id on member snippets and removes the
	// folder row in one transaction, so readers never observe a
	// half-deleted state.
	DeleteFolder(ctx context.Context, id, userID string) error
}

type TagRepository interface {
	// CreateTag is the explicit creation path. Returns apperror.ErrConflict
	// for a duplicate (case-insensitive) name.
	CreateTag(ctx context.Context, tag *model.Tag) error
	// GetTagsByNames resolves lowercased tag names to their rows.
	GetTagsByNames(ctx context.Context, names []string) ([]model.Tag, error)
	// DeleteTag removes the tag and its association rows. Unscoped by owner.
	DeleteTag(ctx context.Context, id string) error
	// DeleteOrphanTags removes every tag with zero associated snippets,
	// across all users, and reports how many were removed.
	DeleteOrphanTags(ctx context.Context) (int, error)
}

type TabRepository interface {
	// ListTabs returns the global tab snapshot ordered by position.
	ListTabs(ctx context.Context) ([]model.OpenTab, error)
	// ReplaceTabs atomically swaps the whole tab set for the given one.
	ReplaceTabs(ctx context.Context, tabs []model.OpenTab) error
}
