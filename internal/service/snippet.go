package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/gupta-8/code-snippet/internal/apperror"
	"github.com/gupta-8/code-snippet/internal/model"
	"github.com/gupta-8/code-snippet/internal/repository"
)

const (
	MaxTitleLength   = 200
	MaxCodeLength    = 100000 // ~100KB of code
	DefaultListLimit = 100
	MaxListLimit     = 1000
)

// SnippetInput carries the fields a caller may set when creating a
// snippet. The handler fills in defaults for omitted title and language
// before the input reaches the service.
type SnippetInput struct {
	Title       string
	Description string
	Code        string
	Language    string
	Tags        []string
	FolderID    string
	IsFavorite  bool
}

// SnippetPatch is a partial update. Nil fields are left unchanged.
// FolderID is tri-state: nil leaves the folder alone, empty string
// detaches the snippet, anything else names a folder the caller owns.
// An id the caller does not own is ignored and the folder stays put.
type SnippetPatch struct {
	Title       *string
	Description *string
	Code        *string
	Language    *string
	Tags        *[]string
	FolderID    *string
	IsFavorite  *bool
}

// SnippetService owns snippet CRUD, search, and the ownership rules
// around folders and favorites.
type SnippetService struct {
	snippets repository.SnippetRepository
	folders  repository.FolderRepository
	logger   *slog.Logger
}

func NewSnippetService(
	snippets repository.SnippetRepository,
	folders repository.FolderRepository,
	logger *slog.Logger,
) *SnippetService {
	return &SnippetService{snippets: snippets, folders: folders, logger: logger}
}

// Create validates the input and stores the snippet. A folder reference
// the caller does not own is dropped silently rather than rejected, so a
// stale folder id never blocks saving code.
func (s *SnippetService) Create(ctx context.Context, userID string, input SnippetInput) (*model.Snippet, error) {
	if err := validateSnippetInput(input); err != nil {
		return nil, err
	}

	snippet := &model.Snippet{
		Title:       input.Title,
		Description: input.Description,
		Code:        input.Code,
		Language:    input.Language,
		Tags:        normalizeTags(input.Tags),
		UserID:      userID,
		FolderID:    s.resolveFolder(ctx, userID, input.FolderID),
		IsFavorite:  input.IsFavorite,
	}

	if err := s.snippets.Create(ctx, snippet); err != nil {
		return nil, err
	}

	s.logger.Info("snippet created", "snippet_id", snippet.ID, "user_id", userID)
	return snippet, nil
}

// Get returns one of the caller's snippets.
func (s *SnippetService) Get(ctx context.Context, userID, id string) (*model.Snippet, error) {
	return s.snippets.GetOwned(ctx, id, userID)
}

// List returns the caller's snippets newest-updated first. Limit is
// clamped to [1, MaxListLimit] with DefaultListLimit when unset.
func (s *SnippetService) List(ctx context.Context, userID string, limit, offset int) ([]model.Snippet, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	if offset < 0 {
		offset = 0
	}
	return s.snippets.ListByUser(ctx, userID, repository.ListOptions{Limit: limit, Offset: offset})
}

// Update applies a partial patch to one of the caller's snippets.
func (s *SnippetService) Update(ctx context.Context, userID, id string, patch SnippetPatch) (*model.Snippet, error) {
	snippet, err := s.snippets.GetOwned(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		snippet.Title = *patch.Title
	}
	if patch.Description != nil {
		snippet.Description = *patch.Description
	}
	if patch.Code != nil {
		snippet.Code = *patch.Code
	}
	if patch.Language != nil {
		snippet.Language = *patch.Language
	}
	if patch.Tags != nil {
		snippet.Tags = normalizeTags(*patch.Tags)
	}
	if patch.FolderID != nil {
		// "" detaches; an id the caller does not own is ignored, keeping
		// the current folder, unlike create where it is dropped to nil.
		if ref := *patch.FolderID; ref == "" {
			snippet.FolderID = nil
		} else if _, err := s.folders.GetOwnedFolder(ctx, ref, userID); err != nil {
			s.logger.Warn("ignoring unknown folder reference", "folder_id", ref, "user_id", userID)
		} else {
			snippet.FolderID = &ref
		}
	}
	if patch.IsFavorite != nil {
		snippet.IsFavorite = *patch.IsFavorite
	}

	if err := validateSnippetInput(SnippetInput{Title: snippet.Title, Code: snippet.Code}); err != nil {
		return nil, err
	}

	if err := s.snippets.Update(ctx, snippet); err != nil {
		return nil, err
	}
	return snippet, nil
}

// Delete removes one of the caller's snippets. Tag rows survive even if
// this was their last snippet; the cleanup endpoint reaps them.
func (s *SnippetService) Delete(ctx context.Context, userID, id string) error {
	if err := s.snippets.Delete(ctx, id, userID); err != nil {
		return err
	}
	s.logger.Info("snippet deleted", "snippet_id", id, "user_id", userID)
	return nil
}

// ToggleFavorite flips the favorite flag and returns the updated snippet.
func (s *SnippetService) ToggleFavorite(ctx context.Context, userID, id string) (*model.Snippet, error) {
	snippet, err := s.snippets.GetOwned(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	snippet.IsFavorite = !snippet.IsFavorite
	if err := s.snippets.Update(ctx, snippet); err != nil {
		return nil, err
	}
	return snippet, nil
}

// Search combines a free-text query, a language filter, and a tag filter.
// Query and language are pushed down to SQL; the tag filter keeps only
// snippets carrying every requested tag and is applied in memory.
func (s *SnippetService) Search(ctx context.Context, userID, query, language string, tags []string) ([]model.Snippet, error) {
	results, err := s.snippets.Search(ctx, repository.SnippetFilter{
		UserID:   userID,
		Query:    strings.TrimSpace(query),
		Language: strings.TrimSpace(language),
	})
	if err != nil {
		return nil, err
	}

	wanted := normalizeTags(tags)
	if len(wanted) == 0 {
		return results, nil
	}

	filtered := []model.Snippet{}
	for _, snippet := range results {
		if hasAllTags(snippet.Tags, wanted) {
			filtered = append(filtered, snippet)
		}
	}
	return filtered, nil
}

// Shared returns a snippet by bare id with no ownership check. It backs
// the public share endpoint.
func (s *SnippetService) Shared(ctx context.Context, id string) (*model.Snippet, error) {
	return s.snippets.GetByID(ctx, id)
}

// resolveFolder maps a requested folder id to a nullable reference,
// dropping ids the caller does not own.
func (s *SnippetService) resolveFolder(ctx context.Context, userID, folderID string) *string {
	if folderID == "" {
		return nil
	}
	if _, err := s.folders.GetOwnedFolder(ctx, folderID, userID); err != nil {
		s.logger.Warn("dropping unknown folder reference", "folder_id", folderID, "user_id", userID)
		return nil
	}
	return &folderID
}

func validateSnippetInput(input SnippetInput) error {
	if len(input.Title) > MaxTitleLength {
		return apperror.ValidationFailed("title",
			fmt.Sprintf("title must be at most %d characters", MaxTitleLength))
	}
	if len(input.Code) > MaxCodeLength {
		return apperror.ValidationFailed("code",
			fmt.Sprintf("code must be at most %d bytes", MaxCodeLength))
	}
	return nil
}

// normalizeTags trims, lowercases, and dedupes tag names, dropping
// empties. Order of first appearance is preserved.
func normalizeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := []string{}
	for _, tag := range tags {
		name := strings.ToLower(strings.TrimSpace(tag))
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}

func hasAllTags(have, want []string) bool {
	set := make(map[string]struct{}, len(have))
	for _, t := range have {
		set[strings.ToLower(t)] = struct{}{}
	}
	for _, t := range want {
		if _, ok := set[t]; !ok {
			return false
		}
	}
	return true
}
