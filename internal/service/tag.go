package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/gupta-8/code-snippet/internal/apperror"
	"github.com/gupta-8/code-snippet/internal/model"
	"github.com/gupta-8/code-snippet/internal/repository"
)

const MaxTagNameLength = 50

// TagService manages the tag namespace. Tag rows are global and shared
// between users, but listings are derived from the caller's snippets, so
// a user only ever sees tags they actually use.
type TagService struct {
	tags     repository.TagRepository
	snippets repository.SnippetRepository
	logger   *slog.Logger
}

func NewTagService(
	tags repository.TagRepository,
	snippets repository.SnippetRepository,
	logger *slog.Logger,
) *TagService {
	return &TagService{tags: tags, snippets: snippets, logger: logger}
}

// List returns the tags used by the caller's snippets with per-user
// usage counts, sorted by name. The counts come from the caller's
// snippets, not from the global association table.
func (s *TagService) List(ctx context.Context, userID string) ([]model.Tag, error) {
	snippets, err := s.snippets.Search(ctx, repository.SnippetFilter{UserID: userID})
	if err != nil {
		return nil, err
	}

	counts := map[string]int{}
	for _, snippet := range snippets {
		for _, name := range snippet.Tags {
			counts[strings.ToLower(name)]++
		}
	}
	if len(counts) == 0 {
		return []model.Tag{}, nil
	}

	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}

	tags, err := s.tags.GetTagsByNames(ctx, names)
	if err != nil {
		return nil, err
	}

	for i := range tags {
		tags[i].SnippetCount = counts[tags[i].Name]
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i].Name < tags[j].Name })
	return tags, nil
}

// Create adds a tag explicitly, ahead of any snippet using it. The name
// is normalized the same way snippet tags are.
func (s *TagService) Create(ctx context.Context, name string) (*model.Tag, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return nil, apperror.ValidationFailed("name", "tag name is required")
	}
	if len(name) > MaxTagNameLength {
		return nil, apperror.ValidationFailed("name",
			fmt.Sprintf("tag name must be at most %d characters", MaxTagNameLength))
	}

	tag := &model.Tag{Name: name}
	if err := s.tags.CreateTag(ctx, tag); err != nil {
		return nil, err
	}
	return tag, nil
}

// Delete removes a tag and every snippet association it has.
func (s *TagService) Delete(ctx context.Context, id string) error {
	if err := s.tags.DeleteTag(ctx, id); err != nil {
		return err
	}
	s.logger.Info("tag deleted", "tag_id", id)
	return nil
}

// Cleanup reaps tags no snippet references any more and reports how many
// were removed.
func (s *TagService) Cleanup(ctx context.Context) (int, error) {
	removed, err := s.tags.DeleteOrphanTags(ctx)
	if err != nil {
		return 0, err
	}
	if removed > 0 {
		s.logger.Info("orphan tags removed", "count", removed)
	}
	return removed, nil
}
