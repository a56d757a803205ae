package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/gupta-8/code-snippet/internal/model"
	"github.com/gupta-8/code-snippet/internal/repository"
)

// ExportVersion identifies the bundle format. Import accepts bundles of
// any version; the field exists for the frontend's benefit.
const ExportVersion = "2.0"

// ExportBundle is the portable backup format: every snippet the user
// owns plus the distinct tags those snippets use.
type ExportBundle struct {
	Version    string          `json:"version"`
	ExportedAt time.Time       `json:"exportedAt"`
	Snippets   []model.Snippet `json:"snippets"`
	Tags       []model.Tag     `json:"tags"`
}

// ImportResult summarizes a best-effort import run.
type ImportResult struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors"`
}

// TransferService handles bulk export and import of a user's snippets.
type TransferService struct {
	snippets repository.SnippetRepository
	tags     repository.TagRepository
	logger   *slog.Logger
}

func NewTransferService(
	snippets repository.SnippetRepository,
	tags repository.TagRepository,
	logger *slog.Logger,
) *TransferService {
	return &TransferService{snippets: snippets, tags: tags, logger: logger}
}

// Export gathers all of the user's snippets into a bundle. The tag
// entries carry a zero snippet count; counts are a live listing concern,
// not part of the backup.
func (s *TransferService) Export(ctx context.Context, userID string) (*ExportBundle, error) {
	snippets, err := s.snippets.Search(ctx, repository.SnippetFilter{UserID: userID})
	if err != nil {
		return nil, err
	}

	names := map[string]struct{}{}
	for _, snippet := range snippets {
		for _, name := range snippet.Tags {
			names[strings.ToLower(name)] = struct{}{}
		}
	}
	nameList := make([]string, 0, len(names))
	for name := range names {
		nameList = append(nameList, name)
	}

	tags, err := s.tags.GetTagsByNames(ctx, nameList)
	if err != nil {
		return nil, err
	}
	for i := range tags {
		tags[i].SnippetCount = 0
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i].Name < tags[j].Name })

	return &ExportBundle{
		Version:    ExportVersion,
		ExportedAt: time.Now().UTC(),
		Snippets:   snippets,
		Tags:       tags,
	}, nil
}

// Import stores a batch of snippets for the user. Items are validated
// one by one: bad items are skipped with an error message while the rest
// import, and the accepted set commits as a single batch. Imported
// snippets get fresh ids and never reference folders.
func (s *TransferService) Import(ctx context.Context, userID string, items []SnippetInput) (*ImportResult, error) {
	result := &ImportResult{Errors: []string{}}
	accepted := []*model.Snippet{}

	for _, item := range items {
		if item.Title == "" {
			item.Title = "Untitled Snippet"
		}
		if item.Language == "" {
			item.Language = "javascript"
		}
		if err := validateSnippetInput(item); err != nil {
			result.Skipped++
			result.Errors = append(result.Errors,
				fmt.Sprintf("Error importing '%s': %s", item.Title, err.Error()))
			continue
		}
		accepted = append(accepted, &model.Snippet{
			Title:       item.Title,
			Description: item.Description,
			Code:        item.Code,
			Language:    item.Language,
			Tags:        normalizeTags(item.Tags),
			UserID:      userID,
		})
	}

	if len(accepted) > 0 {
		if err := s.snippets.CreateBatch(ctx, accepted); err != nil {
			return nil, err
		}
	}
	result.Imported = len(accepted)

	s.logger.Info("snippets imported",
		"user_id", userID, "imported", result.Imported, "skipped", result.Skipped)
	return result, nil
}
