package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/gupta-8/code-snippet/internal/model"
	"github.com/gupta-8/code-snippet/internal/repository"
)

// Stats is the dashboard summary payload.
//
// TotalTags counts the distinct tags on the recent snippets below, not
// across the whole collection. Clients display the two numbers together,
// so the window has to stay the same for both.
type Stats struct {
	TotalSnippets        int             `json:"totalSnippets"`
	TotalTags            int             `json:"totalTags"`
	LanguageDistribution map[string]int  `json:"languageDistribution"`
	RecentSnippets       []model.Snippet `json:"recentSnippets"`
}

const recentSnippetWindow = 5

// StatsService computes the dashboard summary.
type StatsService struct {
	snippets repository.SnippetRepository
	logger   *slog.Logger
}

func NewStatsService(snippets repository.SnippetRepository, logger *slog.Logger) *StatsService {
	return &StatsService{snippets: snippets, logger: logger}
}

func (s *StatsService) Get(ctx context.Context, userID string) (*Stats, error) {
	total, err := s.snippets.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	languages, err := s.snippets.LanguageCounts(ctx, userID)
	if err != nil {
		return nil, err
	}

	recent, err := s.snippets.ListByUser(ctx, userID,
		repository.ListOptions{Limit: recentSnippetWindow})
	if err != nil {
		return nil, err
	}

	tagSet := map[string]struct{}{}
	for _, snippet := range recent {
		for _, name := range snippet.Tags {
			tagSet[strings.ToLower(name)] = struct{}{}
		}
	}

	return &Stats{
		TotalSnippets:        total,
		TotalTags:            len(tagSet),
		LanguageDistribution: languages,
		RecentSnippets:       recent,
	}, nil
}
