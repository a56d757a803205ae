package service

import (
	"context"
	"log/slog"

	"github.com/gupta-8/code-snippet/internal/model"
	"github.com/gupta-8/code-snippet/internal/repository"
)

// TabService persists the editor's open-tab snapshot. The snapshot is a
// single global set, saved wholesale: every save replaces whatever was
// stored before, and an empty save clears it.
type TabService struct {
	tabs   repository.TabRepository
	logger *slog.Logger
}

func NewTabService(tabs repository.TabRepository, logger *slog.Logger) *TabService {
	return &TabService{tabs: tabs, logger: logger}
}

func (s *TabService) Get(ctx context.Context) ([]model.OpenTab, error) {
	return s.tabs.ListTabs(ctx)
}

func (s *TabService) Save(ctx context.Context, tabs []model.OpenTab) error {
	if tabs == nil {
		tabs = []model.OpenTab{}
	}
	if err := s.tabs.ReplaceTabs(ctx, tabs); err != nil {
		return err
	}
	s.logger.Debug("tab snapshot saved", "count", len(tabs))
	return nil
}
