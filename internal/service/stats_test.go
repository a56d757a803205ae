package service

import (
	"context"
	"fmt"
	"reflect"
	"testing"
)

func TestStats_Empty(t *testing.T) {
	db := newTestDB(t)
	stats := NewStatsService(db, testLogger())
	user := createUser(t, db, "alice")

	got, err := stats.Get(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.TotalSnippets != 0 || got.TotalTags != 0 || len(got.RecentSnippets) != 0 {
		t.Errorf("empty stats = %+v, want zeros", got)
	}
}

func TestStats_TagCountUsesRecentWindow(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	snippets := NewSnippetService(db, db, testLogger())
	stats := NewStatsService(db, testLogger())
	user := createUser(t, db, "alice")

	// The oldest snippet's tag falls outside the five-snippet window, so
	// it is invisible to TotalTags even though the snippet itself counts.
	if _, err := snippets.Create(ctx, user.ID, SnippetInput{
		Title: "ancient", Language: "go", Tags: []string{"forgotten"},
	}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	for i := 0; i < 5; i++ {
		if _, err := snippets.Create(ctx, user.ID, SnippetInput{
			Title: fmt.Sprintf("recent-%d", i), Language: "go", Tags: []string{"fresh"},
		}); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	got, err := stats.Get(ctx, user.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}

	if got.TotalSnippets != 6 {
		t.Errorf("TotalSnippets = %d, want 6", got.TotalSnippets)
	}
	if got.TotalTags != 1 {
		t.Errorf("TotalTags = %d, want 1 (only tags on recent snippets count)", got.TotalTags)
	}
	if len(got.RecentSnippets) != 5 {
		t.Errorf("RecentSnippets = %d, want 5", len(got.RecentSnippets))
	}
	if !reflect.DeepEqual(got.LanguageDistribution, map[string]int{"go": 6}) {
		t.Errorf("LanguageDistribution = %v, want map[go:6]", got.LanguageDistribution)
	}
}
