package sqlite

import (
	"context"
	"reflect"
	"testing"

	"github.com/gupta-8/code-snippet/internal/model"
)

func TestTabs_ReplaceRoundTrip(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	user := createTestUser(t, db, "alice")

	a := createTestSnippet(t, db, user.ID, "a")
	b := createTestSnippet(t, db, user.ID, "b")

	want := []model.OpenTab{
		{SnippetID: b.ID, Order: 0, IsActive: false},
		{SnippetID: a.ID, Order: 1, IsActive: true},
	}
	if err := db.ReplaceTabs(ctx, want); err != nil {
		t.Fatalf("ReplaceTabs: %v", err)
	}

	got, err := db.ListTabs(ctx)
	if err != nil {
		t.Fatalf("ListTabs: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("tabs = %+v, want %+v", got, want)
	}
}

func TestTabs_ReplaceDiscardsOldSet(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	user := createTestUser(t, db, "alice")

	a := createTestSnippet(t, db, user.ID, "a")
	b := createTestSnippet(t, db, user.ID, "b")

	first := []model.OpenTab{{SnippetID: a.ID, Order: 0, IsActive: true}}
	if err := db.ReplaceTabs(ctx, first); err != nil {
		t.Fatalf("ReplaceTabs: %v", err)
	}

	second := []model.OpenTab{{SnippetID: b.ID, Order: 0, IsActive: true}}
	if err := db.ReplaceTabs(ctx, second); err != nil {
		t.Fatalf("ReplaceTabs: %v", err)
	}

	got, err := db.ListTabs(ctx)
	if err != nil {
		t.Fatalf("ListTabs: %v", err)
	}
	if len(got) != 1 || got[0].SnippetID != b.ID {
		t.Errorf("tabs = %+v, want just snippet b", got)
	}
}

func TestTabs_ReplaceSkipsDanglingSnippets(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	user := createTestUser(t, db, "alice")

	a := createTestSnippet(t, db, user.ID, "a")

	tabs := []model.OpenTab{
		{SnippetID: a.ID, Order: 0, IsActive: true},
		{SnippetID: "gone-snippet-id", Order: 1, IsActive: false},
	}
	if err := db.ReplaceTabs(ctx, tabs); err != nil {
		t.Fatalf("ReplaceTabs: %v", err)
	}

	got, err := db.ListTabs(ctx)
	if err != nil {
		t.Fatalf("ListTabs: %v", err)
	}
	if len(got) != 1 || got[0].SnippetID != a.ID {
		t.Errorf("tabs = %+v, want just snippet a", got)
	}
}

func TestTabs_EmptyReplaceClears(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	user := createTestUser(t, db, "alice")

	a := createTestSnippet(t, db, user.ID, "a")
	if err := db.ReplaceTabs(ctx, []model.OpenTab{{SnippetID: a.ID}}); err != nil {
		t.Fatalf("ReplaceTabs: %v", err)
	}

	if err := db.ReplaceTabs(ctx, []model.OpenTab{}); err != nil {
		t.Fatalf("ReplaceTabs(empty): %v", err)
	}

	got, err := db.ListTabs(ctx)
	if err != nil {
		t.Fatalf("ListTabs: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("tabs after clear = %+v, want empty", got)
	}
}
