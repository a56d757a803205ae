package service

import (
	"context"
	"strings"
	"testing"
)

func TestExport_BundleShape(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	snippets := NewSnippetService(db, db, testLogger())
	transfer := NewTransferService(db, db, testLogger())
	user := createUser(t, db, "alice")

	if _, err := snippets.Create(ctx, user.ID, SnippetInput{
		Title: "a", Language: "go", Tags: []string{"shared", "one"},
	}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := snippets.Create(ctx, user.ID, SnippetInput{
		Title: "b", Language: "go", Tags: []string{"shared"},
	}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	bundle, err := transfer.Export(ctx, user.ID)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}

	if bundle.Version != "2.0" {
		t.Errorf("version = %q, want %q", bundle.Version, "2.0")
	}
	if len(bundle.Snippets) != 2 {
		t.Errorf("snippets = %d, want 2", len(bundle.Snippets))
	}
	// Tags are deduplicated and carry no counts.
	if len(bundle.Tags) != 2 {
		t.Fatalf("tags = %d, want 2", len(bundle.Tags))
	}
	for _, tag := range bundle.Tags {
		if tag.SnippetCount != 0 {
			t.Errorf("tag %q SnippetCount = %d, want 0", tag.Name, tag.SnippetCount)
		}
	}
}

func TestExport_OnlyOwnSnippets(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	snippets := NewSnippetService(db, db, testLogger())
	transfer := NewTransferService(db, db, testLogger())
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	if _, err := snippets.Create(ctx, bob.ID, SnippetInput{Title: "bobs", Language: "go"}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	bundle, err := transfer.Export(ctx, alice.ID)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if len(bundle.Snippets) != 0 {
		t.Errorf("alice's export has %d snippets, want 0", len(bundle.Snippets))
	}
}

func TestImport_SkipsBadItems(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	snippets := NewSnippetService(db, db, testLogger())
	transfer := NewTransferService(db, db, testLogger())
	user := createUser(t, db, "alice")

	result, err := transfer.Import(ctx, user.ID, []SnippetInput{
		{Title: "good one", Code: "print(1)", Language: "python"},
		{Title: "too big", Code: strings.Repeat("x", MaxCodeLength+1), Language: "go"},
		{Title: "good two", Code: "print(2)", Language: "python", Tags: []string{"Imported"}},
	})
	if err != nil {
		t.Fatalf("Import: %v", err)
	}

	if result.Imported != 2 || result.Skipped != 1 {
		t.Errorf("imported/skipped = %d/%d, want 2/1", result.Imported, result.Skipped)
	}
	if len(result.Errors) != 1 || !strings.Contains(result.Errors[0], "Error importing 'too big'") {
		t.Errorf("errors = %v, want one naming 'too big'", result.Errors)
	}

	// The good items landed, with normalized tags.
	stored, err := snippets.List(ctx, user.ID, 0, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(stored) != 2 {
		t.Fatalf("stored = %d snippets, want 2", len(stored))
	}
}

func TestImport_DefaultsForOmittedFields(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	snippets := NewSnippetService(db, db, testLogger())
	transfer := NewTransferService(db, db, testLogger())
	user := createUser(t, db, "alice")

	result, err := transfer.Import(ctx, user.ID, []SnippetInput{{Code: "x = 1"}})
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if result.Imported != 1 {
		t.Fatalf("imported = %d, want 1", result.Imported)
	}

	stored, err := snippets.List(ctx, user.ID, 0, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if stored[0].Title != "Untitled Snippet" || stored[0].Language != "javascript" {
		t.Errorf("defaults = %q/%q, want Untitled Snippet/javascript",
			stored[0].Title, stored[0].Language)
	}
}
