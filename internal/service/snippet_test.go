package service

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/gupta-8/code-snippet/internal/apperror"
	"github.com/gupta-8/code-snippet/internal/model"
	"github.com/gupta-8/code-snippet/internal/repository/sqlite"
)

func createUser(t *testing.T, db *sqlite.DB, username string) *model.User {
	t.Helper()
	user := &model.User{Username: username, PasswordHash: "x"}
	if err := db.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	return user
}

func TestSnippetCreate_NormalizesTags(t *testing.T) {
	db := newTestDB(t)
	svc := NewSnippetService(db, db, testLogger())
	user := createUser(t, db, "alice")

	snippet, err := svc.Create(context.Background(), user.ID, SnippetInput{
		Title:    "tagged",
		Language: "go",
		Tags:     []string{"Foo", "foo", " FOO ", "", "bar"},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if !reflect.DeepEqual(snippet.Tags, []string{"foo", "bar"}) {
		t.Errorf("tags = %v, want [foo bar]", snippet.Tags)
	}
}

func TestSnippetCreate_DropsUnknownFolder(t *testing.T) {
	db := newTestDB(t)
	svc := NewSnippetService(db, db, testLogger())
	user := createUser(t, db, "alice")

	snippet, err := svc.Create(context.Background(), user.ID, SnippetInput{
		Title:    "homeless",
		Language: "go",
		FolderID: "no-such-folder",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if snippet.FolderID != nil {
		t.Errorf("FolderID = %v, want nil", *snippet.FolderID)
	}
}

func TestSnippetCreate_RejectsOversizedCode(t *testing.T) {
	db := newTestDB(t)
	svc := NewSnippetService(db, db, testLogger())
	user := createUser(t, db, "alice")

	_, err := svc.Create(context.Background(), user.ID, SnippetInput{
		Title:    "huge",
		Language: "go",
		Code:     strings.Repeat("x", MaxCodeLength+1),
	})
	if !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("Create error = %v, want ErrValidation", err)
	}
}

func TestSnippetUpdate_FolderSentinel(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := NewSnippetService(db, db, testLogger())
	folders := NewFolderService(db, testLogger())
	user := createUser(t, db, "alice")

	folder, err := folders.Create(ctx, user.ID, "work", "")
	if err != nil {
		t.Fatalf("folder Create: %v", err)
	}
	snippet, err := svc.Create(ctx, user.ID, SnippetInput{
		Title: "filed", Language: "go", FolderID: folder.ID,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Omitting folderId leaves the folder alone.
	newTitle := "renamed"
	updated, err := svc.Update(ctx, user.ID, snippet.ID, SnippetPatch{Title: &newTitle})
	if err != nil {
		t.Fatalf("Update (title only): %v", err)
	}
	if updated.FolderID == nil || *updated.FolderID != folder.ID {
		t.Errorf("FolderID after title-only update = %v, want %q", updated.FolderID, folder.ID)
	}

	// A folder id the caller does not own is ignored, not a detach.
	unknown := "no-such-folder"
	updated, err = svc.Update(ctx, user.ID, snippet.ID, SnippetPatch{FolderID: &unknown})
	if err != nil {
		t.Fatalf("Update (unknown folder): %v", err)
	}
	if updated.FolderID == nil || *updated.FolderID != folder.ID {
		t.Errorf("FolderID after unknown-folder update = %v, want kept %q", updated.FolderID, folder.ID)
	}

	// Sending folderId "" detaches.
	empty := ""
	updated, err = svc.Update(ctx, user.ID, snippet.ID, SnippetPatch{FolderID: &empty})
	if err != nil {
		t.Fatalf("Update (detach): %v", err)
	}
	if updated.FolderID != nil {
		t.Errorf("FolderID after detach = %v, want nil", *updated.FolderID)
	}
}

func TestSnippetUpdate_ForeignSnippet(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := NewSnippetService(db, db, testLogger())
	alice := createUser(t, db, "alice")
	mallory := createUser(t, db, "mallory")

	snippet, err := svc.Create(ctx, alice.ID, SnippetInput{Title: "private", Language: "go"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	title := "stolen"
	_, err = svc.Update(ctx, mallory.ID, snippet.ID, SnippetPatch{Title: &title})
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("foreign Update error = %v, want ErrNotFound", err)
	}
}

func TestToggleFavorite(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := NewSnippetService(db, db, testLogger())
	user := createUser(t, db, "alice")

	snippet, err := svc.Create(ctx, user.ID, SnippetInput{Title: "fav", Language: "go"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	on, err := svc.ToggleFavorite(ctx, user.ID, snippet.ID)
	if err != nil {
		t.Fatalf("ToggleFavorite: %v", err)
	}
	if !on.IsFavorite {
		t.Error("first toggle should set IsFavorite")
	}

	off, err := svc.ToggleFavorite(ctx, user.ID, snippet.ID)
	if err != nil {
		t.Fatalf("ToggleFavorite: %v", err)
	}
	if off.IsFavorite {
		t.Error("second toggle should clear IsFavorite")
	}
}

func TestSearch_TagFilterRequiresAll(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := NewSnippetService(db, db, testLogger())
	user := createUser(t, db, "alice")

	mustCreate := func(title string, tags ...string) {
		t.Helper()
		if _, err := svc.Create(ctx, user.ID, SnippetInput{
			Title: title, Language: "go", Tags: tags,
		}); err != nil {
			t.Fatalf("Create %q: %v", title, err)
		}
	}
	mustCreate("both", "cli", "web")
	mustCreate("cli only", "cli")
	mustCreate("untagged")

	results, err := svc.Search(ctx, user.ID, "", "", []string{"cli", "web"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 || results[0].Title != "both" {
		t.Errorf("results = %+v, want just 'both'", results)
	}

	// Tag matching ignores case.
	results, err = svc.Search(ctx, user.ID, "", "", []string{"CLI"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 2 {
		t.Errorf("case-insensitive tag search matched %d, want 2", len(results))
	}

	// No filters at all returns everything.
	results, err = svc.Search(ctx, user.ID, "", "", nil)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 3 {
		t.Errorf("unfiltered search matched %d, want 3", len(results))
	}
}

func TestList_ClampsLimit(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := NewSnippetService(db, db, testLogger())
	user := createUser(t, db, "alice")

	for i := 0; i < 3; i++ {
		if _, err := svc.Create(ctx, user.ID, SnippetInput{Title: "s", Language: "go"}); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	// Zero and negative limits fall back to the default.
	for _, limit := range []int{0, -5} {
		got, err := svc.List(ctx, user.ID, limit, 0)
		if err != nil {
			t.Fatalf("List(limit=%d): %v", limit, err)
		}
		if len(got) != 3 {
			t.Errorf("List(limit=%d) = %d snippets, want 3", limit, len(got))
		}
	}

	got, err := svc.List(ctx, user.ID, 2, 0)
	if err != nil {
		t.Fatalf("List(limit=2): %v", err)
	}
	if len(got) != 2 {
		t.Errorf("List(limit=2) = %d snippets, want 2", len(got))
	}
}
