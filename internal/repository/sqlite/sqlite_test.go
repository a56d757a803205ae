package sqlite

import (
	"context"
	"testing"

	"github.com/gupta-8/code-snippet/internal/model"
)

// newTestDB returns a fresh in-memory database, migrated and ready.
func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(":memory:")
	if err != nil {
		t.Fatalf("New(\":memory:\"): %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func createTestUser(t *testing.T, db *DB, username string) *model.User {
	t.Helper()
	user := &model.User{Username: username, PasswordHash: "x"}
	if err := db.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("CreateUser(%q): %v", username, err)
	}
	return user
}

func createTestSnippet(t *testing.T, db *DB, userID, title string, tags ...string) *model.Snippet {
	t.Helper()
	snippet := &model.Snippet{
		Title:    title,
		Code:     "console.log('hi')",
		Language: "javascript",
		Tags:     tags,
		UserID:   userID,
	}
	if err := db.Create(context.Background(), snippet); err != nil {
		t.Fatalf("Create snippet %q: %v", title, err)
	}
	return snippet
}

func createTestFolder(t *testing.T, db *DB, userID, name string) *model.Folder {
	t.Helper()
	folder := &model.Folder{Name: name, Color: "default", UserID: userID}
	if err := db.CreateFolder(context.Background(), folder); err != nil {
		t.Fatalf("CreateFolder(%q): %v", name, err)
	}
	return folder
}
