package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/gupta-8/code-snippet/internal/apperror"
	"github.com/gupta-8/code-snippet/internal/model"
)

func TestCreateUser_AndGetBack(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	user := createTestUser(t, db, "alice")
	if user.ID == "" {
		t.Fatal("CreateUser did not assign an ID")
	}

	byID, err := db.GetUserByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetUserByID: %v", err)
	}
	if byID.Username != "alice" {
		t.Errorf("username = %q, want %q", byID.Username, "alice")
	}

	byName, err := db.GetUserByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("GetUserByUsername: %v", err)
	}
	if byName.ID != user.ID {
		t.Errorf("ID mismatch: %q vs %q", byName.ID, user.ID)
	}
}

func TestCreateUser_DuplicateUsername(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	createTestUser(t, db, "bob")

	dup := &model.User{Username: "bob", PasswordHash: "y"}
	err := db.CreateUser(ctx, dup)
	if !errors.Is(err, apperror.ErrConflict) {
		t.Fatalf("duplicate username error = %v, want ErrConflict", err)
	}
}

func TestGetUser_NotFound(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	if _, err := db.GetUserByID(ctx, "nope"); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("GetUserByID error = %v, want ErrNotFound", err)
	}
	if _, err := db.GetUserByUsername(ctx, "nope"); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("GetUserByUsername error = %v, want ErrNotFound", err)
	}
}

func TestUpsertUserByGitHubID(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	first := &model.User{Username: "octocat", GitHubID: 583231}
	if err := db.UpsertUserByGitHubID(ctx, first); err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	if first.ID == "" {
		t.Fatal("upsert did not assign an ID")
	}

	// Second sign-in with the same GitHub ID must resolve to the same
	// account, not create another.
	second := &model.User{Username: "octocat", GitHubID: 583231}
	if err := db.UpsertUserByGitHubID(ctx, second); err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("second upsert ID = %q, want %q", second.ID, first.ID)
	}
}

func TestUpsertUserByGitHubID_UsernameCollision(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	// A password account already owns the name.
	createTestUser(t, db, "taken")

	gh := &model.User{Username: "taken", GitHubID: 42}
	if err := db.UpsertUserByGitHubID(ctx, gh); err != nil {
		t.Fatalf("upsert with colliding username: %v", err)
	}
	if gh.Username == "taken" {
		t.Error("upsert kept the colliding username instead of suffixing it")
	}
}
