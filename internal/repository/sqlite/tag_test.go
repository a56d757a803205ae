package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/gupta-8/code-snippet/internal/apperror"
	"github.com/gupta-8/code-snippet/internal/model"
)

func TestCreateTag_Duplicate(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	if err := db.CreateTag(ctx, &model.Tag{Name: "go"}); err != nil {
		t.Fatalf("CreateTag: %v", err)
	}

	err := db.CreateTag(ctx, &model.Tag{Name: "go"})
	if !errors.Is(err, apperror.ErrConflict) {
		t.Fatalf("duplicate tag error = %v, want ErrConflict", err)
	}
}

func TestDeleteTag_RemovesAssociations(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	user := createTestUser(t, db, "alice")

	snippet := createTestSnippet(t, db, user.ID, "tagged", "doomed", "kept")

	tags, err := db.GetTagsByNames(ctx, []string{"doomed"})
	if err != nil || len(tags) != 1 {
		t.Fatalf("GetTagsByNames: %v (%d rows)", err, len(tags))
	}

	if err := db.DeleteTag(ctx, tags[0].ID); err != nil {
		t.Fatalf("DeleteTag: %v", err)
	}

	got, err := db.GetOwned(ctx, snippet.ID, user.ID)
	if err != nil {
		t.Fatalf("GetOwned: %v", err)
	}
	if len(got.Tags) != 1 || got.Tags[0] != "kept" {
		t.Errorf("tags after delete = %v, want [kept]", got.Tags)
	}
}

func TestDeleteTag_NotFound(t *testing.T) {
	db := newTestDB(t)

	err := db.DeleteTag(context.Background(), "ghost")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("DeleteTag error = %v, want ErrNotFound", err)
	}
}

func TestDeleteOrphanTags(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	user := createTestUser(t, db, "alice")

	createTestSnippet(t, db, user.ID, "live", "used")
	if err := db.CreateTag(ctx, &model.Tag{Name: "orphan-a"}); err != nil {
		t.Fatalf("CreateTag: %v", err)
	}
	if err := db.CreateTag(ctx, &model.Tag{Name: "orphan-b"}); err != nil {
		t.Fatalf("CreateTag: %v", err)
	}

	removed, err := db.DeleteOrphanTags(ctx)
	if err != nil {
		t.Fatalf("DeleteOrphanTags: %v", err)
	}
	if removed != 2 {
		t.Errorf("removed = %d, want 2", removed)
	}

	// The used tag survives.
	tags, err := db.GetTagsByNames(ctx, []string{"used", "orphan-a", "orphan-b"})
	if err != nil {
		t.Fatalf("GetTagsByNames: %v", err)
	}
	if len(tags) != 1 || tags[0].Name != "used" {
		t.Errorf("surviving tags = %+v, want just 'used'", tags)
	}
}
