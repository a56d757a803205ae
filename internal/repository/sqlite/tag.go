package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/xid"

	"github.com/gupta-8/code-snippet/internal/apperror"
	"github.com/gupta-8/code-snippet/internal/model"
	"github.com/gupta-8/code-snippet/internal/repository"
)

var _ repository.TagRepository = (*DB)(nil)

// CreateTag inserts a tag row. The caller lowercases and trims the name;
// the UNIQUE constraint on name enforces global uniqueness.
func (db *DB) CreateTag(ctx context.Context, tag *model.Tag) error {
	tag.ID = xid.New().String()
	tag.CreatedAt = time.Now().UTC()

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO tags (id, name, created_at) VALUES (?, ?, ?)`,
		tag.ID, tag.Name, tag.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.Conflict(fmt.Sprintf("tag %q already exists", tag.Name))
		}
		return fmt.Errorf("sqlite: creating tag: %w", err)
	}
	return nil
}

// GetTagsByNames resolves tag names to their rows. Names absent from the
// database are simply missing from the result, not an error.
func (db *DB) GetTagsByNames(ctx context.Context, names []string) ([]model.Tag, error) {
	if len(names) == 0 {
		return []model.Tag{}, nil
	}

	args := make([]any, len(names))
	for i, name := range names {
		args[i] = name
	}

	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, name, created_at FROM tags WHERE name IN (`+placeholders(len(names))+`)`,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: querying tags by name: %w", err)
	}
	defer rows.Close()

	tags := []model.Tag{}
	for rows.Next() {
		var t model.Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("sqlite: scanning tag: %w", err)
		}
		tags = append(tags, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating tags: %w", err)
	}
	return tags, nil
}

// DeleteTag removes the tag row; snippet_tags rows cascade away with it.
func (db *DB) DeleteTag(ctx context.Context, id string) error {
	res, err := db.conn.ExecContext(ctx, `DELETE FROM tags WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: deleting tag: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking tag delete: %w", err)
	}
	if n == 0 {
		return apperror.NotFound("tag", id)
	}
	return nil
}

// DeleteOrphanTags removes every tag no snippet references any more.
func (db *DB) DeleteOrphanTags(ctx context.Context) (int, error) {
	res, err := db.conn.ExecContext(ctx, `
		DELETE FROM tags
		WHERE id NOT IN (SELECT DISTINCT tag_id FROM snippet_tags)`,
	)
	if err != nil {
		return 0, fmt.Errorf("sqlite: deleting orphan tags: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("sqlite: counting deleted tags: %w", err)
	}
	return int(n), nil
}
