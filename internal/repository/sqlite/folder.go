package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/xid"

	"github.com/gupta-8/code-snippet/internal/apperror"
	"github.com/gupta-8/code-snippet/internal/model"
	"github.com/gupta-8/code-snippet/internal/repository"
)

var _ repository.FolderRepository = (*DB)(nil)

// CreateFolder inserts a new folder for its owner.
func (db *DB) CreateFolder(ctx context.Context, folder *model.Folder) error {
	folder.ID = xid.New().String()
	folder.CreatedAt = time.Now().UTC()

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO folders (id, name, color, user_id, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		folder.ID, folder.Name, folder.Color, folder.UserID, folder.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting folder: %w", err)
	}
	return nil
}

// GetOwnedFolder looks up a folder scoped to its owner, with its member
// snippet count.
func (db *DB) GetOwnedFolder(ctx context.Context, id, userID string) (*model.Folder, error) {
	var f model.Folder
	err := db.conn.QueryRowContext(ctx,
		`SELECT f.id, f.name, f.color, f.user_id, f.created_at,
		        (SELECT COUNT(*) FROM snippets s WHERE s.folder_id = f.id)
		 FROM folders f
		 WHERE f.id = ? AND f.user_id = ?`,
		id, userID,
	).Scan(&f.ID, &f.Name, &f.Color, &f.UserID, &f.CreatedAt, &f.SnippetCount)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("folder", id)
		}
		return nil, fmt.Errorf("sqlite: getting folder %s: %w", id, err)
	}
	return &f, nil
}

// ListFoldersByUser returns the user's folders sorted by name.
func (db *DB) ListFoldersByUser(ctx context.Context, userID string) ([]model.Folder, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT f.id, f.name, f.color, f.user_id, f.created_at,
		        (SELECT COUNT(*) FROM snippets s WHERE s.folder_id = f.id)
		 FROM folders f
		 WHERE f.user_id = ?
		 ORDER BY f.name`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing folders: %w", err)
	}
	defer rows.Close()

	folders := []model.Folder{}
	for rows.Next() {
		var f model.Folder
		if err := rows.Scan(&f.ID, &f.Name, &f.Color, &f.UserID, &f.CreatedAt, &f.SnippetCount); err != nil {
			return nil, fmt.Errorf("sqlite: scanning folder row: %w", err)
		}
		folders = append(folders, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating folders: %w", err)
	}
	return folders, nil
}

// UpdateFolder rewrites the folder's name and color.
func (db *DB) UpdateFolder(ctx context.Context, folder *model.Folder) error {
	result, err := db.conn.ExecContext(ctx,
		`UPDATE folders SET name = ?, color = ? WHERE id = ? AND user_id = ?`,
		folder.Name, folder.Color, folder.ID, folder.UserID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating folder %s: %w", folder.ID, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if affected == 0 {
		return apperror.NotFound("folder", folder.ID)
	}
	return nil
}

// DeleteFolder nulls folder_id on member snippets and removes the folder
// row in one transaction. Member snippets survive folder deletion; a
// concurrent reader sees either the old state or the final one, never a
// folder-less reference to a live folder.
func (db *DB) DeleteFolder(ctx context.Context, id, userID string) error {
	return db.inTx(ctx, func(tx *sql.Tx) error {
		var exists int
		err := tx.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM folders WHERE id = ? AND user_id = ?`, id, userID,
		).Scan(&exists)
		if err != nil {
			return fmt.Errorf("sqlite: checking folder %s: %w", id, err)
		}
		if exists == 0 {
			return apperror.NotFound("folder", id)
		}

		if _, err := tx.ExecContext(ctx,
			`UPDATE snippets SET folder_id = NULL WHERE folder_id = ?`, id,
		); err != nil {
			return fmt.Errorf("sqlite: detaching snippets from folder %s: %w", id, err)
		}

		if _, err := tx.ExecContext(ctx,
			`DELETE FROM folders WHERE id = ?`, id,
		); err != nil {
			return fmt.Errorf("sqlite: deleting folder %s: %w", id, err)
		}
		return nil
	})
}
