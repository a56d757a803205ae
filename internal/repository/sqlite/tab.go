package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/gupta-8/code-snippet/internal/model"
	"github.com/gupta-8/code-snippet/internal/repository"
)

var _ repository.TabRepository = (*DB)(nil)

// ListTabs returns the saved tab snapshot ordered by position.
func (db *DB) ListTabs(ctx context.Context) ([]model.OpenTab, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT snippet_id, tab_order, is_active FROM open_tabs ORDER BY tab_order`,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: querying open tabs: %w", err)
	}
	defer rows.Close()

	tabs := []model.OpenTab{}
	for rows.Next() {
		var t model.OpenTab
		if err := rows.Scan(&t.SnippetID, &t.Order, &t.IsActive); err != nil {
			return nil, fmt.Errorf("sqlite: scanning open tab: %w", err)
		}
		tabs = append(tabs, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating open tabs: %w", err)
	}
	return tabs, nil
}

// ReplaceTabs swaps the entire tab set atomically. An empty slice clears
// all saved tabs. Tabs pointing at snippets that no longer exist are
// skipped rather than failing the whole replace; the frontend may resend
// a stale snapshot after a delete.
func (db *DB) ReplaceTabs(ctx context.Context, tabs []model.OpenTab) error {
	return db.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM open_tabs`); err != nil {
			return fmt.Errorf("clearing open tabs: %w", err)
		}
		for _, t := range tabs {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO open_tabs (snippet_id, tab_order, is_active)
				 SELECT id, ?, ? FROM snippets WHERE id = ?`,
				t.Order, t.IsActive, t.SnippetID,
			)
			if err != nil {
				return fmt.Errorf("inserting open tab: %w", err)
			}
		}
		return nil
	})
}
