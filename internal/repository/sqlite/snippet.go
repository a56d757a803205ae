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

var _ repository.SnippetRepository = (*DB)(nil)

const snippetColumns = `id, title, description, code, language, user_id, folder_id, is_favorite, created_at, updated_at`

// Create inserts the snippet and its tag associations in one transaction.
// snippet.Tags must already be trimmed, lowercased, and de-duplicated by
// the service; missing tag rows are created lazily here.
func (db *DB) Create(ctx context.Context, snippet *model.Snippet) error {
	snippet.ID = xid.New().String()
	now := time.Now().UTC()
	snippet.CreatedAt = now
	snippet.UpdatedAt = now

	return db.inTx(ctx, func(tx *sql.Tx) error {
		return insertSnippet(ctx, tx, snippet)
	})
}

// CreateBatch inserts many snippets with their tags in a single
// transaction: either the whole (pre-validated) batch lands or none of it.
func (db *DB) CreateBatch(ctx context.Context, snippets []*model.Snippet) error {
	now := time.Now().UTC()
	for _, s := range snippets {
		s.ID = xid.New().String()
		s.CreatedAt = now
		s.UpdatedAt = now
	}

	return db.inTx(ctx, func(tx *sql.Tx) error {
		for _, s := range snippets {
			if err := insertSnippet(ctx, tx, s); err != nil {
				return err
			}
		}
		return nil
	})
}

func insertSnippet(ctx context.Context, tx *sql.Tx, snippet *model.Snippet) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO snippets (`+snippetColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		snippet.ID,
		snippet.Title,
		snippet.Description,
		snippet.Code,
		snippet.Language,
		nullableString(snippet.UserID),
		nullablePtr(snippet.FolderID),
		snippet.IsFavorite,
		snippet.CreatedAt,
		snippet.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting snippet: %w", err)
	}

	return attachTags(ctx, tx, snippet.ID, snippet.Tags)
}

// attachTags links the snippet to every named tag, creating tag rows that
// don't exist yet. Two requests racing the same new name both survive: the
// loser of the INSERT re-selects the winner's row.
func attachTags(ctx context.Context, tx *sql.Tx, snippetID string, names []string) error {
	for _, name := range names {
		tagID, err := ensureTag(ctx, tx, name)
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO snippet_tags (snippet_id, tag_id) VALUES (?, ?)`,
			snippetID, tagID,
		)
		if err != nil {
			return fmt.Errorf("sqlite: associating tag %q: %w", name, err)
		}
	}
	return nil
}

func ensureTag(ctx context.Context, tx *sql.Tx, name string) (string, error) {
	var id string
	err := tx.QueryRowContext(ctx, `SELECT id FROM tags WHERE name = ?`, name).Scan(&id)
	if err == nil {
		return id, nil
	}
	if err != sql.ErrNoRows {
		return "", fmt.Errorf("sqlite: looking up tag %q: %w", name, err)
	}

	id = xid.New().String()
	_, err = tx.ExecContext(ctx,
		`INSERT INTO tags (id, name, created_at) VALUES (?, ?, ?)`,
		id, name, time.Now().UTC(),
	)
	if err == nil {
		return id, nil
	}
	if !isUniqueViolation(err) {
		return "", fmt.Errorf("sqlite: inserting tag %q: %w", name, err)
	}

	// Lost the race to a concurrent request — the tag exists now, reuse it.
	if err := tx.QueryRowContext(ctx, `SELECT id FROM tags WHERE name = ?`, name).Scan(&id); err != nil {
		return "", fmt.Errorf("sqlite: re-selecting tag %q: %w", name, err)
	}
	return id, nil
}

// GetByID looks up a snippet without an owner check. Only the public share
// endpoint uses this.
func (db *DB) GetByID(ctx context.Context, id string) (*model.Snippet, error) {
	return db.getSnippet(ctx, `WHERE id = ?`, id)
}

// GetOwned looks up a snippet scoped to its owner. A foreign-owned ID is
// indistinguishable from an absent one.
func (db *DB) GetOwned(ctx context.Context, id, userID string) (*model.Snippet, error) {
	return db.getSnippet(ctx, `WHERE id = ? AND user_id = ?`, id, userID)
}

func (db *DB) getSnippet(ctx context.Context, where string, args ...any) (*model.Snippet, error) {
	row := db.conn.QueryRowContext(ctx,
		`SELECT `+snippetColumns+` FROM snippets `+where, args...)

	s, err := scanSnippet(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("snippet", fmt.Sprint(args[0]))
		}
		return nil, fmt.Errorf("sqlite: getting snippet: %w", err)
	}

	if err := db.loadTags(ctx, []*model.Snippet{s}); err != nil {
		return nil, err
	}
	return s, nil
}

// ListByUser returns the user's snippets ordered newest-updated first.
func (db *DB) ListByUser(ctx context.Context, userID string, opts repository.ListOptions) ([]model.Snippet, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 100
	}
	offset := opts.Offset
	if offset < 0 {
		offset = 0
	}

	rows, err := db.conn.QueryContext(ctx,
		`SELECT `+snippetColumns+` FROM snippets
		 WHERE user_id = ?
		 ORDER BY updated_at DESC
		 LIMIT ? OFFSET ?`,
		userID, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing snippets: %w", err)
	}
	return db.collectSnippets(ctx, rows)
}

// Search applies the user scope plus the optional substring and language
// filters in SQL, newest-updated first, with no limit. Tag filtering
// happens upstream in the service, in memory.
func (db *DB) Search(ctx context.Context, filter repository.SnippetFilter) ([]model.Snippet, error) {
	query := `SELECT ` + snippetColumns + ` FROM snippets WHERE user_id = ?`
	args := []any{filter.UserID}

	if filter.Query != "" {
		// LOWER + LIKE gives case-insensitive substring match across the
		// three text fields.
		pattern := "%" + filter.Query + "%"
		query += ` AND (LOWER(title) LIKE LOWER(?) OR LOWER(code) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?))`
		args = append(args, pattern, pattern, pattern)
	}
	if filter.Language != "" {
		query += ` AND language = ?`
		args = append(args, filter.Language)
	}
	query += ` ORDER BY updated_at DESC`

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: searching snippets: %w", err)
	}
	return db.collectSnippets(ctx, rows)
}

func (db *DB) collectSnippets(ctx context.Context, rows *sql.Rows) ([]model.Snippet, error) {
	defer rows.Close()

	var snippets []model.Snippet
	for rows.Next() {
		s, err := scanSnippet(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scanning snippet row: %w", err)
		}
		snippets = append(snippets, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating snippets: %w", err)
	}

	ptrs := make([]*model.Snippet, len(snippets))
	for i := range snippets {
		ptrs[i] = &snippets[i]
	}
	if err := db.loadTags(ctx, ptrs); err != nil {
		return nil, err
	}

	if snippets == nil {
		snippets = []model.Snippet{}
	}
	return snippets, nil
}

func scanSnippet(scan func(...any) error) (*model.Snippet, error) {
	var (
		s        model.Snippet
		userID   sql.NullString
		folderID sql.NullString
	)
	err := scan(
		&s.ID, &s.Title, &s.Description, &s.Code, &s.Language,
		&userID, &folderID, &s.IsFavorite, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	s.UserID = userID.String
	if folderID.Valid {
		s.FolderID = &folderID.String
	}
	s.Tags = []string{}
	return &s, nil
}

// loadTags fills Tags for every snippet in one query over the association
// table. Joins are explicit here — nothing loads lazily on field access.
func (db *DB) loadTags(ctx context.Context, snippets []*model.Snippet) error {
	if len(snippets) == 0 {
		return nil
	}

	ids := make([]any, len(snippets))
	byID := make(map[string]*model.Snippet, len(snippets))
	for i, s := range snippets {
		ids[i] = s.ID
		byID[s.ID] = s
	}

	rows, err := db.conn.QueryContext(ctx,
		`SELECT st.snippet_id, t.name
		 FROM snippet_tags st
		 JOIN tags t ON t.id = st.tag_id
		 WHERE st.snippet_id IN (`+placeholders(len(ids))+`)
		 ORDER BY t.name`,
		ids...,
	)
	if err != nil {
		return fmt.Errorf("sqlite: loading snippet tags: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var snippetID, name string
		if err := rows.Scan(&snippetID, &name); err != nil {
			return fmt.Errorf("sqlite: scanning tag row: %w", err)
		}
		if s, ok := byID[snippetID]; ok {
			s.Tags = append(s.Tags, name)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("sqlite: iterating snippet tags: %w", err)
	}
	return nil
}

// Update rewrites every mutable column, re-stamps updated_at, and replaces
// the snippet's tag set with snippet.Tags — all in one transaction. The
// service implements partial updates by fetching first and mutating only
// the provided fields.
func (db *DB) Update(ctx context.Context, snippet *model.Snippet) error {
	snippet.UpdatedAt = time.Now().UTC()

	return db.inTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx,
			`UPDATE snippets
			 SET title = ?, description = ?, code = ?, language = ?,
			     folder_id = ?, is_favorite = ?, updated_at = ?
			 WHERE id = ? AND user_id = ?`,
			snippet.Title,
			snippet.Description,
			snippet.Code,
			snippet.Language,
			nullablePtr(snippet.FolderID),
			snippet.IsFavorite,
			snippet.UpdatedAt,
			snippet.ID,
			snippet.UserID,
		)
		if err != nil {
			return fmt.Errorf("sqlite: updating snippet %s: %w", snippet.ID, err)
		}

		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("sqlite: checking rows affected: %w", err)
		}
		if affected == 0 {
			return apperror.NotFound("snippet", snippet.ID)
		}

		if _, err := tx.ExecContext(ctx,
			`DELETE FROM snippet_tags WHERE snippet_id = ?`, snippet.ID,
		); err != nil {
			return fmt.Errorf("sqlite: clearing snippet tags: %w", err)
		}
		return attachTags(ctx, tx, snippet.ID, snippet.Tags)
	})
}

// Delete removes an owner-scoped snippet. The snippet_tags rows go with it
// via ON DELETE CASCADE; the tag rows themselves stay.
func (db *DB) Delete(ctx context.Context, id, userID string) error {
	result, err := db.conn.ExecContext(ctx,
		`DELETE FROM snippets WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("sqlite: deleting snippet %s: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if affected == 0 {
		return apperror.NotFound("snippet", id)
	}
	return nil
}

// CountByUser returns the user's total snippet count.
func (db *DB) CountByUser(ctx context.Context, userID string) (int, error) {
	var count int
	err := db.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM snippets WHERE user_id = ?`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("sqlite: counting snippets: %w", err)
	}
	return count, nil
}

// LanguageCounts groups the user's snippets by language.
func (db *DB) LanguageCounts(ctx context.Context, userID string) (map[string]int, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT language, COUNT(*) FROM snippets WHERE user_id = ? GROUP BY language`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: counting languages: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var (
			lang string
			n    int
		)
		if err := rows.Scan(&lang, &n); err != nil {
			return nil, fmt.Errorf("sqlite: scanning language row: %w", err)
		}
		counts[lang] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating languages: %w", err)
	}
	return counts, nil
}

func nullableString(v string) sql.NullString {
	return sql.NullString{String: v, Valid: v != ""}
}

func nullablePtr(v *string) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *v, Valid: true}
}
