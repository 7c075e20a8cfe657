package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/MikeSquared-Agency/linekb/internal/knowledge"
)

// UpsertResult counts how a batch landed in qa_items.
type UpsertResult struct {
	Inserted int `json:"inserted"`
	Updated  int `json:"updated"`
}

// UpsertEntries writes a batch in one transaction. Rows are keyed by question
// and account (the source label without its embedded-FAQ marker), so a pair
// and an explicit FAQ for the same question share one row. The better ranked
// entry (lower priority number, ties go to the newer one) owns the content;
// priority only ever moves towards 1.
func (s *Store) UpsertEntries(ctx context.Context, origin string, entries []knowledge.Entry) (UpsertResult, error) {
	var res UpsertResult
	if len(entries) == 0 {
		return res, nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return res, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, e := range entries {
		var inserted bool
		err := tx.QueryRow(ctx, `
			INSERT INTO qa_items (id, category, question, answer, keywords, priority, is_active, source, account, origin, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, now(), now())
			ON CONFLICT (question, account)
			DO UPDATE SET
				category = CASE WHEN EXCLUDED.priority <= qa_items.priority THEN EXCLUDED.category ELSE qa_items.category END,
				answer = CASE WHEN EXCLUDED.priority <= qa_items.priority THEN EXCLUDED.answer ELSE qa_items.answer END,
				keywords = CASE WHEN EXCLUDED.priority <= qa_items.priority THEN EXCLUDED.keywords ELSE qa_items.keywords END,
				source = CASE WHEN EXCLUDED.priority <= qa_items.priority THEN EXCLUDED.source ELSE qa_items.source END,
				priority = LEAST(qa_items.priority, EXCLUDED.priority),
				origin = EXCLUDED.origin,
				updated_at = now()
			RETURNING (xmax = 0)`,
			uuid.New(), e.Category, e.Question, e.Answer, e.Keywords, e.Priority, e.IsActive, e.Source,
			knowledge.BaseSource(e.Source), origin,
		).Scan(&inserted)
		if err != nil {
			return UpsertResult{}, fmt.Errorf("upsert entry: %w", err)
		}
		if inserted {
			res.Inserted++
		} else {
			res.Updated++
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return UpsertResult{}, fmt.Errorf("commit: %w", err)
	}
	return res, nil
}

// EntryRow is a stored entry with its bookkeeping columns.
type EntryRow struct {
	ID uuid.UUID `json:"id"`
	knowledge.Entry
	Origin    string    `json:"origin"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ListOpts controls filtering and pagination for ListEntries.
type ListOpts struct {
	Category   string
	ActiveOnly bool
	Limit      int
	Offset     int
}

const defaultListLimit = 100

// ListEntries returns entries ordered by priority, then newest first.
func (s *Store) ListEntries(ctx context.Context, opts ListOpts) ([]EntryRow, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	query := `
		SELECT id, category, question, answer, keywords, priority, is_active, source, origin, created_at, updated_at
		FROM qa_items
		WHERE ($1 = '' OR category = $1)
		AND (NOT $2 OR is_active)
		ORDER BY priority, updated_at DESC
		LIMIT $3 OFFSET $4`

	rows, err := s.pool.Query(ctx, query, opts.Category, opts.ActiveOnly, limit, opts.Offset)
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()

	out := []EntryRow{}
	for rows.Next() {
		var r EntryRow
		if err := rows.Scan(&r.ID, &r.Category, &r.Question, &r.Answer, &r.Keywords, &r.Priority,
			&r.IsActive, &r.Source, &r.Origin, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan entry row: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entry rows: %w", err)
	}
	return out, nil
}

// GetEntry fetches one entry by id.
func (s *Store) GetEntry(ctx context.Context, id uuid.UUID) (*EntryRow, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, category, question, answer, keywords, priority, is_active, source, origin, created_at, updated_at
		FROM qa_items WHERE id = $1`, id)

	var r EntryRow
	err := row.Scan(&r.ID, &r.Category, &r.Question, &r.Answer, &r.Keywords, &r.Priority,
		&r.IsActive, &r.Source, &r.Origin, &r.CreatedAt, &r.UpdatedAt)
	if err == pgx.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// SetActive toggles whether an entry is served.
func (s *Store) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE qa_items SET is_active = $1, updated_at = now()
		WHERE id = $2`,
		active, id,
	)
	if err != nil {
		return fmt.Errorf("set active: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
