package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/xid"

	"github.com/sakif/code-explainer/internal/apperror"
	"github.com/sakif/code-explainer/internal/model"
	"github.com/sakif/code-explainer/internal/repository"
)

// Compile-time check that *DB satisfies the repository interface.
var _ repository.ExplanationRepository = (*DB)(nil)

// Create inserts a completed explanation into history.
// The ID (xid: 20 chars, URL-safe, time-sortable) and CreatedAt are filled
// in on the caller's struct via the pointer receiver.
func (db *DB) Create(ctx context.Context, exp *model.Explanation) error {
	exp.ID = xid.New().String()
	exp.CreatedAt = time.Now()

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO explanations (id, language, tier, code, explanation, model, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		exp.ID,
		exp.Language,
		string(exp.Tier),
		exp.Code,
		exp.Explanation,
		exp.Model,
		exp.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating explanation: %w", err)
	}

	return nil
}

// GetByID retrieves a single explanation. sql.ErrNoRows is translated to the
// domain NotFound error so handlers can map it to 404.
func (db *DB) GetByID(ctx context.Context, id string) (*model.Explanation, error) {
	var exp model.Explanation
	var tier string

	err := db.conn.QueryRowContext(ctx,
		`SELECT id, language, tier, code, explanation, model, created_at
		 FROM explanations
		 WHERE id = ?`,
		id,
	).Scan(
		&exp.ID,
		&exp.Language,
		&tier,
		&exp.Code,
		&exp.Explanation,
		&exp.Model,
		&exp.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("explanation", id)
		}
		return nil, fmt.Errorf("sqlite: getting explanation %s: %w", id, err)
	}

	exp.Tier = model.Tier(tier)
	return &exp, nil
}

// List retrieves explanations newest-first with LIMIT/OFFSET pagination.
func (db *DB) List(ctx context.Context, opts repository.ListOptions) ([]model.Explanation, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	offset := opts.Offset
	if offset < 0 {
		offset = 0
	}

	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, language, tier, code, explanation, model, created_at
		 FROM explanations
		 ORDER BY created_at DESC
		 LIMIT ? OFFSET ?`,
		limit,
		offset,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing explanations: %w", err)
	}
	defer rows.Close()

	explanations := make([]model.Explanation, 0, limit)
	for rows.Next() {
		var exp model.Explanation
		var tier string
		if err := rows.Scan(
			&exp.ID, &exp.Language, &tier, &exp.Code,
			&exp.Explanation, &exp.Model, &exp.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning explanation row: %w", err)
		}
		exp.Tier = model.Tier(tier)
		explanations = append(explanations, exp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating explanations: %w", err)
	}

	return explanations, nil
}

// Delete removes an explanation by ID. Zero rows affected means the WHERE
// clause matched nothing — not found.
func (db *DB) Delete(ctx context.Context, id string) error {
	result, err := db.conn.ExecContext(ctx,
		`DELETE FROM explanations WHERE id = ?`,
		id,
	)
	if err != nil {
		return fmt.Errorf("sqlite: deleting explanation %s: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("explanation", id)
	}

	return nil
}
