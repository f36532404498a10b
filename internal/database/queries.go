package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// =============================================================================
// Error Types
// =============================================================================

var (
	// ErrNotFound is returned when a requested record doesn't exist
	ErrNotFound = errors.New("not found")
)

// IsNotFound checks if an error is a not-found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// parseTimestamp parses a timestamp from SQLite TEXT format.
// Tries multiple formats and returns the zero time if parsing fails.
func parseTimestamp(ns sql.NullString) time.Time {
	if !ns.Valid || ns.String == "" {
		return time.Time{}
	}
	for _, layout := range []string{
		time.RFC3339,
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05.999999",
	} {
		if t, err := time.Parse(layout, ns.String); err == nil {
			return t
		}
	}
	return time.Time{}
}

// =============================================================================
// Calendar Revision Queries
// =============================================================================

// UpsertRevision inserts a revision or, when a row for the same (date, kind)
// already exists, replaces its label.
func (db *DB) UpsertRevision(ctx context.Context, date string, kind RevisionKind, label string) (*Revision, error) {
	if !kind.IsValid() {
		return nil, fmt.Errorf("invalid revision kind %q", kind)
	}

	query := `
		INSERT INTO calendar_revisions (date, kind, label)
		VALUES (?, ?, ?)
		ON CONFLICT (date, kind) DO UPDATE SET label = excluded.label
	`
	if _, err := db.ExecContext(ctx, query, date, kind, label); err != nil {
		return nil, fmt.Errorf("upsert revision: %w", err)
	}

	return db.GetRevision(ctx, date, kind)
}

// GetRevision fetches a single revision by date and kind.
// Returns ErrNotFound if none exists.
func (db *DB) GetRevision(ctx context.Context, date string, kind RevisionKind) (*Revision, error) {
	query := `
		SELECT id, date, kind, label, created_at
		FROM calendar_revisions
		WHERE date = ? AND kind = ?
	`

	var rev Revision
	var createdAt sql.NullString
	err := db.QueryRowContext(ctx, query, date, kind).Scan(
		&rev.ID, &rev.Date, &rev.Kind, &rev.Label, &createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get revision: %w", err)
	}
	rev.CreatedAt = parseTimestamp(createdAt)
	return &rev, nil
}

// ListRevisions returns all revisions ordered by date.
// Called once at startup to layer the revisions onto the published calendar.
func (db *DB) ListRevisions(ctx context.Context) ([]Revision, error) {
	query := `
		SELECT id, date, kind, label, created_at
		FROM calendar_revisions
		ORDER BY date, kind
	`

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list revisions: %w", err)
	}
	defer rows.Close()

	var revisions []Revision
	for rows.Next() {
		var rev Revision
		var createdAt sql.NullString
		if err := rows.Scan(&rev.ID, &rev.Date, &rev.Kind, &rev.Label, &createdAt); err != nil {
			return nil, fmt.Errorf("scan revision: %w", err)
		}
		rev.CreatedAt = parseTimestamp(createdAt)
		revisions = append(revisions, rev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate revisions: %w", err)
	}

	return revisions, nil
}

// DeleteRevision removes a revision. Returns ErrNotFound if it didn't exist.
func (db *DB) DeleteRevision(ctx context.Context, date string, kind RevisionKind) error {
	res, err := db.ExecContext(ctx,
		`DELETE FROM calendar_revisions WHERE date = ? AND kind = ?`, date, kind)
	if err != nil {
		return fmt.Errorf("delete revision: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete revision rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// CountRevisions returns the total number of stored revisions.
func (db *DB) CountRevisions(ctx context.Context) (int, error) {
	var n int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM calendar_revisions`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count revisions: %w", err)
	}
	return n, nil
}
