package database

// migrationsSQL contains all database migrations.
// Migrations are applied in order by version number.
// Each migration should be idempotent (safe to run multiple times).
var migrationsSQL = map[int]string{
	1: migrationV1CalendarRevisions,
}

// migrationV1CalendarRevisions creates the revision table.
//
// The published district calendar ships compiled into the binary; this
// table only holds what changed after publication. One row per (date, kind):
// re-importing a revision replaces the label rather than duplicating the row.
const migrationV1CalendarRevisions = `
-- Migration 001: school calendar revisions

CREATE TABLE IF NOT EXISTS calendar_revisions (
    id INTEGER PRIMARY KEY AUTOINCREMENT,

    -- Calendar date, YYYY-MM-DD
    date TEXT NOT NULL,

    -- no_school: date becomes a non-instruction day
    -- minimum:   date becomes an early-dismissal day
    -- instruction: date is reinstated as a regular school day
    kind TEXT NOT NULL CHECK (kind IN ('no_school', 'minimum', 'instruction')),

    -- Human-readable reason ("Snow day", "Added PD day")
    label TEXT NOT NULL DEFAULT '',

    created_at TEXT NOT NULL DEFAULT (datetime('now')),

    UNIQUE (date, kind)
);

CREATE INDEX IF NOT EXISTS idx_calendar_revisions_date
    ON calendar_revisions (date);
`
