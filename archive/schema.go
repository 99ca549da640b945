package archive

import (
	"context"
	"database/sql"
	"fmt"
)

// SchemaVersion is the current schema version.
const SchemaVersion = 1

const schemaV1 = `
CREATE TABLE IF NOT EXISTS runs (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    model TEXT NOT NULL,
    side1 REAL NOT NULL,
    side2 REAL NOT NULL,
    side3 REAL NOT NULL,
    density REAL NOT NULL,
    seed INTEGER NOT NULL,  -- negative if unknown
    steps INTEGER NOT NULL,
    created_at TEXT NOT NULL
);

-- One row per time step of a run.
CREATE TABLE IF NOT EXISTS records (
    run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
    step INTEGER NOT NULL,
    count INTEGER NOT NULL,
    surface_area REAL NOT NULL,
    mean_volume REAL NOT NULL,
    std_volume REAL NOT NULL,
    mean_mass REAL NOT NULL,
    total_volume REAL NOT NULL,
    creation_ns INTEGER NOT NULL,
    calculation_ns INTEGER NOT NULL,
    PRIMARY KEY (run_id, step)
);

CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER NOT NULL
);
`

// InitSchema creates the archive tables if they do not exist and records
// the schema version.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schemaV1); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	var n int
	err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM schema_version`).Scan(&n)
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if n == 0 {
		_, err = db.ExecContext(ctx,
			`INSERT INTO schema_version (version) VALUES (?)`, SchemaVersion)
		if err != nil {
			return fmt.Errorf("failed to set schema version: %w", err)
		}
	}
	return nil
}
