package packaging

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/VoBaNguyen/qaconf/pkg/gate"
)

const historySchemaVersion = 1

const historySchemaV1 = `
CREATE TABLE IF NOT EXISTS schema_meta (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS packages (
	id            TEXT PRIMARY KEY,
	session_id    TEXT NOT NULL,
	techlib       TEXT NOT NULL DEFAULT '',
	manifest_path TEXT NOT NULL,
	created_at    TEXT NOT NULL
);
`

// Entry is one recorded package creation.
type Entry struct {
	ID           string
	SessionID    string
	Techlib      string
	ManifestPath string
	CreatedAt    time.Time
}

// History is the sqlite-backed record of created packages. It implements
// gate.PriorPackages so the gate's compare gating can count real packages.
type History struct {
	db *sql.DB
}

var _ gate.PriorPackages = (*History)(nil)

// OpenHistory opens (or creates) the history database and ensures the schema
// is at the current version.
func OpenHistory(path string) (*History, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("packaging: open history: %w", err)
	}

	ver, err := currentSchemaVersion(db)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("packaging: check schema version: %w", err)
	}
	if ver < historySchemaVersion {
		if err := migrateSchema(db); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("packaging: migrate history schema: %w", err)
		}
	}

	return &History{db: db}, nil
}

// Close releases the underlying database handle.
func (h *History) Close() error {
	return h.db.Close()
}

// Record stores one created package.
func (h *History) Record(ctx context.Context, m Manifest, manifestPath string) error {
	_, err := h.db.ExecContext(ctx, `
		INSERT INTO packages (id, session_id, techlib, manifest_path, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, m.ID, m.SessionID, m.Techlib, manifestPath, m.CreatedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("packaging: record package: %w", err)
	}
	return nil
}

// PriorCount returns how many packages have been recorded.
func (h *History) PriorCount(ctx context.Context) (int, error) {
	var count int
	err := h.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM packages").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("packaging: count packages: %w", err)
	}
	return count, nil
}

// List returns all recorded packages, most recent first.
func (h *History) List(ctx context.Context) ([]Entry, error) {
	rows, err := h.db.QueryContext(ctx, `
		SELECT id, session_id, techlib, manifest_path, created_at
		FROM packages
		ORDER BY rowid DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("packaging: list packages: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var created string
		if err := rows.Scan(&e.ID, &e.SessionID, &e.Techlib, &e.ManifestPath, &created); err != nil {
			return nil, fmt.Errorf("packaging: scan package row: %w", err)
		}
		e.CreatedAt, err = time.Parse(time.RFC3339Nano, created)
		if err != nil {
			return nil, fmt.Errorf("packaging: parse created_at %q: %w", created, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("packaging: list packages: %w", err)
	}
	return entries, nil
}

// LatestPath returns the manifest path of the most recently created package.
func (h *History) LatestPath(ctx context.Context) (string, error) {
	var path string
	err := h.db.QueryRowContext(ctx, `
		SELECT manifest_path FROM packages
		ORDER BY rowid DESC
		LIMIT 1
	`).Scan(&path)
	if err == sql.ErrNoRows {
		return "", fmt.Errorf("packaging: no prior packages recorded")
	}
	if err != nil {
		return "", fmt.Errorf("packaging: latest package: %w", err)
	}
	return path, nil
}

func currentSchemaVersion(db *sql.DB) (int, error) {
	var count int
	err := db.QueryRow(`
		SELECT COUNT(*) FROM sqlite_master
		WHERE type='table' AND name='schema_meta'
	`).Scan(&count)
	if err != nil {
		return 0, err
	}
	if count == 0 {
		return 0, nil
	}

	var ver int
	err = db.QueryRow("SELECT version FROM schema_meta LIMIT 1").Scan(&ver)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return ver, nil
}

func migrateSchema(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(historySchemaV1); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM schema_meta"); err != nil {
		return err
	}
	if _, err := tx.Exec("INSERT INTO schema_meta (version) VALUES (?)", historySchemaVersion); err != nil {
		return err
	}
	return tx.Commit()
}
