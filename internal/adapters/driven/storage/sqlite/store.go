// Package sqlite persists the model-load catalog in a local SQLite
// database.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/bauwerk-labs/talk2bim/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/bauwerk-labs/talk2bim/internal/core/domain"
	"github.com/bauwerk-labs/talk2bim/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.CatalogStore = (*Store)(nil)

// Store is a SQLite-backed model-load catalog.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.talk2bim/data/catalog.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".talk2bim", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "catalog.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// RecordLoad stores or updates the record for a loaded model, keyed by
// content hash.
func (s *Store) RecordLoad(ctx context.Context, rec domain.ModelRecord) error {
	if rec.ContentHash == "" {
		return fmt.Errorf("record load: %w", domain.ErrInvalidInput)
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO models (content_hash, path, zones, items, loaded_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(content_hash) DO UPDATE SET
			path = excluded.path,
			zones = excluded.zones,
			items = excluded.items,
			loaded_at = excluded.loaded_at
	`, rec.ContentHash, rec.Path, rec.Zones, rec.Items, rec.LoadedAt.UTC())
	if err != nil {
		return fmt.Errorf("recording load: %w", err)
	}
	return nil
}

// ListLoads returns all recorded loads, most recent first.
func (s *Store) ListLoads(ctx context.Context) ([]domain.ModelRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT content_hash, path, zones, items, loaded_at
		FROM models
		ORDER BY loaded_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("listing loads: %w", err)
	}
	defer rows.Close()

	var records []domain.ModelRecord
	for rows.Next() {
		var rec domain.ModelRecord
		var loadedAt time.Time
		if err := rows.Scan(&rec.ContentHash, &rec.Path, &rec.Zones, &rec.Items, &loadedAt); err != nil {
			return nil, fmt.Errorf("scanning load record: %w", err)
		}
		rec.LoadedAt = loadedAt
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating load records: %w", err)
	}
	return records, nil
}

// migrate applies pending schema migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_models.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(
			"INSERT INTO schema_migrations (version) VALUES (?)", version,
		); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}
