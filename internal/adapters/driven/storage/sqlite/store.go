// Package sqlite provides a SQLite-backed catalog store.
//
// The catalog is written once by the indexer and read by the retriever.
// Row order is preserved through an explicit position column so that row
// N always corresponds to vector N in the index artifacts.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/rudryyy/SHL/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/rudryyy/SHL/internal/core/domain"
	"github.com/rudryyy/SHL/internal/core/ports/driven"
)

var _ driven.CatalogStore = (*Store)(nil)

// Store is a SQLite-backed catalog store.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens (or creates) the catalog database at the given path.
func NewStore(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	// WAL mode for concurrent readers while serving.
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, path: path}

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

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

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
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// PutAll replaces the catalog contents with the given assessments,
// preserving slice order as the position column.
func (s *Store) PutAll(ctx context.Context, assessments []domain.Assessment) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, "DELETE FROM assessments"); err != nil {
		return fmt.Errorf("clearing catalog: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO assessments
			(position, id, title, url, description, category, test_type, level, duration_min, language, tags)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for pos, a := range assessments {
		if _, err := stmt.ExecContext(ctx, pos, a.ID, a.Title, a.URL, a.Description,
			a.Category, a.TestType, a.Level, a.DurationMin, a.Language, a.Tags); err != nil {
			return fmt.Errorf("saving assessment %s: %w", a.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// Get retrieves an assessment by ID.
func (s *Store) Get(ctx context.Context, id string) (*domain.Assessment, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, title, url, description, category, test_type, level, duration_min, language, tags
		FROM assessments WHERE id = ?
	`, id)

	var a domain.Assessment
	if err := row.Scan(&a.ID, &a.Title, &a.URL, &a.Description, &a.Category,
		&a.TestType, &a.Level, &a.DurationMin, &a.Language, &a.Tags); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning assessment: %w", err)
	}

	return &a, nil
}

// List returns all assessments in positional order.
func (s *Store) List(ctx context.Context) ([]domain.Assessment, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, url, description, category, test_type, level, duration_min, language, tags
		FROM assessments ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("querying assessments: %w", err)
	}
	defer rows.Close()

	var assessments []domain.Assessment //nolint:prealloc // size unknown from query
	for rows.Next() {
		var a domain.Assessment
		if err := rows.Scan(&a.ID, &a.Title, &a.URL, &a.Description, &a.Category,
			&a.TestType, &a.Level, &a.DurationMin, &a.Language, &a.Tags); err != nil {
			return nil, fmt.Errorf("scanning assessment: %w", err)
		}
		assessments = append(assessments, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating assessments: %w", err)
	}

	return assessments, nil
}

// Count returns the number of catalog rows.
func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM assessments").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting assessments: %w", err)
	}
	return count, nil
}
