package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"tidy-go/internal/engine"
	"tidy-go/internal/model"
	"tidy-go/internal/store/migrations"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteStore implements engine.Store on SQLite. Rules and watched
// directories are replaced wholesale on save (the engine offers its
// full state on every mutation); operations are appended and pruned to
// the ledger cap.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// NewSQLiteStore opens a SQLite store at path and applies any pending
// schema migrations. path can be a file path or ":memory:".
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := OpenConnection(path)
	if err != nil {
		return nil, err
	}

	if err := migrations.MigrateUp(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating store schema: %w", err)
	}

	return &SQLiteStore{db: db, path: path}, nil
}

// OpenConnection opens and configures a SQLite database connection.
// Exported for tests that need a properly configured connection.
func OpenConnection(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite ships with foreign keys off for backward compatibility.
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return db, nil
}

func (s *SQLiteStore) LoadRules() ([]model.Rule, error) {
	rows, err := s.db.Query(`SELECT id, name, enabled, priority, conditions, actions, created_at, last_modified
		FROM rules ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("querying rules: %w", err)
	}
	defer rows.Close()

	var rules []model.Rule
	for rows.Next() {
		var r model.Rule
		var conditions, actions string
		if err := rows.Scan(&r.ID, &r.Name, &r.Enabled, &r.Priority, &conditions, &actions, &r.CreatedAt, &r.LastModified); err != nil {
			return nil, fmt.Errorf("scanning rule: %w", err)
		}
		if err := json.Unmarshal([]byte(conditions), &r.Conditions); err != nil {
			return nil, fmt.Errorf("decoding conditions for rule %s: %w", r.ID, err)
		}
		if err := json.Unmarshal([]byte(actions), &r.Actions); err != nil {
			return nil, fmt.Errorf("decoding actions for rule %s: %w", r.ID, err)
		}
		rules = append(rules, r)
	}
	return rules, rows.Err()
}

func (s *SQLiteStore) SaveRules(rules []model.Rule) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM rules`); err != nil {
		return fmt.Errorf("clearing rules: %w", err)
	}

	for i, r := range rules {
		conditions, err := json.Marshal(r.Conditions)
		if err != nil {
			return fmt.Errorf("encoding conditions for rule %s: %w", r.ID, err)
		}
		actions, err := json.Marshal(r.Actions)
		if err != nil {
			return fmt.Errorf("encoding actions for rule %s: %w", r.ID, err)
		}
		_, err = tx.Exec(`INSERT INTO rules (id, position, name, enabled, priority, conditions, actions, created_at, last_modified)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			r.ID, i, r.Name, r.Enabled, r.Priority, string(conditions), string(actions), r.CreatedAt, r.LastModified)
		if err != nil {
			return fmt.Errorf("inserting rule %s: %w", r.ID, err)
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) LoadWatchedDirectories() ([]string, error) {
	rows, err := s.db.Query(`SELECT path FROM watched_directories ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("querying watched directories: %w", err)
	}
	defer rows.Close()

	var paths []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("scanning watched directory: %w", err)
		}
		paths = append(paths, p)
	}
	return paths, rows.Err()
}

func (s *SQLiteStore) SaveWatchedDirectories(paths []string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM watched_directories`); err != nil {
		return fmt.Errorf("clearing watched directories: %w", err)
	}
	for _, p := range paths {
		if _, err := tx.Exec(`INSERT INTO watched_directories (path) VALUES (?)`, p); err != nil {
			return fmt.Errorf("inserting watched directory %s: %w", p, err)
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) AppendOperation(op model.FileOperation, keep int) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`INSERT INTO operations (id, seq, file_name, source_path, destination_path, type, timestamp, success, error_message)
		VALUES (?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM operations), ?, ?, ?, ?, ?, ?, ?)`,
		op.ID, op.FileName, op.SourcePath, op.DestinationPath, string(op.Type), op.Timestamp, op.Success, op.ErrorMessage)
	if err != nil {
		return fmt.Errorf("inserting operation: %w", err)
	}

	// Prune so the stored history matches the ledger bound.
	_, err = tx.Exec(`DELETE FROM operations
		WHERE seq <= (SELECT MAX(seq) FROM operations) - ?`, keep)
	if err != nil {
		return fmt.Errorf("pruning operations: %w", err)
	}

	return tx.Commit()
}

func (s *SQLiteStore) LoadOperations(limit int) ([]model.FileOperation, error) {
	rows, err := s.db.Query(`SELECT id, file_name, source_path, destination_path, type, timestamp, success, error_message
		FROM operations ORDER BY seq DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying operations: %w", err)
	}
	defer rows.Close()

	var ops []model.FileOperation
	for rows.Next() {
		var op model.FileOperation
		var opType string
		if err := rows.Scan(&op.ID, &op.FileName, &op.SourcePath, &op.DestinationPath, &opType, &op.Timestamp, &op.Success, &op.ErrorMessage); err != nil {
			return nil, fmt.Errorf("scanning operation: %w", err)
		}
		op.Type = model.OperationType(opType)
		ops = append(ops, op)
	}
	return ops, rows.Err()
}

func (s *SQLiteStore) SaveStatistics(stats model.Statistics) error {
	var last sql.NullTime
	if stats.LastOrganizedAt != nil {
		last = sql.NullTime{Time: *stats.LastOrganizedAt, Valid: true}
	}

	_, err := s.db.Exec(`INSERT INTO statistics (id, files_organized, errors, last_organized_at)
		VALUES (1, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			files_organized = excluded.files_organized,
			errors = excluded.errors,
			last_organized_at = excluded.last_organized_at`,
		stats.FilesOrganized, stats.Errors, last)
	if err != nil {
		return fmt.Errorf("saving statistics: %w", err)
	}
	return nil
}

func (s *SQLiteStore) LoadStatistics() (model.Statistics, error) {
	var stats model.Statistics
	var last sql.NullTime

	err := s.db.QueryRow(`SELECT files_organized, errors, last_organized_at FROM statistics WHERE id = 1`).
		Scan(&stats.FilesOrganized, &stats.Errors, &last)
	if err == sql.ErrNoRows {
		return model.Statistics{}, nil
	}
	if err != nil {
		return model.Statistics{}, fmt.Errorf("loading statistics: %w", err)
	}

	if last.Valid {
		t := last.Time
		stats.LastOrganizedAt = &t
	}
	return stats, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Compile-time check that SQLiteStore implements the interface.
var _ engine.Store = (*SQLiteStore)(nil)
