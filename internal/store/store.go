package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Persisted state keys. The kv table plays the role the browser's
// string key-value store played in earlier versions of this tool, so
// the historical key names are kept.
const (
	StateKey       = "solarWorkState_v4"
	TimerKey       = "solarWorkTimer_v4"
	LegacyStateKey = "solarWorkState_v3"
)

// ErrNotFound is returned when a key or plan document does not exist.
var ErrNotFound = errors.New("not found")

// StorageError wraps a failure of the underlying store. Callers treat
// it as recoverable and reportable, never fatal.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// Store is the persistence adapter: a kv table for versioned JSON
// blobs and a plans table holding one binary plan document per
// project id.
type Store struct {
	db *sql.DB
}

// DefaultPath returns the default database path (~/.crewledger/ledger.db).
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".crewledger", "ledger.db"), nil
}

// Open opens or creates the store at the given path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to store: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("failed to run store migrations: %w", err)
	}
	return s, nil
}

// OpenDefault opens the store at the default path.
func OpenDefault() (*Store, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return Open(path)
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Get returns the blob stored under key, or ErrNotFound.
func (s *Store) Get(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", &StorageError{Op: "get " + key, Err: err}
	}
	return value, nil
}

// Put stores a blob under key, replacing any previous value.
func (s *Store) Put(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO kv (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	if err != nil {
		return &StorageError{Op: "put " + key, Err: err}
	}
	return nil
}

// Delete removes a key. Deleting an absent key is not an error.
func (s *Store) Delete(key string) error {
	if _, err := s.db.Exec(`DELETE FROM kv WHERE key = ?`, key); err != nil {
		return &StorageError{Op: "delete " + key, Err: err}
	}
	return nil
}

// Keys returns all stored kv keys.
func (s *Store) Keys() ([]string, error) {
	rows, err := s.db.Query(`SELECT key FROM kv ORDER BY key`)
	if err != nil {
		return nil, &StorageError{Op: "list keys", Err: err}
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, &StorageError{Op: "list keys", Err: err}
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

// ClearKV removes every stored key.
func (s *Store) ClearKV() error {
	if _, err := s.db.Exec(`DELETE FROM kv`); err != nil {
		return &StorageError{Op: "clear kv", Err: err}
	}
	return nil
}

// PlanDocument is one stored plan: a project id and the raw PDF bytes.
type PlanDocument struct {
	ID  string
	PDF []byte
}

// SavePlan stores a plan document for a project, replacing any
// previous upload.
func (s *Store) SavePlan(ctx context.Context, id string, pdf []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO plans (id, pdf) VALUES (?, ?)
		 ON CONFLICT(id) DO UPDATE SET pdf = excluded.pdf`, id, pdf)
	if err != nil {
		return &StorageError{Op: "save plan " + id, Err: err}
	}
	return nil
}

// LoadPlan returns the plan document for a project, or ErrNotFound.
func (s *Store) LoadPlan(ctx context.Context, id string) ([]byte, error) {
	var pdf []byte
	err := s.db.QueryRowContext(ctx, `SELECT pdf FROM plans WHERE id = ?`, id).Scan(&pdf)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, &StorageError{Op: "load plan " + id, Err: err}
	}
	return pdf, nil
}

// DeletePlan removes a project's plan document if present.
func (s *Store) DeletePlan(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM plans WHERE id = ?`, id); err != nil {
		return &StorageError{Op: "delete plan " + id, Err: err}
	}
	return nil
}

// HasPlan reports whether a project has an uploaded plan.
func (s *Store) HasPlan(ctx context.Context, id string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM plans WHERE id = ?`, id).Scan(&n)
	if err != nil {
		return false, &StorageError{Op: "stat plan " + id, Err: err}
	}
	return n > 0, nil
}

// AllPlans returns every stored plan document, ordered by id.
func (s *Store) AllPlans(ctx context.Context) ([]PlanDocument, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, pdf FROM plans ORDER BY id`)
	if err != nil {
		return nil, &StorageError{Op: "list plans", Err: err}
	}
	defer rows.Close()

	var docs []PlanDocument
	for rows.Next() {
		var d PlanDocument
		if err := rows.Scan(&d.ID, &d.PDF); err != nil {
			return nil, &StorageError{Op: "list plans", Err: err}
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

// ClearPlans removes every stored plan document.
func (s *Store) ClearPlans(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM plans`); err != nil {
		return &StorageError{Op: "clear plans", Err: err}
	}
	return nil
}
