package store

import "fmt"

// migrate runs the table migrations. These only shape the container
// tables; the JSON blob inside kv has its own schema versioning handled
// by the migrate package.
func (s *Store) migrate() error {
	migrations := []string{
		migrationCreateKV,
		migrationCreatePlans,
	}

	for i, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}

const migrationCreateKV = `
CREATE TABLE IF NOT EXISTS kv (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
`

const migrationCreatePlans = `
CREATE TABLE IF NOT EXISTS plans (
    id TEXT PRIMARY KEY,
    pdf BLOB NOT NULL
);
`
