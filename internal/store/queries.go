package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ridgeline-systems/pymigrate/internal/brew"
)

// ErrNotCached is returned when a formula has no cache entry.
var ErrNotCached = errors.New("formula not cached")

// ErrNotInitialized is returned when queries run against a database whose
// schema was never created.
var ErrNotInitialized = errors.New("cache database not initialized")

// PutFormula inserts or replaces a formula's cache entry, stamping it with
// fetchedAt.
func (s *Store) PutFormula(formula *brew.Formula, fetchedAt time.Time) error {
	depsJSON, err := json.Marshal(formula.Dependencies)
	if err != nil {
		return fmt.Errorf("failed to marshal dependencies: %w", err)
	}

	query := `
		INSERT OR REPLACE INTO formulae (name, stable_version, dependencies, fetched_at)
		VALUES (?, ?, ?, ?)
	`
	if _, err := s.db.Exec(query, formula.Name, formula.Versions.Stable, string(depsJSON), fetchedAt.UnixMilli()); err != nil {
		return fmt.Errorf("failed to cache formula %s: %w", formula.Name, wrapSchemaErr(err))
	}
	return nil
}

// GetFormula retrieves a cached formula and its fetch timestamp.
// Returns ErrNotCached when no entry exists.
func (s *Store) GetFormula(name string) (*brew.Formula, time.Time, error) {
	query := `
		SELECT name, stable_version, dependencies, fetched_at
		FROM formulae
		WHERE name = ?
	`

	var formula brew.Formula
	var depsJSON string
	var fetchedAtMillis int64

	err := s.db.QueryRow(query, name).Scan(&formula.Name, &formula.Versions.Stable, &depsJSON, &fetchedAtMillis)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, time.Time{}, ErrNotCached
	}
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("failed to read cached formula %s: %w", name, wrapSchemaErr(err))
	}

	if err := json.Unmarshal([]byte(depsJSON), &formula.Dependencies); err != nil {
		return nil, time.Time{}, fmt.Errorf("corrupt dependency list for %s: %w", name, err)
	}

	return &formula, time.UnixMilli(fetchedAtMillis), nil
}

// Count returns the number of cached formulae.
func (s *Store) Count() (int, error) {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM formulae`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count cached formulae: %w", wrapSchemaErr(err))
	}
	return count, nil
}

// OldestFetch returns the fetch timestamp of the stalest cache entry.
// Returns the zero time when the cache is empty.
func (s *Store) OldestFetch() (time.Time, error) {
	var millis sql.NullInt64
	if err := s.db.QueryRow(`SELECT MIN(fetched_at) FROM formulae`).Scan(&millis); err != nil {
		return time.Time{}, fmt.Errorf("failed to query oldest fetch: %w", wrapSchemaErr(err))
	}
	if !millis.Valid {
		return time.Time{}, nil
	}
	return time.UnixMilli(millis.Int64), nil
}

// Clear removes all cache entries.
func (s *Store) Clear() error {
	if _, err := s.db.Exec(`DELETE FROM formulae`); err != nil {
		return fmt.Errorf("failed to clear cache: %w", wrapSchemaErr(err))
	}
	return nil
}

// wrapSchemaErr maps sqlite's "no such table" failure onto ErrNotInitialized
// so callers can branch on it with errors.Is.
func wrapSchemaErr(err error) error {
	if err != nil && strings.Contains(err.Error(), "no such table") {
		return fmt.Errorf("%w: %v", ErrNotInitialized, err)
	}
	return err
}
