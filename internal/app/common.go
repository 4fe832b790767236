package app

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/ridgeline-systems/pymigrate/internal/store"
)

// getCachePath returns the formula cache database path, using the flag
// value or ~/.pymigrate/pymigrate.db.
func getCachePath() (string, error) {
	if cachePath != "" {
		return cachePath, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	pymigrateDir := filepath.Join(home, ".pymigrate")
	if err := os.MkdirAll(pymigrateDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create pymigrate directory: %w", err)
	}

	return filepath.Join(pymigrateDir, "pymigrate.db"), nil
}

// openCache opens the formula cache store and ensures its schema exists.
func openCache() (*store.Store, error) {
	path, err := getCachePath()
	if err != nil {
		return nil, err
	}

	db, err := store.New(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}
	if err := db.CreateSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create cache schema: %w", err)
	}
	return db, nil
}

// newLogger builds the logger threaded into the workflow. Human-readable
// console output on stderr; --verbose raises the level to debug.
func newLogger() zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	writer := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.Kitchen,
	}
	return zerolog.New(writer).Level(level).With().Timestamp().Logger()
}
