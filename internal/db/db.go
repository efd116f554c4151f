// Package db manages the local SQLite database recording batch runs.
package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/nestforge/internal/config"
)

// Open opens the run-history database under dir/.nestforge/nestforge.db,
// creating the directory and schema if needed. Callers own the handle.
func Open(dir string) (*sql.DB, error) {
	cfgDir := filepath.Join(dir, config.ConfigDir)
	if err := os.MkdirAll(cfgDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create %s directory: %w", config.ConfigDir, err)
	}

	database, err := sql.Open("sqlite3", filepath.Join(cfgDir, "nestforge.db"))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := database.Exec("PRAGMA foreign_keys = ON"); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if _, err := database.Exec(SchemaSQL); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return database, nil
}
