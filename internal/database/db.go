// Package database handles the initialization of and access to the SQLite db
package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// DefaultPath returns ~/.lanes/lanes.db
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".lanes", "lanes.db"), nil
}

// pragmas are applied to every new database handle
var pragmas = []string{
	// required for ON DELETE CASCADE / SET NULL
	"PRAGMA foreign_keys = ON",
	"PRAGMA journal_mode = WAL",
	// SQLite retries for this long before returning SQLITE_BUSY
	"PRAGMA busy_timeout = 5000",
}

// dsn builds the driver name for path. File databases begin every
// transaction IMMEDIATE: the write lock is taken at BEGIN, where
// busy_timeout applies, so another process committing between a
// transaction's read and its write cannot fail it with SQLITE_BUSY.
func dsn(path string) string {
	if path == ":memory:" {
		return path
	}
	return "file:" + path + "?_txlock=immediate"
}

// InitDB opens the database at path (DefaultPath when empty), applies
// pragmas and runs migrations. ":memory:" opens a private in-memory db.
func InitDB(ctx context.Context, path string) (*sql.DB, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}

	db, err := sql.Open(driverName, dsn(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite benefits from a single writer connection, and an in-memory
	// database only exists on the connection that created it
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	closeOnErr := func(cause error) (*sql.DB, error) {
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("error closing db", "error", closeErr)
		}
		return nil, cause
	}

	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			slog.Error("failed to apply pragma", "pragma", pragma, "error", err)
			return closeOnErr(fmt.Errorf("%s: %w", pragma, err))
		}
	}

	if err := db.PingContext(ctx); err != nil {
		return closeOnErr(fmt.Errorf("database ping failed: %w", err))
	}

	if err := Migrate(ctx, db); err != nil {
		return closeOnErr(fmt.Errorf("failed to run migrations: %w", err))
	}

	return db, nil
}
