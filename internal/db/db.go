package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// BusyTimeoutMillis is how long a connection waits on a locked database
// before the driver reports SQLITE_BUSY.
const BusyTimeoutMillis = 5000

// DSN builds the go-sqlite3 data source name for a database file.
//   - _foreign_keys enables FK enforcement (roster and species rules cascade)
//   - _journal_mode=WAL lets readers proceed while a writer holds the lock
//   - _busy_timeout makes writers queue instead of failing immediately
//   - _txlock=immediate takes the write lock at BEGIN, so two ledger
//     transactions never both read a team total before either writes it
func DSN(path string) string {
	return fmt.Sprintf(
		"file:%s?_foreign_keys=on&_journal_mode=WAL&_busy_timeout=%d&_txlock=immediate",
		filepath.Clean(path), BusyTimeoutMillis,
	)
}

// Open opens (creating if needed) the database at path and brings the schema
// up to date.
func Open(path string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	database, err := sql.Open("sqlite3", DSN(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := database.Ping(); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := InitSchema(database); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return database, nil
}

// DefaultPath returns the default database location (~/.tourney/tourney.db).
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".tourney", "tourney.db"), nil
}
