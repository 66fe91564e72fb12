package db

import (
	"database/sql"
	"fmt"
	"log"
)

// Migration represents a database migration
type Migration struct {
	Version int
	Name    string
	Up      func(*sql.Tx) error
}

// migrations is the list of all migrations in order
var migrations = []Migration{
	{
		Version: 1,
		Name:    "create_ledger_schema",
		Up:      migrationV1,
	},
}

// LatestVersion returns the highest known migration version.
func LatestVersion() int {
	return migrations[len(migrations)-1].Version
}

// CurrentVersion returns the highest applied migration version (0 for a new database).
func CurrentVersion(database *sql.DB) (int, error) {
	var version int
	err := database.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&version)
	if err != nil {
		return 0, fmt.Errorf("failed to get current schema version: %w", err)
	}
	return version, nil
}

// RunMigrations executes all pending migrations
func RunMigrations(database *sql.DB) error {
	// Create schema_version table if it doesn't exist
	_, err := database.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create schema_version table: %w", err)
	}

	currentVersion, err := CurrentVersion(database)
	if err != nil {
		return err
	}

	// Run pending migrations
	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		log.Printf("db: running migration %d: %s", migration.Version, migration.Name)

		tx, err := database.Begin()
		if err != nil {
			return fmt.Errorf("failed to begin transaction for migration %d: %w", migration.Version, err)
		}

		if err := migration.Up(tx); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", migration.Version, err)
		}

		_, err = tx.Exec("INSERT INTO schema_version (version) VALUES (?)", migration.Version)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to record migration %d: %w", migration.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, err)
		}
	}

	return nil
}

// migrationV1 creates the ledger tables.
func migrationV1(tx *sql.Tx) error {
	_, err := tx.Exec(SchemaSQL)
	return err
}
