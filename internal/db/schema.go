package db

import "database/sql"

// SchemaSQL is the complete schema for a fresh tournament database.
//
// This is the SINGLE SOURCE OF TRUTH for the database schema. Repository tests
// load it through GetSchemaSQL() instead of declaring their own tables, so a
// column referenced by an adapter but missing here fails with "no such column".
//
// Shared mutable fields:
//   - teams.total_points is written only by the score ledger, guarded by
//     teams.version (compare-and-set inside a transaction)
//   - counters.current_value is written only by the sequence generator,
//     guarded by its previous value
//
// catches.team_id has no foreign key: team deletion cascades
// explicitly inside the ledger transaction, and the ledger tolerates orphans
// left by older data.
const SchemaSQL = `
-- Named monotonic counters (team_number holds the last assigned team number)
CREATE TABLE IF NOT EXISTS counters (
	name TEXT PRIMARY KEY,
	current_value INTEGER NOT NULL CHECK(current_value >= 0),
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Teams (one boat crew)
CREATE TABLE IF NOT EXISTS teams (
	id TEXT PRIMARY KEY,
	number TEXT NOT NULL UNIQUE,
	club TEXT NOT NULL,
	country TEXT,
	origin TEXT NOT NULL CHECK(origin IN ('national', 'international')) DEFAULT 'national',
	distance_km REAL,
	boat_name TEXT,
	boat_registration TEXT,
	contact_phone TEXT,
	total_points INTEGER NOT NULL DEFAULT 0 CHECK(total_points >= 0),
	version INTEGER NOT NULL DEFAULT 1,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Team roster (position 0 is the helmsman)
CREATE TABLE IF NOT EXISTS team_members (
	team_id TEXT NOT NULL,
	position INTEGER NOT NULL CHECK(position >= 0),
	name TEXT NOT NULL,
	birth_date TEXT,
	sex TEXT NOT NULL CHECK(sex IN ('', 'M', 'F')) DEFAULT '',
	category TEXT NOT NULL DEFAULT '',
	PRIMARY KEY (team_id, position),
	FOREIGN KEY (team_id) REFERENCES teams(id) ON DELETE CASCADE
);

-- Species catalog
CREATE TABLE IF NOT EXISTS species (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	category TEXT NOT NULL CHECK(category IN ('de_ley', 'general')) DEFAULT 'general',
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Piece rules (up to three per species, by piece index)
CREATE TABLE IF NOT EXISTS species_rules (
	species_id TEXT NOT NULL,
	piece_index INTEGER NOT NULL CHECK(piece_index BETWEEN 0 AND 2),
	points INTEGER NOT NULL CHECK(points >= 0),
	min_size_cm REAL NOT NULL DEFAULT 0,
	mandatory INTEGER NOT NULL DEFAULT 0,
	PRIMARY KEY (species_id, piece_index),
	FOREIGN KEY (species_id) REFERENCES species(id) ON DELETE CASCADE
);

-- Catches (immutable once written)
CREATE TABLE IF NOT EXISTS catches (
	id TEXT PRIMARY KEY,
	team_id TEXT NOT NULL,
	member TEXT NOT NULL,
	species_id TEXT NOT NULL,
	size_cm REAL NOT NULL DEFAULT 0 CHECK(size_cm >= 0),
	points INTEGER NOT NULL CHECK(points >= 0),
	caught_at DATETIME NOT NULL DEFAULT (strftime('%Y-%m-%d %H:%M:%f', 'now'))
);

CREATE INDEX IF NOT EXISTS idx_catches_team_species ON catches(team_id, species_id);
CREATE INDEX IF NOT EXISTS idx_catches_caught_at ON catches(caught_at);
`

// InitSchema brings the database up to date by running pending migrations.
func InitSchema(database *sql.DB) error {
	return RunMigrations(database)
}

// GetSchemaSQL returns the authoritative schema SQL for use by tests.
// Tests should use this instead of hardcoding their own schema to prevent drift.
func GetSchemaSQL() string {
	return SchemaSQL
}
