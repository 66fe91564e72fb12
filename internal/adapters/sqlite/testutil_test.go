// Package sqlite_test contains integration tests for SQLite repositories.
//
// # Schema Protection
//
// This file is the SINGLE POINT where the database schema is loaded for tests.
// setupTestDB goes through db.Open, which runs the migrations built from
// db.SchemaSQL, so tests run against the authoritative schema.
//
// Tests use a temp-file database rather than ":memory:": every pooled
// connection to ":memory:" is a separate empty database, and the concurrency
// tests need several connections sharing one file.
package sqlite_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/example/tourney/internal/adapters/sqlite"
	"github.com/example/tourney/internal/db"
	"github.com/example/tourney/internal/ports/secondary"
)

// setupTestDB creates a temp-file database with the authoritative schema.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := db.Open(filepath.Join(t.TempDir(), "tourney.db"))
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// newTestTransactor returns a transactor with short backoff for tests.
func newTestTransactor(database *sql.DB) *sqlite.Transactor {
	return sqlite.NewTransactor(database, sqlite.TxOptions{
		MaxAttempts:    50,
		InitialBackoff: time.Millisecond,
		MaxBackoff:     20 * time.Millisecond,
	})
}

// seedCounter initialises the team counter.
func seedCounter(t *testing.T, database *sql.DB, value int) {
	t.Helper()
	_, err := database.Exec("INSERT INTO counters (name, current_value) VALUES (?, ?)", secondary.TeamNumberCounter, value)
	if err != nil {
		t.Fatalf("failed to seed counter: %v", err)
	}
}

// seedTeam inserts a test team with a one-member roster and returns its ID.
func seedTeam(t *testing.T, database *sql.DB, id, number string, totalPoints int) string {
	t.Helper()
	if id == "" {
		id = "team-001"
	}
	if number == "" {
		number = "001"
	}
	repo := sqlite.NewTeamRepository(database)
	err := repo.Create(context.Background(), &secondary.TeamRecord{
		ID:          id,
		Number:      number,
		Club:        "Club de Pesca",
		Origin:      "national",
		Roster:      []secondary.MemberRecord{{Name: "Ana", Sex: "F", Category: "Damas"}},
		TotalPoints: totalPoints,
	})
	if err != nil {
		t.Fatalf("failed to seed team: %v", err)
	}
	return id
}

// seedCatch inserts a catch directly, bypassing the ledger.
func seedCatch(t *testing.T, database *sql.DB, id, teamID, speciesID string, points int) string {
	t.Helper()
	_, err := database.Exec(
		"INSERT INTO catches (id, team_id, member, species_id, size_cm, points) VALUES (?, ?, 'Ana', ?, 50, ?)",
		id, teamID, speciesID, points,
	)
	if err != nil {
		t.Fatalf("failed to seed catch: %v", err)
	}
	return id
}

// seedSpecies inserts a species with the given rules.
func seedSpecies(t *testing.T, database *sql.DB, id, name string, rules ...secondary.PieceRuleRecord) string {
	t.Helper()
	repo := sqlite.NewSpeciesRepository(database)
	err := repo.Save(context.Background(), &secondary.SpeciesRecord{ID: id, Name: name, Category: "general", Rules: rules})
	if err != nil {
		t.Fatalf("failed to seed species: %v", err)
	}
	return id
}

// teamTotal reads total_points straight from the table.
func teamTotal(t *testing.T, database *sql.DB, teamID string) int {
	t.Helper()
	var total int
	if err := database.QueryRow("SELECT total_points FROM teams WHERE id = ?", teamID).Scan(&total); err != nil {
		t.Fatalf("failed to read team total: %v", err)
	}
	return total
}

// countRows counts rows in a table.
func countRows(t *testing.T, database *sql.DB, table string) int {
	t.Helper()
	var n int
	if err := database.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
		t.Fatalf("failed to count %s: %v", table, err)
	}
	return n
}
