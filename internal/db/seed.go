package db

import (
	"database/sql"
	"fmt"
)

// SeedFixtures populates an empty database with a development species catalog
// and initialises the team counter at zero. It refuses to run when teams
// already exist.
func SeedFixtures(database *sql.DB) error {
	var teams int
	if err := database.QueryRow("SELECT COUNT(*) FROM teams").Scan(&teams); err != nil {
		return fmt.Errorf("seed: count teams: %w", err)
	}
	if teams > 0 {
		return fmt.Errorf("seed: database already has %d team(s)", teams)
	}

	tx, err := database.Begin()
	if err != nil {
		return fmt.Errorf("seed: begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		"INSERT INTO counters (name, current_value) VALUES ('team_number', 0) ON CONFLICT(name) DO UPDATE SET current_value = 0",
	); err != nil {
		return fmt.Errorf("seed counters: %w", err)
	}

	for _, s := range seedSpecies {
		if _, err := tx.Exec(
			`INSERT INTO species (id, name, category) VALUES (?, ?, ?)
			 ON CONFLICT(id) DO UPDATE SET name = excluded.name, category = excluded.category`,
			s.id, s.name, s.category,
		); err != nil {
			return fmt.Errorf("seed species: %w", err)
		}
		if _, err := tx.Exec("DELETE FROM species_rules WHERE species_id = ?", s.id); err != nil {
			return fmt.Errorf("seed species rules: %w", err)
		}
		for i, r := range s.rules {
			if _, err := tx.Exec(
				"INSERT INTO species_rules (species_id, piece_index, points, min_size_cm, mandatory) VALUES (?, ?, ?, ?, ?)",
				s.id, i, r.points, r.size, r.mandatory,
			); err != nil {
				return fmt.Errorf("seed species rules: %w", err)
			}
		}
	}

	return tx.Commit()
}

type seedRule struct {
	points    int
	size      float64
	mandatory bool
}

var seedSpecies = []struct {
	id, name, category string
	rules              []seedRule
}{
	{"dorado", "Dorado", "de_ley", []seedRule{{100, 55, true}, {80, 55, true}, {60, 55, true}}},
	{"surubi", "Surubí", "de_ley", []seedRule{{120, 80, true}, {90, 80, true}, {70, 80, true}}},
	{"pacu", "Pacú", "general", []seedRule{{50, 30, false}, {40, 30, false}, {30, 30, false}}},
	{"boga", "Boga", "general", []seedRule{{30, 25, false}, {20, 25, false}, {10, 25, false}}},
}
