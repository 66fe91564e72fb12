// Package wire provides dependency injection for the tourney application.
// It creates singleton services with lazy initialization.
package wire

import (
	"database/sql"
	"io"
	"log"
	"os"
	"sync"

	cliadapter "github.com/example/tourney/internal/adapters/cli"
	"github.com/example/tourney/internal/adapters/filesystem"
	"github.com/example/tourney/internal/adapters/sqlite"
	"github.com/example/tourney/internal/app"
	"github.com/example/tourney/internal/config"
	"github.com/example/tourney/internal/db"
	"github.com/example/tourney/internal/ports/primary"
)

var (
	cfg      *config.Config
	cfgOnce  sync.Once
	database *sql.DB
	dbPath   string

	teamService        primary.TeamService
	ledgerService      primary.LedgerService
	catchService       primary.CatchService
	speciesService     primary.SpeciesService
	leaderboardService primary.LeaderboardService
	once               sync.Once
)

// Config returns the effective configuration for the working directory.
func Config() *config.Config {
	cfgOnce.Do(func() {
		dir, err := os.Getwd()
		if err != nil {
			log.Fatalf("failed to get working directory: %v", err)
		}
		cfg, err = config.Load(dir)
		if err != nil {
			log.Fatalf("failed to load configuration: %v", err)
		}
	})
	return cfg
}

// StationID returns the configured station, falling back to the host name.
func StationID() string {
	if id := Config().StationID; id != "" {
		return id
	}
	host, err := os.Hostname()
	if err != nil {
		return "unknown"
	}
	return host
}

// DB returns the shared database handle, opening it on first use.
func DB() *sql.DB {
	once.Do(initServices)
	return database
}

// DBPath returns the path of the database file in use.
func DBPath() string {
	once.Do(initServices)
	return dbPath
}

// TeamService returns the singleton TeamService instance.
func TeamService() primary.TeamService {
	once.Do(initServices)
	return teamService
}

// LedgerService returns the singleton LedgerService instance.
func LedgerService() primary.LedgerService {
	once.Do(initServices)
	return ledgerService
}

// CatchService returns the singleton CatchService instance.
func CatchService() primary.CatchService {
	once.Do(initServices)
	return catchService
}

// SpeciesService returns the singleton SpeciesService instance.
func SpeciesService() primary.SpeciesService {
	once.Do(initServices)
	return speciesService
}

// LeaderboardService returns the singleton LeaderboardService instance.
func LeaderboardService() primary.LeaderboardService {
	once.Do(initServices)
	return leaderboardService
}

// Close releases the database handle if it was opened.
func Close() error {
	if database == nil {
		return nil
	}
	return database.Close()
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	c := Config()

	dbPath = c.DBPath
	if dbPath == "" {
		var err error
		dbPath, err = db.DefaultPath()
		if err != nil {
			log.Fatalf("failed to resolve database path: %v", err)
		}
	}

	var err error
	database, err = db.Open(dbPath)
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	// Create repository adapters (secondary ports) - sqlite adapters with injected DB
	transactor := sqlite.NewTransactor(database, sqlite.TxOptions{
		MaxAttempts:    c.TxMaxAttempts,
		InitialBackoff: c.TxInitialBackoff,
	})
	teamRepo := sqlite.NewTeamRepository(database)
	catchRepo := sqlite.NewCatchRepository(database)
	counterRepo := sqlite.NewCounterRepository(database)
	speciesRepo := sqlite.NewSpeciesRepository(database)
	catalogReader := filesystem.NewCatalogReader()

	// Create services (primary ports implementation)
	ledgerService = app.NewLedgerService(transactor, teamRepo, catchRepo)
	teamService = app.NewTeamService(transactor, teamRepo, counterRepo, c.HomeCountry)
	catchService = app.NewCatchService(transactor, teamRepo, catchRepo, speciesRepo, ledgerService)
	speciesService = app.NewSpeciesService(transactor, speciesRepo, catalogReader)
	leaderboardService = app.NewLeaderboardService(teamRepo, catchRepo)
}

// TeamAdapter returns a new TeamAdapter writing to stdout.
// Each call creates a new adapter (adapters are stateless translators).
func TeamAdapter() *cliadapter.TeamAdapter {
	return TeamAdapterWithOutput(os.Stdout)
}

// TeamAdapterWithOutput returns a new TeamAdapter writing to the given output.
func TeamAdapterWithOutput(out io.Writer) *cliadapter.TeamAdapter {
	once.Do(initServices)
	return cliadapter.NewTeamAdapter(teamService, ledgerService, out)
}

// CatchAdapter returns a new CatchAdapter writing to stdout.
func CatchAdapter() *cliadapter.CatchAdapter {
	once.Do(initServices)
	return cliadapter.NewCatchAdapter(teamService, catchService, ledgerService, os.Stdout)
}

// SpeciesAdapter returns a new SpeciesAdapter writing to stdout.
func SpeciesAdapter() *cliadapter.SpeciesAdapter {
	once.Do(initServices)
	return cliadapter.NewSpeciesAdapter(speciesService, os.Stdout)
}

// LeaderboardAdapter returns a new LeaderboardAdapter writing to stdout.
func LeaderboardAdapter() *cliadapter.LeaderboardAdapter {
	once.Do(initServices)
	return cliadapter.NewLeaderboardAdapter(leaderboardService, os.Stdout)
}

// LedgerAdapter returns a new LedgerAdapter writing to stdout.
func LedgerAdapter() *cliadapter.LedgerAdapter {
	once.Do(initServices)
	return cliadapter.NewLedgerAdapter(ledgerService, os.Stdout)
}
