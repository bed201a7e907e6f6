package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dmateus/crewplan/internal/cli"
	"github.com/dmateus/crewplan/internal/config"
	"github.com/dmateus/crewplan/internal/db"
	"github.com/dmateus/crewplan/internal/repository"
	"github.com/dmateus/crewplan/internal/sequence"
	"github.com/dmateus/crewplan/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Determine DB path: env var or default ~/.crewplan/crewplan.db
	dbPath := os.Getenv("CREWPLAN_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".crewplan", "crewplan.db")
	}

	cfg, err := config.Load(os.Getenv("CREWPLAN_CONFIG"))
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	entryRepo := repository.NewSQLiteEntryRepo(database)
	workerRepo := repository.NewSQLiteWorkerRepo(database)
	teamRepo := repository.NewSQLiteTeamRepo(database)
	leaveRepo := repository.NewSQLiteLeaveRepo(database)
	counterRepo := repository.NewSQLiteCounterRepo(database)

	uow := db.NewSQLiteUnitOfWork(database)
	alloc := sequence.NewAllocator(counterRepo).WithRetryPolicy(cfg.MaxRetries, cfg.BackoffBase)

	// Use-case telemetry goes to stderr when enabled.
	var observers []service.UseCaseObserver
	if os.Getenv("CREWPLAN_LOG_USECASES") == "1" {
		observers = append(observers, service.NewLogUseCaseObserver(os.Stderr))
	}

	app := &cli.App{
		Entries: service.NewEntryService(entryRepo, alloc, observers...),
		Workers: service.NewWorkerService(workerRepo, leaveRepo),
		Teams:   service.NewTeamService(teamRepo),
		Coordinator: service.NewScheduleCoordinator(
			uow, entryRepo, workerRepo, teamRepo, leaveRepo, cfg, observers...),
	}

	return cli.NewRootCmd(app).Execute()
}
