package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"

	"github.com/hylin-tw/worksite/internal/cli"
	"github.com/hylin-tw/worksite/internal/db"
	"github.com/hylin-tw/worksite/internal/repository"
	"github.com/hylin-tw/worksite/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Determine DB path: env var or default ~/.worksite/worksite.db
	dbPath := os.Getenv("WORKSITE_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".worksite", "worksite.db")
	}

	// Open database
	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	projectRepo := repository.NewSQLiteProjectRepo(database)
	engineeringRepo := repository.NewSQLiteEngineeringRepo(database)
	taskRepo := repository.NewSQLiteTaskRepo(database)
	templateRepo := repository.NewSQLiteTemplateRepo(database)

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database)

	// Operation tracing and mutation events go to stderr when requested.
	var observer service.OperationObserver = service.NoopObserver{}
	var publisher service.Publisher = service.NoopPublisher{}
	if os.Getenv("WORKSITE_TRACE") != "" {
		observer = service.NewLogObserver(os.Stderr)
		publisher = service.NewLogPublisher(os.Stderr)
	}

	app := &cli.App{
		Projects:     service.NewProjectService(projectRepo),
		Engineerings: service.NewEngineeringService(engineeringRepo, projectRepo, publisher),
		Tasks:        service.NewTaskService(taskRepo, engineeringRepo, uow, publisher),
		SubTasks:     service.NewSubTaskService(taskRepo, uow, observer, publisher),
		Progress:     service.NewProgressService(uow, publisher),
		Materialize:  service.NewMaterializeService(templateRepo, projectRepo, uow, nil, observer, publisher),
		Templates:    service.NewTemplateService(templateRepo),
	}

	// Detect interactive terminal for the materialize wizard.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	// Execute root command
	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
