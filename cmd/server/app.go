package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/taskal/internal/config"
	"github.com/phrazzld/taskal/internal/domain/inprogress"
	"github.com/phrazzld/taskal/internal/i18n"
	"github.com/phrazzld/taskal/internal/platform/postgres"
	"github.com/phrazzld/taskal/internal/service"
	"github.com/phrazzld/taskal/internal/service/auth"
	"github.com/phrazzld/taskal/internal/sweeper"
	"golang.org/x/text/language"
)

// application holds the wired dependencies of the server.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB
	locale language.Tag

	jwtService     auth.JWTService
	userService    service.UserService
	taskService    service.TaskService
	projectService service.ProjectService

	sweeper *sweeper.Sweeper
}

// newApplication wires stores, services and the trash sweeper on top of an
// open database.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
		locale: i18n.DefaultTag(),
	}
	if tag, ok := i18n.ParseTag(cfg.Locale.Default); ok {
		app.locale = tag
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	userStore := postgres.NewPostgresUserStore(db, cfg.Auth.BCryptCost, logger)
	taskStore := postgres.NewPostgresTaskStore(db, logger)
	projectStore := postgres.NewPostgresProjectStore(db, logger)

	taskRepo := service.NewTaskRepositoryAdapter(taskStore, db)
	projectRepo := service.NewProjectRepositoryAdapter(projectStore)

	app.userService = service.NewUserService(userStore, auth.NewBcryptVerifier(), logger)

	app.taskService, err = service.NewTaskService(
		taskRepo,
		projectRepo,
		inprogress.NewLimiter(cfg.Tasks.InProgressLimit),
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create task service: %w", err)
	}

	app.projectService, err = service.NewProjectService(projectRepo, taskRepo, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create project service: %w", err)
	}

	app.sweeper = sweeper.New(taskStore, sweeper.ConfigFromTasks(cfg.Tasks), logger)

	logger.Info("application initialized",
		"in_progress_limit", cfg.Tasks.InProgressLimit,
		"trash_retention_days", cfg.Tasks.TrashRetentionDays)
	return app, nil
}

// Run starts the sweeper and serves HTTP until ctx is canceled.
func (app *application) Run(ctx context.Context) error {
	if err := app.sweeper.Start(); err != nil {
		return fmt.Errorf("failed to start trash sweeper: %w", err)
	}

	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup stops background work and closes the database.
func (app *application) cleanup() {
	if app.sweeper != nil {
		app.sweeper.Stop()
	}

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", "error", err)
		}
	}

	app.logger.Info("application shutdown completed")
}
