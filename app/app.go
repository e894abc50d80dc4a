package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/dafuqqqyunglean/assign_reviewer/api"
	"github.com/dafuqqqyunglean/assign_reviewer/config"
	questionnairerepo "github.com/dafuqqqyunglean/assign_reviewer/database/questionnaire"
	rosterrepo "github.com/dafuqqqyunglean/assign_reviewer/database/roster"
	"github.com/dafuqqqyunglean/assign_reviewer/domain"
	"github.com/dafuqqqyunglean/assign_reviewer/fixture"
	"github.com/dafuqqqyunglean/assign_reviewer/logger"
	"github.com/dafuqqqyunglean/assign_reviewer/migrations"
	editorserv "github.com/dafuqqqyunglean/assign_reviewer/service/editor"
	questionnaireserv "github.com/dafuqqqyunglean/assign_reviewer/service/questionnaire"
	rosterserv "github.com/dafuqqqyunglean/assign_reviewer/service/roster"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
)

const (
	dbConnectAttempts = 10
	dbRetryDelay      = 5 * time.Second
)

type App struct{}

func New() *App {
	return &App{}
}

// Run serves HTTP until ctx is cancelled, then shuts the server down gracefully.
func (a *App) Run(ctx context.Context) error {
	config, err := a.loadConfig()
	if err != nil {
		return err
	}

	repo, closeRepo, err := a.initRoster(ctx, config)
	if err != nil {
		return err
	}
	defer closeRepo()

	questionnaires, err := fixture.LoadQuestionnaires(config.QuestionnaireFixturePath)
	if err != nil {
		slog.Warn("failed to load questionnaires", "error", err)
		return err
	}

	server := api.NewServer(config)
	a.initService(config, repo, questionnaires, server)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Run()
	}()

	slog.Info("server running", "addr", config.ServerPort, "storage", config.StorageDriver)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("error occured while running http server", "error", err)
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer cancel()

	slog.Info("shutting down server")
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down http server: %w", err)
	}

	return nil
}

// Migrate applies the Postgres schema and exits.
func (a *App) Migrate(ctx context.Context) error {
	config, err := a.loadConfig()
	if err != nil {
		return err
	}

	pool, err := a.initDatabase(ctx, config)
	if err != nil {
		slog.Warn("failed to connect to db", "error", err)
		return fmt.Errorf("failed to connect to db: %w", err)
	}
	defer pool.Close()

	return a.runMigrations(pool)
}

func (a *App) loadConfig() (config.Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Warn(".env file not found, using process environment", "error", err)
	}

	config, err := config.NewConfig()
	if err != nil {
		slog.Warn("failed to read config", "error", err)
		return config, fmt.Errorf("failed to read config: %w", err)
	}

	logger.Setup(config.LogLevel, config.LogFormat)

	return config, nil
}

func (a *App) initRoster(ctx context.Context, cfg config.Config) (rosterrepo.Repository, func(), error) {
	topics, err := fixture.LoadTopics(cfg.RosterFixturePath)
	if err != nil {
		slog.Warn("failed to load roster fixture", "error", err)
		return nil, nil, err
	}

	var (
		repo    rosterrepo.Repository
		cleanup = func() {}
	)

	switch cfg.StorageDriver {
	case config.StoragePostgres:
		pool, err := a.initDatabase(ctx, cfg)
		if err != nil {
			slog.Warn("failed to connect to db", "error", err)
			return nil, nil, fmt.Errorf("failed to connect to db: %w", err)
		}

		if err := a.runMigrations(pool); err != nil {
			pool.Close()
			slog.Warn("failed to apply migrations", "error", err)
			return nil, nil, err
		}

		repo = rosterrepo.NewPostgresRepo(pool)
		cleanup = pool.Close
	default:
		repo = rosterrepo.NewMemoryRepo()
	}

	seeded, err := repo.Seed(ctx, topics)
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("failed to seed roster: %w", err)
	}

	slog.Info("roster ready", "seeded", seeded, "fixture_topics", len(topics))

	return repo, cleanup, nil
}

func (a *App) initDatabase(ctx context.Context, config config.Config) (*pgxpool.Pool, error) {
	slog.Info("connecting to DB")

	var pool *pgxpool.Pool
	var err error

	for i := 0; i < dbConnectAttempts; i++ {
		attemptCtx, cancel := context.WithTimeout(ctx, 10*time.Second)

		pool, err = pgxpool.New(attemptCtx, config.DBConnectionString)
		if err == nil {
			if pingErr := pool.Ping(attemptCtx); pingErr == nil {
				cancel()
				slog.Info("successfully connected to DB")
				return pool, nil
			} else {
				pool.Close()
				err = pingErr
			}
		}

		cancel()

		slog.Warn("DB not ready", "attempt", i+1, "error", err)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(dbRetryDelay):
		}
	}

	return nil, fmt.Errorf("failed to connect to DB after %d attempts: %w", dbConnectAttempts, err)
}

func (a *App) runMigrations(pool *pgxpool.Pool) error {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	return migrations.Up(db)
}

func (a *App) initService(config config.Config, repo rosterrepo.Repository, questionnaires []domain.Questionnaire, server *api.Server) {
	rosterService := rosterserv.NewService(repo, rosterserv.Options{
		MaxReviewers:    config.MaxReviewers,
		UniqueReviewers: config.UniqueReviewers,
	})
	editorService := editorserv.NewService(rosterService, config.EditorSessionTTL)
	questionnaireService := questionnaireserv.NewService(questionnairerepo.NewRepo(questionnaires))

	server.HandleRoutes(rosterService, editorService, questionnaireService)
}
