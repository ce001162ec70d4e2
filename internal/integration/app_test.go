package integration_test

import (
	"context"
	"io"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cinelist/movie-catalog-service/internal/app"
)

// TestApp bundles the application under test with a direct database handle
// used for seeding and state assertions.
type TestApp struct {
	App      *app.Application
	DB       *pgxpool.Pool
	MediaDir string
}

func newTestApp(cfg app.Config) (*TestApp, error) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	application, err := app.NewApplication(cfg, logger)
	if err != nil {
		return nil, err
	}

	db, err := pgxpool.New(context.Background(), cfg.DB.DSN)
	if err != nil {
		application.Close()
		return nil, err
	}

	return &TestApp{
		App:      application,
		DB:       db,
		MediaDir: cfg.Media.BaseDir,
	}, nil
}

func (a *TestApp) Close() {
	a.DB.Close()
	a.App.Close()
}
