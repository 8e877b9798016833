package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Veraticus/backoffice/internal/config"
	"github.com/Veraticus/backoffice/internal/schedule"
	"github.com/Veraticus/backoffice/internal/service"
	"github.com/Veraticus/backoffice/internal/storage"
)

// newScheduleClient builds the schedule service client from cfg.
func newScheduleClient(cfg *config.Config) (*schedule.Client, error) {
	client, err := schedule.NewClient(schedule.Config{
		BaseURL: cfg.Schedule.BaseURL,
		Token:   cfg.Schedule.Token,
		CAFile:  cfg.Schedule.CAFile,
		Timeout: cfg.Schedule.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create schedule client: %w", err)
	}
	return client, nil
}

// openStore opens the development grievance store: Postgres when a
// database URL is configured, SQLite otherwise. The schema is migrated
// before the store is returned.
func openStore(ctx context.Context, cfg config.DevServerConfig) (service.GrievanceStore, error) {
	if cfg.DatabaseURL != "" {
		pg, err := storage.NewPostgresStorage(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := pg.Migrate(ctx); err != nil {
			_ = pg.Close()
			return nil, err
		}
		slog.Info("Using Postgres grievance store")
		return pg, nil
	}

	store, err := storage.NewSQLiteStorage(cfg.DBPath)
	if err != nil {
		return nil, err
	}
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, err
	}
	slog.Info("Using SQLite grievance store", "path", cfg.DBPath)
	return store, nil
}
