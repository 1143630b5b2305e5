package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/jask/notewise/internal/config"
	"github.com/jask/notewise/internal/database"
	"github.com/jask/notewise/internal/database/repository"
	"github.com/jask/notewise/internal/flagstore"
	"github.com/jask/notewise/internal/service"
	"github.com/jask/notewise/internal/session"
	"github.com/jask/notewise/internal/summarizer"
	"github.com/jask/notewise/internal/tui"
)

// env is everything a command needs: the database, the flag store and the services.
type env struct {
	db         *sql.DB
	store      session.Store
	closeStore func() error
	notes      *repository.NoteRepo
	services   tui.Services
}

func openEnv(ctx context.Context, c config.Config) (*env, error) {
	if err := os.MkdirAll(filepath.Dir(c.Database.Path), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir db dir: %w", err)
	}
	if err := database.RunMigrations(c.Database.Path); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	db, err := database.Open(c.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := database.SeedDefaults(ctx, db, time.Now()); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("seed defaults: %w", err)
	}

	store, closeStore, err := flagstore.Open(ctx, flagstore.Options{
		Backend:      c.Session.FlagStore,
		DB:           db,
		FilePath:     c.Session.FlagFile,
		SecretPath:   c.Session.SecretFile,
		RedisAddr:    c.Redis.Addr,
		RedisProfile: c.Redis.Profile,
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	slog.Debug("flag store ready", "backend", c.Session.FlagStore)

	notes := repository.NewNoteRepo(db)
	notifications := repository.NewNotificationRepo(db)
	return &env{
		db:         db,
		store:      store,
		closeStore: closeStore,
		notes:      notes,
		services: tui.Services{
			Notes: &service.NoteService{
				Notes:         notes,
				Notifications: notifications,
				Provider:      summarizer.NewHeuristicProvider(),
			},
			Notifications: &service.NotificationService{Repo: notifications},
			Accounts:      &service.AccountService{Profiles: repository.NewProfileRepo(db)},
			Maintenance:   &service.MaintenanceService{DB: db},
			Exporter:      &service.Exporter{Notes: notes},
		},
	}, nil
}

func (e *env) Close() error {
	return errors.Join(e.closeStore(), e.db.Close())
}
