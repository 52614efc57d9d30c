package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/taskroom/taskroom-api/internal/config"
	"github.com/taskroom/taskroom-api/internal/platform/postgres"
	"github.com/taskroom/taskroom-api/internal/service/auth"
	"github.com/taskroom/taskroom-api/internal/store"
)

// application holds the assembled dependencies of the running server.
// Everything is constructed once at startup and shared read-only between
// requests; the stores are the only mutable state.
type application struct {
	config           *config.Config
	logger           *slog.Logger
	userStore        store.UserStore
	taskStore        store.TaskStore
	jwtService       auth.JWTService
	passwordHasher   auth.PasswordHasher
	passwordVerifier auth.PasswordVerifier
}

// newApplication wires the stores and services from the given configuration
// and database connection.
func newApplication(cfg *config.Config, db *sql.DB, logger *slog.Logger) (*application, error) {
	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT service: %w", err)
	}

	return &application{
		config:           cfg,
		logger:           logger,
		userStore:        postgres.NewPostgresUserStore(db, logger),
		taskStore:        postgres.NewPostgresTaskStore(db, logger),
		jwtService:       jwtService,
		passwordHasher:   auth.NewBcryptHasher(cfg.Auth.BcryptCost),
		passwordVerifier: auth.NewBcryptVerifier(),
	}, nil
}
