package database

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/klokku/timesheet/internal/config"
	log "github.com/sirupsen/logrus"
)

const (
	migrationsDir = "migrations"
	maxReadConns  = 10
	minIdleConns  = 2
)

// URL returns the postgres:// connection URL of cfg with search_path set to its schema.
func URL(cfg config.Database) string {
	query := url.Values{}
	query.Set("sslmode", "disable")
	query.Set("search_path", cfg.Schema)
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(cfg.User, cfg.Pass),
		Host:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Path:     "/" + cfg.Name,
		RawQuery: query.Encode(),
	}
	return u.String()
}

// Open connects a pool to the records database and checks it answers.
func Open(ctx context.Context, cfg config.Database) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(URL(cfg))
	if err != nil {
		return nil, fmt.Errorf("invalid database settings: %w", err)
	}
	poolConfig.MaxConns = maxReadConns
	poolConfig.MinConns = minIdleConns

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("connect to %s/%s: %w", cfg.Host, cfg.Name, err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping %s/%s: %w", cfg.Host, cfg.Name, err)
	}
	log.Infof("Connected to database %s on %s:%d", cfg.Name, cfg.Host, cfg.Port)
	return pool, nil
}

// Migrate brings the users and time_tracker tables up to the latest schema version.
func Migrate(cfg config.Database) error {
	dir, err := locateMigrations()
	if err != nil {
		return err
	}

	m, err := migrate.New("file://"+dir, URL(cfg))
	if err != nil {
		return fmt.Errorf("prepare migrations from %s: %w", dir, err)
	}
	defer m.Close()

	switch err := m.Up(); {
	case errors.Is(err, migrate.ErrNoChange):
		log.Debug("Database schema is up to date")
	case err != nil:
		return fmt.Errorf("apply migrations: %w", err)
	default:
		log.Info("Database schema migrated")
	}
	return nil
}

// locateMigrations walks up from the working directory, so both the binary
// started from the repository root and package tests find the same directory.
func locateMigrations() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		candidate := filepath.Join(dir, migrationsDir)
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return filepath.Abs(candidate)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no %s directory above the working directory", migrationsDir)
		}
		dir = parent
	}
}
