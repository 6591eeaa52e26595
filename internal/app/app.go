package app

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/klokku/timesheet/internal/config"
	"github.com/klokku/timesheet/internal/database"
	"github.com/klokku/timesheet/pkg/tracker_api"
	log "github.com/sirupsen/logrus"
)

// Application wires configuration, records source, router, and server lifecycle.
type Application struct {
	cfg    config.Application
	router *mux.Router
	srv    *http.Server
	db     *pgxpool.Pool
}

// NewApplication constructs the full HTTP application, ready to Run().
func NewApplication(ctx context.Context, configPath string) (*Application, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	var deps *Dependencies
	var db *pgxpool.Pool
	switch cfg.Source.Kind {
	case config.ApiSource:
		timeout := time.Duration(cfg.Tracker.TimeoutSec) * time.Second
		deps, err = BuildApiDependencies(tracker_api.NewClient(cfg.Tracker.BaseUrl, timeout), cfg)
		if err != nil {
			return nil, err
		}
		if cfg.Tracker.Email != "" {
			if err := deps.SessionService.EnsureSession(ctx, cfg.Tracker.Email, cfg.Tracker.Password); err != nil {
				log.Warnf("failed to sign in as %s, waiting for POST /api/session: %v", cfg.Tracker.Email, err)
			}
		}
	case config.PostgresSource:
		if err := database.Migrate(cfg.Database); err != nil {
			return nil, err
		}
		db, err = database.Open(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		deps, err = BuildPostgresDependencies(db, cfg)
		if err != nil {
			db.Close()
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown source kind %q", cfg.Source.Kind)
	}

	r := mux.NewRouter()

	// Middleware chain
	SetupMiddleware(r, deps)

	// Routes
	RegisterRoutes(r, deps)

	srv := &http.Server{
		Handler:      r,
		Addr:         net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Application{cfg: cfg, router: r, srv: srv, db: db}, nil
}

// Run starts the HTTP server and blocks until ctx is cancelled or the server fails.
func (a *Application) Run(ctx context.Context) error {
	defer a.close()

	errs := make(chan error, 1)
	go func() {
		log.Infof("Starting server on %s using %s source", a.srv.Addr, a.cfg.Source.Kind)
		errs <- a.srv.ListenAndServe()
	}()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
		log.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return a.srv.Shutdown(shutdownCtx)
	}
}

func (a *Application) close() {
	if a.db != nil {
		a.db.Close()
	}
}
