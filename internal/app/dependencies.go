package app

import (
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/klokku/timesheet/internal/config"
	"github.com/klokku/timesheet/internal/event_bus"
	"github.com/klokku/timesheet/internal/utils"
	"github.com/klokku/timesheet/pkg/session"
	"github.com/klokku/timesheet/pkg/time_entry"
	"github.com/klokku/timesheet/pkg/tracker_api"
	"github.com/klokku/timesheet/pkg/user"
	"github.com/klokku/timesheet/pkg/weekly_view"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	EventBus *event_bus.EventBus
	Clock    utils.Clock

	// Set only when users are read from Postgres; enables the X-User-Id middleware.
	UserService user.Service
	UserHandler *user.Handler

	TrackerClient  tracker_api.Client
	SessionStore   *session.Store
	SessionService *session.Service
	SessionHandler *session.Handler

	ViewCache         *weekly_view.ViewCache
	WeeklyViewService *weekly_view.ServiceImpl
	WeeklyViewHandler *weekly_view.Handler
}

// BuildApiDependencies wires the application against the time tracker REST API.
// The viewer is the signed-in session user.
func BuildApiDependencies(client tracker_api.Client, cfg config.Application) (*Dependencies, error) {
	deps := &Dependencies{
		EventBus: event_bus.NewEventBus(),
		Clock:    &utils.SystemClock{},
	}

	deps.TrackerClient = client
	deps.SessionStore = session.NewStore(cfg.Tracker.SessionFile, deps.EventBus)
	if err := deps.SessionStore.Load(); err != nil {
		return nil, err
	}
	deps.SessionService = session.NewService(deps.SessionStore, deps.TrackerClient)
	deps.SessionHandler = session.NewHandler(deps.SessionService)

	directory := tracker_api.NewDirectorySource(deps.TrackerClient, deps.SessionStore)
	deps.UserHandler = user.NewHandler(deps.SessionStore, directory)

	entries := tracker_api.NewEntrySource(deps.TrackerClient, deps.SessionStore)
	if err := buildWeeklyView(deps, entries, directory, deps.SessionStore, cfg); err != nil {
		return nil, err
	}
	return deps, nil
}

// BuildPostgresDependencies wires the application against the time_tracker and
// users tables. The viewer is resolved per request from the X-User-Id header.
func BuildPostgresDependencies(db *pgxpool.Pool, cfg config.Application) (*Dependencies, error) {
	deps := &Dependencies{
		EventBus: event_bus.NewEventBus(),
		Clock:    &utils.SystemClock{},
	}

	deps.UserService = user.NewUserService(user.NewUserRepo(db))
	deps.UserHandler = user.NewHandler(user.ContextViewer{}, deps.UserService)

	entries := time_entry.NewRepositorySource(time_entry.NewRepository(db))
	if err := buildWeeklyView(deps, entries, deps.UserService, user.ContextViewer{}, cfg); err != nil {
		return nil, err
	}
	return deps, nil
}

func buildWeeklyView(
	deps *Dependencies,
	entries time_entry.Source,
	directory user.Directory,
	viewers user.ViewerProvider,
	cfg config.Application,
) error {
	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return fmt.Errorf("invalid timezone %q: %w", cfg.Timezone, err)
	}

	deps.ViewCache, err = weekly_view.NewViewCache(cfg.Cache.Size)
	if err != nil {
		return err
	}
	deps.WeeklyViewService = weekly_view.NewService(
		entries,
		directory,
		viewers,
		deps.ViewCache,
		weekly_view.ParseLocale(cfg.Locale),
		location,
		deps.Clock,
		deps.EventBus,
	)
	deps.WeeklyViewHandler = weekly_view.NewHandler(deps.WeeklyViewService)
	return nil
}
