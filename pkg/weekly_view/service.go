package weekly_view

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/klokku/timesheet/internal/event_bus"
	"github.com/klokku/timesheet/internal/utils"
	"github.com/klokku/timesheet/pkg/time_entry"
	"github.com/klokku/timesheet/pkg/user"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

var ErrNoViewer = errors.New("no viewer for weekly view")

const loadEntriesFailedMessage = "Failed to load time tracking records."

// WeeklyView is a built View together with the selected date and the
// message of a failed entries fetch, if any.
type WeeklyView struct {
	View
	SelectedDate string
	ErrorMessage string
}

type Service interface {
	GetWeeklyView(ctx context.Context, dateInput string) (WeeklyView, error)
}

type ServiceImpl struct {
	entries   time_entry.Source
	directory user.Directory
	viewers   user.ViewerProvider
	cache     *ViewCache
	locale    Locale
	location  *time.Location
	clock     utils.Clock
}

func NewService(
	entries time_entry.Source,
	directory user.Directory,
	viewers user.ViewerProvider,
	cache *ViewCache,
	locale Locale,
	location *time.Location,
	clock utils.Clock,
	eventBus *event_bus.EventBus,
) *ServiceImpl {
	service := &ServiceImpl{
		entries:   entries,
		directory: directory,
		viewers:   viewers,
		cache:     cache,
		locale:    locale,
		location:  location,
		clock:     clock,
	}
	if eventBus != nil {
		purge := func(e event_bus.EventT[event_bus.SessionChanged]) error {
			log.Debugf("received %s for user %s, purging weekly view cache", e.Type, e.Data.UserId)
			service.cache.Purge()
			return nil
		}
		event_bus.SubscribeTyped(eventBus, event_bus.SessionStartedEvent, purge)
		event_bus.SubscribeTyped(eventBus, event_bus.SessionEndedEvent, purge)
	}
	return service
}

// GetWeeklyView builds the weekly view of the current viewer for the week
// containing dateInput, or today when dateInput is empty. A failed entries
// fetch is reported in ErrorMessage with zero cards; a failed directory
// fetch falls back to an empty name lookup.
func (s *ServiceImpl) GetWeeklyView(ctx context.Context, dateInput string) (WeeklyView, error) {
	viewer, err := s.viewers.CurrentViewer(ctx)
	if err != nil {
		return WeeklyView{}, fmt.Errorf("%w: %w", ErrNoViewer, err)
	}

	if dateInput == "" {
		dateInput = utils.Today(s.clock, s.location)
	}

	var entries []time_entry.TimeEntry
	names := map[string]user.User{}

	// A failed entries fetch cancels the directory fetch; directory errors never fail the group.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		entries, err = s.entries.ListEntries(gctx, viewer)
		return err
	})
	if viewer.IsAdmin && s.directory != nil {
		g.Go(func() error {
			users, err := s.directory.ListUsers(gctx)
			if err != nil {
				log.Warnf("failed to load user directory, falling back to ids: %v", err)
				return nil
			}
			names = user.ById(users)
			return nil
		})
	}

	result := WeeklyView{SelectedDate: dateInput}
	if err := g.Wait(); err != nil {
		log.Errorf("failed to load time entries: %v", err)
		entries = nil
		result.ErrorMessage = loadEntriesFailedMessage
	}

	result.View = s.cache.GetOrBuild(entries, dateInput, names, &viewer, s.locale)
	log.Tracef("weekly view for %s has %d user cards", dateInput, len(result.UserCards))
	return result, nil
}
