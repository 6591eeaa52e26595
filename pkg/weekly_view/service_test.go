package weekly_view

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/klokku/timesheet/internal/event_bus"
	"github.com/klokku/timesheet/internal/utils"
	"github.com/klokku/timesheet/pkg/time_entry"
	"github.com/klokku/timesheet/pkg/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	adminUser  = user.User{Id: "u-admin", FirstName: "Ada", IsAdmin: true}
	memberUser = user.User{Id: "u-member", FirstName: "Max"}
)

type serviceFixture struct {
	service  *ServiceImpl
	entries  *time_entry.RepositoryStub
	users    *user.StubUserRepository
	cache    *ViewCache
	eventBus *event_bus.EventBus
}

func setupService(t *testing.T) serviceFixture {
	t.Helper()
	entries := time_entry.NewRepositoryStub(
		entry("1", adminUser.Id, "2025-01-13", "09:00", "11:00"),
		entry("2", memberUser.Id, "2025-01-14", "08:00", "16:00"),
		entry("3", memberUser.Id, "2025-01-21", "08:00", "16:00"),
	)
	users := user.NewStubUserRepository(adminUser, memberUser)
	cache, err := NewViewCache(8)
	require.NoError(t, err)
	eventBus := event_bus.NewEventBus()
	clock := &utils.MockClock{FixedNow: time.Date(2025, time.January, 16, 12, 0, 0, 0, time.UTC)}

	service := NewService(
		time_entry.NewRepositorySource(entries),
		user.NewUserService(users),
		user.ContextViewer{},
		cache,
		English,
		time.UTC,
		clock,
		eventBus,
	)
	return serviceFixture{service: service, entries: entries, users: users, cache: cache, eventBus: eventBus}
}

// blockingDirectory answers only once its context is done.
type blockingDirectory struct {
	cancelled chan struct{}
}

func (d *blockingDirectory) ListUsers(ctx context.Context) ([]user.User, error) {
	<-ctx.Done()
	close(d.cancelled)
	return nil, ctx.Err()
}

func TestServiceImpl_GetWeeklyView(t *testing.T) {
	t.Run("should build cards of all users for an administrator", func(t *testing.T) {
		// given
		f := setupService(t)
		ctx := user.WithUser(context.Background(), adminUser)

		// when
		view, err := f.service.GetWeeklyView(ctx, "2025-01-15")

		// then
		require.NoError(t, err)
		assert.Equal(t, "2025-01-15", view.SelectedDate)
		assert.Empty(t, view.ErrorMessage)
		require.Len(t, view.UserCards, 2)
		assert.Equal(t, "Ada", view.UserCards[0].UserName)
		assert.InDelta(t, 2.0, view.UserCards[0].TotalHours, 1e-9)
		assert.Equal(t, "Max", view.UserCards[1].UserName)
		assert.InDelta(t, 8.0, view.UserCards[1].TotalHours, 1e-9)
	})

	t.Run("should only show the member's own card", func(t *testing.T) {
		f := setupService(t)
		ctx := user.WithUser(context.Background(), memberUser)

		view, err := f.service.GetWeeklyView(ctx, "2025-01-15")

		require.NoError(t, err)
		require.Len(t, view.UserCards, 1)
		assert.Equal(t, memberUser.Id, view.UserCards[0].UserId)
		assert.Equal(t, "Max", view.UserCards[0].UserName)
	})

	t.Run("should use today when no date is given", func(t *testing.T) {
		f := setupService(t)
		ctx := user.WithUser(context.Background(), adminUser)

		view, err := f.service.GetWeeklyView(ctx, "")

		require.NoError(t, err)
		assert.Equal(t, "2025-01-16", view.SelectedDate)
		assert.Equal(t, "2025-01-13", view.WeekDays[0].DateKey)
	})

	t.Run("should fall back to ids when the directory fails", func(t *testing.T) {
		// given
		f := setupService(t)
		f.users.SetError(errors.New("directory down"))
		ctx := user.WithUser(context.Background(), adminUser)

		// when
		view, err := f.service.GetWeeklyView(ctx, "2025-01-15")

		// then
		require.NoError(t, err)
		assert.Empty(t, view.ErrorMessage)
		require.Len(t, view.UserCards, 2)
		assert.Equal(t, "Ada", view.UserCards[0].UserName)
		assert.Equal(t, memberUser.Id, view.UserCards[1].UserName)
	})

	t.Run("should report failed entries loading with an empty view", func(t *testing.T) {
		// given
		f := setupService(t)
		f.entries.SetError(errors.New("connection refused"))
		ctx := user.WithUser(context.Background(), adminUser)

		// when
		view, err := f.service.GetWeeklyView(ctx, "2025-01-15")

		// then
		require.NoError(t, err)
		assert.Equal(t, "Failed to load time tracking records.", view.ErrorMessage)
		assert.Empty(t, view.UserCards)
		assert.Len(t, view.WeekDays, 7)
	})

	t.Run("should cancel the directory fetch when entries loading fails", func(t *testing.T) {
		// given
		entries := time_entry.NewRepositoryStub()
		entries.SetError(errors.New("connection refused"))
		directory := &blockingDirectory{cancelled: make(chan struct{})}
		cache, err := NewViewCache(0)
		require.NoError(t, err)
		service := NewService(
			time_entry.NewRepositorySource(entries),
			directory,
			user.ContextViewer{},
			cache,
			English,
			time.UTC,
			&utils.MockClock{FixedNow: time.Date(2025, time.January, 16, 12, 0, 0, 0, time.UTC)},
			nil,
		)
		ctx := user.WithUser(context.Background(), adminUser)

		// when
		view, err := service.GetWeeklyView(ctx, "2025-01-15")

		// then
		require.NoError(t, err)
		assert.Equal(t, "Failed to load time tracking records.", view.ErrorMessage)
		assert.Empty(t, view.UserCards)
		select {
		case <-directory.cancelled:
		default:
			t.Fatal("directory fetch was not cancelled")
		}
	})

	t.Run("should fail without a viewer", func(t *testing.T) {
		f := setupService(t)

		_, err := f.service.GetWeeklyView(context.Background(), "2025-01-15")

		assert.ErrorIs(t, err, ErrNoViewer)
		assert.ErrorIs(t, err, user.ErrNoUser)
	})

	t.Run("should purge cached views when the session changes", func(t *testing.T) {
		// given
		f := setupService(t)
		ctx := user.WithUser(context.Background(), adminUser)
		_, err := f.service.GetWeeklyView(ctx, "2025-01-15")
		require.NoError(t, err)
		require.Equal(t, 1, f.cache.Len())

		// when
		err = f.eventBus.Publish(event_bus.NewEvent(ctx, event_bus.SessionEndedEvent, event_bus.SessionChanged{UserId: adminUser.Id}))

		// then
		require.NoError(t, err)
		assert.Equal(t, 0, f.cache.Len())
	})

	t.Run("should recompute when entries change", func(t *testing.T) {
		// given
		f := setupService(t)
		ctx := user.WithUser(context.Background(), memberUser)
		_, err := f.service.GetWeeklyView(ctx, "2025-01-15")
		require.NoError(t, err)

		// when
		f.entries.SetEntries([]time_entry.TimeEntry{entry("9", memberUser.Id, "2025-01-15", "10:00", "11:30")})
		view, err := f.service.GetWeeklyView(ctx, "2025-01-15")

		// then
		require.NoError(t, err)
		require.Len(t, view.UserCards, 1)
		assert.InDelta(t, 1.5, view.UserCards[0].TotalHours, 1e-9)
	})
}
