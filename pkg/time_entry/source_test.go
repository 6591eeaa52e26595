package time_entry

import (
	"context"
	"errors"
	"testing"

	"github.com/klokku/timesheet/pkg/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepositorySource_ListEntries(t *testing.T) {
	repo := NewRepositoryStub(
		TimeEntry{Id: "1", UserId: "u-1", Date: "2025-01-13", StartTime: "09:00", EndTime: "10:00"},
		TimeEntry{Id: "2", UserId: "u-2", Date: "2025-01-13", StartTime: "09:00", EndTime: "10:00"},
		TimeEntry{Id: "3", UserId: "u-1", Date: "2025-01-14", StartTime: "09:00", EndTime: "10:00"},
	)
	source := NewRepositorySource(repo)

	t.Run("should return every entry for an administrator", func(t *testing.T) {
		entries, err := source.ListEntries(context.Background(), user.User{Id: "u-2", IsAdmin: true})

		require.NoError(t, err)
		assert.Len(t, entries, 3)
	})

	t.Run("should return only own entries for a member", func(t *testing.T) {
		entries, err := source.ListEntries(context.Background(), user.User{Id: "u-1"})

		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, "1", entries[0].Id)
		assert.Equal(t, "3", entries[1].Id)
	})

	t.Run("should pass through repository errors", func(t *testing.T) {
		failing := NewRepositoryStub()
		failing.SetError(errors.New("db down"))

		_, err := NewRepositorySource(failing).ListEntries(context.Background(), user.User{Id: "u-1"})

		assert.EqualError(t, err, "db down")
	})
}
