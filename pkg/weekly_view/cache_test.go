package weekly_view

import (
	"testing"

	"github.com/klokku/timesheet/pkg/time_entry"
	"github.com/klokku/timesheet/pkg/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViewCache(t *testing.T) {
	viewer := &user.User{Id: "u-1", FirstName: "Ann"}
	entries := []time_entry.TimeEntry{entry("1", "u-1", "2025-01-13", "09:00", "10:00")}

	t.Run("should reuse the view for identical inputs", func(t *testing.T) {
		// given
		cache, err := NewViewCache(4)
		require.NoError(t, err)

		// when
		first := cache.GetOrBuild(entries, "2025-01-15", nil, viewer, English)
		second := cache.GetOrBuild(entries, "2025-01-15", nil, viewer, English)

		// then
		assert.Equal(t, first, second)
		assert.Equal(t, 1, cache.Len())
	})

	t.Run("should share an entry for dates in the same week only when the date matches", func(t *testing.T) {
		cache, err := NewViewCache(4)
		require.NoError(t, err)

		cache.GetOrBuild(entries, "2025-01-15", nil, viewer, English)
		cache.GetOrBuild(entries, "2025-01-15T10:00:00Z", nil, viewer, English)
		cache.GetOrBuild(entries, "2025-01-16", nil, viewer, English)

		assert.Equal(t, 2, cache.Len())
	})

	t.Run("should share an entry for dates differing only in surrounding spaces", func(t *testing.T) {
		cache, err := NewViewCache(4)
		require.NoError(t, err)

		first := cache.GetOrBuild(entries, "2025-01-15", nil, viewer, English)
		second := cache.GetOrBuild(entries, " 2025-01-15 ", nil, viewer, English)

		assert.Equal(t, first, second)
		assert.Equal(t, 1, cache.Len())
	})

	t.Run("should rebuild when entries change", func(t *testing.T) {
		// given
		cache, err := NewViewCache(4)
		require.NoError(t, err)
		cache.GetOrBuild(entries, "2025-01-15", nil, viewer, English)
		changed := []time_entry.TimeEntry{entry("1", "u-1", "2025-01-13", "09:00", "12:00")}

		// when
		view := cache.GetOrBuild(changed, "2025-01-15", nil, viewer, English)

		// then
		assert.Equal(t, 2, cache.Len())
		assert.InDelta(t, 3.0, view.UserCards[0].TotalHours, 1e-9)
	})

	t.Run("should rebuild when the name lookup changes", func(t *testing.T) {
		cache, err := NewViewCache(4)
		require.NoError(t, err)
		cache.GetOrBuild(entries, "2025-01-15", nil, viewer, English)

		view := cache.GetOrBuild(entries, "2025-01-15", map[string]user.User{"u-1": {Id: "u-1", FirstName: "Annie"}}, viewer, English)

		assert.Equal(t, "Annie", view.UserCards[0].UserName)
		assert.Equal(t, 2, cache.Len())
	})

	t.Run("should be empty after purge", func(t *testing.T) {
		cache, err := NewViewCache(4)
		require.NoError(t, err)
		cache.GetOrBuild(entries, "2025-01-15", nil, viewer, English)

		cache.Purge()

		assert.Equal(t, 0, cache.Len())
	})

	t.Run("should build every time when disabled", func(t *testing.T) {
		cache, err := NewViewCache(0)
		require.NoError(t, err)

		view := cache.GetOrBuild(entries, "2025-01-15", nil, viewer, English)

		assert.Len(t, view.UserCards, 1)
		assert.Equal(t, 0, cache.Len())
		cache.Purge()
	})
}
