package weekly_view

import (
	"fmt"
	"testing"

	"github.com/klokku/timesheet/pkg/time_entry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(id string, userId string, date string, start string, end string) time_entry.TimeEntry {
	return time_entry.TimeEntry{Id: id, UserId: userId, Date: date, StartTime: start, EndTime: end}
}

func TestGroupEntries(t *testing.T) {
	weekDays := ResolveWeek("2025-01-15", English)

	t.Run("should bucket in-window entries by user and day", func(t *testing.T) {
		// given
		entries := []time_entry.TimeEntry{
			entry("1", "bob", "2025-01-13", "09:00", "10:00"),
			entry("2", "ann", "2025-01-14T00:00:00Z", "09:00", "10:00"),
			entry("3", "bob", "2025-01-13", "11:00", "12:00"),
			entry("4", "bob", "2025-01-20", "09:00", "10:00"),
			entry("5", "carl", "2025-01-12", "09:00", "10:00"),
			entry("6", "carl", "", "09:00", "10:00"),
		}

		// when
		grouping := GroupEntries(entries, weekDays)

		// then
		assert.Equal(t, []string{"bob", "ann"}, grouping.UserIds)
		require.Len(t, grouping.ByUser["bob"], 1)
		assert.Equal(t, []string{"1", "3"}, ids(grouping.ByUser["bob"]["2025-01-13"]))
		assert.Equal(t, []string{"2"}, ids(grouping.ByUser["ann"]["2025-01-14"]))
		assert.NotContains(t, grouping.ByUser, "carl")
	})

	t.Run("should drop everything for an invalid window", func(t *testing.T) {
		grouping := GroupEntries([]time_entry.TimeEntry{entry("1", "bob", "", "09:00", "10:00")}, ResolveWeek("nope", English))

		assert.Empty(t, grouping.UserIds)
	})
}

func TestBuildRows(t *testing.T) {
	weekDays := ResolveWeek("2025-01-15", English)

	t.Run("should order rows by day and then start time", func(t *testing.T) {
		// given
		byDate := map[string][]time_entry.TimeEntry{
			"2025-01-16": {entry("thu", "u", "2025-01-16", "08:00", "09:00")},
			"2025-01-14": {
				entry("tue-late", "u", "2025-01-14", "13:00", "14:00"),
				entry("tue-early", "u", "2025-01-14", "07:30", "08:00"),
			},
			"2025-01-19": {entry("sun", "u", "2025-01-19", "10:00", "11:00")},
		}

		// when
		rows := BuildRows(byDate, weekDays)

		// then
		require.Len(t, rows, 4)
		assert.Equal(t, []string{"tue-early", "tue-late", "thu", "sun"}, rowIds(rows))
		assert.Equal(t, []string{"T", "T", "T", "S"}, []string{rows[0].DayIndicator, rows[1].DayIndicator, rows[2].DayIndicator, rows[3].DayIndicator})
		assert.False(t, rows[0].IsPlaceholder)
		assert.Equal(t, "07:30", rows[0].StartTime)
		assert.Equal(t, "08:00", rows[0].EndTime)
	})

	t.Run("should keep source order for equal start times", func(t *testing.T) {
		byDate := map[string][]time_entry.TimeEntry{
			"2025-01-13": {
				entry("first", "u", "2025-01-13", "09:00", "10:00"),
				entry("second", "u", "2025-01-13", "09:00", "09:30"),
			},
		}

		rows := BuildRows(byDate, weekDays)

		assert.Equal(t, []string{"first", "second"}, rowIds(rows))
	})
}

func TestNormalizeRows(t *testing.T) {
	for _, count := range []int{0, 3, 5, 12} {
		t.Run(fmt.Sprintf("should return five rows for %d entries", count), func(t *testing.T) {
			// given
			var rows []DisplayRow
			for i := 0; i < count; i++ {
				rows = append(rows, DisplayRow{Id: fmt.Sprintf("e%d", i), DayIndicator: "M"})
			}

			// when
			normalized := NormalizeRows(rows)

			// then
			require.Len(t, normalized, VisibleRows)
			for i, row := range normalized {
				if i < count {
					assert.Equal(t, fmt.Sprintf("e%d", i), row.Id)
					assert.False(t, row.IsPlaceholder)
				} else {
					assert.Equal(t, fmt.Sprintf("placeholder-%d", i), row.Id)
					assert.True(t, row.IsPlaceholder)
					assert.Empty(t, row.DayIndicator)
				}
			}
		})
	}
}

func ids(entries []time_entry.TimeEntry) []string {
	result := make([]string, 0, len(entries))
	for _, e := range entries {
		result = append(result, e.Id)
	}
	return result
}

func rowIds(rows []DisplayRow) []string {
	result := make([]string, 0, len(rows))
	for _, r := range rows {
		result = append(result, r.Id)
	}
	return result
}
