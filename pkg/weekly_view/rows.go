package weekly_view

import (
	"sort"
	"strconv"
	"strings"

	"github.com/klokku/timesheet/pkg/time_entry"
)

// VisibleRows is the fixed number of rows on every user card.
const VisibleRows = 5

type DisplayRow struct {
	Id            string
	DayIndicator  string
	StartTime     string
	EndTime       string
	IsPlaceholder bool
}

// DayIndicator collapses a short day code to a single letter. Tuesday and
// Thursday both become "T", Saturday and Sunday both become "S".
func DayIndicator(shortLabel string) string {
	switch shortLabel {
	case "Tu", "Th":
		return "T"
	case "Sa", "Su":
		return "S"
	}
	return shortLabel
}

// BuildRows flattens a user's entries into one row sequence ordered by day and,
// within a day, by start time.
func BuildRows(byDate map[string][]time_entry.TimeEntry, weekDays []WeekDay) []DisplayRow {
	var rows []DisplayRow
	for _, day := range weekDays {
		entries := append([]time_entry.TimeEntry(nil), byDate[day.DateKey]...)
		sort.SliceStable(entries, func(i, j int) bool {
			return strings.Compare(entries[i].StartTime, entries[j].StartTime) < 0
		})

		indicator := DayIndicator(day.ShortLabel)
		for _, entry := range entries {
			rows = append(rows, DisplayRow{
				Id:           entry.Id,
				DayIndicator: indicator,
				StartTime:    entry.StartTime,
				EndTime:      entry.EndTime,
			})
		}
	}
	return rows
}

// NormalizeRows truncates rows to VisibleRows and pads shorter sequences with
// placeholder rows.
func NormalizeRows(rows []DisplayRow) []DisplayRow {
	visible := make([]DisplayRow, 0, VisibleRows)
	for _, row := range rows {
		if len(visible) == VisibleRows {
			break
		}
		visible = append(visible, row)
	}

	for len(visible) < VisibleRows {
		visible = append(visible, DisplayRow{
			Id:            "placeholder-" + strconv.Itoa(len(visible)),
			IsPlaceholder: true,
		})
	}
	return visible
}
