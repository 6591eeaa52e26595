package weekly_view

import "github.com/klokku/timesheet/pkg/time_entry"

// Grouping holds in-window entries bucketed by user and day key. UserIds keeps
// the order in which users first appear in the source list.
type Grouping struct {
	UserIds []string
	ByUser  map[string]map[string][]time_entry.TimeEntry
}

// GroupEntries buckets entries by user id and day key, dropping entries whose
// date is outside the week window. Entries keep their source order.
func GroupEntries(entries []time_entry.TimeEntry, weekDays []WeekDay) Grouping {
	daySet := make(map[string]struct{}, len(weekDays))
	for _, day := range weekDays {
		if day.DateKey == "" {
			continue
		}
		daySet[day.DateKey] = struct{}{}
	}

	grouping := Grouping{ByUser: map[string]map[string][]time_entry.TimeEntry{}}
	for _, entry := range entries {
		dateKey := DateKey(entry.Date)
		if _, ok := daySet[dateKey]; !ok {
			continue
		}

		byDate, ok := grouping.ByUser[entry.UserId]
		if !ok {
			byDate = map[string][]time_entry.TimeEntry{}
			grouping.ByUser[entry.UserId] = byDate
			grouping.UserIds = append(grouping.UserIds, entry.UserId)
		}
		byDate[dateKey] = append(byDate[dateKey], entry)
	}
	return grouping
}
