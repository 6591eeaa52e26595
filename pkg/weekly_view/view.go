package weekly_view

import (
	"sort"
	"strings"

	"github.com/klokku/timesheet/pkg/time_entry"
	"github.com/klokku/timesheet/pkg/user"
)

type UserWeekCard struct {
	UserId     string
	UserName   string
	Rows       []DisplayRow
	TotalHours float64
}

type View struct {
	WeekDays       []WeekDay
	WeekRangeLabel string
	UserCards      []UserWeekCard
}

// Build aggregates entries into per-user cards for the week containing
// dateInput. Cards exist only for users with entries in the window and are
// sorted by display name, ignoring case. Build keeps no state between calls.
func Build(
	entries []time_entry.TimeEntry,
	dateInput string,
	names map[string]user.User,
	viewer *user.User,
	locale Locale,
) View {
	weekDays := ResolveWeek(dateInput, locale)
	grouping := GroupEntries(entries, weekDays)

	cards := make([]UserWeekCard, 0, len(grouping.UserIds))
	for _, userId := range grouping.UserIds {
		rows := BuildRows(grouping.ByUser[userId], weekDays)

		totalHours := 0.0
		for _, row := range rows {
			totalHours += DurationHours(row.StartTime, row.EndTime)
		}

		cards = append(cards, UserWeekCard{
			UserId:     userId,
			UserName:   DisplayName(userId, names, viewer),
			Rows:       NormalizeRows(rows),
			TotalHours: totalHours,
		})
	}

	collator := locale.collator()
	sort.SliceStable(cards, func(i, j int) bool {
		left := strings.ToLower(cards[i].UserName)
		right := strings.ToLower(cards[j].UserName)
		return collator.CompareString(left, right) < 0
	})

	return View{
		WeekDays:       weekDays,
		WeekRangeLabel: WeekRangeLabel(weekDays),
		UserCards:      cards,
	}
}
