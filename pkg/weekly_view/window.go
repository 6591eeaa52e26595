package weekly_view

import (
	"strings"
	"time"
)

const (
	DaysInWeek    = 7
	dateKeyLayout = "2006-01-02"
)

var shortLabels = [DaysInWeek]string{"M", "Tu", "W", "Th", "F", "Sa", "Su"}

type WeekDay struct {
	DateKey    string
	ShortLabel string
	FullLabel  string
}

// DateKey returns the date part of an ISO date or datetime string.
func DateKey(isoDate string) string {
	if isoDate == "" {
		return ""
	}
	key, _, _ := strings.Cut(isoDate, "T")
	return key
}

// WeekStart returns the Monday of the week containing date, at midnight UTC.
func WeekStart(date time.Time) time.Time {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	diff := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -diff)
}

// ResolveWeek returns the seven days, Monday to Sunday, of the week containing
// dateInput. Input that is not a valid date yields days with an empty DateKey
// and an "Invalid Date" label.
func ResolveWeek(dateInput string, locale Locale) []WeekDay {
	date, err := time.Parse(dateKeyLayout, DateKey(strings.TrimSpace(dateInput)))
	if err != nil {
		return invalidWeek()
	}

	start := WeekStart(date)
	days := make([]WeekDay, 0, DaysInWeek)
	for i := 0; i < DaysInWeek; i++ {
		day := start.AddDate(0, 0, i)
		days = append(days, WeekDay{
			DateKey:    day.Format(dateKeyLayout),
			ShortLabel: shortLabels[i],
			FullLabel:  locale.FullLabel(day),
		})
	}
	return days
}

func invalidWeek() []WeekDay {
	days := make([]WeekDay, 0, DaysInWeek)
	for i := 0; i < DaysInWeek; i++ {
		days = append(days, WeekDay{
			ShortLabel: shortLabels[i],
			FullLabel:  invalidDateLabel,
		})
	}
	return days
}
