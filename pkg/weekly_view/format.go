package weekly_view

import (
	"strconv"
	"strings"

	"github.com/klokku/timesheet/pkg/user"
)

// To12Hour converts an HH:MM clock time to a 12-hour "h:MM AM/PM" string.
// Empty input gives empty output and an unparsable hour is returned unchanged.
func To12Hour(timeValue string) string {
	if timeValue == "" {
		return ""
	}

	hourString, minuteString, found := strings.Cut(timeValue, ":")
	if !found {
		minuteString = "00"
	} else if idx := strings.Index(minuteString, ":"); idx >= 0 {
		minuteString = minuteString[:idx]
	}

	hours24 := 0
	if trimmed := strings.TrimSpace(hourString); trimmed != "" {
		parsed, err := strconv.Atoi(trimmed)
		if err != nil {
			return timeValue
		}
		hours24 = parsed
	}

	hours12 := hours24 % 12
	if hours12 == 0 {
		hours12 = 12
	}
	period := "AM"
	if hours24 >= 12 {
		period = "PM"
	}
	return strconv.Itoa(hours12) + ":" + minuteString + " " + period
}

// WeekRangeLabel joins the full labels of the first and last day of the window.
func WeekRangeLabel(weekDays []WeekDay) string {
	if len(weekDays) == 0 {
		return ""
	}
	return weekDays[0].FullLabel + " - " + weekDays[len(weekDays)-1].FullLabel
}

// DisplayName resolves the name shown on a user card: the directory entry's
// first name, then the viewer's own first name, then the raw id.
func DisplayName(userId string, names map[string]user.User, viewer *user.User) string {
	if matched, ok := names[userId]; ok {
		return matched.FirstName
	}
	if viewer != nil && viewer.Id == userId {
		return viewer.FirstName
	}
	return userId
}
