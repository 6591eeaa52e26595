package weekly_view

import (
	"strconv"
	"strings"
)

const minutesPerDay = 24 * 60

// DurationHours returns the hours elapsed between two HH:MM clock times.
// An end earlier than the start is treated as crossing midnight.
func DurationHours(startTime string, endTime string) float64 {
	startMinutes := clockMinutes(startTime)
	endMinutes := clockMinutes(endTime)

	if endMinutes < startMinutes {
		endMinutes += minutesPerDay
	}

	return float64(endMinutes-startMinutes) / 60
}

// clockMinutes converts HH:MM to minutes since midnight. Missing parts count as
// zero and any non-numeric part makes the whole value zero.
func clockMinutes(timeValue string) int {
	parts := strings.Split(timeValue, ":")
	hours, ok := clockPart(parts, 0)
	if !ok {
		return 0
	}
	minutes, ok := clockPart(parts, 1)
	if !ok {
		return 0
	}
	return hours*60 + minutes
}

func clockPart(parts []string, idx int) (int, bool) {
	if idx >= len(parts) {
		return 0, true
	}
	part := strings.TrimSpace(parts[idx])
	if part == "" {
		return 0, true
	}
	value, err := strconv.Atoi(part)
	if err != nil {
		return 0, false
	}
	return value, true
}
