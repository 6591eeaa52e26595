package time_entry

import "time"

// TimeEntry is a single recorded work interval. Date is an ISO date or datetime
// string, StartTime and EndTime are zero-padded HH:MM clock times.
type TimeEntry struct {
	Id        string
	UserId    string
	Date      string
	StartTime string
	EndTime   string
	CreatedAt time.Time `hash:"ignore"`
	UpdatedAt time.Time `hash:"ignore"`
}
