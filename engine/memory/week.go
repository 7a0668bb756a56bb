package memory

import (
	"fmt"
	"time"
)

// WeekID formats the calendar week of t as "YYYY-Wnn". Weeks are counted
// from January 1st with Sunday-based offsets, so the id is not an ISO 8601
// week number. Trend points before and after the rework must land in the
// same buckets, hence the scheme is kept.
func WeekID(t time.Time) string {
	year := t.Year()
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, t.Location())
	days := int(t.Sub(start) / (24 * time.Hour))
	week := (days + int(start.Weekday()) + 1 + 6) / 7
	if week < 1 {
		week = 1
	}
	return fmt.Sprintf("%d-W%02d", year, week)
}
