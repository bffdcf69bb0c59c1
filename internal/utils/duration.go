package utils

import (
	"fmt"
	"time"
)

// FormatDuration renders a duration as "3h 25m" (or "45m" under an hour).
// Seconds are dropped, durations round down to the minute.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}

	totalMinutes := int(d.Minutes())
	hours := totalMinutes / 60
	minutes := totalMinutes % 60

	if hours == 0 {
		return fmt.Sprintf("%dm", minutes)
	}

	return fmt.Sprintf("%dh %dm", hours, minutes)
}
