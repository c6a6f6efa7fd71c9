package utils

import (
	"time"

	"github.com/dustin/go-humanize"
)

// DiffForHumans renders t relative to now, e.g. "3 minutes ago" or "1 day ago".
// Spans under a second read "1 second ago" rather than "now".
func DiffForHumans(t, now time.Time) string {
	if d := now.Sub(t); d > -time.Second && d < time.Second {
		if d < 0 {
			return "1 second from now"
		}
		return "1 second ago"
	}
	return humanize.RelTime(t, now, "ago", "from now")
}
