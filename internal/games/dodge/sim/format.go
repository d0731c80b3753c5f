package sim

import (
	"fmt"
	"time"
)

// FormatMillis renders a millisecond count as MM:SS.mmm.
// Minutes are not capped at 59 and widen past two digits when needed.
// Negative input renders as zero.
func FormatMillis(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	minutes := ms / 60000
	seconds := (ms % 60000) / 1000
	millis := ms % 1000
	return fmt.Sprintf("%02d:%02d.%03d", minutes, seconds, millis)
}

// FormatDuration renders d as MM:SS.mmm, truncated to the millisecond.
func FormatDuration(d time.Duration) string {
	return FormatMillis(d.Milliseconds())
}
