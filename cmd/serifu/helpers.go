package main

import (
	"fmt"
	"time"
)

// formatClock renders a duration as M:SS.mmm for table output.
func formatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := d.Milliseconds()
	minutes := total / 60000
	seconds := total % 60000 / 1000
	millis := total % 1000
	return fmt.Sprintf("%d:%02d.%03d", minutes, seconds, millis)
}

// truncateText shortens table cell text to at most limit runes.
func truncateText(value string, limit int) string {
	runes := []rune(value)
	if limit <= 0 || len(runes) <= limit {
		return value
	}
	if limit == 1 {
		return "…"
	}
	return string(runes[:limit-1]) + "…"
}
