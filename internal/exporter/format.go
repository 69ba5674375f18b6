package exporter

import (
	"strconv"
)

// formatFloat formats a float64 with the shortest representation that
// parses back to the same value
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// formatRounded formats a float64 with exactly 3 decimal places for summaries
func formatRounded(f float64) string {
	return strconv.FormatFloat(f, 'f', 3, 64)
}

// formatInt formats an int value for CSV output
func formatInt(i int) string {
	return strconv.Itoa(i)
}

// formatBool formats a boolean value for CSV output
func formatBool(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
