// Package format provides display formatting helpers for schedule output.
package format

import (
	"fmt"

	"github.com/quotegrid/cryptoseed/internal/model"
)

// PreviewLength is the maximum rune count for quote previews in listings.
const PreviewLength = 60

// Preview truncates quote text to PreviewLength runes for list display.
func Preview(text string) string {
	return Truncate(text, PreviewLength)
}

// Truncate shortens s to at most n runes, appending "…" when cut.
func Truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 1 {
		return "…"
	}
	return string(runes[:n-1]) + "…"
}

// CompressGaps collapses consecutive missing dates into "first..last" ranges.
// Input dates must be sorted ascending, as ScheduleStatus returns them.
func CompressGaps(dates []string) []string {
	if len(dates) == 0 {
		return nil
	}

	var ranges []string
	start := dates[0]
	prev := dates[0]

	flush := func() {
		if start == prev {
			ranges = append(ranges, start)
		} else {
			ranges = append(ranges, fmt.Sprintf("%s..%s", start, prev))
		}
	}

	for _, date := range dates[1:] {
		if consecutive(prev, date) {
			prev = date
			continue
		}
		flush()
		start = date
		prev = date
	}
	flush()

	return ranges
}

// consecutive reports whether b is the calendar day after a.
// Malformed dates are treated as non-consecutive.
func consecutive(a, b string) bool {
	ta, err := model.ParseDate(a)
	if err != nil {
		return false
	}
	return model.FormatDate(model.AddDays(ta, 1)) == b
}
