package tradeimport

import (
	"time"

	"github.com/araddon/dateparse"

	"github.com/WayPool/ElysiumBOT-sub001/pkg/contracts/domain"
)

// parseTradeTime tries each layout in order and falls back to dateparse.
// The first layout that parses wins, so ambiguous day/month values resolve
// according to layout order. All times are interpreted as UTC.
func parseTradeTime(raw string, layouts []string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, false
	}

	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, raw, time.UTC); err == nil {
			return validTimestamp(t)
		}
	}

	t, err := dateparse.ParseIn(raw, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return validTimestamp(t)
}

// validTimestamp rejects the epoch and anything before it
func validTimestamp(t time.Time) (time.Time, bool) {
	t = t.UTC()
	if t.Unix() <= 0 {
		return time.Time{}, false
	}
	return t, true
}

// formatCanonical renders t in the normalized record layout
func formatCanonical(t time.Time) string {
	return t.Format(domain.CanonicalTimeLayout)
}
