package domain

import (
	"strings"
	"time"
)

// dateLayouts are tried in order. The public earthquake catalogs mix US-style
// dates ("01/02/1965") with ISO timestamps ("1975-02-23T02:58:41.000Z").
var dateLayouts = []string{
	"2006-01-02",
	"1/2/2006",
	"2006-01-02 15:04:05",
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
}

// ParseDate parses a dataset date in UTC. It reports false for empty or
// unrecognized values, which the dashboard treats as an absent date.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}
