package domain

import (
	"context"
	"errors"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"
)

// RawRecord is one dataset row as read from the CSV snapshot.
// Columns other than these four are ignored.
type RawRecord struct {
	Date      string `json:"Date"`
	Latitude  string `json:"Latitude"`
	Longitude string `json:"Longitude"`
	Magnitude string `json:"Magnitude"`
}

// Event is the typed, classified form of a dataset row.
type Event struct {
	Date      time.Time `json:"date,omitzero"` // zero when the source date was unparseable
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Magnitude float64   `json:"magnitude"`
	Year      int       `json:"year,omitempty"`  // 0 when Date is absent
	Month     int       `json:"month,omitempty"` // 1-12, or 0 when Date is absent
	Band      Band      `json:"band"`
}

// HasDate reports whether the source date was parseable.
func (e Event) HasDate() bool {
	return !e.Date.IsZero()
}

// Selection is the facet combination chosen by the user for one update.
type Selection struct {
	Years  []int  `json:"years"`
	Months []int  `json:"months"`
	Bands  []Band `json:"bands"`
}

// IsEmpty reports whether any axis has no values, which defines the
// empty-figures result.
func (s Selection) IsEmpty() bool {
	return len(s.Years) == 0 || len(s.Months) == 0 || len(s.Bands) == 0
}

// Key returns a canonical form of the selection: each axis sorted and
// deduplicated, so equivalent selections share a cache entry.
func (s Selection) Key() string {
	years := slices.Compact(slices.Sorted(slices.Values(s.Years)))
	months := slices.Compact(slices.Sorted(slices.Values(s.Months)))
	bands := slices.Compact(slices.Sorted(slices.Values(s.Bands)))

	var b strings.Builder
	b.WriteString("y=")
	for i, y := range years {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(y))
	}
	b.WriteString("|m=")
	for i, m := range months {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(m))
	}
	b.WriteString("|b=")
	for i, band := range bands {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(string(band))
	}
	return b.String()
}

// errNotFinite rejects NaN and infinities, which strconv accepts but no
// plotted point or JSON payload can carry.
var errNotFinite = errors.New("value is not finite")

// NewEvent parses a raw row into an Event. Coordinates and magnitude must be
// finite numbers; an unparseable date is not an error and leaves the date
// fields absent.
func NewEvent(rec RawRecord) (Event, error) {
	lat, err := parseFloat(rec.Latitude)
	if err != nil {
		return Event{}, fmt.Errorf("parse latitude %q: %w", rec.Latitude, err)
	}
	lon, err := parseFloat(rec.Longitude)
	if err != nil {
		return Event{}, fmt.Errorf("parse longitude %q: %w", rec.Longitude, err)
	}
	mag, err := parseFloat(rec.Magnitude)
	if err != nil {
		return Event{}, fmt.Errorf("parse magnitude %q: %w", rec.Magnitude, err)
	}

	e := Event{
		Latitude:  lat,
		Longitude: lon,
		Magnitude: mag,
		Band:      Classify(mag),
	}
	if date, ok := ParseDate(rec.Date); ok {
		e.Date = date
		e.Year = date.Year()
		e.Month = int(date.Month())
	}
	return e, nil
}

func parseFloat(s string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errNotFinite
	}
	return f, nil
}

// RawMessage is an unprocessed selection-change message from the source topic.
type RawMessage struct {
	Key       []byte
	Value     []byte
	Headers   map[string]string
	Topic     string
	Partition int
	Offset    int64
	Timestamp time.Time
	Commit    func(ctx context.Context) error
}

// OutputMessage is a serialized figures payload destined for the sink topic.
type OutputMessage struct {
	Key     []byte
	Value   []byte
	Headers map[string]string
}
