package domain

import (
	"slices"
	"time"
)

// BuildStats summarizes what Build did with the raw rows.
type BuildStats struct {
	Rows    int // rows offered to Build
	Events  int // rows retained as events
	Undated int // retained events whose date could not be parsed
	Skipped int // rows dropped because a numeric field was unparseable
	Errors  []error
}

// Store is the immutable, classified event collection for one dataset
// snapshot. It is safe for concurrent readers because nothing writes to it
// after Build returns.
type Store struct {
	events   []Event
	facets   *FacetIndex
	loadedAt time.Time
}

// Build classifies every raw row and derives the facet index once.
// Rows with unparseable dates are kept; they can never match a year or month
// selection. Rows with unparseable coordinates or magnitude are skipped and
// reported in BuildStats.
func Build(records []RawRecord) (*Store, BuildStats) {
	stats := BuildStats{Rows: len(records)}
	events := make([]Event, 0, len(records))

	for _, rec := range records {
		e, err := NewEvent(rec)
		if err != nil {
			stats.Skipped++
			stats.Errors = append(stats.Errors, err)
			continue
		}
		if !e.HasDate() {
			stats.Undated++
		}
		events = append(events, e)
	}
	stats.Events = len(events)

	return NewStore(events), stats
}

// NewStore wraps already-classified events. The slice is copied.
func NewStore(events []Event) *Store {
	events = slices.Clone(events)
	return &Store{
		events:   events,
		facets:   newFacetIndex(events),
		loadedAt: clock.Now(),
	}
}

// Events returns a copy of the event collection in dataset order.
func (s *Store) Events() []Event {
	return slices.Clone(s.events)
}

// Len returns the number of retained events.
func (s *Store) Len() int {
	return len(s.events)
}

// Facets returns the read-only facet index.
func (s *Store) Facets() *FacetIndex {
	return s.facets
}

// LoadedAt returns when the store was built.
func (s *Store) LoadedAt() time.Time {
	return s.loadedAt
}

// Filter applies a selection to the store's events.
func (s *Store) Filter(sel Selection) []Event {
	return Filter(s.events, sel)
}

// FacetIndex holds the selectable option lists derived from a Store.
type FacetIndex struct {
	years  []int
	months []int
}

func newFacetIndex(events []Event) *FacetIndex {
	yearSet := make(map[int]struct{})
	monthSet := make(map[int]struct{})
	for _, e := range events {
		if !e.HasDate() {
			continue
		}
		yearSet[e.Year] = struct{}{}
		monthSet[e.Month] = struct{}{}
	}

	years := make([]int, 0, len(yearSet))
	for y := range yearSet {
		years = append(years, y)
	}
	slices.Sort(years)
	slices.Reverse(years)

	months := make([]int, 0, len(monthSet))
	for m := range monthSet {
		months = append(months, m)
	}
	slices.Sort(months)

	return &FacetIndex{years: years, months: months}
}

// AvailableYears returns the distinct years present, newest first.
func (f *FacetIndex) AvailableYears() []int {
	return slices.Clone(f.years)
}

// AvailableMonths returns the distinct months present, ascending.
func (f *FacetIndex) AvailableMonths() []int {
	return slices.Clone(f.months)
}

// SelectableBands returns the four offered bands in fixed order.
func (f *FacetIndex) SelectableBands() []Band {
	return slices.Clone(selectableBands)
}

// BandColor returns the display color for a band, or FallbackColor.
func (f *FacetIndex) BandColor(b Band) string {
	if c, ok := bandColors[b]; ok {
		return c
	}
	return FallbackColor
}

// BandColors returns the color for every selectable band.
func (f *FacetIndex) BandColors() map[Band]string {
	out := make(map[Band]string, len(selectableBands))
	for _, b := range selectableBands {
		out[b] = f.BandColor(b)
	}
	return out
}

// DefaultSelection selects every offered option, as the dashboard does on
// first load.
func (f *FacetIndex) DefaultSelection() Selection {
	return Selection{
		Years:  f.AvailableYears(),
		Months: f.AvailableMonths(),
		Bands:  f.SelectableBands(),
	}
}
