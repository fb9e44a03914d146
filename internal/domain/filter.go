package domain

// matcher is a compiled selection: one lookup set per axis.
type matcher struct {
	years  map[int]struct{}
	months map[int]struct{}
	bands  map[Band]struct{}
}

func newMatcher(sel Selection) matcher {
	m := matcher{
		years:  make(map[int]struct{}, len(sel.Years)),
		months: make(map[int]struct{}, len(sel.Months)),
		bands:  make(map[Band]struct{}, len(sel.Bands)),
	}
	for _, y := range sel.Years {
		m.years[y] = struct{}{}
	}
	// Only calendar months are admitted, so the zero month of an undated
	// event can never be selected.
	for _, mo := range sel.Months {
		if mo >= 1 && mo <= 12 {
			m.months[mo] = struct{}{}
		}
	}
	for _, b := range sel.Bands {
		m.bands[b] = struct{}{}
	}
	return m
}

func (m matcher) match(e Event) bool {
	if _, ok := m.years[e.Year]; !ok {
		return false
	}
	if _, ok := m.months[e.Month]; !ok {
		return false
	}
	_, ok := m.bands[e.Band]
	return ok
}

// Filter returns the events whose year, month and band are all selected,
// in input order. A selection with any empty axis returns nil without
// scanning.
func Filter(events []Event, sel Selection) []Event {
	if sel.IsEmpty() {
		return nil
	}

	m := newMatcher(sel)
	out := make([]Event, 0, len(events)/4)
	for _, e := range events {
		if m.match(e) {
			out = append(out, e)
		}
	}
	return out
}
