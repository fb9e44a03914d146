// Command validate performs integrity checks on an earthquake dataset and the
// figures derived from it: row parsing, band classification, facet ordering,
// and agreement between the map and the yearly chart.
//
// Usage:
//
//	go run ./cmd/validate -dataset data/earth_data.csv
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"

	"github.com/couchcryptid/quake-dashboard/internal/adapter/csvfile"
	"github.com/couchcryptid/quake-dashboard/internal/domain"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	dataset := flag.String("dataset", "data/earth_data.csv", "path to the earthquake CSV dataset")
	strict := flag.Bool("strict", false, "fail when any row is skipped")
	flag.Parse()

	os.Exit(run(*dataset, *strict))
}

func run(path string, strict bool) int {
	fmt.Println("=== Earthquake Dataset Validation ===")
	fmt.Println()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store, stats, err := csvfile.Load(path, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: %v\n", err)
		return 1
	}

	phases := []*phase{
		validateRows(stats, strict),
		validateBands(store),
		validateFacets(store),
		validateFigures(store, store.Facets().DefaultSelection()),
		validateEmptySelections(store),
	}

	fmt.Println()
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-42s %s\n", p.name, status)
	}

	fmt.Println()
	fmt.Printf("Rows: %d read, %d events, %d undated, %d skipped\n",
		stats.Rows, stats.Events, stats.Undated, stats.Skipped)

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

// validateRows reports rows dropped while building the store. Skips only fail
// the phase in strict mode.
func validateRows(stats domain.BuildStats, strict bool) *phase {
	p := &phase{name: "Row parsing"}
	if stats.Events+stats.Skipped != stats.Rows {
		p.errorf("row accounting mismatch: %d events + %d skipped != %d rows",
			stats.Events, stats.Skipped, stats.Rows)
	}
	if strict {
		for _, err := range stats.Errors {
			p.errorf("%v", err)
		}
	}
	return p
}

func validateBands(store *domain.Store) *phase {
	p := &phase{name: "Band classification"}
	for i, e := range store.Events() {
		if want := domain.Classify(e.Magnitude); e.Band != want {
			p.errorf("event %d: magnitude %v has band %q, want %q", i, e.Magnitude, e.Band, want)
		}
	}
	return p
}

func validateFacets(store *domain.Store) *phase {
	p := &phase{name: "Facet index"}
	facets := store.Facets()

	years := facets.AvailableYears()
	for i := 1; i < len(years); i++ {
		if years[i] >= years[i-1] {
			p.errorf("years not strictly descending at %d: %v", i, years)
			break
		}
	}

	months := facets.AvailableMonths()
	if !slices.IsSorted(months) {
		p.errorf("months not ascending: %v", months)
	}
	for _, m := range months {
		if m < 1 || m > 12 {
			p.errorf("month out of range: %d", m)
		}
	}

	for _, e := range store.Events() {
		if !e.HasDate() {
			continue
		}
		if !slices.Contains(years, e.Year) {
			p.errorf("year %d of a dated event is not offered", e.Year)
		}
		if !slices.Contains(months, e.Month) {
			p.errorf("month %d of a dated event is not offered", e.Month)
		}
	}
	return p
}

// validateFigures checks that both figures describe the same filtered subset.
func validateFigures(store *domain.Store, sel domain.Selection) *phase {
	p := &phase{name: "Figure consistency (default selection)"}
	subset := store.Filter(sel)
	figs := domain.Update(store, sel)

	points := 0
	var bands []string
	for _, l := range figs.Map.Layers {
		bands = append(bands, string(l.Band))
		points += len(l.Points)
		if len(l.Tooltips) != len(l.Points) {
			p.errorf("layer %s: %d tooltips for %d points", l.Band, len(l.Tooltips), len(l.Points))
		}
		if want := store.Facets().BandColor(l.Band); l.Color != want {
			p.errorf("layer %s: color %q, want %q", l.Band, l.Color, want)
		}
	}
	if !slices.IsSorted(bands) {
		p.errorf("layers not ordered by band label: %v", bands)
	}

	bars := 0
	for i, b := range figs.Yearly.Bars {
		bars += b.Count
		if i > 0 && b.Year <= figs.Yearly.Bars[i-1].Year {
			p.errorf("bars not ascending by year at %d", i)
		}
	}

	if points != len(subset) {
		p.errorf("map plots %d points, filter matched %d events", points, len(subset))
	}
	if bars != len(subset) {
		p.errorf("yearly chart counts %d events, filter matched %d", bars, len(subset))
	}
	return p
}

func validateEmptySelections(store *domain.Store) *phase {
	p := &phase{name: "Empty selection short-circuit"}
	full := store.Facets().DefaultSelection()

	cases := map[string]domain.Selection{
		"no years":  {Months: full.Months, Bands: full.Bands},
		"no months": {Years: full.Years, Bands: full.Bands},
		"no bands":  {Years: full.Years, Months: full.Months},
	}
	for name, sel := range cases {
		if figs := domain.Update(store, sel); !figs.IsEmpty() {
			p.errorf("%s: figures are not in the empty form", name)
		}
	}
	return p
}
