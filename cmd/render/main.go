// Command render computes the dashboard figures for one selection offline
// and writes them as JSON. With no selection flags it renders the default
// all-options selection.
//
// Usage:
//
//	go run ./cmd/render \
//	  -dataset data/earth_data.csv \
//	  -years 2011,2016 -bands '7-8,>8' \
//	  -out figures.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/couchcryptid/quake-dashboard/internal/adapter/csvfile"
	"github.com/couchcryptid/quake-dashboard/internal/domain"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	dataset := flag.String("dataset", "data/earth_data.csv", "path to the earthquake CSV dataset")
	years := flag.String("years", "", "comma-separated years (default: all available)")
	months := flag.String("months", "", "comma-separated months 1-12 (default: all available)")
	bands := flag.String("bands", "", "comma-separated magnitude bands (default: all selectable)")
	out := flag.String("out", "", "output path for the figures JSON (default: stdout)")
	flag.Parse()

	store, stats, err := csvfile.Load(*dataset, slog.New(slog.DiscardHandler))
	if err != nil {
		return err
	}
	log.Printf("loaded %d events (%d undated, %d skipped)", stats.Events, stats.Undated, stats.Skipped)

	sel := store.Facets().DefaultSelection()
	if *years != "" {
		if sel.Years, err = parseInts(*years); err != nil {
			return fmt.Errorf("-years: %w", err)
		}
	}
	if *months != "" {
		if sel.Months, err = parseInts(*months); err != nil {
			return fmt.Errorf("-months: %w", err)
		}
	}
	if *bands != "" {
		sel.Bands = nil
		for _, b := range strings.Split(*bands, ",") {
			sel.Bands = append(sel.Bands, domain.Band(strings.TrimSpace(b)))
		}
	}

	figs := domain.Update(store, sel)
	printStats(figs)

	if *out == "" {
		return writeJSON(os.Stdout, figs)
	}
	f, err := os.Create(*out)
	if err != nil {
		return fmt.Errorf("create %s: %w", *out, err)
	}
	defer f.Close()
	if err := writeJSON(f, figs); err != nil {
		return err
	}
	log.Printf("wrote figures: %s", *out)
	return nil
}

func parseInts(s string) ([]int, error) {
	var out []int
	for _, part := range strings.Split(s, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", part)
		}
		out = append(out, n)
	}
	return out, nil
}

func writeJSON(f *os.File, v any) error {
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printStats logs per-band and per-year totals of the rendered figures.
func printStats(figs domain.Figures) {
	if figs.IsEmpty() {
		log.Printf("selection has an empty axis, figures are blank")
		return
	}

	total := 0
	for _, l := range figs.Map.Layers {
		log.Printf("  %-5s %-7s %5d points", l.Band, l.Color, len(l.Points))
		total += len(l.Points)
	}

	peak := slices.MaxFunc(append([]domain.YearCount{{}}, figs.Yearly.Bars...), func(a, b domain.YearCount) int {
		return a.Count - b.Count
	})
	log.Printf("total: %d events across %d years", total, len(figs.Yearly.Bars))
	if peak.Count > 0 {
		log.Printf("busiest year: %d (%d events)", peak.Year, peak.Count)
	}
}
