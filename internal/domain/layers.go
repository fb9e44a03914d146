package domain

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// MarkerSize is the scatter marker size for every layer.
const MarkerSize = 4

// GeoPoint is a plotted coordinate at full precision.
type GeoPoint struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

// Layer is one renderable scatter series: every point of a single band.
// Tooltips[i] describes Points[i].
type Layer struct {
	Band       Band       `json:"band"`
	Name       string     `json:"name"`
	Color      string     `json:"color"`
	MarkerSize int        `json:"marker_size"`
	Points     []GeoPoint `json:"points"`
	Tooltips   []string   `json:"tooltips"`
}

// BuildLayers partitions a filtered subset by band. Layers are ordered by
// plain string comparison of the band labels, and bands with no events get
// no layer.
func BuildLayers(subset []Event, facets *FacetIndex) []Layer {
	byBand := make(map[Band]*Layer)
	for _, e := range subset {
		l, ok := byBand[e.Band]
		if !ok {
			l = &Layer{
				Band:       e.Band,
				Name:       "Mag " + string(e.Band),
				Color:      facets.BandColor(e.Band),
				MarkerSize: MarkerSize,
			}
			byBand[e.Band] = l
		}
		l.Points = append(l.Points, GeoPoint{Lon: e.Longitude, Lat: e.Latitude})
		l.Tooltips = append(l.Tooltips, Tooltip(e))
	}

	bands := make([]Band, 0, len(byBand))
	for b := range byBand {
		bands = append(bands, b)
	}
	slices.Sort(bands)

	layers := make([]Layer, 0, len(bands))
	for _, b := range bands {
		layers = append(layers, *byBand[b])
	}
	return layers
}

// Tooltip renders the hover text for one event. Coordinates are rounded for
// display only.
func Tooltip(e Event) string {
	date := "unknown"
	if e.HasDate() {
		date = e.Date.Format("2006-01-02")
	}
	return fmt.Sprintf("Magnitude: %s<br>Date: %s<br>Lat: %.2f, Lon: %.2f",
		formatMagnitude(e.Magnitude), date, e.Latitude, e.Longitude)
}

// formatMagnitude prints the shortest exact form, keeping one decimal for
// whole numbers ("6.0", "8.25").
func formatMagnitude(m float64) string {
	s := strconv.FormatFloat(m, 'f', -1, 64)
	if !strings.ContainsAny(s, ".NI") {
		s += ".0"
	}
	return s
}
