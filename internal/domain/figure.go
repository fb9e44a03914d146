package domain

// Figure titles and labels shown by the dashboard.
const (
	DashboardTitle   = "Global Earthquake Dashboard"
	MapTitle         = "Earthquake Locations Colored by Magnitude Category"
	MapLegendTitle   = "Magnitude Category"
	MapGeoScope      = "world"
	YearlyTitle      = "Earthquake Count by Year"
	YearlyXLabel     = "year"
	YearlyYLabel     = "Earthquake Count"
	YearlyColorKey   = "count"
	YearlyColorScale = "Plasma"
)

// Margin is the figure padding in pixels.
type Margin struct {
	Left   int `json:"l"`
	Right  int `json:"r"`
	Top    int `json:"t"`
	Bottom int `json:"b"`
}

// MapFigure describes the geographic scatter view.
type MapFigure struct {
	Empty       bool    `json:"empty"`
	Title       string  `json:"title,omitempty"`
	LegendTitle string  `json:"legend_title,omitempty"`
	GeoScope    string  `json:"geo_scope,omitempty"`
	Margin      *Margin `json:"margin,omitempty"`
	Layers      []Layer `json:"layers"`
}

// YearlyFigure describes the per-year bar chart. Bars are colored on a
// continuous scale keyed by ColorKey.
type YearlyFigure struct {
	Empty      bool        `json:"empty"`
	Title      string      `json:"title,omitempty"`
	XLabel     string      `json:"x_label,omitempty"`
	YLabel     string      `json:"y_label,omitempty"`
	ColorKey   string      `json:"color_key,omitempty"`
	ColorScale string      `json:"color_scale,omitempty"`
	Bars       []YearCount `json:"bars"`
}

// Figures is the pair of descriptors returned for one selection.
type Figures struct {
	Map    MapFigure    `json:"map"`
	Yearly YearlyFigure `json:"yearly"`
}

// IsEmpty reports whether both descriptors are in their empty form.
func (f Figures) IsEmpty() bool {
	return f.Map.Empty && f.Yearly.Empty
}

// EmptyFigures returns the blank descriptors used when any selection axis
// is empty.
func EmptyFigures() Figures {
	return Figures{
		Map:    MapFigure{Empty: true, Layers: []Layer{}},
		Yearly: YearlyFigure{Empty: true, Bars: []YearCount{}},
	}
}

// Update computes both figures for a selection. It is pure: the store is
// only read and the result shares nothing with earlier calls.
func Update(store *Store, sel Selection) Figures {
	if sel.IsEmpty() {
		return EmptyFigures()
	}

	subset := store.Filter(sel)
	return Figures{
		Map:    NewMapFigure(BuildLayers(subset, store.Facets())),
		Yearly: NewYearlyFigure(AggregateByYear(subset)),
	}
}

// NewMapFigure wraps layers with the map's global metadata.
func NewMapFigure(layers []Layer) MapFigure {
	return MapFigure{
		Title:       MapTitle,
		LegendTitle: MapLegendTitle,
		GeoScope:    MapGeoScope,
		Margin:      &Margin{Top: 30},
		Layers:      layers,
	}
}

// NewYearlyFigure wraps yearly counts with the bar chart's labels.
func NewYearlyFigure(bars []YearCount) YearlyFigure {
	return YearlyFigure{
		Title:      YearlyTitle,
		XLabel:     YearlyXLabel,
		YLabel:     YearlyYLabel,
		ColorKey:   YearlyColorKey,
		ColorScale: YearlyColorScale,
		Bars:       bars,
	}
}
