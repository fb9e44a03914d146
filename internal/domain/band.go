package domain

// Band is a magnitude category label.
type Band string

const (
	BandBelow5 Band = "<5"
	Band5To6   Band = "5-6"
	Band6To7   Band = "6-7"
	Band7To8   Band = "7-8"
	BandAbove8 Band = ">8"
)

// FallbackColor is used for any band without a configured color.
const FallbackColor = "gray"

// bandRule assigns a band to magnitudes at or above min.
type bandRule struct {
	min  float64
	band Band
}

// bandRules is evaluated top to bottom and the first match wins, so the
// highest threshold takes priority at an exact boundary (7.0 is "7-8").
var bandRules = []bandRule{
	{min: 8, band: BandAbove8},
	{min: 7, band: Band7To8},
	{min: 6, band: Band6To7},
	{min: 5, band: Band5To6},
}

// selectableBands is the fixed facet order offered to the selection UI.
// BandBelow5 is assigned to events but never offered.
var selectableBands = []Band{Band5To6, Band6To7, Band7To8, BandAbove8}

var bandColors = map[Band]string{
	Band5To6:   "blue",
	Band6To7:   "orange",
	Band7To8:   "purple",
	BandAbove8: "red",
	BandBelow5: "gray",
}

// Classify maps a magnitude to its band. It is total: negative, extreme and
// NaN magnitudes fall through every rule to BandBelow5.
func Classify(magnitude float64) Band {
	for _, r := range bandRules {
		if magnitude >= r.min {
			return r.band
		}
	}
	return BandBelow5
}
