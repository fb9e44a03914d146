package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func mustEvent(t *testing.T, date, lat, lon, mag string) Event {
	t.Helper()
	e, err := NewEvent(RawRecord{Date: date, Latitude: lat, Longitude: lon, Magnitude: mag})
	require.NoError(t, err)
	return e
}

// scenarioEvents is the three-event dataset used by the end-to-end checks.
func scenarioEvents(t *testing.T) []Event {
	t.Helper()
	return []Event{
		mustEvent(t, "2020-03-11", "38.30", "142.37", "8.2"),
		mustEvent(t, "2020-05-02", "-33.45", "-70.66", "6.5"),
		mustEvent(t, "2019-01-20", "35.68", "139.69", "4.0"),
	}
}

// mixedEvents covers every band, two years, and one undated row.
func mixedEvents(t *testing.T) []Event {
	t.Helper()
	return []Event{
		mustEvent(t, "2018-01-05", "10.00", "20.00", "5.5"),
		mustEvent(t, "2019-02-14", "11.00", "21.00", "6.1"),
		mustEvent(t, "2019-02-20", "12.00", "22.00", "7.0"),
		mustEvent(t, "2018-07-30", "13.00", "23.00", "8.8"),
		mustEvent(t, "2019-07-01", "14.00", "24.00", "4.2"),
		mustEvent(t, "bad-date", "15.00", "25.00", "7.5"),
		mustEvent(t, "2018-02-11", "16.00", "26.00", "5.0"),
		mustEvent(t, "2019-01-09", "17.00", "27.00", "6.9"),
	}
}

func allBandsSelection(years, months []int) Selection {
	return Selection{
		Years:  years,
		Months: months,
		Bands:  []Band{BandBelow5, Band5To6, Band6To7, Band7To8, BandAbove8},
	}
}
