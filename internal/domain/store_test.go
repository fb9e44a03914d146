package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild(t *testing.T) {
	fixedTime := time.Date(2024, 4, 26, 12, 30, 45, 0, time.UTC)
	SetClock(clockwork.NewFakeClockAt(fixedTime))
	defer SetClock(nil)

	records := []RawRecord{
		{Date: "2018-01-05", Latitude: "10", Longitude: "20", Magnitude: "5.5"},
		{Date: "not a date", Latitude: "11", Longitude: "21", Magnitude: "8.1"},
		{Date: "2019-06-01", Latitude: "north", Longitude: "22", Magnitude: "6.0"},
		{Date: "2016-11-13", Latitude: "-42.7", Longitude: "173.0", Magnitude: "7.8"},
	}

	store, stats := Build(records)

	require.NotNil(t, store)
	assert.Equal(t, 4, stats.Rows)
	assert.Equal(t, 3, stats.Events)
	assert.Equal(t, 1, stats.Undated)
	assert.Equal(t, 1, stats.Skipped)
	require.Len(t, stats.Errors, 1)
	assert.Contains(t, stats.Errors[0].Error(), "latitude")

	assert.Equal(t, 3, store.Len())
	assert.Equal(t, fixedTime, store.LoadedAt())

	events := store.Events()
	assert.Equal(t, Band5To6, events[0].Band)
	assert.Equal(t, BandAbove8, events[1].Band, "undated rows are still classified")
	assert.False(t, events[1].HasDate())
	assert.Equal(t, Band7To8, events[2].Band)
}

func TestBuild_SkipsNonFiniteRows(t *testing.T) {
	records := []RawRecord{
		{Date: "2020-03-01", Latitude: "NaN", Longitude: "10", Magnitude: "6.5"},
		{Date: "2020-03-02", Latitude: "1", Longitude: "+Inf", Magnitude: "7.1"},
		{Date: "2020-03-03", Latitude: "2", Longitude: "3", Magnitude: "NaN"},
		{Date: "2020-03-04", Latitude: "4", Longitude: "5", Magnitude: "6.5"},
	}

	store, stats := Build(records)

	assert.Equal(t, 4, stats.Rows)
	assert.Equal(t, 1, stats.Events)
	assert.Equal(t, 3, stats.Skipped)
	require.Len(t, stats.Errors, 3)
	for _, err := range stats.Errors {
		assert.ErrorIs(t, err, errNotFinite)
	}

	figs := Update(store, Selection{
		Years:  []int{2020},
		Months: []int{3},
		Bands:  []Band{Band6To7, Band7To8},
	})
	require.Len(t, figs.Map.Layers, 1)
	_, err := json.Marshal(figs)
	require.NoError(t, err, "figures over a loaded store must always encode")
}

func TestStore_EventsIsACopy(t *testing.T) {
	store := NewStore(mixedEvents(t))

	events := store.Events()
	events[0].Band = BandAbove8
	events[0].Year = 1900

	fresh := store.Events()
	assert.Equal(t, Band5To6, fresh[0].Band)
	assert.Equal(t, 2018, fresh[0].Year)
}

func TestNewStore_CopiesInput(t *testing.T) {
	input := mixedEvents(t)
	store := NewStore(input)

	input[0].Year = 1900

	assert.Equal(t, 2018, store.Events()[0].Year)
}

func TestFacetIndex(t *testing.T) {
	store := NewStore(mixedEvents(t))
	facets := store.Facets()

	assert.Equal(t, []int{2019, 2018}, facets.AvailableYears(), "years descending")
	assert.Equal(t, []int{1, 2, 7}, facets.AvailableMonths(), "months ascending")
	assert.Equal(t, []Band{Band5To6, Band6To7, Band7To8, BandAbove8}, facets.SelectableBands())
	assert.NotContains(t, facets.SelectableBands(), BandBelow5)
}

func TestFacetIndex_AccessorsReturnCopies(t *testing.T) {
	facets := NewStore(mixedEvents(t)).Facets()

	years := facets.AvailableYears()
	years[0] = 1
	bands := facets.SelectableBands()
	bands[0] = BandBelow5

	assert.Equal(t, []int{2019, 2018}, facets.AvailableYears())
	assert.Equal(t, Band5To6, facets.SelectableBands()[0])
}

func TestFacetIndex_BandColor(t *testing.T) {
	facets := NewStore(nil).Facets()

	tests := []struct {
		band     Band
		expected string
	}{
		{Band5To6, "blue"},
		{Band6To7, "orange"},
		{Band7To8, "purple"},
		{BandAbove8, "red"},
		{BandBelow5, "gray"},
		{Band("9+"), FallbackColor},
		{Band(""), FallbackColor},
	}

	for _, tt := range tests {
		t.Run(string(tt.band), func(t *testing.T) {
			assert.Equal(t, tt.expected, facets.BandColor(tt.band))
		})
	}

	assert.Equal(t, map[Band]string{
		Band5To6:   "blue",
		Band6To7:   "orange",
		Band7To8:   "purple",
		BandAbove8: "red",
	}, facets.BandColors())
}

func TestFacetIndex_EmptyStore(t *testing.T) {
	facets := NewStore(nil).Facets()

	assert.Empty(t, facets.AvailableYears())
	assert.Empty(t, facets.AvailableMonths())
	assert.Len(t, facets.SelectableBands(), 4)
}

func TestFacetIndex_DefaultSelection(t *testing.T) {
	facets := NewStore(mixedEvents(t)).Facets()

	sel := facets.DefaultSelection()

	assert.Equal(t, []int{2019, 2018}, sel.Years)
	assert.Equal(t, []int{1, 2, 7}, sel.Months)
	assert.Equal(t, facets.SelectableBands(), sel.Bands)
	assert.False(t, sel.IsEmpty())
}

func TestSetClock(t *testing.T) {
	t.Run("set custom clock", func(t *testing.T) {
		fixedTime := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		SetClock(clockwork.NewFakeClockAt(fixedTime))

		assert.Equal(t, fixedTime, clock.Now())

		SetClock(nil)
	})

	t.Run("reset to real clock", func(t *testing.T) {
		SetClock(clockwork.NewFakeClockAt(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
		SetClock(nil)

		assert.True(t, time.Since(clock.Now()) < time.Second)
	})
}
