// Package dashboard serves figure updates for selections against one loaded
// dataset snapshot.
package dashboard

import (
	"context"
	"errors"
	"log/slog"

	"github.com/couchcryptid/quake-dashboard/internal/domain"
	"github.com/couchcryptid/quake-dashboard/internal/observability"
	"github.com/jonboulle/clockwork"
)

// Dashboard recomputes both figures whenever a selection changes. It is safe
// for concurrent use: the store is immutable and the cache is locked.
type Dashboard struct {
	store   *domain.Store
	cache   *figureCache
	logger  *slog.Logger
	metrics *observability.Metrics
	clock   clockwork.Clock
}

// New creates a Dashboard over store. A cacheSize of zero or less disables
// the figure cache. A nil clock uses real time.
func New(store *domain.Store, cacheSize int, logger *slog.Logger, metrics *observability.Metrics, clock clockwork.Clock) *Dashboard {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	d := &Dashboard{
		store:   store,
		logger:  logger,
		metrics: metrics,
		clock:   clock,
	}
	if cacheSize > 0 {
		d.cache = newFigureCache(cacheSize)
	}
	return d
}

// Update returns the figures for sel. Identical selections, in any order and
// with duplicates, share one cache entry.
func (d *Dashboard) Update(sel domain.Selection) domain.Figures {
	if sel.IsEmpty() {
		d.metrics.UpdatesTotal.WithLabelValues(observability.OutcomeEmpty).Inc()
		return domain.EmptyFigures()
	}

	key := sel.Key()
	if d.cache != nil {
		if figs, ok := d.cache.get(key); ok {
			d.metrics.UpdatesTotal.WithLabelValues(observability.OutcomeCached).Inc()
			return figs
		}
	}

	start := d.clock.Now()
	subset := d.store.Filter(sel)
	figs := domain.Figures{
		Map:    domain.NewMapFigure(domain.BuildLayers(subset, d.store.Facets())),
		Yearly: domain.NewYearlyFigure(domain.AggregateByYear(subset)),
	}
	elapsed := d.clock.Since(start)

	d.metrics.UpdatesTotal.WithLabelValues(observability.OutcomeComputed).Inc()
	d.metrics.UpdateDuration.Observe(elapsed.Seconds())
	d.metrics.FilteredEvents.Observe(float64(len(subset)))
	d.logger.Debug("figures computed",
		"selection", key,
		"events", len(subset),
		"layers", len(figs.Map.Layers),
		"duration", elapsed,
	)

	if d.cache != nil {
		d.cache.put(key, figs)
		d.metrics.FigureCacheEntries.Set(float64(d.cache.len()))
	}
	return figs
}

// Facets returns the selectable options of the loaded dataset.
func (d *Dashboard) Facets() *domain.FacetIndex {
	return d.store.Facets()
}

// DefaultSelection is the all-options selection shown on first load.
func (d *Dashboard) DefaultSelection() domain.Selection {
	return d.store.Facets().DefaultSelection()
}

// Store returns the dataset snapshot behind the dashboard.
func (d *Dashboard) Store() *domain.Store {
	return d.store
}

// CheckReadiness returns nil once a dataset snapshot is attached.
func (d *Dashboard) CheckReadiness(_ context.Context) error {
	if d.store == nil {
		return errors.New("dataset not loaded")
	}
	return nil
}
