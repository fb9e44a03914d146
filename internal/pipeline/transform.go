package pipeline

import (
	"context"
	"log/slog"

	"github.com/couchcryptid/quake-dashboard/internal/domain"
	"github.com/jonboulle/clockwork"
)

// FigureService computes figures for a selection.
type FigureService interface {
	Update(sel domain.Selection) domain.Figures
}

// FigureTransformer implements Transformer by decoding the selection,
// computing its figures, and encoding the response.
type FigureTransformer struct {
	figures FigureService
	clock   clockwork.Clock
	logger  *slog.Logger
}

// NewTransformer creates a FigureTransformer. A nil clock uses real time.
func NewTransformer(figures FigureService, clock clockwork.Clock, logger *slog.Logger) *FigureTransformer {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &FigureTransformer{
		figures: figures,
		clock:   clock,
		logger:  logger,
	}
}

func (t *FigureTransformer) Transform(_ context.Context, raw domain.RawMessage) (domain.OutputMessage, error) {
	req, err := domain.ParseSelectionMessage(raw)
	if err != nil {
		return domain.OutputMessage{}, err
	}

	figs := t.figures.Update(req.Selection)
	t.logger.Debug("selection answered",
		"request_id", req.RequestID,
		"selection", req.Selection.Key(),
		"empty", figs.IsEmpty(),
	)

	return domain.SerializeFigures(domain.FiguresResponse{
		RequestID:  req.RequestID,
		Selection:  req.Selection,
		Figures:    figs,
		ComputedAt: t.clock.Now().UTC(),
	})
}
