package httpadapter

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/couchcryptid/quake-dashboard/internal/domain"
)

const maxSelectionBytes = 1 << 20

// facetsResponse carries everything a client needs to render the controls.
type facetsResponse struct {
	Title            string                 `json:"title"`
	Years            []int                  `json:"years"`
	Months           []int                  `json:"months"`
	Bands            []domain.Band          `json:"bands"`
	BandColors       map[domain.Band]string `json:"band_colors"`
	DefaultSelection domain.Selection       `json:"default_selection"`
}

func (s *Server) handleFacets(w http.ResponseWriter, _ *http.Request) {
	facets := s.figures.Facets()
	writeJSON(w, http.StatusOK, facetsResponse{
		Title:            domain.DashboardTitle,
		Years:            facets.AvailableYears(),
		Months:           facets.AvailableMonths(),
		Bands:            facets.SelectableBands(),
		BandColors:       facets.BandColors(),
		DefaultSelection: s.figures.DefaultSelection(),
	})
}

// handleFiguresBody computes figures for a JSON-encoded selection.
func (s *Server) handleFiguresBody(w http.ResponseWriter, r *http.Request) {
	var sel domain.Selection
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxSelectionBytes))
	if err := dec.Decode(&sel); err != nil {
		s.badRequest(w, fmt.Errorf("decode selection: %w", err))
		return
	}
	writeJSON(w, http.StatusOK, s.figures.Update(sel))
}

// handleFiguresQuery computes figures for a selection given as repeated or
// comma-separated year, month, and band parameters. With no parameters the
// default selection is used; otherwise a missing axis selects nothing.
func (s *Server) handleFiguresQuery(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if len(q) == 0 {
		writeJSON(w, http.StatusOK, s.figures.Update(s.figures.DefaultSelection()))
		return
	}

	sel, err := selectionFromQuery(q)
	if err != nil {
		s.badRequest(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.figures.Update(sel))
}

func selectionFromQuery(q url.Values) (domain.Selection, error) {
	years, err := intValues(q, "year")
	if err != nil {
		return domain.Selection{}, err
	}
	months, err := intValues(q, "month")
	if err != nil {
		return domain.Selection{}, err
	}

	var bands []domain.Band
	for _, v := range splitValues(q["band"]) {
		bands = append(bands, domain.Band(v))
	}
	return domain.Selection{Years: years, Months: months, Bands: bands}, nil
}

func intValues(q url.Values, key string) ([]int, error) {
	var out []int
	for _, v := range splitValues(q[key]) {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid %s %q", key, v)
		}
		out = append(out, n)
	}
	return out, nil
}

func splitValues(raw []string) []string {
	var out []string
	for _, v := range raw {
		for part := range strings.SplitSeq(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func (s *Server) badRequest(w http.ResponseWriter, err error) {
	status := http.StatusBadRequest
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		status = http.StatusRequestEntityTooLarge
	}
	s.logger.Debug("rejected figures request", "error", err, "status", status)
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// writeJSON encodes v before committing the status so an unencodable value
// becomes a 500 instead of an empty success.
func writeJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		buf.Reset()
		status = http.StatusInternalServerError
		json.NewEncoder(&buf).Encode(map[string]string{"error": "encode response: " + err.Error()}) //nolint:errcheck // string map always encodes
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(buf.Bytes()) //nolint:errcheck // client may have gone away
}
