package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// SelectionRequest is the payload of a selection-change message.
type SelectionRequest struct {
	RequestID string    `json:"request_id"`
	Selection Selection `json:"selection"`
}

// FiguresResponse is the payload published for each selection request.
type FiguresResponse struct {
	RequestID  string    `json:"request_id"`
	Selection  Selection `json:"selection"`
	Figures    Figures   `json:"figures"`
	ComputedAt time.Time `json:"computed_at"`
}

// ParseSelectionMessage decodes a RawMessage into a SelectionRequest. When the
// payload carries no request ID the message key is used.
func ParseSelectionMessage(raw RawMessage) (SelectionRequest, error) {
	var req SelectionRequest
	if err := json.Unmarshal(raw.Value, &req); err != nil {
		return SelectionRequest{}, fmt.Errorf("parse selection message: %w", err)
	}
	if req.RequestID == "" {
		req.RequestID = string(raw.Key)
	}
	return req, nil
}

// SerializeFigures encodes a response into an OutputMessage keyed by request ID.
func SerializeFigures(resp FiguresResponse) (OutputMessage, error) {
	data, err := json.Marshal(resp)
	if err != nil {
		return OutputMessage{}, fmt.Errorf("serialize figures: %w", err)
	}
	return OutputMessage{
		Key:   []byte(resp.RequestID),
		Value: data,
		Headers: map[string]string{
			"empty":       strconv.FormatBool(resp.Figures.IsEmpty()),
			"computed_at": resp.ComputedAt.Format(time.RFC3339),
		},
	}, nil
}
