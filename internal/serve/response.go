// Package serve provides the HTTP layer for splitview serve: the demo page
// hosting a live split pane, JSON endpoints for layouts and resize events,
// and an SSE stream that pushes refreshes to connected clients.
package serve

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/marcus/splitview/internal/store"
	"github.com/marcus/splitview/pkg/splitpane"
)

// Envelope is the standard response wrapper for all API responses.
// Success: {"ok": true, "data": {...}}
// Error:   {"ok": false, "error": {"code": "...", "message": "...", "details": ...}}
type Envelope struct {
	OK    bool          `json:"ok"`
	Data  interface{}   `json:"data,omitempty"`
	Error *ErrorPayload `json:"error,omitempty"`
}

// ErrorPayload holds structured error information.
type ErrorPayload struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// FieldError describes a single validation failure on a request field.
type FieldError struct {
	Field   string      `json:"field"`
	Value   interface{} `json:"value,omitempty"`
	Message string      `json:"message"`
}

// Standard error codes mapped to HTTP status codes.
const (
	ErrValidation   = "validation_error" // 400
	ErrNotFound     = "not_found"        // 404
	ErrUnauthorized = "unauthorized"     // 401
	ErrInternal     = "internal"         // 500
)

// WriteSuccess writes a JSON success envelope with the given data and status.
func WriteSuccess(w http.ResponseWriter, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(Envelope{OK: true, Data: data}); err != nil {
		slog.Error("write success response", "err", err)
	}
}

// WriteError writes a JSON error envelope.
func WriteError(w http.ResponseWriter, code, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(Envelope{
		OK: false,
		Error: &ErrorPayload{
			Code:    code,
			Message: message,
		},
	}); err != nil {
		slog.Error("write error response", "err", err)
	}
}

// WriteValidation writes a 400 validation_error response with field-level details.
func WriteValidation(w http.ResponseWriter, fields []FieldError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	if err := json.NewEncoder(w).Encode(Envelope{
		OK: false,
		Error: &ErrorPayload{
			Code:    ErrValidation,
			Message: "Validation failed",
			Details: fields,
		},
	}); err != nil {
		slog.Error("write validation response", "err", err)
	}
}

// LayoutDTO is the API representation of a stored layout. Size fields carry
// the declared expressions verbatim; the style fields are the derived CSS
// declarations recomputed on every read.
type LayoutDTO struct {
	ID            string `json:"id"`
	Orientation   string `json:"orientation"`
	FirstSize     string `json:"first_size"`
	FirstMinSize  string `json:"first_min_size"`
	SecondSize    string `json:"second_size"`
	SecondMinSize string `json:"second_min_size"`
	FirstStyle    string `json:"first_style"`
	SecondStyle   string `json:"second_style"`
}

// LayoutToDTO converts a stored layout to its API representation. Stored
// layouts have already been validated, so parse errors cannot occur here;
// a blank expression simply parses to the empty size.
func LayoutToDTO(l *store.Layout) LayoutDTO {
	orientation, _ := splitpane.ParseOrientation(l.Orientation)
	first, _ := splitpane.ParseSize(l.FirstSize)
	firstMin, _ := splitpane.ParseSize(l.FirstMinSize)
	second, _ := splitpane.ParseSize(l.SecondSize)
	secondMin, _ := splitpane.ParseSize(l.SecondMinSize)

	return LayoutDTO{
		ID:            l.ID,
		Orientation:   orientation.String(),
		FirstSize:     l.FirstSize,
		FirstMinSize:  l.FirstMinSize,
		SecondSize:    l.SecondSize,
		SecondMinSize: l.SecondMinSize,
		FirstStyle:    splitpane.ComputeStyle(first, firstMin, orientation),
		SecondStyle:   splitpane.ComputeStyle(second, secondMin, orientation),
	}
}

// LayoutsToDTOs converts a slice of layouts to DTOs. Returns [] rather than
// null for an empty slice.
func LayoutsToDTOs(layouts []store.Layout) []LayoutDTO {
	dtos := make([]LayoutDTO, len(layouts))
	for i := range layouts {
		dtos[i] = LayoutToDTO(&layouts[i])
	}
	return dtos
}

// LayoutUpdateBody is the request body for PUT /v1/layouts/{id}.
type LayoutUpdateBody struct {
	Orientation   string `json:"orientation"`
	FirstSize     string `json:"first_size"`
	FirstMinSize  string `json:"first_min_size"`
	SecondSize    string `json:"second_size"`
	SecondMinSize string `json:"second_min_size"`
}

// ValidateLayoutUpdate checks every size expression and the orientation,
// returning field-level errors. Malformed expressions are rejected here so
// they never silently default.
func ValidateLayoutUpdate(body *LayoutUpdateBody) []FieldError {
	var fields []FieldError

	if _, err := splitpane.ParseOrientation(body.Orientation); err != nil {
		fields = append(fields, FieldError{Field: "orientation", Value: body.Orientation, Message: err.Error()})
	}

	sizes := []struct {
		field string
		expr  string
	}{
		{"first_size", body.FirstSize},
		{"first_min_size", body.FirstMinSize},
		{"second_size", body.SecondSize},
		{"second_min_size", body.SecondMinSize},
	}
	for _, s := range sizes {
		if _, err := splitpane.ParseSize(s.expr); err != nil {
			fields = append(fields, FieldError{Field: s.field, Value: s.expr, Message: err.Error()})
		}
	}

	first, err1 := splitpane.ParseSize(body.FirstSize)
	second, err2 := splitpane.ParseSize(body.SecondSize)
	if err1 == nil && err2 == nil && !first.IsEmpty() && !second.IsEmpty() {
		fields = append(fields, FieldError{
			Field:   "second_size",
			Value:   body.SecondSize,
			Message: splitpane.ErrBothSizesDeclared.Error(),
		})
	}

	return fields
}

// ResizeBody is the request body for POST /v1/layouts/{id}/resize, the wire
// form of a drag bridge's resize event.
type ResizeBody struct {
	Pane   string `json:"pane"`   // "first" or "second"
	Pixels int    `json:"pixels"` // new pane size in pixels
}

// ValidateResize checks a resize event body.
func ValidateResize(body *ResizeBody) []FieldError {
	var fields []FieldError
	if body.Pane != "first" && body.Pane != "second" {
		fields = append(fields, FieldError{Field: "pane", Value: body.Pane, Message: `must be "first" or "second"`})
	}
	if body.Pixels < 0 {
		fields = append(fields, FieldError{Field: "pixels", Value: body.Pixels, Message: "must be non-negative"})
	}
	return fields
}
