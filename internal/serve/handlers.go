package serve

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/marcus/splitview/internal/store"
	"github.com/marcus/splitview/pkg/splitpane"
)

// handleHealth returns a minimal liveness response.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, map[string]string{"status": "ok"}, http.StatusOK)
}

// handleListLayouts returns all stored layouts.
func (s *Server) handleListLayouts(w http.ResponseWriter, r *http.Request) {
	layouts, err := s.store.ListLayouts()
	if err != nil {
		WriteError(w, ErrInternal, err.Error(), http.StatusInternalServerError)
		return
	}
	WriteSuccess(w, map[string]interface{}{"layouts": LayoutsToDTOs(layouts)}, http.StatusOK)
}

// handleGetLayout returns a single layout with its derived styles.
func (s *Server) handleGetLayout(w http.ResponseWriter, r *http.Request) {
	l, err := s.store.GetLayout(r.PathValue("id"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	WriteSuccess(w, LayoutToDTO(l), http.StatusOK)
}

// handlePutLayout applies a declarative layout update. Malformed size
// expressions and dual-declared sizes are rejected with field errors; a
// valid update replaces any drag-adjusted sizes, since declarative input
// wins once supplied.
func (s *Server) handlePutLayout(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var body LayoutUpdateBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		WriteError(w, ErrValidation, "invalid JSON body", http.StatusBadRequest)
		return
	}

	if fields := ValidateLayoutUpdate(&body); len(fields) > 0 {
		WriteValidation(w, fields)
		return
	}

	l := &store.Layout{
		ID:            id,
		Orientation:   body.Orientation,
		FirstSize:     body.FirstSize,
		FirstMinSize:  body.FirstMinSize,
		SecondSize:    body.SecondSize,
		SecondMinSize: body.SecondMinSize,
	}
	if err := s.store.SaveLayout(l); err != nil {
		WriteError(w, ErrValidation, err.Error(), http.StatusBadRequest)
		return
	}

	s.NotifyChange()
	WriteSuccess(w, LayoutToDTO(l), http.StatusOK)
}

// handleDeleteLayout removes a layout.
func (s *Server) handleDeleteLayout(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.store.DeleteLayout(id); err != nil {
		writeStoreError(w, err)
		return
	}
	s.NotifyChange()
	WriteSuccess(w, map[string]string{"id": id}, http.StatusOK)
}

// handleResize consumes a resize event from the browser drag bridge. The
// event runs through a resize coordinator seeded from the stored layout, so
// the wire path has the same semantics as the in-process one: the dragged
// pane's track becomes drag-adjusted, exactly one notification fires, and
// the notification sink persists the new pixel size.
func (s *Server) handleResize(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var body ResizeBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		WriteError(w, ErrValidation, "invalid JSON body", http.StatusBadRequest)
		return
	}
	if fields := ValidateResize(&body); len(fields) > 0 {
		WriteValidation(w, fields)
		return
	}

	l, err := s.store.GetLayout(id)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	first, _ := splitpane.ParseSize(l.FirstSize)
	second, _ := splitpane.ParseSize(l.SecondSize)
	coord := splitpane.NewCoordinator(first, second)

	pane := splitpane.First
	if body.Pane == "second" {
		pane = splitpane.Second
	}

	// The sink receives the bare pixel count and appends the px unit for
	// storage, preserving the pixel convention of drag-produced sizes. The
	// drag write clears the other pane's size: the divider redistributes
	// space, so the other pane flexes regardless of which pane carried the
	// declared size before.
	var saveErr error
	coord.Notify(pane, func(pixels string) {
		saveErr = s.store.ApplyDragSize(id, pane, pixels+"px")
	})
	coord.ReportResize(pane == splitpane.First, body.Pixels)

	if saveErr != nil {
		writeStoreError(w, saveErr)
		return
	}

	updated, err := s.store.GetLayout(id)
	if err != nil {
		WriteError(w, ErrInternal, err.Error(), http.StatusInternalServerError)
		return
	}

	s.NotifyChange()
	WriteSuccess(w, LayoutToDTO(updated), http.StatusOK)
}

// writeStoreError maps store errors onto the response envelope. A missing
// layout is a 404; anything else from the store is a 500.
func writeStoreError(w http.ResponseWriter, err error) {
	if errors.Is(err, store.ErrNotFound) {
		WriteError(w, ErrNotFound, err.Error(), http.StatusNotFound)
		return
	}
	WriteError(w, ErrInternal, err.Error(), http.StatusInternalServerError)
}
