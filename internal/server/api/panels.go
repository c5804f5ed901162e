// Package api provides HTTP API handlers for the hasta feed daemon.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/ayusman/hasta/internal/feed"
	"github.com/ayusman/hasta/internal/store"
)

// PanelsHandler handles HTTP requests for feed panel resources.
type PanelsHandler struct {
	store        *store.Store
	onDeckChange func()
}

// NewPanelsHandler creates a new PanelsHandler. onDeckChange is invoked
// after every successful mutation; may be nil.
func NewPanelsHandler(s *store.Store, onDeckChange func()) *PanelsHandler {
	return &PanelsHandler{store: s, onDeckChange: onDeckChange}
}

// ServeHTTP routes requests to the appropriate method handler.
func (h *PanelsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Expected paths: /api/panels, /api/panels/reorder, /api/panels/{id}
	path := strings.TrimPrefix(r.URL.Path, "/api/panels")
	path = strings.TrimPrefix(path, "/")

	if path == "" {
		switch r.Method {
		case http.MethodGet:
			h.list(w, r)
		case http.MethodPost:
			h.create(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	if path == "reorder" {
		if r.Method != http.MethodPut {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.reorder(w, r)
		return
	}

	id := path
	switch r.Method {
	case http.MethodGet:
		h.get(w, r, id)
	case http.MethodPut:
		h.update(w, r, id)
	case http.MethodDelete:
		h.delete(w, r, id)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// Request and response types

type panelRequest struct {
	Kind     string `json:"kind"`
	Color    string `json:"color"`
	MediaURL string `json:"media_url"`
}

type reorderRequest struct {
	IDs []string `json:"ids"`
}

type listPanelsResponse struct {
	Panels []feed.Panel `json:"panels"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// validatePanel checks kind-specific required fields.
func validatePanel(kind feed.PanelKind, color, mediaURL string) string {
	switch kind {
	case feed.KindColor:
		if color == "" {
			return "Color is required for color panels"
		}
	case feed.KindVideo:
		if mediaURL == "" {
			return "Media URL is required for video panels"
		}
	default:
		return "Invalid panel kind"
	}
	return ""
}

// notifyDeckChange invokes the deck-change callback if set.
func (h *PanelsHandler) notifyDeckChange() {
	if h.onDeckChange != nil {
		h.onDeckChange()
	}
}

// list handles GET /api/panels and returns the deck in feed order.
func (h *PanelsHandler) list(w http.ResponseWriter, r *http.Request) {
	panels, err := h.store.Panels().List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list panels")
		return
	}

	if panels == nil {
		panels = []feed.Panel{}
	}
	writeJSON(w, http.StatusOK, listPanelsResponse{Panels: panels})
}

// get handles GET /api/panels/{id}.
func (h *PanelsHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	panel, err := h.store.Panels().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Panel not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get panel")
		return
	}

	writeJSON(w, http.StatusOK, panel)
}

// create handles POST /api/panels and appends a panel to the deck.
func (h *PanelsHandler) create(w http.ResponseWriter, r *http.Request) {
	var req panelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	kind := feed.PanelKind(req.Kind)
	if kind == "" {
		kind = feed.KindColor
	}
	if msg := validatePanel(kind, req.Color, req.MediaURL); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	panel := &feed.Panel{
		Kind:     kind,
		Color:    req.Color,
		MediaURL: req.MediaURL,
	}

	if err := h.store.Panels().Create(panel); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create panel")
		return
	}

	h.notifyDeckChange()
	writeJSON(w, http.StatusCreated, panel)
}

// update handles PUT /api/panels/{id}.
func (h *PanelsHandler) update(w http.ResponseWriter, r *http.Request, id string) {
	panel, err := h.store.Panels().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Panel not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get panel")
		return
	}

	var req panelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Kind != "" {
		panel.Kind = feed.PanelKind(req.Kind)
	}
	if req.Color != "" {
		panel.Color = req.Color
	}
	if req.MediaURL != "" {
		panel.MediaURL = req.MediaURL
	}

	if msg := validatePanel(panel.Kind, panel.Color, panel.MediaURL); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	if err := h.store.Panels().Update(panel); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to update panel")
		return
	}

	h.notifyDeckChange()
	writeJSON(w, http.StatusOK, panel)
}

// delete handles DELETE /api/panels/{id}.
func (h *PanelsHandler) delete(w http.ResponseWriter, r *http.Request, id string) {
	err := h.store.Panels().Delete(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Panel not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete panel")
		return
	}

	h.notifyDeckChange()
	w.WriteHeader(http.StatusNoContent)
}

// reorder handles PUT /api/panels/reorder with the full ID list in the
// desired order.
func (h *PanelsHandler) reorder(w http.ResponseWriter, r *http.Request) {
	var req reorderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if len(req.IDs) == 0 {
		writeError(w, http.StatusBadRequest, "IDs are required")
		return
	}

	if err := h.store.Panels().Reorder(req.IDs); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Unknown panel ID")
			return
		}
		writeError(w, http.StatusBadRequest, "Failed to reorder panels")
		return
	}

	h.notifyDeckChange()
	w.WriteHeader(http.StatusNoContent)
}
