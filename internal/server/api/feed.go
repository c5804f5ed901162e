package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/ayusman/hasta/internal/feed"
	"github.com/ayusman/hasta/internal/swipe"
)

// FeedHandler exposes the live feed state and manual navigation.
type FeedHandler struct {
	controller *feed.Controller
}

// NewFeedHandler creates a new FeedHandler driving the given controller.
func NewFeedHandler(c *feed.Controller) *FeedHandler {
	return &FeedHandler{controller: c}
}

type feedStateResponse struct {
	ActiveIndex int `json:"active_index"`
	PanelCount  int `json:"panel_count"`
}

type swipeRequest struct {
	Direction string `json:"direction"`
}

type swipeResponse struct {
	ActiveIndex int  `json:"active_index"`
	Changed     bool `json:"changed"`
}

// ServeHTTP routes /api/feed requests.
func (h *FeedHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/feed")
	path = strings.TrimPrefix(path, "/")

	switch path {
	case "":
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.state(w, r)
	case "swipe":
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.swipe(w, r)
	default:
		http.NotFound(w, r)
	}
}

// state handles GET /api/feed.
func (h *FeedHandler) state(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, feedStateResponse{
		ActiveIndex: h.controller.ActiveIndex(),
		PanelCount:  h.controller.PanelCount(),
	})
}

// swipe handles POST /api/feed/swipe, letting the page offer on-screen
// navigation buttons alongside hand gestures.
func (h *FeedHandler) swipe(w http.ResponseWriter, r *http.Request) {
	var req swipeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	var ev swipe.Event
	switch req.Direction {
	case "next":
		ev = swipe.Next
	case "prev":
		ev = swipe.Prev
	default:
		writeError(w, http.StatusBadRequest, "Direction must be next or prev")
		return
	}

	changed := h.controller.OnSwipe(ev)

	writeJSON(w, http.StatusOK, swipeResponse{
		ActiveIndex: h.controller.ActiveIndex(),
		Changed:     changed,
	})
}
