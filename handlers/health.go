package handlers

import "net/http"

// GET /healthz
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	state := "up"
	if !h.Store.Ready() {
		state = "down"
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "store": state})
}
