package handlers

import (
	"net/http"

	"github.com/snowcodeer/perplexitree/models"
	"github.com/snowcodeer/perplexitree/utils"
)

// POST /api/sessions
func (h *Handler) SaveSession(w http.ResponseWriter, r *http.Request) {
	var snap models.Snapshot
	if err := decodeJSON(w, r, &snap); err != nil {
		h.writeError(w, "SaveSession", err)
		return
	}

	id, err := h.Store.SaveSession(r.Context(), snap)
	if err != nil {
		h.writeError(w, "SaveSession", err)
		return
	}

	if subject, ok := utils.GetSubject(r); ok {
		h.Log.Info("SaveSession: saved", "session_id", id, "subject", subject)
	}
	writeJSON(w, http.StatusCreated, map[string]uint{"session_id": id})
}

// GET /api/sessions
func (h *Handler) GetSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.Store.ListSessions(r.Context())
	if err != nil {
		h.writeError(w, "GetSessions", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"sessions": sessions})
}

// GET /api/sessions/{sessionID}
func (h *Handler) GetSessionByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "sessionID")
	if err != nil {
		h.writeError(w, "GetSessionByID", err)
		return
	}

	snap, err := h.Store.LoadSession(r.Context(), id)
	if err != nil {
		h.writeError(w, "GetSessionByID", err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// DELETE /api/sessions/{sessionID}
func (h *Handler) DeleteSessionByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "sessionID")
	if err != nil {
		h.writeError(w, "DeleteSessionByID", err)
		return
	}

	if err := h.Store.DeleteSession(r.Context(), id); err != nil {
		h.writeError(w, "DeleteSessionByID", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]uint{"deleted": id})
}
