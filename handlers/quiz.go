package handlers

import (
	"net/http"

	"github.com/snowcodeer/perplexitree/transform"
)

// POST /api/quiz
func (h *Handler) CreateQuiz(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Flashcards []transform.QA `json:"flashcards" validate:"required,min=1,max=200,dive"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, "CreateQuiz", err)
		return
	}

	questions, err := h.Transform.Quiz(r.Context(), req.Flashcards)
	if err != nil {
		h.writeError(w, "CreateQuiz", upstream(err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"questions": questions})
}
