package handlers

import (
	"fmt"
	"net/http"

	"github.com/snowcodeer/perplexitree/models"
)

const defaultCardCount = 5

// POST /api/flashcards
//
// With segment_id the Segment's content is used and the cards are stored on
// that Segment. With inline content the cards are only returned.
func (h *Handler) CreateFlashcards(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SegmentID *uint                    `json:"segment_id"`
		Content   *models.ContentItemState `json:"content"`
		Count     int                      `json:"count" validate:"min=0,max=20"`
		Anchor    *models.Point            `json:"anchor"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, "CreateFlashcards", err)
		return
	}
	if req.Count == 0 {
		req.Count = defaultCardCount
	}

	ctx := r.Context()
	content := req.Content
	if req.SegmentID != nil {
		found, err := h.Store.SegmentContent(ctx, *req.SegmentID)
		if err != nil {
			h.writeError(w, "CreateFlashcards", err)
			return
		}
		content = &found
	}
	if content == nil {
		h.writeError(w, "CreateFlashcards", fmt.Errorf("%w: segment_id or content is required", errBadRequest))
		return
	}

	cards, err := h.Transform.Flashcards(ctx, content.Title, content.Body(), req.Count)
	if err != nil {
		h.writeError(w, "CreateFlashcards", upstream(err))
		return
	}

	if req.SegmentID == nil {
		for i := range cards {
			cards[i].Anchor = req.Anchor
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"flashcards": cards})
		return
	}

	saved, err := h.Store.AppendCards(ctx, *req.SegmentID, cards)
	if err != nil {
		h.writeError(w, "CreateFlashcards", err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{"flashcards": saved})
}

// POST /api/flashcards/{cardID}/review
func (h *Handler) ReviewFlashcard(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "cardID")
	if err != nil {
		h.writeError(w, "ReviewFlashcard", err)
		return
	}

	card, err := h.Store.ReviewCard(r.Context(), id)
	if err != nil {
		h.writeError(w, "ReviewFlashcard", err)
		return
	}
	writeJSON(w, http.StatusOK, card)
}
