package handlers

import (
	"net/http"

	"github.com/snowcodeer/perplexitree/models"
	"github.com/snowcodeer/perplexitree/transform"
)

type searchResponse struct {
	Query   string                    `json:"query"`
	Results []models.ContentItemState `json:"results"`
}

// POST /api/search
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Query string `json:"query" validate:"required,max=500"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, "Search", err)
		return
	}

	results, err := h.Transform.Discover(r.Context(), req.Query, transform.AreaCount, nil)
	if err != nil {
		h.writeError(w, "Search", upstream(err))
		return
	}
	writeJSON(w, http.StatusOK, searchResponse{Query: req.Query, Results: results})
}

// POST /api/web-search
func (h *Handler) WebSearch(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Query           string   `json:"query" validate:"required,max=500"`
		Count           int      `json:"count" validate:"min=0,max=20"`
		NegativePrompts []string `json:"negative_prompts" validate:"max=100"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, "WebSearch", err)
		return
	}
	if req.Count == 0 {
		req.Count = transform.AreaCount
	}

	results, err := h.Transform.Discover(r.Context(), req.Query, req.Count, req.NegativePrompts)
	if err != nil {
		h.writeError(w, "WebSearch", upstream(err))
		return
	}
	h.Log.Debug("WebSearch: results", "query", req.Query, "count", len(results), "excluded", len(req.NegativePrompts))
	writeJSON(w, http.StatusOK, searchResponse{Query: req.Query, Results: results})
}
