package handlers

import (
	"net/http"

	"github.com/snowcodeer/perplexitree/logger"
	"github.com/snowcodeer/perplexitree/store"
	"github.com/snowcodeer/perplexitree/transform"
)

type Handler struct {
	Store     *store.Store
	Transform transform.Transformer
	Log       *logger.Logger
}

func New(s *store.Store, t transform.Transformer, baseLog *logger.Logger) *Handler {
	return &Handler{Store: s, Transform: t, Log: baseLog.With("component", "handlers")}
}

// Routes registers every endpoint. guard wraps the routes that write to the
// store.
func (h *Handler) Routes(guard func(http.HandlerFunc) http.HandlerFunc) *http.ServeMux {
	if guard == nil {
		guard = func(next http.HandlerFunc) http.HandlerFunc { return next }
	}
	mux := http.NewServeMux()

	// Sessions
	mux.HandleFunc("POST /api/sessions", guard(h.SaveSession))
	mux.HandleFunc("GET /api/sessions", h.GetSessions)
	mux.HandleFunc("GET /api/sessions/{sessionID}", h.GetSessionByID)
	mux.HandleFunc("DELETE /api/sessions/{sessionID}", guard(h.DeleteSessionByID))

	// Discovery
	mux.HandleFunc("POST /api/search", h.Search)
	mux.HandleFunc("POST /api/web-search", h.WebSearch)

	// Flashcards
	mux.HandleFunc("POST /api/flashcards", guard(h.CreateFlashcards))
	mux.HandleFunc("POST /api/flashcards/{cardID}/review", guard(h.ReviewFlashcard))
	mux.HandleFunc("POST /api/quiz", h.CreateQuiz)

	mux.HandleFunc("GET /healthz", h.Health)
	return mux
}
