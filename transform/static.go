package transform

import (
	"context"

	"github.com/snowcodeer/perplexitree/models"
)

// Static serves discovery from placeholders and refuses card and quiz
// generation. Used when no API key is configured.
type Static struct{}

func (Static) Discover(_ context.Context, query string, count int, _ []string) ([]models.ContentItemState, error) {
	return Placeholders(query, count), nil
}

func (Static) Flashcards(context.Context, string, string, int) ([]models.StudyCardState, error) {
	return nil, ErrNotConfigured
}

func (Static) Quiz(context.Context, []QA) ([]QuizItem, error) {
	return nil, ErrNotConfigured
}
