// Package transform talks to the language model that discovers reference
// content for a query and turns content into study cards and quizzes.
package transform

import (
	"context"
	"errors"

	"github.com/snowcodeer/perplexitree/models"
)

const (
	// AreaCount is how many areas a plain search asks for.
	AreaCount = 5
	// QuizSize is the fixed number of questions in a quiz.
	QuizSize = 5
	// OptionCount is the number of choices per quiz question.
	OptionCount = 4
)

var (
	// ErrMalformedOutput means the model answered but not in the requested shape.
	ErrMalformedOutput = errors.New("malformed model output")
	// ErrNotConfigured means no model is configured for an operation that
	// has no offline fallback.
	ErrNotConfigured = errors.New("transform not configured")
)

// QA is a question/answer pair fed into quiz generation.
type QA struct {
	Front string `json:"front" validate:"required"`
	Back  string `json:"back" validate:"required"`
}

type QuizItem struct {
	Question      string   `json:"question"`
	CorrectAnswer string   `json:"correctAnswer"`
	Options       []string `json:"options"`
}

type Transformer interface {
	// Discover finds count content items for a query, skipping titles listed
	// in exclude. Malformed model output yields placeholders, not an error.
	Discover(ctx context.Context, query string, count int, exclude []string) ([]models.ContentItemState, error)
	// Flashcards returns exactly n cards built from title and body.
	Flashcards(ctx context.Context, title, body string, n int) ([]models.StudyCardState, error)
	// Quiz returns QuizSize multiple-choice questions drawn from cards.
	Quiz(ctx context.Context, cards []QA) ([]QuizItem, error)
}
