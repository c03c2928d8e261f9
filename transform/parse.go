package transform

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"strings"

	"github.com/snowcodeer/perplexitree/models"
)

type area struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	SearchQuery string `json:"search_query"`
}

// ParseAreas decodes a discovery answer into content items. Titles matching
// exclude (case-insensitively) are dropped and at most count items are kept.
func ParseAreas(query, raw string, count int, exclude []string) ([]models.ContentItemState, error) {
	var payload struct {
		Areas []area `json:"areas"`
	}
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedOutput, err)
	}
	if len(payload.Areas) == 0 {
		return nil, fmt.Errorf("%w: no areas", ErrMalformedOutput)
	}

	skip := make(map[string]bool, len(exclude))
	for _, e := range exclude {
		skip[normalize(e)] = true
	}

	out := make([]models.ContentItemState, 0, count)
	for _, a := range payload.Areas {
		if a.Name == "" {
			return nil, fmt.Errorf("%w: area without a name", ErrMalformedOutput)
		}
		if skip[normalize(a.Name)] {
			continue
		}
		searchQuery := a.SearchQuery
		if searchQuery == "" {
			searchQuery = query
		}
		out = append(out, models.ContentItemState{
			Title:       a.Name,
			URL:         "https://example.com/" + queryPath(query) + "-" + slug(a.Name),
			Snippet:     a.Description,
			LLMContent:  fmt.Sprintf("**%s**\n\n%s", a.Name, a.Description),
			SearchQuery: searchQuery,
		})
		if len(out) == count {
			break
		}
	}
	return out, nil
}

// Placeholders is the deterministic stand-in result set used when discovery
// output cannot be parsed.
func Placeholders(query string, count int) []models.ContentItemState {
	out := make([]models.ContentItemState, 0, count)
	for i := 1; i <= count; i++ {
		title := fmt.Sprintf("%s - Area %d", query, i)
		snippet := fmt.Sprintf("Primary area %d in %s", i, query)
		out = append(out, models.ContentItemState{
			Title:       title,
			URL:         fmt.Sprintf("https://example.com/%s-area-%d", queryPath(query), i),
			Snippet:     snippet,
			LLMContent:  fmt.Sprintf("**%s**\n\n%s", title, snippet),
			SearchQuery: query,
		})
	}
	return out
}

// ParseCards decodes exactly n flashcards. Anything else is malformed.
func ParseCards(raw string, n int) ([]models.StudyCardState, error) {
	var payload struct {
		Flashcards []struct {
			Front      string `json:"front"`
			Back       string `json:"back"`
			Difficulty string `json:"difficulty"`
		} `json:"flashcards"`
	}
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedOutput, err)
	}
	if len(payload.Flashcards) != n {
		return nil, fmt.Errorf("%w: got %d flashcards, want %d", ErrMalformedOutput, len(payload.Flashcards), n)
	}

	out := make([]models.StudyCardState, 0, n)
	for i, c := range payload.Flashcards {
		difficulty := strings.ToLower(strings.TrimSpace(c.Difficulty))
		if strings.TrimSpace(c.Front) == "" || strings.TrimSpace(c.Back) == "" {
			return nil, fmt.Errorf("%w: flashcard %d is empty", ErrMalformedOutput, i)
		}
		if !models.ValidDifficulty(difficulty) {
			return nil, fmt.Errorf("%w: flashcard %d has difficulty %q", ErrMalformedOutput, i, c.Difficulty)
		}
		out = append(out, models.StudyCardState{
			Front:      c.Front,
			Back:       c.Back,
			Difficulty: difficulty,
		})
	}
	return out, nil
}

// ParseQuiz decodes exactly QuizSize questions and shuffles each question's
// options with shuffle. A nil shuffle uses math/rand.
func ParseQuiz(raw string, shuffle func([]string)) ([]QuizItem, error) {
	if shuffle == nil {
		shuffle = randomShuffle
	}

	var payload struct {
		Questions []struct {
			Question         string   `json:"question"`
			CorrectAnswer    string   `json:"correct_answer"`
			IncorrectAnswers []string `json:"incorrect_answers"`
		} `json:"questions"`
	}
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedOutput, err)
	}
	if len(payload.Questions) != QuizSize {
		return nil, fmt.Errorf("%w: got %d questions, want %d", ErrMalformedOutput, len(payload.Questions), QuizSize)
	}

	out := make([]QuizItem, 0, QuizSize)
	for i, q := range payload.Questions {
		if q.Question == "" || q.CorrectAnswer == "" {
			return nil, fmt.Errorf("%w: question %d is incomplete", ErrMalformedOutput, i)
		}
		if len(q.IncorrectAnswers) != OptionCount-1 {
			return nil, fmt.Errorf("%w: question %d has %d decoys", ErrMalformedOutput, i, len(q.IncorrectAnswers))
		}
		options := append([]string{q.CorrectAnswer}, q.IncorrectAnswers...)
		shuffle(options)
		out = append(out, QuizItem{
			Question:      q.Question,
			CorrectAnswer: q.CorrectAnswer,
			Options:       options,
		})
	}
	return out, nil
}

func randomShuffle(s []string) {
	rand.Shuffle(len(s), func(i, j int) { s[i], s[j] = s[j], s[i] })
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func queryPath(q string) string {
	return strings.ReplaceAll(q, " ", "-")
}

func slug(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer("(", "", ")", "").Replace(s)
	return strings.ReplaceAll(s, " ", "-")
}
