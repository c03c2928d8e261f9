package transform

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/snowcodeer/perplexitree/logger"
	"github.com/snowcodeer/perplexitree/models"
)

type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// Client calls an OpenAI-compatible chat completions endpoint with
// json_schema structured output.
type Client struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
	model      string
	log        *logger.Logger

	// shuffle orders quiz options; nil means random.
	shuffle func([]string)
}

func NewClient(cfg Config, baseLog *logger.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: missing API key", ErrNotConfigured)
	}
	if baseLog == nil {
		return nil, errors.New("logger required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.perplexity.ai"
	}
	if cfg.Model == "" {
		cfg.Model = "sonar-pro"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		apiKey:     cfg.APIKey,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		model:      cfg.Model,
		log:        baseLog.With("component", "transform"),
	}, nil
}

type upstreamError struct {
	StatusCode int
	Body       string
}

func (e *upstreamError) Error() string {
	return fmt.Sprintf("transform http %d: %s", e.StatusCode, e.Body)
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string         `json:"model"`
	Messages       []chatMessage  `json:"messages"`
	ResponseFormat map[string]any `json:"response_format,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// complete sends one prompt and returns the raw text of the first choice.
// Errors are transport or HTTP failures only; the text is not validated.
func (c *Client) complete(ctx context.Context, prompt string, schema map[string]any) (string, error) {
	body := chatRequest{
		Model:    c.model,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
		ResponseFormat: map[string]any{
			"type":        "json_schema",
			"json_schema": map[string]any{"schema": schema},
		},
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("transform request: %w", err)
	}
	raw, readErr := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if readErr != nil {
		return "", fmt.Errorf("transform read: %w", readErr)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &upstreamError{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	var out chatResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("transform decode error: %w", err)
	}
	if len(out.Choices) == 0 {
		return "", errors.New("transform returned no choices")
	}

	c.log.Debug("transform completed", "model", c.model, "duration", time.Since(start).String())
	return stripFences(out.Choices[0].Message.Content), nil
}

func (c *Client) Discover(ctx context.Context, query string, count int, exclude []string) ([]models.ContentItemState, error) {
	prompt := fmt.Sprintf("What are the primary %d areas in %s? Please provide exactly %d distinct areas, "+
		"each with a brief description and a relevant search query for further research.", count, query, count)
	if len(exclude) > 0 {
		prompt += " Do not include any of these: " + strings.Join(exclude, "; ") + "."
	}

	text, err := c.complete(ctx, prompt, areasSchema(count))
	if err != nil {
		return nil, err
	}

	items, err := ParseAreas(query, text, count, exclude)
	if err != nil {
		c.log.Warn("Discover: using placeholders", "query", query, "error", err)
		return Placeholders(query, count), nil
	}
	return items, nil
}

func (c *Client) Flashcards(ctx context.Context, title, body string, n int) ([]models.StudyCardState, error) {
	prompt := fmt.Sprintf("Create exactly %d flashcards for studying the topic %q from the text below. "+
		"Each flashcard has a question on the front, a concise answer on the back and a difficulty "+
		"of easy, medium or hard.\n\n%s", n, title, body)

	text, err := c.complete(ctx, prompt, flashcardsSchema(n))
	if err != nil {
		return nil, err
	}
	return ParseCards(text, n)
}

func (c *Client) Quiz(ctx context.Context, cards []QA) ([]QuizItem, error) {
	var sb strings.Builder
	for i, qa := range cards {
		fmt.Fprintf(&sb, "%d. Q: %s\n   A: %s\n", i+1, qa.Front, qa.Back)
	}
	prompt := fmt.Sprintf("Using these flashcards, write exactly %d multiple-choice questions. "+
		"Each has one correct answer and %d plausible incorrect answers.\n\n%s", QuizSize, OptionCount-1, sb.String())

	text, err := c.complete(ctx, prompt, quizSchema())
	if err != nil {
		return nil, err
	}
	return ParseQuiz(text, c.shuffle)
}

func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

func areasSchema(count int) map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"areas": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"name":         map[string]any{"type": "string"},
						"description":  map[string]any{"type": "string"},
						"search_query": map[string]any{"type": "string"},
					},
					"required": []string{"name", "description", "search_query"},
				},
				"minItems": count,
				"maxItems": count,
			},
		},
		"required": []string{"areas"},
	}
}

func flashcardsSchema(n int) map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"flashcards": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"front": map[string]any{"type": "string"},
						"back":  map[string]any{"type": "string"},
						"difficulty": map[string]any{
							"type": "string",
							"enum": []string{models.DifficultyEasy, models.DifficultyMedium, models.DifficultyHard},
						},
					},
					"required": []string{"front", "back", "difficulty"},
				},
				"minItems": n,
				"maxItems": n,
			},
		},
		"required": []string{"flashcards"},
	}
}

func quizSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"question":       map[string]any{"type": "string"},
						"correct_answer": map[string]any{"type": "string"},
						"incorrect_answers": map[string]any{
							"type":     "array",
							"items":    map[string]any{"type": "string"},
							"minItems": OptionCount - 1,
							"maxItems": OptionCount - 1,
						},
					},
					"required": []string{"question", "correct_answer", "incorrect_answers"},
				},
				"minItems": QuizSize,
				"maxItems": QuizSize,
			},
		},
		"required": []string{"questions"},
	}
}
