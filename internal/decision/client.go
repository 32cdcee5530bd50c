// Package decision asks a language model for a structured claim decision
// over retrieved document passages. Unparsable model output degrades to a
// fallback decision rather than failing the request; only transport-level
// failures surface as errors.
package decision

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"

	"intellidocs/internal/domain"
)

const (
	DefaultModel   = "gpt-4o-mini"
	DefaultTimeout = 60 * time.Second

	// maxRawResponse bounds how much raw model output a fallback decision
	// carries back to the caller.
	maxRawResponse = 500
)

// Client calls the OpenAI chat completions API in JSON mode.
type Client struct {
	client  openai.Client
	model   string
	timeout time.Duration
}

// Config configures the decision client. The API key is read from the
// environment variable named by APIKeyEnv (OPENAI_API_KEY when empty).
type Config struct {
	BaseURL   string
	APIKeyEnv string
	Model     string
	Timeout   time.Duration
}

// NewClient creates a decision client from the configuration.
func NewClient(cfg Config) (*Client, error) {
	keyEnv := cfg.APIKeyEnv
	if keyEnv == "" {
		keyEnv = "OPENAI_API_KEY"
	}
	key := os.Getenv(keyEnv)
	if key == "" {
		return nil, fmt.Errorf("missing API key in env %s", keyEnv)
	}
	opts := []option.RequestOption{option.WithAPIKey(key)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		client:  openai.NewClient(opts...),
		model:   model,
		timeout: timeout,
	}, nil
}

// Decide sends the query and chunk texts to the model and parses the
// structured result. No retries: a failed call fails the request.
func (c *Client) Decide(ctx context.Context, query string, chunks []string) (domain.Decision, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	params := openai.ChatCompletionNewParams{
		Model: shared.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(buildPrompt(query, chunks)),
		},
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{Type: "json_object"},
		},
	}

	completion, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return domain.Decision{}, fmt.Errorf("%w: %v", domain.ErrLLM, err)
	}
	if len(completion.Choices) == 0 {
		return domain.Decision{}, fmt.Errorf("%w: no completion choices returned", domain.ErrLLM)
	}
	return ParseDecision(query, completion.Choices[0].Message.Content), nil
}

// ParseDecision turns raw model output into a Decision. It tolerates prose
// around the JSON by parsing the outermost brace window, defaults missing
// fields, and clamps confidence to [0,1]. Output with no parsable JSON
// yields a fallback decision carrying the query and the (bounded) raw text.
func ParseDecision(query, raw string) domain.Decision {
	text := strings.TrimSpace(raw)
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return fallbackDecision(query, raw)
	}

	var payload struct {
		Decision      string                 `json:"decision"`
		Justification []domain.Justification `json:"justification"`
		Confidence    *float64               `json:"confidence"`
		Summary       string                 `json:"summary"`
		Reasoning     string                 `json:"reasoning"`
	}
	if err := json.Unmarshal([]byte(text[start:end+1]), &payload); err != nil {
		return fallbackDecision(query, raw)
	}

	d := domain.Decision{
		Decision:      payload.Decision,
		Justification: payload.Justification,
		Summary:       payload.Summary,
		Reasoning:     payload.Reasoning,
		Confidence:    0.5,
	}
	if d.Decision == "" {
		d.Decision = "unknown"
	}
	if payload.Confidence != nil {
		d.Confidence = clamp(*payload.Confidence, 0, 1)
	}
	return d
}

// fallbackDecision is the degrade-not-fail path for unstructured model
// output: the caller still gets a well-formed decision referencing the
// original query, with the raw output truncated to a bounded length.
func fallbackDecision(query, raw string) domain.Decision {
	truncated := truncate(raw, maxRawResponse)
	return domain.Decision{
		Decision:   "processed",
		Confidence: 0.5,
		Justification: []domain.Justification{{
			Clause:    "General Analysis",
			Text:      truncated,
			Relevance: "fallback response to the query",
		}},
		Summary:     fmt.Sprintf("Processed query: %s", query),
		Reasoning:   "fallback used because the model output was not valid JSON",
		RawResponse: truncated,
		Note:        "fallback response due to unstructured model output",
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	// Cut on a rune boundary.
	cut := n
	for cut > 0 && !utf8RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}

func utf8RuneStart(b byte) bool { return b&0xC0 != 0x80 }

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
