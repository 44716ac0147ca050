package scoring

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/NeuralTrust/SafeChat/pkg/infra/httpx"
)

const (
	DefaultModel            = "gpt-4o-mini"
	openAIResponsesEndpoint = "https://api.openai.com/v1/responses"
)

var (
	ErrMissingAPIKey   = errors.New("openai api key is required")
	ErrFailedScoreCall = errors.New("risk scoring call failed")

	selfHarmResponseSchema = map[string]any{
		"type": "object",
		"properties": map[string]any{
			"self_harm": map[string]any{"type": "number"},
		},
		"required":             []string{"self_harm"},
		"additionalProperties": false,
	}
)

type OpenAIScorer struct {
	httpClient httpx.Client
	apiKey     string
	model      string
	endpoint   string
}

// NewOpenAIScorer rates self-harm intent with a structured-output call to the Responses API.
func NewOpenAIScorer(httpClient httpx.Client, apiKey, model string) (*OpenAIScorer, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	if model == "" {
		model = DefaultModel
	}
	return &OpenAIScorer{
		httpClient: httpClient,
		apiKey:     apiKey,
		model:      model,
		endpoint:   openAIResponsesEndpoint,
	}, nil
}

func (s *OpenAIScorer) SetEndpoint(endpoint string) {
	s.endpoint = endpoint
}

type textFormat struct {
	Type   string         `json:"type"`
	Name   string         `json:"name"`
	Schema map[string]any `json:"schema"`
}

type text struct {
	Format textFormat `json:"format"`
}

type responsesRequest struct {
	Model        string  `json:"model"`
	Input        string  `json:"input"`
	Instructions string  `json:"instructions"`
	Temperature  float64 `json:"temperature"`
	Text         text    `json:"text"`
}

type responsesResponse struct {
	OutputText string `json:"output_text"`
	Output     []struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	} `json:"output"`
}

type selfHarmScore struct {
	SelfHarm float64 `json:"self_harm"`
}

func (s *OpenAIScorer) Score(ctx context.Context, input string) (float64, error) {
	if strings.TrimSpace(input) == "" {
		return 0, nil
	}

	reqBody, err := json.Marshal(responsesRequest{
		Model:        s.model,
		Input:        input,
		Instructions: selfHarmSystemPrompt,
		Text: text{Format: textFormat{
			Type:   "json_schema",
			Name:   "self_harm_score",
			Schema: selfHarmResponseSchema,
		}},
	})
	if err != nil {
		return 0, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(reqBody))
	if err != nil {
		return 0, fmt.Errorf("failed to create HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return 0, fmt.Errorf("%w: status %d: %s", ErrFailedScoreCall, resp.StatusCode, string(body))
	}

	var parsed responsesResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return 0, fmt.Errorf("failed to parse response: %w", err)
	}
	out := outputText(parsed)
	if out == "" {
		return 0, fmt.Errorf("%w: response contained no text output", ErrFailedScoreCall)
	}

	var score selfHarmScore
	if err := json.Unmarshal([]byte(out), &score); err != nil {
		return 0, fmt.Errorf("failed to parse score: %w", err)
	}
	return clamp(score.SelfHarm), nil
}

func outputText(r responsesResponse) string {
	if t := strings.TrimSpace(r.OutputText); t != "" {
		return t
	}
	for _, out := range r.Output {
		for _, c := range out.Content {
			if c.Type == "output_text" && strings.TrimSpace(c.Text) != "" {
				return strings.TrimSpace(c.Text)
			}
		}
	}
	return ""
}

func clamp(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}

const selfHarmSystemPrompt = `You rate how likely a message from a user of a mental-health support app expresses intent to harm themselves.

You must produce only a JSON object that exactly matches this schema:
{"self_harm": <number>}
No text, no commentary, no markdown.

Scoring rules:
- Output a number in [0.00, 1.00] with two decimals.
- 0.00-0.29: no self-harm signal.
- 0.30-0.59: hopelessness or passive ideation.
- 0.60-0.89: active ideation without a plan.
- 0.90-1.00: a plan, means or a stated time.

Prefer false positives over false negatives.`
