// Package gemini is the direct-provider fallback used when the edge function
// cannot serve a completion. Responses are prefixed with a [model:<id>] marker
// so the caller can attribute them; the marker never reaches the end user.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/dkovalev/modelmart/pkg/domain"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	defaultModel   = "gemini-pro"

	historyWindow = 5
)

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	TopK            int     `json:"topK"`
	TopP            float64 `json:"topP"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

type client struct {
	apiKey  string
	baseURL string
	model   string
	hc      *http.Client
}

func NewClient(apiKey string) *client {
	return &client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		model:   defaultModel,
		hc:      &http.Client{},
	}
}

// IsConfigured reports whether a key is present; the fallback strategy is
// skipped entirely when it is not.
func (c *client) IsConfigured() bool {
	return c.apiKey != ""
}

// GenerateContent sends one flattened prompt (system text, recent turns, the
// current user message) and returns the marked response text.
func (c *client) GenerateContent(ctx context.Context, systemPrompt string, recentTurns []domain.ChatMessage, userInput string) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("Gemini API key is not configured")
	}

	reqBody := generateRequest{
		Contents: []content{{Parts: []part{{Text: c.buildPrompt(systemPrompt, recentTurns, userInput)}}}},
		GenerationConfig: generationConfig{
			Temperature:     0.7,
			TopK:            40,
			TopP:            0.95,
			MaxOutputTokens: 2048,
		},
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling Gemini API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("Gemini API error (%d): %s", resp.StatusCode, string(bodyBytes))
	}

	var genResp generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		return "", fmt.Errorf("decoding response data: %w", err)
	}

	if len(genResp.Candidates) == 0 || len(genResp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}

	return fmt.Sprintf("[model:%s] %s", c.model, genResp.Candidates[0].Content.Parts[0].Text), nil
}

func (c *client) buildPrompt(systemPrompt string, recentTurns []domain.ChatMessage, userInput string) string {
	turns := recentTurns
	if len(turns) > historyWindow {
		turns = turns[len(turns)-historyWindow:]
	}

	var sb strings.Builder
	sb.WriteString(systemPrompt)
	sb.WriteString("\n\n")

	if len(turns) > 0 {
		sb.WriteString("Previous conversation:\n")
		for i, t := range turns {
			if i > 0 {
				sb.WriteString("\n\n")
			}
			if t.Role == domain.MessageRoleUser {
				sb.WriteString("User: ")
			} else {
				sb.WriteString("Assistant: ")
			}
			sb.WriteString(t.Content)
		}
		sb.WriteString("\n\n")
	}

	sb.WriteString("User: ")
	sb.WriteString(userInput)
	sb.WriteString("\n\nAssistant:")
	return sb.String()
}
