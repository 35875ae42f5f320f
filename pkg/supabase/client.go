// Package supabase calls the chat-completion edge function. The function owns
// the provider credentials; this client only ships the composed prompt and
// message window and hands back the raw response text.
package supabase

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

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	SystemPrompt string        `json:"systemPrompt"`
	Messages     []chatMessage `json:"messages"`
	ModelName    string        `json:"modelName"`
}

type chatResponse struct {
	Response string `json:"response"`
	Model    string `json:"model"`
	Error    string `json:"error"`
}

type client struct {
	baseURL      string
	anonKey      string
	functionName string
	hc           *http.Client
}

// NewClient builds an edge-function client. The function name is configurable
// because deployments have shipped under more than one name.
func NewClient(baseURL, anonKey, functionName string) *client {
	return &client{
		baseURL:      strings.TrimRight(baseURL, "/"),
		anonKey:      anonKey,
		functionName: functionName,
		hc:           &http.Client{},
	}
}

func (c *client) CreateChatCompletion(ctx context.Context, systemPrompt string, messages []domain.ChatMessage, modelName string) (string, error) {
	if c.baseURL == "" || c.anonKey == "" {
		return "", fmt.Errorf("Supabase configuration is incomplete: supabaseUrl or anon key is missing")
	}

	reqBody := chatRequest{
		SystemPrompt: systemPrompt,
		ModelName:    modelName,
		Messages:     make([]chatMessage, 0, len(messages)),
	}
	for _, m := range messages {
		reqBody.Messages = append(reqBody.Messages, chatMessage{Role: m.Role, Content: m.Content})
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	url := c.baseURL + "/functions/v1/" + c.functionName
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.anonKey)
	req.Header.Set("apikey", c.anonKey)

	resp, err := c.hc.Do(req)
	if err != nil {
		return "", fmt.Errorf("invoking edge function %s: %w", c.functionName, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		var errResp chatResponse
		if json.Unmarshal(bodyBytes, &errResp) == nil && errResp.Error != "" {
			return "", fmt.Errorf("edge function %s: %s", c.functionName, errResp.Error)
		}
		return "", fmt.Errorf("edge function %s: unexpected status code %d: %s", c.functionName, resp.StatusCode, string(bodyBytes))
	}

	var chatResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", fmt.Errorf("decoding response data: %w", err)
	}

	if chatResp.Response == "" {
		return "", fmt.Errorf("the AI service returned an empty response")
	}
	return chatResp.Response, nil
}
