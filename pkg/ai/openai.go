package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// OpenAIProvider talks to any chat/completions endpoint that speaks the
// OpenAI wire format.
type OpenAIProvider struct {
	apiKey  string
	apiBase string
	model   string
	client  *http.Client
}

func NewOpenAIProvider(apiKey, apiBase, model string, client *http.Client) *OpenAIProvider {
	if model == "" {
		model = "gpt-3.5-turbo"
	}
	return &OpenAIProvider{
		apiKey:  apiKey,
		apiBase: strings.TrimSuffix(apiBase, "/"),
		model:   model,
		client:  client,
	}
}

type chatCompletionsRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature,omitempty"`
}

type chatCompletionsResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
}

func (p *OpenAIProvider) Chat(ctx context.Context, messages []Message, opts ChatOptions) (string, error) {
	body := chatCompletionsRequest{
		Model:       p.model,
		Messages:    messages,
		Temperature: opts.Temperature,
	}

	respBody, err := postJSON(ctx, p.client, p.apiBase+"/chat/completions", p.apiKey, body)
	if err != nil {
		return "", err
	}

	var result chatCompletionsResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("response contains no choices")
	}
	return result.Choices[0].Message.Content, nil
}

// postJSON sends an authorized JSON request and returns the raw body of a
// 200 response.
func postJSON(ctx context.Context, client *http.Client, url, apiKey string, body any) ([]byte, error) {
	bodyBytes, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling AI provider: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("provider error (%d): %s", resp.StatusCode, string(respBody))
	}
	return respBody, nil
}
