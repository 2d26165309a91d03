package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

const qwenAPIBase = "https://dashscope.aliyuncs.com/api/v1"

// QwenProvider talks to the DashScope text-generation API.
type QwenProvider struct {
	apiKey string
	model  string
	client *http.Client
}

func NewQwenProvider(apiKey, model string, client *http.Client) *QwenProvider {
	if model == "" {
		model = "qwen-turbo"
	}
	return &QwenProvider{apiKey: apiKey, model: model, client: client}
}

type qwenRequest struct {
	Model string `json:"model"`
	Input struct {
		Messages []Message `json:"messages"`
	} `json:"input"`
	Parameters struct {
		Temperature float64 `json:"temperature,omitempty"`
	} `json:"parameters"`
}

type qwenResponse struct {
	Output struct {
		Text string `json:"text"`
	} `json:"output"`
}

func (p *QwenProvider) Chat(ctx context.Context, messages []Message, opts ChatOptions) (string, error) {
	body := qwenRequest{Model: p.model}
	body.Input.Messages = messages
	body.Parameters.Temperature = opts.Temperature

	respBody, err := postJSON(ctx, p.client, qwenAPIBase+"/services/aigc/text-generation/generation", p.apiKey, body)
	if err != nil {
		return "", err
	}

	var result qwenResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}
	return result.Output.Text, nil
}
