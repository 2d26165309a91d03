package ai

import "net/http"

const deepSeekAPIBase = "https://api.deepseek.com/v1"

// NewDeepSeekProvider configures the OpenAI-compatible client for DeepSeek.
func NewDeepSeekProvider(apiKey, model string, client *http.Client) *OpenAIProvider {
	if model == "" {
		model = "deepseek-chat"
	}
	return NewOpenAIProvider(apiKey, deepSeekAPIBase, model, client)
}
