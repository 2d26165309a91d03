package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yann-lu/mind-balance/internal/config"
	"github.com/yann-lu/mind-balance/pkg/user"
)

func TestProviderFactory(t *testing.T) {
	factory := NewProviderFactory(config.AI{RequestTimeoutSeconds: 60})

	t.Run("builds known providers", func(t *testing.T) {
		for _, name := range []string{"deepseek", "qwen", "openai", "DeepSeek"} {
			provider, err := factory.Build(Config{Provider: name, APIKey: "key", APIBase: "https://example.com/v1"})
			assert.NoError(t, err, name)
			assert.NotNil(t, provider, name)
		}
	})

	t.Run("unknown provider is a configuration error", func(t *testing.T) {
		_, err := factory.Build(Config{Provider: "mistral", APIKey: "key"})
		assert.ErrorIs(t, err, ErrUnsupportedProvider)
	})
}

func TestOpenAIProviderChat(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))

		var req chatCompletionsRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "deepseek-chat", req.Model)
		assert.Len(t, req.Messages, 2)

		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": "a plan"}},
			},
		})
	}))
	defer server.Close()

	provider := NewOpenAIProvider("secret", server.URL, "deepseek-chat", server.Client())
	response, err := provider.Chat(context.Background(), []Message{
		{Role: RoleSystem, Content: "you plan things"},
		{Role: RoleUser, Content: "plan my day"},
	}, ChatOptions{Temperature: 0.7})

	assert.NoError(t, err)
	assert.Equal(t, "a plan", response)
}

func TestOpenAIProviderChatErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"quota exceeded"}`, http.StatusTooManyRequests)
	}))
	defer server.Close()

	provider := NewOpenAIProvider("secret", server.URL, "", server.Client())
	_, err := provider.Chat(context.Background(), []Message{{Role: RoleUser, Content: "hi"}}, ChatOptions{})
	assert.ErrorContains(t, err, "429")
}

func TestConfigService(t *testing.T) {
	ctx := user.WithUser(context.Background(), user.User{Id: 1, Uid: "u-1", Username: "tester"})
	factory := NewProviderFactory(config.AI{RequestTimeoutSeconds: 60})

	t.Run("save activates and round-trips", func(t *testing.T) {
		service := NewConfigService(NewStubConfigRepo(), factory)

		saved, err := service.SaveConfig(ctx, Config{Provider: "deepseek", APIKey: "secret"})
		assert.NoError(t, err)
		assert.True(t, saved.IsActive)

		active, err := service.ActiveConfig(ctx)
		assert.NoError(t, err)
		assert.NotNil(t, active)
		assert.Equal(t, "deepseek", active.Provider)

		provider, err := service.ActiveProvider(ctx)
		assert.NoError(t, err)
		assert.NotNil(t, provider)
	})

	t.Run("save rejects unknown providers", func(t *testing.T) {
		service := NewConfigService(NewStubConfigRepo(), factory)

		_, err := service.SaveConfig(ctx, Config{Provider: "mistral", APIKey: "secret"})
		assert.ErrorIs(t, err, ErrUnsupportedProvider)
	})

	t.Run("no active config", func(t *testing.T) {
		service := NewConfigService(NewStubConfigRepo(), factory)

		_, err := service.ActiveProvider(ctx)
		assert.ErrorIs(t, err, ErrNoActiveConfig)
	})

	t.Run("disable clears the provider", func(t *testing.T) {
		service := NewConfigService(NewStubConfigRepo(), factory)

		_, err := service.SaveConfig(ctx, Config{Provider: "qwen", APIKey: "secret"})
		assert.NoError(t, err)
		assert.NoError(t, service.DisableConfig(ctx))

		_, err = service.ActiveProvider(ctx)
		assert.ErrorIs(t, err, ErrNoActiveConfig)
	})
}
