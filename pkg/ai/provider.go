package ai

import (
	"context"
	"errors"
)

const (
	RoleSystem = "system"
	RoleUser   = "user"
)

var (
	ErrUnsupportedProvider = errors.New("unsupported AI provider")
	ErrNoActiveConfig      = errors.New("no active AI configuration")
)

// Message is one turn of a chat conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatOptions tune a single chat request.
type ChatOptions struct {
	Temperature float64
}

// Provider sends a chat conversation to a language model and returns its
// text response. Implementations differ only in endpoint and wire shape.
type Provider interface {
	Chat(ctx context.Context, messages []Message, opts ChatOptions) (string, error)
}
