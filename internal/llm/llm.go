// Package llm provides chat-completion clients for the AI ingredient analyzer.
package llm

import (
	"context"
	"errors"
)

// Prompt is a single-turn chat request.
type Prompt struct {
	System string
	User   string
}

// Completer returns the raw text reply of a language model.
type Completer interface {
	Complete(ctx context.Context, prompt Prompt) (string, error)
	// Model returns the model identifier requests are sent to.
	Model() string
}

var (
	// ErrEmptyResponse is returned when the provider answers without content.
	ErrEmptyResponse = errors.New("llm: empty response")
)
