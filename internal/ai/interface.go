package ai

import (
	"context"
	"errors"
)

// ErrEmptyResponse is returned when a provider answers without any text.
var ErrEmptyResponse = errors.New("empty response from model")

// Provider generates free text from a prompt. Swapping Gemini for OpenAI
// only changes which Provider is constructed at startup.
type Provider interface {
	// GenerateText returns the model's raw answer. No cleanup is applied.
	GenerateText(ctx context.Context, prompt string) (string, error)

	// Name identifies the provider in logs and metrics.
	Name() string

	Close() error
}
