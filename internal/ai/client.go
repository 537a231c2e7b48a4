package ai

import "context"

// Client is the generative-model boundary. Implementations must return the
// model's raw text output; the gateway owns JSON parsing and normalization.
type Client interface {
	Generate(ctx context.Context, prompt string) (string, error)
	GenerateWithFile(ctx context.Context, prompt string, data []byte, mimeType string) (string, error)
}
