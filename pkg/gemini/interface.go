package gemini

import "context"

// IGemini defines the interface for the Gemini API client.
// Implementations are safe for concurrent use.
type IGemini interface {
	// GenerateContent sends a generation request to the Gemini API.
	GenerateContent(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)

	// GenerateText sends a single-turn text prompt and returns the first
	// candidate's text.
	GenerateText(ctx context.Context, prompt string, temperature float64) (string, error)

	// Model returns the model being used.
	Model() string
}
