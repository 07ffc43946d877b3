package outbound

import "context"

// TextGenerationRequest is a single prompt for the LLM, with the sampling
// parameters the caller wants applied.
type TextGenerationRequest struct {
	Model           string
	Prompt          string
	Temperature     float32
	MaxOutputTokens int32
}

// TextGeneratorPort produces raw model text for a prompt. Implementations own
// credential checks and the classification of upstream failures.
type TextGeneratorPort interface {
	Generate(ctx context.Context, request TextGenerationRequest) (string, error)
}
