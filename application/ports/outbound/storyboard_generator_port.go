package outbound

import (
	"context"

	"sculptai-api/domain"
)

// StoryboardGeneratorPort turns a free-text idea into an ordered storyboard.
type StoryboardGeneratorPort interface {
	Generate(ctx context.Context, ideaText string) ([]domain.StoryboardScene, error)
}
