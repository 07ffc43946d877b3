package outbound

import (
	"context"

	"sculptai-api/domain"
)

// SceneProgramGeneratorPort produces the Manim program source for one scene.
type SceneProgramGeneratorPort interface {
	Generate(ctx context.Context, request domain.SceneGenerationRequest) (string, error)
}
