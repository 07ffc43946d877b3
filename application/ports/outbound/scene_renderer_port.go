package outbound

import "context"

// SceneRendererPort submits a scene program to the rendering service and
// returns the resulting artifact location. Results carrying the
// domain.LocalArtifactPrefix tag are files on the renderer host, not URLs.
type SceneRendererPort interface {
	Render(ctx context.Context, program string, jobID string) (string, error)
}
