package inbound

import (
	"context"

	"sculptai-api/domain"
)

type InitiateProjectParams struct {
	IdeaText string
	UserID   string
}

// ProjectInitiation is the result of turning an idea into a storyboard.
type ProjectInitiation struct {
	ProjectID  string
	Storyboard []domain.StoryboardScene
}

type RenderProjectParams struct {
	ProjectID  string
	Topic      string
	Storyboard []domain.StoryboardScene
	UserID     string
}

// ProjectOrchestratorPort drives the full idea-to-video pipeline.
type ProjectOrchestratorPort interface {
	// InitiateProject generates a storyboard for the idea and mints a new
	// project id.
	InitiateProject(ctx context.Context, params InitiateProjectParams) (*ProjectInitiation, error)

	// StreamScenes processes the storyboard scene by scene, emitting one
	// outcome per scene in storyboard order. The outcome channel closes once
	// every scene has been attempted or ctx is done; the error channel closes
	// after carrying at most one pipeline-level error.
	StreamScenes(ctx context.Context, params RenderProjectParams) (<-chan domain.SceneOutcome, <-chan error)

	// RenderProject runs the scene pipeline to completion and aggregates the
	// outcomes into a ProjectResult with a derived status.
	RenderProject(ctx context.Context, params RenderProjectParams) (*domain.ProjectResult, error)
}
