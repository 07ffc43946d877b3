package services

import (
	"context"
	"fmt"
	"time"

	"sculptai-api/application/ports/inbound"
	"sculptai-api/application/ports/outbound"
	"sculptai-api/domain"

	"github.com/google/uuid"
)

type projectOrchestrator struct {
	logger        outbound.LoggerPort
	workerPool    outbound.TaskDispatcher
	storyboards   outbound.StoryboardGeneratorPort
	scenePrograms outbound.SceneProgramGeneratorPort
	renderer      outbound.SceneRendererPort
}

func NewProjectOrchestrator(logger outbound.LoggerPort, workerPool outbound.TaskDispatcher,
	storyboards outbound.StoryboardGeneratorPort, scenePrograms outbound.SceneProgramGeneratorPort,
	renderer outbound.SceneRendererPort) inbound.ProjectOrchestratorPort {
	return &projectOrchestrator{
		logger:        logger,
		workerPool:    workerPool,
		storyboards:   storyboards,
		scenePrograms: scenePrograms,
		renderer:      renderer,
	}
}

func (p *projectOrchestrator) InitiateProject(ctx context.Context, params inbound.InitiateProjectParams) (*inbound.ProjectInitiation, error) {
	p.logger.InfoWithFields("Generating storyboard", map[string]interface{}{
		"user_id":     params.UserID,
		"idea_length": len(params.IdeaText),
	})

	storyboard, err := p.storyboards.Generate(ctx, params.IdeaText)
	if err != nil {
		return nil, err
	}
	if len(storyboard) == 0 {
		return nil, domain.NewEmptyStoryboardError("The generated storyboard contained no scenes; try rephrasing the idea")
	}

	projectID := newProjectID()
	p.logger.InfoWithFields("Project initiated", map[string]interface{}{
		"project_id":  projectID,
		"scene_count": len(storyboard),
	})

	return &inbound.ProjectInitiation{
		ProjectID:  projectID,
		Storyboard: storyboard,
	}, nil
}

func (p *projectOrchestrator) StreamScenes(ctx context.Context, params inbound.RenderProjectParams) (<-chan domain.SceneOutcome, <-chan error) {
	out := make(chan domain.SceneOutcome)
	errCh := make(chan error, 1)

	if params.Topic == "" {
		params.Topic = domain.DefaultTopic
	}

	err := p.workerPool.Submit(func() {
		defer close(out)
		defer close(errCh)

		previousContext := ""
		for i, scene := range params.Storyboard {
			sceneNumber := i + 1
			outcome := p.processScene(ctx, params, scene, sceneNumber, previousContext)
			if outcome.Status == domain.SceneCompleted {
				previousContext = fmt.Sprintf("Scene %d showed: %s", sceneNumber, scene.VisualDescription)
			}
			select {
			case <-ctx.Done():
				return
			case out <- outcome:
			}
		}
		p.logger.InfoWithFields("Finished processing scenes", map[string]interface{}{
			"project_id":  params.ProjectID,
			"scene_count": len(params.Storyboard),
		})
	})
	if err != nil {
		errCh <- err
		close(out)
		close(errCh)
	}

	return out, errCh
}

func (p *projectOrchestrator) RenderProject(ctx context.Context, params inbound.RenderProjectParams) (*domain.ProjectResult, error) {
	if params.Topic == "" {
		params.Topic = domain.DefaultTopic
	}

	outcomes, errCh := p.StreamScenes(ctx, params)

	scenes := make([]domain.SceneOutcome, 0, len(params.Storyboard))
	for outcome := range outcomes {
		scenes = append(scenes, outcome)
	}
	if err := <-errCh; err != nil {
		return nil, domain.AsAppError(err)
	}
	if err := ctx.Err(); err != nil {
		return nil, domain.AsAppError(err)
	}

	return &domain.ProjectResult{
		ProjectID:  params.ProjectID,
		Topic:      params.Topic,
		Storyboard: params.Storyboard,
		Scenes:     scenes,
		Status:     domain.DeriveProjectStatus(scenes),
	}, nil
}

// processScene runs generation and rendering for one scene. Failures are
// captured in the outcome so a bad scene never aborts the remaining ones.
func (p *projectOrchestrator) processScene(ctx context.Context, params inbound.RenderProjectParams,
	scene domain.StoryboardScene, sceneNumber int, previousContext string) domain.SceneOutcome {
	outcome := domain.SceneOutcome{
		SceneNumber: sceneNumber,
		Title:       scene.Title,
		Narration:   scene.Narration,
	}

	p.logger.InfoWithFields("Processing scene", map[string]interface{}{
		"project_id": params.ProjectID,
		"scene":      fmt.Sprintf("%d/%d", sceneNumber, len(params.Storyboard)),
		"title":      scene.Title,
	})

	program, err := p.scenePrograms.Generate(ctx, domain.SceneGenerationRequest{
		Narration:            scene.Narration,
		VisualDescription:    scene.VisualDescription,
		SceneNumber:          sceneNumber,
		TotalScenes:          len(params.Storyboard),
		Topic:                params.Topic,
		PreviousSceneContext: previousContext,
	})
	if err != nil {
		p.logger.ErrorWithFields(err, "Scene program generation failed", map[string]interface{}{
			"project_id": params.ProjectID,
			"scene":      sceneNumber,
		})
		outcome.Status = domain.SceneFailed
		outcome.ErrorMessage = domain.AsAppError(err).Message
		return outcome
	}
	outcome.GeneratedProgram = program

	jobID := newRenderJobID(params.ProjectID, sceneNumber)
	videoURL, err := p.renderer.Render(ctx, program, jobID)
	if err != nil {
		p.logger.ErrorWithFields(err, "Scene rendering failed", map[string]interface{}{
			"project_id": params.ProjectID,
			"scene":      sceneNumber,
			"job_id":     jobID,
		})
		outcome.Status = domain.SceneFailed
		outcome.ErrorMessage = domain.AsAppError(err).Message
		return outcome
	}

	outcome.Status = domain.SceneCompleted
	outcome.VideoURL = videoURL
	return outcome
}

func newProjectID() string {
	return fmt.Sprintf("proj_%d_%s", time.Now().UnixMilli(), uuid.NewString()[:8])
}

func newRenderJobID(projectID string, sceneNumber int) string {
	return fmt.Sprintf("%s_scene_%d_%d", projectID, sceneNumber, time.Now().UnixNano())
}
