package controllers

import (
	"context"
	"net/http"
	"time"

	"sculptai-api/application/ports/inbound"
	"sculptai-api/application/ports/outbound"
	"sculptai-api/domain"
	"sculptai-api/infrastructure/gin_interface/dto"
	"sculptai-api/middleware"

	"github.com/gin-gonic/gin"
)

type ProjectController interface {
	InitiateProject(c *gin.Context)
	GenerateVideo(c *gin.Context)
	GenerateVideoStream(c *gin.Context)
	Health(c *gin.Context)
	RegisterRoutes(g *gin.Engine)
}

type projectController struct {
	logger       outbound.LoggerPort
	workerPool   outbound.TaskDispatcher
	orchestrator inbound.ProjectOrchestratorPort
}

func NewProjectController(logger outbound.LoggerPort, workerPool outbound.TaskDispatcher,
	orchestrator inbound.ProjectOrchestratorPort) ProjectController {
	return &projectController{
		logger:       logger,
		workerPool:   workerPool,
		orchestrator: orchestrator,
	}
}

func (p *projectController) InitiateProject(c *gin.Context) {
	var request dto.InitiateProjectRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorEnvelope(http.StatusBadRequest, "userIdea is required"))
		return
	}

	initiation, err := p.orchestrator.InitiateProject(c.Request.Context(), inbound.InitiateProjectParams{
		IdeaText: request.UserIdea,
		UserID:   request.UserID,
	})
	if err != nil {
		p.abortWithAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessEnvelope(dto.InitiateProjectResponse{
		ProjectID:  initiation.ProjectID,
		Storyboard: initiation.Storyboard,
	}))
}

func (p *projectController) GenerateVideo(c *gin.Context) {
	var request dto.GenerateVideoRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorEnvelope(http.StatusBadRequest, "storyboard with at least one scene is required"))
		return
	}

	result, err := p.orchestrator.RenderProject(c.Request.Context(), inbound.RenderProjectParams{
		ProjectID:  c.Param("projectId"),
		Topic:      request.UserIdea,
		Storyboard: request.Storyboard,
		UserID:     request.UserID,
	})
	if err != nil {
		p.abortWithAppError(c, err)
		return
	}

	// Partial and even fully failed pipelines are data, not errors.
	c.JSON(http.StatusOK, dto.NewSuccessEnvelope(result))
}

func (p *projectController) GenerateVideoStream(c *gin.Context) {
	var request dto.GenerateVideoRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorEnvelope(http.StatusBadRequest, "storyboard with at least one scene is required"))
		return
	}

	newCtx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	params := inbound.RenderProjectParams{
		ProjectID:  c.Param("projectId"),
		Topic:      request.UserIdea,
		Storyboard: request.Storyboard,
		UserID:     request.UserID,
	}
	if params.Topic == "" {
		params.Topic = domain.DefaultTopic
	}

	outcomes, errCh := p.orchestrator.StreamScenes(newCtx, params)

	err := p.workerPool.Submit(func() {
		for streamErr := range errCh {
			p.logger.Error(streamErr, "error in scene stream")
			cancel()
		}
	})
	if err != nil {
		p.abortWithAppError(c, err)
		return
	}

	scenes := make([]domain.SceneOutcome, 0, len(params.Storyboard))
	for outcome := range outcomes {
		scenes = append(scenes, outcome)
		c.SSEvent("scene", outcome)
		c.Writer.Flush()
	}

	if newCtx.Err() != nil {
		c.SSEvent("error", "scene stream aborted")
		return
	}

	c.SSEvent("result", domain.ProjectResult{
		ProjectID:  params.ProjectID,
		Topic:      params.Topic,
		Storyboard: params.Storyboard,
		Scenes:     scenes,
		Status:     domain.DeriveProjectStatus(scenes),
	})
	c.Writer.Flush()
}

func (p *projectController) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "UP",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (p *projectController) RegisterRoutes(g *gin.Engine) {
	g.GET("/health", p.Health)

	v1 := g.Group("/api/v1")
	v1.POST("/projects/initiate", p.InitiateProject)
	v1.POST("/projects/:projectId/generate-video", p.GenerateVideo)
	v1.POST("/projects/:projectId/generate-video/stream", middleware.SSEMiddleware(), p.GenerateVideoStream)
}

func (p *projectController) abortWithAppError(c *gin.Context, err error) {
	appErr := domain.AsAppError(err)
	if appErr.Kind == domain.KindInternal {
		p.logger.Error(err, "unclassified error crossed the service boundary")
	} else {
		p.logger.ErrorWithFields(err, "request failed", map[string]interface{}{
			"kind": string(appErr.Kind),
		})
	}
	status := appErr.HTTPStatus()
	c.AbortWithStatusJSON(status, dto.NewErrorEnvelope(status, appErr.Message))
}
