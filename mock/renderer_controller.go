package mock_renderer

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"sculptai-api/application/ports/outbound"

	"github.com/gin-gonic/gin"
)

// failureMarker in a submitted program makes the mock report a render error,
// so partial-failure handling can be exercised locally.
const failureMarker = "FAIL_RENDER"

type RendererController interface {
	Render(c *gin.Context)
	RegisterRoutes(g *gin.Engine)
}

type rendererController struct {
	logger outbound.LoggerPort
	delay  time.Duration
}

func NewRendererController(logger outbound.LoggerPort, delay time.Duration) RendererController {
	return &rendererController{
		logger: logger,
		delay:  delay,
	}
}

type renderRequest struct {
	ManimCode       string `json:"manim_code" binding:"required"`
	SceneIdentifier string `json:"scene_identifier" binding:"required"`
}

func (m *rendererController) Render(c *gin.Context) {
	var request renderRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "manim_code and scene_identifier are required"})
		return
	}

	m.logger.InfoWithFields("Mock render requested", map[string]interface{}{
		"scene_identifier": request.SceneIdentifier,
		"program_bytes":    len(request.ManimCode),
	})

	select {
	case <-c.Request.Context().Done():
		return
	case <-time.After(m.delay):
	}

	if strings.Contains(request.ManimCode, failureMarker) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Manim rendering process failed."})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"video_url":              fmt.Sprintf("https://storage.googleapis.com/sculptai-renders/%s.mp4", request.SceneIdentifier),
		"video_filename_on_host": request.SceneIdentifier + ".mp4",
		"container_save_path":    "/app/output_videos/" + request.SceneIdentifier + ".mp4",
	})
}

func (m *rendererController) RegisterRoutes(g *gin.Engine) {
	g.POST("/api/v1/mock/render", m.Render)
}
