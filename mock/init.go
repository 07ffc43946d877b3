package mock_renderer

import (
	"time"

	"sculptai-api/application/ports/outbound"

	"github.com/gin-gonic/gin"
)

// Init registers the in-process renderer emulator. With RENDERER_URL pointed
// at this route the full pipeline runs without the real rendering service.
func Init(g *gin.Engine, logger outbound.LoggerPort) {
	controller := NewRendererController(logger, 500*time.Millisecond)
	controller.RegisterRoutes(g)
}
