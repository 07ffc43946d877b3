package main

import (
	"context"
	"fmt"

	"sculptai-api/application/services"
	"sculptai-api/config"
	"sculptai-api/infrastructure/adapters"
	"sculptai-api/infrastructure/gin_interface/controllers"
	"sculptai-api/middleware"
	mockrenderer "sculptai-api/mock"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/panjf2000/ants/v2"
	"github.com/rs/zerolog/log"
	"google.golang.org/genai"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("No .env file found, using process environment")
	}

	geminiConfig := config.GetGeminiConfig()

	rendererConfig, err := config.GetRendererConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get renderer config")
	}

	serverConfig := config.GetServerConfig()

	zeroLogger := adapters.NewZerologWrapper()

	panicHandler := func(p interface{}) {
		zeroLogger.Error(fmt.Errorf("%v", p), "Panic in worker pool")
	}

	workerPool, err := ants.NewPool(120, ants.WithPanicHandler(panicHandler))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create worker pool")
	}
	defer workerPool.Release()

	var geminiClient *genai.Client
	if geminiConfig.APIKey == "" {
		zeroLogger.Warn("GEMINI_API_KEY is not set; generation requests will fail until it is configured")
	} else {
		geminiClient, err = genai.NewClient(context.Background(), &genai.ClientConfig{
			APIKey:  geminiConfig.APIKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create Gemini client")
		}
	}

	textGenerator := adapters.NewGeminiTextGenerator(geminiClient, geminiConfig, zeroLogger)

	storyboardGenerator := adapters.NewStoryboardGenerator(textGenerator, geminiConfig, zeroLogger)
	sceneProgramGenerator := adapters.NewSceneProgramGenerator(textGenerator, geminiConfig, zeroLogger)
	sceneRenderer := adapters.NewManimRenderer(rendererConfig, zeroLogger)

	orchestrator := services.NewProjectOrchestrator(zeroLogger, workerPool, storyboardGenerator, sceneProgramGenerator, sceneRenderer)

	projectController := controllers.NewProjectController(zeroLogger, workerPool, orchestrator)

	router := gin.Default()

	if err = router.SetTrustedProxies(nil); err != nil {
		log.Fatal().Err(err).Msg("Failed to set trusted proxies!")
	}

	router.Use(middleware.CORSMiddleware(serverConfig.AllowedOrigins))

	if serverConfig.MockRenderer {
		mockrenderer.Init(router, zeroLogger)
	}

	projectController.RegisterRoutes(router)

	if err = router.Run(":" + serverConfig.Port); err != nil {
		log.Fatal().Err(err).Msg("Failed to start server!")
	}
}
