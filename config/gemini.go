package config

import "os"

const (
	defaultStoryboardModel = "gemini-2.5-flash"
	defaultSceneCodeModel  = "gemini-2.5-pro"
)

type GeminiConfig struct {
	APIKey          string
	StoryboardModel string
	SceneCodeModel  string
}

// GetGeminiConfig reads the Gemini settings from the environment. A missing
// API key does not fail startup; generation calls surface a configuration
// error instead, so the server can boot without credentials.
func GetGeminiConfig() *GeminiConfig {
	storyboardModel := os.Getenv("GEMINI_STORYBOARD_MODEL")
	if storyboardModel == "" {
		storyboardModel = defaultStoryboardModel
	}
	sceneCodeModel := os.Getenv("GEMINI_SCENE_CODE_MODEL")
	if sceneCodeModel == "" {
		sceneCodeModel = defaultSceneCodeModel
	}

	return &GeminiConfig{
		APIKey:          os.Getenv("GEMINI_API_KEY"),
		StoryboardModel: storyboardModel,
		SceneCodeModel:  sceneCodeModel,
	}
}
