package adapters

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"sculptai-api/application/ports/outbound"
	"sculptai-api/config"
	"sculptai-api/domain"
)

const (
	sceneProgramTemperature     = 0.1
	sceneProgramMaxOutputTokens = 3072

	sceneClassMarker = "class GeneratedScene(Scene):"
	constructMarker  = "def construct(self):"
)

var fencedPythonRegexp = regexp.MustCompile("(?s)```(?:python)?\\s*(.*?)\\s*```")

type sceneProgramGenerator struct {
	logger        outbound.LoggerPort
	textGenerator outbound.TextGeneratorPort
	geminiConfig  *config.GeminiConfig
}

func NewSceneProgramGenerator(textGenerator outbound.TextGeneratorPort, geminiConfig *config.GeminiConfig,
	logger outbound.LoggerPort) outbound.SceneProgramGeneratorPort {
	return &sceneProgramGenerator{
		logger:        logger,
		textGenerator: textGenerator,
		geminiConfig:  geminiConfig,
	}
}

func (g *sceneProgramGenerator) Generate(ctx context.Context, request domain.SceneGenerationRequest) (string, error) {
	g.logger.DebugWithFields("Requesting scene program", map[string]interface{}{
		"model": g.geminiConfig.SceneCodeModel,
		"scene": fmt.Sprintf("%d/%d", request.SceneNumber, request.TotalScenes),
	})

	raw, err := g.textGenerator.Generate(ctx, outbound.TextGenerationRequest{
		Model:           g.geminiConfig.SceneCodeModel,
		Prompt:          sceneProgramPrompt(request),
		Temperature:     sceneProgramTemperature,
		MaxOutputTokens: sceneProgramMaxOutputTokens,
	})
	if err != nil {
		return "", err
	}

	program := extractProgram(raw)

	// Structural markers are advisory: the renderer is the real arbiter of
	// whether the program runs.
	if !strings.Contains(program, sceneClassMarker) || !strings.Contains(program, constructMarker) {
		g.logger.WarnWithFields("Generated scene program may be malformed or incomplete", map[string]interface{}{
			"scene":   request.SceneNumber,
			"preview": excerpt(program),
		})
	}

	return program, nil
}

// extractProgram unwraps a fenced code block when present and strips a stray
// leading language tag line.
func extractProgram(raw string) string {
	program := strings.TrimSpace(raw)
	if match := fencedPythonRegexp.FindStringSubmatch(program); match != nil {
		program = strings.TrimSpace(match[1])
	}
	if strings.HasPrefix(program, "python\n") {
		program = strings.TrimSpace(strings.TrimPrefix(program, "python\n"))
	}
	return program
}
