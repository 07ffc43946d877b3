package adapters

import (
	"context"
	"encoding/json"
	"regexp"
	"strings"

	"sculptai-api/application/ports/outbound"
	"sculptai-api/config"
	"sculptai-api/domain"
)

const (
	storyboardTemperature     = 0.5
	storyboardMaxOutputTokens = 4096

	bodyExcerptLimit = 200
)

var fencedJSONRegexp = regexp.MustCompile("(?s)```json\\s*(.*?)\\s*```")

type storyboardGenerator struct {
	logger        outbound.LoggerPort
	textGenerator outbound.TextGeneratorPort
	geminiConfig  *config.GeminiConfig
}

func NewStoryboardGenerator(textGenerator outbound.TextGeneratorPort, geminiConfig *config.GeminiConfig,
	logger outbound.LoggerPort) outbound.StoryboardGeneratorPort {
	return &storyboardGenerator{
		logger:        logger,
		textGenerator: textGenerator,
		geminiConfig:  geminiConfig,
	}
}

func (s *storyboardGenerator) Generate(ctx context.Context, ideaText string) ([]domain.StoryboardScene, error) {
	s.logger.DebugWithFields("Requesting storyboard", map[string]interface{}{
		"model":       s.geminiConfig.StoryboardModel,
		"idea_length": len(ideaText),
	})

	raw, err := s.textGenerator.Generate(ctx, outbound.TextGenerationRequest{
		Model:           s.geminiConfig.StoryboardModel,
		Prompt:          storyboardPrompt(ideaText),
		Temperature:     storyboardTemperature,
		MaxOutputTokens: storyboardMaxOutputTokens,
	})
	if err != nil {
		return nil, err
	}

	storyboard, err := decodeStoryboard(raw)
	if err != nil {
		s.logger.ErrorWithFields(err, "Failed to decode storyboard response", map[string]interface{}{
			"response_length": len(raw),
		})
		return nil, err
	}

	s.logger.InfoWithFields("Storyboard generated", map[string]interface{}{
		"scene_count": len(storyboard),
	})
	return storyboard, nil
}

type storyboardSceneJSON struct {
	Title             string `json:"scene_title"`
	Narration         string `json:"narration"`
	VisualDescription string `json:"visual_description"`
}

// decodeStoryboard parses the model response in a fixed order: a fenced JSON
// block when present, otherwise the whole trimmed text; then a bare array, a
// {"storyboard": ...} wrapper, and a {"scenes": ...} wrapper. Anything else
// is a malformed response.
func decodeStoryboard(raw string) ([]domain.StoryboardScene, error) {
	payload := []byte(extractJSONPayload(raw))

	decoders := []func([]byte) ([]storyboardSceneJSON, bool){
		decodeSceneArray,
		decodeWrappedSceneArray("storyboard"),
		decodeWrappedSceneArray("scenes"),
	}
	for _, decode := range decoders {
		scenes, ok := decode(payload)
		if !ok {
			continue
		}
		storyboard := make([]domain.StoryboardScene, 0, len(scenes))
		for _, scene := range scenes {
			converted := domain.StoryboardScene{
				Title:             scene.Title,
				Narration:         scene.Narration,
				VisualDescription: scene.VisualDescription,
			}
			if !converted.Valid() {
				return nil, domain.NewMalformedResponseError(
					"A storyboard scene is missing scene_title, narration or visual_description",
					excerpt(string(payload)))
			}
			storyboard = append(storyboard, converted)
		}
		return storyboard, nil
	}

	return nil, domain.NewMalformedResponseError(
		"The model response did not contain a recognizable storyboard array",
		excerpt(string(payload)))
}

func decodeSceneArray(payload []byte) ([]storyboardSceneJSON, bool) {
	var scenes []storyboardSceneJSON
	if err := json.Unmarshal(payload, &scenes); err != nil {
		return nil, false
	}
	return scenes, true
}

func decodeWrappedSceneArray(key string) func([]byte) ([]storyboardSceneJSON, bool) {
	return func(payload []byte) ([]storyboardSceneJSON, bool) {
		var wrapper map[string]json.RawMessage
		if err := json.Unmarshal(payload, &wrapper); err != nil {
			return nil, false
		}
		inner, ok := wrapper[key]
		if !ok {
			return nil, false
		}
		return decodeSceneArray(inner)
	}
}

func extractJSONPayload(raw string) string {
	if match := fencedJSONRegexp.FindStringSubmatch(raw); match != nil {
		return strings.TrimSpace(match[1])
	}
	return strings.TrimSpace(raw)
}

func excerpt(body string) string {
	if len(body) > bodyExcerptLimit {
		return body[:bodyExcerptLimit]
	}
	return body
}
