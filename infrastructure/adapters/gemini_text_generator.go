package adapters

import (
	"context"
	"fmt"
	"strings"

	"sculptai-api/application/ports/outbound"
	"sculptai-api/config"
	"sculptai-api/domain"

	"google.golang.org/genai"
)

type geminiTextGenerator struct {
	logger       outbound.LoggerPort
	client       *genai.Client
	geminiConfig *config.GeminiConfig
}

// NewGeminiTextGenerator wraps the shared Gemini client behind the text
// generator port. The client may be nil when no API key is configured; every
// call then fails with a configuration error before any network I/O.
func NewGeminiTextGenerator(client *genai.Client, geminiConfig *config.GeminiConfig, logger outbound.LoggerPort) outbound.TextGeneratorPort {
	return &geminiTextGenerator{
		logger:       logger,
		client:       client,
		geminiConfig: geminiConfig,
	}
}

func (g *geminiTextGenerator) Generate(ctx context.Context, request outbound.TextGenerationRequest) (string, error) {
	if g.client == nil || g.geminiConfig.APIKey == "" {
		return "", domain.NewConfigurationError("GEMINI_API_KEY is not configured")
	}

	generateConfig := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(request.Temperature),
		MaxOutputTokens: request.MaxOutputTokens,
		SafetySettings:  safetySettings(),
	}

	response, err := g.client.Models.GenerateContent(ctx, request.Model, genai.Text(request.Prompt), generateConfig)
	if err != nil {
		g.logger.ErrorWithFields(err, "Gemini request failed", map[string]interface{}{
			"model": request.Model,
		})
		return "", domain.NewTransportError("Failed to communicate with the Gemini API", err)
	}

	if response.PromptFeedback != nil && response.PromptFeedback.BlockReason != "" {
		return "", domain.NewUpstreamBlockedError(fmt.Sprintf(
			"Content generation was blocked (reason: %s)", response.PromptFeedback.BlockReason))
	}

	text := strings.TrimSpace(response.Text())
	if text == "" {
		finishReason := ""
		if len(response.Candidates) > 0 {
			finishReason = string(response.Candidates[0].FinishReason)
		}
		if finishReason == string(genai.FinishReasonSafety) {
			return "", domain.NewUpstreamBlockedError("Generated content was blocked by safety settings")
		}
		if finishReason == "" {
			finishReason = "unknown"
		}
		return "", domain.NewUpstreamEmptyResponseError(fmt.Sprintf(
			"The Gemini API returned no content (finish reason: %s)", finishReason))
	}

	return text, nil
}

func safetySettings() []*genai.SafetySetting {
	categories := []genai.HarmCategory{
		genai.HarmCategoryHarassment,
		genai.HarmCategoryHateSpeech,
		genai.HarmCategorySexuallyExplicit,
		genai.HarmCategoryDangerousContent,
	}
	settings := make([]*genai.SafetySetting, 0, len(categories))
	for _, category := range categories {
		settings = append(settings, &genai.SafetySetting{
			Category:  category,
			Threshold: genai.HarmBlockThresholdBlockMediumAndAbove,
		})
	}
	return settings
}
