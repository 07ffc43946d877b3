package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"

	"sculptai-api/application/ports/outbound"
	"sculptai-api/config"
	"sculptai-api/domain"
)

type renderRequest struct {
	ManimCode       string `json:"manim_code"`
	SceneIdentifier string `json:"scene_identifier"`
}

type renderResponse struct {
	VideoURL            string `json:"video_url"`
	VideoFilenameOnHost string `json:"video_filename_on_host"`
	ContainerSavePath   string `json:"container_save_path"`
	Error               string `json:"error"`
	Detail              string `json:"detail"`
	Message             string `json:"message"`
}

func (r renderResponse) errorMessage() string {
	for _, message := range []string{r.Error, r.Detail, r.Message} {
		if message != "" {
			return message
		}
	}
	return ""
}

type manimRenderer struct {
	logger         outbound.LoggerPort
	rendererConfig *config.RendererConfig
	client         *http.Client
}

// NewManimRenderer builds the client for the external rendering service.
// Each render is a single attempt; retrying is left to the caller.
func NewManimRenderer(rendererConfig *config.RendererConfig, logger outbound.LoggerPort) outbound.SceneRendererPort {
	return &manimRenderer{
		logger:         logger,
		rendererConfig: rendererConfig,
		client:         &http.Client{Timeout: rendererConfig.Timeout},
	}
}

func (m *manimRenderer) Render(ctx context.Context, program string, jobID string) (string, error) {
	if m.rendererConfig.Endpoint == "" {
		return "", domain.NewConfigurationError("RENDERER_URL is not configured")
	}

	payload, err := json.Marshal(renderRequest{ManimCode: program, SceneIdentifier: jobID})
	if err != nil {
		return "", domain.AsAppError(err)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, m.rendererConfig.Endpoint, bytes.NewBuffer(payload))
	if err != nil {
		return "", domain.AsAppError(err)
	}
	request.Header.Set("Content-Type", "application/json")

	m.logger.InfoWithFields("Submitting scene program to renderer", map[string]interface{}{
		"job_id":        jobID,
		"program_bytes": len(program),
	})

	response, err := m.client.Do(request)
	if err != nil {
		return "", classifyTransportError(err, jobID)
	}
	defer func() {
		if closeErr := response.Body.Close(); closeErr != nil {
			m.logger.Error(closeErr, "Failed to close renderer response body")
		}
	}()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return "", domain.NewTransportError("Failed to read the renderer response body", err)
	}

	var decoded renderResponse
	parsed := json.Unmarshal(body, &decoded) == nil

	if response.StatusCode < http.StatusOK || response.StatusCode >= http.StatusMultipleChoices {
		if parsed {
			if message := decoded.errorMessage(); message != "" {
				return "", domain.NewUpstreamReportedError(message, response.StatusCode)
			}
		}
		return "", &domain.AppError{
			Kind:           domain.KindMalformedResponse,
			Message:        fmt.Sprintf("The renderer returned status %d with an unrecognized body", response.StatusCode),
			UpstreamStatus: response.StatusCode,
			BodyExcerpt:    excerpt(string(body)),
		}
	}

	if !parsed {
		return "", domain.NewMalformedResponseError("The renderer returned a non-JSON success body", excerpt(string(body)))
	}

	// An explicit error field wins even on an OK status; then a remote URL,
	// then a host-local artifact.
	switch {
	case decoded.Error != "":
		return "", domain.NewUpstreamReportedError(decoded.Error, response.StatusCode)
	case decoded.VideoURL != "":
		return decoded.VideoURL, nil
	case decoded.VideoFilenameOnHost != "":
		m.logger.WarnWithFields("Renderer produced a host-local artifact instead of a URL", map[string]interface{}{
			"job_id":    jobID,
			"filename":  decoded.VideoFilenameOnHost,
			"save_path": decoded.ContainerSavePath,
		})
		return domain.LocalArtifactPrefix + decoded.VideoFilenameOnHost, nil
	case decoded.Message != "":
		return "", domain.NewUpstreamReportedError(decoded.Message, response.StatusCode)
	default:
		return "", domain.NewMalformedResponseError("The renderer success response had no recognizable fields", excerpt(string(body)))
	}
}

func classifyTransportError(err error, jobID string) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return domain.NewTimeoutError(fmt.Sprintf("Rendering for job %s timed out", jobID), err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return domain.NewTimeoutError(fmt.Sprintf("Rendering for job %s timed out", jobID), err)
	}
	return domain.NewTransportError(fmt.Sprintf("Failed to reach the renderer for job %s", jobID), err)
}
