package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"sculptai-api/application/ports/inbound"
	"sculptai-api/domain"
	"sculptai-api/infrastructure/gin_interface/dto"

	"github.com/gin-gonic/gin"
	"github.com/panjf2000/ants/v2"
)

type nopLogger struct{}

func (nopLogger) Info(string)                                           {}
func (nopLogger) InfoWithFields(string, map[string]interface{})         {}
func (nopLogger) Error(error, string)                                   {}
func (nopLogger) ErrorWithFields(error, string, map[string]interface{}) {}
func (nopLogger) Debug(string)                                          {}
func (nopLogger) DebugWithFields(string, map[string]interface{})        {}
func (nopLogger) Warn(string)                                           {}
func (nopLogger) WarnWithFields(string, map[string]interface{})         {}

type fakeOrchestrator struct {
	initiation *inbound.ProjectInitiation
	result     *domain.ProjectResult
	err        error
}

func (f *fakeOrchestrator) InitiateProject(_ context.Context, _ inbound.InitiateProjectParams) (*inbound.ProjectInitiation, error) {
	return f.initiation, f.err
}

func (f *fakeOrchestrator) RenderProject(_ context.Context, _ inbound.RenderProjectParams) (*domain.ProjectResult, error) {
	return f.result, f.err
}

func (f *fakeOrchestrator) StreamScenes(_ context.Context, _ inbound.RenderProjectParams) (<-chan domain.SceneOutcome, <-chan error) {
	out := make(chan domain.SceneOutcome)
	errCh := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errCh)
		if f.err != nil {
			errCh <- f.err
			return
		}
		if f.result != nil {
			for _, scene := range f.result.Scenes {
				out <- scene
			}
		}
	}()
	return out, errCh
}

func newTestRouter(t *testing.T, orchestrator inbound.ProjectOrchestratorPort) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	pool, err := ants.NewPool(4)
	if err != nil {
		t.Fatalf("failed to create worker pool: %v", err)
	}
	t.Cleanup(pool.Release)

	router := gin.New()
	NewProjectController(nopLogger{}, pool, orchestrator).RegisterRoutes(router)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var request *http.Request
	if body == "" {
		request = httptest.NewRequest(method, path, nil)
	} else {
		request = httptest.NewRequest(method, path, strings.NewReader(body))
		request.Header.Set("Content-Type", "application/json")
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder
}

const generateVideoBody = `{
  "userIdea": "explain photosynthesis",
  "storyboard": [
    {"scene_title": "Intro", "narration": "Light hits the leaf.", "visual_description": "A sun and a leaf."}
  ]
}`

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(t, &fakeOrchestrator{})

	recorder := doJSON(t, router, http.MethodGet, "/health", "")
	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d", recorder.Code)
	}
	if !strings.Contains(recorder.Body.String(), `"status":"UP"`) {
		t.Errorf("body = %s", recorder.Body.String())
	}
}

func TestInitiateProjectSuccessEnvelope(t *testing.T) {
	orchestrator := &fakeOrchestrator{initiation: &inbound.ProjectInitiation{
		ProjectID: "proj_1_abc",
		Storyboard: []domain.StoryboardScene{
			{Title: "Intro", Narration: "n", VisualDescription: "v"},
		},
	}}
	router := newTestRouter(t, orchestrator)

	recorder := doJSON(t, router, http.MethodPost, "/api/v1/projects/initiate", `{"userIdea": "explain gravity"}`)
	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", recorder.Code, recorder.Body.String())
	}

	var envelope struct {
		Status string `json:"status"`
		Data   struct {
			ProjectID  string                   `json:"projectId"`
			Storyboard []domain.StoryboardScene `json:"storyboard"`
		} `json:"data"`
	}
	if err := json.Unmarshal(recorder.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("failed to decode envelope: %v", err)
	}
	if envelope.Status != "success" {
		t.Errorf("status = %q", envelope.Status)
	}
	if envelope.Data.ProjectID != "proj_1_abc" || len(envelope.Data.Storyboard) != 1 {
		t.Errorf("data = %+v", envelope.Data)
	}
}

func TestInitiateProjectRequiresIdea(t *testing.T) {
	router := newTestRouter(t, &fakeOrchestrator{})

	for name, body := range map[string]string{
		"missing body":  "",
		"empty idea":    `{"userIdea": ""}`,
		"wrong payload": `{"idea": "x"}`,
	} {
		t.Run(name, func(t *testing.T) {
			recorder := doJSON(t, router, http.MethodPost, "/api/v1/projects/initiate", body)
			if recorder.Code != http.StatusBadRequest {
				t.Errorf("status = %d", recorder.Code)
			}
		})
	}
}

func TestErrorKindMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"blocked", domain.NewUpstreamBlockedError("blocked"), http.StatusBadRequest},
		{"empty storyboard", domain.NewEmptyStoryboardError("none"), http.StatusUnprocessableEntity},
		{"timeout", domain.NewTimeoutError("slow", nil), http.StatusGatewayTimeout},
		{"transport", domain.NewTransportError("down", nil), http.StatusBadGateway},
		{"configuration", domain.NewConfigurationError("no key"), http.StatusInternalServerError},
		{"upstream reported", domain.NewUpstreamReportedError("renderer broke", http.StatusServiceUnavailable), http.StatusServiceUnavailable},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router := newTestRouter(t, &fakeOrchestrator{err: tc.err})

			recorder := doJSON(t, router, http.MethodPost, "/api/v1/projects/initiate", `{"userIdea": "idea"}`)
			if recorder.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d", recorder.Code, tc.wantStatus)
			}

			var envelope dto.ErrorEnvelope
			if err := json.Unmarshal(recorder.Body.Bytes(), &envelope); err != nil {
				t.Fatalf("failed to decode envelope: %v", err)
			}
			if envelope.Status != "error" || envelope.StatusCode != tc.wantStatus || envelope.Message == "" {
				t.Errorf("envelope = %+v", envelope)
			}
		})
	}
}

func TestInternalErrorsAreMasked(t *testing.T) {
	router := newTestRouter(t, &fakeOrchestrator{err: context.DeadlineExceeded})

	recorder := doJSON(t, router, http.MethodPost, "/api/v1/projects/initiate", `{"userIdea": "idea"}`)
	if recorder.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", recorder.Code)
	}
	if strings.Contains(recorder.Body.String(), "deadline") {
		t.Error("raw error text leaked to the client")
	}
}

func TestGenerateVideoReturnsResult(t *testing.T) {
	result := &domain.ProjectResult{
		ProjectID: "proj_2_def",
		Topic:     "explain photosynthesis",
		Scenes: []domain.SceneOutcome{
			{SceneNumber: 1, Title: "Intro", Status: domain.SceneCompleted, VideoURL: "https://v/1.mp4"},
			{SceneNumber: 2, Title: "Chloroplasts", Status: domain.SceneFailed, ErrorMessage: "render timed out"},
		},
		Status: domain.ProjectPartiallyCompleted,
	}
	router := newTestRouter(t, &fakeOrchestrator{result: result})

	recorder := doJSON(t, router, http.MethodPost, "/api/v1/projects/proj_2_def/generate-video", generateVideoBody)
	// partial failure is still a 200 with data
	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", recorder.Code, recorder.Body.String())
	}
	body := recorder.Body.String()
	for _, want := range []string{`"partially_completed"`, `"manim_code_generated"`, `"error_message":"render timed out"`} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %s", want)
		}
	}
}

func TestGenerateVideoRequiresStoryboard(t *testing.T) {
	router := newTestRouter(t, &fakeOrchestrator{})

	recorder := doJSON(t, router, http.MethodPost, "/api/v1/projects/p1/generate-video", `{"userIdea": "x", "storyboard": []}`)
	if recorder.Code != http.StatusBadRequest {
		t.Errorf("status = %d", recorder.Code)
	}
}

func TestGenerateVideoStreamEmitsSceneAndResultEvents(t *testing.T) {
	result := &domain.ProjectResult{
		Scenes: []domain.SceneOutcome{
			{SceneNumber: 1, Title: "Intro", Status: domain.SceneCompleted, VideoURL: "https://v/1.mp4"},
		},
	}
	router := newTestRouter(t, &fakeOrchestrator{result: result})

	recorder := doJSON(t, router, http.MethodPost, "/api/v1/projects/p1/generate-video/stream", generateVideoBody)
	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", recorder.Code, recorder.Body.String())
	}
	if got := recorder.Header().Get("Content-Type"); !strings.HasPrefix(got, "text/event-stream") {
		t.Errorf("content type = %q", got)
	}
	body := recorder.Body.String()
	if !strings.Contains(body, "event:scene") {
		t.Errorf("missing scene event in %s", body)
	}
	if !strings.Contains(body, "event:result") {
		t.Errorf("missing result event in %s", body)
	}
}
