package domain

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatusHints(t *testing.T) {
	cases := []struct {
		name string
		err  *AppError
		want int
	}{
		{"configuration", NewConfigurationError("no key"), http.StatusInternalServerError},
		{"blocked", NewUpstreamBlockedError("blocked"), http.StatusBadRequest},
		{"empty response", NewUpstreamEmptyResponseError("empty"), http.StatusBadGateway},
		{"malformed", NewMalformedResponseError("bad", ""), http.StatusBadGateway},
		{"timeout", NewTimeoutError("slow", nil), http.StatusGatewayTimeout},
		{"transport", NewTransportError("down", nil), http.StatusBadGateway},
		{"empty storyboard", NewEmptyStoryboardError("none"), http.StatusUnprocessableEntity},
		{"upstream reported passthrough", NewUpstreamReportedError("boom", http.StatusServiceUnavailable), http.StatusServiceUnavailable},
		{"upstream reported without status", NewUpstreamReportedError("boom", 0), http.StatusBadGateway},
		{"upstream reported ok status", NewUpstreamReportedError("boom", http.StatusOK), http.StatusBadGateway},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.err.HTTPStatus(); got != tc.want {
				t.Errorf("HTTPStatus() = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestKindOfUnwraps(t *testing.T) {
	wrapped := fmt.Errorf("scene 2: %w", NewTimeoutError("render timed out", nil))
	if kind := KindOf(wrapped); kind != KindTimeout {
		t.Errorf("KindOf(wrapped) = %s, want %s", kind, KindTimeout)
	}
	if kind := KindOf(errors.New("plain")); kind != KindInternal {
		t.Errorf("KindOf(plain) = %s, want %s", kind, KindInternal)
	}
}

func TestAsAppErrorHidesInternalDetail(t *testing.T) {
	cause := errors.New("pq: connection refused on 10.0.0.3")
	appErr := AsAppError(cause)
	if appErr.Kind != KindInternal {
		t.Errorf("kind = %s, want internal", appErr.Kind)
	}
	if appErr.Message == cause.Error() {
		t.Error("internal message must not leak the raw error")
	}
	if !errors.Is(appErr, cause) {
		t.Error("cause must stay reachable for logging")
	}

	typed := NewEmptyStoryboardError("none")
	if AsAppError(typed) != typed {
		t.Error("expected taxonomy errors to pass through unchanged")
	}
}
