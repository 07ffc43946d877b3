package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const defaultRendererTimeout = 300 * time.Second

type RendererConfig struct {
	Endpoint string
	Timeout  time.Duration
}

// GetRendererConfig reads the rendering service settings. An empty endpoint
// does not fail startup; render calls surface a configuration error instead.
func GetRendererConfig() (*RendererConfig, error) {
	timeout := defaultRendererTimeout
	if raw := os.Getenv("RENDERER_TIMEOUT_SECONDS"); raw != "" {
		seconds, err := strconv.Atoi(raw)
		if err != nil || seconds <= 0 {
			return nil, fmt.Errorf("invalid RENDERER_TIMEOUT_SECONDS %q", raw)
		}
		timeout = time.Duration(seconds) * time.Second
	}

	return &RendererConfig{
		Endpoint: os.Getenv("RENDERER_URL"),
		Timeout:  timeout,
	}, nil
}
