package config

import (
	"os"
	"strings"
)

type ServerConfig struct {
	Port           string
	AllowedOrigins []string
	MockRenderer   bool
}

func GetServerConfig() *ServerConfig {
	port := os.Getenv("PORT")
	if port == "" {
		port = "5000"
	}

	origins := []string{"http://localhost:5173"}
	if raw := os.Getenv("CORS_ALLOWED_ORIGINS"); raw != "" {
		origins = origins[:0]
		for _, origin := range strings.Split(raw, ",") {
			if trimmed := strings.TrimSpace(origin); trimmed != "" {
				origins = append(origins, trimmed)
			}
		}
	}

	return &ServerConfig{
		Port:           port,
		AllowedOrigins: origins,
		MockRenderer:   os.Getenv("MOCK_RENDERER") == "true",
	}
}
