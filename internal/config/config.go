package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Server holds the environment driven configuration for the vocd service.
// Upstream credentials are injected here and never embedded in source.
type Server struct {
	ServiceName     string        `env:"SERVICE_NAME" envDefault:"vocd"`
	Environment     string        `env:"ENVIRONMENT" envDefault:"development"`
	HTTPPort        int           `env:"HTTP_PORT" envDefault:"8080"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// AI completion endpoint the proxy forwards to.
	UpstreamURL      string        `env:"AI_UPSTREAM_URL"`
	UpstreamUser     string        `env:"AI_UPSTREAM_USER"`
	UpstreamPassword string        `env:"AI_UPSTREAM_PASSWORD"`
	UpstreamTimeout  time.Duration `env:"AI_UPSTREAM_TIMEOUT" envDefault:"60s"`

	// OpenAI-compatible model used by the chat route.
	OpenAIKey   string `env:"OPENAI_API_KEY"`
	OpenAIModel string `env:"OPENAI_MODEL"`

	// VoC ticket REST backend.
	VocAPIBaseURL string        `env:"VOC_API_BASE_URL" envDefault:"http://localhost:9090"`
	VocAPITimeout time.Duration `env:"VOC_API_TIMEOUT" envDefault:"10s"`
}

// Console holds the configuration for the voc-console TUI.
type Console struct {
	ChatURL       string        `env:"CHAT_API_URL" envDefault:"http://localhost:8080/api/voc/chat"`
	ChatTimeout   time.Duration `env:"CHAT_API_TIMEOUT" envDefault:"75s"`
	VocAPIBaseURL string        `env:"VOC_API_BASE_URL" envDefault:"http://localhost:9090"`
	VocAPITimeout time.Duration `env:"VOC_API_TIMEOUT" envDefault:"10s"`
}

// LoadServer parses environment variables into a Server config.
func LoadServer() (*Server, error) {
	cfg := &Server{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env config: %w", err)
	}

	if strings.TrimSpace(cfg.UpstreamURL) == "" {
		return nil, fmt.Errorf("AI_UPSTREAM_URL is required")
	}
	if strings.TrimSpace(cfg.UpstreamUser) == "" || cfg.UpstreamPassword == "" {
		return nil, fmt.Errorf("AI_UPSTREAM_USER and AI_UPSTREAM_PASSWORD are required")
	}

	return cfg, nil
}

// LoadConsole parses environment variables into a Console config.
func LoadConsole() (*Console, error) {
	cfg := &Console{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env config: %w", err)
	}
	return cfg, nil
}

// Addr returns the HTTP listen address.
func (c *Server) Addr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}
