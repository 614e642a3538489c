package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"foiagate/internal/gate"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string
	LogLevel        string
	LogFormat       string
	ExecutionMode   gate.ExecutionMode
	ShutdownTimeout time.Duration
}

const (
	defaultAddr            = ":8080"
	defaultLogLevel        = "info"
	defaultLogFormat       = "text"
	defaultShutdownTimeout = 10 * time.Second
)

// FromEnv builds a Server config from environment variables so main stays lean.
// Only a malformed shutdown timeout is an error; everything else falls back to
// its default.
func FromEnv() (Server, error) {
	cfg := Server{
		Addr:            envOr("FOIAGATE_ADDR", defaultAddr),
		LogLevel:        envOr("FOIAGATE_LOG_LEVEL", defaultLogLevel),
		LogFormat:       strings.ToLower(envOr("FOIAGATE_LOG_FORMAT", defaultLogFormat)),
		ExecutionMode:   gate.ParseExecutionMode(os.Getenv("FOIAGATE_EXECUTION_MODE")),
		ShutdownTimeout: defaultShutdownTimeout,
	}

	if raw := strings.TrimSpace(os.Getenv("FOIAGATE_SHUTDOWN_TIMEOUT")); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			return Server{}, fmt.Errorf("FOIAGATE_SHUTDOWN_TIMEOUT: invalid duration %q", raw)
		}
		cfg.ShutdownTimeout = d
	}
	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
