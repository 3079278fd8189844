package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Config captures everything the console reads from its environment.
type Config struct {
	// APIBaseURL is the single externally supplied address of the remote API.
	APIBaseURL string
	// HTTPTimeout bounds every outgoing request.
	HTTPTimeout time.Duration
	// SessionBackend selects where the credential lives: "file" or "redis".
	SessionBackend string
	// SessionFile is the path of the file-backed credential store.
	SessionFile string
	// RedisURL configures the redis-backed credential store when set.
	RedisURL string
	// MetricsAddr exposes Prometheus metrics when non-empty.
	MetricsAddr string
}

// FromEnv builds a Config from environment variables so main stays lean.
func FromEnv() Config {
	base := os.Getenv("BACKOFFICE_API_BASE_URL")
	if base == "" {
		base = "http://localhost:5000/api"
	}

	timeout := 15 * time.Second
	if v := os.Getenv("BACKOFFICE_HTTP_TIMEOUT_SECONDS"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			timeout = time.Duration(secs) * time.Second
		}
	}

	backend := os.Getenv("BACKOFFICE_SESSION_BACKEND")
	if backend == "" {
		backend = "file"
	}

	sessionFile := os.Getenv("BACKOFFICE_SESSION_FILE")
	if sessionFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		sessionFile = filepath.Join(home, ".backoffice", "session.json")
	}

	return Config{
		APIBaseURL:     base,
		HTTPTimeout:    timeout,
		SessionBackend: backend,
		SessionFile:    sessionFile,
		RedisURL:       os.Getenv("BACKOFFICE_REDIS_URL"),
		MetricsAddr:    os.Getenv("BACKOFFICE_METRICS_ADDR"),
	}
}
