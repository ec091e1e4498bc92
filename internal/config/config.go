package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is the full runtime configuration of the web client. The backend
// origin is deliberately env-driven rather than compiled in.
type Config struct {
	Addr          string
	APIBaseURL    string
	APITimeout    time.Duration
	SessionSecret string
	ReadTimeout   time.Duration
	WriteTimeout  time.Duration
	MaxUploadSize int64
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Addr:          getEnv("ADDR", ":3000"),
		APIBaseURL:    strings.TrimRight(getEnv("API_BASE_URL", "http://localhost:5000"), "/"),
		APITimeout:    getDuration("API_TIMEOUT", 8*time.Second),
		SessionSecret: strings.TrimSpace(os.Getenv("SESSION_SECRET")),
		ReadTimeout:   getDuration("SERVER_READ_TIMEOUT", 5*time.Second),
		WriteTimeout:  getDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
		MaxUploadSize: getInt64("MAX_UPLOAD_SIZE", 20<<20),
	}

	if cfg.SessionSecret == "" {
		return nil, errors.New("SESSION_SECRET is required (run `attendweb setup`)")
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func getDuration(key string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func getInt64(key string, fallback int64) int64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
