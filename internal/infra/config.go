package infra

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Supported provider identifiers.
const (
	ProviderOpenAI = "openai"
	ProviderFal    = "fal"
)

// Config represents application configuration loaded from environment
// variables. It is constructed once at startup and passed by reference into
// every component that needs it; nothing reads the environment afterwards.
type Config struct {
	AppEnv   string
	Port     string
	Provider string

	OpenAIAPIKey  string
	OpenAIBaseURL string
	OpenAITimeout time.Duration

	FalAPIKey   string
	FalBaseURL  string
	FalEndpoint string

	UploadDir           string
	MaxUploadBytes      int64
	RestrictUploadTypes bool
	MIMESource          string

	// MaxOutboundBytes caps the image payload sent upstream. Zero means no
	// cap; encoded images are expected to be large.
	MaxOutboundBytes int64

	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration
}

// LoadConfig loads configuration from environment variables and applies
// defaults where needed. Provider API keys are not validated here; a missing
// key fails at the provider, not locally.
func LoadConfig() (*Config, error) {
	provider := getEnv("IMAGE_PROVIDER", ProviderOpenAI)
	cfg := &Config{
		AppEnv:              getEnv("APP_ENV", "development"),
		Port:                getEnv("PORT", "3000"),
		Provider:            provider,
		OpenAIAPIKey:        os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL:       getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		OpenAITimeout:       time.Second * time.Duration(getEnvInt("OPENAI_TIMEOUT_SECONDS", 120)),
		FalAPIKey:           os.Getenv("FAL_API_KEY"),
		FalBaseURL:          getEnv("FAL_BASE_URL", "https://fal.run"),
		FalEndpoint:         getEnv("FAL_ENDPOINT", "fal-ai/flux/dev/image-to-image"),
		UploadDir:           getEnv("UPLOAD_DIR", "uploads"),
		MaxUploadBytes:      int64(getEnvInt("MAX_UPLOAD_BYTES", 10<<20)),
		RestrictUploadTypes: getEnvBool("RESTRICT_UPLOAD_TYPES", provider == ProviderFal),
		MIMESource:          getEnv("MIME_SOURCE", "extension"),
		MaxOutboundBytes:    int64(getEnvInt("MAX_OUTBOUND_BYTES", 0)),
		HTTPReadTimeout:     time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 30)),
		HTTPWriteTimeout:    time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", 150)),
		HTTPIdleTimeout:     time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),
	}

	switch cfg.Provider {
	case ProviderOpenAI, ProviderFal:
	default:
		return nil, fmt.Errorf("unsupported IMAGE_PROVIDER %q", cfg.Provider)
	}

	if cfg.MaxUploadBytes <= 0 {
		return nil, fmt.Errorf("MAX_UPLOAD_BYTES must be positive, got %d", cfg.MaxUploadBytes)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
