package config

import (
	"os"
	"strconv"
)

type Config struct {
	APIPort  string
	LogLevel string
	AppEnv   string

	APIKeyMode      string
	AnthropicAPIKey string
	AnthropicURL    string

	ExtractionModel         string
	ExtractionFallbackModel string
	ExtractionResponseMode  string

	MaxFileSizeBytes     int64
	MaxFiles             int
	MaxFilesMatch        int
	MaxFilesBallWork     int
	MaxFilesSpeedAgility int

	CORSAllowedOrigins string
	StaticDir          string

	APIRateLimitRPS   int
	APIRateLimitBurst int
	APIMaxInFlight    int

	VisionTimeoutSeconds int
	VisionBreakerEnabled bool
}

func Load() Config {
	return Config{
		APIPort:  mustEnv("API_PORT", "8080"),
		LogLevel: mustEnv("LOG_LEVEL", "info"),
		AppEnv:   mustEnv("APP_ENV", "production"),

		APIKeyMode:      mustEnv("API_KEY_MODE", "user"),
		AnthropicAPIKey: mustEnv("ANTHROPIC_API_KEY", ""),
		AnthropicURL:    mustEnv("ANTHROPIC_BASE_URL", "https://api.anthropic.com"),

		ExtractionModel:         mustEnv("EXTRACTION_MODEL", "claude-3-5-sonnet-20241022"),
		ExtractionFallbackModel: mustEnv("EXTRACTION_FALLBACK_MODEL", "claude-3-haiku-20240307"),
		ExtractionResponseMode:  mustEnv("EXTRACTION_RESPONSE_MODE", "json"),

		MaxFileSizeBytes:     mustEnvInt64("MAX_FILE_SIZE_BYTES", 10*1024*1024),
		MaxFiles:             mustEnvInt("MAX_FILES", 20),
		MaxFilesMatch:        mustEnvInt("MAX_FILES_MATCH", 0),
		MaxFilesBallWork:     mustEnvInt("MAX_FILES_BALL_WORK", 8),
		MaxFilesSpeedAgility: mustEnvInt("MAX_FILES_SPEED_AGILITY", 2),

		CORSAllowedOrigins: mustEnv("CORS_ALLOWED_ORIGINS", ""),
		StaticDir:          mustEnv("STATIC_DIR", ""),

		APIRateLimitRPS:   mustEnvInt("API_RATE_LIMIT_RPS", 0),
		APIRateLimitBurst: mustEnvInt("API_RATE_LIMIT_BURST", 0),
		APIMaxInFlight:    mustEnvInt("API_MAX_IN_FLIGHT", 0),

		VisionTimeoutSeconds: mustEnvInt("VISION_TIMEOUT_SECONDS", 120),
		VisionBreakerEnabled: mustEnvBool("VISION_BREAKER_ENABLED", false),
	}
}

// Development reports whether internal error detail may be returned to
// callers.
func (c Config) Development() bool {
	return c.AppEnv == "development"
}

func mustEnv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func mustEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func mustEnvInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fallback
	}
	return n
}

func mustEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}
