package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.APIPort != "8080" {
		t.Fatalf("unexpected port: %q", cfg.APIPort)
	}
	if cfg.APIKeyMode != "user" {
		t.Fatalf("unexpected key mode: %q", cfg.APIKeyMode)
	}
	if cfg.ExtractionResponseMode != "json" {
		t.Fatalf("unexpected response mode: %q", cfg.ExtractionResponseMode)
	}
	if cfg.MaxFileSizeBytes != 10*1024*1024 {
		t.Fatalf("unexpected file size limit: %d", cfg.MaxFileSizeBytes)
	}
	if cfg.MaxFiles != 20 || cfg.MaxFilesBallWork != 8 || cfg.MaxFilesSpeedAgility != 2 {
		t.Fatalf("unexpected file caps: %d/%d/%d", cfg.MaxFiles, cfg.MaxFilesBallWork, cfg.MaxFilesSpeedAgility)
	}
	if cfg.VisionTimeoutSeconds != 120 {
		t.Fatalf("unexpected vision timeout: %d", cfg.VisionTimeoutSeconds)
	}
	if cfg.VisionBreakerEnabled {
		t.Fatalf("breaker should be off by default")
	}
	if cfg.Development() {
		t.Fatalf("default env must not be development")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("API_PORT", "9090")
	t.Setenv("APP_ENV", "development")
	t.Setenv("API_KEY_MODE", "server")
	t.Setenv("ANTHROPIC_API_KEY", "sk-test")
	t.Setenv("MAX_FILE_SIZE_BYTES", "1048576")
	t.Setenv("MAX_FILES_SPEED_AGILITY", "4")
	t.Setenv("VISION_BREAKER_ENABLED", "true")

	cfg := Load()

	if cfg.APIPort != "9090" {
		t.Fatalf("unexpected port: %q", cfg.APIPort)
	}
	if !cfg.Development() {
		t.Fatalf("expected development mode")
	}
	if cfg.APIKeyMode != "server" || cfg.AnthropicAPIKey != "sk-test" {
		t.Fatalf("credential config not picked up")
	}
	if cfg.MaxFileSizeBytes != 1048576 {
		t.Fatalf("unexpected file size limit: %d", cfg.MaxFileSizeBytes)
	}
	if cfg.MaxFilesSpeedAgility != 4 {
		t.Fatalf("unexpected speed & agility cap: %d", cfg.MaxFilesSpeedAgility)
	}
	if !cfg.VisionBreakerEnabled {
		t.Fatalf("expected breaker enabled")
	}
}

func TestLoadIgnoresUnparsableValues(t *testing.T) {
	t.Setenv("MAX_FILES", "not-a-number")
	t.Setenv("VISION_BREAKER_ENABLED", "definitely")

	cfg := Load()

	if cfg.MaxFiles != 20 {
		t.Fatalf("unparsable int should fall back, got %d", cfg.MaxFiles)
	}
	if cfg.VisionBreakerEnabled {
		t.Fatalf("unparsable bool should fall back")
	}
}
