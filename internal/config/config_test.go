package config

import "testing"

func TestInitConfig_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "GIN_MODE", "DATABASE_URL", "REDIS_URL", "LOG_LEVEL", "RATE_LIMIT_MINUTES", "MINT_OUTPUT_DIR"} {
		t.Setenv(key, "")
	}

	if err := InitConfig(); err != nil {
		t.Fatalf("InitConfig: %v", err)
	}

	if AppConfig.Port != "3001" {
		t.Errorf("default port = %q, want 3001", AppConfig.Port)
	}
	if AppConfig.LogLevel != "info" {
		t.Errorf("default log level = %q, want info", AppConfig.LogLevel)
	}
	if AppConfig.RateLimitMinutes != 1 {
		t.Errorf("default rate limit minutes = %d, want 1", AppConfig.RateLimitMinutes)
	}
	if AppConfig.MintOutputDir != "output" {
		t.Errorf("default mint output dir = %q, want output", AppConfig.MintOutputDir)
	}
	if AppConfig.RedisURL != "" {
		t.Errorf("redis URL should default to empty, got %q", AppConfig.RedisURL)
	}
}

func TestInitConfig_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("RATE_LIMIT_MINUTES", "5")

	if err := InitConfig(); err != nil {
		t.Fatalf("InitConfig: %v", err)
	}

	if AppConfig.Port != "9090" {
		t.Errorf("port = %q, want 9090", AppConfig.Port)
	}
	if AppConfig.LogLevel != "debug" {
		t.Errorf("log level = %q, want debug", AppConfig.LogLevel)
	}
	if AppConfig.RateLimitMinutes != 5 {
		t.Errorf("rate limit minutes = %d, want 5", AppConfig.RateLimitMinutes)
	}
}

func TestInitConfig_BadIntFallsBack(t *testing.T) {
	t.Setenv("RATE_LIMIT_MINUTES", "not-a-number")

	if err := InitConfig(); err != nil {
		t.Fatalf("InitConfig: %v", err)
	}
	if AppConfig.RateLimitMinutes != 1 {
		t.Errorf("rate limit minutes = %d, want default 1", AppConfig.RateLimitMinutes)
	}
}
