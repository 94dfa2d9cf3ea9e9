package config

import (
	"errors"
	"testing"
	"time"
)

func TestGetEnvOrDefault(t *testing.T) {
	tests := []struct {
		name         string
		key          string
		defaultValue string
		envValue     string
		want         string
	}{
		{
			name:         "returns default when env not set",
			key:          "TEST_KEY_1",
			defaultValue: "default",
			envValue:     "",
			want:         "default",
		},
		{
			name:         "returns env value when set",
			key:          "TEST_KEY_2",
			defaultValue: "default",
			envValue:     "custom",
			want:         "custom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.envValue)

			if got := GetEnvOrDefault(tt.key, tt.defaultValue); got != tt.want {
				t.Errorf("GetEnvOrDefault() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseEnvDuration(t *testing.T) {
	tests := []struct {
		name     string
		envValue string
		want     time.Duration
	}{
		{"unset uses default", "", 5 * time.Second},
		{"valid duration", "250ms", 250 * time.Millisecond},
		{"garbage uses default", "soon", 5 * time.Second},
		{"negative uses default", "-1s", 5 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_DURATION", tt.envValue)

			if got := parseEnvDuration("TEST_DURATION", 5*time.Second); got != tt.want {
				t.Errorf("parseEnvDuration() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseEnvInt(t *testing.T) {
	t.Setenv("TEST_PORT", "9090")
	if got := parseEnvInt("TEST_PORT", 8080); got != 9090 {
		t.Errorf("parseEnvInt() = %d, want 9090", got)
	}

	t.Setenv("TEST_PORT", "ninety")
	if got := parseEnvInt("TEST_PORT", 8080); got != 8080 {
		t.Errorf("parseEnvInt() = %d, want 8080", got)
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name      string
		accountID string
		apiToken  string
		wantErr   bool
	}{
		{"both present", "acct", "token", false},
		{"account missing", "", "token", true},
		{"token missing", "acct", "", true},
		{"both missing", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("CF_ACCOUNT_ID", tt.accountID)
			t.Setenv("CF_API_TOKEN", tt.apiToken)
			t.Setenv("CF_API_BASE_URL", "")
			t.Setenv("PORT", "")
			t.Setenv("REDIS_URL", "")

			cfg, err := Load()
			if tt.wantErr {
				if !errors.Is(err, ErrConfigMissing) {
					t.Fatalf("Load() error = %v, want ErrConfigMissing", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Load() unexpected error: %v", err)
			}

			if cfg.Cloudflare.Model != Model {
				t.Errorf("Model = %q, want %q", cfg.Cloudflare.Model, Model)
			}
			if cfg.Server.Addr() != ":8080" {
				t.Errorf("Addr() = %q, want :8080", cfg.Server.Addr())
			}
			if cfg.Redis.Enabled() {
				t.Error("Redis should not be enabled without REDIS_URL")
			}
		})
	}
}

func TestLoadNamesMissingKeys(t *testing.T) {
	t.Setenv("CF_ACCOUNT_ID", "")
	t.Setenv("CF_API_TOKEN", "")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error")
	}
	want := "missing required configuration: set CF_ACCOUNT_ID and CF_API_TOKEN"
	if err.Error() != want {
		t.Errorf("error = %q, want %q", err.Error(), want)
	}
}

func TestRunURL(t *testing.T) {
	cfg := CloudflareConfig{
		BaseURL:   "https://api.cloudflare.com/client/v4/",
		AccountID: "abc123",
		Model:     Model,
	}

	want := "https://api.cloudflare.com/client/v4/accounts/abc123/ai/run/@cf/meta/llama-3-8b-instruct"
	if got := cfg.RunURL(); got != want {
		t.Errorf("RunURL() = %q, want %q", got, want)
	}
}
