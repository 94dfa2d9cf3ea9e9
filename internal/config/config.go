package config

import (
	"errors"
	"fmt"
	"strings"
)

// ErrConfigMissing is returned by Load when required settings are absent.
var ErrConfigMissing = errors.New("missing required configuration")

// Config is read once at startup and passed to the services that need it.
type Config struct {
	Cloudflare CloudflareConfig
	Redis      RedisConfig
	Server     ServerConfig
}

// Load reads the configuration from the environment. The Cloudflare account
// identifier and API token are required.
func Load() (*Config, error) {
	cfg := &Config{
		Cloudflare: CloudflareConfig{
			BaseURL:   GetCloudflareBaseURL(),
			AccountID: GetCloudflareAccountID(),
			APIToken:  GetCloudflareAPIToken(),
			Model:     Model,
			Timeout:   GetUpstreamTimeout(),
		},
		Redis: RedisConfig{
			URL:      GetRedisURL(),
			Password: GetRedisPassword(),
		},
		Server: ServerConfig{
			Port:            GetPort(),
			ShutdownTimeout: GetShutdownTimeout(),
		},
	}

	var missing []string
	if cfg.Cloudflare.AccountID == "" {
		missing = append(missing, "CF_ACCOUNT_ID")
	}
	if cfg.Cloudflare.APIToken == "" {
		missing = append(missing, "CF_API_TOKEN")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: set %s", ErrConfigMissing, strings.Join(missing, " and "))
	}

	return cfg, nil
}
