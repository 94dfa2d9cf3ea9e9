package config

import (
	"fmt"
	"strings"
	"time"
)

// Model is the Workers AI model every conversation is relayed to.
const Model = "@cf/meta/llama-3-8b-instruct"

const (
	defaultCloudflareBaseURL = "https://api.cloudflare.com/client/v4"
	defaultUpstreamTimeout   = 60 * time.Second
)

// CloudflareConfig holds the upstream inference settings. It is fixed for the
// lifetime of the process.
type CloudflareConfig struct {
	BaseURL   string
	AccountID string
	APIToken  string
	Model     string
	Timeout   time.Duration
}

// RunURL returns the Workers AI run endpoint for the configured account and model.
func (c CloudflareConfig) RunURL() string {
	return fmt.Sprintf("%s/accounts/%s/ai/run/%s", strings.TrimSuffix(c.BaseURL, "/"), c.AccountID, c.Model)
}

func GetCloudflareAccountID() string {
	return GetEnvOrDefault("CF_ACCOUNT_ID", "")
}

func GetCloudflareAPIToken() string {
	return GetEnvOrDefault("CF_API_TOKEN", "")
}

func GetCloudflareBaseURL() string {
	return GetEnvOrDefault("CF_API_BASE_URL", defaultCloudflareBaseURL)
}

func GetUpstreamTimeout() time.Duration {
	return parseEnvDuration("UPSTREAM_TIMEOUT", defaultUpstreamTimeout)
}
