package config

import (
	"github.com/rs/zerolog/log"
)

type RedisConfig struct {
	URL      string
	Password string
}

// Enabled reports whether a Redis conversation store was requested.
func (c RedisConfig) Enabled() bool {
	return c.URL != ""
}

func GetRedisURL() string {
	value := GetEnvOrDefault("REDIS_URL", "")
	if value == "" {
		log.Debug().Msg("REDIS_URL not set, conversations will be kept in memory")
	}
	return value
}

func GetRedisPassword() string {
	return GetEnvOrDefault("REDIS_PASSWORD", "")
}
