package config

import (
	"fmt"
	"time"
)

const (
	defaultPort            = 8080
	defaultShutdownTimeout = 10 * time.Second
)

type ServerConfig struct {
	Port            int
	ShutdownTimeout time.Duration
}

// Addr returns the listen address for the HTTP server.
func (c ServerConfig) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func GetPort() int {
	return parseEnvInt("PORT", defaultPort)
}

func GetShutdownTimeout() time.Duration {
	return parseEnvDuration("SHUTDOWN_TIMEOUT", defaultShutdownTimeout)
}

func GetLogLevel() string {
	return GetEnvOrDefault("LOG_LEVEL", "info")
}

func GetLogFormat() string {
	return GetEnvOrDefault("LOG_FORMAT", "json")
}
