package config

import (
	"fmt"
	"os"
	"time"
)

type Config struct {
	BackendBaseURL string
	JWTSecret      string
	ServerPort     string
	ClinicTimezone string
	RedisURL       string
	BackendTimeout time.Duration
	Environment    string
}

func Load() *Config {
	return &Config{
		BackendBaseURL: getEnv("BACKEND_BASE_URL", "http://localhost:3000"),
		JWTSecret:      getEnv("JWT_SECRET", "changeme"),
		ServerPort:     getEnv("SERVER_PORT", "8080"),
		ClinicTimezone: getEnv("CLINIC_TIMEZONE", ""),
		RedisURL:       getEnv("REDIS_URL", ""),
		BackendTimeout: getDuration("BACKEND_TIMEOUT", 15*time.Second),
		Environment:    getEnv("APP_ENV", "development"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%s", c.ServerPort)
}
