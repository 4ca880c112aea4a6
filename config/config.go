package config

import (
	"errors"
	"os"
)

// Config collects every process-level setting in one place so nothing reads
// the environment past startup.
type Config struct {
	Port        string
	PostgresURI string
	RedisAddr   string // optional; empty disables the analytics cache

	PromptLocale string

	GatewayBaseURL string
	GatewayToken   string
	GatewayModel   string // empty selects the provider default
}

func Load() (*Config, error) {
	cfg := &Config{
		Port:           os.Getenv("PORT"),
		PostgresURI:    os.Getenv("POSTGRES_URI"),
		RedisAddr:      redisAddrFromEnv(),
		PromptLocale:   os.Getenv("PROMPT_LOCALE"),
		GatewayBaseURL: os.Getenv("CF_API_BASE_URL"),
		GatewayToken:   os.Getenv("CF_API_TOKEN"),
		GatewayModel:   os.Getenv("CF_MODEL"),
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.PostgresURI == "" {
		return nil, errors.New("POSTGRES_URI environment variable is not set")
	}
	if cfg.GatewayBaseURL == "" {
		return nil, errors.New("CF_API_BASE_URL environment variable is not set")
	}
	if cfg.GatewayToken == "" {
		return nil, errors.New("CF_API_TOKEN environment variable is not set")
	}
	return cfg, nil
}

func redisAddrFromEnv() string {
	for _, key := range []string{"REDIS_ADDR", "REDIS_URI", "REDIS_URL"} {
		if v := os.Getenv(key); v != "" {
			return v
		}
	}
	return ""
}
