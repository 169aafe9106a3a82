package main

import (
	"log/slog"
	"os"

	"github.com/newskeeper/newskeeper/internal/config"
	"github.com/newskeeper/newskeeper/pkg/config/env"
)

type AppConfig struct {
	ENV string
}

func NewAppConfig() *AppConfig {
	return &AppConfig{
		ENV: os.Getenv("ENV"),
	}
}

func (as *AppConfig) Load() (*config.Config, error) {
	err := env.LoadDotEnv(as.ENV, "cmd/news_api/.env")
	if err != nil {
		slog.Info("Failed to load .env, continuing with existing environment variables", "error", err)
	}

	cfg, err := config.LoadFile(os.Getenv("CONFIG_PATH"))
	if err != nil {
		slog.Error("Failed to load app configuration", "error", err)
		return nil, err
	}

	return cfg, nil
}
