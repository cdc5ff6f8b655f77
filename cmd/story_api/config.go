package main

import (
	"log/slog"
	"os"

	"github.com/DjordjeVuckovic/story-hunter/internal/server"
	"github.com/DjordjeVuckovic/story-hunter/internal/storage/factory"
)

const dotEnvPath = "cmd/story_api/.env"

type AppConfig struct {
	ENV string
}

func NewAppConfig() *AppConfig {
	return &AppConfig{
		ENV: os.Getenv("ENV"),
	}
}

type StoryAPIConfig struct {
	Server        *server.Config
	StorageConfig *factory.StorageConfig
}

func (as *AppConfig) Load() (*StoryAPIConfig, error) {
	serverCfg, err := server.LoadConfig(as.ENV, dotEnvPath)
	if err != nil {
		slog.Error("Failed to load server configuration", "error", err)
		return nil, err
	}

	storageCfg, err := factory.LoadEnv()
	if err != nil {
		slog.Error("Failed to load storage configuration from environment", "error", err)
		return nil, err
	}

	return &StoryAPIConfig{
		Server:        serverCfg,
		StorageConfig: storageCfg,
	}, nil
}
