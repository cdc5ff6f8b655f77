package server

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/DjordjeVuckovic/story-hunter/pkg/config/env"
	"github.com/DjordjeVuckovic/story-hunter/pkg/utils"
)

const DefaultPort = "5000"

type Config struct {
	Port        string
	UseHttp2    bool
	CorsOrigins []string
	// RateLimitRPS is the per-client request rate; zero disables rate limiting.
	RateLimitRPS   float64
	RateLimitBurst int
}

func LoadConfig(envName, dotEnvPath string) (*Config, error) {
	err := env.LoadDotEnv(envName, dotEnvPath)
	if err != nil {
		slog.Info("Skipping .env ...", "error", err)
	}

	return configFromEnv()
}

func configFromEnv() (*Config, error) {
	useHttp2Str := os.Getenv("USE_HTTP2")
	useHttp2 := useHttp2Str == "true"

	port := os.Getenv("PORT")
	if port == "" {
		port = DefaultPort
	}

	if err := validatePort(port); err != nil {
		return nil, fmt.Errorf("invalid port: %w", err)
	}

	origins := utils.SplitList(os.Getenv("CORS_ORIGINS"), ",")
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	rps, burst, err := rateLimitFromEnv()
	if err != nil {
		return nil, err
	}

	return &Config{
		Port:           port,
		UseHttp2:       useHttp2,
		CorsOrigins:    origins,
		RateLimitRPS:   rps,
		RateLimitBurst: burst,
	}, nil
}

func rateLimitFromEnv() (float64, int, error) {
	var (
		rps   float64
		burst int
		err   error
	)

	if raw := os.Getenv("RATE_LIMIT_RPS"); raw != "" {
		rps, err = strconv.ParseFloat(raw, 64)
		if err != nil || rps < 0 {
			return 0, 0, fmt.Errorf("invalid RATE_LIMIT_RPS %q: expected a non-negative number", raw)
		}
	}
	if raw := os.Getenv("RATE_LIMIT_BURST"); raw != "" {
		burst, err = strconv.Atoi(raw)
		if err != nil || burst < 0 {
			return 0, 0, fmt.Errorf("invalid RATE_LIMIT_BURST %q: expected a non-negative integer", raw)
		}
	}

	return rps, burst, nil
}

func validatePort(port string) error {
	portNum, err := strconv.Atoi(port)

	if err != nil {
		return errors.New("port must be a number")
	}

	if portNum < 1 || portNum > 65535 {
		return errors.New("port must be between 1 and 65535")
	}

	return nil
}
