package config

import (
	"os"
	"strconv"
	"time"

	"github.com/codetime-dev/codetime/internal/models"
)

// Config holds the server configuration, loaded from the environment.
type Config struct {
	Port     string
	LogLevel string
	CacheTTL time.Duration
	GitHub   GitHubConfig
	Stats    models.StatsOptions
}

// GitHubConfig holds GitHub client configuration.
type GitHubConfig struct {
	Token          string
	APIBaseURL     string
	MaxRetries     int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
}

// Load reads configuration from environment variables, applying documented
// defaults. An unset GITHUB_TOKEN yields an unauthenticated client.
func Load() (*Config, error) {
	cacheTTL, err := getEnvInt("CACHE_TTL_MINUTES", 10)
	if err != nil {
		return nil, err
	}
	timeout, err := getEnvInt("SESSION_TIMEOUT_MINUTES", models.DefaultSessionTimeoutMinutes)
	if err != nil {
		return nil, err
	}
	bonus, err := getEnvInt("FIRST_COMMIT_BONUS_MINUTES", models.DefaultFirstCommitBonusMinutes)
	if err != nil {
		return nil, err
	}

	return &Config{
		Port:     getEnv("PORT", "8080"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		CacheTTL: time.Duration(cacheTTL) * time.Minute,
		GitHub: GitHubConfig{
			Token:          getEnv("GITHUB_TOKEN", ""),
			APIBaseURL:     getEnv("GITHUB_API_URL", "https://api.github.com"),
			MaxRetries:     3,
			InitialBackoff: time.Second,
			MaxBackoff:     time.Minute,
		},
		Stats: models.StatsOptions{
			SessionTimeoutMinutes:   timeout,
			FirstCommitBonusMinutes: bonus,
			Timezone:                getEnv("TIMEZONE", models.DefaultTimezone),
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	return strconv.Atoi(value)
}
