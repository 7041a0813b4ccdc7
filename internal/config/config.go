package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kapu/senate-directory-go/internal/constants"
)

type Config struct {
	Server  ServerConfig
	Dataset DatasetConfig
	Photo   PhotoConfig
	Redis   RedisConfig
	Logging LoggingConfig
}

type ServerConfig struct {
	Addr        string
	CORSOrigins []string
}

type DatasetConfig struct {
	URL     string
	File    string
	Timeout time.Duration
	Watch   bool
}

// UsesFile reports whether the dataset is read from the local filesystem.
func (d DatasetConfig) UsesFile() bool {
	return d.File != ""
}

// UsesBundled reports whether neither a file nor a URL was configured, in
// which case the sample dataset compiled into the binary is served.
func (d DatasetConfig) UsesBundled() bool {
	return d.File == "" && d.URL == ""
}

type PhotoConfig struct {
	BaseURL string
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// Enabled reports whether a Redis cache was configured.
func (r RedisConfig) Enabled() bool {
	return r.Host != ""
}

type LoggingConfig struct {
	Level string
	File  string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Addr:        getEnv("HTTP_ADDR", ":8080"),
			CORSOrigins: parseCommaSeparated(getEnv("CORS_ORIGINS", "*")),
		},
		Dataset: DatasetConfig{
			URL:     getEnv("DATASET_URL", ""),
			File:    getEnv("DATASET_FILE", ""),
			Timeout: time.Duration(getEnvInt("DATASET_TIMEOUT_SECONDS", int(constants.DatasetConfig.FetchTimeout/time.Second))) * time.Second,
			Watch:   getEnvBool("WATCH_DATASET", true),
		},
		Photo: PhotoConfig{
			BaseURL: getEnv("PHOTO_BASE_URL", constants.PhotoConfig.BaseURL),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", ""),
			Port:     getEnvInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
			File:  getEnv("LOG_FILE", ""),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("HTTP_ADDR is required")
	}
	if !c.Dataset.UsesFile() && !c.Dataset.UsesBundled() {
		u, err := url.Parse(c.Dataset.URL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("DATASET_URL must be an absolute http(s) URL: %q", c.Dataset.URL)
		}
	}
	if c.Dataset.Timeout <= 0 {
		return fmt.Errorf("DATASET_TIMEOUT_SECONDS must be positive")
	}
	if c.Photo.BaseURL == "" {
		return fmt.Errorf("PHOTO_BASE_URL is required")
	}
	if c.Redis.Enabled() && (c.Redis.Port <= 0 || c.Redis.Port > 65535) {
		return fmt.Errorf("REDIS_PORT out of range: %d", c.Redis.Port)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func parseCommaSeparated(value string) []string {
	if value == "" {
		return []string{}
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
