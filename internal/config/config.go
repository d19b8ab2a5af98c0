package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/bimakw/uniswap-subgraph/internal/infrastructure/subgraph"
)

// Config holds all app configuration
type Config struct {
	// Server
	HTTPPort string

	// Subgraph
	SubgraphURL     string
	SubgraphAPIKey  string
	SubgraphTimeout time.Duration

	// Optional tokens.json with symbol -> address mappings
	TokensFile string

	// Logging
	LogMode string
	Debug   bool
}

// Load reads configuration from the environment. Values in a .env file at
// envFile are loaded first without overriding variables already set; a
// missing file is not an error.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	return &Config{
		HTTPPort: getEnv("PORT", "8080"),

		SubgraphURL:     getEnv("SUBGRAPH_URL", subgraph.DefaultEndpoint),
		SubgraphAPIKey:  getEnv("SUBGRAPH_API_KEY", ""),
		SubgraphTimeout: getEnvAsDuration("SUBGRAPH_TIMEOUT", 30*time.Second),

		TokensFile: getEnv("TOKENS_FILE", ""),

		LogMode: getEnv("LOG_MODE", "development"),
		Debug:   getEnvAsBool("DEBUG", false),
	}, nil
}

// SubgraphOptions converts the subgraph settings to client options
func (c *Config) SubgraphOptions() []subgraph.Option {
	opts := []subgraph.Option{
		subgraph.WithEndpoint(c.SubgraphURL),
		subgraph.WithTimeout(c.SubgraphTimeout),
	}
	if c.SubgraphAPIKey != "" {
		opts = append(opts, subgraph.WithHeader("Authorization", "Bearer "+c.SubgraphAPIKey))
	}
	return opts
}

// Helper functions for parsing environment variables
func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsBool(key string, defaultVal bool) bool {
	valStr := getEnv(key, "")
	if val, err := strconv.ParseBool(valStr); err == nil {
		return val
	}
	return defaultVal
}

func getEnvAsDuration(key string, defaultVal time.Duration) time.Duration {
	valStr := getEnv(key, "")
	if val, err := time.ParseDuration(valStr); err == nil && val > 0 {
		return val
	}
	return defaultVal
}
