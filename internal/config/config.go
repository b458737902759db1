package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config aggregates the service configuration.
type Config struct {
	Server ServerConfig
	Market MarketConfig
	// IntentsFile optionally overrides the built-in intent table with
	// an intents.json-shaped file.
	IntentsFile string
}

// ServerConfig describes the HTTP listener.
type ServerConfig struct {
	Addr string
}

// MarketConfig describes the CoinGecko API access.
type MarketConfig struct {
	BaseURL        string
	TimeoutSeconds int
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	market, err := loadMarketConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		Server:      server,
		Market:      market,
		IntentsFile: strings.TrimSpace(os.Getenv("INTENTS_FILE")),
	}, nil
}

func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	if strings.Contains(port, ":") {
		// Allow passing ":8080" or "127.0.0.1:8080" directly.
		return ServerConfig{Addr: port}, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{Addr: ":" + port}, nil
}

func loadMarketConfig() (MarketConfig, error) {
	timeout, err := parseOptionalIntEnv("HTTP_TIMEOUT")
	if err != nil {
		return MarketConfig{}, err
	}
	timeoutSeconds := 10
	if timeout != nil {
		timeoutSeconds = *timeout
	}

	return MarketConfig{
		BaseURL:        getEnvOrDefault("COINGECKO_BASE_URL", "https://api.coingecko.com/api/v3"),
		TimeoutSeconds: timeoutSeconds,
	}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}
