package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	DatabaseURL string

	// Inference runtime. An empty API key means the runtime is not
	// available and the service runs on the heuristic path only.
	OpenRouterAPIKey   string
	OpenRouterBase     string
	OpenRouterModel    string
	OpenRouterAppTitle string
	OpenRouterReferer  string

	LogJSON bool
	Debug   bool
}

// Load reads environment variables, optionally from a .env file if present.
func Load() Config {
	// Try to load .env if it exists; ignore error if file not found
	_ = godotenv.Load()

	return Config{
		Port:               getEnv("PORT", "8080"),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		OpenRouterAPIKey:   os.Getenv("OPENROUTER_API_KEY"),
		OpenRouterBase:     os.Getenv("OPENROUTER_BASE_URL"),
		OpenRouterModel:    getEnv("OPENROUTER_MODEL", "meta-llama/llama-3.2-3b-instruct"),
		OpenRouterAppTitle: getEnv("OPENROUTER_APP_TITLE", "trilha"),
		OpenRouterReferer:  os.Getenv("OPENROUTER_REFERER"),
		LogJSON:            getEnvBool("LOG_JSON", false),
		Debug:              getEnvBool("DEBUG", false),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}
