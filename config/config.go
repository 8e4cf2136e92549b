package config

import (
	"os"
	"strconv"
)

type Config struct {
	// Server configuration
	Port           string
	AllowedOrigins string

	// RAG backend configuration
	RAGBaseURL string
	RAGAPIKey  string

	// Podcast generator configuration
	PodcastURL    string
	PodcastAPIKey string

	// Rate limiting
	RateLimitPerMinute int
}

func Load() *Config {
	return &Config{
		Port:               getEnv("PORT", "8080"),
		AllowedOrigins:     getEnv("ALLOWED_ORIGINS", "*"),
		RAGBaseURL:         getEnv("RAG_BASE_URL", "http://localhost:9621"),
		RAGAPIKey:          getEnv("RAG_API_KEY", ""),
		PodcastURL:         getEnv("PODCAST_URL", ""),
		PodcastAPIKey:      getEnv("PODCAST_API_KEY", ""),
		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 60),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
