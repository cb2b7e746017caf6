package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultModel             = "gemini-2.5-flash"
	DefaultLiveEmotionBudget = 4 * time.Second
)

type Config struct {
	Env string

	// Gemini AI
	GeminiAPIKey         string
	GeminiModel          string
	GeminiRequestsPerMin int
	GeminiConcurrentReqs int

	// Live emotion scan
	LiveEmotionTimeout time.Duration
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	cfg := &Config{
		Env:                  getEnvOrDefault("ENV", "development"),
		GeminiAPIKey:         firstEnv("GEMINI_API_KEY", "VITE_GEMINI_API_KEY", "API_KEY"),
		GeminiModel:          getEnvOrDefault("GEMINI_MODEL", DefaultModel),
		GeminiRequestsPerMin: getEnvAsIntOrDefault("GEMINI_REQUESTS_PER_MINUTE", 60),
		GeminiConcurrentReqs: getEnvAsIntOrDefault("GEMINI_CONCURRENT_REQUESTS", 5),
		LiveEmotionTimeout:   getEnvAsMillisOrDefault("LIVE_EMOTION_TIMEOUT_MS", DefaultLiveEmotionBudget),
	}

	return cfg
}

// HasCredential reports whether a Gemini key was configured. Without one the
// app runs against the local stand-in transport.
func (c *Config) HasCredential() bool {
	return c.GeminiAPIKey != ""
}

func firstEnv(keys ...string) string {
	for _, key := range keys {
		if val := os.Getenv(key); val != "" {
			return val
		}
	}
	return ""
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsIntOrDefault(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}

func getEnvAsMillisOrDefault(key string, defaultVal time.Duration) time.Duration {
	ms := getEnvAsIntOrDefault(key, 0)
	if ms <= 0 {
		return defaultVal
	}
	return time.Duration(ms) * time.Millisecond
}
