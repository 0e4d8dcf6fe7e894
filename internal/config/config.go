package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds process-level configuration read from the environment.
type Config struct {
	MongoURI  string
	RedisAddr string
	Port      string

	// PublicURL is the externally reachable base URL handed to
	// candidates together with their join token.
	PublicURL string

	// BackendHost is the base URL the evaluation sink posts scored
	// answers to. Empty disables persistence (demo mode).
	BackendHost string

	JWTSecret string

	// MaxQuestions bounds the number of primary questions per session.
	MaxQuestions int

	// SessionTTL bounds how long session metadata stays resolvable
	// after creation.
	SessionTTL time.Duration
}

func Load() *Config {
	return &Config{
		MongoURI:     getEnv("MONGO_URI", "mongodb://localhost:27017"),
		RedisAddr:    getEnv("REDIS_URI", "localhost:6379"),
		Port:         getEnv("PORT", "8080"),
		PublicURL:    getEnv("PUBLIC_URL", "http://localhost:8080"),
		BackendHost:  getEnv("BACKEND_HOST", ""),
		JWTSecret:    getEnv("JWT_SECRET", "super-secret-key-change-in-production"),
		MaxQuestions: getEnvAsInt("MAX_QUESTIONS", 6),
		SessionTTL:   getEnvAsDuration("SESSION_TTL", 2*time.Hour),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return defaultVal
}

func getEnvAsDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}
