package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds environment-driven settings for the server.
type Config struct {
	Mode            string
	MongoURI        string
	MongoDatabase   string
	RedisAddr       string
	HTTPPort        string
	JWTSecret       string
	EvaluatorSecret string
}

// Load reads configuration from the environment, with a best-effort .env load
// first.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Mode:            getEnv("APP_MODE", "dev"),
		MongoURI:        getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase:   getEnv("MONGO_DATABASE", "beetacademy"),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		JWTSecret:       getEnv("JWT_SECRET", "super-secret-key-change-in-production"),
		EvaluatorSecret: getEnv("EVALUATOR_SECRET", ""),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
