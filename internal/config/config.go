package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App        AppConfig
	Database   DatabaseConfig
	Router     RouterConfig
	Classifier ClassifierConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	ClientURL          string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
}

type DatabaseConfig struct {
	Connection string
}

// RouterConfig holds the deterministic routing thresholds. Defaults match
// the tuned production values; override per environment only when retuning.
type RouterConfig struct {
	FloorScore      float64
	ConfidenceScore float64
	MinGap          float64
	WeakScoreMin    float64
	TermTTLHours    int
}

type ClassifierConfig struct {
	Enabled   bool
	BaseURL   string
	Model     string
	TimeoutMs int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			ClientURL:          getEnv("CLIENT_URL", "http://localhost:5173"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Router: RouterConfig{
			FloorScore:      getEnvAsFloat("ROUTER_FLOOR_SCORE", 1),
			ConfidenceScore: getEnvAsFloat("ROUTER_CONFIDENCE_SCORE", 3),
			MinGap:          getEnvAsFloat("ROUTER_MIN_GAP", 1),
			WeakScoreMin:    getEnvAsFloat("ROUTER_WEAK_SCORE_MIN", 2),
			TermTTLHours:    getEnvAsInt("ROUTER_TERM_TTL_HOURS", 168),
		},
		Classifier: ClassifierConfig{
			Enabled:   getEnv("CLASSIFIER_ENABLED", "true") == "true",
			BaseURL:   getEnv("CLASSIFIER_BASE_URL", "http://localhost:11434"),
			Model:     getEnv("CLASSIFIER_MODEL", "llama3"),
			TimeoutMs: getEnvAsInt("CLASSIFIER_TIMEOUT_MS", 2500),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}
