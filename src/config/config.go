package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	Port               string
	DatabasePath       string
	LogLevel           string
	MaxUploadSizeBytes int64

	// StrictCodeMapping drops rows whose product code has no mapping instead
	// of falling back to the raw code. Uploads may override it per request.
	StrictCodeMapping bool

	// SeedDataPath points to a YAML file with code maps and province aliases
	// loaded into the database at startup. Empty disables seeding.
	SeedDataPath string

	CacheExpiry    time.Duration
	AllowedOrigins []string

	// Per-client request budget of the HTTP API.
	RateLimitRPS   int64
	RateLimitBurst int64
}

var Cfg *AppConfig

func LoadConfig() {
	errEnv := godotenv.Load()
	if errEnv != nil {
		log.Println("Info: No .env file found or error loading .env file. Relying on OS environment variables and defaults. Error (if any):", errEnv)
	} else {
		log.Println(".env file loaded successfully.")
	}

	log.Println("Loading application configuration...")
	Cfg = Load()

	log.Printf("Configuration loaded: Port=%s, LogLevel=%s, DBPath=%s, StrictCodeMapping=%t",
		Cfg.Port, Cfg.LogLevel, Cfg.DatabasePath, Cfg.StrictCodeMapping)
}

// Load builds an AppConfig from the current environment without touching .env files.
func Load() *AppConfig {
	return &AppConfig{
		Port:               getEnv("PORT", "8080"),
		DatabasePath:       getEnv("DATABASE_PATH", "./salesfolio.db"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		MaxUploadSizeBytes: getEnvAsInt64("MAX_UPLOAD_SIZE_BYTES", 20*1024*1024),
		StrictCodeMapping:  getEnvAsBool("STRICT_CODE_MAPPING", false),
		SeedDataPath:       getEnv("SEED_DATA_PATH", ""),
		CacheExpiry:        getEnvAsDuration("CACHE_EXPIRY", 15*time.Minute),
		AllowedOrigins:     splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),
		RateLimitRPS:       getEnvAsInt64("RATE_LIMIT_RPS", 10),
		RateLimitBurst:     getEnvAsInt64("RATE_LIMIT_BURST", 30),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	log.Printf("Environment variable %s not set, using default: %s", key, fallback)
	return fallback
}

func getEnvAsInt64(key string, fallback int64) int64 {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	log.Printf("Invalid integer value for %s ('%s'), using default: %d", key, valueStr, fallback)
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	valueStr := strings.TrimSpace(getEnv(key, ""))
	if valueStr == "" {
		return fallback
	}
	switch strings.ToLower(valueStr) {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	}
	log.Printf("Invalid boolean value for %s ('%s'), using default: %t", key, valueStr, fallback)
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	log.Printf("Invalid duration value for %s ('%s'), using default: %s", key, valueStr, fallback.String())
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
