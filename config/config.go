package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Drafts   DraftsConfig
	Upstream UpstreamConfig
	Firebase FirebaseConfig
	Media    MediaConfig
	App      AppConfig
}

type ServerConfig struct {
	Port string
}

type DatabaseConfig struct {
	DSN      string
	MaxConns int
	MinConns int
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// DraftsConfig tunes the autosave layer. QuietMS is the debounce quiet
// interval; TTLDays is how long an untouched draft survives in Redis.
type DraftsConfig struct {
	QuietMS int
	TTLDays int
}

type UpstreamConfig struct {
	BaseURL string
	APIKey  string
	// Requests per second allowed against the generation service.
	RateLimit float64
	Burst     int
}

type FirebaseConfig struct {
	CredentialsPath string
}

type MediaConfig struct {
	S3Bucket      string
	S3Region      string
	PublicBaseURL string
}

type AppConfig struct {
	Environment string
	LogLevel    string
	Version     string
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
		},
		Database: DatabaseConfig{
			DSN:      getEnv("DB_DSN", ""),
			MaxConns: getEnvAsInt("DB_MAX_CONNS", 10),
			MinConns: getEnvAsInt("DB_MIN_CONNS", 2),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Drafts: DraftsConfig{
			QuietMS: getEnvAsInt("DRAFT_QUIET_MS", 1000),
			TTLDays: getEnvAsInt("DRAFT_TTL_DAYS", 30),
		},
		Upstream: UpstreamConfig{
			BaseURL:   getEnv("GENERATION_URL", ""),
			APIKey:    getEnv("GENERATION_API_KEY", ""),
			RateLimit: getEnvAsFloat("GENERATION_RATE_LIMIT", 2),
			Burst:     getEnvAsInt("GENERATION_BURST", 4),
		},
		Firebase: FirebaseConfig{
			CredentialsPath: getEnv("FIREBASE_CREDENTIALS_PATH", ""),
		},
		Media: MediaConfig{
			S3Bucket:      getEnv("PORTRAIT_S3_BUCKET", ""),
			S3Region:      getEnv("PORTRAIT_S3_REGION", "us-east-1"),
			PublicBaseURL: getEnv("PORTRAIT_PUBLIC_URL", ""),
		},
		App: AppConfig{
			Environment: getEnv("APP_ENV", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if c.Database.DSN == "" {
		return fmt.Errorf("DB_DSN is required")
	}

	if c.Redis.Addr == "" {
		return fmt.Errorf("REDIS_ADDR is required")
	}

	if c.Drafts.QuietMS <= 0 {
		return fmt.Errorf("DRAFT_QUIET_MS must be positive")
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Printf("Warning: Invalid number for %s, using default: %v", key, defaultValue)
		return defaultValue
	}

	return value
}
