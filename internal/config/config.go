package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Gemini    GeminiConfig
	Storage   StorageConfig
	Screening ScreeningConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type GeminiConfig struct {
	APIKey      string
	Model       string
	Temperature float32
	BaseURL     string
}

type StorageConfig struct {
	MaxFileSize int64
}

type ScreeningConfig struct {
	MaxResumes int
}

type RateLimitConfig struct {
	Max    int
	Window time.Duration
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using default values.")
	}

	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "3000"),
			Env:  getEnv("ENV", "development"),
		},
		Gemini: GeminiConfig{
			APIKey:      getEnv("GEMINI_API_KEY", ""),
			Model:       getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
			Temperature: getEnvAsFloat32("GEMINI_TEMPERATURE", 0.2),
			BaseURL:     getEnv("GEMINI_BASE_URL", ""),
		},
		Storage: StorageConfig{
			MaxFileSize: getEnvAsInt64("MAX_FILE_SIZE", 10485760),
		},
		Screening: ScreeningConfig{
			MaxResumes: getEnvAsInt("MAX_RESUMES", 20),
		},
		RateLimit: RateLimitConfig{
			Max:    getEnvAsInt("RATE_LIMIT_MAX", 10),
			Window: getEnvAsDuration("RATE_LIMIT_WINDOW", "1m"),
		},
	}
}

func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 32); err == nil {
		return float32(value)
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}
