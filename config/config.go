package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort          string
	AppMode          string
	DBHost           string
	DBUser           string
	DBPassword       string
	DBName           string
	DBPort           string
	SessionSecret    string
	SessionExpiryMin int
	AdminUsername    string
	AdminPassword    string
	RedisAddr        string
	RedisPassword    string
	RedisDB          int
	SubmitLimit      int
	SubmitWindowSec  int
	StaticDir        string
}

func LoadConfig() *Config {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	return &Config{
		AppPort:          getEnv("APP_PORT", "8080"),
		AppMode:          getEnv("APP_MODE", "debug"),
		DBHost:           getEnv("DB_HOST", "localhost"),
		DBUser:           getEnv("DB_USER", "postgres"),
		DBPassword:       getEnv("DB_PASSWORD", "postgres"),
		DBName:           getEnv("DB_NAME", "classpoll"),
		DBPort:           getEnv("DB_PORT", "5432"),
		SessionSecret:    getEnv("SESSION_SECRET", "change-me"),
		SessionExpiryMin: getEnvAsInt("SESSION_EXPIRY_MIN", 720),
		AdminUsername:    getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword:    getEnv("ADMIN_PASSWORD", "admin123"),
		RedisAddr:        getEnv("REDIS_ADDR", ""),
		RedisPassword:    getEnv("REDIS_PASSWORD", ""),
		RedisDB:          getEnvAsInt("REDIS_DB", 0),
		SubmitLimit:      getEnvAsInt("SUBMIT_LIMIT", 30),
		SubmitWindowSec:  getEnvAsInt("SUBMIT_WINDOW_SEC", 60),
		StaticDir:        getEnv("STATIC_DIR", ""),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}
