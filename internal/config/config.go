package config

import (
	"os"
	"strings"
	"time"

	"github.com/olegbarsukov/fitness-helper/internal/apperrors"
	"github.com/olegbarsukov/fitness-helper/internal/logger"
)

type Config struct {
	BotToken       string
	WeatherAPIKey  string
	ActivitiesFile string
	HTTPTimeout    time.Duration
	Storage        StorageConfig
	Sessions       SessionConfig
	Logger         LoggerConfig
}

type StorageConfig struct {
	Backend  string // "file" or "postgres"
	FilePath string
	DB       DBConfig
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

type SessionConfig struct {
	Backend   string // "memory" or "redis"
	RedisHost string
	RedisPort string
	TTL       time.Duration
}

type LoggerConfig struct {
	Level      logger.LogLevel
	OutputPath string
	Format     string
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "debug":
		return logger.LevelDebug
	case "info":
		return logger.LevelInfo
	case "warn", "warning":
		return logger.LevelWarn
	case "error":
		return logger.LevelError
	default:
		return logger.LevelInfo
	}
}

func parseDuration(value string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return d
}

func Load() (*Config, error) {
	token := os.Getenv("BOT_TOKEN")
	if token == "" {
		return nil, apperrors.NewConfigError("BOT_TOKEN environment variable is not set")
	}

	weatherKey := os.Getenv("WEATHER_API_KEY")
	if weatherKey == "" {
		return nil, apperrors.NewConfigError("WEATHER_API_KEY environment variable is not set")
	}

	return &Config{
		BotToken:       token,
		WeatherAPIKey:  weatherKey,
		ActivitiesFile: getEnvOrDefault("ACTIVITIES_FILE", "activities.json"),
		HTTPTimeout:    parseDuration(getEnvOrDefault("HTTP_TIMEOUT", "10s"), 10*time.Second),
		Storage: StorageConfig{
			Backend:  getEnvOrDefault("STORAGE", "file"),
			FilePath: getEnvOrDefault("USERS_FILE", "users.json"),
			DB: DBConfig{
				Host:     getEnvOrDefault("DB_HOST", "localhost"),
				Port:     getEnvOrDefault("DB_PORT", "5432"),
				User:     getEnvOrDefault("DB_USER", "postgres"),
				Password: getEnvOrDefault("DB_PASSWORD", "postgres"),
				DBName:   getEnvOrDefault("DB_NAME", "fitness_helper"),
			},
		},
		Sessions: SessionConfig{
			Backend:   getEnvOrDefault("SESSIONS", "memory"),
			RedisHost: getEnvOrDefault("REDIS_HOST", "localhost"),
			RedisPort: getEnvOrDefault("REDIS_PORT", "6379"),
			TTL:       parseDuration(getEnvOrDefault("SESSION_TTL", "24h"), 24*time.Hour),
		},
		Logger: LoggerConfig{
			Level:      parseLogLevel(getEnvOrDefault("LOG_LEVEL", "info")),
			OutputPath: getEnvOrDefault("LOG_OUTPUT", "stdout"),
			Format:     getEnvOrDefault("LOG_FORMAT", "text"),
		},
	}, nil
}
