package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database        DatabaseConfig
	JWT             JWTConfig
	App             AppConfig
	Geofence        GeofenceConfig
	Break           BreakConfig
	FaceRecognition FaceRecognitionConfig
	RateLimit       RateLimitConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port           int
	Env            string
	LogLevel       string
	AllowedOrigins []string
}

type GeofenceConfig struct {
	RadiusKm float64
}

type BreakConfig struct {
	AllowedMinutes int
}

type FaceRecognitionConfig struct {
	Enabled      bool
	BaseURL      string
	TokenURL     string
	ClientID     string
	ClientSecret string
	Timeout      time.Duration
}

// RateLimitConfig throttles mutating attendance routes. An empty Rate
// disables the limiter; an empty RedisURL keeps counters in memory.
type RateLimitConfig struct {
	Rate     string
	RedisURL string
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "hris_attendance"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:           appPort,
		Env:            getEnv("APP_ENV", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		AllowedOrigins: getEnvSlice("ALLOWED_ORIGINS", "http://localhost:3000"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	radiusKm, err := strconv.ParseFloat(getEnv("GEOFENCE_RADIUS_KM", "0.5"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid GEOFENCE_RADIUS_KM: %w", err)
	}
	config.Geofence = GeofenceConfig{RadiusKm: radiusKm}

	allowedMinutes, err := strconv.Atoi(getEnv("BREAK_ALLOWED_MINUTES", "60"))
	if err != nil {
		return nil, fmt.Errorf("invalid BREAK_ALLOWED_MINUTES: %w", err)
	}
	config.Break = BreakConfig{AllowedMinutes: allowedMinutes}

	// Face recognition provider
	faceEnabled, err := strconv.ParseBool(getEnv("FACE_RECOGNITION_ENABLED", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid FACE_RECOGNITION_ENABLED: %w", err)
	}
	faceTimeout, err := time.ParseDuration(getEnv("FACE_RECOGNITION_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid FACE_RECOGNITION_TIMEOUT: %w", err)
	}
	config.FaceRecognition = FaceRecognitionConfig{
		Enabled:      faceEnabled,
		BaseURL:      getEnv("FACE_RECOGNITION_BASE_URL", ""),
		TokenURL:     getEnv("FACE_RECOGNITION_TOKEN_URL", ""),
		ClientID:     getEnv("FACE_RECOGNITION_CLIENT_ID", ""),
		ClientSecret: getEnv("FACE_RECOGNITION_CLIENT_SECRET", ""),
		Timeout:      faceTimeout,
	}

	config.RateLimit = RateLimitConfig{
		Rate:     getEnv("RATE_LIMIT", "10-M"),
		RedisURL: getEnv("REDIS_URL", ""),
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Geofence.RadiusKm <= 0 {
		return fmt.Errorf("GEOFENCE_RADIUS_KM must be positive")
	}
	if c.Break.AllowedMinutes < 0 {
		return fmt.Errorf("BREAK_ALLOWED_MINUTES must not be negative")
	}
	if c.FaceRecognition.Enabled {
		if c.FaceRecognition.BaseURL == "" {
			return fmt.Errorf("FACE_RECOGNITION_BASE_URL is required")
		}
		if c.FaceRecognition.TokenURL == "" {
			return fmt.Errorf("FACE_RECOGNITION_TOKEN_URL is required")
		}
		if c.FaceRecognition.ClientID == "" || c.FaceRecognition.ClientSecret == "" {
			return fmt.Errorf("FACE_RECOGNITION_CLIENT_ID and FACE_RECOGNITION_CLIENT_SECRET are required")
		}
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// LogLevel maps LOG_LEVEL to a slog level, defaulting to info.
func (c *Config) LogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.App.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(env string, fallback string) []string {
	value := getEnv(env, fallback)
	if value == "" {
		return []string{}
	}
	var result []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			result = append(result, item)
		}
	}
	return result
}
