package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database   DatabaseConfig
	JWT        JWTConfig
	App        AppConfig
	Attendance AttendanceConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int32
	MinConns int32
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

// AttendanceConfig holds the company-independent attendance defaults and
// the geofence sweep cadence. Per-company work settings stored in the
// database take precedence over the threshold defaults here.
type AttendanceConfig struct {
	DefaultFullDayHours         float64
	DefaultHalfDayHours         float64
	DefaultTransitionBufferMins float64
	GeofenceSweepInterval       time.Duration
}

func Load() (*Config, error) {
	// .env is optional outside local development
	_ = godotenv.Load()

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}
	dbMaxConns, err := strconv.Atoi(getEnv("DB_MAX_CONNS", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_CONNS: %w", err)
	}
	dbMinConns, err := strconv.Atoi(getEnv("DB_MIN_CONNS", "2"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MIN_CONNS: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "attendance"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		MaxConns: int32(dbMaxConns),
		MinConns: int32(dbMinConns),
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

	// Attendance configuration
	fullDayHours, err := strconv.ParseFloat(getEnv("FULL_DAY_HOURS", "8"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid FULL_DAY_HOURS: %w", err)
	}
	halfDayHours, err := strconv.ParseFloat(getEnv("HALF_DAY_HOURS", "4"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid HALF_DAY_HOURS: %w", err)
	}
	bufferMins, err := strconv.ParseFloat(getEnv("TRANSITION_BUFFER_MINUTES", "5"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid TRANSITION_BUFFER_MINUTES: %w", err)
	}
	sweepInterval, err := time.ParseDuration(getEnv("GEOFENCE_SWEEP_INTERVAL", "5m"))
	if err != nil {
		return nil, fmt.Errorf("invalid GEOFENCE_SWEEP_INTERVAL: %w", err)
	}

	config.Attendance = AttendanceConfig{
		DefaultFullDayHours:         fullDayHours,
		DefaultHalfDayHours:         halfDayHours,
		DefaultTransitionBufferMins: bufferMins,
		GeofenceSweepInterval:       sweepInterval,
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
	if c.Attendance.DefaultFullDayHours <= 0 {
		return fmt.Errorf("FULL_DAY_HOURS must be positive")
	}
	if c.Attendance.GeofenceSweepInterval <= 0 {
		return fmt.Errorf("GEOFENCE_SWEEP_INTERVAL must be positive")
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

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(key, fallback string) []string {
	value := getEnv(key, fallback)
	if value == "" {
		return []string{}
	}
	return strings.Split(value, ",")
}
