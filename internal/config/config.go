package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

type Config struct {
	Database   DatabaseConfig
	JWT        JWTConfig
	App        AppConfig
	Storage    StorageConfig
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
	Timezone       string
	AllowedOrigins []string
}

type StorageConfig struct {
	Driver string
	// SeedFile optionally loads HR data into the memory driver.
	SeedFile string
}

// AttendanceConfig holds the organization defaults used until an
// administrator stores an override in the settings table.
type AttendanceConfig struct {
	WeekendDays           []string
	WorkHoursPerDay       decimal.Decimal
	WfhAttendanceHours    decimal.Decimal
	PayrollCycleStartDay  int
	AllowPastDateRequests bool
	// DigestInterval is how often the daily digest job checks for a new day.
	// Zero disables the job.
	DigestInterval time.Duration
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Warn("No .env file found, reading configuration from environment")
	}

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}
	maxConns, err := strconv.Atoi(getEnv("DB_MAX_CONNS", "25"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_CONNS: %w", err)
	}
	minConns, err := strconv.Atoi(getEnv("DB_MIN_CONNS", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MIN_CONNS: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "aura"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		MaxConns: int32(maxConns),
		MinConns: int32(minConns),
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
		Timezone:       getEnv("APP_TIMEZONE", "Africa/Cairo"),
		AllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),
	}

	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_TOKEN_EXPIRATION", "24h"),
	}

	config.Storage = StorageConfig{
		Driver:   strings.ToLower(getEnv("STORAGE_DRIVER", StorageDriverPostgres)),
		SeedFile: getEnv("MEMORY_SEED_FILE", ""),
	}

	// Attendance defaults
	workHours, err := decimal.NewFromString(getEnv("WORK_HOURS_PER_DAY", "8"))
	if err != nil {
		return nil, fmt.Errorf("invalid WORK_HOURS_PER_DAY: %w", err)
	}
	wfhHours, err := decimal.NewFromString(getEnv("WFH_ATTENDANCE_HOURS", "8"))
	if err != nil {
		return nil, fmt.Errorf("invalid WFH_ATTENDANCE_HOURS: %w", err)
	}
	cycleStart, err := strconv.Atoi(getEnv("PAYROLL_CYCLE_START_DAY", "1"))
	if err != nil {
		return nil, fmt.Errorf("invalid PAYROLL_CYCLE_START_DAY: %w", err)
	}
	allowPast, err := strconv.ParseBool(getEnv("ALLOW_PAST_DATE_REQUESTS", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid ALLOW_PAST_DATE_REQUESTS: %w", err)
	}
	digestInterval, err := time.ParseDuration(getEnv("ATTENDANCE_DIGEST_INTERVAL", "1h"))
	if err != nil {
		return nil, fmt.Errorf("invalid ATTENDANCE_DIGEST_INTERVAL: %w", err)
	}

	config.Attendance = AttendanceConfig{
		WeekendDays:           getEnvSlice("WEEKEND_DAYS", "friday,saturday"),
		WorkHoursPerDay:       workHours,
		WfhAttendanceHours:    wfhHours,
		PayrollCycleStartDay:  cycleStart,
		AllowPastDateRequests: allowPast,
		DigestInterval:        digestInterval,
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case StorageDriverPostgres:
		if c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD is required")
		}
	case StorageDriverMemory:
	default:
		return fmt.Errorf("STORAGE_DRIVER must be %q or %q", StorageDriverPostgres, StorageDriverMemory)
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if _, err := time.ParseDuration(c.JWT.AccessExpiration); err != nil {
		return fmt.Errorf("invalid JWT_ACCESS_TOKEN_EXPIRATION: %w", err)
	}
	if _, err := time.LoadLocation(c.App.Timezone); err != nil {
		return fmt.Errorf("invalid APP_TIMEZONE: %w", err)
	}
	if c.Attendance.WorkHoursPerDay.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("WORK_HOURS_PER_DAY must be positive")
	}
	if c.Attendance.DigestInterval < 0 {
		return fmt.Errorf("ATTENDANCE_DIGEST_INTERVAL must not be negative")
	}
	return nil
}

// Location returns the organization time zone punches are recorded in.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// SlogLevel parses LOG_LEVEL, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.App.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
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

func getEnvSlice(env, fallback string) []string {
	value := getEnv(env, fallback)
	if value == "" {
		return []string{}
	}
	var result []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}
