package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App        AppConfig
	Database   DatabaseConfig
	JWT        JWTConfig
	Office     OfficeConfig
	Attendance AttendanceConfig
	Lockout    LockoutConfig
	Storage    StorageConfig
	RateLimit  RateLimitConfig
}

// AppConfig holds application configuration
type AppConfig struct {
	Port           int
	Env            string
	LogLevel       string
	AllowedOrigins []string
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
	Secret            string
	AccessExpiration  string
	RefreshExpiration string
}

// OfficeConfig holds the geofence anchor for photo attendance.
type OfficeConfig struct {
	Latitude     float64
	Longitude    float64
	RadiusMeters float64
}

// AttendanceConfig holds attendance policy settings.
type AttendanceConfig struct {
	// LateCutoff is a UTC wall-clock time, "HH:MM". Check-ins at or after it
	// are recorded as late.
	LateCutoff string
}

// LockoutConfig holds the failed-login lockout policy.
type LockoutConfig struct {
	MaxFailures  int
	LockDuration time.Duration
}

// StorageConfig selects the file storage backend.
type StorageConfig struct {
	// Type is "local" or "s3".
	Type string

	BasePath string
	BaseURL  string

	AWSRegion          string
	AWSS3Bucket        string
	AWSAccessKeyID     string
	AWSSecretAccessKey string
	AWSEndpointURL     string
}

// RateLimitConfig throttles requests per client IP within the window. Login
// gets its own, tighter limit.
type RateLimitConfig struct {
	LoginRequests int
	APIRequests   int
	Window        time.Duration
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading configuration from environment")
	}

	config := &Config{}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:           appPort,
		Env:            getEnv("APP_ENV", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		AllowedOrigins: getEnvSlice("FRONTEND_URL", "http://localhost:3000"),
	}

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
		Name:     getEnv("DB_NAME", "simagang"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:            getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration:  getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
		RefreshExpiration: getEnv("JWT_REFRESH_EXPIRATION_TIME", "168h"),
	}

	// Office geofence configuration
	officeLat, err := strconv.ParseFloat(getEnv("OFFICE_LATITUDE", "0"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid OFFICE_LATITUDE: %w", err)
	}
	officeLon, err := strconv.ParseFloat(getEnv("OFFICE_LONGITUDE", "0"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid OFFICE_LONGITUDE: %w", err)
	}
	officeRadius, err := strconv.ParseFloat(getEnv("OFFICE_RADIUS_METERS", "200"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid OFFICE_RADIUS_METERS: %w", err)
	}

	config.Office = OfficeConfig{
		Latitude:     officeLat,
		Longitude:    officeLon,
		RadiusMeters: officeRadius,
	}

	// Attendance configuration
	config.Attendance = AttendanceConfig{
		LateCutoff: getEnv("ATTENDANCE_LATE_CUTOFF", "08:30"),
	}

	// Lockout configuration
	maxFailures, err := strconv.Atoi(getEnv("AUTH_MAX_FAILED_LOGINS", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid AUTH_MAX_FAILED_LOGINS: %w", err)
	}
	lockDuration, err := time.ParseDuration(getEnv("AUTH_LOCKOUT_DURATION", "15m"))
	if err != nil {
		return nil, fmt.Errorf("invalid AUTH_LOCKOUT_DURATION: %w", err)
	}

	config.Lockout = LockoutConfig{
		MaxFailures:  maxFailures,
		LockDuration: lockDuration,
	}

	// Storage configuration
	config.Storage = StorageConfig{
		Type:               getEnv("STORAGE_TYPE", "local"),
		BasePath:           getEnv("STORAGE_BASE_PATH", "./uploads"),
		BaseURL:            getEnv("STORAGE_BASE_URL", "http://localhost:8080/uploads"),
		AWSRegion:          getEnv("AWS_REGION", ""),
		AWSS3Bucket:        getEnv("AWS_S3_BUCKET", ""),
		AWSAccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
		AWSEndpointURL:     getEnv("AWS_ENDPOINT_URL", ""),
	}

	// Rate limit configuration
	loginRequests, err := strconv.Atoi(getEnv("RATE_LIMIT_LOGIN", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_LOGIN: %w", err)
	}
	apiRequests, err := strconv.Atoi(getEnv("RATE_LIMIT_API", "100"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_API: %w", err)
	}
	rateWindow, err := time.ParseDuration(getEnv("RATE_LIMIT_WINDOW", "1m"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_WINDOW: %w", err)
	}

	config.RateLimit = RateLimitConfig{
		LoginRequests: loginRequests,
		APIRequests:   apiRequests,
		Window:        rateWindow,
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
	if c.Storage.Type != "local" && c.Storage.Type != "s3" {
		return fmt.Errorf("STORAGE_TYPE must be 'local' or 's3'")
	}
	if c.Storage.Type == "s3" {
		if c.Storage.AWSS3Bucket == "" {
			return fmt.Errorf("AWS_S3_BUCKET is required when STORAGE_TYPE is 's3'")
		}
		if c.Storage.AWSRegion == "" {
			return fmt.Errorf("AWS_REGION is required when STORAGE_TYPE is 's3'")
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

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(env, fallback string) []string {
	return strings.Split(getEnv(env, fallback), ",")
}
