package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"bootcamp-backend/internal/infrastructure/database"
)

const defaultJWTSecret = "your-secret-key-change-in-production"

// Config chứa toàn bộ application configuration
// Struct này được populate từ environment variables
type Config struct {
	App        AppConfig
	Database   *database.DBConfig
	Redis      RedisConfig
	JWT        JWTConfig
	ResetToken ResetTokenConfig
	Ownership  OwnershipConfig
	RateLimit  RateLimitConfig
	Upload     UploadConfig
	SMTP       SMTPConfig
	Geocoder   GeocoderConfig
	MinIO      MinIOConfig
}

type AppConfig struct {
	Name           string
	Environment    string // development, staging, production
	Port           string
	Version        string
	AllowedOrigins []string
	TrustedProxies []string // CIDRs allowed to set X-Forwarded-For, empty trusts none
	ResetURLBase   string // prefix of the link mailed by forgot password
	AutoMigrate    bool
}

// IsProduction reports whether cookies should be Secure
func (a AppConfig) IsProduction() bool {
	return a.Environment == "production"
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret       string
	Expire       time.Duration
	CookieExpire time.Duration
}

type ResetTokenConfig struct {
	Expire time.Duration
}

// OwnershipConfig lists roles exempt from ownership checks
type OwnershipConfig struct {
	Elevated       []string
	ElevatedDelete []string // optional override for deletes
}

type RateLimitConfig struct {
	Enabled bool
	Max     int
	Window  time.Duration
}

type UploadConfig struct {
	MaxBytes int64
}

type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
	FromName  string
}

type GeocoderConfig struct {
	Provider string // mapquest
	BaseURL  string
	APIKey   string
	Timeout  time.Duration
}

type MinIOConfig struct {
	Endpoint  string // localhost:9000
	AccessKey string // minioadmin
	SecretKey string // minioadmin
	Bucket    string // bootcamps
	UseSSL    bool   // false for local
	PublicURL string
}

// Load đọc config từ environment variables
func Load() (*Config, error) {
	db, err := LoadDatabaseConfig()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		App: AppConfig{
			Name:           getEnv("APP_NAME", "DevCamper API"),
			Environment:    getEnv("APP_ENV", "development"),
			Port:           getEnv("APP_PORT", "5000"),
			Version:        getEnv("APP_VERSION", "1.0.0"),
			AllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", []string{"*"}),
			TrustedProxies: getEnvList("TRUSTED_PROXIES", nil),
			ResetURLBase:   getEnv("RESET_URL_BASE", "http://localhost:5000/api/v1/auth/resetpassword"),
			AutoMigrate:    getEnvBool("DB_AUTO_MIGRATE", true),
		},
		Database: db,
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			Secret:       getEnv("JWT_SECRET", defaultJWTSecret),
			Expire:       getEnvDuration("JWT_EXPIRE", 30*24*time.Hour),
			CookieExpire: getEnvDuration("JWT_COOKIE_EXPIRE", 30*24*time.Hour),
		},
		ResetToken: ResetTokenConfig{
			Expire: getEnvDuration("RESET_TOKEN_EXPIRE", 10*time.Minute),
		},
		Ownership: OwnershipConfig{
			Elevated:       getEnvList("OWNERSHIP_ELEVATED_ROLES", []string{"admin"}),
			ElevatedDelete: getEnvList("OWNERSHIP_ELEVATED_DELETE_ROLES", nil),
		},
		RateLimit: RateLimitConfig{
			Enabled: getEnvBool("RATE_LIMIT_ENABLED", true),
			Max:     getEnvInt("RATE_LIMIT_MAX", 100),
			Window:  getEnvDuration("RATE_LIMIT_WINDOW", 10*time.Minute),
		},
		Upload: UploadConfig{
			MaxBytes: int64(getEnvInt("MAX_FILE_UPLOAD", 1000000)),
		},
		SMTP: SMTPConfig{
			Host:      getEnv("SMTP_HOST", "localhost"),
			Port:      getEnvInt("SMTP_PORT", 1025),
			Username:  getEnv("SMTP_EMAIL", ""),
			Password:  getEnv("SMTP_PASSWORD", ""),
			FromEmail: getEnv("FROM_EMAIL", "noreply@devcamper.io"),
			FromName:  getEnv("FROM_NAME", "DevCamper"),
		},
		Geocoder: GeocoderConfig{
			Provider: getEnv("GEOCODER_PROVIDER", "mapquest"),
			BaseURL:  getEnv("GEOCODER_URL", "https://www.mapquestapi.com/geocoding/v1/address"),
			APIKey:   getEnv("GEOCODER_API_KEY", ""),
			Timeout:  getEnvDuration("GEOCODER_TIMEOUT", 5*time.Second),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
			AccessKey: getEnv("MINIO_ACCESS_KEY", "minioadmin"),
			SecretKey: getEnv("MINIO_SECRET_KEY", "minioadmin"),
			Bucket:    getEnv("MINIO_BUCKET", "bootcamps"),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
			PublicURL: getEnv("MINIO_PUBLIC_URL", "http://localhost:9000"),
		},
	}

	// Validate critical config
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate kiểm tra config có hợp lệ không
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET must not be empty")
	}
	if c.JWT.Expire <= 0 || c.ResetToken.Expire <= 0 {
		return fmt.Errorf("token lifetimes must be positive")
	}
	if c.RateLimit.Enabled && (c.RateLimit.Max < 1 || c.RateLimit.Window <= 0) {
		return fmt.Errorf("RATE_LIMIT_MAX and RATE_LIMIT_WINDOW must be positive")
	}

	// Production environment phải có JWT secret
	if c.App.IsProduction() {
		if c.JWT.Secret == defaultJWTSecret {
			return fmt.Errorf("JWT_SECRET must be set in production")
		}
		if c.Database != nil && c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD must be set in production")
		}
	}

	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvDuration accepts Go durations ("15m") and whole days ("30d")
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := strings.TrimSpace(os.Getenv(key))
	if valueStr == "" {
		return defaultValue
	}
	if days, ok := strings.CutSuffix(valueStr, "d"); ok {
		n, err := strconv.Atoi(days)
		if err != nil {
			return defaultValue
		}
		return time.Duration(n) * 24 * time.Hour
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
