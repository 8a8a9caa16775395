package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"bootcamp-backend/internal/infrastructure/database"
)

// LoadDatabaseConfig reads the DB_* variables. Unlike the other sections a
// malformed value is an error, the pool is not started on a guess.
func LoadDatabaseConfig() (*database.DBConfig, error) {
	var p strictEnv

	cfg := &database.DBConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     p.int("DB_PORT", 5432),
		Username: getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		DBName:   getEnv("DB_NAME", "devcamper"),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),

		MaxConns:          int32(p.int("DB_MAX_CONNECTIONS", 25)),
		MinConns:          int32(p.int("DB_MIN_CONNECTIONS", 5)),
		MaxConnLifetime:   p.duration("DB_MAX_CONN_LIFETIME", 5*time.Minute),
		MaxConnIdleTime:   p.duration("DB_MAX_CONN_IDLE_TIME", time.Minute),
		HealthCheckPeriod: p.duration("DB_HEALTH_CHECK_PERIOD", time.Minute),

		MaxRetries:     p.int("DB_MAX_RETRIES", 5),
		RetryDelay:     p.duration("DB_RETRY_DELAY", time.Second),
		ConnectTimeout: p.duration("DB_CONNECT_TIMEOUT", 10*time.Second),
	}
	if p.err != nil {
		return nil, p.err
	}

	if cfg.MaxConns < 1 {
		return nil, fmt.Errorf("DB_MAX_CONNECTIONS must be positive")
	}
	if cfg.MinConns > cfg.MaxConns {
		return nil, fmt.Errorf("DB_MIN_CONNECTIONS (%d) exceeds DB_MAX_CONNECTIONS (%d)", cfg.MinConns, cfg.MaxConns)
	}

	return cfg, nil
}

// strictEnv keeps the first parse error
type strictEnv struct {
	err error
}

func (s *strictEnv) int(key string, def int) int {
	raw := os.Getenv(key)
	if raw == "" || s.err != nil {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		s.err = fmt.Errorf("invalid %s: %w", key, err)
		return def
	}
	return v
}

func (s *strictEnv) duration(key string, def time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" || s.err != nil {
		return def
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		s.err = fmt.Errorf("invalid %s: %w", key, err)
		return def
	}
	return v
}
