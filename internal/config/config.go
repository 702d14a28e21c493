package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every setting the process needs. It is loaded once in
// main and passed down explicitly, nothing below this layer reads env.
type Config struct {
	Port string

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
	DBSSLMode  string

	RedisAddr   string
	KafkaBroker string

	JWTSecret         string
	AccessTokenTTL    time.Duration
	RefreshTokenTTL   time.Duration
	MaxFailedLogins   int
	LockoutDuration   time.Duration
	OutboxPollPeriod  time.Duration
	OutboxBatchSize   int
	RateLimitPerMin   int
	CacheOptionsTTL   time.Duration
	ConnectionRetries int
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

// Load reads .env (if present) and the process environment.
// JWT_SECRET has no default, missing it is a hard error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is not set")
	}

	return &Config{
		Port: getEnv("PORT", "3000"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     getEnv("DB_NAME", "proryx"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		RedisAddr:   getEnv("REDIS_ADDR", "localhost:6379"),
		KafkaBroker: getEnv("KAFKA_BROKER", "localhost:9092"),

		JWTSecret:         secret,
		AccessTokenTTL:    getEnvDuration("ACCESS_TOKEN_TTL", 15*time.Minute),
		RefreshTokenTTL:   getEnvDuration("REFRESH_TOKEN_TTL", 7*24*time.Hour),
		MaxFailedLogins:   getEnvInt("MAX_FAILED_LOGINS", 5),
		LockoutDuration:   getEnvDuration("LOCKOUT_DURATION", 15*time.Minute),
		OutboxPollPeriod:  getEnvDuration("OUTBOX_POLL_PERIOD", 2*time.Second),
		OutboxBatchSize:   getEnvInt("OUTBOX_BATCH_SIZE", 50),
		RateLimitPerMin:   getEnvInt("RATE_LIMIT_PER_MIN", 120),
		CacheOptionsTTL:   getEnvDuration("CACHE_OPTIONS_TTL", 5*time.Minute),
		ConnectionRetries: getEnvInt("CONNECTION_RETRIES", 5),
	}, nil
}
