// Package config reads process configuration from the environment. A .env
// file, when present, is loaded first by the binaries through godotenv.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

type Config struct {
	AppEnv string
	Port   string

	DB          DatabaseConfig
	StoreDriver string

	RedisAddr   string
	KafkaBroker string
	JWTSecret   string

	// Empty paths fall back to the model and policy embedded in rbac/infra.
	RBACModelPath  string
	RBACPolicyPath string

	RateLimitRPS   float64
	RateLimitBurst int

	GenerationConcurrency int

	// AutoGenerateCron, when set, makes the worker request generation of the
	// current period for AutoGenerateCompanyIDs on that schedule.
	AutoGenerateCron       string
	AutoGenerateCompanyIDs []string

	OutboxPollInterval time.Duration
}

type DatabaseConfig struct {
	Host       string
	User       string
	Password   string
	Name       string
	Port       string
	SSLMode    string
	MaxRetries int
}

func Load() Config {
	return Config{
		AppEnv: getEnv("APP_ENV", "development"),
		Port:   getEnv("PORT", "3000"),
		DB: DatabaseConfig{
			Host:       getEnv("DB_HOST", "localhost"),
			User:       getEnv("DB_USER", "postgres"),
			Password:   os.Getenv("DB_PASSWORD"),
			Name:       getEnv("DB_NAME", "settlement"),
			Port:       getEnv("DB_PORT", "5432"),
			SSLMode:    getEnv("DB_SSLMODE", "disable"),
			MaxRetries: getEnvInt("DB_MAX_RETRIES", 5),
		},
		StoreDriver:            getEnv("STORE_DRIVER", StoreDriverPostgres),
		RedisAddr:              os.Getenv("REDIS_ADDR"),
		KafkaBroker:            os.Getenv("KAFKA_BROKER"),
		JWTSecret:              os.Getenv("JWT_SECRET"),
		RBACModelPath:          os.Getenv("RBAC_MODEL_PATH"),
		RBACPolicyPath:         os.Getenv("RBAC_POLICY_PATH"),
		RateLimitRPS:           getEnvFloat("RATE_LIMIT_RPS", 10),
		RateLimitBurst:         getEnvInt("RATE_LIMIT_BURST", 20),
		GenerationConcurrency:  getEnvInt("GENERATION_CONCURRENCY", 8),
		AutoGenerateCron:       os.Getenv("AUTO_GENERATE_CRON"),
		AutoGenerateCompanyIDs: splitList(os.Getenv("AUTO_GENERATE_COMPANY_IDS")),
		OutboxPollInterval:     getEnvDuration("OUTBOX_POLL_INTERVAL", 3*time.Second),
	}
}

func (c Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func getEnvFloat(key string, fallback float64) float64 {
	v, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil {
		return fallback
	}
	return v
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
