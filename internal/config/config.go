// Package config loads runtime settings from the environment and an optional .env file.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// Storage drivers accepted by STORAGE_DRIVER.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

// Config holds every runtime setting of the service.
type Config struct {
	AppPort string

	StorageDriver string
	SQLitePath    string
	DatabaseDSN   string
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	RabbitMQURL string

	SimulatedLatency time.Duration
	ShippingCost     int64
	MaxProofBytes    int64
	SeedData         bool

	JWTSecret     string
	AdminEmail    string
	AdminPassword string
	TokenTTL      time.Duration

	LogLevel string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("STORAGE_DRIVER", DriverMemory)
	v.SetDefault("SQLITE_PATH", "sporton.db")
	v.SetDefault("DATABASE_DSN", "host=localhost user=postgres password=postgres dbname=sporton port=5432 sslmode=disable")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("SIMULATED_LATENCY", "0s")
	v.SetDefault("SHIPPING_COST", 25000)
	v.SetDefault("MAX_PROOF_BYTES", 5*1024*1024)
	v.SetDefault("SEED_DATA", true)
	v.SetDefault("JWT_SECRET", "sporton-dev-secret")
	v.SetDefault("ADMIN_EMAIL", "admin@sporton.com")
	v.SetDefault("ADMIN_PASSWORD", "admin123")
	v.SetDefault("TOKEN_TTL", "24h")
	v.SetDefault("LOG_LEVEL", "info")
}

// Load reads .env files (when present) and the environment.
func Load(envFiles ...string) (Config, error) {
	if err := godotenv.Load(envFiles...); err != nil {
		log.Debug().Err(err).Msg("no .env file loaded")
	}

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	cfg := Config{
		AppPort:          v.GetString("APP_PORT"),
		StorageDriver:    strings.ToLower(strings.TrimSpace(v.GetString("STORAGE_DRIVER"))),
		SQLitePath:       v.GetString("SQLITE_PATH"),
		DatabaseDSN:      v.GetString("DATABASE_DSN"),
		RedisAddr:        v.GetString("REDIS_ADDR"),
		RedisPassword:    v.GetString("REDIS_PASSWORD"),
		RedisDB:          v.GetInt("REDIS_DB"),
		RabbitMQURL:      v.GetString("RABBITMQ_URL"),
		SimulatedLatency: v.GetDuration("SIMULATED_LATENCY"),
		ShippingCost:     v.GetInt64("SHIPPING_COST"),
		MaxProofBytes:    v.GetInt64("MAX_PROOF_BYTES"),
		SeedData:         v.GetBool("SEED_DATA"),
		JWTSecret:        v.GetString("JWT_SECRET"),
		AdminEmail:       v.GetString("ADMIN_EMAIL"),
		AdminPassword:    v.GetString("ADMIN_PASSWORD"),
		TokenTTL:         v.GetDuration("TOKEN_TTL"),
		LogLevel:         v.GetString("LOG_LEVEL"),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the settings that cannot be defaulted sensibly.
func (c Config) Validate() error {
	switch c.StorageDriver {
	case DriverMemory, DriverSQLite, DriverPostgres, DriverRedis:
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.StorageDriver)
	}
	if c.ShippingCost < 0 {
		return fmt.Errorf("SHIPPING_COST must not be negative, got %d", c.ShippingCost)
	}
	if c.MaxProofBytes <= 0 {
		return fmt.Errorf("MAX_PROOF_BYTES must be positive, got %d", c.MaxProofBytes)
	}
	if c.SimulatedLatency < 0 {
		return fmt.Errorf("SIMULATED_LATENCY must not be negative, got %s", c.SimulatedLatency)
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	return nil
}
