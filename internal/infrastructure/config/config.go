package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ArchanSureja/QuickCredit/pkg/auth"
	"github.com/ArchanSureja/QuickCredit/pkg/kafka"
	"github.com/ArchanSureja/QuickCredit/pkg/postgres"
)

// EligibilityConfig tunes the matching engine's intake behaviour.
type EligibilityConfig struct {
	// EnforceExpiry rejects applications against expired records when true.
	EnforceExpiry bool
	// RecordValidity is how long a check result stays redeemable.
	RecordValidity time.Duration
}

// Config is the full service configuration, loaded from the environment.
type Config struct {
	GRPCPort     int
	HTTPPort     int
	DB           postgres.Config
	Kafka        kafka.Config
	KafkaTopic   string
	JWT          auth.JWTConfig
	Eligibility  EligibilityConfig
	OTLPEndpoint string
	ServiceName  string
}

// Validate panics on configuration the service cannot start without.
func (c Config) Validate() {
	if c.DB.Password == "" {
		panic("DB_PASSWORD environment variable is required")
	}
}

// Load reads the configuration from the environment with local defaults.
func Load() Config {
	return Config{
		GRPCPort: getEnvInt("GRPC_PORT", 9090),
		HTTPPort: getEnvInt("HTTP_PORT", 8080),
		DB: postgres.Config{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "quickcredit"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "quickcredit_lending"),
			SSLMode:  getEnv("DB_SSLMODE", "require"),
		},
		Kafka: kafka.Config{
			Brokers: strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ","),
		},
		KafkaTopic: getEnv("KAFKA_TOPIC", "lending-events"),
		JWT: auth.JWTConfig{
			Secret:     getEnv("JWT_SECRET", ""),
			Issuer:     getEnv("JWT_ISSUER", "quickcredit"),
			Expiration: getEnvDuration("JWT_EXPIRATION", 24*time.Hour),
		},
		Eligibility: EligibilityConfig{
			EnforceExpiry:  getEnvBool("ELIGIBILITY_ENFORCE_EXPIRY", false),
			RecordValidity: getEnvDuration("ELIGIBILITY_RECORD_VALIDITY", 30*24*time.Hour),
		},
		OTLPEndpoint: getEnv("OTLP_ENDPOINT", ""),
		ServiceName:  "lending-service",
	}
}

// GRPCAddr returns the listen address for the gRPC server.
func (c Config) GRPCAddr() string {
	return fmt.Sprintf(":%d", c.GRPCPort)
}

// HTTPAddr returns the listen address for the HTTP server.
func (c Config) HTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
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
