package cmd

import (
	"fmt"
	"time"

	"fulfillment/internal/jobs"
)

const defaultIdempotencyTTL = 24 * time.Hour

type Config struct {
	HTTPPort                 string
	DBHost                   string
	DBPort                   string
	DBUser                   string
	DBPassword               string
	DBName                   string
	DBSslMode                string
	RedisAddress             string
	KafkaHost                string
	KafkaCustodyBillingTopic string
	DocsBaseURL              string
	IdempotencyTTL           time.Duration
	IdempotencyPurgeSchedule string
}

// LoadConfig reads the configuration through getenv. Redis and Kafka are
// optional; everything the database needs is not.
func LoadConfig(getenv func(string) string) (Config, error) {
	config := Config{
		HTTPPort:                 getenv("HTTP_PORT"),
		DBHost:                   getenv("DB_HOST"),
		DBPort:                   getenv("DB_PORT"),
		DBUser:                   getenv("DB_USER"),
		DBPassword:               getenv("DB_PASSWORD"),
		DBName:                   getenv("DB_NAME"),
		DBSslMode:                getenv("DB_SSLMODE"),
		RedisAddress:             getenv("REDIS_ADDRESS"),
		KafkaHost:                getenv("KAFKA_HOST"),
		KafkaCustodyBillingTopic: getenv("KAFKA_CUSTODY_BILLING_TOPIC"),
		DocsBaseURL:              getenv("DOCS_BASE_URL"),
		IdempotencyTTL:           defaultIdempotencyTTL,
		IdempotencyPurgeSchedule: getenv("IDEMPOTENCY_PURGE_SCHEDULE"),
	}

	if raw := getenv("IDEMPOTENCY_TTL"); raw != "" {
		ttl, err := time.ParseDuration(raw)
		if err != nil {
			return Config{}, fmt.Errorf("IDEMPOTENCY_TTL: %w", err)
		}
		if ttl <= 0 {
			return Config{}, fmt.Errorf("IDEMPOTENCY_TTL must be positive, got %s", ttl)
		}
		config.IdempotencyTTL = ttl
	}
	if config.IdempotencyPurgeSchedule == "" {
		config.IdempotencyPurgeSchedule = jobs.DefaultPurgeSchedule
	}
	if config.HTTPPort == "" {
		config.HTTPPort = "8080"
	}
	if config.DBSslMode == "" {
		config.DBSslMode = "disable"
	}

	for name, value := range map[string]string{
		"DB_HOST":       config.DBHost,
		"DB_PORT":       config.DBPort,
		"DB_USER":       config.DBUser,
		"DB_NAME":       config.DBName,
		"DOCS_BASE_URL": config.DocsBaseURL,
	} {
		if value == "" {
			return Config{}, fmt.Errorf("%s is required", name)
		}
	}
	if config.KafkaHost != "" && config.KafkaCustodyBillingTopic == "" {
		return Config{}, fmt.Errorf("KAFKA_CUSTODY_BILLING_TOPIC is required when KAFKA_HOST is set")
	}

	return config, nil
}

func (c Config) DSN() string {
	return fmt.Sprintf("host=%v port=%v user=%v password=%v dbname=%v sslmode=%v",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}
