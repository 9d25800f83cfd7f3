package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoreDriverMemory   = "memory"
	StoreDriverPostgres = "postgres"
)

type CasdoorConfig struct {
	Endpoint     string
	ClientID     string
	ClientSecret string
	Cert         string
	Organization string
	Application  string
}

// Enabled reports whether store writes should require a Casdoor token
func (c CasdoorConfig) Enabled() bool {
	return c.Endpoint != "" && c.Cert != ""
}

type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// ClientConfig is the relation store address used by the command line client
type ClientConfig struct {
	BaseURL            string
	Timeout            time.Duration
	Token              string
	CascadeConcurrency int
}

type Config struct {
	Environment string
	Port        string
	LogLevel    slog.Level

	StoreDriver   string
	StoreSeedFile string
	DatabaseURL   string
	AutoMigrate   bool
	RedisURL      string

	Casdoor CasdoorConfig
	Kafka   KafkaConfig
	Client  ClientConfig
}

// LoadConfig reads .env (when present) and the process environment
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function
func FromEnv(getenv func(string) string) (*Config, error) {
	get := func(key, fallback string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return fallback
	}

	level, err := parseLevel(get("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}

	timeout, err := time.ParseDuration(get("SCMS_API_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid SCMS_API_TIMEOUT: %w", err)
	}

	concurrency, err := strconv.Atoi(get("SCMS_CASCADE_CONCURRENCY", "0"))
	if err != nil || concurrency < 0 {
		return nil, fmt.Errorf("invalid SCMS_CASCADE_CONCURRENCY: %q", getenv("SCMS_CASCADE_CONCURRENCY"))
	}

	autoMigrate, err := strconv.ParseBool(get("DB_AUTO_MIGRATE", "true"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_AUTO_MIGRATE: %w", err)
	}

	cfg := &Config{
		Environment:   get("ENVIRONMENT", "development"),
		Port:          get("PORT", "3001"),
		LogLevel:      level,
		StoreDriver:   strings.ToLower(get("STORE_DRIVER", StoreDriverMemory)),
		StoreSeedFile: get("STORE_SEED_FILE", ""),
		DatabaseURL:   get("DATABASE_URL", ""),
		AutoMigrate:   autoMigrate,
		RedisURL:      get("REDIS_URL", ""),
		Casdoor: CasdoorConfig{
			Endpoint:     get("CASDOOR_ENDPOINT", ""),
			ClientID:     get("CASDOOR_CLIENT_ID", ""),
			ClientSecret: get("CASDOOR_CLIENT_SECRET", ""),
			Cert:         get("CASDOOR_CERT", ""),
			Organization: get("CASDOOR_ORGANIZATION", ""),
			Application:  get("CASDOOR_APPLICATION", ""),
		},
		Kafka: KafkaConfig{
			Brokers: splitList(get("KAFKA_BROKERS", "")),
			Topic:   get("KAFKA_TOPIC", "scms.store.changes"),
		},
		Client: ClientConfig{
			BaseURL:            strings.TrimRight(get("SCMS_API_URL", "http://localhost:3001"), "/"),
			Timeout:            timeout,
			Token:              get("SCMS_API_TOKEN", ""),
			CascadeConcurrency: concurrency,
		},
	}

	switch cfg.StoreDriver {
	case StoreDriverMemory:
	case StoreDriverPostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required when STORE_DRIVER=postgres")
		}
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}

	return cfg, nil
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid LOG_LEVEL %q: %w", s, err)
	}
	return level, nil
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
