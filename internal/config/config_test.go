package config

import (
	"log/slog"
	"testing"
	"time"
)

func envOf(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := FromEnv(envOf(nil))
	if err != nil {
		t.Fatalf("FromEnv failed: %v", err)
	}

	if cfg.Port != "3001" {
		t.Errorf("Port = %q, want 3001", cfg.Port)
	}
	if cfg.StoreDriver != StoreDriverMemory {
		t.Errorf("StoreDriver = %q", cfg.StoreDriver)
	}
	if cfg.Client.BaseURL != "http://localhost:3001" {
		t.Errorf("BaseURL = %q", cfg.Client.BaseURL)
	}
	if cfg.Client.Timeout != 10*time.Second {
		t.Errorf("Timeout = %v", cfg.Client.Timeout)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("LogLevel = %v", cfg.LogLevel)
	}
	if cfg.Casdoor.Enabled() {
		t.Error("casdoor must be disabled without endpoint")
	}
	if !cfg.AutoMigrate {
		t.Error("AutoMigrate should default to true")
	}
}

func TestFromEnv_Overrides(t *testing.T) {
	cfg, err := FromEnv(envOf(map[string]string{
		"SCMS_API_URL":             "http://store:9000/",
		"SCMS_API_TIMEOUT":         "2s",
		"SCMS_CASCADE_CONCURRENCY": "4",
		"LOG_LEVEL":                "debug",
		"KAFKA_BROKERS":            "k1:9092, k2:9092,",
		"STORE_DRIVER":             "postgres",
		"DATABASE_URL":             "postgres://localhost/scms",
	}))
	if err != nil {
		t.Fatalf("FromEnv failed: %v", err)
	}

	if cfg.Client.BaseURL != "http://store:9000" {
		t.Errorf("trailing slash should be trimmed, got %q", cfg.Client.BaseURL)
	}
	if cfg.Client.Timeout != 2*time.Second || cfg.Client.CascadeConcurrency != 4 {
		t.Errorf("unexpected client config %+v", cfg.Client)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("LogLevel = %v", cfg.LogLevel)
	}
	if len(cfg.Kafka.Brokers) != 2 || cfg.Kafka.Brokers[1] != "k2:9092" {
		t.Errorf("Brokers = %v", cfg.Kafka.Brokers)
	}
}

func TestFromEnv_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "postgres without url", env: map[string]string{"STORE_DRIVER": "postgres"}},
		{name: "unknown driver", env: map[string]string{"STORE_DRIVER": "mongo"}},
		{name: "bad timeout", env: map[string]string{"SCMS_API_TIMEOUT": "soon"}},
		{name: "bad level", env: map[string]string{"LOG_LEVEL": "loud"}},
		{name: "negative concurrency", env: map[string]string{"SCMS_CASCADE_CONCURRENCY": "-1"}},
		{name: "bad auto migrate", env: map[string]string{"DB_AUTO_MIGRATE": "sometimes"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := FromEnv(envOf(tt.env)); err == nil {
				t.Error("expected error")
			}
		})
	}
}
