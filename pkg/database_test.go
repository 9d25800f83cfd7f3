package pkg

import (
	"testing"

	"github.com/alicebob/miniredis/v2"

	"github.com/SAP-F-2025/scms/internal/config"
)

func TestNewRedisClient(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := NewRedisClient(&config.Config{RedisURL: "redis://" + mr.Addr() + "/0"})
	if err != nil {
		t.Fatalf("NewRedisClient failed: %v", err)
	}
	defer client.Close()

	if err := client.Set(t.Context(), "k", "v", 0).Err(); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if got, _ := mr.Get("k"); got != "v" {
		t.Errorf("value = %q", got)
	}
}

func TestNewRedisClient_InvalidURL(t *testing.T) {
	if _, err := NewRedisClient(&config.Config{RedisURL: "not a url"}); err == nil {
		t.Error("expected error for invalid url")
	}
}
