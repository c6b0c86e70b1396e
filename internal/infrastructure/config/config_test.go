package config

import (
	"context"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(context.Background())
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Port != "3000" {
		t.Fatalf("Port = %q, want 3000", cfg.Port)
	}
	if cfg.APIBaseURL != "http://localhost:8000/api/v1" {
		t.Fatalf("APIBaseURL = %q", cfg.APIBaseURL)
	}
	if cfg.GatewayTimeoutSeconds != 30 {
		t.Fatalf("GatewayTimeoutSeconds = %d, want 30", cfg.GatewayTimeoutSeconds)
	}
	if cfg.Store.Kind != "file" {
		t.Fatalf("Store.Kind = %q, want file", cfg.Store.Kind)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://qms.example.com/api/v1")
	t.Setenv("CREDENTIAL_STORE", "redis")
	t.Setenv("REDIS_ADDR", "redis.internal:6379")

	cfg, err := Load(context.Background())
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIBaseURL != "https://qms.example.com/api/v1" {
		t.Fatalf("APIBaseURL = %q", cfg.APIBaseURL)
	}
	if cfg.Store.Kind != "redis" || cfg.Redis.Addr != "redis.internal:6379" {
		t.Fatalf("redis store config not applied: %+v", cfg)
	}
}

func TestLoad_RejectsUnknownStore(t *testing.T) {
	t.Setenv("CREDENTIAL_STORE", "mongodb")

	if _, err := Load(context.Background()); err == nil {
		t.Fatalf("expected error for unknown credential store")
	}
}
