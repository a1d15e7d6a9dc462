package config

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "8080" || cfg.Env != "development" || cfg.LogLevel != "info" {
		t.Errorf("unexpected server defaults: %+v", cfg)
	}
	if cfg.Store.Backend != BackendMemory || cfg.Store.Namespace != "" {
		t.Errorf("unexpected store defaults: %+v", cfg.Store)
	}
	if cfg.TokenTTL != 0 {
		t.Errorf("expected non-expiring tokens by default, got %v", cfg.TokenTTL)
	}
	if cfg.BcryptCost != 10 {
		t.Errorf("expected bcrypt cost 10, got %d", cfg.BcryptCost)
	}
	if cfg.Redis.Addr != "localhost:6379" || cfg.Mongo.Database != "car_rental" {
		t.Errorf("unexpected backend defaults: %+v %+v", cfg.Redis, cfg.Mongo)
	}
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"ENV":             "production",
		"JWT_SECRET":      "s3cret",
		"TOKEN_TTL":       "12h",
		"STORE_BACKEND":   "redis",
		"STORE_NAMESPACE": "tenant-a",
		"REDIS_DB":        "3",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.TokenTTL != 12*time.Hour {
		t.Errorf("expected 12h, got %v", cfg.TokenTTL)
	}
	if cfg.Store.Backend != BackendRedis || cfg.Store.Namespace != "tenant-a" || cfg.Redis.DB != 3 {
		t.Errorf("unexpected overrides: %+v %+v", cfg.Store, cfg.Redis)
	}
	if cfg.IsDevelopment() {
		t.Errorf("expected production")
	}
}

func TestLoad_UnknownBackend(t *testing.T) {
	_, err := load(context.Background(), envconfig.MapLookuper(map[string]string{"STORE_BACKEND": "sqlite"}))
	if err == nil || !strings.Contains(err.Error(), "STORE_BACKEND") {
		t.Fatalf("expected backend error, got %v", err)
	}
}

func TestLoad_SecretRequiredOutsideDevelopment(t *testing.T) {
	_, err := load(context.Background(), envconfig.MapLookuper(map[string]string{"ENV": "production"}))
	if err == nil || !strings.Contains(err.Error(), "JWT_SECRET") {
		t.Fatalf("expected JWT_SECRET error, got %v", err)
	}
}
