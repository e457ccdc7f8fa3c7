package config

import (
	"testing"
	"time"
)

func TestLoadFromEnv_Defaults(t *testing.T) {
	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv: %v", err)
	}
	if cfg.Env != "dev" {
		t.Fatalf("Env=%q want dev", cfg.Env)
	}
	if cfg.HTTP.Addr != ":8080" {
		t.Fatalf("Addr=%q want :8080", cfg.HTTP.Addr)
	}
	if cfg.Redis.RoomTTL != 24*time.Hour {
		t.Fatalf("RoomTTL=%s want 24h", cfg.Redis.RoomTTL)
	}
}

func TestLoadFromEnv_Overrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("ROOM_TTL", "1h")

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv: %v", err)
	}
	if cfg.HTTP.Addr != ":9000" {
		t.Fatalf("Addr=%q want :9000", cfg.HTTP.Addr)
	}
	if cfg.Log.Format != "json" {
		t.Fatalf("Format=%q want json", cfg.Log.Format)
	}
	if cfg.Redis.RoomTTL != time.Hour {
		t.Fatalf("RoomTTL=%s want 1h", cfg.Redis.RoomTTL)
	}
}

func TestValidate(t *testing.T) {
	base := func() Config {
		cfg, err := LoadFromEnv()
		if err != nil {
			t.Fatalf("LoadFromEnv: %v", err)
		}
		return cfg
	}

	cfg := base()
	cfg.Log.Format = "xml"
	if cfg.Validate() == nil {
		t.Fatal("bad log format accepted")
	}

	cfg = base()
	cfg.Redis.RoomTTL = 0
	if cfg.Validate() == nil {
		t.Fatal("zero room TTL accepted")
	}

	cfg = base()
	cfg.Postgres.URL = ""
	if cfg.Validate() == nil {
		t.Fatal("empty database URL accepted")
	}
}
