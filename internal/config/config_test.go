package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg := Default()
	if cfg.RPC.Addr != DefaultRPCAddr {
		t.Fatalf("addr = %q", cfg.RPC.Addr)
	}
	if cfg.RPC.RateLimitEnabled == nil || !*cfg.RPC.RateLimitEnabled {
		t.Fatal("rate limiting should default to enabled")
	}
	if cfg.DevMode {
		t.Fatal("devMode should default to off")
	}
	if len(cfg.Networks.Required) == 0 || len(cfg.Networks.Registered) == 0 {
		t.Fatalf("networks = %+v", cfg.Networks)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "walletd.yaml")
	content := `
rpc:
  addr: "0.0.0.0:9000"
  token: "abc"
  rateLimitEnabled: false
networks:
  required: ["bitcoin"]
  registered: ["bitcoin", "litecoin"]
devMode: true
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg := LoadFromPath(path)
	if cfg.RPC.Addr != "0.0.0.0:9000" {
		t.Fatalf("addr = %q", cfg.RPC.Addr)
	}
	if cfg.RPC.Token != "abc" {
		t.Fatalf("token = %q", cfg.RPC.Token)
	}
	if cfg.RPC.RateLimitEnabled == nil || *cfg.RPC.RateLimitEnabled {
		t.Fatal("file should disable rate limiting")
	}
	// Unset file fields keep their defaults.
	if cfg.RPC.RateLimitRPS != 30 || cfg.RPC.RateLimitBurst != 60 {
		t.Fatalf("rate limit = %v/%d", cfg.RPC.RateLimitRPS, cfg.RPC.RateLimitBurst)
	}
	if len(cfg.Networks.Required) != 1 || cfg.Networks.Required[0] != "bitcoin" {
		t.Fatalf("required = %v", cfg.Networks.Required)
	}
	if len(cfg.Networks.Registered) != 2 {
		t.Fatalf("registered = %v", cfg.Networks.Registered)
	}
	if !cfg.DevMode {
		t.Fatal("devMode should come from the file")
	}
}

func TestMissingFileFallsBackToDefaults(t *testing.T) {
	cfg := LoadFromPath(filepath.Join(t.TempDir(), "nope.yaml"))
	if cfg.RPC.Addr != DefaultRPCAddr {
		t.Fatalf("addr = %q", cfg.RPC.Addr)
	}
}

func TestUnparseableFileFallsBackToDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "walletd.yaml")
	if err := os.WriteFile(path, []byte("rpc: [not: a: map"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg := LoadFromPath(path)
	if cfg.RPC.Addr != DefaultRPCAddr {
		t.Fatalf("addr = %q", cfg.RPC.Addr)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("WDK_RPC_ADDR", "127.0.0.1:7777")
	t.Setenv("WDK_RPC_TOKEN", "envtoken")
	t.Setenv("WDK_RPC_RATE_LIMIT_ENABLED", "false")
	t.Setenv("WDK_RPC_RATE_LIMIT_RPS", "5")
	t.Setenv("WDK_RPC_RATE_LIMIT_BURST", "10")
	t.Setenv("WDK_DEV_MODE", "true")
	t.Setenv("WDK_REQUIRED_NETWORKS", "bitcoin, ethereum ,solana")

	cfg := LoadFromPath(filepath.Join(t.TempDir(), "absent.yaml"))
	if cfg.RPC.Addr != "127.0.0.1:7777" {
		t.Fatalf("addr = %q", cfg.RPC.Addr)
	}
	if cfg.RPC.Token != "envtoken" {
		t.Fatalf("token = %q", cfg.RPC.Token)
	}
	if cfg.RPC.RateLimitEnabled == nil || *cfg.RPC.RateLimitEnabled {
		t.Fatal("env should disable rate limiting")
	}
	if cfg.RPC.RateLimitRPS != 5 || cfg.RPC.RateLimitBurst != 10 {
		t.Fatalf("rate limit = %v/%d", cfg.RPC.RateLimitRPS, cfg.RPC.RateLimitBurst)
	}
	if !cfg.DevMode {
		t.Fatal("devMode should come from env")
	}
	want := []string{"bitcoin", "ethereum", "solana"}
	if len(cfg.Networks.Required) != len(want) {
		t.Fatalf("required = %v", cfg.Networks.Required)
	}
	for i, network := range want {
		if cfg.Networks.Required[i] != network {
			t.Fatalf("required[%d] = %q, want %q", i, cfg.Networks.Required[i], network)
		}
	}
}

func TestTestEnvLoosensDefaults(t *testing.T) {
	t.Setenv("WDK_ENV", "test")
	cfg := LoadFromPath(filepath.Join(t.TempDir(), "absent.yaml"))
	if cfg.RPC.RateLimitEnabled == nil || *cfg.RPC.RateLimitEnabled {
		t.Fatal("test env should disable rate limiting")
	}
	if !cfg.DevMode {
		t.Fatal("test env should enable devMode")
	}
}

func TestIsTestEnv(t *testing.T) {
	for _, env := range []string{"test", "Testing", "DEVELOPMENT", "local"} {
		t.Setenv("WDK_ENV", env)
		if !IsTestEnv() {
			t.Fatalf("WDK_ENV=%q should be a test env", env)
		}
	}
	t.Setenv("WDK_ENV", "production")
	if IsTestEnv() {
		t.Fatal("production must not be a test env")
	}
}
