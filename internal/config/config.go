// Package config loads daemon configuration from YAML with environment
// overrides. Flags layered on top by the entrypoint win over both.
package config

import (
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const DefaultRPCAddr = "127.0.0.1:8484"

// Config is the full daemon configuration.
type Config struct {
	RPC      RPCConfig `yaml:"rpc"`
	Networks NetConfig `yaml:"networks"`
	// DevMode widens error serialization to include cause chains. Never
	// enable in production.
	DevMode bool `yaml:"devMode"`
}

type RPCConfig struct {
	Addr             string  `yaml:"addr"`
	Token            string  `yaml:"token"`
	RateLimitEnabled *bool   `yaml:"rateLimitEnabled"`
	RateLimitRPS     float64 `yaml:"rateLimitRps"`
	RateLimitBurst   int     `yaml:"rateLimitBurst"`
	MetricsEnabled   *bool   `yaml:"metricsEnabled"`
}

type NetConfig struct {
	// Required networks must all be present in every initializeWDK config.
	Required []string `yaml:"required"`
	// Registered networks get a wallet manager in the process registry.
	Registered []string `yaml:"registered"`
}

func Default() Config {
	enabled := true
	return Config{
		RPC: RPCConfig{
			Addr:             DefaultRPCAddr,
			RateLimitEnabled: &enabled,
			RateLimitRPS:     30,
			RateLimitBurst:   60,
			MetricsEnabled:   &enabled,
		},
		Networks: NetConfig{
			Required:   []string{"bitcoin", "ethereum"},
			Registered: []string{"bitcoin", "ethereum", "solana"},
		},
	}
}

// LoadFromPath reads configPath if given, otherwise tries the default
// candidates. A missing or unparseable file falls back to defaults; env
// overrides apply either way.
func LoadFromPath(configPath string) Config {
	cfg := Default()

	candidates := make([]string, 0, 2)
	if configPath != "" {
		candidates = append(candidates, configPath)
	} else {
		candidates = append(candidates,
			"configs/walletd.yaml",
			"go-daemon/configs/walletd.yaml",
		)
	}

	for _, path := range candidates {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var parsed Config
		if err := yaml.Unmarshal(data, &parsed); err != nil {
			continue
		}
		merge(&cfg, parsed)
		break
	}

	applyEnvOverrides(&cfg)
	return cfg
}

func merge(dst *Config, src Config) {
	if src.RPC.Addr != "" {
		dst.RPC.Addr = src.RPC.Addr
	}
	if src.RPC.Token != "" {
		dst.RPC.Token = src.RPC.Token
	}
	if src.RPC.RateLimitEnabled != nil {
		dst.RPC.RateLimitEnabled = src.RPC.RateLimitEnabled
	}
	if src.RPC.RateLimitRPS > 0 {
		dst.RPC.RateLimitRPS = src.RPC.RateLimitRPS
	}
	if src.RPC.RateLimitBurst > 0 {
		dst.RPC.RateLimitBurst = src.RPC.RateLimitBurst
	}
	if src.RPC.MetricsEnabled != nil {
		dst.RPC.MetricsEnabled = src.RPC.MetricsEnabled
	}
	if len(src.Networks.Required) > 0 {
		dst.Networks.Required = src.Networks.Required
	}
	if len(src.Networks.Registered) > 0 {
		dst.Networks.Registered = src.Networks.Registered
	}
	if src.DevMode {
		dst.DevMode = true
	}
}

func applyEnvOverrides(cfg *Config) {
	if v := envString("WDK_RPC_ADDR"); v != "" {
		cfg.RPC.Addr = v
	}
	if v := envString("WDK_RPC_TOKEN"); v != "" {
		cfg.RPC.Token = v
	}
	if v, ok := parseBoolEnv("WDK_RPC_RATE_LIMIT_ENABLED"); ok {
		cfg.RPC.RateLimitEnabled = &v
	} else if IsTestEnv() {
		disabled := false
		cfg.RPC.RateLimitEnabled = &disabled
	}
	if v := envString("WDK_RPC_RATE_LIMIT_RPS"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
			cfg.RPC.RateLimitRPS = parsed
		}
	}
	if v := envString("WDK_RPC_RATE_LIMIT_BURST"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			cfg.RPC.RateLimitBurst = parsed
		}
	}
	if v, ok := parseBoolEnv("WDK_METRICS_ENABLED"); ok {
		cfg.RPC.MetricsEnabled = &v
	}
	if v, ok := parseBoolEnv("WDK_DEV_MODE"); ok {
		cfg.DevMode = v
	} else if IsTestEnv() {
		cfg.DevMode = true
	}
	if v := envCSV("WDK_REQUIRED_NETWORKS"); len(v) > 0 {
		cfg.Networks.Required = v
	}
	if v := envCSV("WDK_REGISTERED_NETWORKS"); len(v) > 0 {
		cfg.Networks.Registered = v
	}
}

// IsTestEnv reports whether WDK_ENV marks a non-production environment.
func IsTestEnv() bool {
	switch strings.ToLower(envString("WDK_ENV")) {
	case "test", "testing", "development", "local":
		return true
	default:
		return false
	}
}

func envString(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func envCSV(key string) []string {
	raw := envString(key)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func parseBoolEnv(key string) (bool, bool) {
	switch strings.ToLower(envString(key)) {
	case "1", "true", "yes", "on":
		return true, true
	case "0", "false", "no", "off":
		return false, true
	default:
		return false, false
	}
}
