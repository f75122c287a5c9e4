package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"go.uber.org/zap/zapcore"
)

const (
	// DefaultRPCURL is the local validator endpoint used when the CLI config has none.
	DefaultRPCURL   = "http://localhost:8899"
	defaultLogLevel = "info"

	envConfigPath     = "SOLCFG_CONFIG"
	envFallbackRPCURL = "SOLCFG_FALLBACK_RPC_URL"
	envLogLevel       = "SOLCFG_LOG_LEVEL"
)

// Settings aggregates runtime configuration resolved from multiple sources.
// Precedence: CLI flags > Environment variables > Defaults
type Settings struct {
	// ConfigPath is the Solana CLI configuration file to read.
	ConfigPath     string
	FallbackRPCURL string
	LogLevel       string
}

// CLIOverrides holds command-line flag overrides.
type CLIOverrides struct {
	ConfigPath     *string
	FallbackRPCURL *string
	LogLevel       *string
}

// Load resolves Settings with precedence CLI flags > Environment variables > Defaults.
func Load(overrides *CLIOverrides) (Settings, error) {
	cfg := defaultSettings()

	applyEnvSettings(&cfg)

	if overrides != nil {
		applyCLIOverrides(&cfg, overrides)
	}

	if err := validateSettings(cfg); err != nil {
		return Settings{}, err
	}

	return cfg, nil
}

// defaultSettings returns Settings with default values. An unresolvable home
// directory leaves ConfigPath empty, which later loads as ErrNotFound.
func defaultSettings() Settings {
	path, _ := DefaultCLIConfigPath()
	return Settings{
		ConfigPath:     path,
		FallbackRPCURL: DefaultRPCURL,
		LogLevel:       defaultLogLevel,
	}
}

func applyEnvSettings(cfg *Settings) {
	if path := strings.TrimSpace(os.Getenv(envConfigPath)); path != "" {
		cfg.ConfigPath = path
	}

	if rpc := strings.TrimSpace(os.Getenv(envFallbackRPCURL)); rpc != "" {
		cfg.FallbackRPCURL = rpc
	}

	if level := strings.TrimSpace(os.Getenv(envLogLevel)); level != "" {
		cfg.LogLevel = level
	}
}

func applyCLIOverrides(cfg *Settings, overrides *CLIOverrides) {
	if overrides.ConfigPath != nil && *overrides.ConfigPath != "" {
		cfg.ConfigPath = *overrides.ConfigPath
	}

	if overrides.FallbackRPCURL != nil && *overrides.FallbackRPCURL != "" {
		cfg.FallbackRPCURL = *overrides.FallbackRPCURL
	}

	if overrides.LogLevel != nil && *overrides.LogLevel != "" {
		cfg.LogLevel = *overrides.LogLevel
	}
}

func validateSettings(cfg Settings) error {
	u, err := url.Parse(cfg.FallbackRPCURL)
	if err != nil {
		return fmt.Errorf("invalid fallback RPC URL %q: %w", cfg.FallbackRPCURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("fallback RPC URL must be an absolute http(s) URL, got %q", cfg.FallbackRPCURL)
	}

	if _, err := zapcore.ParseLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}

	return nil
}
