package application

import (
	"fmt"
	"net"
	"net/url"
	"strconv"

	"go.uber.org/zap"

	"github.com/eugenenazirov/solcfg/internal/config"
	"github.com/eugenenazirov/solcfg/internal/keypair"
)

const defaultCommitment = "confirmed"

// Source reports where a resolved value came from.
type Source string

const (
	SourceConfig   Source = "config"
	SourceComputed Source = "computed"
	SourceFallback Source = "fallback"
)

// Summary is the full view of the resolved CLI configuration.
type Summary struct {
	ConfigPath      string `yaml:"config_path"`
	RPCURL          string `yaml:"json_rpc_url"`
	RPCURLSource    Source `yaml:"json_rpc_url_source"`
	WebsocketURL    string `yaml:"websocket_url"`
	WebsocketSource Source `yaml:"websocket_url_source"`
	Commitment      string `yaml:"commitment"`
	PayerAddress    string `yaml:"payer"`
	PayerSource     Source `yaml:"payer_source"`
}

// App resolves RPC endpoints and the payer keypair from the Solana CLI
// configuration file, substituting defaults when the file cannot be used.
// The file is re-read on every call.
type App struct {
	settings config.Settings
	logger   *zap.Logger
}

// New initializes the application from the provided settings.
func New(settings config.Settings, logger *zap.Logger) *App {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &App{
		settings: settings,
		logger:   logger.With(zap.String("config_path", settings.ConfigPath)),
	}
}

// ConfigPath returns the CLI configuration file this App reads.
func (a *App) ConfigPath() string {
	return a.settings.ConfigPath
}

// LoadConfig reads the CLI configuration file without any fallback.
func (a *App) LoadConfig() (*config.CLIConfig, error) {
	return config.LoadCLIConfig(a.settings.ConfigPath)
}

// RPCURL returns json_rpc_url from the CLI config, or the fallback URL with a
// logged warning when the file is unusable or the field is empty.
func (a *App) RPCURL() string {
	cfg, err := a.LoadConfig()
	rpc, _ := a.rpcURL(cfg, err)
	return rpc
}

// Payer returns the keypair referenced by keypair_path, or a freshly generated
// keypair with a logged warning when it cannot be loaded.
func (a *App) Payer() *keypair.Keypair {
	cfg, err := a.LoadConfig()
	kp, _ := a.payer(cfg, err)
	return kp
}

// WebsocketURL returns websocket_url from the CLI config, or one derived from
// the resolved RPC URL.
func (a *App) WebsocketURL() string {
	cfg, err := a.LoadConfig()
	rpc, _ := a.rpcURL(cfg, err)
	ws, _ := a.websocketURL(cfg, rpc)
	return ws
}

// Summary resolves every value from a single read of the CLI config.
func (a *App) Summary() Summary {
	cfg, err := a.LoadConfig()

	rpc, rpcSource := a.rpcURL(cfg, err)
	ws, wsSource := a.websocketURL(cfg, rpc)
	payer, payerSource := a.payer(cfg, err)

	commitment := defaultCommitment
	if cfg != nil && cfg.Commitment != "" {
		commitment = cfg.Commitment
	}

	return Summary{
		ConfigPath:      a.settings.ConfigPath,
		RPCURL:          rpc,
		RPCURLSource:    rpcSource,
		WebsocketURL:    ws,
		WebsocketSource: wsSource,
		Commitment:      commitment,
		PayerAddress:    payer.Address(),
		PayerSource:     payerSource,
	}
}

func (a *App) rpcURL(cfg *config.CLIConfig, loadErr error) (string, Source) {
	fallback := a.settings.FallbackRPCURL

	switch {
	case loadErr != nil:
		a.logger.Warn("failed to read RPC URL from CLI config file, falling back",
			zap.String("fallback", fallback), zap.Error(loadErr))
	case cfg.JSONRPCURL == "":
		a.logger.Warn("CLI config file has no json_rpc_url, falling back",
			zap.String("fallback", fallback))
	default:
		return cfg.JSONRPCURL, SourceConfig
	}

	return fallback, SourceFallback
}

func (a *App) payer(cfg *config.CLIConfig, loadErr error) (*keypair.Keypair, Source) {
	switch {
	case loadErr != nil:
		a.logger.Warn("failed to read keypair path from CLI config file, generating new keypair",
			zap.Error(loadErr))
	case cfg.KeypairPath == "":
		a.logger.Warn("CLI config file has no keypair_path, generating new keypair")
	default:
		kp, err := keypair.FromFile(cfg.KeypairPath)
		if err == nil {
			return kp, SourceConfig
		}
		a.logger.Warn("failed to create keypair from CLI config file, generating new keypair",
			zap.String("keypair_path", cfg.KeypairPath), zap.Error(err))
	}

	return keypair.New(), SourceFallback
}

func (a *App) websocketURL(cfg *config.CLIConfig, rpc string) (string, Source) {
	if cfg != nil && cfg.WebsocketURL != "" {
		return cfg.WebsocketURL, SourceConfig
	}

	ws, err := ComputeWebsocketURL(rpc)
	if err != nil {
		a.logger.Warn("failed to derive websocket URL from RPC URL, using fallback RPC URL",
			zap.String("rpc_url", rpc), zap.Error(err))
		if ws, err = ComputeWebsocketURL(a.settings.FallbackRPCURL); err != nil {
			return "", SourceFallback
		}
		return ws, SourceFallback
	}
	return ws, SourceComputed
}

// ComputeWebsocketURL derives the PubSub endpoint for an RPC URL: http becomes
// ws, https becomes wss, and an explicit port is incremented by one.
func ComputeWebsocketURL(rpc string) (string, error) {
	u, err := url.Parse(rpc)
	if err != nil {
		return "", fmt.Errorf("parse RPC URL: %w", err)
	}

	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	default:
		return "", fmt.Errorf("unsupported RPC URL scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return "", fmt.Errorf("RPC URL %q has no host", rpc)
	}

	if p := u.Port(); p != "" {
		port, err := strconv.Atoi(p)
		if err != nil {
			return "", fmt.Errorf("parse RPC URL port: %w", err)
		}
		u.Host = net.JoinHostPort(u.Hostname(), strconv.Itoa(port+1))
	}

	return u.String(), nil
}
