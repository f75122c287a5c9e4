package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// CLIConfig mirrors the file written by `solana config set`.
type CLIConfig struct {
	JSONRPCURL    string            `yaml:"json_rpc_url"`
	WebsocketURL  string            `yaml:"websocket_url"`
	KeypairPath   string            `yaml:"keypair_path"`
	AddressLabels map[string]string `yaml:"address_labels"`
	Commitment    string            `yaml:"commitment"`
}

// DefaultPath returns <home>/.config/solana/cli/config.yml.
func DefaultPath(home string) string {
	return filepath.Join(home, ".config", "solana", "cli", "config.yml")
}

// DefaultCLIConfigPath resolves DefaultPath against the current user's home directory.
func DefaultCLIConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return DefaultPath(home), nil
}

// LoadCLIConfig reads and parses the CLI configuration file at path.
// A missing file yields ErrNotFound and malformed content yields ErrParse.
func LoadCLIConfig(path string) (*CLIConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read file %s: %w", path, ErrNotFound)
		}
		return nil, fmt.Errorf("read file %s: %w", path, err)
	}

	var cfg CLIConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrParse, path, err)
	}

	return &cfg, nil
}
