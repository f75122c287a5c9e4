// Package config locates and parses the Solana CLI configuration file and
// loads the tool's own runtime settings from CLI flags, environment variables
// and defaults, with precedence: CLI flags > Environment variables > Defaults.
package config
