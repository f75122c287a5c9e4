package config

import "errors"

var (
	// ErrNotFound is returned when the CLI configuration file does not exist.
	ErrNotFound = errors.New("config file not found")
	// ErrParse is returned when the CLI configuration file is not valid YAML
	// for the expected schema.
	ErrParse = errors.New("config file is malformed")
)
