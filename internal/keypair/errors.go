package keypair

import "errors"

var (
	// ErrNotFound is returned when the keypair file does not exist.
	ErrNotFound = errors.New("keypair file not found")
	// ErrFormat is returned when the secret key is not a JSON array of 64 bytes
	// whose trailing half is the public key of its leading seed.
	ErrFormat = errors.New("invalid keypair format")
	// ErrExists is returned by WriteFile when the target exists and overwrite is disabled.
	ErrExists = errors.New("keypair file already exists")
)
