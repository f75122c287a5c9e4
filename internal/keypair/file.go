package keypair

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// FromFile reads a keypair stored as a JSON array of secret key bytes, the
// format written by solana-keygen.
func FromFile(path string) (*Keypair, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read keypair %s: %w", path, ErrNotFound)
		}
		return nil, fmt.Errorf("read keypair %s: %w", path, err)
	}

	secret, err := parseSecret(data)
	if err != nil {
		return nil, fmt.Errorf("parse keypair %s: %w", path, err)
	}

	kp, err := FromSecretKey(secret)
	if err != nil {
		return nil, fmt.Errorf("parse keypair %s: %w", path, err)
	}
	return kp, nil
}

// WriteFile stores kp at path as a JSON byte array with owner-only permissions.
// An existing file is replaced only when overwrite is set.
func WriteFile(path string, kp *Keypair, overwrite bool) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("create keypair directory: %w", err)
		}
	}

	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !overwrite {
		flags |= os.O_EXCL
	}

	f, err := os.OpenFile(path, flags, 0o600)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("write keypair %s: %w", path, ErrExists)
		}
		return fmt.Errorf("write keypair %s: %w", path, err)
	}

	if _, err := f.WriteString(encodeSecret(kp.key)); err != nil {
		_ = f.Close()
		return fmt.Errorf("write keypair %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close keypair %s: %w", path, err)
	}
	return nil
}

func parseSecret(data []byte) ([]byte, error) {
	var values []int
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}

	secret := make([]byte, len(values))
	for i, v := range values {
		if v < 0 || v > 255 {
			return nil, fmt.Errorf("%w: element %d out of byte range: %d", ErrFormat, i, v)
		}
		secret[i] = byte(v)
	}
	return secret, nil
}

// encodeSecret renders bytes as a JSON array of integers; encoding/json would
// emit base64 for a []byte.
func encodeSecret(secret []byte) string {
	var sb strings.Builder
	sb.Grow(len(secret)*4 + 2)
	sb.WriteByte('[')
	for i, b := range secret {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(int(b)))
	}
	sb.WriteByte(']')
	return sb.String()
}
