package keypair

import (
	"bytes"
	"crypto/ed25519"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/mr-tron/base58"
)

func TestNewProducesValidKeypair(t *testing.T) {
	t.Parallel()

	kp := New()
	if !IsValidSecretKey(kp.SecretKey()) {
		t.Fatalf("expected generated secret key to be valid")
	}
	if other := New(); bytes.Equal(other.SecretKey(), kp.SecretKey()) {
		t.Fatalf("expected distinct keypairs from consecutive generations")
	}

	msg := []byte("hello")
	sig := kp.Sign(msg)
	if !kp.Verify(msg, sig) {
		t.Fatalf("expected signature to verify")
	}
	if !ed25519.Verify(kp.PublicKey(), msg, sig) {
		t.Fatalf("expected signature to verify against public key")
	}
}

func TestFromSecretKey(t *testing.T) {
	t.Parallel()

	secret := fixedSecret()

	t.Run("valid", func(t *testing.T) {
		kp, err := FromSecretKey(secret)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !bytes.Equal(kp.SecretKey(), secret) {
			t.Fatalf("secret key not preserved")
		}
		if !bytes.Equal(kp.PublicKey(), secret[32:]) {
			t.Fatalf("public key should be the trailing 32 bytes")
		}
	})

	t.Run("input is copied", func(t *testing.T) {
		in := fixedSecret()
		kp, err := FromSecretKey(in)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		in[0] ^= 0xff
		if !bytes.Equal(kp.SecretKey(), secret) {
			t.Fatalf("keypair changed after caller mutated input")
		}
	})

	t.Run("wrong length", func(t *testing.T) {
		if _, err := FromSecretKey(secret[:32]); !errors.Is(err, ErrFormat) {
			t.Fatalf("expected ErrFormat, got %v", err)
		}
	})

	t.Run("mismatched public half", func(t *testing.T) {
		bad := fixedSecret()
		bad[63] ^= 0x01
		if _, err := FromSecretKey(bad); !errors.Is(err, ErrFormat) {
			t.Fatalf("expected ErrFormat, got %v", err)
		}
	})
}

func TestAddressIsBase58PublicKey(t *testing.T) {
	t.Parallel()

	kp, err := FromSecretKey(fixedSecret())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	decoded, err := base58.Decode(kp.Address())
	if err != nil {
		t.Fatalf("address is not base58: %v", err)
	}
	if !bytes.Equal(decoded, kp.PublicKey()) {
		t.Fatalf("address does not decode to public key")
	}
}

func TestFromFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	secret := fixedSecret()

	t.Run("round trip", func(t *testing.T) {
		path := writeRaw(t, dir, "ok.json", jsonArray(secret))
		kp, err := FromFile(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !bytes.Equal(kp.SecretKey(), secret) {
			t.Fatalf("expected byte-identical secret key")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := FromFile(filepath.Join(dir, "absent.json"))
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	testCases := map[string]string{
		"wrong length": jsonArray(secret[:63]),
		"not json":     "not a keypair",
		"object":       `{"secret":[1,2,3]}`,
		"out of range": strings.Replace(jsonArray(secret), "[", "[256,", 1),
		"negative":     strings.Replace(jsonArray(secret), "[", "[-1,", 1),
		"fractional":   strings.Replace(jsonArray(secret), "[", "[1.5,", 1),
		"null":         "null",
		"empty":        "",
	}
	for name, content := range testCases {
		t.Run(name, func(t *testing.T) {
			path := writeRaw(t, dir, strings.ReplaceAll(name, " ", "_")+".json", content)
			if _, err := FromFile(path); !errors.Is(err, ErrFormat) {
				t.Fatalf("expected ErrFormat, got %v", err)
			}
		})
	}
}

func TestWriteFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "id.json")
	kp := New()

	if err := WriteFile(path, kp, false); err != nil {
		t.Fatalf("WriteFile returned error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Fatalf("expected mode 0600, got %o", perm)
	}

	loaded, err := FromFile(path)
	if err != nil {
		t.Fatalf("FromFile returned error: %v", err)
	}
	if !bytes.Equal(loaded.SecretKey(), kp.SecretKey()) {
		t.Fatalf("written keypair does not round trip")
	}

	if err := WriteFile(path, New(), false); !errors.Is(err, ErrExists) {
		t.Fatalf("expected ErrExists, got %v", err)
	}

	replacement := New()
	if err := WriteFile(path, replacement, true); err != nil {
		t.Fatalf("overwrite returned error: %v", err)
	}
	loaded, err = FromFile(path)
	if err != nil {
		t.Fatalf("FromFile returned error: %v", err)
	}
	if loaded.Address() != replacement.Address() {
		t.Fatalf("expected overwritten keypair")
	}
}

func TestIsValidSecretKey(t *testing.T) {
	t.Parallel()

	if IsValidSecretKey(nil) {
		t.Fatalf("nil must not be valid")
	}
	if !IsValidSecretKey(fixedSecret()) {
		t.Fatalf("expected fixed secret to be valid")
	}
	if IsValidSecretKey(make([]byte, SecretKeySize)) {
		t.Fatalf("all-zero secret must not be valid")
	}
}

func fixedSecret() []byte {
	seed := make([]byte, ed25519.SeedSize)
	for i := range seed {
		seed[i] = byte(i + 1)
	}
	return ed25519.NewKeyFromSeed(seed)
}

func jsonArray(b []byte) string {
	parts := make([]string, len(b))
	for i, v := range b {
		parts[i] = strconv.Itoa(int(v))
	}
	return "[" + strings.Join(parts, ",") + "]"
}

func writeRaw(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}
