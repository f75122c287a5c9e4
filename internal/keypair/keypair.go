package keypair

import (
	"bytes"
	"crypto/ed25519"
	"crypto/rand"
	"fmt"

	"github.com/mr-tron/base58"
)

const (
	// SecretKeySize is the length of a Solana secret key: seed followed by public key.
	SecretKeySize = ed25519.PrivateKeySize
	// PublicKeySize is the length of the public key, which is also the address.
	PublicKeySize = ed25519.PublicKeySize
)

// Keypair is an ed25519 signing key in the 64-byte Solana layout.
type Keypair struct {
	key ed25519.PrivateKey
}

// New generates a random keypair.
func New() *Keypair {
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		// crypto/rand.Reader does not fail on supported platforms.
		panic(fmt.Sprintf("generate ed25519 key: %v", err))
	}
	return &Keypair{key: priv}
}

// FromSecretKey builds a keypair from a 64-byte secret key. The bytes are copied.
func FromSecretKey(secret []byte) (*Keypair, error) {
	if len(secret) != SecretKeySize {
		return nil, fmt.Errorf("%w: secret key must be %d bytes, got %d", ErrFormat, SecretKeySize, len(secret))
	}
	if !IsValidSecretKey(secret) {
		return nil, fmt.Errorf("%w: public key does not match seed", ErrFormat)
	}

	key := make(ed25519.PrivateKey, SecretKeySize)
	copy(key, secret)
	return &Keypair{key: key}, nil
}

// IsValidSecretKey reports whether secret is 64 bytes and its public half is
// derived from its seed half.
func IsValidSecretKey(secret []byte) bool {
	if len(secret) != SecretKeySize {
		return false
	}
	derived := ed25519.NewKeyFromSeed(secret[:ed25519.SeedSize])
	return bytes.Equal(derived[ed25519.SeedSize:], secret[ed25519.SeedSize:])
}

// PublicKey returns the 32-byte public key.
func (k *Keypair) PublicKey() ed25519.PublicKey {
	pub := make(ed25519.PublicKey, PublicKeySize)
	copy(pub, k.key[ed25519.SeedSize:])
	return pub
}

// SecretKey returns a copy of the 64-byte secret key.
func (k *Keypair) SecretKey() []byte {
	out := make([]byte, SecretKeySize)
	copy(out, k.key)
	return out
}

// Address returns the base58 encoded public key.
func (k *Keypair) Address() string {
	return base58.Encode(k.key[ed25519.SeedSize:])
}

// Sign signs message with the secret key.
func (k *Keypair) Sign(message []byte) []byte {
	return ed25519.Sign(k.key, message)
}

// Verify reports whether sig is a valid signature of message by this keypair.
func (k *Keypair) Verify(message, sig []byte) bool {
	return ed25519.Verify(k.PublicKey(), message, sig)
}
