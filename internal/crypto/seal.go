package crypto

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/chacha20poly1305"
)

var (
	ErrSealedTooShort = errors.New("sealed data too short")
	ErrOpenFailed     = errors.New("sealed data could not be opened")
	ErrEmptySecret    = errors.New("sealing secret must not be empty")
)

// KeyParams configures the Argon2id derivation of history keys.
type KeyParams struct {
	Memory      uint32
	Iterations  uint32
	Parallelism uint8
	Salt        []byte
}

// DefaultKeyParams returns the Argon2id parameters used for history keys.
// The salt is fixed so the same secret always yields the same keys.
func DefaultKeyParams() KeyParams {
	return KeyParams{
		Memory:      64 * 1024,
		Iterations:  3,
		Parallelism: 2,
		Salt:        []byte("passgen-history-v1"),
	}
}

// Sealer encrypts history entries at rest and fingerprints them for
// exact-match deduplication without storing plaintext.
type Sealer struct {
	sealKey  []byte
	printKey []byte
}

// NewSealer derives a Sealer from secret with the default key parameters.
func NewSealer(secret string) (*Sealer, error) {
	return NewSealerWithParams(secret, DefaultKeyParams())
}

// NewSealerWithParams derives a Sealer from secret using params.
// One 64-byte Argon2id output is split into the AEAD key and the fingerprint key.
func NewSealerWithParams(secret string, params KeyParams) (*Sealer, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}

	material := argon2.IDKey([]byte(secret), params.Salt, params.Iterations, params.Memory, params.Parallelism,
		chacha20poly1305.KeySize+blake2b.Size256)

	return &Sealer{
		sealKey:  material[:chacha20poly1305.KeySize],
		printKey: material[chacha20poly1305.KeySize:],
	}, nil
}

// Seal encrypts plaintext with XChaCha20-Poly1305. The random nonce is prepended.
func (s *Sealer) Seal(plaintext string) ([]byte, error) {
	aead, err := chacha20poly1305.NewX(s.sealKey)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, aead.NonceSize(), aead.NonceSize()+len(plaintext)+aead.Overhead())
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRandomUnavailable, err)
	}

	return aead.Seal(nonce, nonce, []byte(plaintext), nil), nil
}

// Open decrypts data produced by Seal.
func (s *Sealer) Open(sealed []byte) (string, error) {
	aead, err := chacha20poly1305.NewX(s.sealKey)
	if err != nil {
		return "", err
	}

	if len(sealed) < aead.NonceSize()+aead.Overhead() {
		return "", ErrSealedTooShort
	}

	nonce, ciphertext := sealed[:aead.NonceSize()], sealed[aead.NonceSize():]
	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", ErrOpenFailed
	}

	return string(plaintext), nil
}

// Fingerprint returns a keyed BLAKE2b-256 digest of plaintext, hex encoded.
// Equal passwords always produce equal fingerprints under the same Sealer.
func (s *Sealer) Fingerprint(plaintext string) string {
	h, err := blake2b.New256(s.printKey)
	if err != nil {
		// printKey is always blake2b.Size256 bytes, within the 64-byte key limit.
		panic(err)
	}
	h.Write([]byte(plaintext))
	return hex.EncodeToString(h.Sum(nil))
}
