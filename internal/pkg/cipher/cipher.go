package cipher

import (
	"crypto/aes"
	stdcipher "crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

const keyInfo = "storefront identity cipher v1"

// Cipher encrypts short identifiers for embedding in links.
type Cipher interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(ciphertext string) (string, error)
}

// DecryptError is returned for any ciphertext that cannot be opened.
type DecryptError struct {
	Reason string
	Err    error
}

func (e *DecryptError) Error() string {
	if e.Err != nil {
		return "decrypt: " + e.Reason + ": " + e.Err.Error()
	}
	return "decrypt: " + e.Reason
}

func (e *DecryptError) Unwrap() error {
	return e.Err
}

// IsDecryptError reports whether err carries a DecryptError.
func IsDecryptError(err error) bool {
	var target *DecryptError
	return errors.As(err, &target)
}

// AESCipher implements Cipher with AES-256-GCM. Output is URL-safe base64 of nonce||sealed.
type AESCipher struct {
	aead stdcipher.AEAD
}

// NewAESCipher derives a 256-bit key from secret using HKDF-SHA256.
func NewAESCipher(secret string) (*AESCipher, error) {
	if secret == "" {
		return nil, errors.New("encryption secret must not be empty")
	}
	key := make([]byte, 32)
	if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(secret), nil, []byte(keyInfo)), key); err != nil {
		return nil, fmt.Errorf("derive key: %w", err)
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("init aes: %w", err)
	}
	aead, err := stdcipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("init gcm: %w", err)
	}
	return &AESCipher{aead: aead}, nil
}

// Encrypt seals plaintext under a fresh random nonce.
func (c *AESCipher) Encrypt(plaintext string) (string, error) {
	nonce := make([]byte, c.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}
	sealed := c.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.RawURLEncoding.EncodeToString(sealed), nil
}

// Decrypt opens ciphertext produced by Encrypt.
func (c *AESCipher) Decrypt(ciphertext string) (string, error) {
	raw, err := base64.RawURLEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", &DecryptError{Reason: "malformed encoding", Err: err}
	}
	nonceSize := c.aead.NonceSize()
	if len(raw) < nonceSize+c.aead.Overhead() {
		return "", &DecryptError{Reason: "ciphertext too short"}
	}
	plain, err := c.aead.Open(nil, raw[:nonceSize], raw[nonceSize:], nil)
	if err != nil {
		return "", &DecryptError{Reason: "authentication failed", Err: err}
	}
	return string(plain), nil
}
