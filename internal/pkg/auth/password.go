package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrPasswordMismatch = errors.New("password does not match hash")
	ErrMalformedHash    = errors.New("malformed password hash")
)

// PasswordHasher defines hashing strategy for credentials.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash string, password string) error
}

// Argon2Params tunes the argon2id key derivation.
type Argon2Params struct {
	Time    uint32
	Memory  uint32
	Threads uint8
	KeyLen  uint32
	SaltLen uint32
}

// DefaultArgon2Params keeps login latency in the tens of milliseconds.
var DefaultArgon2Params = Argon2Params{
	Time:    1,
	Memory:  32 * 1024,
	Threads: 4,
	KeyLen:  32,
	SaltLen: 16,
}

// Argon2Hasher hashes passwords with argon2id and verifies legacy bcrypt hashes.
type Argon2Hasher struct {
	params Argon2Params
}

// NewArgon2Hasher creates Argon2Hasher, falling back to defaults for zero fields.
func NewArgon2Hasher(params Argon2Params) *Argon2Hasher {
	if params.Time == 0 {
		params.Time = DefaultArgon2Params.Time
	}
	if params.Memory == 0 {
		params.Memory = DefaultArgon2Params.Memory
	}
	if params.Threads == 0 {
		params.Threads = DefaultArgon2Params.Threads
	}
	if params.KeyLen == 0 {
		params.KeyLen = DefaultArgon2Params.KeyLen
	}
	if params.SaltLen == 0 {
		params.SaltLen = DefaultArgon2Params.SaltLen
	}
	return &Argon2Hasher{params: params}
}

// Hash returns an encoded $argon2id$ hash with a random salt.
func (h *Argon2Hasher) Hash(password string) (string, error) {
	salt := make([]byte, h.params.SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	key := argon2.IDKey([]byte(password), salt, h.params.Time, h.params.Memory, h.params.Threads, h.params.KeyLen)
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, h.params.Memory, h.params.Time, h.params.Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// Compare checks password against stored argon2id or bcrypt hash.
func (h *Argon2Hasher) Compare(hash string, password string) error {
	if isBcryptHash(hash) {
		if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
			if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
				return ErrPasswordMismatch
			}
			return fmt.Errorf("%w: %v", ErrMalformedHash, err)
		}
		return nil
	}

	parts := strings.Split(hash, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return ErrMalformedHash
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return ErrMalformedHash
	}

	var (
		memory, iterations uint32
		threads            uint8
	)
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &iterations, &threads); err != nil {
		return ErrMalformedHash
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return ErrMalformedHash
	}
	expected, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(expected) == 0 {
		return ErrMalformedHash
	}

	actual := argon2.IDKey([]byte(password), salt, iterations, memory, threads, uint32(len(expected)))
	if subtle.ConstantTimeCompare(expected, actual) != 1 {
		return ErrPasswordMismatch
	}
	return nil
}

func isBcryptHash(hash string) bool {
	return strings.HasPrefix(hash, "$2a$") || strings.HasPrefix(hash, "$2b$") || strings.HasPrefix(hash, "$2y$")
}
