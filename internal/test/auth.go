package test

import (
	"context"
	"errors"
	"strings"

	"github.com/polkiloo/storefront/internal/domain/model"
	pkgAuth "github.com/polkiloo/storefront/internal/pkg/auth"
	"github.com/polkiloo/storefront/internal/pkg/cipher"
)

// HasherStub provides deterministic hashing for tests.
type HasherStub struct {
	HashFn    func(string) (string, error)
	CompareFn func(string, string) error
}

// Hash returns a predictable hash for the supplied password.
func (h HasherStub) Hash(password string) (string, error) {
	if h.HashFn != nil {
		return h.HashFn(password)
	}
	return "hash:" + password, nil
}

// Compare validates password against stored hash.
func (h HasherStub) Compare(hash string, password string) error {
	if h.CompareFn != nil {
		return h.CompareFn(hash, password)
	}
	if hash != "hash:"+password {
		return pkgAuth.ErrPasswordMismatch
	}
	return nil
}

// StrategyStub issues and parses tokens via function overrides.
type StrategyStub struct {
	IssueFn func(int64) (string, error)
	ParseFn func(string) (int64, error)
	NameVal string
}

// IssueToken returns deterministic tokens for tests.
func (s StrategyStub) IssueToken(userID int64) (string, error) {
	if s.IssueFn != nil {
		return s.IssueFn(userID)
	}
	return "token", nil
}

// ParseToken parses previously issued token strings.
func (s StrategyStub) ParseToken(token string) (int64, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	return 1, nil
}

// Name returns the strategy identifier used in tests.
func (s StrategyStub) Name() string {
	if s.NameVal != "" {
		return s.NameVal
	}
	return "stub"
}

// TokenParserStub implements middleware token parsing contract.
type TokenParserStub struct {
	ID      int64
	Err     error
	ParseFn func(string) (int64, error)
}

// ParseToken either delegates to override or returns predefined result.
func (s TokenParserStub) ParseToken(token string) (int64, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	if s.Err != nil {
		return 0, s.Err
	}
	return s.ID, nil
}

// CipherStub reverses "enc:" prefixing instead of real encryption.
type CipherStub struct {
	EncryptFn func(string) (string, error)
	DecryptFn func(string) (string, error)
}

// Encrypt prefixes plaintext with "enc:".
func (c CipherStub) Encrypt(plaintext string) (string, error) {
	if c.EncryptFn != nil {
		return c.EncryptFn(plaintext)
	}
	return "enc:" + plaintext, nil
}

// Decrypt strips the "enc:" prefix and fails with DecryptError without it.
func (c CipherStub) Decrypt(ciphertext string) (string, error) {
	if c.DecryptFn != nil {
		return c.DecryptFn(ciphertext)
	}
	plain, ok := strings.CutPrefix(ciphertext, "enc:")
	if !ok {
		return "", &cipher.DecryptError{Reason: "missing prefix"}
	}
	return plain, nil
}

// AuthFacadeStub simulates authentication facade interactions.
type AuthFacadeStub struct {
	RegisterFn     func(context.Context, model.Registration) (string, error)
	AuthenticateFn func(context.Context, string, string) (string, error)
	ParseFn        func(string) (int64, error)
}

// Register returns token for successful registration scenarios.
func (s AuthFacadeStub) Register(ctx context.Context, reg model.Registration) (string, error) {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, reg)
	}
	return "token", nil
}

// Authenticate returns token for successful authentication scenarios.
func (s AuthFacadeStub) Authenticate(ctx context.Context, email, password string) (string, error) {
	if s.AuthenticateFn != nil {
		return s.AuthenticateFn(ctx, email, password)
	}
	return "token", nil
}

// ParseToken returns stored identifier for authenticated user.
func (s AuthFacadeStub) ParseToken(token string) (int64, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	if token == "" {
		return 0, errors.New("empty token")
	}
	return 1, nil
}

var (
	_ pkgAuth.PasswordHasher = HasherStub{}
	_ pkgAuth.Strategy       = StrategyStub{}
	_ cipher.Cipher          = CipherStub{}
)
