package cipher

import (
	"encoding/base64"
	"fmt"
	"math/rand"
	"testing"

	"github.com/polkiloo/storefront/internal/config"
)

func randomString(r *rand.Rand, n int) string {
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = byte(32 + r.Intn(95))
	}
	return string(buf)
}

func newTestCipher(t *testing.T, secret string) *AESCipher {
	t.Helper()
	c, err := NewAESCipher(secret)
	if err != nil {
		t.Fatalf("new cipher: %v", err)
	}
	return c
}

func TestNewAESCipherRequiresSecret(t *testing.T) {
	if _, err := NewAESCipher(""); err == nil {
		t.Fatal("expected error for empty secret")
	}
}

func TestRoundTrip(t *testing.T) {
	c := newTestCipher(t, "secret")
	r := rand.New(rand.NewSource(1))
	inputs := []string{"", "1", "42", "9223372036854775807", "ünïcødé"}
	for i := 1; i <= 20; i++ {
		inputs = append(inputs, randomString(r, i*6))
	}
	for _, in := range inputs {
		enc, err := c.Encrypt(in)
		if err != nil {
			t.Fatalf("encrypt %q: %v", in, err)
		}
		dec, err := c.Decrypt(enc)
		if err != nil {
			t.Fatalf("decrypt %q: %v", in, err)
		}
		if dec != in {
			t.Fatalf("round trip mismatch: %q != %q", dec, in)
		}
	}
}

func TestEncryptIsRandomized(t *testing.T) {
	c := newTestCipher(t, "secret")
	a, _ := c.Encrypt("7")
	b, _ := c.Encrypt("7")
	if a == b {
		t.Fatal("expected distinct ciphertexts for equal plaintexts")
	}
}

func TestDecryptRejectsTampering(t *testing.T) {
	c := newTestCipher(t, "secret")
	enc, err := c.Encrypt("12")
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}
	raw, _ := base64.RawURLEncoding.DecodeString(enc)

	for i := range raw {
		tampered := append([]byte(nil), raw...)
		tampered[i] ^= 0x01
		_, err := c.Decrypt(base64.RawURLEncoding.EncodeToString(tampered))
		if !IsDecryptError(err) {
			t.Fatalf("byte %d: expected DecryptError, got %v", i, err)
		}
	}
}

func TestDecryptRejectsMalformedInput(t *testing.T) {
	c := newTestCipher(t, "secret")
	cases := map[string]string{
		"not base64":   "***",
		"empty":        "",
		"too short":    base64.RawURLEncoding.EncodeToString([]byte("short")),
		"random bytes": base64.RawURLEncoding.EncodeToString([]byte(randomString(rand.New(rand.NewSource(2)), 40))),
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := c.Decrypt(in); !IsDecryptError(err) {
				t.Fatalf("expected DecryptError, got %v", err)
			}
		})
	}
}

func TestDecryptRejectsForeignKey(t *testing.T) {
	enc, _ := newTestCipher(t, "one").Encrypt("5")
	if _, err := newTestCipher(t, "two").Decrypt(enc); !IsDecryptError(err) {
		t.Fatalf("expected DecryptError, got %v", err)
	}
}

func TestDecryptErrorMessage(t *testing.T) {
	err := &DecryptError{Reason: "authentication failed", Err: fmt.Errorf("boom")}
	if err.Error() != "decrypt: authentication failed: boom" {
		t.Fatalf("unexpected message %q", err.Error())
	}
	if (&DecryptError{Reason: "short"}).Error() != "decrypt: short" {
		t.Fatal("unexpected message without cause")
	}
	if IsDecryptError(fmt.Errorf("plain")) {
		t.Fatal("plain error must not be a DecryptError")
	}
}

func TestNewCipherProvider(t *testing.T) {
	if _, err := newCipher(&config.Config{}); err == nil {
		t.Fatal("expected error without secret")
	}
	c, err := newCipher(&config.Config{EncryptSecret: "secret"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := c.(*AESCipher); !ok {
		t.Fatalf("expected *AESCipher, got %T", c)
	}
}
