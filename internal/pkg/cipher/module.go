package cipher

import (
	"go.uber.org/fx"

	"github.com/polkiloo/storefront/internal/config"
)

// Module provides the identity cipher keyed by ENCRYPT_SECRET.
var Module = fx.Provide(newCipher)

func newCipher(cfg *config.Config) (Cipher, error) {
	return NewAESCipher(cfg.EncryptSecret)
}
