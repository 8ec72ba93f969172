package usecase

import (
	"go.uber.org/fx"

	"github.com/polkiloo/storefront/internal/config"
	"github.com/polkiloo/storefront/internal/domain/repository"
	pkgAuth "github.com/polkiloo/storefront/internal/pkg/auth"
	"github.com/polkiloo/storefront/internal/pkg/cipher"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	NewAuthUseCase,
	NewOrderUseCase,
	newPasswordResetUseCase,
)

type passwordResetParams struct {
	fx.In

	Config   *config.Config
	Users    repository.UserRepository
	Resets   repository.PasswordResetRepository
	Cipher   cipher.Cipher
	Hasher   pkgAuth.PasswordHasher
	Notifier Notifier
}

func newPasswordResetUseCase(p passwordResetParams) *PasswordResetUseCase {
	return NewPasswordResetUseCase(p.Users, p.Resets, p.Cipher, p.Hasher, p.Notifier, p.Config.AppServerURL)
}
