package usecase

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/domain/repository"
	pkgAuth "github.com/polkiloo/storefront/internal/pkg/auth"
	"github.com/polkiloo/storefront/internal/pkg/cipher"
)

// Notifier queues an outgoing email. It must not block.
type Notifier interface {
	Enqueue(email model.Email) bool
}

// PasswordResetUseCase issues and redeems password reset tokens.
type PasswordResetUseCase struct {
	users    repository.UserRepository
	resets   repository.PasswordResetRepository
	cipher   cipher.Cipher
	hasher   pkgAuth.PasswordHasher
	notifier Notifier
	baseURL  string
	now      func() time.Time
	newToken func() string
}

// NewPasswordResetUseCase constructs PasswordResetUseCase. baseURL is the
// public application address used to build the reset link.
func NewPasswordResetUseCase(
	users repository.UserRepository,
	resets repository.PasswordResetRepository,
	c cipher.Cipher,
	hasher pkgAuth.PasswordHasher,
	notifier Notifier,
	baseURL string,
) *PasswordResetUseCase {
	return &PasswordResetUseCase{
		users:    users,
		resets:   resets,
		cipher:   c,
		hasher:   hasher,
		notifier: notifier,
		baseURL:  strings.TrimRight(baseURL, "/"),
		now:      time.Now,
		newToken: uuid.NewString,
	}
}

// RequestPasswordReset stores a new token for the user and queues the reset email.
func (u *PasswordResetUseCase) RequestPasswordReset(ctx context.Context, email string) error {
	email = NormalizeEmail(email)
	if email == "" {
		return domainErrors.ErrMissingEmail
	}

	user, err := u.users.GetByEmail(ctx, email)
	if err != nil {
		return translateNotFound(err, domainErrors.ErrUserNotFound)
	}

	now := u.now()
	active, err := u.resets.ListCreatedSince(ctx, user.ID, now.Add(-model.PasswordResetWindow))
	if err != nil {
		return fmt.Errorf("list active resets: %w", err)
	}
	if len(active) > 0 {
		return domainErrors.ErrOngoingRecovery
	}

	reset, err := u.resets.Create(ctx, model.PasswordReset{Token: u.newToken(), UserID: user.ID, CreatedAt: now})
	if err != nil {
		return fmt.Errorf("create reset: %w", err)
	}

	link, err := u.resetLink(reset.Token, user.ID)
	if err != nil {
		return err
	}

	u.notifier.Enqueue(model.Email{
		To:        user.Email,
		Name:      user.DisplayName(),
		Template:  model.EmailTemplatePasswordReset,
		Variables: map[string]string{"name": user.DisplayName(), "url": link},
	})
	return nil
}

func (u *PasswordResetUseCase) resetLink(token string, userID int64) (string, error) {
	encrypted, err := u.cipher.Encrypt(strconv.FormatInt(userID, 10))
	if err != nil {
		return "", fmt.Errorf("encrypt user id: %w", err)
	}
	query := url.Values{}
	query.Set("token", token)
	query.Set("u", encrypted)
	return u.baseURL + "/change-password?" + query.Encode(), nil
}

// CheckPasswordToken verifies that token belongs to the encrypted user id and is not expired.
func (u *PasswordResetUseCase) CheckPasswordToken(ctx context.Context, token, encryptedUserID string) error {
	_, err := u.verify(ctx, token, encryptedUserID)
	return err
}

// ResetPassword verifies the token and replaces the user's password hash.
func (u *PasswordResetUseCase) ResetPassword(ctx context.Context, token, encryptedUserID, password string) error {
	reset, err := u.verify(ctx, token, encryptedUserID)
	if err != nil {
		return err
	}
	if !ValidatePassword(password) {
		return domainErrors.ErrPasswordComplexity
	}

	user, err := u.users.GetByID(ctx, reset.UserID)
	if err != nil {
		return translateNotFound(err, domainErrors.ErrUserNotFound)
	}

	hash, err := u.hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := u.users.UpdatePassword(ctx, user.ID, hash); err != nil {
		return translateNotFound(err, domainErrors.ErrUserNotFound)
	}

	u.notifier.Enqueue(model.Email{
		To:        user.Email,
		Name:      user.DisplayName(),
		Template:  model.EmailTemplatePasswordResetSuccess,
		Variables: map[string]string{"name": user.DisplayName()},
	})
	return nil
}

// verify runs the checks shared by token check and password reset, in order:
// presence, token lookup, id decryption, id match, expiry.
func (u *PasswordResetUseCase) verify(ctx context.Context, token, encryptedUserID string) (*model.PasswordReset, error) {
	token = strings.TrimSpace(token)
	encryptedUserID = strings.TrimSpace(encryptedUserID)
	if token == "" {
		return nil, domainErrors.ErrTokenRequired
	}
	if encryptedUserID == "" {
		return nil, domainErrors.ErrUserIDRequired
	}

	reset, err := u.resets.GetByToken(ctx, token)
	if err != nil {
		return nil, translateNotFound(err, domainErrors.ErrTokenNotFound)
	}

	plain, err := u.cipher.Decrypt(encryptedUserID)
	if err != nil {
		if cipher.IsDecryptError(err) {
			return nil, fmt.Errorf("%w: %w", domainErrors.ErrBadUserID, err)
		}
		return nil, err
	}
	userID, err := strconv.ParseInt(plain, 10, 64)
	if err != nil {
		return nil, domainErrors.ErrBadUserID
	}

	if userID != reset.UserID {
		return nil, domainErrors.ErrTokenUserMismatch
	}
	if reset.Expired(u.now()) {
		return nil, domainErrors.ErrTokenExpired
	}
	return reset, nil
}
