package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/server/http/dto"
)

var (
	recoveryErrors = []errorCase{
		{domainErrors.ErrMissingEmail, http.StatusUnprocessableEntity, "PASSWORD_RESET_MISSING_EMAIL"},
		{domainErrors.ErrUserNotFound, http.StatusNotFound, codeUserNotFound},
		{domainErrors.ErrOngoingRecovery, http.StatusUnauthorized, "PASSWORD_RESET_ONGOING_RECOVERY_PROCESS"},
	}
	tokenErrors = []errorCase{
		{domainErrors.ErrTokenRequired, http.StatusUnprocessableEntity, "PASSWORD_TOKEN_REQUIRED"},
		{domainErrors.ErrUserIDRequired, http.StatusUnprocessableEntity, "PASSWORD_USER_ID_REQUIRED"},
		{domainErrors.ErrTokenNotFound, http.StatusNotFound, "PASSWORD_RESET_TOKEN_NOT_FOUND"},
		{domainErrors.ErrBadUserID, http.StatusUnauthorized, "PASSWORD_RESET_BAD_USER_ID"},
		{domainErrors.ErrTokenUserMismatch, http.StatusUnauthorized, "PASSWORD_RESET_TOKEN_AND_ID_NOT_MATCH"},
		{domainErrors.ErrTokenExpired, http.StatusUnauthorized, "PASSWORD_TOKEN_EXPIRED"},
	}
	resetErrors = append([]errorCase{
		{domainErrors.ErrPasswordComplexity, http.StatusUnprocessableEntity, "RESET_PASSWORD_COMPLEXITY"},
		{domainErrors.ErrUserNotFound, http.StatusNotFound, codeUserNotFound},
	}, tokenErrors...)
)

// PasswordHandler serves the password recovery flow.
type PasswordHandler struct {
	facade PasswordFacade
	logger *slog.Logger
}

// NewPasswordHandler constructs PasswordHandler.
func NewPasswordHandler(facade PasswordFacade, logger *slog.Logger) *PasswordHandler {
	return &PasswordHandler{facade: facade, logger: logger}
}

// Recover handles POST /api/auth/password-recovery.
func (h *PasswordHandler) Recover(c *gin.Context) {
	var req dto.PasswordRecoveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	if err := h.facade.RequestPasswordReset(c.Request.Context(), req.Email); err != nil {
		respondError(c, h.logger, "password recovery", err, codeInternal, recoveryErrors...)
		return
	}
	c.JSON(http.StatusOK, dto.OK())
}

// CheckToken handles GET /api/auth/check-password-token.
func (h *PasswordHandler) CheckToken(c *gin.Context) {
	err := h.facade.CheckPasswordToken(c.Request.Context(), c.Query("token"), c.Query("userId"))
	if err != nil {
		respondError(c, h.logger, "check password token", err, codeInternal, tokenErrors...)
		return
	}
	c.JSON(http.StatusOK, dto.TokenCheckResponse{Success: true, Valid: true})
}

// Reset handles POST /api/auth/reset-password.
func (h *PasswordHandler) Reset(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	if err := h.facade.ResetPassword(c.Request.Context(), req.Token, req.UserID, req.Password); err != nil {
		respondError(c, h.logger, "reset password", err, codeInternal, resetErrors...)
		return
	}
	c.JSON(http.StatusOK, dto.OK())
}
