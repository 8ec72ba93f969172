package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/server/http/dto"
	"github.com/polkiloo/storefront/internal/server/http/middleware"
)

var (
	registerErrors = []errorCase{
		{domainErrors.ErrInvalidEmail, http.StatusUnprocessableEntity, "REGISTER_INVALID_EMAIL"},
		{domainErrors.ErrPasswordComplexity, http.StatusUnprocessableEntity, "REGISTER_PASSWORD_COMPLEXITY"},
		{domainErrors.ErrAlreadyExists, http.StatusConflict, "USER_ALREADY_EXISTS"},
	}
	loginErrors = []errorCase{
		{domainErrors.ErrInvalidCredentials, http.StatusUnauthorized, "INVALID_CREDENTIALS"},
	}
)

// AuthHandler processes registration and login.
type AuthHandler struct {
	facade AuthFacade
	logger *slog.Logger
}

// NewAuthHandler creates AuthHandler instance.
func NewAuthHandler(facade AuthFacade, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{facade: facade, logger: logger}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	token, err := h.facade.Register(c.Request.Context(), model.Registration{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		respondError(c, h.logger, "register", err, codeInternal, registerErrors...)
		return
	}

	middleware.SetAuthCookie(c, token)
	c.JSON(http.StatusOK, dto.TokenResponse{Success: true, Token: token})
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	token, err := h.facade.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, h.logger, "login", err, codeInternal, loginErrors...)
		return
	}

	middleware.SetAuthCookie(c, token)
	c.JSON(http.StatusOK, dto.TokenResponse{Success: true, Token: token})
}
