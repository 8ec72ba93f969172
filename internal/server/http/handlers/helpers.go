package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/server/http/dto"
	"github.com/polkiloo/storefront/internal/server/http/middleware"
)

// Response codes shared by several handlers.
const (
	codeInvalidRequest = "INVALID_REQUEST"
	codeUserNotFound   = "USER_NOT_FOUND"
	codeInternal       = "INTERNAL_ERROR"
)

// errorCase maps a domain error to a response.
type errorCase struct {
	target error
	status int
	code   string
}

// CurrentUserID extracts authenticated user identifier from context.
func CurrentUserID(c *gin.Context) int64 {
	val, ok := c.Get(middleware.UserIDContextKey)
	if !ok {
		return 0
	}
	id, _ := val.(int64)
	return id
}

// respondError writes the first matching case, or fallback with status 500.
// Server-side failures are logged with the operation name.
func respondError(c *gin.Context, logger *slog.Logger, op string, err error, fallback string, cases ...errorCase) {
	for _, ec := range cases {
		if errors.Is(err, ec.target) {
			if ec.status >= http.StatusInternalServerError {
				logFailure(logger, op, err)
			}
			c.JSON(ec.status, dto.Fail(ec.code))
			return
		}
	}
	logFailure(logger, op, err)
	c.JSON(http.StatusInternalServerError, dto.Fail(fallback))
}

func respondValidation(c *gin.Context, code string, err error) {
	body := dto.Fail(code)
	var verr *domainErrors.ValidationError
	if errors.As(err, &verr) {
		for _, f := range verr.Fields {
			body.Fields = append(body.Fields, dto.FieldError{Field: f.Field, Message: f.Message})
		}
	}
	c.JSON(http.StatusUnprocessableEntity, body)
}

func badRequest(c *gin.Context) {
	c.JSON(http.StatusBadRequest, dto.Fail(codeInvalidRequest))
}

func logFailure(logger *slog.Logger, op string, err error) {
	logger.Error("request failed", slog.String("op", op), slog.String("error", err.Error()))
}
