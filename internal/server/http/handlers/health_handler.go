package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/storefront/internal/server/http/dto"
)

// HealthHandler reports service readiness.
type HealthHandler struct {
	facade HealthFacade
	logger *slog.Logger
}

func NewHealthHandler(facade HealthFacade, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{facade: facade, logger: logger}
}

// Check handles GET /api/health.
func (h *HealthHandler) Check(c *gin.Context) {
	if err := h.facade.HealthCheck(c.Request.Context()); err != nil {
		h.logger.Warn("health check failed", slog.String("error", err.Error()))
		c.JSON(http.StatusServiceUnavailable, dto.Fail("STORAGE_UNAVAILABLE"))
		return
	}
	c.JSON(http.StatusOK, dto.OK())
}
