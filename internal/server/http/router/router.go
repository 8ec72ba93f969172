package router

import (
	"log/slog"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/polkiloo/storefront/internal/config"
	"github.com/polkiloo/storefront/internal/server/http/handlers"
	"github.com/polkiloo/storefront/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.StoreFacade, cfg *config.Config, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(cors.New(corsConfig(cfg.CORSAllowedOrigins)))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	authHandler := handlers.NewAuthHandler(facade, logger)
	passwordHandler := handlers.NewPasswordHandler(facade, logger)
	orderHandler := handlers.NewOrderHandler(facade, logger)
	healthHandler := handlers.NewHealthHandler(facade, logger)

	api := engine.Group("/api")
	api.GET("/health", healthHandler.Check)

	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/password-recovery", passwordHandler.Recover)
	auth.GET("/check-password-token", passwordHandler.CheckToken)
	auth.POST("/reset-password", passwordHandler.Reset)

	orders := api.Group("/orders")
	orders.Use(middleware.AuthRequired(facade))
	orders.POST("", orderHandler.Place)
	orders.GET("", orderHandler.List)
	orders.GET("/:id", orderHandler.Get)
	orders.GET("/number/:number", orderHandler.GetByNumber)

	return engine
}

// corsConfig allows any origin without credentials unless origins are listed.
func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization", "Accept-Encoding")
	cfg.ExposeHeaders = []string{"Authorization"}
	cfg.MaxAge = 12 * time.Hour
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}
