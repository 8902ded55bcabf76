package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Kilat-Pet-Delivery/service-pet-inventory/internal/application"
	"github.com/Kilat-Pet-Delivery/service-pet-inventory/internal/auth"
	"github.com/Kilat-Pet-Delivery/service-pet-inventory/internal/metrics"
	"github.com/Kilat-Pet-Delivery/service-pet-inventory/internal/middleware"
)

// RouterConfig collects what the store's HTTP surface is built from.
type RouterConfig struct {
	ServiceName string
	Service     *application.PetService
	Sessions    *auth.SessionManager
	CookieName  string
	CORSOrigins []string
	Metrics     *metrics.Metrics
	Ping        Pinger
	Logger      *zap.Logger
}

// NewRouter builds the gin engine with middleware and every route mounted.
func NewRouter(cfg RouterConfig) *gin.Engine {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	router := gin.New()
	router.Use(
		middleware.RecoveryMiddleware(log),
		middleware.RequestIDMiddleware(),
		middleware.LoggerMiddleware(log),
		middleware.CORSMiddleware(cfg.CORSOrigins),
		middleware.SecurityHeadersMiddleware(),
	)
	if cfg.Metrics != nil {
		router.Use(cfg.Metrics.Middleware())
		router.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	NewHealthHandler(cfg.ServiceName, cfg.Ping).RegisterRoutes(router)

	sessionMW := middleware.RequireSession(cfg.Sessions, cfg.CookieName)
	root := router.Group("")
	NewPetHandler(cfg.Service, cfg.Metrics).RegisterRoutes(root, sessionMW)
	NewAdminPetHandler(cfg.Service).RegisterRoutes(root, sessionMW)

	return router
}
