package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"contract-backend/internal/analyses"
	"contract-backend/internal/config"
	"contract-backend/internal/documents"
	"contract-backend/internal/services/health"
	"contract-backend/internal/shared/metrics"
	"contract-backend/internal/shared/server/middleware"
)

// RouterDeps carries the handlers the router wires up.
type RouterDeps struct {
	Config          config.Config
	Health          *health.Service
	DocumentHandler *documents.Handler
	AnalysisHandler *analyses.Handler
}

// NewRouter builds the gin engine with the middleware chain and all routes
// registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Config.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, deps.Health.Status())
	})
	engine.GET("/metrics", metrics.Handler())

	limiter := middleware.NewRateLimiter(nil)
	throttle := middleware.RateLimit(limiter, middleware.RateLimitRule{Rate: 0.5, Burst: 5})

	api := engine.Group("/api/v1")
	if deps.DocumentHandler != nil {
		deps.DocumentHandler.RegisterRoutes(api)
	}
	if deps.AnalysisHandler != nil {
		deps.AnalysisHandler.RegisterRoutes(api, throttle)
	}

	return engine
}

// Addr returns a normalized listen address for the given port.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return fmt.Sprintf(":%s", port)
}
