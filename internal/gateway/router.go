package gateway

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"manufacturing-system/internal/gateway/handlers"
	"manufacturing-system/internal/gateway/middleware"
	"manufacturing-system/internal/health"
	"manufacturing-system/internal/logger"
	"manufacturing-system/internal/services/manufacturing/handler"
)

type RouterConfig struct {
	RateLimit      string
	AllowedOrigins []string
}

func NewRouter(cfg RouterConfig, h *handler.ManufacturingHandler, checker *health.Checker, log *logger.Logger) (*gin.Engine, error) {
	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.CORS(cfg.AllowedOrigins))

	// health probes stay outside the rate limit
	r.GET("/health", healthCheckHandler(checker))
	r.GET("/health/detailed", detailedHealthCheckHandler(checker))

	api := r.Group("/")
	if cfg.RateLimit != "" {
		rateLimit, err := middleware.RateLimit(cfg.RateLimit)
		if err != nil {
			return nil, err
		}
		api.Use(rateLimit)
	}
	handlers.RegisterManufacturingRoutes(api, h, log)

	return r, nil
}

func healthCheckHandler(checker *health.Checker) gin.HandlerFunc {
	return func(c *gin.Context) {
		overall, services := checker.Report(c.Request.Context())

		httpStatus := http.StatusOK
		if overall == health.StatusUnavailable {
			httpStatus = http.StatusServiceUnavailable
		}

		unavailableServices := []string{}
		for name, s := range services {
			if s.Status == health.StatusUnavailable {
				unavailableServices = append(unavailableServices, name)
			}
		}

		c.JSON(httpStatus, gin.H{
			"status":               overall,
			"message":              "Server is running",
			"unavailable_services": unavailableServices,
			"timestamp":            time.Now(),
		})
	}
}

func detailedHealthCheckHandler(checker *health.Checker) gin.HandlerFunc {
	return func(c *gin.Context) {
		overall, services := checker.Report(c.Request.Context())

		c.JSON(http.StatusOK, gin.H{
			"overall_status": overall,
			"services":       services,
			"timestamp":      time.Now(),
		})
	}
}
