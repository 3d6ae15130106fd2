package payslip

import (
	"github.com/sahithdaddla/latish13-Payslip-Module/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

const (
	createRateLimit = rate.Limit(5)
	createRateBurst = 10
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rdb ...*redis.Client,
) {
	var redisClient *redis.Client
	if len(rdb) > 0 {
		redisClient = rdb[0]
	}

	createLimit := middleware.RateLimitByIP(createRateLimit, createRateBurst)

	payslips := r.Group("/payslips")
	{
		payslips.GET("", handler.GetAll)
		payslips.GET("/lookup", handler.GetByIdentity)
		payslips.GET("/:id", handler.GetByID)
		payslips.GET("/:id/pdf", handler.DownloadPDF)
		if redisClient != nil {
			payslips.POST("", createLimit, middleware.Idempotency(redisClient), handler.Create)
		} else {
			payslips.POST("", createLimit, handler.Create)
		}
		payslips.DELETE("/:id", handler.Delete)
	}
}

// RegisterHealth mounts the liveness check outside the versioned group.
func RegisterHealth(r gin.IRoutes, handler *Handler) {
	r.GET("/healthz", handler.Health)
}
