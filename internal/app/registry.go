package app

import (
	"github.com/sahithdaddla/latish13-Payslip-Module/internal/payslip"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	gormDB *gorm.DB,
	rdb *redis.Client,
	logger *zap.Logger,
	onPoolBroken func(error),
) {
	// --- Repositories ---
	payslipRepo := payslip.NewRepository(gormDB)

	// --- Services ---
	payslipService := payslip.NewService(
		payslipRepo,
		rdb,
		payslip.WithLogger(logger),
		payslip.WithPoolBrokenHandler(onPoolBroken),
	)

	// --- Handlers ---
	payslipHandler := payslip.NewHandlerWithRedis(payslipService, rdb)

	// --- Routes Registration ---
	payslip.RegisterHealth(router, payslipHandler)

	api := router.Group("/api/v1")
	{
		payslip.RegisterRoutes(api, payslipHandler, rdb)
	}
}
