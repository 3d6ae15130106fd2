package app

import (
	"context"
	"errors"

	"github.com/sahithdaddla/latish13-Payslip-Module/internal/middleware"
	"github.com/sahithdaddla/latish13-Payslip-Module/internal/payslip"
	"github.com/sahithdaddla/latish13-Payslip-Module/internal/shared/config"
	"github.com/sahithdaddla/latish13-Payslip-Module/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	DB    *gorm.DB
	Redis *redis.Client

	logger *zap.Logger
}

// NewRouter builds the gin engine with the request-scoped middleware chain.
func NewRouter(cfg *config.Config, logger *zap.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.ContextLogger(logger),
		gin.Recovery(),
	)
	return r
}

// BuildApp connects infrastructure and registers modules on router.
// onPoolBroken is invoked when storage reports its pool permanently closed.
func BuildApp(
	router *gin.Engine,
	cfg *config.Config,
	logger *zap.Logger,
	onPoolBroken func(error),
) (*App, error) {
	db, err := connection.ConnectGORMWithRetry(cfg, logger)
	if err != nil {
		return nil, err
	}
	logger.Info("database connection established", zap.String("driver", cfg.DBDriver))

	if cfg.DBAutoMigrate {
		if err := payslip.EnsureSchema(context.Background(), db); err != nil {
			_ = connection.Close(db)
			return nil, err
		}
		logger.Info("payslip schema ensured")
	}

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb, err = connection.ConnectRedisWithRetry(cfg.RedisAddr, cfg.DBMaxRetries, logger)
		if err != nil {
			// The summaries cache and idempotency are optional.
			logger.Warn("redis unavailable, continuing without cache", zap.Error(err))
			rdb = nil
		} else {
			logger.Info("redis connection established")
		}
	}

	registerModules(router, db, rdb, logger, onPoolBroken)

	return &App{DB: db, Redis: rdb, logger: logger}, nil
}

// Close releases the database pool and the redis client.
func (a *App) Close(_ context.Context) error {
	var errs []error
	if a.Redis != nil {
		errs = append(errs, a.Redis.Close())
	}
	if a.DB != nil {
		errs = append(errs, connection.Close(a.DB))
	}
	return errors.Join(errs...)
}
