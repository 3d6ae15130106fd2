package connection

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/sahithdaddla/latish13-Payslip-Module/internal/shared/config"
)

// retryInterval is the base delay between connection attempts.
var retryInterval = 5 * time.Second

func newBackOff(maxRetries int) backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = retryInterval
	b.MaxInterval = 4 * retryInterval
	b.MaxElapsedTime = 0
	return backoff.WithMaxRetries(b, uint64(maxRetries-1))
}

// Dialector picks the gorm driver for cfg.DBDriver.
func Dialector(cfg *config.Config) (gorm.Dialector, error) {
	switch cfg.DBDriver {
	case config.DriverPostgres:
		return postgres.Open(cfg.PostgresDSN()), nil
	case config.DriverSQLite:
		return sqlite.Open(cfg.DBPath), nil
	default:
		return nil, fmt.Errorf("unsupported db driver %q", cfg.DBDriver)
	}
}

// GormConfig enables driver error translation so unique violations surface as
// gorm.ErrDuplicatedKey on every dialect.
func GormConfig(production bool) *gorm.Config {
	level := gormlogger.Info
	if production {
		level = gormlogger.Warn
	}
	return &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(level),
	}
}

func ConnectGORMWithRetry(cfg *config.Config, logger *zap.Logger) (*gorm.DB, error) {
	dialector, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}

	log := logger.Named("connection.gorm")
	var db *gorm.DB
	attempt := 0

	op := func() error {
		attempt++
		conn, err := gorm.Open(dialector, GormConfig(cfg.IsProduction()))
		if err != nil {
			return fmt.Errorf("gorm open: %w", err)
		}

		sqlDB, err := conn.DB()
		if err != nil {
			return fmt.Errorf("get sql.DB: %w", err)
		}

		if err := sqlDB.Ping(); err != nil {
			_ = sqlDB.Close()
			return fmt.Errorf("db ping: %w", err)
		}

		// Pool config
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetConnMaxLifetime(time.Hour)

		db = conn
		return nil
	}

	notify := func(err error, next time.Duration) {
		log.Warn("database connection attempt failed",
			zap.Int("attempt", attempt),
			zap.Int("max_retries", cfg.DBMaxRetries),
			zap.Duration("retry_in", next),
			zap.Error(err),
		)
	}

	if err := backoff.RetryNotify(op, newBackOff(cfg.DBMaxRetries), notify); err != nil {
		return nil, fmt.Errorf("database connection failed after %d retries: %w", cfg.DBMaxRetries, err)
	}

	log.Info("connected to database", zap.String("driver", cfg.DBDriver))
	return db, nil
}

func ConnectRedisWithRetry(addr string, maxRetries int, logger *zap.Logger) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	log := logger.Named("connection.redis")
	op := func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		return rdb.Ping(ctx).Err()
	}
	notify := func(err error, next time.Duration) {
		log.Warn("redis ping failed", zap.Duration("retry_in", next), zap.Error(err))
	}

	if err := backoff.RetryNotify(op, newBackOff(maxRetries), notify); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect redis: %w", err)
	}

	log.Info("connected to redis", zap.String("addr", addr))
	return rdb, nil
}

// errPoolClosed mirrors the unexported error database/sql returns once the
// *sql.DB has been closed.
var errPoolClosed = errors.New("sql: database is closed")

// IsPoolClosed reports whether err means the connection pool itself is gone,
// as opposed to one failed connection or query.
func IsPoolClosed(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, errPoolClosed) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, errPoolClosed.Error()) || strings.Contains(msg, "closed pool")
}

// Close releases the pool behind db.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
