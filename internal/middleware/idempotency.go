package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sahithdaddla/latish13-Payslip-Module/internal/shared/contextutil"
	"github.com/sahithdaddla/latish13-Payslip-Module/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	IdempotencyHeader   = "Idempotency-Key"
	IdempotencyCacheKey = "idempotency_cache_key"
	IdempotencyLockKey  = "idempotency_lock_key"

	idempotencyLockTTL = 30 * time.Second
)

// Idempotency replays the stored response for a repeated Idempotency-Key and
// rejects a repeat that arrives while the first request is still running.
// The handler is responsible for storing its response under
// IdempotencyCacheKey and releasing IdempotencyLockKey.
func Idempotency(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		idempKey := c.GetHeader(IdempotencyHeader)
		if idempKey == "" || c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		logger := contextutil.GetLogger(ctx, zap.L())

		cacheKey := fmt.Sprintf("idemp:%s:%s", c.FullPath(), idempKey)
		lockKey := cacheKey + ":lock"

		val, err := rdb.Get(ctx, cacheKey).Result()
		if err == nil {
			var cached any
			if json.Unmarshal([]byte(val), &cached) == nil {
				logger.Debug("idempotent replay", zap.String("key", idempKey))
				response.Success(c, http.StatusOK, cached, nil)
				c.Abort()
				return
			}
		} else if err != redis.Nil {
			// Redis unavailable: serve the request without replay protection.
			logger.Warn("idempotency lookup failed", zap.Error(err))
			c.Next()
			return
		}

		isNew, err := rdb.SetNX(ctx, lockKey, "locked", idempotencyLockTTL).Result()
		if err != nil {
			logger.Warn("idempotency lock failed", zap.Error(err))
			c.Next()
			return
		}
		if !isNew {
			response.Error(c, http.StatusConflict, "PROCESSING", "request with this idempotency key is still being processed", nil)
			c.Abort()
			return
		}

		c.Set(IdempotencyCacheKey, cacheKey)
		c.Set(IdempotencyLockKey, lockKey)

		c.Next()
	}
}
