package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go-vacation/internal/shared/contextutil"
	"go-vacation/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	ContextIdempotencyCacheKey = "idempotency_cache_key"
	ContextIdempotencyLockKey  = "idempotency_lock_key"

	idempotencyLockTTL = 30 * time.Second
	IdempotencyTTL     = 24 * time.Hour
)

// Idempotency replays the stored result of a POST that already succeeded
// under the same Idempotency-Key, and rejects a duplicate that arrives while
// the first one is still running. Handlers store the result and release the
// lock through the keys this middleware leaves on the gin context.
func Idempotency(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		idempKey := c.GetHeader("Idempotency-Key")
		if idempKey == "" || c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		log := contextutil.GetLogger(ctx, zap.L())
		userID := c.GetString(ContextUserID)
		cacheKey := fmt.Sprintf("idemp:%s:%s:%s", c.FullPath(), userID, idempKey)
		lockKey := cacheKey + ":lock"

		val, err := rdb.Get(ctx, cacheKey).Result()
		if err == nil {
			var cached json.RawMessage
			if jsonErr := json.Unmarshal([]byte(val), &cached); jsonErr == nil {
				log.Debug("idempotent replay", zap.String("key", idempKey))
				c.Header("Idempotent-Replayed", "true")
				response.Success(c, http.StatusOK, cached, nil)
				c.Abort()
				return
			}
		} else if err != redis.Nil {
			log.Warn("idempotency lookup failed", zap.Error(err))
		}

		isNew, err := rdb.SetNX(ctx, lockKey, "locked", idempotencyLockTTL).Result()
		if err != nil {
			log.Warn("idempotency lock failed", zap.Error(err))
			c.Next()
			return
		}
		if !isNew {
			response.Error(c, http.StatusConflict, "PROCESSING", "A request with this Idempotency-Key is still being processed", nil)
			c.Abort()
			return
		}

		c.Set(ContextIdempotencyCacheKey, cacheKey)
		c.Set(ContextIdempotencyLockKey, lockKey)

		c.Next()
	}
}
