package middleware

import (
	"net/http"
	"time"

	"routed/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const inFlightPrefix = "inflight:"

// inFlightTTL caps how long a guard key can linger if a request dies without
// releasing it.
const inFlightTTL = 3 * time.Minute

// InFlightGuard rejects a request with 409 while the same user has the same
// action still running. The guard key is released when the handler returns.
func InFlightGuard(action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("userID")
		if userID == "" {
			c.Next()
			return
		}

		cache := utils.GetCacheClient()
		if cache == nil {
			// Without Redis the guard degrades to a no-op rather than
			// blocking traffic.
			c.Next()
			return
		}

		ctx := c.Request.Context()
		key := inFlightPrefix + action + ":" + userID

		ok, err := cache.SetNX(ctx, key, "1", inFlightTTL).Result()
		if err != nil {
			utils.GetLogger().Warn("in-flight guard unavailable",
				zap.String("action", action), zap.Error(err))
			c.Next()
			return
		}
		if !ok {
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{
				"error": "A previous request is still being processed. Try again shortly.",
			})
			return
		}

		defer cache.Del(ctx, key)
		c.Next()
	}
}
