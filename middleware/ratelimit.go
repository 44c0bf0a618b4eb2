package middleware

import (
	"fmt"
	"net/http"
	"time"

	"Mivo/pkg/context"
	"Mivo/pkg/log"
	"Mivo/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RateLimit 单用户固定窗口限流：INCR + EXPIRE，窗口一分钟。
// redis 不可用时放行，限流只是保护手段不能变成故障点。
func RateLimit(rds *redis.Client, perMinute int) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, err := context.GetUserID(c)
		if err != nil {
			c.Next()
			return
		}

		key := fmt.Sprintf("ratelimit:danmu:%d:%d", uid, time.Now().Unix()/60)
		count, err := rds.Incr(c.Request.Context(), key).Result()
		if err != nil {
			log.L.Warn("rate limit incr error", zap.Error(err))
			c.Next()
			return
		}
		if count == 1 {
			rds.Expire(c.Request.Context(), key, 2*time.Minute)
		}

		if count > int64(perMinute) {
			response.Abort(c, http.StatusTooManyRequests, "弹幕发送太频繁，稍后再试")
			return
		}

		c.Next()
	}
}
