package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/juju/ratelimit"
)

// RateLimit 令牌桶全局限流，没有可用令牌直接拒绝
//
// rate：令牌生成速率，rate = 0.1 代表每秒生成 0.1 * capacity 个令牌
//
// capacity：令牌桶大小
func RateLimit(rate float64, capacity int64) gin.HandlerFunc {
	bucket := ratelimit.NewBucketWithRate(rate*float64(capacity), capacity)
	return func(ctx *gin.Context) {
		if bucket.TakeAvailable(1) != 1 {
			ctx.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "Server busy"})
			return
		}
		ctx.Next()
	}
}
