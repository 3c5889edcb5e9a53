package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// 两个登录门卫共用同一个判定：上下文里有没有带用户标识的会话

// AuthPage 页面路由的门卫：未登录跳转登录页，状态码保持 401
func AuthPage() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if SessionFrom(ctx) == nil {
			ctx.Header("Location", "/voyti")
			ctx.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		ctx.Next()
	}
}

// AuthJSON API 路由的门卫：未登录返回结构化 401
func AuthJSON() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if SessionFrom(ctx) == nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}
		ctx.Next()
	}
}
