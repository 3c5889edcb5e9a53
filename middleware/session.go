package middleware

import (
	"github.com/urdekcah/beacon/logic"
	"github.com/urdekcah/beacon/models"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
)

const CtxSessionKey = "session"

// LoadSession 读会话 cookie 并把会话放进请求上下文。
// 签名不对、会话过期、redis 里没有，统统当作未登录，不在这里报错
func LoadSession(store logic.SessionStore) gin.HandlerFunc {
	cookieName := viper.GetString("service.session.cookie_name")
	return func(ctx *gin.Context) {
		raw, err := ctx.Cookie(cookieName)
		if err == nil && raw != "" {
			if sess, err := store.Get(raw); err == nil {
				ctx.Set(CtxSessionKey, sess)
			}
		}
		ctx.Next()
	}
}

// SessionFrom 已加载的会话，未登录返回 nil。这里只看上下文，不做 I/O
func SessionFrom(ctx *gin.Context) *models.Session {
	value, exists := ctx.Get(CtxSessionKey)
	if !exists {
		return nil
	}
	sess, ok := value.(*models.Session)
	if !ok {
		return nil
	}
	return sess
}
