package middleware

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
)

// 双提交 cookie 方案：token = nonce.HMAC(key, nonce)，
// 页面渲染时发 cookie 并嵌进表单，提交时请求头须和 cookie 一致且签名合法

func csrfSign(key []byte, nonce string) string {
	mac := hmac.New(sha256.New, key)
	mac.Write([]byte(nonce))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

func csrfValid(key []byte, token string) bool {
	nonce, sig, found := strings.Cut(token, ".")
	if !found || nonce == "" {
		return false
	}
	return hmac.Equal([]byte(sig), []byte(csrfSign(key, nonce)))
}

// IssueCSRFToken 取当前 token，没有或不合法就签发新 cookie。页面 GET 处理器用
func IssueCSRFToken(ctx *gin.Context) string {
	key := []byte(viper.GetString("service.csrf.sign_key"))
	cookieName := viper.GetString("service.csrf.cookie_name")

	if token, err := ctx.Cookie(cookieName); err == nil && csrfValid(key, token) {
		return token
	}

	raw := make([]byte, 16)
	if _, err := rand.Read(raw); err != nil {
		return ""
	}
	nonce := base64.RawURLEncoding.EncodeToString(raw)
	token := nonce + "." + csrfSign(key, nonce)

	secure := viper.GetBool("service.session.secure")
	ctx.SetCookie(cookieName, token, 0, "/", "", secure, false)
	return token
}

// VerifyCSRF 变更型请求的校验：请求头 token 必须与 cookie 相同且签名合法
func VerifyCSRF() gin.HandlerFunc {
	key := []byte(viper.GetString("service.csrf.sign_key"))
	cookieName := viper.GetString("service.csrf.cookie_name")
	headerName := viper.GetString("service.csrf.header_name")

	return func(ctx *gin.Context) {
		header := ctx.GetHeader(headerName)
		cookie, err := ctx.Cookie(cookieName)
		if err != nil || header == "" || header != cookie || !csrfValid(key, header) {
			ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Invalid CSRF token"})
			return
		}
		ctx.Next()
	}
}
