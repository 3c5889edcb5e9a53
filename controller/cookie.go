package controller

import (
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
)

func setSessionCookie(ctx *gin.Context, value string) {
	ctx.SetCookie(
		viper.GetString("service.session.cookie_name"),
		value,
		viper.GetInt("service.session.expire_duration"),
		"/", "",
		viper.GetBool("service.session.secure"),
		true,
	)
}

func clearSessionCookie(ctx *gin.Context) {
	ctx.SetCookie(
		viper.GetString("service.session.cookie_name"),
		"", -1, "/", "",
		viper.GetBool("service.session.secure"),
		true,
	)
}

func sessionCookie(ctx *gin.Context) string {
	raw, err := ctx.Cookie(viper.GetString("service.session.cookie_name"))
	if err != nil {
		return ""
	}
	return raw
}
