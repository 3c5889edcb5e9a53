package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

/*
	API 响应形态：
	成功        {"success": true, ...}
	单条错误    {"error": "..."}
	字段级错误  {"errors": {"field": "message"}}
	状态码按错误类别：400 校验/冲突/非法状态，401 未登录，404 不存在，500 其它
*/

func ResponseSuccess(ctx *gin.Context, status int, data gin.H) {
	body := gin.H{"success": true}
	for k, v := range data {
		body[k] = v
	}
	ctx.JSON(status, body)
}

func ResponseError(ctx *gin.Context, status int, msg string) {
	ctx.JSON(status, gin.H{"error": msg})
}

func ResponseFieldErrors(ctx *gin.Context, fields map[string]string) {
	ctx.JSON(http.StatusBadRequest, gin.H{"errors": fields})
}

func ResponseFieldError(ctx *gin.Context, field, msg string) {
	ResponseFieldErrors(ctx, map[string]string{field: msg})
}

// ResponseInternal 不向外透出内部细节
func ResponseInternal(ctx *gin.Context, msg string) {
	ctx.JSON(http.StatusInternalServerError, gin.H{"error": msg})
}
