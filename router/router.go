package router

import (
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/urdekcah/beacon/controller"
	"github.com/urdekcah/beacon/logger"
	"github.com/urdekcah/beacon/logic"
	"github.com/urdekcah/beacon/middleware"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
)

// Deps 路由需要的所有协作对象，由 main 显式构造并注入
type Deps struct {
	Sessions  logic.SessionStore
	Auth      *controller.AuthController
	Community *controller.CommunityController
	Post      *controller.PostController
	Feed      *controller.FeedController
}

func New(deps Deps) *gin.Engine {
	if !viper.GetBool("server.develop_mode") {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(
		logger.GinLogger(),
		logger.GinRecovery(true),
		middleware.RateLimit(viper.GetFloat64("service.ratelimit.rate"), viper.GetInt64("service.ratelimit.capacity")),
		middleware.LoadSession(deps.Sessions),
	)

	// 模板目录可能不存在（纯 API 场景、测试），存在才加载
	pattern := viper.GetString("server.templates")
	if matches, _ := filepath.Glob(pattern); len(matches) > 0 {
		r.LoadHTMLGlob(pattern)
	}

	/* 页面 */
	r.GET("/", deps.Feed.Index)
	r.GET("/dobro-pozhalovat", deps.Feed.Welcome)
	r.GET("/zaregistrirovatsya", deps.Auth.SignupPage)
	r.GET("/voyti", deps.Auth.SigninPage)
	r.GET("/vykhod", middleware.AuthPage(), deps.Auth.Signout)
	r.GET("/feed", middleware.AuthPage(), deps.Feed.Feed)
	r.GET("/sozdat", middleware.AuthPage(), deps.Community.CreatePage)
	r.GET("/b/:name", deps.Community.BoardPage)
	r.GET("/b/:name/:id", deps.Post.BoardSubPage) // :id 含 submit 分发

	/* 表单提交 */
	r.POST("/zaregistrirovatsya", middleware.VerifyCSRF(), deps.Auth.Signup)
	r.POST("/voyti", middleware.VerifyCSRF(), deps.Auth.Signin)
	r.POST("/sozdat", middleware.AuthJSON(), middleware.VerifyCSRF(), deps.Community.Create)

	/* JSON API */
	api := r.Group("/i")
	api.Use(middleware.AuthJSON(), middleware.VerifyCSRF())
	api.POST("/CreatePost", deps.Post.Create)
	api.POST("/UpdateSubscriptions", deps.Community.UpdateSubscriptions)
	api.POST("/UpdatePostVoteState", deps.Post.UpdateVoteState)

	return r
}

func NewServer(handler http.Handler) *http.Server {
	return &http.Server{
		Addr:    fmt.Sprintf("%s:%d", viper.GetString("server.ip"), viper.GetInt("server.port")),
		Handler: handler,
	}
}
