package controller

import (
	"net/http"

	common "github.com/urdekcah/beacon/controller/Common"
	"github.com/urdekcah/beacon/logger"
	"github.com/urdekcah/beacon/logic"
	"github.com/urdekcah/beacon/middleware"

	"github.com/gin-gonic/gin"
)

type FeedController struct {
	posts *logic.PostLogic
}

func NewFeedController(posts *logic.PostLogic) *FeedController {
	return &FeedController{posts: posts}
}

// Index GET / 已登录跳订阅流，否则落地页
func (c *FeedController) Index(ctx *gin.Context) {
	if middleware.SessionFrom(ctx) != nil {
		ctx.Redirect(http.StatusFound, "/feed")
		return
	}
	ctx.HTML(http.StatusOK, "index.html", nil)
}

// Welcome GET /dobro-pozhalovat
func (c *FeedController) Welcome(ctx *gin.Context) {
	ctx.HTML(http.StatusOK, "welcome.html", nil)
}

// Feed GET /feed 订阅流：已订阅社区的帖子
func (c *FeedController) Feed(ctx *gin.Context) {
	sess := middleware.SessionFrom(ctx)
	communities, posts, err := c.posts.Feed(sess.UserID)
	if err != nil {
		common.ResponseInternal(ctx, "An error occurred while loading the feed")
		logger.ErrorWithStack(err)
		return
	}

	ctx.HTML(http.StatusOK, "feed.html", gin.H{
		"communities": communities,
		"posts":       posts,
		"csrfToken":   middleware.IssueCSRFToken(ctx),
		"isLoggedIn":  true,
	})
}
