package controller

import (
	"net/http"
	"strconv"

	common "github.com/urdekcah/beacon/controller/Common"
	beacon "github.com/urdekcah/beacon/errors"
	"github.com/urdekcah/beacon/internal/utils"
	"github.com/urdekcah/beacon/logger"
	"github.com/urdekcah/beacon/logic"
	"github.com/urdekcah/beacon/middleware"
	"github.com/urdekcah/beacon/models"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

type PostController struct {
	posts       *logic.PostLogic
	communities *logic.CommunityLogic
}

func NewPostController(posts *logic.PostLogic, communities *logic.CommunityLogic) *PostController {
	return &PostController{posts: posts, communities: communities}
}

// BoardSubPage GET /b/:name/:id
//
// gin 的路由树不允许 /b/:name/submit 和 /b/:name/:id 并存，
// 在这里分发：id 是 "submit" 渲染投稿页，否则按帖子 id 处理
func (c *PostController) BoardSubPage(ctx *gin.Context) {
	if ctx.Param("id") == "submit" {
		c.submitPage(ctx)
		return
	}
	c.postPage(ctx)
}

// submitPage GET /b/:name/submit，要求登录
func (c *PostController) submitPage(ctx *gin.Context) {
	sess := middleware.SessionFrom(ctx)
	if sess == nil {
		ctx.Header("Location", "/voyti")
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	page, err := c.communities.GetPage(ctx.Param("name"), sess)
	if err != nil {
		if errors.Is(err, beacon.ErrNoSuchCommunity) {
			common.ResponseError(ctx, http.StatusNotFound, "Community not found")
		} else {
			common.ResponseInternal(ctx, "An error occurred while loading the submit page")
			logger.ErrorWithStack(err)
		}
		return
	}

	ctx.HTML(http.StatusOK, "submit.html", gin.H{
		"community":  page.Community,
		"isMember":   page.IsMember,
		"isLoggedIn": true,
		"csrfToken":  middleware.IssueCSRFToken(ctx),
	})
}

// postPage GET /b/:name/:id 单帖页
func (c *PostController) postPage(ctx *gin.Context) {
	postID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		common.ResponseError(ctx, http.StatusNotFound, "Post not found")
		return
	}

	detail, err := c.posts.Detail(ctx.Param("name"), postID)
	if err != nil {
		if errors.Is(err, beacon.ErrNoSuchCommunity) {
			common.ResponseError(ctx, http.StatusNotFound, "Community not found")
		} else if errors.Is(err, beacon.ErrNoSuchPost) {
			common.ResponseError(ctx, http.StatusNotFound, "Post not found")
		} else {
			common.ResponseInternal(ctx, "An error occurred while loading the post")
			logger.ErrorWithStack(err)
		}
		return
	}

	ctx.HTML(http.StatusOK, "post.html", gin.H{
		"post":       detail,
		"isLoggedIn": middleware.SessionFrom(ctx) != nil,
		"csrfToken":  middleware.IssueCSRFToken(ctx),
	})
}

// Create POST /i/CreatePost
func (c *PostController) Create(ctx *gin.Context) {
	var params models.ParamCreatePost
	if err := ctx.ShouldBindJSON(&params); err != nil {
		common.ResponseFieldErrors(ctx, utils.ParseToValidationError(err))
		return
	}

	sess := middleware.SessionFrom(ctx)
	post, err := c.posts.Create(sess.UserID, &params)
	if err != nil {
		if errors.Is(err, beacon.ErrNoSuchCommunity) {
			common.ResponseError(ctx, http.StatusBadRequest, "Community not found")
		} else {
			common.ResponseInternal(ctx, "An error occurred while creating the post")
			logger.ErrorWithStack(err)
		}
		return
	}

	common.ResponseSuccess(ctx, http.StatusCreated, gin.H{
		"id": strconv.FormatInt(post.PostID, 10),
	})
}

// UpdateVoteState POST /i/UpdatePostVoteState
func (c *PostController) UpdateVoteState(ctx *gin.Context) {
	var params models.ParamUpdatePostVoteState
	if err := ctx.ShouldBindJSON(&params); err != nil {
		common.ResponseFieldErrors(ctx, utils.ParseToValidationError(err))
		return
	}

	sess := middleware.SessionFrom(ctx)
	voteCount, err := c.posts.Vote(sess.UserID, &params)
	if err != nil {
		switch {
		case errors.Is(err, beacon.ErrNoSuchCommunity):
			common.ResponseError(ctx, http.StatusBadRequest, "Community not found")
		case errors.Is(err, beacon.ErrNoSuchPost):
			common.ResponseError(ctx, http.StatusBadRequest, "Post not found")
		case errors.Is(err, beacon.ErrPostOutsideCommunity):
			common.ResponseError(ctx, http.StatusBadRequest, "Post does not belong to this community")
		case errors.Is(err, beacon.ErrInvalidVoteState):
			common.ResponseError(ctx, http.StatusBadRequest, "Invalid vote state")
		case errors.Is(err, beacon.ErrVoteConflict):
			// 并发修改，整个事务已回滚，让客户端重试
			common.ResponseError(ctx, http.StatusConflict, "Vote changed, please try again")
		default:
			common.ResponseInternal(ctx, "An error occurred while processing your vote")
			logger.ErrorWithStack(err)
		}
		return
	}

	common.ResponseSuccess(ctx, http.StatusOK, gin.H{"vote_count": voteCount})
}
