package controller

import (
	"net/http"

	common "github.com/urdekcah/beacon/controller/Common"
	beacon "github.com/urdekcah/beacon/errors"
	"github.com/urdekcah/beacon/internal/utils"
	"github.com/urdekcah/beacon/logger"
	"github.com/urdekcah/beacon/logic"
	"github.com/urdekcah/beacon/middleware"
	"github.com/urdekcah/beacon/models"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

type CommunityController struct {
	communities *logic.CommunityLogic
}

func NewCommunityController(communities *logic.CommunityLogic) *CommunityController {
	return &CommunityController{communities: communities}
}

// CreatePage GET /sozdat
func (c *CommunityController) CreatePage(ctx *gin.Context) {
	ctx.HTML(http.StatusOK, "create.html", gin.H{
		"colors":    viper.GetStringSlice("service.community.allowed_colors"),
		"icons":     viper.GetStringSlice("service.community.allowed_icons"),
		"csrfToken": middleware.IssueCSRFToken(ctx),
	})
}

// Create POST /sozdat
func (c *CommunityController) Create(ctx *gin.Context) {
	var params models.ParamCreateCommunity
	if err := ctx.ShouldBindJSON(&params); err != nil {
		common.ResponseFieldErrors(ctx, utils.ParseToValidationError(err))
		return
	}

	sess := middleware.SessionFrom(ctx)
	community, err := c.communities.Create(sess.UserID, &params)
	if err != nil {
		if errors.Is(err, beacon.ErrTooManyTags) {
			common.ResponseFieldError(ctx, "tags", "You can only add up to 5 tags")
		} else if errors.Is(err, beacon.ErrInvalidColor) {
			common.ResponseFieldError(ctx, "color", "Invalid color")
		} else if errors.Is(err, beacon.ErrInvalidIcon) {
			common.ResponseFieldError(ctx, "icon", "Invalid icon")
		} else if errors.Is(err, beacon.ErrCommunityExist) {
			common.ResponseFieldError(ctx, "name", "Community name already exists")
		} else {
			common.ResponseInternal(ctx, "An error occurred while creating the community")
			logger.ErrorWithStack(err)
		}
		return
	}

	common.ResponseSuccess(ctx, http.StatusCreated, gin.H{
		"redirectUrl": "/b/" + community.Name,
	})
}

// BoardPage GET /b/:name
func (c *CommunityController) BoardPage(ctx *gin.Context) {
	sess := middleware.SessionFrom(ctx)
	page, err := c.communities.GetPage(ctx.Param("name"), sess)
	if err != nil {
		if errors.Is(err, beacon.ErrNoSuchCommunity) {
			common.ResponseError(ctx, http.StatusNotFound, "Community not found")
		} else {
			common.ResponseInternal(ctx, "An error occurred while loading the community")
			logger.ErrorWithStack(err)
		}
		return
	}

	ctx.HTML(http.StatusOK, "board.html", gin.H{
		"community":  page.Community,
		"posts":      page.Posts,
		"isMember":   page.IsMember,
		"isAdmin":    page.IsAdmin,
		"isLoggedIn": sess != nil,
		"csrfToken":  middleware.IssueCSRFToken(ctx),
	})
}

// UpdateSubscriptions POST /i/UpdateSubscriptions
func (c *CommunityController) UpdateSubscriptions(ctx *gin.Context) {
	var params models.ParamUpdateSubscriptions
	if err := ctx.ShouldBindJSON(&params); err != nil {
		common.ResponseFieldErrors(ctx, utils.ParseToValidationError(err))
		return
	}

	sess := middleware.SessionFrom(ctx)
	if err := c.communities.UpdateSubscription(sess.UserID, &params); err != nil {
		switch {
		case errors.Is(err, beacon.ErrNoSuchCommunity):
			common.ResponseError(ctx, http.StatusBadRequest, "Community not found")
		case errors.Is(err, beacon.ErrAlreadySubscribed):
			common.ResponseError(ctx, http.StatusBadRequest, "Already subscribed")
		case errors.Is(err, beacon.ErrOwnerCannotUnsubscribe):
			common.ResponseError(ctx, http.StatusBadRequest, "Owner cannot unsubscribe")
		case errors.Is(err, beacon.ErrNotSubscribed):
			common.ResponseError(ctx, http.StatusBadRequest, "Not subscribed")
		case errors.Is(err, beacon.ErrInvalidState):
			common.ResponseError(ctx, http.StatusBadRequest, "Invalid subscription state")
		default:
			common.ResponseInternal(ctx, "An error occurred while updating subscriptions")
			logger.ErrorWithStack(err)
		}
		return
	}

	common.ResponseSuccess(ctx, http.StatusOK, nil)
}
