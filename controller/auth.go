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
)

type AuthController struct {
	users *logic.UserLogic
}

func NewAuthController(users *logic.UserLogic) *AuthController {
	return &AuthController{users: users}
}

// SignupPage GET /zaregistrirovatsya
func (c *AuthController) SignupPage(ctx *gin.Context) {
	ctx.HTML(http.StatusOK, "signup.html", gin.H{
		"csrfToken": middleware.IssueCSRFToken(ctx),
	})
}

// SigninPage GET /voyti
func (c *AuthController) SigninPage(ctx *gin.Context) {
	ctx.HTML(http.StatusOK, "signin.html", gin.H{
		"csrfToken": middleware.IssueCSRFToken(ctx),
	})
}

// Signup POST /zaregistrirovatsya
func (c *AuthController) Signup(ctx *gin.Context) {
	var params models.ParamSignup
	// validator 在绑定的同时做参数校验
	if err := ctx.ShouldBindJSON(&params); err != nil {
		common.ResponseFieldErrors(ctx, utils.ParseToValidationError(err))
		return
	}

	_, cookie, err := c.users.Signup(&params)
	if err != nil {
		// 唯一键冲突定位到具体字段
		if errors.Is(err, beacon.ErrUserExist) {
			common.ResponseFieldError(ctx, "username", "Username already exists")
		} else if errors.Is(err, beacon.ErrEmailExist) {
			common.ResponseFieldError(ctx, "email", "Email already exists")
		} else {
			common.ResponseInternal(ctx, "An error occurred during registration")
			logger.ErrorWithStack(err)
		}
		return
	}

	setSessionCookie(ctx, cookie)
	ctx.JSON(http.StatusCreated, gin.H{"message": "User registered successfully"})
}

// Signin POST /voyti
func (c *AuthController) Signin(ctx *gin.Context) {
	var params models.ParamSignin
	if err := ctx.ShouldBindJSON(&params); err != nil {
		common.ResponseFieldErrors(ctx, utils.ParseToValidationError(err))
		return
	}

	_, cookie, err := c.users.Signin(&params)
	if err != nil {
		if errors.Is(err, beacon.ErrWrongPassword) {
			// 不区分 "用户不存在" 和 "密码错误"
			common.ResponseFieldError(ctx, "email", "Invalid email or password")
		} else {
			common.ResponseInternal(ctx, "An error occurred during login")
			logger.ErrorWithStack(err)
		}
		return
	}

	setSessionCookie(ctx, cookie)
	common.ResponseSuccess(ctx, http.StatusOK, gin.H{"redirectUrl": "/?home=feed"})
}

// Signout GET /vykhod
func (c *AuthController) Signout(ctx *gin.Context) {
	if err := c.users.Signout(sessionCookie(ctx)); err != nil {
		common.ResponseInternal(ctx, "An error occurred while logging out")
		logger.ErrorWithStack(err)
		return
	}
	clearSessionCookie(ctx)
	ctx.Redirect(http.StatusFound, "/")
}
