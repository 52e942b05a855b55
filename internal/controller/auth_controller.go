package controller

import (
	"course_center_backend/internal/middleware"
	"course_center_backend/internal/model"
	"course_center_backend/internal/service"
	"course_center_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	AuthService *service.AuthService
}

func NewAuthController(authService *service.AuthService) *AuthController {
	return &AuthController{AuthService: authService}
}

// RegisterRequest 注册请求
// swagger:model RegisterRequest
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"required,oneof=student teacher"`
}

// Register godoc
// @Summary 注册新用户
// @Description 使用提供的信息注册新用户
// @Tags 认证
// @Accept  json
// @Produce  json
// @Param   body body RegisterRequest true "用户注册信息"
// @Success 201 {object} util.Response{data=object} "创建成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 409 {object} util.Response "邮箱已被注册"
// @Router /api/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user := &model.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     model.UserRole(req.Role),
	}

	if err := c.AuthService.Register(user); err != nil {
		util.BusinessError(ctx, err)
		return
	}

	util.Created(ctx, gin.H{"id": user.ID})
}

// LoginRequest 登录请求
// swagger:model LoginRequest
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login godoc
// @Summary 用户登录
// @Description 邮箱密码登录，返回会话令牌与用户快照
// @Tags 认证
// @Accept  json
// @Produce  json
// @Param   body body LoginRequest true "登录信息"
// @Success 200 {object} util.Response{data=object} "登录成功"
// @Failure 400 {object} util.Response "账号或密码错误"
// @Router /api/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	token, principal, err := c.AuthService.Login(req.Email, req.Password)
	if err != nil {
		util.BusinessError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"token": token,
		"user":  principal,
	})
}

// Logout godoc
// @Summary 退出登录
// @Description 使当前会话令牌失效
// @Tags 认证
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response "退出成功"
// @Router /api/logout [post]
func (c *AuthController) Logout(ctx *gin.Context) {
	if err := c.AuthService.Logout(middleware.GetToken(ctx)); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// Current godoc
// @Summary 当前登录用户
// @Description 返回会话缓存中的用户快照并顺延会话有效期
// @Tags 认证
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=model.Principal} "当前用户"
// @Failure 401 {object} util.Response "未登录"
// @Router /api/current [get]
func (c *AuthController) Current(ctx *gin.Context) {
	util.Success(ctx, middleware.GetPrincipal(ctx))
}
