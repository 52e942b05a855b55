package controller

import (
	"strconv"

	"course_center_backend/internal/middleware"
	"course_center_backend/internal/service"
	"course_center_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	UserService *service.UserService
}

func NewUserController(userService *service.UserService) *UserController {
	return &UserController{UserService: userService}
}

func parseUintParam(ctx *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(ctx.Param(name), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "无效的 "+name)
		return 0, false
	}
	return uint(v), true
}

// Get godoc
// @Summary 查询用户
// @Tags 用户
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "用户 ID"
// @Success 200 {object} util.Response{data=model.User} "用户信息"
// @Failure 404 {object} util.Response "用户不存在"
// @Router /api/users/{id} [get]
func (c *UserController) Get(ctx *gin.Context) {
	id, ok := parseUintParam(ctx, "id")
	if !ok {
		return
	}
	user, err := c.UserService.GetByID(id)
	if err != nil {
		util.BusinessError(ctx, err)
		return
	}
	util.Success(ctx, user)
}

// UpdateProfileRequest 资料更新请求
// swagger:model UpdateProfileRequest
type UpdateProfileRequest struct {
	Name   *string `json:"name"`
	Avatar *string `json:"avatar"`
}

// UpdateProfile godoc
// @Summary 更新个人资料
// @Description 更新当前用户的昵称或头像，同时刷新会话快照
// @Tags 用户
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body UpdateProfileRequest true "资料"
// @Success 200 {object} util.Response{data=model.User} "更新后的用户"
// @Router /api/users/profile [put]
func (c *UserController) UpdateProfile(ctx *gin.Context) {
	var req UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.UserService.UpdateProfile(middleware.GetPrincipal(ctx), middleware.GetToken(ctx), service.ProfileUpdate{
		Name:   req.Name,
		Avatar: req.Avatar,
	})
	if err != nil {
		util.BusinessError(ctx, err)
		return
	}
	util.Success(ctx, user)
}

// ChangePasswordRequest 修改密码请求
// swagger:model ChangePasswordRequest
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}

// ChangePassword godoc
// @Summary 修改密码
// @Description 本人需提供旧密码，管理员可直接重置
// @Tags 用户
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "用户 ID"
// @Param   body body ChangePasswordRequest true "密码"
// @Success 200 {object} util.Response "修改成功"
// @Failure 403 {object} util.Response "无权限"
// @Router /api/users/{id}/password [put]
func (c *UserController) ChangePassword(ctx *gin.Context) {
	id, ok := parseUintParam(ctx, "id")
	if !ok {
		return
	}
	var req ChangePasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	err := c.UserService.ChangePassword(middleware.GetPrincipal(ctx), id, req.OldPassword, req.NewPassword)
	if err != nil {
		util.BusinessError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// UploadAvatar godoc
// @Summary 上传头像
// @Description 上传头像文件并更新用户与会话快照
// @Tags 用户
// @Accept  multipart/form-data
// @Produce  json
// @Security ApiKeyAuth
// @Param   file formData file true "头像文件"
// @Success 200 {object} util.Response{data=object} "头像地址"
// @Router /api/users/avatar [post]
func (c *UserController) UploadAvatar(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "缺少上传文件")
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer file.Close()

	url, err := c.UserService.UploadAvatar(
		ctx.Request.Context(),
		middleware.GetPrincipal(ctx),
		middleware.GetToken(ctx),
		fileHeader.Filename,
		file,
		fileHeader.Size,
		fileHeader.Header.Get("Content-Type"),
	)
	if err != nil {
		util.BusinessError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"avatar": url})
}

// Search godoc
// @Summary 按名称搜索用户
// @Description 管理员按名称模糊搜索用户
// @Tags 用户
// @Produce  json
// @Security ApiKeyAuth
// @Param   name query string true "名称关键字"
// @Success 200 {object} util.Response{data=[]model.User} "用户列表"
// @Router /api/users/search [get]
func (c *UserController) Search(ctx *gin.Context) {
	users, err := c.UserService.Search(middleware.GetPrincipal(ctx), ctx.Query("name"))
	if err != nil {
		util.BusinessError(ctx, err)
		return
	}
	util.Success(ctx, users)
}

// Delete godoc
// @Summary 删除用户
// @Description 管理员删除用户
// @Tags 用户
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "用户 ID"
// @Success 200 {object} util.Response "删除成功"
// @Router /api/users/{id} [delete]
func (c *UserController) Delete(ctx *gin.Context) {
	id, ok := parseUintParam(ctx, "id")
	if !ok {
		return
	}
	if err := c.UserService.Delete(middleware.GetPrincipal(ctx), id); err != nil {
		util.BusinessError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
