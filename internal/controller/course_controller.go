package controller

import (
	"strconv"

	"course_center_backend/internal/middleware"
	"course_center_backend/internal/service"
	"course_center_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CourseController struct {
	CourseService     *service.CourseService
	EnrollmentService *service.EnrollmentService
}

func NewCourseController(courseService *service.CourseService, enrollmentService *service.EnrollmentService) *CourseController {
	return &CourseController{
		CourseService:     courseService,
		EnrollmentService: enrollmentService,
	}
}

// CreateCourseRequest 开课请求
// swagger:model CreateCourseRequest
type CreateCourseRequest struct {
	Name    string `json:"name" binding:"required"`
	Comment string `json:"comment"`
}

// Create godoc
// @Summary 创建课程
// @Description 教师开课
// @Tags 课程
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body CreateCourseRequest true "课程信息"
// @Success 201 {object} util.Response{data=model.Course} "课程"
// @Failure 400 {object} util.Response "课程名不合法"
// @Router /api/courses [post]
func (c *CourseController) Create(ctx *gin.Context) {
	var req CreateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	course, err := c.CourseService.Create(middleware.GetPrincipal(ctx), req.Name, req.Comment)
	if err != nil {
		util.BusinessError(ctx, err)
		return
	}
	util.Created(ctx, course)
}

// Get godoc
// @Summary 课程详情
// @Tags 课程
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "课程 ID"
// @Success 200 {object} util.Response{data=model.Course} "课程"
// @Failure 404 {object} util.Response "课程不存在"
// @Router /api/courses/{id} [get]
func (c *CourseController) Get(ctx *gin.Context) {
	id, ok := parseUintParam(ctx, "id")
	if !ok {
		return
	}
	course, err := c.CourseService.Get(id)
	if err != nil {
		util.BusinessError(ctx, err)
		return
	}
	util.Success(ctx, course)
}

// List godoc
// @Summary 分页查询课程
// @Description 支持按课程名、教师名模糊过滤
// @Tags 课程
// @Produce  json
// @Security ApiKeyAuth
// @Param   name query string false "课程名关键字"
// @Param   teacher query string false "教师名关键字"
// @Param   page query int false "页码"
// @Param   limit query int false "每页条数"
// @Success 200 {object} util.Response{data=util.PageResponse} "课程分页"
// @Router /api/courses [get]
func (c *CourseController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "10"))
	courses, total, err := c.CourseService.ListPage(ctx.Query("name"), ctx.Query("teacher"), page, limit)
	if err != nil {
		util.BusinessError(ctx, err)
		return
	}
	util.SuccessPage(ctx, courses, total, page, limit)
}

// ListMine godoc
// @Summary 我开设的课程
// @Tags 课程
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Course} "课程列表"
// @Router /api/courses/mine [get]
func (c *CourseController) ListMine(ctx *gin.Context) {
	courses, err := c.CourseService.ListByTeacher(middleware.GetPrincipal(ctx).ID)
	if err != nil {
		util.BusinessError(ctx, err)
		return
	}
	util.Success(ctx, courses)
}

// EditCommentRequest 课程简介编辑请求
// swagger:model EditCommentRequest
type EditCommentRequest struct {
	Comment string `json:"comment"`
}

// EditComment godoc
// @Summary 修改课程简介
// @Tags 课程
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "课程 ID"
// @Param   body body EditCommentRequest true "简介"
// @Success 200 {object} util.Response "修改成功"
// @Router /api/courses/{id}/comment [put]
func (c *CourseController) EditComment(ctx *gin.Context) {
	id, ok := parseUintParam(ctx, "id")
	if !ok {
		return
	}
	var req EditCommentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if err := c.CourseService.EditComment(middleware.GetPrincipal(ctx), id, req.Comment); err != nil {
		util.BusinessError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// Delete godoc
// @Summary 删除课程
// @Description 级联删除课时、习题关联、选课与成绩数据
// @Tags 课程
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "课程 ID"
// @Success 200 {object} util.Response "删除成功"
// @Router /api/courses/{id} [delete]
func (c *CourseController) Delete(ctx *gin.Context) {
	id, ok := parseUintParam(ctx, "id")
	if !ok {
		return
	}
	if err := c.CourseService.Delete(middleware.GetPrincipal(ctx), id); err != nil {
		util.BusinessError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// Over godoc
// @Summary 结课
// @Description 结束课程并为全部选课学生汇总总评成绩，不可撤销
// @Tags 课程
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "课程 ID"
// @Success 200 {object} util.Response "结课成功"
// @Failure 400 {object} util.Response "课程已结束"
// @Router /api/courses/{id}/over [post]
func (c *CourseController) Over(ctx *gin.Context) {
	id, ok := parseUintParam(ctx, "id")
	if !ok {
		return
	}
	if err := c.CourseService.Over(middleware.GetPrincipal(ctx), id); err != nil {
		util.BusinessError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// FinalScore godoc
// @Summary 查询总评成绩
// @Description 结课前总评为空
// @Tags 课程
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "课程 ID"
// @Param   studentId path int true "学生 ID"
// @Success 200 {object} util.Response{data=model.Enrollment} "选课记录含总评"
// @Router /api/courses/{id}/score/{studentId} [get]
func (c *CourseController) FinalScore(ctx *gin.Context) {
	id, ok := parseUintParam(ctx, "id")
	if !ok {
		return
	}
	studentID, ok := parseUintParam(ctx, "studentId")
	if !ok {
		return
	}
	enrollment, err := c.CourseService.FinalScore(middleware.GetPrincipal(ctx), id, studentID)
	if err != nil {
		util.BusinessError(ctx, err)
		return
	}
	util.Success(ctx, enrollment)
}

// LessonScores godoc
// @Summary 查询课程内各课时成绩
// @Tags 课程
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "课程 ID"
// @Param   studentId path int true "学生 ID"
// @Success 200 {object} util.Response{data=[]model.Score} "课时成绩列表"
// @Router /api/courses/{id}/scores/{studentId} [get]
func (c *CourseController) LessonScores(ctx *gin.Context) {
	id, ok := parseUintParam(ctx, "id")
	if !ok {
		return
	}
	studentID, ok := parseUintParam(ctx, "studentId")
	if !ok {
		return
	}
	scores, err := c.CourseService.LessonScores(middleware.GetPrincipal(ctx), id, studentID)
	if err != nil {
		util.BusinessError(ctx, err)
		return
	}
	util.Success(ctx, scores)
}

// Hot godoc
// @Summary 热门课程榜
// @Description 按选课热度取前十门课程
// @Tags 课程
// @Produce  json
// @Success 200 {object} util.Response{data=[]model.Course} "热门课程"
// @Router /api/courses/hot [get]
func (c *CourseController) Hot(ctx *gin.Context) {
	courses, err := c.EnrollmentService.HotCourses(10)
	if err != nil {
		util.BusinessError(ctx, err)
		return
	}
	util.Success(ctx, courses)
}
