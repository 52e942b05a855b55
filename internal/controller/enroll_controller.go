package controller

import (
	"course_center_backend/internal/middleware"
	"course_center_backend/internal/service"
	"course_center_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type EnrollController struct {
	EnrollmentService *service.EnrollmentService
	LessonService     *service.LessonService
}

func NewEnrollController(enrollmentService *service.EnrollmentService, lessonService *service.LessonService) *EnrollController {
	return &EnrollController{
		EnrollmentService: enrollmentService,
		LessonService:     lessonService,
	}
}

// Enroll godoc
// @Summary 选课
// @Description 学生选课，重复选课返回冲突
// @Tags 选课
// @Produce  json
// @Security ApiKeyAuth
// @Param   courseId path int true "课程 ID"
// @Success 200 {object} util.Response "选课成功"
// @Failure 409 {object} util.Response "已选过该课程"
// @Router /api/enroll/{courseId} [post]
func (c *EnrollController) Enroll(ctx *gin.Context) {
	courseID, ok := parseUintParam(ctx, "courseId")
	if !ok {
		return
	}
	if err := c.EnrollmentService.Enroll(middleware.GetPrincipal(ctx), courseID); err != nil {
		util.BusinessError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// Dismiss godoc
// @Summary 退课
// @Description 本人、任课教师或管理员可操作，答题记录随之删除
// @Tags 选课
// @Produce  json
// @Security ApiKeyAuth
// @Param   courseId path int true "课程 ID"
// @Param   studentId path int true "学生 ID"
// @Success 200 {object} util.Response "退课成功"
// @Failure 400 {object} util.Response "未选过该课程"
// @Router /api/enroll/{courseId}/{studentId} [delete]
func (c *EnrollController) Dismiss(ctx *gin.Context) {
	courseID, ok := parseUintParam(ctx, "courseId")
	if !ok {
		return
	}
	studentID, ok := parseUintParam(ctx, "studentId")
	if !ok {
		return
	}
	if err := c.EnrollmentService.Dismiss(middleware.GetPrincipal(ctx), studentID, courseID); err != nil {
		util.BusinessError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// MyCourses godoc
// @Summary 我选的课程
// @Tags 选课
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Course} "课程列表"
// @Router /api/enroll/courses [get]
func (c *EnrollController) MyCourses(ctx *gin.Context) {
	principal := middleware.GetPrincipal(ctx)
	courses, err := c.EnrollmentService.CoursesOf(principal, principal.ID)
	if err != nil {
		util.BusinessError(ctx, err)
		return
	}
	util.Success(ctx, courses)
}

// Students godoc
// @Summary 课程选课名单
// @Tags 选课
// @Produce  json
// @Security ApiKeyAuth
// @Param   courseId path int true "课程 ID"
// @Success 200 {object} util.Response{data=[]model.User} "学生名单"
// @Router /api/enroll/{courseId}/students [get]
func (c *EnrollController) Students(ctx *gin.Context) {
	courseID, ok := parseUintParam(ctx, "courseId")
	if !ok {
		return
	}
	students, err := c.EnrollmentService.StudentsOf(middleware.GetPrincipal(ctx), courseID)
	if err != nil {
		util.BusinessError(ctx, err)
		return
	}
	util.Success(ctx, students)
}

// TeacherStats godoc
// @Summary 教师工作台统计
// @Description 当前教师名下全部课程的选课人次与已发布课时数
// @Tags 选课
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=object} "统计数据"
// @Router /api/enroll/stats [get]
func (c *EnrollController) TeacherStats(ctx *gin.Context) {
	teacherID := middleware.GetPrincipal(ctx).ID
	studentCount, err := c.EnrollmentService.TeacherStudentCount(teacherID)
	if err != nil {
		util.BusinessError(ctx, err)
		return
	}
	publishedLessons, err := c.LessonService.PublishedCount(teacherID)
	if err != nil {
		util.BusinessError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{
		"studentCount":     studentCount,
		"publishedLessons": publishedLessons,
	})
}
