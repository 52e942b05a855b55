package controller

import (
	"course_center_backend/internal/middleware"
	"course_center_backend/internal/service"
	"course_center_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type RecordController struct {
	GradingService *service.GradingService
}

func NewRecordController(gradingService *service.GradingService) *RecordController {
	return &RecordController{GradingService: gradingService}
}

// SubmitRequest 整卷作答请求，answers 按课时习题顺序对齐
// swagger:model SubmitRequest
type SubmitRequest struct {
	Answers []string `json:"answers" binding:"required"`
}

// Submit godoc
// @Summary 提交作答并判分
// @Description 整卷提交，判分一次生效，重复提交不覆盖
// @Tags 作答
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   lessonId path int true "课时 ID"
// @Param   body body SubmitRequest true "作答"
// @Success 200 {object} util.Response{data=model.Score} "成绩"
// @Failure 400 {object} util.Response "答案数量不匹配或课时未发布"
// @Failure 409 {object} util.Response "已提交过"
// @Router /api/records/{lessonId} [post]
func (c *RecordController) Submit(ctx *gin.Context) {
	lessonID, ok := parseUintParam(ctx, "lessonId")
	if !ok {
		return
	}
	var req SubmitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	score, err := c.GradingService.Submit(middleware.GetPrincipal(ctx), lessonID, req.Answers)
	if err != nil {
		util.BusinessError(ctx, err)
		return
	}
	util.Success(ctx, score)
}

// StudentRecords godoc
// @Summary 学生逐题作答记录
// @Tags 作答
// @Produce  json
// @Security ApiKeyAuth
// @Param   lessonId path int true "课时 ID"
// @Param   studentId path int true "学生 ID"
// @Success 200 {object} util.Response{data=[]service.SubmissionDetail} "作答记录"
// @Router /api/records/{lessonId}/{studentId} [get]
func (c *RecordController) StudentRecords(ctx *gin.Context) {
	lessonID, ok := parseUintParam(ctx, "lessonId")
	if !ok {
		return
	}
	studentID, ok := parseUintParam(ctx, "studentId")
	if !ok {
		return
	}
	records, err := c.GradingService.StudentRecords(middleware.GetPrincipal(ctx), lessonID, studentID)
	if err != nil {
		util.BusinessError(ctx, err)
		return
	}
	util.Success(ctx, records)
}

// LessonRecords godoc
// @Summary 课时全部作答记录
// @Tags 作答
// @Produce  json
// @Security ApiKeyAuth
// @Param   lessonId path int true "课时 ID"
// @Success 200 {object} util.Response{data=[]service.SubmissionDetail} "作答记录"
// @Router /api/records/{lessonId} [get]
func (c *RecordController) LessonRecords(ctx *gin.Context) {
	lessonID, ok := parseUintParam(ctx, "lessonId")
	if !ok {
		return
	}
	records, err := c.GradingService.LessonRecords(middleware.GetPrincipal(ctx), lessonID)
	if err != nil {
		util.BusinessError(ctx, err)
		return
	}
	util.Success(ctx, records)
}
