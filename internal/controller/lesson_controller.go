package controller

import (
	"course_center_backend/internal/middleware"
	"course_center_backend/internal/service"
	"course_center_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type LessonController struct {
	LessonService     *service.LessonService
	PublishingService *service.PublishingService
}

func NewLessonController(lessonService *service.LessonService, publishingService *service.PublishingService) *LessonController {
	return &LessonController{
		LessonService:     lessonService,
		PublishingService: publishingService,
	}
}

// AddLessonRequest 新建课时请求
// swagger:model AddLessonRequest
type AddLessonRequest struct {
	CourseID uint   `json:"courseId" binding:"required"`
	Name     string `json:"name" binding:"required"`
}

// Add godoc
// @Summary 新建课时
// @Description 在课程下新建草稿态课时
// @Tags 课时
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body AddLessonRequest true "课时信息"
// @Success 201 {object} util.Response{data=model.Lesson} "课时"
// @Router /api/lessons [post]
func (c *LessonController) Add(ctx *gin.Context) {
	var req AddLessonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	lesson, err := c.LessonService.Add(middleware.GetPrincipal(ctx), req.CourseID, req.Name)
	if err != nil {
		util.BusinessError(ctx, err)
		return
	}
	util.Created(ctx, lesson)
}

// Delete godoc
// @Summary 删除课时
// @Description 级联删除习题关联、答题记录与成绩
// @Tags 课时
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "课时 ID"
// @Success 200 {object} util.Response "删除成功"
// @Router /api/lessons/{id} [delete]
func (c *LessonController) Delete(ctx *gin.Context) {
	id, ok := parseUintParam(ctx, "id")
	if !ok {
		return
	}
	if err := c.LessonService.Delete(middleware.GetPrincipal(ctx), id); err != nil {
		util.BusinessError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// Get godoc
// @Summary 课时详情
// @Tags 课时
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "课时 ID"
// @Success 200 {object} util.Response{data=model.Lesson} "课时"
// @Failure 404 {object} util.Response "课时不存在"
// @Router /api/lessons/{id} [get]
func (c *LessonController) Get(ctx *gin.Context) {
	id, ok := parseUintParam(ctx, "id")
	if !ok {
		return
	}
	lesson, err := c.LessonService.Get(id)
	if err != nil {
		util.BusinessError(ctx, err)
		return
	}
	util.Success(ctx, lesson)
}

// ListByCourse godoc
// @Summary 课程下的课时列表
// @Tags 课时
// @Produce  json
// @Security ApiKeyAuth
// @Param   courseId path int true "课程 ID"
// @Success 200 {object} util.Response{data=[]model.Lesson} "课时列表"
// @Router /api/courses/{courseId}/lessons [get]
func (c *LessonController) ListByCourse(ctx *gin.Context) {
	courseID, ok := parseUintParam(ctx, "courseId")
	if !ok {
		return
	}
	lessons, err := c.LessonService.ListByCourse(courseID)
	if err != nil {
		util.BusinessError(ctx, err)
		return
	}
	util.Success(ctx, lessons)
}

// GetScore godoc
// @Summary 查询课时成绩
// @Tags 课时
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "课时 ID"
// @Param   studentId path int true "学生 ID"
// @Success 200 {object} util.Response{data=model.Score} "成绩"
// @Failure 404 {object} util.Response "尚未作答"
// @Router /api/lessons/{id}/score/{studentId} [get]
func (c *LessonController) GetScore(ctx *gin.Context) {
	id, ok := parseUintParam(ctx, "id")
	if !ok {
		return
	}
	studentID, ok := parseUintParam(ctx, "studentId")
	if !ok {
		return
	}
	score, err := c.LessonService.GetScore(middleware.GetPrincipal(ctx), id, studentID)
	if err != nil {
		util.BusinessError(ctx, err)
		return
	}
	util.Success(ctx, score)
}

// ListScores godoc
// @Summary 课时成绩单
// @Description 全部选课学生及其成绩，未作答为空
// @Tags 课时
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "课时 ID"
// @Success 200 {object} util.Response{data=[]service.StudentScore} "成绩单"
// @Router /api/lessons/{id}/scores [get]
func (c *LessonController) ListScores(ctx *gin.Context) {
	id, ok := parseUintParam(ctx, "id")
	if !ok {
		return
	}
	scores, err := c.LessonService.ListScores(middleware.GetPrincipal(ctx), id)
	if err != nil {
		util.BusinessError(ctx, err)
		return
	}
	util.Success(ctx, scores)
}

// QuestionSetRequest 习题集合请求
// swagger:model QuestionSetRequest
type QuestionSetRequest struct {
	QuestionIDs []uint `json:"questionIds" binding:"required"`
}

// AddQuestions godoc
// @Summary 向课时追加习题
// @Description 仅草稿态课时可追加，顺序接在现有习题之后
// @Tags 课时
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "课时 ID"
// @Param   body body QuestionSetRequest true "习题 ID 列表"
// @Success 200 {object} util.Response "添加成功"
// @Failure 409 {object} util.Response "课时已发布"
// @Router /api/lessons/{id}/questions [post]
func (c *LessonController) AddQuestions(ctx *gin.Context) {
	id, ok := parseUintParam(ctx, "id")
	if !ok {
		return
	}
	var req QuestionSetRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if err := c.PublishingService.AddQuestions(middleware.GetPrincipal(ctx), id, req.QuestionIDs); err != nil {
		util.BusinessError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// RemoveQuestion godoc
// @Summary 从课时移除习题
// @Description 仅未发布的关联可移除
// @Tags 课时
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "课时 ID"
// @Param   questionId path int true "习题 ID"
// @Success 200 {object} util.Response "移除成功"
// @Router /api/lessons/{id}/questions/{questionId} [delete]
func (c *LessonController) RemoveQuestion(ctx *gin.Context) {
	id, ok := parseUintParam(ctx, "id")
	if !ok {
		return
	}
	questionID, ok := parseUintParam(ctx, "questionId")
	if !ok {
		return
	}
	if err := c.PublishingService.RemoveQuestion(middleware.GetPrincipal(ctx), id, questionID); err != nil {
		util.BusinessError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// Commit godoc
// @Summary 发布课时习题
// @Description 一次性发布全部待发布习题，发布后不可回退
// @Tags 课时
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "课时 ID"
// @Param   body body QuestionSetRequest true "待发布习题 ID 列表"
// @Success 200 {object} util.Response "发布成功"
// @Failure 400 {object} util.Response "发布集合不一致"
// @Failure 409 {object} util.Response "课时已发布"
// @Router /api/lessons/{id}/commit [post]
func (c *LessonController) Commit(ctx *gin.Context) {
	id, ok := parseUintParam(ctx, "id")
	if !ok {
		return
	}
	var req QuestionSetRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if err := c.PublishingService.Commit(middleware.GetPrincipal(ctx), id, req.QuestionIDs); err != nil {
		util.BusinessError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// Questions godoc
// @Summary 课时习题列表
// @Description 按固定顺序返回课时习题，学生只能看到已发布的
// @Tags 课时
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "课时 ID"
// @Success 200 {object} util.Response{data=[]model.Question} "习题列表"
// @Failure 400 {object} util.Response "课时未发布"
// @Router /api/lessons/{id}/questions [get]
func (c *LessonController) Questions(ctx *gin.Context) {
	id, ok := parseUintParam(ctx, "id")
	if !ok {
		return
	}
	questions, err := c.PublishingService.Questions(middleware.GetPrincipal(ctx), id)
	if err != nil {
		util.BusinessError(ctx, err)
		return
	}
	util.Success(ctx, questions)
}
