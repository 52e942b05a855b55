package controller

import (
	"course_center_backend/internal/middleware"
	"course_center_backend/internal/model"
	"course_center_backend/internal/service"
	"course_center_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuestionController struct {
	QuestionService *service.QuestionService
}

func NewQuestionController(questionService *service.QuestionService) *QuestionController {
	return &QuestionController{QuestionService: questionService}
}

// QuestionRequest 习题请求
// swagger:model QuestionRequest
type QuestionRequest struct {
	Knowledge   string   `json:"knowledge"`
	Body        string   `json:"body" binding:"required"`
	Options     []string `json:"options" binding:"required,min=2"`
	Answer      string   `json:"answer" binding:"required"`
	Explanation string   `json:"explanation"`
}

// Create godoc
// @Summary 新增习题
// @Description 教师向个人题库新增习题
// @Tags 题库
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body QuestionRequest true "习题"
// @Success 201 {object} util.Response{data=model.Question} "习题"
// @Router /api/questions [post]
func (c *QuestionController) Create(ctx *gin.Context) {
	var req QuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	question := &model.Question{
		Knowledge:   req.Knowledge,
		Body:        req.Body,
		Options:     model.OptionList(req.Options),
		Answer:      req.Answer,
		Explanation: req.Explanation,
	}
	if err := c.QuestionService.Create(middleware.GetPrincipal(ctx), question); err != nil {
		util.BusinessError(ctx, err)
		return
	}
	util.Created(ctx, question)
}

// Get godoc
// @Summary 习题详情
// @Tags 题库
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "习题 ID"
// @Success 200 {object} util.Response{data=model.Question} "习题"
// @Router /api/questions/{id} [get]
func (c *QuestionController) Get(ctx *gin.Context) {
	id, ok := parseUintParam(ctx, "id")
	if !ok {
		return
	}
	question, err := c.QuestionService.Get(middleware.GetPrincipal(ctx), id)
	if err != nil {
		util.BusinessError(ctx, err)
		return
	}
	util.Success(ctx, question)
}

// Update godoc
// @Summary 修改习题
// @Description 已被课时发布引用的习题不可再改
// @Tags 题库
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "习题 ID"
// @Param   body body QuestionRequest true "习题"
// @Success 200 {object} util.Response "修改成功"
// @Failure 409 {object} util.Response "习题已发布"
// @Router /api/questions/{id} [put]
func (c *QuestionController) Update(ctx *gin.Context) {
	id, ok := parseUintParam(ctx, "id")
	if !ok {
		return
	}
	var req QuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	question := &model.Question{
		Knowledge:   req.Knowledge,
		Body:        req.Body,
		Options:     model.OptionList(req.Options),
		Answer:      req.Answer,
		Explanation: req.Explanation,
	}
	question.ID = id
	if err := c.QuestionService.Update(middleware.GetPrincipal(ctx), question); err != nil {
		util.BusinessError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// Delete godoc
// @Summary 删除习题
// @Description 被课时引用的习题不可删除
// @Tags 题库
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "习题 ID"
// @Success 200 {object} util.Response "删除成功"
// @Failure 409 {object} util.Response "习题已被引用"
// @Router /api/questions/{id} [delete]
func (c *QuestionController) Delete(ctx *gin.Context) {
	id, ok := parseUintParam(ctx, "id")
	if !ok {
		return
	}
	if err := c.QuestionService.Delete(middleware.GetPrincipal(ctx), id); err != nil {
		util.BusinessError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// ListMine godoc
// @Summary 我的题库
// @Tags 题库
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Question} "习题列表"
// @Router /api/questions/mine [get]
func (c *QuestionController) ListMine(ctx *gin.Context) {
	principal := middleware.GetPrincipal(ctx)
	questions, err := c.QuestionService.ListByTeacher(principal, principal.ID)
	if err != nil {
		util.BusinessError(ctx, err)
		return
	}
	util.Success(ctx, questions)
}

// Lessons godoc
// @Summary 习题被引用的课时
// @Tags 题库
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "习题 ID"
// @Success 200 {object} util.Response{data=[]model.Lesson} "课时列表"
// @Router /api/questions/{id}/lessons [get]
func (c *QuestionController) Lessons(ctx *gin.Context) {
	id, ok := parseUintParam(ctx, "id")
	if !ok {
		return
	}
	lessons, err := c.QuestionService.LessonsOf(middleware.GetPrincipal(ctx), id)
	if err != nil {
		util.BusinessError(ctx, err)
		return
	}
	util.Success(ctx, lessons)
}
