package util

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// BusinessError 将业务错误映射到稳定的 HTTP 状态码。
// 每种错误保持可区分，未识别的一律按内部错误记录。
func BusinessError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotAuthenticated):
		Unauthorized(c)
	case errors.Is(err, ErrPermissionDenied):
		Forbidden(c)
	case errors.Is(err, gorm.ErrRecordNotFound), errors.Is(err, ErrUserNotFound):
		NotFound(c)
	case errors.Is(err, ErrEmailRegistered),
		errors.Is(err, ErrAlreadyEnrolled),
		errors.Is(err, ErrAlreadySubmitted),
		errors.Is(err, ErrAlreadyCommitted),
		errors.Is(err, ErrQuestionInUse):
		Error(c, http.StatusConflict, err.Error())
	case errors.Is(err, ErrNotEnrolled),
		errors.Is(err, ErrLessonNotPublished),
		errors.Is(err, ErrAnswerCountMismatch),
		errors.Is(err, ErrCourseOver),
		errors.Is(err, ErrDuplicateQuestion),
		errors.Is(err, ErrEmptyQuestionSet),
		errors.Is(err, ErrCommitSetMismatch),
		errors.Is(err, ErrInvalidCourseName),
		errors.Is(err, ErrInvalidLessonName),
		errors.Is(err, ErrInvalidCredentials):
		BadRequest(c, err.Error())
	default:
		LogInternalError(c, err)
	}
}
