package util

import "errors"

var (
	ErrNotAuthenticated    = errors.New("not authenticated")
	ErrPermissionDenied    = errors.New("permission denied")
	ErrEmailRegistered     = errors.New("该邮箱已被注册")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrUserNotFound        = errors.New("用户不存在")
	ErrAlreadyEnrolled     = errors.New("该学生已选该课程")
	ErrNotEnrolled         = errors.New("未选该课")
	ErrAlreadyCommitted    = errors.New("习题已发布，不可修改")
	ErrLessonNotPublished  = errors.New("该课时没有已发布习题")
	ErrAnswerCountMismatch = errors.New("答案数量与题目数量不一致")
	ErrAlreadySubmitted    = errors.New("已提交过该课时的习题")
	ErrCourseOver          = errors.New("课程已结束")
	ErrQuestionInUse       = errors.New("习题已被课时引用，不可删除")
	ErrDuplicateQuestion   = errors.New("习题重复添加")
	ErrEmptyQuestionSet    = errors.New("习题列表为空")
	ErrInvalidCourseName   = errors.New("课程名称为空或超出长度限制")
	ErrInvalidLessonName   = errors.New("课时名称为空或超出长度限制")
	ErrCommitSetMismatch   = errors.New("发布集合与当前未发布习题不一致")
)
