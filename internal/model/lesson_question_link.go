package model

// LessonQuestionLink 课时-习题关联，带顺序和发布标记。
// Committed=true 后该关联及其习题不可再修改或删除。
// swagger:model LessonQuestionLink
type LessonQuestionLink struct {
	HardBase
	LessonID   uint `gorm:"uniqueIndex:idx_lesson_question;not null" json:"lessonId"`
	QuestionID uint `gorm:"uniqueIndex:idx_lesson_question;not null" json:"questionId"`
	Order      int  `gorm:"not null" json:"order"`
	Committed  bool `gorm:"default:false" json:"committed"`
}

func (LessonQuestionLink) TableName() string {
	return "lesson_question_links"
}
