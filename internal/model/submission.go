package model

// SubmissionRecord 单题作答记录。同一 (student, lesson) 的所有行
// 随评分一次性写入，之后不再更新。
// swagger:model SubmissionRecord
type SubmissionRecord struct {
	HardBase
	StudentID      uint   `gorm:"index:idx_sub_student_lesson;not null" json:"studentId"`
	LessonID       uint   `gorm:"index:idx_sub_student_lesson;not null" json:"lessonId"`
	QuestionID     uint   `gorm:"not null" json:"questionId"`
	SelectedAnswer string `gorm:"type:text" json:"selectedAnswer"`
	IsCorrect      bool   `gorm:"default:false" json:"isCorrect"`
}

func (SubmissionRecord) TableName() string {
	return "submission_records"
}
