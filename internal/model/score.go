package model

// Score 一次提交的唯一成绩。(student_id, lesson_id) 唯一索引
// 就是"一课时只能交一次"的保证。
// swagger:model Score
type Score struct {
	HardBase
	StudentID uint    `gorm:"uniqueIndex:idx_score_student_lesson;not null" json:"studentId"`
	LessonID  uint    `gorm:"uniqueIndex:idx_score_student_lesson;not null" json:"lessonId"`
	Value     float64 `gorm:"not null" json:"value"`
}

func (Score) TableName() string {
	return "scores"
}
