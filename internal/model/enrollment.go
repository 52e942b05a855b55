package model

// Enrollment 选课记录。FinalScore 仅在课程结束后由结课汇总填入。
// swagger:model Enrollment
type Enrollment struct {
	HardBase
	StudentID  uint     `gorm:"uniqueIndex:idx_student_course;not null" json:"studentId"`
	CourseID   uint     `gorm:"uniqueIndex:idx_student_course;not null" json:"courseId"`
	FinalScore *float64 `json:"finalScore,omitempty"`
}

func (Enrollment) TableName() string {
	return "enrollments"
}
