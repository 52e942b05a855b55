package model

// Lesson 课时。HasQuestions 是发布状态机对外可见的一半：
// false = 草稿（习题可增删），true = 已发布（习题集冻结）。
// swagger:model Lesson
type Lesson struct {
	BaseModel
	CourseID     uint   `gorm:"index;not null" json:"courseId"`
	Name         string `gorm:"size:64;not null" json:"name"`
	HasQuestions bool   `gorm:"default:false" json:"hasQuestions"`
}

func (Lesson) TableName() string {
	return "lessons"
}
