package model

// swagger:model Course
type Course struct {
	BaseModel
	Name      string `gorm:"size:64;not null" json:"name"`
	TeacherID uint   `gorm:"index" json:"teacherId"`
	Comment   string `gorm:"type:text" json:"comment"`
	IsOver    bool   `gorm:"default:false" json:"isOver"`
}

func (Course) TableName() string {
	return "courses"
}
