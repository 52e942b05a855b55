package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// OptionList 选项列表，JSON 存储。显式类型而不是裸 json.RawMessage，
// 保证选项往返不丢结构。
type OptionList []string

func (o OptionList) Value() (driver.Value, error) {
	if o == nil {
		return "[]", nil
	}
	b, err := json.Marshal(o)
	return string(b), err
}

func (o *OptionList) Scan(value interface{}) error {
	if value == nil {
		*o = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, o)
	case string:
		return json.Unmarshal([]byte(v), o)
	default:
		return errors.New("unsupported option list column type")
	}
}

// swagger:model Question
type Question struct {
	BaseModel
	TeacherID   uint       `gorm:"index;not null" json:"teacherId"`
	Knowledge   string     `gorm:"size:100" json:"knowledge"`
	Body        string     `gorm:"type:text;not null" json:"body"`
	Options     OptionList `gorm:"type:json" json:"options"`
	Answer      string     `gorm:"type:text" json:"answer"`
	Explanation string     `gorm:"type:text" json:"explanation"`
}

func (Question) TableName() string {
	return "questions"
}
