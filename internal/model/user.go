package model

import (
	"time"
)

type UserRole string

const (
	Student UserRole = "student"
	Teacher UserRole = "teacher"
	Admin   UserRole = "admin"
)

// swagger:model User
type User struct {
	BaseModel
	Name      string    `gorm:"size:100;not null" json:"name"`
	Email     string    `gorm:"size:100;unique;not null" json:"email"`
	Password  string    `gorm:"size:100;not null" json:"-"`
	Role      UserRole  `gorm:"size:20;default:'student'" json:"role"`
	Avatar    string    `gorm:"size:255" json:"avatar"`
	Disabled  bool      `gorm:"default:false" json:"disabled"`
	LastLogin time.Time `json:"lastLogin"`
}

func (User) TableName() string {
	return "users"
}

// Principal 会话缓存中的用户快照。登录、资料更新时重建，
// 其余访问只读缓存，角色/状态变更要到下次登录才可见。
type Principal struct {
	ID       uint     `json:"id"`
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Role     UserRole `json:"role"`
	Avatar   string   `json:"avatar"`
	Disabled bool     `json:"disabled"`
}

// Snapshot 用户脱敏，生成会话缓存用的快照
func (u *User) Snapshot() *Principal {
	return &Principal{
		ID:       u.ID,
		Name:     u.Name,
		Email:    u.Email,
		Role:     u.Role,
		Avatar:   u.Avatar,
		Disabled: u.Disabled,
	}
}
