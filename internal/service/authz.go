package service

import (
	"course_center_backend/internal/model"
)

// 授权判定，全部是无副作用的纯函数。
// 各服务/控制器组合这些判定，不各自散落 role 比较。

func IsAdmin(p *model.Principal) bool {
	return p != nil && p.Role == model.Admin
}

func HasRole(p *model.Principal, role model.UserRole) bool {
	if p == nil {
		return false
	}
	// 管理员拥有一切角色权限
	return p.Role == role || p.Role == model.Admin
}

func IsOwner(p *model.Principal, ownerID uint) bool {
	return p != nil && p.ID == ownerID
}

func IsActive(p *model.Principal) bool {
	return p != nil && !p.Disabled
}

// CanManageCourse 课程归属老师本人或管理员
func CanManageCourse(p *model.Principal, course *model.Course) bool {
	return IsAdmin(p) || (p != nil && course != nil && p.ID == course.TeacherID)
}

// CanViewStudent 本人、课程老师或管理员
func CanViewStudent(p *model.Principal, studentID uint, course *model.Course) bool {
	if IsAdmin(p) || IsOwner(p, studentID) {
		return true
	}
	return course != nil && p != nil && p.ID == course.TeacherID
}
