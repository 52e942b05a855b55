package service

import (
	"testing"

	"course_center_backend/internal/model"
)

func principal(id uint, role model.UserRole) *model.Principal {
	return &model.Principal{ID: id, Role: role}
}

func TestHasRole(t *testing.T) {
	cases := []struct {
		name string
		p    *model.Principal
		role model.UserRole
		want bool
	}{
		{"学生具备学生角色", principal(1, model.Student), model.Student, true},
		{"学生不具备教师角色", principal(1, model.Student), model.Teacher, false},
		{"教师不具备学生角色", principal(2, model.Teacher), model.Student, false},
		{"管理员通过任何角色检查", principal(3, model.Admin), model.Teacher, true},
		{"管理员通过学生角色检查", principal(3, model.Admin), model.Student, true},
		{"空主体一律拒绝", nil, model.Student, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := HasRole(c.p, c.role); got != c.want {
				t.Fatalf("HasRole=%v, want %v", got, c.want)
			}
		})
	}
}

func TestCanManageCourse(t *testing.T) {
	course := &model.Course{TeacherID: 10}

	if !CanManageCourse(principal(10, model.Teacher), course) {
		t.Fatal("任课教师应可管理课程")
	}
	if CanManageCourse(principal(11, model.Teacher), course) {
		t.Fatal("其他教师不可管理课程")
	}
	if !CanManageCourse(principal(99, model.Admin), course) {
		t.Fatal("管理员应可管理任何课程")
	}
	if CanManageCourse(nil, course) {
		t.Fatal("空主体不可管理课程")
	}
	if CanManageCourse(principal(10, model.Teacher), nil) {
		t.Fatal("空课程不可管理")
	}
}

func TestCanViewStudent(t *testing.T) {
	course := &model.Course{TeacherID: 10}

	if !CanViewStudent(principal(5, model.Student), 5, course) {
		t.Fatal("学生应可查看自己")
	}
	if CanViewStudent(principal(5, model.Student), 6, course) {
		t.Fatal("学生不可查看他人")
	}
	if !CanViewStudent(principal(10, model.Teacher), 5, course) {
		t.Fatal("任课教师应可查看选课学生")
	}
	if CanViewStudent(principal(11, model.Teacher), 5, course) {
		t.Fatal("其他教师不可查看")
	}
	if !CanViewStudent(principal(99, model.Admin), 5, nil) {
		t.Fatal("管理员应可查看任何学生")
	}
}

func TestIsActive(t *testing.T) {
	if IsActive(nil) {
		t.Fatal("空主体不是活跃用户")
	}
	if IsActive(&model.Principal{ID: 1, Disabled: true}) {
		t.Fatal("禁用用户不是活跃用户")
	}
	if !IsActive(&model.Principal{ID: 1}) {
		t.Fatal("正常用户应是活跃用户")
	}
}
