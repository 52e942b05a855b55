package service

import (
	"errors"

	"course_center_backend/internal/model"
	"course_center_backend/internal/repository"
	"course_center_backend/internal/util"
	"course_center_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type EnrollmentService struct {
	EnrollmentRepo *repository.EnrollmentRepository
	CourseRepo     *repository.CourseRepository
	LessonRepo     *repository.LessonRepository
	UserRepo       *repository.UserRepository
	PopularityRepo *repository.PopularityRepository
}

func NewEnrollmentService(
	enrollmentRepo *repository.EnrollmentRepository,
	courseRepo *repository.CourseRepository,
	lessonRepo *repository.LessonRepository,
	userRepo *repository.UserRepository,
	popularityRepo *repository.PopularityRepository,
) *EnrollmentService {
	return &EnrollmentService{
		EnrollmentRepo: enrollmentRepo,
		CourseRepo:     courseRepo,
		LessonRepo:     lessonRepo,
		UserRepo:       userRepo,
		PopularityRepo: popularityRepo,
	}
}

// Enroll 学生选课。同一学生同一课程只会选上一次，并发重复请求
// 由数据库唯一索引裁决，仅插入成功的那一次计入热度榜。
func (s *EnrollmentService) Enroll(principal *model.Principal, courseID uint) error {
	if !HasRole(principal, model.Student) {
		return util.ErrPermissionDenied
	}
	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		return err
	}
	if course.IsOver {
		return util.ErrCourseOver
	}
	inserted, err := s.EnrollmentRepo.Create(&model.Enrollment{
		StudentID: principal.ID,
		CourseID:  courseID,
	})
	if err != nil {
		return err
	}
	if !inserted {
		return util.ErrAlreadyEnrolled
	}
	if err := s.PopularityRepo.Increment(courseID, 1); err != nil {
		// 热度榜更新失败不回滚选课，榜单允许短暂偏差
		logger.Log.Warn("热度榜更新失败", zap.Uint("course_id", courseID), zap.Error(err))
	}
	return nil
}

// Dismiss 退课。本人、任课教师或管理员可操作，
// 连同该生在此课程下的全部答题记录一并删除。
func (s *EnrollmentService) Dismiss(principal *model.Principal, studentID, courseID uint) error {
	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		return err
	}
	if !IsOwner(principal, studentID) && !CanManageCourse(principal, course) {
		return util.ErrPermissionDenied
	}
	lessonIDs, err := s.LessonRepo.ListIDsByCourse(courseID)
	if err != nil {
		return err
	}
	removed, err := s.EnrollmentRepo.Dismiss(studentID, courseID, lessonIDs)
	if err != nil {
		return err
	}
	if removed == 0 {
		return util.ErrNotEnrolled
	}
	return nil
}

// CoursesOf 某学生已选的全部课程。仅本人或管理员可查。
func (s *EnrollmentService) CoursesOf(principal *model.Principal, studentID uint) ([]model.Course, error) {
	if !IsOwner(principal, studentID) && !IsAdmin(principal) {
		return nil, util.ErrPermissionDenied
	}
	courseIDs, err := s.EnrollmentRepo.CourseIDsOfStudent(studentID)
	if err != nil {
		return nil, err
	}
	if len(courseIDs) == 0 {
		return []model.Course{}, nil
	}
	return s.CourseRepo.FindByIDs(courseIDs)
}

// StudentsOf 某课程的选课学生名单。任课教师或管理员可查。
func (s *EnrollmentService) StudentsOf(principal *model.Principal, courseID uint) ([]model.User, error) {
	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		return nil, err
	}
	if !CanManageCourse(principal, course) {
		return nil, util.ErrPermissionDenied
	}
	studentIDs, err := s.EnrollmentRepo.StudentIDsOfCourse(courseID)
	if err != nil {
		return nil, err
	}
	if len(studentIDs) == 0 {
		return []model.User{}, nil
	}
	return s.UserRepo.FindByIDs(studentIDs)
}

// IsEnrolled 判断学生是否已选某课程。
func (s *EnrollmentService) IsEnrolled(studentID, courseID uint) (bool, error) {
	return s.EnrollmentRepo.Exists(studentID, courseID)
}

// HotCourses 按选课热度取前 n 门课程，保持榜单顺序。
// 榜单里的课程若已被删除则跳过。
func (s *EnrollmentService) HotCourses(n int64) ([]model.Course, error) {
	ranked, err := s.PopularityRepo.TopN(n)
	if err != nil {
		return nil, err
	}
	courses := make([]model.Course, 0, len(ranked))
	for _, r := range ranked {
		course, err := s.CourseRepo.FindByID(r.CourseID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, err
		}
		courses = append(courses, *course)
	}
	return courses, nil
}

// TeacherStudentCount 某教师名下全部课程的选课人次总和。
func (s *EnrollmentService) TeacherStudentCount(teacherID uint) (int64, error) {
	courses, err := s.CourseRepo.ListByTeacher(teacherID)
	if err != nil {
		return 0, err
	}
	if len(courses) == 0 {
		return 0, nil
	}
	courseIDs := make([]uint, 0, len(courses))
	for _, c := range courses {
		courseIDs = append(courseIDs, c.ID)
	}
	return s.EnrollmentRepo.CountByCourses(courseIDs)
}
