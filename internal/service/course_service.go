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

type CourseService struct {
	DB             *gorm.DB
	CourseRepo     *repository.CourseRepository
	LessonRepo     *repository.LessonRepository
	EnrollmentRepo *repository.EnrollmentRepository
	ScoreRepo      *repository.ScoreRepository
	UserRepo       *repository.UserRepository
	PopularityRepo *repository.PopularityRepository
}

func NewCourseService(
	db *gorm.DB,
	courseRepo *repository.CourseRepository,
	lessonRepo *repository.LessonRepository,
	enrollmentRepo *repository.EnrollmentRepository,
	scoreRepo *repository.ScoreRepository,
	userRepo *repository.UserRepository,
	popularityRepo *repository.PopularityRepository,
) *CourseService {
	return &CourseService{
		DB:             db,
		CourseRepo:     courseRepo,
		LessonRepo:     lessonRepo,
		EnrollmentRepo: enrollmentRepo,
		ScoreRepo:      scoreRepo,
		UserRepo:       userRepo,
		PopularityRepo: popularityRepo,
	}
}

// Create 教师开课。课程名不超过 20 个字符。
func (s *CourseService) Create(principal *model.Principal, name, comment string) (*model.Course, error) {
	if !HasRole(principal, model.Teacher) {
		return nil, util.ErrPermissionDenied
	}
	if name == "" || len([]rune(name)) > 20 {
		return nil, util.ErrInvalidCourseName
	}
	course := &model.Course{
		Name:      name,
		TeacherID: principal.ID,
		Comment:   comment,
	}
	if err := s.CourseRepo.Create(course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *CourseService) Get(courseID uint) (*model.Course, error) {
	return s.CourseRepo.FindByID(courseID)
}

func (s *CourseService) ListByTeacher(teacherID uint) ([]model.Course, error) {
	return s.CourseRepo.ListByTeacher(teacherID)
}

// ListPage 分页查课程，可按课程名模糊、教师名模糊过滤。
// 教师名过滤先解析出教师 ID 集合，无匹配教师时直接返回空页。
func (s *CourseService) ListPage(name, teacherName string, page, limit int) ([]model.Course, int64, error) {
	var teacherIDs []uint
	if teacherName != "" {
		users, err := s.UserRepo.SearchByName(teacherName)
		if err != nil {
			return nil, 0, err
		}
		for _, u := range users {
			if u.Role == model.Teacher {
				teacherIDs = append(teacherIDs, u.ID)
			}
		}
		if len(teacherIDs) == 0 {
			return []model.Course{}, 0, nil
		}
	}
	return s.CourseRepo.ListPage(name, teacherIDs, page, limit)
}

// EditComment 修改课程简介。任课教师或管理员可操作。
func (s *CourseService) EditComment(principal *model.Principal, courseID uint, comment string) error {
	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		return err
	}
	if !CanManageCourse(principal, course) {
		return util.ErrPermissionDenied
	}
	course.Comment = comment
	return s.CourseRepo.Update(course)
}

// Delete 删除课程及其全部课时、习题关联、选课与成绩数据，
// 并把课程移出热度榜。
func (s *CourseService) Delete(principal *model.Principal, courseID uint) error {
	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		return err
	}
	if !CanManageCourse(principal, course) {
		return util.ErrPermissionDenied
	}
	if err := s.CourseRepo.DeleteCascade(courseID); err != nil {
		return err
	}
	if err := s.PopularityRepo.Remove(courseID); err != nil {
		logger.Log.Warn("热度榜移除失败", zap.Uint("course_id", courseID), zap.Error(err))
	}
	return nil
}

// Over 结课。单向转换，重复结课返回课程已结束。
// 结课时为每个选课学生汇总总评成绩：只累加已发布课时的成绩，
// 未作答的课时按 0 分计入。
func (s *CourseService) Over(principal *model.Principal, courseID uint) error {
	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		return err
	}
	if !CanManageCourse(principal, course) {
		return util.ErrPermissionDenied
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		rows, err := s.CourseRepo.MarkOver(tx, courseID)
		if err != nil {
			return err
		}
		if rows == 0 {
			return util.ErrCourseOver
		}

		var lessonIDs []uint
		if err := tx.Model(&model.Lesson{}).
			Where("course_id = ? AND has_questions = ?", courseID, true).
			Pluck("id", &lessonIDs).Error; err != nil {
			return err
		}

		var enrollments []model.Enrollment
		if err := tx.Where("course_id = ?", courseID).Find(&enrollments).Error; err != nil {
			return err
		}

		for _, e := range enrollments {
			var total float64
			if len(lessonIDs) > 0 {
				var scores []model.Score
				if err := tx.Where("student_id = ? AND lesson_id IN ?", e.StudentID, lessonIDs).
					Find(&scores).Error; err != nil {
					return err
				}
				for _, sc := range scores {
					total += sc.Value
				}
			}
			if err := s.EnrollmentRepo.UpdateFinalScore(tx, e.ID, total); err != nil {
				return err
			}
		}
		return nil
	})
}

// FinalScore 查某学生在某课程的总评成绩，结课前为空。
// 学生本人、任课教师或管理员可查。
func (s *CourseService) FinalScore(principal *model.Principal, courseID, studentID uint) (*model.Enrollment, error) {
	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		return nil, err
	}
	if !CanViewStudent(principal, studentID, course) {
		return nil, util.ErrPermissionDenied
	}
	enrollment, err := s.EnrollmentRepo.Find(studentID, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrNotEnrolled
		}
		return nil, err
	}
	return enrollment, nil
}

// LessonScores 查某学生在某课程各课时的成绩列表。
func (s *CourseService) LessonScores(principal *model.Principal, courseID, studentID uint) ([]model.Score, error) {
	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		return nil, err
	}
	if !CanViewStudent(principal, studentID, course) {
		return nil, util.ErrPermissionDenied
	}
	enrolled, err := s.EnrollmentRepo.Exists(studentID, courseID)
	if err != nil {
		return nil, err
	}
	if !enrolled {
		return nil, util.ErrNotEnrolled
	}
	lessonIDs, err := s.LessonRepo.ListIDsByCourse(courseID)
	if err != nil {
		return nil, err
	}
	if len(lessonIDs) == 0 {
		return []model.Score{}, nil
	}
	return s.ScoreRepo.ListByStudentAndLessons(studentID, lessonIDs)
}
