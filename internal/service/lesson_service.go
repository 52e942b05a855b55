package service

import (
	"course_center_backend/internal/model"
	"course_center_backend/internal/repository"
	"course_center_backend/internal/util"
)

type LessonService struct {
	LessonRepo     *repository.LessonRepository
	CourseRepo     *repository.CourseRepository
	EnrollmentRepo *repository.EnrollmentRepository
	ScoreRepo      *repository.ScoreRepository
	UserRepo       *repository.UserRepository
}

func NewLessonService(
	lessonRepo *repository.LessonRepository,
	courseRepo *repository.CourseRepository,
	enrollmentRepo *repository.EnrollmentRepository,
	scoreRepo *repository.ScoreRepository,
	userRepo *repository.UserRepository,
) *LessonService {
	return &LessonService{
		LessonRepo:     lessonRepo,
		CourseRepo:     courseRepo,
		EnrollmentRepo: enrollmentRepo,
		ScoreRepo:      scoreRepo,
		UserRepo:       userRepo,
	}
}

// Add 在课程下新建课时，初始为草稿态。任课教师或管理员可操作。
func (s *LessonService) Add(principal *model.Principal, courseID uint, name string) (*model.Lesson, error) {
	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		return nil, err
	}
	if !CanManageCourse(principal, course) {
		return nil, util.ErrPermissionDenied
	}
	if course.IsOver {
		return nil, util.ErrCourseOver
	}
	if name == "" || len([]rune(name)) > 20 {
		return nil, util.ErrInvalidLessonName
	}
	lesson := &model.Lesson{
		CourseID: courseID,
		Name:     name,
	}
	if err := s.LessonRepo.Create(lesson); err != nil {
		return nil, err
	}
	return lesson, nil
}

// Delete 删除课时，连同其习题关联、答题记录与成绩。
func (s *LessonService) Delete(principal *model.Principal, lessonID uint) error {
	lesson, err := s.LessonRepo.FindByID(lessonID)
	if err != nil {
		return err
	}
	course, err := s.CourseRepo.FindByID(lesson.CourseID)
	if err != nil {
		return err
	}
	if !CanManageCourse(principal, course) {
		return util.ErrPermissionDenied
	}
	return s.LessonRepo.DeleteCascade(lessonID)
}

func (s *LessonService) Get(lessonID uint) (*model.Lesson, error) {
	return s.LessonRepo.FindByID(lessonID)
}

func (s *LessonService) ListByCourse(courseID uint) ([]model.Lesson, error) {
	return s.LessonRepo.ListByCourse(courseID)
}

// GetScore 查某学生在某课时的成绩。学生本人、任课教师或管理员可查。
// 课时未发布时没有成绩可言，直接拒绝。
func (s *LessonService) GetScore(principal *model.Principal, lessonID, studentID uint) (*model.Score, error) {
	lesson, err := s.LessonRepo.FindByID(lessonID)
	if err != nil {
		return nil, err
	}
	course, err := s.CourseRepo.FindByID(lesson.CourseID)
	if err != nil {
		return nil, err
	}
	if !CanViewStudent(principal, studentID, course) {
		return nil, util.ErrPermissionDenied
	}
	if !lesson.HasQuestions {
		return nil, util.ErrLessonNotPublished
	}
	enrolled, err := s.EnrollmentRepo.Exists(studentID, lesson.CourseID)
	if err != nil {
		return nil, err
	}
	if !enrolled {
		return nil, util.ErrNotEnrolled
	}
	return s.ScoreRepo.Get(studentID, lessonID)
}

// StudentScore 选课学生及其课时成绩，未作答时成绩为空。
type StudentScore struct {
	Student model.User   `json:"student"`
	Score   *model.Score `json:"score"`
}

// ListScores 某课时全部选课学生的成绩单。任课教师或管理员可查。
func (s *LessonService) ListScores(principal *model.Principal, lessonID uint) ([]StudentScore, error) {
	lesson, err := s.LessonRepo.FindByID(lessonID)
	if err != nil {
		return nil, err
	}
	course, err := s.CourseRepo.FindByID(lesson.CourseID)
	if err != nil {
		return nil, err
	}
	if !CanManageCourse(principal, course) {
		return nil, util.ErrPermissionDenied
	}
	if !lesson.HasQuestions {
		return nil, util.ErrLessonNotPublished
	}
	studentIDs, err := s.EnrollmentRepo.StudentIDsOfCourse(lesson.CourseID)
	if err != nil {
		return nil, err
	}
	if len(studentIDs) == 0 {
		return []StudentScore{}, nil
	}
	students, err := s.UserRepo.FindByIDs(studentIDs)
	if err != nil {
		return nil, err
	}
	scores, err := s.ScoreRepo.ListByLesson(lessonID)
	if err != nil {
		return nil, err
	}
	byStudent := make(map[uint]*model.Score, len(scores))
	for i := range scores {
		byStudent[scores[i].StudentID] = &scores[i]
	}
	result := make([]StudentScore, 0, len(students))
	for _, student := range students {
		result = append(result, StudentScore{
			Student: student,
			Score:   byStudent[student.ID],
		})
	}
	return result, nil
}

// PublishedCount 某教师名下已发布课时的数量。
func (s *LessonService) PublishedCount(teacherID uint) (int64, error) {
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
	return s.LessonRepo.CountPublished(courseIDs)
}
