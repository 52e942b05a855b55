package service

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"course_center_backend/internal/config"
	"course_center_backend/internal/model"
	"course_center_backend/internal/repository"
	"course_center_backend/pkg/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var testDBSeq int64

func init() {
	logger.Log = zap.NewNop()
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:svc_test_%d?mode=memory&cache=shared", atomic.AddInt64(&testDBSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// 内存库在多连接下各自独立，收敛到单连接
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Course{},
		&model.Lesson{},
		&model.Question{},
		&model.LessonQuestionLink{},
		&model.Enrollment{},
		&model.SubmissionRecord{},
		&model.Score{},
	))
	return db
}

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return mr, rdb
}

func testConfig() *config.Config {
	return &config.Config{
		Session: config.SessionConfig{TTL: time.Hour},
	}
}

type testEnv struct {
	db  *gorm.DB
	mr  *miniredis.Miniredis
	rdb *redis.Client

	users          *repository.UserRepository
	sessions       *repository.SessionRepository
	courses        *repository.CourseRepository
	lessons        *repository.LessonRepository
	questions      *repository.QuestionRepository
	lessonQuestion *repository.LessonQuestionRepository
	enrollments    *repository.EnrollmentRepository
	scores         *repository.ScoreRepository
	submissions    *repository.SubmissionRepository
	popularity     *repository.PopularityRepository

	auth       *AuthService
	course     *CourseService
	lesson     *LessonService
	question   *QuestionService
	publishing *PublishingService
	enrollment *EnrollmentService
	grading    *GradingService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := newTestDB(t)
	mr, rdb := newTestRedis(t)

	env := &testEnv{
		db:             db,
		mr:             mr,
		rdb:            rdb,
		users:          repository.NewUserRepository(db),
		sessions:       repository.NewSessionRepository(rdb),
		courses:        repository.NewCourseRepository(db),
		lessons:        repository.NewLessonRepository(db),
		questions:      repository.NewQuestionRepository(db),
		lessonQuestion: repository.NewLessonQuestionRepository(db),
		enrollments:    repository.NewEnrollmentRepository(db),
		scores:         repository.NewScoreRepository(db),
		submissions:    repository.NewSubmissionRepository(db),
		popularity:     repository.NewPopularityRepository(rdb),
	}

	env.auth = NewAuthService(env.users, env.sessions, testConfig())
	env.course = NewCourseService(db, env.courses, env.lessons, env.enrollments, env.scores, env.users, env.popularity)
	env.lesson = NewLessonService(env.lessons, env.courses, env.enrollments, env.scores, env.users)
	env.question = NewQuestionService(env.questions, env.lessonQuestion, env.lessons)
	env.publishing = NewPublishingService(db, env.lessons, env.courses, env.questions, env.lessonQuestion)
	env.enrollment = NewEnrollmentService(env.enrollments, env.courses, env.lessons, env.users, env.popularity)
	env.grading = NewGradingService(env.lessons, env.courses, env.enrollments, env.lessonQuestion, env.scores, env.submissions)

	return env
}

func (e *testEnv) mustCreateUser(t *testing.T, name string, role model.UserRole) *model.User {
	t.Helper()
	user := &model.User{
		Name:     name,
		Email:    name + "@example.com",
		Password: "hashed",
		Role:     role,
	}
	require.NoError(t, e.users.Create(user))
	return user
}

func (e *testEnv) mustCreateCourse(t *testing.T, teacherID uint, name string) *model.Course {
	t.Helper()
	course := &model.Course{Name: name, TeacherID: teacherID}
	require.NoError(t, e.courses.Create(course))
	return course
}

func (e *testEnv) mustCreateLesson(t *testing.T, courseID uint, name string) *model.Lesson {
	t.Helper()
	lesson := &model.Lesson{CourseID: courseID, Name: name}
	require.NoError(t, e.lessons.Create(lesson))
	return lesson
}

func (e *testEnv) mustCreateQuestion(t *testing.T, teacherID uint, answer string) *model.Question {
	t.Helper()
	question := &model.Question{
		TeacherID: teacherID,
		Body:      "选择正确答案",
		Options:   model.OptionList{"A", "B", "C", "D"},
		Answer:    answer,
	}
	require.NoError(t, e.questions.Create(question))
	return question
}

// 走完整的草稿到发布链路，返回已发布课时
func (e *testEnv) mustPublishLesson(t *testing.T, teacher *model.Principal, courseID uint, answers []string) (*model.Lesson, []uint) {
	t.Helper()
	lesson := e.mustCreateLesson(t, courseID, "第一课")
	questionIDs := make([]uint, 0, len(answers))
	for _, answer := range answers {
		q := e.mustCreateQuestion(t, teacher.ID, answer)
		questionIDs = append(questionIDs, q.ID)
	}
	require.NoError(t, e.publishing.AddQuestions(teacher, lesson.ID, questionIDs))
	require.NoError(t, e.publishing.Commit(teacher, lesson.ID, questionIDs))
	return lesson, questionIDs
}
