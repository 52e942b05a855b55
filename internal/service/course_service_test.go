package service

import (
	"testing"

	"course_center_backend/internal/model"
	"course_center_backend/internal/util"

	"github.com/stretchr/testify/require"
)

func TestCreateCourseValidation(t *testing.T) {
	env := newTestEnv(t)
	teacher := env.mustCreateUser(t, "teacher", model.Teacher)
	student := env.mustCreateUser(t, "student", model.Student)

	_, err := env.course.Create(student.Snapshot(), "偷开的课", "")
	require.ErrorIs(t, err, util.ErrPermissionDenied)

	_, err = env.course.Create(teacher.Snapshot(), "", "")
	require.ErrorIs(t, err, util.ErrInvalidCourseName)

	long := "这门课程的名字实在是太长了完全超出了允许的范围"
	_, err = env.course.Create(teacher.Snapshot(), long, "")
	require.ErrorIs(t, err, util.ErrInvalidCourseName)

	course, err := env.course.Create(teacher.Snapshot(), "编译原理", "前端到后端")
	require.NoError(t, err)
	require.Equal(t, teacher.ID, course.TeacherID)
}

// 结课汇总：只累加已发布课时，未作答按 0 分
func TestOverAggregatesCommittedLessons(t *testing.T) {
	env := newTestEnv(t)
	teacher := env.mustCreateUser(t, "teacher", model.Teacher)
	student := env.mustCreateUser(t, "student", model.Student)
	course := env.mustCreateCourse(t, teacher.ID, "编译原理")

	tp := teacher.Snapshot()
	sp := student.Snapshot()
	require.NoError(t, env.enrollment.Enroll(sp, course.ID))

	// 两个已发布课时，一个草稿课时
	lesson1, _ := env.mustPublishLesson(t, tp, course.ID, []string{"A", "B", "C", "D", "E"})
	lesson2, _ := env.mustPublishLesson(t, tp, course.ID, []string{"A", "B", "C", "D", "E"})
	env.mustCreateLesson(t, course.ID, "草稿课时")

	_, err := env.grading.Submit(sp, lesson1.ID, []string{"A", "B", "C", "D", "X"}) // 80
	require.NoError(t, err)
	_, err = env.grading.Submit(sp, lesson2.ID, []string{"A", "B", "C", "X", "X"}) // 60
	require.NoError(t, err)

	require.NoError(t, env.course.Over(tp, course.ID))

	enrollment, err := env.course.FinalScore(sp, course.ID, student.ID)
	require.NoError(t, err)
	require.NotNil(t, enrollment.FinalScore)
	require.Equal(t, 140.0, *enrollment.FinalScore)
}

func TestOverMissingLessonCountsZero(t *testing.T) {
	env := newTestEnv(t)
	teacher := env.mustCreateUser(t, "teacher", model.Teacher)
	student := env.mustCreateUser(t, "student", model.Student)
	course := env.mustCreateCourse(t, teacher.ID, "编译原理")

	tp := teacher.Snapshot()
	sp := student.Snapshot()
	require.NoError(t, env.enrollment.Enroll(sp, course.ID))

	lesson1, _ := env.mustPublishLesson(t, tp, course.ID, []string{"A"})
	env.mustPublishLesson(t, tp, course.ID, []string{"A"}) // 学生没答这课

	_, err := env.grading.Submit(sp, lesson1.ID, []string{"A"})
	require.NoError(t, err)

	require.NoError(t, env.course.Over(tp, course.ID))

	enrollment, err := env.course.FinalScore(sp, course.ID, student.ID)
	require.NoError(t, err)
	require.Equal(t, 100.0, *enrollment.FinalScore)
}

func TestOverIsOneWay(t *testing.T) {
	env := newTestEnv(t)
	teacher := env.mustCreateUser(t, "teacher", model.Teacher)
	course := env.mustCreateCourse(t, teacher.ID, "编译原理")
	tp := teacher.Snapshot()

	require.NoError(t, env.course.Over(tp, course.ID))
	require.ErrorIs(t, env.course.Over(tp, course.ID), util.ErrCourseOver)
}

func TestFinalScoreBeforeOverIsNil(t *testing.T) {
	env := newTestEnv(t)
	teacher := env.mustCreateUser(t, "teacher", model.Teacher)
	student := env.mustCreateUser(t, "student", model.Student)
	course := env.mustCreateCourse(t, teacher.ID, "编译原理")
	sp := student.Snapshot()

	require.NoError(t, env.enrollment.Enroll(sp, course.ID))

	enrollment, err := env.course.FinalScore(sp, course.ID, student.ID)
	require.NoError(t, err)
	require.Nil(t, enrollment.FinalScore)
}

func TestDeleteCourseCascades(t *testing.T) {
	env := newTestEnv(t)
	teacher := env.mustCreateUser(t, "teacher", model.Teacher)
	student := env.mustCreateUser(t, "student", model.Student)
	course := env.mustCreateCourse(t, teacher.ID, "编译原理")

	tp := teacher.Snapshot()
	sp := student.Snapshot()
	require.NoError(t, env.enrollment.Enroll(sp, course.ID))
	lesson, _ := env.mustPublishLesson(t, tp, course.ID, []string{"A"})
	_, err := env.grading.Submit(sp, lesson.ID, []string{"A"})
	require.NoError(t, err)

	require.NoError(t, env.course.Delete(tp, course.ID))

	_, err = env.courses.FindByID(course.ID)
	require.Error(t, err)

	lessons, err := env.lessons.ListByCourse(course.ID)
	require.NoError(t, err)
	require.Empty(t, lessons)

	records, err := env.submissions.ListByStudentAndLesson(student.ID, lesson.ID)
	require.NoError(t, err)
	require.Empty(t, records)

	enrolled, err := env.enrollments.Exists(student.ID, course.ID)
	require.NoError(t, err)
	require.False(t, enrolled)

	// 热度榜同步清理
	ranked, err := env.popularity.TopN(10)
	require.NoError(t, err)
	require.Empty(t, ranked)
}

func TestListPageFilters(t *testing.T) {
	env := newTestEnv(t)
	wang := env.mustCreateUser(t, "王老师", model.Teacher)
	li := env.mustCreateUser(t, "李老师", model.Teacher)

	env.mustCreateCourse(t, wang.ID, "高等数学")
	env.mustCreateCourse(t, wang.ID, "线性代数")
	env.mustCreateCourse(t, li.ID, "离散数学")

	courses, total, err := env.course.ListPage("数学", "", 1, 10)
	require.NoError(t, err)
	require.Equal(t, int64(2), total)
	require.Len(t, courses, 2)

	courses, total, err = env.course.ListPage("", "王", 1, 10)
	require.NoError(t, err)
	require.Equal(t, int64(2), total)

	// 教师名无匹配直接空页
	courses, total, err = env.course.ListPage("", "不存在的老师", 1, 10)
	require.NoError(t, err)
	require.Zero(t, total)
	require.Empty(t, courses)
}

func TestLessonScoresOfStudent(t *testing.T) {
	env := newTestEnv(t)
	teacher := env.mustCreateUser(t, "teacher", model.Teacher)
	student := env.mustCreateUser(t, "student", model.Student)
	course := env.mustCreateCourse(t, teacher.ID, "编译原理")

	tp := teacher.Snapshot()
	sp := student.Snapshot()
	require.NoError(t, env.enrollment.Enroll(sp, course.ID))

	lesson1, _ := env.mustPublishLesson(t, tp, course.ID, []string{"A"})
	env.mustPublishLesson(t, tp, course.ID, []string{"B"})

	_, err := env.grading.Submit(sp, lesson1.ID, []string{"A"})
	require.NoError(t, err)

	scores, err := env.course.LessonScores(sp, course.ID, student.ID)
	require.NoError(t, err)
	require.Len(t, scores, 1)
	require.Equal(t, lesson1.ID, scores[0].LessonID)
}
