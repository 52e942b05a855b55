package service

import (
	"testing"

	"course_center_backend/internal/model"
	"course_center_backend/internal/util"

	"github.com/stretchr/testify/require"
)

func TestAddLesson(t *testing.T) {
	env := newTestEnv(t)
	teacher := env.mustCreateUser(t, "teacher", model.Teacher)
	other := env.mustCreateUser(t, "other", model.Teacher)
	course := env.mustCreateCourse(t, teacher.ID, "算法设计")

	_, err := env.lesson.Add(other.Snapshot(), course.ID, "贪心")
	require.ErrorIs(t, err, util.ErrPermissionDenied)

	_, err = env.lesson.Add(teacher.Snapshot(), course.ID, "")
	require.ErrorIs(t, err, util.ErrInvalidLessonName)

	lesson, err := env.lesson.Add(teacher.Snapshot(), course.ID, "贪心")
	require.NoError(t, err)
	require.False(t, lesson.HasQuestions)
}

func TestAddLessonClosedCourse(t *testing.T) {
	env := newTestEnv(t)
	teacher := env.mustCreateUser(t, "teacher", model.Teacher)
	course := env.mustCreateCourse(t, teacher.ID, "算法设计")
	tp := teacher.Snapshot()

	require.NoError(t, env.course.Over(tp, course.ID))

	_, err := env.lesson.Add(tp, course.ID, "动态规划")
	require.ErrorIs(t, err, util.ErrCourseOver)
}

func TestDeleteLessonCascades(t *testing.T) {
	env := newTestEnv(t)
	teacher := env.mustCreateUser(t, "teacher", model.Teacher)
	student := env.mustCreateUser(t, "student", model.Student)
	course := env.mustCreateCourse(t, teacher.ID, "算法设计")

	tp := teacher.Snapshot()
	sp := student.Snapshot()
	require.NoError(t, env.enrollment.Enroll(sp, course.ID))

	lesson, _ := env.mustPublishLesson(t, tp, course.ID, []string{"A"})
	_, err := env.grading.Submit(sp, lesson.ID, []string{"A"})
	require.NoError(t, err)

	require.NoError(t, env.lesson.Delete(tp, lesson.ID))

	_, err = env.lessons.FindByID(lesson.ID)
	require.Error(t, err)

	records, err := env.submissions.ListByStudentAndLesson(student.ID, lesson.ID)
	require.NoError(t, err)
	require.Empty(t, records)

	_, err = env.scores.Get(student.ID, lesson.ID)
	require.Error(t, err)
}

func TestGetScoreGuards(t *testing.T) {
	env := newTestEnv(t)
	teacher := env.mustCreateUser(t, "teacher", model.Teacher)
	student := env.mustCreateUser(t, "student", model.Student)
	course := env.mustCreateCourse(t, teacher.ID, "算法设计")

	tp := teacher.Snapshot()
	sp := student.Snapshot()

	draft := env.mustCreateLesson(t, course.ID, "草稿")
	_, err := env.lesson.GetScore(tp, draft.ID, student.ID)
	require.ErrorIs(t, err, util.ErrLessonNotPublished)

	lesson, _ := env.mustPublishLesson(t, tp, course.ID, []string{"A"})

	// 未选课
	_, err = env.lesson.GetScore(tp, lesson.ID, student.ID)
	require.ErrorIs(t, err, util.ErrNotEnrolled)

	require.NoError(t, env.enrollment.Enroll(sp, course.ID))
	_, err = env.grading.Submit(sp, lesson.ID, []string{"A"})
	require.NoError(t, err)

	score, err := env.lesson.GetScore(sp, lesson.ID, student.ID)
	require.NoError(t, err)
	require.Equal(t, 100.0, score.Value)

	// 其他学生不可查
	other := env.mustCreateUser(t, "other", model.Student)
	_, err = env.lesson.GetScore(other.Snapshot(), lesson.ID, student.ID)
	require.ErrorIs(t, err, util.ErrPermissionDenied)
}

func TestListScoresIncludesUnanswered(t *testing.T) {
	env := newTestEnv(t)
	teacher := env.mustCreateUser(t, "teacher", model.Teacher)
	s1 := env.mustCreateUser(t, "s1", model.Student)
	s2 := env.mustCreateUser(t, "s2", model.Student)
	course := env.mustCreateCourse(t, teacher.ID, "算法设计")

	tp := teacher.Snapshot()
	require.NoError(t, env.enrollment.Enroll(s1.Snapshot(), course.ID))
	require.NoError(t, env.enrollment.Enroll(s2.Snapshot(), course.ID))

	lesson, _ := env.mustPublishLesson(t, tp, course.ID, []string{"A"})
	_, err := env.grading.Submit(s1.Snapshot(), lesson.ID, []string{"A"})
	require.NoError(t, err)

	board, err := env.lesson.ListScores(tp, lesson.ID)
	require.NoError(t, err)
	require.Len(t, board, 2)

	byStudent := make(map[uint]StudentScore, len(board))
	for _, entry := range board {
		byStudent[entry.Student.ID] = entry
	}
	require.NotNil(t, byStudent[s1.ID].Score)
	require.Equal(t, 100.0, byStudent[s1.ID].Score.Value)
	require.Nil(t, byStudent[s2.ID].Score)
}

func TestPublishedCount(t *testing.T) {
	env := newTestEnv(t)
	teacher := env.mustCreateUser(t, "teacher", model.Teacher)
	course := env.mustCreateCourse(t, teacher.ID, "算法设计")
	tp := teacher.Snapshot()

	env.mustPublishLesson(t, tp, course.ID, []string{"A"})
	env.mustPublishLesson(t, tp, course.ID, []string{"B"})
	env.mustCreateLesson(t, course.ID, "草稿")

	count, err := env.lesson.PublishedCount(teacher.ID)
	require.NoError(t, err)
	require.Equal(t, int64(2), count)
}
