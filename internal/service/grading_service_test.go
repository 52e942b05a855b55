package service

import (
	"sync"
	"testing"

	"course_center_backend/internal/model"
	"course_center_backend/internal/util"

	"github.com/stretchr/testify/require"
)

func setupGrading(t *testing.T, answers []string) (*testEnv, *model.Principal, *model.Principal, *model.Lesson) {
	t.Helper()
	env := newTestEnv(t)
	teacher := env.mustCreateUser(t, "teacher", model.Teacher)
	student := env.mustCreateUser(t, "student", model.Student)
	course := env.mustCreateCourse(t, teacher.ID, "计算机网络")

	tp := teacher.Snapshot()
	sp := student.Snapshot()
	require.NoError(t, env.enrollment.Enroll(sp, course.ID))
	lesson, _ := env.mustPublishLesson(t, tp, course.ID, answers)
	return env, tp, sp, lesson
}

func TestSubmitGradesExactMatch(t *testing.T) {
	env, _, sp, lesson := setupGrading(t, []string{"A", "B", "C", "D"})

	score, err := env.grading.Submit(sp, lesson.ID, []string{"A", "X", "C", "D"})
	require.NoError(t, err)
	require.Equal(t, 75.0, score.Value)

	records, err := env.submissions.ListByStudentAndLesson(sp.ID, lesson.ID)
	require.NoError(t, err)
	require.Len(t, records, 4)
	require.True(t, records[0].IsCorrect)
	require.False(t, records[1].IsCorrect)
	require.Equal(t, "X", records[1].SelectedAnswer)
}

func TestSubmitAllWrong(t *testing.T) {
	env, _, sp, lesson := setupGrading(t, []string{"A", "B"})

	score, err := env.grading.Submit(sp, lesson.ID, []string{"B", "A"})
	require.NoError(t, err)
	require.Equal(t, 0.0, score.Value)
}

func TestSubmitThreeQuestions(t *testing.T) {
	env, _, sp, lesson := setupGrading(t, []string{"A", "B", "C"})

	score, err := env.grading.Submit(sp, lesson.ID, []string{"A", "B", "X"})
	require.NoError(t, err)
	require.InDelta(t, 200.0/3.0, score.Value, 1e-9)
}

func TestSubmitTwiceRejected(t *testing.T) {
	env, _, sp, lesson := setupGrading(t, []string{"A"})

	first, err := env.grading.Submit(sp, lesson.ID, []string{"A"})
	require.NoError(t, err)
	require.Equal(t, 100.0, first.Value)

	_, err = env.grading.Submit(sp, lesson.ID, []string{"A"})
	require.ErrorIs(t, err, util.ErrAlreadySubmitted)

	// 成绩保持首次判分结果
	score, err := env.scores.Get(sp.ID, lesson.ID)
	require.NoError(t, err)
	require.Equal(t, 100.0, score.Value)
}

// 并发提交只有一次判分落库
func TestSubmitConcurrent(t *testing.T) {
	env, _, sp, lesson := setupGrading(t, []string{"A", "B"})

	const workers = 8
	var wg sync.WaitGroup
	results := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := env.grading.Submit(sp, lesson.ID, []string{"A", "B"})
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	succeeded := 0
	for err := range results {
		if err == nil {
			succeeded++
		} else {
			require.ErrorIs(t, err, util.ErrAlreadySubmitted)
		}
	}
	require.Equal(t, 1, succeeded)

	records, err := env.submissions.ListByStudentAndLesson(sp.ID, lesson.ID)
	require.NoError(t, err)
	require.Len(t, records, 2)
}

func TestSubmitAnswerCountMismatch(t *testing.T) {
	env, _, sp, lesson := setupGrading(t, []string{"A", "B", "C"})

	_, err := env.grading.Submit(sp, lesson.ID, []string{"A", "B"})
	require.ErrorIs(t, err, util.ErrAnswerCountMismatch)
}

func TestSubmitUnpublishedLesson(t *testing.T) {
	env := newTestEnv(t)
	teacher := env.mustCreateUser(t, "teacher", model.Teacher)
	student := env.mustCreateUser(t, "student", model.Student)
	course := env.mustCreateCourse(t, teacher.ID, "计算机网络")
	lesson := env.mustCreateLesson(t, course.ID, "草稿课时")

	sp := student.Snapshot()
	require.NoError(t, env.enrollment.Enroll(sp, course.ID))

	_, err := env.grading.Submit(sp, lesson.ID, []string{"A"})
	require.ErrorIs(t, err, util.ErrLessonNotPublished)
}

func TestSubmitNotEnrolled(t *testing.T) {
	env := newTestEnv(t)
	teacher := env.mustCreateUser(t, "teacher", model.Teacher)
	outsider := env.mustCreateUser(t, "outsider", model.Student)
	course := env.mustCreateCourse(t, teacher.ID, "计算机网络")
	lesson, _ := env.mustPublishLesson(t, teacher.Snapshot(), course.ID, []string{"A"})

	_, err := env.grading.Submit(outsider.Snapshot(), lesson.ID, []string{"A"})
	require.ErrorIs(t, err, util.ErrNotEnrolled)
}

func TestStudentRecordsPermission(t *testing.T) {
	env, tp, sp, lesson := setupGrading(t, []string{"A"})

	_, err := env.grading.Submit(sp, lesson.ID, []string{"A"})
	require.NoError(t, err)

	// 本人与任课教师可查
	details, err := env.grading.StudentRecords(sp, lesson.ID, sp.ID)
	require.NoError(t, err)
	require.Len(t, details, 1)
	require.NotNil(t, details[0].Question)

	_, err = env.grading.StudentRecords(tp, lesson.ID, sp.ID)
	require.NoError(t, err)

	// 其他学生不可查
	other := env.mustCreateUser(t, "other", model.Student)
	_, err = env.grading.StudentRecords(other.Snapshot(), lesson.ID, sp.ID)
	require.ErrorIs(t, err, util.ErrPermissionDenied)
}

func TestLessonRecordsTeacherOnly(t *testing.T) {
	env, tp, sp, lesson := setupGrading(t, []string{"A"})

	_, err := env.grading.Submit(sp, lesson.ID, []string{"A"})
	require.NoError(t, err)

	details, err := env.grading.LessonRecords(tp, lesson.ID)
	require.NoError(t, err)
	require.Len(t, details, 1)

	_, err = env.grading.LessonRecords(sp, lesson.ID)
	require.ErrorIs(t, err, util.ErrPermissionDenied)
}
