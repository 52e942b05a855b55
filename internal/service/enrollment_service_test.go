package service

import (
	"sync"
	"testing"

	"course_center_backend/internal/model"
	"course_center_backend/internal/util"

	"github.com/stretchr/testify/require"
)

func TestEnrollTwice(t *testing.T) {
	env := newTestEnv(t)
	teacher := env.mustCreateUser(t, "teacher", model.Teacher)
	student := env.mustCreateUser(t, "student", model.Student)
	course := env.mustCreateCourse(t, teacher.ID, "数据结构")

	p := student.Snapshot()
	require.NoError(t, env.enrollment.Enroll(p, course.ID))
	require.ErrorIs(t, env.enrollment.Enroll(p, course.ID), util.ErrAlreadyEnrolled)
}

func TestEnrollRequiresStudentRole(t *testing.T) {
	env := newTestEnv(t)
	teacher := env.mustCreateUser(t, "teacher", model.Teacher)
	other := env.mustCreateUser(t, "other", model.Teacher)
	course := env.mustCreateCourse(t, teacher.ID, "数据结构")

	require.ErrorIs(t, env.enrollment.Enroll(other.Snapshot(), course.ID), util.ErrPermissionDenied)
}

func TestEnrollClosedCourse(t *testing.T) {
	env := newTestEnv(t)
	teacher := env.mustCreateUser(t, "teacher", model.Teacher)
	student := env.mustCreateUser(t, "student", model.Student)
	course := env.mustCreateCourse(t, teacher.ID, "数据结构")
	require.NoError(t, env.course.Over(teacher.Snapshot(), course.ID))

	require.ErrorIs(t, env.enrollment.Enroll(student.Snapshot(), course.ID), util.ErrCourseOver)
}

// 并发重复选课只有一次落库，热度也只加一次
func TestEnrollConcurrent(t *testing.T) {
	env := newTestEnv(t)
	teacher := env.mustCreateUser(t, "teacher", model.Teacher)
	student := env.mustCreateUser(t, "student", model.Student)
	course := env.mustCreateCourse(t, teacher.ID, "数据结构")
	p := student.Snapshot()

	const workers = 10
	var wg sync.WaitGroup
	results := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- env.enrollment.Enroll(p, course.ID)
		}()
	}
	wg.Wait()
	close(results)

	succeeded := 0
	for err := range results {
		if err == nil {
			succeeded++
		} else {
			require.ErrorIs(t, err, util.ErrAlreadyEnrolled)
		}
	}
	require.Equal(t, 1, succeeded)

	ranked, err := env.popularity.TopN(10)
	require.NoError(t, err)
	require.Len(t, ranked, 1)
	require.Equal(t, float64(1), ranked[0].Count)
}

func TestDismiss(t *testing.T) {
	env := newTestEnv(t)
	teacher := env.mustCreateUser(t, "teacher", model.Teacher)
	student := env.mustCreateUser(t, "student", model.Student)
	course := env.mustCreateCourse(t, teacher.ID, "数据结构")
	p := student.Snapshot()

	require.NoError(t, env.enrollment.Enroll(p, course.ID))

	lesson, _ := env.mustPublishLesson(t, teacher.Snapshot(), course.ID, []string{"A"})
	_, err := env.grading.Submit(p, lesson.ID, []string{"A"})
	require.NoError(t, err)

	require.NoError(t, env.enrollment.Dismiss(p, student.ID, course.ID))

	// 退课后答题记录一并清除
	records, err := env.submissions.ListByStudentAndLesson(student.ID, lesson.ID)
	require.NoError(t, err)
	require.Empty(t, records)

	enrolled, err := env.enrollment.IsEnrolled(student.ID, course.ID)
	require.NoError(t, err)
	require.False(t, enrolled)
}

func TestDismissNotEnrolled(t *testing.T) {
	env := newTestEnv(t)
	teacher := env.mustCreateUser(t, "teacher", model.Teacher)
	student := env.mustCreateUser(t, "student", model.Student)
	course := env.mustCreateCourse(t, teacher.ID, "数据结构")

	err := env.enrollment.Dismiss(student.Snapshot(), student.ID, course.ID)
	require.ErrorIs(t, err, util.ErrNotEnrolled)
}

func TestDismissPermission(t *testing.T) {
	env := newTestEnv(t)
	teacher := env.mustCreateUser(t, "teacher", model.Teacher)
	student := env.mustCreateUser(t, "student", model.Student)
	stranger := env.mustCreateUser(t, "stranger", model.Student)
	course := env.mustCreateCourse(t, teacher.ID, "数据结构")

	require.NoError(t, env.enrollment.Enroll(student.Snapshot(), course.ID))

	err := env.enrollment.Dismiss(stranger.Snapshot(), student.ID, course.ID)
	require.ErrorIs(t, err, util.ErrPermissionDenied)

	// 任课教师可以劝退
	require.NoError(t, env.enrollment.Dismiss(teacher.Snapshot(), student.ID, course.ID))
}

func TestHotCoursesOrdering(t *testing.T) {
	env := newTestEnv(t)
	teacher := env.mustCreateUser(t, "teacher", model.Teacher)

	a := env.mustCreateCourse(t, teacher.ID, "课程A")
	b := env.mustCreateCourse(t, teacher.ID, "课程B")
	c := env.mustCreateCourse(t, teacher.ID, "课程C")

	enrollN := func(course *model.Course, n int) {
		for i := 0; i < n; i++ {
			s := env.mustCreateUser(t, course.Name+"-s"+string(rune('a'+i)), model.Student)
			require.NoError(t, env.enrollment.Enroll(s.Snapshot(), course.ID))
		}
	}
	enrollN(a, 1)
	enrollN(b, 5)
	enrollN(c, 3)

	hot, err := env.enrollment.HotCourses(10)
	require.NoError(t, err)
	require.Len(t, hot, 3)
	require.Equal(t, b.ID, hot[0].ID)
	require.Equal(t, c.ID, hot[1].ID)
	require.Equal(t, a.ID, hot[2].ID)
}

func TestTeacherStudentCount(t *testing.T) {
	env := newTestEnv(t)
	teacher := env.mustCreateUser(t, "teacher", model.Teacher)
	a := env.mustCreateCourse(t, teacher.ID, "课程A")
	b := env.mustCreateCourse(t, teacher.ID, "课程B")

	s1 := env.mustCreateUser(t, "s1", model.Student)
	s2 := env.mustCreateUser(t, "s2", model.Student)
	require.NoError(t, env.enrollment.Enroll(s1.Snapshot(), a.ID))
	require.NoError(t, env.enrollment.Enroll(s2.Snapshot(), a.ID))
	require.NoError(t, env.enrollment.Enroll(s1.Snapshot(), b.ID))

	count, err := env.enrollment.TeacherStudentCount(teacher.ID)
	require.NoError(t, err)
	require.Equal(t, int64(3), count)
}
