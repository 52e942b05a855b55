package service

import (
	"testing"

	"course_center_backend/internal/model"
	"course_center_backend/internal/util"

	"github.com/stretchr/testify/require"
)

func TestQuestionUpdateBlockedAfterCommit(t *testing.T) {
	env := newTestEnv(t)
	teacher := env.mustCreateUser(t, "teacher", model.Teacher)
	course := env.mustCreateCourse(t, teacher.ID, "数据库")
	tp := teacher.Snapshot()

	q := env.mustCreateQuestion(t, teacher.ID, "A")

	// 未发布前可改
	q.Answer = "B"
	require.NoError(t, env.question.Update(tp, q))

	lesson := env.mustCreateLesson(t, course.ID, "索引")
	require.NoError(t, env.publishing.AddQuestions(tp, lesson.ID, []uint{q.ID}))

	// 仅关联未发布时仍可改
	q.Answer = "C"
	require.NoError(t, env.question.Update(tp, q))

	require.NoError(t, env.publishing.Commit(tp, lesson.ID, []uint{q.ID}))

	q.Answer = "D"
	require.ErrorIs(t, env.question.Update(tp, q), util.ErrAlreadyCommitted)
}

func TestQuestionDeleteBlockedWhenLinked(t *testing.T) {
	env := newTestEnv(t)
	teacher := env.mustCreateUser(t, "teacher", model.Teacher)
	course := env.mustCreateCourse(t, teacher.ID, "数据库")
	tp := teacher.Snapshot()

	q := env.mustCreateQuestion(t, teacher.ID, "A")
	lesson := env.mustCreateLesson(t, course.ID, "事务")
	require.NoError(t, env.publishing.AddQuestions(tp, lesson.ID, []uint{q.ID}))

	require.ErrorIs(t, env.question.Delete(tp, q.ID), util.ErrQuestionInUse)

	// 解除关联后可删
	require.NoError(t, env.publishing.RemoveQuestion(tp, lesson.ID, q.ID))
	require.NoError(t, env.question.Delete(tp, q.ID))
}

func TestQuestionOwnership(t *testing.T) {
	env := newTestEnv(t)
	teacher := env.mustCreateUser(t, "teacher", model.Teacher)
	other := env.mustCreateUser(t, "other", model.Teacher)
	admin := env.mustCreateUser(t, "admin", model.Admin)

	q := env.mustCreateQuestion(t, teacher.ID, "A")

	_, err := env.question.Get(other.Snapshot(), q.ID)
	require.ErrorIs(t, err, util.ErrPermissionDenied)

	_, err = env.question.Get(admin.Snapshot(), q.ID)
	require.NoError(t, err)

	q.Answer = "B"
	require.ErrorIs(t, env.question.Update(other.Snapshot(), q), util.ErrPermissionDenied)
	require.NoError(t, env.question.Update(admin.Snapshot(), q))
}

func TestLessonsOfQuestion(t *testing.T) {
	env := newTestEnv(t)
	teacher := env.mustCreateUser(t, "teacher", model.Teacher)
	course := env.mustCreateCourse(t, teacher.ID, "数据库")
	tp := teacher.Snapshot()

	q := env.mustCreateQuestion(t, teacher.ID, "A")
	l1 := env.mustCreateLesson(t, course.ID, "第一课")
	l2 := env.mustCreateLesson(t, course.ID, "第二课")
	require.NoError(t, env.publishing.AddQuestions(tp, l1.ID, []uint{q.ID}))
	require.NoError(t, env.publishing.AddQuestions(tp, l2.ID, []uint{q.ID}))

	lessons, err := env.question.LessonsOf(tp, q.ID)
	require.NoError(t, err)
	require.Len(t, lessons, 2)
}
