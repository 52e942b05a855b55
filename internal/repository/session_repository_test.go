package repository

import (
	"testing"
	"time"

	"course_center_backend/internal/model"

	"github.com/stretchr/testify/require"
)

func TestSessionRoundTrip(t *testing.T) {
	repo := NewSessionRepository(newRedis(t))

	principal := &model.Principal{ID: 42, Name: "张三", Role: model.Student}
	require.NoError(t, repo.Set("tok", principal, time.Hour))

	got, err := repo.Get("tok")
	require.NoError(t, err)
	require.Equal(t, uint(42), got.ID)
	require.Equal(t, model.Student, got.Role)
}

func TestSessionMissIsNotError(t *testing.T) {
	repo := NewSessionRepository(newRedis(t))

	got, err := repo.Get("missing")
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestSessionDelete(t *testing.T) {
	repo := NewSessionRepository(newRedis(t))

	require.NoError(t, repo.Set("tok", &model.Principal{ID: 1}, time.Hour))
	require.NoError(t, repo.Delete("tok"))

	got, err := repo.Get("tok")
	require.NoError(t, err)
	require.Nil(t, got)
}
