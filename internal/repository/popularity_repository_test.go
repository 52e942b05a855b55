package repository

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/require"
)

func newRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return rdb
}

func TestPopularityTopN(t *testing.T) {
	repo := NewPopularityRepository(newRedis(t))

	seed := map[uint]int{1: 5, 2: 3, 3: 3, 4: 1}
	for courseID, n := range seed {
		for i := 0; i < n; i++ {
			require.NoError(t, repo.Increment(courseID, 1))
		}
	}

	ranked, err := repo.TopN(3)
	require.NoError(t, err)
	require.Len(t, ranked, 3)

	require.Equal(t, uint(1), ranked[0].CourseID)
	require.Equal(t, float64(5), ranked[0].Count)
	require.Equal(t, float64(3), ranked[1].Count)
	require.Equal(t, float64(3), ranked[2].Count)

	all, err := repo.TopN(10)
	require.NoError(t, err)
	require.Len(t, all, 4)
	require.Equal(t, uint(4), all[3].CourseID)
}

func TestPopularityEmptyBoard(t *testing.T) {
	repo := NewPopularityRepository(newRedis(t))

	ranked, err := repo.TopN(10)
	require.NoError(t, err)
	require.Empty(t, ranked)
}

func TestPopularityRemove(t *testing.T) {
	repo := NewPopularityRepository(newRedis(t))

	require.NoError(t, repo.Increment(7, 1))
	require.NoError(t, repo.Increment(8, 1))
	require.NoError(t, repo.Remove(7))

	ranked, err := repo.TopN(10)
	require.NoError(t, err)
	require.Len(t, ranked, 1)
	require.Equal(t, uint(8), ranked[0].CourseID)
}
