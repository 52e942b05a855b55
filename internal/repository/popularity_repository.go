package repository

import (
	"context"
	"strconv"

	"github.com/go-redis/redis/v8"
)

const courseRankKey = "hot:course:rank"

// PopularityRepository 课程热度榜，redis 有序集合。
// 成员是课程 id，分值是单调递增的选课计数。
type PopularityRepository struct {
	Redis *redis.Client
	ctx   context.Context
}

func NewPopularityRepository(rdb *redis.Client) *PopularityRepository {
	return &PopularityRepository{
		Redis: rdb,
		ctx:   context.Background(),
	}
}

func (r *PopularityRepository) Increment(courseID uint, delta float64) error {
	member := strconv.FormatUint(uint64(courseID), 10)
	return r.Redis.ZIncrBy(r.ctx, courseRankKey, delta, member).Err()
}

type RankedCourse struct {
	CourseID uint
	Count    float64
}

// TopN 按分值降序取前 n 名，空榜返回空切片
func (r *PopularityRepository) TopN(n int64) ([]RankedCourse, error) {
	pairs, err := r.Redis.ZRevRangeWithScores(r.ctx, courseRankKey, 0, n-1).Result()
	if err != nil {
		return nil, err
	}

	ranked := make([]RankedCourse, 0, len(pairs))
	for _, p := range pairs {
		member, ok := p.Member.(string)
		if !ok {
			continue
		}
		id, err := strconv.ParseUint(member, 10, 64)
		if err != nil {
			continue
		}
		ranked = append(ranked, RankedCourse{CourseID: uint(id), Count: p.Score})
	}
	return ranked, nil
}

// Remove 课程删除时清理榜单条目
func (r *PopularityRepository) Remove(courseID uint) error {
	member := strconv.FormatUint(uint64(courseID), 10)
	return r.Redis.ZRem(r.ctx, courseRankKey, member).Err()
}
