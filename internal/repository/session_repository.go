package repository

import (
	"context"
	"course_center_backend/internal/model"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
)

const sessionKeyPrefix = "session:login:"

// SessionRepository 登录态缓存。token 为不透明随机串，值是用户快照 JSON。
// 快照只在登录/资料更新时重建，其余时间以缓存为准。
type SessionRepository struct {
	Redis *redis.Client
	ctx   context.Context
}

func NewSessionRepository(rdb *redis.Client) *SessionRepository {
	return &SessionRepository{
		Redis: rdb,
		ctx:   context.Background(),
	}
}

func (r *SessionRepository) Set(token string, principal *model.Principal, ttl time.Duration) error {
	data, err := json.Marshal(principal)
	if err != nil {
		return err
	}
	return r.Redis.Set(r.ctx, sessionKeyPrefix+token, data, ttl).Err()
}

// Get 查缓存，未命中返回 (nil, nil)
func (r *SessionRepository) Get(token string) (*model.Principal, error) {
	val, err := r.Redis.Get(r.ctx, sessionKeyPrefix+token).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var principal model.Principal
	if err := json.Unmarshal([]byte(val), &principal); err != nil {
		return nil, err
	}
	return &principal, nil
}

func (r *SessionRepository) Delete(token string) error {
	return r.Redis.Del(r.ctx, sessionKeyPrefix+token).Err()
}

// ExtendTTL 滑动续期
func (r *SessionRepository) ExtendTTL(token string, ttl time.Duration) error {
	return r.Redis.Expire(r.ctx, sessionKeyPrefix+token, ttl).Err()
}

// TTL 剩余有效期，测试和诊断用
func (r *SessionRepository) TTL(token string) (time.Duration, error) {
	return r.Redis.TTL(r.ctx, sessionKeyPrefix+token).Result()
}
