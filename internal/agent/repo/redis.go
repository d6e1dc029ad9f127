package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/autostream-agent/server/internal/agent/model"
	errx "github.com/autostream-agent/server/internal/core/error"
	logx "github.com/autostream-agent/server/pkg/logger"
	"github.com/redis/go-redis/v9"
)

// RedisSessionRepository stores each session as one JSON document, making the
// orchestrator's single-commit semantics a single SET. Same-thread turns are
// still serialised by a process-local lock table; this store targets a single
// orchestrator process in front of a shared Redis, not multi-writer access.
type RedisSessionRepository struct {
	rdb   redis.Cmdable
	ttl   time.Duration
	locks *lockTable
}

func NewRedisSessionRepository(rdb redis.Cmdable, ttl time.Duration) *RedisSessionRepository {
	return &RedisSessionRepository{rdb: rdb, ttl: ttl, locks: newLockTable()}
}

func (r *RedisSessionRepository) sessionKey(threadID string) string {
	return fmt.Sprintf("session:%s:state", threadID)
}

func (r *RedisSessionRepository) GetOrCreate(ctx context.Context, threadID string) (*model.Session, error) {
	key := r.sessionKey(threadID)

	raw, err := r.rdb.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return model.NewSession(threadID), nil
		}
		logx.Error().Err(err).Str("key", key).Msg("failed to load session from redis")
		return nil, errx.WrapRedis(err)
	}

	var s model.Session
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		logx.Error().Err(err).Str("thread_id", threadID).Msg("failed to unmarshal session")
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	return &s, nil
}

func (r *RedisSessionRepository) Commit(ctx context.Context, threadID string, s *model.Session) error {
	b, err := json.Marshal(s)
	if err != nil {
		logx.Error().Err(err).Str("thread_id", threadID).Msg("failed to marshal session")
		return fmt.Errorf("marshal session: %w", err)
	}
	key := r.sessionKey(threadID)

	if err := r.rdb.Set(ctx, key, b, r.ttl).Err(); err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to write session to redis")
		return errx.WrapRedis(err)
	}
	return nil
}

func (r *RedisSessionRepository) Lock(threadID string) (unlock func()) {
	return r.locks.acquire(threadID)
}

var _ model.SessionRepository = (*RedisSessionRepository)(nil)
