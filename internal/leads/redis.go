package leads

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/autostream-agent/server/internal/agent/model"
	errx "github.com/autostream-agent/server/internal/core/error"
	logx "github.com/autostream-agent/server/pkg/logger"
	"github.com/redis/go-redis/v9"
)

const capturedKey = "leads:captured"

// RedisRecorder appends each captured lead to a Redis list so a downstream
// consumer (CRM sync, notification job) can drain them.
type RedisRecorder struct {
	rdb redis.Cmdable
}

func NewRedisRecorder(rdb redis.Cmdable) *RedisRecorder {
	return &RedisRecorder{rdb: rdb}
}

func (r *RedisRecorder) Capture(ctx context.Context, lead model.Lead) error {
	if !lead.Complete() {
		return fmt.Errorf("%w: missing required fields", errx.ErrToolInvocation)
	}

	b, err := json.Marshal(lead)
	if err != nil {
		return fmt.Errorf("marshal lead: %w", err)
	}

	if err := r.rdb.RPush(ctx, capturedKey, b).Err(); err != nil {
		logx.Error().Err(err).Str("key", capturedKey).Msg("failed to record lead in redis")
		return fmt.Errorf("%w: %w", errx.ErrToolInvocation, errx.WrapRedis(err))
	}

	logx.Info().
		Str("email", lead.Email).
		Str("platform", lead.Platform).
		Msg("lead recorded to redis")
	return nil
}

var _ model.LeadCapture = (*RedisRecorder)(nil)
