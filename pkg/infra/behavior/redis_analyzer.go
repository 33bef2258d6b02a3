package behavior

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

const keyPattern = "behavior:%s"

// RedisAnalyzer keeps windows in sorted sets so several instances share them.
// Scores are unix milliseconds; members are "<unix-ms>:<id>:<path>".
type RedisAnalyzer struct {
	client *redis.Client
	opts   options
}

func NewRedisAnalyzer(client *redis.Client, opts ...Option) *RedisAnalyzer {
	o := buildOptions(opts)
	if o.newID == nil {
		o.newID = uuid.NewString
	}
	return &RedisAnalyzer{client: client, opts: o}
}

// WithIDGenerator overrides the member id source used to keep identical
// requests distinct.
func WithIDGenerator(newID func() string) Option {
	return func(o *options) {
		o.newID = newID
	}
}

func (a *RedisAnalyzer) Analyze(ctx context.Context, fingerprint, path string) (Label, error) {
	key := fmt.Sprintf(keyPattern, fingerprint)
	now := a.opts.now()
	nowMs := now.UnixMilli()
	cutoff := now.Add(-a.opts.window).UnixMilli()

	pipe := a.client.TxPipeline()
	pipe.ZRemRangeByScore(ctx, key, "-inf", "("+strconv.FormatInt(cutoff, 10))
	pipe.ZAdd(ctx, key, &redis.Z{
		Score:  float64(nowMs),
		Member: strconv.FormatInt(nowMs, 10) + ":" + a.opts.newID() + ":" + path,
	})
	members := pipe.ZRange(ctx, key, 0, -1)
	pipe.Expire(ctx, key, a.opts.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return LabelNormal, fmt.Errorf("behavior window update failed: %w", err)
	}

	entries := members.Val()
	paths := make(map[string]struct{}, len(entries))
	for _, m := range entries {
		parts := strings.SplitN(m, ":", 3)
		if len(parts) == 3 {
			paths[parts[2]] = struct{}{}
		}
	}
	return Classify(len(entries), len(paths)), nil
}
