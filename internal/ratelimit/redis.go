package ratelimit

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// fixedWindowScript counts hits in a window and reports the remaining TTL.
var fixedWindowScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
local ttl = redis.call("PTTL", KEYS[1])
if ttl < 0 then
  ttl = tonumber(ARGV[1])
end
return {current, ttl}
`)

// Redis is a fixed-window limiter shared by every replica using the same Redis.
type Redis struct {
	client redis.UniversalClient
	prefix string
	limit  int
	window time.Duration
}

// NewRedis allows perMinute requests per subject per one-minute window.
func NewRedis(client redis.UniversalClient, prefix string, perMinute int) *Redis {
	p := strings.TrimSuffix(strings.TrimSpace(prefix), ":")
	if p == "" {
		p = "bankaccounts:rate_limit"
	}
	return &Redis{client: client, prefix: p, limit: perMinute, window: time.Minute}
}

func (r *Redis) Allow(ctx context.Context, subject string) (bool, time.Duration, error) {
	if r == nil || r.client == nil || r.limit <= 0 {
		return true, 0, nil
	}
	key := fmt.Sprintf("%s:%s", r.prefix, strings.TrimSpace(subject))
	raw, err := fixedWindowScript.Run(ctx, r.client, []string{key}, r.window.Milliseconds()).Result()
	if err != nil {
		return false, 0, err
	}
	values, ok := raw.([]interface{})
	if !ok || len(values) != 2 {
		return false, 0, fmt.Errorf("unexpected redis limiter response shape: %T", raw)
	}
	count, ok := values[0].(int64)
	if !ok {
		return false, 0, fmt.Errorf("unexpected redis limiter count type: %T", values[0])
	}
	ttlMs, ok := values[1].(int64)
	if !ok {
		return false, 0, fmt.Errorf("unexpected redis limiter ttl type: %T", values[1])
	}
	if count <= int64(r.limit) {
		return true, 0, nil
	}
	return false, roundUpSecond(time.Duration(ttlMs) * time.Millisecond), nil
}
