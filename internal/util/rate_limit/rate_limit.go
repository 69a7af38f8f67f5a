package rate_limit

import (
	"context"
	"fmt"
	"math"
	"time"

	"hittags/internal/cache"

	"github.com/google/uuid"
	"github.com/valkey-io/valkey-go"
)

type RateLimiter struct {
	client valkey.Client
}

type RateLimitResult struct {
	Allowed       bool `json:"allowed"`
	RemainingHour int  `json:"remainingHour"`
	RemainingDay  int  `json:"remainingDay"`
	RetryAfterSec int  `json:"retryAfterSec,omitempty"`
}

const (
	defaultTimeout = 5 * time.Second
	keyPrefix      = "rate_limit:apikey:"

	hourWindowMs = int64(time.Hour / time.Millisecond)
	dayWindowMs  = int64(24 * time.Hour / time.Millisecond)
)

// Lua script for rolling-window rate limiting over two sorted sets
// (trailing hour and trailing day). Atomically:
// 1. Prunes members older than each window
// 2. Counts both windows
// 3. Admits and records the request only if both counts are under their limits
// 4. Returns the retry hint from the oldest member of the exhausted window
//
// Windows are rolling (trailing 60 minutes / trailing 24 hours), not
// calendar-aligned. Admission and usage persistence are still two separate
// steps at the service level, so two concurrent requests may both be admitted
// at the boundary; that over-admission is accepted behavior.
const slidingWindowLuaScript = `
local hour_key = KEYS[1]
local day_key = KEYS[2]
local now = tonumber(ARGV[1])
local hour_limit = tonumber(ARGV[2])
local day_limit = tonumber(ARGV[3])
local hour_window = tonumber(ARGV[4])
local day_window = tonumber(ARGV[5])
local member = ARGV[6]

redis.call('ZREMRANGEBYSCORE', hour_key, 0, now - hour_window)
redis.call('ZREMRANGEBYSCORE', day_key, 0, now - day_window)

local hour_count = redis.call('ZCARD', hour_key)
local day_count = redis.call('ZCARD', day_key)

local allowed = 0
local retry_after = 0

if (hour_limit <= 0 or hour_count < hour_limit) and (day_limit <= 0 or day_count < day_limit) then
    allowed = 1
    redis.call('ZADD', hour_key, now, member)
    redis.call('ZADD', day_key, now, member)
    hour_count = hour_count + 1
    day_count = day_count + 1
else
    local exhausted_key = hour_key
    local window = hour_window
    if day_limit > 0 and day_count >= day_limit then
        exhausted_key = day_key
        window = day_window
    end

    local oldest = redis.call('ZRANGE', exhausted_key, 0, 0, 'WITHSCORES')
    if oldest[2] then
        retry_after = tonumber(oldest[2]) + window - now
    end
end

redis.call('PEXPIRE', hour_key, hour_window)
redis.call('PEXPIRE', day_key, day_window)

local remaining_hour = -1
if hour_limit > 0 then
    remaining_hour = math.max(0, hour_limit - hour_count)
end

local remaining_day = -1
if day_limit > 0 then
    remaining_day = math.max(0, day_limit - day_count)
end

return {allowed, remaining_hour, remaining_day, retry_after}
`

func NewRateLimiter() *RateLimiter {
	return &RateLimiter{
		client: cache.GetCache(),
	}
}

// CheckWindows admits or denies one request attempt against the key's
// trailing-hour and trailing-day quotas. An admitted attempt is counted
// immediately. A limit of 0 or below means unlimited for that window.
func (r *RateLimiter) CheckWindows(apiKeyID uuid.UUID, hourLimit, dayLimit int) (*RateLimitResult, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	now := time.Now().UnixMilli()
	member := fmt.Sprintf("%d-%s", now, uuid.New().String()[:8])

	result := r.client.Do(ctx, r.client.B().Eval().
		Script(slidingWindowLuaScript).
		Numkeys(2).
		Key(r.hourKey(apiKeyID)).
		Key(r.dayKey(apiKeyID)).
		Arg(fmt.Sprintf("%d", now)).
		Arg(fmt.Sprintf("%d", hourLimit)).
		Arg(fmt.Sprintf("%d", dayLimit)).
		Arg(fmt.Sprintf("%d", hourWindowMs)).
		Arg(fmt.Sprintf("%d", dayWindowMs)).
		Arg(member).
		Build())

	if result.Error() != nil {
		return nil, fmt.Errorf("rate limit check failed: %w", result.Error())
	}

	values, err := result.AsIntSlice()
	if err != nil {
		return nil, fmt.Errorf("failed to parse rate limit result: %w", err)
	}

	if len(values) < 4 {
		return nil, fmt.Errorf("invalid rate limit result: expected 4 values, got %d", len(values))
	}

	allowed := values[0] == 1
	retryAfterMs := values[3]

	var retryAfterSec int
	if !allowed {
		retryAfterSec = int(math.Ceil(float64(retryAfterMs) / 1000.0))
		if retryAfterSec < 1 {
			retryAfterSec = 1
		}
	}

	return &RateLimitResult{
		Allowed:       allowed,
		RemainingHour: int(values[1]),
		RemainingDay:  int(values[2]),
		RetryAfterSec: retryAfterSec,
	}, nil
}

// GetWindowCounts returns the remaining quota without consuming an attempt.
func (r *RateLimiter) GetWindowCounts(apiKeyID uuid.UUID, hourLimit, dayLimit int) (*RateLimitResult, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	now := time.Now().UnixMilli()

	hourResult := r.client.Do(ctx, r.client.B().Zcount().
		Key(r.hourKey(apiKeyID)).
		Min(fmt.Sprintf("%d", now-hourWindowMs)).
		Max("+inf").
		Build())
	if hourResult.Error() != nil {
		return nil, fmt.Errorf("failed to count hour window: %w", hourResult.Error())
	}

	hourCount, err := hourResult.AsInt64()
	if err != nil {
		return nil, fmt.Errorf("failed to parse hour window count: %w", err)
	}

	dayResult := r.client.Do(ctx, r.client.B().Zcount().
		Key(r.dayKey(apiKeyID)).
		Min(fmt.Sprintf("%d", now-dayWindowMs)).
		Max("+inf").
		Build())
	if dayResult.Error() != nil {
		return nil, fmt.Errorf("failed to count day window: %w", dayResult.Error())
	}

	dayCount, err := dayResult.AsInt64()
	if err != nil {
		return nil, fmt.Errorf("failed to parse day window count: %w", err)
	}

	remainingHour := -1
	if hourLimit > 0 {
		remainingHour = max(0, hourLimit-int(hourCount))
	}

	remainingDay := -1
	if dayLimit > 0 {
		remainingDay = max(0, dayLimit-int(dayCount))
	}

	return &RateLimitResult{
		Allowed:       (hourLimit <= 0 || int(hourCount) < hourLimit) && (dayLimit <= 0 || int(dayCount) < dayLimit),
		RemainingHour: remainingHour,
		RemainingDay:  remainingDay,
	}, nil
}

func (r *RateLimiter) ResetWindows(apiKeyID uuid.UUID) error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	result := r.client.Do(ctx, r.client.B().Del().
		Key(r.hourKey(apiKeyID)).
		Key(r.dayKey(apiKeyID)).
		Build())

	return result.Error()
}

func (r *RateLimiter) hourKey(apiKeyID uuid.UUID) string {
	return keyPrefix + apiKeyID.String() + ":hour"
}

func (r *RateLimiter) dayKey(apiKeyID uuid.UUID) string {
	return keyPrefix + apiKeyID.String() + ":day"
}
