// Package ratelimit 以 Redis 固定視窗計數限制登入與註冊嘗試次數
package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"task-manager/internal/cache"
)

const keyPrefix = "ratelimit:auth:"

// Result 單次嘗試後的計數狀態
type Result struct {
	Allowed    bool
	Count      int64
	Remaining  int64
	RetryAfter time.Duration
}

// Limiter 每個 key 在 window 內最多 limit 次
type Limiter struct {
	cache  cache.Cache
	limit  int64
	window time.Duration
}

// NewLimiter limit <= 0 表示不限制
func NewLimiter(c cache.Cache, limit int, window time.Duration) *Limiter {
	return &Limiter{cache: c, limit: int64(limit), window: window}
}

// Enabled 是否啟用限制
func (l *Limiter) Enabled() bool {
	return l != nil && l.limit > 0 && l.window > 0
}

// Allow 計數並判斷是否放行；第一次計數時設定視窗過期時間
func (l *Limiter) Allow(ctx context.Context, key string) (Result, error) {
	if !l.Enabled() {
		return Result{Allowed: true}, nil
	}
	k := keyPrefix + key
	count, err := l.cache.Incr(ctx, k).Result()
	if err != nil {
		return Result{}, fmt.Errorf("Allow: %w", err)
	}
	if count == 1 {
		if err := l.cache.Expire(ctx, k, l.window).Err(); err != nil {
			return Result{}, fmt.Errorf("Allow: %w", err)
		}
	}

	res := Result{Count: count, Allowed: count <= l.limit}
	if res.Allowed {
		res.Remaining = l.limit - count
		return res, nil
	}
	ttl, err := l.cache.TTL(ctx, k).Result()
	if err != nil || ttl <= 0 {
		// 沒有過期時間代表 Expire 失敗過，重新補上
		_ = l.cache.Expire(ctx, k, l.window).Err()
		ttl = l.window
	}
	res.RetryAfter = ttl
	return res, nil
}

// RetryAfterSeconds 轉成 Retry-After 標頭值，至少 1 秒
func (r Result) RetryAfterSeconds() string {
	secs := int64(r.RetryAfter.Round(time.Second) / time.Second)
	if secs < 1 {
		secs = 1
	}
	return strconv.FormatInt(secs, 10)
}
