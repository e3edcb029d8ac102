package utils

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"Backend-Student-Tracker/src/models"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	DefaultStatsTTL  = 10 * time.Minute
	DefaultLockTTL   = 30 * time.Second
	lockRetryBackoff = 25 * time.Millisecond
)

// RedisStatsCache เก็บผลสถิติการเข้าเรียนของนักเรียนแต่ละคนใน Redis
type RedisStatsCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStatsCache(client *redis.Client, ttl time.Duration) *RedisStatsCache {
	if ttl <= 0 {
		ttl = DefaultStatsTTL
	}
	return &RedisStatsCache{client: client, ttl: ttl}
}

func StatsKey(studentID string) string {
	return fmt.Sprintf("attendance_stats:%s", studentID)
}

func (c *RedisStatsCache) GetStats(ctx context.Context, studentID string) (*models.AttendanceStats, bool, error) {
	raw, err := c.client.Get(ctx, StatsKey(studentID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil // ยังไม่มีใน cache
		}
		return nil, false, fmt.Errorf("failed to get attendance stats: %w", err)
	}
	var stats models.AttendanceStats
	if err := sonic.Unmarshal(raw, &stats); err != nil {
		// ข้อมูลเสีย ถือว่า miss แล้วคำนวณใหม่
		return nil, false, nil
	}
	return &stats, true, nil
}

func (c *RedisStatsCache) SetStats(ctx context.Context, studentID string, stats *models.AttendanceStats) error {
	raw, err := sonic.Marshal(stats)
	if err != nil {
		return err
	}
	if err := c.client.Set(ctx, StatsKey(studentID), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store attendance stats: %w", err)
	}
	return nil
}

func (c *RedisStatsCache) InvalidateStats(ctx context.Context, studentID string) error {
	if err := c.client.Del(ctx, StatsKey(studentID)).Err(); err != nil {
		return fmt.Errorf("failed to delete attendance stats: %w", err)
	}
	return nil
}

// releaseScript deletes the lock only if it still carries our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// extendScript pushes the expiry forward only while we still own the lock.
var extendScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("PEXPIRE", KEYS[1], ARGV[2])
end
return 0
`)

// RedisLocker ล็อกนักเรียนทีละคนข้ามหลาย instance ด้วย SET NX PX
// The lock is renewed every ttl/3 until released.
type RedisLocker struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisLocker(client *redis.Client, ttl time.Duration) *RedisLocker {
	if ttl <= 0 {
		ttl = DefaultLockTTL
	}
	return &RedisLocker{client: client, ttl: ttl}
}

func LockKey(key string) string {
	return fmt.Sprintf("lock:student:%s", key)
}

// Lock blocks until the lock is acquired or ctx is done.
func (l *RedisLocker) Lock(ctx context.Context, key string) (func(), error) {
	token := uuid.NewString()
	redisKey := LockKey(key)

	for {
		ok, err := l.client.SetNX(ctx, redisKey, token, l.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to acquire lock: %w", err)
		}
		if ok {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(lockRetryBackoff):
		}
	}

	stop := make(chan struct{})
	go keepAlive(stop, max(l.ttl/3, time.Millisecond), func() (bool, error) {
		extendCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		n, err := extendScript.Run(extendCtx, l.client, []string{redisKey}, token, l.ttl.Milliseconds()).Int64()
		return n == 1, err
	})

	var once sync.Once
	return func() {
		once.Do(func() {
			close(stop)
			// ใช้ context ใหม่ เผื่อ ctx ของ request ถูกยกเลิกไปแล้ว
			releaseCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = releaseScript.Run(releaseCtx, l.client, []string{redisKey}, token).Err()
		})
	}, nil
}

// keepAlive calls extend every interval until stop is closed or the lock is
// no longer ours. A failed call is retried on the next tick.
func keepAlive(stop <-chan struct{}, interval time.Duration, extend func() (bool, error)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			owned, err := extend()
			if err == nil && !owned {
				return
			}
		}
	}
}
