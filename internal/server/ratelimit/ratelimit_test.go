package ratelimit

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTokenBucketBurst(t *testing.T) {
	// 1 token/sec refill, capacity 3: the burst drains, then denies.
	tb := newTokenBucket(3, 1.0)

	for i := 0; i < 3; i++ {
		assert.True(t, tb.allow(), "request %d within burst should pass", i)
	}
	assert.False(t, tb.allow(), "request beyond burst should be denied")
}

func TestTokenBucketRefill(t *testing.T) {
	// High refill rate so the test doesn't sleep long.
	tb := newTokenBucket(1, 100.0)

	assert.True(t, tb.allow())
	assert.False(t, tb.allow())

	time.Sleep(20 * time.Millisecond)
	assert.True(t, tb.allow(), "bucket should refill after waiting")
}

func TestLimiterPerKey(t *testing.T) {
	l := NewLimiter(0)
	defer l.Stop()

	rate := Rate{PerMinute: 60, Burst: 2}

	allowed, _ := l.Allow("user-a", rate)
	assert.True(t, allowed)
	allowed, _ = l.Allow("user-a", rate)
	assert.True(t, allowed)
	allowed, info := l.Allow("user-a", rate)
	assert.False(t, allowed)
	assert.Equal(t, 60, info.Limit)
	assert.Greater(t, info.RetryAfter, time.Duration(0))

	// A different key has its own bucket.
	allowed, _ = l.Allow("user-b", rate)
	assert.True(t, allowed)
}

func TestLimiterUnlimited(t *testing.T) {
	l := NewLimiter(0)
	defer l.Stop()

	for i := 0; i < 100; i++ {
		allowed, info := l.Allow("anyone", Rate{PerMinute: 0})
		assert.True(t, allowed)
		assert.Zero(t, info.Limit)
	}
}

func TestLimiterDifferentRates(t *testing.T) {
	l := NewLimiter(0)
	defer l.Stop()

	free := Rate{PerMinute: 10, Burst: 1}
	pro := Rate{PerMinute: 60, Burst: 10}

	allowed, _ := l.Allow("free-user", free)
	assert.True(t, allowed)
	allowed, _ = l.Allow("free-user", free)
	assert.False(t, allowed, "free burst of 1 should deny the second request")

	for i := 0; i < 10; i++ {
		allowed, _ = l.Allow("pro-user", pro)
		assert.True(t, allowed, "pro burst of 10 should allow request %d", i)
	}
}

func TestLimiterConcurrentAccess(t *testing.T) {
	l := NewLimiter(0)
	defer l.Stop()

	rate := Rate{PerMinute: 60, Burst: 1000}
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.Allow("shared", rate)
		}()
	}
	wg.Wait()

	_, info := l.Allow("shared", rate)
	// 50 concurrent + 1 sequential consumed from a burst of 1000.
	assert.GreaterOrEqual(t, info.Remaining, 900)
}

func TestEvictIdle(t *testing.T) {
	l := NewLimiter(0)
	defer l.Stop()

	l.Allow("stale", Rate{PerMinute: 10})
	l.accessMu.Lock()
	l.lastAccess["stale"] = time.Now().Add(-2 * time.Hour)
	l.accessMu.Unlock()

	l.evictIdle()

	l.mu.RLock()
	_, exists := l.buckets["stale"]
	l.mu.RUnlock()
	assert.False(t, exists)
}
