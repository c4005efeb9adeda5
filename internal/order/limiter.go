package order

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// attemptLimiter throttles OTP verification per order id so the 6-digit
// space cannot be brute forced through retries.
type attemptLimiter struct {
	mu      sync.Mutex
	buckets map[string]*attemptBucket
	limit   rate.Limit
	burst   int
}

type attemptBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newAttemptLimiter(limit rate.Limit, burst int) *attemptLimiter {
	l := &attemptLimiter{
		buckets: make(map[string]*attemptBucket),
		limit:   limit,
		burst:   burst,
	}
	go l.cleanup()
	return l
}

func (l *attemptLimiter) Allow(orderID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	b, exists := l.buckets[orderID]
	if !exists {
		b = &attemptBucket{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.buckets[orderID] = b
	}
	b.lastSeen = time.Now()

	return b.limiter.Allow()
}

// cleanup removes stale buckets to prevent unbounded growth.
func (l *attemptLimiter) cleanup() {
	for {
		time.Sleep(time.Minute)

		l.mu.Lock()
		for id, b := range l.buckets {
			if time.Since(b.lastSeen) > 10*time.Minute {
				delete(l.buckets, id)
			}
		}
		l.mu.Unlock()
	}
}
