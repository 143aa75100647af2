package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const defaultIdleTTL = 10 * time.Minute

type Config struct {
	RequestsPerSecond float64
	BurstSize         int
	// IdleTTL is how long an unused key keeps its bucket.
	IdleTTL time.Duration
}

type entry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// KeyedLimiter holds one token bucket per key, typically a client IP. Buckets
// idle for longer than IdleTTL are dropped by Sweep.
type KeyedLimiter struct {
	limiters map[string]*entry
	mu       sync.Mutex
	cfg      Config
	now      func() time.Time
}

func NewKeyedLimiter(cfg Config) *KeyedLimiter {
	if cfg.IdleTTL <= 0 {
		cfg.IdleTTL = defaultIdleTTL
	}
	return &KeyedLimiter{
		limiters: make(map[string]*entry),
		cfg:      cfg,
		now:      time.Now,
	}
}

func (k *KeyedLimiter) GetLimiter(key string) *rate.Limiter {
	k.mu.Lock()
	defer k.mu.Unlock()

	e, exists := k.limiters[key]
	if !exists {
		e = &entry{limiter: rate.NewLimiter(rate.Limit(k.cfg.RequestsPerSecond), k.cfg.BurstSize)}
		k.limiters[key] = e
	}
	e.lastSeen = k.now()
	return e.limiter
}

// Allow consumes one token for key without waiting.
func (k *KeyedLimiter) Allow(key string) bool {
	return k.GetLimiter(key).Allow()
}

// Sweep drops buckets not used within IdleTTL and returns how many it removed.
func (k *KeyedLimiter) Sweep() int {
	k.mu.Lock()
	defer k.mu.Unlock()

	cutoff := k.now().Add(-k.cfg.IdleTTL)
	removed := 0
	for key, e := range k.limiters {
		if e.lastSeen.Before(cutoff) {
			delete(k.limiters, key)
			removed++
		}
	}
	return removed
}

func (k *KeyedLimiter) Len() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.limiters)
}

// Run sweeps every interval until ctx is done.
func (k *KeyedLimiter) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			k.Sweep()
		case <-ctx.Done():
			return
		}
	}
}
