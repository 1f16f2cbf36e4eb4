// Package ratelimit provides per-client rate limiting using a token
// bucket per client and endpoint. The AI endpoints get tight limits
// since each request costs a language-model call; everything else is
// effectively unlimited.
package ratelimit

import (
	"strings"
	"sync"
	"time"
)

// Rule limits requests matching a path prefix.
type Rule struct {
	PathPrefix string
	Limit      int           // Requests per window; <= 0 means unlimited
	Window     time.Duration // Refill window
}

// DefaultRules returns the built-in endpoint rules.
func DefaultRules() []Rule {
	return []Rule{
		{PathPrefix: "/api/ai-suggestions", Limit: 10, Window: time.Minute},
		{PathPrefix: "/api/resume/process", Limit: 5, Window: time.Minute},
		{PathPrefix: "/api/generate-pdf", Limit: 20, Window: time.Minute},
	}
}

// Info reports rate limit status for response headers.
type Info struct {
	Limited    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration
}

// Limiter manages token buckets keyed by client and matched rule.
type Limiter struct {
	rules []Rule

	mu         sync.Mutex
	buckets    map[string]*bucket
	lastAccess map[string]time.Time

	stop     chan struct{}
	stopOnce sync.Once
}

// NewLimiter creates a limiter with the given rules and starts its
// bucket cleanup goroutine.
func NewLimiter(rules []Rule) *Limiter {
	l := &Limiter{
		rules:      rules,
		buckets:    make(map[string]*bucket),
		lastAccess: make(map[string]time.Time),
		stop:       make(chan struct{}),
	}
	go l.cleanupLoop()
	return l
}

// Allow reports whether a request from clientID to path may proceed.
func (l *Limiter) Allow(clientID, path string) (bool, Info) {
	rule := l.match(path)
	if rule == nil || rule.Limit <= 0 {
		return true, Info{}
	}

	key := clientID + ":" + rule.PathPrefix

	l.mu.Lock()
	b, ok := l.buckets[key]
	if !ok {
		b = newBucket(rule.Limit, float64(rule.Limit)/rule.Window.Seconds())
		l.buckets[key] = b
	}
	l.lastAccess[key] = time.Now()
	l.mu.Unlock()

	allowed, remaining, retryAfter := b.take()
	return allowed, Info{
		Limited:    !allowed,
		Limit:      rule.Limit,
		Remaining:  remaining,
		RetryAfter: retryAfter,
	}
}

// Stop halts the cleanup goroutine.
func (l *Limiter) Stop() {
	l.stopOnce.Do(func() { close(l.stop) })
}

func (l *Limiter) match(path string) *Rule {
	for i := range l.rules {
		if strings.HasPrefix(path, l.rules[i].PathPrefix) {
			return &l.rules[i]
		}
	}
	return nil
}

func (l *Limiter) cleanupLoop() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-l.stop:
			return
		case now := <-ticker.C:
			cutoff := now.Add(-time.Hour)
			l.mu.Lock()
			for key, last := range l.lastAccess {
				if last.Before(cutoff) {
					delete(l.buckets, key)
					delete(l.lastAccess, key)
				}
			}
			l.mu.Unlock()
		}
	}
}

// bucket is a token bucket that refills at a steady rate.
type bucket struct {
	mu         sync.Mutex
	capacity   float64
	refillRate float64 // tokens per second
	tokens     float64
	lastRefill time.Time
}

func newBucket(capacity int, refillRate float64) *bucket {
	return &bucket{
		capacity:   float64(capacity),
		refillRate: refillRate,
		tokens:     float64(capacity),
		lastRefill: time.Now(),
	}
}

// take consumes one token if available. Returns whether the request is
// allowed, the remaining whole tokens, and how long until a token frees
// up when denied.
func (b *bucket) take() (bool, int, time.Duration) {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now()
	b.tokens += now.Sub(b.lastRefill).Seconds() * b.refillRate
	if b.tokens > b.capacity {
		b.tokens = b.capacity
	}
	b.lastRefill = now

	if b.tokens >= 1.0 {
		b.tokens -= 1.0
		return true, int(b.tokens), 0
	}

	wait := time.Duration((1.0 - b.tokens) / b.refillRate * float64(time.Second))
	return false, 0, wait
}
