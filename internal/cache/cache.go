// Package cache holds the process-wide, time-bounded snapshot of checklist
// and audit data used to render progress and dashboards.
package cache

import (
	"sync"
	"time"

	auditmodels "checkpoint/internal/audits/models"
	"checkpoint/internal/cache/metrics"
	checklist "checkpoint/internal/checklist/models"
)

// DefaultTTL is how long a bundle stays fresh after it is written.
const DefaultTTL = 5 * time.Minute

// Bundle is one cache entry. It is replaced whole, never patched.
type Bundle struct {
	Tree              *checklist.Tree
	Audits            []auditmodels.Audit
	ActionPlans       []auditmodels.ActionPlan
	TotalRequirements int
}

// Cache keeps at most one Bundle. A bundle is fresh while now-writtenAt < ttl.
// It performs no I/O; loading is the caller's job.
type Cache struct {
	mu        sync.RWMutex
	bundle    *Bundle
	writtenAt time.Time
	gen       uint64
	ttl       time.Duration
	now       func() time.Time
	metrics   *metrics.Metrics
}

// Option configures a Cache.
type Option func(*Cache)

// WithClock injects the time source.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		if now != nil {
			c.now = now
		}
	}
}

// WithMetrics sets the metrics recorder.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Cache) {
		c.metrics = m
	}
}

// New creates an empty cache. A non-positive ttl falls back to DefaultTTL.
func New(ttl time.Duration, opts ...Option) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	c := &Cache{ttl: ttl, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// TTL returns the configured freshness window.
func (c *Cache) TTL() time.Duration {
	return c.ttl
}

// Read returns the cached bundle when it is present and fresh.
// An expired bundle is a miss; it is not evicted here.
func (c *Cache) Read() (*Bundle, bool) {
	c.mu.RLock()
	b, at := c.bundle, c.writtenAt
	c.mu.RUnlock()

	if b == nil {
		c.metrics.IncrementMiss(metrics.MissEmpty)
		return nil, false
	}
	if c.now().Sub(at) >= c.ttl {
		c.metrics.IncrementMiss(metrics.MissExpired)
		return nil, false
	}
	c.metrics.IncrementHit()
	return b, true
}

// Generation changes on every invalidation. Loaders read it before fetching
// and pass it to WriteIf.
func (c *Cache) Generation() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.gen
}

// Write replaces the bundle and stamps it with the current time.
func (c *Cache) Write(b *Bundle) {
	if b == nil {
		c.Invalidate()
		return
	}
	now := c.now()
	c.mu.Lock()
	c.bundle = b
	c.writtenAt = now
	c.mu.Unlock()
	c.metrics.IncrementWrite()
}

// WriteIf writes b only when no invalidation happened since gen was read.
// A load that raced a mutation is served to its caller but not cached.
func (c *Cache) WriteIf(gen uint64, b *Bundle) bool {
	if b == nil {
		return false
	}
	now := c.now()
	c.mu.Lock()
	if c.gen != gen {
		c.mu.Unlock()
		return false
	}
	c.bundle = b
	c.writtenAt = now
	c.mu.Unlock()
	c.metrics.IncrementWrite()
	return true
}

// Invalidate empties the cache. Calling it on an empty cache is a no-op.
func (c *Cache) Invalidate() {
	c.invalidate("local")
}

// InvalidateRemote empties the cache on behalf of another replica.
func (c *Cache) InvalidateRemote() {
	c.invalidate("remote")
}

func (c *Cache) invalidate(origin string) {
	c.mu.Lock()
	c.bundle = nil
	c.writtenAt = time.Time{}
	c.gen++
	c.mu.Unlock()
	c.metrics.IncrementInvalidation(origin)
}
