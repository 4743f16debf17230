package cache

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	checklist "checkpoint/internal/checklist/models"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	f.now = f.now.Add(d)
	f.mu.Unlock()
}

type CacheSuite struct {
	suite.Suite
	clock *fakeClock
	cache *Cache
}

func TestCacheSuite(t *testing.T) {
	suite.Run(t, new(CacheSuite))
}

func (s *CacheSuite) SetupTest() {
	s.clock = &fakeClock{now: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)}
	s.cache = New(5*time.Minute, WithClock(s.clock.Now))
}

func (s *CacheSuite) bundle() *Bundle {
	tree := checklist.NewTree([]checklist.Pillar{{ID: "P", Standards: []checklist.Standard{
		{ID: "S", Requirements: []checklist.Requirement{{ID: "r1"}}},
	}}})
	return &Bundle{Tree: tree, TotalRequirements: tree.TotalRequirements()}
}

func (s *CacheSuite) TestEmptyIsMiss() {
	_, ok := s.cache.Read()
	s.False(ok)
}

func (s *CacheSuite) TestFreshnessWindow() {
	b := s.bundle()
	s.cache.Write(b)

	s.Run("fresh just before ttl", func() {
		s.clock.Advance(4*time.Minute + 59*time.Second)
		got, ok := s.cache.Read()
		s.Require().True(ok)
		s.Same(b, got)
	})

	s.Run("expired at ttl", func() {
		s.clock.Advance(time.Second)
		_, ok := s.cache.Read()
		s.False(ok)
	})
}

func (s *CacheSuite) TestRewriteResetsClock() {
	s.cache.Write(s.bundle())
	s.clock.Advance(4 * time.Minute)
	b := s.bundle()
	s.cache.Write(b)
	s.clock.Advance(4 * time.Minute)

	got, ok := s.cache.Read()
	s.Require().True(ok)
	s.Same(b, got)
}

func (s *CacheSuite) TestInvalidateForcesMiss() {
	s.cache.Write(s.bundle())
	s.cache.Invalidate()

	_, ok := s.cache.Read()
	s.False(ok)

	s.NotPanics(func() { s.cache.Invalidate() }, "invalidate is idempotent")
	s.cache.InvalidateRemote()
	_, ok = s.cache.Read()
	s.False(ok)
}

func (s *CacheSuite) TestWriteNilInvalidates() {
	s.cache.Write(s.bundle())
	s.cache.Write(nil)
	_, ok := s.cache.Read()
	s.False(ok)
}

func (s *CacheSuite) TestWriteIfSkipsAfterInvalidation() {
	gen := s.cache.Generation()
	s.cache.Invalidate()

	s.False(s.cache.WriteIf(gen, s.bundle()))
	_, ok := s.cache.Read()
	s.False(ok, "a load that raced an invalidation is not cached")

	b := s.bundle()
	s.True(s.cache.WriteIf(s.cache.Generation(), b))
	got, ok := s.cache.Read()
	s.Require().True(ok)
	s.Same(b, got)
}

func TestNewDefaultsTTL(t *testing.T) {
	c := New(0)
	assert.Equal(t, DefaultTTL, c.TTL())
}

func TestConcurrentAccess(t *testing.T) {
	c := New(time.Minute)
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			switch i % 3 {
			case 0:
				c.Write(&Bundle{})
			case 1:
				c.Read()
			default:
				c.Invalidate()
			}
		}(i)
	}
	wg.Wait()

	c.Write(&Bundle{TotalRequirements: 7})
	got, ok := c.Read()
	require.True(t, ok)
	assert.Equal(t, 7, got.TotalRequirements)
}
