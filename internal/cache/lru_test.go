package cache

import (
	"sync"
	"testing"
	"time"
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
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

func newClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func TestLRUCacheEviction(t *testing.T) {
	c := NewLRUCache[string](3, time.Hour)

	c.Set("key1", "value1")
	c.Set("key2", "value2")
	c.Set("key3", "value3")
	c.Set("key4", "value4")

	if _, found := c.Get("key1"); found {
		t.Error("key1 should have been evicted")
	}
	for _, k := range []string{"key2", "key3", "key4"} {
		if _, found := c.Get(k); !found {
			t.Errorf("%s should still exist", k)
		}
	}
	if c.Size() != 3 {
		t.Errorf("Size() = %d, want 3", c.Size())
	}
}

func TestLRUCacheGetRefreshesRecency(t *testing.T) {
	c := NewLRUCache[int](2, time.Hour)
	c.Set("a", 1)
	c.Set("b", 2)
	c.Get("a")
	c.Set("c", 3)

	if _, found := c.Get("b"); found {
		t.Error("b was least recently used and should be evicted")
	}
	if v, found := c.Get("a"); !found || v != 1 {
		t.Errorf("Get(a) = %d, %v", v, found)
	}
}

func TestLRUCacheExpiry(t *testing.T) {
	clock := newClock()
	c := NewLRUCache[string](10, time.Minute).WithClock(clock.Now)

	c.Set("report", "v1")
	clock.Advance(59 * time.Second)
	if _, found := c.Get("report"); !found {
		t.Fatal("entry expired too early")
	}
	clock.Advance(2 * time.Second)
	if _, found := c.Get("report"); found {
		t.Fatal("entry should have expired")
	}
	if c.Size() != 0 {
		t.Errorf("expired entry not removed, Size() = %d", c.Size())
	}
}

func TestLRUCacheOverwriteResetsTTL(t *testing.T) {
	clock := newClock()
	c := NewLRUCache[string](10, time.Minute).WithClock(clock.Now)

	c.Set("k", "old")
	clock.Advance(50 * time.Second)
	c.Set("k", "new")
	clock.Advance(50 * time.Second)

	v, found := c.Get("k")
	if !found || v != "new" {
		t.Fatalf("Get(k) = %q, %v; want new, true", v, found)
	}
}

func TestLRUCacheCleanExpired(t *testing.T) {
	clock := newClock()
	c := NewLRUCache[int](10, time.Minute).WithClock(clock.Now)
	c.Set("a", 1)
	c.Set("b", 2)
	clock.Advance(30 * time.Second)
	c.Set("c", 3)
	clock.Advance(45 * time.Second)

	if removed := c.CleanExpired(); removed != 2 {
		t.Errorf("CleanExpired() = %d, want 2", removed)
	}
	if _, found := c.Get("c"); !found {
		t.Error("c should survive cleanup")
	}
}

func TestLRUCacheDeleteAndPurge(t *testing.T) {
	c := NewLRUCache[int](10, time.Hour)
	c.Set("a", 1)
	c.Set("b", 2)
	c.Delete("a")
	if _, found := c.Get("a"); found {
		t.Error("a should be deleted")
	}
	c.Purge()
	if c.Size() != 0 {
		t.Errorf("Size() after Purge = %d", c.Size())
	}
	c.Set("c", 3)
	if v, found := c.Get("c"); !found || v != 3 {
		t.Error("cache unusable after Purge")
	}
}

func TestLRUCacheStats(t *testing.T) {
	c := NewLRUCache[int](10, time.Hour)
	c.Set("a", 1)
	c.Get("a")
	c.Get("a")
	c.Get("missing")

	got := c.Stats()
	want := Stats{Size: 1, Hits: 2, Misses: 1}
	if got != want {
		t.Errorf("Stats() = %+v, want %+v", got, want)
	}
}

func TestLRUCacheConcurrentAccess(t *testing.T) {
	c := NewLRUCache[int](16, time.Hour)
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				key := string(rune('a' + (g+i)%26))
				c.Set(key, i)
				c.Get(key)
			}
		}(g)
	}
	wg.Wait()
	if c.Size() > 16 {
		t.Errorf("Size() = %d exceeds capacity", c.Size())
	}
}

func TestManagerCleanNow(t *testing.T) {
	clock := newClock()
	a := NewLRUCache[int](10, time.Minute).WithClock(clock.Now)
	b := NewLRUCache[string](10, time.Minute).WithClock(clock.Now)
	a.Set("x", 1)
	b.Set("y", "z")
	clock.Advance(2 * time.Minute)

	m := NewManager()
	m.Register(a)
	m.Register(b)
	if removed := m.CleanNow(); removed != 2 {
		t.Errorf("CleanNow() = %d, want 2", removed)
	}
}

func TestManagerStopWithoutStart(t *testing.T) {
	m := NewManager()
	m.Stop()
	m.Stop()
}

func TestManagerStartStop(t *testing.T) {
	m := NewManager()
	m.Register(NewLRUCache[int](1, time.Millisecond))
	m.StartCleanup(time.Millisecond)
	m.StartCleanup(time.Millisecond)
	time.Sleep(5 * time.Millisecond)
	m.Stop()
}
