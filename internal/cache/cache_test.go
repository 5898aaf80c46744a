package cache

import (
	"strconv"
	"sync"
	"testing"
)

func TestCache_GetSet(t *testing.T) {
	c := New[string, int](10, 0)

	if _, ok := c.Get("a"); ok {
		t.Fatal("Get on empty cache reported a hit")
	}

	c.Set("a", 1, 1)
	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Errorf("Get(a) = %d, %v; want 1, true", v, ok)
	}

	c.Set("a", 2, 1)
	if v, _ := c.Get("a"); v != 2 {
		t.Errorf("Get(a) after overwrite = %d, want 2", v)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
}

func TestCache_EvictsLeastRecentlyUsed(t *testing.T) {
	c := New[string, int](2, 0)

	c.Set("a", 1, 0)
	c.Set("b", 2, 0)
	c.Get("a") // b becomes the oldest
	c.Set("c", 3, 0)

	if _, ok := c.Get("b"); ok {
		t.Error("b should have been evicted")
	}
	for _, k := range []string{"a", "c"} {
		if _, ok := c.Get(k); !ok {
			t.Errorf("%s should still be cached", k)
		}
	}
	if got := c.Stats().Evictions; got != 1 {
		t.Errorf("Evictions = %d, want 1", got)
	}
}

func TestCache_CostBound(t *testing.T) {
	c := New[int, string](0, 100)

	c.Set(1, "x", 60)
	c.Set(2, "y", 30)
	c.Set(3, "z", 30) // 120 > 100: evicts 1

	if _, ok := c.Get(1); ok {
		t.Error("entry 1 should have been evicted by cost")
	}
	if got := c.Stats().Cost; got != 60 {
		t.Errorf("Cost = %d, want 60", got)
	}

	c.Set(4, "huge", 101)
	if _, ok := c.Get(4); ok {
		t.Error("an entry larger than the cost bound must not be stored")
	}
}

func TestCache_DeleteAndClear(t *testing.T) {
	c := New[string, int](0, 0)
	c.Set("a", 1, 5)
	c.Set("b", 2, 5)

	if !c.Delete("a") {
		t.Error("Delete(a) = false, want true")
	}
	if c.Delete("a") {
		t.Error("second Delete(a) = true, want false")
	}

	c.Clear()
	if c.Len() != 0 || c.Stats().Cost != 0 {
		t.Errorf("after Clear: Len=%d Cost=%d, want 0/0", c.Len(), c.Stats().Cost)
	}
}

func TestCache_Stats(t *testing.T) {
	c := New[string, int](4, 0)
	c.Set("a", 1, 0)
	c.Get("a")
	c.Get("a")
	c.Get("missing")

	s := c.Stats()
	if s.Hits != 2 || s.Misses != 1 {
		t.Errorf("Hits=%d Misses=%d, want 2/1", s.Hits, s.Misses)
	}
	if s.HitRate < 0.66 || s.HitRate > 0.67 {
		t.Errorf("HitRate = %v, want ~0.667", s.HitRate)
	}
}

func TestCache_Concurrent(t *testing.T) {
	c := New[string, int](64, 0)

	var wg sync.WaitGroup
	for g := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 200 {
				k := strconv.Itoa((g*200 + i) % 100)
				c.Set(k, i, 1)
				c.Get(k)
			}
		}()
	}
	wg.Wait()

	if c.Len() > 64 {
		t.Errorf("Len() = %d exceeds capacity 64", c.Len())
	}
}

func TestRecency_Order(t *testing.T) {
	var r recency[int]
	if r.last() != nil {
		t.Fatal("empty ring has a last link")
	}

	a := r.insert(1)
	r.insert(2)
	c := r.insert(3)
	if got := r.last().key; got != 1 {
		t.Fatalf("last = %d, want 1", got)
	}

	r.touch(a)
	if got := r.last().key; got != 2 {
		t.Errorf("last after touch(1) = %d, want 2", got)
	}
	r.touch(a) // already most recent

	r.detach(r.last())
	r.detach(c)
	if got := r.last().key; got != 1 {
		t.Errorf("last = %d, want 1", got)
	}
	r.detach(a)
	if r.last() != nil {
		t.Error("ring not empty after detaching every link")
	}
}

func TestCache_ClearThenReuse(t *testing.T) {
	c := New[string, int](2, 0)
	c.Set("a", 1, 0)
	c.Set("b", 2, 0)
	c.Clear()

	c.Set("c", 3, 0)
	c.Set("d", 4, 0)
	c.Set("e", 5, 0)
	if _, ok := c.Get("c"); ok {
		t.Error("c should have been evicted after Clear")
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}
}
