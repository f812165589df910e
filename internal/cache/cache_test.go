package cache

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dshills/qprimes/internal/quadratic"
)

func countEntries(t *testing.T, dir string) int {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir error: %v", err)
	}
	n := 0
	for _, e := range entries {
		if filepath.Ext(e.Name()) == ".json" {
			n++
		}
	}
	return n
}

func TestCache_PutGet(t *testing.T) {
	dir := t.TempDir()
	c, err := New(true, dir, 0)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	want := quadratic.Result{A: -61, B: 971, XMax: 70}

	// Miss before put
	if _, ok := c.Get(1000); ok {
		t.Error("Expected cache miss before put")
	}

	if err := c.Put(1000, want); err != nil {
		t.Fatalf("Put error: %v", err)
	}

	got, ok := c.Get(1000)
	if !ok {
		t.Fatal("Expected cache hit after put")
	}
	if got != want {
		t.Errorf("Got = %+v, want %+v", got, want)
	}

	// Different bound misses
	if _, ok := c.Get(999); ok {
		t.Error("Expected cache miss for a different bound")
	}
}

func TestCache_SentinelRoundTrip(t *testing.T) {
	c, err := New(true, t.TempDir(), 0)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	none := quadratic.Result{A: -1, B: -1, XMax: -1}
	if err := c.Put(1, none); err != nil {
		t.Fatalf("Put error: %v", err)
	}
	got, ok := c.Get(1)
	if !ok || got != none {
		t.Errorf("Get(1) = %+v, %v; want %+v, true", got, ok, none)
	}
}

func TestCache_TTLExpiration(t *testing.T) {
	dir := t.TempDir()
	c, err := New(true, dir, 1) // 1 second TTL
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	if err := c.Put(50, quadratic.Result{A: -1, B: 41, XMax: 40}); err != nil {
		t.Fatalf("Put error: %v", err)
	}

	if _, ok := c.Get(50); !ok {
		t.Error("Expected cache hit before expiration")
	}

	time.Sleep(1100 * time.Millisecond)

	if _, ok := c.Get(50); ok {
		t.Error("Expected cache miss after TTL expiration")
	}
	if n := countEntries(t, dir); n != 0 {
		t.Errorf("Expired entry should be removed on read, %d left", n)
	}
}

func TestCache_Disabled(t *testing.T) {
	c, err := New(false, "", 0)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	if c.Enabled() {
		t.Error("Cache should be disabled")
	}

	if err := c.Put(10, quadratic.Result{}); err != nil {
		t.Errorf("Put on disabled cache should not error: %v", err)
	}
	if _, ok := c.Get(10); ok {
		t.Error("Get on disabled cache should always miss")
	}
	if _, err := c.Clear(); err != nil {
		t.Errorf("Clear on disabled cache should not error: %v", err)
	}
}

func TestCache_Clear(t *testing.T) {
	dir := t.TempDir()
	c, err := New(true, dir, 0)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	for bound := 1; bound <= 5; bound++ {
		if err := c.Put(bound, quadratic.Result{A: 1, B: 2, XMax: 0}); err != nil {
			t.Fatalf("Put error: %v", err)
		}
	}
	if n := countEntries(t, dir); n != 5 {
		t.Fatalf("Expected 5 cache entries, got %d", n)
	}

	removed, err := c.Clear()
	if err != nil {
		t.Fatalf("Clear error: %v", err)
	}
	if removed != 5 {
		t.Errorf("Clear removed %d, want 5", removed)
	}
	if n := countEntries(t, dir); n != 0 {
		t.Errorf("Expected 0 cache entries after clear, got %d", n)
	}
}

func TestCache_CorruptEntryMisses(t *testing.T) {
	dir := t.TempDir()
	c, err := New(true, dir, 0)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	path := filepath.Join(dir, BuildCacheKey(7)+".json")
	if err := os.WriteFile(path, []byte("not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, ok := c.Get(7); ok {
		t.Error("Corrupt entry should be a miss")
	}
}

func TestCache_GetStats(t *testing.T) {
	dir := t.TempDir()
	c, err := New(true, dir, 0)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	stats, err := c.GetStats()
	if err != nil {
		t.Fatalf("GetStats error: %v", err)
	}
	if stats.Entries != 0 {
		t.Errorf("Entries = %d, want 0", stats.Entries)
	}

	c.Put(10, quadratic.Result{A: -1, B: 5, XMax: 3})
	c.Put(20, quadratic.Result{A: -3, B: 19, XMax: 17})

	stats, err = c.GetStats()
	if err != nil {
		t.Fatalf("GetStats error: %v", err)
	}
	if stats.Entries != 2 {
		t.Errorf("Entries = %d, want 2", stats.Entries)
	}
	if stats.TotalBytes <= 0 {
		t.Error("TotalBytes should be > 0")
	}
	if stats.Expired != 0 {
		t.Errorf("Expired = %d, want 0", stats.Expired)
	}
	if stats.Dir != dir {
		t.Errorf("Dir = %q, want %q", stats.Dir, dir)
	}
}

func TestHashKey(t *testing.T) {
	h1 := HashKey("test")
	h2 := HashKey("test")
	h3 := HashKey("other")

	if h1 != h2 {
		t.Error("Same input should produce same hash")
	}
	if h1 == h3 {
		t.Error("Different input should produce different hash")
	}
	if len(h1) != 64 { // SHA-256 hex = 64 chars
		t.Errorf("Hash length = %d, want 64", len(h1))
	}
}

func TestBuildCacheKey(t *testing.T) {
	if BuildCacheKey(1000) != BuildCacheKey(1000) {
		t.Error("Same bound should produce same cache key")
	}
	if BuildCacheKey(1000) == BuildCacheKey(100) {
		t.Error("Different bounds should produce different cache keys")
	}
}
