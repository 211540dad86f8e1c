package cache

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	// Get always returns miss
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit || data != nil {
		t.Error("NullCache.Get should always return a nil miss")
	}

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}
	if _, hit, _ = c.Get(ctx, "key"); hit {
		t.Error("NullCache should not store data")
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	defer c.Close()

	if _, hit, err := c.Get(ctx, "missing"); hit || err != nil {
		t.Errorf("Get(missing) = hit %v, err %v; want miss", hit, err)
	}

	if err := c.Set(ctx, "k", []byte("DATA_BLOCK"), time.Hour); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "k")
	if err != nil || !hit {
		t.Fatalf("Get(k) = hit %v, err %v; want hit", hit, err)
	}
	if string(data) != "DATA_BLOCK" {
		t.Errorf("Get(k) = %q, want %q", data, "DATA_BLOCK")
	}

	// Overwrite
	if err := c.Set(ctx, "k", []byte("v2"), 0); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	if data, _, _ := c.Get(ctx, "k"); string(data) != "v2" {
		t.Errorf("Get(k) after overwrite = %q, want v2", data)
	}

	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("Get after Delete should miss")
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete of missing key error: %v", err)
	}
}

func TestFileCacheConcurrentSet(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "cache")
	c, err := NewFileCache(dir)
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}

	const writers = 16
	want := make(map[string]bool, writers)
	errs := make(chan error, writers)
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		value := fmt.Sprintf("source-%02d-%s", i, strings.Repeat("x", 4096))
		want[value] = true
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- c.Set(ctx, "same-definition", []byte(value), time.Hour)
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Errorf("concurrent Set error: %v", err)
		}
	}

	data, hit, err := c.Get(ctx, "same-definition")
	if err != nil || !hit {
		t.Fatalf("Get = hit %v, err %v; want hit", hit, err)
	}
	if !want[string(data)] {
		t.Errorf("Get returned a torn entry of %d bytes", len(data))
	}

	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err == nil && strings.HasSuffix(path, ".tmp") {
			t.Errorf("leftover temp file %s", path)
		}
		return nil
	})
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	if err := c.Set(ctx, "k", []byte("v"), time.Nanosecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(5 * time.Millisecond)
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("expired entry should miss")
	}
	if _, err := os.Stat(c.path("k")); !os.IsNotExist(err) {
		t.Error("expired entry should be removed")
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	path := c.path("k")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, hit, err := c.Get(ctx, "k"); hit || err != nil {
		t.Errorf("Get(corrupt) = hit %v, err %v; want miss", hit, err)
	}
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	c, err := NewFileCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, k := range []string{"a", "b", "c"} {
		if err := c.Set(ctx, k, []byte(k), 0); err != nil {
			t.Fatal(err)
		}
	}

	n, err := c.Clear()
	if err != nil {
		t.Fatalf("Clear error: %v", err)
	}
	if n != 3 {
		t.Errorf("Clear() = %d, want 3", n)
	}
	if _, hit, _ := c.Get(ctx, "a"); hit {
		t.Error("Get after Clear should miss")
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("cache root should survive Clear: %v", err)
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	if h1 != Hash([]byte("hello")) {
		t.Error("Hash should be deterministic")
	}
	if h1 == Hash([]byte("world")) {
		t.Error("Different inputs should produce different hashes")
	}
	if len(h1) != 64 {
		t.Errorf("Hash length = %d, want 64", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	k1 := k.SourceKey("abc", SourceKeyOpts{Version: "0.1"})
	if !strings.HasPrefix(k1, "source:") {
		t.Errorf("SourceKey = %q, want source: prefix", k1)
	}
	if k1 != k.SourceKey("abc", SourceKeyOpts{Version: "0.1"}) {
		t.Error("SourceKey should be deterministic")
	}
	if k1 == k.SourceKey("abc", SourceKeyOpts{Version: "0.2"}) {
		t.Error("Different SourceKeyOpts should produce different keys")
	}
	if k1 == k.SourceKey("abd", SourceKeyOpts{Version: "0.1"}) {
		t.Error("Different hashes should produce different keys")
	}
}

func TestScopedKeyer(t *testing.T) {
	opts := SourceKeyOpts{Version: "0.1"}
	want := "plant:" + NewDefaultKeyer().SourceKey("abc", opts)

	if got := NewScopedKeyer(NewDefaultKeyer(), "plant:").SourceKey("abc", opts); got != want {
		t.Errorf("SourceKey = %q, want %q", got, want)
	}
	if got := NewScopedKeyer(nil, "plant:").SourceKey("abc", opts); got != want {
		t.Errorf("SourceKey with nil inner = %q, want %q", got, want)
	}
}
