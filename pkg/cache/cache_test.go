package cache

import (
	"bytes"
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func newTestFileCache(t *testing.T) (Cache, string) {
	t.Helper()
	dir := t.TempDir()
	c, err := NewFileCache(dir)
	if err != nil {
		t.Fatalf("NewFileCache() failed: %v", err)
	}
	return c, dir
}

func TestFileCache_GetSet(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestFileCache(t)

	tests := []struct {
		name  string
		key   string
		value []byte
	}{
		{"simple", "requests", []byte(`{"version":"2.31.0"}`)},
		{"url key", "https://pypi.org/pypi/flask/json", []byte("payload")},
		{"empty value", "empty", []byte{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := c.Set(ctx, tt.key, tt.value, time.Hour); err != nil {
				t.Fatalf("Set() failed: %v", err)
			}
			got, hit, err := c.Get(ctx, tt.key)
			if err != nil {
				t.Fatalf("Get() failed: %v", err)
			}
			if !hit {
				t.Fatal("Get() missed a stored key")
			}
			if !bytes.Equal(got, tt.value) {
				t.Errorf("Get() = %q, want %q", got, tt.value)
			}
		})
	}
}

func TestFileCache_Miss(t *testing.T) {
	c, _ := newTestFileCache(t)
	data, hit, err := c.Get(context.Background(), "absent")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hit || data != nil {
		t.Errorf("Get() on absent key = (%v, %v), want (nil, false)", data, hit)
	}
}

func TestFileCache_Expiration(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestFileCache(t)

	if err := c.Set(ctx, "key", []byte("value"), 10*time.Millisecond); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}
	time.Sleep(20 * time.Millisecond)

	_, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if hit {
		t.Error("expired entry should be a miss")
	}
}

func TestFileCache_ZeroTTL(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestFileCache(t)

	if err := c.Set(ctx, "key", []byte("value"), 0); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}
	_, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if !hit {
		t.Error("entry with zero TTL should not expire")
	}
}

func TestFileCache_CorruptEntryIsMiss(t *testing.T) {
	ctx := context.Background()
	c, dir := newTestFileCache(t)

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}

	var entryPath string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err == nil && !d.IsDir() {
			entryPath = path
		}
		return err
	})
	if err != nil || entryPath == "" {
		t.Fatalf("locating cache entry failed: %v", err)
	}
	if err := os.WriteFile(entryPath, []byte("not json"), 0o644); err != nil {
		t.Fatalf("corrupting entry failed: %v", err)
	}

	_, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if hit {
		t.Error("corrupt entry should be a miss")
	}
	if _, err := os.Stat(entryPath); !os.IsNotExist(err) {
		t.Error("corrupt entry should be removed on read")
	}
}

func TestFileCache_Delete(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestFileCache(t)

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "key"); hit {
		t.Error("deleted key should be a miss")
	}

	if err := c.Delete(ctx, "never-existed"); err != nil {
		t.Errorf("Delete() on absent key should not fail: %v", err)
	}
}

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set() failed: %v", err)
	}
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if hit || data != nil {
		t.Error("NullCache should never store data")
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete() failed: %v", err)
	}
}

func TestScoped_IsolatesNamespaces(t *testing.T) {
	ctx := context.Background()
	backend, _ := newTestFileCache(t)

	pypi := NewScoped(backend, "pypi:")
	meta := NewScoped(backend, "meta:")

	if err := pypi.Set(ctx, "requests", []byte("from pypi"), time.Hour); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}
	if err := meta.Set(ctx, "requests", []byte("from meta"), time.Hour); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}

	got, hit, _ := pypi.Get(ctx, "requests")
	if !hit || string(got) != "from pypi" {
		t.Errorf("pypi scope returned %q, want %q", got, "from pypi")
	}
	got, hit, _ = meta.Get(ctx, "requests")
	if !hit || string(got) != "from meta" {
		t.Errorf("meta scope returned %q, want %q", got, "from meta")
	}

	// The underlying backend sees the prefixed keys.
	if _, hit, _ := backend.Get(ctx, "pypi:requests"); !hit {
		t.Error("backend should hold the prefixed key")
	}
	if _, hit, _ := backend.Get(ctx, "requests"); hit {
		t.Error("backend should not hold the bare key")
	}
}

func TestScoped_Nested(t *testing.T) {
	ctx := context.Background()
	backend, _ := newTestFileCache(t)

	inner := NewScoped(NewScoped(backend, "a:"), "b:")
	if err := inner.Set(ctx, "key", []byte("v"), 0); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}
	if _, hit, _ := backend.Get(ctx, "a:b:key"); !hit {
		t.Error("nested scopes should concatenate prefixes")
	}
}

func TestScoped_Delete(t *testing.T) {
	ctx := context.Background()
	backend, _ := newTestFileCache(t)
	scope := NewScoped(backend, "s:")

	if err := scope.Set(ctx, "key", []byte("v"), 0); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}
	if err := scope.Delete(ctx, "key"); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if _, hit, _ := backend.Get(ctx, "s:key"); hit {
		t.Error("Delete() through a scope should remove the prefixed key")
	}
}

func TestScoped_NilInner(t *testing.T) {
	ctx := context.Background()
	scope := NewScoped(nil, "p:")

	if err := scope.Set(ctx, "key", []byte("v"), 0); err != nil {
		t.Errorf("Set() failed: %v", err)
	}
	if _, hit, _ := scope.Get(ctx, "key"); hit {
		t.Error("nil inner should behave like a null cache")
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}

	h3 := Hash([]byte("world"))
	if h1 == h3 {
		t.Error("different inputs should produce different hashes")
	}

	if len(h1) != 64 {
		t.Errorf("hash length should be 64, got %d", len(h1))
	}
}
