package cache

import (
	"context"
	"time"
)

// Scoped wraps a Cache and prefixes every key, giving each data source
// its own namespace inside a shared backend.
//
// Example usage:
//
//	backend, _ := NewFileCache(dir)
//	pypi := NewScoped(backend, "pypi:")
//	pypi.Set(ctx, "requests", data, ttl) // stored as "pypi:requests"
//
// Scopes can be nested; prefixes concatenate.
type Scoped struct {
	inner  Cache
	prefix string
}

// NewScoped creates a scoped view of inner with the given key prefix.
// A nil inner falls back to a null cache.
func NewScoped(inner Cache, prefix string) Cache {
	if inner == nil {
		inner = NewNullCache()
	}
	return &Scoped{inner: inner, prefix: prefix}
}

// Get retrieves the value stored under the prefixed key.
func (s *Scoped) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return s.inner.Get(ctx, s.prefix+key)
}

// Set stores data under the prefixed key.
func (s *Scoped) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return s.inner.Set(ctx, s.prefix+key, data, ttl)
}

// Delete removes the entry for the prefixed key.
func (s *Scoped) Delete(ctx context.Context, key string) error {
	return s.inner.Delete(ctx, s.prefix+key)
}

// Close closes the underlying backend. Callers sharing one backend
// across several scopes should close it exactly once.
func (s *Scoped) Close() error { return s.inner.Close() }

var _ Cache = (*Scoped)(nil)
