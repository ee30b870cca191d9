// Package integrations provides HTTP clients for package registry APIs.
//
// # Overview
//
// This package contains the low-level plumbing for fetching package
// metadata from registries. The [pypi] subpackage implements the one
// registry the tool talks to, the Python Package Index.
//
// # Client Pattern
//
//	backend, _ := cache.NewFileCache(dir)
//	client := pypi.NewClient(backend, 24*time.Hour)
//	pkg, err := client.FetchPackage(ctx, "fastapi", false) // false = use cache
//
// Registry clients handle:
//   - HTTP requests with retry on transient failures
//   - Response caching through [cache.Cache] with a per-registry key prefix
//   - API-specific parsing and normalization
//
// # Shared Infrastructure
//
// The [Client] type provides shared HTTP functionality for registry
// clients: default headers, JSON decoding, status-code mapping to
// [ErrNotFound] and [ErrNetwork], and cached fetches via [Client.Cached].
//
// [pypi]: github.com/EgorK19/pydeps/pkg/integrations/pypi
// [cache.Cache]: github.com/EgorK19/pydeps/pkg/cache.Cache
package integrations
