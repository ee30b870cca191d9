// Package pypi provides an HTTP client for the Python Package Index API.
//
// # Overview
//
// This package fetches package metadata from PyPI (https://pypi.org), the
// official repository for Python packages. It backs the optional
// enrichment of analysis output with the latest released version,
// summary, and license of each reported dependency.
//
// # Usage
//
//	backend, err := cache.NewFileCache(dir)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	client := pypi.NewClient(backend, 24*time.Hour)
//
//	pkg, err := client.FetchPackage(ctx, "fastapi", false) // false = use cache
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println(pkg.Name, pkg.Version, pkg.Summary)
//
// # PackageInfo
//
// [Client.FetchPackage] returns a [PackageInfo] containing:
//
//   - Name, Version: identity of the latest release
//   - Summary: short package description
//   - License: short license identifier, derived from classifiers
//   - HomePage: project link
//   - Yanked: whether the latest release was yanked
//
// # Caching
//
// Responses are cached to reduce load on PyPI and speed up repeated
// requests. The cache TTL is set when creating the client. Pass
// refresh=true to [Client.FetchPackage] to bypass the cache.
//
// Package names are normalized following PEP 503 before lookup, so
// "Flask_App" and "flask-app" resolve to the same package and share one
// cache entry.
package pypi
