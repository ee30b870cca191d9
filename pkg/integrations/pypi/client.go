package pypi

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/EgorK19/pydeps/pkg/buildinfo"
	"github.com/EgorK19/pydeps/pkg/cache"
	"github.com/EgorK19/pydeps/pkg/integrations"
)

// PackageInfo holds metadata for a Python package from PyPI.
//
// It describes the latest released version of the package. Fields other
// than Name and Version may be empty when the upload omitted them.
type PackageInfo struct {
	Name     string // Package name as published (e.g. "Flask")
	Version  string // Latest released version (e.g. "2.0.0")
	Summary  string // Short package description
	License  string // Short license identifier (see extractLicenseType)
	HomePage string // Homepage URL
	Yanked   bool   // Whether the latest release has been yanked
}

// Client provides access to the PyPI package registry API.
// It handles HTTP requests with caching and automatic retries.
//
// All methods are safe for concurrent use by multiple goroutines.
type Client struct {
	*integrations.Client
	baseURL string
}

// NewClient creates a PyPI client with the given cache backend.
//
// Parameters:
//   - backend: Cache backend for HTTP response caching (nil disables caching)
//   - cacheTTL: How long responses stay fresh (typical: 1-24 hours)
//
// The returned Client is safe for concurrent use.
func NewClient(backend cache.Cache, cacheTTL time.Duration) *Client {
	headers := map[string]string{"User-Agent": "pydeps/" + buildinfo.Version}
	return &Client{
		Client:  integrations.NewClient(backend, "pypi:", cacheTTL, headers),
		baseURL: "https://pypi.org/pypi",
	}
}

// FetchPackage retrieves metadata for a Python package from PyPI.
//
// The pkg parameter is normalized automatically (case-insensitive,
// underscores become hyphens). If refresh is true, the cache is bypassed
// and a fresh API call is made.
//
// Returns:
//   - PackageInfo describing the latest release on success
//   - [integrations.ErrNotFound] if the package doesn't exist
//   - [integrations.ErrNetwork] for HTTP failures (timeout, 5xx, etc.)
//
// The returned PackageInfo pointer is never nil if err is nil.
// This method is safe for concurrent use.
func (c *Client) FetchPackage(ctx context.Context, pkg string, refresh bool) (*PackageInfo, error) {
	pkg = integrations.NormalizePkgName(pkg)

	var info PackageInfo
	err := c.Cached(ctx, pkg, refresh, &info, func() error {
		return c.fetch(ctx, pkg, &info)
	})
	if err != nil {
		return nil, err
	}
	return &info, nil
}

func (c *Client) fetch(ctx context.Context, pkg string, info *PackageInfo) error {
	var data apiResponse
	if err := c.Get(ctx, fmt.Sprintf("%s/%s/json", c.baseURL, pkg), &data); err != nil {
		if errors.Is(err, integrations.ErrNotFound) {
			return fmt.Errorf("%w: pypi package %s", err, pkg)
		}
		return err
	}

	*info = PackageInfo{
		Name:     data.Info.Name,
		Version:  data.Info.Version,
		Summary:  data.Info.Summary,
		License:  extractLicenseType(data.Info.License, data.Info.Classifiers),
		HomePage: data.Info.HomePage,
		Yanked:   data.Info.Yanked,
	}
	return nil
}

type apiResponse struct {
	Info apiInfo `json:"info"`
}

type apiInfo struct {
	Name        string   `json:"name"`
	Version     string   `json:"version"`
	Summary     string   `json:"summary"`
	License     string   `json:"license"`
	Classifiers []string `json:"classifiers"`
	HomePage    string   `json:"home_page"`
	Yanked      bool     `json:"yanked"`
}

// extractLicenseType extracts a short license identifier from PyPI data.
// It prefers the classifier (e.g. "License :: OSI Approved :: MIT License" -> "MIT License")
// and falls back to the license field if it's short enough.
func extractLicenseType(license string, classifiers []string) string {
	for _, c := range classifiers {
		if strings.HasPrefix(c, "License :: ") {
			parts := strings.Split(c, " :: ")
			if len(parts) >= 3 {
				return parts[len(parts)-1]
			}
		}
	}

	// Short license fields are usually just the type.
	if license != "" && len(license) < 100 && !strings.Contains(license, "\n") {
		return strings.TrimSpace(license)
	}

	// Long fields hold the full license text; its first line often names
	// the type ("MIT License", "Apache License 2.0").
	if license != "" {
		firstLine := strings.TrimSpace(strings.Split(license, "\n")[0])
		if len(firstLine) < 50 {
			return firstLine
		}
	}

	return ""
}
