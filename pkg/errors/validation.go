package errors

import (
	"net/url"
	"os"
	"regexp"
	"strings"
	"unicode"
)

// remoteSchemes are the URL schemes accepted in remote repository mode.
var remoteSchemes = map[string]bool{
	"http":      true,
	"https":     true,
	"git":       true,
	"git+http":  true,
	"git+https": true,
}

// archiveSuffixes are the archive formats accepted in local-file mode.
var archiveSuffixes = []string{".zip", ".tar.gz", ".tar", ".tar.bz2", ".whl"}

// ValidatePackageName validates the package label supplied on the command line.
//
// A name is accepted when, after removing hyphens and underscores, a non-empty
// ASCII alphanumeric remainder is left. This keeps the label safe for display
// and report filenames without rejecting common PyPI spellings such as
// "typing-extensions" or "ruamel_yaml".
func ValidatePackageName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidPackage, "package name cannot be empty")
	}

	stripped := strings.NewReplacer("-", "", "_", "").Replace(name)
	if stripped == "" || !isASCIIAlnum(stripped) {
		return New(ErrCodeInvalidPackage,
			"package name contains invalid characters; letters, digits, hyphen (-) and underscore (_) are allowed")
	}

	return nil
}

func isASCIIAlnum(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') && (c < '0' || c > '9') {
			return false
		}
	}
	return true
}

// ValidateRemoteURL validates a repository URL for remote mode.
// Accepted schemes: http, https, git, git+http, git+https.
func ValidateRemoteURL(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme == "" || !remoteSchemes[strings.ToLower(u.Scheme)] {
		return New(ErrCodeInvalidInput, "remote mode requires a valid http/https/git URL, got %q", rawURL)
	}
	return nil
}

// ValidateLocalDir validates a repository path for local-dir mode.
// The path must name an existing directory.
func ValidateLocalDir(path string) error {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return New(ErrCodeInvalidPath, "local-dir mode requires an existing directory, got %q", path)
	}
	return nil
}

// ValidateLocalFile validates a repository path for local-file mode.
// The path must name an existing regular file.
func ValidateLocalFile(path string) error {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return New(ErrCodeInvalidPath, "local-file mode requires an existing file, got %q", path)
	}
	return nil
}

// ValidateArchivePath checks that path names a supported archive format.
// The check is independent of whether the file exists so that a missing file
// with a bogus extension reports both problems.
func ValidateArchivePath(path string) error {
	lower := strings.ToLower(path)
	for _, suffix := range archiveSuffixes {
		if strings.HasSuffix(lower, suffix) {
			return nil
		}
	}
	return New(ErrCodeUnsupportedArchive,
		"local-file mode supports only %s archives", strings.Join(archiveSuffixes, ", "))
}

// ValidatePath validates a file path within an archive or repository for
// safety. It prevents path traversal attacks and ensures reasonable length.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No absolute paths (must be relative)
//   - No path traversal sequences (..)
//   - No backslashes (Windows-style paths)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	// Check for null bytes and control characters
	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	// Must not be absolute path
	if strings.HasPrefix(path, "/") {
		return New(ErrCodeInvalidPath, "path must be relative (cannot start with /)")
	}

	// Check for path traversal
	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	// No backslashes (potential Windows path injection)
	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	return nil
}

// pythonPackageNameRegex matches valid Python package names (PEP 508).
var pythonPackageNameRegex = regexp.MustCompile(`^([A-Za-z0-9]|[A-Za-z0-9][A-Za-z0-9._-]*[A-Za-z0-9])$`)

// ValidatePythonPackageName validates a Python package name per PEP 508.
// Registry lookups use this form; unlike ValidatePackageName it allows dots
// ("ruamel.yaml") but rejects leading or trailing separators.
func ValidatePythonPackageName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidPackage, "package name cannot be empty")
	}

	if !pythonPackageNameRegex.MatchString(name) {
		return New(ErrCodeInvalidPackage, "invalid Python package name: %q", name)
	}

	return nil
}
