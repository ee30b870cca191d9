// Package workspace materializes a Python package root for one analysis run.
//
// Three modes are supported: a local directory is used in place, a remote
// repository is shallow-cloned into a temporary directory, and a local
// archive is unpacked into one. Temporary directories live for exactly one
// run; Close removes them and never touches a caller-supplied directory.
package workspace

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/EgorK19/pydeps/pkg/errors"
)

// Mode selects how the repo argument is interpreted.
type Mode string

const (
	ModeRemote    Mode = "remote"
	ModeLocalDir  Mode = "local-dir"
	ModeLocalFile Mode = "local-file"
)

// ParseMode converts a command-line mode string into a Mode.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case ModeRemote, ModeLocalDir, ModeLocalFile:
		return m, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidMode,
			"unknown mode %q; valid modes are remote, local-dir, local-file", s)
	}
}

// Options configures workspace resolution.
type Options struct {
	Logger func(string, ...any) // Progress callback (optional)
}

// WithDefaults returns a copy of Options with zero values replaced by defaults.
func (o Options) WithDefaults() Options {
	opts := o
	if opts.Logger == nil {
		opts.Logger = func(string, ...any) {}
	}
	return opts
}

// Root is a resolved package root. Path points at the directory holding the
// package's manifest files, which may sit one level below the acquisition
// directory when a clone or archive nests its content.
type Root struct {
	Path string // directory containing the package manifests
	Mode Mode   // how the root was acquired

	temp string // temporary directory removed by Close; empty in local-dir mode
}

// Close releases the workspace. Temporary clone and unpack directories are
// removed; a caller-supplied local directory is left untouched.
func (r *Root) Close() error {
	if r == nil || r.temp == "" {
		return nil
	}
	return os.RemoveAll(r.temp)
}

// Resolve materializes the package root for repo according to mode. The
// returned Root is valid until Close; callers own closing it.
func Resolve(ctx context.Context, mode Mode, repo string, opts Options) (*Root, error) {
	opts = opts.WithDefaults()
	switch mode {
	case ModeLocalDir:
		return &Root{Path: repo, Mode: mode}, nil
	case ModeRemote:
		return resolveRemote(ctx, repo, opts)
	case ModeLocalFile:
		return resolveArchive(repo, opts)
	default:
		return nil, errors.New(errors.ErrCodeInvalidMode, "unknown mode %q", string(mode))
	}
}

func resolveRemote(ctx context.Context, repo string, opts Options) (*Root, error) {
	if !IsGitInstalled() {
		return nil, errors.New(errors.ErrCodeGitNotFound,
			"git executable not found; install git to use remote mode")
	}

	tmp, err := tempDir("clone")
	if err != nil {
		return nil, err
	}

	opts.Logger("cloning %s", repo)
	if err := clone(ctx, repo, tmp); err != nil {
		os.RemoveAll(tmp)
		return nil, err
	}

	root := &Root{Path: tmp, Mode: ModeRemote, temp: tmp}
	if sole, ok := soleEntryDir(tmp); ok {
		root.Path = sole
	}
	return root, nil
}

func resolveArchive(path string, opts Options) (*Root, error) {
	tmp, err := tempDir("unpack")
	if err != nil {
		return nil, err
	}

	opts.Logger("unpacking %s", path)
	if err := Unpack(path, tmp); err != nil {
		os.RemoveAll(tmp)
		return nil, err
	}

	root := &Root{Path: tmp, Mode: ModeLocalFile, temp: tmp}
	if sub, ok := firstSubdir(tmp); ok {
		root.Path = sub
	}
	return root, nil
}

// soleEntryDir returns the single top-level directory of dir when dir holds
// exactly one entry and that entry is a directory. Clones and sdists
// sometimes nest the whole package one level down.
func soleEntryDir(dir string) (string, bool) {
	entries, err := os.ReadDir(dir)
	if err != nil || len(entries) != 1 || !entries[0].IsDir() {
		return "", false
	}
	return filepath.Join(dir, entries[0].Name()), true
}

// firstSubdir returns the first top-level subdirectory of dir in listing
// order, if any exists.
func firstSubdir(dir string) (string, bool) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", false
	}
	for _, e := range entries {
		if e.IsDir() {
			return filepath.Join(dir, e.Name()), true
		}
	}
	return "", false
}

// tempDir creates a uniquely named scratch directory for one run.
func tempDir(purpose string) (string, error) {
	dir := filepath.Join(os.TempDir(), fmt.Sprintf("pydeps-%s-%s", purpose, uuid.NewString()))
	if err := os.Mkdir(dir, 0o700); err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "failed to create temporary workspace")
	}
	return dir, nil
}
