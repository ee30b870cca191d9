package workspace

import (
	"archive/tar"
	"archive/zip"
	"compress/bzip2"
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/EgorK19/pydeps/pkg/errors"
)

type compression int

const (
	compressionNone compression = iota
	compressionGzip
	compressionBzip2
)

// Unpack extracts the archive at src into dest. The format is chosen by
// filename suffix: .zip and .whl open as zip archives; .tar, .tar.gz and
// .tar.bz2 as tarballs. Entries are laid out verbatim, nothing is stripped
// or renamed.
func Unpack(src, dest string) error {
	switch lower := strings.ToLower(src); {
	case strings.HasSuffix(lower, ".zip"), strings.HasSuffix(lower, ".whl"):
		return unpackZip(src, dest)
	case strings.HasSuffix(lower, ".tar.gz"):
		return unpackTar(src, dest, compressionGzip)
	case strings.HasSuffix(lower, ".tar.bz2"):
		return unpackTar(src, dest, compressionBzip2)
	case strings.HasSuffix(lower, ".tar"):
		return unpackTar(src, dest, compressionNone)
	default:
		return errors.New(errors.ErrCodeUnsupportedArchive,
			"unsupported archive type: %s", filepath.Base(src))
	}
}

func unpackZip(src, dest string) error {
	zr, err := zip.OpenReader(src)
	if err != nil {
		return errors.Wrap(errors.ErrCodeUnpackFailed, err, "failed to open archive %s", src)
	}
	defer zr.Close()

	for _, f := range zr.File {
		target, err := entryPath(dest, f.Name)
		if err != nil {
			return err
		}
		if target == "" {
			continue
		}

		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return errors.Wrap(errors.ErrCodeUnpackFailed, err, "failed to create directory")
			}
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return errors.Wrap(errors.ErrCodeUnpackFailed, err, "failed to read archive entry %s", f.Name)
		}
		err = writeEntry(target, rc, f.Mode())
		rc.Close()
		if err != nil {
			return err
		}
	}
	return nil
}

func unpackTar(src, dest string, comp compression) error {
	f, err := os.Open(src)
	if err != nil {
		return errors.Wrap(errors.ErrCodeUnpackFailed, err, "failed to open archive %s", src)
	}
	defer f.Close()

	var r io.Reader = f
	switch comp {
	case compressionGzip:
		gz, err := gzip.NewReader(f)
		if err != nil {
			return errors.Wrap(errors.ErrCodeUnpackFailed, err, "failed to read gzip archive %s", src)
		}
		defer gz.Close()
		r = gz
	case compressionBzip2:
		r = bzip2.NewReader(f)
	}

	tr := tar.NewReader(r)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return errors.Wrap(errors.ErrCodeUnpackFailed, err, "failed to read archive %s", src)
		}

		target, err := entryPath(dest, hdr.Name)
		if err != nil {
			return err
		}
		if target == "" {
			continue
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0o755); err != nil {
				return errors.Wrap(errors.ErrCodeUnpackFailed, err, "failed to create directory")
			}
		case tar.TypeReg:
			if err := writeEntry(target, tr, os.FileMode(hdr.Mode)); err != nil {
				return err
			}
		}
		// Symlinks and special entries are skipped.
	}
	return nil
}

// entryPath validates an archive entry name and resolves it inside dest.
// Unsafe names (absolute, traversal, Windows separators) abort the whole
// unpack; an empty result marks entries to skip.
func entryPath(dest, name string) (string, error) {
	clean := filepath.Clean(name)
	if clean == "." || clean == "/" {
		return "", nil
	}
	if err := errors.ValidatePath(clean); err != nil {
		return "", errors.Wrap(errors.ErrCodeUnpackFailed, err, "unsafe archive entry %q", name)
	}
	return filepath.Join(dest, clean), nil
}

func writeEntry(target string, r io.Reader, mode os.FileMode) error {
	// Entries with no stored permissions still need to be readable after
	// extraction; anything beyond rwx bits is dropped.
	perm := mode.Perm() & 0o755
	if perm == 0 {
		perm = 0o644
	}

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeUnpackFailed, err, "failed to create directory")
	}
	f, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return errors.Wrap(errors.ErrCodeUnpackFailed, err, "failed to create file")
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return errors.Wrap(errors.ErrCodeUnpackFailed, err, "failed to write file")
	}
	return f.Close()
}
