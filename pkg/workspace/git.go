package workspace

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/EgorK19/pydeps/pkg/errors"
)

// IsGitInstalled reports whether a git executable is available on PATH.
func IsGitInstalled() bool {
	_, err := exec.LookPath("git")
	return err == nil
}

// clone runs a shallow git clone of url into dest. Clone progress is not
// forwarded; on failure the captured stderr becomes part of the error.
func clone(ctx context.Context, url, dest string) error {
	cmd := exec.CommandContext(ctx, "git", "clone", "--depth", "1", "--", url, dest)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return errors.Wrap(errors.ErrCodeCloneFailed, err,
			"failed to clone %s: %s", url, lastLine(stderr.String()))
	}
	return nil
}

// lastLine returns the last non-empty line of git's stderr, which is where
// git puts the actual failure reason.
func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			return line
		}
	}
	return "no error output"
}
