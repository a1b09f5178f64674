package bump

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

// CheckGit verifies that git is available on the system.
func CheckGit(ctx context.Context) error {
	cmd := exec.CommandContext(ctx, "git", "--version")
	if err := cmd.Run(); err != nil {
		return errors.New("git is not available on the system")
	}
	return nil
}

// git runs a git subcommand in dir and returns its standard output.
func git(ctx context.Context, dir string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		return out, fmt.Errorf("git %s failed: %v, detail: %s", args[0], err, strings.TrimSpace(stderr.String()))
	}
	return out, nil
}

// CheckClean ensures that only the allowed files have uncommitted changes in
// the repository at dir, so a release commit holds nothing unrelated.
func CheckClean(ctx context.Context, dir string, allowed []string) error {
	out, err := git(ctx, dir, "status", "--porcelain")
	if err != nil {
		return fmt.Errorf("failed to check git status: %w", err)
	}
	// Porcelain paths are relative to the top of the work tree, not to dir.
	top, err := git(ctx, dir, "rev-parse", "--show-toplevel")
	if err != nil {
		return fmt.Errorf("failed to find repository root: %w", err)
	}
	root := realPath(strings.TrimSpace(string(top)))

	allowedSet := make(map[string]struct{}, len(allowed))
	for _, f := range allowed {
		abs, err := absIn(dir, f)
		if err != nil {
			return fmt.Errorf("failed to resolve path %q: %w", f, err)
		}
		allowedSet[realPath(abs)] = struct{}{}
	}

	var disallowed []string
	for _, line := range bytes.Split(out, []byte("\n")) {
		if len(line) < 4 {
			continue
		}
		path := string(bytes.TrimSpace(line[3:]))
		abs := realPath(filepath.Join(root, filepath.FromSlash(path)))
		if _, ok := allowedSet[abs]; !ok {
			disallowed = append(disallowed, path)
		}
	}

	if len(disallowed) > 0 {
		return fmt.Errorf("working directory is dirty; uncommitted files not included in commit: %v", disallowed)
	}
	return nil
}

// Commit stages files in the repository at dir and commits them with the
// version (without a "v" prefix) as the message. With tag set, the commit is
// also tagged "v" + version.
func Commit(ctx context.Context, dir string, v Version, files []string, tag bool) error {
	if _, err := git(ctx, dir, append([]string{"add", "--"}, files...)...); err != nil {
		return err
	}
	if _, err := git(ctx, dir, "commit", "-m", v.String()); err != nil {
		return err
	}
	if tag {
		if _, err := git(ctx, dir, "tag", v.Canonical()); err != nil {
			return err
		}
	}
	return nil
}

func absIn(dir, path string) (string, error) {
	if !filepath.IsAbs(path) && dir != "" {
		path = filepath.Join(dir, path)
	}
	return filepath.Abs(path)
}

// realPath resolves symlinks in the directory part of path, so temporary
// directories behind a symlink compare equal to what git reports.
func realPath(path string) string {
	d, err := filepath.EvalSymlinks(filepath.Dir(path))
	if err != nil {
		return filepath.Clean(path)
	}
	return filepath.Join(d, filepath.Base(path))
}
