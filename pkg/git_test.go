package bump

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// initRepo creates a git repository holding files in a single commit.
func initRepo(t *testing.T, files map[string]string) string {
	t.Helper()
	if err := CheckGit(context.Background()); err != nil {
		t.Skip("git is not available on system")
	}

	dir := t.TempDir()
	runGit(t, dir, "init")
	runGit(t, dir, "config", "user.email", "test@example.com")
	runGit(t, dir, "config", "user.name", "Test User")
	runGit(t, dir, "config", "commit.gpgsign", "false")
	runGit(t, dir, "config", "tag.gpgsign", "false")
	for name, content := range files {
		require.NoError(t, os.MkdirAll(filepath.Dir(filepath.Join(dir, name)), 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	runGit(t, dir, "add", ".")
	runGit(t, dir, "commit", "-m", "initial commit")
	return dir
}

func runGit(t *testing.T, dir string, args ...string) string {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "git %s: %s", strings.Join(args, " "), out)
	return strings.TrimSpace(string(out))
}

func TestCommitAndTag(t *testing.T) {
	dir := initRepo(t, map[string]string{
		"VERSION":      "1.2.3\n",
		"package.json": `{"version": "1.2.3"}` + "\n",
	})
	ctx := context.Background()
	files := []string{"VERSION", "package.json"}

	require.NoError(t, CheckClean(ctx, dir, files))

	var first Version
	for i, f := range files {
		res, err := BumpFile(ctx, filepath.Join(dir, f), "", Options{Level: LevelPatch})
		require.NoError(t, err)
		require.Len(t, res.Matches, 1)
		if i == 0 {
			first = res.Matches[0].New
		}
	}
	require.NoError(t, CheckClean(ctx, dir, files))
	require.NoError(t, Commit(ctx, dir, first, files, true))

	assert.Equal(t, "1.2.4", runGit(t, dir, "log", "-1", "--format=%s"))
	assert.Contains(t, strings.Split(runGit(t, dir, "tag"), "\n"), "v1.2.4")
	assert.Empty(t, runGit(t, dir, "status", "--porcelain"))
}

func TestCommitWithoutTag(t *testing.T) {
	dir := initRepo(t, map[string]string{"VERSION": "0.9.0\n"})
	ctx := context.Background()

	_, err := BumpFile(ctx, filepath.Join(dir, "VERSION"), "", Options{Level: LevelMinor})
	require.NoError(t, err)
	require.NoError(t, Commit(ctx, dir, NewVersion(0, 10, 0), []string{"VERSION"}, false))

	assert.Equal(t, "0.10.0", runGit(t, dir, "log", "-1", "--format=%s"))
	assert.Empty(t, runGit(t, dir, "tag"))
}

func TestCheckCleanRejectsUnrelatedChanges(t *testing.T) {
	dir := initRepo(t, map[string]string{"VERSION": "1.2.3\n"})
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("unsaved changes\n"), 0o644))

	err := CheckClean(context.Background(), dir, []string{"VERSION"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "working directory is dirty")
	assert.Contains(t, err.Error(), "README.md")
}

func TestCheckCleanAcceptsAbsolutePaths(t *testing.T) {
	dir := initRepo(t, map[string]string{"VERSION": "1.2.3\n"})
	path := filepath.Join(dir, "VERSION")
	require.NoError(t, os.WriteFile(path, []byte("1.2.4\n"), 0o644))

	assert.NoError(t, CheckClean(context.Background(), dir, []string{path}))
}

func TestCheckCleanFromSubdirectory(t *testing.T) {
	dir := initRepo(t, map[string]string{
		"README.md":   "readme\n",
		"sub/VERSION": "1.2.3\n",
	})
	sub := filepath.Join(dir, "sub")
	require.NoError(t, os.WriteFile(filepath.Join(sub, "VERSION"), []byte("1.2.4\n"), 0o644))

	assert.NoError(t, CheckClean(context.Background(), sub, []string{"VERSION"}))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("unsaved changes\n"), 0o644))
	err := CheckClean(context.Background(), sub, []string{"VERSION"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "README.md")
	assert.NotContains(t, err.Error(), "sub/VERSION")
}

func TestCommitOutsideRepository(t *testing.T) {
	if err := CheckGit(context.Background()); err != nil {
		t.Skip("git is not available on system")
	}
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "VERSION"), []byte("1.0.0\n"), 0o644))

	err := Commit(context.Background(), dir, NewVersion(1, 0, 0), []string{"VERSION"}, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "git add failed")
}
