package filex

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEnsureParentDir_CreatesDirectory(t *testing.T) {
	tmp := t.TempDir()
	target := filepath.Join(tmp, "state", "nested", "session.db")

	got, err := EnsureParentDir(target)
	require.NoError(t, err)

	want := filepath.Join(tmp, "state", "nested")
	require.Equal(t, want, got)

	fi, err := os.Stat(want)
	require.NoError(t, err)
	require.True(t, fi.IsDir(), "should create a directory")

	if runtime.GOOS != "windows" {
		require.Equal(t, os.FileMode(0o700), fi.Mode().Perm()&0o700)
	}
}

func TestEnsureParentDir_Idempotent(t *testing.T) {
	target := filepath.Join(t.TempDir(), "state", "session.db")

	first, err := EnsureParentDir(target)
	require.NoError(t, err)

	second, err := EnsureParentDir(target)
	require.NoError(t, err)

	require.Equal(t, first, second)
}

func TestEnsureParentDir_BareFileName(t *testing.T) {
	got, err := EnsureParentDir("session.db")
	require.NoError(t, err)
	require.Equal(t, ".", got)
}

func TestEnsureParentDir_FailsIfFileWithSameNameExists(t *testing.T) {
	tmp := t.TempDir()
	blocker := filepath.Join(tmp, "state")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	_, err := EnsureParentDir(filepath.Join(blocker, "session.db"))
	require.Error(t, err, "should fail when a file exists with the directory name")
}

func TestDefaultStateDir(t *testing.T) {
	dir := DefaultStateDir()
	require.True(t, strings.HasSuffix(dir, ".linkedin-clone") || dir == ".")
}
