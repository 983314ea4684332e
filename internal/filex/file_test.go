package filex

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEnsureParentDir_CreatesNestedDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data", "gophwallet")

	require.NoError(t, EnsureParentDir(filepath.Join(dir, "wallet.db")))

	fi, err := os.Stat(dir)
	require.NoError(t, err)
	require.True(t, fi.IsDir())
	if runtime.GOOS != "windows" {
		require.Equal(t, os.FileMode(0o700), fi.Mode().Perm()&0o700)
	}

	require.NoError(t, EnsureParentDir(filepath.Join(dir, "wallet.db")), "must be idempotent")
}

func TestEnsureParentDir_SkipsSpecialDSNs(t *testing.T) {
	for _, dsn := range []string{"", ":memory:", "file:x?mode=memory"} {
		require.NoError(t, EnsureParentDir(dsn), dsn)
	}
}
