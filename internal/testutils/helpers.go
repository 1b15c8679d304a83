package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// SetupMazeDir creates a temporary directory holding the given definition files
// (file name to content) and returns its absolute path.
// It fails the test immediately on error.
func SetupMazeDir(t *testing.T, files map[string]string) string {
	t.Helper()

	absPath, err := filepath.Abs(t.TempDir())
	require.NoError(t, err, "Failed to get absolute path for temp dir")

	for name, content := range files {
		err := os.WriteFile(filepath.Join(absPath, name), []byte(content), 0644)
		require.NoError(t, err, "Failed to write %s", name)
	}
	return absPath
}
