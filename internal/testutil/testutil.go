// Package testutil holds helpers shared by tests that need a Redis server or
// an on-disk set of name lists.
package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"
)

// StartRedis starts a miniredis server that is stopped when the test ends,
// and returns it with a redis:// URL pointing at it.
func StartRedis(t *testing.T) (*miniredis.Miniredis, string) {
	t.Helper()
	mr := miniredis.RunT(t)
	return mr, "redis://" + mr.Addr()
}

// WriteDataDir writes the three name lists into a temporary directory using
// the default file names and returns the directory.
func WriteDataDir(t *testing.T, products, customers, packages []string) string {
	t.Helper()
	dir := t.TempDir()

	files := map[string][]string{
		"ideas-products.txt":  products,
		"ideas-customers.txt": customers,
		"packages.txt":        packages,
	}
	for name, lines := range files {
		content := strings.Join(lines, "\n") + "\n"
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
	return dir
}
