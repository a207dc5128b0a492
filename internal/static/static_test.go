package static

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstallKeepsExistingFiles(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, Install(dir))

	path := filepath.Join(dir, CatalogFile)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, Catalog(), b)

	custom := []byte("sounds: []\n")
	require.NoError(t, os.WriteFile(path, custom, 0o600))

	require.NoError(t, Install(dir))

	b, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, custom, b)
}
