package web

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedAssets(t *testing.T) {
	fsys := Static("")
	for _, name := range []string{"/dashboard.css", "/dashboard.js"} {
		f, err := fsys.Open(name)
		require.NoError(t, err, name)
		data, err := io.ReadAll(f)
		f.Close()
		require.NoError(t, err)
		assert.NotEmpty(t, data, name)
	}

	_, err := fsys.Open("/missing.js")
	assert.Error(t, err)
}

func TestStaticDirOverride(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "dashboard.css"), []byte("body{}"), 0644))

	f, err := Static(dir).Open("/dashboard.css")
	require.NoError(t, err)
	defer f.Close()

	data, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, "body{}", string(data))
}
