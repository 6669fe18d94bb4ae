package fs_test

import (
	"errors"
	iofs "io/fs"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/bundler/internal/adapters/fs"
)

func TestOSFS(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "a.js")
	require.NoError(t, os.WriteFile(file, []byte("console.log(1);"), 0o600))

	osfs := fs.NewOSFS()

	data, err := osfs.ReadFile(file)
	require.NoError(t, err)
	assert.Equal(t, "console.log(1);", string(data))

	isDir, err := osfs.IsDir(dir)
	require.NoError(t, err)
	assert.True(t, isDir)

	isDir, err = osfs.IsDir(file)
	require.NoError(t, err)
	assert.False(t, isDir)

	_, err = osfs.Stat(filepath.Join(dir, "missing.js"))
	assert.True(t, errors.Is(err, iofs.ErrNotExist))
}

func TestMapFSAdapter(t *testing.T) {
	mapfs := fstest.MapFS{
		"js/a.js":       {Data: []byte("a")},
		"css/site.less": {Data: []byte("@c: red;")},
	}
	adapter := fs.NewMapFSAdapter("/srv/www", mapfs)

	data, err := adapter.ReadFile("/srv/www/js/a.js")
	require.NoError(t, err)
	assert.Equal(t, "a", string(data))

	data, err = adapter.ReadFile("css/site.less")
	require.NoError(t, err)
	assert.Equal(t, "@c: red;", string(data))

	isDir, err := adapter.IsDir("/srv/www/js")
	require.NoError(t, err)
	assert.True(t, isDir)

	isDir, err = adapter.IsDir("/srv/www")
	require.NoError(t, err)
	assert.True(t, isDir)

	_, err = adapter.Stat("/srv/www/js/missing.js")
	assert.True(t, errors.Is(err, iofs.ErrNotExist))

	_, err = adapter.ReadFile("/elsewhere/js/a.js")
	assert.Error(t, err)

	_, err = adapter.ReadFile("/srv/wwwx/js/a.js")
	assert.Error(t, err)
}
