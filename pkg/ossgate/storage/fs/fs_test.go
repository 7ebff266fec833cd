package fs

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendant/ossgate/pkg/ossgate"
	"github.com/tendant/ossgate/pkg/ossgate/presigned"
)

func TestFSBackend_BasicOps(t *testing.T) {
	tmp := t.TempDir()
	backend, err := New(tmp)
	require.NoError(t, err)

	ctx := context.Background()
	key := "snowfish/42/files/1700000000000.txt"

	require.NoError(t, backend.PutObject(ctx, key, "text/plain", strings.NewReader("hello fs")))

	rc, contentType, err := backend.GetObject(ctx, key)
	require.NoError(t, err)
	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, "hello fs", string(got))
	assert.Equal(t, "text/plain; charset=utf-8", contentType)

	require.NoError(t, backend.DeleteObject(ctx, key))
	_, err = os.Stat(filepath.Join(tmp, "snowfish"))
	assert.True(t, os.IsNotExist(err), "empty directories should be removed")

	assert.ErrorIs(t, backend.DeleteObject(ctx, key), presigned.ErrObjectNotFound)
	_, _, err = backend.GetObject(ctx, key)
	assert.ErrorIs(t, err, presigned.ErrObjectNotFound)
}

func TestFSBackend_RemoveObject(t *testing.T) {
	backend, err := New(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	creds := ossgate.Credentials{Bucket: "demo-bucket"}
	key := "snowfish/42/avatar/1.png"

	require.NoError(t, backend.PutObject(ctx, key, "image/png", strings.NewReader("png")))
	require.NoError(t, backend.RemoveObject(ctx, creds, key))
	assert.NoError(t, backend.RemoveObject(ctx, creds, key))
}

func TestFSBackend_RejectsEscapingKeys(t *testing.T) {
	backend, err := New(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	for _, key := range []string{"../outside", "snowfish/../../outside", ".."} {
		err := backend.PutObject(ctx, key, "", strings.NewReader("x"))
		assert.ErrorIs(t, err, ErrInvalidObjectKey, key)
	}
}

func TestNew_RequiresBaseDir(t *testing.T) {
	_, err := New("")
	assert.Error(t, err)
}
