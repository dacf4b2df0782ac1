package objsync

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/hitminer/bucket-sync/server/memgateway"
	"github.com/hitminer/bucket-sync/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiff(t *testing.T) {
	mem := memgateway.NewMemServer()
	mem.Put("demo", "d/same.txt", []byte("same"))
	mem.Put("demo", "d/changed.txt", []byte("one"))
	mem.Put("demo", "d/resized.txt", []byte("short"))
	mem.Put("demo", "d/remote.txt", []byte("remote"))
	mem.Put("demo", "e/ignored.txt", []byte("ignored"))
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "d", "same.txt"), "same")
	writeFile(t, filepath.Join(root, "d", "changed.txt"), "two")
	writeFile(t, filepath.Join(root, "d", "resized.txt"), "much longer")
	writeFile(t, filepath.Join(root, "d", "local.txt"), "local")
	e := New(mem)

	diffs, err := e.Diff(context.Background(), "demo", root, "d/")
	require.NoError(t, err)
	assert.Equal(t, []Difference{
		{Key: "d/changed.txt", Status: Modified},
		{Key: "d/local.txt", Status: OnlyLocal},
		{Key: "d/remote.txt", Status: OnlyRemote},
		{Key: "d/resized.txt", Status: Modified},
	}, diffs)
	assert.Equal(t, 0, mem.TotalCalls("get"))
	assert.Equal(t, 0, mem.TotalCalls("put"))
}

func TestDiffEmptyCandidates(t *testing.T) {
	mem := demoStore(t)
	e := New(mem)

	_, err := e.Diff(context.Background(), "demo", t.TempDir(), "zzz")
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "remote", OnlyRemote.String())
	assert.Equal(t, "local", OnlyLocal.String())
	assert.Equal(t, "modified", Modified.String())
}

func TestDiffAfterRoundTrip(t *testing.T) {
	mem := memgateway.NewMemServer()
	mem.MakeBucket("demo")
	root := t.TempDir()
	util.RandDir(filepath.Join(root, "x"), 2048, "1.bin", "2.bin", "3.bin")
	e := New(mem)

	require.NoError(t, e.SyncEndpoint(context.Background(), Upload, "demo", root, "x/", false))
	diffs, err := e.Diff(context.Background(), "demo", root, "x/")
	require.NoError(t, err)
	assert.Empty(t, diffs)

	mirror := t.TempDir()
	require.NoError(t, e.SyncEndpoint(context.Background(), Download, "demo", mirror, "x/", false))
	for _, name := range []string{"1.bin", "2.bin", "3.bin"} {
		want, err := os.ReadFile(filepath.Join(root, "x", name))
		require.NoError(t, err)
		got, err := os.ReadFile(filepath.Join(mirror, "x", name))
		require.NoError(t, err)
		assert.Equal(t, want, got, name)
	}
}
