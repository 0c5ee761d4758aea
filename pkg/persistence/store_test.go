package persistence

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voxelstream/voxelstream/pkg/voxel"
)

func newTestChunk(pos voxel.ChunkCoord, d voxel.Dims) *voxel.Chunk {
	return voxel.NewChunk(pos, d, nil, nil)
}

func TestStoreSaveLoadRoundTripUncompressed(t *testing.T) {
	fs := newMemFS()
	store, err := New("/world", false, fs, nil)
	require.NoError(t, err)
	defer store.Close()

	d := voxel.Dims{X: 2, Y: 2, Z: 2}
	pos := voxel.ChunkCoord{X: 3, Y: -1, Z: 0}
	c := newTestChunk(pos, d)
	c.SetBlock(voxel.Local{0, 0, 0}, voxel.Stone)

	require.NoError(t, store.Save(c))

	loaded := newTestChunk(pos, d)
	hit, err := store.Load(loaded)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, voxel.Stone, loaded.GetBlock(voxel.Local{0, 0, 0}))
}

func TestStoreSaveLoadRoundTripCompressed(t *testing.T) {
	fs := newMemFS()
	store, err := New("/world", true, fs, nil)
	require.NoError(t, err)
	defer store.Close()

	d := voxel.Dims{X: 4, Y: 4, Z: 4}
	pos := voxel.ChunkCoord{X: 0, Y: 0, Z: 0}
	c := newTestChunk(pos, d)
	for i := 0; i < 4; i++ {
		c.SetBlock(voxel.Local{i, 0, 0}, voxel.Dirt)
	}

	require.NoError(t, store.Save(c))

	loaded := newTestChunk(pos, d)
	hit, err := store.Load(loaded)
	require.NoError(t, err)
	assert.True(t, hit)
	for i := 0; i < 4; i++ {
		assert.Equal(t, voxel.Dirt, loaded.GetBlock(voxel.Local{i, 0, 0}))
	}
}

func TestStoreLoadMissingFileIsNotAnError(t *testing.T) {
	fs := newMemFS()
	store, err := New("/world", false, fs, nil)
	require.NoError(t, err)
	defer store.Close()

	d := voxel.Dims{X: 2, Y: 2, Z: 2}
	c := newTestChunk(voxel.ChunkCoord{}, d)
	hit, err := store.Load(c)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestStoreLoadHeaderMismatchTreatedAsNoSave(t *testing.T) {
	fs := newMemFS()
	store, err := New("/world", false, fs, nil)
	require.NoError(t, err)
	defer store.Close()

	d := voxel.Dims{X: 2, Y: 2, Z: 2}
	saved := newTestChunk(voxel.ChunkCoord{X: 0}, d)
	require.NoError(t, store.Save(saved))

	// Same file name would only collide at the same position; simulate a
	// header mismatch by loading into a chunk of a different size at the
	// same position, which the file on disk does not describe.
	mismatched := newTestChunk(voxel.ChunkCoord{X: 0}, voxel.Dims{X: 4, Y: 4, Z: 4})
	hit, err := store.Load(mismatched)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestStoreLoadPayloadLengthMismatchIsAnError(t *testing.T) {
	fs := newMemFS()
	store, err := New("/world", false, fs, nil)
	require.NoError(t, err)
	defer store.Close()

	d := voxel.Dims{X: 2, Y: 2, Z: 2}
	pos := voxel.ChunkCoord{}
	c := newTestChunk(pos, d)
	c.SetBlock(voxel.Local{0, 0, 0}, voxel.Stone)
	require.NoError(t, store.Save(c))

	raw, err := fs.ReadFile(store.path(pos))
	require.NoError(t, err)
	require.NoError(t, fs.WriteFile(store.path(pos), raw[:len(raw)-1]))

	loaded := newTestChunk(pos, d)
	hit, err := store.Load(loaded)
	assert.True(t, hit)
	require.Error(t, err)
	assert.True(t, errors.Is(err, voxel.ErrPayloadLengthMismatch))
}

func TestFileNamePreservesSign(t *testing.T) {
	name := FileName(voxel.ChunkCoord{X: -3, Y: 0, Z: 2})
	assert.Equal(t, "chunk_-3_0_2.dat", name)
}

func TestEnsureDirCreatesConfiguredDirectory(t *testing.T) {
	fs := newMemFS()
	store, err := New("/world/save", false, fs, nil)
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.EnsureDir())
	assert.True(t, fs.dirs["/world/save"])
}
