package voxel

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRenderer struct {
	sets   int
	clears int
}

func (r *fakeRenderer) SetMesh(positions, normals [][3]float32, uvs [][2]float32, colors [][4]float32, indices []uint32) {
	r.sets++
}
func (r *fakeRenderer) Clear() { r.clears++ }

func newTestChunk(pos ChunkCoord, d Dims) (*Chunk, *fakeRenderer) {
	r := &fakeRenderer{}
	c := NewChunk(pos, d, func() RendererHandle { return r }, nil)
	return c, r
}

func TestNewChunkStartsAirAndDirty(t *testing.T) {
	c, _ := newTestChunk(ChunkCoord{}, Dims{X: 4, Y: 4, Z: 4})
	assert.False(t, c.IsModified())
	assert.True(t, c.IsMeshDirty())
	assert.Equal(t, Air, c.GetBlock(Local{0, 0, 0}))
}

func TestSetBlockMarksModifiedAndDirty(t *testing.T) {
	c, _ := newTestChunk(ChunkCoord{}, Dims{X: 4, Y: 4, Z: 4})
	c.GenerateMesh(nil, nil)
	assert.False(t, c.IsMeshDirty())

	changed := c.SetBlock(Local{0, 0, 0}, Stone)
	assert.True(t, changed)
	assert.True(t, c.IsModified())
	assert.True(t, c.IsMeshDirty())
}

func TestGenerateMeshAcquiresRendererOnlyWhenNonEmpty(t *testing.T) {
	c, r := newTestChunk(ChunkCoord{}, Dims{X: 2, Y: 2, Z: 2})
	c.GenerateMesh(nil, nil)
	assert.Equal(t, 0, r.sets, "an all-air chunk should never acquire a renderer")
	assert.False(t, c.IsMeshDirty())

	c.SetBlock(Local{0, 0, 0}, Stone)
	c.GenerateMesh(nil, nil)
	assert.Equal(t, 1, r.sets)
}

func TestGenerateMeshIsNoOpWhenNotDirty(t *testing.T) {
	c, r := newTestChunk(ChunkCoord{}, Dims{X: 2, Y: 2, Z: 2})
	c.SetBlock(Local{0, 0, 0}, Stone)
	c.GenerateMesh(nil, nil)
	assert.Equal(t, 1, r.sets)

	c.GenerateMesh(nil, nil) // not dirty, should not touch the renderer again
	assert.Equal(t, 1, r.sets)
}

func TestGenerateMeshClearsRendererWhenMeshBecomesEmpty(t *testing.T) {
	c, r := newTestChunk(ChunkCoord{}, Dims{X: 2, Y: 2, Z: 2})
	c.SetBlock(Local{0, 0, 0}, Stone)
	c.GenerateMesh(nil, nil)
	assert.Equal(t, 1, r.sets)

	c.SetBlock(Local{0, 0, 0}, Air)
	c.GenerateMesh(nil, nil)
	assert.Equal(t, 1, r.clears)
}

func TestCleanupReleasesHandlesAndResetsBlocks(t *testing.T) {
	c, r := newTestChunk(ChunkCoord{}, Dims{X: 2, Y: 2, Z: 2})
	c.SetBlock(Local{0, 0, 0}, Stone)
	c.GenerateMesh(nil, nil)

	c.Cleanup()
	assert.Equal(t, 1, r.clears)
	assert.Equal(t, Air, c.GetBlock(Local{0, 0, 0}))

	c.Cleanup() // idempotent
	assert.Equal(t, 1, r.clears, "a second Cleanup should not clear the already-released renderer again")
}

func TestSerializeDeserializeRoundTrip(t *testing.T) {
	d := Dims{X: 2, Y: 2, Z: 2}
	pos := ChunkCoord{X: 1, Y: -2, Z: 3}
	c, _ := newTestChunk(pos, d)
	c.SetBlock(Local{0, 0, 0}, Stone)
	c.SetBlock(Local{1, 1, 1}, Grass)

	data := c.Serialize()

	other, _ := newTestChunk(pos, d)
	err := other.Deserialize(data)
	require.NoError(t, err)
	assert.False(t, other.IsModified())
	assert.True(t, other.IsMeshDirty())
	assert.Equal(t, Stone, other.GetBlock(Local{0, 0, 0}))
	assert.Equal(t, Grass, other.GetBlock(Local{1, 1, 1}))
}

func TestDeserializeHeaderMismatch(t *testing.T) {
	d := Dims{X: 2, Y: 2, Z: 2}
	c, _ := newTestChunk(ChunkCoord{X: 0}, d)
	c.SetBlock(Local{0, 0, 0}, Stone)
	data := c.Serialize()

	other, _ := newTestChunk(ChunkCoord{X: 1}, d) // different position
	err := other.Deserialize(data)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrHeaderMismatch))
}

func TestDeserializePayloadLengthMismatch(t *testing.T) {
	d := Dims{X: 2, Y: 2, Z: 2}
	c, _ := newTestChunk(ChunkCoord{}, d)
	c.SetBlock(Local{0, 0, 0}, Stone)
	c.SetBlock(Local{1, 0, 0}, Grass)
	data := c.Serialize()
	corrupted := data[:len(data)-1] // truncate the RLE payload

	other, _ := newTestChunk(ChunkCoord{}, d)
	err := other.Deserialize(corrupted)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrPayloadLengthMismatch))
	assert.Equal(t, Air, other.GetBlock(Local{0, 0, 0}), "a failed deserialize should leave the block array all-air")
}
