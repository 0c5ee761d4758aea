package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voxelstream/voxelstream/internal/config"
	"github.com/voxelstream/voxelstream/pkg/external"
	"github.com/voxelstream/voxelstream/pkg/voxel"
)

func testConfig() config.Config {
	cfg := config.Default()
	cfg.ChunkSizeXZ = 8
	cfg.ChunkSizeY = 8
	cfg.RenderDistanceXZ = 2
	cfg.RenderDistanceY = 1
	cfg.MaxChunksPerFrame = 0
	cfg.AutoSaveChunks = false
	cfg.GenerateCollision = false
	return cfg
}

func newTestWorld(cfg config.Config) *World {
	return New(cfg,
		func(voxel.ChunkCoord) external.RendererHandle { return external.NullRenderer{} },
		nil,
		voxel.DemoPalette,
		nil,
		nil,
	)
}

func TestSetViewerPositionLoadsChunksWithinRange(t *testing.T) {
	cfg := testConfig()
	w := newTestWorld(cfg)
	defer w.Close()

	w.SetViewerPosition([3]float64{0, 0, 0})
	w.Tick()

	// RenderDistanceXZ=2, RenderDistanceY=1 around chunk (0,0,0).
	assert.True(t, w.IsResident(voxel.ChunkCoord{0, 0, 0}))
	assert.True(t, w.IsResident(voxel.ChunkCoord{1, 0, 0}))
	assert.True(t, w.IsResident(voxel.ChunkCoord{0, 1, 0}))
	assert.False(t, w.IsResident(voxel.ChunkCoord{0, 2, 0}), "vertical distance 2 exceeds RenderDistanceY=1")
	assert.False(t, w.IsResident(voxel.ChunkCoord{3, 0, 0}), "horizontal distance 3 exceeds RenderDistanceXZ=2")
}

func TestSetViewerPositionUnloadsChunksOutOfRange(t *testing.T) {
	cfg := testConfig()
	w := newTestWorld(cfg)
	defer w.Close()

	w.SetViewerPosition([3]float64{0, 0, 0})
	w.Tick()
	require.True(t, w.IsResident(voxel.ChunkCoord{0, 0, 0}))

	// Move far enough that the old viewer chunk drops out of range.
	farX := float64(cfg.ChunkSizeXZ) * 50
	w.SetViewerPosition([3]float64{farX, 0, 0})

	assert.False(t, w.IsResident(voxel.ChunkCoord{0, 0, 0}))
}

func TestTickDrainsQueueUpToPerTickLimit(t *testing.T) {
	cfg := testConfig()
	cfg.MaxChunksPerFrame = 1
	w := newTestWorld(cfg)
	defer w.Close()

	w.SetViewerPosition([3]float64{0, 0, 0})
	totalQueued := w.QueueLen()
	require.Greater(t, totalQueued, 1)

	w.Tick()
	assert.Equal(t, totalQueued-1, w.QueueLen())
}

func TestBlockAtReadsThroughResidentChunks(t *testing.T) {
	cfg := testConfig()
	w := newTestWorld(cfg)
	defer w.Close()

	w.SetViewerPosition([3]float64{0, 0, 0})
	w.Tick()

	require.NoError(t, w.SetBlock([3]int32{0, 0, 0}, voxel.Stone))
	assert.Equal(t, voxel.Stone, w.BlockAt([3]int32{0, 0, 0}))
}

func TestBlockAtNonResidentReadsAir(t *testing.T) {
	cfg := testConfig()
	w := newTestWorld(cfg)
	defer w.Close()

	assert.Equal(t, voxel.Air, w.BlockAt([3]int32{1000, 1000, 1000}))
}

func TestEventsEmittedOnLoadAndUnload(t *testing.T) {
	cfg := testConfig()
	w := newTestWorld(cfg)
	defer w.Close()

	var kinds []string
	w.Subscribe(func(e Event) {
		kinds = append(kinds, e.Kind.String())
	})

	w.SetViewerPosition([3]float64{0, 0, 0})
	w.Tick()

	assert.Contains(t, kinds, "chunk_loaded")
	assert.Contains(t, kinds, "chunk_mesh_generated")

	// Moving the viewer far away unloads the chunks around the origin.
	w.SetViewerPosition([3]float64{float64(cfg.ChunkSizeXZ) * 50, 0, 0})
	assert.Contains(t, kinds, "chunk_unloaded")
}

func TestInRangeHorizontalEuclideanVerticalAbsolute(t *testing.T) {
	v := voxel.ChunkCoord{0, 0, 0}
	assert.True(t, InRange(voxel.ChunkCoord{1, 0, 1}, v, 2, 1), "corner distance sqrt(2) fits within rxz=2")
	assert.False(t, InRange(voxel.ChunkCoord{1, 0, 1}, v, 1, 1), "corner distance sqrt(2) exceeds rxz=1")
	assert.False(t, InRange(voxel.ChunkCoord{0, 2, 0}, v, 4, 1), "vertical distance 2 exceeds ry=1 regardless of horizontal slack")
	assert.True(t, InRange(voxel.ChunkCoord{0, 1, 0}, v, 4, 1))
}

func TestClearUnloadsEverythingAndDrainsQueue(t *testing.T) {
	cfg := testConfig()
	w := newTestWorld(cfg)

	w.SetViewerPosition([3]float64{0, 0, 0})
	require.Greater(t, w.QueueLen()+w.ResidentCount(), 0)

	w.Clear()
	assert.Equal(t, 0, w.ResidentCount())
	assert.Equal(t, 0, w.QueueLen())
}
