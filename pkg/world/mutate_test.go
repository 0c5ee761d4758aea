package world

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voxelstream/voxelstream/pkg/voxel"
)

func TestSetBlockNoOpWhenSameValue(t *testing.T) {
	cfg := testConfig()
	w := newTestWorld(cfg)
	defer w.Close()

	w.SetViewerPosition([3]float64{0, 0, 0})
	w.Tick()

	var kinds []string
	w.Subscribe(func(e Event) { kinds = append(kinds, e.Kind.String()) })

	require.NoError(t, w.SetBlock([3]int32{0, 0, 0}, voxel.Air))
	assert.Empty(t, kinds, "setting a cell to its current value must not emit any event")
}

func TestSetBlockRejectedWhenChunkNotResident(t *testing.T) {
	cfg := testConfig()
	w := newTestWorld(cfg)
	defer w.Close()

	err := w.SetBlock([3]int32{100000, 0, 0}, voxel.Stone)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrChunkNotResident))
}

func TestSetBlockSynchronouslyRemeshesBoundaryNeighbor(t *testing.T) {
	cfg := testConfig()
	w := newTestWorld(cfg)
	defer w.Close()

	w.SetViewerPosition([3]float64{0, 0, 0})
	w.Tick()
	require.True(t, w.IsResident(voxel.ChunkCoord{0, 0, 0}))
	require.True(t, w.IsResident(voxel.ChunkCoord{1, 0, 0}))

	neighbor := w.chunks[voxel.ChunkCoord{1, 0, 0}]
	require.False(t, neighbor.IsMeshDirty(), "neighbor should already have a clean mesh from the initial load")

	// The last X column of chunk (0,0,0) borders chunk (1,0,0).
	edge := int32(cfg.ChunkSizeXZ) - 1
	require.NoError(t, w.SetBlock([3]int32{edge, 0, 0}, voxel.Stone))

	assert.False(t, neighbor.IsMeshDirty(), "single-block mutation must synchronously regenerate the boundary neighbor's mesh, not just mark it dirty")
}

func TestBulkSetOnlyMarksDirtyNoSynchronousRemesh(t *testing.T) {
	cfg := testConfig()
	w := newTestWorld(cfg)
	defer w.Close()

	w.SetViewerPosition([3]float64{0, 0, 0})
	w.Tick()

	neighbor := w.chunks[voxel.ChunkCoord{1, 0, 0}]
	require.False(t, neighbor.IsMeshDirty())

	edge := int32(cfg.ChunkSizeXZ) - 1
	w.BulkSet([]BlockEdit{{World: [3]int32{edge, 0, 0}, Block: voxel.Stone}})

	assert.True(t, neighbor.IsMeshDirty(), "bulk edits coalesce boundary invalidation lazily via MarkDirty, never a synchronous remesh")
}

func TestBulkSetSkipsEditsOutsideResidency(t *testing.T) {
	cfg := testConfig()
	w := newTestWorld(cfg)
	defer w.Close()

	var kinds []string
	w.Subscribe(func(e Event) { kinds = append(kinds, e.Kind.String()) })

	w.BulkSet([]BlockEdit{{World: [3]int32{100000, 0, 0}, Block: voxel.Stone}})
	assert.Empty(t, kinds)
}

func TestBulkSetEmitsBlockModifiedPerAppliedEdit(t *testing.T) {
	cfg := testConfig()
	w := newTestWorld(cfg)
	defer w.Close()

	w.SetViewerPosition([3]float64{0, 0, 0})
	w.Tick()

	var blockModified int
	w.Subscribe(func(e Event) {
		if e.Kind == EventBlockModified {
			blockModified++
		}
	})

	w.BulkSet([]BlockEdit{
		{World: [3]int32{0, 0, 0}, Block: voxel.Stone},
		{World: [3]int32{1, 0, 0}, Block: voxel.Dirt},
	})
	assert.Equal(t, 2, blockModified)
}
