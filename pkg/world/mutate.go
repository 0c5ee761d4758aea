package world

import "github.com/voxelstream/voxelstream/pkg/voxel"

// ErrChunkNotResident is returned by SetBlock when the target chunk is
// absent and out of the residency window: the mutation is rejected with
// no side effects.
var ErrChunkNotResident = voxel.ErrChunkNotResident

// SetBlock routes a single-block mutation: it decomposes world into a
// (chunk, local) pair, auto-creates the chunk if it is absent but in
// range, writes the cell, and — on the single-block path only —
// synchronously regenerates the mutated chunk's mesh plus the mesh of any
// neighbor chunk across a face the edit touched, so the viewer never sees
// a momentary hole left by lazy regeneration.
func (w *World) SetBlock(world [3]int32, id voxel.Block) error {
	c := voxel.WorldToChunk(world, w.dims)
	local := voxel.WorldToLocal(world, w.dims)

	chunk, ok := w.chunks[c]
	if !ok {
		if !w.inRangeOfViewer(c) {
			return ErrChunkNotResident
		}
		chunk = w.createChunk(c)
	}

	if chunk.GetBlock(local) == id {
		return nil
	}

	chunk.SetBlock(local, id)
	chunk.GenerateMesh(w, w.colorOf)
	w.emit(Event{Kind: EventChunkMeshGenerated, Chunk: c})

	for _, n := range w.boundaryNeighbors(c, local) {
		nchunk, ok := w.chunks[n]
		if !ok {
			continue
		}
		nchunk.MarkDirty()
		nchunk.GenerateMesh(w, w.colorOf)
		w.emit(Event{Kind: EventChunkMeshGenerated, Chunk: n})
	}

	w.emit(Event{Kind: EventBlockModified, Chunk: c, World: world, Block: id})
	return nil
}

// BlockEdit is one cell of a BulkSet batch.
type BlockEdit struct {
	World [3]int32
	Block voxel.Block
}

// BulkSet applies a batch of edits, coalescing bookkeeping: each touched
// chunk is marked dirty at most once, and boundary-neighbor invalidation
// happens once per source chunk after the whole batch is applied, using
// mark_dirty only (no synchronous regeneration) — bulk callers are
// expected to tolerate a one-frame lag before DrainQueue/Tick catches up.
func (w *World) BulkSet(edits []BlockEdit) {
	type faceFlags struct {
		negX, posX, negY, posY, negZ, posZ bool
	}
	touchedFaces := make(map[voxel.ChunkCoord]faceFlags)

	for _, e := range edits {
		c := voxel.WorldToChunk(e.World, w.dims)
		local := voxel.WorldToLocal(e.World, w.dims)

		chunk, ok := w.chunks[c]
		if !ok {
			if !w.inRangeOfViewer(c) {
				continue
			}
			chunk = w.createChunk(c)
		}

		if !chunk.SetBlock(local, e.Block) {
			continue
		}
		w.emit(Event{Kind: EventBlockModified, Chunk: c, World: e.World, Block: e.Block})

		negX, posX, negY, posY, negZ, posZ := w.dims.OnFace(local)
		f := touchedFaces[c]
		f.negX = f.negX || negX
		f.posX = f.posX || posX
		f.negY = f.negY || negY
		f.posY = f.posY || posY
		f.negZ = f.negZ || negZ
		f.posZ = f.posZ || posZ
		touchedFaces[c] = f
	}

	for c, f := range touchedFaces {
		for _, n := range w.neighborsForFaces(c, f.negX, f.posX, f.negY, f.posY, f.negZ, f.posZ) {
			if nchunk, ok := w.chunks[n]; ok {
				nchunk.MarkDirty()
			}
		}
	}
}

// boundaryNeighbors returns the (up to three) neighbor chunk coordinates
// that share a face with local's position in chunk c.
func (w *World) boundaryNeighbors(c voxel.ChunkCoord, local voxel.Local) []voxel.ChunkCoord {
	negX, posX, negY, posY, negZ, posZ := w.dims.OnFace(local)
	return w.neighborsForFaces(c, negX, posX, negY, posY, negZ, posZ)
}

func (w *World) neighborsForFaces(c voxel.ChunkCoord, negX, posX, negY, posY, negZ, posZ bool) []voxel.ChunkCoord {
	var out []voxel.ChunkCoord
	if negX {
		out = append(out, voxel.ChunkCoord{X: c.X - 1, Y: c.Y, Z: c.Z})
	}
	if posX {
		out = append(out, voxel.ChunkCoord{X: c.X + 1, Y: c.Y, Z: c.Z})
	}
	if negY {
		out = append(out, voxel.ChunkCoord{X: c.X, Y: c.Y - 1, Z: c.Z})
	}
	if posY {
		out = append(out, voxel.ChunkCoord{X: c.X, Y: c.Y + 1, Z: c.Z})
	}
	if negZ {
		out = append(out, voxel.ChunkCoord{X: c.X, Y: c.Y, Z: c.Z - 1})
	}
	if posZ {
		out = append(out, voxel.ChunkCoord{X: c.X, Y: c.Y, Z: c.Z + 1})
	}
	return out
}
