package voxel

import (
	"bytes"
	"encoding/binary"
	"errors"
)

// ErrHeaderMismatch is returned by Deserialize when the encoded position or
// size does not match the receiving chunk.
var ErrHeaderMismatch = errors.New("voxel: header mismatch")

// RendererHandle is the renderer-owned resource a Chunk acquires on first
// mesh emission and releases on Cleanup. Concrete implementations live
// outside this package; any type with this method set satisfies it.
type RendererHandle interface {
	SetMesh(positions, normals [][3]float32, uvs [][2]float32, colors [][4]float32, indices []uint32)
	Clear()
}

// ColliderHandle is the physics-owned resource a Chunk acquires on first
// mesh emission (when collision is enabled) and releases on Cleanup.
type ColliderHandle interface {
	SetTriangles(positions [][3]float32, indices []uint32)
	Clear()
}

// BlockColorFunc is the external per-id color hook used by the mesher for
// per-vertex color. It must be a pure function of id.
type BlockColorFunc func(id Block) [4]float32

// WorldAccessor lets the mesher read blocks outside the chunk currently
// being meshed, for cross-chunk face culling. If nil is passed to
// GenerateMesh, out-of-chunk neighbors are treated as air.
type WorldAccessor interface {
	BlockAt(world [3]int32) Block
}

// Chunk owns one BlockArray plus renderer/collider handles, and tracks the
// dirty/modified bookkeeping described for C3.
type Chunk struct {
	Position ChunkCoord
	Size     Dims

	blocks *BlockArray

	isModified  bool
	isMeshDirty bool

	renderer RendererHandle
	collider ColliderHandle

	rendererFactory func() RendererHandle
	colliderFactory func() ColliderHandle
}

// NewChunk creates a freshly created, all-air chunk. blocks = 0,
// is_modified = false, is_mesh_dirty = true, per the data model invariant.
// rendererFactory/colliderFactory are invoked lazily on first mesh
// emission; colliderFactory may be nil when collision is disabled.
func NewChunk(pos ChunkCoord, size Dims, rendererFactory func() RendererHandle, colliderFactory func() ColliderHandle) *Chunk {
	return &Chunk{
		Position:        pos,
		Size:            size,
		blocks:          NewBlockArray(size),
		isMeshDirty:     true,
		rendererFactory: rendererFactory,
		colliderFactory: colliderFactory,
	}
}

// IsModified reports whether block content has changed since last
// persisted load/save.
func (c *Chunk) IsModified() bool { return c.isModified }

// IsMeshDirty reports whether the current mesh does not reflect current
// block content (or cross-chunk neighbor changes).
func (c *Chunk) IsMeshDirty() bool { return c.isMeshDirty }

// GetBlock delegates to the block array.
func (c *Chunk) GetBlock(l Local) Block {
	return c.blocks.Get(l)
}

// SetBlock delegates to the block array and, on an actual change, marks
// the mesh dirty in addition to whatever BlockArray.Set reports.
func (c *Chunk) SetBlock(l Local, id Block) bool {
	changed := c.blocks.Set(l, id)
	if changed {
		c.isModified = true
		c.isMeshDirty = true
	}
	return changed
}

// MarkDirty sets is_mesh_dirty without modifying content. Used for
// cross-chunk invalidation after a neighbor mutates a boundary cell on its
// side.
func (c *Chunk) MarkDirty() {
	c.isMeshDirty = true
}

// GenerateMesh is a no-op if the chunk is not dirty. Otherwise it invokes
// the greedy mesher, swaps the renderer handle with the new mesh (or
// clears it if the mesh is empty), rebuilds the collider from the same
// triangle soup when a collider factory is configured, and clears
// is_mesh_dirty. It never clears is_modified.
func (c *Chunk) GenerateMesh(world WorldAccessor, colorOf BlockColorFunc) {
	if !c.isMeshDirty {
		return
	}
	result := GreedyMesh(c.blocks, c.Position, c.Size, world, colorOf)

	if len(result.Indices) == 0 {
		if c.renderer != nil {
			c.renderer.Clear()
		}
		if c.collider != nil {
			c.collider.Clear()
		}
		c.isMeshDirty = false
		return
	}

	if c.renderer == nil && c.rendererFactory != nil {
		c.renderer = c.rendererFactory()
	}
	if c.renderer != nil {
		c.renderer.SetMesh(result.Positions, result.Normals, result.UVs, result.Colors, result.Indices)
	}

	if c.colliderFactory != nil {
		if c.collider == nil {
			c.collider = c.colliderFactory()
		}
		c.collider.SetTriangles(result.Positions, result.Indices)
	}

	c.isMeshDirty = false
}

// Cleanup releases renderer and collider handles and empties the block
// array. Idempotent.
func (c *Chunk) Cleanup() {
	if c.renderer != nil {
		c.renderer.Clear()
		c.renderer = nil
	}
	if c.collider != nil {
		c.collider.Clear()
		c.collider = nil
	}
	c.blocks.Reset()
}

// Serialize wraps the block array with the on-disk header (two 3-tuples of
// i32 LE: position, size) followed by the RLE payload.
func (c *Chunk) Serialize() []byte {
	var buf bytes.Buffer
	for _, v := range []int32{c.Position.X, c.Position.Y, c.Position.Z} {
		binary.Write(&buf, binary.LittleEndian, v)
	}
	for _, v := range []int32{int32(c.Size.X), int32(c.Size.Y), int32(c.Size.Z)} {
		binary.Write(&buf, binary.LittleEndian, v)
	}
	buf.Write(EncodeRLE(c.blocks.Raw()))
	return buf.Bytes()
}

// Deserialize validates the header against the receiving chunk's position
// and size. On mismatch it returns ErrHeaderMismatch without mutating
// state. On a payload length mismatch it returns ErrPayloadLengthMismatch,
// zero-fills the array, and reports load failure. On success it sets
// is_modified = false and is_mesh_dirty = true.
func (c *Chunk) Deserialize(data []byte) error {
	if len(data) < 24 {
		return ErrHeaderMismatch
	}
	r := bytes.NewReader(data)
	var hdr [6]int32
	for i := range hdr {
		if err := binary.Read(r, binary.LittleEndian, &hdr[i]); err != nil {
			return ErrHeaderMismatch
		}
	}
	if hdr[0] != c.Position.X || hdr[1] != c.Position.Y || hdr[2] != c.Position.Z ||
		int(hdr[3]) != c.Size.X || int(hdr[4]) != c.Size.Y || int(hdr[5]) != c.Size.Z {
		return ErrHeaderMismatch
	}

	payload := data[24:]
	raw, err := DecodeRLE(payload, c.Size.Volume())
	if err != nil {
		c.blocks.Reset()
		return err
	}
	if err := c.blocks.BulkReplace(raw); err != nil {
		c.blocks.Reset()
		return err
	}
	c.isModified = false
	c.isMeshDirty = true
	return nil
}
