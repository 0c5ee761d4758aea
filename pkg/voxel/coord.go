package voxel

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Dims is a chunk's size along each axis: Cx, Cy, Cz.
type Dims struct {
	X, Y, Z int
}

// Volume returns Cx*Cy*Cz.
func (d Dims) Volume() int {
	return d.X * d.Y * d.Z
}

// ChunkCoord is a chunk's lattice position.
type ChunkCoord struct {
	X, Y, Z int32
}

// Local is a block position within a chunk, each component in [0, C_axis).
type Local struct {
	X, Y, Z int
}

// floorDiv performs floored integer division: the quotient rounds toward
// negative infinity rather than toward zero, so that, e.g., floorDiv(-1, 16)
// == -1 rather than Go's native truncating 0.
func floorDiv(a int32, b int32) int32 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// floorMod is the non-negative (Euclidean) remainder: the result always
// lies in [0, b).
func floorMod(a int32, b int32) int32 {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}

// WorldToChunk maps a world block position to the chunk that contains it,
// using floored division on each axis.
func WorldToChunk(world [3]int32, d Dims) ChunkCoord {
	return ChunkCoord{
		X: floorDiv(world[0], int32(d.X)),
		Y: floorDiv(world[1], int32(d.Y)),
		Z: floorDiv(world[2], int32(d.Z)),
	}
}

// WorldToLocal maps a world block position to its in-chunk local
// coordinate, using the Euclidean (non-negative) remainder on each axis.
func WorldToLocal(world [3]int32, d Dims) Local {
	return Local{
		X: int(floorMod(world[0], int32(d.X))),
		Y: int(floorMod(world[1], int32(d.Y))),
		Z: int(floorMod(world[2], int32(d.Z))),
	}
}

// ChunkToWorld returns the minimum-corner world position of chunk c.
func ChunkToWorld(c ChunkCoord, d Dims) [3]int32 {
	return [3]int32{
		c.X * int32(d.X),
		c.Y * int32(d.Y),
		c.Z * int32(d.Z),
	}
}

// ChunkToWorldVec3 returns the minimum corner of chunk c as a float vector,
// convenient for passing a chunk's world translation to a renderer.
func ChunkToWorldVec3(c ChunkCoord, d Dims) mgl32.Vec3 {
	w := ChunkToWorld(c, d)
	return mgl32.Vec3{float32(w[0]), float32(w[1]), float32(w[2])}
}

// LocalToIndex converts a local coordinate to a flat array index using the
// canonical layout x + z*Cx + y*Cx*Cz (x fastest, y slowest). This formula
// must be used consistently by block storage, the RLE codec, and the
// mesher's mask construction.
func LocalToIndex(l Local, d Dims) int {
	return l.X + l.Z*d.X + l.Y*d.X*d.Z
}

// IndexToLocal is the inverse of LocalToIndex.
func IndexToLocal(index int, d Dims) Local {
	plane := d.X * d.Z
	y := index / plane
	r := index % plane
	z := r / d.X
	x := r % d.X
	return Local{X: x, Y: y, Z: z}
}

// InBounds reports whether l is within [0, C_axis) on every axis.
func (d Dims) InBounds(l Local) bool {
	return l.X >= 0 && l.X < d.X &&
		l.Y >= 0 && l.Y < d.Y &&
		l.Z >= 0 && l.Z < d.Z
}

// OnFace reports whether l touches a chunk boundary, and on which axes.
// Each returned bool is true when that axis is at coordinate 0 or C_axis-1.
func (d Dims) OnFace(l Local) (negX, posX, negY, posY, negZ, posZ bool) {
	negX = l.X == 0
	posX = l.X == d.X-1
	negY = l.Y == 0
	posY = l.Y == d.Y-1
	negZ = l.Z == 0
	posZ = l.Z == d.Z-1
	return
}
