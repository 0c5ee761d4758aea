package voxel

// MeshResult is the mesher's output: four parallel per-vertex arrays plus
// the triangle index list (all five empty if the chunk has no visible
// faces).
type MeshResult struct {
	Positions [][3]float32
	Normals   [][3]float32
	UVs       [][2]float32
	Colors    [][4]float32
	Indices   []uint32
}

// faceDir describes one of the six axis-aligned sweep directions: its
// world-space unit vector, its primary axis index (0=X, 1=Y, 2=Z), and the
// two tangent axis indices used to build the 2D slice mask.
type faceDir struct {
	vec         [3]int32
	primaryAxis int
	uAxis       int
	vAxis       int
}

var faceDirs = [6]faceDir{
	{vec: [3]int32{0, 1, 0}, primaryAxis: 1, uAxis: 0, vAxis: 2},  // +Y
	{vec: [3]int32{0, -1, 0}, primaryAxis: 1, uAxis: 0, vAxis: 2}, // -Y
	{vec: [3]int32{1, 0, 0}, primaryAxis: 0, uAxis: 2, vAxis: 1},  // +X
	{vec: [3]int32{-1, 0, 0}, primaryAxis: 0, uAxis: 2, vAxis: 1}, // -X
	{vec: [3]int32{0, 0, 1}, primaryAxis: 2, uAxis: 0, vAxis: 1},  // +Z
	{vec: [3]int32{0, 0, -1}, primaryAxis: 2, uAxis: 0, vAxis: 1}, // -Z
}

func axisSize(d Dims, axis int) int {
	switch axis {
	case 0:
		return d.X
	case 1:
		return d.Y
	default:
		return d.Z
	}
}

func setAxis(l *Local, axis, val int) {
	switch axis {
	case 0:
		l.X = val
	case 1:
		l.Y = val
	default:
		l.Z = val
	}
}

func getAxis(l Local, axis int) int {
	switch axis {
	case 0:
		return l.X
	case 1:
		return l.Y
	default:
		return l.Z
	}
}

func setAxisF(p *[3]float32, axis int, val float32) {
	p[axis] = val
}

// GreedyMesh runs the six-direction greedy meshing sweep over blocks,
// culling faces against in-chunk neighbors and, when world is non-nil,
// against cross-chunk neighbors read through world. If world is nil,
// out-of-chunk neighbors are treated as air and every boundary face is
// drawn. colorOf supplies per-vertex color for each emitted block id; if
// nil, white is used.
func GreedyMesh(blocks *BlockArray, chunkPos ChunkCoord, dims Dims, world WorldAccessor, colorOf BlockColorFunc) MeshResult {
	var result MeshResult
	chunkOrigin := ChunkToWorld(chunkPos, dims)

	for _, dir := range faceDirs {
		sign := dir.vec[dir.primaryAxis]
		primarySize := axisSize(dims, dir.primaryAxis)
		width := axisSize(dims, dir.uAxis)
		height := axisSize(dims, dir.vAxis)

		mask := make([]int32, width*height)

		for s := 0; s < primarySize; s++ {
			for j := 0; j < height; j++ {
				for i := 0; i < width; i++ {
					var l Local
					setAxis(&l, dir.primaryAxis, s)
					setAxis(&l, dir.uAxis, i)
					setAxis(&l, dir.vAxis, j)

					idx := j*width + i
					blk := blocks.Get(l)
					if blk == Air {
						mask[idx] = -1
						continue
					}

					np := s + int(sign)
					if np >= 0 && np < primarySize {
						nl := l
						setAxis(&nl, dir.primaryAxis, np)
						if blocks.Get(nl) != Air {
							mask[idx] = -1
						} else {
							mask[idx] = int32(blk)
						}
						continue
					}

					if world == nil {
						mask[idx] = int32(blk)
						continue
					}

					neighborWorld := [3]int32{
						chunkOrigin[0] + int32(getAxis(l, 0)),
						chunkOrigin[1] + int32(getAxis(l, 1)),
						chunkOrigin[2] + int32(getAxis(l, 2)),
					}
					neighborWorld[0] += dir.vec[0]
					neighborWorld[1] += dir.vec[1]
					neighborWorld[2] += dir.vec[2]

					if world.BlockAt(neighborWorld) != Air {
						mask[idx] = -1
					} else {
						mask[idx] = int32(blk)
					}
				}
			}

			mergeMaskIntoQuads(mask, width, height, s, dir, colorOf, &result)
		}
	}

	return result
}

// mergeMaskIntoQuads greedily merges a filled 2D mask into maximal
// rectangles and emits one quad per rectangle. Horizontal growth is
// attempted before vertical growth; the mask is consumed (cleared) as
// rectangles are emitted.
func mergeMaskIntoQuads(mask []int32, width, height, slice int, dir faceDir, colorOf BlockColorFunc, result *MeshResult) {
	for j := 0; j < height; j++ {
		i := 0
		for i < width {
			id := mask[j*width+i]
			if id < 0 {
				i++
				continue
			}

			w := 1
			for i+w < width && mask[j*width+i+w] == id {
				w++
			}

			h := 1
		rows:
			for j+h < height {
				for k := 0; k < w; k++ {
					if mask[(j+h)*width+i+k] != id {
						break rows
					}
				}
				h++
			}

			for dy := 0; dy < h; dy++ {
				for dx := 0; dx < w; dx++ {
					mask[(j+dy)*width+i+dx] = -1
				}
			}

			emitQuad(dir, slice, i, j, w, h, Block(id), colorOf, result)
			i += w
		}
	}
}

func emitQuad(dir faceDir, slice, u, v, w, h int, id Block, colorOf BlockColorFunc, result *MeshResult) {
	facePrimary := float32(slice)
	if dir.vec[dir.primaryAxis] > 0 {
		facePrimary = float32(slice + 1)
	}

	corners := [4][2]float32{
		{float32(u), float32(v)},
		{float32(u + w), float32(v)},
		{float32(u + w), float32(v + h)},
		{float32(u), float32(v + h)},
	}
	uvs := [4][2]float32{
		{0, 0},
		{float32(w), 0},
		{float32(w), float32(h)},
		{0, float32(h)},
	}

	var positions [4][3]float32
	for k, c := range corners {
		var p [3]float32
		setAxisF(&p, dir.primaryAxis, facePrimary)
		setAxisF(&p, dir.uAxis, c[0])
		setAxisF(&p, dir.vAxis, c[1])
		positions[k] = p
	}

	normal := [3]float32{float32(dir.vec[0]), float32(dir.vec[1]), float32(dir.vec[2])}

	e1 := subVec3(positions[1], positions[0])
	e2 := subVec3(positions[2], positions[0])
	if dotVec3(crossVec3(e1, e2), normal) < 0 {
		positions[1], positions[3] = positions[3], positions[1]
		uvs[1], uvs[3] = uvs[3], uvs[1]
	}

	color := [4]float32{1, 1, 1, 1}
	if colorOf != nil {
		color = colorOf(id)
	}

	base := uint32(len(result.Positions))
	for k := 0; k < 4; k++ {
		result.Positions = append(result.Positions, positions[k])
		result.Normals = append(result.Normals, normal)
		result.UVs = append(result.UVs, uvs[k])
		result.Colors = append(result.Colors, color)
	}
	result.Indices = append(result.Indices, base, base+1, base+2, base, base+2, base+3)
}

func subVec3(a, b [3]float32) [3]float32 {
	return [3]float32{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

func crossVec3(a, b [3]float32) [3]float32 {
	return [3]float32{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

func dotVec3(a, b [3]float32) float32 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}
