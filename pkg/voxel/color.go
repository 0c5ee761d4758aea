package voxel

// DemoPalette is a BlockColorFunc mapping the named demo block ids to fixed
// RGBA colors. Any id outside the palette (including id 0, which the mesher
// never emits geometry for) reads as opaque white.
func DemoPalette(id Block) [4]float32 {
	switch id {
	case Stone:
		return [4]float32{0.5, 0.5, 0.5, 1}
	case Dirt:
		return [4]float32{0.45, 0.3, 0.15, 1}
	case Grass:
		return [4]float32{0.25, 0.65, 0.2, 1}
	case Sand:
		return [4]float32{0.9, 0.85, 0.55, 1}
	case Water:
		return [4]float32{0.2, 0.4, 0.9, 0.6}
	case Glass:
		return [4]float32{0.8, 0.95, 1.0, 0.35}
	default:
		return [4]float32{1, 1, 1, 1}
	}
}
