package voxel

// Block is a single voxel cell identifier. Zero is air: empty, invisible,
// not meshed. Values 1..255 are opaque solid cubes distinguished only by
// id; no other attribute is stored here.
type Block uint8

// Air is the empty block value.
const Air Block = 0

// IsAir reports whether b is the empty block.
func (b Block) IsAir() bool {
	return b == Air
}

// A handful of named ids are provided for demos and tests; the engine
// itself never branches on anything but the zero value.
const (
	Stone Block = iota + 1
	Dirt
	Grass
	Sand
	Water
	Glass
)
