// Package external declares the collaborator interfaces the core voxel
// engine consumes but never implements: the rendering backend, the
// physics/collision backend, the viewer position source, the block color
// hook, and the filesystem. Apart from the no-op NullRenderer and
// NullCollider in this package, concrete implementations (pkg/glrender,
// an os-backed filesystem in pkg/persistence) live outside this package
// and outside pkg/voxel and pkg/world.
package external

import "github.com/voxelstream/voxelstream/pkg/voxel"

// RendererHandle and ColliderHandle are aliased from pkg/voxel, whose
// Chunk type is the one place that actually holds these handles. Aliasing
// here keeps the five-interface contract of this package documented in
// one place without introducing an import cycle between voxel and
// external.
type RendererHandle = voxel.RendererHandle

// ColliderHandle is documented above RendererHandle.
type ColliderHandle = voxel.ColliderHandle

// BlockColorFunc is the color_of(id) hook used by the mesher.
type BlockColorFunc = voxel.BlockColorFunc

// ViewerPositionSource returns a world-space position each tick. The
// streaming controller derives the viewer's chunk coordinate from it.
type ViewerPositionSource interface {
	ViewerPosition() [3]float64
}

// FileSystem abstracts directory creation, existence checks, and file
// read/write so persistence can be tested without touching disk.
type FileSystem interface {
	MkdirAll(path string) error
	Exists(path string) (bool, error)
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte) error
}
