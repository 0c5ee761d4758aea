package external

// NullRenderer discards all mesh updates. Used for headless operation and
// tests where no graphics backend is attached.
type NullRenderer struct{}

// SetMesh implements RendererHandle.
func (NullRenderer) SetMesh(positions, normals [][3]float32, uvs [][2]float32, colors [][4]float32, indices []uint32) {
}

// Clear implements RendererHandle.
func (NullRenderer) Clear() {}

// NullCollider discards all collision geometry updates.
type NullCollider struct{}

// SetTriangles implements ColliderHandle.
func (NullCollider) SetTriangles(positions [][3]float32, indices []uint32) {}

// Clear implements ColliderHandle.
func (NullCollider) Clear() {}
