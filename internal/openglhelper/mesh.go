package openglhelper

import (
	"unsafe"

	"github.com/go-gl/gl/v4.6-core/gl"
)

// VertexAttr describes one vertex attribute's layout within an
// interleaved vertex buffer: its shader location, component count, and
// byte offset from the start of each vertex.
type VertexAttr struct {
	Location uint32
	Size     int32
	Offset   int
}

// Mesh is a VAO/VBO/EBO triple for one interleaved-float-vertex draw call.
// Its vertex layout is caller-defined via VertexAttr, so it can back
// meshes with different attribute sets without a compiled-in layout.
type Mesh struct {
	vao        *VertexArrayObject
	vbo        *BufferObject
	ebo        *BufferObject
	indexCount int32
}

// NewMesh uploads vertices (interleaved floats, stride bytes apart) and
// indices, configuring one vertex attribute per entry in attrs.
func NewMesh(vertices []float32, indices []uint32, stride int32, attrs []VertexAttr) *Mesh {
	vao := NewVAO()
	vao.Bind()

	vbo := NewBufferObject(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), DynamicDraw)
	ebo := NewBufferObject(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, gl.Ptr(indices), DynamicDraw)

	for _, a := range attrs {
		vao.SetVertexAttribPointer(a.Location, a.Size, gl.FLOAT, false, stride, a.Offset)
	}

	vao.Unbind()

	return &Mesh{vao: vao, vbo: vbo, ebo: ebo, indexCount: int32(len(indices))}
}

// Update replaces the mesh's vertex and index data, re-allocating each
// underlying buffer whose new data differs in size from its current one.
func (m *Mesh) Update(vertices []float32, indices []uint32) {
	m.vbo.UpdateData(len(vertices)*4, gl.Ptr(vertices))
	m.ebo.UpdateData(len(indices)*4, gl.Ptr(indices))
	m.indexCount = int32(len(indices))
}

// Draw issues one indexed draw call for the mesh's current contents.
func (m *Mesh) Draw() {
	if m.indexCount == 0 {
		return
	}
	m.vao.Bind()
	gl.DrawElements(gl.TRIANGLES, m.indexCount, gl.UNSIGNED_INT, unsafe.Pointer(nil))
	m.vao.Unbind()
}

// Delete releases all GPU resources held by the mesh.
func (m *Mesh) Delete() {
	m.vao.Delete()
	m.vbo.Delete()
	m.ebo.Delete()
}
