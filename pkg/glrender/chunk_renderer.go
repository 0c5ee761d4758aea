// Package glrender is a concrete, optional implementation of the
// renderer and viewer-position-source collaborator interfaces, built on
// the go-gl ecosystem. Nothing in pkg/voxel, pkg/world, or pkg/persistence
// imports this package.
package glrender

import (
	"openglhelper"

	"github.com/go-gl/mathgl/mgl32"
)

const vertexStrideFloats = 3 + 3 + 2 + 4 // position, normal, uv, color
const vertexStrideBytes = vertexStrideFloats * 4

var chunkVertexAttrs = []openglhelper.VertexAttr{
	{Location: 0, Size: 3, Offset: 0},
	{Location: 1, Size: 3, Offset: 3 * 4},
	{Location: 2, Size: 2, Offset: 6 * 4},
	{Location: 3, Size: 4, Offset: 8 * 4},
}

// ChunkRenderer implements external.RendererHandle by rebuilding one
// interleaved VBO/EBO per chunk whenever SetMesh is called, and issuing
// one draw call per chunk from Draw.
type ChunkRenderer struct {
	origin mgl32.Vec3
	shader *openglhelper.Shader
	mesh   *openglhelper.Mesh
}

// NewChunkRenderer returns a renderer for one chunk, bound to the given
// (shared) shader and translating the chunk's geometry to its world-space
// origin at draw time. App.RendererFactory calls it once per chunk.
func NewChunkRenderer(shader *openglhelper.Shader, origin mgl32.Vec3) *ChunkRenderer {
	return &ChunkRenderer{shader: shader, origin: origin}
}

// SetMesh implements external.RendererHandle.
func (r *ChunkRenderer) SetMesh(positions, normals [][3]float32, uvs [][2]float32, colors [][4]float32, indices []uint32) {
	vertices := make([]float32, 0, len(positions)*vertexStrideFloats)
	for i := range positions {
		vertices = append(vertices,
			positions[i][0], positions[i][1], positions[i][2],
			normals[i][0], normals[i][1], normals[i][2],
			uvs[i][0], uvs[i][1],
			colors[i][0], colors[i][1], colors[i][2], colors[i][3],
		)
	}

	if r.mesh == nil {
		r.mesh = openglhelper.NewMesh(vertices, indices, vertexStrideBytes, chunkVertexAttrs)
		return
	}
	r.mesh.Update(vertices, indices)
}

// Clear implements external.RendererHandle.
func (r *ChunkRenderer) Clear() {
	if r.mesh != nil {
		r.mesh.Delete()
		r.mesh = nil
	}
}

// Draw renders this chunk's current mesh, translated to its world origin,
// using view and projection matrices supplied by the caller's camera.
func (r *ChunkRenderer) Draw(view, projection mgl32.Mat4) {
	if r.mesh == nil {
		return
	}
	model := mgl32.Translate3D(r.origin.X(), r.origin.Y(), r.origin.Z())
	r.shader.Use()
	r.shader.SetMat4("model", model)
	r.shader.SetMat4("view", view)
	r.shader.SetMat4("projection", projection)
	r.mesh.Draw()
}

// Delete releases the mesh's GPU resources, independent of shader
// lifetime (the shader is shared across chunks).
func (r *ChunkRenderer) Delete() {
	r.Clear()
}
