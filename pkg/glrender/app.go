package glrender

import (
	"fmt"
	"sync"

	"openglhelper"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/voxelstream/voxelstream/pkg/external"
	"github.com/voxelstream/voxelstream/pkg/voxel"
)

// App bundles a window, shader, and free-fly camera into the optional
// graphical driver for cmd/voxelstream: it implements
// external.ViewerPositionSource (via its FlyCamera) and supplies a
// RendererFactory that the world can use to acquire one ChunkRenderer per
// chunk. It wires the window's resize, cursor-move, and scroll callbacks
// to the camera, captures the cursor for mouse-look, and treats Escape as
// a request to close the window.
type App struct {
	Window *openglhelper.Window
	Shader *openglhelper.Shader
	Camera *FlyCamera

	mu        sync.Mutex
	renderers map[voxel.ChunkCoord]*trackedRenderer

	lastTime float64
}

// NewApp creates a window and compiles the embedded shader program.
// vsync mirrors internal/config's vsync setting.
func NewApp(width, height int, title string, vsync bool) (*App, error) {
	window, err := openglhelper.NewWindow(width, height, title, vsync)
	if err != nil {
		return nil, fmt.Errorf("glrender: create window: %w", err)
	}

	shader, err := openglhelper.NewShader(vertexShaderSource, fragmentShaderSource)
	if err != nil {
		window.Close()
		return nil, fmt.Errorf("glrender: compile shader: %w", err)
	}

	camera := NewFlyCamera(mgl32.Vec3{0, 80, 0})
	camera.UpdateProjectionMatrix(width, height)
	window.SetResizeCallback(camera.UpdateProjectionMatrix)
	window.CaptureCursor()
	window.SetCursorMoveCallback(camera.HandleMouseMovement)
	window.SetScrollCallback(camera.HandleMouseScroll)

	return &App{
		Window:    window,
		Shader:    shader,
		Camera:    camera,
		renderers: make(map[voxel.ChunkCoord]*trackedRenderer),
	}, nil
}

// RendererFactory satisfies world.RendererFactory: every chunk acquires a
// ChunkRenderer bound to this app's shader on first mesh emission,
// translated to its world-space origin.
func (a *App) RendererFactory(dims voxel.Dims) func(pos voxel.ChunkCoord) external.RendererHandle {
	return func(pos voxel.ChunkCoord) external.RendererHandle {
		originWorld := voxel.ChunkToWorldVec3(pos, dims)
		tr := &trackedRenderer{ChunkRenderer: NewChunkRenderer(a.Shader, originWorld), pos: pos, app: a}
		a.mu.Lock()
		a.renderers[pos] = tr
		a.mu.Unlock()
		return tr
	}
}

func (a *App) remove(pos voxel.ChunkCoord) {
	a.mu.Lock()
	delete(a.renderers, pos)
	a.mu.Unlock()
}

// BeginFrame polls input events, honors a pending Escape key-quit
// request, clears the framebuffer, and returns the elapsed time since
// the previous frame, for driving camera movement.
func (a *App) BeginFrame() float64 {
	a.Window.PollEvents()
	if a.Window.GetKeyState(KeyEscape) == Press {
		a.Window.RequestClose()
	}
	a.Window.Clear(mgl32.Vec4{0.53, 0.8, 0.92, 1})

	now := glfw.GetTime()
	dt := now - a.lastTime
	a.lastTime = now
	return dt
}

// DrawChunks issues one draw call per chunk renderer currently registered.
func (a *App) DrawChunks() {
	view := a.Camera.ViewMatrix()
	proj := a.Camera.ProjectionMatrix()

	a.mu.Lock()
	renderers := make([]*trackedRenderer, 0, len(a.renderers))
	for _, r := range a.renderers {
		renderers = append(renderers, r)
	}
	a.mu.Unlock()

	for _, r := range renderers {
		r.Draw(view, proj)
	}
}

// EndFrame swaps buffers; the window is ready for the next BeginFrame.
func (a *App) EndFrame() {
	a.Window.SwapBuffers()
}

// ShouldClose reports whether the window has received a close request.
func (a *App) ShouldClose() bool {
	return a.Window.ShouldClose()
}

// Close releases the window and shader.
func (a *App) Close() {
	a.Shader.Delete()
	a.Window.Close()
}

// trackedRenderer removes itself from the app's registry whenever its mesh
// is cleared (an emptied mesh or a chunk unload) and re-registers on its
// next SetMesh, so stale entries never accumulate across load/unload
// cycles at the same position.
type trackedRenderer struct {
	*ChunkRenderer
	pos voxel.ChunkCoord
	app *App
}

func (t *trackedRenderer) Clear() {
	t.ChunkRenderer.Clear()
	t.app.remove(t.pos)
}

// SetMesh re-registers the renderer, so a chunk whose mesh was cleared
// because it became empty is drawn again once it has geometry.
func (t *trackedRenderer) SetMesh(positions, normals [][3]float32, uvs [][2]float32, colors [][4]float32, indices []uint32) {
	t.ChunkRenderer.SetMesh(positions, normals, uvs, colors, indices)
	t.app.mu.Lock()
	t.app.renderers[t.pos] = t
	t.app.mu.Unlock()
}
