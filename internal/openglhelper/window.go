package openglhelper

import (
	"fmt"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
)

// Window owns the single GLFW window and GL context this engine's
// windowed driver renders into. It exposes what the streaming render
// loop needs (poll, clear, swap) plus the input callbacks FlyCamera
// binds to (resize, cursor move, scroll, key state) — there is no
// resizable-title or raw-GLFW-handle surface, since nothing in this
// driver needs one.
type Window struct {
	glfwWindow *glfw.Window
	width      int
	height     int
	onResize   func(width, height int)
}

// NewWindow creates a GLFW window and OpenGL context sized width x
// height, syncing buffer swaps to the display refresh when vsync is
// true (internal/config's vsync setting).
func NewWindow(width, height int, title string, vsync bool) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize GLFW: %w", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 6)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	glfwWindow, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to create GLFW window: %w", err)
	}

	glfwWindow.MakeContextCurrent()
	if vsync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	version := gl.GoStr(gl.GetString(gl.VERSION))
	fmt.Printf("OpenGL version: %s\n", version)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)

	w := &Window{glfwWindow: glfwWindow, width: width, height: height}
	glfwWindow.SetFramebufferSizeCallback(func(_ *glfw.Window, fbWidth, fbHeight int) {
		w.width = fbWidth
		w.height = fbHeight
		gl.Viewport(0, 0, int32(fbWidth), int32(fbHeight))
		if w.onResize != nil {
			w.onResize(fbWidth, fbHeight)
		}
	})

	return w, nil
}

// SetResizeCallback registers fn to run whenever the framebuffer is
// resized, after the viewport has already been updated. The windowed
// driver uses this to keep the camera's projection matrix matched to
// the window's current aspect ratio.
func (w *Window) SetResizeCallback(fn func(width, height int)) {
	w.onResize = fn
}

// CaptureCursor hides the OS cursor and confines it to the window, the
// mode an FPS-style look camera needs so mouse movement never runs out
// of screen.
func (w *Window) CaptureCursor() {
	w.glfwWindow.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
}

// SetCursorMoveCallback registers fn to run with the cursor's window-space
// position on every mouse-move event.
func (w *Window) SetCursorMoveCallback(fn func(xpos, ypos float64)) {
	w.glfwWindow.SetCursorPosCallback(func(_ *glfw.Window, xpos, ypos float64) {
		fn(xpos, ypos)
	})
}

// SetScrollCallback registers fn to run with the vertical scroll offset
// on every scroll event.
func (w *Window) SetScrollCallback(fn func(yoffset float64)) {
	w.glfwWindow.SetScrollCallback(func(_ *glfw.Window, _, yoffset float64) {
		fn(yoffset)
	})
}

// Clear clears the color and depth buffers with the given color.
func (w *Window) Clear(color mgl32.Vec4) {
	gl.ClearColor(color.X(), color.Y(), color.Z(), color.W())
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// SwapBuffers swaps the front and back buffers.
func (w *Window) SwapBuffers() {
	w.glfwWindow.SwapBuffers()
}

// PollEvents processes pending window and input events.
func (w *Window) PollEvents() {
	glfw.PollEvents()
}

// ShouldClose reports whether the window has received a close request,
// including one raised by RequestClose.
func (w *Window) ShouldClose() bool {
	return w.glfwWindow.ShouldClose()
}

// RequestClose marks the window for closing on the next ShouldClose
// check, without waiting for the OS close button.
func (w *Window) RequestClose() {
	w.glfwWindow.SetShouldClose(true)
}

// Close terminates GLFW and releases the window.
func (w *Window) Close() {
	glfw.Terminate()
}

// GetKeyState returns the current action (press/release/repeat) for key.
func (w *Window) GetKeyState(key glfw.Key) glfw.Action {
	return w.glfwWindow.GetKey(key)
}
