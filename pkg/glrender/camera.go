package glrender

import (
	"math"

	"openglhelper"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
)

// FlyCamera is the windowed driver's viewpoint: WASD plus space/shift
// along the world-up axis for movement, mouse-look for orientation, and
// scroll for zoom. It exists purely to drive
// external.ViewerPositionSource — a diagnostic way to fly around the
// streamed world, not a game camera with aim targets or scripted paths.
type FlyCamera struct {
	position mgl32.Vec3
	worldUp  mgl32.Vec3
	front    mgl32.Vec3
	up       mgl32.Vec3
	right    mgl32.Vec3

	yaw   float32
	pitch float32
	fov   float32

	moveSpeed   float32
	rotateSpeed float32

	lastX      float64
	lastY      float64
	firstMouse bool

	projection mgl32.Mat4
	width      int
	height     int
}

// NewFlyCamera creates a camera at position, facing -Z, with sensible
// movement and projection defaults.
func NewFlyCamera(position mgl32.Vec3) *FlyCamera {
	camera := &FlyCamera{
		position:    position,
		worldUp:     mgl32.Vec3{0, 1, 0},
		front:       mgl32.Vec3{0, 0, -1},
		yaw:         DefaultYaw,
		pitch:       DefaultPitch,
		fov:         DefaultFOV,
		moveSpeed:   DefaultMoveSpeed,
		rotateSpeed: DefaultRotateSpeed,
		firstMouse:  true,
		width:       800,
		height:      600,
	}

	camera.updateCameraVectors()
	camera.updateProjectionMatrix()

	return camera
}

func (c *FlyCamera) updateCameraVectors() {
	front := mgl32.Vec3{
		float32(math.Cos(float64(mgl32.DegToRad(c.yaw))) * math.Cos(float64(mgl32.DegToRad(c.pitch)))),
		float32(math.Sin(float64(mgl32.DegToRad(c.pitch)))),
		float32(math.Sin(float64(mgl32.DegToRad(c.yaw))) * math.Cos(float64(mgl32.DegToRad(c.pitch)))),
	}
	c.front = front.Normalize()

	c.right = c.front.Cross(c.worldUp).Normalize()
	c.up = c.right.Cross(c.front).Normalize()
}

func (c *FlyCamera) updateProjectionMatrix() {
	aspect := float32(c.width) / float32(c.height)
	c.projection = mgl32.Perspective(mgl32.DegToRad(c.fov), aspect, 0.1, 1000.0)
}

// UpdateProjectionMatrix recomputes the projection matrix for a new
// framebuffer size. App wires this into Window.SetResizeCallback so the
// camera's aspect ratio always matches the actual window, instead of
// staying pinned to its construction-time size.
func (c *FlyCamera) UpdateProjectionMatrix(width, height int) {
	c.width = width
	c.height = height
	c.updateProjectionMatrix()
}

// ViewMatrix returns the current view matrix.
func (c *FlyCamera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.position, c.position.Add(c.front), c.up)
}

// ProjectionMatrix returns the current projection matrix.
func (c *FlyCamera) ProjectionMatrix() mgl32.Mat4 {
	return c.projection
}

// ViewerPosition implements external.ViewerPositionSource.
func (c *FlyCamera) ViewerPosition() [3]float64 {
	return [3]float64{float64(c.position[0]), float64(c.position[1]), float64(c.position[2])}
}

// ProcessKeyboardInput moves the camera along its own front/right axes
// and the world-up axis in response to the currently pressed movement keys, scaled by
// deltaTime so speed is frame-rate independent.
func (c *FlyCamera) ProcessKeyboardInput(deltaTime float32, window *openglhelper.Window) {
	speed := c.moveSpeed * deltaTime

	if window.GetKeyState(KeyW) == Press {
		c.position = c.position.Add(c.front.Mul(speed))
	}
	if window.GetKeyState(KeyS) == Press {
		c.position = c.position.Sub(c.front.Mul(speed))
	}
	if window.GetKeyState(KeyA) == Press {
		c.position = c.position.Sub(c.right.Mul(speed))
	}
	if window.GetKeyState(KeyD) == Press {
		c.position = c.position.Add(c.right.Mul(speed))
	}
	if window.GetKeyState(KeySpace) == Press {
		c.position = c.position.Add(c.worldUp.Mul(speed))
	}
	if window.GetKeyState(glfw.KeyLeftShift) == Press {
		c.position = c.position.Sub(c.worldUp.Mul(speed))
	}
}

// HandleMouseMovement updates yaw/pitch from a cursor-move event. App
// wires this into Window.SetCursorMoveCallback after capturing the
// cursor, so xpos/ypos arrive in window-space pixels. The first callback
// after capture only primes lastX/lastY, since there is no prior
// position to diff against yet.
func (c *FlyCamera) HandleMouseMovement(xpos, ypos float64) {
	if c.firstMouse {
		c.lastX = xpos
		c.lastY = ypos
		c.firstMouse = false
		return
	}

	xoffset := float32(xpos-c.lastX) * c.rotateSpeed
	yoffset := float32(c.lastY-ypos) * c.rotateSpeed // reversed: y grows downward in window space
	c.lastX = xpos
	c.lastY = ypos

	c.yaw += xoffset
	c.pitch += yoffset
	if c.pitch > MaxPitch {
		c.pitch = MaxPitch
	}
	if c.pitch < MinPitch {
		c.pitch = MinPitch
	}

	c.updateCameraVectors()
}

// HandleMouseScroll zooms by narrowing or widening the field of view.
// App wires this into Window.SetScrollCallback.
func (c *FlyCamera) HandleMouseScroll(yoffset float64) {
	c.fov -= float32(yoffset)
	if c.fov < MinFOV {
		c.fov = MinFOV
	}
	if c.fov > MaxFOV {
		c.fov = MaxFOV
	}
	c.updateProjectionMatrix()
}
