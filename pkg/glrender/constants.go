package glrender

import (
	"github.com/go-gl/glfw/v3.3/glfw"
)

// Movement keys recognized by FlyCamera.ProcessKeyboardInput, and the
// quit key App checks on every BeginFrame.
const (
	KeyW      = glfw.KeyW
	KeyA      = glfw.KeyA
	KeyS      = glfw.KeyS
	KeyD      = glfw.KeyD
	KeySpace  = glfw.KeySpace
	KeyEscape = glfw.KeyEscape

	Press = glfw.Press
)

// FlyCamera tuning defaults.
const (
	DefaultMoveSpeed   = 10.0
	DefaultRotateSpeed = 0.1

	DefaultYaw   = -90.0 // facing -Z
	DefaultPitch = 0.0

	DefaultFOV = 45.0
	MinFOV     = 1.0
	MaxFOV     = 45.0

	MaxPitch = 89.0
	MinPitch = -89.0
)
