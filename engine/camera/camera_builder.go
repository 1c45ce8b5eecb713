package camera

import (
	"github.com/Carmen-Shannon/oxy-flycam/common"
	"github.com/go-gl/mathgl/mgl32"
)

// CameraBuilderOption is a functional option for configuring a Camera.
// The orientation basis is rebuilt once after all options are applied.
type CameraBuilderOption func(*cameraImpl)

// WithPosition sets the camera's world-space position.
//
// Parameters:
//   - position: world-space coordinates
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's position
func WithPosition(position mgl32.Vec3) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.position = position
	}
}

// WithWorldUp sets the world up reference used to rebuild the right and up vectors.
// It cannot be changed after construction.
//
// Parameters:
//   - up: world up vector
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's world up vector
func WithWorldUp(up mgl32.Vec3) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.worldUp = up
	}
}

// WithYaw sets the initial yaw in degrees.
//
// Parameters:
//   - yaw: horizontal angle in degrees (-90 looks down -Z)
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's yaw
func WithYaw(yaw float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.yaw = yaw
	}
}

// WithPitch sets the initial pitch in degrees. The value is stored as given; only mouse
// updates apply the pitch constraint.
//
// Parameters:
//   - pitch: vertical angle in degrees
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's pitch
func WithPitch(pitch float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.pitch = pitch
	}
}

// WithMovementSpeed sets the keyboard movement speed.
//
// Parameters:
//   - speed: world units per second
//
// Returns:
//   - CameraBuilderOption: a function that sets the movement speed
func WithMovementSpeed(speed float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.movementSpeed = speed
	}
}

// WithMouseSensitivity sets the multiplier applied to raw mouse offsets.
//
// Parameters:
//   - sensitivity: degrees per pixel
//
// Returns:
//   - CameraBuilderOption: a function that sets the mouse sensitivity
func WithMouseSensitivity(sensitivity float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.mouseSensitivity = sensitivity
	}
}

// WithZoom sets the initial field of view, clamped to [MinZoom, MaxZoom].
//
// Parameters:
//   - zoom: field of view in degrees
//
// Returns:
//   - CameraBuilderOption: a function that sets the zoom
func WithZoom(zoom float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.zoom = common.Clamp(zoom, MinZoom, MaxZoom)
	}
}
