package camera

import (
	"math"

	"github.com/Carmen-Shannon/oxy-flycam/common"
	"github.com/go-gl/mathgl/mgl32"
)

// Movement is an abstract camera movement direction, decoupled from any window system's key codes.
type Movement int

const (
	// MovementForward moves the camera along its front vector.
	MovementForward Movement = iota

	// MovementBackward moves the camera against its front vector.
	MovementBackward

	// MovementLeft moves the camera against its right vector.
	MovementLeft

	// MovementRight moves the camera along its right vector.
	MovementRight
)

// Default camera values.
const (
	DefaultYaw              float32 = -90.0
	DefaultPitch            float32 = 0.0
	DefaultMovementSpeed    float32 = 2.5
	DefaultMouseSensitivity float32 = 0.1
	DefaultZoom             float32 = 45.0

	// MinZoom and MaxZoom bound the field of view in degrees.
	MinZoom float32 = 1.0
	MaxZoom float32 = 45.0

	// PitchLimit is the absolute pitch bound, in degrees, applied by constrained mouse updates.
	// Looking exactly along world up would make cross(front, worldUp) degenerate.
	PitchLimit float32 = 89.0
)

type cameraImpl struct {
	position mgl32.Vec3
	front    mgl32.Vec3
	up       mgl32.Vec3
	right    mgl32.Vec3
	worldUp  mgl32.Vec3

	// Euler angles in degrees
	yaw   float32
	pitch float32

	movementSpeed    float32
	mouseSensitivity float32
	zoom             float32
}

// Camera is a first-person fly camera driven by Euler angles.
// It processes abstract input (movement directions, mouse offsets, scroll offsets) and
// produces the view matrix and field of view the renderer needs each frame.
//
// A Camera is not safe for concurrent use. It is meant to be mutated and read by the
// single thread that runs the frame loop.
type Camera interface {
	// ViewMatrix returns the look-at matrix from Position toward Position+Front using Up.
	//
	// Returns:
	//   - mgl32.Mat4: the column-major view matrix
	ViewMatrix() mgl32.Mat4

	// ProjectionMatrix returns a perspective matrix using the current zoom as vertical field of view.
	// Depth maps into the WebGPU clip range [0, 1].
	//
	// Parameters:
	//   - aspect: viewport aspect ratio (width / height)
	//   - near: near clipping plane distance
	//   - far: far clipping plane distance
	//
	// Returns:
	//   - mgl32.Mat4: the column-major projection matrix
	ProjectionMatrix(aspect, near, far float32) mgl32.Mat4

	// Uniform builds the GPU camera uniform for the current state.
	//
	// Parameters:
	//   - aspect: viewport aspect ratio (width / height)
	//   - near: near clipping plane distance
	//   - far: far clipping plane distance
	//
	// Returns:
	//   - GPUCameraUniform: view, projection and position ready for upload
	Uniform(aspect, near, far float32) GPUCameraUniform

	// ProcessKeyboard moves the camera along its front or right vector by MovementSpeed * deltaTime.
	// Orientation is unchanged and the position is not bounded.
	//
	// Parameters:
	//   - direction: the movement direction
	//   - deltaTime: seconds elapsed since the previous frame
	ProcessKeyboard(direction Movement, deltaTime float32)

	// ProcessMouseMovement applies a mouse offset, scaled by MouseSensitivity, to yaw and pitch
	// and rebuilds the orientation basis.
	//
	// Parameters:
	//   - xoffset: horizontal offset in pixels, added to yaw
	//   - yoffset: vertical offset in pixels, added to pitch (callers usually invert screen y)
	//   - constrainPitch: clamp pitch to [-PitchLimit, PitchLimit] when true
	ProcessMouseMovement(xoffset, yoffset float32, constrainPitch bool)

	// ProcessMouseScroll subtracts yoffset from zoom and clamps it to [MinZoom, MaxZoom].
	//
	// Parameters:
	//   - yoffset: vertical scroll offset
	ProcessMouseScroll(yoffset float32)

	// Zoom returns the field of view in degrees.
	//
	// Returns:
	//   - float32: zoom in degrees, within [MinZoom, MaxZoom]
	Zoom() float32

	// Position returns the world-space camera position.
	//
	// Returns:
	//   - mgl32.Vec3: camera position
	Position() mgl32.Vec3

	// Front returns the unit look direction.
	//
	// Returns:
	//   - mgl32.Vec3: front vector
	Front() mgl32.Vec3

	// Up returns the camera's unit up vector.
	//
	// Returns:
	//   - mgl32.Vec3: up vector
	Up() mgl32.Vec3

	// Right returns the camera's unit right vector.
	//
	// Returns:
	//   - mgl32.Vec3: right vector
	Right() mgl32.Vec3

	// WorldUp returns the up reference fixed at construction.
	//
	// Returns:
	//   - mgl32.Vec3: world up vector
	WorldUp() mgl32.Vec3

	// Yaw returns the yaw angle in degrees.
	//
	// Returns:
	//   - float32: yaw in degrees
	Yaw() float32

	// Pitch returns the pitch angle in degrees.
	//
	// Returns:
	//   - float32: pitch in degrees
	Pitch() float32

	// MovementSpeed returns the movement speed in world units per second.
	//
	// Returns:
	//   - float32: movement speed
	MovementSpeed() float32

	// SetMovementSpeed sets the movement speed in world units per second.
	//
	// Parameters:
	//   - speed: new movement speed
	SetMovementSpeed(speed float32)

	// MouseSensitivity returns the multiplier applied to raw mouse offsets.
	//
	// Returns:
	//   - float32: mouse sensitivity
	MouseSensitivity() float32

	// SetMouseSensitivity sets the multiplier applied to raw mouse offsets.
	//
	// Parameters:
	//   - sensitivity: new mouse sensitivity
	SetMouseSensitivity(sensitivity float32)
}

var _ Camera = &cameraImpl{}

// NewCamera creates a fly camera at the origin looking down -Z with world up +Y,
// then applies the options and builds the orientation basis.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		position:         mgl32.Vec3{0, 0, 0},
		front:            mgl32.Vec3{0, 0, -1},
		worldUp:          mgl32.Vec3{0, 1, 0},
		yaw:              DefaultYaw,
		pitch:            DefaultPitch,
		movementSpeed:    DefaultMovementSpeed,
		mouseSensitivity: DefaultMouseSensitivity,
		zoom:             DefaultZoom,
	}
	for _, option := range options {
		option(c)
	}
	c.updateVectors()
	return c
}

// NewCameraFromScalars creates a fly camera from scalar position, world up and Euler angles.
// It yields the same state as NewCamera with the equivalent vector options.
//
// Parameters:
//   - posX, posY, posZ: world-space position
//   - upX, upY, upZ: world up vector
//   - yaw, pitch: Euler angles in degrees
//   - options: additional functional options (speed, sensitivity, zoom)
//
// Returns:
//   - Camera: the newly created camera
func NewCameraFromScalars(posX, posY, posZ, upX, upY, upZ, yaw, pitch float32, options ...CameraBuilderOption) Camera {
	base := []CameraBuilderOption{
		WithPosition(mgl32.Vec3{posX, posY, posZ}),
		WithWorldUp(mgl32.Vec3{upX, upY, upZ}),
		WithYaw(yaw),
		WithPitch(pitch),
	}
	return NewCamera(append(base, options...)...)
}

func (c *cameraImpl) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.position, c.position.Add(c.front), c.up)
}

func (c *cameraImpl) ProjectionMatrix(aspect, near, far float32) mgl32.Mat4 {
	return common.Perspective(mgl32.DegToRad(c.zoom), aspect, near, far)
}

func (c *cameraImpl) Uniform(aspect, near, far float32) GPUCameraUniform {
	return GPUCameraUniform{
		View:           c.ViewMatrix(),
		Projection:     c.ProjectionMatrix(aspect, near, far),
		CameraPosition: c.position,
	}
}

func (c *cameraImpl) ProcessKeyboard(direction Movement, deltaTime float32) {
	velocity := c.movementSpeed * deltaTime
	switch direction {
	case MovementForward:
		c.position = c.position.Add(c.front.Mul(velocity))
	case MovementBackward:
		c.position = c.position.Sub(c.front.Mul(velocity))
	case MovementLeft:
		c.position = c.position.Sub(c.right.Mul(velocity))
	case MovementRight:
		c.position = c.position.Add(c.right.Mul(velocity))
	}
}

func (c *cameraImpl) ProcessMouseMovement(xoffset, yoffset float32, constrainPitch bool) {
	c.yaw += xoffset * c.mouseSensitivity
	c.pitch += yoffset * c.mouseSensitivity

	if constrainPitch {
		c.pitch = common.Clamp(c.pitch, -PitchLimit, PitchLimit)
	}

	c.updateVectors()
}

func (c *cameraImpl) ProcessMouseScroll(yoffset float32) {
	c.zoom = common.Clamp(c.zoom-yoffset, MinZoom, MaxZoom)
}

func (c *cameraImpl) Zoom() float32 {
	return c.zoom
}

func (c *cameraImpl) Position() mgl32.Vec3 {
	return c.position
}

func (c *cameraImpl) Front() mgl32.Vec3 {
	return c.front
}

func (c *cameraImpl) Up() mgl32.Vec3 {
	return c.up
}

func (c *cameraImpl) Right() mgl32.Vec3 {
	return c.right
}

func (c *cameraImpl) WorldUp() mgl32.Vec3 {
	return c.worldUp
}

func (c *cameraImpl) Yaw() float32 {
	return c.yaw
}

func (c *cameraImpl) Pitch() float32 {
	return c.pitch
}

func (c *cameraImpl) MovementSpeed() float32 {
	return c.movementSpeed
}

func (c *cameraImpl) SetMovementSpeed(speed float32) {
	c.movementSpeed = speed
}

func (c *cameraImpl) MouseSensitivity() float32 {
	return c.mouseSensitivity
}

func (c *cameraImpl) SetMouseSensitivity(sensitivity float32) {
	c.mouseSensitivity = sensitivity
}

// updateVectors rebuilds front, right and up from yaw and pitch.
// Every orientation change goes through here so the basis stays orthonormal.
func (c *cameraImpl) updateVectors() {
	yaw := float64(mgl32.DegToRad(c.yaw))
	pitch := float64(mgl32.DegToRad(c.pitch))

	c.front = mgl32.Vec3{
		float32(math.Cos(yaw) * math.Cos(pitch)),
		float32(math.Sin(pitch)),
		float32(math.Sin(yaw) * math.Cos(pitch)),
	}.Normalize()
	c.right = c.front.Cross(c.worldUp).Normalize()
	c.up = c.right.Cross(c.front).Normalize()
}
