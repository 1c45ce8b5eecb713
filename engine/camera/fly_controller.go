package camera

import (
	"github.com/Carmen-Shannon/oxy-flycam/common"
	"github.com/Carmen-Shannon/oxy-flycam/engine/input"
)

type flyControllerImpl struct {
	camera Camera

	bindings       map[uint32]Movement
	invertY        bool
	constrainPitch bool
}

// FlyController maps a frame's input snapshot onto a Camera's three input channels:
// held keys drive ProcessKeyboard, the accumulated cursor delta drives ProcessMouseMovement
// and the accumulated scroll drives ProcessMouseScroll.
type FlyController interface {
	// Update applies one frame of input to the camera.
	//
	// Parameters:
	//   - snapshot: input accumulated since the previous frame
	//   - deltaTime: seconds elapsed since the previous frame
	Update(snapshot input.Snapshot, deltaTime float32)

	// Camera returns the controlled camera.
	//
	// Returns:
	//   - Camera: the camera receiving input
	Camera() Camera

	// Bindings returns a copy of the key to movement bindings.
	//
	// Returns:
	//   - map[uint32]Movement: bindings keyed by virtual key code
	Bindings() map[uint32]Movement
}

var _ FlyController = &flyControllerImpl{}

// NewFlyController creates a controller for cam with WASD bindings, screen-y inversion
// (moving the mouse up pitches up) and pitch constraint enabled.
//
// Parameters:
//   - cam: the camera to drive
//   - options: functional options to configure the controller
//
// Returns:
//   - FlyController: the newly created controller
func NewFlyController(cam Camera, options ...FlyControllerOption) FlyController {
	fc := &flyControllerImpl{
		camera: cam,
		bindings: map[uint32]Movement{
			common.KeyW: MovementForward,
			common.KeyS: MovementBackward,
			common.KeyA: MovementLeft,
			common.KeyD: MovementRight,
		},
		constrainPitch: true,
	}
	for _, option := range options {
		option(fc)
	}
	return fc
}

func (fc *flyControllerImpl) Update(snapshot input.Snapshot, deltaTime float32) {
	deltaTime = max(deltaTime, 0)

	for key, pressed := range snapshot.Pressed {
		if !pressed {
			continue
		}
		if dir, ok := fc.bindings[key]; ok {
			fc.camera.ProcessKeyboard(dir, deltaTime)
		}
	}

	if snapshot.MouseDX != 0 || snapshot.MouseDY != 0 {
		yoffset := -snapshot.MouseDY
		if fc.invertY {
			yoffset = snapshot.MouseDY
		}
		fc.camera.ProcessMouseMovement(snapshot.MouseDX, yoffset, fc.constrainPitch)
	}

	if snapshot.Scroll != 0 {
		fc.camera.ProcessMouseScroll(snapshot.Scroll)
	}
}

func (fc *flyControllerImpl) Camera() Camera {
	return fc.camera
}

func (fc *flyControllerImpl) Bindings() map[uint32]Movement {
	cp := make(map[uint32]Movement, len(fc.bindings))
	for k, v := range fc.bindings {
		cp[k] = v
	}
	return cp
}
