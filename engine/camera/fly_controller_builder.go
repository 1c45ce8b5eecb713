package camera

// FlyControllerOption is a functional option for configuring a FlyController.
type FlyControllerOption func(*flyControllerImpl)

// WithKeyBinding binds a virtual key code to a movement direction, replacing any existing
// binding for that key.
//
// Parameters:
//   - keyCode: the virtual key code (see common.Key*)
//   - direction: the movement triggered while the key is held
//
// Returns:
//   - FlyControllerOption: functional option to add the binding
func WithKeyBinding(keyCode uint32, direction Movement) FlyControllerOption {
	return func(fc *flyControllerImpl) {
		fc.bindings[keyCode] = direction
	}
}

// WithClearedBindings removes the default WASD bindings. Combine with WithKeyBinding.
//
// Returns:
//   - FlyControllerOption: functional option to clear bindings
func WithClearedBindings() FlyControllerOption {
	return func(fc *flyControllerImpl) {
		fc.bindings = make(map[uint32]Movement)
	}
}

// WithInvertY passes screen-space y offsets to the camera unchanged, so moving the mouse up pitches down.
//
// Parameters:
//   - invert: true to invert the default look direction
//
// Returns:
//   - FlyControllerOption: functional option to set y inversion
func WithInvertY(invert bool) FlyControllerOption {
	return func(fc *flyControllerImpl) {
		fc.invertY = invert
	}
}

// WithConstrainPitch toggles the pitch clamp applied on mouse movement.
//
// Parameters:
//   - constrain: false lets pitch pass the vertical
//
// Returns:
//   - FlyControllerOption: functional option to set the pitch constraint
func WithConstrainPitch(constrain bool) FlyControllerOption {
	return func(fc *flyControllerImpl) {
		fc.constrainPitch = constrain
	}
}
