package scene

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithActive sets whether the scene is active. Scenes start active.
//
// Parameters:
//   - active: whether the scene is active
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithActive(active bool) SceneBuilderOption {
	return func(s *scene) {
		s.active = active
	}
}

// WithInstances sets the initial instances.
//
// Parameters:
//   - instances: the instances to draw
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithInstances(instances ...Instance) SceneBuilderOption {
	return func(s *scene) {
		s.instances = append(s.instances[:0:0], instances...)
	}
}

// WithWorkers sets the number of worker goroutines that compute model matrices.
// Defaults to runtime.NumCPU()-1.
//
// Parameters:
//   - n: the number of workers (minimum 1)
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithWorkers(n int) SceneBuilderOption {
	return func(s *scene) {
		s.workers = max(n, 1)
	}
}

// WithNearFar sets the projection clip planes. Defaults are 0.1 and 100.
//
// Parameters:
//   - near: near plane distance (> 0)
//   - far: far plane distance (> near)
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithNearFar(near, far float32) SceneBuilderOption {
	return func(s *scene) {
		s.near = near
		s.far = far
	}
}

// WithCulling enables or disables CPU frustum culling. Enabled by default.
//
// Parameters:
//   - enabled: true to skip instances outside the view frustum
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithCulling(enabled bool) SceneBuilderOption {
	return func(s *scene) {
		s.culling = enabled
	}
}
