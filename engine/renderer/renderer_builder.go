package renderer

// RendererBuilderOption is a functional option applied to a renderer during construction via NewRenderer.
type RendererBuilderOption func(*renderer)

// WithPresentMode sets the surface present mode.
//
// Parameters:
//   - mode: PresentModeVSync or PresentModeUncapped
//
// Returns:
//   - RendererBuilderOption: a function that applies the present mode option to a renderer
func WithPresentMode(mode PresentMode) RendererBuilderOption {
	return func(r *renderer) {
		r.presentMode = mode
	}
}

// WithClearColor sets the color the frame is cleared to before drawing.
//
// Parameters:
//   - color: linear RGBA clear color
//
// Returns:
//   - RendererBuilderOption: a function that applies the clear color option to a renderer
func WithClearColor(color ClearColor) RendererBuilderOption {
	return func(r *renderer) {
		r.clearColor = color
	}
}

// WithForceFallbackAdapter requests a CPU/software adapter instead of the hardware GPU.
// A software Vulkan ICD (lavapipe, SwiftShader) must be installed.
//
// Parameters:
//   - force: true to force the fallback adapter
//
// Returns:
//   - RendererBuilderOption: a function that applies the fallback option to a renderer
func WithForceFallbackAdapter(force bool) RendererBuilderOption {
	return func(r *renderer) {
		r.forceFallbackAdapter = force
	}
}

// WithMaxInstances sizes the instance storage buffer. Values below 1 are ignored.
//
// Parameters:
//   - n: maximum number of model matrices per frame
//
// Returns:
//   - RendererBuilderOption: a function that applies the instance capacity option to a renderer
func WithMaxInstances(n int) RendererBuilderOption {
	return func(r *renderer) {
		if n > 0 {
			r.maxInstances = n
		}
	}
}
