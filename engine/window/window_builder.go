package window

import "github.com/Carmen-Shannon/oxy-flycam/common"

// WindowBuilderOption is a functional option for configuring a Window before it is created.
type WindowBuilderOption func(w *engineWindow)

// WithTitle sets the window title. An empty title keeps the default.
//
// Parameters:
//   - title: the window title text
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithTitle(title string) WindowBuilderOption {
	return func(w *engineWindow) {
		w.title = common.Coalesce(title, w.title)
	}
}

// WithSizeLimits sets the minimum and maximum window size enforced by the platform.
// A non-positive value leaves that bound unset.
//
// Parameters:
//   - minWidth, minHeight: smallest allowed size in pixels
//   - maxWidth, maxHeight: largest allowed size in pixels
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithSizeLimits(minWidth, minHeight, maxWidth, maxHeight int) WindowBuilderOption {
	return func(w *engineWindow) {
		w.minWidth, w.minHeight = minWidth, minHeight
		w.maxWidth, w.maxHeight = maxWidth, maxHeight
	}
}

// WithWidth sets the requested initial width.
//
// Parameters:
//   - width: initial width in pixels
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithWidth(width int) WindowBuilderOption {
	return func(w *engineWindow) {
		w.width = width
	}
}

// WithHeight sets the requested initial height.
//
// Parameters:
//   - height: initial height in pixels
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithHeight(height int) WindowBuilderOption {
	return func(w *engineWindow) {
		w.height = height
	}
}

// WithCursorCaptured hides the cursor and locks it to the window so mouse movement reports
// unbounded deltas, as a fly camera needs.
//
// Parameters:
//   - capture: true to capture the cursor
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithCursorCaptured(capture bool) WindowBuilderOption {
	return func(w *engineWindow) {
		w.captureCursor = capture
	}
}
