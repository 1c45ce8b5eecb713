// Package input collects window input events into per-frame snapshots.
//
// A Tracker is the explicit context object the window callbacks write into. The frame loop
// drains it once per frame with Snapshot, so no input state lives in package-level variables.
package input

// Source is the subset of the window's callback registration surface a Tracker attaches to.
// window.Window satisfies it.
type Source interface {
	SetKeyDownCallback(callback func(keyCode uint32))
	SetKeyUpCallback(callback func(keyCode uint32))
	SetMouseMoveCallback(callback func(x, y float32))
	SetScrollCallback(callback func(delta float32))
}

// Snapshot is the input accumulated since the previous snapshot.
type Snapshot struct {
	// Pressed holds every key currently held down. Keys stay pressed across snapshots until released.
	Pressed map[uint32]bool

	// MouseDX and MouseDY are the summed cursor movement in pixels, in screen orientation (y grows downward).
	MouseDX, MouseDY float32

	// Scroll is the summed vertical scroll offset.
	Scroll float32
}

// IsPressed reports whether the key was held when the snapshot was taken.
//
// Parameters:
//   - keyCode: the virtual key code
//
// Returns:
//   - bool: true if the key is held
func (s Snapshot) IsPressed(keyCode uint32) bool {
	return s.Pressed[keyCode]
}

type tracker struct {
	pressed map[uint32]bool

	firstMouse   bool
	lastX, lastY float32

	dx, dy float32
	scroll float32
}

// Tracker turns discrete window events into frame-sized input deltas.
// The first cursor sample only records the position so the camera does not jump when the
// cursor is captured. A Tracker is not safe for concurrent use.
type Tracker interface {
	// KeyDown records a key press.
	//
	// Parameters:
	//   - keyCode: the virtual key code
	KeyDown(keyCode uint32)

	// KeyUp records a key release.
	//
	// Parameters:
	//   - keyCode: the virtual key code
	KeyUp(keyCode uint32)

	// MouseMove records an absolute cursor position and accumulates the offset from the previous one.
	//
	// Parameters:
	//   - x, y: cursor position in pixels
	MouseMove(x, y float32)

	// Scroll accumulates a vertical scroll offset.
	//
	// Parameters:
	//   - delta: scroll offset
	Scroll(delta float32)

	// Snapshot returns the accumulated input and resets the mouse and scroll accumulators.
	//
	// Returns:
	//   - Snapshot: the input since the previous call
	Snapshot() Snapshot

	// ResetMouse forgets the last cursor position so the next sample is treated as the first.
	ResetMouse()

	// Attach registers the tracker's methods as callbacks on the source.
	//
	// Parameters:
	//   - src: the event source, typically the window
	Attach(src Source)
}

var _ Tracker = &tracker{}

// NewTracker creates an empty Tracker awaiting its first cursor sample.
//
// Returns:
//   - Tracker: the newly created tracker
func NewTracker() Tracker {
	return &tracker{
		pressed:    make(map[uint32]bool),
		firstMouse: true,
	}
}

func (t *tracker) KeyDown(keyCode uint32) {
	t.pressed[keyCode] = true
}

func (t *tracker) KeyUp(keyCode uint32) {
	delete(t.pressed, keyCode)
}

func (t *tracker) MouseMove(x, y float32) {
	if t.firstMouse {
		t.lastX, t.lastY = x, y
		t.firstMouse = false
		return
	}
	t.dx += x - t.lastX
	t.dy += y - t.lastY
	t.lastX, t.lastY = x, y
}

func (t *tracker) Scroll(delta float32) {
	t.scroll += delta
}

func (t *tracker) Snapshot() Snapshot {
	pressed := make(map[uint32]bool, len(t.pressed))
	for k, v := range t.pressed {
		pressed[k] = v
	}
	s := Snapshot{
		Pressed: pressed,
		MouseDX: t.dx,
		MouseDY: t.dy,
		Scroll:  t.scroll,
	}
	t.dx, t.dy, t.scroll = 0, 0, 0
	return s
}

func (t *tracker) ResetMouse() {
	t.firstMouse = true
	t.dx, t.dy = 0, 0
}

func (t *tracker) Attach(src Source) {
	src.SetKeyDownCallback(t.KeyDown)
	src.SetKeyUpCallback(t.KeyUp)
	src.SetMouseMoveCallback(t.MouseMove)
	src.SetScrollCallback(t.Scroll)
}
