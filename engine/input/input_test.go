package input

import (
	"testing"
)

type fakeSource struct {
	keyDown func(uint32)
	keyUp   func(uint32)
	move    func(x, y float32)
	scroll  func(float32)
}

func (f *fakeSource) SetKeyDownCallback(cb func(keyCode uint32)) { f.keyDown = cb }
func (f *fakeSource) SetKeyUpCallback(cb func(keyCode uint32))   { f.keyUp = cb }
func (f *fakeSource) SetMouseMoveCallback(cb func(x, y float32)) { f.move = cb }
func (f *fakeSource) SetScrollCallback(cb func(delta float32))   { f.scroll = cb }

func TestTrackerFirstMouseProducesNoDelta(t *testing.T) {
	tr := NewTracker()
	tr.MouseMove(400, 300)

	s := tr.Snapshot()
	if s.MouseDX != 0 || s.MouseDY != 0 {
		t.Fatalf("expected no delta after first sample, got (%v, %v)", s.MouseDX, s.MouseDY)
	}
}

func TestTrackerAccumulatesAndDrains(t *testing.T) {
	tr := NewTracker()
	tr.MouseMove(100, 100)
	tr.MouseMove(110, 95)
	tr.MouseMove(115, 90)
	tr.Scroll(1)
	tr.Scroll(0.5)

	s := tr.Snapshot()
	if s.MouseDX != 15 || s.MouseDY != -10 {
		t.Fatalf("expected delta (15, -10), got (%v, %v)", s.MouseDX, s.MouseDY)
	}
	if s.Scroll != 1.5 {
		t.Fatalf("expected scroll 1.5, got %v", s.Scroll)
	}

	s = tr.Snapshot()
	if s.MouseDX != 0 || s.MouseDY != 0 || s.Scroll != 0 {
		t.Fatalf("expected drained snapshot, got %+v", s)
	}

	tr.MouseMove(120, 90)
	if s = tr.Snapshot(); s.MouseDX != 5 {
		t.Fatalf("expected delta relative to last position, got %v", s.MouseDX)
	}
}

func TestTrackerResetMouse(t *testing.T) {
	tr := NewTracker()
	tr.MouseMove(0, 0)
	tr.MouseMove(10, 10)
	tr.ResetMouse()
	tr.MouseMove(500, 500)

	s := tr.Snapshot()
	if s.MouseDX != 0 || s.MouseDY != 0 {
		t.Fatalf("expected reset to discard deltas, got (%v, %v)", s.MouseDX, s.MouseDY)
	}
}

func TestTrackerKeysPersistUntilReleased(t *testing.T) {
	tr := NewTracker()
	tr.KeyDown(87)
	tr.KeyDown(65)

	first := tr.Snapshot()
	second := tr.Snapshot()
	if !first.IsPressed(87) || !second.IsPressed(87) || !second.IsPressed(65) {
		t.Fatalf("expected keys to stay pressed across snapshots")
	}

	tr.KeyUp(87)
	third := tr.Snapshot()
	if third.IsPressed(87) || !third.IsPressed(65) {
		t.Fatalf("expected only released key to clear, got %v", third.Pressed)
	}
	if !first.IsPressed(87) {
		t.Fatalf("snapshot must not alias tracker state")
	}
}

func TestTrackerAttach(t *testing.T) {
	src := &fakeSource{}
	tr := NewTracker()
	tr.Attach(src)

	src.keyDown(83)
	src.move(10, 10)
	src.move(13, 14)
	src.scroll(-2)

	s := tr.Snapshot()
	if !s.IsPressed(83) || s.MouseDX != 3 || s.MouseDY != 4 || s.Scroll != -2 {
		t.Fatalf("unexpected snapshot %+v", s)
	}

	src.keyUp(83)
	if tr.Snapshot().IsPressed(83) {
		t.Fatalf("expected key released through attached callback")
	}
}
