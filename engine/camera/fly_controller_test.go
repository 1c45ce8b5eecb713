package camera

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-flycam/common"
	"github.com/Carmen-Shannon/oxy-flycam/engine/input"
	"github.com/go-gl/mathgl/mgl32"
)

func pressed(keys ...uint32) map[uint32]bool {
	m := make(map[uint32]bool, len(keys))
	for _, k := range keys {
		m[k] = true
	}
	return m
}

func TestFlyControllerKeyboard(t *testing.T) {
	cases := []struct {
		name string
		keys []uint32
		want mgl32.Vec3
	}{
		{"w_moves_forward", []uint32{common.KeyW}, mgl32.Vec3{0, 0, -2.5}},
		{"s_moves_backward", []uint32{common.KeyS}, mgl32.Vec3{0, 0, 2.5}},
		{"a_strafes_left", []uint32{common.KeyA}, mgl32.Vec3{-2.5, 0, 0}},
		{"d_strafes_right", []uint32{common.KeyD}, mgl32.Vec3{2.5, 0, 0}},
		{"opposites_cancel", []uint32{common.KeyW, common.KeyS}, mgl32.Vec3{0, 0, 0}},
		{"unbound_key_ignored", []uint32{common.KeySpace}, mgl32.Vec3{0, 0, 0}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			fc := NewFlyController(NewCamera())
			fc.Update(input.Snapshot{Pressed: pressed(c.keys...)}, 1)
			expectVec(t, fc.Camera().Position(), c.want, "position")
		})
	}
}

func TestFlyControllerNegativeDeltaDoesNotMove(t *testing.T) {
	fc := NewFlyController(NewCamera())
	fc.Update(input.Snapshot{Pressed: pressed(common.KeyW)}, -1)
	expectVec(t, fc.Camera().Position(), mgl32.Vec3{}, "position")
}

func TestFlyControllerMouseLook(t *testing.T) {
	t.Run("mouse_up_pitches_up", func(t *testing.T) {
		fc := NewFlyController(NewCamera())
		fc.Update(input.Snapshot{MouseDX: 10, MouseDY: -10}, 0.016)
		expectFloat(t, fc.Camera().Yaw(), -89, "yaw")
		expectFloat(t, fc.Camera().Pitch(), 1, "pitch")
	})

	t.Run("invert_y", func(t *testing.T) {
		fc := NewFlyController(NewCamera(), WithInvertY(true))
		fc.Update(input.Snapshot{MouseDY: -10}, 0.016)
		expectFloat(t, fc.Camera().Pitch(), -1, "pitch")
	})

	t.Run("unconstrained_pitch", func(t *testing.T) {
		fc := NewFlyController(NewCamera(WithPitch(88)), WithConstrainPitch(false))
		fc.Update(input.Snapshot{MouseDY: -50}, 0.016)
		expectFloat(t, fc.Camera().Pitch(), 93, "pitch")
	})

	t.Run("constrained_pitch", func(t *testing.T) {
		fc := NewFlyController(NewCamera(WithPitch(88)))
		fc.Update(input.Snapshot{MouseDY: -50}, 0.016)
		expectFloat(t, fc.Camera().Pitch(), PitchLimit, "pitch")
	})
}

func TestFlyControllerScroll(t *testing.T) {
	fc := NewFlyController(NewCamera())
	fc.Update(input.Snapshot{Scroll: 2}, 0.016)
	expectFloat(t, fc.Camera().Zoom(), 43, "zoom")

	fc.Update(input.Snapshot{Scroll: 100}, 0.016)
	expectFloat(t, fc.Camera().Zoom(), MinZoom, "zoom")
}

func TestFlyControllerCustomBindings(t *testing.T) {
	fc := NewFlyController(NewCamera(),
		WithClearedBindings(),
		WithKeyBinding(common.KeyUp, MovementForward),
		WithKeyBinding(common.KeyDown, MovementBackward),
	)

	fc.Update(input.Snapshot{Pressed: pressed(common.KeyW)}, 1)
	expectVec(t, fc.Camera().Position(), mgl32.Vec3{}, "cleared binding")

	fc.Update(input.Snapshot{Pressed: pressed(common.KeyUp)}, 1)
	expectVec(t, fc.Camera().Position(), mgl32.Vec3{0, 0, -2.5}, "arrow binding")

	if len(fc.Bindings()) != 2 {
		t.Fatalf("expected 2 bindings, got %v", fc.Bindings())
	}
}

func TestFlyControllerBindingsReturnsCopy(t *testing.T) {
	fc := NewFlyController(NewCamera())
	b := fc.Bindings()
	delete(b, common.KeyW)
	b[common.KeyQ] = MovementForward

	got := fc.Bindings()
	if _, ok := got[common.KeyW]; !ok {
		t.Fatalf("mutating the returned map removed a binding")
	}
	if _, ok := got[common.KeyQ]; ok {
		t.Fatalf("mutating the returned map added a binding")
	}
}
