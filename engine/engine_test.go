package engine

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-flycam/engine/renderer"
	"github.com/Carmen-Shannon/oxy-flycam/engine/scene"
	"github.com/cogentcore/webgpu/wgpu"
)

type callLog struct {
	calls []string
}

func (l *callLog) add(call string) { l.calls = append(l.calls, call) }

func (l *callLog) String() string { return strings.Join(l.calls, ",") }

type fakeRenderer struct {
	renderer.Renderer

	log      *callLog
	beginErr error
	resized  [][2]int
}

func (f *fakeRenderer) BeginFrame() error {
	if f.beginErr != nil {
		return f.beginErr
	}
	f.log.add("begin")
	return nil
}
func (f *fakeRenderer) EndFrame() error { f.log.add("end"); return nil }
func (f *fakeRenderer) Present() { f.log.add("present") }
func (f *fakeRenderer) Resize(width, height int) { f.resized = append(f.resized, [2]int{width, height}) }

type fakeScene struct {
	scene.Scene

	name    string
	active  bool
	r       *fakeRenderer
	log     *callLog
	dts     []float32
	aspects []float32
	drawErr error
}

func (f *fakeScene) Name() string { return f.name }
func (f *fakeScene) Active() bool { return f.active }
func (f *fakeScene) Renderer() renderer.Renderer { return f.r }
func (f *fakeScene) Update(dt float32) {
	f.dts = append(f.dts, dt)
	f.log.add("update:" + f.name)
}
func (f *fakeScene) Draw(aspect float32) (int, error) {
	f.aspects = append(f.aspects, aspect)
	f.log.add("draw:" + f.name)
	return 1, f.drawErr
}

type fakeWindow struct {
	width, height int
	frames        int
	closed        bool
	onUpdate      func()
	onResize      func(width, height int)
}

func (w *fakeWindow) SetUpdateCallback(callback func()) { w.onUpdate = callback }
func (w *fakeWindow) SetResizeCallback(callback func(width, height int)) { w.onResize = callback }
func (w *fakeWindow) SetScrollCallback(func(delta float32)) {}
func (w *fakeWindow) SetKeyDownCallback(func(keyCode uint32)) {}
func (w *fakeWindow) SetKeyUpCallback(func(keyCode uint32)) {}
func (w *fakeWindow) SetMouseMoveCallback(func(x, y float32)) {}
func (w *fakeWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor { return nil }
func (w *fakeWindow) IsRunning() bool { return !w.closed }
func (w *fakeWindow) RequestClose() { w.closed = true }
func (w *fakeWindow) Close() error { return nil }
func (w *fakeWindow) Width() int { return w.width }
func (w *fakeWindow) Height() int { return w.height }

// ProcessMessages runs the update callback until closed, with a hard stop so a broken
// Quit cannot hang the test.
func (w *fakeWindow) ProcessMessages() {
	for w.IsRunning() && w.frames < 100 {
		w.frames++
		if w.onUpdate != nil {
			w.onUpdate()
		}
	}
}

type stepClock struct {
	t     time.Time
	steps []time.Duration
}

func (c *stepClock) now() time.Time {
	if len(c.steps) > 0 {
		c.t = c.t.Add(c.steps[0])
		c.steps = c.steps[1:]
	}
	return c.t
}

func newFixture(names ...string) (*callLog, *fakeRenderer, []*fakeScene) {
	log := &callLog{}
	r := &fakeRenderer{log: log}
	scenes := make([]*fakeScene, len(names))
	for i, n := range names {
		scenes[i] = &fakeScene{name: n, active: true, r: r, log: log}
	}
	return log, r, scenes
}

func TestFrameOrdersScenesInsideOnePass(t *testing.T) {
	log, _, scenes := newFixture("a", "b", "c")
	scenes[1].active = false

	e := NewEngine(
		WithWindow(&fakeWindow{width: 1600, height: 900}),
		WithScene(2, scenes[0]),
		WithScene(-1, scenes[2]),
		WithScene(0, scenes[1]),
	)
	e.SetTickCallback(func(float32) { log.add("tick") })
	e.SetRenderCallback(func(float32) { log.add("render") })

	if err := e.Frame(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "tick,update:c,update:a,begin,draw:c,draw:a,end,present,render"
	if got := log.String(); got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
	if scenes[0].aspects[0] != 1600.0/900.0 {
		t.Fatalf("expected aspect from window size, got %v", scenes[0].aspects[0])
	}
	if len(scenes[1].dts) != 0 {
		t.Fatalf("inactive scene was updated")
	}
}

func TestFrameDeltaTime(t *testing.T) {
	_, _, scenes := newFixture("a")
	clock := &stepClock{
		t:     time.Unix(10, 0),
		steps: []time.Duration{0, 250 * time.Millisecond, -time.Second},
	}
	e := NewEngine(WithClock(clock.now), WithScene(0, scenes[0]))

	var ticks []float32
	e.SetTickCallback(func(dt float32) { ticks = append(ticks, dt) })
	for range 3 {
		if err := e.Frame(); err != nil {
			t.Fatal(err)
		}
	}

	want := []float32{0, 0.25, 0}
	for i := range want {
		if ticks[i] != want[i] || scenes[0].dts[i] != want[i] {
			t.Fatalf("frame %d: expected dt %v, got tick %v update %v", i, want[i], ticks[i], scenes[0].dts[i])
		}
	}
}

func TestFrameSkipsPassWhenMinimized(t *testing.T) {
	log, _, scenes := newFixture("a")
	e := NewEngine(WithWindow(&fakeWindow{width: 0, height: 0}), WithScene(0, scenes[0]))

	if err := e.Frame(); err != nil {
		t.Fatal(err)
	}
	if got := log.String(); got != "update:a" {
		t.Fatalf("expected update only, got %s", got)
	}
}

func TestFrameErrors(t *testing.T) {
	t.Run("begin_frame", func(t *testing.T) {
		log, r, scenes := newFixture("a")
		r.beginErr = errors.New("surface lost")
		e := NewEngine(WithScene(0, scenes[0]))

		err := e.Frame()
		if err == nil || !errors.Is(err, r.beginErr) {
			t.Fatalf("expected surface error, got %v", err)
		}
		if strings.Contains(log.String(), "draw") {
			t.Fatalf("scenes drawn without a frame: %s", log)
		}
	})

	t.Run("draw", func(t *testing.T) {
		log, _, scenes := newFixture("a", "b")
		scenes[0].drawErr = errors.New("too many instances")
		e := NewEngine(WithScene(0, scenes[0]), WithScene(1, scenes[1]))

		err := e.Frame()
		if !errors.Is(err, scenes[0].drawErr) {
			t.Fatalf("expected draw error, got %v", err)
		}
		if !strings.HasSuffix(log.String(), "draw:a,draw:b,end,present") {
			t.Fatalf("a failing scene must not stop the frame: %s", log)
		}
	})
}

func TestSceneRegistry(t *testing.T) {
	_, _, scenes := newFixture("a", "b")
	e := NewEngine(WithScene(1, scenes[0]))
	e.AddScene(0, scenes[1])

	if e.Scene(0) != scenes[1] || e.Scene(1) != scenes[0] || e.Scene(7) != nil {
		t.Fatalf("unexpected lookup results")
	}

	cp := e.Scenes()
	delete(cp, 0)
	if e.Scene(0) == nil {
		t.Fatalf("Scenes must return a copy")
	}

	e.RemoveScene(0)
	if e.Scene(0) != nil || len(e.Scenes()) != 1 {
		t.Fatalf("scene not removed")
	}
}

func TestResizeForwardsToRenderers(t *testing.T) {
	_, r, scenes := newFixture("a")
	w := &fakeWindow{width: 800, height: 600}
	NewEngine(WithWindow(w), WithScene(0, scenes[0]))

	w.onResize(1024, 768)
	if len(r.resized) != 1 || r.resized[0] != [2]int{1024, 768} {
		t.Fatalf("expected one resize to 1024x768, got %v", r.resized)
	}
}

func TestRunUntilQuit(t *testing.T) {
	_, _, scenes := newFixture("a")
	w := &fakeWindow{width: 800, height: 600}
	e := NewEngine(WithWindow(w), WithScene(0, scenes[0]))

	frames := 0
	e.SetRenderCallback(func(float32) {
		frames++
		if frames == 3 {
			e.Quit()
		}
	})
	e.Run()

	if frames != 3 || w.frames != 3 {
		t.Fatalf("expected 3 frames before quit, got %d (window %d)", frames, w.frames)
	}
	e.Quit()
}

func TestFrameDuration(t *testing.T) {
	cases := []struct {
		fps  float64
		want time.Duration
	}{
		{0, 0},
		{-30, 0},
		{60, time.Second / 60},
		{144, time.Duration(float64(time.Second) / 144)},
	}
	for _, c := range cases {
		if got := frameDuration(c.fps); got != c.want {
			t.Fatalf("frameDuration(%v): expected %v, got %v", c.fps, c.want, got)
		}
	}
}
