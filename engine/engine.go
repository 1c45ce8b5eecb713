package engine

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/Carmen-Shannon/oxy-flycam/engine/profiler"
	"github.com/Carmen-Shannon/oxy-flycam/engine/scene"
	"github.com/Carmen-Shannon/oxy-flycam/engine/window"
)

// engine implements the Engine interface.
// Every frame runs on the goroutine that owns the window.
type engine struct {
	window window.Window
	now    func() time.Time

	profiler         *profiler.Profiler
	profilingEnabled bool

	lastFrame      time.Time
	tickCallback   func(deltaTime float32)
	renderCallback func(deltaTime float32)

	scenes map[int]scene.Scene

	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped
}

// Engine is the main entry point for the engine.
// It drives the frame loop from the window's message loop.
type Engine interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance, or nil if none was given
	Window() window.Window

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetTickCallback registers the function called at the start of each frame, before scenes update.
	// Use this for input processing and camera movement.
	//
	// Parameters:
	//   - callback: function receiving the delta time in seconds
	SetTickCallback(callback func(deltaTime float32))

	// SetRenderCallback registers the function called after the frame is presented.
	//
	// Parameters:
	//   - callback: function receiving the delta time in seconds
	SetRenderCallback(callback func(deltaTime float32))

	// SetRenderFrameLimit sets an optional frame rate cap in frames per second.
	// Pass 0 to uncap the loop (default).
	//
	// Parameters:
	//   - fps: maximum frames per second (0 = uncapped)
	SetRenderFrameLimit(fps float64)

	// AddScene registers a scene at the given z-index key.
	// Scenes are drawn in ascending key order.
	//
	// Parameters:
	//   - key: the z-index determining draw order (lower draws first)
	//   - s: the Scene to register
	AddScene(key int, s scene.Scene)

	// RemoveScene removes the scene at the given z-index key.
	//
	// Parameters:
	//   - key: the z-index of the scene to remove
	RemoveScene(key int)

	// Scene retrieves the scene registered at the given z-index key.
	//
	// Parameters:
	//   - key: the z-index of the scene to retrieve
	//
	// Returns:
	//   - scene.Scene: the scene at the key, or nil if not found
	Scene(key int) scene.Scene

	// Scenes returns a copy of all registered scenes keyed by z-index.
	//
	// Returns:
	//   - map[int]scene.Scene: a copy of the scenes map
	Scenes() map[int]scene.Scene

	// Frame runs one iteration of the loop: tick callback, scene updates, one render pass
	// over every active scene, present, render callback and profiler tick.
	//
	// Returns:
	//   - error: the joined surface and draw errors of this frame
	Frame() error

	// Run drives Frame from the window's message loop and blocks until the window closes.
	Run()

	// Quit asks the window to close. Run returns after the current frame.
	// Safe to call multiple times.
	Quit()
}

// NewEngine creates a new Engine instance with the provided options.
// If a window is given its resize events are forwarded to every scene's renderer.
//
// Parameters:
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		scenes: make(map[int]scene.Scene),
		now:    time.Now,
	}

	for _, opt := range options {
		opt(e)
	}

	if e.profiler == nil {
		e.profiler = profiler.NewProfiler()
	}

	if e.window != nil {
		e.window.SetResizeCallback(func(width, height int) {
			for _, s := range e.sortedScenes() {
				if r := s.Renderer(); r != nil {
					r.Resize(width, height)
				}
			}
		})
	}

	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Run() {
	if e.window == nil {
		panic("engine: Run requires a window")
	}

	e.lastFrame = time.Time{}
	e.window.SetUpdateCallback(func() {
		start := e.now()
		if err := e.Frame(); err != nil {
			log.Printf("[Engine] frame failed: %v", err)
		}

		if e.renderFrameLimit > 0 {
			if remaining := e.renderFrameLimit - e.now().Sub(start); remaining > 0 {
				time.Sleep(remaining)
			}
		}
	})
	e.window.ProcessMessages()
}

func (e *engine) Quit() {
	if e.window != nil {
		e.window.RequestClose()
	}
}

func (e *engine) Frame() error {
	now := e.now()
	var dt float32
	if !e.lastFrame.IsZero() {
		dt = float32(max(now.Sub(e.lastFrame), 0).Seconds())
	}
	e.lastFrame = now

	if e.tickCallback != nil {
		e.tickCallback(dt)
	}

	var active []scene.Scene
	for _, s := range e.sortedScenes() {
		if s.Active() {
			active = append(active, s)
		}
	}
	for _, s := range active {
		s.Update(dt)
	}

	err := e.render(active)

	if e.renderCallback != nil {
		e.renderCallback(dt)
	}

	if e.profilingEnabled && e.profiler != nil {
		e.profiler.Tick()
	}

	return err
}

// render draws every active scene inside one pass owned by the first active scene's renderer.
// A zero-sized (minimized) window skips the pass.
func (e *engine) render(active []scene.Scene) error {
	if len(active) == 0 {
		return nil
	}
	frameRenderer := active[0].Renderer()
	if frameRenderer == nil {
		return nil
	}

	aspect := float32(1)
	if e.window != nil {
		w, h := e.window.Width(), e.window.Height()
		if w <= 0 || h <= 0 {
			return nil
		}
		aspect = float32(w) / float32(h)
	}

	if err := frameRenderer.BeginFrame(); err != nil {
		return fmt.Errorf("begin frame: %w", err)
	}

	var errs []error
	for _, s := range active {
		if _, err := s.Draw(aspect); err != nil {
			errs = append(errs, err)
		}
	}
	if err := frameRenderer.EndFrame(); err != nil {
		return errors.Join(append(errs, fmt.Errorf("end frame: %w", err))...)
	}
	frameRenderer.Present()

	return errors.Join(errs...)
}

func (e *engine) sortedScenes() []scene.Scene {
	keys := make([]int, 0, len(e.scenes))
	for k := range e.scenes {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	out := make([]scene.Scene, len(keys))
	for i, k := range keys {
		out[i] = e.scenes[k]
	}
	return out
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

func (e *engine) SetTickCallback(callback func(deltaTime float32)) {
	e.tickCallback = callback
}

func (e *engine) SetRenderCallback(callback func(deltaTime float32)) {
	e.renderCallback = callback
}

func (e *engine) SetRenderFrameLimit(fps float64) {
	e.renderFrameLimit = frameDuration(fps)
}

func (e *engine) AddScene(key int, s scene.Scene) {
	e.scenes[key] = s
}

func (e *engine) RemoveScene(key int) {
	delete(e.scenes, key)
}

func (e *engine) Scene(key int) scene.Scene {
	return e.scenes[key]
}

func (e *engine) Scenes() map[int]scene.Scene {
	cp := make(map[int]scene.Scene, len(e.scenes))
	for k, v := range e.scenes {
		cp[k] = v
	}
	return cp
}

func frameDuration(fps float64) time.Duration {
	if fps <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / fps)
}
