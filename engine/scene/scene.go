package scene

import (
	"fmt"
	"math"
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-flycam/common"
	"github.com/Carmen-Shannon/oxy-flycam/engine/camera"
	"github.com/Carmen-Shannon/oxy-flycam/engine/renderer"
	"github.com/go-gl/mathgl/mgl32"
)

// Scene is a camera looking at a set of spinning mesh instances drawn by one renderer.
//
// Update and Draw must be called from the frame loop goroutine. Update fans the model matrix
// computation out to a worker pool and returns only after every chunk is done.
type Scene interface {
	// Name returns the scene's key in the engine.
	//
	// Returns:
	//   - string: the scene name
	Name() string

	// Active reports whether the engine updates and draws this scene.
	//
	// Returns:
	//   - bool: true if active
	Active() bool

	// SetActive enables or disables the scene.
	//
	// Parameters:
	//   - active: true to enable
	SetActive(active bool)

	// Camera returns the scene's camera.
	//
	// Returns:
	//   - camera.Camera: the camera
	Camera() camera.Camera

	// Renderer returns the renderer the scene draws with.
	//
	// Returns:
	//   - renderer.Renderer: the renderer
	Renderer() renderer.Renderer

	// Instances returns a copy of the scene's instances.
	//
	// Returns:
	//   - []Instance: the instances
	Instances() []Instance

	// SetInstances replaces the instances. The elapsed clock is kept.
	//
	// Parameters:
	//   - instances: the new instances
	SetInstances(instances []Instance)

	// Elapsed returns the seconds accumulated by Update.
	//
	// Returns:
	//   - float64: elapsed seconds
	Elapsed() float64

	// Models returns a copy of the model matrices computed by the last Update.
	//
	// Returns:
	//   - []mgl32.Mat4: one matrix per instance
	Models() []mgl32.Mat4

	// Update advances the clock by deltaTime and recomputes every model matrix.
	//
	// Parameters:
	//   - deltaTime: seconds since the previous update; negative values are treated as zero
	Update(deltaTime float32)

	// Draw writes the camera and the visible instances and issues one instanced draw.
	// Must be called between the renderer's BeginFrame and EndFrame.
	//
	// Parameters:
	//   - aspect: viewport width / height
	//
	// Returns:
	//   - int: number of instances drawn after culling
	//   - error: a renderer error
	Draw(aspect float32) (int, error)

	// Culling reports whether instances outside the view frustum are skipped.
	//
	// Returns:
	//   - bool: true if culling is enabled
	Culling() bool

	// SetCulling enables or disables frustum culling.
	//
	// Parameters:
	//   - enabled: true to cull
	SetCulling(enabled bool)
}

type scene struct {
	name   string
	active bool

	cam camera.Camera
	r   renderer.Renderer

	near, far float32
	culling   bool

	instances []Instance
	models    []mgl32.Mat4
	visible   []mgl32.Mat4
	elapsed   float64

	workers int
	pool    worker.DynamicWorkerPool
}

var _ Scene = &scene{}

// NewScene creates a scene. Camera and renderer are required.
//
// Parameters:
//   - name: the scene key
//   - cam: the camera to view through
//   - r: the renderer to draw with
//   - options: functional options to configure the scene
//
// Returns:
//   - Scene: the newly created scene
func NewScene(name string, cam camera.Camera, r renderer.Renderer, options ...SceneBuilderOption) Scene {
	if cam == nil {
		panic("scene: NewScene requires a non-nil Camera")
	}
	if r == nil {
		panic("scene: NewScene requires a non-nil Renderer")
	}

	s := &scene{
		name:    name,
		active:  true,
		cam:     cam,
		r:       r,
		near:    0.1,
		far:     100,
		culling: true,
		workers: max(runtime.NumCPU()-1, 1),
	}
	for _, option := range options {
		option(s)
	}

	// Workers persist across frames and idle-exit after a second without tasks.
	s.pool = worker.NewDynamicWorkerPool(s.workers, 256, 1*time.Second)
	s.models = make([]mgl32.Mat4, len(s.instances))
	return s
}

func (s *scene) Name() string {
	return s.name
}

func (s *scene) Active() bool {
	return s.active
}

func (s *scene) SetActive(active bool) {
	s.active = active
}

func (s *scene) Camera() camera.Camera {
	return s.cam
}

func (s *scene) Renderer() renderer.Renderer {
	return s.r
}

func (s *scene) Instances() []Instance {
	out := make([]Instance, len(s.instances))
	copy(out, s.instances)
	return out
}

func (s *scene) SetInstances(instances []Instance) {
	s.instances = make([]Instance, len(instances))
	copy(s.instances, instances)
	s.models = make([]mgl32.Mat4, len(instances))
}

func (s *scene) Elapsed() float64 {
	return s.elapsed
}

func (s *scene) Models() []mgl32.Mat4 {
	out := make([]mgl32.Mat4, len(s.models))
	copy(out, s.models)
	return out
}

func (s *scene) Culling() bool {
	return s.culling
}

func (s *scene) SetCulling(enabled bool) {
	s.culling = enabled
}

func (s *scene) Update(deltaTime float32) {
	s.elapsed += float64(max(deltaTime, 0))

	n := len(s.instances)
	if n == 0 {
		return
	}

	// Chunks write disjoint ranges of s.models. A WaitGroup is the frame barrier because
	// the pool's own Wait blocks until workers idle-exit.
	chunk := (n + s.workers - 1) / s.workers
	var wg sync.WaitGroup
	for id, lo := 0, 0; lo < n; id, lo = id+1, lo+chunk {
		hi := min(lo+chunk, n)
		wg.Add(1)
		s.pool.SubmitTask(worker.Task{
			ID: id,
			Do: func() (any, error) {
				defer wg.Done()
				for i := lo; i < hi; i++ {
					s.models[i] = modelMatrix(s.instances[i], s.elapsed)
				}
				return nil, nil
			},
		})
	}
	wg.Wait()
}

func (s *scene) Draw(aspect float32) (int, error) {
	uniform := s.cam.Uniform(aspect, s.near, s.far)
	s.r.WriteCamera(uniform)

	s.visible = s.visible[:0]
	if s.culling {
		frustum := common.ExtractFrustum(uniform.Projection.Mul4(uniform.View))
		for i, inst := range s.instances {
			if frustum.ContainsSphere(inst.Position, CubeBoundingRadius) {
				s.visible = append(s.visible, s.models[i])
			}
		}
	} else {
		s.visible = append(s.visible, s.models...)
	}

	if len(s.visible) > s.r.MaxInstances() {
		return 0, fmt.Errorf("scene %s: %d visible instances exceed renderer capacity %d", s.name, len(s.visible), s.r.MaxInstances())
	}
	if err := s.r.WriteInstances(s.visible); err != nil {
		return 0, fmt.Errorf("scene %s: %w", s.name, err)
	}
	if err := s.r.Draw(uint32(len(s.visible))); err != nil {
		return 0, fmt.Errorf("scene %s: %w", s.name, err)
	}
	return len(s.visible), nil
}

// modelMatrix keeps the angle in [0, 360) before converting so long sessions do not lose
// float32 precision.
func modelMatrix(inst Instance, elapsed float64) mgl32.Mat4 {
	degrees := math.Mod(elapsed*float64(inst.DegreesPerSecond), 360)
	return common.ModelMatrix(inst.Position, mgl32.DegToRad(float32(degrees)), inst.Axis)
}
