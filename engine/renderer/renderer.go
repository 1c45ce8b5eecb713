package renderer

import (
	"encoding/binary"
	"errors"
	"fmt"
	"log"
	"math"

	"github.com/Carmen-Shannon/oxy-flycam/common"
	"github.com/Carmen-Shannon/oxy-flycam/engine/camera"
	"github.com/Carmen-Shannon/oxy-flycam/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
)

// DefaultMaxInstances is the instance buffer capacity used when WithMaxInstances is not given.
const DefaultMaxInstances = 1024

var (
	// ErrReleased is returned by every operation after Release.
	ErrReleased = errors.New("renderer released")

	// ErrNoFrame is returned when a draw is issued outside BeginFrame/EndFrame.
	ErrNoFrame = errors.New("no frame in progress")
)

// SurfaceSource is what the renderer needs from a window. window.Window satisfies it.
type SurfaceSource interface {
	SurfaceDescriptor() *wgpu.SurfaceDescriptor
	Width() int
	Height() int
}

// expectedLayout is the group 0 layout every shader must declare.
var expectedLayout = [...]shader.BindingKind{
	0: shader.BindingKindUniform,
	1: shader.BindingKindReadOnlyStorage,
	2: shader.BindingKindTexture,
	3: shader.BindingKindSampler,
}

type renderer struct {
	backend RendererBackend

	presentMode          PresentMode
	clearColor           ClearColor
	forceFallbackAdapter bool
	maxInstances         int

	hasPipeline   bool
	vertexCount   uint32
	instanceCount int
	inFrame       bool
	released      bool
}

// Renderer draws one instanced, textured mesh per frame into a window surface.
//
// Resources are created by NewRenderer and the Upload methods and are owned by the Renderer
// until Release. A frame is BeginFrame, WriteCamera, WriteInstances, one or more Draw calls,
// EndFrame and Present. The Renderer is not safe for concurrent use.
type Renderer interface {
	// SetShader builds the render pipeline from a parsed shader. The shader must declare the
	// camera uniform, instance storage, texture and sampler at @group(0) bindings 0 through 3.
	//
	// Parameters:
	//   - s: the parsed shader
	//
	// Returns:
	//   - error: a layout mismatch or a GPU compile error
	SetShader(s shader.Shader) error

	// UploadMesh replaces the vertex buffer with interleaved x, y, z, u, v floats.
	//
	// Parameters:
	//   - vertices: five floats per vertex, non-indexed triangle list
	//
	// Returns:
	//   - error: an error if the slice is empty, not a multiple of five, or the upload fails
	UploadMesh(vertices []float32) error

	// UploadTexture replaces the sampled texture with RGBA8 sRGB pixels.
	//
	// Parameters:
	//   - data: pixel data and dimensions
	//
	// Returns:
	//   - error: an error if the data is inconsistent or the upload fails
	UploadTexture(data common.TextureStagingData) error

	// BeginFrame acquires the next surface texture and begins the render pass.
	//
	// Returns:
	//   - error: an error if a frame is already in progress or the surface is unavailable
	BeginFrame() error

	// WriteCamera queues the camera uniform for the next submission.
	//
	// Parameters:
	//   - u: the camera's view, projection and position
	WriteCamera(u camera.GPUCameraUniform)

	// WriteInstances queues the per-instance model matrices for the next submission.
	//
	// Parameters:
	//   - models: one matrix per instance
	//
	// Returns:
	//   - error: an error if there are more matrices than the instance buffer holds
	WriteInstances(models []mgl32.Mat4) error

	// Draw encodes an instanced draw of the uploaded mesh. Zero instances is a no-op.
	//
	// Parameters:
	//   - instanceCount: number of instances, at most the count last written
	//
	// Returns:
	//   - error: an error if no frame is in progress or the pipeline or mesh is missing
	Draw(instanceCount uint32) error

	// EndFrame ends the render pass and submits it. A call without a frame is a no-op.
	//
	// Returns:
	//   - error: an error if the command buffer cannot be finished
	EndFrame() error

	// Present shows the submitted frame.
	Present()

	// Resize reconfigures the surface and depth buffer. Zero sizes (minimized windows) are ignored.
	//
	// Parameters:
	//   - width: new framebuffer width in pixels
	//   - height: new framebuffer height in pixels
	Resize(width, height int)

	// MaxInstances returns the instance buffer capacity.
	//
	// Returns:
	//   - int: the maximum number of instances per frame
	MaxInstances() int

	// Release frees every GPU handle in reverse acquisition order. Calling it twice is safe.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a WebGPU device for the window's surface and allocates the frame resources.
//
// Parameters:
//   - win: the window providing the surface descriptor and initial size
//   - options: functional options to configure the renderer
//
// Returns:
//   - Renderer: the ready renderer (SetShader and UploadMesh still required before Draw)
//   - error: an error if no adapter or device is available or resource creation fails
func NewRenderer(win SurfaceSource, options ...RendererBuilderOption) (Renderer, error) {
	r := newRenderer(options...)

	backend, err := newWGPURendererBackend(win.SurfaceDescriptor(), r.forceFallbackAdapter)
	if err != nil {
		return nil, fmt.Errorf("failed to create renderer backend: %w", err)
	}
	if err := r.init(backend, win.Width(), win.Height()); err != nil {
		backend.Release()
		return nil, err
	}
	return r, nil
}

func newRenderer(options ...RendererBuilderOption) *renderer {
	r := &renderer{
		presentMode:  PresentModeVSync,
		clearColor:   ClearColor{R: 0.2, G: 0.3, B: 0.3, A: 1.0},
		maxInstances: DefaultMaxInstances,
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

func (r *renderer) init(backend RendererBackend, width, height int) error {
	r.backend = backend
	backend.SetPresentMode(r.presentMode)
	backend.SetClearColor(r.clearColor)
	if err := backend.ConfigureSurface(width, height); err != nil {
		return fmt.Errorf("failed to configure surface: %w", err)
	}
	if err := backend.CreateResources(r.maxInstances); err != nil {
		return fmt.Errorf("failed to create frame resources: %w", err)
	}
	return nil
}

func (r *renderer) SetShader(s shader.Shader) error {
	if r.released {
		return ErrReleased
	}
	for binding, kind := range expectedLayout {
		got, ok := s.Binding(0, binding)
		if !ok {
			return fmt.Errorf("shader %s: missing %s at @group(0) @binding(%d)", s.Key(), kind, binding)
		}
		if got.Kind != kind {
			return fmt.Errorf("shader %s: @group(0) @binding(%d) is %s, want %s", s.Key(), binding, got.Kind, kind)
		}
	}
	if err := r.backend.CreatePipeline(s); err != nil {
		return fmt.Errorf("shader %s: %w", s.Key(), err)
	}
	r.hasPipeline = true
	return nil
}

func (r *renderer) UploadMesh(vertices []float32) error {
	if r.released {
		return ErrReleased
	}
	if len(vertices) == 0 || len(vertices)%5 != 0 {
		return fmt.Errorf("mesh must be a non-empty multiple of 5 floats, got %d", len(vertices))
	}
	count := uint32(len(vertices) / 5)
	if err := r.backend.UploadVertices(marshalFloats(vertices), count); err != nil {
		return err
	}
	r.vertexCount = count
	return nil
}

func (r *renderer) UploadTexture(data common.TextureStagingData) error {
	if r.released {
		return ErrReleased
	}
	if data.Width == 0 || data.Height == 0 || uint32(len(data.Pixels)) != data.Width*data.Height*4 {
		return fmt.Errorf("texture %dx%d does not match %d bytes of RGBA pixels", data.Width, data.Height, len(data.Pixels))
	}
	return r.backend.UploadTexture(data)
}

func (r *renderer) BeginFrame() error {
	if r.released {
		return ErrReleased
	}
	if r.inFrame {
		return errors.New("previous frame not ended")
	}
	if err := r.backend.BeginFrame(); err != nil {
		return err
	}
	r.inFrame = true
	return nil
}

func (r *renderer) WriteCamera(u camera.GPUCameraUniform) {
	if r.released {
		return
	}
	r.backend.WriteCamera(u.Marshal())
}

func (r *renderer) WriteInstances(models []mgl32.Mat4) error {
	if r.released {
		return ErrReleased
	}
	if len(models) > r.maxInstances {
		return fmt.Errorf("%d instances exceed capacity %d", len(models), r.maxInstances)
	}
	if len(models) > 0 {
		buf := make([]byte, len(models)*instanceStride)
		for i, m := range models {
			for j, v := range m {
				binary.LittleEndian.PutUint32(buf[i*instanceStride+j*4:], math.Float32bits(v))
			}
		}
		r.backend.WriteInstances(buf)
	}
	r.instanceCount = len(models)
	return nil
}

func (r *renderer) Draw(instanceCount uint32) error {
	switch {
	case r.released:
		return ErrReleased
	case !r.inFrame:
		return ErrNoFrame
	case !r.hasPipeline:
		return errors.New("no shader set")
	case r.vertexCount == 0:
		return errors.New("no mesh uploaded")
	case int(instanceCount) > r.instanceCount:
		return fmt.Errorf("draw of %d instances but only %d written", instanceCount, r.instanceCount)
	case instanceCount == 0:
		return nil
	}
	return r.backend.Draw(instanceCount)
}

func (r *renderer) EndFrame() error {
	if r.released || !r.inFrame {
		return nil
	}
	r.inFrame = false
	return r.backend.EndFrame()
}

func (r *renderer) Present() {
	if r.released {
		return
	}
	r.backend.Present()
}

func (r *renderer) Resize(width, height int) {
	if r.released || width <= 0 || height <= 0 {
		return
	}
	if err := r.backend.ConfigureSurface(width, height); err != nil {
		log.Printf("[Renderer] resize to %dx%d failed: %v", width, height, err)
	}
}

func (r *renderer) MaxInstances() int {
	return r.maxInstances
}

func (r *renderer) Release() {
	if r.released {
		return
	}
	r.released = true
	r.inFrame = false
	if r.backend != nil {
		r.backend.Release()
	}
}

func marshalFloats(values []float32) []byte {
	buf := make([]byte, len(values)*4)
	for i, v := range values {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	return buf
}
