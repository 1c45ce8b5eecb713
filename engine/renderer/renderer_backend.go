package renderer

import (
	"github.com/Carmen-Shannon/oxy-flycam/common"
	"github.com/Carmen-Shannon/oxy-flycam/engine/renderer/shader"
)

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for the vertical blank before presenting. No tearing.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents immediately. Lowest latency, may tear.
	PresentModeUncapped
)

// ClearColor is the linear RGBA color the color attachment is cleared to each frame.
type ClearColor struct {
	R, G, B, A float64
}

// VertexStride is the size in bytes of one interleaved vertex: position vec3 + uv vec2.
const VertexStride = 5 * 4

// instanceStride is the size in bytes of one mat4x4<f32> in the instance storage buffer.
const instanceStride = 16 * 4

// RendererBackend is the GPU API surface the renderer drives. Byte slices are already
// laid out for upload.
type RendererBackend interface {
	ConfigureSurface(width, height int) error
	SetPresentMode(mode PresentMode)
	SetClearColor(color ClearColor)

	// CreateResources allocates the camera uniform, the instance storage buffer sized for
	// maxInstances, the sampler, a 1x1 white texture and the fixed bind group layout.
	CreateResources(maxInstances int) error

	CreatePipeline(s shader.Shader) error
	UploadVertices(data []byte, vertexCount uint32) error
	UploadTexture(data common.TextureStagingData) error
	WriteCamera(data []byte)
	WriteInstances(data []byte)

	BeginFrame() error
	Draw(instanceCount uint32) error
	EndFrame() error
	Present()

	Release()
}
