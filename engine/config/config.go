package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/Carmen-Shannon/oxy-flycam/engine/camera"
	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

// Config is the demo's YAML configuration. Missing keys keep their Default values.
type Config struct {
	Window WindowConfig `yaml:"window"`
	Camera CameraConfig `yaml:"camera"`
	Render RenderConfig `yaml:"render"`
	Seed   int64        `yaml:"seed"`
}

type WindowConfig struct {
	Title         string `yaml:"title"`
	Width         int    `yaml:"width"`
	Height        int    `yaml:"height"`
	CaptureCursor bool   `yaml:"capture_cursor"`
}

// CameraConfig holds the initial camera state. Angles and zoom are in degrees.
type CameraConfig struct {
	Position         mgl32.Vec3 `yaml:"position"`
	WorldUp          mgl32.Vec3 `yaml:"world_up"`
	Yaw              float32    `yaml:"yaw"`
	Pitch            float32    `yaml:"pitch"`
	MovementSpeed    float32    `yaml:"movement_speed"`
	MouseSensitivity float32    `yaml:"mouse_sensitivity"`
	Zoom             float32    `yaml:"zoom"`
}

// RenderConfig covers the renderer and scene. Workers 0 picks one per spare CPU.
type RenderConfig struct {
	Near       float32 `yaml:"near"`
	Far        float32 `yaml:"far"`
	FrameLimit float64 `yaml:"frame_limit"`
	Shader     string  `yaml:"shader"`
	Texture    string  `yaml:"texture"`
	Workers    int     `yaml:"workers"`
	Culling    bool    `yaml:"culling"`
	Profiling  bool    `yaml:"profiling"`
}

// Default returns the configuration used when no file is present.
//
// Returns:
//   - Config: the defaults
func Default() Config {
	return Config{
		Window: WindowConfig{
			Title:         "oxy-flycam",
			Width:         800,
			Height:        600,
			CaptureCursor: true,
		},
		Camera: CameraConfig{
			Position:         mgl32.Vec3{0, 0, 3},
			WorldUp:          mgl32.Vec3{0, 1, 0},
			Yaw:              camera.DefaultYaw,
			Pitch:            camera.DefaultPitch,
			MovementSpeed:    camera.DefaultMovementSpeed,
			MouseSensitivity: camera.DefaultMouseSensitivity,
			Zoom:             camera.DefaultZoom,
		},
		Render: RenderConfig{
			Near:    0.1,
			Far:     100,
			Shader:  "examples/assets/shaders/textured_cube.wgsl",
			Texture: "examples/assets/textures/container.jpg",
			Culling: true,
		},
	}
}

// Load reads and parses a config file. A missing file yields Default.
//
// Parameters:
//   - path: the YAML file
//
// Returns:
//   - Config: the parsed and validated config
//   - error: a read, decode or validation error
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML over Default and validates the result. Unknown keys are an error.
//
// Parameters:
//   - data: the YAML document
//
// Returns:
//   - Config: the parsed config
//   - error: a decode or validation error
func Parse(data []byte) (Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("unmarshal: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports every out-of-range value at once.
//
// Returns:
//   - error: the joined validation errors, or nil
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Window.Width > 0 && c.Window.Height > 0, "window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	check(c.Camera.WorldUp.Len() > 0, "camera.world_up must be non-zero")
	check(c.Camera.MovementSpeed >= 0, "camera.movement_speed %v must not be negative", c.Camera.MovementSpeed)
	check(c.Camera.MouseSensitivity >= 0, "camera.mouse_sensitivity %v must not be negative", c.Camera.MouseSensitivity)
	check(c.Camera.Zoom >= camera.MinZoom && c.Camera.Zoom <= camera.MaxZoom, "camera.zoom %v must be within [%v, %v]", c.Camera.Zoom, camera.MinZoom, camera.MaxZoom)
	check(c.Render.Near > 0 && c.Render.Near < c.Render.Far, "render.near %v must be positive and below render.far %v", c.Render.Near, c.Render.Far)
	check(c.Render.FrameLimit >= 0, "render.frame_limit %v must not be negative", c.Render.FrameLimit)
	check(c.Render.Workers >= 0, "render.workers %d must not be negative", c.Render.Workers)
	check(c.Render.Shader != "", "render.shader must be set")

	return errors.Join(errs...)
}

// CameraOptions converts the camera section to builder options.
//
// Returns:
//   - []camera.CameraBuilderOption: options for camera.NewCamera
func (c Config) CameraOptions() []camera.CameraBuilderOption {
	return []camera.CameraBuilderOption{
		camera.WithPosition(c.Camera.Position),
		camera.WithWorldUp(c.Camera.WorldUp),
		camera.WithYaw(c.Camera.Yaw),
		camera.WithPitch(c.Camera.Pitch),
		camera.WithMovementSpeed(c.Camera.MovementSpeed),
		camera.WithMouseSensitivity(c.Camera.MouseSensitivity),
		camera.WithZoom(c.Camera.Zoom),
	}
}
