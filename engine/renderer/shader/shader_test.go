package shader

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const cubeSource = `
struct CameraUniform {
    view: mat4x4<f32>,
};

@group(0) @binding(0) var<uniform> camera: CameraUniform;
@group(0) @binding(3) var cube_sampler: sampler;
@group(0) @binding(1) var<storage, read> models: array<mat4x4<f32>>;
@group(0) @binding(2) var cube_texture: texture_2d<f32>;
// @group(0) @binding(4) var<uniform> commented: f32;
/* @group(0) @binding(5) var /* nested */ hidden: sampler; */

@vertex
fn vs_main(@location(0) p: vec3<f32>) -> @builtin(position) vec4<f32> {
    return camera.view * vec4<f32>(p, 1.0);
}

@fragment
fn fs_main() -> @location(0) vec4<f32> {
    return vec4<f32>(1.0);
}
`

func TestNewShaderParsesEntryPoints(t *testing.T) {
	s, err := NewShader("cube", cubeSource)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.VertexEntryPoint() != "vs_main" || s.FragmentEntryPoint() != "fs_main" {
		t.Fatalf("unexpected entry points %q %q", s.VertexEntryPoint(), s.FragmentEntryPoint())
	}
	if s.Key() != "cube" || s.Source() != cubeSource {
		t.Fatalf("key or source not preserved")
	}
}

func TestNewShaderBindings(t *testing.T) {
	s, err := NewShader("cube", cubeSource)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []struct {
		binding int
		name    string
		kind    BindingKind
	}{
		{0, "camera", BindingKindUniform},
		{1, "models", BindingKindReadOnlyStorage},
		{2, "cube_texture", BindingKindTexture},
		{3, "cube_sampler", BindingKindSampler},
	}

	got := s.Bindings()
	if len(got) != len(want) {
		t.Fatalf("expected %d bindings, got %+v", len(want), got)
	}
	for i, w := range want {
		if got[i].Group != 0 || got[i].Binding != w.binding || got[i].Name != w.name || got[i].Kind != w.kind {
			t.Fatalf("binding %d: expected %+v, got %+v", i, w, got[i])
		}
	}

	if _, ok := s.Binding(0, 4); ok {
		t.Fatalf("commented-out declaration was parsed")
	}
	if b, ok := s.Binding(0, 2); !ok || b.Type != "texture_2d<f32>" {
		t.Fatalf("expected texture at binding 2, got %+v", b)
	}
}

func TestNewShaderErrors(t *testing.T) {
	cases := []struct {
		name   string
		source string
		want   string
	}{
		{
			name:   "missing_vertex",
			source: "@fragment fn fs() -> @location(0) vec4<f32> { return vec4<f32>(1.0); }",
			want:   "@vertex",
		},
		{
			name:   "missing_fragment",
			source: "@vertex fn vs() -> @builtin(position) vec4<f32> { return vec4<f32>(1.0); }",
			want:   "@fragment",
		},
		{
			name:   "entry_point_only_in_comment",
			source: "// @vertex fn vs()\n@fragment fn fs() -> @location(0) vec4<f32> { return vec4<f32>(1.0); }",
			want:   "@vertex",
		},
		{
			name: "duplicate_slot",
			source: `@group(0) @binding(0) var<uniform> a: f32;
@group(0) @binding(0) var<uniform> b: f32;
@vertex fn vs() -> @builtin(position) vec4<f32> { return vec4<f32>(a); }
@fragment fn fs() -> @location(0) vec4<f32> { return vec4<f32>(b); }`,
			want: "declared by both",
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := NewShader(c.name, c.source)
			if err == nil || !strings.Contains(err.Error(), c.want) {
				t.Fatalf("expected error containing %q, got %v", c.want, err)
			}
		})
	}
}

func TestNewShaderFromPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cube.wgsl")
	if err := os.WriteFile(path, []byte(cubeSource), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := NewShaderFromPath("cube", path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(s.Bindings()) != 4 {
		t.Fatalf("expected 4 bindings, got %d", len(s.Bindings()))
	}

	if _, err := NewShaderFromPath("missing", filepath.Join(dir, "nope.wgsl")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestDemoShaderParses(t *testing.T) {
	s, err := NewShaderFromPath("textured_cube", filepath.Join("..", "..", "..", "examples", "assets", "shaders", "textured_cube.wgsl"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(s.Bindings()) != 4 {
		t.Fatalf("expected 4 bindings, got %+v", s.Bindings())
	}
}
