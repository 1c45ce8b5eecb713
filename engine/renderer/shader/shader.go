// Package shader loads WGSL source and extracts the declarations the renderer checks before
// building a pipeline: the vertex and fragment entry points and the @group/@binding resources.
package shader

import (
	"fmt"
	"os"
)

type shader struct {
	key           string
	source        string
	vertexEntry   string
	fragmentEntry string
	bindings      []Binding
}

// Shader is a parsed WGSL module holding one vertex and one fragment entry point.
type Shader interface {
	// Key returns the identifier used as the GPU object label.
	//
	// Returns:
	//   - string: the shader's key
	Key() string

	// Source returns the WGSL source code.
	//
	// Returns:
	//   - string: the WGSL source
	Source() string

	// VertexEntryPoint returns the name of the @vertex function.
	//
	// Returns:
	//   - string: the vertex entry point
	VertexEntryPoint() string

	// FragmentEntryPoint returns the name of the @fragment function.
	//
	// Returns:
	//   - string: the fragment entry point
	FragmentEntryPoint() string

	// Bindings returns the declared resources sorted by group then binding.
	//
	// Returns:
	//   - []Binding: a copy of the resource declarations
	Bindings() []Binding

	// Binding looks up a declared resource.
	//
	// Parameters:
	//   - group: the @group index
	//   - binding: the @binding index
	//
	// Returns:
	//   - Binding: the declaration
	//   - bool: false if nothing is declared at that slot
	Binding(group, binding int) (Binding, bool)
}

var _ Shader = &shader{}

// NewShader parses WGSL source. It fails when either entry point is missing or two resources
// share a slot.
//
// Parameters:
//   - key: label for the shader and the GPU objects built from it
//   - source: WGSL source code
//
// Returns:
//   - Shader: the parsed shader
//   - error: an error describing the first problem found
func NewShader(key, source string) (Shader, error) {
	cleaned := stripComments(source)

	s := &shader{
		key:           key,
		source:        source,
		vertexEntry:   parseEntryPoint(cleaned, vertexEntryRegex),
		fragmentEntry: parseEntryPoint(cleaned, fragmentEntryRegex),
	}
	if s.vertexEntry == "" {
		return nil, fmt.Errorf("shader %s: no @vertex entry point", key)
	}
	if s.fragmentEntry == "" {
		return nil, fmt.Errorf("shader %s: no @fragment entry point", key)
	}

	bindings, err := parseBindings(cleaned)
	if err != nil {
		return nil, fmt.Errorf("shader %s: %w", key, err)
	}
	s.bindings = bindings
	return s, nil
}

// NewShaderFromPath reads a WGSL file and parses it with NewShader.
//
// Parameters:
//   - key: label for the shader
//   - path: path to the .wgsl file
//
// Returns:
//   - Shader: the parsed shader
//   - error: a read or parse error
func NewShaderFromPath(key, path string) (Shader, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("shader %s: failed to read %q: %w", key, path, err)
	}
	return NewShader(key, string(data))
}

func (s *shader) Key() string {
	return s.key
}

func (s *shader) Source() string {
	return s.source
}

func (s *shader) VertexEntryPoint() string {
	return s.vertexEntry
}

func (s *shader) FragmentEntryPoint() string {
	return s.fragmentEntry
}

func (s *shader) Bindings() []Binding {
	out := make([]Binding, len(s.bindings))
	copy(out, s.bindings)
	return out
}

func (s *shader) Binding(group, binding int) (Binding, bool) {
	for _, b := range s.bindings {
		if b.Group == group && b.Binding == binding {
			return b, true
		}
	}
	return Binding{}, false
}
