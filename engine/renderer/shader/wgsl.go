package shader

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// BindingKind classifies a WGSL resource declaration.
type BindingKind int

const (
	BindingKindUnknown BindingKind = iota
	BindingKindUniform
	BindingKindStorage
	BindingKindReadOnlyStorage
	BindingKindTexture
	BindingKindSampler
	BindingKindComparisonSampler
)

func (k BindingKind) String() string {
	switch k {
	case BindingKindUniform:
		return "uniform"
	case BindingKindStorage:
		return "storage"
	case BindingKindReadOnlyStorage:
		return "read-only storage"
	case BindingKindTexture:
		return "texture"
	case BindingKindSampler:
		return "sampler"
	case BindingKindComparisonSampler:
		return "comparison sampler"
	default:
		return "unknown"
	}
}

// Binding is one `@group(G) @binding(B) var<...> name: type;` declaration.
type Binding struct {
	Group   int
	Binding int
	Name    string
	Type    string
	Kind    BindingKind
}

var (
	vertexEntryRegex   = regexp.MustCompile(`(?s)@vertex\b.*?\bfn\s+(\w+)`)
	fragmentEntryRegex = regexp.MustCompile(`(?s)@fragment\b.*?\bfn\s+(\w+)`)

	// captures group, binding, optional address space, name and type
	bindingDeclRegex = regexp.MustCompile(`@group\((\d+)\)\s*@binding\((\d+)\)\s*var(?:<([^>]*)>)?\s+(\w+)\s*:\s*([^;]+?)\s*;`)
)

func parseEntryPoint(cleaned string, re *regexp.Regexp) string {
	if m := re.FindStringSubmatch(cleaned); m != nil {
		return m[1]
	}
	return ""
}

func parseBindings(cleaned string) ([]Binding, error) {
	var out []Binding
	seen := make(map[[2]int]string)

	for _, m := range bindingDeclRegex.FindAllStringSubmatch(cleaned, -1) {
		group, _ := strconv.Atoi(m[1])
		binding, _ := strconv.Atoi(m[2])
		name := strings.TrimSpace(m[4])

		slot := [2]int{group, binding}
		if prev, dup := seen[slot]; dup {
			return nil, fmt.Errorf("@group(%d) @binding(%d) declared by both %s and %s", group, binding, prev, name)
		}
		seen[slot] = name

		typeName := strings.TrimSpace(m[5])
		out = append(out, Binding{
			Group:   group,
			Binding: binding,
			Name:    name,
			Type:    typeName,
			Kind:    classify(strings.TrimSpace(m[3]), typeName),
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Group != out[j].Group {
			return out[i].Group < out[j].Group
		}
		return out[i].Binding < out[j].Binding
	})
	return out, nil
}

func classify(addressSpace, typeName string) BindingKind {
	if addressSpace != "" {
		switch {
		case addressSpace == "uniform":
			return BindingKindUniform
		case strings.HasPrefix(addressSpace, "storage"):
			if strings.Contains(addressSpace, "read_write") {
				return BindingKindStorage
			}
			return BindingKindReadOnlyStorage
		}
		return BindingKindUnknown
	}

	switch {
	case typeName == "sampler":
		return BindingKindSampler
	case typeName == "sampler_comparison":
		return BindingKindComparisonSampler
	case strings.HasPrefix(typeName, "texture_"):
		return BindingKindTexture
	}
	return BindingKindUnknown
}

// stripComments removes // and /* */ comments; WGSL block comments nest.
func stripComments(source string) string {
	var sb strings.Builder
	depth := 0
	for i := 0; i < len(source); i++ {
		switch {
		case strings.HasPrefix(source[i:], "/*"):
			depth++
			i++
		case depth > 0 && strings.HasPrefix(source[i:], "*/"):
			depth--
			i++
		case depth > 0:
			if source[i] == '\n' {
				sb.WriteByte('\n')
			}
		case strings.HasPrefix(source[i:], "//"):
			for i < len(source) && source[i] != '\n' {
				i++
			}
			if i < len(source) {
				sb.WriteByte('\n')
			}
		default:
			sb.WriteByte(source[i])
		}
	}
	return sb.String()
}
