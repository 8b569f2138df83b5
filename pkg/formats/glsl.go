// Combined GLSL source files: one file carries both stages, split by
// "#shader vertex" and "#shader fragment" marker lines.
package formats

import (
	"bufio"
	"bytes"
	"errors"
	"strings"
)

// Shader source errors.
var (
	ErrMissingVertexStage   = errors.New("shader source has no vertex stage")
	ErrMissingFragmentStage = errors.New("shader source has no fragment stage")
)

// ShaderSource holds the per-stage sources of a combined shader file.
type ShaderSource struct {
	Vertex   string
	Fragment string
}

// SplitShader splits a combined shader file into its stages. Lines before
// the first marker are dropped.
func SplitShader(data []byte) (ShaderSource, error) {
	var vert, frag strings.Builder
	var target *strings.Builder

	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := sc.Text()
		if strings.HasPrefix(strings.TrimSpace(line), "#shader") {
			switch {
			case strings.Contains(line, "vertex"):
				target = &vert
			case strings.Contains(line, "fragment"):
				target = &frag
			default:
				target = nil
			}
			continue
		}
		if target != nil {
			target.WriteString(line)
			target.WriteByte('\n')
		}
	}
	if err := sc.Err(); err != nil {
		return ShaderSource{}, err
	}

	src := ShaderSource{Vertex: vert.String(), Fragment: frag.String()}
	if strings.TrimSpace(src.Vertex) == "" {
		return src, ErrMissingVertexStage
	}
	if strings.TrimSpace(src.Fragment) == "" {
		return src, ErrMissingFragmentStage
	}
	return src, nil
}
