package formats

import (
	"errors"
	"strings"
	"testing"
)

func TestSplitShader(t *testing.T) {
	src := `// combined
#shader vertex
#version 410 core
void main() { gl_Position = vec4(0.0); }
#shader fragment
#version 410 core
out vec4 color;
void main() { color = vec4(1.0); }
`
	s, err := SplitShader([]byte(src))
	if err != nil {
		t.Fatalf("SplitShader failed: %v", err)
	}
	if !strings.HasPrefix(s.Vertex, "#version 410 core\n") {
		t.Errorf("vertex stage = %q", s.Vertex)
	}
	if strings.Contains(s.Vertex, "color") {
		t.Error("vertex stage contains fragment code")
	}
	if !strings.Contains(s.Fragment, "out vec4 color;") {
		t.Errorf("fragment stage = %q", s.Fragment)
	}
	if strings.Contains(s.Vertex, "combined") || strings.Contains(s.Fragment, "combined") {
		t.Error("lines before the first marker should be dropped")
	}
}

func TestSplitShader_MissingStage(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want error
	}{
		{"no vertex", "#shader fragment\nvoid main() {}\n", ErrMissingVertexStage},
		{"no fragment", "#shader vertex\nvoid main() {}\n", ErrMissingFragmentStage},
		{"empty", "", ErrMissingVertexStage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SplitShader([]byte(tt.src))
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}
