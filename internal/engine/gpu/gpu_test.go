package gpu

import (
	"errors"
	"testing"
)

func TestLayoutStride(t *testing.T) {
	if LayoutPosition.Stride() != 3 {
		t.Errorf("position stride = %d, want 3", LayoutPosition.Stride())
	}
	if LayoutPositionNormal.Stride() != 6 {
		t.Errorf("position+normal stride = %d, want 6", LayoutPositionNormal.Stride())
	}
	if LayoutPosition.HasNormals() || !LayoutPositionNormal.HasNormals() {
		t.Error("HasNormals mismatch")
	}
}

func TestLayoutValidate(t *testing.T) {
	tests := []struct {
		name     string
		layout   VertexLayout
		vertices int
		indices  int
		want     error
	}{
		{"ok position", LayoutPosition, 9, 3, nil},
		{"ok normals", LayoutPositionNormal, 18, 3, nil},
		{"bad stride", LayoutPositionNormal, 9, 3, ErrStride},
		{"no vertices", LayoutPosition, 0, 3, ErrEmptyUpload},
		{"no indices", LayoutPosition, 9, 0, ErrEmptyUpload},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.layout.Validate(make([]float32, tt.vertices), make([]uint32, tt.indices))
			if !errors.Is(err, tt.want) {
				t.Errorf("Validate = %v, want %v", err, tt.want)
			}
		})
	}
}
