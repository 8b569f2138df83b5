package formats

import (
	"bytes"
	"strings"
	"testing"

	"github.com/Faultbox/facet/pkg/math"
)

func TestWriteOBJReadsBack(t *testing.T) {
	src := &OBJ{
		Name: "wedge",
		Vertices: []OBJVertex{
			{Position: math.Vec3{X: 0, Y: 0, Z: 0}, Normal: math.Vec3{Z: 1}},
			{Position: math.Vec3{X: 1.5, Y: 0, Z: 0}, Normal: math.Vec3{Z: 1}},
			{Position: math.Vec3{X: 0, Y: -2, Z: 0.25}, Normal: math.Vec3{Y: -1}},
		},
		Indices: []uint32{0, 1, 2},
		Smooth:  true,
	}

	var buf bytes.Buffer
	if err := WriteOBJ(&buf, src); err != nil {
		t.Fatalf("WriteOBJ: %v", err)
	}
	if !strings.Contains(buf.String(), "f 1//1 2//2 3//3\n") {
		t.Errorf("unexpected face record:\n%s", buf.String())
	}

	got, err := ParseOBJ(buf.Bytes())
	if err != nil {
		t.Fatalf("ParseOBJ: %v", err)
	}
	if got.Name != "wedge" || !got.Smooth {
		t.Errorf("name/smooth = %q/%v", got.Name, got.Smooth)
	}
	if len(got.Vertices) != 3 || got.TriangleCount() != 1 {
		t.Fatalf("read back %d vertices, %d triangles", len(got.Vertices), got.TriangleCount())
	}
	for i := range src.Vertices {
		if got.Vertices[i] != src.Vertices[i] {
			t.Errorf("vertex %d = %+v, want %+v", i, got.Vertices[i], src.Vertices[i])
		}
	}
	// Only the "o" record warns.
	if len(got.Warnings) != 1 || got.Warnings[0].Kind != WarnNameSkipped {
		t.Errorf("warnings = %v", got.Warnings)
	}
}
