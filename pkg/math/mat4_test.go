package math

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

const eps = 1e-9

func TestIdentity(t *testing.T) {
	m := Identity()
	// Diagonal should be 1
	if m[0] != 1 || m[5] != 1 || m[10] != 1 || m[15] != 1 {
		t.Error("Identity diagonal should be 1")
	}
	// Off-diagonal should be 0
	if m[1] != 0 || m[4] != 0 || m[12] != 0 {
		t.Error("Identity off-diagonal should be 0")
	}
}

func TestMulIdentity(t *testing.T) {
	m := Translation(1, 2, 3)
	result := m.Mul(Identity())
	if result != m {
		t.Errorf("M * I should equal M, got\n%v", result)
	}
}

// dense converts m to a gonum matrix with the same (row, col) meaning.
func dense(m Mat4) *mat.Dense {
	d := mat.NewDense(4, 4, nil)
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			d.Set(row, col, m.At(col, row))
		}
	}
	return d
}

func TestMulAgainstGonum(t *testing.T) {
	a := Translation(1, -2, 3).Mul(RotationY(0.7)).Mul(Scaling(2, 3, 4))
	b := RotationX(-1.1).Mul(Translation(5, 0, -1)).Mul(RotationZ(0.3))

	var want mat.Dense
	want.Mul(dense(a), dense(b))

	got := a.Mul(b)
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			if math.Abs(got.At(col, row)-want.At(row, col)) > eps {
				t.Errorf("cell (%d,%d) = %v, want %v", col, row, got.At(col, row), want.At(row, col))
			}
		}
	}

	if a.Mul(b).ApproxEqual(b.Mul(a), eps) {
		t.Error("expected a*b != b*a for these operands")
	}
}

func TestRotationInverse(t *testing.T) {
	builders := map[string]func(float64) Mat4{
		"X": RotationX,
		"Y": RotationY,
		"Z": RotationZ,
		"axis": func(a float64) Mat4 {
			return RotationAxis(Vec3{1, 2, -0.5}, a)
		},
	}
	angles := []float64{0, 0.1, math.Pi / 3, math.Pi, -2.5, 7}

	for name, rot := range builders {
		for _, a := range angles {
			got := rot(a).Mul(rot(-a))
			if !got.ApproxEqual(Identity(), eps) {
				t.Errorf("R%s(%v) * R%s(%v) != I:\n%v", name, a, name, -a, got)
			}
		}
	}
}

func TestRotationHandedness(t *testing.T) {
	q := math.Pi / 2
	tests := []struct {
		name string
		m    Mat4
		in   Vec3
		want Vec3
	}{
		{"X", RotationX(q), Vec3{0, 1, 0}, Vec3{0, 0, 1}},
		{"Y", RotationY(q), Vec3{0, 0, 1}, Vec3{1, 0, 0}},
		{"Z", RotationZ(q), Vec3{1, 0, 0}, Vec3{0, 1, 0}},
		{"axisY", RotationAxis(Up, q), Vec3{0, 0, 1}, Vec3{1, 0, 0}},
	}
	for _, tt := range tests {
		if got := tt.m.MulVec3(tt.in); !got.ApproxEqual(tt.want, eps) {
			t.Errorf("R%s(90) * %v = %v, want %v", tt.name, tt.in, got, tt.want)
		}
	}
}

func TestRotateY90(t *testing.T) {
	m := RotationY(math.Pi / 2)
	result := m.TransformPoint(Vec3{1, 0, 0})

	// After 90 degree Y rotation, (1,0,0) should become (0,0,-1)
	if !result.ApproxEqual(Vec3{0, 0, -1}, eps) {
		t.Errorf("RotateY 90: got %v, want (0, 0, -1)", result)
	}
}

func TestTranslation(t *testing.T) {
	m := Translation(5, 10, 15)

	// Translation should be in column 4 (indices 12, 13, 14)
	if m[12] != 5 || m[13] != 10 || m[14] != 15 {
		t.Errorf("Translation: got (%f, %f, %f), want (5, 10, 15)", m[12], m[13], m[14])
	}
	if m.Origin() != (Vec3{5, 10, 15}) {
		t.Errorf("Origin() = %v", m.Origin())
	}
}

func TestLocalFrameComposition(t *testing.T) {
	// Rotate first, then translate: the translation follows the rotated axes.
	m := Identity()
	m.RotateY(math.Pi / 2)
	m.Translate(Vec3{0, 0, 1})

	if got := m.Origin(); !got.ApproxEqual(Vec3{1, 0, 0}, eps) {
		t.Errorf("origin after local translate = %v, want (1,0,0)", got)
	}

	// Reversed order translates in world space.
	w := Identity()
	w.Translate(Vec3{0, 0, 1})
	w.RotateY(math.Pi / 2)
	if got := w.Origin(); !got.ApproxEqual(Vec3{0, 0, 1}, eps) {
		t.Errorf("origin after translate then rotate = %v, want (0,0,1)", got)
	}
}

func TestMutatorsMatchTwins(t *testing.T) {
	base := Translation(1, 2, 3).Mul(RotationZ(0.4))

	m := base
	m.RotateX(0.3)
	if m != base.RotatedX(0.3) {
		t.Error("RotateX differs from RotatedX")
	}

	m = base
	m.Scale(Vec3{2, 2, 2})
	if m != base.Scaled(Vec3{2, 2, 2}) {
		t.Error("Scale differs from Scaled")
	}

	m = base
	m.ScaleUniform(2)
	if m != base.Scaled(Vec3{2, 2, 2}) {
		t.Error("ScaleUniform differs from Scaled")
	}

	m = base
	m.Multiply(RotationY(1))
	if m != base.Mul(RotationY(1)) {
		t.Error("Multiply differs from Mul")
	}
}

func TestScaling(t *testing.T) {
	m := Scaling(2, 3, 4)
	if m[0] != 2 || m[5] != 3 || m[10] != 4 {
		t.Errorf("Scaling diagonal: got (%f, %f, %f), want (2, 3, 4)", m[0], m[5], m[10])
	}
	got := m.TransformPoint(Vec3{1, 2, 3})
	if got != (Vec3{2, 6, 12}) {
		t.Errorf("TransformPoint with scale: got %v", got)
	}
}

func TestPerspectiveClosedForm(t *testing.T) {
	m := Perspective(90, 1, 1, 2)

	checks := []struct {
		col, row int
		want     float64
	}{
		{0, 0, 1},
		{1, 1, 1},
		{2, 0, 0},
		{2, 1, 0},
		{2, 2, -3},
		{2, 3, -1},
		{3, 2, -4},
		{3, 3, 0},
	}
	for _, c := range checks {
		if got := m.At(c.col, c.row); math.Abs(got-c.want) > 1e-12 {
			t.Errorf("Perspective[%d][%d] = %v, want %v", c.col, c.row, got, c.want)
		}
	}

	// Every other cell is zero.
	nonZero := map[int]bool{0: true, 5: true, 10: true, 11: true, 14: true, 8: true, 9: true}
	for i, v := range m {
		if !nonZero[i] && v != 0 {
			t.Errorf("Perspective cell %d = %v, want 0", i, v)
		}
	}
}

func TestFrustumOffAxis(t *testing.T) {
	m := Frustum(-1, 3, -2, 2, 1, 10)
	if got := m.At(2, 0); got != 0.5 {
		t.Errorf("Frustum[2][0] = %v, want 0.5", got)
	}
	if got := m.At(0, 0); got != 0.5 {
		t.Errorf("Frustum[0][0] = %v, want 0.5", got)
	}
}

func TestLookAtOrthonormal(t *testing.T) {
	m := LookAt(Vec3{0, 0, 5}, Vec3{0, 0, 0}, Vec3{0, 1, 0})

	// Rows 0..2 of the upper 3x3 are side, up and -forward.
	basis := []Vec3{
		{m.At(0, 0), m.At(1, 0), m.At(2, 0)},
		{m.At(0, 1), m.At(1, 1), m.At(2, 1)},
		{m.At(0, 2), m.At(1, 2), m.At(2, 2)},
	}
	for i, b := range basis {
		if math.Abs(b.Length()-1) > eps {
			t.Errorf("basis %d length = %v, want 1", i, b.Length())
		}
		for j := i + 1; j < len(basis); j++ {
			if d := b.Dot(basis[j]); math.Abs(d) > eps {
				t.Errorf("basis %d . basis %d = %v, want 0", i, j, d)
			}
		}
	}

	// The eye maps to the origin of view space.
	if got := m.TransformPoint(Vec3{0, 0, 5}); !got.ApproxEqual(Zero, eps) {
		t.Errorf("eye in view space = %v, want origin", got)
	}
	if got := m.TransformPoint(Vec3{0, 0, 0}); !got.ApproxEqual(Vec3{0, 0, -5}, eps) {
		t.Errorf("center in view space = %v, want (0,0,-5)", got)
	}
	if m[15] != 1 {
		t.Errorf("LookAt [15] should be 1, got %f", m[15])
	}
}

func TestFloat32sColumnMajor(t *testing.T) {
	m := Translation(7, 8, 9)
	m.Set(1, 0, 0.5) // column 1, row 0

	got := m.Float32s()
	if got[12] != 7 || got[13] != 8 || got[14] != 9 {
		t.Errorf("translation not in elements 12..14: %v", got)
	}
	if got[4] != 0.5 {
		t.Errorf("cell (1,0) should export at index 4, got %v", got)
	}
	for i := range m {
		if float32(m[i]) != got[i] {
			t.Fatalf("export index %d = %v, want %v", i, got[i], m[i])
		}
	}
}

func TestOutOfRangeAccessIsLenient(t *testing.T) {
	m := Identity()
	if got := m.At(4, 0); got != 0 {
		t.Errorf("At(4,0) = %v, want 0", got)
	}
	if got := m.At(0, -1); got != 0 {
		t.Errorf("At(0,-1) = %v, want 0", got)
	}
	before := m
	m.Set(7, 7, 42)
	m.Set(-1, 2, 42)
	if m != before {
		t.Error("out-of-range Set modified the matrix")
	}
}

func TestBasisAccessors(t *testing.T) {
	var m Mat4
	m.SetX(Vec3{1, 2, 3})
	m.SetY(Vec3{4, 5, 6})
	m.SetZ(Vec3{7, 8, 9})
	m.SetOrigin(Vec3{10, 11, 12})

	if m.X() != (Vec3{1, 2, 3}) || m.Y() != (Vec3{4, 5, 6}) || m.Z() != (Vec3{7, 8, 9}) {
		t.Errorf("basis mismatch: %v %v %v", m.X(), m.Y(), m.Z())
	}
	if m.Origin() != (Vec3{10, 11, 12}) {
		t.Errorf("Origin() = %v", m.Origin())
	}
	if m.At(3, 1) != 11 {
		t.Errorf("origin y should be cell (3,1), got %v", m.At(3, 1))
	}
}

func TestInverse(t *testing.T) {
	m := Translation(1, 2, 3).Mul(RotationY(0.8)).Mul(Scaling(2, 2, 2))
	if got := m.Mul(m.Inverse()); !got.ApproxEqual(Identity(), eps) {
		t.Errorf("M * M^-1 != I:\n%v", got)
	}
	var singular Mat4
	if singular.Inverse() != Identity() {
		t.Error("inverse of singular matrix should be identity")
	}
}

func TestTranspose(t *testing.T) {
	m := Translation(1, 2, 3)
	tr := m.Transpose()
	if tr.At(0, 3) != 1 || tr.At(1, 3) != 2 || tr.At(2, 3) != 3 {
		t.Errorf("Transpose moved translation incorrectly:\n%v", tr)
	}
	if tr.Transpose() != m {
		t.Error("double transpose should be identity operation")
	}
}
