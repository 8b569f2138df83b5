package math

import (
	"fmt"
	"math"
	"strings"
)

// Mat4 is a 4x4 matrix stored column-major (OpenGL compatible).
// Cell (col, row) lives at index col*4+row:
//
//	[m0 m4 m8  m12]
//	[m1 m5 m9  m13]
//	[m2 m6 m10 m14]
//	[m3 m7 m11 m15]
//
// Translation is column 3. The zero value is an accumulator, not a usable
// node transform; start transforms from Identity.
type Mat4 [16]float64

// Identity returns an identity matrix, the starting point for every
// node transform.
func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Translation returns a pure translation matrix.
func Translation(x, y, z float64) Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		x, y, z, 1,
	}
}

// Scaling returns a pure scale matrix.
func Scaling(x, y, z float64) Mat4 {
	return Mat4{
		x, 0, 0, 0,
		0, y, 0, 0,
		0, 0, z, 0,
		0, 0, 0, 1,
	}
}

// RotationX returns a rotation around the X axis. angle is in radians.
func RotationX(angle float64) Mat4 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Mat4{
		1, 0, 0, 0,
		0, c, s, 0,
		0, -s, c, 0,
		0, 0, 0, 1,
	}
}

// RotationY returns a rotation around the Y axis. angle is in radians.
func RotationY(angle float64) Mat4 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Mat4{
		c, 0, -s, 0,
		0, 1, 0, 0,
		s, 0, c, 0,
		0, 0, 0, 1,
	}
}

// RotationZ returns a rotation around the Z axis. angle is in radians.
func RotationZ(angle float64) Mat4 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Mat4{
		c, s, 0, 0,
		-s, c, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// RotationAxis returns a rotation around an arbitrary axis.
// The axis is normalized first; angle is in radians.
func RotationAxis(axis Vec3, angle float64) Mat4 {
	a := axis.Normalized()
	c, s := math.Cos(angle), math.Sin(angle)
	t := 1 - c
	x, y, z := a.X, a.Y, a.Z

	return Mat4{
		t*x*x + c, t*x*y + s*z, t*x*z - s*y, 0,
		t*x*y - s*z, t*y*y + c, t*y*z + s*x, 0,
		t*x*z + s*y, t*y*z - s*x, t*z*z + c, 0,
		0, 0, 0, 1,
	}
}

// Perspective returns a perspective projection built from a vertical
// field of view in degrees.
func Perspective(fovYDeg, aspect, near, far float64) Mat4 {
	top := math.Tan(DegToRad(fovYDeg)/2.0) * near
	bottom := -top
	right := top * aspect
	left := -right
	return Frustum(left, right, bottom, top, near, far)
}

// Frustum returns an off-axis perspective projection.
func Frustum(left, right, bottom, top, near, far float64) Mat4 {
	var m Mat4
	m.Set(0, 0, (2*near)/(right-left))
	m.Set(1, 1, (2*near)/(top-bottom))
	m.Set(2, 0, (right+left)/(right-left))
	m.Set(2, 1, (top+bottom)/(top-bottom))
	m.Set(2, 2, -(far+near)/(far-near))
	m.Set(2, 3, -1)
	m.Set(3, 2, -(2*far*near)/(far-near))
	return m
}

// LookAt returns a view matrix looking from eye to center with up direction.
func LookAt(eye, center, up Vec3) Mat4 {
	f := center.Sub(eye).Normalized()
	s := f.Cross(up).Normalized()
	u := s.Cross(f)

	return Mat4{
		s.X, u.X, -f.X, 0,
		s.Y, u.Y, -f.Y, 0,
		s.Z, u.Z, -f.Z, 0,
		-s.Dot(eye), -u.Dot(eye), f.Dot(eye), 1,
	}
}

// At returns cell (col, row). Out-of-range indices return 0.
func (m *Mat4) At(col, row int) float64 {
	if col < 0 || col > 3 || row < 0 || row > 3 {
		return 0
	}
	return m[col*4+row]
}

// Set writes cell (col, row). Out-of-range indices are ignored.
func (m *Mat4) Set(col, row int, v float64) {
	if col < 0 || col > 3 || row < 0 || row > 3 {
		return
	}
	m[col*4+row] = v
}

// Mul returns m * other.
func (m Mat4) Mul(other Mat4) Mat4 {
	var result Mat4
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			result[col*4+row] =
				m[0*4+row]*other[col*4+0] +
					m[1*4+row]*other[col*4+1] +
					m[2*4+row]*other[col*4+2] +
					m[3*4+row]*other[col*4+3]
		}
	}
	return result
}

// Multiply sets m to m * other.
func (m *Mat4) Multiply(other Mat4) {
	*m = m.Mul(other)
}

// Translated returns m * Translation(v).
func (m Mat4) Translated(v Vec3) Mat4 {
	return m.Mul(Translation(v.X, v.Y, v.Z))
}

// Translate moves m along its local axes.
func (m *Mat4) Translate(v Vec3) {
	*m = m.Translated(v)
}

// Scaled returns m * Scaling(v).
func (m Mat4) Scaled(v Vec3) Mat4 {
	return m.Mul(Scaling(v.X, v.Y, v.Z))
}

// Scale scales m along its local axes.
func (m *Mat4) Scale(v Vec3) {
	*m = m.Scaled(v)
}

// ScaleUniform scales m by s on all three local axes.
func (m *Mat4) ScaleUniform(s float64) {
	*m = m.Scaled(Splat(s))
}

// RotatedX returns m * RotationX(angle).
func (m Mat4) RotatedX(angle float64) Mat4 {
	return m.Mul(RotationX(angle))
}

// RotatedY returns m * RotationY(angle).
func (m Mat4) RotatedY(angle float64) Mat4 {
	return m.Mul(RotationY(angle))
}

// RotatedZ returns m * RotationZ(angle).
func (m Mat4) RotatedZ(angle float64) Mat4 {
	return m.Mul(RotationZ(angle))
}

// RotatedAxis returns m * RotationAxis(axis, angle).
func (m Mat4) RotatedAxis(axis Vec3, angle float64) Mat4 {
	return m.Mul(RotationAxis(axis, angle))
}

// RotateX rotates m around its local X axis.
func (m *Mat4) RotateX(angle float64) {
	*m = m.RotatedX(angle)
}

// RotateY rotates m around its local Y axis.
func (m *Mat4) RotateY(angle float64) {
	*m = m.RotatedY(angle)
}

// RotateZ rotates m around its local Z axis.
func (m *Mat4) RotateZ(angle float64) {
	*m = m.RotatedZ(angle)
}

// RotateAxis rotates m around an arbitrary local axis.
func (m *Mat4) RotateAxis(axis Vec3, angle float64) {
	*m = m.RotatedAxis(axis, angle)
}

// X returns basis column 0.
func (m *Mat4) X() Vec3 { return Vec3{m[0], m[1], m[2]} }

// Y returns basis column 1.
func (m *Mat4) Y() Vec3 { return Vec3{m[4], m[5], m[6]} }

// Z returns basis column 2.
func (m *Mat4) Z() Vec3 { return Vec3{m[8], m[9], m[10]} }

// Origin returns the translation column.
func (m *Mat4) Origin() Vec3 { return Vec3{m[12], m[13], m[14]} }

// SetX replaces basis column 0.
func (m *Mat4) SetX(v Vec3) { m[0], m[1], m[2] = v.X, v.Y, v.Z }

// SetY replaces basis column 1.
func (m *Mat4) SetY(v Vec3) { m[4], m[5], m[6] = v.X, v.Y, v.Z }

// SetZ replaces basis column 2.
func (m *Mat4) SetZ(v Vec3) { m[8], m[9], m[10] = v.X, v.Y, v.Z }

// SetOrigin replaces the translation column.
func (m *Mat4) SetOrigin(v Vec3) { m[12], m[13], m[14] = v.X, v.Y, v.Z }

// TransformPoint transforms a point (w=1), dividing by w when needed.
func (m Mat4) TransformPoint(p Vec3) Vec3 {
	x := m[0]*p.X + m[4]*p.Y + m[8]*p.Z + m[12]
	y := m[1]*p.X + m[5]*p.Y + m[9]*p.Z + m[13]
	z := m[2]*p.X + m[6]*p.Y + m[10]*p.Z + m[14]
	w := m[3]*p.X + m[7]*p.Y + m[11]*p.Z + m[15]
	if w != 0 && w != 1 {
		return Vec3{x / w, y / w, z / w}
	}
	return Vec3{x, y, z}
}

// MulVec3 transforms a direction by the upper 3x3 (ignores translation).
func (m Mat4) MulVec3(d Vec3) Vec3 {
	return Vec3{
		m[0]*d.X + m[4]*d.Y + m[8]*d.Z,
		m[1]*d.X + m[5]*d.Y + m[9]*d.Z,
		m[2]*d.X + m[6]*d.Y + m[10]*d.Z,
	}
}

// Transpose returns the transposed matrix.
func (m Mat4) Transpose() Mat4 {
	var t Mat4
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			t[row*4+col] = m[col*4+row]
		}
	}
	return t
}

// ApproxEqual reports whether every cell differs by at most eps.
func (m Mat4) ApproxEqual(other Mat4, eps float64) bool {
	for i := range m {
		if math.Abs(m[i]-other[i]) > eps {
			return false
		}
	}
	return true
}

// Float32s flattens the matrix for glUniformMatrix4fv (transpose=false):
// outer loop over columns, inner loop over rows.
func (m Mat4) Float32s() [16]float32 {
	var out [16]float32
	i := 0
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			out[i] = float32(m[col*4+row])
			i++
		}
	}
	return out
}

// Inverse returns the inverse of the matrix.
// Returns identity if the matrix is singular.
func (m Mat4) Inverse() Mat4 {
	c00 := m[5]*m[10]*m[15] - m[5]*m[11]*m[14] - m[9]*m[6]*m[15] + m[9]*m[7]*m[14] + m[13]*m[6]*m[11] - m[13]*m[7]*m[10]
	c01 := -m[1]*m[10]*m[15] + m[1]*m[11]*m[14] + m[9]*m[2]*m[15] - m[9]*m[3]*m[14] - m[13]*m[2]*m[11] + m[13]*m[3]*m[10]
	c02 := m[1]*m[6]*m[15] - m[1]*m[7]*m[14] - m[5]*m[2]*m[15] + m[5]*m[3]*m[14] + m[13]*m[2]*m[7] - m[13]*m[3]*m[6]
	c03 := -m[1]*m[6]*m[11] + m[1]*m[7]*m[10] + m[5]*m[2]*m[11] - m[5]*m[3]*m[10] - m[9]*m[2]*m[7] + m[9]*m[3]*m[6]

	c10 := -m[4]*m[10]*m[15] + m[4]*m[11]*m[14] + m[8]*m[6]*m[15] - m[8]*m[7]*m[14] - m[12]*m[6]*m[11] + m[12]*m[7]*m[10]
	c11 := m[0]*m[10]*m[15] - m[0]*m[11]*m[14] - m[8]*m[2]*m[15] + m[8]*m[3]*m[14] + m[12]*m[2]*m[11] - m[12]*m[3]*m[10]
	c12 := -m[0]*m[6]*m[15] + m[0]*m[7]*m[14] + m[4]*m[2]*m[15] - m[4]*m[3]*m[14] - m[12]*m[2]*m[7] + m[12]*m[3]*m[6]
	c13 := m[0]*m[6]*m[11] - m[0]*m[7]*m[10] - m[4]*m[2]*m[11] + m[4]*m[3]*m[10] + m[8]*m[2]*m[7] - m[8]*m[3]*m[6]

	c20 := m[4]*m[9]*m[15] - m[4]*m[11]*m[13] - m[8]*m[5]*m[15] + m[8]*m[7]*m[13] + m[12]*m[5]*m[11] - m[12]*m[7]*m[9]
	c21 := -m[0]*m[9]*m[15] + m[0]*m[11]*m[13] + m[8]*m[1]*m[15] - m[8]*m[3]*m[13] - m[12]*m[1]*m[11] + m[12]*m[3]*m[9]
	c22 := m[0]*m[5]*m[15] - m[0]*m[7]*m[13] - m[4]*m[1]*m[15] + m[4]*m[3]*m[13] + m[12]*m[1]*m[7] - m[12]*m[3]*m[5]
	c23 := -m[0]*m[5]*m[11] + m[0]*m[7]*m[9] + m[4]*m[1]*m[11] - m[4]*m[3]*m[9] - m[8]*m[1]*m[7] + m[8]*m[3]*m[5]

	c30 := -m[4]*m[9]*m[14] + m[4]*m[10]*m[13] + m[8]*m[5]*m[14] - m[8]*m[6]*m[13] - m[12]*m[5]*m[10] + m[12]*m[6]*m[9]
	c31 := m[0]*m[9]*m[14] - m[0]*m[10]*m[13] - m[8]*m[1]*m[14] + m[8]*m[2]*m[13] + m[12]*m[1]*m[10] - m[12]*m[2]*m[9]
	c32 := -m[0]*m[5]*m[14] + m[0]*m[6]*m[13] + m[4]*m[1]*m[14] - m[4]*m[2]*m[13] - m[12]*m[1]*m[6] + m[12]*m[2]*m[5]
	c33 := m[0]*m[5]*m[10] - m[0]*m[6]*m[9] - m[4]*m[1]*m[10] + m[4]*m[2]*m[9] + m[8]*m[1]*m[6] - m[8]*m[2]*m[5]

	det := m[0]*c00 + m[4]*c01 + m[8]*c02 + m[12]*c03
	if det == 0 {
		return Identity()
	}

	inv := 1.0 / det
	return Mat4{
		c00 * inv, c01 * inv, c02 * inv, c03 * inv,
		c10 * inv, c11 * inv, c12 * inv, c13 * inv,
		c20 * inv, c21 * inv, c22 * inv, c23 * inv,
		c30 * inv, c31 * inv, c32 * inv, c33 * inv,
	}
}

// String prints the grid row by row.
func (m Mat4) String() string {
	var b strings.Builder
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			if col > 0 {
				b.WriteByte('\t')
			}
			fmt.Fprintf(&b, "%g", m[col*4+row])
		}
		if row < 3 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
