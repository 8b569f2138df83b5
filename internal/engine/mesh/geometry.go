package mesh

import (
	"errors"
	"fmt"
	gomath "math"

	"github.com/Faultbox/facet/internal/engine/gpu"
	"github.com/Faultbox/facet/pkg/formats"
	fmath "github.com/Faultbox/facet/pkg/math"
)

// ErrSphereRings is returned for spheres with too few rings.
var ErrSphereRings = errors.New("sphere needs at least 3 longitude and 2 latitude rings")

// RectGeometry returns a quad in the XY plane facing +Z. width and height
// are half-extents.
func RectGeometry(width, height float64) Geometry {
	w, h := float32(width), float32(height)
	return Geometry{
		Layout: gpu.LayoutPositionNormal,
		Vertices: []float32{
			-w, -h, 0, 0, 0, 1,
			w, -h, 0, 0, 0, 1,
			w, h, 0, 0, 0, 1,
			-w, h, 0, 0, 0, 1,
		},
		Indices: []uint32{0, 1, 2, 2, 3, 0},
	}
}

// cubeFaces lists each face as normal, u, v with u × v = normal, so the
// corners c-u-v, c+u-v, c+u+v, c-u+v wind counter-clockwise from outside.
var cubeFaces = [6][3][3]float32{
	{{0, 0, 1}, {1, 0, 0}, {0, 1, 0}},
	{{0, 0, -1}, {-1, 0, 0}, {0, 1, 0}},
	{{1, 0, 0}, {0, 0, -1}, {0, 1, 0}},
	{{-1, 0, 0}, {0, 0, 1}, {0, 1, 0}},
	{{0, 1, 0}, {1, 0, 0}, {0, 0, -1}},
	{{0, -1, 0}, {1, 0, 0}, {0, 0, 1}},
}

// CuboidGeometry returns a cube with half-extent 1: 24 vertices with flat
// per-face normals and 36 indices.
func CuboidGeometry() Geometry {
	g := Geometry{
		Layout:   gpu.LayoutPositionNormal,
		Vertices: make([]float32, 0, 24*6),
		Indices:  make([]uint32, 0, 36),
	}
	corners := [4][2]float32{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}
	for f, face := range cubeFaces {
		n, u, v := face[0], face[1], face[2]
		for _, c := range corners {
			for k := 0; k < 3; k++ {
				g.Vertices = append(g.Vertices, n[k]+c[0]*u[k]+c[1]*v[k])
			}
			g.Vertices = append(g.Vertices, n[0], n[1], n[2])
		}
		base := uint32(f * 4)
		g.Indices = append(g.Indices, base, base+1, base+2, base+2, base+3, base)
	}
	return g
}

// SphereVertexCount returns 2 + lon·(lat−1).
func SphereVertexCount(lon, lat int) int {
	return 2 + lon*(lat-1)
}

// SphereIndexCount returns 6·lon + 6·lon·(lat−2).
func SphereIndexCount(lon, lat int) int {
	return 6*lon + 6*lon*(lat-2)
}

// SphereGeometry returns a UV sphere. Vertex 0 is the north pole, followed
// by lat-1 rings of lon vertices each from north to south, and the south
// pole last. Normals are the normalized positions.
func SphereGeometry(lon, lat int, radius float64) (Geometry, error) {
	if lon < 3 || lat < 2 {
		return Geometry{}, fmt.Errorf("%w: got %d x %d", ErrSphereRings, lon, lat)
	}

	g := Geometry{
		Layout:   gpu.LayoutPositionNormal,
		Vertices: make([]float32, 0, SphereVertexCount(lon, lat)*6),
		Indices:  make([]uint32, 0, SphereIndexCount(lon, lat)),
	}

	add := func(x, y, z float64) {
		l := gomath.Sqrt(x*x + y*y + z*z)
		nx, ny, nz := 0.0, 0.0, 0.0
		if l > 0 {
			nx, ny, nz = x/l, y/l, z/l
		}
		g.Vertices = append(g.Vertices,
			float32(radius*x), float32(radius*y), float32(radius*z),
			float32(nx), float32(ny), float32(nz))
	}

	add(0, 1, 0)
	for j := 0; j < lat-1; j++ {
		theta := float64(j+1) * gomath.Pi / float64(lat)
		sinT, cosT := gomath.Sincos(theta)
		for i := 0; i < lon; i++ {
			phi := fmath.Map(float64(i), 0, float64(lon), 0, 2*gomath.Pi)
			sinP, cosP := gomath.Sincos(phi)
			add(sinT*cosP, cosT, sinT*sinP)
		}
	}
	add(0, -1, 0)

	ring := func(j, i int) uint32 {
		return uint32(1 + j*lon + i%lon)
	}
	south := uint32(SphereVertexCount(lon, lat) - 1)

	for i := 0; i < lon; i++ {
		g.Indices = append(g.Indices, 0, ring(0, i+1), ring(0, i))
	}
	for j := 0; j < lat-2; j++ {
		for i := 0; i < lon; i++ {
			a, b := ring(j, i), ring(j, i+1)
			c, d := ring(j+1, i), ring(j+1, i+1)
			g.Indices = append(g.Indices, a, b, d, a, d, c)
		}
	}
	last := lat - 2
	for i := 0; i < lon; i++ {
		g.Indices = append(g.Indices, south, ring(last, i), ring(last, i+1))
	}

	return g, nil
}

// OBJ converts position+normal geometry for export. Position-only
// geometry gets zero normals.
func (g Geometry) OBJ(name string) *formats.OBJ {
	o := &formats.OBJ{
		Name:     name,
		Vertices: make([]formats.OBJVertex, g.VertexCount()),
		Indices:  append([]uint32(nil), g.Indices...),
		Smooth:   true,
	}
	stride := g.Layout.Stride()
	for i := range o.Vertices {
		o.Vertices[i].Position = g.Position(i)
		if g.Layout.HasNormals() {
			n := g.Vertices[i*stride+3 : i*stride+6]
			o.Vertices[i].Normal = fmath.Vec3{X: float64(n[0]), Y: float64(n[1]), Z: float64(n[2])}
		}
	}
	return o
}
