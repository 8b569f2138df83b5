// OBJ (Wavefront) text mesh parser.
package formats

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/Faultbox/facet/pkg/math"
)

// OBJ format errors.
var (
	ErrOBJLineTooLong = errors.New("OBJ line exceeds maximum length")
)

// maxOBJLine bounds a single record; Blender exports stay far below this.
const maxOBJLine = 1 << 20

// OBJFloatsPerVertex is the interleaved stride of OBJ.Interleaved:
// position xyz followed by normal xyz.
const OBJFloatsPerVertex = 6

// WarningKind classifies a recoverable problem found while parsing.
type WarningKind int

const (
	WarnUnknownRecord WarningKind = iota // Unrecognized line prefix
	WarnShortRecord                      // Too few components for the record type
	WarnBadNumber                        // Token failed to parse, defaulted to zero
	WarnTexCoordDims                     // 3D texture coordinate truncated to 2D
	WarnParamVertex                      // vp record skipped
	WarnNonTriangle                      // Face with != 3 vertices rejected
	WarnBadReference                     // Face referenced a missing vertex, rejected
	WarnFlatShading                      // s record other than smooth
	WarnNameSkipped                      // o/g record not supported
)

// String returns a short name for the warning kind.
func (k WarningKind) String() string {
	switch k {
	case WarnUnknownRecord:
		return "UnknownRecord"
	case WarnShortRecord:
		return "ShortRecord"
	case WarnBadNumber:
		return "BadNumber"
	case WarnTexCoordDims:
		return "TexCoordDims"
	case WarnParamVertex:
		return "ParamVertex"
	case WarnNonTriangle:
		return "NonTriangle"
	case WarnBadReference:
		return "BadReference"
	case WarnFlatShading:
		return "FlatShading"
	case WarnNameSkipped:
		return "NameSkipped"
	default:
		return fmt.Sprintf("Unknown(%d)", int(k))
	}
}

// Warning is a recoverable parse problem tied to a source line.
type Warning struct {
	Line int
	Kind WarningKind
	Msg  string
}

func (w Warning) String() string {
	return fmt.Sprintf("line %d: %s: %s", w.Line, w.Kind, w.Msg)
}

// OBJVertex is the per-position record. Normals referenced by faces are
// written here, so a position shared by faces with different normals keeps
// the normal of the last face that referenced it.
type OBJVertex struct {
	Position math.Vec3
	Normal   math.Vec3
}

// OBJ holds a parsed triangle mesh.
type OBJ struct {
	Name      string
	Vertices  []OBJVertex
	Normals   []math.Vec3
	TexCoords []math.Vec2
	Indices   []uint32
	Smooth    bool
	Warnings  []Warning
}

// TriangleCount returns the number of accepted faces.
func (o *OBJ) TriangleCount() int {
	return len(o.Indices) / 3
}

// Interleaved returns position+normal float32 data, OBJFloatsPerVertex
// floats per vertex.
func (o *OBJ) Interleaved() []float32 {
	out := make([]float32, 0, len(o.Vertices)*OBJFloatsPerVertex)
	for _, v := range o.Vertices {
		out = append(out,
			float32(v.Position.X), float32(v.Position.Y), float32(v.Position.Z),
			float32(v.Normal.X), float32(v.Normal.Y), float32(v.Normal.Z),
		)
	}
	return out
}

// ParseOBJ parses OBJ text. Malformed records are skipped and reported in
// OBJ.Warnings; only read failures return an error.
func ParseOBJ(data []byte) (*OBJ, error) {
	p := &objParser{obj: &OBJ{}}

	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), maxOBJLine)
	for sc.Scan() {
		p.line++
		p.parseLine(sc.Text())
	}
	if err := sc.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return nil, fmt.Errorf("line %d: %w", p.line+1, ErrOBJLineTooLong)
		}
		return nil, fmt.Errorf("reading OBJ: %w", err)
	}

	return p.obj, nil
}

// ParseOBJFile reads and parses an OBJ file from disk.
func ParseOBJFile(path string) (*OBJ, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseOBJ(data)
}

type objParser struct {
	obj  *OBJ
	line int
}

func (p *objParser) warn(kind WarningKind, format string, args ...any) {
	p.obj.Warnings = append(p.obj.Warnings, Warning{
		Line: p.line,
		Kind: kind,
		Msg:  fmt.Sprintf(format, args...),
	})
}

func (p *objParser) parseLine(line string) {
	fields := strings.Fields(line)
	if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
		return
	}
	args := fields[1:]

	switch fields[0] {
	case "v":
		if len(args) < 3 {
			p.warn(WarnShortRecord, "vertex position needs 3 components, got %d", len(args))
			return
		}
		p.obj.Vertices = append(p.obj.Vertices, OBJVertex{Position: p.vec3(args)})

	case "vt":
		if len(args) < 2 {
			p.warn(WarnShortRecord, "texture coordinate needs 2 components, got %d", len(args))
			return
		}
		if len(args) > 2 {
			p.warn(WarnTexCoordDims, "only 2D texture coordinates are supported, truncating %d components", len(args))
		}
		p.obj.TexCoords = append(p.obj.TexCoords, math.Vec2{X: p.float(args[0]), Y: p.float(args[1])})

	case "vn":
		if len(args) < 3 {
			p.warn(WarnShortRecord, "vertex normal needs 3 components, got %d", len(args))
			return
		}
		p.obj.Normals = append(p.obj.Normals, p.vec3(args))

	case "vp":
		p.warn(WarnParamVertex, "parameter space vertices are not supported")

	case "f":
		p.parseFace(args)

	case "s":
		if len(args) > 0 && (args[0] == "1" || args[0] == "on") {
			p.obj.Smooth = true
			return
		}
		p.warn(WarnFlatShading, "only smooth shading is supported, normals are merged per position")

	case "o":
		if len(args) > 0 {
			p.obj.Name = strings.Join(args, " ")
		}
		p.warn(WarnNameSkipped, "object names are not supported: %q", strings.Join(args, " "))

	case "g":
		p.warn(WarnNameSkipped, "groups are not supported: %q", strings.Join(args, " "))

	default:
		p.warn(WarnUnknownRecord, "unsupported record %q", fields[0])
	}
}

// faceRef is one resolved position/normal pair of a face.
type faceRef struct {
	pos    int
	normal int // -1 when absent
}

func (p *objParser) parseFace(args []string) {
	if len(args) != 3 {
		p.warn(WarnNonTriangle, "face has %d vertices, only triangles are supported", len(args))
		return
	}

	// Resolve all references before touching any state so a bad
	// reference rejects the whole face.
	var refs [3]faceRef
	for i, arg := range args {
		ref, ok := p.resolve(arg)
		if !ok {
			return
		}
		refs[i] = ref
	}

	for _, ref := range refs {
		if ref.normal >= 0 {
			p.obj.Vertices[ref.pos].Normal = p.obj.Normals[ref.normal]
		}
		p.obj.Indices = append(p.obj.Indices, uint32(ref.pos))
	}
}

// resolve parses "p", "p/t", "p//n" or "p/t/n" into zero-based indices.
func (p *objParser) resolve(arg string) (faceRef, bool) {
	parts := strings.Split(arg, "/")
	if len(parts) > 3 {
		p.warn(WarnBadReference, "malformed face vertex %q", arg)
		return faceRef{}, false
	}

	pos, ok := p.index(parts[0], len(p.obj.Vertices))
	if !ok {
		p.warn(WarnBadReference, "face references missing position %q", parts[0])
		return faceRef{}, false
	}

	// Texture coordinates are validated but not stored per vertex.
	if len(parts) >= 2 && parts[1] != "" {
		if _, ok := p.index(parts[1], len(p.obj.TexCoords)); !ok {
			p.warn(WarnBadReference, "face references missing texture coordinate %q", parts[1])
			return faceRef{}, false
		}
	}

	ref := faceRef{pos: pos, normal: -1}
	if len(parts) == 3 && parts[2] != "" {
		n, ok := p.index(parts[2], len(p.obj.Normals))
		if !ok {
			p.warn(WarnBadReference, "face references missing normal %q", parts[2])
			return faceRef{}, false
		}
		ref.normal = n
	}
	return ref, true
}

// index converts a 1-based (or negative, relative) OBJ index.
func (p *objParser) index(tok string, count int) (int, bool) {
	i, err := strconv.Atoi(tok)
	if err != nil {
		p.warn(WarnBadNumber, "invalid index %q", tok)
		return 0, false
	}
	switch {
	case i > 0 && i <= count:
		return i - 1, true
	case i < 0 && -i <= count:
		return count + i, true
	default:
		return 0, false
	}
}

func (p *objParser) vec3(args []string) math.Vec3 {
	return math.Vec3{X: p.float(args[0]), Y: p.float(args[1]), Z: p.float(args[2])}
}

func (p *objParser) float(tok string) float64 {
	f, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		p.warn(WarnBadNumber, "invalid number %q, using 0", tok)
		return 0
	}
	return f
}
