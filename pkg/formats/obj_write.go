package formats

import (
	"bufio"
	"fmt"
	"io"
)

// WriteOBJ writes o as OBJ text. Every vertex gets a matching normal record
// and faces use the p//n form, so ParseOBJ reads back the same vertices,
// normals and indices.
func WriteOBJ(w io.Writer, o *OBJ) error {
	bw := bufio.NewWriter(w)

	if o.Name != "" {
		fmt.Fprintf(bw, "o %s\n", o.Name)
	}
	for _, v := range o.Vertices {
		fmt.Fprintf(bw, "v %g %g %g\n", v.Position.X, v.Position.Y, v.Position.Z)
	}
	for _, v := range o.Vertices {
		fmt.Fprintf(bw, "vn %g %g %g\n", v.Normal.X, v.Normal.Y, v.Normal.Z)
	}
	if o.Smooth {
		fmt.Fprintln(bw, "s 1")
	}
	for i := 0; i+2 < len(o.Indices); i += 3 {
		a, b, c := o.Indices[i]+1, o.Indices[i+1]+1, o.Indices[i+2]+1
		fmt.Fprintf(bw, "f %d//%d %d//%d %d//%d\n", a, a, b, b, c, c)
	}

	return bw.Flush()
}
