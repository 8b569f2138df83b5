//go:build facetdebug

package mesh

import (
	"fmt"

	"github.com/Faultbox/facet/internal/engine/gpu"
)

func assertIndices(layout gpu.VertexLayout, vertices []float32, indices []uint32) {
	n := uint32(len(vertices) / layout.Stride())
	for i, idx := range indices {
		if idx >= n {
			panic(fmt.Sprintf("mesh: index %d at %d out of range (%d vertices)", idx, i, n))
		}
	}
}
