package mesh

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

func isFinite(x float64) bool { return !math.IsInf(x, 0) && !math.IsNaN(x) }

func isFiniteVec(v r3.Vec) bool { return isFinite(v.X) && isFinite(v.Y) && isFinite(v.Z) }

// centroid returns the arithmetic mean of the indexed points.
func centroid(points []r3.Vec, idx []int) r3.Vec {
	var c r3.Vec
	for _, i := range idx {
		c = r3.Add(c, points[i])
	}
	return r3.Scale(1/float64(len(idx)), c)
}

func midpoint(a, b r3.Vec) r3.Vec { return r3.Scale(0.5, r3.Add(a, b)) }
