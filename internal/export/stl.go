package export

import (
	"fmt"
	"math"

	"github.com/fogleman/simplify"
	"github.com/lukaszgryglicki/polyhedra4d/internal/debuglog"
	"github.com/lukaszgryglicki/polyhedra4d/internal/mesh"
	"gonum.org/v1/gonum/spatial/r3"
)

func toSimplify(v r3.Vec) simplify.Vector { return simplify.Vector{X: v.X, Y: v.Y, Z: v.Z} }

func fromSimplify(v simplify.Vector) r3.Vec { return r3.Vec{X: v.X, Y: v.Y, Z: v.Z} }

// STLMesh converts the triangles of g into a simplify mesh. Lines are dropped.
func STLMesh(g Geometry) *simplify.Mesh {
	tris := make([]*simplify.Triangle, 0, len(g.Triangles))
	for _, t := range g.Triangles {
		tris = append(tris, simplify.NewTriangle(
			toSimplify(g.Positions[t[0]]),
			toSimplify(g.Positions[t[1]]),
			toSimplify(g.Positions[t[2]]),
		))
	}
	return simplify.NewMesh(tris)
}

// SaveSTL writes the triangles of g as binary STL. A factor in (0,1) runs quadric
// error decimation first; 0 or >= 1 writes the triangles unchanged.
func SaveSTL(path string, g Geometry, factor float64) error {
	if err := g.check(); err != nil {
		return err
	}
	if len(g.Triangles) == 0 {
		return fmt.Errorf("%s: STL needs triangles", g.Name)
	}
	if factor < 0 || math.IsNaN(factor) {
		return fmt.Errorf("simplify factor must be >= 0, got %g", factor)
	}
	m := STLMesh(g)
	if factor > 0 && factor < 1 {
		before := len(m.Triangles)
		m = m.Simplify(factor)
		debuglog.Printf("stl %s: simplified %d -> %d triangles", path, before, len(m.Triangles))
	}
	return m.SaveBinarySTL(path)
}

// LoadSTL reads a binary STL and welds coincident corners (within tol) into shared
// vertices so the triangles can be rebuilt as a half-edge mesh. The file must describe
// a closed, consistently wound surface.
func LoadSTL(path string, tol float64) (*mesh.Mesh, error) {
	sm, err := simplify.LoadBinarySTL(path)
	if err != nil {
		return nil, err
	}
	if tol <= 0 {
		tol = 1e-6
	}
	points, faces := Weld(sm, tol)
	m, err := mesh.Build(points, faces)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Weld merges triangle corners that fall into the same tol-sized grid cell.
// Triangles that collapse to fewer than 3 distinct corners are dropped.
func Weld(sm *simplify.Mesh, tol float64) ([]r3.Vec, [][]int) {
	type key [3]int64
	index := make(map[key]int)
	var points []r3.Vec
	id := func(v simplify.Vector) int {
		k := key{int64(math.Round(v.X / tol)), int64(math.Round(v.Y / tol)), int64(math.Round(v.Z / tol))}
		if i, ok := index[k]; ok {
			return i
		}
		index[k] = len(points)
		points = append(points, fromSimplify(v))
		return len(points) - 1
	}
	faces := make([][]int, 0, len(sm.Triangles))
	for _, t := range sm.Triangles {
		a, b, c := id(t.V1), id(t.V2), id(t.V3)
		if a == b || b == c || c == a {
			debuglog.Once("stl weld: dropping triangles collapsed at tol=%g", tol)
			continue
		}
		faces = append(faces, []int{a, b, c})
	}
	return points, faces
}
