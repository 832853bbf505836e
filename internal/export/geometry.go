package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lukaszgryglicki/polyhedra4d/internal/cells"
	"github.com/lukaszgryglicki/polyhedra4d/internal/mesh"
	"gonum.org/v1/gonum/spatial/r3"
)

// Geometry is an indexed triangle set plus optional line segments (wireframe).
type Geometry struct {
	Name      string
	Positions []r3.Vec
	Triangles [][3]int
	Lines     [][2]int
}

// FromMesh fan-triangulates every face and keeps the mesh edges as lines.
func FromMesh(name string, m *mesh.Mesh) Geometry {
	return Geometry{
		Name:      name,
		Positions: m.Points(),
		Triangles: m.Triangles(),
		Lines:     m.EdgePairs(),
	}
}

// FromNavigator emits the outward facets of every visible cell, then the 4 corners of
// each cell again with its 6 edges as lines.
func FromNavigator(name string, n *cells.Navigator) Geometry {
	pts, tris := n.Triangles()
	g := Geometry{Name: name, Positions: pts, Triangles: tris}
	for _, c := range n.Cells() {
		k := len(g.Positions)
		for _, s := range c.Slots {
			g.Positions = append(g.Positions, s.Pos)
		}
		for i := 0; i < 4; i++ {
			for j := i + 1; j < 4; j++ {
				g.Lines = append(g.Lines, [2]int{k + i, k + j})
			}
		}
	}
	return g
}

func (g Geometry) check() error {
	if len(g.Triangles) == 0 && len(g.Lines) == 0 {
		return fmt.Errorf("%s: nothing to export", g.Name)
	}
	n := len(g.Positions)
	for i, t := range g.Triangles {
		for _, v := range t {
			if v < 0 || v >= n {
				return fmt.Errorf("%s: triangle %d index %d out of range [0,%d)", g.Name, i, v, n)
			}
		}
	}
	for i, l := range g.Lines {
		for _, v := range l {
			if v < 0 || v >= n {
				return fmt.Errorf("%s: line %d index %d out of range [0,%d)", g.Name, i, v, n)
			}
		}
	}
	return nil
}

// Options tune Save. Simplify < 1 decimates STL output to that fraction of triangles.
type Options struct {
	Simplify float64
}

// Save writes g in the format picked by the path extension: .stl, .glb or .gltf.
func Save(path string, g Geometry, opt Options) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".stl":
		return SaveSTL(path, g, opt.Simplify)
	case ".glb":
		return SaveGLTF(path, g, true)
	case ".gltf":
		return SaveGLTF(path, g, false)
	default:
		return fmt.Errorf("unsupported export format %q", ext)
	}
}
