package mesh

import (
	"sync"

	"gonum.org/v1/gonum/spatial/r3"
)

// Vertex is a mesh point with its cyclically ordered star.
// Edges[i] lies between Faces[i-1] and Faces[i] (indices mod len).
type Vertex struct {
	ID    int
	Pos   r3.Vec
	Faces []int
	Edges []int
}

// Edge joins two vertices and borders exactly two faces.
// Faces[0] walks the edge from Verts[0] to Verts[1], Faces[1] walks it back.
type Edge struct {
	ID    int
	Verts [2]int
	Faces [2]int
}

// Face is a cyclic boundary walk; Edges[i] joins Verts[i] and Verts[(i+1)%n].
type Face struct {
	ID    int
	Verts []int
	Edges []int
}

// Mesh is an index-based half-edge style arena. It is immutable after Build,
// apart from the lazily computed face centers and edge midpoints.
// Slices inside returned Vertex/Face values are shared with the mesh and must not be modified.
type Mesh struct {
	verts []Vertex
	edges []Edge
	faces []Face

	cacheOnce   sync.Once
	faceCenters []r3.Vec
	edgeMids    []r3.Vec
}

func (m *Mesh) NumVertices() int { return len(m.verts) }
func (m *Mesh) NumEdges() int    { return len(m.edges) }
func (m *Mesh) NumFaces() int    { return len(m.faces) }

func (m *Mesh) Vertex(i int) Vertex { return m.verts[i] }
func (m *Mesh) Edge(i int) Edge     { return m.edges[i] }
func (m *Mesh) Face(i int) Face     { return m.faces[i] }

// Valence is the number of edges (and faces) around vertex i.
func (m *Mesh) Valence(i int) int { return len(m.verts[i].Edges) }

// Points returns a copy of the vertex positions in vertex-ID order.
func (m *Mesh) Points() []r3.Vec {
	out := make([]r3.Vec, len(m.verts))
	for i, v := range m.verts {
		out[i] = v.Pos
	}
	return out
}

// FaceIndices returns a copy of every face's vertex walk, suitable for Build or a renderer.
func (m *Mesh) FaceIndices() [][]int {
	out := make([][]int, len(m.faces))
	for i, f := range m.faces {
		out[i] = append([]int(nil), f.Verts...)
	}
	return out
}

// EdgePairs returns the endpoint pair of every edge (wireframe rendering).
func (m *Mesh) EdgePairs() [][2]int {
	out := make([][2]int, len(m.edges))
	for i, e := range m.edges {
		out[i] = e.Verts
	}
	return out
}

// Triangles fan-triangulates every face, keeping its orientation.
func (m *Mesh) Triangles() [][3]int {
	n := 0
	for _, f := range m.faces {
		n += len(f.Verts) - 2
	}
	out := make([][3]int, 0, n)
	for _, f := range m.faces {
		for i := 1; i+1 < len(f.Verts); i++ {
			out = append(out, [3]int{f.Verts[0], f.Verts[i], f.Verts[i+1]})
		}
	}
	return out
}

// FaceCenter is the mean of the face's vertex positions.
func (m *Mesh) FaceCenter(i int) r3.Vec {
	m.updateCaches()
	return m.faceCenters[i]
}

// EdgeMidpoint is the mean of the edge's two endpoints.
func (m *Mesh) EdgeMidpoint(i int) r3.Vec {
	m.updateCaches()
	return m.edgeMids[i]
}

func (m *Mesh) updateCaches() {
	m.cacheOnce.Do(func() {
		pts := m.Points()
		m.faceCenters = make([]r3.Vec, len(m.faces))
		for i, f := range m.faces {
			m.faceCenters[i] = centroid(pts, f.Verts)
		}
		m.edgeMids = make([]r3.Vec, len(m.edges))
		for i, e := range m.edges {
			m.edgeMids[i] = midpoint(pts[e.Verts[0]], pts[e.Verts[1]])
		}
	})
}
