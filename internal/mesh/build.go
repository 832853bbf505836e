package mesh

import (
	"github.com/lukaszgryglicki/polyhedra4d/internal/debuglog"
	"gonum.org/v1/gonum/spatial/r3"
)

// edgeKey is the unordered key of the edge a-b.
func edgeKey(a, b int) [2]int {
	if a > b {
		a, b = b, a
	}
	return [2]int{a, b}
}

// Build creates a mesh from points and positively oriented face walks (indices into points).
// It fails with a *ConsistencyError unless the input is a closed, consistently oriented
// 2-manifold: every edge shared by exactly two faces walking it in opposite directions,
// and every vertex star a single closed fan of at least three faces.
func Build(points []r3.Vec, faces [][]int) (*Mesh, error) {
	const op = "build"
	n := len(points)
	m := &Mesh{
		verts: make([]Vertex, n),
		faces: make([]Face, len(faces)),
	}
	for i, p := range points {
		if !isFiniteVec(p) {
			return nil, consistencyf(op, "vertex %d has non-finite position %v", i, p)
		}
		m.verts[i] = Vertex{ID: i, Pos: p}
	}

	index := make(map[[2]int]int, 2*len(faces))
	forward := make([][]int, 0, 2*len(faces))  // faces walking Verts[0]->Verts[1]
	backward := make([][]int, 0, 2*len(faces)) // faces walking Verts[1]->Verts[0]
	incident := make([][]int, n)
	for fi, fv := range faces {
		k := len(fv)
		if k < 3 {
			return nil, consistencyf(op, "face %d has %d vertices, need at least 3", fi, k)
		}
		f := Face{ID: fi, Verts: append([]int(nil), fv...), Edges: make([]int, k)}
		for i, a := range fv {
			b := fv[(i+1)%k]
			if a < 0 || a >= n || b < 0 || b >= n {
				return nil, consistencyf(op, "face %d references vertex outside [0,%d): %v", fi, n, fv)
			}
			if a == b {
				return nil, consistencyf(op, "face %d repeats vertex %d on consecutive corners", fi, a)
			}
			key := edgeKey(a, b)
			ei, ok := index[key]
			if !ok {
				ei = len(m.edges)
				index[key] = ei
				m.edges = append(m.edges, Edge{ID: ei, Verts: [2]int{a, b}})
				forward = append(forward, nil)
				backward = append(backward, nil)
				incident[a] = append(incident[a], ei)
				incident[b] = append(incident[b], ei)
			}
			if m.edges[ei].Verts[0] == a {
				forward[ei] = append(forward[ei], fi)
			} else {
				backward[ei] = append(backward[ei], fi)
			}
			f.Edges[i] = ei
		}
		m.faces[fi] = f
	}

	if err := m.validate(forward, backward); err != nil {
		return nil, err
	}
	for v := range m.verts {
		if err := m.orderStar(v, incident[v]); err != nil {
			return nil, err
		}
	}
	debuglog.Printf("mesh built: V=%d E=%d F=%d", len(m.verts), len(m.edges), len(m.faces))
	return m, nil
}

func (m *Mesh) validate(forward, backward [][]int) error {
	const op = "build"
	for i := range m.edges {
		e := &m.edges[i]
		nf := len(forward[i]) + len(backward[i])
		if nf != 2 {
			return consistencyf(op, "edge %d (%d-%d) has %d faces, need exactly 2", i, e.Verts[0], e.Verts[1], nf)
		}
		if len(forward[i]) != 1 {
			return consistencyf(op, "edge %d (%d-%d) is walked in the same direction by faces %v: inconsistent orientation",
				i, e.Verts[0], e.Verts[1], append(forward[i], backward[i]...))
		}
		e.Faces = [2]int{forward[i][0], backward[i][0]}
		if e.Faces[0] == e.Faces[1] {
			return consistencyf(op, "edge %d is used twice by face %d", i, e.Faces[0])
		}
	}
	for _, f := range m.faces {
		if len(f.Verts) != len(f.Edges) || len(f.Verts) < 3 {
			return consistencyf(op, "face %d has %d vertices and %d edges", f.ID, len(f.Verts), len(f.Edges))
		}
		for _, ei := range f.Edges {
			for _, v := range m.edges[ei].Verts {
				if !contains(f.Verts, v) {
					return consistencyf(op, "edge %d endpoint %d is not on face %d", ei, v, f.ID)
				}
			}
		}
	}
	return nil
}

// orderStar walks the fan around v (edge -> face -> other edge at v -> next face ...)
// and stores the cyclic edge/face order on the vertex.
func (m *Mesh) orderStar(v int, incident []int) error {
	const op = "build"
	if len(incident) < 3 {
		return consistencyf(op, "vertex %d has %d incident edges, need at least 3", v, len(incident))
	}
	start := incident[0]
	e := start
	f := m.leavingFace(e, v)
	edges := make([]int, 0, len(incident))
	faces := make([]int, 0, len(incident))
	for {
		if len(edges) == len(incident) {
			return consistencyf(op, "vertex %d: star walk does not close (non-manifold vertex)", v)
		}
		edges = append(edges, e)
		faces = append(faces, f)
		next, err := m.otherEdgeAt(f, v, e)
		if err != nil {
			return err
		}
		if next == start {
			break
		}
		f = m.otherFace(next, f)
		e = next
	}
	if len(edges) != len(incident) {
		return consistencyf(op, "vertex %d: star closes after %d of %d edges (non-manifold vertex)", v, len(edges), len(incident))
	}
	m.verts[v].Edges = edges
	m.verts[v].Faces = faces
	return nil
}

// leavingFace is the face of e whose walk leaves v along e.
func (m *Mesh) leavingFace(e, v int) int {
	if m.edges[e].Verts[0] == v {
		return m.edges[e].Faces[0]
	}
	return m.edges[e].Faces[1]
}

func (m *Mesh) otherFace(e, f int) int {
	if m.edges[e].Faces[0] == f {
		return m.edges[e].Faces[1]
	}
	return m.edges[e].Faces[0]
}

// otherEdgeAt returns the edge of face f that touches v and is not e.
func (m *Mesh) otherEdgeAt(f, v, e int) (int, error) {
	face := m.faces[f]
	n := len(face.Verts)
	corner := -1
	for i, u := range face.Verts {
		if u != v {
			continue
		}
		if corner >= 0 {
			return 0, consistencyf("build", "face %d visits vertex %d more than once", f, v)
		}
		corner = i
	}
	if corner < 0 {
		return 0, consistencyf("build", "vertex %d is not on face %d", v, f)
	}
	out, in := face.Edges[corner], face.Edges[(corner+n-1)%n]
	switch e {
	case out:
		return in, nil
	case in:
		return out, nil
	}
	return 0, consistencyf("build", "edge %d does not touch vertex %d on face %d", e, v, f)
}

func contains(s []int, x int) bool {
	for _, y := range s {
		if y == x {
			return true
		}
	}
	return false
}
