package mesh

import (
	"fmt"

	"github.com/lukaszgryglicki/polyhedra4d/internal/debuglog"
	"gonum.org/v1/gonum/spatial/r3"
)

// Subdivide performs one round of Catmull-Clark subdivision and returns a new all-quad mesh.
// The input is not modified. Output point layout: vertex points [0,V), edge points [V,V+E),
// face points [V+E,V+E+F). Every face of arity n yields n quads, one per corner.
func Subdivide(m *Mesh) (*Mesh, error) {
	const op = "subdivide"
	for _, v := range m.verts {
		if len(v.Faces) != len(v.Edges) || len(v.Faces) == 0 {
			return nil, consistencyf(op, "vertex %d has %d faces and %d edges", v.ID, len(v.Faces), len(v.Edges))
		}
	}
	m.updateCaches()

	nv, ne, nf := len(m.verts), len(m.edges), len(m.faces)
	points := make([]r3.Vec, 0, nv+ne+nf)
	for _, v := range m.verts {
		k := float64(len(v.Faces))
		var q, r r3.Vec
		for _, f := range v.Faces {
			q = r3.Add(q, m.faceCenters[f])
		}
		for _, e := range v.Edges {
			r = r3.Add(r, m.edgeMids[e])
		}
		q = r3.Scale(1/k, q)
		r = r3.Scale(1/k, r)
		p := r3.Scale((k-3)/k, v.Pos)
		p = r3.Add(p, r3.Scale(1/k, q))
		p = r3.Add(p, r3.Scale(2/k, r))
		points = append(points, p)
	}
	for _, e := range m.edges {
		p := r3.Scale(2, m.edgeMids[e.ID])
		p = r3.Add(p, m.faceCenters[e.Faces[0]])
		p = r3.Add(p, m.faceCenters[e.Faces[1]])
		points = append(points, r3.Scale(0.25, p))
	}
	points = append(points, m.faceCenters...)

	quads := make([][]int, 0, 2*ne)
	for _, f := range m.faces {
		n := len(f.Verts)
		fp := nv + ne + f.ID
		for i := 0; i < n; i++ {
			j := (i + 1) % n
			quads = append(quads, []int{f.Verts[j], nv + f.Edges[j], fp, nv + f.Edges[i]})
		}
	}
	out, err := Build(points, quads)
	if err != nil {
		return nil, fmt.Errorf("%s: rebuild: %w", op, err)
	}
	debuglog.Printf("catmull-clark: V=%d E=%d F=%d -> V=%d E=%d F=%d", nv, ne, nf, out.NumVertices(), out.NumEdges(), out.NumFaces())
	return out, nil
}

// SubdivideN applies Subdivide rounds times; rounds == 0 returns m itself.
func SubdivideN(m *Mesh, rounds int) (*Mesh, error) {
	if rounds < 0 {
		return nil, fmt.Errorf("rounds must be >= 0, got %d", rounds)
	}
	var err error
	for i := 0; i < rounds; i++ {
		if m, err = Subdivide(m); err != nil {
			return nil, fmt.Errorf("round %d: %w", i+1, err)
		}
	}
	return m, nil
}
