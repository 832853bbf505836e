package mesh

import "fmt"

// Stats summarises the combinatorics of a mesh.
type Stats struct {
	Vertices int
	Edges    int
	Faces    int
	Euler    int         // V - E + F
	Genus    int         // (2 - Euler) / 2 for a closed orientable surface
	Arity    map[int]int // face arity -> face count
}

func (m *Mesh) Stats() Stats {
	s := Stats{
		Vertices: len(m.verts),
		Edges:    len(m.edges),
		Faces:    len(m.faces),
		Arity:    make(map[int]int),
	}
	s.Euler = s.Vertices - s.Edges + s.Faces
	s.Genus = (2 - s.Euler) / 2
	for _, f := range m.faces {
		s.Arity[len(f.Verts)]++
	}
	return s
}

// ArityTotal is the sum of face arities (the number of face corners).
func (s Stats) ArityTotal() int {
	n := 0
	for k, c := range s.Arity {
		n += k * c
	}
	return n
}

func (s Stats) String() string {
	return fmt.Sprintf("V=%d E=%d F=%d euler=%d genus=%d", s.Vertices, s.Edges, s.Faces, s.Euler, s.Genus)
}
