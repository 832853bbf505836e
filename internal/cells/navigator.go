package cells

import (
	"fmt"
	"math"

	"github.com/lukaszgryglicki/polyhedra4d/internal/debuglog"
	"gonum.org/v1/gonum/spatial/r3"
)

// Slot is one local vertex of a visible cell: its global label and 3D position.
type Slot struct {
	Label int
	Pos   r3.Vec
}

// VisibleCell is a cell of the complex with a Euclidean embedding.
type VisibleCell struct {
	Index int
	Slots [4]Slot
}

func (c VisibleCell) Labels() Labels {
	return Labels{c.Slots[0].Label, c.Slots[1].Label, c.Slots[2].Label, c.Slots[3].Label}
}

func (c VisibleCell) Positions() [4]r3.Vec {
	return [4]r3.Vec{c.Slots[0].Pos, c.Slots[1].Pos, c.Slots[2].Pos, c.Slots[3].Pos}
}

// Center is the mean of the 4 slot positions.
func (c VisibleCell) Center() r3.Vec {
	var s r3.Vec
	for _, sl := range c.Slots {
		s = r3.Add(s, sl.Pos)
	}
	return r3.Scale(0.25, s)
}

// SignedVolume is det(p1-p0, p2-p0, p3-p0)/6 in slot order.
func (c VisibleCell) SignedVolume() float64 {
	p := c.Positions()
	return signedVolume(p[0], p[1], p[2], p[3])
}

func signedVolume(p0, p1, p2, p3 r3.Vec) float64 {
	a, b, d := r3.Sub(p1, p0), r3.Sub(p2, p0), r3.Sub(p3, p0)
	return r3.Dot(a, r3.Cross(b, d)) / 6
}

// SeedTetrahedron returns the seed cell embedding: an equilateral triangle on the unit
// circle of the XZ plane plus an apex above it, scaled by scale.
func SeedTetrahedron(scale float64) [4]r3.Vec {
	var pts [4]r3.Vec
	for i := 0; i < 3; i++ {
		phi := -math.Pi * 2 * float64(i) / 3
		pts[i] = r3.Vec{X: math.Cos(phi), Z: math.Sin(phi)}
	}
	edge := r3.Norm(r3.Sub(pts[0], pts[1]))
	pts[3] = r3.Vec{Y: edge * math.Sqrt(2.0/3.0)}
	for i := range pts {
		pts[i] = r3.Scale(scale, pts[i])
	}
	return pts
}

// Navigator holds the explored subset of a cell complex. Cell 0 is the seed; cells are
// added one face crossing at a time and at least one cell always stays visible.
// A Navigator is single-session state and is not safe for concurrent use.
type Navigator struct {
	table *Table
	cells map[int]*VisibleCell
	order []int // insertion order of visible cells
}

// NewNavigator makes cell 0 of the table visible with the given slot positions.
func NewNavigator(t *Table, seed [4]r3.Vec) (*Navigator, error) {
	if t == nil || t.Len() == 0 {
		return nil, consistencyf("navigator", "empty table")
	}
	labels, _ := t.Row(0)
	c := &VisibleCell{Index: 0}
	for i := range c.Slots {
		p := seed[i]
		if math.IsNaN(p.X+p.Y+p.Z) || math.IsInf(p.X+p.Y+p.Z, 0) {
			return nil, fmt.Errorf("seed position %d is not finite: %v", i, p)
		}
		c.Slots[i] = Slot{Label: labels[i], Pos: p}
	}
	if math.Abs(c.SignedVolume()) < 1e-12 {
		return nil, fmt.Errorf("seed tetrahedron is degenerate")
	}
	return &Navigator{
		table: t,
		cells: map[int]*VisibleCell{0: c},
		order: []int{0},
	}, nil
}

func (n *Navigator) Table() *Table { return n.table }

// Len is the number of visible cells.
func (n *Navigator) Len() int { return len(n.order) }

func (n *Navigator) Visible(index int) bool {
	_, ok := n.cells[index]
	return ok
}

func (n *Navigator) Cell(index int) (VisibleCell, bool) {
	c, ok := n.cells[index]
	if !ok {
		return VisibleCell{}, false
	}
	return *c, true
}

// Cells returns the visible cells in the order they became visible.
func (n *Navigator) Cells() []VisibleCell {
	out := make([]VisibleCell, 0, len(n.order))
	for _, i := range n.order {
		out = append(out, *n.cells[i])
	}
	return out
}

// CrossFace reveals the neighbor of a visible cell across its local facet face (0..3).
// The neighbor is glued onto the shared triangle by reflecting the far vertex through
// the triangle's centroid; its slots are [p0, p2, p1, p4] so it keeps the source's
// orientation. Returns ErrNotFound if the source is not visible and ErrAlreadyVisible
// (without changes) if the neighbor already is.
func (n *Navigator) CrossFace(index, face int) (VisibleCell, error) {
	if face < 0 || face >= len(Facets) {
		return VisibleCell{}, fmt.Errorf("face %d out of range [0,%d)", face, len(Facets))
	}
	src, ok := n.cells[index]
	if !ok {
		return VisibleCell{}, fmt.Errorf("%w: %d", ErrNotFound, index)
	}
	f := Facets[face]
	s0, s1, s2, s3 := src.Slots[f[0]], src.Slots[f[1]], src.Slots[f[2]], src.Slots[f[3]]

	other, opposite, err := n.table.FindSharingCells(s0.Label, s1.Label, s2.Label, s3.Label)
	if err != nil {
		return VisibleCell{}, err
	}
	if n.Visible(other) {
		return VisibleCell{}, fmt.Errorf("%w: %d", ErrAlreadyVisible, other)
	}

	fc := r3.Scale(1.0/3, r3.Add(s0.Pos, r3.Add(s1.Pos, s2.Pos)))
	p4 := r3.Add(fc, r3.Sub(fc, s3.Pos))
	c := &VisibleCell{
		Index: other,
		Slots: [4]Slot{s0, s2, s1, {Label: opposite, Pos: p4}},
	}
	n.cells[other] = c
	n.order = append(n.order, other)
	debuglog.Printf("cell %d face %d -> cell %d (opposite %d), visible=%d", index, face, other, opposite, len(n.order))
	return *c, nil
}

// RemoveCell hides a visible cell. The last visible cell cannot be removed.
func (n *Navigator) RemoveCell(index int) error {
	if !n.Visible(index) {
		return fmt.Errorf("%w: %d", ErrNotFound, index)
	}
	if len(n.order) == 1 {
		return fmt.Errorf("%w: %d", ErrLastCell, index)
	}
	for i, c := range n.order {
		if c == index {
			n.order = append(n.order[:i], n.order[i+1:]...)
			break
		}
	}
	delete(n.cells, index)
	return nil
}

// Triangles returns a triangle soup of the 4 facets of every visible cell, wound so
// that normals point out of each cell.
func (n *Navigator) Triangles() ([]r3.Vec, [][3]int) {
	pts := make([]r3.Vec, 0, 12*len(n.order))
	tris := make([][3]int, 0, 4*len(n.order))
	for _, idx := range n.order {
		c := n.cells[idx]
		outward := c.SignedVolume() < 0
		for _, f := range Facets {
			a, b, d := c.Slots[f[0]].Pos, c.Slots[f[1]].Pos, c.Slots[f[2]].Pos
			if !outward {
				b, d = d, b
			}
			k := len(pts)
			pts = append(pts, a, b, d)
			tris = append(tris, [3]int{k, k + 1, k + 2})
		}
	}
	return pts, tris
}
