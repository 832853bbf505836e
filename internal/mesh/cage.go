package mesh

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Cage is an editable control polyhedron: points plus face walks.
// Editing helpers mutate it in place; Build turns it into a validated Mesh.
type Cage struct {
	Points []r3.Vec
	Faces  [][]int
}

func (c *Cage) Build() (*Mesh, error) { return Build(c.Points, c.Faces) }

// Ramp maps t linearly from [a,b] onto [0,1], clamping outside.
func Ramp(t, a, b float64) float64 {
	switch {
	case t <= a:
		return 0
	case t >= b:
		return 1
	}
	return (t - a) / (b - a)
}

// Cube returns an axis-aligned cube of the given edge size centred at the origin,
// faces oriented outward.
func Cube(size float64) *Cage {
	h := size / 2
	c := &Cage{}
	for _, p := range [][3]float64{
		{-1, -1, -1}, {1, -1, -1}, {-1, 1, -1}, {1, 1, -1},
		{-1, -1, 1}, {1, -1, 1}, {-1, 1, 1}, {1, 1, 1},
	} {
		c.Points = append(c.Points, r3.Vec{X: p[0] * h, Y: p[1] * h, Z: p[2] * h})
	}
	c.Faces = [][]int{{2, 3, 1, 0}, {5, 7, 6, 4}, {5, 4, 0, 1}, {7, 5, 1, 3}, {6, 7, 3, 2}, {4, 6, 2, 0}}
	return c
}

// Tetrahedron returns a regular tetrahedron inscribed in the cube [-1,1]^3, faces outward.
func Tetrahedron() *Cage {
	return &Cage{
		Points: []r3.Vec{{X: 1, Y: 1, Z: 1}, {X: 1, Y: -1, Z: -1}, {X: -1, Y: 1, Z: -1}, {X: -1, Y: -1, Z: 1}},
		Faces:  [][]int{{0, 1, 2}, {0, 3, 1}, {0, 2, 3}, {1, 3, 2}},
	}
}

func (c *Cage) checkFace(fi int) error {
	if fi < 0 || fi >= len(c.Faces) {
		return fmt.Errorf("face %d out of range [0,%d)", fi, len(c.Faces))
	}
	if len(c.Faces[fi]) < 3 {
		return fmt.Errorf("face %d has %d vertices", fi, len(c.Faces[fi]))
	}
	for _, v := range c.Faces[fi] {
		if v < 0 || v >= len(c.Points) {
			return fmt.Errorf("face %d references missing point %d", fi, v)
		}
	}
	return nil
}

// Extrude pushes face fi by d along its normal cross(p1-p0, p2-p0).
// The face is replaced by the moved cap and one side quad is appended per face edge.
func (c *Cage) Extrude(fi int, d float64) error {
	if err := c.checkFace(fi); err != nil {
		return err
	}
	face := c.Faces[fi]
	p0, p1, p2 := c.Points[face[0]], c.Points[face[1]], c.Points[face[2]]
	nrm := r3.Cross(r3.Sub(p1, p0), r3.Sub(p2, p0))
	if r3.Norm(nrm) == 0 {
		return fmt.Errorf("face %d is degenerate, cannot extrude", fi)
	}
	delta := r3.Scale(d, r3.Unit(nrm))
	k := len(c.Points)
	n := len(face)
	top := make([]int, n)
	for j, v := range face {
		c.Points = append(c.Points, r3.Add(c.Points[v], delta))
		top[j] = k + j
	}
	for j := 0; j < n; j++ {
		j1 := (j + 1) % n
		c.Faces = append(c.Faces, []int{face[j], face[j1], k + j1, k + j})
	}
	c.Faces[fi] = top
	return nil
}

// AddHandle bridges quads f1 and f2 with a four segment tube bent around the point
// (centroid of both faces) + offset. r is the half-size of the tube's square section.
// The two face slots are reused for the first two tube faces; the rest are appended.
func (c *Cage) AddHandle(f1, f2 int, offset r3.Vec, r float64) error {
	for _, fi := range []int{f1, f2} {
		if err := c.checkFace(fi); err != nil {
			return err
		}
		if len(c.Faces[fi]) != 4 {
			return fmt.Errorf("handle ends must be quads, face %d has %d vertices", fi, len(c.Faces[fi]))
		}
	}
	if f1 == f2 {
		return fmt.Errorf("handle needs two distinct faces, got %d twice", f1)
	}
	face1 := append([]int(nil), c.Faces[f1]...)
	face2 := append([]int(nil), c.Faces[f2]...)
	c1 := centroid(c.Points, face1)
	c2 := centroid(c.Points, face2)
	mid := r3.Scale(0.5, r3.Add(c1, c2))
	center := r3.Add(mid, offset)

	R := r3.Norm(offset)
	if R == 0 {
		return fmt.Errorf("handle offset must be non-zero")
	}
	e1 := r3.Unit(offset)
	e0 := r3.Sub(c1, c2)
	e0 = r3.Sub(e0, r3.Scale(r3.Dot(e1, e0), e1))
	if r3.Norm(e0) < 1e-12 {
		return fmt.Errorf("handle offset is parallel to the line between faces %d and %d", f1, f2)
	}
	e0 = r3.Unit(e0)
	e2 := r3.Unit(r3.Cross(e0, e1))

	k := len(c.Points)
	q := [4][2]float64{{1, -1}, {-1, -1}, {-1, 1}, {1, 1}}
	for i := 0; i < 3; i++ {
		phi := math.Pi * 2 * float64(i+1) / 4
		cs, sn := math.Cos(phi), math.Sin(phi)
		for j := 0; j < 4; j++ {
			rr := R + r*q[j][0]
			y := r * q[j][1]
			p := r3.Add(center, r3.Scale(rr*sn, e0))
			p = r3.Add(p, r3.Scale(-rr*cs, e1))
			p = r3.Add(p, r3.Scale(y, e2))
			c.Points = append(c.Points, p)
		}
	}
	ring := func(i int) []int {
		ki := k + 4*i
		return []int{ki, ki + 1, ki + 2, ki + 3}
	}
	count := 0
	for i := 0; i < 4; i++ {
		t1 := face1
		if i > 0 {
			t1 = ring(i - 1)
		}
		t2 := []int{face2[1], face2[0], face2[3], face2[2]}
		if i < 3 {
			t2 = ring(i)
		}
		for j := 0; j < 4; j++ {
			j1 := (j + 1) % 4
			t := []int{t1[j], t1[j1], t2[j1], t2[j]}
			switch count {
			case 0:
				c.Faces[f1] = t
			case 1:
				c.Faces[f2] = t
			default:
				c.Faces = append(c.Faces, t)
			}
			count++
		}
	}
	return nil
}

// MorphCage builds the four-armed body of the bi-torus viewer at morph time t in [0,1]:
// a prism whose faces 0..3 are extruded into arms. Once the ramp reaches 0.9 the six
// middle faces merge into two hexagons.
func MorphCage(t float64) (*Cage, error) {
	t1 := Ramp(t, 0, 0.5)
	x0 := 1/math.Sqrt(3)*(1-t1) + t1
	d := 2 * (1 - t1)

	c := &Cage{}
	q := [3][2]float64{{0, 1 + d}, {x0, d}, {-x0, d}}
	for i := 0; i < 3; i++ {
		x, z := q[i][0], q[i][1]
		for j := 0; j < 2; j++ {
			c.Points = append(c.Points, r3.Vec{X: x, Y: 1, Z: z}, r3.Vec{X: x, Y: -1, Z: z})
			x, z = -x, -z
		}
	}
	c.Faces = [][]int{{2, 10, 11, 3}, {4, 0, 1, 5}, {0, 8, 9, 1}, {6, 2, 3, 7}}
	if t1 < 0.9 {
		c.Faces = append(c.Faces, []int{0, 4, 8}, []int{1, 9, 5}, []int{2, 6, 10}, []int{3, 11, 7},
			[]int{4, 10, 6, 8}, []int{5, 9, 7, 11})
	} else {
		c.Faces = append(c.Faces, []int{0, 4, 10, 2, 6, 8}, []int{1, 9, 7, 3, 11, 5})
	}
	c.Faces = append(c.Faces, []int{10, 4, 5, 11}, []int{8, 6, 7, 9})
	for fi := 0; fi < 4; fi++ {
		if err := c.Extrude(fi, 2); err != nil {
			return nil, err
		}
	}
	return c, nil
}
