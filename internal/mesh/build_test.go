package mesh

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

// checkInvariants asserts the structural guarantees every built mesh must satisfy.
func checkInvariants(t *testing.T, m *Mesh) {
	t.Helper()
	for i := 0; i < m.NumEdges(); i++ {
		e := m.Edge(i)
		require.NotEqual(t, e.Faces[0], e.Faces[1], "edge %d", i)
		for _, fi := range e.Faces {
			assert.Contains(t, m.Face(fi).Edges, i, "edge %d not listed by face %d", i, fi)
		}
	}
	for i := 0; i < m.NumFaces(); i++ {
		f := m.Face(i)
		require.Equal(t, len(f.Verts), len(f.Edges))
		n := len(f.Verts)
		for k, ei := range f.Edges {
			e := m.Edge(ei)
			assert.Equal(t, edgeKey(f.Verts[k], f.Verts[(k+1)%n]), edgeKey(e.Verts[0], e.Verts[1]),
				"face %d edge %d not aligned with its walk", i, k)
		}
	}
	for i := 0; i < m.NumVertices(); i++ {
		v := m.Vertex(i)
		k := len(v.Edges)
		require.Equal(t, k, len(v.Faces), "vertex %d", i)
		require.GreaterOrEqual(t, k, 3, "vertex %d", i)
		for j, ei := range v.Edges {
			e := m.Edge(ei)
			assert.Contains(t, e.Verts, i, "vertex %d star edge %d", i, ei)
			prev := v.Faces[(j+k-1)%k]
			assert.ElementsMatch(t, []int{prev, v.Faces[j]}, e.Faces[:], "vertex %d: edge %d must border faces %d and %d", i, ei, prev, v.Faces[j])
		}
	}
}

func requireConsistencyError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConsistency), "want ErrConsistency, got %v", err)
	var ce *ConsistencyError
	assert.True(t, errors.As(err, &ce))
}

func TestBuildCube(t *testing.T) {
	c := Cube(2)
	m, err := c.Build()
	require.NoError(t, err)
	assert.Equal(t, 8, m.NumVertices())
	assert.Equal(t, 12, m.NumEdges())
	assert.Equal(t, 6, m.NumFaces())
	for i := 0; i < m.NumVertices(); i++ {
		assert.Equal(t, 3, m.Valence(i))
		assert.Equal(t, i, m.Vertex(i).ID)
	}
	checkInvariants(t, m)
	s := m.Stats()
	assert.Equal(t, 2, s.Euler)
	assert.Equal(t, 0, s.Genus)
	assert.Equal(t, map[int]int{4: 6}, s.Arity)
}

func TestBuildDeterministic(t *testing.T) {
	a, err := Cube(1).Build()
	require.NoError(t, err)
	b, err := Cube(1).Build()
	require.NoError(t, err)
	assert.Equal(t, a.EdgePairs(), b.EdgePairs())
	for i := 0; i < a.NumVertices(); i++ {
		assert.Equal(t, a.Vertex(i).Edges, b.Vertex(i).Edges)
		assert.Equal(t, a.Vertex(i).Faces, b.Vertex(i).Faces)
	}
}

// Every vertex star of an outward mesh turns the same way: with the walk
// leaving edge -> face -> arriving edge, consecutive faces share the edge between them
// and the edge is walked away from the vertex by the later face.
func TestBuildStarOrientation(t *testing.T) {
	m, err := Tetrahedron().Build()
	require.NoError(t, err)
	for i := 0; i < m.NumVertices(); i++ {
		v := m.Vertex(i)
		for j, ei := range v.Edges {
			assert.Equal(t, v.Faces[j], m.leavingFace(ei, i), "vertex %d star position %d", i, j)
		}
	}
}

func TestBuildErrors(t *testing.T) {
	cube := Cube(2)
	flipped := append([][]int(nil), cube.Faces...)
	flipped[0] = []int{0, 1, 3, 2}

	// Two tetrahedra glued at a single vertex: that vertex has two separate fans.
	tet := Tetrahedron()
	bowPts := append([]r3.Vec(nil), tet.Points...)
	for _, p := range tet.Points[1:] {
		bowPts = append(bowPts, r3.Add(p, r3.Vec{X: 5}))
	}
	bowFaces := append([][]int(nil), tet.Faces...)
	remap := []int{0, 4, 5, 6}
	for _, f := range tet.Faces {
		g := make([]int, len(f))
		for i, v := range f {
			g[i] = remap[v]
		}
		bowFaces = append(bowFaces, g)
	}

	cases := []struct {
		name   string
		points []r3.Vec
		faces  [][]int
	}{
		{"open", cube.Points, cube.Faces[1:]},
		{"flipped face", cube.Points, flipped},
		{"duplicated face", cube.Points, append(append([][]int(nil), cube.Faces...), cube.Faces[0])},
		{"two vertices", cube.Points, [][]int{{0, 1}}},
		{"index out of range", cube.Points, [][]int{{0, 1, 8}}},
		{"negative index", cube.Points, [][]int{{0, -1, 2}}},
		{"repeated corner", cube.Points, [][]int{{0, 0, 1}}},
		{"nan point", []r3.Vec{{X: math.NaN()}, {}, {}}, [][]int{{0, 1, 2}}},
		{"unused point", append(append([]r3.Vec(nil), tet.Points...), r3.Vec{}), tet.Faces},
		{"bowtie vertex", bowPts, bowFaces},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m, err := Build(tc.points, tc.faces)
			requireConsistencyError(t, err)
			assert.Nil(t, m)
		})
	}
}

func TestQueries(t *testing.T) {
	m, err := Cube(2).Build()
	require.NoError(t, err)

	pts := m.Points()
	pts[0] = r3.Vec{X: 100}
	assert.NotEqual(t, pts[0], m.Vertex(0).Pos, "Points must return a copy")

	fi := m.FaceIndices()
	fi[0][0] = 7
	assert.Equal(t, 2, m.Face(0).Verts[0], "FaceIndices must return a copy")

	assert.Len(t, m.EdgePairs(), 12)
	assert.Len(t, m.Triangles(), 12)
	assert.Equal(t, r3.Vec{Z: -1}, m.FaceCenter(0))

	for i, p := range m.EdgePairs() {
		mid := m.EdgeMidpoint(i)
		want := midpoint(m.Vertex(p[0]).Pos, m.Vertex(p[1]).Pos)
		assert.Equal(t, want, mid)
	}

	// fan triangles keep the face walk direction
	for _, tri := range m.Triangles() {
		a, b, c := m.Vertex(tri[0]).Pos, m.Vertex(tri[1]).Pos, m.Vertex(tri[2]).Pos
		n := r3.Cross(r3.Sub(b, a), r3.Sub(c, a))
		center := r3.Scale(1.0/3, r3.Add(a, r3.Add(b, c)))
		assert.Greater(t, r3.Dot(n, center), 0.0, "cube triangles should face outward")
	}
}
