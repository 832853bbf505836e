package mesh

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestReadOBJ(t *testing.T) {
	src := `# tetrahedron with mixed face token styles
v 1 1 1
v 1 -1 -1
v -1 1 -1
v -1 -1 1
vn 0 0 1
f 1/1/1 2/2/1 3/3/1
f 1//1 4//1 2//1
f -4 -2 -1
f 2 4 3
`
	m, err := ReadOBJ(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, 4, m.NumVertices())
	assert.Equal(t, 6, m.NumEdges())
	assert.Equal(t, [][]int{{0, 1, 2}, {0, 3, 1}, {0, 2, 3}, {1, 3, 2}}, m.FaceIndices())
	assert.Equal(t, r3.Vec{X: -1, Y: -1, Z: 1}, m.Vertex(3).Pos)
}

func TestReadOBJErrors(t *testing.T) {
	for name, src := range map[string]string{
		"short vertex": "v 1 2\n",
		"bad float":    "v 1 2 x\n",
		"bad index":    "v 0 0 0\nf a b c\n",
		"open surface": "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n",
	} {
		_, err := ReadOBJ(strings.NewReader(src))
		assert.Error(t, err, name)
	}
}

func TestOBJRoundTrip(t *testing.T) {
	m, err := Cube(2).Build()
	require.NoError(t, err)
	sub, err := Subdivide(m)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, sub.WriteOBJ(&buf))
	assert.True(t, strings.HasPrefix(buf.String(), "# V=26 E=48 F=24"))

	back, err := ReadOBJ(&buf)
	require.NoError(t, err)
	assert.Equal(t, sub.Points(), back.Points())
	assert.Equal(t, sub.FaceIndices(), back.FaceIndices())

	path := filepath.Join(t.TempDir(), "out", "cube.obj")
	require.NoError(t, sub.SaveOBJ(path))
	loaded, err := LoadOBJ(path)
	require.NoError(t, err)
	assert.Equal(t, sub.NumEdges(), loaded.NumEdges())

	_, err = LoadOBJ(filepath.Join(t.TempDir(), "missing.obj"))
	assert.Error(t, err)
}

func TestTransform(t *testing.T) {
	a := Affine([3]float64{1, 2, 3}, [3]float64{0, 0, 90}, 2)
	got := TransformPoints([]r3.Vec{{X: 1}}, a)[0]
	assert.True(t, vecNear(r3.Vec{X: 1, Y: 4, Z: 3}, got, 1e-12), "%v", got)

	id := Affine([3]float64{}, [3]float64{}, 0)
	assert.Equal(t, r3.Vec{X: 1, Y: 2, Z: 3}, TransformPoints([]r3.Vec{{X: 1, Y: 2, Z: 3}}, id)[0])

	m, err := Cube(2).Build()
	require.NoError(t, err)
	moved, err := m.Transformed(Affine([3]float64{5, 0, 0}, [3]float64{}, 1))
	require.NoError(t, err)
	assert.Equal(t, m.EdgePairs(), moved.EdgePairs())
	assert.True(t, vecNear(r3.Vec{X: 6, Y: 1, Z: 1}, moved.Vertex(7).Pos, 1e-12))

	c := Cube(2)
	c.Transform(Affine([3]float64{}, [3]float64{}, 3))
	assert.True(t, vecNear(r3.Vec{X: 3, Y: 3, Z: 3}, c.Points[7], 1e-12))
}
