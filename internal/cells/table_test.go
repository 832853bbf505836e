package cells

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fiveCell is the boundary of the 4-simplex: cell i omits vertex i.
func fiveCell(t *testing.T) *Table {
	t.Helper()
	tab, err := NewTable([]Labels{{1, 2, 3, 4}, {0, 2, 3, 4}, {0, 1, 3, 4}, {0, 1, 2, 4}, {0, 1, 2, 3}})
	require.NoError(t, err)
	return tab
}

func cell600(t *testing.T) *Table {
	t.Helper()
	tab, err := Cell600Table()
	require.NoError(t, err)
	return tab
}

func TestMatchVertices(t *testing.T) {
	for _, tc := range []struct {
		cell     Labels
		key      FaceKey
		opposite int
		ok       bool
	}{
		{Labels{0, 1, 2, 3}, FaceKey{0, 1, 2}, 3, true},
		{Labels{0, 1, 2, 3}, FaceKey{1, 2, 3}, 0, true},
		{Labels{0, 1, 2, 3}, FaceKey{0, 2, 3}, 1, true},
		{Labels{0, 1, 2, 3}, FaceKey{0, 1, 3}, 2, true},
		{Labels{0, 1, 2, 3}, FaceKey{1, 2, 4}, 0, false},
		{Labels{0, 1, 2, 3}, FaceKey{0, 1, 5}, 0, false},
		{Labels{0, 1, 2, 4}, FaceKey{0, 1, 3}, 0, false},
		{Labels{3, 5, 7, 9}, FaceKey{0, 1, 2}, 0, false},
		{Labels{3, 5, 7, 9}, FaceKey{5, 7, 9}, 3, true},
	} {
		opp, ok := MatchVertices(tc.cell, tc.key)
		assert.Equal(t, tc.ok, ok, "%v %v", tc.cell, tc.key)
		if tc.ok {
			assert.Equal(t, tc.opposite, opp, "%v %v", tc.cell, tc.key)
		}
	}
}

func TestNewTable(t *testing.T) {
	tab, err := NewTable([]Labels{{3, 1, 2, 0}})
	require.NoError(t, err)
	row, ok := tab.Row(0)
	require.True(t, ok)
	assert.Equal(t, Labels{0, 1, 2, 3}, row)
	_, ok = tab.Row(1)
	assert.False(t, ok)
	_, ok = tab.Row(-1)
	assert.False(t, ok)

	for name, rows := range map[string][]Labels{
		"empty":    nil,
		"negative": {{-1, 0, 1, 2}},
		"repeated": {{0, 1, 1, 2}},
	} {
		_, err := NewTable(rows)
		assert.True(t, errors.Is(err, ErrConsistency), name)
	}
}

func TestFindSharingCells(t *testing.T) {
	tab := fiveCell(t)
	idx, opp, err := tab.FindSharingCells(3, 1, 2, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, idx)
	assert.Equal(t, 0, opp)

	idx, opp, err = tab.FindSharingCells(1, 2, 3, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, idx)
	assert.Equal(t, 4, opp)

	_, _, err = tab.FindSharingCells(1, 2, 3, 2)
	assert.True(t, errors.Is(err, ErrConsistency), "neither opposite matches")

	_, _, err = tab.FindSharingCells(1, 2, 7, 0)
	assert.True(t, errors.Is(err, ErrConsistency), "no cell has the face")

	three, err := NewTable([]Labels{{0, 1, 2, 3}, {0, 1, 2, 4}, {0, 1, 2, 5}})
	require.NoError(t, err)
	_, _, err = three.FindSharingCells(0, 1, 2, 3)
	var ce *ConsistencyError
	require.True(t, errors.As(err, &ce))
	assert.Contains(t, ce.Msg, "3 cells")

	twins, err := NewTable([]Labels{{0, 1, 2, 3}, {0, 1, 2, 3}})
	require.NoError(t, err)
	_, _, err = twins.FindSharingCells(0, 1, 2, 3)
	assert.True(t, errors.Is(err, ErrConsistency), "both opposites equal")
}

func TestCell600Table(t *testing.T) {
	tab := cell600(t)
	require.Equal(t, Cell600Cells, tab.Len())

	again, err := Cell600Table()
	require.NoError(t, err)
	assert.Same(t, tab, again)

	perVertex := make(map[int]int)
	faces := make(map[FaceKey]int)
	edges := make(map[[2]int]struct{})
	var prev Labels
	for i := 0; i < tab.Len(); i++ {
		row, _ := tab.Row(i)
		for j := 1; j < 4; j++ {
			require.Less(t, row[j-1], row[j])
		}
		if i > 0 {
			assert.True(t, lessLabels(prev, row), "rows must be in lexicographic order")
		}
		prev = row
		for j, l := range row {
			perVertex[l]++
			for _, m := range row[j+1:] {
				edges[[2]int{l, m}] = struct{}{}
			}
		}
		for _, f := range Facets {
			faces[NewFaceKey(row[f[0]], row[f[1]], row[f[2]])]++
		}
	}
	assert.Len(t, perVertex, Cell600Vertices)
	for l, n := range perVertex {
		assert.Equal(t, 20, n, "vertex %d", l)
	}
	assert.Len(t, edges, 720)
	assert.Len(t, faces, 1200)
	for k, n := range faces {
		assert.Equal(t, 2, n, "face %v", k)
	}
}

func lessLabels(a, b Labels) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}

// Every facet of every cell has exactly one neighbor, and adjacency is symmetric.
func TestCell600Neighbors(t *testing.T) {
	tab := cell600(t)
	for i := 0; i < tab.Len(); i++ {
		row, _ := tab.Row(i)
		seen := make(map[int]bool)
		for _, f := range Facets {
			nb, opp, err := tab.FindSharingCells(row[f[0]], row[f[1]], row[f[2]], row[f[3]])
			require.NoError(t, err, "cell %d facet %v", i, f)
			require.NotEqual(t, i, nb)
			seen[nb] = true

			back, backOpp, err := tab.FindSharingCells(row[f[0]], row[f[1]], row[f[2]], opp)
			require.NoError(t, err)
			assert.Equal(t, i, back)
			assert.Equal(t, row[f[3]], backOpp)
		}
		assert.Len(t, seen, 4, "cell %d", i)
	}
}

func TestTableJSON(t *testing.T) {
	tab := fiveCell(t)
	data, err := json.Marshal(tab)
	require.NoError(t, err)
	assert.Equal(t, "[[1,2,3,4],[0,2,3,4],[0,1,3,4],[0,1,2,4],[0,1,2,3]]", string(data))

	path := filepath.Join(t.TempDir(), "table.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	back, err := LoadTable(path)
	require.NoError(t, err)
	assert.Equal(t, tab, back)

	require.NoError(t, os.WriteFile(path, []byte("{"), 0o644))
	_, err = LoadTable(path)
	assert.Error(t, err)
}
