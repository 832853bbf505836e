package cells

import (
	"fmt"
	"math"
	"sync"

	"github.com/lukaszgryglicki/polyhedra4d/internal/debuglog"
)

// 600-cell: 120 vertices, 720 edges, 1200 triangles, 600 tetrahedra.
const (
	Cell600Vertices = 120
	Cell600Cells    = 600
)

// evenPerms4 lists the 12 even permutations of (0,1,2,3).
func evenPerms4() [12][4]int {
	return [12][4]int{
		{0, 1, 2, 3}, {0, 2, 3, 1}, {0, 3, 1, 2},
		{1, 0, 3, 2}, {1, 2, 0, 3}, {1, 3, 2, 0},
		{2, 0, 1, 3}, {2, 1, 3, 0}, {2, 3, 0, 1},
		{3, 0, 2, 1}, {3, 1, 0, 2}, {3, 2, 1, 0},
	}
}

// signVariants flips the signs of the non-zero entries in every combination.
func signVariants(vals [4]float64) [][4]float64 {
	out := make([][4]float64, 0, 16)
	for s := 0; s < 16; s++ {
		v := vals
		skip := false
		for i := 0; i < 4; i++ {
			if (s>>i)&1 == 0 {
				continue
			}
			if v[i] == 0 {
				// flipping a zero duplicates another mask
				skip = true
				break
			}
			v[i] = -v[i]
		}
		if skip {
			continue
		}
		out = append(out, v)
	}
	return out
}

// pushUnique appends the normalised vector unless an equal one (1e-12 quantised) exists.
func pushUnique(set map[[4]int64]struct{}, out *[]Vector4, v [4]float64) {
	const q = 1e12
	k := [4]int64{
		int64(math.Round(v[0] * q)),
		int64(math.Round(v[1] * q)),
		int64(math.Round(v[2] * q)),
		int64(math.Round(v[3] * q)),
	}
	if _, ok := set[k]; ok {
		return
	}
	set[k] = struct{}{}
	*out = append(*out, Vector4{v[0], v[1], v[2], v[3]}.Norm())
}

// verts600Unit returns the 120 unit-radius vertices of the 600-cell:
// 8 of (0,0,0,±1) permuted; 16 of (±1/2,±1/2,±1/2,±1/2); and
// 96 even permutations of (0, ±1/2, ±φ/2, ±1/(2φ)) with every sign combination.
func verts600Unit() []Vector4 {
	phi := (1 + math.Sqrt(5)) / 2

	set := make(map[[4]int64]struct{}, 128)
	out := make([]Vector4, 0, Cell600Vertices)

	for a := 0; a < 4; a++ {
		for s := -1; s <= 1; s += 2 {
			v := [4]float64{}
			v[a] = float64(s)
			pushUnique(set, &out, v)
		}
	}

	for _, v := range signVariants([4]float64{0.5, 0.5, 0.5, 0.5}) {
		pushUnique(set, &out, v)
	}

	base := [4]float64{0, 0.5, 0.5 * phi, 0.5 / phi}
	for _, p := range evenPerms4() {
		v := [4]float64{base[p[0]], base[p[1]], base[p[2]], base[p[3]]}
		for _, vv := range signVariants(v) {
			pushUnique(set, &out, vv)
		}
	}
	return out
}

var (
	cell600Once  sync.Once
	cell600Table *Table
	cell600Err   error
)

// Cell600Table returns the static cell -> 4 vertex labels table of the 600-cell.
// Labels index verts600Unit; cells are the 4-cliques of the edge graph
// (edge length 1/φ at unit radius), each row ascending, rows in lexicographic order.
// The table is computed once and shared; it is read-only.
func Cell600Table() (*Table, error) {
	cell600Once.Do(func() {
		cell600Table, cell600Err = buildCell600Table()
	})
	return cell600Table, cell600Err
}

func buildCell600Table() (*Table, error) {
	verts := verts600Unit()
	n := len(verts)
	if n != Cell600Vertices {
		return nil, fmt.Errorf("600-cell: expected %d vertices, got %d", Cell600Vertices, n)
	}
	phi := (1 + math.Sqrt(5)) / 2
	edge2 := 1 / (phi * phi)

	adjacent := make([][]bool, n)
	neighbors := make([][]int, n)
	for i := range adjacent {
		adjacent[i] = make([]bool, n)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d := verts[i].Sub(verts[j])
			if math.Abs(d.Dot(d)-edge2) < 1e-9 {
				adjacent[i][j], adjacent[j][i] = true, true
				neighbors[i] = append(neighbors[i], j)
			}
		}
	}

	rows := make([]Labels, 0, Cell600Cells)
	for a := 0; a < n; a++ {
		for _, b := range neighbors[a] {
			for _, c := range neighbors[b] {
				if !adjacent[a][c] {
					continue
				}
				for _, d := range neighbors[c] {
					if adjacent[a][d] && adjacent[b][d] {
						rows = append(rows, Labels{a, b, c, d})
					}
				}
			}
		}
	}
	if len(rows) != Cell600Cells {
		return nil, fmt.Errorf("600-cell: expected %d cells, got %d", Cell600Cells, len(rows))
	}
	debuglog.Printf("600-cell table: %d vertices, %d cells", n, len(rows))
	return NewTable(rows)
}
