package cells

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// Labels are the 4 global vertex labels of a tetrahedral cell, ascending in a Table row.
type Labels [4]int

// FaceKey is an ascending triple of vertex labels naming a triangular face.
type FaceKey [3]int

// Facet selects 3 local slots of a cell forming a triangle (Facet[0..2]) and the
// slot opposite to it (Facet[3]).
type Facet [4]int

func (f Facet) Face() [3]int  { return [3]int{f[0], f[1], f[2]} }
func (f Facet) Opposite() int { return f[3] }

// Facets are the 4 canonical facet patterns. All are even permutations of the slots,
// so every facet of a positively oriented cell winds the same way.
var Facets = [4]Facet{{0, 1, 2, 3}, {0, 2, 3, 1}, {0, 3, 1, 2}, {3, 2, 1, 0}}

// NewFaceKey sorts three labels into a face key.
func NewFaceKey(a, b, c int) FaceKey {
	k := FaceKey{a, b, c}
	sort.Ints(k[:])
	return k
}

// Table maps cell index -> vertex labels. It is read-only after construction.
type Table struct {
	rows []Labels
}

// NewTable copies rows, sorting each one ascending. Negative or repeated labels within
// a row are rejected.
func NewTable(rows []Labels) (*Table, error) {
	if len(rows) == 0 {
		return nil, consistencyf("table", "no cells")
	}
	t := &Table{rows: make([]Labels, len(rows))}
	for i, r := range rows {
		sort.Ints(r[:])
		for j, l := range r {
			if l < 0 {
				return nil, consistencyf("table", "cell %d has negative label %d", i, l)
			}
			if j > 0 && r[j-1] == l {
				return nil, consistencyf("table", "cell %d repeats label %d", i, l)
			}
		}
		t.rows[i] = r
	}
	return t, nil
}

// LoadTable reads a JSON array of 4-label rows, e.g. [[0,1,2,3],[0,1,2,4]].
func LoadTable(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var rows []Labels
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return NewTable(rows)
}

// MarshalJSON writes the rows as nested arrays.
func (t *Table) MarshalJSON() ([]byte, error) { return json.Marshal(t.rows) }

func (t *Table) Len() int { return len(t.rows) }

// Row returns the labels of cell i.
func (t *Table) Row(i int) (Labels, bool) {
	if i < 0 || i >= len(t.rows) {
		return Labels{}, false
	}
	return t.rows[i], true
}

// MatchVertices merges the ascending cell labels against an ascending face key.
// It reports the single cell label missing from the key (the vertex opposite to that
// face), or false when the key is not a face of the cell.
func MatchVertices(cell Labels, key FaceKey) (int, bool) {
	opposite, found := 0, false
	i, j := 0, 0
	for i < 4 && j < 3 {
		switch {
		case cell[i] == key[j]:
			i++
			j++
		case cell[i] < key[j]:
			if found {
				return 0, false
			}
			opposite, found = cell[i], true
			i++
		default:
			return 0, false
		}
	}
	if j < 3 {
		return 0, false
	}
	if i == 3 && !found {
		opposite, found = cell[3], true
	}
	return opposite, found
}

// FindSharingCells scans every cell for the triangle {a,b,c}. Exactly two cells must
// contain it, and exactly one of them must have excludeOpposite as its opposite vertex;
// the other is returned with its own opposite label.
func (t *Table) FindSharingCells(a, b, c, excludeOpposite int) (int, int, error) {
	const op = "find sharing cells"
	key := NewFaceKey(a, b, c)
	type match struct{ index, opposite int }
	res := make([]match, 0, 2)
	for i, row := range t.rows {
		if opp, ok := MatchVertices(row, key); ok {
			res = append(res, match{i, opp})
		}
	}
	if len(res) != 2 {
		return 0, 0, consistencyf(op, "face %v is shared by %d cells, expected 2", key, len(res))
	}
	d1, d2 := res[0].opposite, res[1].opposite
	if d1 == d2 || (d1 != excludeOpposite && d2 != excludeOpposite) {
		return 0, 0, consistencyf(op, "face %v: opposites %d and %d do not single out %d", key, d1, d2, excludeOpposite)
	}
	if d1 == excludeOpposite {
		return res[1].index, d2, nil
	}
	return res[0].index, d1, nil
}
