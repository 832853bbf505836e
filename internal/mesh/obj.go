package mesh

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
)

// LoadOBJ reads a polygonal Wavefront OBJ file and builds a mesh from its v/f records.
func LoadOBJ(path string) (*Mesh, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	m, err := ReadOBJ(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// ReadOBJ parses OBJ text. Only "v" and "f" records are used; texture/normal references
// in face tokens ("1/2/3", "1//3") are ignored, negative indices count from the end.
func ReadOBJ(r io.Reader) (*Mesh, error) {
	points := make([]r3.Vec, 0, 1024)
	var faces [][]int
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if len(line) < 2 || line[0] == '#' {
			continue
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "v":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: vertex needs 3 coordinates", lineNo)
			}
			var xyz [3]float64
			for i := range xyz {
				f, err := strconv.ParseFloat(fields[i+1], 64)
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNo, err)
				}
				xyz[i] = f
			}
			points = append(points, r3.Vec{X: xyz[0], Y: xyz[1], Z: xyz[2]})
		case "f":
			face := make([]int, 0, len(fields)-1)
			for _, tok := range fields[1:] {
				idx, err := strconv.Atoi(strings.SplitN(tok, "/", 2)[0])
				if err != nil {
					return nil, fmt.Errorf("line %d: bad face index %q", lineNo, tok)
				}
				face = append(face, fixIndex(idx, len(points)))
			}
			faces = append(faces, face)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return Build(points, faces)
}

// fixIndex converts a 1-based (or negative, relative) OBJ index to 0-based.
func fixIndex(i, n int) int {
	if i < 0 {
		return n + i
	}
	return i - 1
}

// WriteOBJ writes vertices and faces with 1-based indices.
func (m *Mesh) WriteOBJ(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# %s\n", m.Stats())
	for _, v := range m.verts {
		fmt.Fprintf(bw, "v %s %s %s\n", ftoa(v.Pos.X), ftoa(v.Pos.Y), ftoa(v.Pos.Z))
	}
	for _, f := range m.faces {
		bw.WriteString("f")
		for _, v := range f.Verts {
			bw.WriteString(" " + strconv.Itoa(v+1))
		}
		bw.WriteString("\n")
	}
	return bw.Flush()
}

// SaveOBJ writes the mesh to path, creating parent directories.
func (m *Mesh) SaveOBJ(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := m.WriteOBJ(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func ftoa(x float64) string { return strconv.FormatFloat(x, 'g', -1, 64) }
