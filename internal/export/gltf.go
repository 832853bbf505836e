package export

import (
	"fmt"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"gonum.org/v1/gonum/spatial/r3"
)

// GLTFDocument builds a glTF document holding one mesh with up to two primitives:
// the triangles and the wireframe lines, sharing one position accessor.
func GLTFDocument(g Geometry) (*gltf.Document, error) {
	if err := g.check(); err != nil {
		return nil, err
	}
	pos := make([][3]float32, len(g.Positions))
	for i, p := range g.Positions {
		pos[i] = [3]float32{float32(p.X), float32(p.Y), float32(p.Z)}
	}

	doc := gltf.NewDocument()
	posAcc := modeler.WritePosition(doc, pos)
	var prims []*gltf.Primitive
	if len(g.Triangles) > 0 {
		idx := make([]uint32, 0, 3*len(g.Triangles))
		for _, t := range g.Triangles {
			idx = append(idx, uint32(t[0]), uint32(t[1]), uint32(t[2]))
		}
		prims = append(prims, &gltf.Primitive{
			Mode:       gltf.PrimitiveTriangles,
			Indices:    gltf.Index(modeler.WriteIndices(doc, idx)),
			Attributes: gltf.PrimitiveAttributes{gltf.POSITION: posAcc},
		})
	}
	if len(g.Lines) > 0 {
		idx := make([]uint32, 0, 2*len(g.Lines))
		for _, l := range g.Lines {
			idx = append(idx, uint32(l[0]), uint32(l[1]))
		}
		prims = append(prims, &gltf.Primitive{
			Mode:       gltf.PrimitiveLines,
			Indices:    gltf.Index(modeler.WriteIndices(doc, idx)),
			Attributes: gltf.PrimitiveAttributes{gltf.POSITION: posAcc},
		})
	}
	doc.Meshes = append(doc.Meshes, &gltf.Mesh{Name: g.Name, Primitives: prims})
	doc.Nodes = append(doc.Nodes, &gltf.Node{Name: g.Name, Mesh: gltf.Index(len(doc.Meshes) - 1)})
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, len(doc.Nodes)-1)
	return doc, nil
}

// SaveGLTF writes g as binary .glb (binary=true) or JSON .gltf with an embedded buffer.
func SaveGLTF(path string, g Geometry, binary bool) error {
	doc, err := GLTFDocument(g)
	if err != nil {
		return err
	}
	if binary {
		return gltf.SaveBinary(doc, path)
	}
	for _, b := range doc.Buffers {
		b.EmbeddedResource()
	}
	return gltf.Save(doc, path)
}

// LoadGLTF reads back the triangle and line primitives of every mesh in a glTF file.
func LoadGLTF(path string) (Geometry, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return Geometry{}, err
	}
	var g Geometry
	for _, m := range doc.Meshes {
		if g.Name == "" {
			g.Name = m.Name
		}
		for _, p := range m.Primitives {
			if p.Mode != gltf.PrimitiveTriangles && p.Mode != gltf.PrimitiveLines {
				continue
			}
			posIdx, ok := p.Attributes[gltf.POSITION]
			if !ok {
				continue
			}
			pos, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
			if err != nil {
				return Geometry{}, err
			}
			if p.Indices == nil {
				return Geometry{}, fmt.Errorf("%s: mesh %q has a primitive without indices", path, m.Name)
			}
			idx, err := modeler.ReadIndices(doc, doc.Accessors[*p.Indices], nil)
			if err != nil {
				return Geometry{}, err
			}
			base := len(g.Positions)
			for _, v := range pos {
				g.Positions = append(g.Positions, r3.Vec{X: float64(v[0]), Y: float64(v[1]), Z: float64(v[2])})
			}
			if p.Mode == gltf.PrimitiveTriangles {
				for i := 0; i+2 < len(idx); i += 3 {
					g.Triangles = append(g.Triangles, [3]int{base + int(idx[i]), base + int(idx[i+1]), base + int(idx[i+2])})
				}
			} else {
				for i := 0; i+1 < len(idx); i += 2 {
					g.Lines = append(g.Lines, [2]int{base + int(idx[i]), base + int(idx[i+1])})
				}
			}
		}
	}
	if len(g.Triangles) == 0 && len(g.Lines) == 0 {
		return Geometry{}, fmt.Errorf("%s: no triangles or lines found", path)
	}
	return g, nil
}
