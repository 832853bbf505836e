package mesh

import (
	"github.com/go-gl/mathgl/mgl64"
	"gonum.org/v1/gonum/spatial/r3"
)

// Affine composes translate * rotZ * rotY * rotX * scale. A zero scale means 1.
func Affine(translate, rotateDeg [3]float64, scale float64) mgl64.Mat4 {
	if scale == 0 {
		scale = 1
	}
	rot := mgl64.HomogRotate3DZ(mgl64.DegToRad(rotateDeg[2])).
		Mul4(mgl64.HomogRotate3DY(mgl64.DegToRad(rotateDeg[1]))).
		Mul4(mgl64.HomogRotate3DX(mgl64.DegToRad(rotateDeg[0])))
	return mgl64.Translate3D(translate[0], translate[1], translate[2]).
		Mul4(rot).
		Mul4(mgl64.Scale3D(scale, scale, scale))
}

// TransformPoints applies the homogeneous transform to every point.
func TransformPoints(points []r3.Vec, m mgl64.Mat4) []r3.Vec {
	out := make([]r3.Vec, len(points))
	for i, p := range points {
		q := mgl64.TransformCoordinate(mgl64.Vec3{p.X, p.Y, p.Z}, m)
		out[i] = r3.Vec{X: q[0], Y: q[1], Z: q[2]}
	}
	return out
}

// Transform moves the cage's points in place.
func (c *Cage) Transform(m mgl64.Mat4) { c.Points = TransformPoints(c.Points, m) }

// Transformed returns a new mesh with the same topology and transformed positions.
// A mirroring transform keeps the face walks, so orientation follows the mirrored geometry.
func (m *Mesh) Transformed(t mgl64.Mat4) (*Mesh, error) {
	return Build(TransformPoints(m.Points(), t), m.FaceIndices())
}
