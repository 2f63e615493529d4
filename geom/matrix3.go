package geom

// column-major 3x3 matrix
type Matrix3 [9]Element

func NewMatrix3() *Matrix3 {
	return &Matrix3{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}
}

func (m *Matrix3) TransformVector(v *Vector3) *Vector3 {
	return &Vector3{
		X: v.X*m[0] + v.Y*m[3] + v.Z*m[6],
		Y: v.X*m[1] + v.Y*m[4] + v.Z*m[7],
		Z: v.X*m[2] + v.Y*m[5] + v.Z*m[8],
	}
}

// TransformPoint is TransformVector: a Matrix3 carries no translation.
func (m *Matrix3) TransformPoint(v *Vector3) *Vector3 {
	return m.TransformVector(v)
}

// TransformNormal maps n and renormalizes it.
// A degenerate result becomes (1,0,0), see Vector3.Normalize.
func (m *Matrix3) TransformNormal(n *Vector3) *Vector3 {
	return m.TransformVector(n).Normalize()
}
