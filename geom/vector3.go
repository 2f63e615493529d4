package geom

import "math"

type Element = float32

type Vector3 struct {
	X Element
	Y Element
	Z Element
}

func NewVector3(x, y, z float32) *Vector3 {
	return &Vector3{X: x, Y: y, Z: z}
}

func NewVector3FromArray(arr [3]Element) *Vector3 {
	return &Vector3{X: arr[0], Y: arr[1], Z: arr[2]}
}

func (v *Vector3) Add(v2 *Vector3) *Vector3 {
	return &Vector3{X: v.X + v2.X, Y: v.Y + v2.Y, Z: v.Z + v2.Z}
}

func (v *Vector3) Sub(v2 *Vector3) *Vector3 {
	return &Vector3{X: v.X - v2.X, Y: v.Y - v2.Y, Z: v.Z - v2.Z}
}

func (v *Vector3) Dot(v2 *Vector3) Element {
	return v.X*v2.X + v.Y*v2.Y + v.Z*v2.Z
}

func (v *Vector3) Cross(v2 *Vector3) *Vector3 {
	return &Vector3{
		X: v.Y*v2.Z - v.Z*v2.Y,
		Y: v.Z*v2.X - v.X*v2.Z,
		Z: v.X*v2.Y - v.Y*v2.X,
	}
}

func (v *Vector3) Len() Element {
	return Element(math.Sqrt(float64(v.X*v.X + v.Y*v.Y + v.Z*v.Z)))
}

func (v *Vector3) LenSqr() Element {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

// Normalize scales v to unit length in place. A zero vector becomes (1,0,0).
func (v *Vector3) Normalize() *Vector3 {
	l := v.Len()
	if l > 0 {
		v.X /= l
		v.Y /= l
		v.Z /= l
	} else {
		v.X = 1
	}
	return v
}

func (v *Vector3) Min(v2 *Vector3) *Vector3 {
	return &Vector3{X: Min(v.X, v2.X), Y: Min(v.Y, v2.Y), Z: Min(v.Z, v2.Z)}
}

func (v *Vector3) Max(v2 *Vector3) *Vector3 {
	return &Vector3{X: Max(v.X, v2.X), Y: Max(v.Y, v2.Y), Z: Max(v.Z, v2.Z)}
}

func (v *Vector3) Array() [3]Element {
	return [3]Element{v.X, v.Y, v.Z}
}

func (mat *Matrix4) ApplyTo(v *Vector3) *Vector3 {
	return &Vector3{
		mat[0]*v.X + mat[4]*v.Y + mat[8]*v.Z + mat[12],
		mat[1]*v.X + mat[5]*v.Y + mat[9]*v.Z + mat[13],
		mat[2]*v.X + mat[6]*v.Y + mat[10]*v.Z + mat[14],
	}
}

func Abs(v Element) Element {
	return Element(math.Abs(float64(v)))
}

func Min(a, b Element) Element {
	if b < a {
		return b
	}
	return a
}

func Max(a, b Element) Element {
	if b > a {
		return b
	}
	return a
}

// Sign returns -1 for negative values and 1 otherwise.
func Sign(v Element) Element {
	if math.Signbit(float64(v)) {
		return -1
	}
	return 1
}
