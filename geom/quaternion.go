package geom

type Vector4 struct {
	X Element
	Y Element
	Z Element
	W Element
}

type Quaternion = Vector4

func NewQuaternion(x, y, z, w float32) *Quaternion {
	return &Vector4{X: x, Y: y, Z: z, W: w}
}

func NewQuaternionFromArray(arr [4]Element) *Quaternion {
	return &Vector4{X: arr[0], Y: arr[1], Z: arr[2], W: arr[3]}
}

func (v *Vector4) LenSqr() Element {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z + v.W*v.W
}
