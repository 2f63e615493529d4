package geom

import "math"

// Box is an axis-aligned bounding box.
type Box struct {
	Min Vector3
	Max Vector3
}

// NewEmptyBox returns a box that any Extend call replaces.
func NewEmptyBox() *Box {
	return &Box{
		Min: Vector3{X: math.MaxFloat32, Y: math.MaxFloat32, Z: math.MaxFloat32},
		Max: Vector3{X: -math.MaxFloat32, Y: -math.MaxFloat32, Z: -math.MaxFloat32},
	}
}

func (b *Box) IsEmpty() bool {
	return b.Min.X > b.Max.X || b.Min.Y > b.Max.Y || b.Min.Z > b.Max.Z
}

func (b *Box) Extend(v *Vector3) {
	b.Min = *b.Min.Min(v)
	b.Max = *b.Max.Max(v)
}

func (b *Box) Contains(v *Vector3) bool {
	return v.X >= b.Min.X && v.Y >= b.Min.Y && v.Z >= b.Min.Z &&
		v.X <= b.Max.X && v.Y <= b.Max.Y && v.Z <= b.Max.Z
}
