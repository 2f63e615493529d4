package geom

import (
	"testing"
)

func TestVector3(t *testing.T) {
	zero := NewVector3(0, 0, 0)
	if zero.Len() != 0 || zero.LenSqr() != 0 || zero.Dot(zero) != 0 {
		t.Error("len != 0")
	}

	if *zero.Normalize() != *NewVector3(1, 0, 0) {
		t.Error("Normalize should fall back to the X axis: ", zero)
	}

	if *NewVector3(0, 0, 5).Normalize() != *NewVector3(0, 0, 1) {
		t.Error("Normalize()")
	}

	a, b := NewVector3(1, -2, 3), NewVector3(-1, 4, 0)
	if *a.Min(b) != *NewVector3(-1, -2, 0) || *a.Max(b) != *NewVector3(1, 4, 3) {
		t.Error("Min/Max: ", a.Min(b), a.Max(b))
	}
	if a.Array() != [3]Element{1, -2, 3} || *NewVector3FromArray(a.Array()) != *a {
		t.Error("Array()")
	}
}

func TestScalarHelpers(t *testing.T) {
	if Abs(-2) != 2 || Min(1, -1) != -1 || Max(1, -1) != 1 {
		t.Error("Abs/Min/Max")
	}
	if Sign(3) != 1 || Sign(-3) != -1 || Sign(0) != 1 {
		t.Error("Sign")
	}
}

func TestVector2And4(t *testing.T) {
	if (&Vector2{X: 1, Y: 2}).Array() != [2]Element{1, 2} {
		t.Error("Vector2.Array()")
	}
	q := NewQuaternionFromArray([4]Element{1, 2, 3, 4})
	if *q != *NewQuaternion(1, 2, 3, 4) || q.LenSqr() != 30 {
		t.Error("quaternion: ", q)
	}
}
