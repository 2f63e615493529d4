package geom

import (
	"math"
	"testing"
)

func TestTRSMatrix(t *testing.T) {
	const eps = 0.00001
	s := Element(math.Sqrt(0.5))

	// rotate 90 degrees around Z
	mat := NewTRSMatrix4(NewVector3(1, 2, 3), NewQuaternion(0, 0, s, s), NewVector3(2, 2, 2))
	v := mat.ApplyTo(NewVector3(1, 0, 0))
	if v.Sub(NewVector3(1, 4, 3)).Len() > eps {
		t.Error("scale, rotate then translate: ", v)
	}

	identity := NewTRSMatrix4(NewVector3(0, 0, 0), NewQuaternion(0, 0, 0, 1), NewVector3(1, 1, 1))
	if *identity != *NewMatrix4() {
		t.Error("identity: ", identity)
	}
}

func TestRotationMatrix(t *testing.T) {
	const eps = 0.00001
	s := Element(math.Sqrt(0.5))

	for _, c := range []struct {
		q    *Quaternion
		v    *Vector3
		want *Vector3
	}{
		{NewQuaternion(s, 0, 0, s), NewVector3(0, 1, 0), NewVector3(0, 0, 1)},
		{NewQuaternion(0, s, 0, s), NewVector3(0, 0, 1), NewVector3(1, 0, 0)},
		{NewQuaternion(0, 0, s, s), NewVector3(1, 0, 0), NewVector3(0, 1, 0)},
		{NewQuaternion(0, 0, 1, 0), NewVector3(1, 2, 3), NewVector3(-1, -2, 3)},
	} {
		v := NewRotationMatrix4FromQuaternion(c.q).ApplyTo(c.v)
		if v.Sub(c.want).Len() > eps {
			t.Error("rotation: ", c.q, v, c.want)
		}
	}
}

func TestSplitMatrix(t *testing.T) {
	mat := NewTRSMatrix4(NewVector3(10, 20, 30), NewQuaternion(0, 0, 0, 1), NewVector3(2, 3, 4))
	origin, linear := mat.Split()
	if *origin != *NewVector3(10, 20, 30) {
		t.Error("origin: ", origin)
	}
	if *linear != (Matrix3{2, 0, 0, 0, 3, 0, 0, 0, 4}) {
		t.Error("linear: ", linear)
	}

	// translation is not part of the linear map
	p := linear.TransformPoint(NewVector3(1, 1, 1))
	if *p != *NewVector3(2, 3, 4) {
		t.Error("TransformPoint: ", p)
	}
}
