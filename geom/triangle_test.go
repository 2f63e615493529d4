package geom

import "testing"

func TestTrianglePlane(t *testing.T) {
	const eps = 0.000001

	p0, p1, p2 := NewVector3(0, 0, 5), NewVector3(1, 0, 5), NewVector3(1, 1, 5)
	n := TriangleNormal(p0, p1, p2)
	if n.Sub(NewVector3(0, 0, 1)).Len() > eps {
		t.Error("normal: ", n)
	}
	plane := TrianglePlane(p0, p1, p2)
	if *plane != (Vector4{X: 0, Y: 0, Z: 1, W: -5}) {
		t.Error("plane: ", plane)
	}
	for _, p := range []*Vector3{p0, p1, p2} {
		if d := plane.X*p.X + plane.Y*p.Y + plane.Z*p.Z + plane.W; Abs(d) > eps {
			t.Error("point is not on the plane: ", p, d)
		}
	}

	// reversed winding flips the normal
	n2 := TriangleNormal(p0, p2, p1)
	if n2.Add(n).Len() > eps {
		t.Error("reversed normal: ", n2)
	}
}

func TestBox(t *testing.T) {
	b := NewEmptyBox()
	if !b.IsEmpty() {
		t.Error("new box should be empty")
	}
	pts := []*Vector3{NewVector3(1, -2, 3), NewVector3(-1, 4, 0), NewVector3(0, 0, 9)}
	for _, p := range pts {
		b.Extend(p)
	}
	if b.Min != *NewVector3(-1, -2, 0) || b.Max != *NewVector3(1, 4, 9) {
		t.Error("box: ", b)
	}
	for _, p := range pts {
		if !b.Contains(p) {
			t.Error("box does not contain ", p)
		}
	}
}
