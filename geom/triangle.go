package geom

// TriangleNormal returns normalize((p1-p0) x (p2-p1)). Vertex order is kept as given.
func TriangleNormal(p0, p1, p2 *Vector3) *Vector3 {
	return p1.Sub(p0).Cross(p2.Sub(p1)).Normalize()
}

// TrianglePlane returns the plane (a, b, c, d) with a*x + b*y + c*z + d = 0 for every point of the triangle.
func TrianglePlane(p0, p1, p2 *Vector3) *Vector4 {
	n := TriangleNormal(p0, p1, p2)
	return &Vector4{X: n.X, Y: n.Y, Z: n.Z, W: -n.Dot(p0)}
}
