package converter

import (
	"fmt"

	"github.com/binzume/v3dconv/geom"
	"github.com/binzume/v3dconv/gltfutil"
	"github.com/binzume/v3dconv/v3d"
	"github.com/qmuntal/gltf"
)

func validatePrimitive(doc *gltf.Document, i int, p *gltf.Primitive) error {
	if p.Mode != gltf.PrimitiveTriangles {
		return fmt.Errorf("%w: primitive %d: only triangle list primitives are supported", v3d.ErrValidation, i)
	}
	indexCount := gltfutil.IndexCount(doc, p)
	if indexCount < 0 {
		return fmt.Errorf("%w: primitive %d: not indexed geometry is not supported", v3d.ErrValidation, i)
	}
	vertexCount := gltfutil.VertexCount(doc, p)
	if vertexCount < 0 {
		return fmt.Errorf("%w: primitive %d: mesh has no positions", v3d.ErrDataAssumption, i)
	}
	if vertexCount > v3d.MaxBatchVertices {
		return fmt.Errorf("%w: primitive %d has too many vertices: %d (limit %d)", v3d.ErrValidation, i, vertexCount, v3d.MaxBatchVertices)
	}
	if indexCount > v3d.MaxBatchIndices {
		return fmt.Errorf("%w: primitive %d has too many indices: %d (limit %d)", v3d.ErrValidation, i, indexCount, v3d.MaxBatchIndices)
	}
	if indexCount%3 != 0 {
		return fmt.Errorf("%w: primitive %d: number of indices is not a multiple of three: %d", v3d.ErrDataAssumption, i, indexCount)
	}
	return nil
}

func readPrimitive(doc *gltf.Document, i int, p *gltf.Primitive) (*gltfutil.PrimitiveData, error) {
	d, err := gltfutil.ReadPrimitive(doc, p)
	if err != nil {
		return nil, fmt.Errorf("primitive %d: %w", i, err)
	}
	n := len(d.Positions)
	switch {
	case d.Positions == nil:
		return nil, fmt.Errorf("%w: primitive %d: mesh has no positions", v3d.ErrDataAssumption, i)
	case d.Normals == nil:
		return nil, fmt.Errorf("%w: primitive %d: mesh has no normals", v3d.ErrDataAssumption, i)
	case d.Indices == nil:
		return nil, fmt.Errorf("%w: primitive %d: mesh has no indices", v3d.ErrDataAssumption, i)
	case len(d.Normals) != n:
		return nil, fmt.Errorf("%w: primitive %d: %d normals for %d vertices", v3d.ErrDataAssumption, i, len(d.Normals), n)
	case d.TexCoords != nil && len(d.TexCoords) != n:
		return nil, fmt.Errorf("%w: primitive %d: %d texture coordinates for %d vertices", v3d.ErrDataAssumption, i, len(d.TexCoords), n)
	}
	for _, idx := range d.Indices {
		if int(idx) >= n {
			return nil, fmt.Errorf("%w: primitive %d: index %d is out of range (%d vertices)", v3d.ErrDataAssumption, i, idx, n)
		}
	}
	return d, nil
}

// computeBoundingBox returns the box of the transformed vertices. Empty meshes get a zero box.
func computeBoundingBox(prims []*gltfutil.PrimitiveData, linear *geom.Matrix3) v3d.BoundingBox {
	box := geom.NewEmptyBox()
	for _, p := range prims {
		for _, pos := range p.Positions {
			box.Extend(linear.TransformPoint(geom.NewVector3FromArray(pos)))
		}
	}
	if box.IsEmpty() {
		return v3d.BoundingBox{}
	}
	return v3d.BoundingBox{Min: box.Min.Array(), Max: box.Max.Array()}
}

// computeBoundingRadius returns the largest distance of a transformed vertex from the submesh origin.
// Vertices are relative to the origin once the linear part is applied.
func computeBoundingRadius(prims []*gltfutil.PrimitiveData, linear *geom.Matrix3) float32 {
	var radius float32
	for _, p := range prims {
		for _, pos := range p.Positions {
			radius = geom.Max(radius, linear.TransformPoint(geom.NewVector3FromArray(pos)).Len())
		}
	}
	return radius
}

// generateUV approximates a cube projection from the local position and normal.
func generateUV(pos, n *geom.Vector3) *geom.Vector2 {
	ax, ay, az := geom.Abs(n.X), geom.Abs(n.Y), geom.Abs(n.Z)
	switch {
	case ax >= geom.Max(ay, az):
		// left or right side
		return &geom.Vector2{X: pos.X + pos.Z*geom.Sign(n.X), Y: pos.Y}
	case ay >= geom.Max(ax, az):
		// top or bottom side
		return &geom.Vector2{X: pos.X * geom.Sign(n.Y), Y: pos.Z}
	default:
		// front or back side
		return &geom.Vector2{X: pos.Z + pos.X*geom.Sign(n.Z), Y: pos.Y}
	}
}

func (c *gltfToV3d) convertPrimitive(doc *gltf.Document, p *gltf.Primitive, d *gltfutil.PrimitiveData,
	linear *geom.Matrix3, textures v3d.TextureTable) (*v3d.Batch, []Diagnostic) {
	var diags []Diagnostic
	m := gltfutil.Material(doc, p)
	b := &v3d.Batch{}

	name, diag := c.resolveTextureName(doc, m)
	if diag != nil {
		diags = append(diags, *diag)
	}
	b.TextureIndex = int32(textures.IndexOf(name))
	state, stateDiags := renderState(doc, m)
	b.RenderState = state
	diags = append(diags, stateDiags...)

	positions := make([]*geom.Vector3, len(d.Positions))
	b.Positions = make([][3]float32, len(d.Positions))
	b.Normals = make([][3]float32, len(d.Positions))
	b.UVs = make([][2]float32, len(d.Positions))
	for i := range d.Positions {
		pos := geom.NewVector3FromArray(d.Positions[i])
		n := geom.NewVector3FromArray(d.Normals[i])
		positions[i] = linear.TransformPoint(pos)
		b.Positions[i] = positions[i].Array()
		b.Normals[i] = linear.TransformNormal(n).Array()
		if d.TexCoords != nil {
			b.UVs[i] = d.TexCoords[i]
		} else {
			b.UVs[i] = generateUV(pos, n).Array()
		}
	}

	var flags uint16
	if m != nil && m.DoubleSided {
		flags |= v3d.TriangleFlagDoubleSided
	}
	for i := 0; i+2 < len(d.Indices); i += 3 {
		i0, i1, i2 := d.Indices[i], d.Indices[i+1], d.Indices[i+2]
		b.Triangles = append(b.Triangles, v3d.Triangle{
			Indices: [3]uint16{uint16(i0), uint16(i1), uint16(i2)},
			Flags:   flags,
		})
		plane := geom.TrianglePlane(positions[i0], positions[i1], positions[i2])
		b.Planes = append(b.Planes, [4]float32{plane.X, plane.Y, plane.Z, plane.W})
	}
	return b, diags
}
