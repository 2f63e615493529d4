// Package v3d implements the RF3D static mesh format (.v3m).
package v3d

import "errors"

const (
	Signature = 0x52463344 // RF3D
	Version   = 0x40000

	SectionEnd     = 0x00000000
	SectionSubmesh = 0x5355424D // SUBM

	SubmeshVersion = 7

	// LOD model flags: 0x20 static mesh (triangle planes present)
	LodFlagStatic = 0x20

	BatchHeaderSize          = 0x38
	batchHeaderTextureOffset = 0x20

	TriangleFlagDoubleSided = 0x20

	MaterialFlags = 0x11

	MaxBatchVertices = 6000 - 768
	MaxBatchIndices  = 10000 - 768
	MaxTextures      = 7

	SubmeshNameSize  = 24
	MaterialNameSize = 32

	DefaultSubmeshName = "Default"
)

var (
	// ErrValidation reports input the format cannot represent.
	ErrValidation = errors.New("validation error")
	// ErrDataAssumption reports malformed geometry that is not repaired.
	ErrDataAssumption = errors.New("invalid mesh data")
)

type Header struct {
	Signature          uint32
	Version            uint32
	SubmeshCount       uint32
	VertexCount        uint32 // unused by the game
	TriangleCount      uint32 // unused by the game
	Unknown0           uint32
	TotalMaterialCount uint32
	Unknown1           uint32
	Unknown2           uint32
	ColSphereCount     uint32
}

type BoundingSphere struct {
	Center [3]float32
	Radius float32
}

type BoundingBox struct {
	Min [3]float32
	Max [3]float32
}

// TextureTable is the sorted list of distinct texture names of a submesh.
// Batch texture indices, LOD texture ids and materials refer to its positions.
type TextureTable []string

func (t TextureTable) IndexOf(name string) int {
	for i, n := range t {
		if n == name {
			return i
		}
	}
	return -1
}

type Triangle struct {
	Indices [3]uint16
	Flags   uint16
}

type Batch struct {
	TextureIndex int32
	RenderState  RenderState

	Positions [][3]float32
	Normals   [][3]float32
	UVs       [][2]float32
	Triangles []Triangle
	Planes    [][4]float32
}

type BatchInfo struct {
	VertexCount             uint16
	TriangleCount           uint16
	PositionsSize           uint16
	TrianglesSize           uint16
	SamePosVertexOffsetSize uint16
	BoneLinksSize           uint16
	TexCoordsSize           uint16
	RenderState             uint32
}

func (b *Batch) Info() *BatchInfo {
	v := len(b.Positions)
	tri := len(b.Triangles)
	return &BatchInfo{
		VertexCount:             uint16(v),
		TriangleCount:           uint16(tri),
		PositionsSize:           uint16(v * 3 * 4),
		TrianglesSize:           uint16(tri * 4 * 2),
		SamePosVertexOffsetSize: uint16(v * 2),
		BoneLinksSize:           uint16(v * 2 * 4),
		TexCoordsSize:           uint16(v * 2 * 4),
		RenderState:             b.RenderState.Pack(),
	}
}

type LodModel struct {
	Flags    uint32
	Batches  []*Batch
	Textures TextureTable
}

func (l *LodModel) VertexCount() int {
	n := 0
	for _, b := range l.Batches {
		n += len(b.Positions)
	}
	return n
}

type Material struct {
	Name           string
	EmissiveFactor float32
}

type Submesh struct {
	Name      string
	Sphere    BoundingSphere
	Box       BoundingBox
	Lod       *LodModel
	Materials []*Material
}

type Document struct {
	Submeshes []*Submesh
}

func NewHeader(submeshCount, totalMaterialCount int) *Header {
	return &Header{
		Signature:          Signature,
		Version:            Version,
		SubmeshCount:       uint32(submeshCount),
		TotalMaterialCount: uint32(totalMaterialCount),
	}
}
