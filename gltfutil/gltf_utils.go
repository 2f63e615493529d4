package gltfutil

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/binzume/v3dconv/geom"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// ErrInput reports an unreadable or malformed source document.
var ErrInput = errors.New("input error")

const (
	AttrPosition  = "POSITION"
	AttrNormal    = "NORMAL"
	AttrTexCoord0 = "TEXCOORD_0"
)

func Load(path string) (*gltf.Document, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInput, path, err)
	}
	return doc, nil
}

// MeshNodes returns nodes with a mesh in document order.
func MeshNodes(doc *gltf.Document) []*gltf.Node {
	var nodes []*gltf.Node
	for _, n := range doc.Nodes {
		if n.Mesh != nil && int(*n.Mesh) < len(doc.Meshes) {
			nodes = append(nodes, n)
		}
	}
	return nodes
}

func HasHierarchy(doc *gltf.Document) bool {
	for _, n := range doc.Nodes {
		if len(n.Children) > 0 {
			return true
		}
	}
	return false
}

// NodeMatrix returns the local transform of the node.
func NodeMatrix(n *gltf.Node) *geom.Matrix4 {
	var zero, identity [16]float32
	copy(identity[:], geom.NewMatrix4()[:])
	if n.Matrix != zero && n.Matrix != identity {
		return geom.NewMatrix4FromSlice(n.Matrix[:])
	}

	rot := geom.NewQuaternionFromArray(n.Rotation)
	if rot.LenSqr() == 0 {
		rot = geom.NewQuaternion(0, 0, 0, 1)
	}
	scale := geom.NewVector3FromArray(n.Scale)
	if scale.LenSqr() == 0 {
		scale = geom.NewVector3(1, 1, 1)
	}
	return geom.NewTRSMatrix4(geom.NewVector3FromArray(n.Translation), rot, scale)
}

func accessor(doc *gltf.Document, p *gltf.Primitive, attr string) *gltf.Accessor {
	if a, ok := p.Attributes[attr]; ok && int(a) < len(doc.Accessors) {
		return doc.Accessors[a]
	}
	return nil
}

// VertexCount returns the POSITION count, or -1 if the primitive has no positions.
func VertexCount(doc *gltf.Document, p *gltf.Primitive) int {
	if acr := accessor(doc, p, AttrPosition); acr != nil {
		return int(acr.Count)
	}
	return -1
}

// IndexCount returns the index count, or -1 for non-indexed primitives.
func IndexCount(doc *gltf.Document, p *gltf.Primitive) int {
	if p.Indices != nil && int(*p.Indices) < len(doc.Accessors) {
		return int(doc.Accessors[*p.Indices].Count)
	}
	return -1
}

// PrimitiveData holds the decoded attributes of a primitive.
// Missing attributes are nil.
type PrimitiveData struct {
	Positions [][3]float32
	Normals   [][3]float32
	TexCoords [][2]float32
	Indices   []uint32
}

func ReadPrimitive(doc *gltf.Document, p *gltf.Primitive) (*PrimitiveData, error) {
	var err error
	d := &PrimitiveData{}
	if acr := accessor(doc, p, AttrPosition); acr != nil {
		if d.Positions, err = modeler.ReadPosition(doc, acr, nil); err != nil {
			return nil, fmt.Errorf("%w: positions: %v", ErrInput, err)
		}
	}
	if acr := accessor(doc, p, AttrNormal); acr != nil {
		if d.Normals, err = modeler.ReadNormal(doc, acr, nil); err != nil {
			return nil, fmt.Errorf("%w: normals: %v", ErrInput, err)
		}
	}
	if acr := accessor(doc, p, AttrTexCoord0); acr != nil {
		if d.TexCoords, err = modeler.ReadTextureCoord(doc, acr, nil); err != nil {
			return nil, fmt.Errorf("%w: texture coordinates: %v", ErrInput, err)
		}
	}
	if p.Indices != nil && int(*p.Indices) < len(doc.Accessors) {
		if d.Indices, err = modeler.ReadIndices(doc, doc.Accessors[*p.Indices], nil); err != nil {
			return nil, fmt.Errorf("%w: indices: %v", ErrInput, err)
		}
	}
	return d, nil
}

func Material(doc *gltf.Document, p *gltf.Primitive) *gltf.Material {
	if p.Material != nil && int(*p.Material) < len(doc.Materials) {
		return doc.Materials[*p.Material]
	}
	return nil
}

// BaseColorTexture returns the base color texture of the material and its sampler.
// Any of them may be nil.
func BaseColorTexture(doc *gltf.Document, m *gltf.Material) (*gltf.Texture, *gltf.Image, *gltf.Sampler) {
	if m == nil || m.PBRMetallicRoughness == nil || m.PBRMetallicRoughness.BaseColorTexture == nil {
		return nil, nil, nil
	}
	i := m.PBRMetallicRoughness.BaseColorTexture.Index
	if int(i) >= len(doc.Textures) {
		return nil, nil, nil
	}
	tex := doc.Textures[i]
	var img *gltf.Image
	var sampler *gltf.Sampler
	if tex.Source != nil && int(*tex.Source) < len(doc.Images) {
		img = doc.Images[*tex.Source]
	}
	if tex.Sampler != nil && int(*tex.Sampler) < len(doc.Samplers) {
		sampler = doc.Samplers[*tex.Sampler]
	}
	return tex, img, sampler
}

func isDataURI(uri string) bool {
	return strings.HasPrefix(uri, "data:")
}

// ImageName returns the name of the image, or the file name of its URI.
// Embedded images without a name return "".
func ImageName(img *gltf.Image) string {
	if img == nil {
		return ""
	}
	if img.Name != "" {
		return img.Name
	}
	if img.URI == "" || isDataURI(img.URI) {
		return ""
	}
	uri := img.URI
	if u, err := url.PathUnescape(uri); err == nil {
		uri = u
	}
	return path.Base(strings.Replace(uri, "\\", "/", -1))
}

// ImageData returns the encoded image bytes from a buffer view, a data URI or a file relative to srcDir.
func ImageData(doc *gltf.Document, img *gltf.Image, srcDir string) ([]byte, error) {
	if img.BufferView != nil {
		if int(*img.BufferView) >= len(doc.BufferViews) {
			return nil, fmt.Errorf("%w: invalid buffer view %d", ErrInput, *img.BufferView)
		}
		bv := doc.BufferViews[*img.BufferView]
		if int(bv.Buffer) >= len(doc.Buffers) {
			return nil, fmt.Errorf("%w: invalid buffer %d", ErrInput, bv.Buffer)
		}
		data := doc.Buffers[bv.Buffer].Data
		if int(bv.ByteOffset+bv.ByteLength) > len(data) {
			return nil, fmt.Errorf("%w: buffer view %d is out of range", ErrInput, *img.BufferView)
		}
		return data[bv.ByteOffset : bv.ByteOffset+bv.ByteLength], nil
	}
	if isDataURI(img.URI) {
		i := strings.Index(img.URI, ";base64,")
		if i < 0 {
			return nil, fmt.Errorf("%w: unsupported data uri", ErrInput)
		}
		return base64.StdEncoding.DecodeString(img.URI[i+len(";base64,"):])
	}
	if img.URI == "" {
		return nil, fmt.Errorf("%w: image has no data", ErrInput)
	}
	p := img.URI
	if u, err := url.PathUnescape(p); err == nil {
		p = u
	}
	return os.ReadFile(filepath.Join(srcDir, filepath.FromSlash(p)))
}
