package converter

import (
	"fmt"
	"io"

	"github.com/binzume/v3dconv/gltfutil"
	"github.com/binzume/v3dconv/v3d"
	"github.com/qmuntal/gltf"
)

type GLTFToV3DOption struct {
	DefaultTexture string // Default: Rck_Default.tga
	TextureExt     string // Default: .tga

	// called for each new diagnostic
	OnDiagnostic func(Diagnostic)
}

type gltfToV3d struct {
	*GLTFToV3DOption
	diagnostics
}

func NewGLTFToV3DConverter(options *GLTFToV3DOption) *gltfToV3d {
	if options == nil {
		options = &GLTFToV3DOption{}
	}
	if options.DefaultTexture == "" {
		options.DefaultTexture = DefaultTextureName
	}
	if options.TextureExt == "" {
		options.TextureExt = DefaultTextureExt
	}
	return &gltfToV3d{
		GLTFToV3DOption: options,
		diagnostics:     diagnostics{notify: options.OnDiagnostic},
	}
}

func nodeLabel(n *gltf.Node) string {
	if n.Name == "" {
		return v3d.DefaultSubmeshName
	}
	return n.Name
}

// ConvertNode builds the submesh section of a node with a mesh.
func (c *gltfToV3d) ConvertNode(src *gltf.Document, node *gltf.Node) (*v3d.Submesh, error) {
	label := nodeLabel(node)
	if node.Mesh == nil || int(*node.Mesh) >= len(src.Meshes) {
		return nil, fmt.Errorf("%w: node %q has no mesh", v3d.ErrDataAssumption, label)
	}
	mesh := src.Meshes[*node.Mesh]

	textures, diags, err := c.buildTextureTable(src, mesh)
	c.report(label, diags...)
	if err != nil {
		return nil, fmt.Errorf("node %q: %w", label, err)
	}

	for i, p := range mesh.Primitives {
		if err := validatePrimitive(src, i, p); err != nil {
			return nil, fmt.Errorf("node %q: %w", label, err)
		}
	}
	prims := make([]*gltfutil.PrimitiveData, len(mesh.Primitives))
	for i, p := range mesh.Primitives {
		if prims[i], err = readPrimitive(src, i, p); err != nil {
			return nil, fmt.Errorf("node %q: %w", label, err)
		}
	}

	origin, linear := gltfutil.NodeMatrix(node).Split()

	lod := &v3d.LodModel{Flags: v3d.LodFlagStatic, Textures: textures}
	for i, p := range mesh.Primitives {
		b, diags := c.convertPrimitive(src, p, prims[i], linear, textures)
		c.report(label, diags...)
		lod.Batches = append(lod.Batches, b)
	}

	s := &v3d.Submesh{
		Name: node.Name,
		Sphere: v3d.BoundingSphere{
			Center: origin.Array(),
			Radius: computeBoundingRadius(prims, linear),
		},
		Box: computeBoundingBox(prims, linear),
		Lod: lod,
	}
	for _, name := range textures {
		s.Materials = append(s.Materials, &v3d.Material{Name: name, EmissiveFactor: c.emissiveFactor(src, mesh, name)})
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("node %q: %w", label, err)
	}
	return s, nil
}

// Convert writes src as a .v3m file. Nothing is written if a node fails to convert.
func (c *gltfToV3d) Convert(src *gltf.Document, w io.Writer) error {
	if gltfutil.HasHierarchy(src) {
		c.report("", Diagnostic{Kind: DiagnosticHierarchyIgnored, Message: "node hierarchy is ignored"})
	}

	doc := &v3d.Document{}
	for _, node := range gltfutil.MeshNodes(src) {
		s, err := c.ConvertNode(src, node)
		if err != nil {
			return err
		}
		doc.Submeshes = append(doc.Submeshes, s)
	}
	return v3d.Write(w, doc)
}
