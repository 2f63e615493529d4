package converter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/binzume/v3dconv/gltfutil"
	"github.com/binzume/v3dconv/v3d"
	"github.com/qmuntal/gltf"
)

const (
	DefaultTextureName = "Rck_Default.tga"
	DefaultTextureExt  = ".tga"
)

// changeTextureExt replaces everything after the first dot.
func changeTextureExt(name, ext string) string {
	if i := strings.Index(name, "."); i >= 0 {
		name = name[:i]
	}
	return name + ext
}

func materialLabel(doc *gltf.Document, m *gltf.Material) string {
	if m == nil {
		return "default material"
	}
	for i, mm := range doc.Materials {
		if mm == m {
			if m.Name != "" {
				return fmt.Sprintf("material %d (%s)", i, m.Name)
			}
			return fmt.Sprintf("material %d", i)
		}
	}
	return fmt.Sprintf("material %q", m.Name)
}

// resolveTextureName returns the name the game uses for the base color texture of m.
func (c *gltfToV3d) resolveTextureName(doc *gltf.Document, m *gltf.Material) (string, *Diagnostic) {
	_, img, _ := gltfutil.BaseColorTexture(doc, m)
	if name := gltfutil.ImageName(img); name != "" {
		return changeTextureExt(name, c.TextureExt), nil
	}
	return c.DefaultTexture, &Diagnostic{
		Kind: DiagnosticMissingTexture,
		Message: fmt.Sprintf("cannot obtain texture name for %s (materials without base color texture are not supported), using %s",
			materialLabel(doc, m), c.DefaultTexture),
	}
}

// buildTextureTable returns the sorted distinct texture names used by the mesh.
func (c *gltfToV3d) buildTextureTable(doc *gltf.Document, mesh *gltf.Mesh) (v3d.TextureTable, []Diagnostic, error) {
	var diags []Diagnostic
	found := map[string]bool{}
	var table v3d.TextureTable
	for _, p := range mesh.Primitives {
		name, diag := c.resolveTextureName(doc, gltfutil.Material(doc, p))
		if diag != nil {
			diags = append(diags, *diag)
		}
		if !found[name] {
			found[name] = true
			table = append(table, name)
		}
	}
	sort.Strings(table)
	if len(table) > v3d.MaxTextures {
		return nil, diags, fmt.Errorf("%w: found %d textures in a submesh but only %d are allowed",
			v3d.ErrValidation, len(table), v3d.MaxTextures)
	}
	return table, diags, nil
}

// emissiveFactor approximates the emissive strength of a texture by the largest
// emissive channel of the materials using it.
func (c *gltfToV3d) emissiveFactor(doc *gltf.Document, mesh *gltf.Mesh, texture string) float32 {
	var factor float32
	for _, p := range mesh.Primitives {
		m := gltfutil.Material(doc, p)
		if m == nil {
			continue
		}
		if name, _ := c.resolveTextureName(doc, m); name != texture {
			continue
		}
		for _, v := range m.EmissiveFactor {
			if v > factor {
				factor = v
			}
		}
	}
	return factor
}
