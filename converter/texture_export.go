package converter

import (
	"bytes"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/binzume/v3dconv/gltfutil"
	btga "github.com/blezek/tga"
	"github.com/ftrvxmtrx/tga"
	"github.com/oov/psd"
	"github.com/qmuntal/gltf"
	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
)

type TextureExportOption struct {
	SrcDir     string // directory of the source document
	OutDir     string
	PowerOfTwo bool
}

var textureEncoders = map[string]func(io.Writer, image.Image) error{
	".tga": tga.Encode,
	".png": png.Encode,
}

func decodePSD(r io.Reader) (img image.Image, err error) {
	// psd.Decode panics on files with an empty layer and mask section
	defer func() {
		if e := recover(); e != nil {
			img, err = nil, fmt.Errorf("psd: %v", e)
		}
	}()
	p, _, err := psd.Decode(r, nil)
	if err != nil {
		return nil, err
	}
	return p.Picker, nil
}

// tga has no signature, so it is tried after the formats below.
var imageDecoders = []struct {
	magic  string
	decode func(io.Reader) (image.Image, error)
}{
	{"\x89PNG", png.Decode},
	{"\xff\xd8", jpeg.Decode},
	{"GIF8", gif.Decode},
	{"BM", bmp.Decode},
	{"8BPS", decodePSD},
}

func decodeImage(data []byte) (image.Image, error) {
	for _, d := range imageDecoders {
		if bytes.HasPrefix(data, []byte(d.magic)) {
			return d.decode(bytes.NewReader(data))
		}
	}
	img, err := tga.Decode(bytes.NewReader(data))
	if err != nil {
		// retry
		if timg, terr := btga.Decode(bytes.NewReader(data)); terr == nil {
			return timg, nil
		}
	}
	return img, err
}

func nextPow2(v int) int {
	n := 1
	for n < v {
		n <<= 1
	}
	return n
}

func scaleToPow2(img image.Image) image.Image {
	rect := img.Bounds()
	w, h := nextPow2(rect.Dx()), nextPow2(rect.Dy())
	if w == rect.Dx() && h == rect.Dy() {
		return img
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, rect, draw.Over, nil)
	return dst
}

func (c *gltfToV3d) exportTexture(src *gltf.Document, img *gltf.Image, name string, opt *TextureExportOption) (string, error) {
	encode := textureEncoders[strings.ToLower(filepath.Ext(name))]
	if encode == nil {
		return "", fmt.Errorf("unsupported texture format: %s", name)
	}
	data, err := gltfutil.ImageData(src, img, opt.SrcDir)
	if err != nil {
		return "", err
	}
	decoded, err := decodeImage(data)
	if err != nil {
		return "", err
	}
	if opt.PowerOfTwo {
		decoded = scaleToPow2(decoded)
	}

	var buf bytes.Buffer
	if err := encode(&buf, decoded); err != nil {
		return "", err
	}
	path := filepath.Join(opt.OutDir, name)
	return path, os.WriteFile(path, buf.Bytes(), 0644)
}

// ExportTextures converts the base color textures of the mesh nodes into files named
// like the texture table entries. Failures of a single texture are reported as diagnostics.
func (c *gltfToV3d) ExportTextures(src *gltf.Document, opt *TextureExportOption) ([]string, error) {
	if err := os.MkdirAll(opt.OutDir, 0755); err != nil {
		return nil, err
	}
	var written []string
	done := map[string]bool{}
	for _, node := range gltfutil.MeshNodes(src) {
		for _, p := range src.Meshes[*node.Mesh].Primitives {
			m := gltfutil.Material(src, p)
			name, diag := c.resolveTextureName(src, m)
			if diag != nil || done[name] {
				continue
			}
			done[name] = true
			_, img, _ := gltfutil.BaseColorTexture(src, m)
			path, err := c.exportTexture(src, img, name, opt)
			if err != nil {
				c.report(nodeLabel(node), Diagnostic{Kind: DiagnosticTextureExport,
					Message: fmt.Sprintf("%s: %v", name, err)})
				continue
			}
			written = append(written, path)
		}
	}
	return written, nil
}
