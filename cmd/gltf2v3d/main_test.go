package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/binzume/v3dconv/gltfutil"
	"github.com/binzume/v3dconv/v3d"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

func writeTestScene(t *testing.T, path string) {
	t.Helper()
	doc := gltf.NewDocument()
	doc.Images = []*gltf.Image{{URI: "wall.png"}}
	doc.Textures = []*gltf.Texture{{Source: gltf.Index(0)}}
	doc.Materials = []*gltf.Material{{
		Name:                 "wall",
		PBRMetallicRoughness: &gltf.PBRMetallicRoughness{BaseColorTexture: &gltf.TextureInfo{Index: 0}},
	}}
	doc.Meshes = []*gltf.Mesh{{Primitives: []*gltf.Primitive{
		{
			Attributes: map[string]uint32{
				gltfutil.AttrPosition: modeler.WritePosition(doc, [][3]float32{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}}),
				gltfutil.AttrNormal:   modeler.WriteNormal(doc, [][3]float32{{0, 0, 1}, {0, 0, 1}, {0, 0, 1}}),
			},
			Indices:  gltf.Index(modeler.WriteIndices(doc, []uint32{0, 1, 2})),
			Material: gltf.Index(0),
		},
		{
			Attributes: map[string]uint32{
				gltfutil.AttrPosition: modeler.WritePosition(doc, [][3]float32{{0, 0, 0}, {0, 1, 0}, {0, 1, 1}}),
				gltfutil.AttrNormal:   modeler.WriteNormal(doc, [][3]float32{{1, 0, 0}, {1, 0, 0}, {1, 0, 0}}),
			},
			Indices: gltf.Index(modeler.WriteIndices(doc, []uint32{0, 1, 2})),
		},
	}}}
	doc.Nodes = []*gltf.Node{{Name: "wall", Mesh: gltf.Index(0)}}
	if err := gltf.SaveBinary(doc, path); err != nil {
		t.Fatal(err)
	}
}

func TestRunUsage(t *testing.T) {
	for _, args := range [][]string{{"gltf2v3d"}, {"gltf2v3d", "a.gltf"}, {"gltf2v3d", "a", "b", "c"}} {
		var stdout, stderr bytes.Buffer
		if code := run(args, &stdout, &stderr); code != 1 {
			t.Error("exit code: ", args, code)
		}
		if !strings.Contains(stderr.String(), "Usage") {
			t.Error("usage is not printed: ", stderr.String())
		}
	}
}

func TestRunConvert(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "scene.glb")
	output := filepath.Join(dir, "scene.v3m")
	logFile := filepath.Join(dir, "gltf2v3d.log")
	writeTestScene(t, input)

	var stdout, stderr bytes.Buffer
	if code := run([]string{"gltf2v3d", "-logfile", logFile, input, output}, &stdout, &stderr); code != 0 {
		t.Fatal("exit code: ", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), "Wrote "+output) {
		t.Error("stdout: ", stdout.String())
	}
	// the second primitive has no material
	if !strings.Contains(stderr.String(), "WARN") || !strings.Contains(stderr.String(), "Rck_Default.tga") {
		t.Error("stderr: ", stderr.String())
	}

	f, err := os.Open(output)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	info, err := v3d.Parse(f)
	if err != nil {
		t.Fatal(err)
	}
	if len(info.Submeshes) != 1 || len(info.Submeshes[0].Lods[0].Textures) != 2 {
		t.Error("output: ", info.Submeshes)
	}

	if data, err := os.ReadFile(logFile); err != nil || !strings.Contains(string(data), "WARN") {
		t.Error("log file: ", string(data), err)
	}
}

func TestRunErrors(t *testing.T) {
	dir := t.TempDir()
	var stdout, stderr bytes.Buffer
	if code := run([]string{"gltf2v3d", filepath.Join(dir, "missing.gltf"), filepath.Join(dir, "out.v3m")}, &stdout, &stderr); code != 1 {
		t.Error("exit code: ", code)
	}
	if _, err := os.Stat(filepath.Join(dir, "out.v3m")); !os.IsNotExist(err) {
		t.Error("output should not be written")
	}
	if code := run([]string{"gltf2v3d", "-config", filepath.Join(dir, "missing.yaml"), "a", "b"}, &stdout, &stderr); code != 1 {
		t.Error("exit code: ", code)
	}
}

func TestWriteVerified(t *testing.T) {
	output := filepath.Join(t.TempDir(), "broken.v3m")
	if _, err := writeVerified(output, []byte("not a v3m file")); err == nil {
		t.Error("expected error")
	}
	if _, err := os.Stat(output); !os.IsNotExist(err) {
		t.Error("unverified output should not be written")
	}

	var buf bytes.Buffer
	if err := v3d.Write(&buf, &v3d.Document{}); err != nil {
		t.Fatal(err)
	}
	info, err := writeVerified(output, buf.Bytes())
	if err != nil || info.Header.Signature != v3d.Signature {
		t.Error("writeVerified: ", info, err)
	}
	if data, err := os.ReadFile(output); err != nil || !bytes.Equal(data, buf.Bytes()) {
		t.Error("written data: ", err)
	}
}

func TestPrintSummary(t *testing.T) {
	info := &v3d.FileInfo{Submeshes: []*v3d.SubmeshInfo{
		{Name: "empty"},
		{Name: "wall", Lods: []*v3d.LodModelInfo{{VertexCount: 3, Textures: []string{"wall.tga"}}}},
	}}
	var buf bytes.Buffer
	printSummary(&buf, info)
	if !strings.Contains(buf.String(), `"empty": no LOD models`) || !strings.Contains(buf.String(), `"wall": 3 vertices`) {
		t.Error("summary: ", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	if parseLevel("debug").String() != "debug" || parseLevel("bogus").String() != "info" {
		t.Error("parseLevel")
	}
}
