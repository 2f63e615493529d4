package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/binzume/v3dconv/converter"
	"github.com/binzume/v3dconv/gltfutil"
	"github.com/binzume/v3dconv/v3d"
	"go.uber.org/zap"
)

// writeVerified writes data to output only if it parses back as a .v3m file.
func writeVerified(output string, data []byte) (*v3d.FileInfo, error) {
	info, err := v3d.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("verify %s: %w", output, err)
	}
	return info, os.WriteFile(output, data, 0644)
}

func printSummary(w io.Writer, info *v3d.FileInfo) {
	for _, s := range info.Submeshes {
		if len(s.Lods) == 0 {
			fmt.Fprintf(w, "Submesh %q: no LOD models\n", s.Name)
			continue
		}
		lod := s.Lods[0]
		fmt.Fprintf(w, "Submesh %q: %d vertices, %d batches, textures %v\n", s.Name, lod.VertexCount, len(lod.Batches), lod.Textures)
	}
}

func convert(log *zap.Logger, conf *converter.Config, input, output string, stdout io.Writer) error {
	fmt.Fprintf(stdout, "Loading %s\n", input)
	doc, err := gltfutil.Load(input)
	if err != nil {
		return err
	}

	opt := conf.ConverterOption()
	opt.OnDiagnostic = func(d converter.Diagnostic) {
		log.Warn(d.Message, zap.Stringer("kind", d.Kind), zap.String("node", d.Node))
	}
	conv := converter.NewGLTFToV3DConverter(opt)

	var buf bytes.Buffer
	if err := conv.Convert(doc, &buf); err != nil {
		return err
	}
	info, err := writeVerified(output, buf.Bytes())
	if err != nil {
		return err
	}
	printSummary(stdout, info)
	fmt.Fprintf(stdout, "Wrote %s (%d bytes)\n", output, buf.Len())

	if conf.ExportTextures != "" {
		written, err := conv.ExportTextures(doc, &converter.TextureExportOption{
			SrcDir:     filepath.Dir(input),
			OutDir:     conf.ExportTextures,
			PowerOfTwo: conf.TexturePow2,
		})
		if err != nil {
			return err
		}
		for _, path := range written {
			fmt.Fprintf(stdout, "Wrote %s\n", path)
		}
	}
	return nil
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet(filepath.Base(args[0]), flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: %s [options] input.gltf output.v3m\n", fs.Name())
		fs.PrintDefaults()
	}
	confFile := fs.String("config", "", "config file (yaml)")
	logLevel := fs.String("loglevel", "", "debug, info, warn or error")
	logFile := fs.String("logfile", "", "log file")
	textureDir := fs.String("textures", "", "export textures to this directory")
	defaultTexture := fs.String("default-texture", "", "texture for materials without base color texture")
	if err := fs.Parse(args[1:]); err != nil {
		return 1
	}
	if fs.NArg() != 2 {
		fs.Usage()
		return 1
	}

	conf, err := converter.LoadConfig(*confFile)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	if *logLevel != "" {
		conf.LogLevel = *logLevel
	}
	if *logFile != "" {
		conf.LogFile = *logFile
	}
	if *textureDir != "" {
		conf.ExportTextures = *textureDir
	}
	if *defaultTexture != "" {
		conf.DefaultTexture = *defaultTexture
	}

	log := newLogger(conf.LogLevel, conf.LogFile, stderr)
	defer log.Sync()

	if err := convert(log, conf, fs.Arg(0), fs.Arg(1), stdout); err != nil {
		log.Error("conversion failed", zap.Error(err))
		return 1
	}
	return 0
}

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}
