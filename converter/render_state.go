package converter

import (
	"github.com/binzume/v3dconv/gltfutil"
	"github.com/binzume/v3dconv/v3d"
	"github.com/qmuntal/gltf"
)

func textureSource(s *gltf.Sampler) (v3d.TextureSource, []Diagnostic) {
	var diags []Diagnostic
	if s == nil {
		s = &gltf.Sampler{}
	}
	if s.WrapT != s.WrapS {
		diags = append(diags, Diagnostic{Kind: DiagnosticWrapModeMismatch,
			Message: "ignoring wrapT - wrapping mode must be the same for T and S"})
	}
	switch s.WrapS {
	case gltf.WrapClampToEdge:
		return v3d.TextureSourceClamp, diags
	case gltf.WrapMirroredRepeat:
		diags = append(diags, Diagnostic{Kind: DiagnosticUnsupportedWrapMode,
			Message: "MirroredRepeat wrapping mode is not supported, using Repeat"})
	}
	return v3d.TextureSourceWrap, diags
}

func renderState(doc *gltf.Document, m *gltf.Material) (v3d.RenderState, []Diagnostic) {
	var diags []Diagnostic
	state := v3d.RenderState{
		TextureSource: v3d.TextureSourceWrap,
		ColorOp:       v3d.ColorOpMul,
		AlphaOp:       v3d.AlphaOpMul,
		AlphaBlend:    v3d.AlphaBlendNone,
		ZBuffer:       v3d.ZBufferFull,
		Fog:           v3d.FogType0,
	}
	if tex, _, sampler := gltfutil.BaseColorTexture(doc, m); tex != nil {
		state.TextureSource, diags = textureSource(sampler)
	}

	alphaMode := gltf.AlphaOpaque
	if m != nil {
		alphaMode = m.AlphaMode
	}
	switch alphaMode {
	case gltf.AlphaOpaque:
	case gltf.AlphaBlend:
		state.AlphaBlend = v3d.AlphaBlendAlphaBlendAlpha
		state.ZBuffer = v3d.ZBufferFullAlphaTest
	default:
		state.ZBuffer = v3d.ZBufferFullAlphaTest
	}
	return state, diags
}
