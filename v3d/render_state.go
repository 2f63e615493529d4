package v3d

type TextureSource uint32

const (
	TextureSourceNone TextureSource = iota
	TextureSourceWrap
	TextureSourceClamp
	TextureSourceClampNoFiltering
	// other values are used with multi-texturing
)

type ColorOp uint32

const (
	ColorOpSelectArg0IgnoreCurrentColor ColorOp = iota
	ColorOpSelectArg0
	ColorOpMul
	ColorOpAdd
	ColorOpMul2x
)

type AlphaOp uint32

const (
	AlphaOpSelArg2 AlphaOp = iota
	AlphaOpSelArg1
	AlphaOpSelArg1IgnoreCurrentColor
	AlphaOpMul
)

type AlphaBlend uint32

const (
	AlphaBlendNone AlphaBlend = iota
	AlphaBlendAlphaAdditive
	AlphaBlendSrcAlpha2
	AlphaBlendAlphaBlendAlpha
	AlphaBlendSrcAlpha4
	AlphaBlendDestColor
	AlphaBlendInvDestColor
	AlphaBlendSwappedSrcDestColor
)

type ZBufferType uint32

const (
	ZBufferNone ZBufferType = iota
	ZBufferRead
	ZBufferReadEqFunc
	ZBufferWrite
	ZBufferFull
	ZBufferFullAlphaTest
)

type FogType uint32

const (
	FogType0 FogType = iota
	FogType1
	FogType2
	FogForceOff
)

// RenderState is the per-batch render state bitmask.
// e.g. 0x518C41: tex_src=1 color_op=2 alpha_op=3 alpha_blend=3 zbuffer=5 fog=0
type RenderState struct {
	TextureSource TextureSource
	ColorOp       ColorOp
	AlphaOp       AlphaOp
	AlphaBlend    AlphaBlend
	ZBuffer       ZBufferType
	Fog           FogType
}

func (s RenderState) Pack() uint32 {
	return uint32(s.TextureSource) |
		uint32(s.ColorOp)<<5 |
		uint32(s.AlphaOp)<<10 |
		uint32(s.AlphaBlend)<<15 |
		uint32(s.ZBuffer)<<20 |
		uint32(s.Fog)<<25
}

func UnpackRenderState(v uint32) RenderState {
	const mask = 0x1f
	return RenderState{
		TextureSource: TextureSource(v & mask),
		ColorOp:       ColorOp(v >> 5 & mask),
		AlphaOp:       AlphaOp(v >> 10 & mask),
		AlphaBlend:    AlphaBlend(v >> 15 & mask),
		ZBuffer:       ZBufferType(v >> 20 & mask),
		Fog:           FogType(v >> 25 & mask),
	}
}
