package v3d

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"golang.org/x/text/encoding/charmap"
)

type baseParser struct {
	r   io.Reader
	err error
}

func (p *baseParser) read(v interface{}) {
	if p.err != nil {
		return
	}
	p.err = binary.Read(p.r, binary.LittleEndian, v)
}

func (p *baseParser) readUint8() uint8 {
	var v uint8
	p.read(&v)
	return v
}

func (p *baseParser) readUint16() uint16 {
	var v uint16
	p.read(&v)
	return v
}

func (p *baseParser) readUint32() uint32 {
	var v uint32
	p.read(&v)
	return v
}

func (p *baseParser) readInt32() int32 {
	var v int32
	p.read(&v)
	return v
}

func (p *baseParser) readFloat() float32 {
	var v float32
	p.read(&v)
	return v
}

func (p *baseParser) readBytes(n int) []byte {
	b := make([]byte, n)
	if p.err == nil {
		_, p.err = io.ReadFull(p.r, b)
	}
	return b
}

func decodeString(b []byte) string {
	s, _ := charmap.Windows1252.NewDecoder().Bytes(b)
	return string(s)
}

func (p *baseParser) readCharArray(size int) string {
	b := p.readBytes(size)
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return decodeString(b)
}

func (p *baseParser) readCString() string {
	var b []byte
	for p.err == nil {
		c := p.readUint8()
		if c == 0 {
			break
		}
		b = append(b, c)
	}
	return decodeString(b)
}

// LodModelInfo is a parsed LOD model. Data holds the raw data section.
type LodModelInfo struct {
	Flags          uint32
	VertexCount    uint32
	Data           []byte
	TextureIndices []int32
	Batches        []*BatchInfo
	PropPointCount uint32
	Textures       []string
	TextureIDs     []uint8
}

type MaterialInfo struct {
	Material
	Flags uint32
}

type SubmeshInfo struct {
	Name      string
	Unknown0  string
	Version   uint32
	LodCount  uint32
	Sphere    BoundingSphere
	Box       BoundingBox
	Lods      []*LodModelInfo
	Materials []*MaterialInfo
}

type FileInfo struct {
	Header    Header
	Submeshes []*SubmeshInfo
}

// Parser reads files produced by Writer.
type Parser struct {
	baseParser
}

func (p *Parser) Parse() (*FileInfo, error) {
	f := &FileInfo{}
	p.read(&f.Header)
	if p.err != nil {
		return nil, p.err
	}
	if f.Header.Signature != Signature {
		return nil, fmt.Errorf("invalid signature: %#x", f.Header.Signature)
	}
	if f.Header.Version != Version {
		return nil, fmt.Errorf("unsupported version: %#x", f.Header.Version)
	}

	for {
		tag := p.readUint32()
		p.readUint32() // section size
		if p.err != nil {
			return nil, p.err
		}
		switch tag {
		case SectionEnd:
			return f, nil
		case SectionSubmesh:
			s := p.parseSubmesh()
			if p.err != nil {
				return nil, p.err
			}
			f.Submeshes = append(f.Submeshes, s)
		default:
			return nil, fmt.Errorf("unsupported section: %#x", tag)
		}
	}
}

func (p *Parser) parseSubmesh() *SubmeshInfo {
	s := &SubmeshInfo{}
	s.Name = p.readCharArray(SubmeshNameSize)
	s.Unknown0 = p.readCharArray(SubmeshNameSize)
	s.Version = p.readUint32()
	s.LodCount = p.readUint32()
	for i := 0; i < int(s.LodCount); i++ {
		p.readFloat() // LOD distance
	}
	p.read(&s.Sphere)
	p.read(&s.Box)
	for i := 0; i < int(s.LodCount) && p.err == nil; i++ {
		s.Lods = append(s.Lods, p.parseLodModel())
	}

	materialCount := p.readUint32()
	for i := 0; i < int(materialCount) && p.err == nil; i++ {
		m := &MaterialInfo{}
		m.Name = p.readCharArray(MaterialNameSize)
		m.EmissiveFactor = p.readFloat()
		p.readBytes(3*4 + MaterialNameSize)
		m.Flags = p.readUint32()
		s.Materials = append(s.Materials, m)
	}

	unknownCount := p.readUint32()
	for i := 0; i < int(unknownCount) && p.err == nil; i++ {
		p.readCharArray(SubmeshNameSize)
		p.readFloat()
	}
	return s
}

func (p *Parser) parseLodModel() *LodModelInfo {
	l := &LodModelInfo{}
	l.Flags = p.readUint32()
	l.VertexCount = p.readUint32()
	batchCount := int(p.readUint16())
	dataSize := p.readUint32()
	if p.err != nil {
		return l
	}
	l.Data = p.readBytes(int(dataSize))
	for i := 0; i < batchCount; i++ {
		off := i*BatchHeaderSize + batchHeaderTextureOffset
		if off+4 > len(l.Data) {
			p.err = fmt.Errorf("batch header %d is out of data section", i)
			return l
		}
		l.TextureIndices = append(l.TextureIndices, int32(binary.LittleEndian.Uint32(l.Data[off:])))
	}
	p.readInt32()
	for i := 0; i < batchCount && p.err == nil; i++ {
		b := &BatchInfo{}
		p.read(b)
		l.Batches = append(l.Batches, b)
	}
	l.PropPointCount = p.readUint32()
	if l.PropPointCount != 0 {
		p.err = fmt.Errorf("prop points are not supported")
		return l
	}
	textureCount := p.readUint32()
	for i := 0; i < int(textureCount) && p.err == nil; i++ {
		l.TextureIDs = append(l.TextureIDs, p.readUint8())
		l.Textures = append(l.Textures, p.readCString())
	}
	return l
}

// Parse reads a .v3m file.
func Parse(r io.Reader) (*FileInfo, error) {
	p := &Parser{baseParser{r: r}}
	return p.Parse()
}
