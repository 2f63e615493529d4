package v3d

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"golang.org/x/text/encoding/charmap"
)

type baseWriter struct {
	w   io.Writer
	err error
}

func (p *baseWriter) write(v interface{}) {
	if p.err != nil {
		return
	}
	p.err = binary.Write(p.w, binary.LittleEndian, v)
}

func (p *baseWriter) writeUint8(v uint8) {
	p.write(v)
}

func (p *baseWriter) writeUint16(v uint16) {
	p.write(v)
}

func (p *baseWriter) writeUint32(v uint32) {
	p.write(v)
}

func (p *baseWriter) writeInt32(v int32) {
	p.write(v)
}

func (p *baseWriter) writeFloat(v float32) {
	p.write(v)
}

func (p *baseWriter) writeBytes(b []byte) {
	if p.err != nil {
		return
	}
	_, p.err = p.w.Write(b)
}

func (p *baseWriter) writeZeros(n int) {
	p.writeBytes(make([]byte, n))
}

// writeCharArray writes s as a NUL padded fixed size field.
func (p *baseWriter) writeCharArray(s string, size int) {
	if p.err != nil {
		return
	}
	b, err := encodeCharArray(s, size)
	if err != nil {
		p.err = err
		return
	}
	p.writeBytes(b)
	p.writeZeros(size - len(b))
}

func (p *baseWriter) writeCString(s string) {
	if p.err != nil {
		return
	}
	b, err := EncodeString(s)
	if err != nil {
		p.err = err
		return
	}
	p.writeBytes(b)
	p.writeUint8(0)
}

// EncodeString converts s to the single byte code page used by the game.
func EncodeString(s string) ([]byte, error) {
	b, err := charmap.Windows1252.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil, fmt.Errorf("%w: %q cannot be encoded: %v", ErrValidation, s, err)
	}
	if bytes.IndexByte(b, 0) >= 0 {
		return nil, fmt.Errorf("%w: %q contains NUL", ErrValidation, s)
	}
	return b, nil
}

func encodeCharArray(s string, size int) ([]byte, error) {
	b, err := EncodeString(s)
	if err != nil {
		return nil, err
	}
	if len(b) >= size {
		return nil, fmt.Errorf("%w: string value %q is too long (max %d)", ErrValidation, s, size-1)
	}
	return b, nil
}

// Validate checks the name fields of the submesh without writing anything.
func (s *Submesh) Validate() error {
	if s.Name != "" {
		if _, err := encodeCharArray(s.Name, SubmeshNameSize); err != nil {
			return err
		}
	}
	for _, m := range s.Materials {
		if _, err := encodeCharArray(m.Name, MaterialNameSize); err != nil {
			return err
		}
	}
	if s.Lod != nil {
		for _, name := range s.Lod.Textures {
			if _, err := EncodeString(name); err != nil {
				return err
			}
		}
	}
	return nil
}

// Writer emits a .v3m file section by section.
type Writer struct {
	baseWriter
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{baseWriter{w: w}}
}

func (w *Writer) WriteHeader(h *Header) error {
	w.write(h)
	return w.err
}

func (w *Writer) WriteSubmesh(s *Submesh) error {
	name := s.Name
	if name == "" {
		name = DefaultSubmeshName
	}

	w.writeUint32(SectionSubmesh)
	w.writeUint32(0) // section size (unused by the game)
	w.writeCharArray(name, SubmeshNameSize)
	w.writeCharArray("None", SubmeshNameSize)
	w.writeUint32(SubmeshVersion)
	w.writeUint32(1)  // num LODs
	w.writeFloat(0.0) // LOD distances

	w.write(&s.Sphere)
	w.write(&s.Box)

	w.writeLodModel(s.Lod)

	w.writeUint32(uint32(len(s.Materials)))
	for _, m := range s.Materials {
		w.writeMaterial(m)
	}

	w.writeUint32(1)
	w.writeCharArray(name, SubmeshNameSize)
	w.writeFloat(0)
	return w.err
}

func (w *Writer) WriteEnd() error {
	w.writeUint32(SectionEnd)
	w.writeUint32(0) // section size (unused by the game)
	return w.err
}

func (w *Writer) writeLodModel(lod *LodModel) {
	if w.err != nil {
		return
	}
	if len(lod.Textures) > MaxTextures {
		w.err = fmt.Errorf("%w: found %d textures in a submesh but only %d are allowed", ErrValidation, len(lod.Textures), MaxTextures)
		return
	}
	data, err := EncodeMeshData(lod.Batches)
	if err != nil {
		w.err = err
		return
	}

	w.writeUint32(lod.Flags)
	w.writeUint32(uint32(lod.VertexCount()))
	w.writeUint16(uint16(len(lod.Batches)))
	w.writeUint32(uint32(len(data)))
	w.writeBytes(data)
	w.writeInt32(-1)
	for _, b := range lod.Batches {
		w.write(b.Info())
	}
	w.writeUint32(0) // prop points

	w.writeUint32(uint32(len(lod.Textures)))
	for i, name := range lod.Textures {
		w.writeUint8(uint8(i))
		w.writeCString(name)
	}
}

func (w *Writer) writeMaterial(m *Material) {
	w.writeCharArray(m.Name, MaterialNameSize)
	w.writeFloat(m.EmissiveFactor)
	w.writeFloat(0) // unknown
	w.writeFloat(0) // unknown
	w.writeFloat(0) // ref_cof
	w.writeZeros(MaterialNameSize)
	w.writeUint32(MaterialFlags)
}

// Write writes the whole document.
func Write(w io.Writer, doc *Document) error {
	materials := 0
	for _, s := range doc.Submeshes {
		materials += len(s.Materials)
	}
	wr := NewWriter(w)
	if err := wr.WriteHeader(NewHeader(len(doc.Submeshes), materials)); err != nil {
		return err
	}
	for _, s := range doc.Submeshes {
		if err := wr.WriteSubmesh(s); err != nil {
			return err
		}
	}
	return wr.WriteEnd()
}
