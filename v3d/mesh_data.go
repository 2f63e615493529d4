package v3d

import (
	"bytes"
	"fmt"
)

const dataAlignment = 0x10

type meshDataWriter struct {
	baseWriter
	buf *bytes.Buffer
}

// pad aligns the data written so far to 16 bytes from the data section start.
func (w *meshDataWriter) pad() {
	if n := w.buf.Len() % dataAlignment; n != 0 {
		w.writeZeros(dataAlignment - n)
	}
}

func (w *meshDataWriter) writeBatchHeader(b *Batch) {
	// the game overwrites these bytes with data from the batch info
	w.writeZeros(batchHeaderTextureOffset)
	w.writeInt32(b.TextureIndex)
	w.writeZeros(BatchHeaderSize - batchHeaderTextureOffset - 4)
}

func (w *meshDataWriter) writeBatchData(b *Batch) {
	w.write(b.Positions)
	w.pad()
	w.write(b.Normals)
	w.pad()
	w.write(b.UVs)
	w.pad()
	w.write(b.Triangles)
	w.pad()
	// triangle planes, used for backface culling of static meshes
	w.write(b.Planes)
	w.pad()
	// same position vertex offsets (no vertex welding)
	w.writeZeros(len(b.Positions) * 2)
	w.pad()
	// bone links (no skinning)
	w.writeZeros(len(b.Positions) * 8)
	w.pad()
}

func checkBatch(i int, b *Batch) error {
	v := len(b.Positions)
	if len(b.Normals) != v || len(b.UVs) != v {
		return fmt.Errorf("%w: batch %d: attribute count mismatch (positions %d, normals %d, uvs %d)",
			ErrDataAssumption, i, v, len(b.Normals), len(b.UVs))
	}
	if len(b.Planes) != len(b.Triangles) {
		return fmt.Errorf("%w: batch %d: %d planes for %d triangles", ErrDataAssumption, i, len(b.Planes), len(b.Triangles))
	}
	if v > MaxBatchVertices {
		return fmt.Errorf("%w: batch %d has too many vertices: %d (limit %d)", ErrValidation, i, v, MaxBatchVertices)
	}
	if n := len(b.Triangles) * 3; n > MaxBatchIndices {
		return fmt.Errorf("%w: batch %d has too many indices: %d (limit %d)", ErrValidation, i, n, MaxBatchIndices)
	}
	return nil
}

// EncodeMeshData returns the LOD model data section: batch headers followed by
// the padded geometry blocks of every batch.
func EncodeMeshData(batches []*Batch) ([]byte, error) {
	for i, b := range batches {
		if err := checkBatch(i, b); err != nil {
			return nil, err
		}
	}

	buf := &bytes.Buffer{}
	w := &meshDataWriter{baseWriter: baseWriter{w: buf}, buf: buf}
	for _, b := range batches {
		w.writeBatchHeader(b)
	}
	w.pad()
	for _, b := range batches {
		w.writeBatchData(b)
	}
	w.pad()
	// no prop points
	return buf.Bytes(), w.err
}
