// Package bin implements the chunked binary codec for the ".vox" format: a
// bounds-checked byte cursor, the length-prefixed dictionary codec, and the
// chunk reader/writer that assemble a vox.Scene from (or into) a
// contiguous in-memory buffer.
package bin

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/anaminus/parse"
	voxerrors "github.com/jpaver/ogtvox/errors"
)

// Reader is a random-access, bounds-checked cursor over an in-memory
// buffer. Every field read is delegated to anaminus/parse's BinaryReader;
// Reader adds the offset tracking the format's error kinds report.
type Reader struct {
	src *bytes.Reader
	pr  *parse.BinaryReader
}

// NewReader returns a Reader positioned at the start of buf.
func NewReader(buf []byte) *Reader {
	src := bytes.NewReader(buf)
	return &Reader{src: src, pr: parse.NewBinaryReader(src)}
}

// Offset returns the number of bytes consumed so far.
func (r *Reader) Offset() int64 {
	return r.src.Size() - int64(r.src.Len())
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int64 {
	return int64(r.src.Len())
}

func (r *Reader) fail() error {
	if err := r.pr.Err(); err != nil {
		return err
	}
	return io.ErrUnexpectedEOF
}

// U32 reads a little-endian uint32.
func (r *Reader) U32() (uint32, error) {
	var v uint32
	if r.pr.Number(&v) {
		return 0, r.fail()
	}
	return v, nil
}

// I32 reads a little-endian int32.
func (r *Reader) I32() (int32, error) {
	var v int32
	if r.pr.Number(&v) {
		return 0, r.fail()
	}
	return v, nil
}

// U8 reads a single byte.
func (r *Reader) U8() (uint8, error) {
	var v uint8
	if r.pr.Number(&v) {
		return 0, r.fail()
	}
	return v, nil
}

// Bytes reads exactly n raw bytes.
func (r *Reader) Bytes(n int) ([]byte, error) {
	buf := make([]byte, n)
	if r.pr.Bytes(buf) {
		return nil, r.fail()
	}
	return buf, nil
}

// String reads a u32 length followed by that many raw bytes, the encoding
// every dictionary key and value uses on disk.
func (r *Reader) String(maxLen uint32) (string, error) {
	n, err := r.U32()
	if err != nil {
		return "", err
	}
	if n > maxLen {
		return "", voxerrors.ErrDictOverflow
	}
	b, err := r.Bytes(int(n))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

////////////////////////////////////////////////////////////////

// Writer is a growable in-memory byte sink. Patch lets the chunk writer
// back-fill the MAIN chunk's children_size once the total output length is
// known, mirroring the byte cursor's patch(offset, value) operation.
type Writer struct {
	buf *bytes.Buffer
	pw  *parse.BinaryWriter
}

// NewWriter returns an empty Writer.
func NewWriter() *Writer {
	buf := &bytes.Buffer{}
	return &Writer{buf: buf, pw: parse.NewBinaryWriter(buf)}
}

func (w *Writer) fail() error {
	if err := w.pw.Err(); err != nil {
		return err
	}
	return io.ErrShortWrite
}

// Offset returns the number of bytes written so far.
func (w *Writer) Offset() int64 {
	return int64(w.buf.Len())
}

// U32 writes a little-endian uint32.
func (w *Writer) U32(v uint32) error {
	if w.pw.Number(v) {
		return w.fail()
	}
	return nil
}

// I32 writes a little-endian int32.
func (w *Writer) I32(v int32) error {
	if w.pw.Number(v) {
		return w.fail()
	}
	return nil
}

// U8 writes a single byte.
func (w *Writer) U8(v uint8) error {
	if w.pw.Number(v) {
		return w.fail()
	}
	return nil
}

// Bytes writes b verbatim.
func (w *Writer) Bytes(b []byte) error {
	if w.pw.Bytes(b) {
		return w.fail()
	}
	return nil
}

// String writes a u32 length followed by the raw bytes of s.
func (w *Writer) String(s string) error {
	if err := w.U32(uint32(len(s))); err != nil {
		return err
	}
	return w.Bytes([]byte(s))
}

// Patch rewrites an already-written 32-bit little-endian field at offset.
func (w *Writer) Patch(offset int64, v uint32) {
	b := w.buf.Bytes()
	binary.LittleEndian.PutUint32(b[offset:offset+4], v)
}

// Output returns the accumulated bytes.
func (w *Writer) Output() []byte {
	return w.buf.Bytes()
}
