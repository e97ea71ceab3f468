package wire

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// Writer encodes the little-endian, cp1250-flavored primitives of spec
// §4.1 into a growable buffer.
type Writer struct {
	buf bytes.Buffer
}

// NewWriter returns an empty Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Bytes returns the bytes written so far.
func (w *Writer) Bytes() []byte {
	return w.buf.Bytes()
}

// Len reports the number of bytes written so far.
func (w *Writer) Len() int {
	return w.buf.Len()
}

// U8 writes one unsigned byte.
func (w *Writer) U8(v uint8) {
	w.buf.WriteByte(v)
}

// I8 writes one signed byte.
func (w *Writer) I8(v int8) {
	w.buf.WriteByte(byte(v))
}

// U16 writes a little-endian uint16.
func (w *Writer) U16(v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	w.buf.Write(b[:])
}

// I16 writes a little-endian int16.
func (w *Writer) I16(v int16) {
	w.U16(uint16(v))
}

// U32 writes a little-endian uint32.
func (w *Writer) U32(v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	w.buf.Write(b[:])
}

// I32 writes a little-endian int32.
func (w *Writer) I32(v int32) {
	w.U32(uint32(v))
}

// Array writes raw bytes verbatim (the u8[N] field kind). It is the
// caller's responsibility to pad/truncate to the declared length.
func (w *Writer) Array(b []byte) {
	w.buf.Write(b)
}

// PString writes a one-byte length prefix followed by the cp1250 encoding
// of s. Returns an error if the encoded form exceeds 255 bytes.
func (w *Writer) PString(s string) error {
	enc := EncodeCP1250(s)
	if len(enc) > 255 {
		return fmt.Errorf("pstring %q encodes to %d bytes, exceeds 255", s, len(enc))
	}
	w.U8(uint8(len(enc)))
	w.buf.Write(enc)
	return nil
}

// CString writes the cp1250 encoding of s followed by a NUL terminator.
func (w *Writer) CString(s string) {
	w.buf.Write(EncodeCP1250(s))
	w.buf.WriteByte(0)
}

// GreedyString writes the cp1250 encoding of s with no length prefix or
// terminator; it must be the last field in its schema.
func (w *Writer) GreedyString(s string) {
	w.buf.Write(EncodeCP1250(s))
}

// PaddedString writes s truncated or right-padded with spaces to exactly n
// ASCII bytes.
func (w *Writer) PaddedString(s string, n int) {
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	copy(b, s)
	w.buf.Write(b[:n])
}
