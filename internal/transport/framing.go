package transport

import "encoding/binary"

// Reassembler implements TCP length-prefix framing: one length byte, or an
// escape (0x00 followed by a little-endian u16 giving body length) when the
// body does not fit in a byte. It is single-threaded and stateful —
// exclusive to one TCP reader — and never emits a frame shorter or longer
// than its declared length.
type Reassembler struct {
	buf     []byte
	deficit int
	headerLen int
	bodyLen   int
}

// NewReassembler returns an empty Reassembler.
func NewReassembler() *Reassembler {
	return &Reassembler{}
}

// Feed appends chunk to the reassembler and returns every complete frame
// body (tag + schema bytes, header stripped) it can extract, in order.
// Arbitrary chunk splits of the same byte stream always yield the same
// sequence of frame bodies.
func (r *Reassembler) Feed(chunk []byte) [][]byte {
	var frames [][]byte
	r.buf = append(r.buf, chunk...)
	for {
		if r.deficit == 0 {
			if !r.tryParseHeader() {
				break
			}
		}
		if len(r.buf) < r.headerLen+r.bodyLen {
			break
		}
		body := make([]byte, r.bodyLen)
		copy(body, r.buf[r.headerLen:r.headerLen+r.bodyLen])
		frames = append(frames, body)
		r.buf = r.buf[r.headerLen+r.bodyLen:]
		r.deficit = 0
		r.headerLen = 0
		r.bodyLen = 0
	}
	return frames
}

// tryParseHeader reads the length header out of r.buf without consuming
// it; returns false if not enough bytes are buffered yet to know the
// frame's total size.
func (r *Reassembler) tryParseHeader() bool {
	if len(r.buf) < 1 {
		return false
	}
	if r.buf[0] != 0 {
		r.headerLen = 1
		r.bodyLen = int(r.buf[0]) - 1
		r.deficit = 1
		return true
	}
	if len(r.buf) < 3 {
		return false
	}
	n := binary.LittleEndian.Uint16(r.buf[1:3])
	r.headerLen = 3
	r.bodyLen = int(n)
	r.deficit = 1
	return true
}

// FrameTCP prefixes body (tag + schema bytes) with a length header: a
// single byte if the frame fits in 255, else the 0x00 escape followed by
// a little-endian u16 body length.
func FrameTCP(body []byte) []byte {
	total := len(body) + 1
	if total <= 255 {
		out := make([]byte, 0, total)
		out = append(out, byte(total))
		out = append(out, body...)
		return out
	}
	out := make([]byte, 0, len(body)+3)
	out = append(out, 0x00)
	var n [2]byte
	binary.LittleEndian.PutUint16(n[:], uint16(len(body)))
	out = append(out, n[0], n[1])
	out = append(out, body...)
	return out
}
