package transport

// Checksum computes the 2-byte Fletcher-style UDP prefix for body: starting
// (lsb, msb) = (1, 1), iterate over the bytes 0x4F, 0x4F, then body,
// accumulating lsb = (lsb+byte) mod 251, msb = (msb+lsb) mod 251. The
// modulus is 251, not 255 — intentional, not a transcription error.
func Checksum(body []byte) [2]byte {
	lsb, msb := byte(1), byte(1)
	step := func(b byte) {
		lsb = byte((int(lsb) + int(b)) % 251)
		msb = byte((int(msb) + int(lsb)) % 251)
	}
	step(0x4F)
	step(0x4F)
	for _, b := range body {
		step(b)
	}
	return [2]byte{lsb, msb}
}

// VerifyDatagram splits datagram into its 2-byte prefix and body and
// reports whether the prefix matches the recomputed checksum of the body.
// A false return means the datagram must be dropped silently.
func VerifyDatagram(datagram []byte) (body []byte, ok bool) {
	if len(datagram) < 2 {
		return nil, false
	}
	body = datagram[2:]
	want := Checksum(body)
	return body, datagram[0] == want[0] && datagram[1] == want[1]
}

// FrameDatagram prepends the checksum prefix to body, producing a
// ready-to-send UDP datagram.
func FrameDatagram(body []byte) []byte {
	prefix := Checksum(body)
	out := make([]byte, 0, len(body)+2)
	out = append(out, prefix[0], prefix[1])
	out = append(out, body...)
	return out
}
