// Package wire implements the byte-level primitives the Jazz Jackrabbit 2
// wire protocol is built from: little-endian integers, length-prefixed and
// NUL-terminated code page 1250 strings, padded ASCII strings, and MSB-first
// bit-packed flag structures.
package wire

import (
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// EncodeCP1250 converts a UTF-8 string to its code page 1250 byte form.
// Runes with no CP1250 representation are replaced with the encoding's
// substitute byte instead of ending the conversion.
func EncodeCP1250(s string) []byte {
	b, _, err := transform.Bytes(encoding.ReplaceUnsupported(charmap.Windows1250.NewEncoder()), []byte(s))
	if err != nil {
		// Fall back to the partially transformed bytes rather than losing
		// the frame.
		return b
	}
	return b
}

// DecodeCP1250 converts code page 1250 bytes to a UTF-8 string.
func DecodeCP1250(b []byte) string {
	out, _, err := transform.Bytes(charmap.Windows1250.NewDecoder(), b)
	if err != nil {
		return string(out)
	}
	return string(out)
}
