package wire

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestU16RoundTrip(t *testing.T) {
	w := NewWriter()
	w.U16(0xBEEF)
	r := NewReader(w.Bytes())
	v, err := r.U16()
	require.NoError(t, err)
	require.Equal(t, uint16(0xBEEF), v)
	require.Equal(t, 0, r.Remaining())
}

func TestPStringRoundTrip(t *testing.T) {
	w := NewWriter()
	require.NoError(t, w.PString("24  "))
	r := NewReader(w.Bytes())
	s, err := r.PString()
	require.NoError(t, err)
	require.Equal(t, "24  ", s)
}

func TestCStringRoundTrip(t *testing.T) {
	w := NewWriter()
	w.CString("hello")
	w.U8(0xAA) // trailing field after the cstring
	r := NewReader(w.Bytes())
	s, err := r.CString()
	require.NoError(t, err)
	require.Equal(t, "hello", s)
	tail, err := r.U8()
	require.NoError(t, err)
	require.Equal(t, uint8(0xAA), tail)
}

func TestPaddedString(t *testing.T) {
	w := NewWriter()
	w.PaddedString("abc", 8)
	r := NewReader(w.Bytes())
	s, err := r.PaddedString(8)
	require.NoError(t, err)
	require.Equal(t, "abc", s)
}

func TestGreedyBytes(t *testing.T) {
	r := NewReader([]byte{1, 2, 3, 4})
	first, err := r.U8()
	require.NoError(t, err)
	require.Equal(t, uint8(1), first)
	require.Equal(t, []byte{2, 3, 4}, r.GreedyBytes())
	require.Equal(t, 0, r.Remaining())
}

func TestShortReadErrors(t *testing.T) {
	r := NewReader([]byte{1})
	_, err := r.U32()
	require.Error(t, err)
}

func TestBitstructRoundTrip(t *testing.T) {
	w := NewBitWriter()
	w.PadZero(3)
	w.PutBit(true)
	w.PutBit(false)
	w.PutBit(true)
	w.PutBits(0x3, 3)
	b := w.Bytes()
	require.Len(t, b, 2) // 3 padding + 3 flags + 3 value bits = 9 bits

	r := NewBitReader(b)
	r.Skip(3)
	require.True(t, r.Bit())
	require.False(t, r.Bit())
	require.True(t, r.Bit())
	require.Equal(t, byte(0x3), r.Bits(3))
}

func TestCP1250RoundTrip(t *testing.T) {
	// 0xF3 in CP1250 is 'ó' (LATIN SMALL LETTER O WITH ACUTE).
	enc := EncodeCP1250("jó reggelt")
	require.Contains(t, enc, byte(0xF3))
	require.Equal(t, "jó reggelt", DecodeCP1250(enc))
}
