package transport

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestChecksumPingScenario(t *testing.T) {
	// A Ping packet: list#1, four unknown zero bytes, version "24  ".
	body := []byte{0x03, 0x01, 0x00, 0x00, 0x00, 0x00, '2', '4', ' ', ' '}
	prefix := Checksum(body)
	datagram := append([]byte{prefix[0], prefix[1]}, body...)

	decodedBody, ok := VerifyDatagram(datagram)
	require.True(t, ok)
	require.Equal(t, body, decodedBody)
}

func TestChecksumMismatchDropped(t *testing.T) {
	body := []byte{0x03, 0x01, 0x00, 0x00, 0x00, 0x00, '2', '4', ' ', ' '}
	prefix := Checksum(body)
	datagram := append([]byte{prefix[0], prefix[1]}, body...)
	datagram[0] ^= 0xFF // flip every bit of the first prefix byte

	_, ok := VerifyDatagram(datagram)
	require.False(t, ok)
}

func TestFrameDatagramRoundTrip(t *testing.T) {
	body := []byte{0x09, 0x05, 1, 2, 3, 4}
	datagram := FrameDatagram(body)
	decoded, ok := VerifyDatagram(datagram)
	require.True(t, ok)
	require.Equal(t, body, decoded)
}

func TestReassemblerShortFrame(t *testing.T) {
	body := []byte{0x19} // ServerStopped tag, empty schema
	frame := FrameTCP(body)

	r := NewReassembler()
	frames := r.Feed(frame)
	require.Len(t, frames, 1)
	require.Equal(t, body, frames[0])
}

func TestReassemblerEscapedLengthFrame(t *testing.T) {
	body := make([]byte, 272)
	body[0] = 0x13 // GameInit tag
	for i := 1; i < len(body); i++ {
		body[i] = byte(i)
	}
	frame := FrameTCP(body)
	require.Equal(t, byte(0x00), frame[0])
	require.Equal(t, 272+3, len(frame))

	r := NewReassembler()
	frames := r.Feed(frame)
	require.Len(t, frames, 1)
	require.Equal(t, body, frames[0])
}

func TestReassemblerArbitraryChunkSplits(t *testing.T) {
	bodies := [][]byte{
		{0x19},
		{0x51},
		append([]byte{0x1B}, []byte("hi there")...),
	}
	var stream []byte
	for _, b := range bodies {
		stream = append(stream, FrameTCP(b)...)
	}

	for split := 1; split < len(stream); split++ {
		r := NewReassembler()
		var got [][]byte
		got = append(got, r.Feed(stream[:split])...)
		got = append(got, r.Feed(stream[split:])...)
		require.Equal(t, bodies, got, "split at byte %d changed the decoded sequence", split)
	}
}
