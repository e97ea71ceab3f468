// Package packet implements the Jazz Jackrabbit 2 packet schema registry:
// every concrete packet class in the catalog, the three abstract packets
// (Spectate, DownloadingFile, PlusAcknowledgement) and their sub-variants,
// and the codec core's serialize/deserialize caching.
package packet

import (
	"fmt"

	"jj2client/internal/codec"
)

// Tag is the one-byte packet identifier appearing first in a frame body.
// ALLPayloads is a reserved Tag value used as a wildcard registrar — a
// distinct value of the same Tag type rather than an identity-compared
// sentinel object; no real packet is ever assigned tag 0xFF.
type Tag uint8

const ALLPayloads Tag = 0xFF

// Transport is the TCP-or-UDP annotation attached to each packet class.
type Transport int

const (
	TCP Transport = iota
	UDP
)

func (t Transport) String() string {
	if t == UDP {
		return "udp"
	}
	return "tcp"
}

// Context is the decoding/encoding context threaded through Payload.Encode
// and Payload.Decode. It carries the context flags the abstract packets
// choose their sub-variant from, plus the last Spectate discriminant
// decoded.
type Context struct {
	// IsDownloading selects DownloadingFile's sub-variant: false picks the
	// init/name chunk, true picks the data chunk.
	IsDownloading bool

	// FromServer selects PlusAcknowledgement's sub-variant: false picks
	// PlusRequest (client-originated), true picks PlusDetails
	// (server-originated).
	FromServer bool

	// SpectatePacketType records the inner discriminant byte of the last
	// Spectate decoded with this context (0: spectator bitset, 1:
	// per-spectator record list). Spectate picks its sub-variant from its
	// own PacketType field, not from this one.
	SpectatePacketType uint8
}

// Payload is implemented by every concrete and abstract packet class.
type Payload interface {
	Tag() Tag
	Transport() Transport
	EventName() string
	Encode(ctx *Context) ([]byte, error)
	Decode(ctx *Context, b []byte) error
}

// Cache gives a concrete packet last-serialized/last-deserialized
// retention and invalidation behavior without reflection: every concrete
// packet embeds a Cache and calls Serialized/SetSerialized from its own
// Encode, and DeserializedFrom/SetDeserializedFrom from its own Decode.
type Cache struct {
	serialized       []byte
	deserializedFrom []byte
}

// Serialized returns the cached encode result, or nil if Invalidate was
// called (or nothing has been encoded yet) since the last encode.
func (c *Cache) Serialized() []byte { return c.serialized }

// SetSerialized caches b as the result of the most recent Encode.
func (c *Cache) SetSerialized(b []byte) { c.serialized = b }

// DeserializedFrom returns the raw bytes the packet was last decoded from.
func (c *Cache) DeserializedFrom() []byte { return c.deserializedFrom }

// SetDeserializedFrom records the raw bytes a Decode call consumed.
func (c *Cache) SetDeserializedFrom(b []byte) { c.deserializedFrom = b }

// Invalidate clears the cached serialization; callers call it after
// mutating fields directly, so the next Encode recomputes bytes. There is
// no Feed or Refresh: fields are set directly, and re-decoding with a new
// Context is a fresh Decode call.
func (c *Cache) Invalidate() { c.serialized = nil }

// registry maps each tag to its Payload factory. It is filled in by each
// packet file's init() via Register, and consulted by Decode when the
// transport driver decodes inbound frames.
type factory func() Payload

var registry = map[Tag]factory{}

// Register adds a concrete or abstract packet class under its tag. Panics
// on a duplicate tag, since tag uniqueness is a compile-time invariant of
// the catalog, not a runtime condition any caller should recover from.
func Register(tag Tag, f factory) {
	if _, ok := registry[tag]; ok {
		panic(fmt.Sprintf("packet: duplicate registration for tag 0x%02X", tag))
	}
	registry[tag] = f
}

// New instantiates the registered Payload for tag, or (nil, false) if no
// class is registered under it.
func New(tag Tag) (Payload, bool) {
	f, ok := registry[tag]
	if !ok {
		return nil, false
	}
	return f(), true
}

// Decode looks up tag in the registry and fully decodes b into a fresh
// Payload instance.
func Decode(tag Tag, ctx *Context, b []byte) (Payload, error) {
	p, ok := New(tag)
	if !ok {
		return nil, codec.ErrUnknownPacket
	}
	if err := p.Decode(ctx, b); err != nil {
		return nil, err
	}
	return p, nil
}
