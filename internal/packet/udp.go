package packet

import (
	"jj2client/internal/codec"
	"jj2client/internal/wire"
)

// Ping is the server discovery probe: a list slot, four unknown bytes and
// the client's version string, space-padded to four ASCII characters
// (e.g. "24  ").
type Ping struct {
	Cache
	ListNumber    uint8
	Unknown       [4]byte
	ClientVersion string
}

func (p *Ping) Tag() Tag             { return TagPing }
func (p *Ping) Transport() Transport { return UDP }
func (p *Ping) EventName() string    { return "ping" }

func (p *Ping) Encode(ctx *Context) ([]byte, error) {
	if b := p.Serialized(); b != nil {
		return b, nil
	}
	w := wire.NewWriter()
	w.U8(p.ListNumber)
	w.Array(p.Unknown[:])
	w.PaddedString(p.ClientVersion, 4)
	b := w.Bytes()
	p.SetSerialized(b)
	return b, nil
}

func (p *Ping) Decode(ctx *Context, b []byte) error {
	r := wire.NewReader(b)
	var err error
	if p.ListNumber, err = r.U8(); err != nil {
		return codec.NewDecodeError(p.EventName(), err)
	}
	unk, err := r.Array(4)
	if err != nil {
		return codec.NewDecodeError(p.EventName(), err)
	}
	copy(p.Unknown[:], unk)
	// The version keeps its padding spaces ("24  "), so it is read raw
	// rather than through the trimming PaddedString.
	version, err := r.Array(4)
	if err != nil {
		return codec.NewDecodeError(p.EventName(), err)
	}
	p.ClientVersion = string(version)
	p.SetDeserializedFrom(b)
	return nil
}

func init() { Register(TagPing, func() Payload { return &Ping{} }) }

// Pong mirrors Ping, replying with the server's version.
type Pong struct {
	Cache
	ListNumber    uint8
	Unknown       [4]byte
	ServerVersion string
}

func (p *Pong) Tag() Tag             { return TagPong }
func (p *Pong) Transport() Transport { return UDP }
func (p *Pong) EventName() string    { return "pong" }

func (p *Pong) Encode(ctx *Context) ([]byte, error) {
	if b := p.Serialized(); b != nil {
		return b, nil
	}
	w := wire.NewWriter()
	w.U8(p.ListNumber)
	w.Array(p.Unknown[:])
	w.PaddedString(p.ServerVersion, 4)
	b := w.Bytes()
	p.SetSerialized(b)
	return b, nil
}

func (p *Pong) Decode(ctx *Context, b []byte) error {
	r := wire.NewReader(b)
	var err error
	if p.ListNumber, err = r.U8(); err != nil {
		return codec.NewDecodeError(p.EventName(), err)
	}
	unk, err := r.Array(4)
	if err != nil {
		return codec.NewDecodeError(p.EventName(), err)
	}
	copy(p.Unknown[:], unk)
	if p.ServerVersion, err = r.PaddedString(4); err != nil {
		return codec.NewDecodeError(p.EventName(), err)
	}
	p.SetDeserializedFrom(b)
	return nil
}

func init() { Register(TagPong, func() Payload { return &Pong{} }) }

// Query is an out-of-band server info probe (e.g. for a server browser).
type Query struct {
	Cache
	QueryID uint8
	Data    []byte
}

func (p *Query) Tag() Tag             { return TagQuery }
func (p *Query) Transport() Transport { return UDP }
func (p *Query) EventName() string    { return "query" }

func (p *Query) Encode(ctx *Context) ([]byte, error) {
	if b := p.Serialized(); b != nil {
		return b, nil
	}
	w := wire.NewWriter()
	w.U8(p.QueryID)
	w.Array(p.Data)
	b := w.Bytes()
	p.SetSerialized(b)
	return b, nil
}

func (p *Query) Decode(ctx *Context, b []byte) error {
	r := wire.NewReader(b)
	var err error
	if p.QueryID, err = r.U8(); err != nil {
		return codec.NewDecodeError(p.EventName(), err)
	}
	p.Data = r.GreedyBytes()
	p.SetDeserializedFrom(b)
	return nil
}

func init() { Register(TagQuery, func() Payload { return &Query{} }) }

// QueryReply answers Query with the server's advertised name.
type QueryReply struct {
	Cache
	QueryID    uint8
	ServerName string
	Data       []byte
}

func (p *QueryReply) Tag() Tag             { return TagQueryReply }
func (p *QueryReply) Transport() Transport { return UDP }
func (p *QueryReply) EventName() string    { return "query_reply" }

func (p *QueryReply) Encode(ctx *Context) ([]byte, error) {
	if b := p.Serialized(); b != nil {
		return b, nil
	}
	w := wire.NewWriter()
	w.U8(p.QueryID)
	if err := w.PString(p.ServerName); err != nil {
		return nil, codec.NewEncodeError(p.EventName(), err)
	}
	w.Array(p.Data)
	b := w.Bytes()
	p.SetSerialized(b)
	return b, nil
}

func (p *QueryReply) Decode(ctx *Context, b []byte) error {
	r := wire.NewReader(b)
	var err error
	if p.QueryID, err = r.U8(); err != nil {
		return codec.NewDecodeError(p.EventName(), err)
	}
	if p.ServerName, err = r.PString(); err != nil {
		return codec.NewDecodeError(p.EventName(), err)
	}
	p.Data = r.GreedyBytes()
	p.SetDeserializedFrom(b)
	return nil
}

func init() { Register(TagQueryReply, func() Payload { return &QueryReply{} }) }

// GameEvent streams one tick's unreliable gameplay events; the event
// payload itself is opaque gameplay state, out of scope for this client.
type GameEvent struct {
	Cache
	Tick uint32
	Data []byte
}

func (p *GameEvent) Tag() Tag             { return TagGameEvent }
func (p *GameEvent) Transport() Transport { return UDP }
func (p *GameEvent) EventName() string    { return "game_event" }

func (p *GameEvent) Encode(ctx *Context) ([]byte, error) {
	if b := p.Serialized(); b != nil {
		return b, nil
	}
	w := wire.NewWriter()
	w.U32(p.Tick)
	w.Array(p.Data)
	b := w.Bytes()
	p.SetSerialized(b)
	return b, nil
}

func (p *GameEvent) Decode(ctx *Context, b []byte) error {
	r := wire.NewReader(b)
	var err error
	if p.Tick, err = r.U32(); err != nil {
		return codec.NewDecodeError(p.EventName(), err)
	}
	p.Data = r.GreedyBytes()
	p.SetDeserializedFrom(b)
	return nil
}

func init() { Register(TagGameEvent, func() Payload { return &GameEvent{} }) }

// Heartbeat carries the client's current latency estimate and the
// handshake cookie the server issued, echoed back every keepalive
// interval.
type Heartbeat struct {
	Cache
	Latency uint8
	Cookie  [4]byte
}

func (p *Heartbeat) Tag() Tag             { return TagHeartbeat }
func (p *Heartbeat) Transport() Transport { return UDP }
func (p *Heartbeat) EventName() string    { return "heartbeat" }

func (p *Heartbeat) Encode(ctx *Context) ([]byte, error) {
	if b := p.Serialized(); b != nil {
		return b, nil
	}
	w := wire.NewWriter()
	w.U8(p.Latency)
	w.Array(p.Cookie[:])
	b := w.Bytes()
	p.SetSerialized(b)
	return b, nil
}

func (p *Heartbeat) Decode(ctx *Context, b []byte) error {
	r := wire.NewReader(b)
	var err error
	if p.Latency, err = r.U8(); err != nil {
		return codec.NewDecodeError(p.EventName(), err)
	}
	cookie, err := r.Array(4)
	if err != nil {
		return codec.NewDecodeError(p.EventName(), err)
	}
	copy(p.Cookie[:], cookie)
	p.SetDeserializedFrom(b)
	return nil
}

func init() { Register(TagHeartbeat, func() Payload { return &Heartbeat{} }) }
