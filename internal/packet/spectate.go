package packet

import (
	"jj2client/internal/codec"
	"jj2client/internal/wire"
)

// SpectateBitset is Spectate's packet_type==0 sub-variant: a raw bitset,
// one bit per client slot, of who is currently spectating.
type SpectateBitset struct {
	Cache
	Bitset []byte
}

func (p *SpectateBitset) Tag() Tag             { return TagSpectate }
func (p *SpectateBitset) Transport() Transport { return TCP }
func (p *SpectateBitset) EventName() string    { return "spectate_bitset" }

func (p *SpectateBitset) Encode(ctx *Context) ([]byte, error) {
	w := wire.NewWriter()
	w.Array(p.Bitset)
	b := w.Bytes()
	p.SetSerialized(b)
	return b, nil
}

func (p *SpectateBitset) Decode(ctx *Context, b []byte) error {
	p.Bitset = append([]byte(nil), b...)
	p.SetDeserializedFrom(b)
	return nil
}

// SpectateRecord is one row of SpectateRecords: whether a spectator left
// (is_out) and the target it is currently observing.
type SpectateRecord struct {
	IsOut          uint8
	ClientID       int32
	SpectateTarget int32
}

// SpectateRecords is Spectate's packet_type==1 sub-variant: an explicit
// per-spectator record list.
type SpectateRecords struct {
	Cache
	Records []SpectateRecord
}

func (p *SpectateRecords) Tag() Tag             { return TagSpectate }
func (p *SpectateRecords) Transport() Transport { return TCP }
func (p *SpectateRecords) EventName() string    { return "spectate_records" }

func (p *SpectateRecords) Encode(ctx *Context) ([]byte, error) {
	w := wire.NewWriter()
	for _, rec := range p.Records {
		w.U8(rec.IsOut)
		w.I32(rec.ClientID)
		w.I32(rec.SpectateTarget)
	}
	b := w.Bytes()
	p.SetSerialized(b)
	return b, nil
}

func (p *SpectateRecords) Decode(ctx *Context, b []byte) error {
	r := wire.NewReader(b)
	var records []SpectateRecord
	for r.Remaining() > 0 {
		var rec SpectateRecord
		var err error
		if rec.IsOut, err = r.U8(); err != nil {
			return codec.NewDecodeError(p.EventName(), err)
		}
		if rec.ClientID, err = r.I32(); err != nil {
			return codec.NewDecodeError(p.EventName(), err)
		}
		if rec.SpectateTarget, err = r.I32(); err != nil {
			return codec.NewDecodeError(p.EventName(), err)
		}
		records = append(records, rec)
	}
	p.Records = records
	p.SetDeserializedFrom(b)
	return nil
}

// Spectate is the abstract packet at tag 0x41. Unlike DownloadingFile and
// PlusAcknowledgement, its discriminant is an inner payload byte
// (packet_type), not a pure context flag: 0 picks the spectator bitset, 1
// picks the per-spectator record list. The byte is part of the frame body,
// so Spectate itself reads/writes it before delegating the remainder.
type Spectate struct {
	AbstractPayload
	PacketType uint8
	Bitset     *SpectateBitset
	Records    *SpectateRecords
}

func (p *Spectate) Tag() Tag             { return TagSpectate }
func (p *Spectate) Transport() Transport { return TCP }
func (p *Spectate) EventName() string    { return "spectate" }

func (p *Spectate) pick() Payload {
	if p.PacketType == 1 {
		if p.Records == nil {
			p.Records = &SpectateRecords{}
		}
		return p.Records
	}
	if p.Bitset == nil {
		p.Bitset = &SpectateBitset{}
	}
	return p.Bitset
}

func (p *Spectate) Encode(ctx *Context) ([]byte, error) {
	sub := p.pick()
	body, err := sub.Encode(ctx)
	if err != nil {
		return nil, err
	}
	w := wire.NewWriter()
	w.U8(p.PacketType)
	w.Array(body)
	b := w.Bytes()
	p.Selected = sub
	p.SetSerialized(b)
	return b, nil
}

func (p *Spectate) Decode(ctx *Context, b []byte) error {
	r := wire.NewReader(b)
	packetType, err := r.U8()
	if err != nil {
		return codec.NewDecodeError(p.EventName(), err)
	}
	p.PacketType = packetType
	if ctx != nil {
		ctx.SpectatePacketType = packetType
	}
	sub := p.pick()
	if err := sub.Decode(ctx, r.GreedyBytes()); err != nil {
		return err
	}
	p.Selected = sub
	p.SetDeserializedFrom(b)
	return nil
}

func init() {
	Register(TagSpectate, func() Payload { return &Spectate{} })
}

// SpectateRequest asks the server to change the client's spectate state.
// The wire byte is always normalized to 20 + (Spectating mod 2); Spectating
// itself preserves whatever semantic value the caller set (e.g. caller
// sets Spectating=7, wire byte is 20+(7 mod 2)=21).
type SpectateRequest struct {
	Cache
	Spectating int
}

func (p *SpectateRequest) Tag() Tag             { return TagSpectateRequest }
func (p *SpectateRequest) Transport() Transport { return TCP }
func (p *SpectateRequest) EventName() string    { return "spectate_request" }

func (p *SpectateRequest) Encode(ctx *Context) ([]byte, error) {
	if b := p.Serialized(); b != nil {
		return b, nil
	}
	w := wire.NewWriter()
	mod := p.Spectating % 2
	if mod < 0 {
		mod += 2
	}
	w.U8(uint8(20 + mod))
	b := w.Bytes()
	p.SetSerialized(b)
	return b, nil
}

func (p *SpectateRequest) Decode(ctx *Context, b []byte) error {
	r := wire.NewReader(b)
	raw, err := r.U8()
	if err != nil {
		return codec.NewDecodeError(p.EventName(), err)
	}
	p.Spectating = int(raw)
	p.SetDeserializedFrom(b)
	return nil
}

func init() { Register(TagSpectateRequest, func() Payload { return &SpectateRequest{} }) }
