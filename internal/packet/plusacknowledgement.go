package packet

import (
	"fmt"

	"jj2client/internal/codec"
	"jj2client/internal/wire"
)

// PlusRequest is PlusAcknowledgement's client-originated sub-variant
// (Context.FromServer == false): an echoed timestamp.
type PlusRequest struct {
	Cache
	Timestamp [6]byte
}

func (p *PlusRequest) Tag() Tag             { return TagPlusAcknowledgement }
func (p *PlusRequest) Transport() Transport { return TCP }
func (p *PlusRequest) EventName() string    { return "plus_request" }

func (p *PlusRequest) Encode(ctx *Context) ([]byte, error) {
	w := wire.NewWriter()
	w.Array(p.Timestamp[:])
	b := w.Bytes()
	p.SetSerialized(b)
	return b, nil
}

func (p *PlusRequest) Decode(ctx *Context, b []byte) error {
	r := wire.NewReader(b)
	ts, err := r.Array(6)
	if err != nil {
		return codec.NewDecodeError(p.EventName(), err)
	}
	copy(p.Timestamp[:], ts)
	p.SetDeserializedFrom(b)
	return nil
}

// PlusDetailsFlags is PlusDetails's trailing bitstruct byte.
type PlusDetailsFlags struct {
	HasForward bool
	HasLicense bool
	IsAdmin    bool
}

// PlusDetails is PlusAcknowledgement's server-originated sub-variant
// (Context.FromServer == true).
type PlusDetails struct {
	Cache
	Unknown uint8
	Health  uint8
	Flags   PlusDetailsFlags
}

func (p *PlusDetails) Tag() Tag             { return TagPlusAcknowledgement }
func (p *PlusDetails) Transport() Transport { return TCP }
func (p *PlusDetails) EventName() string    { return "plus_details" }

func (p *PlusDetails) Encode(ctx *Context) ([]byte, error) {
	w := wire.NewWriter()
	w.U8(p.Unknown)
	w.U8(p.Health)
	bw := wire.NewBitWriter()
	bw.PadZero(5)
	bw.PutBit(p.Flags.HasForward)
	bw.PutBit(p.Flags.HasLicense)
	bw.PutBit(p.Flags.IsAdmin)
	w.Array(bw.Bytes())
	b := w.Bytes()
	p.SetSerialized(b)
	return b, nil
}

func (p *PlusDetails) Decode(ctx *Context, b []byte) error {
	r := wire.NewReader(b)
	var err error
	if p.Unknown, err = r.U8(); err != nil {
		return codec.NewDecodeError(p.EventName(), err)
	}
	if p.Health, err = r.U8(); err != nil {
		return codec.NewDecodeError(p.EventName(), err)
	}
	flagByte, err := r.Array(1)
	if err != nil {
		return codec.NewDecodeError(p.EventName(), err)
	}
	br := wire.NewBitReader(flagByte)
	br.Skip(5)
	p.Flags.HasForward = br.Bit()
	p.Flags.HasLicense = br.Bit()
	p.Flags.IsAdmin = br.Bit()
	p.SetDeserializedFrom(b)
	return nil
}

// PlusAcknowledgement is the abstract packet at tag 0x3F. Its sub-variant
// is chosen from Context.FromServer: false picks PlusRequest, true picks
// PlusDetails.
type PlusAcknowledgement struct {
	AbstractPayload
	Request *PlusRequest
	Details *PlusDetails
}

func (p *PlusAcknowledgement) Tag() Tag             { return TagPlusAcknowledgement }
func (p *PlusAcknowledgement) Transport() Transport { return TCP }
func (p *PlusAcknowledgement) EventName() string    { return "plus_acknowledgement" }

func (p *PlusAcknowledgement) pick(ctx *Context) (Payload, error) {
	if ctx == nil {
		return nil, fmt.Errorf("plus_acknowledgement: requires a context to pick a sub-variant")
	}
	if ctx.FromServer {
		if p.Details == nil {
			p.Details = &PlusDetails{}
		}
		return p.Details, nil
	}
	if p.Request == nil {
		p.Request = &PlusRequest{}
	}
	return p.Request, nil
}

func (p *PlusAcknowledgement) Encode(ctx *Context) ([]byte, error) {
	sub, err := p.pick(ctx)
	if err != nil {
		return nil, codec.NewEncodeError(p.EventName(), err)
	}
	b, err := sub.Encode(ctx)
	if err != nil {
		return nil, err
	}
	p.Selected = sub
	p.SetSerialized(b)
	return b, nil
}

func (p *PlusAcknowledgement) Decode(ctx *Context, b []byte) error {
	sub, err := p.pick(ctx)
	if err != nil {
		return codec.NewDecodeError(p.EventName(), err)
	}
	if err := sub.Decode(ctx, b); err != nil {
		return err
	}
	p.Selected = sub
	p.SetDeserializedFrom(b)
	return nil
}

func init() {
	Register(TagPlusAcknowledgement, func() Payload { return &PlusAcknowledgement{} })
}
