package packet

import (
	"jj2client/internal/codec"
	"jj2client/internal/wire"
)

// ClientDisconnect carries an optional human-readable reason; a client_id of
// -1 tells the session to drop the connection outright.
type ClientDisconnect struct {
	Cache
	ClientID      int32
	IncludeReason uint8
	Reason        string
}

func (p *ClientDisconnect) Tag() Tag              { return TagClientDisconnect }
func (p *ClientDisconnect) Transport() Transport  { return TCP }
func (p *ClientDisconnect) EventName() string     { return "client_disconnect" }

func (p *ClientDisconnect) Encode(ctx *Context) ([]byte, error) {
	if b := p.Serialized(); b != nil {
		return b, nil
	}
	w := wire.NewWriter()
	w.I32(p.ClientID)
	w.U8(p.IncludeReason)
	if p.IncludeReason != 0 {
		if err := w.PString(p.Reason); err != nil {
			return nil, codec.NewEncodeError(p.EventName(), err)
		}
	}
	b := w.Bytes()
	p.SetSerialized(b)
	return b, nil
}

func (p *ClientDisconnect) Decode(ctx *Context, b []byte) error {
	r := wire.NewReader(b)
	var err error
	if p.ClientID, err = r.I32(); err != nil {
		return codec.NewDecodeError(p.EventName(), err)
	}
	if p.IncludeReason, err = r.U8(); err != nil {
		return codec.NewDecodeError(p.EventName(), err)
	}
	if p.IncludeReason != 0 {
		if p.Reason, err = r.PString(); err != nil {
			return codec.NewDecodeError(p.EventName(), err)
		}
	}
	p.SetDeserializedFrom(b)
	return nil
}

func init() { Register(TagClientDisconnect, func() Payload { return &ClientDisconnect{} }) }

// PlayerDescriptor is one entry of ClientDetails's local player list.
type PlayerDescriptor struct {
	Name          string
	CharacterType uint8
}

// ClientDetails announces the connecting client's identity and local
// players to the server.
type ClientDetails struct {
	Cache
	PlayerName string
	CheckSum   uint32
	ClientType uint8
	Players    []PlayerDescriptor
}

func (p *ClientDetails) Tag() Tag             { return TagClientDetails }
func (p *ClientDetails) Transport() Transport { return TCP }
func (p *ClientDetails) EventName() string    { return "client_details" }

func (p *ClientDetails) Encode(ctx *Context) ([]byte, error) {
	if b := p.Serialized(); b != nil {
		return b, nil
	}
	w := wire.NewWriter()
	if err := w.PString(p.PlayerName); err != nil {
		return nil, codec.NewEncodeError(p.EventName(), err)
	}
	w.U32(p.CheckSum)
	w.U8(p.ClientType)
	w.U8(uint8(len(p.Players)))
	for _, pl := range p.Players {
		if err := w.PString(pl.Name); err != nil {
			return nil, codec.NewEncodeError(p.EventName(), err)
		}
		w.U8(pl.CharacterType)
	}
	b := w.Bytes()
	p.SetSerialized(b)
	return b, nil
}

func (p *ClientDetails) Decode(ctx *Context, b []byte) error {
	r := wire.NewReader(b)
	var err error
	if p.PlayerName, err = r.PString(); err != nil {
		return codec.NewDecodeError(p.EventName(), err)
	}
	if p.CheckSum, err = r.U32(); err != nil {
		return codec.NewDecodeError(p.EventName(), err)
	}
	if p.ClientType, err = r.U8(); err != nil {
		return codec.NewDecodeError(p.EventName(), err)
	}
	count, err := r.U8()
	if err != nil {
		return codec.NewDecodeError(p.EventName(), err)
	}
	p.Players = make([]PlayerDescriptor, count)
	for i := range p.Players {
		if p.Players[i].Name, err = r.PString(); err != nil {
			return codec.NewDecodeError(p.EventName(), err)
		}
		if p.Players[i].CharacterType, err = r.U8(); err != nil {
			return codec.NewDecodeError(p.EventName(), err)
		}
	}
	p.SetDeserializedFrom(b)
	return nil
}

func init() { Register(TagClientDetails, func() Payload { return &ClientDetails{} }) }

// JoinRequest asks the server to admit the client to a level.
type JoinRequest struct {
	Cache
	LevelChallenge [4]byte
	ConnectionType uint8
	Data           []byte
}

func (p *JoinRequest) Tag() Tag             { return TagJoinRequest }
func (p *JoinRequest) Transport() Transport { return TCP }
func (p *JoinRequest) EventName() string    { return "join_request" }

func (p *JoinRequest) Encode(ctx *Context) ([]byte, error) {
	if b := p.Serialized(); b != nil {
		return b, nil
	}
	w := wire.NewWriter()
	w.Array(p.LevelChallenge[:])
	w.U8(p.ConnectionType)
	w.Array(p.Data)
	b := w.Bytes()
	p.SetSerialized(b)
	return b, nil
}

func (p *JoinRequest) Decode(ctx *Context, b []byte) error {
	r := wire.NewReader(b)
	challenge, err := r.Array(4)
	if err != nil {
		return codec.NewDecodeError(p.EventName(), err)
	}
	copy(p.LevelChallenge[:], challenge)
	if p.ConnectionType, err = r.U8(); err != nil {
		return codec.NewDecodeError(p.EventName(), err)
	}
	p.Data = r.GreedyBytes()
	p.SetDeserializedFrom(b)
	return nil
}

func init() { Register(TagJoinRequest, func() Payload { return &JoinRequest{} }) }
