package packet

import (
	"jj2client/internal/codec"
	"jj2client/internal/wire"
)

// MusicInfo is ServerDetailsExtras's optional music-override sub-field.
type MusicInfo struct {
	Present bool
	Name    string
}

// ScriptsInfo is ServerDetailsExtras's optional script-bundle sub-field.
type ScriptsInfo struct {
	Present bool
	Data    []byte
}

// ServerDetailsExtras is the Plus-protocol tail of ServerDetails, present
// only when the server negotiates the extended handshake.
type ServerDetailsExtras struct {
	LevelChallenge   [4]byte
	HeartbeatCookie  [4]byte
	PlusVersionMajor uint16
	PlusVersionMinor uint16
	Music            MusicInfo
	Scripts          ScriptsInfo
}

// ServerDetails is the server's reply to JoinRequest: roster limits, the
// server's advertised name, and an optional Plus extras tail. Extras has
// no discriminant of its own on the wire: its presence is decided purely
// by whether any bytes remain after ServerName, mirroring the rest of the
// frame being absent entirely when the server doesn't negotiate Plus.
type ServerDetails struct {
	Cache
	ClientID     int32
	MaxPlayers   uint8
	TotalPlayers uint8
	ServerName   string
	HasExtras    bool
	Extras       ServerDetailsExtras
}

func (p *ServerDetails) Tag() Tag             { return TagServerDetails }
func (p *ServerDetails) Transport() Transport { return TCP }
func (p *ServerDetails) EventName() string    { return "server_details" }

func (p *ServerDetails) Encode(ctx *Context) ([]byte, error) {
	if b := p.Serialized(); b != nil {
		return b, nil
	}
	w := wire.NewWriter()
	w.I32(p.ClientID)
	w.U8(p.MaxPlayers)
	w.U8(p.TotalPlayers)
	if err := w.PString(p.ServerName); err != nil {
		return nil, codec.NewEncodeError(p.EventName(), err)
	}
	if p.HasExtras {
		e := p.Extras
		w.Array(e.LevelChallenge[:])
		w.Array(e.HeartbeatCookie[:])
		w.U16(e.PlusVersionMajor)
		w.U16(e.PlusVersionMinor)
		w.U8(boolByte(e.Music.Present))
		if e.Music.Present {
			if err := w.PString(e.Music.Name); err != nil {
				return nil, codec.NewEncodeError(p.EventName(), err)
			}
		}
		w.U8(boolByte(e.Scripts.Present))
		if e.Scripts.Present {
			w.Array(e.Scripts.Data)
		}
	}
	b := w.Bytes()
	p.SetSerialized(b)
	return b, nil
}

// Decode reads the fixed header, then treats Extras as optional: present
// only when bytes remain after ServerName and that tail fully decodes as
// the Plus extras struct. There is no discriminant byte on the wire —
// a server that doesn't negotiate Plus simply ends the frame early.
func (p *ServerDetails) Decode(ctx *Context, b []byte) error {
	r := wire.NewReader(b)
	var err error
	if p.ClientID, err = r.I32(); err != nil {
		return codec.NewDecodeError(p.EventName(), err)
	}
	if p.MaxPlayers, err = r.U8(); err != nil {
		return codec.NewDecodeError(p.EventName(), err)
	}
	if p.TotalPlayers, err = r.U8(); err != nil {
		return codec.NewDecodeError(p.EventName(), err)
	}
	if p.ServerName, err = r.PString(); err != nil {
		return codec.NewDecodeError(p.EventName(), err)
	}
	p.HasExtras = false
	p.Extras = ServerDetailsExtras{}
	if r.Remaining() > 0 {
		if extras, ok := decodeServerDetailsExtras(r); ok {
			p.HasExtras = true
			p.Extras = extras
		}
	}
	p.SetDeserializedFrom(b)
	return nil
}

// decodeServerDetailsExtras tries to parse the Plus extras tail, reporting
// ok=false (and leaving r's position rolled back) if the remaining bytes
// don't fully decode as the expected struct.
func decodeServerDetailsExtras(r *wire.Reader) (extras ServerDetailsExtras, ok bool) {
	start := r.Pos()
	lc, err := r.Array(4)
	if err != nil {
		r.Seek(start)
		return extras, false
	}
	copy(extras.LevelChallenge[:], lc)
	hc, err := r.Array(4)
	if err != nil {
		r.Seek(start)
		return extras, false
	}
	copy(extras.HeartbeatCookie[:], hc)
	if extras.PlusVersionMajor, err = r.U16(); err != nil {
		r.Seek(start)
		return extras, false
	}
	if extras.PlusVersionMinor, err = r.U16(); err != nil {
		r.Seek(start)
		return extras, false
	}
	musicPresent, err := r.U8()
	if err != nil {
		r.Seek(start)
		return extras, false
	}
	extras.Music.Present = musicPresent != 0
	if extras.Music.Present {
		if extras.Music.Name, err = r.PString(); err != nil {
			r.Seek(start)
			return extras, false
		}
	}
	scriptsPresent, err := r.U8()
	if err != nil {
		r.Seek(start)
		return extras, false
	}
	extras.Scripts.Present = scriptsPresent != 0
	if extras.Scripts.Present {
		extras.Scripts.Data = r.GreedyBytes()
	}
	return extras, true
}

func init() { Register(TagServerDetails, func() Payload { return &ServerDetails{} }) }

func boolByte(v bool) uint8 {
	if v {
		return 1
	}
	return 0
}

// PlayerEntry is one roster row of PlayerList.
type PlayerEntry struct {
	ClientID int32
	Name     string
	Team     uint8
}

// PlayerList is the server's full roster snapshot.
type PlayerList struct {
	Cache
	Players []PlayerEntry
}

func (p *PlayerList) Tag() Tag             { return TagPlayerList }
func (p *PlayerList) Transport() Transport { return TCP }
func (p *PlayerList) EventName() string    { return "player_list" }

func (p *PlayerList) Encode(ctx *Context) ([]byte, error) {
	if b := p.Serialized(); b != nil {
		return b, nil
	}
	w := wire.NewWriter()
	w.U8(uint8(len(p.Players)))
	for _, pl := range p.Players {
		w.I32(pl.ClientID)
		if err := w.PString(pl.Name); err != nil {
			return nil, codec.NewEncodeError(p.EventName(), err)
		}
		w.U8(pl.Team)
	}
	b := w.Bytes()
	p.SetSerialized(b)
	return b, nil
}

func (p *PlayerList) Decode(ctx *Context, b []byte) error {
	r := wire.NewReader(b)
	count, err := r.U8()
	if err != nil {
		return codec.NewDecodeError(p.EventName(), err)
	}
	p.Players = make([]PlayerEntry, count)
	for i := range p.Players {
		if p.Players[i].ClientID, err = r.I32(); err != nil {
			return codec.NewDecodeError(p.EventName(), err)
		}
		if p.Players[i].Name, err = r.PString(); err != nil {
			return codec.NewDecodeError(p.EventName(), err)
		}
		if p.Players[i].Team, err = r.U8(); err != nil {
			return codec.NewDecodeError(p.EventName(), err)
		}
	}
	p.SetDeserializedFrom(b)
	return nil
}

func init() { Register(TagPlayerList, func() Payload { return &PlayerList{} }) }

// GameInit carries the gameplay initialization blob for a level; its
// contents beyond the challenge and mode are opaque gameplay state, out of
// scope for this client.
type GameInit struct {
	Cache
	LevelChallenge [4]byte
	GameMode       uint8
	Data           []byte
}

func (p *GameInit) Tag() Tag             { return TagGameInit }
func (p *GameInit) Transport() Transport { return TCP }
func (p *GameInit) EventName() string    { return "game_init" }

func (p *GameInit) Encode(ctx *Context) ([]byte, error) {
	if b := p.Serialized(); b != nil {
		return b, nil
	}
	w := wire.NewWriter()
	w.Array(p.LevelChallenge[:])
	w.U8(p.GameMode)
	w.Array(p.Data)
	b := w.Bytes()
	p.SetSerialized(b)
	return b, nil
}

func (p *GameInit) Decode(ctx *Context, b []byte) error {
	r := wire.NewReader(b)
	challenge, err := r.Array(4)
	if err != nil {
		return codec.NewDecodeError(p.EventName(), err)
	}
	copy(p.LevelChallenge[:], challenge)
	if p.GameMode, err = r.U8(); err != nil {
		return codec.NewDecodeError(p.EventName(), err)
	}
	p.Data = r.GreedyBytes()
	p.SetDeserializedFrom(b)
	return nil
}

func init() { Register(TagGameInit, func() Payload { return &GameInit{} }) }
