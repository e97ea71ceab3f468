package packet

import (
	"jj2client/internal/codec"
	"jj2client/internal/wire"
)

// DownloadRequest asks the server to (re)send a resource, optionally
// resuming a partial download.
type DownloadRequest struct {
	Cache
	FileName     string
	ResumeOffset uint32
}

func (p *DownloadRequest) Tag() Tag             { return TagDownloadRequest }
func (p *DownloadRequest) Transport() Transport { return TCP }
func (p *DownloadRequest) EventName() string    { return "download_request" }

func (p *DownloadRequest) Encode(ctx *Context) ([]byte, error) {
	if b := p.Serialized(); b != nil {
		return b, nil
	}
	w := wire.NewWriter()
	if err := w.PString(p.FileName); err != nil {
		return nil, codec.NewEncodeError(p.EventName(), err)
	}
	w.U32(p.ResumeOffset)
	b := w.Bytes()
	p.SetSerialized(b)
	return b, nil
}

func (p *DownloadRequest) Decode(ctx *Context, b []byte) error {
	r := wire.NewReader(b)
	var err error
	if p.FileName, err = r.PString(); err != nil {
		return codec.NewDecodeError(p.EventName(), err)
	}
	if p.ResumeOffset, err = r.U32(); err != nil {
		return codec.NewDecodeError(p.EventName(), err)
	}
	p.SetDeserializedFrom(b)
	return nil
}

func init() { Register(TagDownloadRequest, func() Payload { return &DownloadRequest{} }) }

// LevelLoad announces the level the server is about to start.
type LevelLoad struct {
	Cache
	LevelFileName  string
	LevelChallenge [4]byte
	Flags          uint8
}

func (p *LevelLoad) Tag() Tag             { return TagLevelLoad }
func (p *LevelLoad) Transport() Transport { return TCP }
func (p *LevelLoad) EventName() string    { return "level_load" }

func (p *LevelLoad) Encode(ctx *Context) ([]byte, error) {
	if b := p.Serialized(); b != nil {
		return b, nil
	}
	w := wire.NewWriter()
	if err := w.PString(p.LevelFileName); err != nil {
		return nil, codec.NewEncodeError(p.EventName(), err)
	}
	w.Array(p.LevelChallenge[:])
	w.U8(p.Flags)
	b := w.Bytes()
	p.SetSerialized(b)
	return b, nil
}

func (p *LevelLoad) Decode(ctx *Context, b []byte) error {
	r := wire.NewReader(b)
	var err error
	if p.LevelFileName, err = r.PString(); err != nil {
		return codec.NewDecodeError(p.EventName(), err)
	}
	challenge, err := r.Array(4)
	if err != nil {
		return codec.NewDecodeError(p.EventName(), err)
	}
	copy(p.LevelChallenge[:], challenge)
	if p.Flags, err = r.U8(); err != nil {
		return codec.NewDecodeError(p.EventName(), err)
	}
	p.SetDeserializedFrom(b)
	return nil
}

func init() { Register(TagLevelLoad, func() Payload { return &LevelLoad{} }) }

// EndOfLevel tells the client which level follows, if any.
type EndOfLevel struct {
	Cache
	NextLevelName string
	Data          []byte
}

func (p *EndOfLevel) Tag() Tag             { return TagEndOfLevel }
func (p *EndOfLevel) Transport() Transport { return TCP }
func (p *EndOfLevel) EventName() string    { return "end_of_level" }

func (p *EndOfLevel) Encode(ctx *Context) ([]byte, error) {
	if b := p.Serialized(); b != nil {
		return b, nil
	}
	w := wire.NewWriter()
	if err := w.PString(p.NextLevelName); err != nil {
		return nil, codec.NewEncodeError(p.EventName(), err)
	}
	w.Array(p.Data)
	b := w.Bytes()
	p.SetSerialized(b)
	return b, nil
}

func (p *EndOfLevel) Decode(ctx *Context, b []byte) error {
	r := wire.NewReader(b)
	var err error
	if p.NextLevelName, err = r.PString(); err != nil {
		return codec.NewDecodeError(p.EventName(), err)
	}
	p.Data = r.GreedyBytes()
	p.SetDeserializedFrom(b)
	return nil
}

func init() { Register(TagEndOfLevel, func() Payload { return &EndOfLevel{} }) }

// UpdateEvents streams gameplay events for a tick; the event payload itself
// is opaque gameplay state, out of scope for this client.
type UpdateEvents struct {
	Cache
	Tick uint32
	Data []byte
}

func (p *UpdateEvents) Tag() Tag             { return TagUpdateEvents }
func (p *UpdateEvents) Transport() Transport { return TCP }
func (p *UpdateEvents) EventName() string    { return "update_events" }

func (p *UpdateEvents) Encode(ctx *Context) ([]byte, error) {
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

func (p *UpdateEvents) Decode(ctx *Context, b []byte) error {
	r := wire.NewReader(b)
	var err error
	if p.Tick, err = r.U32(); err != nil {
		return codec.NewDecodeError(p.EventName(), err)
	}
	p.Data = r.GreedyBytes()
	p.SetDeserializedFrom(b)
	return nil
}

func init() { Register(TagUpdateEvents, func() Payload { return &UpdateEvents{} }) }

// ServerStopped has an empty schema; its arrival alone is the signal.
type ServerStopped struct {
	Cache
}

func (p *ServerStopped) Tag() Tag             { return TagServerStopped }
func (p *ServerStopped) Transport() Transport { return TCP }
func (p *ServerStopped) EventName() string    { return "server_stopped" }

func (p *ServerStopped) Encode(ctx *Context) ([]byte, error) {
	b := []byte{}
	p.SetSerialized(b)
	return b, nil
}

func (p *ServerStopped) Decode(ctx *Context, b []byte) error {
	p.SetDeserializedFrom(b)
	return nil
}

func init() { Register(TagServerStopped, func() Payload { return &ServerStopped{} }) }

// UpdateRequest asks the server to resend the current tick's state for the
// level matching LevelChallenge.
type UpdateRequest struct {
	Cache
	LevelChallenge [4]byte
}

func (p *UpdateRequest) Tag() Tag             { return TagUpdateRequest }
func (p *UpdateRequest) Transport() Transport { return TCP }
func (p *UpdateRequest) EventName() string    { return "update_request" }

func (p *UpdateRequest) Encode(ctx *Context) ([]byte, error) {
	if b := p.Serialized(); b != nil {
		return b, nil
	}
	w := wire.NewWriter()
	w.Array(p.LevelChallenge[:])
	b := w.Bytes()
	p.SetSerialized(b)
	return b, nil
}

func (p *UpdateRequest) Decode(ctx *Context, b []byte) error {
	r := wire.NewReader(b)
	challenge, err := r.Array(4)
	if err != nil {
		return codec.NewDecodeError(p.EventName(), err)
	}
	copy(p.LevelChallenge[:], challenge)
	p.SetDeserializedFrom(b)
	return nil
}

func init() { Register(TagUpdateRequest, func() Payload { return &UpdateRequest{} }) }

// ChatMessage is an in-game chat line, in either direction.
type ChatMessage struct {
	Cache
	ClientID int32
	Team     uint8
	Message  string
}

func (p *ChatMessage) Tag() Tag             { return TagChatMessage }
func (p *ChatMessage) Transport() Transport { return TCP }
func (p *ChatMessage) EventName() string    { return "chat_message" }

func (p *ChatMessage) Encode(ctx *Context) ([]byte, error) {
	if b := p.Serialized(); b != nil {
		return b, nil
	}
	w := wire.NewWriter()
	w.I32(p.ClientID)
	w.U8(p.Team)
	if err := w.PString(p.Message); err != nil {
		return nil, codec.NewEncodeError(p.EventName(), err)
	}
	b := w.Bytes()
	p.SetSerialized(b)
	return b, nil
}

func (p *ChatMessage) Decode(ctx *Context, b []byte) error {
	r := wire.NewReader(b)
	var err error
	if p.ClientID, err = r.I32(); err != nil {
		return codec.NewDecodeError(p.EventName(), err)
	}
	if p.Team, err = r.U8(); err != nil {
		return codec.NewDecodeError(p.EventName(), err)
	}
	if p.Message, err = r.PString(); err != nil {
		return codec.NewDecodeError(p.EventName(), err)
	}
	p.SetDeserializedFrom(b)
	return nil
}

func init() { Register(TagChatMessage, func() Payload { return &ChatMessage{} }) }

// ConsoleMessage is a server console line with no length prefix; it must be
// the last thing in its frame.
type ConsoleMessage struct {
	Cache
	Message string
}

func (p *ConsoleMessage) Tag() Tag             { return TagConsoleMessage }
func (p *ConsoleMessage) Transport() Transport { return TCP }
func (p *ConsoleMessage) EventName() string    { return "console_message" }

func (p *ConsoleMessage) Encode(ctx *Context) ([]byte, error) {
	if b := p.Serialized(); b != nil {
		return b, nil
	}
	w := wire.NewWriter()
	w.GreedyString(p.Message)
	b := w.Bytes()
	p.SetSerialized(b)
	return b, nil
}

func (p *ConsoleMessage) Decode(ctx *Context, b []byte) error {
	r := wire.NewReader(b)
	p.Message = r.GreedyString()
	p.SetDeserializedFrom(b)
	return nil
}

func init() { Register(TagConsoleMessage, func() Payload { return &ConsoleMessage{} }) }

// GameState mirrors the session's lives/score fields; the rest of the
// gameplay state is opaque here.
type GameState struct {
	Cache
	Lives uint8
	Score uint32
	Data  []byte
}

func (p *GameState) Tag() Tag             { return TagGameState }
func (p *GameState) Transport() Transport { return TCP }
func (p *GameState) EventName() string    { return "game_state" }

func (p *GameState) Encode(ctx *Context) ([]byte, error) {
	if b := p.Serialized(); b != nil {
		return b, nil
	}
	w := wire.NewWriter()
	w.U8(p.Lives)
	w.U32(p.Score)
	w.Array(p.Data)
	b := w.Bytes()
	p.SetSerialized(b)
	return b, nil
}

func (p *GameState) Decode(ctx *Context, b []byte) error {
	r := wire.NewReader(b)
	var err error
	if p.Lives, err = r.U8(); err != nil {
		return codec.NewDecodeError(p.EventName(), err)
	}
	if p.Score, err = r.U32(); err != nil {
		return codec.NewDecodeError(p.EventName(), err)
	}
	p.Data = r.GreedyBytes()
	p.SetDeserializedFrom(b)
	return nil
}

func init() { Register(TagGameState, func() Payload { return &GameState{} }) }

// Latency carries one client's round-trip estimate. The wire field packs
// the value into the high byte of a uint16; Decode shifts right, Encode
// shifts left, the exact inverse.
type Latency struct {
	Cache
	ClientID int32
	Value    uint8
}

func (p *Latency) Tag() Tag             { return TagLatency }
func (p *Latency) Transport() Transport { return TCP }
func (p *Latency) EventName() string    { return "latency" }

func (p *Latency) Encode(ctx *Context) ([]byte, error) {
	if b := p.Serialized(); b != nil {
		return b, nil
	}
	w := wire.NewWriter()
	w.I32(p.ClientID)
	w.U16(uint16(p.Value) << 8)
	b := w.Bytes()
	p.SetSerialized(b)
	return b, nil
}

func (p *Latency) Decode(ctx *Context, b []byte) error {
	r := wire.NewReader(b)
	var err error
	if p.ClientID, err = r.I32(); err != nil {
		return codec.NewDecodeError(p.EventName(), err)
	}
	raw, err := r.U16()
	if err != nil {
		return codec.NewDecodeError(p.EventName(), err)
	}
	p.Value = uint8(raw >> 8)
	p.SetDeserializedFrom(b)
	return nil
}

func init() { Register(TagLatency, func() Payload { return &Latency{} }) }

// Ready has an empty schema; the server sends it once a level is ready.
type Ready struct {
	Cache
}

func (p *Ready) Tag() Tag             { return TagReady }
func (p *Ready) Transport() Transport { return TCP }
func (p *Ready) EventName() string    { return "ready" }

func (p *Ready) Encode(ctx *Context) ([]byte, error) {
	b := []byte{}
	p.SetSerialized(b)
	return b, nil
}

func (p *Ready) Decode(ctx *Context, b []byte) error {
	p.SetDeserializedFrom(b)
	return nil
}

func init() { Register(TagReady, func() Payload { return &Ready{} }) }

// ResourceEntry is one named resource and its CRC32 integrity check.
type ResourceEntry struct {
	Name  string
	CRC32 uint32
}

// ResourceList is the server's list of level-required resources, mirrored
// into the session's level_challenge and scripts fields.
type ResourceList struct {
	Cache
	LevelChallenge [4]byte
	Entries        []ResourceEntry
}

func (p *ResourceList) Tag() Tag             { return TagResourceList }
func (p *ResourceList) Transport() Transport { return TCP }
func (p *ResourceList) EventName() string    { return "resource_list" }

func (p *ResourceList) Encode(ctx *Context) ([]byte, error) {
	if b := p.Serialized(); b != nil {
		return b, nil
	}
	w := wire.NewWriter()
	w.Array(p.LevelChallenge[:])
	w.U8(uint8(len(p.Entries)))
	for _, e := range p.Entries {
		if err := w.PString(e.Name); err != nil {
			return nil, codec.NewEncodeError(p.EventName(), err)
		}
		w.U32(e.CRC32)
	}
	b := w.Bytes()
	p.SetSerialized(b)
	return b, nil
}

func (p *ResourceList) Decode(ctx *Context, b []byte) error {
	r := wire.NewReader(b)
	challenge, err := r.Array(4)
	if err != nil {
		return codec.NewDecodeError(p.EventName(), err)
	}
	copy(p.LevelChallenge[:], challenge)
	count, err := r.U8()
	if err != nil {
		return codec.NewDecodeError(p.EventName(), err)
	}
	p.Entries = make([]ResourceEntry, count)
	for i := range p.Entries {
		if p.Entries[i].Name, err = r.PString(); err != nil {
			return codec.NewDecodeError(p.EventName(), err)
		}
		if p.Entries[i].CRC32, err = r.U32(); err != nil {
			return codec.NewDecodeError(p.EventName(), err)
		}
	}
	p.SetDeserializedFrom(b)
	return nil
}

func init() { Register(TagResourceList, func() Payload { return &ResourceList{} }) }
