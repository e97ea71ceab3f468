// Package session holds the per-connection state a dispatched protocol
// operates on: the small set of named fields every handler in internal/bot
// relies on, plus an open-ended bag for the long tail of gameplay-state
// fields used only by custom handlers.
package session

// Session is created once per connection when the transport driver is
// instantiated, mutated only from the single dispatch goroutine, and
// discarded when the connection closes. It is never shared across
// connections and carries no synchronization of its own — correctness
// relies on the dispatcher's single-goroutine invariant.
type Session struct {
	ClientID      int32
	UDPSourcePort uint16
	LocalPlayers  []string

	LevelFileName  string
	LevelChallenge [4]byte

	HeartbeatCookie  [4]byte
	HeartbeatLatency uint8

	Introduced bool

	// ServerProperties mirrors the server's negotiated name/extras as a
	// nested mapping.
	ServerProperties map[string]any

	// Config is a free-form flag mapping read through ConfigBool. Gate
	// conditions do not read it: they evaluate the config passed to
	// dispatch.Protocol.Configure.
	Config map[string]any

	// Extra is the open-ended gameplay-state bag: fields no handler in
	// this client reads directly but that a custom handler set may want
	// to stash between packets.
	Extra map[string]any
}

// New returns an empty Session ready for a freshly accepted connection.
func New() *Session {
	return &Session{
		ServerProperties: map[string]any{},
		Config:           map[string]any{},
		Extra:            map[string]any{},
	}
}

// ConfigBool reads a boolean gate flag, defaulting to false when unset or
// of the wrong type.
func (s *Session) ConfigBool(key string) bool {
	v, ok := s.Config[key].(bool)
	return ok && v
}
