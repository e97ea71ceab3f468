package dispatch

import (
	"github.com/rs/zerolog/log"

	"jj2client/internal/packet"
)

// Builder accumulates a protocol's class-level tables (registry, handlers,
// lookup) at definition time; Build freezes them into a runnable Protocol.
// Declaring Extends inherits the parent's registry and lookup and binds the
// built Protocol as one of the parent's children, so a child's own handlers
// stay local while shared packet classes and event names come from the
// root.
type Builder struct {
	registry map[packet.Tag]Condition
	handlers map[packet.Tag][]*handlerRecord
	lookup   map[string]packet.Tag
	parent   *Protocol
	seq      int
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{
		registry: map[packet.Tag]Condition{},
		handlers: map[packet.Tag][]*handlerRecord{},
		lookup:   map[string]packet.Tag{},
	}
}

// Extends binds this builder's eventual Protocol as a child of parent.
func (b *Builder) Extends(parent *Protocol) *Builder {
	b.parent = parent
	return b
}

// Register adds tag to the packet-class registry under cond, gating
// whether this protocol accepts the tag at all once Configure runs. cond
// must not be packet-dependent (Has); registration gates never see a
// packet.
func (b *Builder) Register(tag packet.Tag, eventName string, cond Condition) *Builder {
	if cond.packetDependent {
		panic("dispatch: a Has(...) condition cannot gate a packet-class registration")
	}
	b.registry[tag] = cond
	if eventName != "" {
		b.lookup[eventName] = tag
	}
	return b
}

// Handle appends a handler for tag (or packet.ALLPayloads as the catch-all
// sentinel) at the given priority, gated by cond.
func (b *Builder) Handle(tag packet.Tag, priority Priority, cond Condition, fn HandlerFunc) *Builder {
	b.seq++
	b.handlers[tag] = append(b.handlers[tag], &handlerRecord{
		condition: cond,
		priority:  priority,
		handler:   fn,
		seq:       b.seq,
	})
	return b
}

// Bidirectional registers the same handler for both a request and its
// response tag, a convenience for (request, response) pairs.
func (b *Builder) Bidirectional(request, response packet.Tag, priority Priority, cond Condition, fn HandlerFunc) *Builder {
	b.Handle(request, priority, cond, fn)
	b.Handle(response, priority, cond, fn)
	return b
}

// Build freezes the accumulated tables into a Protocol and, if Extends was
// called, registers it as a child of that parent.
func (b *Builder) Build() *Protocol {
	p := &Protocol{
		registry: map[packet.Tag]Condition{},
		handlers: map[packet.Tag][]*handlerRecord{},
		lookup:   map[string]packet.Tag{},
	}
	if b.parent != nil {
		for k, v := range b.parent.registry {
			p.registry[k] = v
		}
		for k, v := range b.parent.lookup {
			p.lookup[k] = v
		}
		p.parent = b.parent
	}
	for k, v := range b.registry {
		p.registry[k] = v
	}
	for k, v := range b.lookup {
		p.lookup[k] = v
	}
	for tag, recs := range b.handlers {
		p.handlers[tag] = append([]*handlerRecord(nil), recs...)
	}
	if b.parent != nil {
		b.parent.children = append(b.parent.children, p)
	}
	p.OnError = defaultOnError
	p.OnUnknownCase = defaultOnUnknownCase
	return p
}

// defaultOnError is every Protocol's OnError until a caller overrides it:
// log the failure to stderr and let Dispatch carry on with the unchanged
// previous value, matching HandlerException's documented default.
func defaultOnError(pkt packet.Payload, err error) {
	log.Error().Err(err).Str("event", pkt.EventName()).Msg("dispatch: handler error")
}

// defaultOnUnknownCase is every Protocol's OnUnknownCase until a caller
// overrides it: a no-op, so the packet is dropped silently.
func defaultOnUnknownCase(pkt packet.Payload) {}
