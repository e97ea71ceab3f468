// Package dispatch implements the registration/dispatch engine: a
// priority-ordered, condition-gated handler pipeline configurable at build
// time (via Builder) and filterable at runtime by session configuration
// (via Protocol.Configure).
package dispatch

import (
	"container/heap"
	"fmt"

	"jj2client/internal/packet"
)

// HandlerFunc is the single uniform handler signature: previous is the
// most recent non-nil value returned by a strictly higher-priority handler
// for the same packet, starting at a nil sentinel. An error return is
// handler-local — it is
// reported to OnError and never aborts the pipeline or propagates out of
// Dispatch.
type HandlerFunc func(ctx *packet.Context, p *Protocol, pkt packet.Payload, previous any) (any, error)

type handlerRecord struct {
	condition Condition
	priority  Priority
	handler   HandlerFunc
	seq       int
}

// handlerHeap pops the highest priority first; among equal priorities, the
// lowest seq (earliest registered) pops first, so ties resolve FIFO by
// registration order.
type handlerHeap []*handlerRecord

func (h handlerHeap) Len() int { return len(h) }
func (h handlerHeap) Less(i, j int) bool {
	if h[i].priority != h[j].priority {
		return h[i].priority > h[j].priority
	}
	return h[i].seq < h[j].seq
}
func (h handlerHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *handlerHeap) Push(x any)         { *h = append(*h, x.(*handlerRecord)) }
func (h *handlerHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// Protocol is a built, runnable dispatcher: a registry of supported packet
// classes, their gated handlers, and any child sub-protocols bound via
// Builder.Extends. The root protocol in this client is the engine dispatch
// bridge; internal/bot builds a child extending it.
type Protocol struct {
	registry map[packet.Tag]Condition
	handlers map[packet.Tag][]*handlerRecord
	lookup   map[string]packet.Tag
	children []*Protocol
	parent   *Protocol

	config    map[string]any
	supported map[packet.Tag]bool
	aborted   bool
	nextSeq   int

	submitter func(pkt packet.Payload) error

	// OnUnknownCase is invoked when a packet's tag is not currently
	// supported on this protocol. Defaults to a no-op.
	OnUnknownCase func(pkt packet.Payload)
	// OnError is invoked when a handler returns a non-nil error. The
	// pipeline continues with the unchanged previous value regardless.
	OnError func(pkt packet.Payload, err error)
}

// Submit hands pkt to the transport, deferring to the root protocol when
// this one is a child — children share the transport with their root.
func (p *Protocol) Submit(pkt packet.Payload) error {
	if p.parent != nil {
		return p.parent.Submit(pkt)
	}
	if p.submitter == nil {
		return fmt.Errorf("dispatch: protocol has no submitter bound")
	}
	return p.submitter(pkt)
}

// SetSubmitter binds the outbound path; called once by the transport
// driver when it constructs the root protocol.
func (p *Protocol) SetSubmitter(f func(pkt packet.Payload) error) {
	p.submitter = f
}

// Configure merges config into the protocol's own config, re-evaluates
// every registration gate, and recursively configures every child with
// the same merged config.
func (p *Protocol) Configure(config map[string]any) {
	if p.config == nil {
		p.config = map[string]any{}
	}
	for k, v := range config {
		p.config[k] = v
	}
	p.supported = map[packet.Tag]bool{}
	p.aborted = false
	for tag, cond := range p.registry {
		if tag == packet.ALLPayloads {
			if !cond.evaluate(p, nil) {
				p.aborted = true
			}
			continue
		}
		p.supported[tag] = cond.evaluate(p, nil)
	}
	for _, child := range p.children {
		child.Configure(config)
	}
}

// Dispatch routes a decoded packet through the handler pipeline: it
// collects handlers registered for pkt.Tag() and for packet.ALLPayloads,
// evaluates their (possibly packet-dependent) conditions, and runs the
// survivors in strict priority order, threading the previous handler's
// return value from tier to tier.
func (p *Protocol) Dispatch(ctx *packet.Context, pkt packet.Payload) {
	if p.aborted {
		return
	}
	tag := pkt.Tag()
	if !p.supported[tag] {
		if p.OnUnknownCase != nil {
			p.OnUnknownCase(pkt)
		}
		return
	}

	h := &handlerHeap{}
	heap.Init(h)
	for _, rec := range p.handlers[tag] {
		if rec.condition.evaluate(p, pkt) {
			heap.Push(h, rec)
		}
	}
	for _, rec := range p.handlers[packet.ALLPayloads] {
		if rec.condition.evaluate(p, pkt) {
			heap.Push(h, rec)
		}
	}

	// previous is frozen for an entire priority tier: every handler at the
	// same priority sees the latest non-nil value produced by the strictly
	// higher tiers, never a same-tier sibling's return — e.g. a second
	// DAEMON handler reads the NORMAL tier's output, not the first
	// DAEMON handler's. A nil return leaves the carried value unchanged.
	var previous, tierOutput any
	var currentPriority Priority
	started := false
	for h.Len() > 0 {
		rec := heap.Pop(h).(*handlerRecord)
		if !started || rec.priority != currentPriority {
			if started {
				previous = tierOutput
			}
			currentPriority = rec.priority
			tierOutput = previous
			started = true
		}
		value, err := rec.handler(ctx, p, pkt, previous)
		if err != nil {
			if p.OnError != nil {
				p.OnError(pkt, err)
			}
			continue
		}
		if value != nil {
			tierOutput = value
		}
	}

	for _, child := range p.children {
		child.Dispatch(ctx, pkt)
	}
}

// TagByEventName resolves a human-readable event name to its packet tag,
// for callers that want to target a handler by name rather than type.
func (p *Protocol) TagByEventName(name string) (packet.Tag, bool) {
	tag, ok := p.lookup[name]
	return tag, ok
}
