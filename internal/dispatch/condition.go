package dispatch

import "jj2client/internal/packet"

// Condition is a predicate over (protocol, optional packet), composable by
// AND/OR. PacketDependent conditions built with Has may only be attached to
// handler registrations, never to packet-class registrations, since a
// registration gate runs once at configure() time with no packet in hand.
type Condition struct {
	eval            func(p *Protocol, pkt packet.Payload) bool
	packetDependent bool
}

// Configured builds a registration-safe condition that inspects the
// protocol's merged config. A nil value checks truthy presence — i.e.
// presence means the feature is enabled, e.g. `chat`, `bot` — a non-nil
// value requires an exact match.
func Configured(key string, value any) Condition {
	return Condition{eval: func(p *Protocol, _ packet.Payload) bool {
		v, ok := p.config[key]
		if !ok {
			return false
		}
		if value == nil {
			b, isBool := v.(bool)
			return !isBool || b
		}
		return v == value
	}}
}

// Has builds a packet-dependent condition; it can only be used to gate a
// handler, never a packet-class registration.
func Has(pred func(pkt packet.Payload) bool) Condition {
	return Condition{
		eval:            func(_ *Protocol, pkt packet.Payload) bool { return pkt != nil && pred(pkt) },
		packetDependent: true,
	}
}

// Always is the trivially-true condition, used when no gate is needed.
func Always() Condition {
	return Condition{eval: func(*Protocol, packet.Payload) bool { return true }}
}

// And composes two conditions, short-circuiting.
func (c Condition) And(other Condition) Condition {
	return Condition{
		eval:            func(p *Protocol, pkt packet.Payload) bool { return c.eval(p, pkt) && other.eval(p, pkt) },
		packetDependent: c.packetDependent || other.packetDependent,
	}
}

// Or composes two conditions, short-circuiting.
func (c Condition) Or(other Condition) Condition {
	return Condition{
		eval:            func(p *Protocol, pkt packet.Payload) bool { return c.eval(p, pkt) || other.eval(p, pkt) },
		packetDependent: c.packetDependent || other.packetDependent,
	}
}

func (c Condition) evaluate(p *Protocol, pkt packet.Payload) bool {
	if c.eval == nil {
		return true
	}
	return c.eval(p, pkt)
}
