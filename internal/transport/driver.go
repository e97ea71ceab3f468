// Package transport implements the dual TCP/UDP protocol driver: TCP
// length-prefix reassembly, UDP checksum verification, and the submit()
// path that routes outbound packets to whichever transport their packet
// class is annotated with.
package transport

import (
	"context"
	"fmt"
	"net"
	"sync"

	"github.com/rs/zerolog"

	"jj2client/internal/codec"
	"jj2client/internal/dispatch"
	"jj2client/internal/packet"
	"jj2client/internal/session"
)

// Driver owns both transport connections and the single-threaded read
// loops that feed decoded packets into the protocol dispatcher. It is the
// sole writer of the TCP reassembly buffer and the sole caller into
// Protocol.Dispatch: both read loops hand decoded packets to one unbuffered
// channel, drained by exactly one dispatch goroutine.
type Driver struct {
	tcpConn *net.TCPConn
	udpConn *net.UDPConn

	reassembler *Reassembler
	session     *session.Session
	protocol    *dispatch.Protocol
	log         zerolog.Logger

	inbound   chan inboundFrame
	shutdown  chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

type inboundFrame struct {
	tag       packet.Tag
	body      []byte
	transport packet.Transport
}

// Dial establishes parallel TCP and UDP connections to the same host/port
// and starts the reader and dispatch goroutines. proto must already have
// its registry and handlers built; Dial binds proto's submit path to this
// driver.
func Dial(host string, port int, sess *session.Session, proto *dispatch.Protocol, log zerolog.Logger) (*Driver, error) {
	addr := fmt.Sprintf("%s:%d", host, port)

	tcpAddr, err := net.ResolveTCPAddr("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("transport: resolve tcp %s: %w", addr, err)
	}
	tcpConn, err := net.DialTCP("tcp", nil, tcpAddr)
	if err != nil {
		return nil, fmt.Errorf("transport: dial tcp %s: %w", addr, err)
	}

	udpAddr, err := net.ResolveUDPAddr("udp", addr)
	if err != nil {
		tcpConn.Close()
		return nil, fmt.Errorf("transport: resolve udp %s: %w", addr, err)
	}
	udpConn, err := net.DialUDP("udp", nil, udpAddr)
	if err != nil {
		tcpConn.Close()
		return nil, fmt.Errorf("transport: dial udp %s: %w", addr, err)
	}

	d := &Driver{
		tcpConn:     tcpConn,
		udpConn:     udpConn,
		reassembler: NewReassembler(),
		session:     sess,
		protocol:    proto,
		log:         log,
		inbound:     make(chan inboundFrame),
		shutdown:    make(chan struct{}),
	}
	proto.SetSubmitter(d.submit)

	d.wg.Add(3)
	go d.readTCP()
	go d.readUDP()
	go d.dispatchLoop()

	return d, nil
}

func (d *Driver) newContext() *packet.Context {
	return &packet.Context{}
}

func (d *Driver) readTCP() {
	defer d.wg.Done()
	buf := make([]byte, 4096)
	for {
		n, err := d.tcpConn.Read(buf)
		if err != nil {
			select {
			case <-d.shutdown:
			default:
				d.log.Debug().Err(err).Msg("tcp read stopped")
			}
			return
		}
		for _, body := range d.reassembler.Feed(buf[:n]) {
			if len(body) == 0 {
				continue
			}
			select {
			case d.inbound <- inboundFrame{tag: packet.Tag(body[0]), body: body[1:], transport: packet.TCP}:
			case <-d.shutdown:
				return
			}
		}
	}
}

func (d *Driver) readUDP() {
	defer d.wg.Done()
	buf := make([]byte, 65535)
	for {
		n, err := d.udpConn.Read(buf)
		if err != nil {
			select {
			case <-d.shutdown:
			default:
				d.log.Debug().Err(err).Msg("udp read stopped")
			}
			return
		}
		body, ok := VerifyDatagram(buf[:n])
		if !ok {
			d.log.Debug().Msg("udp checksum mismatch, datagram dropped")
			continue
		}
		if len(body) == 0 {
			continue
		}
		select {
		case d.inbound <- inboundFrame{tag: packet.Tag(body[0]), body: body[1:], transport: packet.UDP}:
		case <-d.shutdown:
			return
		}
	}
}

// dispatchLoop is the sole goroutine that ever calls Protocol.Dispatch,
// and the sole mutator of the session. It never ranges over d.inbound —
// neither reader goroutine closes that channel, since both readTCP and
// readUDP can be mid-send on it and closing a channel out from under a
// pending send panics. d.shutdown is the only exit signal.
func (d *Driver) dispatchLoop() {
	defer d.wg.Done()
	ctx := d.newContext()
	ctx.FromServer = true // every inbound frame was sent by the server
	for {
		select {
		case frame := <-d.inbound:
			pkt, err := packet.Decode(frame.tag, ctx, frame.body)
			if err != nil {
				d.log.Debug().Err(err).Uint8("tag", uint8(frame.tag)).Str("transport", frame.transport.String()).Msg("decode failed, frame dropped")
				continue
			}
			d.protocol.Dispatch(ctx, pkt)
		case <-d.shutdown:
			return
		}
	}
}

// submit encodes pkt per its schema and writes it out whichever
// connection its Transport() annotation names.
func (d *Driver) submit(pkt packet.Payload) error {
	ctx := d.newContext()
	body, err := pkt.Encode(ctx)
	if err != nil {
		return codec.NewEncodeError(pkt.EventName(), err)
	}
	frame := make([]byte, 0, len(body)+1)
	frame = append(frame, byte(pkt.Tag()))
	frame = append(frame, body...)

	switch pkt.Transport() {
	case packet.TCP:
		_, err := d.tcpConn.Write(FrameTCP(frame))
		return err
	case packet.UDP:
		_, err := d.udpConn.Write(FrameDatagram(frame))
		return err
	default:
		return fmt.Errorf("transport: packet %s has no transport annotation", pkt.EventName())
	}
}

// Close tears down both connections without waiting for the reader and
// dispatch goroutines to exit. Safe to call from a handler running on the
// dispatch goroutine itself (e.g. the root protocol's ClientDisconnect
// mirroring handler) — unlike Shutdown, it never blocks on d.wg.
func (d *Driver) Close() {
	d.closeOnce.Do(func() {
		close(d.shutdown)
		d.tcpConn.Close()
		d.udpConn.Close()
	})
}

// Shutdown closes both connections and waits for the reader and dispatch
// goroutines to exit, honoring ctx's deadline if any.
func (d *Driver) Shutdown(ctx context.Context) error {
	d.Close()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Session returns the connection's session model.
func (d *Driver) Session() *session.Session { return d.session }
