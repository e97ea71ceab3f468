package dispatch

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"jj2client/internal/packet"
)

func TestHandlerPriorityAndPreviousValue(t *testing.T) {
	b := NewBuilder()
	b.Register(packet.TagChatMessage, "chat_message", Always())

	var order []string
	b.Handle(packet.TagChatMessage, Urgent, Always(), func(ctx *packet.Context, p *Protocol, pkt packet.Payload, previous any) (any, error) {
		order = append(order, "urgent")
		return "URGENT", nil
	})
	b.Handle(packet.TagChatMessage, Normal, Always(), func(ctx *packet.Context, p *Protocol, pkt packet.Payload, previous any) (any, error) {
		order = append(order, "normal")
		return "NORMAL", nil
	})
	var daemonFirstPrevious any
	b.Handle(packet.TagChatMessage, Daemon, Always(), func(ctx *packet.Context, p *Protocol, pkt packet.Payload, previous any) (any, error) {
		order = append(order, "daemon-first")
		daemonFirstPrevious = previous
		return "DAEMON", nil
	})
	var daemonSecondPrevious any
	b.Handle(packet.TagChatMessage, Daemon, Always(), func(ctx *packet.Context, p *Protocol, pkt packet.Payload, previous any) (any, error) {
		order = append(order, "daemon-second")
		daemonSecondPrevious = previous
		return nil, nil
	})

	proto := b.Build()
	proto.Configure(nil)

	proto.Dispatch(nil, &packet.ChatMessage{Message: "hi"})

	require.Equal(t, []string{"urgent", "normal", "daemon-first", "daemon-second"}, order)
	require.Equal(t, "NORMAL", daemonFirstPrevious)
	require.Equal(t, "NORMAL", daemonSecondPrevious, "a same-tier sibling's return never overwrites previous, only a strictly higher tier's does")
}

func TestRegistrationGateFiltersUnsupportedTag(t *testing.T) {
	b := NewBuilder()
	b.Register(packet.TagChatMessage, "chat_message", Configured("chat", nil))

	var called bool
	b.Handle(packet.TagChatMessage, Normal, Always(), func(ctx *packet.Context, p *Protocol, pkt packet.Payload, previous any) (any, error) {
		called = true
		return nil, nil
	})

	proto := b.Build()
	proto.Configure(map[string]any{}) // "chat" absent: gate fails
	proto.Dispatch(nil, &packet.ChatMessage{})
	require.False(t, called)

	proto.Configure(map[string]any{"chat": true})
	proto.Dispatch(nil, &packet.ChatMessage{})
	require.True(t, called)
}

func TestAllPayloadsAbortSetsAborted(t *testing.T) {
	b := NewBuilder()
	b.Register(packet.ALLPayloads, "", Configured("enabled", nil))
	b.Register(packet.TagPing, "ping", Always())

	var called bool
	b.Handle(packet.TagPing, Normal, Always(), func(ctx *packet.Context, p *Protocol, pkt packet.Payload, previous any) (any, error) {
		called = true
		return nil, nil
	})

	proto := b.Build()
	proto.Configure(map[string]any{}) // ALL_PAYLOADS gate fails -> aborted
	proto.Dispatch(nil, &packet.Ping{})
	require.False(t, called, "an aborted protocol drops every packet silently")
}

func TestHandlerErrorContinuesWithPreviousValue(t *testing.T) {
	b := NewBuilder()
	b.Register(packet.TagPing, "ping", Always())
	b.Handle(packet.TagPing, Urgent, Always(), func(ctx *packet.Context, p *Protocol, pkt packet.Payload, previous any) (any, error) {
		return "seed", nil
	})
	b.Handle(packet.TagPing, Normal, Always(), func(ctx *packet.Context, p *Protocol, pkt packet.Payload, previous any) (any, error) {
		return nil, fmt.Errorf("boom")
	})
	var finalValue any
	b.Handle(packet.TagPing, Daemon, Always(), func(ctx *packet.Context, p *Protocol, pkt packet.Payload, previous any) (any, error) {
		finalValue = previous
		return nil, nil
	})

	proto := b.Build()
	var reportedErr error
	proto.OnError = func(pkt packet.Payload, err error) { reportedErr = err }
	proto.Configure(nil)
	proto.Dispatch(nil, &packet.Ping{})

	require.Error(t, reportedErr)
	require.Equal(t, "seed", finalValue)
}

func TestChildProtocolInheritsRegistryAndDispatchesIndependently(t *testing.T) {
	rootBuilder := NewBuilder()
	rootBuilder.Register(packet.TagHeartbeat, "heartbeat", Always())
	root := rootBuilder.Build()

	childBuilder := NewBuilder().Extends(root)
	var childCalled bool
	childBuilder.Handle(packet.TagHeartbeat, Important, Always(), func(ctx *packet.Context, p *Protocol, pkt packet.Payload, previous any) (any, error) {
		childCalled = true
		return nil, nil
	})
	childBuilder.Build()

	root.Configure(nil) // instantiating children happens before configure in this test, so configure must run after Build
	root.Dispatch(nil, &packet.Heartbeat{})
	require.True(t, childCalled)
}
