package bot

import (
	"jj2client/internal/dispatch"
	"jj2client/internal/packet"
	"jj2client/internal/session"
)

// BuildBot constructs the default bot sub-protocol as a child of root,
// active only while the merged config's "bot" key is enabled.
func BuildBot(root *dispatch.Protocol, sess *session.Session) *dispatch.Protocol {
	b := dispatch.NewBuilder().Extends(root)
	gate := dispatch.Configured("bot", nil)

	b.Handle(packet.TagServerDetails, dispatch.Important, gate, func(_ *packet.Context, p *dispatch.Protocol, _ packet.Payload, _ any) (any, error) {
		if err := p.Submit(&packet.Heartbeat{Latency: 0, Cookie: sess.HeartbeatCookie}); err != nil {
			return nil, err
		}
		return nil, p.Submit(&packet.PlusAcknowledgement{Request: &packet.PlusRequest{}})
	})

	echoHeartbeat := func(_ *packet.Context, p *dispatch.Protocol, _ packet.Payload, _ any) (any, error) {
		return nil, p.Submit(&packet.Heartbeat{Latency: sess.HeartbeatLatency, Cookie: sess.HeartbeatCookie})
	}
	b.Handle(packet.TagHeartbeat, dispatch.Important, gate, echoHeartbeat)
	b.Handle(packet.TagResourceList, dispatch.Important, gate, echoHeartbeat)

	b.Handle(packet.TagPlusAcknowledgement, dispatch.Important, gate, func(_ *packet.Context, p *dispatch.Protocol, pkt packet.Payload, _ any) (any, error) {
		pa := pkt.(*packet.PlusAcknowledgement)
		if pa.Details == nil { // only the server-originated sub-variant introduces the client
			return nil, nil
		}
		if sess.Introduced {
			return nil, nil
		}
		players := make([]packet.PlayerDescriptor, len(sess.LocalPlayers))
		for i, name := range sess.LocalPlayers {
			players[i] = packet.PlayerDescriptor{Name: name}
		}
		details := &packet.ClientDetails{PlayerName: firstOr(sess.LocalPlayers, "Jazz"), Players: players}
		if err := p.Submit(details); err != nil {
			return nil, err
		}
		sess.Introduced = true
		return nil, nil
	})

	requestUpdate := func(_ *packet.Context, p *dispatch.Protocol, _ packet.Payload, _ any) (any, error) {
		return nil, p.Submit(&packet.UpdateRequest{LevelChallenge: sess.LevelChallenge})
	}
	b.Handle(packet.TagLevelLoad, dispatch.Important, gate, requestUpdate)
	b.Handle(packet.TagReady, dispatch.Important, gate, requestUpdate)
	b.Handle(packet.TagGameInit, dispatch.Important, gate, requestUpdate)

	return b.Build()
}

func firstOr(names []string, fallback string) string {
	if len(names) == 0 {
		return fallback
	}
	return names[0]
}
