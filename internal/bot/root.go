// Package bot implements the root protocol's session-mirroring handlers
// and the default bot sub-protocol: a small set of IMPORTANT priority
// handlers that produce the minimum packet traffic required to remain
// connected as a spectator-style participant.
package bot

import (
	"math/rand"

	"jj2client/internal/dispatch"
	"jj2client/internal/packet"
	"jj2client/internal/session"
)

// allTags lists every packet class the root protocol accepts; every
// concrete and abstract class in the catalog is registered unconditionally.
// Callers needing a feature-gated subset build their own child protocol
// with narrower registrations.
var allTags = []packet.Tag{
	packet.TagClientDisconnect, packet.TagClientDetails, packet.TagJoinRequest,
	packet.TagServerDetails, packet.TagPlayerList, packet.TagGameInit,
	packet.TagDownloadingFile, packet.TagDownloadRequest, packet.TagLevelLoad,
	packet.TagEndOfLevel, packet.TagUpdateEvents, packet.TagServerStopped,
	packet.TagUpdateRequest, packet.TagChatMessage, packet.TagPlusAcknowledgement,
	packet.TagConsoleMessage, packet.TagSpectate, packet.TagSpectateRequest,
	packet.TagGameState, packet.TagLatency, packet.TagReady, packet.TagResourceList,
	packet.TagPing, packet.TagPong, packet.TagQuery, packet.TagQueryReply,
	packet.TagGameEvent, packet.TagHeartbeat,
}

// BuildRoot constructs the root protocol: registers every catalog tag and
// wires the URGENT-priority handlers that mirror incoming fields into the
// session. onDisconnect, if non-nil, is called synchronously from the
// dispatch goroutine when a ClientDisconnect arrives with client_id == -1.
func BuildRoot(sess *session.Session, onDisconnect func()) *dispatch.Protocol {
	b := dispatch.NewBuilder()
	for _, tag := range allTags {
		b.Register(tag, "", dispatch.Always())
	}

	b.Handle(packet.TagServerDetails, dispatch.Urgent, dispatch.Always(), func(_ *packet.Context, _ *dispatch.Protocol, pkt packet.Payload, _ any) (any, error) {
		sd := pkt.(*packet.ServerDetails)
		sess.ClientID = sd.ClientID
		if sd.HasExtras {
			sess.LevelChallenge = sd.Extras.LevelChallenge
			sess.HeartbeatCookie = sd.Extras.HeartbeatCookie
		}
		sess.ServerProperties["name"] = sd.ServerName
		sess.ServerProperties["max_players"] = sd.MaxPlayers
		sess.ServerProperties["total_players"] = sd.TotalPlayers
		return nil, nil
	})

	b.Handle(packet.TagResourceList, dispatch.Urgent, dispatch.Always(), func(_ *packet.Context, _ *dispatch.Protocol, pkt packet.Payload, _ any) (any, error) {
		rl := pkt.(*packet.ResourceList)
		sess.LevelChallenge = rl.LevelChallenge
		names := make([]string, len(rl.Entries))
		for i, e := range rl.Entries {
			names[i] = e.Name
		}
		sess.Extra["scripts"] = names
		return nil, nil
	})

	b.Handle(packet.TagLevelLoad, dispatch.Urgent, dispatch.Always(), func(_ *packet.Context, _ *dispatch.Protocol, pkt packet.Payload, _ any) (any, error) {
		ll := pkt.(*packet.LevelLoad)
		sess.LevelFileName = ll.LevelFileName
		sess.LevelChallenge = ll.LevelChallenge
		return nil, nil
	})

	b.Handle(packet.TagHeartbeat, dispatch.Urgent, dispatch.Always(), func(_ *packet.Context, _ *dispatch.Protocol, pkt packet.Payload, _ any) (any, error) {
		hb := pkt.(*packet.Heartbeat)
		low := int(sess.HeartbeatLatency) + 1
		high := int(sess.HeartbeatLatency) + 20
		next := low + rand.Intn(high-low+1)
		if next > 255 {
			next = 255
		}
		sess.HeartbeatLatency = uint8(next)
		sess.HeartbeatCookie = hb.Cookie
		return nil, nil
	})

	b.Handle(packet.TagClientDisconnect, dispatch.Urgent, dispatch.Always(), func(_ *packet.Context, _ *dispatch.Protocol, pkt packet.Payload, _ any) (any, error) {
		cd := pkt.(*packet.ClientDisconnect)
		if cd.ClientID == -1 && onDisconnect != nil {
			onDisconnect()
		}
		return nil, nil
	})

	return b.Build()
}
