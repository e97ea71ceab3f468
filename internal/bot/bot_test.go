package bot

import (
	"testing"

	"github.com/stretchr/testify/require"

	"jj2client/internal/packet"
	"jj2client/internal/session"
)

func TestRootMirrorsServerDetailsIntoSession(t *testing.T) {
	sess := session.New()
	root := BuildRoot(sess, nil)
	root.Configure(nil)

	root.Dispatch(&packet.Context{}, &packet.ServerDetails{
		ClientID:   7,
		ServerName: "Carrotus",
		HasExtras:  true,
		Extras: packet.ServerDetailsExtras{
			LevelChallenge:  [4]byte{1, 2, 3, 4},
			HeartbeatCookie: [4]byte{5, 6, 7, 8},
		},
	})

	require.Equal(t, int32(7), sess.ClientID)
	require.Equal(t, [4]byte{1, 2, 3, 4}, sess.LevelChallenge)
	require.Equal(t, [4]byte{5, 6, 7, 8}, sess.HeartbeatCookie)
	require.Equal(t, "Carrotus", sess.ServerProperties["name"])
}

func TestRootDisconnectsOnClientIDMinusOne(t *testing.T) {
	sess := session.New()
	var disconnected bool
	root := BuildRoot(sess, func() { disconnected = true })
	root.Configure(nil)

	root.Dispatch(&packet.Context{}, &packet.ClientDisconnect{ClientID: -1})
	require.True(t, disconnected)

	disconnected = false
	root.Dispatch(&packet.Context{}, &packet.ClientDisconnect{ClientID: 3})
	require.False(t, disconnected)
}

func TestBotRepliesToServerDetails(t *testing.T) {
	sess := session.New()
	sess.LocalPlayers = []string{"Spaz"}
	root := BuildRoot(sess, nil)
	botProto := BuildBot(root, sess)

	var submitted []packet.Payload
	root.SetSubmitter(func(p packet.Payload) error {
		submitted = append(submitted, p)
		return nil
	})
	root.Configure(map[string]any{"bot": true})

	root.Dispatch(&packet.Context{}, &packet.ServerDetails{ClientID: 1})

	require.Len(t, submitted, 2)
	require.IsType(t, &packet.Heartbeat{}, submitted[0])
	require.IsType(t, &packet.PlusAcknowledgement{}, submitted[1])
	_ = botProto
}

func TestBotIgnoredWhenDisabled(t *testing.T) {
	sess := session.New()
	root := BuildRoot(sess, nil)
	BuildBot(root, sess)

	var submitted []packet.Payload
	root.SetSubmitter(func(p packet.Payload) error {
		submitted = append(submitted, p)
		return nil
	})
	root.Configure(nil) // "bot" absent

	root.Dispatch(&packet.Context{}, &packet.ServerDetails{ClientID: 1})
	require.Empty(t, submitted)
}

func TestBotIntroducesOnceOnPlusDetails(t *testing.T) {
	sess := session.New()
	sess.LocalPlayers = []string{"Spaz"}
	root := BuildRoot(sess, nil)
	BuildBot(root, sess)

	var submitted []packet.Payload
	root.SetSubmitter(func(p packet.Payload) error {
		submitted = append(submitted, p)
		return nil
	})
	root.Configure(map[string]any{"bot": true})

	pa := &packet.PlusAcknowledgement{Details: &packet.PlusDetails{}}
	root.Dispatch(&packet.Context{}, pa)
	root.Dispatch(&packet.Context{}, pa)

	require.True(t, sess.Introduced)
	require.Len(t, submitted, 1, "ClientDetails is sent only once, on first introduction")
	require.IsType(t, &packet.ClientDetails{}, submitted[0])
}
