package packet

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestServerStoppedEmptySchema(t *testing.T) {
	p := &ServerStopped{}
	b, err := p.Encode(nil)
	require.NoError(t, err)
	require.Empty(t, b)

	decoded, err := Decode(TagServerStopped, nil, []byte{})
	require.NoError(t, err)
	require.IsType(t, &ServerStopped{}, decoded)
}

func TestPingRoundTrip(t *testing.T) {
	p := &Ping{ListNumber: 1, ClientVersion: "24  "}
	b, err := p.Encode(nil)
	require.NoError(t, err)
	require.Equal(t, []byte{0x01, 0, 0, 0, 0, '2', '4', ' ', ' '}, b)

	decoded := &Ping{}
	require.NoError(t, decoded.Decode(nil, b))
	require.Equal(t, "24  ", decoded.ClientVersion)
	require.Equal(t, uint8(1), decoded.ListNumber)
}

func TestSpectateRecordsRoundTrip(t *testing.T) {
	p := &Spectate{
		PacketType: 1,
		Records: &SpectateRecords{Records: []SpectateRecord{
			{IsOut: 0, ClientID: 3, SpectateTarget: -4},
			{IsOut: 1, ClientID: 4, SpectateTarget: -3},
		}},
	}
	b, err := p.Encode(nil)
	require.NoError(t, err)

	ctx := &Context{}
	decoded := &Spectate{}
	require.NoError(t, decoded.Decode(ctx, b))
	require.Equal(t, uint8(1), ctx.SpectatePacketType)
	require.IsType(t, &SpectateRecords{}, decoded.Selected)
	require.Equal(t, p.Records.Records, decoded.Records.Records)

	reencoded, err := decoded.Encode(ctx)
	require.NoError(t, err)
	require.Equal(t, b, reencoded)
}

func TestSpectateRequestNormalization(t *testing.T) {
	p := &SpectateRequest{Spectating: 7}
	b, err := p.Encode(nil)
	require.NoError(t, err)
	require.Equal(t, []byte{20 + 1}, b)
}

func TestLatencyShift(t *testing.T) {
	p := &Latency{ClientID: 9, Value: 42}
	b, err := p.Encode(nil)
	require.NoError(t, err)

	decoded := &Latency{}
	require.NoError(t, decoded.Decode(nil, b))
	require.Equal(t, uint8(42), decoded.Value)
	require.Equal(t, int32(9), decoded.ClientID)
}

func TestDownloadingFileAbstractDispatch(t *testing.T) {
	init := &DownloadingFile{Init: &DownloadingFileInit{FileName: "level.j2l", FileSize: 1024, CRC32: 0xDEADBEEF}}
	ctxInit := &Context{IsDownloading: false}
	b, err := init.Encode(ctxInit)
	require.NoError(t, err)

	decoded := &DownloadingFile{}
	require.NoError(t, decoded.Decode(ctxInit, b))
	require.IsType(t, &DownloadingFileInit{}, decoded.Selected)
	require.Equal(t, "level.j2l", decoded.Init.FileName)

	data := &DownloadingFile{Data: &DownloadingFileData{ChunkIndex: 3, Data: []byte{1, 2, 3}}}
	ctxData := &Context{IsDownloading: true}
	b2, err := data.Encode(ctxData)
	require.NoError(t, err)

	decoded2 := &DownloadingFile{}
	require.NoError(t, decoded2.Decode(ctxData, b2))
	require.IsType(t, &DownloadingFileData{}, decoded2.Selected)
	require.Equal(t, uint16(3), decoded2.Data.ChunkIndex)
}

func TestPlusAcknowledgementDispatch(t *testing.T) {
	details := &PlusAcknowledgement{Details: &PlusDetails{Unknown: 1, Health: 100, Flags: PlusDetailsFlags{IsAdmin: true}}}
	ctx := &Context{FromServer: true}
	b, err := details.Encode(ctx)
	require.NoError(t, err)

	decoded := &PlusAcknowledgement{}
	require.NoError(t, decoded.Decode(ctx, b))
	require.IsType(t, &PlusDetails{}, decoded.Selected)
	require.True(t, decoded.Details.Flags.IsAdmin)
	require.False(t, decoded.Details.Flags.HasForward)
}

func TestChatMessageRoundTrip(t *testing.T) {
	p := &ChatMessage{ClientID: 2, Team: 1, Message: "gl hf"}
	b, err := p.Encode(nil)
	require.NoError(t, err)

	decoded := &ChatMessage{}
	require.NoError(t, decoded.Decode(nil, b))
	require.Equal(t, "gl hf", decoded.Message)
}

func TestUnknownTagDecodeFails(t *testing.T) {
	_, err := Decode(Tag(0x99), nil, []byte{})
	require.Error(t, err)
}

func TestResourceListRoundTrip(t *testing.T) {
	p := &ResourceList{
		LevelChallenge: [4]byte{1, 2, 3, 4},
		Entries: []ResourceEntry{
			{Name: "tileset.j2t", CRC32: 0x1},
			{Name: "level.j2l", CRC32: 0x2},
		},
	}
	b, err := p.Encode(nil)
	require.NoError(t, err)

	decoded := &ResourceList{}
	require.NoError(t, decoded.Decode(nil, b))
	require.Equal(t, p.Entries, decoded.Entries)
	require.Equal(t, p.LevelChallenge, decoded.LevelChallenge)
}

func TestServerDetailsWithoutExtrasHasNoDiscriminantByte(t *testing.T) {
	p := &ServerDetails{ClientID: 1, MaxPlayers: 16, TotalPlayers: 3, ServerName: "Carrotus"}
	b, err := p.Encode(nil)
	require.NoError(t, err)

	decoded := &ServerDetails{}
	require.NoError(t, decoded.Decode(nil, b))
	require.False(t, decoded.HasExtras)
	require.Equal(t, p.ServerName, decoded.ServerName)
}

func TestServerDetailsWithExtrasRoundTrip(t *testing.T) {
	p := &ServerDetails{
		ClientID: 1, MaxPlayers: 16, TotalPlayers: 3, ServerName: "Carrotus",
		HasExtras: true,
		Extras: ServerDetailsExtras{
			LevelChallenge:   [4]byte{1, 2, 3, 4},
			HeartbeatCookie:  [4]byte{5, 6, 7, 8},
			PlusVersionMajor: 1,
			PlusVersionMinor: 7,
			Music:            MusicInfo{Present: true, Name: "boss.j2b"},
		},
	}
	b, err := p.Encode(nil)
	require.NoError(t, err)

	decoded := &ServerDetails{}
	require.NoError(t, decoded.Decode(nil, b))
	require.True(t, decoded.HasExtras)
	require.Equal(t, p.Extras, decoded.Extras)
}

func TestSerializationCacheInvalidation(t *testing.T) {
	p := &ChatMessage{ClientID: 1, Team: 0, Message: "hi"}
	b1, err := p.Encode(nil)
	require.NoError(t, err)

	p.Message = "bye"
	b2, err := p.Encode(nil)
	require.NoError(t, err)
	require.Equal(t, b1, b2, "Encode does not see the mutation without Invalidate")

	p.Invalidate()
	b3, err := p.Encode(nil)
	require.NoError(t, err)
	require.NotEqual(t, b1, b3)
}
