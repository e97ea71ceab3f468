package packet

// Tag catalog. TCP packets first, then UDP.
const (
	TagClientDisconnect     Tag = 0x0D
	TagClientDetails        Tag = 0x0E
	TagJoinRequest          Tag = 0x0F
	TagServerDetails        Tag = 0x10
	TagPlayerList           Tag = 0x12
	TagGameInit             Tag = 0x13
	TagDownloadingFile      Tag = 0x14 // abstract
	TagDownloadRequest      Tag = 0x15
	TagLevelLoad            Tag = 0x16
	TagEndOfLevel           Tag = 0x17
	TagUpdateEvents         Tag = 0x18
	TagServerStopped        Tag = 0x19
	TagUpdateRequest        Tag = 0x1A
	TagChatMessage          Tag = 0x1B
	TagPlusAcknowledgement  Tag = 0x3F // abstract
	TagConsoleMessage       Tag = 0x40
	TagSpectate             Tag = 0x41 // abstract
	TagSpectateRequest      Tag = 0x42
	TagGameState            Tag = 0x45
	TagLatency              Tag = 0x49
	TagReady                Tag = 0x51
	TagResourceList         Tag = 0x5A

	TagPing       Tag = 0x03
	TagPong       Tag = 0x04
	TagQuery      Tag = 0x05
	TagQueryReply Tag = 0x06
	TagGameEvent  Tag = 0x07
	TagHeartbeat  Tag = 0x09
)
