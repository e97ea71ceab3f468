package packet

// AbstractPayload is embedded by every abstract packet class (Spectate,
// DownloadingFile, PlusAcknowledgement). It holds the resolved sub-variant
// and the outer packet's Cache; it has no logic of its own, and each
// abstract class implements its own pick, Encode and Decode. Encoding
// DownloadingFile or PlusAcknowledgement yields exactly the bytes its
// selected sub-variant encodes; Spectate writes its packet_type byte
// first. Decoding stores the sub-variant's raw bytes on the sub-variant's
// own Cache.
type AbstractPayload struct {
	Cache
	Selected Payload
}
