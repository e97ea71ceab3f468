package packet

import (
	"fmt"

	"jj2client/internal/codec"
	"jj2client/internal/wire"
)

// DownloadingFileInit is DownloadingFile's sub-variant for the first chunk
// of a transfer: it carries the file's name, full size and checksum.
type DownloadingFileInit struct {
	Cache
	FileName string
	FileSize uint32
	CRC32    uint32
}

func (p *DownloadingFileInit) Tag() Tag             { return TagDownloadingFile }
func (p *DownloadingFileInit) Transport() Transport { return TCP }
func (p *DownloadingFileInit) EventName() string    { return "downloading_file_init" }

func (p *DownloadingFileInit) Encode(ctx *Context) ([]byte, error) {
	w := wire.NewWriter()
	if err := w.PString(p.FileName); err != nil {
		return nil, codec.NewEncodeError(p.EventName(), err)
	}
	w.U32(p.FileSize)
	w.U32(p.CRC32)
	b := w.Bytes()
	p.SetSerialized(b)
	return b, nil
}

func (p *DownloadingFileInit) Decode(ctx *Context, b []byte) error {
	r := wire.NewReader(b)
	var err error
	if p.FileName, err = r.PString(); err != nil {
		return codec.NewDecodeError(p.EventName(), err)
	}
	if p.FileSize, err = r.U32(); err != nil {
		return codec.NewDecodeError(p.EventName(), err)
	}
	if p.CRC32, err = r.U32(); err != nil {
		return codec.NewDecodeError(p.EventName(), err)
	}
	p.SetDeserializedFrom(b)
	return nil
}

// DownloadingFileData is DownloadingFile's sub-variant for every chunk
// after the first: a sequence index and the raw chunk bytes.
type DownloadingFileData struct {
	Cache
	ChunkIndex uint16
	Data       []byte
}

func (p *DownloadingFileData) Tag() Tag             { return TagDownloadingFile }
func (p *DownloadingFileData) Transport() Transport { return TCP }
func (p *DownloadingFileData) EventName() string    { return "downloading_file_data" }

func (p *DownloadingFileData) Encode(ctx *Context) ([]byte, error) {
	w := wire.NewWriter()
	w.U16(p.ChunkIndex)
	w.Array(p.Data)
	b := w.Bytes()
	p.SetSerialized(b)
	return b, nil
}

func (p *DownloadingFileData) Decode(ctx *Context, b []byte) error {
	r := wire.NewReader(b)
	var err error
	if p.ChunkIndex, err = r.U16(); err != nil {
		return codec.NewDecodeError(p.EventName(), err)
	}
	p.Data = r.GreedyBytes()
	p.SetDeserializedFrom(b)
	return nil
}

// DownloadingFile is the abstract packet at tag 0x14. Its sub-variant is
// chosen purely from Context.IsDownloading — the first chunk of a transfer
// always carries the file name: false picks the init/name chunk, true
// picks a data chunk.
type DownloadingFile struct {
	AbstractPayload
	Init *DownloadingFileInit
	Data *DownloadingFileData
}

func (p *DownloadingFile) Tag() Tag             { return TagDownloadingFile }
func (p *DownloadingFile) Transport() Transport { return TCP }
func (p *DownloadingFile) EventName() string    { return "downloading_file" }

func (p *DownloadingFile) pick(ctx *Context) (Payload, error) {
	if ctx == nil {
		return nil, fmt.Errorf("downloading_file: requires a context to pick a sub-variant")
	}
	if ctx.IsDownloading {
		if p.Data == nil {
			p.Data = &DownloadingFileData{}
		}
		return p.Data, nil
	}
	if p.Init == nil {
		p.Init = &DownloadingFileInit{}
	}
	return p.Init, nil
}

func (p *DownloadingFile) Encode(ctx *Context) ([]byte, error) {
	sub, err := p.pick(ctx)
	if err != nil {
		return nil, codec.NewEncodeError(p.EventName(), err)
	}
	b, err := sub.Encode(ctx)
	if err != nil {
		return nil, err
	}
	p.Selected = sub
	p.SetSerialized(b)
	return b, nil
}

func (p *DownloadingFile) Decode(ctx *Context, b []byte) error {
	sub, err := p.pick(ctx)
	if err != nil {
		return codec.NewDecodeError(p.EventName(), err)
	}
	if err := sub.Decode(ctx, b); err != nil {
		return err
	}
	p.Selected = sub
	p.SetDeserializedFrom(b)
	return nil
}

func init() {
	Register(TagDownloadingFile, func() Payload { return &DownloadingFile{} })
}
