package record

import (
	"github.com/dyuri/emfconv/internal/binary"
	"github.com/dyuri/emfconv/internal/model"
)

// Header layout generations, identified by how many fixed bytes precede the
// description (or end the record when there is none)
const (
	headerBaseSize  = 88  // through szlMillimeters
	headerExt1Size  = 100 // adds the pixel format fields and bOpenGL
	HeaderFixedSize = 108 // adds szlMicrometers; always written
)

// Header is the first record of every metafile (EMR_HEADER)
type Header struct {
	Bounds      model.Rect // inclusive device-space bounds of everything drawn
	Frame       model.Rect // picture frame in 0.01 mm units
	Signature   uint32
	Version     uint32
	Bytes       uint32 // total metafile size
	Records     uint32 // total record count
	Handles     uint16 // size of the handle table, slot 0 included
	Reserved    uint16
	PalEntries  uint32
	Device      model.Size // reference device size in pixels
	Millimeters model.Size // reference device size in millimeters
	Micrometers model.Size
	OpenGL      uint32
	Description []uint16 // "app\0title\0\0" or empty
}

// NewHeader creates a header whose counters already account for itself
func NewHeader(bounds, frame model.Rect, device, millimeters model.Size, description []uint16) *Header {
	h := &Header{
		Bounds:      bounds,
		Frame:       frame,
		Signature:   model.Signature,
		Version:     model.Version,
		Handles:     1,
		Device:      device,
		Millimeters: millimeters,
		Micrometers: model.Size{CX: millimeters.CX * 1000, CY: millimeters.CY * 1000},
		Description: description,
	}
	h.Bytes = h.Size()
	h.Records = 1
	return h
}

func (h *Header) Type() model.RecordType { return model.RecHeader }

func (h *Header) Size() uint32 {
	return model.RoundToLong(HeaderFixedSize + 2*uint32(len(h.Description)))
}

// DescriptionOffset is the offset of the description, or 0 without one
func (h *Header) DescriptionOffset() uint32 {
	if len(h.Description) == 0 {
		return 0
	}
	return HeaderFixedSize
}

func (h *Header) Encode(w *binary.Writer) error {
	header(w, h)
	w.Rect(h.Bounds)
	w.Rect(h.Frame)
	w.Uint32(h.Signature)
	w.Uint32(h.Version)
	w.Uint32(h.Bytes)
	w.Uint32(h.Records)
	w.Uint16(h.Handles)
	w.Uint16(h.Reserved)
	w.Uint32(uint32(len(h.Description)))
	w.Uint32(h.DescriptionOffset())
	w.Uint32(h.PalEntries)
	w.Size(h.Device)
	w.Size(h.Millimeters)
	w.Uint32(0) // cbPixelFormat
	w.Uint32(0) // offPixelFormat
	w.Uint32(h.OpenGL)
	w.Size(h.Micrometers)
	w.Wide(h.Description)
	w.Pad(int(h.Size() - HeaderFixedSize - 2*uint32(len(h.Description))))
	return w.Err()
}

// Replay does nothing; the player handles the header itself
func (h *Header) Replay(*Playback, Surface) error { return nil }

// decodeHeader reads any header generation. The fixed part ends at the
// description offset when there is one, else at the record end; fields past
// that point are absent and take their defaults.
func decodeHeader(r *binary.Reader, f Frame) (Record, error) {
	if err := needSize(f, headerBaseSize); err != nil {
		return nil, err
	}
	h := &Header{}
	h.Bounds = r.Rect()
	h.Frame = r.Rect()
	h.Signature = r.Uint32()
	h.Version = r.Uint32()
	h.Bytes = r.Uint32()
	h.Records = r.Uint32()
	h.Handles = r.Uint16()
	h.Reserved = r.Uint16()
	nDesc := r.Uint32()
	offDesc := r.Uint32()
	h.PalEntries = r.Uint32()
	h.Device = r.Size()
	h.Millimeters = r.Size()

	if h.Signature != model.Signature {
		return nil, invalid(f.Type, "signature 0x%08x", h.Signature)
	}

	fixed := f.Size
	if offDesc != 0 && offDesc < fixed {
		fixed = offDesc
	}
	if fixed >= headerExt1Size {
		r.Uint32() // cbPixelFormat; pixel format descriptors are not kept
		r.Uint32() // offPixelFormat
		h.OpenGL = r.Uint32()
	}
	if fixed >= HeaderFixedSize {
		h.Micrometers = r.Size()
	} else {
		h.Micrometers = model.Size{CX: h.Millimeters.CX * 1000, CY: h.Millimeters.CY * 1000}
	}

	if nDesc > 0 {
		if offDesc < headerBaseSize {
			return nil, invalid(f.Type, "description offset %d inside fixed header", offDesc)
		}
		if uint64(offDesc)+2*uint64(nDesc) > uint64(f.Size) {
			return nil, invalid(f.Type, "description of %d chars at %d overruns length %d", nDesc, offDesc, f.Size)
		}
		r.Seek(int(offDesc))
		h.Description = r.Wide(int(nDesc))
	}
	return h, nil
}

// EOF is the last record of every metafile (EMR_EOF)
type EOF struct {
	Palette []model.PaletteEntry
}

const eofFixedSize = 20

func (e *EOF) Type() model.RecordType { return model.RecEOF }

func (e *EOF) Size() uint32 { return eofFixedSize + 4*uint32(len(e.Palette)) }

func (e *EOF) Encode(w *binary.Writer) error {
	header(w, e)
	w.Uint32(uint32(len(e.Palette)))
	if len(e.Palette) > 0 {
		w.Uint32(16)
	} else {
		w.Uint32(0)
	}
	for _, p := range e.Palette {
		w.PaletteEntry(p)
	}
	// nSizeLast repeats the record length so readers can walk backwards
	w.Uint32(e.Size())
	return w.Err()
}

// Replay does nothing; the player handles end of file itself
func (e *EOF) Replay(*Playback, Surface) error { return nil }

func decodeEOF(r *binary.Reader, f Frame) (Record, error) {
	if err := needSize(f, eofFixedSize); err != nil {
		return nil, err
	}
	n := r.Uint32()
	off := r.Uint32()
	e := &EOF{}
	if n > 0 {
		if off < 16 || uint64(off)+4*uint64(n) > uint64(f.Size)-4 {
			return nil, invalid(f.Type, "%d palette entries at %d overrun length %d", n, off, f.Size)
		}
		r.Seek(int(off))
		e.Palette = make([]model.PaletteEntry, n)
		for i := range e.Palette {
			e.Palette[i] = r.PaletteEntry()
		}
	}
	return e, nil
}

func init() {
	register(decodeHeader, model.RecHeader)
	register(decodeEOF, model.RecEOF)
}
