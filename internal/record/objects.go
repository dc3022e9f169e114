package record

import (
	"github.com/dyuri/emfconv/internal/binary"
	"github.com/dyuri/emfconv/internal/model"
)

// bind maps a metafile handle to the surface object created for it
func bind(p *Playback, h model.Handle, target model.Handle, err error) error {
	if err != nil {
		return err
	}
	p.Bind(h, target)
	return nil
}

// CreatePen defines a cosmetic pen at a metafile handle (EMR_CREATEPEN)
type CreatePen struct {
	Handle model.Handle
	Pen    model.LogPen
}

func (r *CreatePen) Type() model.RecordType     { return model.RecCreatePen }
func (r *CreatePen) Size() uint32               { return 28 }
func (r *CreatePen) ObjectHandle() model.Handle { return r.Handle }

func (r *CreatePen) Encode(w *binary.Writer) error {
	header(w, r)
	w.Uint32(uint32(r.Handle))
	w.LogPen(r.Pen)
	return w.Err()
}

func (r *CreatePen) Replay(p *Playback, s Surface) error {
	h, err := s.CreatePen(r.Pen)
	return bind(p, r.Handle, h, err)
}

func decodeCreatePen(r *binary.Reader, f Frame) (Record, error) {
	if err := needSize(f, 28); err != nil {
		return nil, err
	}
	return &CreatePen{Handle: model.Handle(r.Uint32()), Pen: r.LogPen()}, nil
}

// extPenFixedSize covers the header, handle, the four bitmap fields and the
// EXTLOGPEN fields up to and including the style entry count
const extPenFixedSize = 52

// ExtCreatePen defines an extended pen (EMR_EXTCREATEPEN). Pattern pens
// carry their DIB header and bits as opaque bytes.
type ExtCreatePen struct {
	Handle     model.Handle
	Pen        model.ExtLogPen
	BitmapInfo []byte
	Bits       []byte
}

func (r *ExtCreatePen) Type() model.RecordType     { return model.RecExtCreatePen }
func (r *ExtCreatePen) ObjectHandle() model.Handle { return r.Handle }

func (r *ExtCreatePen) fixedEnd() uint32 {
	return extPenFixedSize + 4*uint32(len(r.Pen.StyleEntries))
}

func (r *ExtCreatePen) Size() uint32 {
	return r.fixedEnd() + model.RoundToLong(uint32(len(r.BitmapInfo))) + model.RoundToLong(uint32(len(r.Bits)))
}

func (r *ExtCreatePen) Encode(w *binary.Writer) error {
	header(w, r)
	w.Uint32(uint32(r.Handle))

	offBmi, offBits := r.Size(), r.Size()
	if len(r.BitmapInfo) > 0 {
		offBmi = r.fixedEnd()
	}
	if len(r.Bits) > 0 {
		offBits = r.fixedEnd() + model.RoundToLong(uint32(len(r.BitmapInfo)))
	}
	w.Uint32(offBmi)
	w.Uint32(uint32(len(r.BitmapInfo)))
	w.Uint32(offBits)
	w.Uint32(uint32(len(r.Bits)))
	w.ExtLogPen(r.Pen)

	w.Bytes(r.BitmapInfo)
	w.Pad(int(model.RoundToLong(uint32(len(r.BitmapInfo)))) - len(r.BitmapInfo))
	w.Bytes(r.Bits)
	w.Pad(int(model.RoundToLong(uint32(len(r.Bits)))) - len(r.Bits))
	return w.Err()
}

func (r *ExtCreatePen) Replay(p *Playback, s Surface) error {
	h, err := s.ExtCreatePen(r.Pen)
	return bind(p, r.Handle, h, err)
}

func decodeExtCreatePen(r *binary.Reader, f Frame) (Record, error) {
	if err := needSize(f, extPenFixedSize); err != nil {
		return nil, err
	}
	rec := &ExtCreatePen{Handle: model.Handle(r.Uint32())}
	offBmi := r.Uint32()
	cbBmi := r.Uint32()
	offBits := r.Uint32()
	cbBits := r.Uint32()
	rec.Pen.PenStyle = r.Uint32()
	rec.Pen.Width = r.Uint32()
	rec.Pen.BrushStyle = r.Uint32()
	rec.Pen.Color = r.ColorRef()
	rec.Pen.Hatch = r.Uint32()
	n, err := readCount(r, f, extPenFixedSize, 4)
	if err != nil {
		return nil, err
	}
	rec.Pen.StyleEntries = r.Uint32s(n)

	blob := func(off, cb uint32, what string) ([]byte, error) {
		if cb == 0 {
			return nil, nil
		}
		if off < extPenFixedSize || uint64(off)+uint64(cb) > uint64(f.Size) {
			return nil, invalid(f.Type, "%s of %d bytes at %d overruns length %d", what, cb, off, f.Size)
		}
		r.Seek(int(off))
		return r.Bytes(int(cb)), nil
	}
	if rec.BitmapInfo, err = blob(offBmi, cbBmi, "bitmap header"); err != nil {
		return nil, err
	}
	if rec.Bits, err = blob(offBits, cbBits, "bitmap bits"); err != nil {
		return nil, err
	}
	return rec, nil
}

// CreateBrushIndirect defines a brush (EMR_CREATEBRUSHINDIRECT)
type CreateBrushIndirect struct {
	Handle model.Handle
	Brush  model.LogBrush
}

func (r *CreateBrushIndirect) Type() model.RecordType     { return model.RecCreateBrushIndirect }
func (r *CreateBrushIndirect) Size() uint32               { return 24 }
func (r *CreateBrushIndirect) ObjectHandle() model.Handle { return r.Handle }

func (r *CreateBrushIndirect) Encode(w *binary.Writer) error {
	header(w, r)
	w.Uint32(uint32(r.Handle))
	w.LogBrush(r.Brush)
	return w.Err()
}

func (r *CreateBrushIndirect) Replay(p *Playback, s Surface) error {
	h, err := s.CreateBrushIndirect(r.Brush)
	return bind(p, r.Handle, h, err)
}

func decodeCreateBrushIndirect(r *binary.Reader, f Frame) (Record, error) {
	if err := needSize(f, 24); err != nil {
		return nil, err
	}
	return &CreateBrushIndirect{Handle: model.Handle(r.Uint32()), Brush: r.LogBrush()}, nil
}

const (
	fontShortSize = 104 // header, handle, LOGFONTW
	fontFullSize  = 332 // header, handle, EXTLOGFONTW with panose
)

// ExtCreateFontIndirectW defines a font (EMR_EXTCREATEFONTINDIRECTW). Short
// records only carry the LOGFONTW part.
type ExtCreateFontIndirectW struct {
	Handle model.Handle
	Font   model.ExtLogFont
	Short  bool
}

func (r *ExtCreateFontIndirectW) Type() model.RecordType     { return model.RecExtCreateFontIndirectW }
func (r *ExtCreateFontIndirectW) ObjectHandle() model.Handle { return r.Handle }

func (r *ExtCreateFontIndirectW) Size() uint32 {
	if r.Short {
		return fontShortSize
	}
	return fontFullSize
}

func (r *ExtCreateFontIndirectW) Encode(w *binary.Writer) error {
	header(w, r)
	w.Uint32(uint32(r.Handle))
	if r.Short {
		w.LogFont(r.Font.LogFont)
	} else {
		w.ExtLogFont(r.Font)
	}
	return w.Err()
}

func (r *ExtCreateFontIndirectW) Replay(p *Playback, s Surface) error {
	h, err := s.CreateFontIndirect(r.Font)
	return bind(p, r.Handle, h, err)
}

func decodeExtCreateFontIndirectW(r *binary.Reader, f Frame) (Record, error) {
	if err := needSize(f, fontShortSize); err != nil {
		return nil, err
	}
	rec := &ExtCreateFontIndirectW{Handle: model.Handle(r.Uint32())}
	if f.Size < fontFullSize {
		rec.Font.LogFont = r.LogFont()
		rec.Short = true
		return rec, nil
	}
	rec.Font = r.ExtLogFont()
	return rec, nil
}

const paletteFixedSize = 16

// CreatePalette defines a logical palette (EMR_CREATEPALETTE)
type CreatePalette struct {
	Handle  model.Handle
	Palette model.LogPalette
}

func (r *CreatePalette) Type() model.RecordType     { return model.RecCreatePalette }
func (r *CreatePalette) ObjectHandle() model.Handle { return r.Handle }

func (r *CreatePalette) Size() uint32 {
	return paletteFixedSize + 4*uint32(len(r.Palette.Entries))
}

func (r *CreatePalette) Encode(w *binary.Writer) error {
	header(w, r)
	w.Uint32(uint32(r.Handle))
	w.Uint16(r.Palette.Version)
	w.Uint16(uint16(len(r.Palette.Entries)))
	for _, e := range r.Palette.Entries {
		w.PaletteEntry(e)
	}
	return w.Err()
}

func (r *CreatePalette) Replay(p *Playback, s Surface) error {
	h, err := s.CreatePalette(r.Palette)
	return bind(p, r.Handle, h, err)
}

func decodeCreatePalette(r *binary.Reader, f Frame) (Record, error) {
	if err := needSize(f, paletteFixedSize); err != nil {
		return nil, err
	}
	rec := &CreatePalette{Handle: model.Handle(r.Uint32())}
	rec.Palette.Version = r.Uint16()
	n := r.Uint16()
	if err := needSize(f, paletteFixedSize+4*uint64(n)); err != nil {
		return nil, err
	}
	if n > 0 {
		rec.Palette.Entries = make([]model.PaletteEntry, n)
		for i := range rec.Palette.Entries {
			rec.Palette.Entries[i] = r.PaletteEntry()
		}
	}
	return rec, nil
}

func init() {
	register(decodeCreatePen, model.RecCreatePen)
	register(decodeExtCreatePen, model.RecExtCreatePen)
	register(decodeCreateBrushIndirect, model.RecCreateBrushIndirect)
	register(decodeExtCreateFontIndirectW, model.RecExtCreateFontIndirectW)
	register(decodeCreatePalette, model.RecCreatePalette)
}
