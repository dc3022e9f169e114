package record

import (
	"github.com/dyuri/emfconv/internal/binary"
	"github.com/dyuri/emfconv/internal/model"
)

// textFixedSize covers the record header, bounds, graphics mode, scales and
// the EMRTEXT block; the string always starts right after it
const textFixedSize = 76

// TextOut holds the fields shared by both text output records
type TextOut struct {
	Bounds       model.Rect // clipping/opaquing rectangle passed by the caller
	GraphicsMode uint32
	XScale       float32
	YScale       float32
	Reference    model.Point
	Options      uint32     // ETO* flags
	Rect         model.Rect // EMRTEXT rectangle
	Dx           []int32    // optional advance per character
}

// NewTextOut fills in the defaults written for simple text output
func NewTextOut(ref model.Point, options uint32, bounds model.Rect, dx []int32) TextOut {
	return TextOut{
		Bounds:       bounds,
		GraphicsMode: model.GraphicsModeCompatible,
		XScale:       1,
		YScale:       1,
		Reference:    ref,
		Options:      options,
		Rect:         model.EmptyBounds,
		Dx:           dx,
	}
}

func (t *TextOut) encode(w *binary.Writer, r Record, nChars, textBytes uint32) {
	header(w, r)
	w.Rect(t.Bounds)
	w.Uint32(t.GraphicsMode)
	w.Float32(t.XScale)
	w.Float32(t.YScale)
	w.Point(t.Reference)
	w.Uint32(nChars)
	w.Uint32(textFixedSize)
	w.Uint32(t.Options)
	w.Rect(t.Rect)
	if len(t.Dx) > 0 {
		w.Uint32(textFixedSize + textBytes)
	} else {
		w.Uint32(0)
	}
}

// decodeTextOut reads the fixed part and validates the string and advance
// offsets. It leaves the reader at the string.
func decodeTextOut(r *binary.Reader, f Frame, charSize uint64) (TextOut, int, error) {
	var t TextOut
	if err := needSize(f, textFixedSize); err != nil {
		return t, 0, err
	}
	t.Bounds = r.Rect()
	t.GraphicsMode = r.Uint32()
	t.XScale = r.Float32()
	t.YScale = r.Float32()
	t.Reference = r.Point()
	nChars := r.Uint32()
	offString := r.Uint32()
	t.Options = r.Uint32()
	t.Rect = r.Rect()
	offDx := r.Uint32()

	if nChars == 0 {
		return t, 0, nil
	}
	if offString == 0 {
		return t, 0, invalid(f.Type, "%d chars without a string offset", nChars)
	}
	if offString < textFixedSize {
		return t, 0, invalid(f.Type, "string offset %d inside fixed fields", offString)
	}
	if uint64(offString)+charSize*uint64(nChars) > uint64(f.Size) {
		return t, 0, invalid(f.Type, "%d chars at %d overrun length %d", nChars, offString, f.Size)
	}
	if offDx != 0 {
		if offDx < textFixedSize || uint64(offDx)+4*uint64(nChars) > uint64(f.Size) {
			return t, 0, invalid(f.Type, "advance array at %d overruns length %d", offDx, f.Size)
		}
		r.Seek(int(offDx))
		t.Dx = r.Int32s(int(nChars))
	}
	r.Seek(int(offString))
	return t, int(nChars), nil
}

// ExtTextOutA draws 8-bit text (EMR_EXTTEXTOUTA)
type ExtTextOutA struct {
	TextOut
	Text []byte
}

func (r *ExtTextOutA) Type() model.RecordType { return model.RecExtTextOutA }

func (r *ExtTextOutA) textBytes() uint32 {
	return model.RoundToLong(uint32(len(r.Text)))
}

func (r *ExtTextOutA) Size() uint32 {
	return textFixedSize + r.textBytes() + 4*uint32(len(r.Dx))
}

func (r *ExtTextOutA) Encode(w *binary.Writer) error {
	r.encode(w, r, uint32(len(r.Text)), r.textBytes())
	w.Bytes(r.Text)
	w.Pad(int(r.textBytes()) - len(r.Text))
	w.Int32s(r.Dx)
	return w.Err()
}

func (r *ExtTextOutA) Replay(_ *Playback, s Surface) error {
	return s.ExtTextOutA(r.Reference, r.Options, r.Bounds, r.Text, r.Dx)
}

func decodeExtTextOutA(r *binary.Reader, f Frame) (Record, error) {
	t, n, err := decodeTextOut(r, f, 1)
	if err != nil {
		return nil, err
	}
	return &ExtTextOutA{TextOut: t, Text: r.Bytes(n)}, nil
}

// ExtTextOutW draws UTF-16 text (EMR_EXTTEXTOUTW)
type ExtTextOutW struct {
	TextOut
	Text []uint16
}

func (r *ExtTextOutW) Type() model.RecordType { return model.RecExtTextOutW }

func (r *ExtTextOutW) textBytes() uint32 {
	return model.RoundToLong(2 * uint32(len(r.Text)))
}

func (r *ExtTextOutW) Size() uint32 {
	return textFixedSize + r.textBytes() + 4*uint32(len(r.Dx))
}

func (r *ExtTextOutW) Encode(w *binary.Writer) error {
	r.encode(w, r, uint32(len(r.Text)), r.textBytes())
	w.Wide(r.Text)
	w.Pad(int(r.textBytes()) - 2*len(r.Text))
	w.Int32s(r.Dx)
	return w.Err()
}

func (r *ExtTextOutW) Replay(_ *Playback, s Surface) error {
	return s.ExtTextOutW(r.Reference, r.Options, r.Bounds, r.Text, r.Dx)
}

func decodeExtTextOutW(r *binary.Reader, f Frame) (Record, error) {
	t, n, err := decodeTextOut(r, f, 2)
	if err != nil {
		return nil, err
	}
	return &ExtTextOutW{TextOut: t, Text: r.Wide(n)}, nil
}

func init() {
	register(decodeExtTextOutA, model.RecExtTextOutA)
	register(decodeExtTextOutW, model.RecExtTextOutW)
}
