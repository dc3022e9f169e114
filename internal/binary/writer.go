package binary

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/dyuri/emfconv/internal/model"
)

// Writer encodes metafile values onto an io.Writer
type Writer struct {
	w       io.Writer
	host    binary.ByteOrder // byte order values are laid out in before swapping
	swap    bool             // host is big-endian
	n       int64
	err     error
	scratch [8]byte
}

// NewWriter creates a writer that always emits little-endian data
func NewWriter(w io.Writer, opts ...Options) *Writer {
	var o Options
	if len(opts) > 0 {
		o = opts[0]
	}
	host, swap := o.order()
	return &Writer{w: w, host: host, swap: swap}
}

// N returns the number of bytes written so far
func (w *Writer) N() int64 { return w.n }

// Err returns the first write error
func (w *Writer) Err() error { return w.err }

func (w *Writer) write(b []byte) {
	if w.err != nil {
		return
	}
	n, err := w.w.Write(b)
	w.n += int64(n)
	if err == nil && n < len(b) {
		err = io.ErrShortWrite
	}
	if err != nil {
		w.err = fmt.Errorf("write %d bytes at offset %d: %w: %v", len(b), w.n-int64(n), model.ErrWriteFailed, err)
	}
}

func (w *Writer) scalar(size int) {
	b := w.scratch[:size]
	if w.swap {
		reverse(b)
	}
	w.write(b)
}

func (w *Writer) Uint8(v uint8) {
	w.scratch[0] = v
	w.write(w.scratch[:1])
}

func (w *Writer) Uint16(v uint16) {
	w.host.PutUint16(w.scratch[:2], v)
	w.scalar(2)
}

func (w *Writer) Int16(v int16) { w.Uint16(uint16(v)) }

func (w *Writer) Uint32(v uint32) {
	w.host.PutUint32(w.scratch[:4], v)
	w.scalar(4)
}

func (w *Writer) Int32(v int32) { w.Uint32(uint32(v)) }

func (w *Writer) Uint64(v uint64) {
	w.host.PutUint64(w.scratch[:8], v)
	w.scalar(8)
}

func (w *Writer) Float32(v float32) { w.Uint32(math.Float32bits(v)) }

// RecordHeader writes the type tag and total length of a record
func (w *Writer) RecordHeader(t model.RecordType, size uint32) {
	w.Uint32(uint32(t))
	w.Uint32(size)
}

func (w *Writer) Point(p model.Point) {
	w.Int32(p.X)
	w.Int32(p.Y)
}

func (w *Writer) Point16(p model.Point16) {
	w.Int16(p.X)
	w.Int16(p.Y)
}

func (w *Writer) Rect(r model.Rect) {
	w.Int32(r.Left)
	w.Int32(r.Top)
	w.Int32(r.Right)
	w.Int32(r.Bottom)
}

func (w *Writer) Size(s model.Size) {
	w.Int32(s.CX)
	w.Int32(s.CY)
}

func (w *Writer) XForm(x model.XForm) {
	w.Float32(x.M11)
	w.Float32(x.M12)
	w.Float32(x.M21)
	w.Float32(x.M22)
	w.Float32(x.Dx)
	w.Float32(x.Dy)
}

func (w *Writer) ColorRef(c model.ColorRef) { w.Uint32(uint32(c)) }

func (w *Writer) LogPen(p model.LogPen) {
	w.Uint32(p.Style)
	w.Point(p.Width)
	w.ColorRef(p.Color)
}

func (w *Writer) LogBrush(b model.LogBrush) {
	w.Uint32(b.Style)
	w.ColorRef(b.Color)
	w.Uint32(b.Hatch)
}

// ExtLogPen writes the pen including its style entry count and entries
func (w *Writer) ExtLogPen(p model.ExtLogPen) {
	w.Uint32(p.PenStyle)
	w.Uint32(p.Width)
	w.Uint32(p.BrushStyle)
	w.ColorRef(p.Color)
	w.Uint32(p.Hatch)
	w.Uint32(uint32(len(p.StyleEntries)))
	w.Uint32s(p.StyleEntries)
}

func (w *Writer) LogFont(f model.LogFont) {
	w.Int32(f.Height)
	w.Int32(f.Width)
	w.Int32(f.Escapement)
	w.Int32(f.Orientation)
	w.Int32(f.Weight)
	w.Bytes([]byte{
		f.Italic, f.Underline, f.StrikeOut, f.CharSet,
		f.OutPrecision, f.ClipPrecision, f.Quality, f.PitchAndFamily,
	})
	w.Wide(f.FaceName[:])
}

func (w *Writer) Panose(p model.Panose) {
	w.Bytes([]byte{
		p.FamilyType, p.SerifStyle, p.Weight, p.Proportion, p.Contrast,
		p.StrokeVariation, p.ArmStyle, p.Letterform, p.Midline, p.XHeight,
	})
}

// ExtLogFont writes the font followed by the two bytes of structure padding
func (w *Writer) ExtLogFont(f model.ExtLogFont) {
	w.LogFont(f.LogFont)
	w.Wide(f.FullName[:])
	w.Wide(f.Style[:])
	w.Uint32(f.Version)
	w.Uint32(f.StyleSize)
	w.Uint32(f.Match)
	w.Uint32(f.Reserved)
	w.Bytes(f.VendorID[:])
	w.Uint32(f.Culture)
	w.Panose(f.Panose)
	w.Pad(2)
}

func (w *Writer) PaletteEntry(e model.PaletteEntry) {
	w.Bytes([]byte{e.Red, e.Green, e.Blue, e.Flags})
}

func (w *Writer) Bytes(b []byte) { w.write(b) }

func (w *Writer) Points(pts []model.Point) {
	for _, p := range pts {
		w.Point(p)
	}
}

func (w *Writer) Points16(pts []model.Point16) {
	for _, p := range pts {
		w.Point16(p)
	}
}

func (w *Writer) Int32s(v []int32) {
	for _, x := range v {
		w.Int32(x)
	}
}

func (w *Writer) Uint32s(v []uint32) {
	for _, x := range v {
		w.Uint32(x)
	}
}

// Wide writes UTF-16 code units
func (w *Writer) Wide(v []uint16) {
	for _, x := range v {
		w.Uint16(x)
	}
}

var zeros [64]byte

// Pad writes n zero bytes
func (w *Writer) Pad(n int) {
	for n > 0 {
		k := min(n, len(zeros))
		w.write(zeros[:k])
		n -= k
	}
}
