package binary

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/dyuri/emfconv/internal/model"
)

// Reader decodes values from one complete record. Offsets are relative to the
// start of the record, so the type tag sits at offset 0.
type Reader struct {
	buf     []byte
	pos     int
	host    binary.ByteOrder
	swap    bool
	err     error
	scratch [8]byte
}

// NewReader creates a reader over a record buffer
func NewReader(buf []byte, opts ...Options) *Reader {
	var o Options
	if len(opts) > 0 {
		o = opts[0]
	}
	host, swap := o.order()
	return &Reader{buf: buf, host: host, swap: swap}
}

// ReadRecord reads one whole record from r. It returns io.EOF only when the
// stream ends cleanly before the record starts. The returned reader is
// positioned just after the record header.
func ReadRecord(r io.Reader, maxSize uint32, opts ...Options) (*Reader, model.RecordType, uint32, error) {
	var head [RecordHeaderSize]byte
	if _, err := io.ReadFull(r, head[:]); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, 0, 0, io.EOF
		}
		return nil, 0, 0, truncated(err)
	}

	hr := NewReader(head[:], opts...)
	typ, size := hr.RecordHeader()

	switch {
	case size < RecordHeaderSize:
		return nil, typ, size, fmt.Errorf("%v: length %d shorter than record header: %w", typ, size, model.ErrInvalidRecord)
	case size%4 != 0:
		return nil, typ, size, fmt.Errorf("%v: length %d not a multiple of 4: %w", typ, size, model.ErrInvalidRecord)
	case maxSize > 0 && size > maxSize:
		return nil, typ, size, fmt.Errorf("%v: length %d exceeds limit %d: %w", typ, size, maxSize, model.ErrInvalidRecord)
	}

	buf := make([]byte, size)
	copy(buf, head[:])
	if _, err := io.ReadFull(r, buf[RecordHeaderSize:]); err != nil {
		return nil, typ, size, fmt.Errorf("%v body: %w", typ, truncated(err))
	}

	rd := NewReader(buf, opts...)
	rd.pos = RecordHeaderSize
	return rd, typ, size, nil
}

func truncated(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return model.ErrTruncated
	}
	return fmt.Errorf("%w: %v", model.ErrTruncated, err)
}

// Err returns the first read error
func (r *Reader) Err() error { return r.err }

// Pos returns the current offset
func (r *Reader) Pos() int { return r.pos }

// Len returns the size of the record buffer
func (r *Reader) Len() int { return len(r.buf) }

// Remaining returns the number of unread bytes
func (r *Reader) Remaining() int { return len(r.buf) - r.pos }

// Seek moves to an absolute offset within the record
func (r *Reader) Seek(off int) {
	if r.err != nil {
		return
	}
	if off < 0 || off > len(r.buf) {
		r.err = fmt.Errorf("seek to %d in %d byte record: %w", off, len(r.buf), model.ErrTruncated)
		return
	}
	r.pos = off
}

func (r *Reader) next(n int) []byte {
	if r.err != nil {
		return nil
	}
	if n < 0 || n > len(r.buf)-r.pos {
		r.err = fmt.Errorf("read %d bytes at offset %d: %w", n, r.pos, model.ErrTruncated)
		return nil
	}
	b := r.buf[r.pos : r.pos+n]
	r.pos += n
	return b
}

func (r *Reader) scalar(n int) []byte {
	b := r.next(n)
	if b == nil {
		return nil
	}
	s := r.scratch[:n]
	copy(s, b)
	if r.swap {
		reverse(s)
	}
	return s
}

func (r *Reader) Uint8() uint8 {
	b := r.next(1)
	if b == nil {
		return 0
	}
	return b[0]
}

func (r *Reader) Uint16() uint16 {
	b := r.scalar(2)
	if b == nil {
		return 0
	}
	return r.host.Uint16(b)
}

func (r *Reader) Int16() int16 { return int16(r.Uint16()) }

func (r *Reader) Uint32() uint32 {
	b := r.scalar(4)
	if b == nil {
		return 0
	}
	return r.host.Uint32(b)
}

func (r *Reader) Int32() int32 { return int32(r.Uint32()) }

func (r *Reader) Uint64() uint64 {
	b := r.scalar(8)
	if b == nil {
		return 0
	}
	return r.host.Uint64(b)
}

func (r *Reader) Float32() float32 { return math.Float32frombits(r.Uint32()) }

// RecordHeader reads the type tag and total length
func (r *Reader) RecordHeader() (model.RecordType, uint32) {
	t := model.RecordType(r.Uint32())
	return t, r.Uint32()
}

func (r *Reader) Point() model.Point {
	return model.Point{X: r.Int32(), Y: r.Int32()}
}

func (r *Reader) Point16() model.Point16 {
	return model.Point16{X: r.Int16(), Y: r.Int16()}
}

func (r *Reader) Rect() model.Rect {
	return model.Rect{Left: r.Int32(), Top: r.Int32(), Right: r.Int32(), Bottom: r.Int32()}
}

func (r *Reader) Size() model.Size {
	return model.Size{CX: r.Int32(), CY: r.Int32()}
}

func (r *Reader) XForm() model.XForm {
	return model.XForm{
		M11: r.Float32(), M12: r.Float32(),
		M21: r.Float32(), M22: r.Float32(),
		Dx: r.Float32(), Dy: r.Float32(),
	}
}

func (r *Reader) ColorRef() model.ColorRef { return model.ColorRef(r.Uint32()) }

func (r *Reader) LogPen() model.LogPen {
	return model.LogPen{Style: r.Uint32(), Width: r.Point(), Color: r.ColorRef()}
}

func (r *Reader) LogBrush() model.LogBrush {
	return model.LogBrush{Style: r.Uint32(), Color: r.ColorRef(), Hatch: r.Uint32()}
}

func (r *Reader) LogFont() model.LogFont {
	var f model.LogFont
	f.Height = r.Int32()
	f.Width = r.Int32()
	f.Escapement = r.Int32()
	f.Orientation = r.Int32()
	f.Weight = r.Int32()
	f.Italic = r.Uint8()
	f.Underline = r.Uint8()
	f.StrikeOut = r.Uint8()
	f.CharSet = r.Uint8()
	f.OutPrecision = r.Uint8()
	f.ClipPrecision = r.Uint8()
	f.Quality = r.Uint8()
	f.PitchAndFamily = r.Uint8()
	r.wideInto(f.FaceName[:])
	return f
}

func (r *Reader) Panose() model.Panose {
	var p model.Panose
	b := r.next(10)
	if b == nil {
		return p
	}
	return model.Panose{
		FamilyType: b[0], SerifStyle: b[1], Weight: b[2], Proportion: b[3], Contrast: b[4],
		StrokeVariation: b[5], ArmStyle: b[6], Letterform: b[7], Midline: b[8], XHeight: b[9],
	}
}

// ExtLogFont reads the font and skips the trailing structure padding
func (r *Reader) ExtLogFont() model.ExtLogFont {
	var f model.ExtLogFont
	f.LogFont = r.LogFont()
	r.wideInto(f.FullName[:])
	r.wideInto(f.Style[:])
	f.Version = r.Uint32()
	f.StyleSize = r.Uint32()
	f.Match = r.Uint32()
	f.Reserved = r.Uint32()
	copy(f.VendorID[:], r.next(4))
	f.Culture = r.Uint32()
	f.Panose = r.Panose()
	r.next(2)
	return f
}

func (r *Reader) PaletteEntry() model.PaletteEntry {
	b := r.next(4)
	if b == nil {
		return model.PaletteEntry{}
	}
	return model.PaletteEntry{Red: b[0], Green: b[1], Blue: b[2], Flags: b[3]}
}

// Bytes returns a copy of the next n bytes
func (r *Reader) Bytes(n int) []byte {
	b := r.next(n)
	if len(b) == 0 {
		return nil
	}
	out := make([]byte, n)
	copy(out, b)
	return out
}

// room checks that count elements of elemSize bytes remain before anything
// is allocated for them. It reports false for errors and for empty arrays.
func (r *Reader) room(count, elemSize int) bool {
	if r.err != nil {
		return false
	}
	if count < 0 || int64(count)*int64(elemSize) > int64(r.Remaining()) {
		r.err = fmt.Errorf("array of %d x %d bytes at offset %d: %w", count, elemSize, r.pos, model.ErrTruncated)
		return false
	}
	// empty arrays decode as nil
	return count > 0
}

func (r *Reader) Points(n int) []model.Point {
	if !r.room(n, 8) {
		return nil
	}
	out := make([]model.Point, n)
	for i := range out {
		out[i] = r.Point()
	}
	return out
}

func (r *Reader) Points16(n int) []model.Point16 {
	if !r.room(n, 4) {
		return nil
	}
	out := make([]model.Point16, n)
	for i := range out {
		out[i] = r.Point16()
	}
	return out
}

func (r *Reader) Int32s(n int) []int32 {
	if !r.room(n, 4) {
		return nil
	}
	out := make([]int32, n)
	for i := range out {
		out[i] = r.Int32()
	}
	return out
}

func (r *Reader) Uint32s(n int) []uint32 {
	if !r.room(n, 4) {
		return nil
	}
	out := make([]uint32, n)
	for i := range out {
		out[i] = r.Uint32()
	}
	return out
}

// Wide reads n UTF-16 code units
func (r *Reader) Wide(n int) []uint16 {
	if !r.room(n, 2) {
		return nil
	}
	out := make([]uint16, n)
	r.wideInto(out)
	return out
}

func (r *Reader) wideInto(dst []uint16) {
	for i := range dst {
		dst[i] = r.Uint16()
	}
}
