package binary

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"testing"

	"github.com/dyuri/emfconv/internal/model"
)

// TestReadScalars tests decoding of hand-built little-endian data
func TestReadScalars(t *testing.T) {
	buf := make([]byte, 18)
	binary.LittleEndian.PutUint16(buf[0:], 0xBEEF)
	binary.LittleEndian.PutUint32(buf[2:], 0xDEADBEEF)
	binary.LittleEndian.PutUint32(buf[6:], 0x3F800000) // 1.0
	binary.LittleEndian.PutUint64(buf[10:], 0x0102030405060708)

	r := NewReader(buf)
	if v := r.Uint16(); v != 0xBEEF {
		t.Errorf("Uint16 = 0x%x, want 0xbeef", v)
	}
	if v := r.Uint32(); v != 0xDEADBEEF {
		t.Errorf("Uint32 = 0x%x, want 0xdeadbeef", v)
	}
	if v := r.Float32(); v != 1.0 {
		t.Errorf("Float32 = %v, want 1", v)
	}
	if v := r.Uint64(); v != 0x0102030405060708 {
		t.Errorf("Uint64 = 0x%x, want 0x0102030405060708", v)
	}
	if r.Err() != nil {
		t.Fatalf("unexpected error: %v", r.Err())
	}
}

// TestReadBigEndianHost checks that a simulated big-endian host reads the
// same values from little-endian bytes
func TestReadBigEndianHost(t *testing.T) {
	buf := make([]byte, 12)
	binary.LittleEndian.PutUint32(buf[0:], 0x11223344)
	binary.LittleEndian.PutUint32(buf[4:], uint32(0xFFFFFF85)) // -123
	binary.LittleEndian.PutUint16(buf[8:], 0x5566)

	for _, host := range []binary.ByteOrder{binary.LittleEndian, binary.BigEndian} {
		r := NewReader(buf, Options{HostOrder: host})
		if v := r.Uint32(); v != 0x11223344 {
			t.Errorf("%v: Uint32 = 0x%x, want 0x11223344", host, v)
		}
		if v := r.Int32(); v != -123 {
			t.Errorf("%v: Int32 = %d, want -123", host, v)
		}
		if v := r.Uint16(); v != 0x5566 {
			t.Errorf("%v: Uint16 = 0x%x, want 0x5566", host, v)
		}
	}
}

// TestWriteBigEndianHost checks byte-identical output for both host orders
func TestWriteBigEndianHost(t *testing.T) {
	encode := func(host binary.ByteOrder) []byte {
		var out bytes.Buffer
		w := NewWriter(&out, Options{HostOrder: host})
		w.RecordHeader(model.RecMoveToEx, 16)
		w.Point(model.Point{X: -1, Y: 70000})
		w.Float32(2.5)
		w.Point16(model.Point16{X: -2, Y: 300})
		w.XForm(model.IdentityXForm)
		if w.Err() != nil {
			t.Fatalf("write: %v", w.Err())
		}
		return out.Bytes()
	}

	le := encode(binary.LittleEndian)
	be := encode(binary.BigEndian)
	if !bytes.Equal(le, be) {
		t.Fatalf("outputs differ:\n le=% x\n be=% x", le, be)
	}
	if got := binary.LittleEndian.Uint32(le[0:]); got != uint32(model.RecMoveToEx) {
		t.Errorf("type = %d, want %d", got, model.RecMoveToEx)
	}
	if got := int32(binary.LittleEndian.Uint32(le[8:])); got != -1 {
		t.Errorf("x = %d, want -1", got)
	}
	if got := binary.LittleEndian.Uint32(le[12:]); got != 70000 {
		t.Errorf("y = %d, want 70000", got)
	}
}

// TestShortRead verifies that reads past the record end are reported
func TestShortRead(t *testing.T) {
	r := NewReader([]byte{1, 2, 3})
	_ = r.Uint32()
	if !errors.Is(r.Err(), model.ErrTruncated) {
		t.Fatalf("Err = %v, want ErrTruncated", r.Err())
	}
	// sticky: later reads return zero values
	if v := r.Uint8(); v != 0 {
		t.Errorf("Uint8 after error = %d, want 0", v)
	}
}

// TestArrayRoomCheck verifies that oversized counts fail before allocation
func TestArrayRoomCheck(t *testing.T) {
	r := NewReader(make([]byte, 16))
	if pts := r.Points(1 << 30); pts != nil {
		t.Errorf("Points returned %d elements, want nil", len(pts))
	}
	if !errors.Is(r.Err(), model.ErrTruncated) {
		t.Fatalf("Err = %v, want ErrTruncated", r.Err())
	}
}

// TestReadRecord tests record framing from a stream
func TestReadRecord(t *testing.T) {
	buf := make([]byte, 16)
	binary.LittleEndian.PutUint32(buf[0:], uint32(model.RecLineTo))
	binary.LittleEndian.PutUint32(buf[4:], 16)
	binary.LittleEndian.PutUint32(buf[8:], 100)
	binary.LittleEndian.PutUint32(buf[12:], 200)

	rd, typ, size, err := ReadRecord(bytes.NewReader(buf), 0)
	if err != nil {
		t.Fatalf("ReadRecord failed: %v", err)
	}
	if typ != model.RecLineTo {
		t.Errorf("type = %v, want EMR_LINETO", typ)
	}
	if size != 16 {
		t.Errorf("size = %d, want 16", size)
	}
	if p := rd.Point(); p.X != 100 || p.Y != 200 {
		t.Errorf("point = %+v, want {100 200}", p)
	}
}

// TestReadRecordErrors tests the framing validation
func TestReadRecordErrors(t *testing.T) {
	frame := func(typ, size uint32, body int) []byte {
		b := make([]byte, 8+body)
		binary.LittleEndian.PutUint32(b[0:], typ)
		binary.LittleEndian.PutUint32(b[4:], size)
		return b
	}

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"empty stream", nil, io.EOF},
		{"partial header", []byte{1, 0, 0}, model.ErrTruncated},
		{"length too small", frame(54, 4, 0), model.ErrInvalidRecord},
		{"unaligned length", frame(54, 18, 10), model.ErrInvalidRecord},
		{"over limit", frame(54, 1<<20, 0), model.ErrInvalidRecord},
		{"short body", frame(54, 16, 4), model.ErrTruncated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, _, err := ReadRecord(bytes.NewReader(tt.data), 1<<16)
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

type failWriter struct{ left int }

func (f *failWriter) Write(p []byte) (int, error) {
	if len(p) > f.left {
		n := f.left
		f.left = 0
		return n, io.ErrShortWrite
	}
	f.left -= len(p)
	return len(p), nil
}

// TestShortWrite verifies that write failures are sticky and classified
func TestShortWrite(t *testing.T) {
	w := NewWriter(&failWriter{left: 6})
	w.Uint32(1)
	w.Uint32(2)
	w.Uint32(3)
	if !errors.Is(w.Err(), model.ErrWriteFailed) {
		t.Fatalf("Err = %v, want ErrWriteFailed", w.Err())
	}
	if w.N() != 6 {
		t.Errorf("N = %d, want 6", w.N())
	}
}

// TestPad verifies zero padding of arbitrary length
func TestPad(t *testing.T) {
	var out bytes.Buffer
	w := NewWriter(&out)
	w.Pad(70)
	if out.Len() != 70 {
		t.Fatalf("len = %d, want 70", out.Len())
	}
	for i, b := range out.Bytes() {
		if b != 0 {
			t.Fatalf("byte %d = %d, want 0", i, b)
		}
	}
}

// TestFontRoundTrip checks the packed font layout
func TestFontRoundTrip(t *testing.T) {
	var f model.ExtLogFont
	f.Height = -12
	f.Weight = model.FontWeightBold
	f.Italic = 1
	f.SetFaceName("Arial")
	f.Panose = model.PanoseAny
	f.VendorID = [4]byte{'A', 'B', 'C', 'D'}

	var out bytes.Buffer
	w := NewWriter(&out)
	w.ExtLogFont(f)
	if out.Len() != 320 {
		t.Fatalf("encoded length = %d, want 320", out.Len())
	}

	r := NewReader(out.Bytes())
	got := r.ExtLogFont()
	if r.Err() != nil {
		t.Fatalf("read: %v", r.Err())
	}
	if got.Name() != "Arial" {
		t.Errorf("face = %q, want Arial", got.Name())
	}
	if got.Height != -12 || got.Weight != model.FontWeightBold || got.Italic != 1 {
		t.Errorf("font = %+v", got.LogFont)
	}
	if got.VendorID != f.VendorID || got.Panose != f.Panose {
		t.Errorf("vendor/panose mismatch: %v %v", got.VendorID, got.Panose)
	}
	if r.Remaining() != 0 {
		t.Errorf("remaining = %d, want 0", r.Remaining())
	}
}
