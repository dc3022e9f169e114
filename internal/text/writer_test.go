package text

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/dyuri/emfconv/internal/model"
	"github.com/dyuri/emfconv/internal/record"
)

func sampleRecords() []record.Record {
	h := record.NewHeader(
		model.Rect{Right: 10, Bottom: 20},
		model.Rect{Right: 250, Bottom: 470},
		model.Size{CX: 1280, CY: 1024},
		model.Size{CX: 320, CY: 240},
		model.NewDescription("emfconv", "sample"),
	)
	text := &record.ExtTextOutW{
		TextOut: record.NewTextOut(model.Point{X: 1, Y: 2}, model.ETOOpaque, model.EmptyBounds, []int32{5, 6}),
		Text:    model.EncodeWide("hi"),
	}
	return []record.Record{
		h,
		record.NewLineTo(model.Point{X: 100, Y: 100}),
		&record.CreatePen{Handle: 1, Pen: model.LogPen{Style: model.PenDash}},
		text,
		&record.EOF{},
	}
}

func TestWriteSections(t *testing.T) {
	var buf bytes.Buffer
	if err := NewWriter(&buf).Write(sampleRecords()); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	out := buf.String()

	if n := strings.Count(out, "[end]"); n != 5 {
		t.Errorf("got %d sections, want 5", n)
	}

	for _, want := range []string{
		"[EMR_HEADER]\nIndex=0\nOffset=0\nSize=",
		"Bounds=0,0,10,20\n",
		"Device=1280x1024\n",
		"String1=emfconv\nString2=sample\n",
		"[EMR_LINETO]\nIndex=1\n",
		"Point:{X:100 Y:100}",
		"[EMR_CREATEPEN]",
		"Handle=1\n",
		"Text=\"hi\"\n",
		"Options=0x2\n",
		"Dx=5 6\n",
		"[EMR_EOF]",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestWriteOffsets(t *testing.T) {
	recs := sampleRecords()
	var buf bytes.Buffer
	if err := NewWriter(&buf).Write(recs); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	want := recs[0].Size() + recs[1].Size()
	if !strings.Contains(buf.String(), fmt.Sprintf("Index=2\nOffset=%d\n", want)) {
		t.Errorf("offset of record 2 not %d", want)
	}
}

type brokenWriter struct{}

func (brokenWriter) Write([]byte) (int, error) { return 0, errors.New("broken pipe") }

func TestWriteReportsErrors(t *testing.T) {
	err := NewWriter(brokenWriter{}).Write(sampleRecords())
	if err == nil {
		t.Fatal("expected an error from a failing writer")
	}
	if !strings.Contains(err.Error(), "record 0") {
		t.Errorf("error %q does not name the record", err)
	}
}
