// Package text writes metafile records as readable sectioned text
package text

import (
	"fmt"
	"io"
	"strings"

	"github.com/dyuri/emfconv/internal/model"
	"github.com/dyuri/emfconv/internal/record"
)

// Writer handles writing metafile records in dump format
type Writer struct {
	w      io.Writer
	offset uint32
	err    error
}

// NewWriter creates a new dump writer
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Write outputs one section per record, in stream order
func (w *Writer) Write(recs []record.Record) error {
	w.offset = 0
	for i, rec := range recs {
		if err := w.writeRecord(i, rec); err != nil {
			return fmt.Errorf("write record %d: %w", i, err)
		}
		w.offset += rec.Size()
	}
	return nil
}

func (w *Writer) printf(format string, args ...any) {
	if w.err != nil {
		return
	}
	_, w.err = fmt.Fprintf(w.w, format, args...)
}

// writeRecord writes a [TYPE] section
func (w *Writer) writeRecord(i int, rec record.Record) error {
	// Format:
	// [EMR_LINETO]
	// Index=2
	// Offset=124
	// Size=16
	// ...record fields...
	// [end]

	w.printf("[%v]\n", rec.Type())
	w.printf("Index=%d\nOffset=%d\nSize=%d\n", i, w.offset, rec.Size())

	switch r := rec.(type) {
	case *record.Header:
		w.writeHeader(r)
	case *record.ExtTextOutA:
		w.writeText(r.TextOut, fmt.Sprintf("%q", model.DecodeANSI(r.Text)))
	case *record.ExtTextOutW:
		w.writeText(r.TextOut, fmt.Sprintf("%q", model.DecodeWide(r.Text)))
	case *record.EOF:
		// no fields worth showing
	default:
		if hr, ok := rec.(record.HandleRecord); ok {
			w.printf("Handle=%d\n", uint32(hr.ObjectHandle()))
		}
		w.printf("Fields=%s\n", strings.TrimPrefix(fmt.Sprintf("%+v", rec), "&"))
	}

	w.printf("[end]\n\n")
	return w.err
}

func (w *Writer) writeHeader(h *record.Header) {
	w.printf("Bounds=%s\n", rect(h.Bounds))
	w.printf("Frame=%s\n", rect(h.Frame))
	w.printf("Signature=0x%08x\nVersion=0x%08x\n", h.Signature, h.Version)
	w.printf("Bytes=%d\nRecords=%d\nHandles=%d\n", h.Bytes, h.Records, h.Handles)
	w.printf("Device=%dx%d\n", h.Device.CX, h.Device.CY)
	w.printf("Millimeters=%dx%d\n", h.Millimeters.CX, h.Millimeters.CY)
	if h.Micrometers != (model.Size{}) {
		w.printf("Micrometers=%dx%d\n", h.Micrometers.CX, h.Micrometers.CY)
	}
	if h.PalEntries != 0 {
		w.printf("PalEntries=%d\n", h.PalEntries)
	}
	for i, seg := range model.DescriptionSegments(h.Description) {
		w.printf("String%d=%s\n", i+1, seg)
	}
}

func (w *Writer) writeText(t record.TextOut, quoted string) {
	w.printf("Reference=%d,%d\n", t.Reference.X, t.Reference.Y)
	w.printf("Bounds=%s\n", rect(t.Bounds))
	if t.Options != 0 {
		w.printf("Options=0x%x\n", t.Options)
	}
	w.printf("Text=%s\n", quoted)
	if len(t.Dx) > 0 {
		w.printf("Dx=%s\n", strings.Trim(fmt.Sprint(t.Dx), "[]"))
	}
}

func rect(r model.Rect) string {
	return fmt.Sprintf("%d,%d,%d,%d", r.Left, r.Top, r.Right, r.Bottom)
}
