package emf

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/dyuri/emfconv/internal/model"
)

func sample(t *testing.T) *Metafile {
	t.Helper()
	mf := Create(NewTable(), Config{Description: model.NewDescription("emfconv", "test")})
	for _, err := range []error{
		mf.MoveToEx(Point{X: 0, Y: 0}),
		mf.LineTo(Point{X: 100, Y: 100}),
		mf.TextOut(Point{X: 10, Y: 10}, "hello"),
		mf.Close(),
	} {
		if err != nil {
			t.Fatalf("building sample: %v", err)
		}
	}
	return mf
}

func TestWriteReadRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sample(t)); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	data := buf.Bytes()

	mf, err := Read(NewTable(), bytes.NewReader(data), ReadOptions{})
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if got := len(mf.Records()); got != 5 {
		t.Errorf("records = %d, want 5", got)
	}
	if err := Validate(mf); err != nil {
		t.Errorf("Validate: %v", err)
	}

	var trace bytes.Buffer
	if err := Trace(&trace, mf); err != nil {
		t.Fatalf("Trace failed: %v", err)
	}
	if !strings.Contains(trace.String(), `ExtTextOutW({10 10}, 0, `) {
		t.Errorf("trace missing text call:\n%s", trace.String())
	}

	var dump bytes.Buffer
	if err := Dump(&dump, mf); err != nil {
		t.Fatalf("Dump failed: %v", err)
	}
	if !strings.Contains(dump.String(), "String2=test") {
		t.Errorf("dump missing description:\n%s", dump.String())
	}
}

func TestReadErrorsCarryCodes(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sample(t)); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	data := buf.Bytes()

	_, err := Read(NewTable(), bytes.NewReader(data[:len(data)-8]), ReadOptions{})
	var e *Error
	if !errors.As(err, &e) {
		t.Fatalf("error %v is not an *Error", err)
	}
	if e.Code != "truncated" {
		t.Errorf("Code = %q, want truncated", e.Code)
	}
	if !errors.Is(err, ErrTruncated) || !errors.Is(err, model.ErrTruncated) {
		t.Errorf("error %v does not match truncation", err)
	}

	bad := bytes.Clone(data)
	bad[0] = 0x63 // not EMR_HEADER
	_, err = Read(NewTable(), bytes.NewReader(bad), ReadOptions{})
	if !errors.Is(err, ErrInvalidRecord) {
		t.Errorf("error %v, want invalid_record", err)
	}
}

func TestWriteRequiresClosedMetafile(t *testing.T) {
	mf := Create(NewTable(), Config{})
	err := Write(&bytes.Buffer{}, mf)
	if !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("error %v, want invalid_argument", err)
	}
}

func TestCopy(t *testing.T) {
	src := sample(t)
	dst := Create(NewTable(), Config{})
	if err := Copy(dst, src); err != nil {
		t.Fatalf("Copy failed: %v", err)
	}
	if got, want := len(dst.Records()), len(src.Records())-1; got != want {
		t.Errorf("copied %d records, want %d before close", got, want)
	}
	if dst.Header().Bounds != src.Header().Bounds {
		t.Errorf("bounds = %v, want %v", dst.Header().Bounds, src.Header().Bounds)
	}
}

func TestWrapPassesUnknownErrors(t *testing.T) {
	plain := errors.New("plain")
	if wrap(plain) != plain {
		t.Error("unclassified error was wrapped")
	}
	if wrap(nil) != nil {
		t.Error("nil error was wrapped")
	}

	once := wrap(fmt.Errorf("x: %w", model.ErrClosed))
	if wrap(once) != once {
		t.Error("classified error was wrapped twice")
	}
	if once.Error() != "metafile closed: x: metafile closed" {
		t.Errorf("message = %q", once.Error())
	}
}
