// Package emf provides functions for building, reading and replaying
// enhanced metafiles.
//
// This package can be used as a library to record drawing calls into a
// metafile, write it out, and read metafiles back for inspection or replay.
//
// Example usage:
//
//	objects := emf.NewTable()
//	mf := emf.Create(objects, emf.Config{})
//	mf.MoveToEx(emf.Point{X: 0, Y: 0})
//	mf.LineTo(emf.Point{X: 100, Y: 100})
//	mf.Close()
//
//	out, _ := os.Create("line.emf")
//	defer out.Close()
//	emf.Write(out, mf)
package emf

import (
	"errors"
	"io"

	"github.com/dyuri/emfconv/internal/metafile"
	"github.com/dyuri/emfconv/internal/model"
	"github.com/dyuri/emfconv/internal/object"
	"github.com/dyuri/emfconv/internal/record"
	"github.com/dyuri/emfconv/internal/surface"
	"github.com/dyuri/emfconv/internal/text"
)

type (
	// Table holds the graphics objects and metafiles of one session
	Table = object.Table

	// Metafile is a metafile device context
	Metafile = metafile.Context

	// Config describes a new metafile
	Config = metafile.Config

	// ReadOptions configures Read
	ReadOptions = metafile.Options

	// Record is one unit of the metafile stream
	Record = record.Record

	// Surface receives replayed drawing operations
	Surface = record.Surface

	Point    = model.Point
	Rect     = model.Rect
	Size     = model.Size
	ColorRef = model.ColorRef
	Handle   = model.Handle
)

// NewTable creates an object table with the stock objects in place
func NewTable() *Table {
	return object.NewTable()
}

// Create starts a new metafile registered in t
func Create(t *Table, cfg Config) *Metafile {
	return metafile.New(t, cfg)
}

// Read decodes a complete metafile into a new context registered in t.
//
// Example:
//
//	f, _ := os.Open("picture.emf")
//	defer f.Close()
//	mf, err := Read(NewTable(), f, ReadOptions{})
func Read(t *Table, r io.Reader, opts ReadOptions) (*Metafile, error) {
	mf, err := metafile.Read(t, r, opts)
	if err != nil {
		return nil, wrap(err)
	}
	return mf, nil
}

// Write serializes a closed metafile
func Write(w io.Writer, mf *Metafile) error {
	if _, err := mf.WriteTo(w); err != nil {
		return wrap(err)
	}
	return nil
}

// Play replays mf against s. Records naming unknown objects are skipped and
// reported together in the returned error.
func Play(mf *Metafile, s Surface) error {
	return wrap(mf.Play(s))
}

// Copy replays src into dst. Objects src uses are created in dst's table.
func Copy(dst, src *Metafile) error {
	return wrap(src.Play(dst))
}

// Dump writes every record of mf in readable sectioned text.
//
// Example:
//
//	out, _ := os.Create("picture.txt")
//	defer out.Close()
//	err := Dump(out, mf)
func Dump(w io.Writer, mf *Metafile) error {
	return wrap(text.NewWriter(w).Write(mf.Records()))
}

// Trace writes one line per replayed drawing operation
func Trace(w io.Writer, mf *Metafile) error {
	return wrap(mf.Play(surface.NewTracer(w)))
}

// Validate replays mf against a surface that draws nothing. A nil result
// means every record decoded and every handle resolved.
func Validate(mf *Metafile) error {
	return wrap(mf.Play(&surface.Nop{}))
}

// Common errors
var (
	ErrTruncated       = &Error{Code: "truncated", Message: "truncated metafile"}
	ErrWriteFailed     = &Error{Code: "write_failed", Message: "write failed"}
	ErrInvalidRecord   = &Error{Code: "invalid_record", Message: "invalid record"}
	ErrUnknownRecord   = &Error{Code: "unknown_record", Message: "unknown record type"}
	ErrNotFound        = &Error{Code: "not_found", Message: "object not found"}
	ErrClosed          = &Error{Code: "closed", Message: "metafile closed"}
	ErrInvalidArgument = &Error{Code: "invalid_argument", Message: "invalid argument"}
)

var codes = []struct {
	sentinel error
	err      *Error
}{
	{model.ErrTruncated, ErrTruncated},
	{model.ErrWriteFailed, ErrWriteFailed},
	{model.ErrInvalidRecord, ErrInvalidRecord},
	{model.ErrUnknownRecord, ErrUnknownRecord},
	{model.ErrNotFound, ErrNotFound},
	{model.ErrClosed, ErrClosed},
	{model.ErrInvalidArgument, ErrInvalidArgument},
}

// Error represents an emf error
type Error struct {
	Code    string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches errors by code, so errors.Is(err, ErrTruncated) holds for any
// truncation error returned by this package
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// wrap classifies err by the first condition it matches. Errors without a
// known condition pass through unchanged.
func wrap(err error) error {
	if err == nil {
		return nil
	}
	var already *Error
	if errors.As(err, &already) {
		return err
	}
	for _, c := range codes {
		if errors.Is(err, c.sentinel) {
			return &Error{Code: c.err.Code, Message: c.err.Message, Cause: err}
		}
	}
	return err
}
