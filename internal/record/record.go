// Package record implements the metafile record variants.
//
// Every record knows its own type tag and encoded length, writes itself
// through a binary.Writer and replays itself against a Surface. Decoders are
// looked up by type tag in a dispatch table; a tag without a decoder is an
// error, never a skip.
package record

import (
	"fmt"

	"github.com/dyuri/emfconv/internal/binary"
	"github.com/dyuri/emfconv/internal/model"
)

// Record is one unit of the metafile stream
type Record interface {
	// Type returns the record type tag
	Type() model.RecordType

	// Size returns the encoded length in bytes, always a multiple of 4
	Size() uint32

	// Encode writes the complete record including its type and length
	Encode(w *binary.Writer) error

	// Replay invokes the matching surface operation
	Replay(p *Playback, s Surface) error
}

// HandleRecord is implemented by records that create an object in the
// metafile's handle space
type HandleRecord interface {
	Record
	ObjectHandle() model.Handle
}

// DecodeOptions adjusts how ambiguous fields are interpreted
type DecodeOptions struct {
	// IntegerMiterLimit reads EMR_SETMITERLIMIT as a 32-bit integer, as
	// written by older producers
	IntegerMiterLimit bool
}

// Frame describes the record a decoder is working on. The reader passed
// alongside it is positioned just after the record header.
type Frame struct {
	Type    model.RecordType
	Size    uint32
	Options DecodeOptions
}

// DecodeFunc builds a record from its encoded form
type DecodeFunc func(r *binary.Reader, f Frame) (Record, error)

var decoders = map[model.RecordType]DecodeFunc{}

func register(fn DecodeFunc, types ...model.RecordType) {
	for _, t := range types {
		if _, dup := decoders[t]; dup {
			panic("record: decoder registered twice for " + t.String())
		}
		decoders[t] = fn
	}
}

// Lookup returns the decoder for a record type
func Lookup(t model.RecordType) (DecodeFunc, error) {
	fn, ok := decoders[t]
	if !ok {
		return nil, fmt.Errorf("%v: %w", t, model.ErrUnknownRecord)
	}
	return fn, nil
}

// Types lists every record type that has a decoder
func Types() []model.RecordType {
	out := make([]model.RecordType, 0, len(decoders))
	for t := range decoders {
		out = append(out, t)
	}
	return out
}

// Decode dispatches a framed record to its decoder. Any codec error left on
// the reader is returned even if the decoder itself did not notice it.
func Decode(r *binary.Reader, f Frame) (Record, error) {
	fn, err := Lookup(f.Type)
	if err != nil {
		return nil, err
	}
	rec, err := fn(r, f)
	if err != nil {
		return nil, err
	}
	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("%v: %w", f.Type, err)
	}
	return rec, nil
}

func invalid(t model.RecordType, format string, args ...any) error {
	return fmt.Errorf("%v: %s: %w", t, fmt.Sprintf(format, args...), model.ErrInvalidRecord)
}

// needSize rejects records whose declared length cannot hold want bytes
func needSize(f Frame, want uint64) error {
	if uint64(f.Size) < want {
		return invalid(f.Type, "length %d, need at least %d", f.Size, want)
	}
	return nil
}

// header writes the type tag and length of r
func header(w *binary.Writer, r Record) {
	w.RecordHeader(r.Type(), r.Size())
}
