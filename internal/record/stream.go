package record

import (
	"errors"
	"fmt"
	"io"

	"github.com/dyuri/emfconv/internal/binary"
	"github.com/dyuri/emfconv/internal/model"
	"github.com/sirupsen/logrus"
)

// DefaultMaxRecordSize bounds the allocation made for a single record
const DefaultMaxRecordSize = 64 << 20

// ReadOptions configures stream decoding
type ReadOptions struct {
	MaxRecordSize uint32 // 0 selects DefaultMaxRecordSize
	Decode        DecodeOptions
	Codec         binary.Options
}

// Reader decodes a metafile stream one record at a time. The first record
// must be the header; the stream must end with an EOF record.
type Reader struct {
	r    io.Reader
	opts ReadOptions
	n    int
	done bool
}

// NewReader creates a stream reader
func NewReader(r io.Reader, opts ReadOptions) *Reader {
	if opts.MaxRecordSize == 0 {
		opts.MaxRecordSize = DefaultMaxRecordSize
	}
	return &Reader{r: r, opts: opts}
}

// Next returns the next record. It returns io.EOF once the EOF record has
// been returned.
func (rd *Reader) Next() (Record, error) {
	if rd.done {
		return nil, io.EOF
	}

	br, typ, size, err := binary.ReadRecord(rd.r, rd.opts.MaxRecordSize, rd.opts.Codec)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("stream ended after %d records without EMR_EOF: %w", rd.n, model.ErrTruncated)
		}
		return nil, fmt.Errorf("record %d: %w", rd.n, err)
	}

	if rd.n == 0 && typ != model.RecHeader {
		return nil, fmt.Errorf("first record is %v, want EMR_HEADER: %w", typ, model.ErrInvalidRecord)
	}
	if rd.n > 0 && typ == model.RecHeader {
		return nil, fmt.Errorf("record %d: second EMR_HEADER: %w", rd.n, model.ErrInvalidRecord)
	}

	rec, err := Decode(br, Frame{Type: typ, Size: size, Options: rd.opts.Decode})
	if err != nil {
		return nil, fmt.Errorf("record %d: %w", rd.n, err)
	}

	logrus.WithFields(logrus.Fields{
		"index": rd.n,
		"type":  typ,
		"size":  size,
	}).Debug("decoded record")

	rd.n++
	if typ == model.RecEOF {
		rd.done = true
	}
	return rec, nil
}

// Count returns the number of records decoded so far
func (rd *Reader) Count() int { return rd.n }

// ReadAll decodes a complete stream
func ReadAll(r io.Reader, opts ReadOptions) ([]Record, error) {
	rd := NewReader(r, opts)
	var out []Record
	for {
		rec, err := rd.Next()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
}

// WriteAll encodes records in order and returns the number of bytes written
func WriteAll(w io.Writer, recs []Record, opts ...binary.Options) (int64, error) {
	bw := binary.NewWriter(w, opts...)
	for i, rec := range recs {
		if err := rec.Encode(bw); err != nil {
			return bw.N(), fmt.Errorf("record %d (%v): %w", i, rec.Type(), err)
		}
	}
	return bw.N(), nil
}
