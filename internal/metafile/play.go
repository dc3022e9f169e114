package metafile

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/dyuri/emfconv/internal/binary"
	"github.com/dyuri/emfconv/internal/model"
	"github.com/dyuri/emfconv/internal/object"
	"github.com/dyuri/emfconv/internal/record"
	"github.com/sirupsen/logrus"
)

// Options configures Read
type Options struct {
	MaxRecordSize     uint32 // 0 selects record.DefaultMaxRecordSize
	IntegerMiterLimit bool
	Codec             binary.Options
}

// Read decodes a complete metafile into a new closed context registered in
// table. Header totals are recomputed from the records actually read.
func Read(table *object.Table, r io.Reader, opts Options) (*Context, error) {
	rd := record.NewReader(r, record.ReadOptions{
		MaxRecordSize: opts.MaxRecordSize,
		Decode:        record.DecodeOptions{IntegerMiterLimit: opts.IntegerMiterLimit},
		Codec:         opts.Codec,
	})

	first, err := rd.Next()
	if err != nil {
		return nil, fmt.Errorf("read metafile: %w", err)
	}
	h := first.(*record.Header)
	declared := *h

	frame := h.Frame
	c := New(table, Config{
		Frame:             &frame,
		Device:            h.Device,
		Millimeters:       h.Millimeters,
		Description:       h.Description,
		IntegerMiterLimit: opts.IntegerMiterLimit,
		Codec:             opts.Codec,
	})
	h.Bytes = h.Size()
	h.Records = 1
	h.Handles = 1
	c.header = h
	c.records[0] = h

	for {
		rec, err := rd.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			c.DeleteMetafile()
			return nil, fmt.Errorf("read metafile: %w", err)
		}
		if hr, ok := rec.(record.HandleRecord); ok {
			// handles past the 16-bit header count are kept but never reserved
			if oh := hr.ObjectHandle(); oh > 0 && oh <= math.MaxUint16 {
				c.handles.Set(uint(oh))
			}
			err = c.AppendHandle(hr)
		} else {
			err = c.AppendRecord(rec)
		}
		if err != nil {
			c.DeleteMetafile()
			return nil, err
		}
		if rec.Type() == model.RecEOF {
			c.closed = true
		}
	}

	if declared.Records != h.Records || declared.Bytes != h.Bytes {
		logrus.WithFields(logrus.Fields{
			"declared_records": declared.Records,
			"records":          h.Records,
			"declared_bytes":   declared.Bytes,
			"bytes":            h.Bytes,
		}).Debug("header totals recomputed")
	}
	return c, nil
}

// Play replays every record against s with a fresh handle mapping. Records
// that refer to unknown objects are logged and skipped; the misses are
// returned together once playback ends. Any other surface error stops
// playback.
func (c *Context) Play(s record.Surface) error {
	if c.deleted {
		return fmt.Errorf("metafile %d deleted: %w", uint32(c.handle), model.ErrClosed)
	}
	p := record.NewPlayback()
	var misses []error
	for i, rec := range c.records {
		err := rec.Replay(p, s)
		if err == nil {
			continue
		}
		err = fmt.Errorf("record %d (%v): %w", i, rec.Type(), err)
		if !errors.Is(err, model.ErrNotFound) {
			return err
		}
		logrus.WithFields(logrus.Fields{
			"metafile": uint32(c.handle),
			"index":    i,
			"type":     rec.Type(),
		}).WithError(err).Warn("playback skipped record")
		misses = append(misses, err)
	}
	return errors.Join(misses...)
}
