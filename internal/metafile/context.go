// Package metafile builds enhanced metafiles in memory.
//
// A Context is a metafile device context: every drawing or state call
// appends one record and updates the small amount of graphics state needed
// to keep the header correct. Objects from the shared object table are
// written into the metafile the first time they are selected.
package metafile

import (
	"bufio"
	"fmt"
	"io"
	"math"

	"github.com/bits-and-blooms/bitset"
	"github.com/dyuri/emfconv/internal/binary"
	"github.com/dyuri/emfconv/internal/model"
	"github.com/dyuri/emfconv/internal/object"
	"github.com/dyuri/emfconv/internal/record"
	"github.com/sirupsen/logrus"
)

// Reference device defaults
const (
	DefaultDeviceWidth  = 1280
	DefaultDeviceHeight = 1024
	DefaultWidthMM      = 320
	DefaultHeightMM     = 240
	DefaultResolution   = 96
)

// boundsMargin is added around the painted area in auto-bounds mode
const boundsMargin = 10

// Config describes a new metafile
type Config struct {
	// Frame is the picture frame in 0.01 mm units. Nil selects auto-bounds
	// mode where bounds and frame follow the drawing.
	Frame *model.Rect

	Device      model.Size // reference device in pixels
	Millimeters model.Size // reference device in millimeters
	Resolution  int32      // reference device DPI
	Description []uint16   // see model.NewDescription

	// IntegerMiterLimit writes EMR_SETMITERLIMIT as an integer
	IntegerMiterLimit bool

	Codec binary.Options
}

func (cfg Config) withDefaults() Config {
	if cfg.Device.CX <= 0 || cfg.Device.CY <= 0 {
		cfg.Device = model.Size{CX: DefaultDeviceWidth, CY: DefaultDeviceHeight}
	}
	if cfg.Millimeters.CX <= 0 || cfg.Millimeters.CY <= 0 {
		cfg.Millimeters = model.Size{CX: DefaultWidthMM, CY: DefaultHeightMM}
	}
	if cfg.Resolution <= 0 {
		cfg.Resolution = DefaultResolution
	}
	return cfg
}

// state is the graphics state saved by SaveDC
type state struct {
	viewportOrg model.Point
	viewportExt model.Size
	windowOrg   model.Point
	windowExt   model.Size
	xform       model.XForm
	point       model.Point

	pen, brush, font, palette model.Handle

	textAlign    uint32
	textColor    model.ColorRef
	bkColor      model.ColorRef
	bkMode       uint32
	polyFillMode uint32
	mapMode      uint32
	miterLimit   float32
}

func defaultState() state {
	return state{
		viewportExt:  model.Size{CX: 1, CY: 1},
		windowExt:    model.Size{CX: 1, CY: 1},
		xform:        model.IdentityXForm,
		pen:          model.BlackPen.Handle(),
		brush:        model.BlackBrush.Handle(),
		font:         model.DeviceDefaultFont.Handle(),
		palette:      model.DefaultPalette.Handle(),
		textAlign:    model.TextAlignBaseline,
		textColor:    model.RGB(0, 0, 0),
		bkColor:      model.RGB(0xff, 0xff, 0xff),
		bkMode:       model.Opaque,
		polyFillMode: model.Alternate,
		mapMode:      model.MapText,
		miterLimit:   10,
	}
}

// Context is a metafile device context. It is not safe for concurrent use.
type Context struct {
	table  *object.Table
	handle model.Handle
	cfg    Config

	header  *record.Header
	records []record.Record
	handles *bitset.BitSet

	autoBounds bool
	minDevice  model.Point
	maxDevice  model.Point

	closed  bool
	deleted bool

	// objects written into this metafile
	objects map[object.Graphics]struct{}

	state
	saved []state
}

var (
	_ object.Context = (*Context)(nil)
	_ record.Surface = (*Context)(nil)
)

// New creates an open metafile context and registers it in table
func New(table *object.Table, cfg Config) *Context {
	cfg = cfg.withDefaults()
	c := &Context{
		table:   table,
		cfg:     cfg,
		handles: bitset.New(1).Set(0),
		objects: make(map[object.Graphics]struct{}),
		state:   defaultState(),
	}

	var bounds, frame model.Rect
	if cfg.Frame != nil {
		frame = *cfg.Frame
		dev, mm := cfg.Device, cfg.Millimeters
		bounds = model.Rect{
			Left:   scaleDown(frame.Left, dev.CX, mm.CX),
			Top:    scaleDown(frame.Top, dev.CY, mm.CY),
			Right:  scaleDown(frame.Right, dev.CX, mm.CX),
			Bottom: scaleDown(frame.Bottom, dev.CY, mm.CY),
		}
	} else {
		c.autoBounds = true
		bounds = model.Rect{Left: -boundsMargin, Top: -boundsMargin, Right: boundsMargin, Bottom: boundsMargin}
	}
	c.header = record.NewHeader(bounds, frame, cfg.Device, cfg.Millimeters, cfg.Description)
	c.records = []record.Record{c.header}
	if c.autoBounds {
		c.header.Frame = model.Rect{
			Left:   c.frameEdge(bounds.Left, true, math.Floor),
			Top:    c.frameEdge(bounds.Top, false, math.Floor),
			Right:  c.frameEdge(bounds.Right, true, math.Ceil),
			Bottom: c.frameEdge(bounds.Bottom, false, math.Ceil),
		}
	}
	c.minDevice = c.viewportOrg
	c.maxDevice = c.viewportOrg

	c.handle = table.Add(c)
	return c
}

// scaleDown converts a frame coordinate in 0.01 mm to device pixels
func scaleDown(v, pixels, mm int32) int32 {
	return int32(int64(v) * int64(pixels) / (int64(max(mm, 1)) * 100))
}

// frameEdge converts a device coordinate to 0.01 mm
func (c *Context) frameEdge(v int32, horizontal bool, round func(float64) float64) int32 {
	dev, mm := c.header.Device.CY, c.header.Millimeters.CY
	if horizontal {
		dev, mm = c.header.Device.CX, c.header.Millimeters.CX
	}
	return int32(round(float64(v) * float64(mm) * 100 / float64(max(dev, 1))))
}

func (c *Context) Kind() object.Kind { return object.KindMetafile }

// Handle returns the context's handle in the object table
func (c *Context) Handle() model.Handle { return c.handle }

// Header returns the header record. It is nil after DeleteMetafile.
func (c *Context) Header() *record.Header { return c.header }

// Records returns the record sequence, header first
func (c *Context) Records() []record.Record { return c.records }

// Closed reports whether the metafile has been closed
func (c *Context) Closed() bool { return c.closed }

// AutoBounds reports whether bounds follow the drawing
func (c *Context) AutoBounds() bool { return c.autoBounds }

func (c *Context) writable() error {
	if c.closed {
		return fmt.Errorf("metafile %d: %w", uint32(c.handle), model.ErrClosed)
	}
	return nil
}

// AppendRecord adds a record and updates the header totals
func (c *Context) AppendRecord(rec record.Record) error {
	if err := c.writable(); err != nil {
		return err
	}
	c.records = append(c.records, rec)
	c.header.Bytes += rec.Size()
	c.header.Records++

	logrus.WithFields(logrus.Fields{
		"metafile": uint32(c.handle),
		"type":     rec.Type(),
		"size":     rec.Size(),
	}).Debug("record appended")
	return nil
}

// AppendHandle adds an object-defining record and makes sure the header's
// handle count covers its handle
func (c *Context) AppendHandle(rec record.HandleRecord) error {
	if err := c.AppendRecord(rec); err != nil {
		return err
	}
	c.coverHandle(rec.ObjectHandle())
	return nil
}

func (c *Context) coverHandle(h model.Handle) {
	if n := uint32(h) + 1; n > uint32(c.header.Handles) && n <= math.MaxUint16 {
		c.header.Handles = uint16(n)
	}
}

// MergePoint maps a logical point to device space and widens the painted
// area. In auto-bounds mode the header bounds and frame follow.
func (c *Context) MergePoint(p model.Point) {
	ww := float64(max(c.windowExt.CX, 1))
	wh := float64(max(c.windowExt.CY, 1))
	d := model.Point{
		X: int32(float64(p.X-c.windowOrg.X)/ww*float64(c.viewportExt.CX) + float64(c.viewportOrg.X)),
		Y: int32(float64(p.Y-c.windowOrg.Y)/wh*float64(c.viewportExt.CY) + float64(c.viewportOrg.Y)),
	}

	b := &c.header.Bounds
	f := &c.header.Frame
	if d.X < c.minDevice.X {
		c.minDevice.X = d.X
		if c.autoBounds {
			b.Left = d.X - boundsMargin
			f.Left = c.frameEdge(b.Left, true, math.Floor)
		}
	} else if d.X > c.maxDevice.X {
		c.maxDevice.X = d.X
		if c.autoBounds {
			b.Right = d.X + boundsMargin
			f.Right = c.frameEdge(b.Right, true, math.Ceil)
		}
	}
	if d.Y < c.minDevice.Y {
		c.minDevice.Y = d.Y
		if c.autoBounds {
			b.Top = d.Y - boundsMargin
			f.Top = c.frameEdge(b.Top, false, math.Floor)
		}
	} else if d.Y > c.maxDevice.Y {
		c.maxDevice.Y = d.Y
		if c.autoBounds {
			b.Bottom = d.Y + boundsMargin
			f.Bottom = c.frameEdge(b.Bottom, false, math.Ceil)
		}
	}
}

func (c *Context) mergePoints(points []model.Point) {
	for _, p := range points {
		c.MergePoint(p)
	}
}

// NextHandle reserves the lowest free metafile handle. Handle 0 is never
// issued.
func (c *Context) NextHandle() model.Handle {
	i, ok := c.handles.NextClear(1)
	if !ok {
		i = max(c.handles.Len(), 1)
	}
	c.handles.Set(i)
	h := model.Handle(i)
	c.coverHandle(h)
	return h
}

// ClearHandle releases a metafile handle for reuse
func (c *Context) ClearHandle(h model.Handle) {
	if h == 0 || uint(h) >= c.handles.Len() {
		return
	}
	c.handles.Clear(uint(h))
}

// ReleaseObject is called by the object table when g is deleted. The
// deletion is recorded and the stock default replaces g if it was current.
func (c *Context) ReleaseObject(g object.Graphics, h model.Handle) error {
	delete(c.objects, g)
	if c.closed {
		return nil
	}
	if err := c.AppendRecord(record.NewDeleteObject(h)); err != nil {
		return err
	}
	c.ClearHandle(h)

	th, ok := c.table.Handle(g)
	if !ok {
		return nil
	}
	switch {
	case c.pen == th:
		c.pen = model.BlackPen.Handle()
	case c.brush == th:
		c.brush = model.BlackBrush.Handle()
	case c.font == th:
		c.font = model.DeviceDefaultFont.Handle()
	case c.palette == th:
		c.palette = model.DefaultPalette.Handle()
	}
	return nil
}

// Close appends the EOF record. No records can be added afterwards.
func (c *Context) Close() error {
	if c.deleted {
		return fmt.Errorf("metafile %d deleted: %w", uint32(c.handle), model.ErrClosed)
	}
	if err := c.AppendRecord(&record.EOF{}); err != nil {
		return err
	}
	c.closed = true

	logrus.WithFields(logrus.Fields{
		"metafile": uint32(c.handle),
		"records":  c.header.Records,
		"bytes":    c.header.Bytes,
		"handles":  c.header.Handles,
	}).Debug("metafile closed")
	return nil
}

// DeleteMetafile drops every record, header included, and unregisters the
// context. Objects selected into it forget their handles here.
func (c *Context) DeleteMetafile() {
	for g := range c.objects {
		g.Release(c)
	}
	c.objects = make(map[object.Graphics]struct{})
	c.records = nil
	c.header = nil
	c.closed = true
	c.deleted = true
	c.table.Remove(c)
}

// WriteTo serializes a closed metafile
func (c *Context) WriteTo(w io.Writer) (int64, error) {
	if c.deleted {
		return 0, fmt.Errorf("metafile %d deleted: %w", uint32(c.handle), model.ErrClosed)
	}
	if !c.closed {
		return 0, fmt.Errorf("metafile %d must be closed before writing: %w", uint32(c.handle), model.ErrInvalidArgument)
	}
	bw := bufio.NewWriter(w)
	n, err := record.WriteAll(bw, c.records, c.cfg.Codec)
	if err != nil {
		return n, err
	}
	if err := bw.Flush(); err != nil {
		return n, fmt.Errorf("flush metafile: %w: %v", model.ErrWriteFailed, err)
	}
	return n, nil
}

// DeviceCaps reports a reference device capability, or -1 for unknown
// indexes
func (c *Context) DeviceCaps(index int) int32 {
	switch index {
	case model.CapDriverVersion:
		return 1
	case model.CapTechnology:
		return model.TechnologyMetafile
	case model.CapHorzSize:
		return c.cfg.Millimeters.CX
	case model.CapVertSize:
		return c.cfg.Millimeters.CY
	case model.CapHorzRes:
		return c.cfg.Device.CX
	case model.CapVertRes:
		return c.cfg.Device.CY
	case model.CapLogPixelsX, model.CapLogPixelsY:
		return c.cfg.Resolution
	default:
		return -1
	}
}

func (c *Context) ViewportOrg() model.Point     { return c.viewportOrg }
func (c *Context) ViewportExt() model.Size      { return c.viewportExt }
func (c *Context) WindowOrg() model.Point       { return c.windowOrg }
func (c *Context) WindowExt() model.Size        { return c.windowExt }
func (c *Context) WorldTransform() model.XForm  { return c.xform }
func (c *Context) CurrentPosition() model.Point { return c.point }
func (c *Context) TextAlign() uint32            { return c.textAlign }
func (c *Context) TextColor() model.ColorRef    { return c.textColor }
func (c *Context) BkColor() model.ColorRef      { return c.bkColor }
func (c *Context) BkMode() uint32               { return c.bkMode }
func (c *Context) PolyFillMode() uint32         { return c.polyFillMode }
func (c *Context) MapMode() uint32              { return c.mapMode }
func (c *Context) MiterLimit() float32          { return c.miterLimit }

// Pen returns the table handle of the selected pen
func (c *Context) Pen() model.Handle { return c.pen }

// Brush returns the table handle of the selected brush
func (c *Context) Brush() model.Handle { return c.brush }

// Font returns the table handle of the selected font
func (c *Context) Font() model.Handle { return c.font }

// Palette returns the table handle of the selected palette
func (c *Context) Palette() model.Handle { return c.palette }

// PaintedArea returns the device-space rectangle spanned by the points
// merged so far
func (c *Context) PaintedArea() model.Rect {
	return model.Rect{Left: c.minDevice.X, Top: c.minDevice.Y, Right: c.maxDevice.X, Bottom: c.maxDevice.Y}
}
