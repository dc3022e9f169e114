package object

import (
	"errors"
	"fmt"

	"github.com/dyuri/emfconv/internal/model"
	"github.com/dyuri/emfconv/internal/record"
	"github.com/sirupsen/logrus"
)

// Table maps handles to objects. Slot 0 is never used so that a zero handle
// always means "no object"; freed slots are reused lowest first.
//
// A table and the contexts registered in it are not safe for concurrent use.
type Table struct {
	stock   [model.StockLast + 1]Graphics
	objects []Object
	handles map[Object]model.Handle
}

// NewTable creates a table holding only the stock objects
func NewTable() *Table {
	return &Table{
		stock:   stockObjects(),
		objects: make([]Object, 1),
		handles: make(map[Object]model.Handle),
	}
}

// Close drops every object that is still registered
func (t *Table) Close() {
	if n := len(t.handles); n > 0 {
		logrus.WithField("objects", n).Debug("closing object table with live objects")
	}
	t.objects = make([]Object, 1)
	t.handles = make(map[Object]model.Handle)
}

// Len returns the number of registered objects, stock objects excluded
func (t *Table) Len() int { return len(t.handles) }

// Add registers obj and returns its handle. Adding a registered object
// returns the handle it already has.
func (t *Table) Add(obj Object) model.Handle {
	if h, ok := t.handles[obj]; ok {
		return h
	}
	slot := 0
	for i := 1; i < len(t.objects); i++ {
		if t.objects[i] == nil {
			slot = i
			break
		}
	}
	if slot == 0 {
		slot = len(t.objects)
		t.objects = append(t.objects, nil)
	}
	t.objects[slot] = obj
	h := model.Handle(slot)
	t.handles[obj] = h

	logrus.WithFields(logrus.Fields{"handle": uint32(h), "kind": obj.Kind()}).Debug("object added")
	return h
}

// Find returns the object registered under h
func (t *Table) Find(h model.Handle) (Object, error) {
	if h.IsStock() {
		i := uint32(h &^ model.StockObjectFlag)
		if i > uint32(model.StockLast) {
			return nil, fmt.Errorf("stock object %d: %w", i, model.ErrNotFound)
		}
		return t.stock[i], nil
	}
	if h == 0 || int(h) >= len(t.objects) || t.objects[h] == nil {
		return nil, fmt.Errorf("object handle %d: %w", uint32(h), model.ErrNotFound)
	}
	return t.objects[h], nil
}

// Handle returns the handle obj is registered under
func (t *Table) Handle(obj Object) (model.Handle, bool) {
	h, ok := t.handles[obj]
	return h, ok
}

// Remove unregisters obj. Removing an unknown object does nothing.
func (t *Table) Remove(obj Object) {
	h, ok := t.handles[obj]
	if !ok {
		return
	}
	t.objects[h] = nil
	delete(t.handles, obj)
	logrus.WithFields(logrus.Fields{"handle": uint32(h), "kind": obj.Kind()}).Debug("object removed")
}

// Lookup finds the object under h and checks its concrete type
func Lookup[T Object](t *Table, h model.Handle) (T, error) {
	var zero T
	obj, err := t.Find(h)
	if err != nil {
		return zero, err
	}
	v, ok := obj.(T)
	if !ok {
		return zero, fmt.Errorf("handle %d refers to a %v: %w", uint32(h), obj.Kind(), model.ErrInvalidArgument)
	}
	return v, nil
}

// NewRecord returns the decoder for a record type
func (t *Table) NewRecord(typ model.RecordType) (record.DecodeFunc, error) {
	return record.Lookup(typ)
}

// DeleteObject deletes a graphics object. Every context the object was
// selected into is told to release its metafile handle first. Stock objects
// cannot be deleted.
func (t *Table) DeleteObject(h model.Handle) error {
	if h.IsStock() {
		return fmt.Errorf("delete stock object %#x: %w", uint32(h), model.ErrInvalidArgument)
	}
	g, err := Lookup[Graphics](t, h)
	if err != nil {
		return fmt.Errorf("delete object: %w", err)
	}

	var errs []error
	for _, c := range g.Contexts() {
		mh, _ := g.HandleIn(c)
		if err := c.ReleaseObject(g, mh); err != nil {
			errs = append(errs, err)
		}
		g.Release(c)
	}
	t.Remove(g)
	return errors.Join(errs...)
}

// GetStockObject returns the handle of a predefined object, or 0 when the
// index is out of range
func (t *Table) GetStockObject(s model.StockObject) model.Handle {
	if s > model.StockLast {
		return 0
	}
	return s.Handle()
}

// CreatePen creates a cosmetic pen
func (t *Table) CreatePen(style uint32, width int32, color model.ColorRef) model.Handle {
	return t.CreatePenIndirect(model.LogPen{Style: style, Width: model.Point{X: width}, Color: color})
}

// CreatePenIndirect creates a pen from its logical description
func (t *Table) CreatePenIndirect(pen model.LogPen) model.Handle {
	return t.Add(&Pen{LogPen: pen})
}

// ExtCreatePen creates a pen whose stroke is painted with a brush. Style
// entries are only kept for user-styled pens.
func (t *Table) ExtCreatePen(style, width uint32, brush model.LogBrush, styleEntries []uint32) (model.Handle, error) {
	if style&model.PenStyleMask == model.PenUserStyle {
		if len(styleEntries) == 0 {
			return 0, fmt.Errorf("user styled pen without style entries: %w", model.ErrInvalidArgument)
		}
	} else {
		styleEntries = nil
	}
	return t.Add(&ExtPen{ExtLogPen: model.ExtLogPen{
		PenStyle:     style,
		Width:        width,
		BrushStyle:   brush.Style,
		Color:        brush.Color,
		Hatch:        brush.Hatch,
		StyleEntries: append([]uint32(nil), styleEntries...),
	}}), nil
}

// CreateBrushIndirect creates a brush from its logical description
func (t *Table) CreateBrushIndirect(brush model.LogBrush) model.Handle {
	return t.Add(&Brush{LogBrush: brush})
}

// CreateSolidBrush creates a solid brush of one color
func (t *Table) CreateSolidBrush(color model.ColorRef) model.Handle {
	return t.CreateBrushIndirect(model.LogBrush{Style: model.BrushSolid, Color: color})
}

// FontSpec carries the arguments of CreateFont
type FontSpec struct {
	Height         int32
	Width          int32
	Escapement     int32
	Orientation    int32
	Weight         int32
	Italic         bool
	Underline      bool
	StrikeOut      bool
	CharSet        uint8
	OutPrecision   uint8
	ClipPrecision  uint8
	Quality        uint8
	PitchAndFamily uint8
	FaceName       string
}

// CreateFont creates a font from individual attributes
func (t *Table) CreateFont(spec FontSpec) model.Handle {
	lf := model.LogFont{
		Height:         spec.Height,
		Width:          spec.Width,
		Escapement:     spec.Escapement,
		Orientation:    spec.Orientation,
		Weight:         spec.Weight,
		Italic:         flag(spec.Italic),
		Underline:      flag(spec.Underline),
		StrikeOut:      flag(spec.StrikeOut),
		CharSet:        spec.CharSet,
		OutPrecision:   spec.OutPrecision,
		ClipPrecision:  spec.ClipPrecision,
		Quality:        spec.Quality,
		PitchAndFamily: spec.PitchAndFamily,
	}
	lf.SetFaceName(spec.FaceName)
	return t.CreateFontIndirect(lf)
}

func flag(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}

// CreateFontIndirect creates a font from its logical description
func (t *Table) CreateFontIndirect(lf model.LogFont) model.Handle {
	return t.Add(NewFont(lf))
}

// CreatePalette creates a logical palette
func (t *Table) CreatePalette(pal model.LogPalette) model.Handle {
	pal.Entries = append([]model.PaletteEntry(nil), pal.Entries...)
	return t.Add(&Palette{LogPalette: pal})
}
