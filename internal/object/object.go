// Package object holds the process-wide table of graphics objects and device
// contexts, including the predefined stock objects.
//
// A graphics object lives in the table under one handle. Each metafile
// context it is selected into gives it a second, context-local handle in the
// metafile's own handle space; the object remembers those per context so
// that deleting it can be propagated to every metafile that uses it.
package object

import (
	"github.com/dyuri/emfconv/internal/model"
	"github.com/dyuri/emfconv/internal/record"
)

// Kind classifies table entries
type Kind int

const (
	KindPen Kind = iota + 1
	KindBrush
	KindFont
	KindPalette
	KindMetafile
)

func (k Kind) String() string {
	switch k {
	case KindPen:
		return "pen"
	case KindBrush:
		return "brush"
	case KindFont:
		return "font"
	case KindPalette:
		return "palette"
	case KindMetafile:
		return "metafile"
	default:
		return "unknown"
	}
}

// Object is anything the table can hold
type Object interface {
	Kind() Kind
}

// Context is a device context graphics objects can be selected into
type Context interface {
	Object

	// ReleaseObject is called when g is deleted while it still has the
	// metafile handle h in this context
	ReleaseObject(g Graphics, h model.Handle) error
}

// Graphics is a selectable drawing object
type Graphics interface {
	Object

	// Stock reports whether this is a predefined object
	Stock() bool

	// Record creates the record defining the object at metafile handle h
	Record(h model.Handle) record.HandleRecord

	// HandleIn returns the metafile handle the object has in c
	HandleIn(c Context) (model.Handle, bool)

	// SelectInto remembers the metafile handle the object has in c
	SelectInto(c Context, h model.Handle)

	// Release forgets the object's handle in c
	Release(c Context)

	// Contexts lists every context holding a handle for the object
	Contexts() []Context
}

// graphics tracks per-context metafile handles
type graphics struct {
	stock    bool
	contexts map[Context]model.Handle
}

func (g *graphics) Stock() bool { return g.stock }

func (g *graphics) HandleIn(c Context) (model.Handle, bool) {
	h, ok := g.contexts[c]
	return h, ok
}

func (g *graphics) SelectInto(c Context, h model.Handle) {
	if g.contexts == nil {
		g.contexts = make(map[Context]model.Handle)
	}
	g.contexts[c] = h
}

func (g *graphics) Release(c Context) {
	delete(g.contexts, c)
}

func (g *graphics) Contexts() []Context {
	out := make([]Context, 0, len(g.contexts))
	for c := range g.contexts {
		out = append(out, c)
	}
	return out
}

// Pen is a cosmetic pen
type Pen struct {
	graphics
	model.LogPen
}

func (p *Pen) Kind() Kind { return KindPen }

func (p *Pen) Record(h model.Handle) record.HandleRecord {
	return &record.CreatePen{Handle: h, Pen: p.LogPen}
}

// ExtPen is a pen created with extended attributes. It selects like a pen.
type ExtPen struct {
	graphics
	model.ExtLogPen
}

func (p *ExtPen) Kind() Kind { return KindPen }

func (p *ExtPen) Record(h model.Handle) record.HandleRecord {
	pen := p.ExtLogPen
	pen.StyleEntries = append([]uint32(nil), p.StyleEntries...)
	return &record.ExtCreatePen{Handle: h, Pen: pen}
}

// Brush fills areas
type Brush struct {
	graphics
	model.LogBrush
}

func (b *Brush) Kind() Kind { return KindBrush }

func (b *Brush) Record(h model.Handle) record.HandleRecord {
	return &record.CreateBrushIndirect{Handle: h, Brush: b.LogBrush}
}

// Font selects a typeface for text output
type Font struct {
	graphics
	model.ExtLogFont
}

func (f *Font) Kind() Kind { return KindFont }

func (f *Font) Record(h model.Handle) record.HandleRecord {
	return &record.ExtCreateFontIndirectW{Handle: h, Font: f.ExtLogFont}
}

// Palette is a logical color palette
type Palette struct {
	graphics
	model.LogPalette
}

func (p *Palette) Kind() Kind { return KindPalette }

func (p *Palette) Record(h model.Handle) record.HandleRecord {
	pal := p.LogPalette
	pal.Entries = append([]model.PaletteEntry(nil), p.Entries...)
	return &record.CreatePalette{Handle: h, Palette: pal}
}

// NewFont fills in the extended font fields that a plain font request does
// not carry
func NewFont(lf model.LogFont) *Font {
	f := &Font{}
	f.LogFont = lf
	f.Panose = model.PanoseAny
	return f
}
