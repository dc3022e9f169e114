package record

import (
	"fmt"

	"github.com/dyuri/emfconv/internal/model"
)

// Surface receives drawing operations during replay. Handles passed to
// SelectObject and DeleteObject are surface handles: either stock handles or
// values previously returned by one of the Create methods.
type Surface interface {
	// Coordinate spaces
	SetWindowExtEx(size model.Size) error
	SetWindowOrgEx(origin model.Point) error
	SetViewportExtEx(size model.Size) error
	SetViewportOrgEx(origin model.Point) error
	ScaleViewportExtEx(xNum, xDenom, yNum, yDenom int32) error
	ScaleWindowExtEx(xNum, xDenom, yNum, yDenom int32) error
	SetWorldTransform(xf model.XForm) error
	ModifyWorldTransform(xf model.XForm, mode uint32) error
	SetMapMode(mode uint32) error

	// Drawing state
	SetBkMode(mode uint32) error
	SetPolyFillMode(mode uint32) error
	SetTextAlign(align uint32) error
	SetTextColor(color model.ColorRef) error
	SetBkColor(color model.ColorRef) error
	SetMiterLimit(limit float32) error
	SaveDC() error
	RestoreDC(relative int32) error
	SetMetaRgn() error

	// Objects
	SelectObject(h model.Handle) error
	DeleteObject(h model.Handle) error
	CreatePen(pen model.LogPen) (model.Handle, error)
	ExtCreatePen(pen model.ExtLogPen) (model.Handle, error)
	CreateBrushIndirect(brush model.LogBrush) (model.Handle, error)
	CreateFontIndirect(font model.ExtLogFont) (model.Handle, error)
	CreatePalette(palette model.LogPalette) (model.Handle, error)

	// Primitives
	MoveToEx(p model.Point) error
	LineTo(p model.Point) error
	Arc(box model.Rect, start, end model.Point) error
	ArcTo(box model.Rect, start, end model.Point) error
	Rectangle(box model.Rect) error
	Ellipse(box model.Rect) error
	SetPixel(p model.Point, color model.ColorRef) error
	Polyline(points []model.Point) error
	Polygon(points []model.Point) error
	PolyBezier(points []model.Point) error
	PolyBezierTo(points []model.Point) error
	PolylineTo(points []model.Point) error
	PolyPolygon(points []model.Point, counts []uint32) error
	ExtTextOutA(ref model.Point, options uint32, rect model.Rect, text []byte, dx []int32) error
	ExtTextOutW(ref model.Point, options uint32, rect model.Rect, text []uint16, dx []int32) error

	// Paths
	BeginPath() error
	EndPath() error
	CloseFigure() error
	FillPath() error
	StrokePath() error
	StrokeAndFillPath() error
}

// Playback holds the state of one replay pass: the mapping from handles
// written in the metafile to the handles the surface returned when the
// objects were created.
type Playback struct {
	handles map[model.Handle]model.Handle
}

// NewPlayback starts a replay pass with an empty handle map
func NewPlayback() *Playback {
	return &Playback{handles: make(map[model.Handle]model.Handle)}
}

// Bind records that metafile handle h was created as surface handle target
func (p *Playback) Bind(h, target model.Handle) {
	p.handles[h] = target
}

// Resolve translates a metafile handle. Stock handles pass through unchanged.
func (p *Playback) Resolve(h model.Handle) (model.Handle, error) {
	if h.IsStock() {
		return h, nil
	}
	target, ok := p.handles[h]
	if !ok {
		return 0, fmt.Errorf("metafile handle %d: %w", h, model.ErrNotFound)
	}
	return target, nil
}

// Unbind forgets a metafile handle after its object was deleted
func (p *Playback) Unbind(h model.Handle) {
	delete(p.handles, h)
}

// Len returns the number of live mappings
func (p *Playback) Len() int {
	return len(p.handles)
}
