package surface

import (
	"github.com/dyuri/emfconv/internal/model"
	"github.com/dyuri/emfconv/internal/record"
)

// Nop accepts every call and draws nothing. Playing into it checks that a
// metafile replays cleanly.
type Nop struct {
	next model.Handle
}

var _ record.Surface = (*Nop)(nil)

func (n *Nop) create() (model.Handle, error) {
	n.next++
	return n.next, nil
}

func (*Nop) SetWindowExtEx(model.Size) error                        { return nil }
func (*Nop) SetWindowOrgEx(model.Point) error                       { return nil }
func (*Nop) SetViewportExtEx(model.Size) error                      { return nil }
func (*Nop) SetViewportOrgEx(model.Point) error                     { return nil }
func (*Nop) ScaleViewportExtEx(int32, int32, int32, int32) error    { return nil }
func (*Nop) ScaleWindowExtEx(int32, int32, int32, int32) error      { return nil }
func (*Nop) SetWorldTransform(model.XForm) error                    { return nil }
func (*Nop) ModifyWorldTransform(model.XForm, uint32) error         { return nil }
func (*Nop) SetMapMode(uint32) error                                { return nil }
func (*Nop) SetBkMode(uint32) error                                 { return nil }
func (*Nop) SetPolyFillMode(uint32) error                           { return nil }
func (*Nop) SetTextAlign(uint32) error                              { return nil }
func (*Nop) SetTextColor(model.ColorRef) error                      { return nil }
func (*Nop) SetBkColor(model.ColorRef) error                        { return nil }
func (*Nop) SetMiterLimit(float32) error                            { return nil }
func (*Nop) SaveDC() error                                          { return nil }
func (*Nop) RestoreDC(int32) error                                  { return nil }
func (*Nop) SetMetaRgn() error                                      { return nil }
func (*Nop) SelectObject(model.Handle) error                        { return nil }
func (*Nop) DeleteObject(model.Handle) error                        { return nil }
func (n *Nop) CreatePen(model.LogPen) (model.Handle, error)         { return n.create() }
func (n *Nop) ExtCreatePen(model.ExtLogPen) (model.Handle, error)   { return n.create() }
func (n *Nop) CreatePalette(model.LogPalette) (model.Handle, error) { return n.create() }
func (*Nop) MoveToEx(model.Point) error                             { return nil }
func (*Nop) LineTo(model.Point) error                               { return nil }
func (*Nop) Arc(model.Rect, model.Point, model.Point) error         { return nil }
func (*Nop) ArcTo(model.Rect, model.Point, model.Point) error       { return nil }
func (*Nop) Rectangle(model.Rect) error                             { return nil }
func (*Nop) Ellipse(model.Rect) error                               { return nil }
func (*Nop) SetPixel(model.Point, model.ColorRef) error             { return nil }
func (*Nop) Polyline([]model.Point) error                           { return nil }
func (*Nop) Polygon([]model.Point) error                            { return nil }
func (*Nop) PolyBezier([]model.Point) error                         { return nil }
func (*Nop) PolyBezierTo([]model.Point) error                       { return nil }
func (*Nop) PolylineTo([]model.Point) error                         { return nil }
func (*Nop) PolyPolygon([]model.Point, []uint32) error              { return nil }
func (*Nop) BeginPath() error                                       { return nil }
func (*Nop) EndPath() error                                         { return nil }
func (*Nop) CloseFigure() error                                     { return nil }
func (*Nop) FillPath() error                                        { return nil }
func (*Nop) StrokePath() error                                      { return nil }
func (*Nop) StrokeAndFillPath() error                               { return nil }

func (*Nop) ExtTextOutA(model.Point, uint32, model.Rect, []byte, []int32) error {
	return nil
}

func (*Nop) ExtTextOutW(model.Point, uint32, model.Rect, []uint16, []int32) error {
	return nil
}

func (n *Nop) CreateBrushIndirect(model.LogBrush) (model.Handle, error) {
	return n.create()
}

func (n *Nop) CreateFontIndirect(model.ExtLogFont) (model.Handle, error) {
	return n.create()
}
