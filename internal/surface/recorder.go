// Package surface provides drawing surfaces that capture replayed metafile
// operations instead of rendering them.
package surface

import (
	"fmt"
	"io"
	"strings"

	"github.com/dyuri/emfconv/internal/model"
	"github.com/dyuri/emfconv/internal/record"
)

// Call is one captured surface operation
type Call struct {
	Op   string
	Args []any
}

func (c Call) String() string {
	args := make([]string, len(c.Args))
	for i, a := range c.Args {
		args[i] = fmt.Sprint(a)
	}
	return c.Op + "(" + strings.Join(args, ", ") + ")"
}

// Recorder captures every call made during replay. Objects created through
// it get sequential handles starting at 1.
type Recorder struct {
	Calls []Call

	out  io.Writer // optional trace output, one line per call
	err  error
	next model.Handle
}

var _ record.Surface = (*Recorder)(nil)

// NewRecorder creates a recorder that keeps calls in memory
func NewRecorder() *Recorder {
	return &Recorder{}
}

// NewTracer creates a recorder that also prints each call to w
func NewTracer(w io.Writer) *Recorder {
	return &Recorder{out: w}
}

// Ops returns the operation names in call order
func (r *Recorder) Ops() []string {
	ops := make([]string, len(r.Calls))
	for i, c := range r.Calls {
		ops[i] = c.Op
	}
	return ops
}

// Reset drops captured calls and restarts handle numbering
func (r *Recorder) Reset() {
	r.Calls = nil
	r.next = 0
	r.err = nil
}

func (r *Recorder) add(op string, args ...any) error {
	c := Call{Op: op, Args: args}
	r.Calls = append(r.Calls, c)
	if r.out != nil && r.err == nil {
		if _, err := fmt.Fprintln(r.out, c); err != nil {
			r.err = fmt.Errorf("trace %s: %w", op, err)
		}
	}
	return r.err
}

func (r *Recorder) create(op string, arg any) (model.Handle, error) {
	r.next++
	h := r.next
	return h, r.add(op, arg, h)
}

func (r *Recorder) SetWindowExtEx(size model.Size) error   { return r.add("SetWindowExtEx", size) }
func (r *Recorder) SetWindowOrgEx(origin model.Point) error { return r.add("SetWindowOrgEx", origin) }
func (r *Recorder) SetViewportExtEx(size model.Size) error {
	return r.add("SetViewportExtEx", size)
}
func (r *Recorder) SetViewportOrgEx(origin model.Point) error {
	return r.add("SetViewportOrgEx", origin)
}

func (r *Recorder) ScaleViewportExtEx(xNum, xDenom, yNum, yDenom int32) error {
	return r.add("ScaleViewportExtEx", xNum, xDenom, yNum, yDenom)
}

func (r *Recorder) ScaleWindowExtEx(xNum, xDenom, yNum, yDenom int32) error {
	return r.add("ScaleWindowExtEx", xNum, xDenom, yNum, yDenom)
}

func (r *Recorder) SetWorldTransform(xf model.XForm) error {
	return r.add("SetWorldTransform", xf)
}

func (r *Recorder) ModifyWorldTransform(xf model.XForm, mode uint32) error {
	return r.add("ModifyWorldTransform", xf, mode)
}

func (r *Recorder) SetMapMode(mode uint32) error      { return r.add("SetMapMode", mode) }
func (r *Recorder) SetBkMode(mode uint32) error       { return r.add("SetBkMode", mode) }
func (r *Recorder) SetPolyFillMode(mode uint32) error { return r.add("SetPolyFillMode", mode) }
func (r *Recorder) SetTextAlign(align uint32) error   { return r.add("SetTextAlign", align) }

func (r *Recorder) SetTextColor(color model.ColorRef) error { return r.add("SetTextColor", color) }
func (r *Recorder) SetBkColor(color model.ColorRef) error   { return r.add("SetBkColor", color) }
func (r *Recorder) SetMiterLimit(limit float32) error       { return r.add("SetMiterLimit", limit) }

func (r *Recorder) SaveDC() error                  { return r.add("SaveDC") }
func (r *Recorder) RestoreDC(relative int32) error { return r.add("RestoreDC", relative) }
func (r *Recorder) SetMetaRgn() error              { return r.add("SetMetaRgn") }

func (r *Recorder) SelectObject(h model.Handle) error { return r.add("SelectObject", handleString(h)) }
func (r *Recorder) DeleteObject(h model.Handle) error { return r.add("DeleteObject", handleString(h)) }

func (r *Recorder) CreatePen(pen model.LogPen) (model.Handle, error) {
	return r.create("CreatePen", pen)
}

func (r *Recorder) ExtCreatePen(pen model.ExtLogPen) (model.Handle, error) {
	return r.create("ExtCreatePen", pen)
}

func (r *Recorder) CreateBrushIndirect(brush model.LogBrush) (model.Handle, error) {
	return r.create("CreateBrushIndirect", brush)
}

func (r *Recorder) CreateFontIndirect(font model.ExtLogFont) (model.Handle, error) {
	return r.create("CreateFontIndirect", font.Name())
}

func (r *Recorder) CreatePalette(palette model.LogPalette) (model.Handle, error) {
	return r.create("CreatePalette", len(palette.Entries))
}

func (r *Recorder) MoveToEx(p model.Point) error { return r.add("MoveToEx", p) }
func (r *Recorder) LineTo(p model.Point) error   { return r.add("LineTo", p) }

func (r *Recorder) Arc(box model.Rect, start, end model.Point) error {
	return r.add("Arc", box, start, end)
}

func (r *Recorder) ArcTo(box model.Rect, start, end model.Point) error {
	return r.add("ArcTo", box, start, end)
}

func (r *Recorder) Rectangle(box model.Rect) error { return r.add("Rectangle", box) }
func (r *Recorder) Ellipse(box model.Rect) error   { return r.add("Ellipse", box) }

func (r *Recorder) SetPixel(p model.Point, color model.ColorRef) error {
	return r.add("SetPixel", p, color)
}

func (r *Recorder) Polyline(points []model.Point) error     { return r.add("Polyline", points) }
func (r *Recorder) Polygon(points []model.Point) error      { return r.add("Polygon", points) }
func (r *Recorder) PolyBezier(points []model.Point) error   { return r.add("PolyBezier", points) }
func (r *Recorder) PolyBezierTo(points []model.Point) error { return r.add("PolyBezierTo", points) }
func (r *Recorder) PolylineTo(points []model.Point) error   { return r.add("PolylineTo", points) }

func (r *Recorder) PolyPolygon(points []model.Point, counts []uint32) error {
	return r.add("PolyPolygon", points, counts)
}

func (r *Recorder) ExtTextOutA(ref model.Point, options uint32, rect model.Rect, text []byte, dx []int32) error {
	return r.add("ExtTextOutA", ref, options, rect, fmt.Sprintf("%q", model.DecodeANSI(text)), dx)
}

func (r *Recorder) ExtTextOutW(ref model.Point, options uint32, rect model.Rect, text []uint16, dx []int32) error {
	return r.add("ExtTextOutW", ref, options, rect, fmt.Sprintf("%q", model.DecodeWide(text)), dx)
}

func (r *Recorder) BeginPath() error         { return r.add("BeginPath") }
func (r *Recorder) EndPath() error           { return r.add("EndPath") }
func (r *Recorder) CloseFigure() error       { return r.add("CloseFigure") }
func (r *Recorder) FillPath() error          { return r.add("FillPath") }
func (r *Recorder) StrokePath() error        { return r.add("StrokePath") }
func (r *Recorder) StrokeAndFillPath() error { return r.add("StrokeAndFillPath") }

func handleString(h model.Handle) string {
	if h.IsStock() {
		return fmt.Sprintf("stock:%d", uint32(h&^model.StockObjectFlag))
	}
	return fmt.Sprintf("%d", uint32(h))
}
