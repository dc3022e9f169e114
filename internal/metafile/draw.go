package metafile

import (
	"fmt"
	"math"
	"slices"

	"github.com/dyuri/emfconv/internal/model"
	"github.com/dyuri/emfconv/internal/record"
)

// MoveToEx moves the current position
func (c *Context) MoveToEx(p model.Point) error {
	if err := c.AppendRecord(record.NewMoveToEx(p)); err != nil {
		return err
	}
	c.point = p
	c.MergePoint(p)
	return nil
}

// LineTo draws a line from the current position to p
func (c *Context) LineTo(p model.Point) error {
	if err := c.AppendRecord(record.NewLineTo(p)); err != nil {
		return err
	}
	c.point = p
	c.MergePoint(p)
	return nil
}

func (c *Context) box(kind model.RecordType, box model.Rect) error {
	if err := c.AppendRecord(&record.BoxRecord{Kind: kind, Box: box}); err != nil {
		return err
	}
	c.MergePoint(model.Point{X: box.Left, Y: box.Top})
	c.MergePoint(model.Point{X: box.Right, Y: box.Bottom})
	return nil
}

// Rectangle draws a rectangle with the current pen and brush
func (c *Context) Rectangle(box model.Rect) error { return c.box(model.RecRectangle, box) }

// Ellipse draws the ellipse inscribed in box
func (c *Context) Ellipse(box model.Rect) error { return c.box(model.RecEllipse, box) }

func (c *Context) arc(kind model.RecordType, box model.Rect, start, end model.Point) error {
	if err := c.AppendRecord(&record.ArcRecord{Kind: kind, Box: box, Start: start, End: end}); err != nil {
		return err
	}
	c.MergePoint(model.Point{X: box.Left, Y: box.Top})
	c.MergePoint(model.Point{X: box.Right, Y: box.Bottom})
	return nil
}

// Arc draws an elliptical arc between the radials through start and end
func (c *Context) Arc(box model.Rect, start, end model.Point) error {
	return c.arc(model.RecArc, box, start, end)
}

// ArcTo draws an arc and connects it to the current position
func (c *Context) ArcTo(box model.Rect, start, end model.Point) error {
	return c.arc(model.RecArcTo, box, start, end)
}

// SetPixel colors one pixel
func (c *Context) SetPixel(p model.Point, color model.ColorRef) error {
	if err := c.AppendRecord(&record.SetPixelV{Point: p, Color: color}); err != nil {
		return err
	}
	c.MergePoint(p)
	return nil
}

// poly appends a point list record, using the 16-bit form when every point
// fits in it
func (c *Context) poly(kind model.RecordType, points []model.Point) error {
	bounds := model.BoundsOf(points)
	var rec record.Record
	if k16, ok := record.Compact(kind); ok && model.Points16Fit(points) {
		rec = &record.Poly16{Kind: k16, Bounds: bounds, Points: model.ToPoints16(points)}
	} else {
		rec = &record.Poly{Kind: kind, Bounds: bounds, Points: slices.Clone(points)}
	}
	if err := c.AppendRecord(rec); err != nil {
		return err
	}
	c.mergePoints(points)
	return nil
}

func (c *Context) poly16(kind model.RecordType, points []model.Point16) error {
	wide := model.FromPoints16(points)
	rec := &record.Poly16{Kind: kind, Bounds: model.BoundsOf(wide), Points: slices.Clone(points)}
	if err := c.AppendRecord(rec); err != nil {
		return err
	}
	c.mergePoints(wide)
	return nil
}

func (c *Context) Polyline(points []model.Point) error   { return c.poly(model.RecPolyline, points) }
func (c *Context) Polygon(points []model.Point) error    { return c.poly(model.RecPolygon, points) }
func (c *Context) PolyBezier(points []model.Point) error { return c.poly(model.RecPolyBezier, points) }

// PolyBezierTo continues from the current position, which moves to the
// last point
func (c *Context) PolyBezierTo(points []model.Point) error {
	if err := c.poly(model.RecPolyBezierTo, points); err != nil {
		return err
	}
	if len(points) > 0 {
		c.point = points[len(points)-1]
	}
	return nil
}

// PolylineTo continues from the current position, which moves to the last
// point
func (c *Context) PolylineTo(points []model.Point) error {
	if err := c.poly(model.RecPolylineTo, points); err != nil {
		return err
	}
	if len(points) > 0 {
		c.point = points[len(points)-1]
	}
	return nil
}

func (c *Context) Polyline16(points []model.Point16) error {
	return c.poly16(model.RecPolyline16, points)
}

func (c *Context) Polygon16(points []model.Point16) error {
	return c.poly16(model.RecPolygon16, points)
}

func (c *Context) PolyBezier16(points []model.Point16) error {
	return c.poly16(model.RecPolyBezier16, points)
}

func (c *Context) PolyBezierTo16(points []model.Point16) error {
	if err := c.poly16(model.RecPolyBezierTo16, points); err != nil {
		return err
	}
	if len(points) > 0 {
		c.point = points[len(points)-1].Point()
	}
	return nil
}

func (c *Context) PolylineTo16(points []model.Point16) error {
	if err := c.poly16(model.RecPolylineTo16, points); err != nil {
		return err
	}
	if len(points) > 0 {
		c.point = points[len(points)-1].Point()
	}
	return nil
}

// checkCounts verifies that the polygon counts add up to at most n points
func checkCounts(counts []uint32, n int) error {
	var total uint64
	for _, k := range counts {
		total += uint64(k)
	}
	if total > uint64(n) || total > math.MaxUint32 {
		return fmt.Errorf("polygon counts sum to %d, have %d points: %w", total, n, model.ErrInvalidArgument)
	}
	return nil
}

// PolyPolygon draws several polygons. counts gives the number of points of
// each polygon, taken in order from points.
func (c *Context) PolyPolygon(points []model.Point, counts []uint32) error {
	if err := checkCounts(counts, len(points)); err != nil {
		return err
	}
	bounds := model.BoundsOf(points)
	var rec record.Record
	if model.Points16Fit(points) {
		rec = &record.PolyPolygon16{Bounds: bounds, Counts: slices.Clone(counts), Points: model.ToPoints16(points)}
	} else {
		rec = &record.PolyPolygon{Bounds: bounds, Counts: slices.Clone(counts), Points: slices.Clone(points)}
	}
	if err := c.AppendRecord(rec); err != nil {
		return err
	}
	c.mergePoints(points)
	return nil
}

// PolyPolygon16 is PolyPolygon with 16-bit points
func (c *Context) PolyPolygon16(points []model.Point16, counts []uint32) error {
	if err := checkCounts(counts, len(points)); err != nil {
		return err
	}
	wide := model.FromPoints16(points)
	rec := &record.PolyPolygon16{Bounds: model.BoundsOf(wide), Counts: slices.Clone(counts), Points: slices.Clone(points)}
	if err := c.AppendRecord(rec); err != nil {
		return err
	}
	c.mergePoints(wide)
	return nil
}

func checkAdvances(dx []int32, n int) error {
	if dx != nil && len(dx) != n {
		return fmt.Errorf("%d advances for %d characters: %w", len(dx), n, model.ErrInvalidArgument)
	}
	return nil
}

// ExtTextOutA draws 8-bit text at ref. rect is the clipping or opaquing
// rectangle, model.EmptyBounds when there is none. dx, when given, holds one
// advance per character.
func (c *Context) ExtTextOutA(ref model.Point, options uint32, rect model.Rect, text []byte, dx []int32) error {
	if err := checkAdvances(dx, len(text)); err != nil {
		return err
	}
	rec := &record.ExtTextOutA{
		TextOut: record.NewTextOut(ref, options, rect, slices.Clone(dx)),
		Text:    slices.Clone(text),
	}
	if err := c.AppendRecord(rec); err != nil {
		return err
	}
	c.MergePoint(ref)
	return nil
}

// ExtTextOutW draws UTF-16 text at ref
func (c *Context) ExtTextOutW(ref model.Point, options uint32, rect model.Rect, text []uint16, dx []int32) error {
	if err := checkAdvances(dx, len(text)); err != nil {
		return err
	}
	rec := &record.ExtTextOutW{
		TextOut: record.NewTextOut(ref, options, rect, slices.Clone(dx)),
		Text:    slices.Clone(text),
	}
	if err := c.AppendRecord(rec); err != nil {
		return err
	}
	c.MergePoint(ref)
	return nil
}

// TextOutA draws Windows-1252 encoded text without options
func (c *Context) TextOutA(ref model.Point, text []byte) error {
	return c.ExtTextOutA(ref, 0, model.EmptyBounds, text, nil)
}

// TextOutW draws UTF-16 text without options
func (c *Context) TextOutW(ref model.Point, text []uint16) error {
	return c.ExtTextOutW(ref, 0, model.EmptyBounds, text, nil)
}

// TextOut draws a Go string as UTF-16 text
func (c *Context) TextOut(ref model.Point, text string) error {
	return c.TextOutW(ref, model.EncodeWide(text))
}

func (c *Context) path(kind model.RecordType) error {
	return c.AppendRecord(&record.PathRecord{Kind: kind, Bounds: model.EmptyBounds})
}

func (c *Context) FillPath() error          { return c.path(model.RecFillPath) }
func (c *Context) StrokePath() error        { return c.path(model.RecStrokePath) }
func (c *Context) StrokeAndFillPath() error { return c.path(model.RecStrokeAndFillPath) }

func (c *Context) empty(kind model.RecordType) error {
	return c.AppendRecord(&record.EmptyRecord{Kind: kind})
}

func (c *Context) BeginPath() error   { return c.empty(model.RecBeginPath) }
func (c *Context) EndPath() error     { return c.empty(model.RecEndPath) }
func (c *Context) CloseFigure() error { return c.empty(model.RecCloseFigure) }
func (c *Context) SetMetaRgn() error  { return c.empty(model.RecSetMetaRgn) }
