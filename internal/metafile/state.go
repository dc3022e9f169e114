package metafile

import (
	"fmt"
	"math"

	"github.com/dyuri/emfconv/internal/model"
	"github.com/dyuri/emfconv/internal/object"
	"github.com/dyuri/emfconv/internal/record"
)

func (c *Context) SetViewportOrgEx(p model.Point) error {
	if err := c.AppendRecord(record.NewSetViewportOrgEx(p)); err != nil {
		return err
	}
	c.viewportOrg = p
	return nil
}

func (c *Context) SetWindowOrgEx(p model.Point) error {
	if err := c.AppendRecord(record.NewSetWindowOrgEx(p)); err != nil {
		return err
	}
	c.windowOrg = p
	return nil
}

func (c *Context) SetViewportExtEx(size model.Size) error {
	if err := c.AppendRecord(record.NewSetViewportExtEx(size)); err != nil {
		return err
	}
	c.viewportExt = size
	return nil
}

func (c *Context) SetWindowExtEx(size model.Size) error {
	if err := c.AppendRecord(record.NewSetWindowExtEx(size)); err != nil {
		return err
	}
	c.windowExt = size
	return nil
}

// scaleExtent multiplies before dividing, as GDI does, and rejects results
// that do not fit in 32 bits
func scaleExtent(ext, num, denom int32) (int32, error) {
	if num == 0 || denom == 0 {
		return 0, fmt.Errorf("scale %d/%d: %w", num, denom, model.ErrInvalidArgument)
	}
	v := int64(ext) * int64(num)
	if v > math.MaxInt32 || v < math.MinInt32 {
		return 0, fmt.Errorf("scale %d by %d overflows: %w", ext, num, model.ErrInvalidArgument)
	}
	v /= int64(denom)
	if v > math.MaxInt32 {
		return 0, fmt.Errorf("scale %d/%d overflows: %w", num, denom, model.ErrInvalidArgument)
	}
	return int32(v), nil
}

func scaleSize(s model.Size, xNum, xDenom, yNum, yDenom int32) (model.Size, error) {
	cx, err := scaleExtent(s.CX, xNum, xDenom)
	if err != nil {
		return s, err
	}
	cy, err := scaleExtent(s.CY, yNum, yDenom)
	if err != nil {
		return s, err
	}
	return model.Size{CX: cx, CY: cy}, nil
}

// ScaleViewportExtEx multiplies the viewport extent by xNum/xDenom and
// yNum/yDenom. Zero factors and overflowing results are rejected.
func (c *Context) ScaleViewportExtEx(xNum, xDenom, yNum, yDenom int32) error {
	ext, err := scaleSize(c.viewportExt, xNum, xDenom, yNum, yDenom)
	if err != nil {
		return err
	}
	if err := c.AppendRecord(record.NewScaleViewportExtEx(xNum, xDenom, yNum, yDenom)); err != nil {
		return err
	}
	c.viewportExt = ext
	return nil
}

// ScaleWindowExtEx scales the window extent like ScaleViewportExtEx
func (c *Context) ScaleWindowExtEx(xNum, xDenom, yNum, yDenom int32) error {
	ext, err := scaleSize(c.windowExt, xNum, xDenom, yNum, yDenom)
	if err != nil {
		return err
	}
	if err := c.AppendRecord(record.NewScaleWindowExtEx(xNum, xDenom, yNum, yDenom)); err != nil {
		return err
	}
	c.windowExt = ext
	return nil
}

func (c *Context) SetWorldTransform(xf model.XForm) error {
	if err := c.AppendRecord(&record.SetWorldTransform{XForm: xf}); err != nil {
		return err
	}
	c.xform = xf
	return nil
}

// ModifyWorldTransform resets the transform or combines xf with it
func (c *Context) ModifyWorldTransform(xf model.XForm, mode uint32) error {
	var next model.XForm
	switch mode {
	case model.MWTIdentity:
		next = model.IdentityXForm
	case model.MWTLeftMultiply:
		next = xf.Multiply(c.xform)
	case model.MWTRightMultiply:
		next = c.xform.Multiply(xf)
	default:
		return fmt.Errorf("world transform mode %d: %w", mode, model.ErrInvalidArgument)
	}
	if err := c.AppendRecord(&record.ModifyWorldTransform{XForm: xf, Mode: mode}); err != nil {
		return err
	}
	c.xform = next
	return nil
}

func (c *Context) SetTextAlign(align uint32) error {
	if err := c.AppendRecord(record.NewSetTextAlign(align)); err != nil {
		return err
	}
	c.textAlign = align
	return nil
}

func (c *Context) SetTextColor(color model.ColorRef) error {
	if err := c.AppendRecord(record.NewSetTextColor(color)); err != nil {
		return err
	}
	c.textColor = color
	return nil
}

func (c *Context) SetBkColor(color model.ColorRef) error {
	if err := c.AppendRecord(record.NewSetBkColor(color)); err != nil {
		return err
	}
	c.bkColor = color
	return nil
}

func (c *Context) SetBkMode(mode uint32) error {
	if err := c.AppendRecord(record.NewSetBkMode(mode)); err != nil {
		return err
	}
	c.bkMode = mode
	return nil
}

func (c *Context) SetPolyFillMode(mode uint32) error {
	if err := c.AppendRecord(record.NewSetPolyFillMode(mode)); err != nil {
		return err
	}
	c.polyFillMode = mode
	return nil
}

func (c *Context) SetMapMode(mode uint32) error {
	if err := c.AppendRecord(record.NewSetMapMode(mode)); err != nil {
		return err
	}
	c.mapMode = mode
	return nil
}

func (c *Context) SetMiterLimit(limit float32) error {
	rec := &record.SetMiterLimit{Limit: limit, Integer: c.cfg.IntegerMiterLimit}
	if err := c.AppendRecord(rec); err != nil {
		return err
	}
	c.miterLimit = limit
	return nil
}

// SaveDC pushes the graphics state
func (c *Context) SaveDC() error {
	if err := c.empty(model.RecSaveDC); err != nil {
		return err
	}
	c.saved = append(c.saved, c.state)
	return nil
}

// RestoreDC pops saved states. A negative value is relative to the top of
// the stack, a positive one names a saved level. Levels that were never
// saved are recorded but leave the state alone.
func (c *Context) RestoreDC(saved int32) error {
	if err := c.AppendRecord(record.NewRestoreDC(saved)); err != nil {
		return err
	}
	level := int(saved)
	if saved < 0 {
		level = len(c.saved) + int(saved) + 1
	}
	if level < 1 || level > len(c.saved) {
		return nil
	}
	c.state = c.saved[level-1]
	c.saved = c.saved[:level-1]
	return nil
}

// SelectObject makes a table object current. A non-stock object is written
// into the metafile under a fresh metafile handle the first time it is
// selected here.
func (c *Context) SelectObject(h model.Handle) error {
	if err := c.writable(); err != nil {
		return err
	}
	g, err := object.Lookup[object.Graphics](c.table, h)
	if err != nil {
		return fmt.Errorf("select object: %w", err)
	}

	mh := h
	if !h.IsStock() {
		var ok bool
		if mh, ok = g.HandleIn(c); !ok {
			mh = c.NextHandle()
			if err := c.AppendHandle(g.Record(mh)); err != nil {
				return err
			}
			g.SelectInto(c, mh)
			c.objects[g] = struct{}{}
		}
	}
	if err := c.AppendRecord(record.NewSelectObject(mh)); err != nil {
		return err
	}

	switch g.Kind() {
	case object.KindPen:
		c.pen = h
	case object.KindBrush:
		c.brush = h
	case object.KindFont:
		c.font = h
	case object.KindPalette:
		c.palette = h
	}
	return nil
}

// DeleteObject deletes a table object. The deletion reaches every metafile
// the object was selected into.
func (c *Context) DeleteObject(h model.Handle) error {
	return c.table.DeleteObject(h)
}

// The object factories below let a context serve as the playback target
// of another metafile; the objects land in the shared table.

func (c *Context) CreatePen(pen model.LogPen) (model.Handle, error) {
	return c.table.CreatePenIndirect(pen), nil
}

func (c *Context) ExtCreatePen(pen model.ExtLogPen) (model.Handle, error) {
	pen.StyleEntries = append([]uint32(nil), pen.StyleEntries...)
	return c.table.Add(&object.ExtPen{ExtLogPen: pen}), nil
}

func (c *Context) CreateBrushIndirect(brush model.LogBrush) (model.Handle, error) {
	return c.table.CreateBrushIndirect(brush), nil
}

func (c *Context) CreateFontIndirect(font model.ExtLogFont) (model.Handle, error) {
	return c.table.Add(&object.Font{ExtLogFont: font}), nil
}

func (c *Context) CreatePalette(palette model.LogPalette) (model.Handle, error) {
	return c.table.CreatePalette(palette), nil
}
