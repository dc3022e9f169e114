package metafile

import (
	"bytes"
	"math"
	"testing"

	"github.com/dyuri/emfconv/internal/model"
	"github.com/dyuri/emfconv/internal/object"
	"github.com/dyuri/emfconv/internal/record"
	"github.com/dyuri/emfconv/internal/surface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func types(recs []record.Record) []model.RecordType {
	out := make([]model.RecordType, len(recs))
	for i, r := range recs {
		out[i] = r.Type()
	}
	return out
}

func TestNewDefaults(t *testing.T) {
	c := New(object.NewTable(), Config{})

	h := c.Header()
	assert.True(t, c.AutoBounds())
	assert.Equal(t, model.Rect{Left: -10, Top: -10, Right: 10, Bottom: 10}, h.Bounds)
	// 10 px of a 1280 px / 320 mm device is 250 hundredths of a mm
	assert.Equal(t, model.Rect{Left: -250, Top: -235, Right: 250, Bottom: 235}, h.Frame)
	assert.Equal(t, model.Size{CX: 1280, CY: 1024}, h.Device)
	assert.Equal(t, uint16(1), h.Handles)
	assert.Equal(t, uint32(1), h.Records)
	assert.Equal(t, h.Size(), h.Bytes)

	assert.Equal(t, model.BlackPen.Handle(), c.Pen())
	assert.Equal(t, model.BlackBrush.Handle(), c.Brush())
	assert.Equal(t, model.DeviceDefaultFont.Handle(), c.Font())
	assert.Equal(t, model.DefaultPalette.Handle(), c.Palette())
	assert.Equal(t, model.TextAlignBaseline, c.TextAlign())
	assert.Equal(t, model.Opaque, c.BkMode())
	assert.Equal(t, model.Alternate, c.PolyFillMode())
	assert.Equal(t, model.MapText, c.MapMode())
	assert.Equal(t, float32(10), c.MiterLimit())
	assert.Equal(t, model.RGB(0xff, 0xff, 0xff), c.BkColor())
}

func TestFixedBounds(t *testing.T) {
	frame := model.Rect{Left: 0, Top: 0, Right: 16000, Bottom: 12000}
	c := New(object.NewTable(), Config{Frame: &frame})

	assert.False(t, c.AutoBounds())
	assert.Equal(t, frame, c.Header().Frame)
	assert.Equal(t, model.Rect{Right: 640, Bottom: 512}, c.Header().Bounds)

	require.NoError(t, c.LineTo(model.Point{X: 5000, Y: -5000}))
	assert.Equal(t, model.Rect{Right: 640, Bottom: 512}, c.Header().Bounds, "drawing leaves fixed bounds alone")
	assert.Equal(t, frame, c.Header().Frame)
}

func TestAutoBoundsFollowMappedPoints(t *testing.T) {
	c := New(object.NewTable(), Config{})
	require.NoError(t, c.SetWindowExtEx(model.Size{CX: 2, CY: 2}))
	require.NoError(t, c.SetViewportExtEx(model.Size{CX: 1, CY: 1}))

	// device points: (5,10) (-15,2) (50,-20)
	pts := []model.Point{{X: 10, Y: 20}, {X: -30, Y: 5}, {X: 100, Y: -40}}
	require.NoError(t, c.Polyline(pts))

	assert.Equal(t, model.Rect{Left: -15, Top: -20, Right: 50, Bottom: 10}, c.PaintedArea())
	want := model.Rect{Left: -25, Top: -30, Right: 60, Bottom: 20}
	assert.Equal(t, want, c.Header().Bounds)

	frame := model.Rect{
		Left:   int32(math.Floor(-25 * 320 * 100 / 1280.0)),
		Top:    int32(math.Floor(-30 * 240 * 100 / 1024.0)),
		Right:  int32(math.Ceil(60 * 320 * 100 / 1280.0)),
		Bottom: int32(math.Ceil(20 * 240 * 100 / 1024.0)),
	}
	assert.Equal(t, frame, c.Header().Frame)
}

func TestMergePointClampsDegenerateWindow(t *testing.T) {
	c := New(object.NewTable(), Config{})
	require.NoError(t, c.SetWindowExtEx(model.Size{CX: 0, CY: -5}))
	require.NoError(t, c.SetViewportOrgEx(model.Point{X: 3, Y: 3}))
	c.MergePoint(model.Point{X: 7, Y: 8})
	assert.Equal(t, model.Rect{Left: 0, Top: 0, Right: 10, Bottom: 11}, c.PaintedArea())
}

func TestNextHandleReusesLowestFree(t *testing.T) {
	c := New(object.NewTable(), Config{})
	for want := model.Handle(1); want <= 5; want++ {
		assert.Equal(t, want, c.NextHandle())
	}
	assert.Equal(t, uint16(6), c.Header().Handles)

	c.ClearHandle(3)
	c.ClearHandle(0)
	c.ClearHandle(100)
	assert.Equal(t, model.Handle(3), c.NextHandle())
	assert.Equal(t, model.Handle(6), c.NextHandle())
	assert.Equal(t, uint16(7), c.Header().Handles)
}

func TestSelectObjectWritesDefinitionOnce(t *testing.T) {
	tbl := object.NewTable()
	c := New(tbl, Config{})
	pen := tbl.CreatePen(model.PenDot, 1, model.RGB(255, 0, 0))

	require.NoError(t, c.SelectObject(pen))
	require.NoError(t, c.SelectObject(model.WhitePen.Handle()))
	require.NoError(t, c.SelectObject(pen))

	assert.Equal(t, []model.RecordType{
		model.RecHeader,
		model.RecCreatePen,
		model.RecSelectObject,
		model.RecSelectObject,
		model.RecSelectObject,
	}, types(c.Records()))

	recs := c.Records()
	assert.Equal(t, model.Handle(1), recs[1].(*record.CreatePen).Handle)
	assert.Equal(t, uint32(1), recs[2].(*record.ValueRecord).Value)
	assert.Equal(t, uint32(model.WhitePen.Handle()), recs[3].(*record.ValueRecord).Value)
	assert.Equal(t, pen, c.Pen())
	assert.Equal(t, uint16(2), c.Header().Handles)

	_, err := tbl.Find(c.Handle())
	assert.NoError(t, err, "context registers itself")
}

func TestSelectObjectRejectsUnknownHandles(t *testing.T) {
	tbl := object.NewTable()
	c := New(tbl, Config{})
	assert.ErrorIs(t, c.SelectObject(77), model.ErrNotFound)
	assert.ErrorIs(t, c.SelectObject(c.Handle()), model.ErrInvalidArgument)
}

func TestDeleteObjectCascades(t *testing.T) {
	tbl := object.NewTable()
	a := New(tbl, Config{})
	b := New(tbl, Config{})
	brush := tbl.CreateSolidBrush(model.RGB(0, 0, 255))
	other := tbl.CreateSolidBrush(model.RGB(0, 255, 0))

	require.NoError(t, a.SelectObject(brush))
	require.NoError(t, b.SelectObject(other))
	require.NoError(t, b.SelectObject(brush))

	require.NoError(t, a.DeleteObject(brush))

	last := func(c *Context) record.Record { return c.Records()[len(c.Records())-1] }
	assert.Equal(t, record.NewDeleteObject(1), last(a))
	assert.Equal(t, record.NewDeleteObject(2), last(b))
	assert.Equal(t, model.BlackBrush.Handle(), a.Brush())
	assert.Equal(t, model.BlackBrush.Handle(), b.Brush())

	_, err := tbl.Find(brush)
	assert.ErrorIs(t, err, model.ErrNotFound)

	// the freed metafile handle is reused
	third := tbl.CreateSolidBrush(0)
	require.NoError(t, b.SelectObject(third))
	assert.Equal(t, model.Handle(2), b.Records()[len(b.Records())-2].(*record.CreateBrushIndirect).Handle)
}

func TestDeleteUnselectedObjectKeepsCurrent(t *testing.T) {
	tbl := object.NewTable()
	c := New(tbl, Config{})
	font := tbl.CreateFontIndirect(model.LogFont{Height: 10})
	require.NoError(t, c.SelectObject(font))
	pen := tbl.CreatePen(model.PenSolid, 1, 0)
	require.NoError(t, c.SelectObject(pen))
	require.NoError(t, c.SelectObject(model.BlackPen.Handle()))

	require.NoError(t, tbl.DeleteObject(pen))
	assert.Equal(t, font, c.Font())
	assert.Equal(t, model.BlackPen.Handle(), c.Pen())
}

func TestClosedContextRejectsMutation(t *testing.T) {
	c := New(object.NewTable(), Config{})
	require.NoError(t, c.Close())
	assert.True(t, c.Closed())

	assert.ErrorIs(t, c.LineTo(model.Point{X: 1, Y: 1}), model.ErrClosed)
	assert.ErrorIs(t, c.SetBkMode(model.Transparent), model.ErrClosed)
	assert.ErrorIs(t, c.SelectObject(model.BlackPen.Handle()), model.ErrClosed)
	assert.ErrorIs(t, c.Close(), model.ErrClosed)
	assert.Equal(t, uint32(2), c.Header().Records)
}

func TestWriteRequiresClose(t *testing.T) {
	c := New(object.NewTable(), Config{})
	_, err := c.WriteTo(&bytes.Buffer{})
	assert.ErrorIs(t, err, model.ErrInvalidArgument)
}

func TestPolyChoosesCompactForm(t *testing.T) {
	c := New(object.NewTable(), Config{})
	require.NoError(t, c.Polygon([]model.Point{{X: 1, Y: 2}, {X: -32768, Y: 32767}}))
	require.NoError(t, c.Polygon([]model.Point{{X: 1, Y: 2}, {X: 40000, Y: 0}}))
	require.NoError(t, c.PolyPolygon([]model.Point{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 0}}, []uint32{3}))
	require.NoError(t, c.PolyPolygon([]model.Point{{X: 0, Y: 0}, {X: 1, Y: -70000}}, []uint32{2}))
	require.NoError(t, c.Polyline16([]model.Point16{{X: 4, Y: 4}}))

	assert.Equal(t, []model.RecordType{
		model.RecHeader,
		model.RecPolygon16,
		model.RecPolygon,
		model.RecPolyPolygon16,
		model.RecPolyPolygon,
		model.RecPolyline16,
	}, types(c.Records()))

	p := c.Records()[2].(*record.Poly)
	assert.Equal(t, model.Rect{Left: 1, Top: 0, Right: 40000, Bottom: 2}, p.Bounds)
}

func TestPolyPolygonRejectsBadCounts(t *testing.T) {
	c := New(object.NewTable(), Config{})
	err := c.PolyPolygon([]model.Point{{X: 1}}, []uint32{2})
	assert.ErrorIs(t, err, model.ErrInvalidArgument)
	err = c.PolyPolygon16([]model.Point16{{X: 1}}, []uint32{math.MaxUint32, 2})
	assert.ErrorIs(t, err, model.ErrInvalidArgument)
	assert.Len(t, c.Records(), 1)
}

func TestTextOut(t *testing.T) {
	c := New(object.NewTable(), Config{})
	require.NoError(t, c.TextOut(model.Point{X: 5, Y: 6}, "hi"))
	rect := model.Rect{Right: 100, Bottom: 20}
	require.NoError(t, c.ExtTextOutA(model.Point{}, model.ETOOpaque, rect, []byte("ab"), []int32{7, 7}))
	assert.ErrorIs(t, c.ExtTextOutA(model.Point{}, 0, rect, []byte("ab"), []int32{7}), model.ErrInvalidArgument)

	w := c.Records()[1].(*record.ExtTextOutW)
	assert.Equal(t, model.EmptyBounds, w.Bounds)
	assert.Equal(t, model.EmptyBounds, w.Rect)
	assert.Equal(t, model.GraphicsModeCompatible, w.GraphicsMode)
	assert.Equal(t, "hi", model.DecodeWide(w.Text))

	a := c.Records()[2].(*record.ExtTextOutA)
	assert.Equal(t, rect, a.Bounds)
	assert.Equal(t, []int32{7, 7}, a.Dx)
}

func TestScaleExtents(t *testing.T) {
	c := New(object.NewTable(), Config{})
	require.NoError(t, c.SetViewportExtEx(model.Size{CX: 100, CY: 50}))
	require.NoError(t, c.ScaleViewportExtEx(3, 2, -1, 5))
	assert.Equal(t, model.Size{CX: 150, CY: -10}, c.ViewportExt())

	n := len(c.Records())
	assert.ErrorIs(t, c.ScaleViewportExtEx(0, 1, 1, 1), model.ErrInvalidArgument)
	assert.ErrorIs(t, c.ScaleWindowExtEx(1, 1, 1, 0), model.ErrInvalidArgument)

	require.NoError(t, c.SetWindowExtEx(model.Size{CX: math.MaxInt32, CY: 1}))
	assert.ErrorIs(t, c.ScaleWindowExtEx(2, 1, 1, 1), model.ErrInvalidArgument)
	require.NoError(t, c.SetWindowExtEx(model.Size{CX: math.MinInt32, CY: 1}))
	assert.ErrorIs(t, c.ScaleWindowExtEx(1, -1, 1, 1), model.ErrInvalidArgument)
	assert.Len(t, c.Records(), n+2, "rejected calls append nothing")
}

func TestWorldTransform(t *testing.T) {
	c := New(object.NewTable(), Config{})
	scale := model.XForm{M11: 2, M22: 2}
	move := model.XForm{M11: 1, M22: 1, Dx: 10, Dy: 20}

	require.NoError(t, c.SetWorldTransform(scale))
	require.NoError(t, c.ModifyWorldTransform(move, model.MWTRightMultiply))
	assert.Equal(t, model.XForm{M11: 2, M22: 2, Dx: 10, Dy: 20}, c.WorldTransform())

	require.NoError(t, c.ModifyWorldTransform(move, model.MWTLeftMultiply))
	assert.Equal(t, model.XForm{M11: 2, M22: 2, Dx: 30, Dy: 60}, c.WorldTransform())

	require.NoError(t, c.ModifyWorldTransform(model.XForm{}, model.MWTIdentity))
	assert.Equal(t, model.IdentityXForm, c.WorldTransform())
	assert.ErrorIs(t, c.ModifyWorldTransform(move, 9), model.ErrInvalidArgument)
}

func TestSaveRestoreDC(t *testing.T) {
	c := New(object.NewTable(), Config{})
	require.NoError(t, c.SetTextColor(model.RGB(1, 0, 0)))
	require.NoError(t, c.SaveDC())
	require.NoError(t, c.SetTextColor(model.RGB(2, 0, 0)))
	require.NoError(t, c.SaveDC())
	require.NoError(t, c.SetTextColor(model.RGB(3, 0, 0)))

	require.NoError(t, c.RestoreDC(-1))
	assert.Equal(t, model.RGB(2, 0, 0), c.TextColor())
	require.NoError(t, c.RestoreDC(5))
	assert.Equal(t, model.RGB(2, 0, 0), c.TextColor(), "unknown level leaves state")
	require.NoError(t, c.RestoreDC(1))
	assert.Equal(t, model.RGB(1, 0, 0), c.TextColor())
}

func TestMiterLimitForm(t *testing.T) {
	c := New(object.NewTable(), Config{IntegerMiterLimit: true})
	require.NoError(t, c.SetMiterLimit(4.5))
	assert.Equal(t, &record.SetMiterLimit{Limit: 4.5, Integer: true}, c.Records()[1])
	assert.Equal(t, float32(4.5), c.MiterLimit())
}

func TestDeviceCaps(t *testing.T) {
	c := New(object.NewTable(), Config{Resolution: 300})
	assert.Equal(t, int32(1), c.DeviceCaps(model.CapDriverVersion))
	assert.Equal(t, int32(model.TechnologyMetafile), c.DeviceCaps(model.CapTechnology))
	assert.Equal(t, int32(320), c.DeviceCaps(model.CapHorzSize))
	assert.Equal(t, int32(240), c.DeviceCaps(model.CapVertSize))
	assert.Equal(t, int32(1280), c.DeviceCaps(model.CapHorzRes))
	assert.Equal(t, int32(1024), c.DeviceCaps(model.CapVertRes))
	assert.Equal(t, int32(300), c.DeviceCaps(model.CapLogPixelsY))
	assert.Equal(t, int32(-1), c.DeviceCaps(12))
}

func TestDeleteMetafile(t *testing.T) {
	tbl := object.NewTable()
	c := New(tbl, Config{})
	pen := tbl.CreatePen(model.PenSolid, 1, 0)
	require.NoError(t, c.SelectObject(pen))

	c.DeleteMetafile()
	assert.Nil(t, c.Header())
	assert.Empty(t, c.Records())
	assert.ErrorIs(t, c.Play(surface.NewRecorder()), model.ErrClosed)
	_, err := tbl.Find(c.Handle())
	assert.ErrorIs(t, err, model.ErrNotFound)

	g, err := object.Lookup[object.Graphics](tbl, pen)
	require.NoError(t, err)
	assert.Empty(t, g.Contexts())
}
