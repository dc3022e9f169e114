package metafile

import (
	"bytes"
	"errors"
	"testing"

	"github.com/dyuri/emfconv/internal/model"
	"github.com/dyuri/emfconv/internal/object"
	"github.com/dyuri/emfconv/internal/record"
	"github.com/dyuri/emfconv/internal/surface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encode(t *testing.T, c *Context) []byte {
	t.Helper()
	var buf bytes.Buffer
	n, err := c.WriteTo(&buf)
	require.NoError(t, err)
	require.Equal(t, int64(buf.Len()), n)
	return buf.Bytes()
}

func TestWriteReadPlay(t *testing.T) {
	frame := model.Rect{Right: 2500, Bottom: 2500}
	c := New(object.NewTable(), Config{Frame: &frame})
	require.NoError(t, c.MoveToEx(model.Point{}))
	require.NoError(t, c.LineTo(model.Point{X: 100, Y: 100}))
	require.NoError(t, c.Close())
	data := encode(t, c)

	got, err := Read(object.NewTable(), bytes.NewReader(data), Options{})
	require.NoError(t, err)
	assert.True(t, got.Closed())
	assert.False(t, got.AutoBounds())
	assert.Equal(t, uint32(len(data)), got.Header().Bytes)
	assert.Equal(t, uint32(4), got.Header().Records)
	assert.Equal(t, c.Header().Bounds, got.Header().Bounds)
	assert.Equal(t, c.Header().Frame, got.Header().Frame)
	assert.Equal(t, types(c.Records()), types(got.Records()))

	rec := surface.NewRecorder()
	require.NoError(t, got.Play(rec))
	assert.Equal(t, []string{"MoveToEx", "LineTo"}, rec.Ops())
	assert.Equal(t, []any{model.Point{X: 100, Y: 100}}, rec.Calls[1].Args)

	// a written metafile reads back byte for byte
	assert.Equal(t, data, encode(t, got))
}

func TestReadRecomputesHeaderTotals(t *testing.T) {
	c := New(object.NewTable(), Config{})
	require.NoError(t, c.Rectangle(model.Rect{Right: 10, Bottom: 10}))
	require.NoError(t, c.Close())
	data := encode(t, c)

	// claim far more records and bytes than the stream holds
	data[48] = 99
	data[52] = 99

	got, err := Read(object.NewTable(), bytes.NewReader(data), Options{})
	require.NoError(t, err)
	assert.Equal(t, uint32(3), got.Header().Records)
	assert.Equal(t, uint32(len(data)), got.Header().Bytes)
}

func TestReadReservesObjectHandles(t *testing.T) {
	tbl := object.NewTable()
	c := New(tbl, Config{})
	require.NoError(t, c.SelectObject(tbl.CreateSolidBrush(model.RGB(1, 2, 3))))
	require.NoError(t, c.Close())

	got, err := Read(object.NewTable(), bytes.NewReader(encode(t, c)), Options{})
	require.NoError(t, err)
	assert.Equal(t, uint16(2), got.Header().Handles)
	assert.Equal(t, model.Handle(2), got.NextHandle())
}

func TestReadRejectsMissingEOF(t *testing.T) {
	c := New(object.NewTable(), Config{})
	require.NoError(t, c.LineTo(model.Point{X: 3, Y: 4}))

	var buf bytes.Buffer
	_, err := record.WriteAll(&buf, c.Records())
	require.NoError(t, err)

	tbl := object.NewTable()
	_, err = Read(tbl, &buf, Options{})
	assert.ErrorIs(t, err, model.ErrTruncated)
	assert.Zero(t, tbl.Len())
}

func TestReadFailureUnregistersContext(t *testing.T) {
	c := New(object.NewTable(), Config{})
	require.NoError(t, c.LineTo(model.Point{X: 3, Y: 4}))
	require.NoError(t, c.Close())
	data := encode(t, c)

	tbl := object.NewTable()
	_, err := Read(tbl, bytes.NewReader(data[:len(data)-4]), Options{})
	assert.ErrorIs(t, err, model.ErrTruncated)
	assert.Zero(t, tbl.Len())

	_, err = Read(tbl, bytes.NewReader(nil), Options{})
	assert.Error(t, err)
	assert.Zero(t, tbl.Len())
}

func TestPlaySkipsUnknownHandles(t *testing.T) {
	c := New(object.NewTable(), Config{})
	require.NoError(t, c.AppendRecord(record.NewSelectObject(5)))
	require.NoError(t, c.LineTo(model.Point{X: 1, Y: 1}))
	require.NoError(t, c.AppendRecord(record.NewDeleteObject(6)))

	rec := surface.NewRecorder()
	err := c.Play(rec)
	assert.ErrorIs(t, err, model.ErrNotFound)
	assert.Contains(t, err.Error(), "record 1")
	assert.Contains(t, err.Error(), "record 3")
	assert.Equal(t, []string{"LineTo"}, rec.Ops())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestPlayStopsOnSurfaceError(t *testing.T) {
	c := New(object.NewTable(), Config{})
	require.NoError(t, c.LineTo(model.Point{X: 1, Y: 1}))
	require.NoError(t, c.LineTo(model.Point{X: 2, Y: 2}))

	rec := surface.NewTracer(failingWriter{})
	err := c.Play(rec)
	require.Error(t, err)
	assert.NotErrorIs(t, err, model.ErrNotFound)
	assert.Len(t, rec.Calls, 1)
}

func TestPlayIntoContextCopies(t *testing.T) {
	tbl := object.NewTable()
	src := New(tbl, Config{})
	pen := tbl.CreatePen(model.PenDash, 2, model.RGB(10, 20, 30))
	require.NoError(t, src.SelectObject(pen))
	require.NoError(t, src.Rectangle(model.Rect{Left: 5, Top: 5, Right: 50, Bottom: 40}))
	require.NoError(t, src.TextOut(model.Point{X: 5, Y: 45}, "copy"))
	require.NoError(t, src.DeleteObject(pen))
	require.NoError(t, src.Close())

	dst := New(tbl, Config{})
	require.NoError(t, src.Play(dst))
	require.NoError(t, dst.Close())

	assert.Equal(t, []model.RecordType{
		model.RecHeader,
		model.RecCreatePen,
		model.RecSelectObject,
		model.RecRectangle,
		model.RecExtTextOutW,
		model.RecDeleteObject,
		model.RecEOF,
	}, types(dst.Records()))
	assert.Equal(t, src.Records()[1], dst.Records()[1])
	assert.Equal(t, src.Header().Bounds, dst.Header().Bounds)
	assert.Equal(t, model.BlackPen.Handle(), dst.Pen())
	assert.Equal(t, 2, tbl.Len(), "only the two contexts remain")
}

func TestPlayIntoNopSurface(t *testing.T) {
	tbl := object.NewTable()
	c := New(tbl, Config{})
	font := tbl.CreateFont(object.FontSpec{Height: 12, FaceName: "Arial"})
	require.NoError(t, c.SelectObject(font))
	require.NoError(t, c.TextOut(model.Point{}, "x"))
	require.NoError(t, c.SelectObject(model.SystemFont.Handle()))
	require.NoError(t, c.DeleteObject(font))
	require.NoError(t, c.Close())

	assert.NoError(t, c.Play(&surface.Nop{}))
}
