package model

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStockHandles(t *testing.T) {
	h := BlackPen.Handle()
	assert.True(t, h.IsStock())
	assert.Equal(t, Handle(0x80000007), h)
	assert.False(t, Handle(7).IsStock())
}

func TestColorRef(t *testing.T) {
	c := RGB(0x12, 0x34, 0x56)
	assert.Equal(t, ColorRef(0x00563412), c)
	assert.Equal(t, "#123456", c.String())
}

func TestPoints16(t *testing.T) {
	assert.True(t, Points16Fit([]Point{{X: -32768, Y: 32767}}))
	assert.False(t, Points16Fit([]Point{{X: 0}, {Y: 32768}}))
	assert.True(t, Points16Fit(nil))

	pts := []Point{{X: 1, Y: -2}, {X: 300, Y: 4}}
	assert.Equal(t, pts, FromPoints16(ToPoints16(pts)))
	assert.Nil(t, ToPoints16(nil))
	assert.Nil(t, FromPoints16([]Point16{}))
}

func TestBoundsOf(t *testing.T) {
	assert.Equal(t, EmptyBounds, BoundsOf(nil))
	assert.Equal(t, Rect{Left: -5, Top: 0, Right: 7, Bottom: 9},
		BoundsOf([]Point{{X: 7, Y: 0}, {X: -5, Y: 9}, {X: 1, Y: 1}}))
}

func TestXFormMultiply(t *testing.T) {
	rotate := XForm{M12: 1, M21: -1} // 90 degrees
	move := XForm{M11: 1, M22: 1, Dx: 3}

	assert.Equal(t, rotate, IdentityXForm.Multiply(rotate))
	assert.Equal(t, rotate, rotate.Multiply(IdentityXForm))
	// rotating (3,0) gives (0,3)
	assert.Equal(t, XForm{M12: 1, M21: -1, Dy: 3}, move.Multiply(rotate))
	assert.Equal(t, XForm{M12: 1, M21: -1, Dx: 3}, rotate.Multiply(move))
}

func TestRecordTypeString(t *testing.T) {
	assert.Equal(t, "EMR_POLYGON16", RecPolygon16.String())
	assert.Equal(t, "EMR_UNKNOWN(999)", RecordType(999).String())
}

func TestRoundToLong(t *testing.T) {
	for n, want := range map[uint32]uint32{0: 0, 1: 4, 4: 4, 5: 8, 7: 8} {
		assert.Equal(t, want, RoundToLong(n), "n=%d", n)
	}
}

func TestWideText(t *testing.T) {
	w := EncodeWide("aé𝄞")
	assert.Equal(t, []uint16{'a', 0xe9, 0xd834, 0xdd1e}, w)
	assert.Equal(t, "aé𝄞", DecodeWide(w))
	assert.Equal(t, "", DecodeWide(nil))
}

func TestANSIText(t *testing.T) {
	b := EncodeANSI("é€☃")
	assert.Equal(t, []byte{0xe9, 0x80, '?'}, b)
	assert.Equal(t, "é€?", DecodeANSI(b))
}

func TestFaceName(t *testing.T) {
	var lf LogFont
	lf.SetFaceName("Arial")
	assert.Equal(t, "Arial", lf.Name())

	lf.SetFaceName(strings.Repeat("x", 40))
	assert.Equal(t, strings.Repeat("x", FaceNameLen-1), lf.Name())
	assert.Zero(t, lf.FaceName[FaceNameLen-1])
}

func TestDescription(t *testing.T) {
	d := NewDescription("emfconv", "demo")
	assert.Len(t, d, len("emfconv")+len("demo")+3)
	assert.Equal(t, []uint16{0, 0}, d[len(d)-2:])
	assert.Equal(t, []string{"emfconv", "demo"}, DescriptionSegments(d))

	assert.Nil(t, NewDescription("", ""))
	assert.Equal(t, []string{"demo"}, DescriptionSegments(NewDescription("", "demo")))
	assert.Empty(t, DescriptionSegments(nil))
}
