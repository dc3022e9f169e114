package record

import (
	"math"

	"github.com/dyuri/emfconv/internal/binary"
	"github.com/dyuri/emfconv/internal/model"
)

const (
	polyFixedSize     = 28 // header, bounds, point count
	polyPolyFixedSize = 32 // header, bounds, polygon count, point count
)

// compact maps each 32-bit point record type to its 16-bit sibling
var compact = map[model.RecordType]model.RecordType{
	model.RecPolyBezier:   model.RecPolyBezier16,
	model.RecPolygon:      model.RecPolygon16,
	model.RecPolyline:     model.RecPolyline16,
	model.RecPolyBezierTo: model.RecPolyBezierTo16,
	model.RecPolylineTo:   model.RecPolylineTo16,
	model.RecPolyPolygon:  model.RecPolyPolygon16,
}

// Compact returns the 16-bit point variant of a poly record type
func Compact(t model.RecordType) (model.RecordType, bool) {
	c, ok := compact[t]
	return c, ok
}

// Poly is a list of 32-bit points: EMR_POLYLINE, EMR_POLYGON,
// EMR_POLYBEZIER, EMR_POLYBEZIERTO and EMR_POLYLINETO
type Poly struct {
	Kind   model.RecordType
	Bounds model.Rect
	Points []model.Point
}

func (r *Poly) Type() model.RecordType { return r.Kind }

func (r *Poly) Size() uint32 {
	return polyFixedSize + 8*uint32(len(r.Points))
}

func (r *Poly) Encode(w *binary.Writer) error {
	header(w, r)
	w.Rect(r.Bounds)
	w.Uint32(uint32(len(r.Points)))
	w.Points(r.Points)
	return w.Err()
}

func (r *Poly) Replay(_ *Playback, s Surface) error {
	return replayPoly(r.Kind, r.Points, s)
}

func replayPoly(kind model.RecordType, pts []model.Point, s Surface) error {
	switch kind {
	case model.RecPolyline, model.RecPolyline16:
		return s.Polyline(pts)
	case model.RecPolygon, model.RecPolygon16:
		return s.Polygon(pts)
	case model.RecPolyBezier, model.RecPolyBezier16:
		return s.PolyBezier(pts)
	case model.RecPolyBezierTo, model.RecPolyBezierTo16:
		return s.PolyBezierTo(pts)
	default:
		return s.PolylineTo(pts)
	}
}

// readCount reads a point count and checks that count elements of elemSize
// fit in the declared length after fixed bytes
func readCount(r *binary.Reader, f Frame, fixed, elemSize uint64) (int, error) {
	n := r.Uint32()
	if err := needSize(f, fixed+elemSize*uint64(n)); err != nil {
		return 0, err
	}
	return int(n), nil
}

func decodePoly(r *binary.Reader, f Frame) (Record, error) {
	if err := needSize(f, polyFixedSize); err != nil {
		return nil, err
	}
	bounds := r.Rect()
	n, err := readCount(r, f, polyFixedSize, 8)
	if err != nil {
		return nil, err
	}
	return &Poly{Kind: f.Type, Bounds: bounds, Points: r.Points(n)}, nil
}

// Poly16 is a list of 16-bit points: EMR_POLYLINE16, EMR_POLYGON16,
// EMR_POLYBEZIER16, EMR_POLYBEZIERTO16 and EMR_POLYLINETO16
type Poly16 struct {
	Kind   model.RecordType
	Bounds model.Rect
	Points []model.Point16
}

func (r *Poly16) Type() model.RecordType { return r.Kind }

func (r *Poly16) Size() uint32 {
	return polyFixedSize + 4*uint32(len(r.Points))
}

func (r *Poly16) Encode(w *binary.Writer) error {
	header(w, r)
	w.Rect(r.Bounds)
	w.Uint32(uint32(len(r.Points)))
	w.Points16(r.Points)
	return w.Err()
}

func (r *Poly16) Replay(_ *Playback, s Surface) error {
	return replayPoly(r.Kind, model.FromPoints16(r.Points), s)
}

func decodePoly16(r *binary.Reader, f Frame) (Record, error) {
	if err := needSize(f, polyFixedSize); err != nil {
		return nil, err
	}
	bounds := r.Rect()
	n, err := readCount(r, f, polyFixedSize, 4)
	if err != nil {
		return nil, err
	}
	return &Poly16{Kind: f.Type, Bounds: bounds, Points: r.Points16(n)}, nil
}

// PolyPolygon is a set of polygons sharing one point array (EMR_POLYPOLYGON)
type PolyPolygon struct {
	Bounds model.Rect
	Counts []uint32 // points per polygon
	Points []model.Point
}

func (r *PolyPolygon) Type() model.RecordType { return model.RecPolyPolygon }

func (r *PolyPolygon) Size() uint32 {
	return polyPolyFixedSize + 4*uint32(len(r.Counts)) + 8*uint32(len(r.Points))
}

func (r *PolyPolygon) Encode(w *binary.Writer) error {
	header(w, r)
	w.Rect(r.Bounds)
	w.Uint32(uint32(len(r.Counts)))
	w.Uint32(uint32(len(r.Points)))
	w.Uint32s(r.Counts)
	w.Points(r.Points)
	return w.Err()
}

func (r *PolyPolygon) Replay(_ *Playback, s Surface) error {
	return s.PolyPolygon(r.Points, r.Counts)
}

// PolyPolygon16 is the 16-bit point form of PolyPolygon (EMR_POLYPOLYGON16)
type PolyPolygon16 struct {
	Bounds model.Rect
	Counts []uint32
	Points []model.Point16
}

func (r *PolyPolygon16) Type() model.RecordType { return model.RecPolyPolygon16 }

func (r *PolyPolygon16) Size() uint32 {
	return polyPolyFixedSize + 4*uint32(len(r.Counts)) + 4*uint32(len(r.Points))
}

func (r *PolyPolygon16) Encode(w *binary.Writer) error {
	header(w, r)
	w.Rect(r.Bounds)
	w.Uint32(uint32(len(r.Counts)))
	w.Uint32(uint32(len(r.Points)))
	w.Uint32s(r.Counts)
	w.Points16(r.Points)
	return w.Err()
}

func (r *PolyPolygon16) Replay(_ *Playback, s Surface) error {
	return s.PolyPolygon(model.FromPoints16(r.Points), r.Counts)
}

// readPolyPolygon validates and reads the shared part of both poly-polygon
// forms. Lengths are checked before the count array is allocated, and the
// per-polygon counts must add up without wrapping to no more than the
// declared point total.
func readPolyPolygon(r *binary.Reader, f Frame, pointSize uint64) (model.Rect, []uint32, int, error) {
	if err := needSize(f, polyPolyFixedSize); err != nil {
		return model.Rect{}, nil, 0, err
	}
	bounds := r.Rect()
	nPolys := r.Uint32()
	nPoints := r.Uint32()
	if err := needSize(f, polyPolyFixedSize+4*uint64(nPolys)+pointSize*uint64(nPoints)); err != nil {
		return model.Rect{}, nil, 0, err
	}
	counts := r.Uint32s(int(nPolys))

	var total uint32
	for i, c := range counts {
		if c > math.MaxUint32-total {
			return model.Rect{}, nil, 0, invalid(f.Type, "polygon count %d overflows at polygon %d", c, i)
		}
		total += c
	}
	if total > nPoints {
		return model.Rect{}, nil, 0, invalid(f.Type, "polygon counts sum to %d, only %d points", total, nPoints)
	}
	return bounds, counts, int(nPoints), nil
}

func decodePolyPolygon(r *binary.Reader, f Frame) (Record, error) {
	bounds, counts, n, err := readPolyPolygon(r, f, 8)
	if err != nil {
		return nil, err
	}
	return &PolyPolygon{Bounds: bounds, Counts: counts, Points: r.Points(n)}, nil
}

func decodePolyPolygon16(r *binary.Reader, f Frame) (Record, error) {
	bounds, counts, n, err := readPolyPolygon(r, f, 4)
	if err != nil {
		return nil, err
	}
	return &PolyPolygon16{Bounds: bounds, Counts: counts, Points: r.Points16(n)}, nil
}

func init() {
	register(decodePoly,
		model.RecPolyline, model.RecPolygon, model.RecPolyBezier,
		model.RecPolyBezierTo, model.RecPolylineTo)
	register(decodePoly16,
		model.RecPolyline16, model.RecPolygon16, model.RecPolyBezier16,
		model.RecPolyBezierTo16, model.RecPolylineTo16)
	register(decodePolyPolygon, model.RecPolyPolygon)
	register(decodePolyPolygon16, model.RecPolyPolygon16)
}
