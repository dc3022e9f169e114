package record

import (
	"github.com/dyuri/emfconv/internal/binary"
	"github.com/dyuri/emfconv/internal/model"
)

// PathRecord renders the current path: EMR_FILLPATH, EMR_STROKEPATH and
// EMR_STROKEANDFILLPATH
type PathRecord struct {
	Kind   model.RecordType
	Bounds model.Rect
}

func (r *PathRecord) Type() model.RecordType { return r.Kind }
func (r *PathRecord) Size() uint32           { return 24 }

func (r *PathRecord) Encode(w *binary.Writer) error {
	header(w, r)
	w.Rect(r.Bounds)
	return w.Err()
}

func (r *PathRecord) Replay(_ *Playback, s Surface) error {
	switch r.Kind {
	case model.RecFillPath:
		return s.FillPath()
	case model.RecStrokePath:
		return s.StrokePath()
	default:
		return s.StrokeAndFillPath()
	}
}

func decodePath(r *binary.Reader, f Frame) (Record, error) {
	if err := needSize(f, 24); err != nil {
		return nil, err
	}
	return &PathRecord{Kind: f.Type, Bounds: r.Rect()}, nil
}

// BoxRecord draws a shape inscribed in a box: EMR_RECTANGLE and EMR_ELLIPSE
type BoxRecord struct {
	Kind model.RecordType
	Box  model.Rect
}

func (r *BoxRecord) Type() model.RecordType { return r.Kind }
func (r *BoxRecord) Size() uint32           { return 24 }

func (r *BoxRecord) Encode(w *binary.Writer) error {
	header(w, r)
	w.Rect(r.Box)
	return w.Err()
}

func (r *BoxRecord) Replay(_ *Playback, s Surface) error {
	if r.Kind == model.RecEllipse {
		return s.Ellipse(r.Box)
	}
	return s.Rectangle(r.Box)
}

func decodeBox(r *binary.Reader, f Frame) (Record, error) {
	if err := needSize(f, 24); err != nil {
		return nil, err
	}
	return &BoxRecord{Kind: f.Type, Box: r.Rect()}, nil
}

// ArcRecord draws an elliptical arc: EMR_ARC and EMR_ARCTO
type ArcRecord struct {
	Kind  model.RecordType
	Box   model.Rect
	Start model.Point
	End   model.Point
}

func (r *ArcRecord) Type() model.RecordType { return r.Kind }
func (r *ArcRecord) Size() uint32           { return 40 }

func (r *ArcRecord) Encode(w *binary.Writer) error {
	header(w, r)
	w.Rect(r.Box)
	w.Point(r.Start)
	w.Point(r.End)
	return w.Err()
}

func (r *ArcRecord) Replay(_ *Playback, s Surface) error {
	if r.Kind == model.RecArcTo {
		return s.ArcTo(r.Box, r.Start, r.End)
	}
	return s.Arc(r.Box, r.Start, r.End)
}

func decodeArc(r *binary.Reader, f Frame) (Record, error) {
	if err := needSize(f, 40); err != nil {
		return nil, err
	}
	return &ArcRecord{Kind: f.Type, Box: r.Rect(), Start: r.Point(), End: r.Point()}, nil
}

// SetPixelV paints a single pixel (EMR_SETPIXELV)
type SetPixelV struct {
	Point model.Point
	Color model.ColorRef
}

func (r *SetPixelV) Type() model.RecordType { return model.RecSetPixelV }
func (r *SetPixelV) Size() uint32           { return 20 }

func (r *SetPixelV) Encode(w *binary.Writer) error {
	header(w, r)
	w.Point(r.Point)
	w.ColorRef(r.Color)
	return w.Err()
}

func (r *SetPixelV) Replay(_ *Playback, s Surface) error {
	return s.SetPixel(r.Point, r.Color)
}

func decodeSetPixelV(r *binary.Reader, f Frame) (Record, error) {
	if err := needSize(f, 20); err != nil {
		return nil, err
	}
	return &SetPixelV{Point: r.Point(), Color: r.ColorRef()}, nil
}

func init() {
	register(decodePath, model.RecFillPath, model.RecStrokePath, model.RecStrokeAndFillPath)
	register(decodeBox, model.RecRectangle, model.RecEllipse)
	register(decodeArc, model.RecArc, model.RecArcTo)
	register(decodeSetPixelV, model.RecSetPixelV)
}
