package record

import (
	"github.com/dyuri/emfconv/internal/binary"
	"github.com/dyuri/emfconv/internal/model"
)

// PointRecord carries one point: EMR_SETWINDOWORGEX, EMR_SETVIEWPORTORGEX,
// EMR_MOVETOEX and EMR_LINETO
type PointRecord struct {
	Kind  model.RecordType
	Point model.Point
}

func NewSetWindowOrgEx(p model.Point) *PointRecord {
	return &PointRecord{Kind: model.RecSetWindowOrgEx, Point: p}
}

func NewSetViewportOrgEx(p model.Point) *PointRecord {
	return &PointRecord{Kind: model.RecSetViewportOrgEx, Point: p}
}

func NewMoveToEx(p model.Point) *PointRecord {
	return &PointRecord{Kind: model.RecMoveToEx, Point: p}
}

func NewLineTo(p model.Point) *PointRecord {
	return &PointRecord{Kind: model.RecLineTo, Point: p}
}

func (r *PointRecord) Type() model.RecordType { return r.Kind }
func (r *PointRecord) Size() uint32           { return 16 }

func (r *PointRecord) Encode(w *binary.Writer) error {
	header(w, r)
	w.Point(r.Point)
	return w.Err()
}

func (r *PointRecord) Replay(_ *Playback, s Surface) error {
	switch r.Kind {
	case model.RecSetWindowOrgEx:
		return s.SetWindowOrgEx(r.Point)
	case model.RecSetViewportOrgEx:
		return s.SetViewportOrgEx(r.Point)
	case model.RecMoveToEx:
		return s.MoveToEx(r.Point)
	default:
		return s.LineTo(r.Point)
	}
}

func decodePoint(r *binary.Reader, f Frame) (Record, error) {
	if err := needSize(f, 16); err != nil {
		return nil, err
	}
	return &PointRecord{Kind: f.Type, Point: r.Point()}, nil
}

// ExtentRecord carries a window or viewport extent: EMR_SETWINDOWEXTEX and
// EMR_SETVIEWPORTEXTEX
type ExtentRecord struct {
	Kind   model.RecordType
	Extent model.Size
}

func NewSetWindowExtEx(s model.Size) *ExtentRecord {
	return &ExtentRecord{Kind: model.RecSetWindowExtEx, Extent: s}
}

func NewSetViewportExtEx(s model.Size) *ExtentRecord {
	return &ExtentRecord{Kind: model.RecSetViewportExtEx, Extent: s}
}

func (r *ExtentRecord) Type() model.RecordType { return r.Kind }
func (r *ExtentRecord) Size() uint32           { return 16 }

func (r *ExtentRecord) Encode(w *binary.Writer) error {
	header(w, r)
	w.Size(r.Extent)
	return w.Err()
}

func (r *ExtentRecord) Replay(_ *Playback, s Surface) error {
	if r.Kind == model.RecSetWindowExtEx {
		return s.SetWindowExtEx(r.Extent)
	}
	return s.SetViewportExtEx(r.Extent)
}

func decodeExtent(r *binary.Reader, f Frame) (Record, error) {
	if err := needSize(f, 16); err != nil {
		return nil, err
	}
	return &ExtentRecord{Kind: f.Type, Extent: r.Size()}, nil
}

// ScaleRecord scales an extent by two ratios: EMR_SCALEVIEWPORTEXTEX and
// EMR_SCALEWINDOWEXTEX
type ScaleRecord struct {
	Kind   model.RecordType
	XNum   int32
	XDenom int32
	YNum   int32
	YDenom int32
}

func NewScaleViewportExtEx(xNum, xDenom, yNum, yDenom int32) *ScaleRecord {
	return &ScaleRecord{Kind: model.RecScaleViewportExtEx, XNum: xNum, XDenom: xDenom, YNum: yNum, YDenom: yDenom}
}

func NewScaleWindowExtEx(xNum, xDenom, yNum, yDenom int32) *ScaleRecord {
	return &ScaleRecord{Kind: model.RecScaleWindowExtEx, XNum: xNum, XDenom: xDenom, YNum: yNum, YDenom: yDenom}
}

func (r *ScaleRecord) Type() model.RecordType { return r.Kind }
func (r *ScaleRecord) Size() uint32           { return 24 }

func (r *ScaleRecord) Encode(w *binary.Writer) error {
	header(w, r)
	w.Int32(r.XNum)
	w.Int32(r.XDenom)
	w.Int32(r.YNum)
	w.Int32(r.YDenom)
	return w.Err()
}

func (r *ScaleRecord) Replay(_ *Playback, s Surface) error {
	if r.Kind == model.RecScaleViewportExtEx {
		return s.ScaleViewportExtEx(r.XNum, r.XDenom, r.YNum, r.YDenom)
	}
	return s.ScaleWindowExtEx(r.XNum, r.XDenom, r.YNum, r.YDenom)
}

func decodeScale(r *binary.Reader, f Frame) (Record, error) {
	if err := needSize(f, 24); err != nil {
		return nil, err
	}
	return &ScaleRecord{Kind: f.Type, XNum: r.Int32(), XDenom: r.Int32(), YNum: r.Int32(), YDenom: r.Int32()}, nil
}

// SetWorldTransform replaces the world transform (EMR_SETWORLDTRANSFORM)
type SetWorldTransform struct {
	XForm model.XForm
}

func (r *SetWorldTransform) Type() model.RecordType { return model.RecSetWorldTransform }
func (r *SetWorldTransform) Size() uint32           { return 32 }

func (r *SetWorldTransform) Encode(w *binary.Writer) error {
	header(w, r)
	w.XForm(r.XForm)
	return w.Err()
}

func (r *SetWorldTransform) Replay(_ *Playback, s Surface) error {
	return s.SetWorldTransform(r.XForm)
}

func decodeSetWorldTransform(r *binary.Reader, f Frame) (Record, error) {
	if err := needSize(f, 32); err != nil {
		return nil, err
	}
	return &SetWorldTransform{XForm: r.XForm()}, nil
}

// ModifyWorldTransform combines the world transform with another one
// (EMR_MODIFYWORLDTRANSFORM)
type ModifyWorldTransform struct {
	XForm model.XForm
	Mode  uint32
}

func (r *ModifyWorldTransform) Type() model.RecordType { return model.RecModifyWorldTransform }
func (r *ModifyWorldTransform) Size() uint32           { return 36 }

func (r *ModifyWorldTransform) Encode(w *binary.Writer) error {
	header(w, r)
	w.XForm(r.XForm)
	w.Uint32(r.Mode)
	return w.Err()
}

func (r *ModifyWorldTransform) Replay(_ *Playback, s Surface) error {
	return s.ModifyWorldTransform(r.XForm, r.Mode)
}

func decodeModifyWorldTransform(r *binary.Reader, f Frame) (Record, error) {
	if err := needSize(f, 36); err != nil {
		return nil, err
	}
	return &ModifyWorldTransform{XForm: r.XForm(), Mode: r.Uint32()}, nil
}

// ValueRecord carries one 32-bit value: modes, colors, alignment,
// EMR_RESTOREDC and the object selection records
type ValueRecord struct {
	Kind  model.RecordType
	Value uint32
}

func NewSetMapMode(mode uint32) *ValueRecord {
	return &ValueRecord{Kind: model.RecSetMapMode, Value: mode}
}

func NewSetBkMode(mode uint32) *ValueRecord {
	return &ValueRecord{Kind: model.RecSetBkMode, Value: mode}
}

func NewSetPolyFillMode(mode uint32) *ValueRecord {
	return &ValueRecord{Kind: model.RecSetPolyFillMode, Value: mode}
}

func NewSetTextAlign(align uint32) *ValueRecord {
	return &ValueRecord{Kind: model.RecSetTextAlign, Value: align}
}

func NewSetTextColor(c model.ColorRef) *ValueRecord {
	return &ValueRecord{Kind: model.RecSetTextColor, Value: uint32(c)}
}

func NewSetBkColor(c model.ColorRef) *ValueRecord {
	return &ValueRecord{Kind: model.RecSetBkColor, Value: uint32(c)}
}

func NewRestoreDC(relative int32) *ValueRecord {
	return &ValueRecord{Kind: model.RecRestoreDC, Value: uint32(relative)}
}

func NewSelectObject(h model.Handle) *ValueRecord {
	return &ValueRecord{Kind: model.RecSelectObject, Value: uint32(h)}
}

func NewDeleteObject(h model.Handle) *ValueRecord {
	return &ValueRecord{Kind: model.RecDeleteObject, Value: uint32(h)}
}

func (r *ValueRecord) Type() model.RecordType { return r.Kind }
func (r *ValueRecord) Size() uint32           { return 12 }

func (r *ValueRecord) Encode(w *binary.Writer) error {
	header(w, r)
	w.Uint32(r.Value)
	return w.Err()
}

func (r *ValueRecord) Replay(p *Playback, s Surface) error {
	switch r.Kind {
	case model.RecSetMapMode:
		return s.SetMapMode(r.Value)
	case model.RecSetBkMode:
		return s.SetBkMode(r.Value)
	case model.RecSetPolyFillMode:
		return s.SetPolyFillMode(r.Value)
	case model.RecSetTextAlign:
		return s.SetTextAlign(r.Value)
	case model.RecSetTextColor:
		return s.SetTextColor(model.ColorRef(r.Value))
	case model.RecSetBkColor:
		return s.SetBkColor(model.ColorRef(r.Value))
	case model.RecRestoreDC:
		return s.RestoreDC(int32(r.Value))
	case model.RecSelectObject:
		h, err := p.Resolve(model.Handle(r.Value))
		if err != nil {
			return err
		}
		return s.SelectObject(h)
	default:
		h := model.Handle(r.Value)
		if h.IsStock() {
			return nil
		}
		target, err := p.Resolve(h)
		if err != nil {
			return err
		}
		p.Unbind(h)
		return s.DeleteObject(target)
	}
}

func decodeValue(r *binary.Reader, f Frame) (Record, error) {
	if err := needSize(f, 12); err != nil {
		return nil, err
	}
	return &ValueRecord{Kind: f.Type, Value: r.Uint32()}, nil
}

// EmptyRecord has no payload: EMR_SETMETARGN, EMR_SAVEDC, EMR_BEGINPATH,
// EMR_ENDPATH and EMR_CLOSEFIGURE
type EmptyRecord struct {
	Kind model.RecordType
}

func (r *EmptyRecord) Type() model.RecordType { return r.Kind }
func (r *EmptyRecord) Size() uint32           { return 8 }

func (r *EmptyRecord) Encode(w *binary.Writer) error {
	header(w, r)
	return w.Err()
}

func (r *EmptyRecord) Replay(_ *Playback, s Surface) error {
	switch r.Kind {
	case model.RecSetMetaRgn:
		return s.SetMetaRgn()
	case model.RecSaveDC:
		return s.SaveDC()
	case model.RecBeginPath:
		return s.BeginPath()
	case model.RecEndPath:
		return s.EndPath()
	default:
		return s.CloseFigure()
	}
}

func decodeEmpty(_ *binary.Reader, f Frame) (Record, error) {
	return &EmptyRecord{Kind: f.Type}, nil
}

// SetMiterLimit sets the miter length limit (EMR_SETMITERLIMIT). Integer
// records were read from, and are written back as, a truncated integer.
type SetMiterLimit struct {
	Limit   float32
	Integer bool
}

func (r *SetMiterLimit) Type() model.RecordType { return model.RecSetMiterLimit }
func (r *SetMiterLimit) Size() uint32           { return 12 }

func (r *SetMiterLimit) Encode(w *binary.Writer) error {
	header(w, r)
	if r.Integer {
		w.Int32(int32(r.Limit))
	} else {
		w.Float32(r.Limit)
	}
	return w.Err()
}

func (r *SetMiterLimit) Replay(_ *Playback, s Surface) error {
	return s.SetMiterLimit(r.Limit)
}

func decodeSetMiterLimit(r *binary.Reader, f Frame) (Record, error) {
	if err := needSize(f, 12); err != nil {
		return nil, err
	}
	if f.Options.IntegerMiterLimit {
		return &SetMiterLimit{Limit: float32(r.Int32()), Integer: true}, nil
	}
	return &SetMiterLimit{Limit: r.Float32()}, nil
}

func init() {
	register(decodePoint, model.RecSetWindowOrgEx, model.RecSetViewportOrgEx, model.RecMoveToEx, model.RecLineTo)
	register(decodeExtent, model.RecSetWindowExtEx, model.RecSetViewportExtEx)
	register(decodeScale, model.RecScaleViewportExtEx, model.RecScaleWindowExtEx)
	register(decodeSetWorldTransform, model.RecSetWorldTransform)
	register(decodeModifyWorldTransform, model.RecModifyWorldTransform)
	register(decodeValue,
		model.RecSetMapMode, model.RecSetBkMode, model.RecSetPolyFillMode,
		model.RecSetTextAlign, model.RecSetTextColor, model.RecSetBkColor,
		model.RecRestoreDC, model.RecSelectObject, model.RecDeleteObject)
	register(decodeEmpty,
		model.RecSetMetaRgn, model.RecSaveDC, model.RecBeginPath,
		model.RecEndPath, model.RecCloseFigure)
	register(decodeSetMiterLimit, model.RecSetMiterLimit)
}
