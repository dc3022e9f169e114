package model

import "fmt"

// RecordType is the type tag at the start of every metafile record
type RecordType uint32

const (
	RecHeader                 RecordType = 1
	RecPolyBezier             RecordType = 2
	RecPolygon                RecordType = 3
	RecPolyline               RecordType = 4
	RecPolyBezierTo           RecordType = 5
	RecPolylineTo             RecordType = 6
	RecPolyPolygon            RecordType = 8
	RecSetWindowExtEx         RecordType = 9
	RecSetWindowOrgEx         RecordType = 10
	RecSetViewportExtEx       RecordType = 11
	RecSetViewportOrgEx       RecordType = 12
	RecEOF                    RecordType = 14
	RecSetPixelV              RecordType = 15
	RecSetMapMode             RecordType = 17
	RecSetBkMode              RecordType = 18
	RecSetPolyFillMode        RecordType = 19
	RecSetTextAlign           RecordType = 22
	RecSetTextColor           RecordType = 24
	RecSetBkColor             RecordType = 25
	RecMoveToEx               RecordType = 27
	RecSetMetaRgn             RecordType = 28
	RecScaleViewportExtEx     RecordType = 31
	RecScaleWindowExtEx       RecordType = 32
	RecSaveDC                 RecordType = 33
	RecRestoreDC              RecordType = 34
	RecSetWorldTransform      RecordType = 35
	RecModifyWorldTransform   RecordType = 36
	RecSelectObject           RecordType = 37
	RecCreatePen              RecordType = 38
	RecCreateBrushIndirect    RecordType = 39
	RecDeleteObject           RecordType = 40
	RecEllipse                RecordType = 42
	RecRectangle              RecordType = 43
	RecArc                    RecordType = 45
	RecCreatePalette          RecordType = 49
	RecLineTo                 RecordType = 54
	RecArcTo                  RecordType = 55
	RecSetMiterLimit          RecordType = 58
	RecBeginPath              RecordType = 59
	RecEndPath                RecordType = 60
	RecCloseFigure            RecordType = 61
	RecFillPath               RecordType = 62
	RecStrokeAndFillPath      RecordType = 63
	RecStrokePath             RecordType = 64
	RecExtCreateFontIndirectW RecordType = 82
	RecExtTextOutA            RecordType = 83
	RecExtTextOutW            RecordType = 84
	RecPolyBezier16           RecordType = 85
	RecPolygon16              RecordType = 86
	RecPolyline16             RecordType = 87
	RecPolyBezierTo16         RecordType = 88
	RecPolylineTo16           RecordType = 89
	RecPolyPolygon16          RecordType = 91
	RecExtCreatePen           RecordType = 95
)

var recordNames = map[RecordType]string{
	RecHeader:                 "EMR_HEADER",
	RecPolyBezier:             "EMR_POLYBEZIER",
	RecPolygon:                "EMR_POLYGON",
	RecPolyline:               "EMR_POLYLINE",
	RecPolyBezierTo:           "EMR_POLYBEZIERTO",
	RecPolylineTo:             "EMR_POLYLINETO",
	RecPolyPolygon:            "EMR_POLYPOLYGON",
	RecSetWindowExtEx:         "EMR_SETWINDOWEXTEX",
	RecSetWindowOrgEx:         "EMR_SETWINDOWORGEX",
	RecSetViewportExtEx:       "EMR_SETVIEWPORTEXTEX",
	RecSetViewportOrgEx:       "EMR_SETVIEWPORTORGEX",
	RecEOF:                    "EMR_EOF",
	RecSetPixelV:              "EMR_SETPIXELV",
	RecSetMapMode:             "EMR_SETMAPMODE",
	RecSetBkMode:              "EMR_SETBKMODE",
	RecSetPolyFillMode:        "EMR_SETPOLYFILLMODE",
	RecSetTextAlign:           "EMR_SETTEXTALIGN",
	RecSetTextColor:           "EMR_SETTEXTCOLOR",
	RecSetBkColor:             "EMR_SETBKCOLOR",
	RecMoveToEx:               "EMR_MOVETOEX",
	RecSetMetaRgn:             "EMR_SETMETARGN",
	RecScaleViewportExtEx:     "EMR_SCALEVIEWPORTEXTEX",
	RecScaleWindowExtEx:       "EMR_SCALEWINDOWEXTEX",
	RecSaveDC:                 "EMR_SAVEDC",
	RecRestoreDC:              "EMR_RESTOREDC",
	RecSetWorldTransform:      "EMR_SETWORLDTRANSFORM",
	RecModifyWorldTransform:   "EMR_MODIFYWORLDTRANSFORM",
	RecSelectObject:           "EMR_SELECTOBJECT",
	RecCreatePen:              "EMR_CREATEPEN",
	RecCreateBrushIndirect:    "EMR_CREATEBRUSHINDIRECT",
	RecDeleteObject:           "EMR_DELETEOBJECT",
	RecEllipse:                "EMR_ELLIPSE",
	RecRectangle:              "EMR_RECTANGLE",
	RecArc:                    "EMR_ARC",
	RecCreatePalette:          "EMR_CREATEPALETTE",
	RecLineTo:                 "EMR_LINETO",
	RecArcTo:                  "EMR_ARCTO",
	RecSetMiterLimit:          "EMR_SETMITERLIMIT",
	RecBeginPath:              "EMR_BEGINPATH",
	RecEndPath:                "EMR_ENDPATH",
	RecCloseFigure:            "EMR_CLOSEFIGURE",
	RecFillPath:               "EMR_FILLPATH",
	RecStrokeAndFillPath:      "EMR_STROKEANDFILLPATH",
	RecStrokePath:             "EMR_STROKEPATH",
	RecExtCreateFontIndirectW: "EMR_EXTCREATEFONTINDIRECTW",
	RecExtTextOutA:            "EMR_EXTTEXTOUTA",
	RecExtTextOutW:            "EMR_EXTTEXTOUTW",
	RecPolyBezier16:           "EMR_POLYBEZIER16",
	RecPolygon16:              "EMR_POLYGON16",
	RecPolyline16:             "EMR_POLYLINE16",
	RecPolyBezierTo16:         "EMR_POLYBEZIERTO16",
	RecPolylineTo16:           "EMR_POLYLINETO16",
	RecPolyPolygon16:          "EMR_POLYPOLYGON16",
	RecExtCreatePen:           "EMR_EXTCREATEPEN",
}

func (t RecordType) String() string {
	if name, ok := recordNames[t]; ok {
		return name
	}
	return fmt.Sprintf("EMR_UNKNOWN(%d)", uint32(t))
}

// Header constants
const (
	Signature uint32 = 0x464D4520 // " EMF"
	Version   uint32 = 0x00010000
)

// RoundToLong rounds n up to the next multiple of 4
func RoundToLong(n uint32) uint32 {
	return (n + 3) &^ 3
}
