package model

import "fmt"

// Handle identifies a graphics object or device context in an object table,
// or an object inside a metafile's own handle space
type Handle uint32

// StockObjectFlag marks handles that refer to predefined stock objects
const StockObjectFlag Handle = 0x80000000

// IsStock reports whether the handle refers to a stock object
func (h Handle) IsStock() bool {
	return h&StockObjectFlag != 0
}

// StockObject is the index of a predefined object
type StockObject uint32

const (
	WhiteBrush        StockObject = 0
	LtGrayBrush       StockObject = 1
	GrayBrush         StockObject = 2
	DkGrayBrush       StockObject = 3
	BlackBrush        StockObject = 4
	NullBrush         StockObject = 5
	WhitePen          StockObject = 6
	BlackPen          StockObject = 7
	NullPen           StockObject = 8
	OEMFixedFont      StockObject = 10
	ANSIFixedFont     StockObject = 11
	ANSIVarFont       StockObject = 12
	SystemFont        StockObject = 13
	DeviceDefaultFont StockObject = 14
	DefaultPalette    StockObject = 15
	SystemFixedFont   StockObject = 16
	DefaultGUIFont    StockObject = 17

	StockLast = DefaultGUIFont
)

// Handle returns the flagged handle of the stock object
func (s StockObject) Handle() Handle {
	return Handle(s) | StockObjectFlag
}

// ColorRef is a 0x00BBGGRR color value
type ColorRef uint32

// RGB packs a color reference
func RGB(r, g, b uint8) ColorRef {
	return ColorRef(uint32(r) | uint32(g)<<8 | uint32(b)<<16)
}

func (c ColorRef) R() uint8 { return uint8(c) }
func (c ColorRef) G() uint8 { return uint8(c >> 8) }
func (c ColorRef) B() uint8 { return uint8(c >> 16) }

func (c ColorRef) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R(), c.G(), c.B())
}

// Pen styles
const (
	PenSolid       uint32 = 0
	PenDash        uint32 = 1
	PenDot         uint32 = 2
	PenDashDot     uint32 = 3
	PenDashDotDot  uint32 = 4
	PenNull        uint32 = 5
	PenInsideFrame uint32 = 6
	PenUserStyle   uint32 = 7
	PenGeometric   uint32 = 0x00010000

	PenStyleMask uint32 = 0x0000000F
)

// Brush styles
const (
	BrushSolid   uint32 = 0
	BrushNull    uint32 = 1
	BrushHatched uint32 = 2
	BrushPattern uint32 = 3
)

// Hatch styles
const (
	HatchHorizontal uint32 = 0
	HatchVertical   uint32 = 1
	HatchFDiagonal  uint32 = 2
	HatchBDiagonal  uint32 = 3
	HatchCross      uint32 = 4
	HatchDiagCross  uint32 = 5
)

// Background modes
const (
	Transparent uint32 = 1
	Opaque      uint32 = 2
)

// Polygon fill modes
const (
	Alternate uint32 = 1
	Winding   uint32 = 2
)

// Mapping modes
const (
	MapText        uint32 = 1
	MapLoMetric    uint32 = 2
	MapHiMetric    uint32 = 3
	MapLoEnglish   uint32 = 4
	MapHiEnglish   uint32 = 5
	MapTwips       uint32 = 6
	MapIsotropic   uint32 = 7
	MapAnisotropic uint32 = 8
)

// Text alignment flags
const (
	TextAlignLeft       uint32 = 0
	TextAlignTop        uint32 = 0
	TextAlignUpdateCP   uint32 = 1
	TextAlignRight      uint32 = 2
	TextAlignCenter     uint32 = 6
	TextAlignBottom     uint32 = 8
	TextAlignBaseline   uint32 = 24
	TextAlignRTLReading uint32 = 256
)

// ExtTextOut options
const (
	ETOOpaque         uint32 = 0x0002
	ETOClipped        uint32 = 0x0004
	ETOGlyphIndex     uint32 = 0x0010
	ETORTLReading     uint32 = 0x0080
	ETOIgnoreLanguage uint32 = 0x1000
)

// Graphics modes
const (
	GraphicsModeCompatible uint32 = 1
	GraphicsModeAdvanced   uint32 = 2
)

// World transform modification modes
const (
	MWTIdentity      uint32 = 1
	MWTLeftMultiply  uint32 = 2
	MWTRightMultiply uint32 = 3
)

// Font weights and character sets
const (
	FontWeightDontCare int32 = 0
	FontWeightNormal   int32 = 400
	FontWeightBold     int32 = 700

	CharsetANSI    uint8 = 0
	CharsetDefault uint8 = 1
	CharsetSymbol  uint8 = 2
)

// Device capability indexes understood by a metafile context
const (
	CapDriverVersion = 0
	CapTechnology    = 2
	CapHorzSize      = 4
	CapVertSize      = 6
	CapHorzRes       = 8
	CapVertRes       = 10
	CapLogPixelsX    = 88
	CapLogPixelsY    = 90

	TechnologyMetafile = 5
)

// LogPen describes a cosmetic pen (LOGPEN); only Width.X is meaningful
type LogPen struct {
	Style uint32
	Width Point
	Color ColorRef
}

// ExtLogPen describes a geometric or cosmetic extended pen (EXTLOGPEN)
type ExtLogPen struct {
	PenStyle     uint32
	Width        uint32
	BrushStyle   uint32
	Color        ColorRef
	Hatch        uint32
	StyleEntries []uint32 // dash lengths when PenStyle includes PenUserStyle
}

// LogBrush describes a brush (LOGBRUSH)
type LogBrush struct {
	Style uint32
	Color ColorRef
	Hatch uint32
}

// FaceNameLen is the number of UTF-16 units in a face name, including the terminator
const FaceNameLen = 32

// LogFont describes a font request (LOGFONTW)
type LogFont struct {
	Height         int32
	Width          int32
	Escapement     int32
	Orientation    int32
	Weight         int32
	Italic         uint8
	Underline      uint8
	StrikeOut      uint8
	CharSet        uint8
	OutPrecision   uint8
	ClipPrecision  uint8
	Quality        uint8
	PitchAndFamily uint8
	FaceName       [FaceNameLen]uint16
}

// Panose classifies a typeface (PANOSE)
type Panose struct {
	FamilyType      uint8
	SerifStyle      uint8
	Weight          uint8
	Proportion      uint8
	Contrast        uint8
	StrokeVariation uint8
	ArmStyle        uint8
	Letterform      uint8
	Midline         uint8
	XHeight         uint8
}

// PanoseAny is the panose value written for fonts created without one
var PanoseAny = Panose{1, 1, 1, 1, 1, 1, 1, 1, 1, 1}

// ExtLogFont extends LogFont with the naming and classification fields of
// EXTLOGFONTW
type ExtLogFont struct {
	LogFont
	FullName  [64]uint16
	Style     [32]uint16
	Version   uint32
	StyleSize uint32
	Match     uint32
	Reserved  uint32
	VendorID  [4]byte
	Culture   uint32
	Panose    Panose
}

// PaletteEntry is one logical palette color (PALETTEENTRY)
type PaletteEntry struct {
	Red   uint8
	Green uint8
	Blue  uint8
	Flags uint8
}

// LogPalette is a logical palette (LOGPALETTE)
type LogPalette struct {
	Version uint16
	Entries []PaletteEntry
}

// PaletteVersion is the only logical palette version in use
const PaletteVersion uint16 = 0x300
