package object

import "github.com/dyuri/emfconv/internal/model"

func stockBrush(style uint32, color model.ColorRef) *Brush {
	return &Brush{
		graphics: graphics{stock: true},
		LogBrush: model.LogBrush{Style: style, Color: color, Hatch: model.HatchHorizontal},
	}
}

func stockPen(style uint32, color model.ColorRef) *Pen {
	return &Pen{
		graphics: graphics{stock: true},
		LogPen:   model.LogPen{Style: style, Color: color},
	}
}

func stockFont() *Font {
	return &Font{graphics: graphics{stock: true}}
}

// stockObjects builds the predefined objects in index order. Index 9 is not
// assigned by GDI; it repeats the null pen.
func stockObjects() [model.StockLast + 1]Graphics {
	return [model.StockLast + 1]Graphics{
		model.WhiteBrush:        stockBrush(model.BrushSolid, model.RGB(0xff, 0xff, 0xff)),
		model.LtGrayBrush:       stockBrush(model.BrushSolid, model.RGB(0xb0, 0xb0, 0xb0)),
		model.GrayBrush:         stockBrush(model.BrushSolid, model.RGB(0x80, 0x80, 0x80)),
		model.DkGrayBrush:       stockBrush(model.BrushSolid, model.RGB(0x40, 0x40, 0x40)),
		model.BlackBrush:        stockBrush(model.BrushSolid, model.RGB(0, 0, 0)),
		model.NullBrush:         stockBrush(model.BrushNull, model.RGB(0, 0, 0)),
		model.WhitePen:          stockPen(model.PenSolid, model.RGB(0xff, 0xff, 0xff)),
		model.BlackPen:          stockPen(model.PenSolid, model.RGB(0, 0, 0)),
		model.NullPen:           stockPen(model.PenNull, model.RGB(0, 0, 0)),
		9:                       stockPen(model.PenNull, model.RGB(0, 0, 0)),
		model.OEMFixedFont:      stockFont(),
		model.ANSIFixedFont:     stockFont(),
		model.ANSIVarFont:       stockFont(),
		model.SystemFont:        stockFont(),
		model.DeviceDefaultFont: stockFont(),
		model.DefaultPalette:    &Palette{graphics: graphics{stock: true}},
		model.SystemFixedFont:   stockFont(),
		model.DefaultGUIFont:    stockFont(),
	}
}
