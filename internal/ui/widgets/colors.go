package widgets

import (
	"image/color"
)

var (
	ColorSuccess = color.NRGBA{R: 0x2E, G: 0x7D, B: 0x32, A: 0xFF} // Green 800
	ColorError   = color.NRGBA{R: 0xD3, G: 0x2F, B: 0x2F, A: 0xFF} // Red 700
	ColorWarning = color.NRGBA{R: 0xED, G: 0x6C, B: 0x02, A: 0xFF} // Orange 800
	ColorSurface = color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	ColorBorder  = color.NRGBA{R: 0xDA, G: 0xDE, B: 0xE0, A: 0xFF}
	ColorDivider = color.NRGBA{R: 0xED, G: 0xF1, B: 0xF5, A: 0xFF}
	ColorMuted   = color.NRGBA{R: 0x5F, G: 0x6E, B: 0x84, A: 0xFF}
	ColorScrim   = color.NRGBA{R: 0x10, G: 0x14, B: 0x1A, A: 0x99}
	ColorCode    = color.NRGBA{R: 0xF4, G: 0xF6, B: 0xF8, A: 0xFF}
)
