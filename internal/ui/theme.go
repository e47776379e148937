package ui

import (
	"image/color"

	"gioui.org/unit"
	"gioui.org/widget/material"
)

func NewTheme() *material.Theme {
	th := material.NewTheme()

	th.Palette.Bg = color.NRGBA{R: 0xF6, G: 0xF7, B: 0xF9, A: 0xFF}
	th.Palette.Fg = color.NRGBA{R: 0x1A, G: 0x1C, B: 0x1E, A: 0xFF}

	// Primary: Blue 700
	th.Palette.ContrastBg = color.NRGBA{R: 0x19, G: 0x76, B: 0xD2, A: 0xFF}
	th.Palette.ContrastFg = color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}

	th.TextSize = unit.Sp(15)

	return th
}
