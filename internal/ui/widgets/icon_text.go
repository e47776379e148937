package widgets

import (
	"image"
	"image/color"

	"gioui.org/layout"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"
)

// IconLabel renders an icon followed by a label, the icon scaled to the
// text size.
func IconLabel(gtx layout.Context, th *material.Theme, icon *widget.Icon, text string, clr color.NRGBA, size unit.Sp) layout.Dimensions {
	return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			if icon == nil {
				return layout.Dimensions{}
			}
			return layout.Inset{Right: unit.Dp(10)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
				sz := gtx.Dp(unit.Dp(float32(size) * 1.5))
				if sz < gtx.Dp(20) {
					sz = gtx.Dp(20)
				}
				gtx.Constraints.Min = image.Point{X: sz, Y: sz}
				gtx.Constraints.Max = gtx.Constraints.Min
				return icon.Layout(gtx, clr)
			})
		}),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			l := material.Label(th, size, text)
			l.Color = clr
			return l.Layout(gtx)
		}),
	)
}
