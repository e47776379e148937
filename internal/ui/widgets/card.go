package widgets

import (
	"image"
	"image/color"

	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
)

const cornerRadius = unit.Dp(10)

// Card draws a rounded rectangle background behind w.
func Card(gtx layout.Context, bg color.NRGBA, w layout.Widget) layout.Dimensions {
	return CustomCard(gtx, bg, unit.Dp(18), w)
}

func CustomCard(gtx layout.Context, bg color.NRGBA, inset unit.Dp, w layout.Widget) layout.Dimensions {
	return layout.Stack{}.Layout(gtx,
		layout.Expanded(func(gtx layout.Context) layout.Dimensions {
			paint.FillShape(gtx.Ops, bg, roundedRect(gtx).Op(gtx.Ops))
			return layout.Dimensions{Size: gtx.Constraints.Min}
		}),
		layout.Stacked(func(gtx layout.Context) layout.Dimensions {
			return layout.UniformInset(inset).Layout(gtx, w)
		}),
	)
}

// Border strokes a rounded outline around w.
func Border(gtx layout.Context, clr color.NRGBA, w layout.Widget) layout.Dimensions {
	return layout.Stack{}.Layout(gtx,
		layout.Expanded(func(gtx layout.Context) layout.Dimensions {
			rr := roundedRect(gtx)
			paint.FillShape(gtx.Ops, clr, clip.Stroke{
				Path:  rr.Path(gtx.Ops),
				Width: float32(gtx.Dp(1)),
			}.Op())
			return layout.Dimensions{Size: gtx.Constraints.Min}
		}),
		layout.Stacked(w),
	)
}

// Divider draws a one pixel horizontal rule across the available width.
func Divider(gtx layout.Context, clr color.NRGBA) layout.Dimensions {
	d := image.Point{X: gtx.Constraints.Min.X, Y: gtx.Dp(1)}
	paint.FillShape(gtx.Ops, clr, clip.Rect{Max: d}.Op())
	return layout.Dimensions{Size: d}
}

// Scrim covers all the space offered to it with clr.
func Scrim(gtx layout.Context, clr color.NRGBA) layout.Dimensions {
	sz := gtx.Constraints.Max
	paint.FillShape(gtx.Ops, clr, clip.Rect{Max: sz}.Op())
	return layout.Dimensions{Size: sz}
}

func roundedRect(gtx layout.Context) clip.RRect {
	r := gtx.Dp(cornerRadius)
	return clip.RRect{
		Rect: image.Rectangle{Max: gtx.Constraints.Min},
		NE:   r, NW: r, SE: r, SW: r,
	}
}
