package widgets

import (
	"gioui.org/font"
	"gioui.org/layout"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"

	"github.com/vocdoni/gofirma/eolookup/internal/ui/icons"
)

// ErrorDialog draws a modal error box over a dimmed background. The caller
// is expected to lay out whatever is underneath with a disabled context so
// it does not react to input while the dialog is open.
func ErrorDialog(gtx layout.Context, th *material.Theme, title, message string, ok *widget.Clickable) layout.Dimensions {
	return layout.Stack{Alignment: layout.Center}.Layout(gtx,
		layout.Expanded(func(gtx layout.Context) layout.Dimensions {
			return Scrim(gtx, ColorScrim)
		}),
		layout.Stacked(func(gtx layout.Context) layout.Dimensions {
			return ConstrainMaxWidth(gtx, unit.Dp(440), func(gtx layout.Context) layout.Dimensions {
				return Section(gtx, ColorSurface, func(gtx layout.Context) layout.Dimensions {
					return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
						layout.Rigid(func(gtx layout.Context) layout.Dimensions {
							return IconLabel(gtx, th, icons.IconError, title, ColorError, unit.Sp(18))
						}),
						layout.Rigid(layout.Spacer{Height: unit.Dp(12)}.Layout),
						layout.Rigid(func(gtx layout.Context) layout.Dimensions {
							l := material.Body1(th, message)
							l.Font.Weight = font.Medium
							return l.Layout(gtx)
						}),
						layout.Rigid(layout.Spacer{Height: unit.Dp(18)}.Layout),
						layout.Rigid(func(gtx layout.Context) layout.Dimensions {
							return layout.E.Layout(gtx, PrimaryButton(th, ok, "OK").Layout)
						}),
					)
				})
			})
		}),
	)
}
