package ui

import (
	"context"
	"image/color"

	gioapp "gioui.org/app"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"gioui.org/x/explorer"

	"github.com/vocdoni/gofirma/eolookup/internal/app"
	"github.com/vocdoni/gofirma/eolookup/internal/ui/icons"
	"github.com/vocdoni/gofirma/eolookup/internal/ui/screens"
	"github.com/vocdoni/gofirma/eolookup/internal/ui/widgets"
)

type tab struct {
	screen app.Screen
	label  string
	icon   *widget.Icon
	click  widget.Clickable
}

func Run(w *gioapp.Window, a *app.App) error {
	a.Logger.Sugar().Debugw("UI loop started")
	a.Explorer = explorer.NewExplorer(w)
	a.Invalidate = w.Invalidate
	th := NewTheme()
	var ops op.Ops

	go a.CheckForUpdates(context.Background())

	lookupScreen := screens.NewLookupScreen(a, th)
	historyScreen := screens.NewHistoryScreen(a, th)
	aboutScreen := screens.NewAboutScreen(a, th)

	tabs := []*tab{
		{screen: app.ScreenLookup, label: "Look Up", icon: icons.IconLookup},
		{screen: app.ScreenHistory, label: "History", icon: icons.IconHistory},
		{screen: app.ScreenAbout, label: "About", icon: icons.IconAbout},
	}

	for {
		e := w.Event()
		a.Explorer.ListenEvents(e)
		switch e := e.(type) {
		case gioapp.DestroyEvent:
			return e.Err
		case gioapp.FrameEvent:
			gtx := gioapp.NewContext(&ops, e)

			for _, t := range tabs {
				if t.click.Clicked(gtx) && a.CurrentScreen != t.screen {
					a.CurrentScreen = t.screen
					if t.screen == app.ScreenHistory {
						historyScreen.RefreshEntries()
					}
				}
			}

			var current layout.Widget
			switch a.CurrentScreen {
			case app.ScreenHistory:
				current = historyScreen.Layout
			case app.ScreenAbout:
				current = aboutScreen.Layout
			default:
				current = lookupScreen.Layout
			}

			widgets.Card(gtx, th.Palette.Bg, func(gtx layout.Context) layout.Dimensions {
				gtx.Constraints.Min = gtx.Constraints.Max
				return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
					layout.Rigid(func(gtx layout.Context) layout.Dimensions {
						return layoutNav(gtx, th, a, tabs)
					}),
					layout.Rigid(func(gtx layout.Context) layout.Dimensions {
						return widgets.Divider(gtx, widgets.ColorDivider)
					}),
					layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
						return layout.Inset{Top: unit.Dp(16)}.Layout(gtx, current)
					}),
				)
			})

			e.Frame(gtx.Ops)
		}
	}
}

func layoutNav(gtx layout.Context, th *material.Theme, a *app.App, tabs []*tab) layout.Dimensions {
	children := []layout.FlexChild{
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return widgets.IconLabel(gtx, th, icons.IconApp, "EOLookup", th.Palette.ContrastBg, unit.Sp(20))
		}),
		layout.Rigid(layout.Spacer{Width: unit.Dp(32)}.Layout),
	}
	for _, t := range tabs {
		t := t
		children = append(children,
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				bg := color.NRGBA{A: 0}
				fg := th.Palette.Fg
				if a.CurrentScreen == t.screen {
					bg = th.Palette.ContrastBg
					fg = th.Palette.ContrastFg
				}
				return material.Clickable(gtx, &t.click, func(gtx layout.Context) layout.Dimensions {
					return widgets.CustomCard(gtx, bg, unit.Dp(8), func(gtx layout.Context) layout.Dimensions {
						gtx.Constraints.Min.X = gtx.Dp(120)
						return widgets.IconLabel(gtx, th, t.icon, t.label, fg, unit.Sp(14))
					})
				})
			}),
			layout.Rigid(layout.Spacer{Width: unit.Dp(10)}.Layout),
		)
	}
	return layout.Inset{Bottom: unit.Dp(12)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx, children...)
	})
}
