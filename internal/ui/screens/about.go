package screens

import (
	"gioui.org/layout"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"

	"github.com/vocdoni/gofirma/eolookup/internal/app"
	"github.com/vocdoni/gofirma/eolookup/internal/net"
	"github.com/vocdoni/gofirma/eolookup/internal/ui/icons"
	"github.com/vocdoni/gofirma/eolookup/internal/ui/widgets"
	"github.com/vocdoni/gofirma/eolookup/internal/version"
)

const (
	sourceCodeURL = "https://github.com/vocdoni/eolookup"
	apiDocsURL    = "https://developer.apple.com/documentation/appstoreserverapi/look_up_order_id"
)

type AboutScreen struct {
	App   *app.App
	Theme *material.Theme

	OpenReleases widget.Clickable
	OpenSource   widget.Clickable
	OpenDocs     widget.Clickable
}

func NewAboutScreen(a *app.App, th *material.Theme) *AboutScreen {
	return &AboutScreen{
		App:   a,
		Theme: th,
	}
}

func (s *AboutScreen) Layout(gtx layout.Context) layout.Dimensions {
	if s.OpenReleases.Clicked(gtx) {
		widgets.OpenURL(net.LatestReleasePageURL)
	}
	if s.OpenSource.Clicked(gtx) {
		widgets.OpenURL(sourceCodeURL)
	}
	if s.OpenDocs.Clicked(gtx) {
		widgets.OpenURL(apiDocsURL)
	}

	return widgets.CenterInAvailable(gtx, func(gtx layout.Context) layout.Dimensions {
		return widgets.ConstrainMaxWidth(gtx, unit.Dp(820), func(gtx layout.Context) layout.Dimensions {
			return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					return widgets.IconLabel(gtx, s.Theme, icons.IconAbout, "About EOLookup", s.Theme.Palette.ContrastBg, unit.Sp(22))
				}),
				layout.Rigid(layout.Spacer{Height: unit.Dp(14)}.Layout),
				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					latest, outdated := s.App.UpdateInfo()
					if !outdated {
						return layout.Dimensions{}
					}
					return layout.Inset{Bottom: unit.Dp(12)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
						return widgets.Banner(gtx, s.Theme, widgets.BannerWarning, "A newer release is available: "+latest)
					})
				}),
				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					return widgets.Section(gtx, widgets.ColorSurface, func(gtx layout.Context) layout.Dimensions {
						return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
							layout.Rigid(material.Body1(s.Theme, "EOLookup looks up App Store orders by the order id printed on the customer's receipt email and shows the signed transactions it returns.").Layout),
							layout.Rigid(layout.Spacer{Height: unit.Dp(10)}.Layout),
							layout.Rigid(material.Body2(s.Theme, "Transactions are decoded for display only. Their signatures are not verified.").Layout),
							layout.Rigid(layout.Spacer{Height: unit.Dp(10)}.Layout),
							layout.Rigid(material.Caption(s.Theme, "Version "+version.Version).Layout),
							layout.Rigid(layout.Spacer{Height: unit.Dp(16)}.Layout),
							layout.Rigid(func(gtx layout.Context) layout.Dimensions {
								return layout.Flex{Axis: layout.Horizontal}.Layout(gtx,
									layout.Rigid(widgets.SecondaryButton(s.Theme, &s.OpenReleases, "Releases").Layout),
									layout.Rigid(layout.Spacer{Width: unit.Dp(8)}.Layout),
									layout.Rigid(widgets.SecondaryButton(s.Theme, &s.OpenSource, "Source Code").Layout),
									layout.Rigid(layout.Spacer{Width: unit.Dp(8)}.Layout),
									layout.Rigid(widgets.SecondaryButton(s.Theme, &s.OpenDocs, "API Docs").Layout),
								)
							}),
						)
					})
				}),
			)
		})
	})
}
