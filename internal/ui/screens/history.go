package screens

import (
	"fmt"

	"gioui.org/font"
	"gioui.org/layout"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"

	"github.com/vocdoni/gofirma/eolookup/internal/app"
	"github.com/vocdoni/gofirma/eolookup/internal/storage"
	"github.com/vocdoni/gofirma/eolookup/internal/ui/icons"
	"github.com/vocdoni/gofirma/eolookup/internal/ui/widgets"
)

type HistoryScreen struct {
	App   *app.App
	Theme *material.Theme

	List    widget.List
	Refresh widget.Clickable

	entries chan []storage.HistoryEntry
	Entries []storage.HistoryEntry
	Error   string
}

func NewHistoryScreen(a *app.App, th *material.Theme) *HistoryScreen {
	s := &HistoryScreen{
		App:     a,
		Theme:   th,
		entries: make(chan []storage.HistoryEntry, 1),
	}
	s.List.Axis = layout.Vertical
	s.RefreshEntries()
	return s
}

// RefreshEntries reloads the history file in the background, newest first.
func (s *HistoryScreen) RefreshEntries() {
	go func() {
		entries, err := s.App.History.ReadAll()
		if err != nil {
			s.App.Logger.Sugar().Warnw("Failed to read history", "error", err)
		}
		for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
			entries[i], entries[j] = entries[j], entries[i]
		}
		select {
		case s.entries <- entries:
		default:
		}
		if s.App.Invalidate != nil {
			s.App.Invalidate()
		}
	}()
}

func (s *HistoryScreen) Layout(gtx layout.Context) layout.Dimensions {
	select {
	case e := <-s.entries:
		s.Entries = e
	default:
	}
	if s.Refresh.Clicked(gtx) {
		s.RefreshEntries()
	}

	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
				layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
					return widgets.IconLabel(gtx, s.Theme, icons.IconHistory, "Lookup History", s.Theme.Palette.Fg, unit.Sp(22))
				}),
				layout.Rigid(widgets.PrimaryButton(s.Theme, &s.Refresh, "Refresh").Layout),
			)
		}),
		layout.Rigid(layout.Spacer{Height: unit.Dp(20)}.Layout),
		layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
			if len(s.Entries) == 0 {
				return widgets.EmptyState(gtx, s.Theme, "No lookups yet", "Every order id you look up is listed here.")
			}
			return material.List(s.Theme, &s.List).Layout(gtx, len(s.Entries), func(gtx layout.Context, index int) layout.Dimensions {
				return layout.Inset{Bottom: unit.Dp(10)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
					return s.layoutEntry(gtx, s.Entries[index])
				})
			})
		}),
	)
}

func (s *HistoryScreen) layoutEntry(gtx layout.Context, entry storage.HistoryEntry) layout.Dimensions {
	statusTxt, statusClr, icon := "FOUND", widgets.ColorSuccess, icons.IconCheck
	switch entry.Status {
	case "success":
	case "invalid_order":
		statusTxt, statusClr, icon = "NOT VALID", widgets.ColorWarning, icons.IconWarning
	default:
		statusTxt, statusClr, icon = "FAILED", widgets.ColorError, icons.IconError
	}

	return widgets.Section(gtx, widgets.ColorSurface, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
					layout.Rigid(func(gtx layout.Context) layout.Dimensions {
						return widgets.Border(gtx, statusClr, func(gtx layout.Context) layout.Dimensions {
							return layout.UniformInset(unit.Dp(4)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
								return widgets.IconLabel(gtx, s.Theme, icon, statusTxt, statusClr, unit.Sp(12))
							})
						})
					}),
					layout.Rigid(layout.Spacer{Width: unit.Dp(12)}.Layout),
					layout.Rigid(material.Caption(s.Theme, entry.Timestamp).Layout),
					layout.Rigid(layout.Spacer{Width: unit.Dp(12)}.Layout),
					layout.Rigid(material.Caption(s.Theme, entry.Environment).Layout),
				)
			}),
			layout.Rigid(layout.Spacer{Height: unit.Dp(10)}.Layout),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				l := material.Body1(s.Theme, "Order "+entry.OrderID)
				l.Font.Weight = font.Bold
				return l.Layout(gtx)
			}),
			layout.Rigid(material.Body2(s.Theme, "Bundle: "+entry.BundleID).Layout),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				if entry.Status != "success" {
					return layout.Dimensions{}
				}
				return material.Body2(s.Theme, pluralTransactions(entry.Transactions)).Layout(gtx)
			}),
			layout.Rigid(material.Caption(s.Theme, "Lookup ID: "+entry.LookupID).Layout),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				if entry.Error == "" {
					return layout.Dimensions{}
				}
				return layout.Inset{Top: unit.Dp(8)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
					return widgets.Banner(gtx, s.Theme, widgets.BannerError, entry.Error)
				})
			}),
		)
	})
}

func pluralTransactions(n int) string {
	if n == 1 {
		return "1 signed transaction"
	}
	return fmt.Sprintf("%d signed transactions", n)
}
