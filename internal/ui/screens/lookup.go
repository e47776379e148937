package screens

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"strings"

	"gioui.org/font"
	"gioui.org/layout"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"gioui.org/x/explorer"

	"github.com/vocdoni/gofirma/eolookup/internal/app"
	"github.com/vocdoni/gofirma/eolookup/internal/lookup"
	"github.com/vocdoni/gofirma/eolookup/internal/model"
	"github.com/vocdoni/gofirma/eolookup/internal/ui/icons"
	"github.com/vocdoni/gofirma/eolookup/internal/ui/widgets"
)

const keyFileExt = ".p8"

type LookupScreen struct {
	App   *app.App
	Theme *material.Theme

	KeyPathEditor  widget.Editor
	KeyIDEditor    widget.Editor
	IssuerIDEditor widget.Editor
	BundleIDEditor widget.Editor
	OrderIDEditor  widget.Editor
	Environment    widget.Enum

	BrowseButton widget.Clickable
	SubmitButton widget.Clickable
	ClearButton  widget.Clickable
	DialogOK     widget.Clickable

	ResultEditor widget.Editor
	shownResult  string

	picked      chan pickResult
	pickStatus  string
	dialogError string
}

type pickResult struct {
	path string
	err  error
}

func NewLookupScreen(a *app.App, th *material.Theme) *LookupScreen {
	s := &LookupScreen{
		App:    a,
		Theme:  th,
		picked: make(chan pickResult, 1),
	}
	for _, ed := range []*widget.Editor{&s.KeyPathEditor, &s.KeyIDEditor, &s.IssuerIDEditor, &s.BundleIDEditor, &s.OrderIDEditor} {
		ed.SingleLine = true
		ed.Submit = true
	}
	s.ResultEditor.ReadOnly = true

	in := a.Inputs
	s.KeyPathEditor.SetText(in.KeyFilePath)
	s.KeyIDEditor.SetText(in.KeyID)
	s.IssuerIDEditor.SetText(in.IssuerID)
	s.BundleIDEditor.SetText(in.BundleID)
	s.OrderIDEditor.SetText(in.OrderID)
	s.Environment.Value = in.Environment.String()
	return s
}

func (s *LookupScreen) inputs() model.FormInputs {
	env := model.Production
	if s.Environment.Value == model.Sandbox.String() {
		env = model.Sandbox
	}
	return model.FormInputs{
		KeyFilePath: strings.TrimSpace(s.KeyPathEditor.Text()),
		KeyID:       s.KeyIDEditor.Text(),
		IssuerID:    s.IssuerIDEditor.Text(),
		BundleID:    s.BundleIDEditor.Text(),
		OrderID:     s.OrderIDEditor.Text(),
		Environment: env,
	}
}

func (s *LookupScreen) browse() {
	go func() {
		if s.App.Explorer == nil {
			s.picked <- pickResult{err: errors.New("File picker is unavailable")}
			s.App.Invalidate()
			return
		}
		rc, err := s.App.Explorer.ChooseFile(keyFileExt)
		if err != nil {
			if !errors.Is(err, explorer.ErrUserDecline) {
				s.picked <- pickResult{err: err}
				s.App.Invalidate()
			}
			return
		}
		defer rc.Close()
		path, err := s.App.KeyPathFromPicker(rc)
		s.picked <- pickResult{path: path, err: err}
		s.App.Invalidate()
	}()
}

func (s *LookupScreen) submit() {
	err := s.App.Submit(context.Background(), s.inputs())
	var verr *model.ValidationError
	switch {
	case err == nil:
	case errors.As(err, &verr):
		s.dialogError = verr.Message
	case errors.Is(err, app.ErrLookupInProgress):
		s.dialogError = "A lookup is already running, please wait for it to finish."
	default:
		s.dialogError = err.Error()
	}
}

func (s *LookupScreen) handleActions(gtx layout.Context) {
	select {
	case p := <-s.picked:
		if p.err != nil {
			s.pickStatus = "Could not select key file: " + p.err.Error()
		} else {
			s.KeyPathEditor.SetText(p.path)
			s.pickStatus = ""
		}
	default:
	}

	if s.DialogOK.Clicked(gtx) {
		s.dialogError = ""
	}
	if s.dialogError != "" {
		return
	}

	if s.BrowseButton.Clicked(gtx) {
		s.browse()
	}
	if s.SubmitButton.Clicked(gtx) && !s.App.Busy() {
		s.submit()
	}
	for _, ed := range []*widget.Editor{&s.KeyPathEditor, &s.KeyIDEditor, &s.IssuerIDEditor, &s.BundleIDEditor, &s.OrderIDEditor} {
		for {
			ev, ok := ed.Update(gtx)
			if !ok {
				break
			}
			if _, ok := ev.(widget.SubmitEvent); ok && !s.App.Busy() {
				s.submit()
			}
		}
	}
	if s.ClearButton.Clicked(gtx) {
		s.App.Clear()
	}

	if txt := s.App.Result(); txt != s.shownResult {
		s.ResultEditor.SetText(txt)
		s.shownResult = txt
	}
}

func (s *LookupScreen) Layout(gtx layout.Context) layout.Dimensions {
	s.handleActions(gtx)

	if s.dialogError == "" {
		return s.layoutContent(gtx)
	}
	return layout.Stack{}.Layout(gtx,
		layout.Stacked(func(gtx layout.Context) layout.Dimensions {
			return s.layoutContent(gtx.Disabled())
		}),
		layout.Expanded(func(gtx layout.Context) layout.Dimensions {
			return widgets.ErrorDialog(gtx, s.Theme, "Error", s.dialogError, &s.DialogOK)
		}),
	)
}

func (s *LookupScreen) layoutContent(gtx layout.Context) layout.Dimensions {
	return widgets.ConstrainMaxWidth(gtx, unit.Dp(980), func(gtx layout.Context) layout.Dimensions {
		gtx.Constraints.Min.X = gtx.Constraints.Max.X
		return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return layout.Inset{Bottom: unit.Dp(12)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
					return widgets.IconLabel(gtx, s.Theme, icons.IconLookup, "Look Up Order", s.Theme.Palette.ContrastBg, unit.Sp(22))
				})
			}),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return widgets.Section(gtx, widgets.ColorSurface, s.layoutForm)
			}),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				if s.pickStatus == "" {
					return layout.Dimensions{}
				}
				return layout.Inset{Top: unit.Dp(10)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
					return widgets.Banner(gtx, s.Theme, widgets.BannerWarning, s.pickStatus)
				})
			}),
			layout.Rigid(layout.Spacer{Height: unit.Dp(12)}.Layout),
			layout.Flexed(1, s.layoutResult),
		)
	})
}

func (s *LookupScreen) layoutForm(gtx layout.Context) layout.Dimensions {
	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return s.field(gtx, "Private key (.p8)", func(gtx layout.Context) layout.Dimensions {
				return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
					layout.Flexed(1, material.Editor(s.Theme, &s.KeyPathEditor, "/path/to/SubscriptionKey_xxx.p8").Layout),
					layout.Rigid(layout.Spacer{Width: unit.Dp(8)}.Layout),
					layout.Rigid(widgets.SecondaryButton(s.Theme, &s.BrowseButton, "Browse...").Layout),
				)
			})
		}),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return layout.Flex{Axis: layout.Horizontal}.Layout(gtx,
				layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
					return s.field(gtx, "Key ID", material.Editor(s.Theme, &s.KeyIDEditor, "2X9R4HXF34").Layout)
				}),
				layout.Rigid(layout.Spacer{Width: unit.Dp(16)}.Layout),
				layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
					return s.field(gtx, "Issuer ID", material.Editor(s.Theme, &s.IssuerIDEditor, "57246542-96fe-1a63-e053-0824d011072a").Layout)
				}),
			)
		}),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return layout.Flex{Axis: layout.Horizontal}.Layout(gtx,
				layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
					return s.field(gtx, "Bundle ID", material.Editor(s.Theme, &s.BundleIDEditor, "com.example.app").Layout)
				}),
				layout.Rigid(layout.Spacer{Width: unit.Dp(16)}.Layout),
				layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
					return s.field(gtx, "Order ID", material.Editor(s.Theme, &s.OrderIDEditor, "MQKXQ2Z8T1").Layout)
				}),
			)
		}),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
				layout.Rigid(material.RadioButton(s.Theme, &s.Environment, model.Production.String(), "Production").Layout),
				layout.Rigid(layout.Spacer{Width: unit.Dp(12)}.Layout),
				layout.Rigid(material.RadioButton(s.Theme, &s.Environment, model.Sandbox.String(), "Sandbox").Layout),
				layout.Flexed(1, layout.Spacer{}.Layout),
				layout.Rigid(widgets.SecondaryButton(s.Theme, &s.ClearButton, "Clear").Layout),
				layout.Rigid(layout.Spacer{Width: unit.Dp(8)}.Layout),
				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					label := "Submit"
					if s.App.Busy() {
						label = "Searching..."
						gtx = gtx.Disabled()
					}
					return widgets.PrimaryButton(s.Theme, &s.SubmitButton, label).Layout(gtx)
				}),
			)
		}),
	)
}

func (s *LookupScreen) field(gtx layout.Context, label string, w layout.Widget) layout.Dimensions {
	return layout.Inset{Bottom: unit.Dp(14)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
			layout.Rigid(widgets.FieldLabel(s.Theme, label).Layout),
			layout.Rigid(layout.Spacer{Height: unit.Dp(4)}.Layout),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return widgets.Border(gtx, widgets.ColorBorder, func(gtx layout.Context) layout.Dimensions {
					return layout.UniformInset(unit.Dp(8)).Layout(gtx, w)
				})
			}),
		)
	})
}

func (s *LookupScreen) layoutResult(gtx layout.Context) layout.Dimensions {
	return widgets.Section(gtx, widgets.ColorSurface, func(gtx layout.Context) layout.Dimensions {
		gtx.Constraints.Min = gtx.Constraints.Max
		return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				title, tone := resultTitle(s.App.LastResult(), s.App.Busy())
				return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
					layout.Rigid(func(gtx layout.Context) layout.Dimensions {
						l := material.Body1(s.Theme, "Result")
						l.Font.Weight = font.Bold
						return l.Layout(gtx)
					}),
					layout.Rigid(layout.Spacer{Width: unit.Dp(12)}.Layout),
					layout.Rigid(func(gtx layout.Context) layout.Dimensions {
						if title == "" {
							return layout.Dimensions{}
						}
						l := material.Caption(s.Theme, title)
						l.Color = tone
						return l.Layout(gtx)
					}),
				)
			}),
			layout.Rigid(layout.Spacer{Height: unit.Dp(8)}.Layout),
			layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
				return widgets.CustomCard(gtx, widgets.ColorCode, unit.Dp(10), func(gtx layout.Context) layout.Dimensions {
					gtx.Constraints.Min = gtx.Constraints.Max
					ed := material.Editor(s.Theme, &s.ResultEditor, "Decoded transactions appear here.")
					ed.Font.Typeface = "monospace"
					ed.TextSize = unit.Sp(13)
					return ed.Layout(gtx)
				})
			}),
		)
	})
}

func resultTitle(res *lookup.Result, busy bool) (string, color.NRGBA) {
	switch {
	case busy:
		return "Searching...", widgets.ColorMuted
	case res == nil:
		return "", widgets.ColorMuted
	case res.Kind == lookup.Success:
		n := len(res.Payloads)
		if n == 1 {
			return "1 transaction", widgets.ColorSuccess
		}
		return fmt.Sprintf("%d transactions", n), widgets.ColorSuccess
	case res.Kind == lookup.InvalidOrder:
		return fmt.Sprintf("Lookup status %d", res.Status), widgets.ColorWarning
	default:
		return "Lookup failed", widgets.ColorError
	}
}
