package icons

import (
	"log"

	"gioui.org/widget"
	"golang.org/x/exp/shiny/materialdesign/icons"
)

var (
	IconApp     *widget.Icon
	IconLookup  *widget.Icon
	IconHistory *widget.Icon
	IconAbout   *widget.Icon
	IconCheck   *widget.Icon
	IconError   *widget.Icon
	IconWarning *widget.Icon
)

func init() {
	loadIcon := func(data []byte, name string) *widget.Icon {
		ic, err := widget.NewIcon(data)
		if err != nil {
			log.Printf("Failed to load %s: %v", name, err)
			return nil
		}
		return ic
	}

	IconApp = loadIcon(icons.ActionReceipt, "IconApp")
	IconLookup = loadIcon(icons.ActionSearch, "IconLookup")
	IconHistory = loadIcon(icons.ActionHistory, "IconHistory")
	IconAbout = loadIcon(icons.ActionInfo, "IconAbout")
	IconCheck = loadIcon(icons.ActionCheckCircle, "IconCheck")
	IconError = loadIcon(icons.AlertError, "IconError")
	IconWarning = loadIcon(icons.AlertWarning, "IconWarning")
}
