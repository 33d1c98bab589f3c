package tui

import (
	"fmt"

	"mrview/internal/pkg/client"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/viper"
)

var (
	SelectedColor = tcell.ColorYellow
	NormalColor   = tcell.ColorWhite
	ErrorColor    = tcell.ColorRed
	MergedColor   = tcell.ColorYellow
	OpenColor     = tcell.ColorGreen
)

func initIconsMap(config *viper.Viper) map[string]string {
	iconsMap := map[string]string{
		"ID":      "#",
		"Status":  "📖",
		"Merge":   "🛬",
		"Merging": "⏳",
		"Loading": "⏳",
		"File":    "•",
		"Error":   "✋",
	}

	if config.GetBool("general.useNerdFontIcons") {
		nerdIconsMaps := map[string]string{
			"ID":      "\uf292",
			"Status":  "\uf05a",
			"Merge":   "\ue727",
			"Merging": "\uf252",
			"Loading": "\uf252",
			"File":    "\uf15b",
			"Error":   "\uf071",
		}

		for k := range nerdIconsMaps {
			iconsMap[k] = nerdIconsMaps[k]
		}
	}

	for k := range iconsMap {
		p := fmt.Sprintf("icons.%s", k)
		if icon := config.GetString(p); icon != "" {
			iconsMap[k] = icon
		}
	}

	return iconsMap
}

func statusColor(status client.MergeRequestStatus) tcell.Color {
	switch status {
	case client.MergeRequestStatus_OPEN:
		return OpenColor
	case client.MergeRequestStatus_MERGED:
		return MergedColor
	case client.MergeRequestStatus_CLOSED:
		return ErrorColor
	}

	return NormalColor
}
