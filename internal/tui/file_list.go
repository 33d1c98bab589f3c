package tui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// FileList shows the changed files of a merge request in server order.
type FileList struct {
	*ScrollablePage
	icons     map[string]string
	files     []string
	IsLoading bool
}

func NewFileList(icons map[string]string) *FileList {
	return &FileList{
		ScrollablePage: NewScrollablePage(),
		icons:          icons,
		files:          []string{},
	}
}

func (fl *FileList) SetFiles(files []string) {
	fl.files = files

	lines := make([]*ScrollablePageLine, 0, len(files))
	for _, f := range files {
		lines = append(lines, &ScrollablePageLine{
			Reference: f,
			Statements: []*ScrollablePageLineStatement{
				{
					Content:   fmt.Sprintf("%s %s", fl.icons["File"], tview.Escape(f)),
					Alignment: tview.AlignLeft,
				},
			},
		})
	}

	fl.SetContent(lines)
}

func (fl *FileList) Files() []string {
	return fl.files
}

// SelectedFile returns the highlighted file or "" for an empty list.
func (fl *FileList) SelectedFile() string {
	f, _ := fl.GetSelectedReference().(string)
	return f
}

func (fl *FileList) Draw(screen tcell.Screen) {
	if !fl.IsLoading && len(fl.files) > 0 {
		fl.ScrollablePage.Draw(screen)
		return
	}

	fl.Box.DrawForSubclass(screen, fl)
	x, y, width, _ := fl.GetInnerRect()

	text := "No changed files"
	if fl.IsLoading {
		text = fmt.Sprintf("%s Loading...", fl.icons["Loading"])
	}

	tview.Print(screen, text, x, y, width, tview.AlignLeft, tcell.ColorGray)
}
