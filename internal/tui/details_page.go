package tui

import (
	"fmt"

	"github.com/rivo/tview"
)

const mergeButtonWidth = 16

// detailsPage renders a MergeRequestDetailState: a header with the title and
// the merge button, a panel titled with the merge request id holding the
// changed files, and a status line.
type detailsPage struct {
	*tview.Flex
	icons       map[string]string
	header      *tview.Flex
	title       *tview.TextView
	mergeButton *tview.Button
	panel       *tview.Flex
	fileList    *FileList
	status      *tview.TextView
	showsMerge  bool
}

func newDetailsPage(icons map[string]string) *detailsPage {
	p := &detailsPage{
		Flex:     tview.NewFlex().SetDirection(tview.FlexRow),
		icons:    icons,
		header:   tview.NewFlex(),
		title:    tview.NewTextView().SetDynamicColors(true),
		fileList: NewFileList(icons),
		status:   tview.NewTextView().SetDynamicColors(true),
	}

	p.mergeButton = tview.NewButton(p.mergeLabel(false))
	p.mergeButton.SetBackgroundColorActivated(SelectedColor)

	p.panel = tview.NewFlex().AddItem(p.fileList, 0, 1, true)
	p.panel.SetBorder(true).SetTitle(" Changed files ")

	p.header.AddItem(p.title, 0, 1, false)

	p.AddItem(p.header, 1, 0, false).
		AddItem(p.panel, 0, 1, true).
		AddItem(p.status, 1, 0, false)

	return p
}

func (p *detailsPage) SetMergeFunc(f func()) {
	p.mergeButton.SetSelectedFunc(f)
}

func (p *detailsPage) mergeLabel(busy bool) string {
	if busy {
		return fmt.Sprintf("%s Merging...", p.icons["Merging"])
	}

	return fmt.Sprintf("%s Merge", p.icons["Merge"])
}

func (p *detailsPage) setMergeVisible(visible bool) {
	if visible == p.showsMerge {
		return
	}

	p.showsMerge = visible
	p.header.Clear().AddItem(p.title, 0, 1, false)
	if visible {
		p.header.AddItem(p.mergeButton, mergeButtonWidth, 0, false)
	}
}

func (p *detailsPage) SetState(s MergeRequestDetailState) {
	if s.Summary == nil {
		p.title.SetText(fmt.Sprintf("%s Loading merge request...", p.icons["Loading"]))
		p.panel.SetTitle(" Changed files ")
	} else {
		p.title.SetText(fmt.Sprintf(
			"[::b]%s[::-] [%s]%s %s[-]",
			tview.Escape(s.Summary.Title),
			statusColor(s.Summary.Status).String(),
			p.icons["Status"],
			s.Summary.Status,
		))
		p.panel.SetTitle(fmt.Sprintf(" %s%s ", p.icons["ID"], s.Summary.ID))
	}

	p.setMergeVisible(s.CanMerge())
	p.mergeButton.SetLabel(p.mergeLabel(s.MergeBusy))

	p.fileList.IsLoading = s.FilesBusy
	p.fileList.SetFiles(s.Files)
}

func (p *detailsPage) SetStatusInfo(msg string) {
	p.status.SetText(tview.Escape(msg))
}

func (p *detailsPage) SetStatusError(err error) {
	p.status.SetText(fmt.Sprintf(
		"[%s]%s %s[-]",
		ErrorColor.String(),
		p.icons["Error"],
		tview.Escape(err.Error()),
	))
}
