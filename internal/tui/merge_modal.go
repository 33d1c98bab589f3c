package tui

import (
	"fmt"

	"mrview/internal/pkg/client"

	"github.com/rivo/tview"
)

const (
	detailsPageName = "details"
	mergeModalName  = "merge_modal"
)

func newMergeModal(done func(confirmed bool)) *tview.Modal {
	return tview.NewModal().
		AddButtons([]string{"Merge", "Cancel"}).
		SetDoneFunc(func(buttonIndex int, _ string) {
			done(buttonIndex == 0)
		})
}

func (p *MergeRequestPage) showMergeModal(id client.MergeRequestID) {
	p.confirming = true
	p.mergeModal.SetText(fmt.Sprintf("Are you sure you want to merge #%s?", id))
	p.pages.ShowPage(mergeModalName)
}

func (p *MergeRequestPage) mergeConfirmed(confirmed bool) {
	p.confirming = false
	p.pages.HidePage(mergeModalName)

	if confirmed {
		p.startMerge()
	}
}
