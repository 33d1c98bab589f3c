package tui

import (
	"context"
	"fmt"

	"mrview/internal/persistance"
	"mrview/internal/pkg/client"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"
	"github.com/rivo/tview"
	"github.com/rs/zerolog/log"
)

type MergeRequestPageOptions struct {
	Client    client.Client
	Updater   Updater
	Bus       *EventBus
	ID        client.MergeRequestID
	ServerURL string
	Icons     map[string]string
	// Visited is optional
	Visited persistance.PersistanceRepo
	// ConfirmMerge asks in a modal before merging
	ConfirmMerge bool
}

// MergeRequestPage loads the summary of a merge request and hands it to a
// MergeRequestDetailView. It reloads the summary whenever the view asks.
type MergeRequestPage struct {
	*detailsPage
	client    client.Client
	updater   Updater
	bus       *EventBus
	id        client.MergeRequestID
	serverURL string
	visited   persistance.PersistanceRepo
	view      *MergeRequestDetailView
	ctx       context.Context
	cancel    context.CancelFunc
	merging   bool

	pages        *tview.Pages
	mergeModal   *tview.Modal
	confirmMerge bool
	confirming   bool
}

func NewMergeRequestPage(o *MergeRequestPageOptions) *MergeRequestPage {
	ctx, cancel := context.WithCancel(context.Background())

	p := &MergeRequestPage{
		detailsPage:  newDetailsPage(o.Icons),
		client:       o.Client,
		updater:      o.Updater,
		bus:          o.Bus,
		id:           o.ID,
		serverURL:    o.ServerURL,
		visited:      o.Visited,
		ctx:          ctx,
		cancel:       cancel,
		confirmMerge: o.ConfirmMerge,
	}

	p.view = NewMergeRequestDetailView(&MergeRequestDetailViewOptions{
		Client:  o.Client,
		Updater: o.Updater,
		OnRefreshRequested: func() {
			p.bus.Publish(eventRefreshRequested, nil)
		},
		OnError: func(err error) {
			p.bus.Publish(eventError, err)
		},
		OnChange: p.render,
	})

	p.bus.Subscribe(eventRefreshRequested, func(interface{}) {
		p.Refresh()
	})
	p.bus.Subscribe(eventError, func(data interface{}) {
		if err, ok := data.(error); ok {
			p.SetStatusError(err)
		}
	})

	p.mergeModal = newMergeModal(p.mergeConfirmed)
	p.pages = tview.NewPages().
		AddPage(detailsPageName, p.detailsPage, true, true).
		AddPage(mergeModalName, p.mergeModal, false, false)

	p.SetMergeFunc(p.Merge)
	p.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() != tcell.KeyRune {
			return event
		}

		switch event.Rune() {
		case 'm':
			p.Merge()
			return nil
		case 'r':
			p.bus.Publish(eventRefreshRequested, nil)
			return nil
		case 'R':
			p.view.ReloadFiles()
			return nil
		}

		return event
	})

	p.render()

	return p
}

func (p *MergeRequestPage) View() *MergeRequestDetailView {
	return p.view
}

// Root is the primitive to mount in the application.
func (p *MergeRequestPage) Root() tview.Primitive {
	return p.pages
}

// Refresh fetches the merge request summary again.
func (p *MergeRequestPage) Refresh() {
	p.SetStatusInfo("Refreshing...")

	go func() {
		mr, err := p.client.GetMergeRequest(p.ctx, &client.GetMergeRequestOptions{ID: p.id})
		p.updater.QueueUpdate(func() {
			if p.ctx.Err() != nil {
				return
			}

			if err != nil {
				log.Error().Err(err).Str("id", p.id.String()).Msg("cannot load merge request")
				p.bus.Publish(eventError, errors.Wrapf(err, "cannot load #%s", p.id))
				return
			}

			if !p.merging {
				p.SetStatusInfo("")
			}
			p.view.SetSummary(mr)
			p.recordVisit(mr)
		})
	}()
}

func (p *MergeRequestPage) recordVisit(mr *client.MergeRequestSummary) {
	if p.visited == nil {
		return
	}

	err := p.visited.AddVisited(p.serverURL, mr.ID.String(), mr.Title)
	if err != nil {
		log.Warn().Err(err).Msg("cannot save visited merge request")
	}
}

// Merge triggers the merge action when it is shown, asking first when
// confirmation is enabled.
func (p *MergeRequestPage) Merge() {
	s := p.view.State()
	if !s.CanMerge() || p.confirming {
		return
	}

	if p.confirmMerge {
		p.showMergeModal(s.Summary.ID)
		return
	}

	p.startMerge()
}

func (p *MergeRequestPage) startMerge() {
	s := p.view.State()
	if !s.CanMerge() {
		return
	}

	err := p.view.ApproveMergeRequest(s.Summary.ID)
	if err != nil {
		log.Debug().Err(err).Msg("merge not started")
		p.SetStatusInfo(err.Error())
		return
	}

	p.merging = true
	p.SetStatusInfo(fmt.Sprintf("Merging #%s...", s.Summary.ID))
}

func (p *MergeRequestPage) render() {
	s := p.view.State()
	p.SetState(s)

	if !p.merging || s.MergeBusy {
		return
	}

	p.merging = false
	switch {
	case s.LastMergeError != nil:
		// already reported through the error event
	case s.LastMergeStatus >= 200 && s.LastMergeStatus < 300:
		p.SetStatusInfo("Merged")
	default:
		p.SetStatusInfo(fmt.Sprintf("Merge was not accepted (status %d)", s.LastMergeStatus))
	}
}

// nextFocus cycles between the file list and the merge button.
func (p *MergeRequestPage) nextFocus(current tview.Primitive) tview.Primitive {
	if p.confirming {
		return current
	}

	if current == p.fileList && p.showsMerge {
		return p.mergeButton
	}

	return p.fileList
}

func (p *MergeRequestPage) Close() {
	p.cancel()
	p.view.Close()
}
