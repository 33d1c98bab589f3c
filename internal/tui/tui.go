package tui

import (
	"mrview/internal/persistance"
	"mrview/internal/pkg/client"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/spf13/viper"
)

type appUpdater struct {
	app *tview.Application
}

func (u *appUpdater) QueueUpdate(f func()) {
	u.app.QueueUpdateDraw(f)
}

type RunOptions struct {
	Client    client.Client
	ID        client.MergeRequestID
	ServerURL string
	Config    *viper.Viper
	Visited   persistance.PersistanceRepo
}

func Run(o *RunOptions) error {
	app := tview.NewApplication()

	page := NewMergeRequestPage(&MergeRequestPageOptions{
		Client:       o.Client,
		Updater:      &appUpdater{app: app},
		Bus:          NewEventBus(),
		ID:           o.ID,
		ServerURL:    o.ServerURL,
		Icons:        initIconsMap(o.Config),
		Visited:      o.Visited,
		ConfirmMerge: o.Config.GetBool("general.confirmMerge"),
	})
	defer page.Close()

	app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyEscape:
			// closes the merge modal instead while it is shown
			if page.confirming {
				return event
			}
			app.Stop()
			return nil
		case tcell.KeyTab:
			app.SetFocus(page.nextFocus(app.GetFocus()))
			return nil
		case tcell.KeyRune:
			if event.Rune() == 'q' {
				app.Stop()
				return nil
			}
		}

		return event
	})

	page.Refresh()
	app.SetRoot(page.Root(), true).EnableMouse(true)
	app.SetFocus(page.fileList)

	return app.Run()
}
