package tui

import (
	"context"
	"sync"

	"mrview/internal/errcodes"
	"mrview/internal/pkg/client"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"
)

var (
	ErrViewClosed      = errors.New("merge request view is closed")
	ErrNoMergeResponse = errors.New("no merge response received")
)

// Updater runs f on the UI goroutine. tview applications implement it
// through appUpdater.
type Updater interface {
	QueueUpdate(f func())
}

// MergeRequestDetailState is a snapshot of the view. Files is a copy and
// may be kept by the caller.
type MergeRequestDetailState struct {
	Summary   *client.MergeRequestSummary
	Files     []string
	MergeBusy bool
	FilesBusy bool
	// LastFileError is the error of the latest file list fetch, nil once a
	// later fetch succeeds
	LastFileError  error
	LastMergeError error
	// LastMergeStatus is the HTTP status of the latest merge answer, 0 when
	// none was received
	LastMergeStatus int
}

// CanMerge reports whether the merge action is shown.
func (s *MergeRequestDetailState) CanMerge() bool {
	return s.Summary != nil && s.Summary.Status.IsOpen()
}

type MergeRequestDetailViewOptions struct {
	Client  client.Client
	Updater Updater
	// OnRefreshRequested is called once after every successful merge
	OnRefreshRequested func()
	// OnError receives file list and merge transport failures
	OnError  func(err error)
	OnChange func()
}

type MergeRequestDetailView struct {
	mu      sync.Mutex
	client  client.Client
	updater Updater
	ctx     context.Context
	cancel  context.CancelFunc

	onRefreshRequested func()
	onError            func(err error)
	onChange           func()

	summary    *client.MergeRequestSummary
	observedID client.MergeRequestID
	files      []string
	// filesGen identifies the latest file list fetch, older results are dropped
	filesGen       uint64
	mergeBusy      bool
	filesBusy      bool
	lastFileError  error
	lastMergeError error
	mergeStatus    int
	closed         bool
}

func NewMergeRequestDetailView(o *MergeRequestDetailViewOptions) *MergeRequestDetailView {
	ctx, cancel := context.WithCancel(context.Background())

	return &MergeRequestDetailView{
		client:             o.Client,
		updater:            o.Updater,
		ctx:                ctx,
		cancel:             cancel,
		onRefreshRequested: o.OnRefreshRequested,
		onError:            o.OnError,
		onChange:           o.OnChange,
		files:              []string{},
	}
}

func (v *MergeRequestDetailView) State() MergeRequestDetailState {
	v.mu.Lock()
	defer v.mu.Unlock()

	var summary *client.MergeRequestSummary
	if v.summary != nil {
		s := *v.summary
		summary = &s
	}

	return MergeRequestDetailState{
		Summary:         summary,
		Files:           slices.Clone(v.files),
		MergeBusy:       v.mergeBusy,
		FilesBusy:       v.filesBusy,
		LastFileError:   v.lastFileError,
		LastMergeError:  v.lastMergeError,
		LastMergeStatus: v.mergeStatus,
	}
}

// SetSummary hands the view a new merge request summary. The file list is
// fetched when the id differs from the last one observed; a nil summary or
// an empty id never triggers a fetch.
func (v *MergeRequestDetailView) SetSummary(summary *client.MergeRequestSummary) {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return
	}

	if summary == nil {
		v.summary = nil
	} else {
		s := *summary
		v.summary = &s
	}

	if summary != nil && !summary.ID.IsEmpty() && summary.ID != v.observedID {
		v.observedID = summary.ID
		v.loadFileList(summary.ID)
	}
	v.mu.Unlock()

	v.changed()
}

// ReloadFiles fetches the file list of the current merge request again.
func (v *MergeRequestDetailView) ReloadFiles() {
	v.mu.Lock()
	if v.closed || v.observedID.IsEmpty() {
		v.mu.Unlock()
		return
	}

	v.loadFileList(v.observedID)
	v.mu.Unlock()

	v.changed()
}

// loadFileList must be called with v.mu held.
func (v *MergeRequestDetailView) loadFileList(id client.MergeRequestID) {
	v.filesGen++
	gen := v.filesGen
	v.filesBusy = true

	log.Debug().Str("id", id.String()).Msg("loading changed files")

	go func() {
		files, err := v.client.GetFiles(v.ctx, &client.GetFilesOptions{ID: id})
		v.updater.QueueUpdate(func() {
			v.finishFileList(gen, id, files, err)
		})
	}()
}

func (v *MergeRequestDetailView) finishFileList(
	gen uint64,
	id client.MergeRequestID,
	files []string,
	err error,
) {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return
	}

	if gen != v.filesGen {
		v.mu.Unlock()
		log.Debug().Str("id", id.String()).Msg("discarding stale file list")
		return
	}

	v.filesBusy = false
	if err != nil {
		v.lastFileError = err
	} else {
		v.lastFileError = nil
		v.files = files
		if v.files == nil {
			v.files = []string{}
		}
	}
	v.mu.Unlock()

	if err != nil {
		log.Error().Err(err).Str("id", id.String()).Msg("cannot load changed files")
		v.reportError(errors.Wrap(err, "cannot load changed files"))
	}

	v.changed()
}

// ApproveMergeRequest asks the server to merge id. It fails without sending
// anything while a previous merge is still in flight.
func (v *MergeRequestDetailView) ApproveMergeRequest(id client.MergeRequestID) error {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return ErrViewClosed
	}

	if id.IsEmpty() {
		v.mu.Unlock()
		return errcodes.ErrMissingID
	}

	if v.mergeBusy {
		v.mu.Unlock()
		return errcodes.ErrMergeAlreadyInFlight
	}

	v.mergeBusy = true
	v.mu.Unlock()

	v.changed()

	log.Info().Str("id", id.String()).Msg("merging")

	go func() {
		res, err := v.client.Merge(v.ctx, &client.MergeOptions{ID: id})
		v.updater.QueueUpdate(func() {
			v.finishMerge(id, res, err)
		})
	}()

	return nil
}

func (v *MergeRequestDetailView) finishMerge(
	id client.MergeRequestID,
	res *client.MergeResponse,
	err error,
) {
	// a missing response counts as a transport failure
	if err == nil && res == nil {
		err = ErrNoMergeResponse
	}

	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return
	}

	v.mergeBusy = false
	v.lastMergeError = err
	v.mergeStatus = 0
	if res != nil {
		v.mergeStatus = res.StatusCode
	}
	v.mu.Unlock()

	switch {
	case err != nil:
		log.Error().Err(err).Str("id", id.String()).Msg("merge request failed")
		v.reportError(errors.Wrapf(err, "cannot merge #%s", id))
	case res.IsSuccess():
		log.Info().Str("id", id.String()).Msg("merged")
		if v.onRefreshRequested != nil {
			v.onRefreshRequested()
		}
	default:
		log.Warn().
			Str("id", id.String()).
			Int("status", res.StatusCode).
			Msg("merge was not accepted")
	}

	v.changed()
}

// Close cancels requests in flight. Results arriving afterwards are ignored.
func (v *MergeRequestDetailView) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.closed = true
	v.cancel()
}

func (v *MergeRequestDetailView) reportError(err error) {
	if v.onError != nil {
		v.onError(err)
	}
}

func (v *MergeRequestDetailView) changed() {
	if v.onChange != nil {
		v.onChange()
	}
}
