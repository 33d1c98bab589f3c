package errcodes

import "errors"

var (
	ErrMissingID            = errors.New("merge request id is missing")
	ErrMissingServer        = errors.New("server url is missing")
	ErrServerURLMustBeHTTP  = errors.New("server url must start with http:// or https://")
	ErrMergeRejected        = errors.New("merge request was not merged by the server")
	ErrMergeAlreadyInFlight = errors.New("merge is already in progress")
	ErrTransport            = errors.New("no response from the server")
	ErrAborted              = errors.New("aborted")
)
