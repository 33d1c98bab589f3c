package client

import (
	"context"
	"fmt"
	"strings"
)

type Client interface {
	GetMergeRequest(ctx context.Context, o *GetMergeRequestOptions) (*MergeRequestSummary, error)
	GetFiles(ctx context.Context, o *GetFilesOptions) ([]string, error)
	Merge(ctx context.Context, o *MergeOptions) (*MergeResponse, error)
}

type MergeRequestID string

func (id MergeRequestID) IsEmpty() bool {
	return strings.TrimSpace(string(id)) == ""
}

func (id MergeRequestID) String() string {
	return string(id)
}

type MergeRequestStatus string

const (
	MergeRequestStatus_OPEN   MergeRequestStatus = "open"
	MergeRequestStatus_MERGED MergeRequestStatus = "merged"
	MergeRequestStatus_CLOSED MergeRequestStatus = "closed"
)

// IsOpen reports whether the merge action applies. Unknown tags are not open.
func (s MergeRequestStatus) IsOpen() bool {
	return s == MergeRequestStatus_OPEN
}

type MergeRequestSummary struct {
	ID     MergeRequestID
	Status MergeRequestStatus
	Title  string
}

type GetMergeRequestOptions struct {
	ID MergeRequestID
}

type GetFilesOptions struct {
	ID MergeRequestID
}

type MergeOptions struct {
	ID MergeRequestID
}

// MergeResponse is whatever the server answered to a merge request,
// successful or not.
type MergeResponse struct {
	StatusCode int
	Body       []byte
}

func (r *MergeResponse) IsSuccess() bool {
	return r != nil && r.StatusCode >= 200 && r.StatusCode < 300
}

func (r *MergeResponse) String() string {
	if r == nil {
		return "no response"
	}

	return fmt.Sprintf("status %d", r.StatusCode)
}
