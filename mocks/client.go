package mocks

import (
	"context"
	"sync"

	"mrview/internal/pkg/client"

	"golang.org/x/exp/slices"
)

type Client struct {
	mu            sync.Mutex
	MergeRequest  *client.MergeRequestSummary
	Files         []string
	MergeResponse *client.MergeResponse
	ErrorValue    error
	filesCalls    []client.MergeRequestID
	mergeCalls    []client.MergeRequestID
}

func (c *Client) GetMergeRequest(_ context.Context, o *client.GetMergeRequestOptions) (*client.MergeRequestSummary, error) {
	if c.ErrorValue != nil {
		return nil, c.ErrorValue
	}

	return c.MergeRequest, nil
}

func (c *Client) GetFiles(_ context.Context, o *client.GetFilesOptions) ([]string, error) {
	c.mu.Lock()
	c.filesCalls = append(c.filesCalls, o.ID)
	c.mu.Unlock()

	if c.ErrorValue != nil {
		return nil, c.ErrorValue
	}

	return slices.Clone(c.Files), nil
}

func (c *Client) Merge(_ context.Context, o *client.MergeOptions) (*client.MergeResponse, error) {
	c.mu.Lock()
	c.mergeCalls = append(c.mergeCalls, o.ID)
	c.mu.Unlock()

	if c.ErrorValue != nil {
		return nil, c.ErrorValue
	}

	return c.MergeResponse, nil
}

func (c *Client) FilesCalls() []client.MergeRequestID {
	c.mu.Lock()
	defer c.mu.Unlock()

	return slices.Clone(c.filesCalls)
}

func (c *Client) MergeCalls() []client.MergeRequestID {
	c.mu.Lock()
	defer c.mu.Unlock()

	return slices.Clone(c.mergeCalls)
}
