package mrapi

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"mrview/internal/pkg/client"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/tidwall/gjson"
)

var (
	ErrMissingServerURL  = errors.New("server url is missing")
	ErrRequestFailed     = errors.New("request failed")
	ErrMalformedResponse = errors.New("malformed response")
)

const (
	filesPath  = "/api/mr/{id}/files"
	mergePath  = "/api/mr/{id}/merge"
	detailPath = "/api/mr/{id}/detail"

	requestIDHeader = "X-Request-Id"
)

// StatusError is returned by the read endpoints when the server
// answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	body := strings.TrimSpace(e.Body)
	if body == "" {
		return fmt.Sprintf("unexpected status %d", e.StatusCode)
	}

	return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, body)
}

type Client struct {
	rc        *resty.Client
	serverURL string
}

type ClientOptions struct {
	ServerURL string
	// Timeout of 0 means requests never time out
	Timeout time.Duration
}

func New(o *ClientOptions) *Client {
	rc := resty.New().
		SetHostURL(strings.TrimRight(o.ServerURL, "/")).
		SetHeader("Accept", "application/json")

	if o.Timeout > 0 {
		rc.SetTimeout(o.Timeout)
	}

	return &Client{
		rc:        rc,
		serverURL: o.ServerURL,
	}
}

type clientConfiguration struct {
	serverURL string
	timeout   time.Duration
}

func getDefaultConfiguration() (*clientConfiguration, error) {
	serverURL := viper.GetString("server.url")
	if serverURL == "" {
		return nil, ErrMissingServerURL
	}

	return &clientConfiguration{
		serverURL: serverURL,
		timeout:   viper.GetDuration("server.timeout"),
	}, nil
}

func DefaultClient() (*Client, error) {
	config, err := getDefaultConfiguration()
	if err != nil {
		return nil, err
	}

	return New(&ClientOptions{
		ServerURL: config.serverURL,
		Timeout:   config.timeout,
	}), nil
}

func (c *Client) ServerURL() string {
	return c.serverURL
}

func (c *Client) request(ctx context.Context, id client.MergeRequestID) (*resty.Request, *log.Entry) {
	requestID := uuid.NewString()

	r := c.rc.R().
		SetContext(ctx).
		SetHeader(requestIDHeader, requestID).
		SetPathParams(map[string]string{"id": id.String()})

	return r, log.WithFields(log.Fields{
		"requestId":      requestID,
		"mergeRequestId": id.String(),
	})
}

// parseEnvelope validates the common result envelope
// {req_result, data, err_message} and returns its data field.
func parseEnvelope(body []byte) (gjson.Result, error) {
	if !gjson.ValidBytes(body) {
		return gjson.Result{}, ErrMalformedResponse
	}

	parsed := gjson.ParseBytes(body)
	if ok := parsed.Get("req_result"); ok.Exists() && !ok.Bool() {
		msg := parsed.Get("err_message").String()
		if msg == "" {
			return gjson.Result{}, ErrRequestFailed
		}

		return gjson.Result{}, fmt.Errorf("%w: %s", ErrRequestFailed, msg)
	}

	return parsed.Get("data"), nil
}

func (c *Client) get(ctx context.Context, path string, id client.MergeRequestID) (gjson.Result, error) {
	req, logger := c.request(ctx, id)

	logger.WithField("path", path).Debug("sending request")
	r, err := req.Get(path)
	if err != nil {
		logger.WithError(err).Warn("request failed")
		return gjson.Result{}, pkgerrors.Wrapf(err, "GET %s", strings.ReplaceAll(path, "{id}", id.String()))
	}

	logger.WithField("status", r.StatusCode()).Debug("received response")
	if !r.IsSuccess() {
		return gjson.Result{}, &StatusError{
			StatusCode: r.StatusCode(),
			Body:       string(r.Body()),
		}
	}

	return parseEnvelope(r.Body())
}

func (c *Client) GetFiles(ctx context.Context, o *client.GetFilesOptions) ([]string, error) {
	data, err := c.get(ctx, filesPath, o.ID)
	if err != nil {
		return nil, err
	}

	files := []string{}
	if !data.Exists() || data.Type == gjson.Null {
		return files, nil
	}

	if !data.IsArray() {
		return nil, pkgerrors.Wrap(ErrMalformedResponse, "files data is not a list")
	}

	data.ForEach(func(_, value gjson.Result) bool {
		files = append(files, value.String())
		return true
	})

	return files, nil
}

func (c *Client) GetMergeRequest(ctx context.Context, o *client.GetMergeRequestOptions) (*client.MergeRequestSummary, error) {
	data, err := c.get(ctx, detailPath, o.ID)
	if err != nil {
		return nil, err
	}

	if !data.IsObject() {
		return nil, pkgerrors.Wrap(ErrMalformedResponse, "merge request data is not an object")
	}

	id := client.MergeRequestID(data.Get("id").String())
	if id.IsEmpty() {
		id = o.ID
	}

	return &client.MergeRequestSummary{
		ID:     id,
		Status: client.MergeRequestStatus(data.Get("status").String()),
		Title:  data.Get("title").String(),
	}, nil
}

// Merge returns a response for every answer the server gives, whatever its
// status. An error means no response was received at all.
func (c *Client) Merge(ctx context.Context, o *client.MergeOptions) (*client.MergeResponse, error) {
	req, logger := c.request(ctx, o.ID)

	logger.WithField("path", mergePath).Info("requesting merge")
	r, err := req.Post(mergePath)
	if err != nil {
		logger.WithError(err).Warn("merge request failed")
		return nil, pkgerrors.Wrapf(err, "POST %s", strings.ReplaceAll(mergePath, "{id}", o.ID.String()))
	}

	logger.WithField("status", r.StatusCode()).Info("merge answered")

	return &client.MergeResponse{
		StatusCode: r.StatusCode(),
		Body:       r.Body(),
	}, nil
}
