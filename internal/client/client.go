package client

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/guonaihong/gout"
	"github.com/guonaihong/gout/dataflow"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"

	"github.com/talkincode/channelhub/internal/domain"
)

const DefaultBaseURL = "http://localhost:8000"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// APIError is a non-2xx answer of the channel API
type APIError struct {
	Status  int                 `json:"-"`
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error: status %d", e.Status)
	}
	return fmt.Sprintf("api error: status %d: %s", e.Status, e.Message)
}

// ChannelInput carries the values a form collected. Number stays a string
// and the server decides whether it is an integer.
type ChannelInput struct {
	Name   string `json:"name"`
	Number string `json:"number"`
}

// BulkDeleteResult is the answer of DeleteChannels
type BulkDeleteResult struct {
	Message      string `json:"message"`
	DeletedCount int64  `json:"deletedCount"`
}

type Client struct {
	baseURL string
	http    *dataflow.Gout
}

// New returns a client for the API rooted at baseURL. An empty baseURL
// selects DefaultBaseURL and a nil httpClient a client with a 10s timeout.
func New(baseURL string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    gout.New(httpClient),
	}
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) ListChannels(ctx context.Context) ([]domain.Channel, error) {
	var channels []domain.Channel
	if err := c.do(ctx, http.MethodGet, "/api/channels", nil, &channels); err != nil {
		return nil, err
	}
	if channels == nil {
		channels = []domain.Channel{}
	}
	return channels, nil
}

func (c *Client) GetChannel(ctx context.Context, id int64) (*domain.Channel, error) {
	var ch domain.Channel
	if err := c.do(ctx, http.MethodGet, channelPath(id), nil, &ch); err != nil {
		return nil, err
	}
	return &ch, nil
}

func (c *Client) CreateChannel(ctx context.Context, in ChannelInput) (*domain.Channel, error) {
	var ch domain.Channel
	if err := c.do(ctx, http.MethodPost, "/api/channels", in, &ch); err != nil {
		return nil, err
	}
	return &ch, nil
}

func (c *Client) UpdateChannel(ctx context.Context, id int64, in ChannelInput) (*domain.Channel, error) {
	var ch domain.Channel
	if err := c.do(ctx, http.MethodPut, channelPath(id), in, &ch); err != nil {
		return nil, err
	}
	return &ch, nil
}

func (c *Client) DeleteChannel(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, channelPath(id), nil, nil)
}

func (c *Client) DeleteChannels(ctx context.Context, ids []int64) (*BulkDeleteResult, error) {
	var res BulkDeleteResult
	body := map[string][]int64{"ids": ids}
	if err := c.do(ctx, http.MethodDelete, "/api/channels", body, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func channelPath(id int64) string {
	return fmt.Sprintf("/api/channels/%d", id)
}

// do sends one request. A 2xx body is decoded into out when out is not
// nil, anything else becomes an *APIError.
func (c *Client) do(ctx context.Context, method, path string, in, out interface{}) error {
	url := c.baseURL + path

	var df *dataflow.DataFlow
	switch method {
	case http.MethodGet:
		df = c.http.GET(url)
	case http.MethodPost:
		df = c.http.POST(url)
	case http.MethodPut:
		df = c.http.PUT(url)
	case http.MethodDelete:
		df = c.http.DELETE(url)
	default:
		return errors.Errorf("unsupported method %s", method)
	}
	if in != nil {
		df = df.SetJSON(in)
	}

	var (
		code int
		body []byte
	)
	err := df.WithContext(ctx).
		SetHeader(gout.H{"Accept": "application/json"}).
		BindBody(&body).
		Code(&code).
		Do()
	if err != nil {
		return errors.Wrapf(err, "%s %s", method, path)
	}

	if code < 200 || code > 299 {
		apiErr := &APIError{Status: code}
		if len(body) > 0 {
			_ = json.Unmarshal(body, apiErr)
		}
		return apiErr
	}
	if out == nil || len(body) == 0 {
		return nil
	}
	return errors.Wrapf(json.Unmarshal(body, out), "decode %s %s", method, path)
}
