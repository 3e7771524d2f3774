// Package vendorclient calls the vendor API over HTTP on behalf of the web UI
// and command-line tools.
package vendorclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/georgemunganga/printa-vendors/internal/modules/vendor"
)

// Client is the remote interface to the vendor API.
type Client interface {
	ListVendors(ctx context.Context, page, limit int) (*Page, error)
	GetVendor(ctx context.Context, id string) (*vendor.Vendor, error)
	CreateVendor(ctx context.Context, req vendor.Payload) (*vendor.Vendor, error)
	UpdateVendor(ctx context.Context, id string, req vendor.Payload) (*vendor.Vendor, error)
	DeleteVendor(ctx context.Context, id string) (string, error)
	Health(ctx context.Context) error
}

// ErrEmptyID is returned for single-vendor calls made without an id.
var ErrEmptyID = errors.New("vendor id is required")

type client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client for the API rooted at baseURL, e.g.
// "http://localhost:5000/api". A nil httpClient gets a 15 second timeout.
func New(baseURL string, httpClient *http.Client) Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &client{baseURL: strings.TrimRight(baseURL, "/"), httpClient: httpClient}
}

func (c *client) ListVendors(ctx context.Context, page, limit int) (*Page, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))

	body, err := c.do(ctx, http.MethodGet, "/vendors?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := DecodeListResponse(body)
	if err != nil {
		return nil, err
	}
	return resp.Normalize(page), nil
}

func (c *client) GetVendor(ctx context.Context, id string) (*vendor.Vendor, error) {
	if id == "" {
		return nil, ErrEmptyID
	}
	body, err := c.do(ctx, http.MethodGet, vendorPath(id), nil)
	if err != nil {
		return nil, err
	}
	return decodeVendor(body)
}

func (c *client) CreateVendor(ctx context.Context, req vendor.Payload) (*vendor.Vendor, error) {
	body, err := c.do(ctx, http.MethodPost, "/vendors", req)
	if err != nil {
		return nil, err
	}
	return decodeVendor(body)
}

func (c *client) UpdateVendor(ctx context.Context, id string, req vendor.Payload) (*vendor.Vendor, error) {
	if id == "" {
		return nil, ErrEmptyID
	}
	body, err := c.do(ctx, http.MethodPut, vendorPath(id), req)
	if err != nil {
		return nil, err
	}
	return decodeVendor(body)
}

func (c *client) DeleteVendor(ctx context.Context, id string) (string, error) {
	if id == "" {
		return "", ErrEmptyID
	}
	body, err := c.do(ctx, http.MethodDelete, vendorPath(id), nil)
	if err != nil {
		return "", err
	}
	var resp struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("decode delete response: %w", err)
	}
	return resp.Message, nil
}

func (c *client) Health(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodGet, "/health", nil)
	return err
}

// do sends one request and returns the body of a 2xx response. Non-2xx
// responses become *APIError, connection failures *TransportError.
func (c *client) do(ctx context.Context, method, path string, in interface{}) ([]byte, error) {
	op := method + " " + path

	var reqBody io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("%s: encode request: %w", op, err)
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, decodeAPIError(resp.StatusCode, body)
	}
	return body, nil
}

func vendorPath(id string) string {
	return "/vendors/" + url.PathEscape(id)
}

func decodeVendor(body []byte) (*vendor.Vendor, error) {
	var w wireVendor
	if err := json.Unmarshal(body, &w); err != nil {
		return nil, fmt.Errorf("decode vendor: %w", err)
	}
	return w.normalize(), nil
}
