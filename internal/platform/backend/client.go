// Package backend talks to the ERP REST API that owns every record shown by the console.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// WireTag is the struct tag checked on every decoded record.
const WireTag = "wire"

const maxErrorBody = 4 << 10

// Client issues JSON requests against {baseURL}/api/v1 and unwraps the {data: ...} envelope.
type Client struct {
	baseURL    string
	httpClient *http.Client
	validate   *validator.Validate
	logger     *slog.Logger
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets the per-request timeout of the default http.Client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithLogger attaches a logger for request failures.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient constructs a client for the given base URL.
func NewClient(baseURL string, opts ...Option) *Client {
	v := validator.New()
	v.SetTagName(WireTag)
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		validate:   v,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Get fetches path and decodes the envelope data into dest.
func (c *Client) Get(ctx context.Context, path string, dest any) error {
	return c.do(ctx, http.MethodGet, path, nil, dest)
}

// Post creates a record and decodes the echoed record into dest when non-nil.
func (c *Client) Post(ctx context.Context, path string, body, dest any) error {
	return c.do(ctx, http.MethodPost, path, body, dest)
}

// Put updates a record and decodes the echoed record into dest when non-nil.
func (c *Client) Put(ctx context.Context, path string, body, dest any) error {
	return c.do(ctx, http.MethodPut, path, body, dest)
}

// Delete removes a record. The response body is ignored on success.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, dest any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("backend: encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+APIPrefix+path, reader)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrTransport, method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("backend request failed", slog.String("method", method), slog.String("path", path), slog.Any("error", err))
		return fmt.Errorf("%w: %s %s: %v", ErrTransport, method, path, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{Code: resp.StatusCode, Message: parseErrorMessage(data)}
	}
	if dest == nil {
		return nil
	}

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read %s: %v", ErrTransport, path, err)
	}
	if err := decodeEnvelope(payload, dest); err != nil {
		return &DecodeError{Path: path, Err: err}
	}
	if err := c.check(dest); err != nil {
		return &DecodeError{Path: path, Err: err}
	}
	return nil
}

type envelope struct {
	Data json.RawMessage `json:"data"`
}

var errMissingData = errors.New("envelope has no data member")

func decodeEnvelope(payload []byte, dest any) error {
	if len(bytes.TrimSpace(payload)) == 0 {
		return errMissingData
	}
	var env envelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return err
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return errMissingData
	}
	return json.Unmarshal(env.Data, dest)
}

// check validates a decoded struct, or every element of a decoded slice.
func (c *Client) check(dest any) error {
	v := reflect.ValueOf(dest)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}
	switch v.Kind() {
	case reflect.Struct:
		return c.checkStruct(v.Interface())
	case reflect.Slice:
		for i := 0; i < v.Len(); i++ {
			if err := c.checkStruct(v.Index(i).Interface()); err != nil {
				return fmt.Errorf("item %d: %w", i, err)
			}
		}
	}
	return nil
}

func (c *Client) checkStruct(item any) error {
	err := c.validate.Struct(item)
	var invalid *validator.InvalidValidationError
	if errors.As(err, &invalid) {
		return nil
	}
	return err
}

type errorBody struct {
	Status  json.RawMessage `json:"status"`
	Message string          `json:"message"`
}

type statusBody struct {
	Message string `json:"message"`
}

// parseErrorMessage understands {status: {message}} and {message}.
func parseErrorMessage(data []byte) string {
	var body errorBody
	if err := json.Unmarshal(data, &body); err != nil {
		return ""
	}
	if len(body.Status) > 0 {
		var status statusBody
		if err := json.Unmarshal(body.Status, &status); err == nil && status.Message != "" {
			return status.Message
		}
	}
	return body.Message
}
