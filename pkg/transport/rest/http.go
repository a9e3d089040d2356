package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/garyhtou/increase-go/pkg/auth"
	"github.com/garyhtou/increase-go/pkg/errors"
)

// HTTPDoer is a minimal interface for HTTP clients
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Transport performs the actual network I/O for the SDK core. It owns the
// base URL, static headers and auth; it does not retry, rate limit or
// reinterpret payloads.
type Transport struct {
	baseURL string
	headers map[string]string
	auth    auth.Handler
	client  HTTPDoer
	logger  *zap.Logger
	timeout time.Duration
}

// Option configures a Transport.
type Option func(*Transport)

// NewTransport creates a Transport with a 30s default timeout.
func NewTransport(baseURL string, options ...Option) *Transport {
	t := &Transport{
		baseURL: strings.TrimRight(baseURL, "/"),
		headers: make(map[string]string),
		client:  &http.Client{Timeout: 30 * time.Second},
		logger:  zap.NewNop(),
	}
	for _, option := range options {
		option(t)
	}
	// applied after all options so WithTimeout and WithHTTPClient compose
	// in any order
	if t.timeout > 0 {
		if c, ok := t.client.(*http.Client); ok {
			c.Timeout = t.timeout
		}
	}
	return t
}

// WithHeader adds a static header to all requests.
func WithHeader(key, value string) Option {
	return func(t *Transport) { t.headers[key] = value }
}

// WithAuth sets the auth handler applied to every request.
func WithAuth(h auth.Handler) Option {
	return func(t *Transport) { t.auth = h }
}

// WithHTTPClient swaps the underlying HTTP client.
func WithHTTPClient(c HTTPDoer) Option {
	return func(t *Transport) { t.client = c }
}

// WithTimeout sets the HTTP client timeout, regardless of option order.
// It only applies when the underlying client is a *http.Client; a custom
// HTTPDoer owns its own timeout.
func WithTimeout(d time.Duration) Option {
	return func(t *Transport) { t.timeout = d }
}

// WithLogger enables request/response debug logging.
func WithLogger(l *zap.Logger) Option {
	return func(t *Transport) { t.logger = l }
}

// BaseURL returns the configured base URL.
func (t *Transport) BaseURL() string { return t.baseURL }

// Send issues one HTTP request and wraps the response. Params become the
// query string for GET/DELETE and a JSON body for everything else. Non-2xx
// statuses come back as *ServerError; network failures as transport errors.
func (t *Transport) Send(
	ctx context.Context,
	method, path string,
	params map[string]interface{},
	headers map[string]string,
) (*Response, error) {
	req, err := t.buildRequest(ctx, method, path, params, headers)
	if err != nil {
		return nil, err
	}

	t.logger.Debug("sending request",
		zap.String("method", method),
		zap.String("url", req.URL.String()),
	)

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, errors.WrapError(err, errors.ErrTransport, "http do")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.WrapError(err, errors.ErrTransport, "read response body")
	}

	t.logger.Debug("received response",
		zap.Int("status", resp.StatusCode),
		zap.Int("body_bytes", len(body)),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &ServerError{StatusCode: resp.StatusCode, Body: body}
	}

	return NewResponse(resp.StatusCode, resp.Header, body), nil
}

func (t *Transport) buildRequest(
	ctx context.Context,
	method, path string,
	params map[string]interface{},
	headers map[string]string,
) (*http.Request, error) {
	url := t.baseURL + "/" + strings.TrimLeft(path, "/")

	var bodyReader io.Reader
	bodyParams := len(params) > 0 && method != http.MethodGet && method != http.MethodDelete
	if bodyParams {
		encoded, err := json.Marshal(params)
		if err != nil {
			return nil, errors.WrapError(err, errors.ErrValidation, "encode request body")
		}
		bodyReader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return nil, errors.WrapError(err, errors.ErrTransport, "create request")
	}

	if !bodyParams && len(params) > 0 {
		q := req.URL.Query()
		for k, v := range params {
			q.Set(k, fmt.Sprint(v))
		}
		req.URL.RawQuery = q.Encode()
	}

	for k, v := range t.headers {
		req.Header.Set(k, v)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	if t.auth != nil {
		if err := t.auth.ApplyAuth(req); err != nil {
			return nil, errors.WrapError(err, errors.ErrAuthentication, "apply auth")
		}
	}

	return req, nil
}
