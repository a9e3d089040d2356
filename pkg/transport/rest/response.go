package rest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/garyhtou/increase-go/pkg/errors"
)

// Response wraps a decoded HTTP response body into a navigable structure.
// The body is decoded at most once and cached.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte

	decoded map[string]interface{}
	parsed  bool
}

// NewResponse wraps pre-read body bytes. Used by Send and by tests.
func NewResponse(statusCode int, header http.Header, body []byte) *Response {
	return &Response{StatusCode: statusCode, Header: header, Body: body}
}

// Decoded parses the body as JSON into a generic map. A top level array is
// wrapped under a "data" key so list-shaped bodies stay navigable. A null
// body decodes to an empty map.
func (r *Response) Decoded() (map[string]interface{}, error) {
	if r.parsed {
		return r.decoded, nil
	}

	var raw interface{}
	if len(r.Body) > 0 {
		if err := json.Unmarshal(r.Body, &raw); err != nil {
			return nil, errors.WrapError(err, errors.ErrExtraction, "decode response body")
		}
	}

	switch v := raw.(type) {
	case nil:
		r.decoded = map[string]interface{}{}
	case map[string]interface{}:
		r.decoded = v
	case []interface{}:
		r.decoded = map[string]interface{}{"data": v}
	default:
		return nil, errors.WrapError(
			fmt.Errorf("unexpected response type: %T", raw),
			errors.ErrExtraction,
			"decode response body",
		)
	}

	r.parsed = true
	return r.decoded, nil
}

// Get drills into the decoded body by a dotted path.
func (r *Response) Get(path string) (interface{}, bool) {
	body, err := r.Decoded()
	if err != nil || path == "" {
		return nil, false
	}

	var cur interface{} = body
	for _, key := range strings.Split(path, ".") {
		m, ok := cur.(map[string]interface{})
		if !ok {
			return nil, false
		}
		cur, ok = m[key]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// Page returns the ordered page items. present is false only when the body
// decoded cleanly and has no "data" field, which marks a non-paginating
// endpoint's response. An undecodable body, or a "data" field that is not
// an array, is an extraction error rather than a data-less response.
func (r *Response) Page() ([]interface{}, bool, error) {
	body, err := r.Decoded()
	if err != nil {
		return nil, false, err
	}
	v, ok := body["data"]
	if !ok {
		return nil, false, nil
	}
	items, ok := v.([]interface{})
	if !ok {
		return nil, false, errors.WrapError(
			fmt.Errorf("data field is %T, not an array", v),
			errors.ErrExtraction,
			"decode page",
		)
	}
	return items, true, nil
}

// Data is the error-dropping convenience form of Page.
func (r *Response) Data() ([]interface{}, bool) {
	items, ok, err := r.Page()
	if err != nil {
		return nil, false
	}
	return items, ok
}

// NextCursor returns the continuation token. A missing, null or empty
// "next_cursor" means the final page.
func (r *Response) NextCursor() (string, bool) {
	v, ok := r.Get("next_cursor")
	if !ok || v == nil {
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

// ServerError reports a non-2xx response. The transport decides success or
// failure; callers only surface it.
type ServerError struct {
	StatusCode int
	Body       []byte
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("server returned status %d: %s", e.StatusCode, truncate(e.Body, 200))
}

// Unwrap lets errors.Is(err, errors.ErrServer) match.
func (e *ServerError) Unwrap() error { return errors.ErrServer }

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
