package auth

import (
	"fmt"
	"net/http"

	"github.com/garyhtou/increase-go/pkg/errors"
)

// Handler applies credentials to an outgoing request.
type Handler interface {
	ApplyAuth(req *http.Request) error
}

// BearerAuth sets an Authorization: Bearer header. This is the scheme the
// Increase-style APIs use for their secret keys.
type BearerAuth struct {
	Token string
}

// NewBearerAuth creates a bearer token handler.
func NewBearerAuth(token string) *BearerAuth {
	return &BearerAuth{Token: token}
}

// ApplyAuth adds the bearer token to the Authorization header.
func (b *BearerAuth) ApplyAuth(req *http.Request) error {
	if b.Token == "" {
		return errors.WrapError(
			fmt.Errorf("token is required"),
			errors.ErrConfiguration,
			"apply bearer auth",
		)
	}
	req.Header.Set("Authorization", "Bearer "+b.Token)
	return nil
}

// String omits the token on purpose.
func (b *BearerAuth) String() string {
	return "BearerAuth(token: [REDACTED])"
}

// APIKeyAuth sends an API key as a header, a query parameter, or both.
type APIKeyAuth struct {
	HeaderName string // header name, e.g. "X-API-Key"
	QueryParam string // query parameter name, e.g. "api_key"
	Value      string
}

// NewAPIKeyAuth creates an API key handler. Either headerName or queryParam
// must be provided.
func NewAPIKeyAuth(headerName, queryParam, value string) *APIKeyAuth {
	return &APIKeyAuth{
		HeaderName: headerName,
		QueryParam: queryParam,
		Value:      value,
	}
}

// ApplyAuth adds the API key to the request.
func (a *APIKeyAuth) ApplyAuth(req *http.Request) error {
	if a.Value == "" {
		return fmt.Errorf("API key value is required")
	}
	if a.HeaderName == "" && a.QueryParam == "" {
		return fmt.Errorf("API key auth requires either header name or query parameter name")
	}

	if a.HeaderName != "" {
		req.Header.Set(a.HeaderName, a.Value)
	}
	if a.QueryParam != "" {
		query := req.URL.Query()
		query.Set(a.QueryParam, a.Value)
		req.URL.RawQuery = query.Encode()
	}
	return nil
}

// String returns a string representation of this auth method
func (a *APIKeyAuth) String() string {
	if a.HeaderName != "" {
		return fmt.Sprintf("APIKeyAuth(header: %s)", a.HeaderName)
	}
	return fmt.Sprintf("APIKeyAuth(query: %s)", a.QueryParam)
}
