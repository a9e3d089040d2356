package auth

import (
	"encoding/base64"
	"fmt"
	"net/http"

	"github.com/garyhtou/increase-go/pkg/errors"
)

// BasicAuth implements HTTP basic authentication.
type BasicAuth struct {
	Username string
	Password string
}

// NewBasicAuth creates a basic authentication handler.
func NewBasicAuth(username, password string) *BasicAuth {
	return &BasicAuth{Username: username, Password: password}
}

// ApplyAuth adds the basic auth header to the request. An empty password is
// allowed; an empty username is not.
func (b *BasicAuth) ApplyAuth(req *http.Request) error {
	if b.Username == "" {
		return errors.WrapError(
			fmt.Errorf("username is required"),
			errors.ErrConfiguration,
			"apply basic auth",
		)
	}

	encoded := base64.StdEncoding.EncodeToString([]byte(b.Username + ":" + b.Password))
	req.Header.Set("Authorization", "Basic "+encoded)
	return nil
}

// String returns a string representation of this auth method
func (b *BasicAuth) String() string {
	return fmt.Sprintf("BasicAuth(username: %s)", b.Username)
}
