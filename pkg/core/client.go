package core

import (
	"fmt"
	"time"

	"github.com/garyhtou/increase-go/pkg/auth"
	"github.com/garyhtou/increase-go/pkg/config"
	"github.com/garyhtou/increase-go/pkg/errors"
	"github.com/garyhtou/increase-go/pkg/pagination"
	"github.com/garyhtou/increase-go/pkg/transport/rest"
)

// Client binds a transport to the executor and paginator. Resources declared
// without an explicit client resolve the process-wide default at call time.
type Client struct {
	transport *rest.Transport
	exec      *Executor
	pager     *pagination.Paginator
}

// ClientOption configures a Client.
type ClientOption func(*clientSettings)

type clientSettings struct {
	transportOptions []rest.Option
	idempotencyKeys  bool
}

// WithTransportOptions forwards options to the underlying transport.
func WithTransportOptions(options ...rest.Option) ClientOption {
	return func(s *clientSettings) {
		s.transportOptions = append(s.transportOptions, options...)
	}
}

// WithIdempotencyKeys auto-generates an Idempotency-Key header on mutating
// requests that don't carry one.
func WithIdempotencyKeys() ClientOption {
	return func(s *clientSettings) { s.idempotencyKeys = true }
}

// NewClient creates a Client for the given API base URL.
func NewClient(baseURL string, options ...ClientOption) *Client {
	var s clientSettings
	for _, option := range options {
		option(&s)
	}

	transport := rest.NewTransport(baseURL, s.transportOptions...)
	exec := NewExecutor(transport, s.idempotencyKeys)
	return &Client{
		transport: transport,
		exec:      exec,
		pager:     pagination.New(exec),
	}
}

// NewClientFromProfile builds a Client from a parsed config profile.
func NewClientFromProfile(profile *config.Profile) (*Client, error) {
	handler, err := auth.CreateHandler(profile.Auth)
	if err != nil {
		return nil, errors.WrapError(err, errors.ErrConfiguration, "auth handler")
	}

	transportOptions := []rest.Option{
		rest.WithTimeout(time.Duration(profile.TimeoutSeconds) * time.Second),
	}
	if handler != nil {
		transportOptions = append(transportOptions, rest.WithAuth(handler))
	}
	for k, v := range profile.Headers {
		transportOptions = append(transportOptions, rest.WithHeader(k, v))
	}

	options := []ClientOption{WithTransportOptions(transportOptions...)}
	if profile.IdempotencyKeys {
		options = append(options, WithIdempotencyKeys())
	}

	return NewClient(profile.BaseURL, options...), nil
}

// Transport exposes the underlying transport.
func (c *Client) Transport() *rest.Transport { return c.transport }

// Executor exposes the single-request executor.
func (c *Client) Executor() *Executor { return c.exec }

// Paginator exposes the page-fetch loop.
func (c *Client) Paginator() *pagination.Paginator { return c.pager }

// defaultClient is set once at startup and read during requests.
var defaultClient *Client

// SetDefaultClient installs the process-wide default client. Call it once
// at startup, before any resource is used without an explicit client.
func SetDefaultClient(c *Client) {
	defaultClient = c
}

// DefaultClient returns the process-wide default client.
func DefaultClient() (*Client, error) {
	if defaultClient == nil {
		return nil, errors.WrapError(
			fmt.Errorf("no default client configured"),
			errors.ErrConfiguration,
			"default client",
		)
	}
	return defaultClient, nil
}
