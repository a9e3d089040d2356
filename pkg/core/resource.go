package core

import (
	"context"
	"fmt"
	"net/http"

	"github.com/garyhtou/increase-go/pkg/endpoint"
	"github.com/garyhtou/increase-go/pkg/errors"
	"github.com/garyhtou/increase-go/pkg/pagination"
)

// Resource is the declarative surface: operations are registered once at
// definition time and invoked through one generic dispatch routine, so each
// declared endpoint becomes a concrete callable without runtime code
// generation. Registration is not meant to run after the resource is in use.
type Resource struct {
	name   string
	root   string
	client *Client // nil means resolve the default client at call time
	ops    map[string]endpoint.Spec
}

// NewResource creates a resource. The URL root is derived from the name
// (lowercased, spaces to underscores). A nil client binds the resource to
// the process-wide default.
func NewResource(name string, client *Client) *Resource {
	return &Resource{
		name:   name,
		root:   endpoint.ResourceRoot(name),
		client: client,
		ops:    make(map[string]endpoint.Spec),
	}
}

// Name returns the resource name.
func (r *Resource) Name() string { return r.name }

// Root returns the derived URL root.
func (r *Resource) Root() string { return r.root }

// Register validates and stores an endpoint spec. Shape violations and
// duplicate operation names are definition errors.
func (r *Resource) Register(spec endpoint.Spec) error {
	if err := spec.Validate(); err != nil {
		return err
	}
	if _, exists := r.ops[spec.Name]; exists {
		return errors.WrapError(
			fmt.Errorf("operation %q already registered on %s", spec.Name, r.name),
			errors.ErrDefinition,
			"register endpoint",
		)
	}
	r.ops[spec.Name] = spec
	return nil
}

// MustRegister is Register for definition-time wiring, where a bad shape is
// fatal. It returns the resource so declarations chain into one line.
func (r *Resource) MustRegister(spec endpoint.Spec) *Resource {
	if err := r.Register(spec); err != nil {
		panic(err)
	}
	return r
}

// The four conventional shortcuts, each a pre-filled Register call.

// Create registers a POST to the resource root.
func (r *Resource) Create() error {
	return r.Register(endpoint.Spec{Name: "create", Method: http.MethodPost})
}

// List registers a paginated GET to the resource root.
func (r *Resource) List() error {
	return r.Register(endpoint.Spec{Name: "list", Paginated: true})
}

// Retrieve registers a GET that requires an id.
func (r *Resource) Retrieve() error {
	return r.Register(endpoint.Spec{Name: "retrieve", RequiresID: true})
}

// Update registers a PATCH that requires an id.
func (r *Resource) Update() error {
	return r.Register(endpoint.Spec{Name: "update", Method: http.MethodPatch, RequiresID: true})
}

// CallOption carries the optional call arguments (id, params, headers, page
// handler).
type CallOption func(*callArgs)

type callArgs struct {
	id      string
	params  map[string]interface{}
	headers map[string]string
	onPage  pagination.PageHandler
}

// WithID supplies the resource identifier.
func WithID(id string) CallOption {
	return func(a *callArgs) { a.id = id }
}

// WithParams supplies filter/limit parameters. The map is never mutated.
func WithParams(params map[string]interface{}) CallOption {
	return func(a *callArgs) { a.params = params }
}

// WithHeaders supplies per-call headers.
func WithHeaders(headers map[string]string) CallOption {
	return func(a *callArgs) { a.headers = headers }
}

// WithPageHandler streams pages to handler instead of accumulating them.
func WithPageHandler(handler pagination.PageHandler) CallOption {
	return func(a *callArgs) { a.onPage = handler }
}

// Call invokes a registered operation. The result is a single decoded value
// for plain operations, the accumulated item sequence for paginated ones,
// and the final raw page when a page handler was given.
func (r *Resource) Call(ctx context.Context, op string, options ...CallOption) (interface{}, error) {
	spec, ok := r.ops[op]
	if !ok {
		return nil, errors.WrapError(
			fmt.Errorf("unknown operation %q on %s", op, r.name),
			errors.ErrValidation,
			"call operation",
		)
	}

	var args callArgs
	for _, option := range options {
		option(&args)
	}

	path, err := endpoint.BuildPath(spec, r.root, args.id)
	if err != nil {
		return nil, err
	}

	client := r.client
	if client == nil {
		if client, err = DefaultClient(); err != nil {
			return nil, err
		}
	}

	method := spec.HTTPMethod()

	// A page handler on a non-paginated operation still goes through the
	// paginator, which keeps the calling convention uniform and handles
	// the data-less response case.
	if args.onPage != nil {
		return client.pager.EachPage(ctx, method, path, args.params, args.headers, args.onPage)
	}
	if spec.Paginated {
		items, err := client.pager.Collect(ctx, method, path, args.params, args.headers)
		if err != nil {
			return nil, err
		}
		return items, nil
	}

	res, err := client.exec.Execute(ctx, method, path, args.params, args.headers)
	if err != nil {
		return nil, err
	}
	decoded, err := res.Decoded()
	if err != nil {
		return nil, err
	}
	return decoded, nil
}

// OperationFunc is a registered operation bound to its resource, ready to
// call.
type OperationFunc func(ctx context.Context, options ...CallOption) (interface{}, error)

// Operation returns the concrete callable for a registered operation.
func (r *Resource) Operation(name string) (OperationFunc, error) {
	if _, ok := r.ops[name]; !ok {
		return nil, errors.WrapError(
			fmt.Errorf("unknown operation %q on %s", name, r.name),
			errors.ErrValidation,
			"bind operation",
		)
	}
	return func(ctx context.Context, options ...CallOption) (interface{}, error) {
		return r.Call(ctx, name, options...)
	}, nil
}
