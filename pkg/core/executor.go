package core

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/garyhtou/increase-go/pkg/transport/rest"
)

// Executor issues a single request through the transport. It injects the
// conventional headers for mutating methods but never overwrites a header
// the caller supplied explicitly.
type Executor struct {
	transport       *rest.Transport
	idempotencyKeys bool
}

// NewExecutor creates an Executor on top of a transport.
func NewExecutor(transport *rest.Transport, idempotencyKeys bool) *Executor {
	return &Executor{transport: transport, idempotencyKeys: idempotencyKeys}
}

// Execute dispatches one request and returns the wrapped response. For
// POST/PATCH/PUT a JSON content type is added when none was given, and an
// Idempotency-Key is generated when the client asked for them.
func (e *Executor) Execute(
	ctx context.Context,
	method, path string,
	params map[string]interface{},
	headers map[string]string,
) (*rest.Response, error) {
	if mutating(method) {
		headers = e.mutationHeaders(headers)
	}
	return e.transport.Send(ctx, method, path, params, headers)
}

func mutating(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPatch, http.MethodPut:
		return true
	}
	return false
}

// mutationHeaders returns a copy of headers with Content-Type and, when
// enabled, Idempotency-Key filled in. The caller's map is not modified.
func (e *Executor) mutationHeaders(headers map[string]string) map[string]string {
	out := make(map[string]string, len(headers)+2)
	hasContentType := false
	hasIdempotencyKey := false
	for k, v := range headers {
		out[k] = v
		if strings.EqualFold(k, "Content-Type") {
			hasContentType = true
		}
		if strings.EqualFold(k, "Idempotency-Key") {
			hasIdempotencyKey = true
		}
	}

	if !hasContentType {
		out["Content-Type"] = "application/json"
	}
	if e.idempotencyKeys && !hasIdempotencyKey {
		out["Idempotency-Key"] = uuid.NewString()
	}

	return out
}
