package pagination

import (
	"context"
	"fmt"

	"github.com/garyhtou/increase-go/pkg/errors"
	"github.com/garyhtou/increase-go/pkg/transport/rest"
)

// Executor performs a single request. Satisfied by core.Executor.
type Executor interface {
	Execute(ctx context.Context, method, path string, params map[string]interface{}, headers map[string]string) (*rest.Response, error)
}

// PageHandler receives one page of items plus the raw page it came from.
// For a non-paginating endpoint invoked with a handler, items is nil and res
// is the whole raw response, delivered exactly once.
type PageHandler func(items []interface{}, res *rest.Response) error

// Paginator drives sequential cursor-following fetches against an Executor.
// Pages are strictly sequential since each request needs the previous page's
// cursor. A Paginator holds no per-call state and is safe for concurrent
// callers with distinct param maps.
type Paginator struct {
	exec Executor
}

// New creates a Paginator on top of an Executor.
func New(exec Executor) *Paginator {
	return &Paginator{exec: exec}
}

// Collect fetches pages until the limit or the cursor runs out and returns
// the accumulated items in order.
func (p *Paginator) Collect(
	ctx context.Context,
	method, path string,
	params map[string]interface{},
	headers map[string]string,
) ([]interface{}, error) {
	_, items, err := p.paginate(ctx, method, path, params, headers, nil)
	return items, err
}

// EachPage streams each page's items to handler instead of accumulating.
// It returns the final raw page so the non-paginating edge case can hand the
// whole response back to the caller.
func (p *Paginator) EachPage(
	ctx context.Context,
	method, path string,
	params map[string]interface{},
	headers map[string]string,
	handler PageHandler,
) (*rest.Response, error) {
	if handler == nil {
		return nil, errors.WrapError(
			fmt.Errorf("page handler is required"),
			errors.ErrValidation,
			"each page",
		)
	}
	res, _, err := p.paginate(ctx, method, path, params, headers, handler)
	return res, err
}

// paginate is the shared fetch loop. Limit semantics:
//
//	absent  -> exactly one page, even when a cursor comes back
//	"all"   -> follow cursors until the server stops returning one
//	n       -> follow cursors until n items were delivered, trimming the
//	           final page so the cumulative total is exactly n
//
// The caller's params map is copied up front and copied again before each
// cursor merge, so it is never mutated.
func (p *Paginator) paginate(
	ctx context.Context,
	method, path string,
	params map[string]interface{},
	headers map[string]string,
	handler PageHandler,
) (*rest.Response, []interface{}, error) {
	current, limit, err := prepareParams(params)
	if err != nil {
		return nil, nil, err
	}

	var accumulated []interface{}
	count := 0

	for {
		res, err := p.exec.Execute(ctx, method, path, current, headers)
		if err != nil {
			return nil, nil, err
		}

		items, ok, err := res.Page()
		if err != nil {
			// an undecodable or malformed body is a collaborator
			// error, not the data-less policy branch
			return nil, nil, err
		}
		if !ok {
			// Non-paginating response. With a handler the whole raw
			// response is delivered once and returned as-is, a
			// compatibility behavior for streaming calls against
			// endpoints that were never declared paginated.
			if handler != nil {
				if err := handler(nil, res); err != nil {
					return nil, nil, err
				}
				return res, nil, nil
			}
			return nil, nil, errors.WrapError(
				fmt.Errorf("response has no data field"),
				errors.ErrPagination,
				"paginate",
			)
		}

		count += len(items)
		if n, bounded := limit.Bound(); bounded && count >= n {
			// trim the overshoot so the cumulative total is exactly n
			items = items[:n-(count-len(items))]
		}

		if handler != nil {
			if err := handler(items, res); err != nil {
				return nil, nil, err
			}
		} else {
			accumulated = append(accumulated, items...)
		}

		cursor, more := res.NextCursor()
		n, bounded := limit.Bound()
		if limit.IsUnbounded() || (bounded && count >= n) || !more {
			return res, accumulated, nil
		}

		next := make(map[string]interface{}, len(current)+1)
		for k, v := range current {
			next[k] = v
		}
		next["cursor"] = cursor
		current = next
	}
}
