package pagination

import (
	"fmt"
	"strconv"

	"github.com/garyhtou/increase-go/pkg/errors"
)

// serverMaxPageSize is the largest page size the server accepts per request.
// A bounded limit above it is enforced client side across multiple pages.
const serverMaxPageSize = 100

// limitKind discriminates the Limit union.
type limitKind int

const (
	limitNone limitKind = iota // no limit given: fetch a single page
	limitAll                   // "all": follow cursors until exhausted
	limitN                     // bounded: collect exactly n items
)

// Limit is the caller's requested cap on the total item count across all
// pages, parsed once from the call params. The zero value means no limit was
// given, which deliberately yields a single page rather than silent
// unbounded iteration.
type Limit struct {
	kind limitKind
	n    int
}

// Unbounded is the absent-limit value.
func Unbounded() Limit { return Limit{kind: limitNone} }

// All requests every page until the cursor runs out.
func All() Limit { return Limit{kind: limitAll} }

// Bounded caps the total item count at n.
func Bounded(n int) Limit { return Limit{kind: limitN, n: n} }

// IsUnbounded reports whether no limit was given.
func (l Limit) IsUnbounded() bool { return l.kind == limitNone }

// IsAll reports whether every page was requested.
func (l Limit) IsAll() bool { return l.kind == limitAll }

// Bound returns the cap and whether the limit is bounded.
func (l Limit) Bound() (int, bool) { return l.n, l.kind == limitN }

func (l Limit) String() string {
	switch l.kind {
	case limitAll:
		return "all"
	case limitN:
		return strconv.Itoa(l.n)
	default:
		return "unbounded"
	}
}

// ParseLimit reads the "limit" key from caller params. Accepted values:
// absent, the marker "all", an integer (or numeric string), or a Limit
// value for typed callers. Anything else is a validation error, never
// silently coerced.
func ParseLimit(params map[string]interface{}) (Limit, error) {
	raw, ok := params["limit"]
	if !ok {
		return Unbounded(), nil
	}

	switch v := raw.(type) {
	case Limit:
		return v, nil
	case string:
		if v == "all" {
			return All(), nil
		}
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return Limit{}, errors.WrapError(
				fmt.Errorf("invalid limit %q", v),
				errors.ErrValidation,
				"parse limit",
			)
		}
		return Bounded(n), nil
	case int:
		return boundedNonNegative(v)
	case int64:
		return boundedNonNegative(int(v))
	case float64:
		// JSON numbers decode to float64
		if v != float64(int(v)) {
			return Limit{}, errors.WrapError(
				fmt.Errorf("invalid limit %v", v),
				errors.ErrValidation,
				"parse limit",
			)
		}
		return boundedNonNegative(int(v))
	default:
		return Limit{}, errors.WrapError(
			fmt.Errorf("invalid limit type %T", raw),
			errors.ErrValidation,
			"parse limit",
		)
	}
}

func boundedNonNegative(n int) (Limit, error) {
	if n < 0 {
		return Limit{}, errors.WrapError(
			fmt.Errorf("limit must be non-negative, got %d", n),
			errors.ErrValidation,
			"parse limit",
		)
	}
	return Bounded(n), nil
}

// prepareParams copies the caller's params and parses the limit. When the
// limit is "all" or larger than the server's page size, the limit key is
// stripped from the outgoing copy so the server uses its own default page
// size; the logical limit is still enforced client side. The caller's map is
// never touched.
func prepareParams(params map[string]interface{}) (map[string]interface{}, Limit, error) {
	limit, err := ParseLimit(params)
	if err != nil {
		return nil, Limit{}, err
	}

	out := make(map[string]interface{}, len(params))
	for k, v := range params {
		out[k] = v
	}

	if n, bounded := limit.Bound(); limit.IsAll() || (bounded && n > serverMaxPageSize) {
		delete(out, "limit")
	}

	return out, limit, nil
}
