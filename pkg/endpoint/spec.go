package endpoint

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/garyhtou/increase-go/pkg/errors"
)

// Spec describes one resource operation: its HTTP method, the literal path
// segments appended after the resource root, whether a resource id must be
// supplied, and whether the response is expected to be a page of results.
// A Spec is built once at resource definition time and never changes after.
type Spec struct {
	Name       string   // operation name, unique per resource
	Method     string   // HTTP method (default GET)
	Segments   []string // 0-2 literal path segments
	RequiresID bool     // whether the first call argument is a resource id
	Paginated  bool     // whether the response carries data + next_cursor
}

// Validate checks the shape constraints. Two segments only make sense when an
// id sits between them (root/seg0/{id}/seg1), so two segments without
// RequiresID is rejected. These are definition errors, fatal at startup.
func (s Spec) Validate() error {
	if s.Name == "" {
		return errors.WrapError(
			fmt.Errorf("operation name is required"),
			errors.ErrDefinition,
			"validate endpoint",
		)
	}
	if len(s.Segments) > 2 {
		return errors.WrapError(
			fmt.Errorf("operation %q has %d URL segments, at most 2 allowed", s.Name, len(s.Segments)),
			errors.ErrDefinition,
			"validate endpoint",
		)
	}
	if len(s.Segments) == 2 && !s.RequiresID {
		return errors.WrapError(
			fmt.Errorf("operation %q has 2 URL segments but does not require an id", s.Name),
			errors.ErrDefinition,
			"validate endpoint",
		)
	}
	return nil
}

// method returns the HTTP method, defaulting to GET like the rest builder.
func (s Spec) method() string {
	if s.Method == "" {
		return http.MethodGet
	}
	return s.Method
}

// HTTPMethod returns the effective HTTP method for this operation.
func (s Spec) HTTPMethod() string { return s.method() }

// Mutating reports whether the operation uses a body-carrying method.
func (s Spec) Mutating() bool {
	switch s.method() {
	case http.MethodPost, http.MethodPatch, http.MethodPut:
		return true
	}
	return false
}

// ResourceRoot derives the URL root from a resource name: lowercased, spaces
// replaced with underscores. "Account Number" -> "account_number".
func ResourceRoot(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "_")
}

// BuildPath maps a Spec plus an optional id to a concrete request path:
//
//	no id required:        root           or root/seg0
//	id, no segments:       root/{id}
//	id, one segment:       root/{id}/seg0
//	id, two segments:      root/seg0/{id}/seg1
//
// A missing id for an id-requiring spec is a caller error, not coerced.
func BuildPath(s Spec, root, id string) (string, error) {
	if !s.RequiresID {
		if id != "" {
			return "", errors.WrapError(
				fmt.Errorf("operation %q does not take an id, got %q", s.Name, id),
				errors.ErrValidation,
				"build path",
			)
		}
		if len(s.Segments) > 0 {
			return root + "/" + s.Segments[0], nil
		}
		return root, nil
	}

	if id == "" {
		return "", errors.WrapError(
			fmt.Errorf("operation %q requires an id", s.Name),
			errors.ErrValidation,
			"build path",
		)
	}

	switch len(s.Segments) {
	case 2:
		return root + "/" + s.Segments[0] + "/" + id + "/" + s.Segments[1], nil
	case 1:
		return root + "/" + id + "/" + s.Segments[0], nil
	default:
		return root + "/" + id, nil
	}
}
