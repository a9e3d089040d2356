package pagination

import (
	"testing"

	"github.com/garyhtou/increase-go/pkg/errors"
)

func TestParseLimit(t *testing.T) {
	t.Run("Absent", func(t *testing.T) {
		l, err := ParseLimit(map[string]interface{}{})
		if err != nil {
			t.Fatal(err)
		}
		if !l.IsUnbounded() {
			t.Errorf("expected unbounded, got %s", l)
		}
	})

	t.Run("All", func(t *testing.T) {
		l, err := ParseLimit(map[string]interface{}{"limit": "all"})
		if err != nil {
			t.Fatal(err)
		}
		if !l.IsAll() {
			t.Errorf("expected all, got %s", l)
		}
	})

	t.Run("Int", func(t *testing.T) {
		l, err := ParseLimit(map[string]interface{}{"limit": 25})
		if err != nil {
			t.Fatal(err)
		}
		if n, ok := l.Bound(); !ok || n != 25 {
			t.Errorf("expected bounded 25, got %s", l)
		}
	})

	t.Run("NumericString", func(t *testing.T) {
		l, err := ParseLimit(map[string]interface{}{"limit": "7"})
		if err != nil {
			t.Fatal(err)
		}
		if n, ok := l.Bound(); !ok || n != 7 {
			t.Errorf("expected bounded 7, got %s", l)
		}
	})

	t.Run("Float64FromJSON", func(t *testing.T) {
		l, err := ParseLimit(map[string]interface{}{"limit": float64(3)})
		if err != nil {
			t.Fatal(err)
		}
		if n, ok := l.Bound(); !ok || n != 3 {
			t.Errorf("expected bounded 3, got %s", l)
		}
	})

	t.Run("TypedLimit", func(t *testing.T) {
		l, err := ParseLimit(map[string]interface{}{"limit": All()})
		if err != nil {
			t.Fatal(err)
		}
		if !l.IsAll() {
			t.Errorf("expected all, got %s", l)
		}
	})

	t.Run("Invalid", func(t *testing.T) {
		for _, bad := range []interface{}{"soon", -4, 2.5, true} {
			if _, err := ParseLimit(map[string]interface{}{"limit": bad}); !errors.Is(err, errors.ErrValidation) {
				t.Errorf("limit %v: expected validation error, got %v", bad, err)
			}
		}
	})
}

func TestPrepareParams(t *testing.T) {
	t.Run("StripsAll", func(t *testing.T) {
		out, limit, err := prepareParams(map[string]interface{}{"limit": "all", "status": "open"})
		if err != nil {
			t.Fatal(err)
		}
		if !limit.IsAll() {
			t.Errorf("expected all, got %s", limit)
		}
		if _, ok := out["limit"]; ok {
			t.Error("limit key should be stripped for 'all'")
		}
		if out["status"] != "open" {
			t.Error("other params should survive")
		}
	})

	t.Run("StripsOverMaxPageSize", func(t *testing.T) {
		out, _, err := prepareParams(map[string]interface{}{"limit": 250})
		if err != nil {
			t.Fatal(err)
		}
		if _, ok := out["limit"]; ok {
			t.Error("limit key should be stripped when above the server page size")
		}
	})

	t.Run("KeepsSmallLimit", func(t *testing.T) {
		out, _, err := prepareParams(map[string]interface{}{"limit": 10})
		if err != nil {
			t.Fatal(err)
		}
		if out["limit"] != 10 {
			t.Error("small limits should pass through to the server")
		}
	})

	t.Run("NeverMutatesCallerMap", func(t *testing.T) {
		params := map[string]interface{}{"limit": "all"}
		if _, _, err := prepareParams(params); err != nil {
			t.Fatal(err)
		}
		if params["limit"] != "all" {
			t.Error("caller's params were mutated")
		}
	})
}
