package auth

import (
	"encoding/base64"
	"net/http"
	"strings"
	"testing"

	"github.com/garyhtou/increase-go/pkg/config"
)

// Helper functions for tests
func assertHeader(t *testing.T, req *http.Request, header, expected string) {
	t.Helper()
	if value := req.Header.Get(header); value != expected {
		t.Errorf("Expected %s header '%s', got '%s'", header, expected, value)
	}
}

func assertErrorContains(t *testing.T, err error, expected string) {
	t.Helper()
	if err == nil {
		t.Errorf("Expected error containing '%s', got nil", expected)
		return
	}
	if !strings.Contains(err.Error(), expected) {
		t.Errorf("Expected error containing '%s', got '%s'", expected, err.Error())
	}
}

func TestBearerAuth(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		a := NewBearerAuth("sk_live_abc")
		req, _ := http.NewRequest("GET", "https://api.example.com/events", nil)

		if err := a.ApplyAuth(req); err != nil {
			t.Fatalf("ApplyAuth failed: %v", err)
		}
		assertHeader(t, req, "Authorization", "Bearer sk_live_abc")
	})

	t.Run("MissingToken", func(t *testing.T) {
		req, _ := http.NewRequest("GET", "https://api.example.com/events", nil)
		assertErrorContains(t, NewBearerAuth("").ApplyAuth(req), "token is required")
	})

	t.Run("StringRedactsToken", func(t *testing.T) {
		if s := NewBearerAuth("sk_live_abc").String(); strings.Contains(s, "sk_live_abc") {
			t.Errorf("token leaked in String(): %s", s)
		}
	})
}

func TestBasicAuth(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		a := NewBasicAuth("user", "pass")
		req, _ := http.NewRequest("GET", "https://api.example.com/events", nil)

		if err := a.ApplyAuth(req); err != nil {
			t.Fatalf("ApplyAuth failed: %v", err)
		}
		want := "Basic " + base64.StdEncoding.EncodeToString([]byte("user:pass"))
		assertHeader(t, req, "Authorization", want)
	})

	t.Run("EmptyPasswordAllowed", func(t *testing.T) {
		req, _ := http.NewRequest("GET", "https://api.example.com/events", nil)
		if err := NewBasicAuth("user", "").ApplyAuth(req); err != nil {
			t.Errorf("empty password should be allowed: %v", err)
		}
	})

	t.Run("MissingUsername", func(t *testing.T) {
		req, _ := http.NewRequest("GET", "https://api.example.com/events", nil)
		assertErrorContains(t, NewBasicAuth("", "pass").ApplyAuth(req), "username is required")
	})
}

func TestAPIKeyAuth(t *testing.T) {
	t.Run("HeaderBased", func(t *testing.T) {
		a := NewAPIKeyAuth("X-API-Key", "", "test-api-key")
		req, _ := http.NewRequest("GET", "https://api.example.com/events", nil)

		if err := a.ApplyAuth(req); err != nil {
			t.Fatalf("ApplyAuth failed: %v", err)
		}
		assertHeader(t, req, "X-API-Key", "test-api-key")
	})

	t.Run("QueryBased", func(t *testing.T) {
		a := NewAPIKeyAuth("", "api_key", "test-api-key")
		req, _ := http.NewRequest("GET", "https://api.example.com/events", nil)

		if err := a.ApplyAuth(req); err != nil {
			t.Fatalf("ApplyAuth failed: %v", err)
		}
		if got := req.URL.Query().Get("api_key"); got != "test-api-key" {
			t.Errorf("Expected api_key query param, got '%s'", got)
		}
	})

	t.Run("MissingValue", func(t *testing.T) {
		req, _ := http.NewRequest("GET", "https://api.example.com/events", nil)
		assertErrorContains(t, NewAPIKeyAuth("X-API-Key", "", "").ApplyAuth(req), "API key value is required")
	})

	t.Run("MissingHeaderAndQuery", func(t *testing.T) {
		req, _ := http.NewRequest("GET", "https://api.example.com/events", nil)
		assertErrorContains(t, NewAPIKeyAuth("", "", "k").ApplyAuth(req), "requires either header name or query parameter name")
	})
}

func TestCreateHandler(t *testing.T) {
	t.Run("NilConfig", func(t *testing.T) {
		h, err := CreateHandler(nil)
		if err != nil || h != nil {
			t.Errorf("expected nil handler for nil config, got %v, %v", h, err)
		}
	})

	t.Run("Bearer", func(t *testing.T) {
		h, err := CreateHandler(&config.Auth{
			Type:   config.AuthTypeBearer,
			Bearer: &config.BearerAuth{Token: "tok"},
		})
		if err != nil {
			t.Fatal(err)
		}
		if _, ok := h.(*BearerAuth); !ok {
			t.Errorf("expected *BearerAuth, got %T", h)
		}
	})

	t.Run("MissingBlock", func(t *testing.T) {
		_, err := CreateHandler(&config.Auth{Type: config.AuthTypeBasic})
		assertErrorContains(t, err, "basic auth configuration is required")
	})

	t.Run("UnknownType", func(t *testing.T) {
		_, err := CreateHandler(&config.Auth{Type: "magic"})
		assertErrorContains(t, err, "unsupported auth type")
	})
}
