package rest

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/garyhtou/increase-go/pkg/auth"
	"github.com/garyhtou/increase-go/pkg/errors"
)

func TestSendGetEncodesQuery(t *testing.T) {
	var gotURL string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotURL = r.URL.String()
		w.Write([]byte(`{"ok": true}`))
	}))
	defer server.Close()

	transport := NewTransport(server.URL)
	_, err := transport.Send(context.Background(), http.MethodGet, "events",
		map[string]interface{}{"status": "open", "limit": 5}, nil)
	if err != nil {
		t.Fatal(err)
	}

	req, _ := http.NewRequest(http.MethodGet, gotURL, nil)
	if got := req.URL.Query().Get("status"); got != "open" {
		t.Errorf("expected status=open, got %q", got)
	}
	if got := req.URL.Query().Get("limit"); got != "5" {
		t.Errorf("expected limit=5, got %q", got)
	}
	if req.URL.Path != "/events" {
		t.Errorf("expected path /events, got %q", req.URL.Path)
	}
}

func TestSendPostEncodesJSONBody(t *testing.T) {
	var gotBody map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		json.Unmarshal(body, &gotBody)
		w.Write([]byte(`{"id": "evt_1"}`))
	}))
	defer server.Close()

	transport := NewTransport(server.URL)
	res, err := transport.Send(context.Background(), http.MethodPost, "events",
		map[string]interface{}{"name": "created"}, map[string]string{"Content-Type": "application/json"})
	if err != nil {
		t.Fatal(err)
	}

	if gotBody["name"] != "created" {
		t.Errorf("expected JSON body with name=created, got %v", gotBody)
	}
	if id, _ := res.Get("id"); id != "evt_1" {
		t.Errorf("expected decoded id, got %v", id)
	}
}

func TestSendHeaders(t *testing.T) {
	var gotHeader http.Header
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeader = r.Header.Clone()
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	transport := NewTransport(server.URL,
		WithHeader("X-Static", "always"),
		WithAuth(auth.NewBearerAuth("sk_test_123")),
	)
	_, err := transport.Send(context.Background(), http.MethodGet, "events", nil,
		map[string]string{"X-Request": "once"})
	if err != nil {
		t.Fatal(err)
	}

	if got := gotHeader.Get("X-Static"); got != "always" {
		t.Errorf("expected static header, got %q", got)
	}
	if got := gotHeader.Get("X-Request"); got != "once" {
		t.Errorf("expected per-call header, got %q", got)
	}
	if got := gotHeader.Get("Authorization"); got != "Bearer sk_test_123" {
		t.Errorf("expected bearer auth, got %q", got)
	}
}

func TestSendServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"message": "invalid parameters"}`))
	}))
	defer server.Close()

	transport := NewTransport(server.URL)
	_, err := transport.Send(context.Background(), http.MethodGet, "events", nil, nil)

	if !errors.Is(err, errors.ErrServer) {
		t.Fatalf("expected server error, got %v", err)
	}
	var serverErr *ServerError
	if !errors.As(err, &serverErr) {
		t.Fatal("expected *ServerError in chain")
	}
	if serverErr.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("expected status 422, got %d", serverErr.StatusCode)
	}
}

func TestWithTimeoutOrderIndependent(t *testing.T) {
	custom := &http.Client{}
	NewTransport("http://example.com",
		WithTimeout(5*time.Second),
		WithHTTPClient(custom),
	)
	if custom.Timeout != 5*time.Second {
		t.Errorf("timeout not applied when given before the client, got %v", custom.Timeout)
	}

	other := &http.Client{}
	NewTransport("http://example.com",
		WithHTTPClient(other),
		WithTimeout(7*time.Second),
	)
	if other.Timeout != 7*time.Second {
		t.Errorf("timeout not applied when given after the client, got %v", other.Timeout)
	}
}

func TestSendTransportError(t *testing.T) {
	transport := NewTransport("http://127.0.0.1:1")
	_, err := transport.Send(context.Background(), http.MethodGet, "events", nil, nil)
	if !errors.Is(err, errors.ErrTransport) {
		t.Errorf("expected transport error, got %v", err)
	}
}
