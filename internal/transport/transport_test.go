package transport

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/brukhabtu/places-mcp/internal/common"
)

func TestDo_AppliesDefaultQuery(t *testing.T) {
	var gotKey, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.URL.Query().Get("key")
		gotQuery = r.URL.Query().Get("query")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"OK"}`))
	}))
	defer srv.Close()

	tr := New(Config{
		BaseURL:      srv.URL,
		DefaultQuery: url.Values{"key": {"secret"}},
	}, common.NewSilentLogger())

	resp, err := tr.Do(context.Background(), "GET", "/search", url.Values{"query": {"pizza"}}, nil, nil, "")
	if err != nil {
		t.Fatalf("Do failed: %v", err)
	}
	if resp.Status != 200 {
		t.Errorf("expected 200, got %d", resp.Status)
	}
	if gotKey != "secret" {
		t.Errorf("expected default key on request, got %q", gotKey)
	}
	if gotQuery != "pizza" {
		t.Errorf("expected per-call query preserved, got %q", gotQuery)
	}
}

func TestDo_CallerCannotOverrideCredential(t *testing.T) {
	var got []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query()["key"]
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	tr := New(Config{
		BaseURL:      srv.URL,
		DefaultQuery: url.Values{"key": {"real-key"}},
	}, common.NewSilentLogger())

	_, err := tr.Do(context.Background(), "GET", "/search", url.Values{"key": {"attacker"}}, nil, nil, "")
	if err != nil {
		t.Fatalf("Do failed: %v", err)
	}
	if len(got) != 1 || got[0] != "real-key" {
		t.Errorf("expected configured credential to win, got %v", got)
	}
}

func TestDo_DefaultHeadersWin(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	tr := New(Config{
		BaseURL:       srv.URL,
		DefaultHeader: http.Header{"Authorization": {"Bearer real"}},
	}, common.NewSilentLogger())

	header := http.Header{"Authorization": {"Bearer fake"}}
	if _, err := tr.Do(context.Background(), "GET", "/x", nil, header, nil, ""); err != nil {
		t.Fatalf("Do failed: %v", err)
	}
	if gotAuth != "Bearer real" {
		t.Errorf("expected default header to win, got %q", gotAuth)
	}
}

func TestDo_ReturnsNonSuccessStatuses(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"status":"REQUEST_DENIED"}`))
	}))
	defer srv.Close()

	tr := New(Config{BaseURL: srv.URL}, common.NewSilentLogger())
	resp, err := tr.Do(context.Background(), "GET", "/x", nil, nil, nil, "")
	if err != nil {
		t.Fatalf("expected transport to return the response, got error %v", err)
	}
	if resp.Status != http.StatusForbidden {
		t.Errorf("expected 403, got %d", resp.Status)
	}
	if string(resp.Body) != `{"status":"REQUEST_DENIED"}` {
		t.Errorf("unexpected body %q", resp.Body)
	}
}

func TestDo_TimeoutKind(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
	}))
	defer srv.Close()

	tr := New(Config{BaseURL: srv.URL, Timeout: 50 * time.Millisecond}, common.NewSilentLogger())
	_, err := tr.Do(context.Background(), "GET", "/slow", nil, nil, nil, "")

	var terr *Error
	if !errors.As(err, &terr) {
		t.Fatalf("expected transport.Error, got %v", err)
	}
	if terr.Kind != KindTimeout {
		t.Errorf("expected KindTimeout, got %v", terr.Kind)
	}
}

func TestDo_CanceledKind(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	tr := New(Config{BaseURL: srv.URL}, common.NewSilentLogger())
	_, err := tr.Do(ctx, "GET", "/slow", nil, nil, nil, "")

	var terr *Error
	if !errors.As(err, &terr) {
		t.Fatalf("expected transport.Error, got %v", err)
	}
	if terr.Kind != KindCanceled {
		t.Errorf("expected KindCanceled, got %v", terr.Kind)
	}
}

func TestDo_NetworkKind(t *testing.T) {
	// Closed server produces a connection error.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	tr := New(Config{BaseURL: srv.URL}, common.NewSilentLogger())
	_, err := tr.Do(context.Background(), "GET", "/x", nil, nil, nil, "")

	var terr *Error
	if !errors.As(err, &terr) {
		t.Fatalf("expected transport.Error, got %v", err)
	}
	if terr.Kind != KindNetwork {
		t.Errorf("expected KindNetwork, got %v", terr.Kind)
	}
}

func TestNew_CopiesDefaults(t *testing.T) {
	defaults := url.Values{"key": {"original"}}
	tr := New(Config{BaseURL: "https://example.com/", DefaultQuery: defaults}, common.NewSilentLogger())

	// Mutating the config values after construction must not leak in.
	defaults.Set("key", "mutated")

	if tr.BaseURL() != "https://example.com" {
		t.Errorf("expected trailing slash trimmed, got %q", tr.BaseURL())
	}
	if got := tr.defaultQuery.Get("key"); got != "original" {
		t.Errorf("expected defaults copied at construction, got %q", got)
	}
}
