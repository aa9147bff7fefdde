package observability

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/courtside/hooprun/internal/config"
	"github.com/courtside/hooprun/internal/platform/logging"
)

func TestInitBetterStackLogger_DisabledKeepsBaseLogger(t *testing.T) {
	base := logging.NewNop()
	logger, shutdown, err := InitBetterStackLogger(config.Config{BetterStackEnabled: false}, base)
	if err != nil {
		t.Fatalf("init betterstack: %v", err)
	}
	if logger != base {
		t.Fatalf("expected base logger passthrough when disabled")
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("noop shutdown: %v", err)
	}
}

func TestNormalizeBetterStackEndpoint(t *testing.T) {
	cases := map[string]string{
		"":                          "",
		"  ":                        "",
		"s123.betterstackdata.com":  "https://s123.betterstackdata.com",
		"http://localhost:9999":     "http://localhost:9999",
		"https://ingest.example.io": "https://ingest.example.io",
	}
	for in, want := range cases {
		if got := normalizeBetterStackEndpoint(in); got != want {
			t.Fatalf("normalize %q: got %q, want %q", in, got, want)
		}
	}
}

func TestBetterStackSink_ShipsLines(t *testing.T) {
	var mu sync.Mutex
	var received []string
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body := make([]byte, r.ContentLength)
		_, _ = r.Body.Read(body)
		mu.Lock()
		received = append(received, string(body))
		auth = r.Header.Get("Authorization")
		mu.Unlock()
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	sink := newBetterStackSink(srv.URL, "token-abc", time.Second)
	if _, err := sink.Write([]byte(`{"msg":"hello"}` + "\n")); err != nil {
		t.Fatalf("write: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := sink.Close(ctx); err != nil {
		t.Fatalf("close: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(received) != 1 || received[0] != `{"msg":"hello"}` {
		t.Fatalf("unexpected received lines: %v", received)
	}
	if auth != "Bearer token-abc" {
		t.Fatalf("unexpected auth header: %q", auth)
	}
}

func TestBetterStackSink_WriteAfterCloseIsNoop(t *testing.T) {
	sink := newBetterStackSink("http://localhost:0", "", time.Second)
	if err := sink.Close(context.Background()); err != nil {
		t.Fatalf("close: %v", err)
	}
	if _, err := sink.Write([]byte(`{"msg":"late"}`)); err != nil {
		t.Fatalf("write after close: %v", err)
	}
}
