package push

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/courtside/hooprun/internal/domain/notification"
	"github.com/courtside/hooprun/internal/platform/logging"
	"github.com/courtside/hooprun/internal/platform/resilience"
)

func TestClient_Send_RetriesTransientFailures(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer key-123" {
			t.Fatalf("unexpected authorization header: %s", got)
		}
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	client := NewClient(ClientConfig{
		BaseURL:        srv.URL,
		APIKey:         "key-123",
		Retries:        2,
		CircuitBreaker: resilience.CircuitBreakerConfig{Enabled: false},
	}, logging.NewNop())

	err := client.Send(t.Context(), notification.NewRunInvite("prof-1", "run-1", "Jordan Banks"))
	if err != nil {
		t.Fatalf("send failed: %v", err)
	}
	if got := calls.Load(); got != 2 {
		t.Fatalf("expected 2 attempts, got %d", got)
	}
}

func TestClient_Send_DoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	client := NewClient(ClientConfig{
		BaseURL:        srv.URL,
		APIKey:         "key-123",
		Retries:        3,
		CircuitBreaker: resilience.CircuitBreakerConfig{Enabled: false},
	}, logging.NewNop())

	if err := client.Send(t.Context(), notification.NewRunInvite("prof-1", "run-1", "Jordan Banks")); err == nil {
		t.Fatal("expected an error for 422 response")
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("expected 1 attempt, got %d", got)
	}
}
