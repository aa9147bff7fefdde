package courtpass

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bytedance/sonic"

	"github.com/courtside/hooprun/internal/platform/logging"
	"github.com/courtside/hooprun/internal/platform/resilience"
	"github.com/courtside/hooprun/internal/usecase"
)

func TestClient_VerifyAccessToken_ActiveToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/auth/introspect" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}

		var req map[string]string
		if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request body: %v", err)
		}
		if req["token"] != "token-abc" {
			t.Fatalf("unexpected token value: %s", req["token"])
		}

		w.Header().Set("Content-Type", "application/json")
		_ = sonic.ConfigDefault.NewEncoder(w).Encode(map[string]any{
			"active":     true,
			"profile_id": "prof-123",
			"email":      "jordan@example.com",
		})
	}))
	defer srv.Close()

	client := NewClient(srv.Client(), srv.URL, "/v1/auth/introspect", resilience.CircuitBreakerConfig{Enabled: false}, logging.NewNop())

	principal, err := client.VerifyAccessToken(t.Context(), "token-abc")
	if err != nil {
		t.Fatalf("verify token failed: %v", err)
	}
	if principal.ProfileID != "prof-123" {
		t.Fatalf("expected profile prof-123, got %s", principal.ProfileID)
	}
}

func TestClient_VerifyAccessToken_InactiveToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = sonic.ConfigDefault.NewEncoder(w).Encode(map[string]any{"active": false})
	}))
	defer srv.Close()

	client := NewClient(srv.Client(), srv.URL, "/v1/auth/introspect", resilience.CircuitBreakerConfig{Enabled: false}, logging.NewNop())

	if _, err := client.VerifyAccessToken(t.Context(), "token-abc"); !errors.Is(err, usecase.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestClient_VerifyAccessToken_UpstreamFailureOpensBreaker(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(srv.Client(), srv.URL, "/v1/auth/introspect", resilience.CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: 2,
		HalfOpenMaxReq:   1,
	}, logging.NewNop())

	for i := 0; i < 2; i++ {
		if _, err := client.VerifyAccessToken(t.Context(), "token-abc"); !errors.Is(err, usecase.ErrDependencyUnavailable) {
			t.Fatalf("attempt %d: expected ErrDependencyUnavailable, got %v", i, err)
		}
	}

	// Breaker is now open; the request must be rejected without reaching
	// the server.
	if _, err := client.VerifyAccessToken(t.Context(), "token-abc"); !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable from open breaker, got %v", err)
	}
	if got := client.breaker.State(); got != resilience.CircuitStateOpen {
		t.Fatalf("expected open breaker, got %s", got)
	}
}

func TestClient_VerifyAccessToken_EmptyToken(t *testing.T) {
	client := NewClient(nil, "http://localhost:0", "/v1/auth/introspect", resilience.CircuitBreakerConfig{Enabled: false}, logging.NewNop())

	if _, err := client.VerifyAccessToken(t.Context(), "  "); !errors.Is(err, usecase.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}
