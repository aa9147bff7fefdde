// Package courtpass talks to the external account service that owns player
// identity. This service only verifies tokens against it.
package courtpass

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/bytedance/sonic"

	"github.com/courtside/hooprun/internal/domain/user"
	"github.com/courtside/hooprun/internal/platform/logging"
	"github.com/courtside/hooprun/internal/platform/resilience"
	"github.com/courtside/hooprun/internal/usecase"
)

type Client struct {
	httpClient     *http.Client
	introspectURL  string
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
}

func NewClient(httpClient *http.Client, baseURL, introspectPath string, breakerCfg resilience.CircuitBreakerConfig, logger *logging.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if logger == nil {
		logger = logging.Default()
	}
	breakerCfg = resilience.NormalizeCircuitBreakerConfig(breakerCfg)

	return &Client{
		httpClient:     httpClient,
		introspectURL:  buildURL(baseURL, introspectPath),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

// VerifyAccessToken resolves a bearer token to a principal. Denials map to
// ErrUnauthorized; transport and upstream failures trip the breaker and map
// to ErrDependencyUnavailable so callers return 503, not 401.
func (c *Client) VerifyAccessToken(ctx context.Context, token string) (user.Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return user.Principal{}, fmt.Errorf("%w: token is required", usecase.ErrUnauthorized)
	}

	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "courtpass circuit breaker rejected request", "state", string(c.breaker.State()))
			return user.Principal{}, fmt.Errorf("%w: account service circuit open", usecase.ErrDependencyUnavailable)
		}
	}

	encoded, err := sonic.Marshal(introspectRequest{Token: token})
	if err != nil {
		return user.Principal{}, fmt.Errorf("marshal introspect request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.introspectURL, bytes.NewReader(encoded))
	if err != nil {
		return user.Principal{}, fmt.Errorf("create introspect request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.recordCircuitResult(false)
		return user.Principal{}, fmt.Errorf("%w: request introspection: %v", usecase.ErrDependencyUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		c.recordCircuitResult(true)
		return user.Principal{}, fmt.Errorf("%w: introspection denied", usecase.ErrUnauthorized)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		c.recordCircuitResult(false)
		return user.Principal{}, fmt.Errorf("read introspect response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.recordCircuitResult(false)
		c.logger.WarnContext(ctx, "courtpass introspection non-200", "status_code", resp.StatusCode)
		return user.Principal{}, fmt.Errorf("%w: introspection failed with status %d", usecase.ErrDependencyUnavailable, resp.StatusCode)
	}
	c.recordCircuitResult(true)

	var decoded introspectResponse
	if err := sonic.Unmarshal(body, &decoded); err != nil {
		return user.Principal{}, fmt.Errorf("unmarshal introspect response: %w", err)
	}

	if !decoded.Active {
		return user.Principal{}, fmt.Errorf("%w: inactive token", usecase.ErrUnauthorized)
	}
	if strings.TrimSpace(decoded.ProfileID) == "" {
		return user.Principal{}, fmt.Errorf("invalid introspect response: profile_id is empty")
	}

	return user.Principal{
		ProfileID: decoded.ProfileID,
		Email:     decoded.Email,
	}, nil
}

func (c *Client) recordCircuitResult(ok bool) {
	if !c.circuitEnabled {
		return
	}
	if ok {
		c.breaker.RecordSuccess()
		return
	}
	c.breaker.RecordFailure()
}

type introspectRequest struct {
	Token string `json:"token"`
}

type introspectResponse struct {
	Active    bool   `json:"active"`
	ProfileID string `json:"profile_id"`
	Email     string `json:"email"`
}

func buildURL(baseURL, path string) string {
	baseURL = strings.TrimSuffix(strings.TrimSpace(baseURL), "/")
	path = strings.TrimSpace(path)
	if path == "" {
		return baseURL
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	return baseURL + path
}
