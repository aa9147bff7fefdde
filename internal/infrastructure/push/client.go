// Package push delivers stored notifications to the external push gateway.
// Delivery is best effort; the dispatcher logs and drops failures.
package push

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/courtside/hooprun/internal/domain/notification"
	"github.com/courtside/hooprun/internal/platform/logging"
	"github.com/courtside/hooprun/internal/platform/resilience"
)

var errPushTransient = crerr.New("push gateway transient failure")

type ClientConfig struct {
	BaseURL        string
	APIKey         string
	Retries        int
	Timeout        time.Duration
	CircuitBreaker resilience.CircuitBreakerConfig
}

type Client struct {
	httpClient     *http.Client
	baseURL        string
	apiKey         string
	retries        int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
}

func NewClient(cfg ClientConfig, logger *logging.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = logging.Default()
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     &http.Client{Timeout: timeout},
		baseURL:        strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		apiKey:         strings.TrimSpace(cfg.APIKey),
		retries:        cfg.Retries,
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

type pushMessage struct {
	ProfileID string            `json:"profile_id"`
	Kind      string            `json:"kind"`
	Title     string            `json:"title"`
	Body      string            `json:"body"`
	ImageURL  string            `json:"image_url,omitempty"`
	Data      map[string]string `json:"data,omitempty"`
}

// Send posts one notification to the gateway, retrying transient failures.
func (c *Client) Send(ctx context.Context, n notification.Notification) error {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "push circuit breaker rejected request", "state", string(c.breaker.State()))
			return fmt.Errorf("push gateway is temporarily unavailable: %w", err)
		}
	}

	sendURL, err := validateHTTPBaseURL(c.baseURL)
	if err != nil {
		return crerr.Wrap(err, "invalid PUSH_BASE_URL")
	}
	sendURL += "/v1/messages"

	body, err := sonic.Marshal(pushMessage{
		ProfileID: n.ProfileID,
		Kind:      string(n.Kind),
		Title:     n.Title,
		Body:      n.Body,
		ImageURL:  n.ImageURL,
		Data:      n.Data,
	})
	if err != nil {
		return crerr.Wrap(err, "marshal push message")
	}

	span := trace.SpanFromContext(ctx)
	if span.IsRecording() {
		span.SetAttributes(
			attribute.String("push.send_url", sendURL),
			attribute.String("push.kind", string(n.Kind)),
			attribute.String("push.request_preview", buildRequestPreview(sendURL, body)),
		)
	}

	var lastErr error
	attempts := c.retries + 1
	for attempt := 0; attempt < attempts; attempt++ {
		lastErr = c.sendOnce(ctx, sendURL, body)
		if lastErr == nil {
			c.recordCircuitResult(nil)
			return nil
		}
		if !crerr.Is(lastErr, errPushTransient) {
			break
		}
		if attempt < attempts-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(time.Duration(attempt+1) * 200 * time.Millisecond):
			}
		}
	}

	c.recordCircuitResult(lastErr)

	return lastErr
}

func (c *Client) sendOnce(ctx context.Context, sendURL string, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, sendURL, strings.NewReader(string(body)))
	if err != nil {
		return crerr.Wrap(err, "create push request")
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: post push message: %v", errPushTransient, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode/100 == 2 {
		return nil
	}

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if isRetryableStatus(resp.StatusCode) {
		return fmt.Errorf("%w: push message status=%d body=%s", errPushTransient, resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	return fmt.Errorf("push message status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(raw)))
}

func (c *Client) recordCircuitResult(err error) {
	if !c.circuitEnabled {
		return
	}
	if err == nil {
		c.breaker.RecordSuccess()
		return
	}
	c.breaker.RecordFailure()
}

func isRetryableStatus(status int) bool {
	switch status {
	case http.StatusRequestTimeout, http.StatusTooManyRequests,
		http.StatusInternalServerError, http.StatusBadGateway,
		http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	default:
		return false
	}
}

func validateHTTPBaseURL(raw string) (string, error) {
	candidate := strings.TrimSpace(raw)
	if candidate == "" {
		return "", crerr.New("value is empty")
	}

	parsed, err := url.Parse(candidate)
	if err != nil {
		return "", crerr.Wrapf(err, "parse %q", candidate)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", crerr.Newf("%q uses unsupported scheme=%q; expected http or https", candidate, parsed.Scheme)
	}
	if strings.TrimSpace(parsed.Host) == "" {
		return "", crerr.Newf("%q has empty host", candidate)
	}

	return strings.TrimRight(candidate, "/"), nil
}

func buildRequestPreview(sendURL string, body []byte) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	_, _ = buf.WriteString("POST ")
	_, _ = buf.WriteString(sendURL)
	_, _ = buf.WriteString(" ")
	preview := body
	if len(preview) > 2048 {
		preview = preview[:2048]
	}
	_, _ = buf.Write(preview)

	return buf.String()
}
