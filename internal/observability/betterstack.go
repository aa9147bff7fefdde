package observability

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/courtside/hooprun/internal/config"
	"github.com/courtside/hooprun/internal/platform/logging"
)

const betterStackQueueSize = 1024

// InitBetterStackLogger builds the service logger. Log lines always go to
// stdout; when Better Stack is enabled they are additionally teed to its
// ingest endpoint above the configured minimum level.
func InitBetterStackLogger(cfg config.Config, baseLogger *logging.Logger) (*logging.Logger, func(context.Context) error, error) {
	if baseLogger == nil {
		baseLogger = logging.NewJSON(cfg.LogLevel)
	}

	if !cfg.BetterStackEnabled {
		baseLogger.Info("betterstack disabled", "reason", "BETTERSTACK_ENABLED=false")
		return baseLogger, func(context.Context) error { return nil }, nil
	}

	endpoint := normalizeBetterStackEndpoint(cfg.BetterStackEndpoint)
	if endpoint == "" {
		return nil, nil, fmt.Errorf("betterstack endpoint cannot be empty")
	}

	encoderCfg := logging.EncoderConfig()
	stdoutCore := zapcore.NewCore(zapcore.NewJSONEncoder(encoderCfg), zapcore.Lock(os.Stdout), cfg.LogLevel)

	sink := newBetterStackSink(endpoint, strings.TrimSpace(cfg.BetterStackToken), cfg.BetterStackTimeout)
	ingestCore := zapcore.NewCore(zapcore.NewJSONEncoder(encoderCfg), zapcore.AddSync(sink), cfg.BetterStackMinLevel)

	logger := logging.FromZap(zap.New(
		zapcore.NewTee(stdoutCore, ingestCore),
		zap.AddCaller(),
		zap.AddStacktrace(zapcore.ErrorLevel),
	))
	logger.Info("betterstack enabled",
		"endpoint", endpoint,
		"min_level", cfg.BetterStackMinLevel.String(),
		"service_name", cfg.ServiceName,
		"environment", cfg.AppEnv,
	)

	shutdown := func(ctx context.Context) error {
		if ctx == nil {
			ctx = context.Background()
		}
		if _, ok := ctx.Deadline(); !ok {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, 5*time.Second)
			defer cancel()
		}
		if err := sink.Close(ctx); err != nil {
			return fmt.Errorf("drain betterstack queue: %w", err)
		}
		if err := logger.Sync(); err != nil && !isIgnorableLoggerSyncError(err) {
			return err
		}
		return nil
	}

	return logger, shutdown, nil
}

func normalizeBetterStackEndpoint(raw string) string {
	value := strings.TrimSpace(raw)
	switch {
	case value == "":
		return ""
	case strings.HasPrefix(value, "http://"), strings.HasPrefix(value, "https://"):
		return value
	default:
		return "https://" + value
	}
}

// betterStackSink ships encoded log lines to Better Stack from a single
// background goroutine. Writes never block the caller; when the queue is
// full the line is dropped and counted.
type betterStackSink struct {
	endpoint string
	token    string
	client   *http.Client

	mu      sync.RWMutex
	closed  bool
	queue   chan []byte
	done    sync.WaitGroup
	dropped atomic.Uint64
}

func newBetterStackSink(endpoint, token string, timeout time.Duration) *betterStackSink {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}

	s := &betterStackSink{
		endpoint: endpoint,
		token:    token,
		client:   &http.Client{Timeout: timeout},
		queue:    make(chan []byte, betterStackQueueSize),
	}
	s.done.Add(1)
	go s.shipLoop()

	return s
}

func (s *betterStackSink) Write(p []byte) (int, error) {
	line := bytes.TrimSpace(p)
	if len(line) == 0 {
		return len(p), nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return len(p), nil
	}

	// zap reuses its encode buffer after Write returns.
	owned := make([]byte, len(line))
	copy(owned, line)

	select {
	case s.queue <- owned:
	default:
		if n := s.dropped.Add(1); n == 1 || n%100 == 0 {
			fmt.Fprintf(os.Stderr, "betterstack queue full; dropped logs=%d\n", n)
		}
	}

	return len(p), nil
}

func (s *betterStackSink) Sync() error { return nil }

func (s *betterStackSink) shipLoop() {
	defer s.done.Done()
	for line := range s.queue {
		s.ship(line)
	}
}

func (s *betterStackSink) ship(line []byte) {
	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, s.endpoint, bytes.NewReader(line))
	if err != nil {
		fmt.Fprintf(os.Stderr, "betterstack create request failed: %v\n", err)
		return
	}
	req.Header.Set("Content-Type", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "betterstack send log failed: %v\n", err)
		return
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= http.StatusMultipleChoices {
		fmt.Fprintf(os.Stderr, "betterstack send log got status=%d\n", resp.StatusCode)
	}
}

// Close stops accepting lines and waits for the queue to drain or ctx to
// expire.
func (s *betterStackSink) Close(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	s.mu.Lock()
	if !s.closed {
		s.closed = true
		close(s.queue)
	}
	s.mu.Unlock()

	drained := make(chan struct{})
	go func() {
		s.done.Wait()
		close(drained)
	}()

	select {
	case <-drained:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func isIgnorableLoggerSyncError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "bad file descriptor") || strings.Contains(msg, "invalid argument")
}
