package observability

import (
	"context"
	"testing"

	"github.com/courtside/hooprun/internal/config"
	"github.com/courtside/hooprun/internal/platform/logging"
)

func TestInitUptrace_DisabledReturnsNoopShutdown(t *testing.T) {
	shutdown, err := InitUptrace(config.Config{UptraceEnabled: false}, logging.NewNop())
	if err != nil {
		t.Fatalf("init uptrace: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("noop shutdown: %v", err)
	}
}

func TestInitUptrace_EmptyDSNDisables(t *testing.T) {
	shutdown, err := InitUptrace(config.Config{UptraceEnabled: true, UptraceDSN: "  "}, logging.NewNop())
	if err != nil {
		t.Fatalf("init uptrace: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("noop shutdown: %v", err)
	}
}
