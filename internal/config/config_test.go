package config

import (
	"testing"
	"time"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_UptraceDSNFromOTLPHeaders(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "uptrace-dsn=https://token@api.uptrace.dev/123")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.UptraceDSN != "https://token@api.uptrace.dev/123" {
		t.Fatalf("unexpected UptraceDSN: %q", cfg.UptraceDSN)
	}
}

func TestLoad_PushRequiresURLAndKeyWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("PUSH_ENABLED", "true")
	t.Setenv("PUSH_BASE_URL", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when PUSH_ENABLED=true without PUSH_BASE_URL")
	}

	t.Setenv("PUSH_BASE_URL", "https://push.example.com")
	t.Setenv("PUSH_API_KEY", "")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error when PUSH_ENABLED=true without PUSH_API_KEY")
	}
}

func TestLoad_ProdRequiresJobToken(t *testing.T) {
	t.Setenv("APP_ENV", EnvProd)
	t.Setenv("INTERNAL_JOB_TOKEN", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for missing INTERNAL_JOB_TOKEN in prod")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("unexpected HTTPAddr: %q", cfg.HTTPAddr)
	}
	if !cfg.CacheEnabled || cfg.CacheTTL != 60*time.Second {
		t.Fatalf("unexpected cache defaults: %v %s", cfg.CacheEnabled, cfg.CacheTTL)
	}
	if cfg.NotificationPoolSize != 32 {
		t.Fatalf("unexpected NotificationPoolSize: %d", cfg.NotificationPoolSize)
	}
	if got := cfg.CORSAllowedOrigins; len(got) != 1 || got[0] != "*" {
		t.Fatalf("unexpected CORSAllowedOrigins: %v", got)
	}
}

func TestLoad_BetterStackConfigParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("BETTERSTACK_ENABLED", "true")
	t.Setenv("BETTERSTACK_ENDPOINT", "s123.eu-fsn-3.betterstackdata.com")
	t.Setenv("BETTERSTACK_TOKEN", "token-123")
	t.Setenv("BETTERSTACK_TIMEOUT", "4s")
	t.Setenv("BETTERSTACK_MIN_LEVEL", "warn")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if !cfg.BetterStackEnabled || cfg.BetterStackEndpoint == "" {
		t.Fatalf("expected BetterStack enabled with endpoint")
	}
	if cfg.BetterStackTimeout != 4*time.Second {
		t.Fatalf("unexpected BetterStackTimeout: %s", cfg.BetterStackTimeout)
	}
	if cfg.BetterStackMinLevel.String() != "warn" {
		t.Fatalf("unexpected BetterStackMinLevel: %s", cfg.BetterStackMinLevel)
	}
}
