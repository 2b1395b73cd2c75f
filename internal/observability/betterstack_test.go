package observability

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/riskibarqy/football-portal/internal/config"
	"github.com/riskibarqy/football-portal/internal/platform/logging"
)

type intake struct {
	mu    sync.Mutex
	auth  []string
	lines []string
}

func (i *intake) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		i.mu.Lock()
		i.auth = append(i.auth, r.Header.Get("Authorization"))
		i.lines = append(i.lines, string(body))
		i.mu.Unlock()
		w.WriteHeader(http.StatusAccepted)
	})
}

func TestLogShipper_ShipsLinesAtMinLevel(t *testing.T) {
	t.Parallel()

	var in intake
	srv := httptest.NewServer(in.handler())
	defer srv.Close()

	shipper, err := NewLogShipper(config.Config{
		BetterStackEnabled:  true,
		BetterStackEndpoint: srv.URL,
		BetterStackToken:    "portal-token",
		BetterStackTimeout:  2 * time.Second,
		BetterStackMinLevel: logging.LevelWarn,
	})
	if err != nil {
		t.Fatalf("new log shipper: %v", err)
	}

	logger := logging.New(logging.Options{Level: logging.LevelDebug, Output: io.Discard, Service: "football-portal", Sinks: shipper.Sinks()})
	logger.Info("page rendered", "page", "home")
	logger.Warn("backend circuit breaker state changed", "from", "closed", "to", "open")

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := shipper.Close(ctx); err != nil {
		t.Fatalf("close shipper: %v", err)
	}

	in.mu.Lock()
	defer in.mu.Unlock()
	if len(in.lines) != 1 {
		t.Fatalf("expected only the warn line to ship, got %q", in.lines)
	}
	if !strings.Contains(in.lines[0], `"msg":"backend circuit breaker state changed"`) || !strings.Contains(in.lines[0], `"service":"football-portal"`) {
		t.Fatalf("unexpected shipped line: %s", in.lines[0])
	}
	if in.auth[0] != "Bearer portal-token" {
		t.Fatalf("unexpected authorization header: %q", in.auth[0])
	}
}

func TestLogShipper_DisabledIsNil(t *testing.T) {
	t.Parallel()

	shipper, err := NewLogShipper(config.Config{})
	if err != nil || shipper != nil {
		t.Fatalf("expected nil shipper when disabled, got %v %v", shipper, err)
	}
	if shipper.Sinks() != nil {
		t.Fatalf("nil shipper must add no sinks")
	}
	if err := shipper.Close(context.Background()); err != nil {
		t.Fatalf("closing a nil shipper: %v", err)
	}
}

func TestLogShipper_WritesAfterCloseAreDropped(t *testing.T) {
	t.Parallel()

	var in intake
	srv := httptest.NewServer(in.handler())
	defer srv.Close()

	shipper, err := NewLogShipper(config.Config{BetterStackEnabled: true, BetterStackEndpoint: srv.URL})
	if err != nil {
		t.Fatalf("new log shipper: %v", err)
	}
	if err := shipper.Close(context.Background()); err != nil {
		t.Fatalf("close shipper: %v", err)
	}
	if n, err := shipper.Write([]byte(`{"msg":"late"}`)); err != nil || n == 0 {
		t.Fatalf("write after close should be accepted and ignored: n=%d err=%v", n, err)
	}

	in.mu.Lock()
	defer in.mu.Unlock()
	if len(in.lines) != 0 {
		t.Fatalf("nothing should ship after close, got %q", in.lines)
	}
}

func TestTelemetry_ShutdownDrainsLogShipper(t *testing.T) {
	t.Parallel()

	var in intake
	srv := httptest.NewServer(in.handler())
	defer srv.Close()

	cfg := config.Config{BetterStackEnabled: true, BetterStackEndpoint: srv.URL, BetterStackMinLevel: logging.LevelInfo}
	shipper, err := NewLogShipper(cfg)
	if err != nil {
		t.Fatalf("new log shipper: %v", err)
	}
	logger := logging.New(logging.Options{Level: logging.LevelInfo, Output: io.Discard, Sinks: shipper.Sinks()})

	telemetry, err := Start(cfg, logger, WithLogShipper(shipper))
	if err != nil {
		t.Fatalf("start telemetry: %v", err)
	}
	logger.Info("http server stopped")
	if err := telemetry.Shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}

	in.mu.Lock()
	defer in.mu.Unlock()
	var stopped bool
	for _, line := range in.lines {
		stopped = stopped || strings.Contains(line, "http server stopped")
	}
	if !stopped {
		t.Fatalf("lines written before shutdown must be shipped, got %q", in.lines)
	}
}

func TestBetterStackURL(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"":                             "",
		" in.logs.betterstack.com ":    "https://in.logs.betterstack.com",
		"http://localhost:9000/ingest": "http://localhost:9000/ingest",
	}
	for raw, want := range tests {
		if got := betterStackURL(raw); got != want {
			t.Fatalf("betterStackURL(%q) = %q, want %q", raw, got, want)
		}
	}
}
