package observability

import (
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/riskibarqy/football-portal/internal/config"
	"github.com/riskibarqy/football-portal/internal/platform/logging"
)

func TestStart_AllDisabled(t *testing.T) {
	t.Parallel()

	telemetry, err := Start(config.Config{AppEnv: config.EnvDev, ServiceName: "football-portal"}, logging.NewNop())
	if err != nil {
		t.Fatalf("start telemetry: %v", err)
	}
	if telemetry.debug != nil {
		t.Fatalf("expected no pprof server when disabled")
	}
	if err := telemetry.Shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
	if err := telemetry.Shutdown(context.Background()); err != nil {
		t.Fatalf("second shutdown must be a no-op: %v", err)
	}
}

func TestStart_EmptyUptraceDSNIsNoop(t *testing.T) {
	t.Parallel()

	telemetry, err := Start(config.Config{UptraceEnabled: true, UptraceDSN: "  ", AppEnv: config.EnvDev}, nil)
	if err != nil {
		t.Fatalf("start telemetry: %v", err)
	}
	if err := telemetry.Shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
}

func TestStart_PprofServes(t *testing.T) {
	t.Parallel()

	telemetry, err := Start(config.Config{PprofEnabled: true, PprofAddr: "127.0.0.1:0"}, logging.NewNop())
	if err != nil {
		t.Fatalf("start telemetry: %v", err)
	}
	t.Cleanup(func() { _ = telemetry.Shutdown(context.Background()) })

	resp, err := http.Get("http://" + telemetry.debug.Addr + "/debug/pprof/")
	if err != nil {
		t.Fatalf("get pprof index: %v", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}

func TestShutdown_NilTelemetry(t *testing.T) {
	t.Parallel()

	var telemetry *Telemetry
	if err := telemetry.Shutdown(context.Background()); err != nil {
		t.Fatalf("nil shutdown: %v", err)
	}
}
