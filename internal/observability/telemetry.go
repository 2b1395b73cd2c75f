// Package observability starts the process-wide telemetry of the portal.
// It covers tracing and log mirroring to Uptrace, log shipping to Better
// Stack, continuous profiling to Pyroscope and an optional pprof listener.
package observability

import (
	"context"
	"errors"
	"net/http"

	"github.com/riskibarqy/football-portal/internal/config"
	"github.com/riskibarqy/football-portal/internal/platform/logging"
)

// Telemetry is what Start turned on. Shutdown stops all of it.
type Telemetry struct {
	stopTracing  func(context.Context) error
	stopProfiler func() error
	debug        *http.Server
	logs         *LogShipper
	logger       *logging.Logger
}

// Option adds an already running component to Telemetry.
type Option func(*Telemetry)

// WithLogShipper hands the shipper behind the logger's sinks to Telemetry,
// which drains it last on Shutdown.
func WithLogShipper(shipper *LogShipper) Option {
	return func(t *Telemetry) {
		t.logs = shipper
	}
}

// Start enables every component cfg turns on. When one fails, the ones
// already running are stopped before the error is returned.
func Start(cfg config.Config, logger *logging.Logger, opts ...Option) (*Telemetry, error) {
	if logger == nil {
		logger = logging.Default()
	}

	t := &Telemetry{
		stopTracing:  func(context.Context) error { return nil },
		stopProfiler: func() error { return nil },
		logger:       logger,
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.logs != nil {
		logger.Info("log shipping enabled", "endpoint", t.logs.Endpoint(), "min_level", cfg.BetterStackMinLevel.String())
	}

	var err error
	if t.stopTracing, err = startTracing(cfg, logger); err != nil {
		_ = t.Shutdown(context.Background())
		return nil, err
	}
	if t.stopProfiler, err = startProfiler(cfg, logger); err != nil {
		_ = t.Shutdown(context.Background())
		return nil, err
	}
	if t.debug, err = startDebugServer(cfg, logger); err != nil {
		_ = t.Shutdown(context.Background())
		return nil, err
	}
	return t, nil
}

// Shutdown stops the debug listener first, then flushes traces, and drains
// shipped logs last so lines written during shutdown still leave the process.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	if t == nil {
		return nil
	}

	var errs []error
	if t.debug != nil {
		if err := t.debug.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
		t.debug = nil
	}
	if t.stopProfiler != nil {
		if err := t.stopProfiler(); err != nil {
			errs = append(errs, err)
		}
		t.stopProfiler = nil
	}
	if t.stopTracing != nil {
		if err := t.stopTracing(ctx); err != nil {
			errs = append(errs, err)
		}
		t.stopTracing = nil
	}
	if t.logs != nil {
		if err := t.logs.Close(ctx); err != nil {
			errs = append(errs, err)
		}
		t.logs = nil
	}
	return errors.Join(errs...)
}
