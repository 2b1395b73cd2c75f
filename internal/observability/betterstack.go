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

	"github.com/riskibarqy/football-portal/internal/config"
	"github.com/riskibarqy/football-portal/internal/platform/logging"
)

const (
	logQueueSize       = 1024
	defaultShipTimeout = 3 * time.Second
	drainTimeout       = 5 * time.Second
)

// LogShipper posts JSON log lines to Better Stack. Lines are queued and sent
// by one goroutine; when the queue is full new lines are dropped, so logging
// never waits on the network.
type LogShipper struct {
	endpoint string
	token    string
	level    logging.Level
	client   *http.Client

	mu      sync.RWMutex
	closed  bool
	queue   chan []byte
	done    chan struct{}
	dropped atomic.Uint64
	stop    sync.Once
}

// NewLogShipper returns nil when Better Stack shipping is turned off.
func NewLogShipper(cfg config.Config) (*LogShipper, error) {
	if !cfg.BetterStackEnabled {
		return nil, nil
	}
	endpoint := betterStackURL(cfg.BetterStackEndpoint)
	if endpoint == "" {
		return nil, fmt.Errorf("betterstack endpoint cannot be empty")
	}
	timeout := cfg.BetterStackTimeout
	if timeout <= 0 {
		timeout = defaultShipTimeout
	}

	s := &LogShipper{
		endpoint: endpoint,
		token:    strings.TrimSpace(cfg.BetterStackToken),
		level:    cfg.BetterStackMinLevel,
		client:   &http.Client{Timeout: timeout},
		queue:    make(chan []byte, logQueueSize),
		done:     make(chan struct{}),
	}
	go s.run()
	return s, nil
}

// Sinks is what logging.Options needs to tee records into the shipper.
func (s *LogShipper) Sinks() []logging.Sink {
	if s == nil {
		return nil
	}
	return []logging.Sink{{Writer: s, Level: s.level}}
}

// Endpoint is the normalised intake URL.
func (s *LogShipper) Endpoint() string {
	if s == nil {
		return ""
	}
	return s.endpoint
}

func (s *LogShipper) Write(p []byte) (int, error) {
	line := bytes.TrimSpace(p)
	if len(line) == 0 {
		return len(p), nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return len(p), nil
	}

	// zap reuses p once Write returns.
	select {
	case s.queue <- bytes.Clone(line):
	default:
		if n := s.dropped.Add(1); n == 1 || n%100 == 0 {
			fmt.Fprintf(os.Stderr, "betterstack queue full, dropped=%d\n", n)
		}
	}
	return len(p), nil
}

func (s *LogShipper) Sync() error {
	return nil
}

// Dropped counts lines lost to a full queue.
func (s *LogShipper) Dropped() uint64 {
	if s == nil {
		return 0
	}
	return s.dropped.Load()
}

// Close stops accepting lines and waits for the queue to drain. Without a
// deadline on ctx it waits at most drainTimeout.
func (s *LogShipper) Close(ctx context.Context) error {
	if s == nil {
		return nil
	}
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, drainTimeout)
		defer cancel()
	}

	s.stop.Do(func() {
		s.mu.Lock()
		s.closed = true
		close(s.queue)
		s.mu.Unlock()
	})

	select {
	case <-s.done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("drain betterstack queue: %w", ctx.Err())
	}
}

func (s *LogShipper) run() {
	defer close(s.done)
	for line := range s.queue {
		if err := s.send(line); err != nil {
			fmt.Fprintf(os.Stderr, "betterstack ship log: %v\n", err)
		}
	}
}

func (s *LogShipper) send(line []byte) error {
	req, err := http.NewRequest(http.MethodPost, s.endpoint, bytes.NewReader(line))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("status=%d", resp.StatusCode)
	}
	return nil
}

// betterStackURL accepts a bare ingest host as Better Stack shows it.
func betterStackURL(raw string) string {
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
