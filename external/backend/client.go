// Package backend is the REST client for the football content backend. It
// implements the domain repositories.
package backend

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/sync/singleflight"

	"github.com/riskibarqy/football-portal/internal/domain/session"
	"github.com/riskibarqy/football-portal/internal/platform/logging"
	"github.com/riskibarqy/football-portal/internal/platform/resilience"
	"github.com/riskibarqy/football-portal/internal/usecase"
)

const (
	defaultTimeout   = 10 * time.Second
	maxResponseBytes = 6 << 20
)

var errBackendTransient = crerr.New("backend transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Timeout        time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client talks to the backend. It never retries; failed calls surface to the
// caller and count against the circuit breaker when the backend is at fault.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         singleflight.Group
	validate       *validator.Validate
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = cfg.Timeout
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = defaultTimeout
	}

	breakerCfg := cfg.CircuitBreaker.Normalize()
	breaker := resilience.NewCircuitBreaker("backend", breakerCfg, func(from, to resilience.CircuitState) {
		logger.Warn("backend circuit breaker state changed", "from", string(from), "to", string(to))
	})

	return &Client{
		httpClient:     httpClient,
		baseURL:        strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		logger:         logger,
		breaker:        breaker,
		circuitEnabled: breakerCfg.Enabled,
		validate:       validator.New(validator.WithRequiredStructEnabled()),
	}
}

// BreakerState is exposed for health reporting.
func (c *Client) BreakerState() resilience.CircuitState {
	return c.breaker.State()
}

type request struct {
	method      string
	path        string
	query       url.Values
	body        []byte
	contentType string
	auth        bool
}

// getJSON fetches path and decodes the data field of the envelope into T.
// Identical concurrent GETs made with the same token share one round trip.
func getJSON[T any](ctx context.Context, c *Client, path string, query url.Values, auth bool) (T, error) {
	var zero T
	raw, err := c.do(ctx, request{method: http.MethodGet, path: path, query: query, auth: auth})
	if err != nil {
		return zero, err
	}
	return decodeData[T](raw)
}

// sendJSON encodes payload as the request body and decodes the data field of
// the response into T. Only login and register go out without a token.
func sendJSON[T any](ctx context.Context, c *Client, method, path string, payload any, auth bool) (T, error) {
	var zero T
	var body []byte
	if payload != nil {
		encoded, err := sonic.Marshal(payload)
		if err != nil {
			return zero, crerr.Wrap(err, "marshal request body")
		}
		body = encoded
	}

	raw, err := c.do(ctx, request{method: method, path: path, body: body, contentType: "application/json", auth: auth})
	if err != nil {
		return zero, err
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return zero, nil
	}
	return decodeData[T](raw)
}

func decodeData[T any](raw []byte) (T, error) {
	var env envelope[T]
	if err := sonic.Unmarshal(raw, &env); err != nil {
		return env.Data, crerr.Mark(
			fmt.Errorf("%w: decode backend payload: %v", usecase.ErrDependencyUnavailable, err),
			errBackendTransient,
		)
	}
	if env.Success != nil && !*env.Success {
		msg := env.message()
		err := fmt.Errorf("%w: backend reported failure", usecase.ErrInvalidInput)
		if msg != "" {
			err = crerr.WithHint(err, msg)
		}
		return env.Data, err
	}
	return env.Data, nil
}

func (c *Client) do(ctx context.Context, req request) ([]byte, error) {
	token := session.Token(ctx)
	if req.auth && token == "" {
		return nil, fmt.Errorf("%w: sign in required", usecase.ErrUnauthorized)
	}
	if c.baseURL == "" {
		return nil, fmt.Errorf("%w: backend base url is not configured", usecase.ErrDependencyUnavailable)
	}

	fullURL := c.baseURL + req.path
	if encoded := req.query.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	call := func(ctx context.Context) ([]byte, error) {
		if !c.circuitEnabled {
			return c.roundTrip(ctx, req, fullURL, token)
		}

		var raw []byte
		err := c.breaker.Execute(ctx, func(ctx context.Context) error {
			var reqErr error
			raw, reqErr = c.roundTrip(ctx, req, fullURL, token)
			return reqErr
		}, isCircuitFailure)
		if crerr.Is(err, resilience.ErrCircuitOpen) {
			c.logger.WarnContext(ctx, "backend circuit breaker rejected request", "path", req.path, "state", string(c.breaker.State()))
			return nil, fmt.Errorf("%w: backend is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
		return raw, err
	}

	if req.method != http.MethodGet {
		return call(ctx)
	}
	return c.shared(ctx, flightKey(req.method, fullURL, token), call)
}

// shared runs fn once for every caller waiting on key. fn gets a context
// detached from any single caller, so one caller leaving does not fail the
// others; the http client timeout still bounds the request. Each caller stops
// waiting when its own ctx ends.
func (c *Client) shared(ctx context.Context, key string, fn func(context.Context) ([]byte, error)) ([]byte, error) {
	results := c.flight.DoChan(key, func() (any, error) {
		return fn(context.WithoutCancel(ctx))
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-results:
		if res.Err != nil {
			return nil, res.Err
		}
		raw, ok := res.Val.([]byte)
		if !ok {
			return nil, fmt.Errorf("unexpected response payload type %T", res.Val)
		}
		return raw, nil
	}
}

func (c *Client) roundTrip(ctx context.Context, req request, fullURL, token string) ([]byte, error) {
	var body io.Reader
	if req.body != nil {
		body = bytes.NewReader(req.body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, fullURL, body)
	if err != nil {
		return nil, crerr.Wrap(err, "build backend request")
	}
	httpReq.Header.Set("Accept", "application/json")
	if req.contentType != "" && req.body != nil {
		httpReq.Header.Set("Content-Type", req.contentType)
	}
	if token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		c.logger.WarnContext(ctx, "backend request failed", "method", req.method, "path", req.path, "error", err)
		return nil, crerr.Mark(
			fmt.Errorf("%w: send request: %v", usecase.ErrDependencyUnavailable, err),
			errBackendTransient,
		)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, crerr.Mark(
			fmt.Errorf("%w: read response body: %v", usecase.ErrDependencyUnavailable, err),
			errBackendTransient,
		)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return raw, nil
	}

	statusErr := statusError(resp.StatusCode, bodyMessage(raw))
	if resp.StatusCode >= 500 {
		c.logger.WarnContext(ctx, "backend returned server error",
			"method", req.method,
			"path", req.path,
			"status_code", resp.StatusCode,
		)
	}
	return nil, statusErr
}

// statusError maps a non-2xx status to a use case sentinel. The backend's
// message, when present, rides along as a hint for the user.
func statusError(status int, message string) error {
	var err error
	switch {
	case status == http.StatusBadRequest, status == http.StatusUnprocessableEntity, status == http.StatusConflict:
		err = fmt.Errorf("%w: backend status=%d", usecase.ErrInvalidInput, status)
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		err = fmt.Errorf("%w: backend status=%d", usecase.ErrUnauthorized, status)
	case status == http.StatusNotFound:
		err = fmt.Errorf("%w: backend status=%d", usecase.ErrNotFound, status)
	case status >= 500:
		err = crerr.Mark(fmt.Errorf("%w: backend status=%d", usecase.ErrDependencyUnavailable, status), errBackendTransient)
	default:
		err = fmt.Errorf("%w: backend status=%d", usecase.ErrDependencyUnavailable, status)
	}

	if message != "" {
		err = crerr.WithHint(err, message)
	}
	return err
}

func isNotFound(err error) bool {
	return errors.Is(err, usecase.ErrNotFound)
}

func isCircuitFailure(err error) bool {
	return crerr.Is(err, errBackendTransient)
}

func bodyMessage(raw []byte) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return ""
	}

	var body errorBody
	if err := sonic.Unmarshal(raw, &body); err != nil {
		return ""
	}
	return body.text()
}

func flightKey(method, fullURL, token string) string {
	if token == "" {
		return method + " " + fullURL
	}
	return method + " " + fullURL + " " + hashToken(token)
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:8])
}

// resolveURL turns backend-relative asset paths into absolute URLs.
func (c *Client) resolveURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") || strings.HasPrefix(raw, "data:") {
		return raw
	}
	if !strings.HasPrefix(raw, "/") {
		raw = "/" + raw
	}
	return c.baseURL + raw
}

// validItems keeps the rows that pass schema validation and logs the rest.
func validItems[T any](ctx context.Context, c *Client, kind string, items []T) []T {
	out := make([]T, 0, len(items))
	dropped := 0
	for _, item := range items {
		if err := c.validate.Struct(item); err != nil {
			dropped++
			continue
		}
		out = append(out, item)
	}
	if dropped > 0 {
		c.logger.WarnContext(ctx, "dropped backend rows failing schema", "kind", kind, "dropped", dropped, "kept", len(out))
	}
	return out
}

func (c *Client) validOne(kind string, item any) error {
	if err := c.validate.Struct(item); err != nil {
		return fmt.Errorf("%w: invalid %s payload: %v", usecase.ErrDependencyUnavailable, kind, err)
	}
	return nil
}
