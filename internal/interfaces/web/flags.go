package web

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/riskibarqy/football-portal/internal/domain/country"
	"github.com/riskibarqy/football-portal/internal/platform/cache"
	"github.com/riskibarqy/football-portal/internal/platform/logging"
)

const (
	defaultFlagTimeout = 5 * time.Second
	maxFlagBytes       = 64 << 10
	maxCachedFlags     = 512
)

type flagImage struct {
	Data        []byte
	ContentType string
}

type FlagProxyConfig struct {
	BaseURL  string
	CacheTTL time.Duration
	Timeout  time.Duration
}

// FlagProxy serves country flags from the CDN through an in-memory cache.
// Any failure is a 404 so the page hides the image.
type FlagProxy struct {
	client  *fasthttp.Client
	baseURL string
	timeout time.Duration
	cache   *cache.Store[flagImage]
	logger  *logging.Logger
}

func NewFlagProxy(cfg FlagProxyConfig, logger *logging.Logger) *FlagProxy {
	if logger == nil {
		logger = logging.Default()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultFlagTimeout
	}
	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	return &FlagProxy{
		client: &fasthttp.Client{
			Name:                "football-portal-flags",
			ReadTimeout:         timeout,
			WriteTimeout:        timeout,
			MaxConnsPerHost:     16,
			MaxResponseBodySize: maxFlagBytes,
		},
		baseURL: strings.TrimSpace(cfg.BaseURL),
		timeout: timeout,
		cache:   cache.NewBoundedStore[flagImage](ttl, maxCachedFlags),
		logger:  logger,
	}
}

func (p *FlagProxy) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "web.FlagProxy.ServeHTTP")
	defer span.End()

	file := strings.ToLower(strings.TrimSpace(r.PathValue("file")))
	code, ok := strings.CutSuffix(file, ".png")
	if !ok || code == country.Unknown || !country.ValidCode(code) {
		http.NotFound(w, r)
		return
	}

	img, err := p.cache.GetOrLoad(ctx, code, func(ctx context.Context) (flagImage, error) {
		return p.fetch(ctx, code)
	})
	if err != nil {
		p.logger.DebugContext(ctx, "flag unavailable", "code", code, "error", err)
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", img.ContentType)
	w.Header().Set("Cache-Control", "public, max-age=86400")
	_, _ = w.Write(img.Data)
}

func (p *FlagProxy) fetch(ctx context.Context, code string) (flagImage, error) {
	target := country.FlagURL(p.baseURL, code)
	if target == "" {
		return flagImage{}, fmt.Errorf("no flag url for %q", code)
	}

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(target)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "image/*")

	timeout := p.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = min(timeout, time.Until(deadline))
	}
	if err := p.client.DoTimeout(req, resp, timeout); err != nil {
		return flagImage{}, fmt.Errorf("fetch flag %s: %w", code, err)
	}
	if status := resp.StatusCode(); status != fasthttp.StatusOK {
		return flagImage{}, fmt.Errorf("fetch flag %s: status=%d", code, status)
	}

	contentType := string(resp.Header.ContentType())
	if !strings.HasPrefix(contentType, "image/") {
		return flagImage{}, fmt.Errorf("fetch flag %s: unexpected content type %q", code, contentType)
	}

	body := resp.Body()
	if len(body) == 0 {
		return flagImage{}, fmt.Errorf("fetch flag %s: empty body", code)
	}
	return flagImage{Data: append([]byte(nil), body...), ContentType: contentType}, nil
}
