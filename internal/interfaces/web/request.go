package web

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"github.com/riskibarqy/football-portal/internal/platform/listing"
	"github.com/riskibarqy/football-portal/internal/usecase"
)

const (
	maxFormBytes = 64 << 10
	maxJSONBytes = 16 << 10
)

// listRequest reads the free-text query, the named facets and the window
// (limit plus filter key) from the url.
func listRequest(r *http.Request, cfg listing.WindowConfig, facets ...string) usecase.ListRequest {
	query := r.URL.Query()
	values := make(map[string]string, len(facets))
	for _, name := range facets {
		if v := strings.TrimSpace(query.Get(name)); v != "" {
			values[name] = v
		}
	}

	state := listing.NewFilterState(strings.TrimSpace(query.Get("q")), values)
	return usecase.ListRequest{
		State:  state,
		Window: listing.ParseWindow(cfg, query.Get("limit"), query.Get("key"), state),
	}
}

// moreURL links to the same list with the next window size.
func moreURL(r *http.Request, nextSize int, key string) string {
	query := r.URL.Query()
	query.Set("limit", strconv.Itoa(nextSize))
	query.Set("key", key)
	return r.URL.Path + "?" + query.Encode()
}

// listMeta is the window part of every list payload.
type listMeta struct {
	Total    int    `json:"total"`
	Shown    int    `json:"shown"`
	HasMore  bool   `json:"hasMore"`
	NextSize int    `json:"nextSize"`
	Key      string `json:"key"`
	MoreURL  string `json:"moreUrl,omitempty"`
}

func metaOf[T any](r *http.Request, page listing.Page[T]) listMeta {
	meta := listMeta{
		Total:    page.Total,
		Shown:    page.Shown,
		HasMore:  page.HasMore,
		NextSize: page.NextSize,
		Key:      page.Key,
	}
	if page.HasMore {
		meta.MoreURL = moreURL(r, page.NextSize, page.Key)
	}
	return meta
}

func pathID(r *http.Request, name string) (int64, error) {
	return usecase.ParseID(r.PathValue(name))
}

func queryInt(values url.Values, name string) (int, error) {
	raw := strings.TrimSpace(values.Get(name))
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("%w: %s must be a non-negative number", usecase.ErrInvalidInput, name)
	}
	return v, nil
}

func decodeJSON(r *http.Request, w http.ResponseWriter, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBytes)
	decoder := jsoniter.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

func parseForm(r *http.Request, w http.ResponseWriter) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		return fmt.Errorf("%w: invalid form: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

// safeRedirect keeps redirects on this site.
func safeRedirect(raw, fallback string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") || strings.Contains(raw, "\\") {
		return fallback
	}
	return raw
}
